// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package clerk

import (
	"bytes"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Identity is a federation member, the leading bytes of the member's lock hash.
// The width is fixed per deployment and never exceeds MaxIdentityWidth.
type Identity []byte

// IdentityOf truncates a lock hash to the given identity width.
// Widths beyond the lock hash size yield nil: such identities can never be matched.
func IdentityOf(lockHash Bytes32, width int) Identity {
	if width <= 0 || width > len(lockHash) {
		return nil
	}
	id := make(Identity, width)
	copy(id, lockHash[:width])
	return id
}

// String implements stringer.
func (id Identity) String() string {
	return hexutil.Encode(id)
}

// Equal reports whether two identities are byte-identical.
func (id Identity) Equal(other Identity) bool {
	return bytes.Equal(id, other)
}

// MarshalText implements encoding.TextMarshaler.
func (id Identity) MarshalText() ([]byte, error) {
	return hexutil.Bytes(id).MarshalText()
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *Identity) UnmarshalText(text []byte) error {
	var raw hexutil.Bytes
	if err := raw.UnmarshalText(text); err != nil {
		return err
	}
	*id = Identity(raw)
	return nil
}

// LockHashSet is the set of lock hashes among a transaction's inputs.
type LockHashSet map[Bytes32]struct{}

// NewLockHashSet builds a set from the given hashes. Duplicates collapse.
func NewLockHashSet(hashes ...Bytes32) LockHashSet {
	set := make(LockHashSet, len(hashes))
	for _, h := range hashes {
		set[h] = struct{}{}
	}
	return set
}

// Has reports whether the full lock hash is present.
func (s LockHashSet) Has(h Bytes32) bool {
	_, ok := s[h]
	return ok
}

// Identities projects the set onto identities of the given width.
func (s LockHashSet) Identities(width int) IdentitySet {
	set := make(IdentitySet, len(s))
	if width <= 0 || width > len(Bytes32{}) {
		return set
	}
	for h := range s {
		set[string(h[:width])] = struct{}{}
	}
	return set
}

// IdentitySet is a set of fixed-width identities.
type IdentitySet map[string]struct{}

// Has reports whether id is a member.
func (s IdentitySet) Has(id Identity) bool {
	_, ok := s[string(id)]
	return ok
}
