// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package delegation implements the state-delegation lock.
//
// Cells holding federation state (the setup and the round state) are locked
// by delegation to the PoA lock: they may be spent only in a transaction that
// also spends a cell locked by the target lock hash, whose own verification
// then decides.
package delegation

import (
	"github.com/clerkb/clerk/clerk"
)

// ArgsSize is the exact size of the lock argument.
const ArgsSize = clerk.LockHashSize

// Lock is a decoded delegation lock argument.
type Lock struct {
	Target clerk.Bytes32
}

// DecodeArgs parses the lock argument. Any length other than ArgsSize is MalformedArgs.
func DecodeArgs(args []byte) (*Lock, error) {
	if len(args) != ArgsSize {
		return nil, clerk.Reject(clerk.MalformedArgs, "delegation args: have %d bytes, want %d", len(args), ArgsSize)
	}
	return &Lock{Target: clerk.BytesToBytes32(args)}, nil
}

// Args returns the encoded lock argument.
func (l *Lock) Args() []byte {
	return l.Target.Bytes()
}

// Check accepts iff the target lock hash is among the input lock hashes.
func (l *Lock) Check(signers clerk.LockHashSet) error {
	if !signers.Has(l.Target) {
		return clerk.Reject(clerk.Unauthorized, "no input locked by %v", l.Target)
	}
	return nil
}

// Verify decodes args and checks them against the input lock hashes.
// Malformed args are refused whatever the inputs.
func Verify(args []byte, signers clerk.LockHashSet) error {
	lock, err := DecodeArgs(args)
	if err != nil {
		return err
	}
	return lock.Check(signers)
}
