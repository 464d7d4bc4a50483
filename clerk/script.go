// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package clerk

import (
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rlp"
)

// HashType tells the host how CodeHash locates the script code.
type HashType byte

// Hash types understood by the host.
const (
	HashTypeData HashType = iota
	HashTypeType
	HashTypeData1
)

// Valid reports whether t is a known hash type.
func (t HashType) Valid() bool {
	return t <= HashTypeData1
}

func (t HashType) String() string {
	switch t {
	case HashTypeData:
		return "data"
	case HashTypeType:
		return "type"
	case HashTypeData1:
		return "data1"
	default:
		return fmt.Sprintf("unknown(%d)", byte(t))
	}
}

// Script is a lock or type script attached to a cell.
type Script struct {
	CodeHash Bytes32
	HashType HashType
	Args     []byte
}

// NewScript creates a script. args is copied.
func NewScript(codeHash Bytes32, hashType HashType, args []byte) *Script {
	return &Script{
		CodeHash: codeHash,
		HashType: hashType,
		Args:     append([]byte(nil), args...),
	}
}

// Encode returns the canonical encoding the script hash commits to.
func (s *Script) Encode() []byte {
	data, err := rlp.EncodeToBytes(s)
	if err != nil {
		// fields are fixed arrays, a byte and a byte slice
		panic(err)
	}
	return data
}

// Hash computes the script hash. For a lock script this is the lock hash.
func (s *Script) Hash() Bytes32 {
	return Blake2bFn(func(w io.Writer) {
		if err := rlp.Encode(w, s); err != nil {
			panic(err)
		}
	})
}

func (s *Script) String() string {
	return fmt.Sprintf("Script(%v %v %v)", s.CodeHash.AbbrevString(), s.HashType, hexutil.Encode(s.Args))
}
