// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package clerk

import (
	"hash"
	"io"
	"sync"

	"github.com/ethereum/go-ethereum/crypto/blake2b"
)

var hashers = sync.Pool{
	New: func() any {
		h, err := blake2b.New256(nil)
		if err != nil {
			panic(err) // unkeyed
		}
		return h
	},
}

// Blake2b returns the blake2b-256 digest of the concatenated data.
func Blake2b(data ...[]byte) Bytes32 {
	if len(data) == 1 {
		return blake2b.Sum256(data[0])
	}
	return Blake2bFn(func(w io.Writer) {
		for _, b := range data {
			w.Write(b)
		}
	})
}

// Blake2bFn returns the blake2b-256 digest of everything fn writes.
func Blake2bFn(fn func(w io.Writer)) (h Bytes32) {
	hasher := hashers.Get().(hash.Hash)
	defer hashers.Put(hasher)

	hasher.Reset()
	fn(hasher)
	hasher.Sum(h[:0])
	return h
}
