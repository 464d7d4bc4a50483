// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package clerk

import (
	"fmt"
)

// Cell is a ledger output: a lock guarding it, an optional type and opaque data.
type Cell struct {
	Lock Script
	Type *Script
	Data []byte
}

// LockHash returns the hash of the cell's lock script.
func (c *Cell) LockHash() Bytes32 {
	return c.Lock.Hash()
}

// TypeHash returns the hash of the cell's type script, if it has one.
func (c *Cell) TypeHash() (Bytes32, bool) {
	if c.Type == nil {
		return Bytes32{}, false
	}
	return c.Type.Hash(), true
}

func (c *Cell) String() string {
	typ := "none"
	if c.Type != nil {
		typ = c.Type.String()
	}
	return fmt.Sprintf("Cell(lock=%v type=%v data=%d bytes)", &c.Lock, typ, len(c.Data))
}
