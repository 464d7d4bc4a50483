// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package clerk_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/clerkb/clerk/clerk"
)

func TestCellHashes(t *testing.T) {
	lock := clerk.NewScript(clerk.Bytes32{1}, clerk.HashTypeData, []byte{1, 2})
	typ := clerk.NewScript(clerk.Bytes32{2}, clerk.HashTypeType, nil)

	cell := &clerk.Cell{Lock: *lock}
	assert.Equal(t, lock.Hash(), cell.LockHash())
	_, ok := cell.TypeHash()
	assert.False(t, ok)

	cell.Type = typ
	h, ok := cell.TypeHash()
	assert.True(t, ok)
	assert.Equal(t, typ.Hash(), h)
	assert.NotEqual(t, cell.LockHash(), h)
}
