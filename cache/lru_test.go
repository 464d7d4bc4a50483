// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package cache_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/clerkb/clerk/cache"
)

func TestNewLRU(t *testing.T) {
	_, err := cache.NewLRU(0)
	assert.Error(t, err)
}

func TestGetOrLoad(t *testing.T) {
	c, err := cache.NewLRU(2)
	assert.NoError(t, err)

	loads := 0
	loader := func(key any) (any, error) {
		loads++
		return key.(string) + "!", nil
	}

	for range 3 {
		v, err := c.GetOrLoad("a", loader)
		assert.NoError(t, err)
		assert.Equal(t, "a!", v)
	}
	assert.Equal(t, 1, loads)

	hit, miss := c.Stats()
	assert.Equal(t, int64(2), hit)
	assert.Equal(t, int64(1), miss)

	// evicts "a"
	c.GetOrLoad("b", loader)
	c.GetOrLoad("c", loader)
	assert.Equal(t, 2, c.Len())
	c.GetOrLoad("a", loader)
	assert.Equal(t, 4, loads)
}

func TestGetOrLoadError(t *testing.T) {
	c, _ := cache.NewLRU(2)
	boom := errors.New("boom")

	_, err := c.GetOrLoad("a", func(any) (any, error) { return nil, boom })
	assert.Equal(t, boom, err)
	assert.Equal(t, 0, c.Len())
}
