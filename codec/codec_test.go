// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package codec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/clerkb/clerk/clerk"
	"github.com/clerkb/clerk/codec"
)

func TestWriterLayout(t *testing.T) {
	b := codec.NewWriter(15).
		Uint8(0x01).
		Uint16(0x0302).
		Uint32(0x07060504).
		Uint64(0x0f0e0d0c0b0a0908).
		Bytes()
	assert.Equal(t, []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15}, b)
}

func TestReader(t *testing.T) {
	data := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 0xaa, 0xbb}
	r := codec.NewReader(data)
	assert.Equal(t, uint8(1), r.Uint8("a"))
	assert.Equal(t, uint16(0x0302), r.Uint16("b"))
	assert.Equal(t, uint32(0x07060504), r.Uint32("c"))
	assert.Equal(t, uint64(0x0f0e0d0c0b0a0908), r.Uint64("d"))
	assert.Equal(t, 2, r.Remaining())

	raw := r.Bytes(2, "e")
	assert.Equal(t, []byte{0xaa, 0xbb}, raw)
	raw[0] = 0
	assert.Equal(t, byte(0xaa), data[15], "Bytes must copy")
	assert.NoError(t, r.Done())
}

func TestReaderErrors(t *testing.T) {
	r := codec.NewReader([]byte{1, 2, 3})
	r.Uint16("first")
	assert.Equal(t, uint32(0), r.Uint32("second"))
	// sticky: later reads do not overwrite the first failure
	assert.Equal(t, uint8(0), r.Uint8("third"))
	assert.True(t, clerk.IsReason(r.Err(), clerk.MalformedArgs))
	assert.Contains(t, r.Err().Error(), "second")
	assert.Equal(t, r.Err(), r.Done())

	r = codec.NewReader([]byte{1, 2, 3})
	r.Uint16("only")
	err := r.Done()
	assert.True(t, clerk.IsReason(err, clerk.MalformedArgs))
	assert.Contains(t, err.Error(), "1 trailing bytes")

	r = codec.NewReader(nil)
	assert.Nil(t, r.Bytes(-1, "negative"))
	assert.Error(t, r.Err())
}
