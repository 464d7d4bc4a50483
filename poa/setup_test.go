// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package poa_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clerkb/clerk/clerk"
	"github.com/clerkb/clerk/poa"
)

func identities(width int, n int) []clerk.Identity {
	ids := make([]clerk.Identity, 0, n)
	for i := range n {
		ids = append(ids, clerk.IdentityOf(owner(i).Hash(), width))
	}
	return ids
}

func TestSetupEncode(t *testing.T) {
	setup := &poa.Setup{
		IdentityWidth:   2,
		TimeUnit:        poa.Seconds,
		Identities:      []clerk.Identity{{0xaa, 0xbb}, {0xcc, 0xdd}},
		ChangeThreshold: 2,
		RoundDuration:   90,
		MaxSubblocks:    3,
	}
	data, err := setup.Encode()
	require.NoError(t, err)
	assert.Equal(t, []byte{
		2, 2, 2,
		90, 0, 0, 0x80,
		3, 0, 0, 0,
		0xaa, 0xbb, 0xcc, 0xdd,
	}, data)

	decoded, err := poa.DecodeSetup(data)
	require.NoError(t, err)
	assert.Equal(t, setup, decoded)

	setup.TimeUnit = poa.Blocks
	data, err = setup.Encode()
	require.NoError(t, err)
	assert.Equal(t, byte(0), data[6], "blocks leave the top bit clear")
}

func TestSetupValidate(t *testing.T) {
	valid := func() *poa.Setup {
		return &poa.Setup{
			IdentityWidth:   32,
			TimeUnit:        poa.Seconds,
			Identities:      identities(32, 3),
			ChangeThreshold: 2,
			RoundDuration:   90,
			MaxSubblocks:    1,
		}
	}
	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(s *poa.Setup)
	}{
		{"zero width", func(s *poa.Setup) { s.IdentityWidth = 0 }},
		{"width mismatch", func(s *poa.Setup) { s.IdentityWidth = 20 }},
		{"bad unit", func(s *poa.Setup) { s.TimeUnit = 7 }},
		{"no identity", func(s *poa.Setup) { s.Identities = nil; s.ChangeThreshold = 0 }},
		{"too many identities", func(s *poa.Setup) { s.Identities = identities(32, clerk.MaxIdentities+1) }},
		{"zero threshold", func(s *poa.Setup) { s.ChangeThreshold = 0 }},
		{"threshold above count", func(s *poa.Setup) { s.ChangeThreshold = 4 }},
		{"zero duration", func(s *poa.Setup) { s.RoundDuration = 0 }},
		{"duration overlaps unit flag", func(s *poa.Setup) { s.RoundDuration = poa.MaxRoundDuration + 1 }},
		{"zero subblocks", func(s *poa.Setup) { s.MaxSubblocks = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid()
			tt.mutate(s)
			err := s.Validate()
			assert.True(t, clerk.IsReason(err, clerk.MalformedArgs), "%v", err)
			_, err = s.Encode()
			assert.True(t, clerk.IsReason(err, clerk.MalformedArgs), "%v", err)
		})
	}
}

func TestDecodeSetupMalformed(t *testing.T) {
	setup := &poa.Setup{
		IdentityWidth:   32,
		TimeUnit:        poa.Blocks,
		Identities:      identities(32, 2),
		ChangeThreshold: 1,
		RoundDuration:   20,
		MaxSubblocks:    5,
	}
	good, err := setup.Encode()
	require.NoError(t, err)

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"short header", good[:poa.SetupHeaderSize-1]},
		{"header only", good[:poa.SetupHeaderSize]},
		{"truncated identity", good[:len(good)-1]},
		{"trailing byte", append(bytes.Clone(good), 0)},
		{"count exceeds bytes", func() []byte { b := bytes.Clone(good); b[1] = 3; return b }()},
		{"zero threshold", func() []byte { b := bytes.Clone(good); b[2] = 0; return b }()},
		{"threshold above count", func() []byte { b := bytes.Clone(good); b[2] = 3; return b }()},
		{"zero duration", func() []byte { b := bytes.Clone(good); copy(b[3:7], []byte{0, 0, 0, 0x80}); return b }()},
		{"zero subblocks", func() []byte { b := bytes.Clone(good); copy(b[7:11], []byte{0, 0, 0, 0}); return b }()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := poa.DecodeSetup(tt.data)
			assert.True(t, clerk.IsReason(err, clerk.MalformedArgs), "%v", err)
		})
	}

	decoded, err := poa.DecodeSetup(good)
	require.NoError(t, err)
	assert.Equal(t, setup, decoded)
}

func TestSetupIdentity(t *testing.T) {
	s := &poa.Setup{Identities: identities(32, 2)}
	id, ok := s.Identity(1)
	assert.True(t, ok)
	assert.Equal(t, s.Identities[1], id)
	_, ok = s.Identity(2)
	assert.False(t, ok)
}
