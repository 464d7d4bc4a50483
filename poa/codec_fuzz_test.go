// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package poa_test

import (
	"testing"

	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clerkb/clerk/clerk"
	"github.com/clerkb/clerk/poa"
)

func setupFuzzer() *fuzz.Fuzzer {
	return fuzz.New().NilChance(0).Funcs(
		func(s *poa.Setup, c fuzz.Continue) {
			s.IdentityWidth = uint8(c.Intn(40) + 1)
			s.TimeUnit = poa.TimeUnit(c.Intn(2))
			s.Identities = make([]clerk.Identity, c.Intn(12)+1)
			for i := range s.Identities {
				s.Identities[i] = make(clerk.Identity, s.IdentityWidth)
				c.Read(s.Identities[i])
			}
			s.ChangeThreshold = uint8(c.Intn(len(s.Identities)) + 1)
			s.RoundDuration = uint32(c.Int63n(int64(poa.MaxRoundDuration))) + 1
			s.MaxSubblocks = c.Uint32()%1000 + 1
		},
	)
}

func TestSetupRoundTripFuzz(t *testing.T) {
	f := setupFuzzer()
	for range 500 {
		var s poa.Setup
		f.Fuzz(&s)

		data, err := s.Encode()
		require.NoError(t, err)
		assert.Len(t, data, poa.SetupHeaderSize+len(s.Identities)*int(s.IdentityWidth))

		decoded, err := poa.DecodeSetup(data)
		require.NoError(t, err)
		assert.Equal(t, &s, decoded)
	}
}

func TestRoundStateRoundTripFuzz(t *testing.T) {
	f := fuzz.New().NilChance(0)
	for range 500 {
		var rs poa.RoundState
		f.Fuzz(&rs)

		decoded, err := poa.DecodeRoundState(rs.Encode())
		require.NoError(t, err)
		assert.Equal(t, &rs, decoded)
	}
}

// Whatever bytes decode must re-encode to the very same bytes.
func TestDecodeCanonicalFuzz(t *testing.T) {
	f := fuzz.New().NilChance(0).NumElements(0, 64)
	for range 2000 {
		var blob []byte
		f.Fuzz(&blob)

		if s, err := poa.DecodeSetup(blob); err == nil {
			data, err := s.Encode()
			require.NoError(t, err)
			assert.Equal(t, blob, data)
		} else {
			assert.True(t, clerk.IsReason(err, clerk.MalformedArgs))
		}

		if rs, err := poa.DecodeRoundState(blob); err == nil {
			assert.Equal(t, blob, rs.Encode())
		} else {
			assert.True(t, clerk.IsReason(err, clerk.MalformedArgs))
		}
	}
}
