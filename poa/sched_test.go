// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package poa_test

import (
	"math"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"

	"github.com/clerkb/clerk/poa"
)

func TestSchedule(t *testing.T) {
	setup := &poa.Setup{
		IdentityWidth:   32,
		TimeUnit:        poa.Seconds,
		Identities:      identities(32, 4),
		ChangeThreshold: 3,
		RoundDuration:   10,
		MaxSubblocks:    2,
	}

	_, err := poa.NewSchedule(setup, &poa.RoundState{AggregatorIndex: 4})
	assert.Error(t, err)
	_, err = poa.NewSchedule(setup, &poa.RoundState{RoundStart: 20, LastSubblockTime: 19})
	assert.Error(t, err)

	sched, err := poa.NewSchedule(setup, &poa.RoundState{RoundStart: 20, LastSubblockTime: 25, AggregatorIndex: 2})
	assert.NoError(t, err)

	tests := []struct {
		t       uint64
		periods uint64
		owner   uint16
	}{
		{0, 0, 2},
		{20, 0, 2},
		{29, 0, 2},
		{30, 1, 3},
		{40, 2, 0},
		{55, 3, 1},
		{60, 4, 2},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.periods, sched.Periods(tt.t), "t=%d", tt.t)
		assert.Equal(t, tt.owner, sched.WhoseTurn(tt.t), "t=%d", tt.t)
	}

	assert.True(t, sched.IsTheTime(30, 1))
	assert.False(t, sched.IsTheTime(29, 1))
	assert.True(t, sched.HasRoom())

	full, _ := poa.NewSchedule(setup, &poa.RoundState{RoundStart: 20, LastSubblockTime: 25, SubblockIndex: 1})
	assert.False(t, full.HasRoom())
}

func TestScheduleLargeValues(t *testing.T) {
	setup := &poa.Setup{
		IdentityWidth:   32,
		TimeUnit:        poa.Blocks,
		Identities:      identities(32, 3),
		ChangeThreshold: 1,
		RoundDuration:   poa.MaxRoundDuration,
		MaxSubblocks:    1,
	}
	sched, err := poa.NewSchedule(setup, &poa.RoundState{RoundStart: math.MaxUint64 - 1, LastSubblockTime: math.MaxUint64 - 1, AggregatorIndex: 1})
	assert.NoError(t, err)

	// slot start exceeds 64 bits and no floor can reach it
	start := sched.SlotStart(math.MaxUint64)
	assert.True(t, start.Gt(uint256.NewInt(math.MaxUint64)))
	assert.False(t, sched.IsTheTime(math.MaxUint64, 1))

	// the owner index stays in range for any number of periods
	assert.Equal(t, uint16((1+math.MaxUint64%3)%3), sched.SlotOwner(math.MaxUint64))
}
