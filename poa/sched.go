// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package poa

import (
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

// Schedule maps time to aggregator slots, anchored at a round state.
//
// Slot k (k >= 0) begins at RoundStart + k*RoundDuration and belongs to
// aggregator (AggregatorIndex + k) mod N. Slot 0 is the running round.
type Schedule struct {
	setup *Setup
	round *RoundState
}

// NewSchedule creates a schedule.
// If the round's aggregator is not listed in the setup, an error returned.
func NewSchedule(setup *Setup, round *RoundState) (*Schedule, error) {
	if _, ok := setup.Identity(round.AggregatorIndex); !ok {
		return nil, errors.Errorf("aggregator index %d out of %d identities", round.AggregatorIndex, setup.Len())
	}
	if round.LastSubblockTime < round.RoundStart {
		return nil, errors.Errorf("last subblock time %d before round start %d", round.LastSubblockTime, round.RoundStart)
	}
	return &Schedule{setup, round}, nil
}

// Periods returns the number of whole round durations from round start to t.
func (s *Schedule) Periods(t uint64) uint64 {
	if t <= s.round.RoundStart {
		return 0
	}
	return (t - s.round.RoundStart) / uint64(s.setup.RoundDuration)
}

// SlotOwner returns the aggregator owning the slot `periods` slots after the running one.
// The index is computed directly; slots in between are never visited.
func (s *Schedule) SlotOwner(periods uint64) uint16 {
	n := uint64(s.setup.Len())
	return uint16((uint64(s.round.AggregatorIndex) + periods%n) % n)
}

// WhoseTurn returns the aggregator whose slot contains t.
func (s *Schedule) WhoseTurn(t uint64) uint16 {
	return s.SlotOwner(s.Periods(t))
}

// SlotStart returns RoundStart + periods*RoundDuration without wrapping.
func (s *Schedule) SlotStart(periods uint64) *uint256.Int {
	start := uint256.NewInt(periods)
	start.Mul(start, uint256.NewInt(uint64(s.setup.RoundDuration)))
	return start.Add(start, uint256.NewInt(s.round.RoundStart))
}

// IsTheTime reports whether a host-guaranteed floor has reached the start of slot `periods`.
func (s *Schedule) IsTheTime(floor uint64, periods uint64) bool {
	return uint256.NewInt(floor).Cmp(s.SlotStart(periods)) >= 0
}

// HasRoom reports whether the running round admits another subblock.
func (s *Schedule) HasRoom() bool {
	return uint64(s.round.SubblockIndex)+1 < uint64(s.setup.MaxSubblocks)
}
