// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package poa

import (
	"fmt"

	"github.com/clerkb/clerk/codec"
)

// RoundStateSize is the exact size of encoded round state.
const RoundStateSize = 22

// RoundState records the active round. Times are in the setup's time unit.
type RoundState struct {
	RoundStart       uint64
	LastSubblockTime uint64
	SubblockIndex    uint32
	AggregatorIndex  uint16
}

// Encode returns [round_start:8][last_subblock_time:8][subblock_index:4][aggregator_index:2].
func (r *RoundState) Encode() []byte {
	return codec.NewWriter(RoundStateSize).
		Uint64(r.RoundStart).
		Uint64(r.LastSubblockTime).
		Uint32(r.SubblockIndex).
		Uint16(r.AggregatorIndex).
		Bytes()
}

// DecodeRoundState parses round state cell data of exactly RoundStateSize bytes.
func DecodeRoundState(data []byte) (*RoundState, error) {
	r := codec.NewReader(data)
	rs := &RoundState{
		RoundStart:       r.Uint64("round_start"),
		LastSubblockTime: r.Uint64("last_subblock_time"),
		SubblockIndex:    r.Uint32("subblock_index"),
		AggregatorIndex:  r.Uint16("aggregator_index"),
	}
	if err := r.Done(); err != nil {
		return nil, err
	}
	return rs, nil
}

func (r *RoundState) String() string {
	return fmt.Sprintf("Round(start=%d last=%d subblock=%d aggregator=%d)",
		r.RoundStart, r.LastSubblockTime, r.SubblockIndex, r.AggregatorIndex)
}
