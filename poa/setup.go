// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package poa

import (
	"fmt"

	"github.com/clerkb/clerk/clerk"
	"github.com/clerkb/clerk/codec"
	"github.com/clerkb/clerk/since"
)

// TimeUnit is the unit of round durations and round-state times.
type TimeUnit uint8

// Time units.
const (
	Blocks TimeUnit = iota
	Seconds
)

func (u TimeUnit) String() string {
	switch u {
	case Blocks:
		return "blocks"
	case Seconds:
		return "seconds"
	default:
		return fmt.Sprintf("unit(%d)", uint8(u))
	}
}

// Metric returns the since metric a time-floor must carry for this unit.
func (u TimeUnit) Metric() since.Metric {
	if u == Seconds {
		return since.Timestamp
	}
	return since.BlockNumber
}

const (
	// SetupHeaderSize is the fixed part of an encoded setup.
	SetupHeaderSize = 11

	secondsFlag = uint32(1) << 31

	// MaxRoundDuration is the largest duration left once the time unit flag is packed in.
	MaxRoundDuration = secondsFlag - 1
)

// Setup is the federation configuration the PoA lock enforces.
// It is replaced wholesale by a quorum of its identities, never mutated.
type Setup struct {
	IdentityWidth   uint8
	TimeUnit        TimeUnit
	Identities      []clerk.Identity
	ChangeThreshold uint8
	RoundDuration   uint32
	MaxSubblocks    uint32
}

// Len returns the number of identities.
func (s *Setup) Len() int {
	return len(s.Identities)
}

// Identity returns the identity at index, bounds-checked.
func (s *Setup) Identity(index uint16) (clerk.Identity, bool) {
	if int(index) >= len(s.Identities) {
		return nil, false
	}
	return s.Identities[index], true
}

// Validate checks the setup against the bounds of its wire format.
func (s *Setup) Validate() error {
	if s.IdentityWidth == 0 {
		return clerk.Reject(clerk.MalformedArgs, "zero identity width")
	}
	if s.TimeUnit != Blocks && s.TimeUnit != Seconds {
		return clerk.Reject(clerk.MalformedArgs, "invalid time unit %v", s.TimeUnit)
	}
	n := len(s.Identities)
	if n == 0 {
		return clerk.Reject(clerk.MalformedArgs, "no identity")
	}
	if n > clerk.MaxIdentities {
		return clerk.Reject(clerk.MalformedArgs, "too many identities: %d > %d", n, clerk.MaxIdentities)
	}
	for i, id := range s.Identities {
		if len(id) != int(s.IdentityWidth) {
			return clerk.Reject(clerk.MalformedArgs, "identity %d: width %d, want %d", i, len(id), s.IdentityWidth)
		}
	}
	if s.ChangeThreshold == 0 || int(s.ChangeThreshold) > n {
		return clerk.Reject(clerk.MalformedArgs, "invalid change threshold %d for %d identities", s.ChangeThreshold, n)
	}
	if s.RoundDuration == 0 || s.RoundDuration > MaxRoundDuration {
		return clerk.Reject(clerk.MalformedArgs, "invalid round duration %d", s.RoundDuration)
	}
	if s.MaxSubblocks == 0 {
		return clerk.Reject(clerk.MalformedArgs, "zero subblocks per round")
	}
	return nil
}

// Encode returns the canonical setup blob:
//
//	[identity_width:1][identity_count:1][change_threshold:1][round_duration:4][max_subblocks:4][identities]
//
// The top bit of round_duration carries the time unit (set for seconds).
func (s *Setup) Encode() ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	duration := s.RoundDuration
	if s.TimeUnit == Seconds {
		duration |= secondsFlag
	}
	w := codec.NewWriter(SetupHeaderSize + len(s.Identities)*int(s.IdentityWidth)).
		Uint8(s.IdentityWidth).
		Uint8(uint8(len(s.Identities))).
		Uint8(s.ChangeThreshold).
		Uint32(duration).
		Uint32(s.MaxSubblocks)
	for _, id := range s.Identities {
		w.Raw(id)
	}
	return w.Bytes(), nil
}

// DecodeSetup parses a setup blob. Any length other than the one implied by the
// header, and any setup failing Validate, is MalformedArgs.
func DecodeSetup(data []byte) (*Setup, error) {
	r := codec.NewReader(data)
	var (
		width     = r.Uint8("identity_width")
		count     = r.Uint8("identity_count")
		threshold = r.Uint8("change_threshold")
		duration  = r.Uint32("round_duration")
		subblocks = r.Uint32("max_subblocks_per_round")
	)
	if err := r.Err(); err != nil {
		return nil, err
	}
	if want := int(width) * int(count); r.Remaining() != want {
		return nil, clerk.Reject(clerk.MalformedArgs, "identities: have %d bytes, want %d×%d", r.Remaining(), count, width)
	}

	setup := &Setup{
		IdentityWidth:   width,
		TimeUnit:        Blocks,
		Identities:      make([]clerk.Identity, 0, count),
		ChangeThreshold: threshold,
		RoundDuration:   duration &^ secondsFlag,
		MaxSubblocks:    subblocks,
	}
	if duration&secondsFlag != 0 {
		setup.TimeUnit = Seconds
	}
	for i := 0; i < int(count); i++ {
		setup.Identities = append(setup.Identities, clerk.Identity(r.Bytes(int(width), "identity")))
	}
	if err := r.Done(); err != nil {
		return nil, err
	}
	if err := setup.Validate(); err != nil {
		return nil, err
	}
	return setup, nil
}

func (s *Setup) String() string {
	return fmt.Sprintf("Setup(width=%d unit=%v identities=%d threshold=%d duration=%d subblocks=%d)",
		s.IdentityWidth, s.TimeUnit, len(s.Identities), s.ChangeThreshold, s.RoundDuration, s.MaxSubblocks)
}
