// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package since interprets the per-input time-floor value.
//
// The host only admits a transaction once its inclusion height or time is at
// least the floor encoded here, so a lock may treat the decoded value as a
// lower bound on "now". It is never an exact clock reading.
//
//	bit 63      relative flag
//	bits 62-61  metric: 00 block number, 01 epoch, 10 timestamp
//	bits 60-56  reserved, must be zero
//	bits 55-0   value
package since

import (
	"fmt"

	"github.com/pkg/errors"
)

// Metric selects what a since value counts.
type Metric uint8

// Metrics.
const (
	BlockNumber Metric = iota
	Epoch
	Timestamp
)

func (m Metric) String() string {
	switch m {
	case BlockNumber:
		return "block number"
	case Epoch:
		return "epoch"
	case Timestamp:
		return "timestamp"
	default:
		return fmt.Sprintf("metric(%d)", uint8(m))
	}
}

const (
	relativeFlag = uint64(1) << 63
	metricShift  = 61
	metricMask   = uint64(3) << metricShift
	reservedMask = uint64(0x1f) << 56
	valueMask    = uint64(1)<<56 - 1

	// MaxValue is the largest value a since can carry.
	MaxValue = valueMask
)

var (
	errRelative       = errors.New("relative since")
	errReserved       = errors.New("reserved since bits set")
	errUnknownMetric  = errors.New("unknown since metric")
	errMetricMismatch = errors.New("since metric mismatch")
)

// Since is the raw 64-bit time-floor of a transaction input.
type Since uint64

// NewAbsolute encodes an absolute since. Values beyond MaxValue are truncated.
func NewAbsolute(m Metric, value uint64) Since {
	return Since(uint64(m)<<metricShift | value&valueMask)
}

// NewRelative encodes a relative since. Values beyond MaxValue are truncated.
func NewRelative(m Metric, value uint64) Since {
	return NewAbsolute(m, value) | Since(relativeFlag)
}

// IsRelative reports whether the floor is relative to the consumed cell's creation.
func (s Since) IsRelative() bool {
	return uint64(s)&relativeFlag != 0
}

// Metric returns the metric bits. The result may be unknown; see Validate.
func (s Since) Metric() Metric {
	return Metric((uint64(s) & metricMask) >> metricShift)
}

// Value returns the low 56 bits.
func (s Since) Value() uint64 {
	return uint64(s) & valueMask
}

// Validate checks reserved bits and the metric.
func (s Since) Validate() error {
	if uint64(s)&reservedMask != 0 {
		return errReserved
	}
	if s.Metric() > Timestamp {
		return errUnknownMetric
	}
	return nil
}

// Floor returns the absolute floor of the wanted metric.
// Relative floors are refused: they are anchored to a cell's creation, not to
// anything a round state can be compared with.
func (s Since) Floor(want Metric) (uint64, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}
	if s.IsRelative() {
		return 0, errRelative
	}
	if m := s.Metric(); m != want {
		return 0, errors.Wrapf(errMetricMismatch, "want %v, have %v", want, m)
	}
	return s.Value(), nil
}

func (s Since) String() string {
	kind := "absolute"
	if s.IsRelative() {
		kind = "relative"
	}
	return fmt.Sprintf("%s %v %d", kind, s.Metric(), s.Value())
}
