// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package poa

import (
	"fmt"

	"github.com/clerkb/clerk/clerk"
	"github.com/clerkb/clerk/since"
)

// Kind is the shape of an accepted transition.
type Kind uint8

// Transition kinds.
const (
	Continuation Kind = iota + 1
	Rotation
	Overtime
	Amendment
)

func (k Kind) String() string {
	switch k {
	case Continuation:
		return "continuation"
	case Rotation:
		return "rotation"
	case Overtime:
		return "overtime"
	case Amendment:
		return "amendment"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Transition is what the PoA lock sees of the transaction under validation.
type Transition struct {
	Setup    *Setup // setup in force before the transaction
	NewSetup *Setup // replacement, non-nil iff the setup cell is consumed
	Old      *RoundState
	New      *RoundState
	Since    since.Since
	Signers  clerk.LockHashSet // lock hashes of all inputs
}

// Verify decides whether the transition is a legal continuation, rotation,
// overtime takeover or setup amendment authorized by the right identities.
// It is a pure function of its argument.
func Verify(t *Transition) (Kind, error) {
	if t.Setup == nil {
		return 0, clerk.Reject(clerk.StructuralError, "missing setup")
	}
	if err := t.Setup.Validate(); err != nil {
		return 0, err
	}
	if t.NewSetup != nil {
		if err := t.NewSetup.Validate(); err != nil {
			return 0, err
		}
		return Amendment, verifyAmendment(t)
	}
	if t.Old == nil || t.New == nil {
		return 0, clerk.Reject(clerk.StructuralError, "missing round state")
	}
	return verifyRound(t.Setup, t.Old, t.New, t.Since, t.Signers)
}

func verifyAmendment(t *Transition) error {
	if (t.Old == nil) != (t.New == nil) {
		return clerk.Reject(clerk.StructuralError, "round state consumed without replacement")
	}
	if t.New != nil {
		if _, ok := t.NewSetup.Identity(t.New.AggregatorIndex); !ok {
			return clerk.Reject(clerk.StructuralError, "aggregator index %d out of %d amended identities",
				t.New.AggregatorIndex, t.NewSetup.Len())
		}
		if err := checkNewRound(t.New); err != nil {
			return err
		}
	}
	if n := quorum(t.Setup, t.Signers); n < int(t.Setup.ChangeThreshold) {
		return clerk.Reject(clerk.QuorumNotMet, "%d of %d required identities co-signed", n, t.Setup.ChangeThreshold)
	}
	return nil
}

func checkNewRound(next *RoundState) error {
	if next.LastSubblockTime < next.RoundStart {
		return clerk.Reject(clerk.StructuralError, "new round: last subblock time %d before round start %d",
			next.LastSubblockTime, next.RoundStart)
	}
	return nil
}

// quorum counts distinct identities of the setup present among the signers.
func quorum(setup *Setup, signers clerk.LockHashSet) int {
	present := signers.Identities(int(setup.IdentityWidth))
	counted := make(map[string]struct{}, setup.Len())
	for _, id := range setup.Identities {
		if _, dup := counted[string(id)]; dup {
			continue
		}
		if present.Has(id) {
			counted[string(id)] = struct{}{}
		}
	}
	return len(counted)
}

func verifyRound(setup *Setup, old, next *RoundState, s since.Since, signers clerk.LockHashSet) (Kind, error) {
	// structural
	incoming, ok := setup.Identity(next.AggregatorIndex)
	if !ok {
		return 0, clerk.Reject(clerk.StructuralError, "aggregator index %d out of %d identities", next.AggregatorIndex, setup.Len())
	}
	sched, err := NewSchedule(setup, old)
	if err != nil {
		return 0, clerk.Reject(clerk.StructuralError, "old round: %v", err)
	}
	if err := checkNewRound(next); err != nil {
		return 0, err
	}
	floor, err := s.Floor(setup.TimeUnit.Metric())
	if err != nil {
		return 0, clerk.Reject(clerk.StructuralError, "time-floor %v: %v", s, err)
	}

	// monotonicity
	if next.LastSubblockTime < old.LastSubblockTime {
		return 0, clerk.Reject(clerk.Backdated, "last subblock time %d < %d", next.LastSubblockTime, old.LastSubblockTime)
	}
	if floor < old.LastSubblockTime {
		return 0, clerk.Reject(clerk.Backdated, "time-floor %d < last subblock time %d", floor, old.LastSubblockTime)
	}

	// authorization: the aggregator of the new state must co-sign. A continuation
	// keeps the index, so this is the old aggregator as well.
	if !signers.Identities(int(setup.IdentityWidth)).Has(incoming) {
		return 0, clerk.Reject(clerk.Unauthorized, "aggregator %d (%v) did not co-sign", next.AggregatorIndex, incoming)
	}

	// classification
	periods := sched.Periods(next.LastSubblockTime)
	var kind Kind
	switch {
	case periods == 0:
		kind = Continuation
		if next.AggregatorIndex != old.AggregatorIndex {
			return 0, clerk.Reject(clerk.InvalidTransition, "aggregator changed within round: %d -> %d",
				old.AggregatorIndex, next.AggregatorIndex)
		}
		if next.RoundStart != old.RoundStart {
			return 0, clerk.Reject(clerk.InvalidTransition, "round start changed within round: %d -> %d",
				old.RoundStart, next.RoundStart)
		}
		if uint64(next.SubblockIndex) != uint64(old.SubblockIndex)+1 {
			return 0, clerk.Reject(clerk.InvalidTransition, "subblock index %d does not follow %d",
				next.SubblockIndex, old.SubblockIndex)
		}
		if !sched.HasRoom() {
			return 0, clerk.Reject(clerk.InvalidTransition, "round full: %d subblocks", setup.MaxSubblocks)
		}
	default:
		kind = Rotation
		if periods > 1 {
			kind = Overtime
		}
		if want := sched.SlotOwner(periods); next.AggregatorIndex != want {
			return 0, clerk.Reject(clerk.InvalidTransition, "%v after %d periods must hand over to %d, not %d",
				kind, periods, want, next.AggregatorIndex)
		}
		if next.RoundStart != next.LastSubblockTime {
			return 0, clerk.Reject(clerk.InvalidTransition, "new round must start at its first subblock: %d != %d",
				next.RoundStart, next.LastSubblockTime)
		}
		if next.SubblockIndex != 0 {
			return 0, clerk.Reject(clerk.InvalidTransition, "new round must restart subblocks, got %d", next.SubblockIndex)
		}
	}

	// time-floor sufficiency
	if kind == Continuation {
		// floor >= old.LastSubblockTime already holds
		return kind, nil
	}
	if !sched.IsTheTime(floor, periods) {
		return 0, clerk.Reject(clerk.Backdated, "time-floor %d before slot start %v", floor, sched.SlotStart(periods))
	}
	return kind, nil
}
