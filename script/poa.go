// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package script

import (
	"bytes"

	"github.com/clerkb/clerk/clerk"
	"github.com/clerkb/clerk/poa"
)

// PoAArgsSize is the size of the PoA lock args: [setup_type_hash:32][round_type_hash:32].
const PoAArgsSize = 2 * clerk.LockHashSize

// PoAArgs locates the federation state cells by type hash.
type PoAArgs struct {
	SetupTypeHash clerk.Bytes32
	RoundTypeHash clerk.Bytes32
}

// DecodePoAArgs parses PoA lock args of exactly PoAArgsSize bytes.
func DecodePoAArgs(args []byte) (*PoAArgs, error) {
	if len(args) != PoAArgsSize {
		return nil, clerk.Reject(clerk.MalformedArgs, "poa args: have %d bytes, want %d", len(args), PoAArgsSize)
	}
	return &PoAArgs{
		SetupTypeHash: clerk.BytesToBytes32(args[:clerk.LockHashSize]),
		RoundTypeHash: clerk.BytesToBytes32(args[clerk.LockHashSize:]),
	}, nil
}

// Encode returns the lock args.
func (a *PoAArgs) Encode() []byte {
	return append(a.SetupTypeHash.Bytes(), a.RoundTypeHash.Bytes()...)
}

// verifyPoA assembles the transition seen by the PoA lock and verifies it.
func (r *Runner) verifyPoA(tx *Transaction, lock *clerk.Script, g *group) (poa.Kind, error) {
	args, err := DecodePoAArgs(lock.Args)
	if err != nil {
		return 0, err
	}
	if len(g.inputs) != 1 || len(g.outputs) != 1 {
		return 0, clerk.Reject(clerk.StructuralError, "poa group has %d inputs and %d outputs, want exactly one each",
			len(g.inputs), len(g.outputs))
	}

	t := &poa.Transition{
		Since:   tx.Inputs[g.inputs[0]].Since,
		Signers: r.signers(tx),
	}
	if t.Setup, t.NewSetup, err = r.loadSetup(tx, args.SetupTypeHash); err != nil {
		return 0, err
	}
	if t.Old, t.New, err = r.loadRound(tx, args.RoundTypeHash); err != nil {
		return 0, err
	}
	return poa.Verify(t)
}

// loadSetup returns the setup in force and, when the setup cell is consumed, its replacement.
func (r *Runner) loadSetup(tx *Transaction, typeHash clerk.Bytes32) (cur, next *poa.Setup, err error) {
	consumed := r.typedInputs(tx, typeHash)
	switch len(consumed) {
	case 0:
		deps := r.typed(tx.CellDeps, typeHash)
		if len(deps) == 0 {
			return nil, nil, clerk.Reject(clerk.StructuralError, "setup cell %v not found", typeHash.AbbrevString())
		}
		for _, dep := range deps[1:] {
			if !bytes.Equal(dep.Data, deps[0].Data) {
				return nil, nil, clerk.Reject(clerk.StructuralError, "%d setup deps disagree", len(deps))
			}
		}
		cur, err = poa.DecodeSetup(deps[0].Data)
		return cur, nil, err
	case 1:
	default:
		return nil, nil, clerk.Reject(clerk.StructuralError, "%d setup cells consumed", len(consumed))
	}

	produced := r.typed(tx.Outputs, typeHash)
	if len(produced) != 1 {
		return nil, nil, clerk.Reject(clerk.StructuralError, "setup cell consumed with %d replacements", len(produced))
	}
	if cur, err = poa.DecodeSetup(consumed[0].Data); err != nil {
		return nil, nil, err
	}
	if next, err = poa.DecodeSetup(produced[0].Data); err != nil {
		return nil, nil, err
	}
	return cur, next, nil
}

// loadRound returns the consumed and produced round states, both nil when the
// round cell is untouched.
func (r *Runner) loadRound(tx *Transaction, typeHash clerk.Bytes32) (old, next *poa.RoundState, err error) {
	consumed := r.typedInputs(tx, typeHash)
	produced := r.typed(tx.Outputs, typeHash)
	if len(consumed) > 1 || len(produced) > 1 {
		return nil, nil, clerk.Reject(clerk.StructuralError, "%d round cells consumed, %d produced", len(consumed), len(produced))
	}
	if len(consumed) != len(produced) {
		return nil, nil, clerk.Reject(clerk.StructuralError, "round cell consumed without replacement")
	}
	if len(consumed) == 0 {
		return nil, nil, nil
	}
	if old, err = poa.DecodeRoundState(consumed[0].Data); err != nil {
		return nil, nil, err
	}
	if next, err = poa.DecodeRoundState(produced[0].Data); err != nil {
		return nil, nil, err
	}
	return old, next, nil
}
