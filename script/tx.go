// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package script

import (
	"github.com/clerkb/clerk/clerk"
	"github.com/clerkb/clerk/since"
)

// Input is a consumed cell together with the time-floor the host enforced for it.
type Input struct {
	Cell  clerk.Cell
	Since since.Since
}

// Transaction is the part of a transaction visible to lock scripts.
type Transaction struct {
	Inputs   []Input
	Outputs  []clerk.Cell
	CellDeps []clerk.Cell
}

// group collects the positions of inputs and outputs locked by the same script.
type group struct {
	inputs  []int
	outputs []int
}

func (r *Runner) group(tx *Transaction, lockHash clerk.Bytes32) *group {
	g := &group{}
	for i := range tx.Inputs {
		if r.hash(&tx.Inputs[i].Cell.Lock) == lockHash {
			g.inputs = append(g.inputs, i)
		}
	}
	for i := range tx.Outputs {
		if r.hash(&tx.Outputs[i].Lock) == lockHash {
			g.outputs = append(g.outputs, i)
		}
	}
	return g
}

// signers returns the lock hashes of all inputs.
func (r *Runner) signers(tx *Transaction) clerk.LockHashSet {
	set := make(clerk.LockHashSet, len(tx.Inputs))
	for i := range tx.Inputs {
		set[r.hash(&tx.Inputs[i].Cell.Lock)] = struct{}{}
	}
	return set
}

// typed finds the cells whose type script hashes to typeHash.
func (r *Runner) typed(cells []clerk.Cell, typeHash clerk.Bytes32) []*clerk.Cell {
	var found []*clerk.Cell
	for i := range cells {
		if t := cells[i].Type; t != nil && r.hash(t) == typeHash {
			found = append(found, &cells[i])
		}
	}
	return found
}

func (r *Runner) typedInputs(tx *Transaction, typeHash clerk.Bytes32) []*clerk.Cell {
	var found []*clerk.Cell
	for i := range tx.Inputs {
		if t := tx.Inputs[i].Cell.Type; t != nil && r.hash(t) == typeHash {
			found = append(found, &tx.Inputs[i].Cell)
		}
	}
	return found
}
