// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package fixture

import (
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"

	"github.com/clerkb/clerk/clerk"
	"github.com/clerkb/clerk/poa"
	"github.com/clerkb/clerk/script"
	"github.com/clerkb/clerk/since"
)

var codeHashes = map[string]clerk.Bytes32{
	"poa":            PoACode,
	"state":          StateCode,
	"always_success": AlwaysSuccessCode,
	"type_id":        TypeIDCode,
}

var hashTypes = map[string]clerk.HashType{
	"":      clerk.HashTypeType,
	"data":  clerk.HashTypeData,
	"type":  clerk.HashTypeType,
	"data1": clerk.HashTypeData1,
}

// builder resolves named scripts, memoising them.
type builder struct {
	f        *Fixture
	resolved map[string]*clerk.Script
	visiting map[string]bool
}

// Build assembles the transaction and the lock script to run.
func (f *Fixture) Build() (*script.Transaction, *clerk.Script, error) {
	b := &builder{
		f:        f,
		resolved: make(map[string]*clerk.Script),
		visiting: make(map[string]bool),
	}
	lock, err := b.script(f.Run)
	if err != nil {
		return nil, nil, errors.Wrap(err, "run")
	}

	tx := &script.Transaction{}
	for i, c := range f.Deps {
		cell, err := b.cell(c)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "deps[%d]", i)
		}
		tx.CellDeps = append(tx.CellDeps, *cell)
	}
	for i, c := range f.Inputs {
		cell, err := b.cell(c)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "inputs[%d]", i)
		}
		tx.Inputs = append(tx.Inputs, script.Input{Cell: *cell, Since: since.Since(c.Since)})
	}
	for i, c := range f.Outputs {
		if c.Since != 0 {
			return nil, nil, errors.Errorf("outputs[%d]: since on an output", i)
		}
		cell, err := b.cell(c)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "outputs[%d]", i)
		}
		tx.Outputs = append(tx.Outputs, *cell)
	}
	return tx, lock, nil
}

func (b *builder) script(name string) (*clerk.Script, error) {
	if s, ok := b.resolved[name]; ok {
		return s, nil
	}
	def, ok := b.f.Scripts[name]
	if !ok {
		return nil, errors.Errorf("unknown script %q", name)
	}
	if b.visiting[name] {
		return nil, errors.Errorf("script %q refers to itself", name)
	}
	b.visiting[name] = true
	defer delete(b.visiting, name)

	code, ok := codeHashes[def.Code]
	if !ok {
		var err error
		if code, err = clerk.ParseBytes32(def.Code); err != nil {
			return nil, errors.Wrapf(err, "script %q: code", name)
		}
	}
	hashType, ok := hashTypes[strings.ToLower(def.HashType)]
	if !ok {
		return nil, errors.Errorf("script %q: unknown hash type %q", name, def.HashType)
	}
	args := append([]byte(nil), def.Args...)
	for _, ref := range def.ArgsHashes {
		s, err := b.script(ref)
		if err != nil {
			return nil, errors.Wrapf(err, "script %q", name)
		}
		args = append(args, s.Hash().Bytes()...)
	}

	s := clerk.NewScript(code, hashType, args)
	b.resolved[name] = s
	return s, nil
}

func (b *builder) cell(c *Cell) (*clerk.Cell, error) {
	lock, err := b.script(c.Lock)
	if err != nil {
		return nil, errors.Wrap(err, "lock")
	}
	cell := &clerk.Cell{Lock: *lock}
	if c.Type != "" {
		if cell.Type, err = b.script(c.Type); err != nil {
			return nil, errors.Wrap(err, "type")
		}
	}

	set := 0
	for _, ok := range []bool{c.Data != nil, c.Setup != nil, c.Round != nil} {
		if ok {
			set++
		}
	}
	if set > 1 {
		return nil, errors.New("more than one of data, setup and round")
	}
	switch {
	case c.Setup != nil:
		setup, err := b.setup(c.Setup)
		if err != nil {
			return nil, errors.Wrap(err, "setup")
		}
		if cell.Data, err = setup.Encode(); err != nil {
			return nil, errors.Wrap(err, "setup")
		}
	case c.Round != nil:
		cell.Data = (&poa.RoundState{
			RoundStart:       c.Round.RoundStart,
			LastSubblockTime: c.Round.LastSubblockTime,
			SubblockIndex:    c.Round.SubblockIndex,
			AggregatorIndex:  c.Round.AggregatorIndex,
		}).Encode()
	default:
		cell.Data = append([]byte(nil), c.Data...)
	}
	return cell, nil
}

func (b *builder) setup(s *Setup) (*poa.Setup, error) {
	setup := &poa.Setup{
		IdentityWidth:   s.IdentitySize,
		ChangeThreshold: s.ChangeThreshold,
		RoundDuration:   s.RoundDuration,
		MaxSubblocks:    s.SubblocksPerRound,
	}
	switch s.IntervalType {
	case "seconds":
		setup.TimeUnit = poa.Seconds
	case "blocks":
		setup.TimeUnit = poa.Blocks
	default:
		return nil, errors.Errorf("unknown interval type %q", s.IntervalType)
	}
	for _, ref := range s.Identities {
		if strings.HasPrefix(ref, "0x") {
			id, err := hexutil.Decode(ref)
			if err != nil {
				return nil, errors.Wrapf(err, "identity %q", ref)
			}
			setup.Identities = append(setup.Identities, clerk.Identity(id))
			continue
		}
		owner, err := b.script(ref)
		if err != nil {
			return nil, errors.Wrap(err, "identity")
		}
		setup.Identities = append(setup.Identities, clerk.IdentityOf(owner.Hash(), int(s.IdentitySize)))
	}
	return setup, nil
}
