// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package fixture describes lock verification scenarios in YAML and runs them.
//
// A fixture names its scripts, lays out the cells of one transaction, picks
// the lock to run and states the exit code the lock must return:
//
//	scripts:
//	  owner_b: {code: always_success, args: 0x02}
//	  poa: {code: poa, args_hashes: [setup_type, round_type]}
//	inputs:
//	  - lock: poa
//	    since: 0x400000000000044c
//	run: poa
//	expect: 0
package fixture

import (
	"bytes"
	"os"
	"strconv"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/clerkb/clerk/clerk"
	"github.com/clerkb/clerk/config"
	"github.com/clerkb/clerk/script"
)

// Well-known code hashes the fixtures refer to by name.
var (
	PoACode           = clerk.Blake2b([]byte("clerk/poa"))
	StateCode         = clerk.Blake2b([]byte("clerk/state"))
	AlwaysSuccessCode = clerk.Blake2b([]byte("clerk/always_success"))
	TypeIDCode        = clerk.BytesToBytes32([]byte("TYPE_ID"))
)

// NewRunner returns a runner recognising the well-known lock code hashes.
func NewRunner() *script.Runner {
	return script.NewRunner(PoACode, StateCode)
}

// Script defines a named script.
type Script struct {
	// poa, state, always_success, type_id or a 0x-prefixed code hash
	Code     string `yaml:"code"`
	HashType string `yaml:"hash_type,omitempty"`
	Args     config.Hex `yaml:"args,omitempty"`
	// hashes of the named scripts, appended to Args in order
	ArgsHashes []string `yaml:"args_hashes,omitempty"`
}

// Setup is a federation setup whose identities are script names or hex.
type Setup struct {
	IdentitySize      uint8    `yaml:"identity_size"`
	IntervalType      string   `yaml:"interval_type"`
	RoundDuration     uint32   `yaml:"round_duration"`
	SubblocksPerRound uint32   `yaml:"subblocks_per_round"`
	ChangeThreshold   uint8    `yaml:"change_threshold"`
	Identities        []string `yaml:"identities"`
}

// Round is round state cell content.
type Round struct {
	RoundStart       uint64 `yaml:"round_start"`
	LastSubblockTime uint64 `yaml:"last_subblock_time"`
	SubblockIndex    uint32 `yaml:"subblock_index"`
	AggregatorIndex  uint16 `yaml:"aggregator_index"`
}

// Since is a raw since value, written in decimal or 0x-prefixed hex.
type Since uint64

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *Since) UnmarshalYAML(node *yaml.Node) error {
	v, err := strconv.ParseUint(node.Value, 0, 64)
	if err != nil {
		return errors.Wrapf(err, "line %d: since", node.Line)
	}
	*s = Since(v)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (s Since) MarshalYAML() (any, error) {
	return hexutil.EncodeUint64(uint64(s)), nil
}

// Cell is a cell of the transaction. At most one of Data, Setup and Round is set.
type Cell struct {
	Lock  string     `yaml:"lock"`
	Type  string     `yaml:"type,omitempty"`
	Data  config.Hex `yaml:"data,omitempty"`
	Setup *Setup     `yaml:"setup,omitempty"`
	Round *Round     `yaml:"round,omitempty"`
	// inputs only
	Since Since `yaml:"since,omitempty"`
}

// Fixture is one verification scenario.
type Fixture struct {
	Name        string             `yaml:"name"`
	Description string             `yaml:"description,omitempty"`
	Scripts     map[string]*Script `yaml:"scripts"`
	Deps        []*Cell            `yaml:"deps,omitempty"`
	Inputs      []*Cell            `yaml:"inputs"`
	Outputs     []*Cell            `yaml:"outputs,omitempty"`
	Run         string             `yaml:"run"`
	Expect      int8               `yaml:"expect"`
	// optional transition kind of an accepted PoA run
	Kind string `yaml:"kind,omitempty"`

	source string
}

// Source returns where the fixture was loaded from.
func (f *Fixture) Source() string {
	return f.source
}

// Parse decodes a fixture. Unknown keys are errors.
func Parse(data []byte, source string) (*Fixture, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f Fixture
	if err := dec.Decode(&f); err != nil {
		return nil, errors.Wrapf(err, "decode %v", source)
	}
	if f.Name == "" {
		f.Name = source
	}
	if f.Run == "" {
		return nil, errors.Errorf("%v: no script to run", source)
	}
	f.source = source
	return &f, nil
}

// Load reads a fixture file.
func Load(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read fixture")
	}
	return Parse(data, path)
}

// LoadAll reads every fixture file, reporting all broken files together.
func LoadAll(paths []string) ([]*Fixture, error) {
	var (
		fixtures []*Fixture
		result   *multierror.Error
	)
	for _, path := range paths {
		f, err := Load(path)
		if err != nil {
			result = multierror.Append(result, err)
			continue
		}
		fixtures = append(fixtures, f)
	}
	return fixtures, result.ErrorOrNil()
}
