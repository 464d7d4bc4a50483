// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package config reads the deployment description of a federation: where the
// locks live and the initial setup.
package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/clerkb/clerk/clerk"
	"github.com/clerkb/clerk/poa"
	"github.com/clerkb/clerk/script"
)

// Interval types.
const (
	IntervalSeconds = "seconds"
	IntervalBlocks  = "blocks"
)

// Lock locates the PoA lock and its state cells.
type Lock struct {
	CodeHash      Hex   `yaml:"code_hash" toml:"code_hash"`
	HashType      uint8 `yaml:"hash_type" toml:"hash_type"`
	SetupTypeHash Hex   `yaml:"setup_type_hash" toml:"setup_type_hash"`
	RoundTypeHash Hex   `yaml:"round_type_hash" toml:"round_type_hash"`
	// optional, the lock guarding the state cells
	StateCodeHash Hex   `yaml:"state_code_hash,omitempty" toml:"state_code_hash,omitempty"`
	StateHashType uint8 `yaml:"state_hash_type,omitempty" toml:"state_hash_type,omitempty"`
}

// Setup is the initial federation setup.
type Setup struct {
	IdentitySize      uint8  `yaml:"identity_size" toml:"identity_size"`
	IntervalType      string `yaml:"interval_type" toml:"interval_type"`
	RoundDuration     uint32 `yaml:"round_duration" toml:"round_duration"`
	SubblocksPerRound uint32 `yaml:"subblocks_per_round" toml:"subblocks_per_round"`
	ChangeThreshold   uint8  `yaml:"change_threshold" toml:"change_threshold"`
	Identities        []Hex  `yaml:"identities" toml:"identities"`
}

// Config is a federation deployment.
type Config struct {
	Lock  Lock  `yaml:"lock" toml:"lock"`
	Setup Setup `yaml:"setup" toml:"setup"`
}

// Load reads and validates a config file. Files ending in .toml are read as
// TOML, anything else as YAML.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}
	var cfg Config
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		md, err := toml.Decode(string(data), &cfg)
		if err != nil {
			return nil, errors.Wrapf(err, "decode %v", path)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, errors.Errorf("decode %v: unknown key %v", path, undecoded[0])
		}
	} else {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil {
			return nil, errors.Wrapf(err, "decode %v", path)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid config %v", path)
	}
	return &cfg, nil
}

// Validate reports every problem found in the config at once.
func (c *Config) Validate() error {
	var result *multierror.Error
	fail := func(format string, args ...any) {
		result = multierror.Append(result, errors.Errorf(format, args...))
	}

	checkHash := func(name string, h Hex) {
		if len(h) != clerk.LockHashSize {
			fail("%v: have %d bytes, want %d", name, len(h), clerk.LockHashSize)
		}
	}
	checkHash("lock.code_hash", c.Lock.CodeHash)
	checkHash("lock.setup_type_hash", c.Lock.SetupTypeHash)
	checkHash("lock.round_type_hash", c.Lock.RoundTypeHash)
	if !clerk.HashType(c.Lock.HashType).Valid() {
		fail("lock.hash_type: invalid hash type %d", c.Lock.HashType)
	}
	if len(c.Lock.StateCodeHash) > 0 {
		checkHash("lock.state_code_hash", c.Lock.StateCodeHash)
		if !clerk.HashType(c.Lock.StateHashType).Valid() {
			fail("lock.state_hash_type: invalid hash type %d", c.Lock.StateHashType)
		}
	}

	s := &c.Setup
	switch s.IntervalType {
	case IntervalSeconds, IntervalBlocks:
	default:
		fail("setup.interval_type: %q is neither %q nor %q", s.IntervalType, IntervalSeconds, IntervalBlocks)
	}
	if s.IdentitySize == 0 || int(s.IdentitySize) > clerk.LockHashSize {
		fail("setup.identity_size: %d out of 1..%d", s.IdentitySize, clerk.LockHashSize)
	}
	switch n := len(s.Identities); {
	case n == 0:
		fail("setup.identities: no identity is setup")
	case n > clerk.MaxIdentities:
		fail("setup.identities: too many aggregators: %d > %d", n, clerk.MaxIdentities)
	}
	for i, id := range s.Identities {
		if len(id) != int(s.IdentitySize) {
			fail("setup.identities[%d]: have %d bytes, want %d", i, len(id), s.IdentitySize)
		}
	}
	if s.ChangeThreshold == 0 || int(s.ChangeThreshold) > len(s.Identities) {
		fail("setup.change_threshold: %d out of 1..%d", s.ChangeThreshold, len(s.Identities))
	}
	if s.RoundDuration == 0 || s.RoundDuration > poa.MaxRoundDuration {
		fail("setup.round_duration: %d out of 1..%d", s.RoundDuration, poa.MaxRoundDuration)
	}
	if s.SubblocksPerRound == 0 {
		fail("setup.subblocks_per_round: must be positive")
	}
	return result.ErrorOrNil()
}

// PoASetup builds the federation setup.
func (c *Config) PoASetup() (*poa.Setup, error) {
	s := &c.Setup
	setup := &poa.Setup{
		IdentityWidth:   s.IdentitySize,
		TimeUnit:        poa.Blocks,
		ChangeThreshold: s.ChangeThreshold,
		RoundDuration:   s.RoundDuration,
		MaxSubblocks:    s.SubblocksPerRound,
	}
	if s.IntervalType == IntervalSeconds {
		setup.TimeUnit = poa.Seconds
	}
	for _, id := range s.Identities {
		setup.Identities = append(setup.Identities, clerk.Identity(id))
	}
	if err := setup.Validate(); err != nil {
		return nil, err
	}
	return setup, nil
}

// LockArgs returns the PoA lock args.
func (c *Config) LockArgs() []byte {
	return (&script.PoAArgs{
		SetupTypeHash: clerk.BytesToBytes32(c.Lock.SetupTypeHash),
		RoundTypeHash: clerk.BytesToBytes32(c.Lock.RoundTypeHash),
	}).Encode()
}

// LockScript returns the PoA lock script.
func (c *Config) LockScript() *clerk.Script {
	return clerk.NewScript(clerk.BytesToBytes32(c.Lock.CodeHash), clerk.HashType(c.Lock.HashType), c.LockArgs())
}

// StateLockScript returns the lock guarding the state cells, delegating to the
// PoA lock. It is nil when the config names no state lock code.
func (c *Config) StateLockScript() *clerk.Script {
	if len(c.Lock.StateCodeHash) == 0 {
		return nil
	}
	return clerk.NewScript(clerk.BytesToBytes32(c.Lock.StateCodeHash), clerk.HashType(c.Lock.StateHashType),
		c.LockScript().Hash().Bytes())
}
