// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clerkb/clerk/clerk"
	"github.com/clerkb/clerk/config"
	"github.com/clerkb/clerk/poa"
)

const (
	hashA = "0x1111111111111111111111111111111111111111111111111111111111111111"
	hashB = "0x2222222222222222222222222222222222222222222222222222222222222222"
	hashC = "0x3333333333333333333333333333333333333333333333333333333333333333"
	hashD = "0x4444444444444444444444444444444444444444444444444444444444444444"
)

const yamlConfig = `
lock:
  code_hash: ` + hashA + `
  hash_type: 1
  setup_type_hash: ` + hashB + `
  round_type_hash: ` + hashC + `
  state_code_hash: ` + hashD + `
  state_hash_type: 1
setup:
  identity_size: 2
  interval_type: seconds
  round_duration: 90
  subblocks_per_round: 1
  change_threshold: 2
  identities:
    - 0x1234
    - 0xabcd
`

const tomlConfig = `
[lock]
code_hash = "` + hashA + `"
hash_type = 1
setup_type_hash = "` + hashB + `"
round_type_hash = "` + hashC + `"
state_code_hash = "` + hashD + `"
state_hash_type = 1

[setup]
identity_size = 2
interval_type = "seconds"
round_duration = 90
subblocks_per_round = 1
change_threshold = 2
identities = ["0x1234", "0xabcd"]
`

func writeFile(t *testing.T, name, content string) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	fromYAML, err := config.Load(writeFile(t, "clerk.yaml", yamlConfig))
	require.NoError(t, err)
	fromTOML, err := config.Load(writeFile(t, "clerk.toml", tomlConfig))
	require.NoError(t, err)

	if diff := cmp.Diff(fromYAML, fromTOML); diff != "" {
		t.Errorf("yaml and toml disagree (-yaml +toml):\n%s", diff)
	}

	setup, err := fromYAML.PoASetup()
	require.NoError(t, err)
	assert.Equal(t, &poa.Setup{
		IdentityWidth:   2,
		TimeUnit:        poa.Seconds,
		Identities:      []clerk.Identity{{0x12, 0x34}, {0xab, 0xcd}},
		ChangeThreshold: 2,
		RoundDuration:   90,
		MaxSubblocks:    1,
	}, setup)

	args := fromYAML.LockArgs()
	assert.Len(t, args, 64)
	assert.Equal(t, clerk.MustParseBytes32(hashB).Bytes(), args[:32])
	assert.Equal(t, clerk.MustParseBytes32(hashC).Bytes(), args[32:])

	lock := fromYAML.LockScript()
	assert.Equal(t, clerk.MustParseBytes32(hashA), lock.CodeHash)
	assert.Equal(t, clerk.HashTypeType, lock.HashType)

	state := fromYAML.StateLockScript()
	require.NotNil(t, state)
	assert.Equal(t, lock.Hash().Bytes(), state.Args)
}

func TestLoadErrors(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = config.Load(writeFile(t, "bad.yaml", yamlConfig+"unknown: 1\n"))
	assert.Error(t, err)

	_, err = config.Load(writeFile(t, "bad.toml", tomlConfig+"unknown = 1\n"))
	assert.Error(t, err)

	_, err = config.Load(writeFile(t, "bad.yaml", strings.Replace(yamlConfig, "0x1234", "1234", 1)))
	assert.Error(t, err, "hex without prefix")
}

func valid() *config.Config {
	return &config.Config{
		Lock: config.Lock{
			CodeHash:      clerk.MustParseBytes32(hashA).Bytes(),
			HashType:      1,
			SetupTypeHash: clerk.MustParseBytes32(hashB).Bytes(),
			RoundTypeHash: clerk.MustParseBytes32(hashC).Bytes(),
		},
		Setup: config.Setup{
			IdentitySize:      2,
			IntervalType:      config.IntervalBlocks,
			RoundDuration:     20,
			SubblocksPerRound: 3,
			ChangeThreshold:   1,
			Identities:        []config.Hex{{1, 2}, {3, 4}},
		},
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, valid().Validate())
	assert.Nil(t, valid().StateLockScript())

	tests := []struct {
		name   string
		mutate func(c *config.Config)
		want   string
	}{
		{"short code hash", func(c *config.Config) { c.Lock.CodeHash = c.Lock.CodeHash[:31] }, "lock.code_hash"},
		{"bad hash type", func(c *config.Config) { c.Lock.HashType = 3 }, "lock.hash_type"},
		{"bad state hash", func(c *config.Config) { c.Lock.StateCodeHash = config.Hex{1} }, "lock.state_code_hash"},
		{"bad interval", func(c *config.Config) { c.Setup.IntervalType = "epochs" }, "setup.interval_type"},
		{"no identity", func(c *config.Config) { c.Setup.Identities = nil }, "no identity is setup"},
		{"too many identities", func(c *config.Config) {
			c.Setup.Identities = make([]config.Hex, 256)
			for i := range c.Setup.Identities {
				c.Setup.Identities[i] = config.Hex{byte(i), 0}
			}
		}, "too many aggregators"},
		{"identity length", func(c *config.Config) { c.Setup.Identities[1] = config.Hex{1} }, "setup.identities[1]"},
		{"zero identity size", func(c *config.Config) { c.Setup.IdentitySize = 0 }, "setup.identity_size"},
		{"threshold above count", func(c *config.Config) { c.Setup.ChangeThreshold = 3 }, "setup.change_threshold"},
		{"zero duration", func(c *config.Config) { c.Setup.RoundDuration = 0 }, "setup.round_duration"},
		{"zero subblocks", func(c *config.Config) { c.Setup.SubblocksPerRound = 0 }, "setup.subblocks_per_round"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := c.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidateReportsAll(t *testing.T) {
	c := valid()
	c.Lock.HashType = 9
	c.Setup.RoundDuration = 0
	err := c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lock.hash_type")
	assert.Contains(t, err.Error(), "setup.round_duration")
}
