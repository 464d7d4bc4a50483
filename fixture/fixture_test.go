// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package fixture_test

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clerkb/clerk/fixture"
	"github.com/clerkb/clerk/poa"
)

const rotation = `
name: rotation
scripts:
  owner_a: {code: always_success, hash_type: data, args: "0x01"}
  owner_b: {code: always_success, hash_type: data, args: "0x02"}
  setup_type: {code: type_id, args: "0x01"}
  round_type: {code: type_id, args: "0x02"}
  poa: {code: poa, args_hashes: [setup_type, round_type]}
deps:
  - lock: owner_a
    type: setup_type
    setup:
      identity_size: 32
      interval_type: seconds
      round_duration: 90
      subblocks_per_round: 1
      change_threshold: 2
      identities: [owner_a, owner_b]
inputs:
  - lock: poa
    since: "0x400000000000044c"
  - lock: owner_a
    type: round_type
    round: {round_start: 1000, last_subblock_time: 1000, subblock_index: 0, aggregator_index: 0}
  - lock: owner_b
outputs:
  - lock: poa
  - lock: owner_a
    type: round_type
    round: {round_start: 1100, last_subblock_time: 1100, subblock_index: 0, aggregator_index: 1}
run: poa
expect: 0
kind: rotation
`

func TestBuiltin(t *testing.T) {
	fixtures, err := fixture.Builtin()
	require.NoError(t, err)
	require.NotEmpty(t, fixtures)

	names := make(map[string]bool)
	runner := fixture.NewRunner()
	for _, f := range fixtures {
		names[f.Name] = true
		o, err := f.Exec(runner)
		require.NoError(t, err, f.Name)
		assert.True(t, o.Passed(), "%v\n%v", o, spew.Sdump(o.Fixture))
	}
	for _, name := range []string{
		"normal_update", "same_round", "overtime", "setup_update",
		"invalid_aggregator", "since_failure",
		"state_found", "state_not_found", "state_malformed_args",
	} {
		assert.True(t, names[name], "missing builtin %v", name)
	}
}

func TestParse(t *testing.T) {
	f, err := fixture.Parse([]byte(rotation), "rotation.yaml")
	require.NoError(t, err)
	assert.Equal(t, "rotation", f.Name)
	assert.Equal(t, "rotation.yaml", f.Source())
	assert.Equal(t, fixture.Since(0x400000000000044c), f.Inputs[0].Since)

	tx, lock, err := f.Build()
	require.NoError(t, err)
	assert.Len(t, tx.Inputs, 3)
	assert.Len(t, tx.Outputs, 2)
	assert.Len(t, tx.CellDeps, 1)
	assert.Equal(t, fixture.PoACode, lock.CodeHash)
	assert.Equal(t, tx.Inputs[0].Cell.Lock.Hash(), lock.Hash())

	setup, err := poa.DecodeSetup(tx.CellDeps[0].Data)
	require.NoError(t, err)
	assert.Equal(t, 2, setup.Len())
	assert.Equal(t, poa.Seconds, setup.TimeUnit)

	round, err := poa.DecodeRoundState(tx.Outputs[1].Data)
	require.NoError(t, err)
	assert.Equal(t, uint16(1), round.AggregatorIndex)

	o, err := f.Exec(fixture.NewRunner())
	require.NoError(t, err)
	assert.True(t, o.Passed(), spew.Sdump(o))
	assert.Equal(t, poa.Rotation, o.Kind)

	f.Kind = "overtime"
	assert.False(t, o.Passed(), "kind mismatch")
	f.Kind = ""
	f.Expect = -3
	assert.False(t, o.Passed())
}

func TestParseErrors(t *testing.T) {
	for _, tt := range []struct {
		name string
		data string
	}{
		{"unknown key", "run: poa\nbogus: 1\n"},
		{"no run", "name: x\n"},
		{"bad since", "run: poa\ninputs:\n  - lock: a\n    since: soon\n"},
		{"bad hex", "run: poa\nscripts:\n  a: {code: poa, args: \"0x1\"}\n"},
	} {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fixture.Parse([]byte(tt.data), "test")
			assert.Error(t, err)
		})
	}
}

func TestBuildErrors(t *testing.T) {
	for _, tt := range []struct {
		name string
		data string
	}{
		{"unknown run", "run: nope\n"},
		{"unknown code", "run: a\nscripts:\n  a: {code: nope}\n"},
		{"unknown hash type", "run: a\nscripts:\n  a: {code: poa, hash_type: data2}\n"},
		{"self reference", "run: a\nscripts:\n  a: {code: poa, args_hashes: [a]}\n"},
		{"cycle", "run: a\nscripts:\n  a: {code: poa, args_hashes: [b]}\n  b: {code: poa, args_hashes: [a]}\n"},
		{"since on output", "run: a\nscripts:\n  a: {code: poa}\noutputs:\n  - lock: a\n    since: 1\n"},
		{"two contents", "run: a\nscripts:\n  a: {code: poa}\ninputs:\n  - lock: a\n    data: \"0x00\"\n    round: {round_start: 1}\n"},
		{"interval type", "run: a\nscripts:\n  a: {code: poa}\ndeps:\n  - lock: a\n    setup: {interval_type: hours}\n"},
		{"invalid setup", "run: a\nscripts:\n  a: {code: poa}\ndeps:\n  - lock: a\n    setup: {identity_size: 32, interval_type: blocks, identities: [a]}\n"},
	} {
		t.Run(tt.name, func(t *testing.T) {
			f, err := fixture.Parse([]byte(tt.data), "test")
			require.NoError(t, err)
			_, _, err = f.Build()
			assert.Error(t, err)

			_, err = f.Exec(fixture.NewRunner())
			assert.Error(t, err)
		})
	}
}

func TestBuildExplicitValues(t *testing.T) {
	data := `
run: a
scripts:
  a: {code: "0x0000000000000000000000000000000000000000000000000000000000000001", hash_type: data1, args: "0xabcd"}
deps:
  - lock: a
    setup: {identity_size: 2, interval_type: blocks, round_duration: 5, subblocks_per_round: 1, change_threshold: 1, identities: ["0xaabb"]}
inputs:
  - lock: a
    data: "0x0102"
expect: 1
`
	f, err := fixture.Parse([]byte(data), "explicit")
	require.NoError(t, err)
	tx, lock, err := f.Build()
	require.NoError(t, err)
	assert.Equal(t, byte(1), lock.CodeHash[31])
	assert.Equal(t, []byte{0xab, 0xcd}, lock.Args)
	assert.Equal(t, []byte{1, 2}, tx.Inputs[0].Cell.Data)

	setup, err := poa.DecodeSetup(tx.CellDeps[0].Data)
	require.NoError(t, err)
	assert.Equal(t, poa.Blocks, setup.TimeUnit)
	assert.Equal(t, []byte{0xaa, 0xbb}, []byte(setup.Identities[0]))

	// foreign code is a host failure
	o, err := f.Exec(fixture.NewRunner())
	require.NoError(t, err)
	assert.Equal(t, int8(1), o.Exit)
	assert.True(t, o.Passed())
}

func TestLoadAll(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.yaml")
	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(good, []byte(rotation), 0o600))
	require.NoError(t, os.WriteFile(bad, []byte("run: [\n"), 0o600))
	missing := filepath.Join(dir, "missing.yaml")

	fixtures, err := fixture.LoadAll([]string{good})
	require.NoError(t, err)
	assert.Len(t, fixtures, 1)

	fixtures, err = fixture.LoadAll([]string{bad, good, missing})
	require.Error(t, err)
	assert.Len(t, fixtures, 1)

	merr, ok := err.(*multierror.Error)
	require.True(t, ok, spew.Sdump(err))
	assert.Len(t, merr.Errors, 2)
}

func TestRunAll(t *testing.T) {
	fixtures, err := fixture.Builtin()
	require.NoError(t, err)

	var seen atomic.Int32
	outcomes, err := fixture.RunAll(context.Background(), fixture.NewRunner(), fixtures, 4, func(*fixture.Outcome) {
		seen.Add(1)
	})
	require.NoError(t, err)
	require.Len(t, outcomes, len(fixtures))
	assert.Equal(t, int32(len(fixtures)), seen.Load())
	for i, o := range outcomes {
		assert.Same(t, fixtures[i], o.Fixture)
		assert.True(t, o.Passed(), o.String())
	}

	broken, err := fixture.Parse([]byte("run: nope\n"), "broken")
	require.NoError(t, err)
	_, err = fixture.RunAll(context.Background(), fixture.NewRunner(), append(fixtures, broken), 0, nil)
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = fixture.RunAll(ctx, fixture.NewRunner(), fixtures, 1, nil)
	assert.ErrorIs(t, err, context.Canceled)
}
