// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"strconv"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/clerkb/clerk/config"
	"github.com/clerkb/clerk/fixture"
	"github.com/clerkb/clerk/poa"
	"github.com/clerkb/clerk/since"
)

var decodeCommand = cli.Command{
	Name:   "decode",
	Usage:  "decode setup, round state or since values",
	Flags:  []cli.Flag{setupFlag, roundFlag, sinceFlag},
	Action: decodeAction,
}

type sinceInfo struct {
	Raw      string `yaml:"raw"`
	Relative bool   `yaml:"relative"`
	Metric   string `yaml:"metric"`
	Value    uint64 `yaml:"value"`
}

func decodeAction(ctx *cli.Context) error {
	var set []string
	for _, f := range []cli.StringFlag{setupFlag, roundFlag, sinceFlag} {
		if ctx.String(f.Name) != "" {
			set = append(set, f.Name)
		}
	}
	if len(set) != 1 {
		return errors.Errorf("exactly one of --%v, --%v and --%v is required", setupFlag.Name, roundFlag.Name, sinceFlag.Name)
	}

	var (
		out any
		err error
	)
	switch value := ctx.String(set[0]); set[0] {
	case setupFlag.Name:
		out, err = decodeSetup(value)
	case roundFlag.Name:
		out, err = decodeRound(value)
	default:
		out, err = decodeSince(value)
	}
	if err != nil {
		return err
	}
	return printYAML(ctx.App.Writer, out)
}

func decodeSetup(value string) (*config.Setup, error) {
	data, err := hexutil.Decode(value)
	if err != nil {
		return nil, errors.Wrap(err, "setup")
	}
	setup, err := poa.DecodeSetup(data)
	if err != nil {
		return nil, errors.Wrap(err, "setup")
	}
	out := &config.Setup{
		IdentitySize:      setup.IdentityWidth,
		IntervalType:      config.IntervalBlocks,
		RoundDuration:     setup.RoundDuration,
		SubblocksPerRound: setup.MaxSubblocks,
		ChangeThreshold:   setup.ChangeThreshold,
	}
	if setup.TimeUnit == poa.Seconds {
		out.IntervalType = config.IntervalSeconds
	}
	for _, id := range setup.Identities {
		out.Identities = append(out.Identities, config.Hex(id))
	}
	return out, nil
}

func decodeRound(value string) (*fixture.Round, error) {
	data, err := hexutil.Decode(value)
	if err != nil {
		return nil, errors.Wrap(err, "round")
	}
	round, err := poa.DecodeRoundState(data)
	if err != nil {
		return nil, errors.Wrap(err, "round")
	}
	return &fixture.Round{
		RoundStart:       round.RoundStart,
		LastSubblockTime: round.LastSubblockTime,
		SubblockIndex:    round.SubblockIndex,
		AggregatorIndex:  round.AggregatorIndex,
	}, nil
}

func decodeSince(value string) (*sinceInfo, error) {
	raw, err := strconv.ParseUint(value, 0, 64)
	if err != nil {
		return nil, errors.Wrap(err, "since")
	}
	s := since.Since(raw)
	if err := s.Validate(); err != nil {
		return nil, errors.Wrapf(err, "since %#x", raw)
	}
	return &sinceInfo{
		Raw:      hexutil.EncodeUint64(raw),
		Relative: s.IsRelative(),
		Metric:   s.Metric().String(),
		Value:    s.Value(),
	}, nil
}
