// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/clerkb/clerk/config"
)

var scriptCommand = cli.Command{
	Name:   "script",
	Usage:  "print the setup cell data, lock args and lock hashes of a deployment",
	Flags:  []cli.Flag{configFlag},
	Action: scriptAction,
}

type scriptInfo struct {
	SetupData     string `yaml:"setup_data"`
	LockArgs      string `yaml:"lock_args"`
	LockHash      string `yaml:"lock_hash"`
	StateLockArgs string `yaml:"state_lock_args,omitempty"`
	StateLockHash string `yaml:"state_lock_hash,omitempty"`
}

func scriptAction(ctx *cli.Context) error {
	path := ctx.String(configFlag.Name)
	if path == "" {
		return errors.Errorf("--%v is required", configFlag.Name)
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	setup, err := cfg.PoASetup()
	if err != nil {
		return errors.Wrap(err, "setup")
	}
	data, err := setup.Encode()
	if err != nil {
		return errors.Wrap(err, "encode setup")
	}

	lock := cfg.LockScript()
	info := scriptInfo{
		SetupData: hexutil.Encode(data),
		LockArgs:  hexutil.Encode(lock.Args),
		LockHash:  lock.Hash().String(),
	}
	if state := cfg.StateLockScript(); state != nil {
		info.StateLockArgs = hexutil.Encode(state.Args)
		info.StateLockHash = state.Hash().String()
	}
	return printYAML(ctx.App.Writer, &info)
}
