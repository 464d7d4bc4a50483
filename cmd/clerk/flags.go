// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"runtime"

	cli "gopkg.in/urfave/cli.v1"

	"github.com/clerkb/clerk/log"
)

var (
	verbosityFlag = cli.Uint64Flag{
		Name:  "verbosity",
		Value: log.LegacyLevelInfo,
		Usage: "log verbosity (0-9)",
	}
	jsonLogsFlag = cli.BoolFlag{
		Name:  "json-logs",
		Usage: "output logs in JSON format",
	}
	metricsFlag = cli.BoolFlag{
		Name:  "metrics",
		Usage: "dump collected metrics in prometheus text format before exiting",
	}

	configFlag = cli.StringFlag{
		Name:  "config",
		Usage: "deployment config file (.yaml or .toml)",
	}

	setupFlag = cli.StringFlag{
		Name:  "setup",
		Usage: "hex encoded setup cell data",
	}
	roundFlag = cli.StringFlag{
		Name:  "round",
		Usage: "hex encoded round state cell data",
	}
	sinceFlag = cli.StringFlag{
		Name:  "since",
		Usage: "since value, decimal or 0x-prefixed hex",
	}

	parallelFlag = cli.IntFlag{
		Name:  "parallel",
		Value: runtime.NumCPU(),
		Usage: "number of fixtures run at once",
	}
	progressFlag = cli.BoolFlag{
		Name:  "progress",
		Usage: "show a progress bar",
	}
)
