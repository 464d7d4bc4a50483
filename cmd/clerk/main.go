// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"os"

	cli "gopkg.in/urfave/cli.v1"

	"github.com/clerkb/clerk/metrics"
)

var (
	version   = "0.1.0"
	gitCommit string
)

func fullVersion() string {
	if gitCommit == "" {
		return version
	}
	return fmt.Sprintf("%s-%s", version, gitCommit)
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "clerk"
	app.Version = fullVersion()
	app.Usage = "PoA aggregator rotation and state delegation lock toolkit"
	app.Copyright = "2025 The VeChainThor developers"
	app.Flags = []cli.Flag{
		verbosityFlag,
		jsonLogsFlag,
		metricsFlag,
	}
	app.Before = func(ctx *cli.Context) error {
		if err := initLogger(ctx); err != nil {
			return err
		}
		if ctx.Bool(metricsFlag.Name) {
			metrics.InitializePrometheusMetrics()
		}
		return nil
	}
	app.After = func(ctx *cli.Context) error {
		if ctx.Bool(metricsFlag.Name) {
			return metrics.Write(ctx.App.Writer)
		}
		return nil
	}
	app.Commands = []cli.Command{
		scriptCommand,
		decodeCommand,
		verifyCommand,
	}
	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Fatal:", err)
		os.Exit(1)
	}
}
