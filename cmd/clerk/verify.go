// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"gopkg.in/cheggaaa/pb.v1"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/clerkb/clerk/fixture"
	"github.com/clerkb/clerk/log"
)

var verifyCommand = cli.Command{
	Name:      "verify",
	Usage:     "run conformance fixtures against the locks, the built-in suite by default",
	ArgsUsage: "[FILE|DIR...]",
	Flags:     []cli.Flag{parallelFlag, progressFlag},
	Action:    verifyAction,
}

func loadFixtures(args []string) ([]*fixture.Fixture, error) {
	if len(args) == 0 {
		return fixture.Builtin()
	}
	paths, err := expandPaths(args)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, errors.New("no fixture file found")
	}
	return fixture.LoadAll(paths)
}

func verifyAction(ctx *cli.Context) error {
	fixtures, err := loadFixtures(ctx.Args())
	if err != nil {
		return err
	}
	log.Debug("fixtures loaded", "count", len(fixtures))

	var done func(*fixture.Outcome)
	var bar *pb.ProgressBar
	if ctx.Bool(progressFlag.Name) {
		bar = pb.New(len(fixtures)).SetMaxWidth(90)
		bar.Output = os.Stderr
		bar.Start()
		done = func(*fixture.Outcome) { bar.Increment() }
	}

	start := time.Now()
	outcomes, err := fixture.RunAll(context.Background(), fixture.NewRunner(), fixtures, ctx.Int(parallelFlag.Name), done)
	if bar != nil {
		bar.Finish()
	}
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	w := ctx.App.Writer
	failed := 0
	for _, o := range outcomes {
		if !o.Passed() {
			failed++
		}
		fmt.Fprintln(w, o)
	}
	fmt.Fprintf(w, "%v fixtures, %v passed, %v failed in %v\n",
		humanize.Comma(int64(len(outcomes))),
		humanize.Comma(int64(len(outcomes)-failed)),
		humanize.Comma(int64(failed)),
		elapsed.Round(time.Microsecond))

	if failed > 0 {
		return errors.Errorf("%d of %d fixtures failed", failed, len(outcomes))
	}
	return nil
}
