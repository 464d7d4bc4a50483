// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package fixture

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/clerkb/clerk/clerk"
	"github.com/clerkb/clerk/log"
	"github.com/clerkb/clerk/poa"
	"github.com/clerkb/clerk/script"
)

var logger = log.WithContext("pkg", "fixture")

// Outcome is the result of running one fixture.
type Outcome struct {
	Fixture *Fixture
	Exit    int8
	Kind    poa.Kind
	Err     error
}

// Passed reports whether the lock behaved as the fixture expects.
func (o *Outcome) Passed() bool {
	if o.Exit != o.Fixture.Expect {
		return false
	}
	return o.Fixture.Kind == "" || o.Exit != 0 || o.Kind.String() == o.Fixture.Kind
}

func (o *Outcome) String() string {
	status := "ok"
	if !o.Passed() {
		status = "FAIL"
	}
	s := fmt.Sprintf("%-4v %v: exit %d, expect %d", status, o.Fixture.Name, o.Exit, o.Fixture.Expect)
	if o.Kind != 0 {
		s += fmt.Sprintf(" (%v)", o.Kind)
	}
	if o.Err != nil {
		s += ": " + o.Err.Error()
	}
	return s
}

// Exec builds the fixture's transaction and verifies the lock under test.
// The error is only set when the fixture itself cannot be built.
func (f *Fixture) Exec(runner *script.Runner) (*Outcome, error) {
	tx, lock, err := f.Build()
	if err != nil {
		return nil, errors.Wrapf(err, "build %v", f.Name)
	}
	kind, err := runner.Verify(tx, lock)
	o := &Outcome{
		Fixture: f,
		Exit:    clerk.ExitCode(err),
		Kind:    kind,
		Err:     err,
	}
	logger.Debug("fixture run", "name", f.Name, "exit", o.Exit, "expect", f.Expect, "passed", o.Passed())
	return o, nil
}

// RunAll runs fixtures with at most parallel running at once. Outcomes keep
// the order of fixtures. The first fixture that cannot be built aborts the run.
func RunAll(ctx context.Context, runner *script.Runner, fixtures []*Fixture, parallel int, done func(*Outcome)) ([]*Outcome, error) {
	outcomes := make([]*Outcome, len(fixtures))

	g, ctx := errgroup.WithContext(ctx)
	if parallel > 0 {
		g.SetLimit(parallel)
	}
	for i, f := range fixtures {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			o, err := f.Exec(runner)
			if err != nil {
				return err
			}
			outcomes[i] = o
			if done != nil {
				done(o)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outcomes, nil
}
