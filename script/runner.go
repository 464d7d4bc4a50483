// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package script runs the federation locks against a transaction the way the
// host would, and reports their exit codes.
package script

import (
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/clerkb/clerk/cache"
	"github.com/clerkb/clerk/clerk"
	"github.com/clerkb/clerk/delegation"
	"github.com/clerkb/clerk/log"
	"github.com/clerkb/clerk/metrics"
	"github.com/clerkb/clerk/poa"
)

var logger = log.WithContext("pkg", "script")

var (
	metricVerifications = metrics.LazyLoadCounterVec("verifications_total", []string{"lock", "result"})
	metricVerifyTime    = metrics.LazyLoadHistogramVec("verify_duration_us", []string{"lock"}, metrics.BucketMicros)
	metricHashCacheSize = metrics.LazyLoadGauge("script_hash_cache_entries")
)

var (
	errUnknownLock = errors.New("unknown lock code")
	errNotInInputs = errors.New("lock guards no input")
)

// Lock names.
const (
	LockPoA        = "poa"
	LockDelegation = "delegation"
)

const hashCacheSize = 1024

// Runner dispatches lock scripts by code hash.
type Runner struct {
	poaCode        clerk.Bytes32
	delegationCode clerk.Bytes32
	hashes         *cache.LRU
}

// NewRunner creates a runner recognising the two lock binaries by their code hashes.
func NewRunner(poaCode, delegationCode clerk.Bytes32) *Runner {
	hashes, err := cache.NewLRU(hashCacheSize)
	if err != nil {
		panic(err) // size is a positive constant
	}
	return &Runner{
		poaCode:        poaCode,
		delegationCode: delegationCode,
		hashes:         hashes,
	}
}

// hash returns the script hash, memoised on the script encoding.
func (r *Runner) hash(s *clerk.Script) clerk.Bytes32 {
	v, _ := r.hashes.GetOrLoad(string(s.Encode()), func(key any) (any, error) {
		return clerk.Blake2b([]byte(key.(string))), nil
	})
	return v.(clerk.Bytes32)
}

// LockName returns which lock a script runs, or false for foreign code.
func (r *Runner) LockName(lock *clerk.Script) (string, bool) {
	switch lock.CodeHash {
	case r.poaCode:
		return LockPoA, true
	case r.delegationCode:
		return LockDelegation, true
	default:
		return "", false
	}
}

// Verify runs lock against tx. For the PoA lock the accepted transition kind
// is returned as well. Rejections carry a clerk.Reason; any other error means
// the lock could not be run at all.
func (r *Runner) Verify(tx *Transaction, lock *clerk.Script) (poa.Kind, error) {
	name, ok := r.LockName(lock)
	if !ok {
		return 0, errors.Wrapf(errUnknownLock, "code hash %v", lock.CodeHash)
	}

	start := time.Now()
	kind, err := r.verify(tx, lock, name)
	metricVerifyTime().ObserveWithLabels(time.Since(start).Microseconds(), map[string]string{"lock": name})
	metricVerifications().AddWithLabel(1, map[string]string{"lock": name, "result": resultLabel(err)})
	metricHashCacheSize().Set(int64(r.hashes.Len()))

	if err != nil {
		logger.Debug("verification rejected", "lock", name, "exit", clerk.ExitCode(err), "err", err)
		return 0, err
	}
	if kind != 0 {
		logger.Trace("verification accepted", "lock", name, "kind", kind)
	} else {
		logger.Trace("verification accepted", "lock", name)
	}
	return kind, nil
}

// Run runs lock against tx and returns the script exit code.
func (r *Runner) Run(tx *Transaction, lock *clerk.Script) int8 {
	_, err := r.Verify(tx, lock)
	return clerk.ExitCode(err)
}

func (r *Runner) verify(tx *Transaction, lock *clerk.Script, name string) (poa.Kind, error) {
	lockHash := r.hash(lock)
	g := r.group(tx, lockHash)
	if len(g.inputs) == 0 {
		return 0, errors.Wrapf(errNotInInputs, "lock %v", lockHash.AbbrevString())
	}

	switch name {
	case LockPoA:
		return r.verifyPoA(tx, lock, g)
	default:
		return 0, delegation.Verify(lock.Args, r.signers(tx))
	}
}

func resultLabel(err error) string {
	if err == nil {
		return "accept"
	}
	if reason, ok := clerk.ReasonOf(err); ok {
		return strings.ReplaceAll(reason.String(), " ", "_")
	}
	return "host_failure"
}
