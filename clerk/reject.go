// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package clerk

import (
	"fmt"

	"github.com/pkg/errors"
)

// Reason classifies why a lock refused to unlock a cell.
type Reason uint8

// Reject reasons shared by all locks.
const (
	MalformedArgs Reason = iota + 1
	StructuralError
	Backdated
	Unauthorized
	InvalidTransition
	QuorumNotMet
)

// ExitHostFailure is reported when verification could not run at all,
// e.g. the transaction lacks a cell the lock refers to only by host convention.
const ExitHostFailure int8 = 1

func (r Reason) String() string {
	switch r {
	case MalformedArgs:
		return "malformed args"
	case StructuralError:
		return "structural error"
	case Backdated:
		return "backdated"
	case Unauthorized:
		return "unauthorized"
	case InvalidTransition:
		return "invalid transition"
	case QuorumNotMet:
		return "quorum not met"
	default:
		return fmt.Sprintf("reason(%d)", uint8(r))
	}
}

// ExitCode maps the reason to the script exit code seen by the host.
func (r Reason) ExitCode() int8 {
	switch r {
	case StructuralError:
		return -1
	case MalformedArgs:
		return -2
	case Backdated:
		return -3
	case Unauthorized:
		return -4
	case InvalidTransition:
		return -5
	case QuorumNotMet:
		return -6
	default:
		return ExitHostFailure
	}
}

// RejectError is the terminal result of a failed verification.
type RejectError struct {
	Reason Reason
	msg    string
}

func (e *RejectError) Error() string {
	return e.Reason.String() + ": " + e.msg
}

// Reject creates a RejectError.
func Reject(reason Reason, format string, args ...any) error {
	return &RejectError{
		Reason: reason,
		msg:    fmt.Sprintf(format, args...),
	}
}

// ReasonOf extracts the reject reason carried by err, looking through wrappers.
func ReasonOf(err error) (Reason, bool) {
	var re *RejectError
	if errors.As(err, &re) {
		return re.Reason, true
	}
	return 0, false
}

// IsReason reports whether err carries the given reject reason.
func IsReason(err error, reason Reason) bool {
	r, ok := ReasonOf(err)
	return ok && r == reason
}

// ExitCode maps a verification result to the script exit code.
// nil is accept (0); unclassified errors are host failures.
func ExitCode(err error) int8 {
	if err == nil {
		return 0
	}
	if r, ok := ReasonOf(err); ok {
		return r.ExitCode()
	}
	return ExitHostFailure
}
