package types

import (
	"fmt"

	"github.com/arthur-debert/hostup/pkg/errors"
)

// OutcomeStatus classifies the result of a step execution
type OutcomeStatus string

const (
	// StatusSuccess means the step's action completed and its postcondition held
	StatusSuccess OutcomeStatus = "success"

	// StatusSkipped means the step never ran its action
	StatusSkipped OutcomeStatus = "skipped"

	// StatusFailed means the action failed or the postcondition did not hold
	StatusFailed OutcomeStatus = "failed"
)

// Skip reasons used by the runner. Stable strings, matched in tests.
const (
	SkipPreconditionNotMet = "precondition not met"
	SkipDeclinedByUser     = "declined by user"
)

// Outcome is the result of executing a single step. It is produced once
// per step execution and never mutated after creation.
type Outcome struct {
	Status OutcomeStatus

	// Reason explains a skip (precondition not met, declined by user)
	Reason string

	// Err classifies a failure. Always a *errors.HostupError carrying one
	// of the outcome error codes, so callers match on a closed set.
	Err error

	// ExitCode is the subprocess exit code for NONZERO_EXIT failures,
	// -1 when no exit code applies.
	ExitCode int
}

// Success returns a successful outcome
func Success() Outcome {
	return Outcome{Status: StatusSuccess, ExitCode: 0}
}

// Skipped returns a skipped outcome with the given reason
func Skipped(reason string) Outcome {
	return Outcome{Status: StatusSkipped, Reason: reason, ExitCode: -1}
}

// Failed returns a failed outcome classified by err
func Failed(err error) Outcome {
	return Outcome{Status: StatusFailed, Err: err, ExitCode: -1}
}

// FailedExit returns a failed outcome carrying a subprocess exit code
func FailedExit(err error, exitCode int) Outcome {
	return Outcome{Status: StatusFailed, Err: err, ExitCode: exitCode}
}

// IsSuccess reports whether the outcome is a success
func (o Outcome) IsSuccess() bool { return o.Status == StatusSuccess }

// IsSkipped reports whether the step was skipped
func (o Outcome) IsSkipped() bool { return o.Status == StatusSkipped }

// IsFailed reports whether the step failed
func (o Outcome) IsFailed() bool { return o.Status == StatusFailed }

// Cause returns the error code classifying a failure, or ErrUnknown
// for non-failure outcomes.
func (o Outcome) Cause() errors.ErrorCode {
	if o.Err == nil {
		return errors.ErrUnknown
	}
	return errors.GetErrorCode(o.Err)
}

// String renders the outcome for report output
func (o Outcome) String() string {
	switch o.Status {
	case StatusSkipped:
		return fmt.Sprintf("skipped (%s)", o.Reason)
	case StatusFailed:
		if o.Err != nil {
			return fmt.Sprintf("failed (%v)", o.Err)
		}
		return "failed"
	default:
		return string(o.Status)
	}
}
