package executor

import (
	"github.com/arthur-debert/hostup/pkg/errors"
	"github.com/arthur-debert/hostup/pkg/types"
)

// Classify maps an invocation result into a step outcome. Step actions
// funnel their command results through this so the set of failure causes
// stays closed: executor errors keep their code, a non-zero exit becomes
// NONZERO_EXIT with the code attached.
func Classify(result Result, err error) types.Outcome {
	if err != nil {
		return types.Failed(err)
	}
	if result.ExitCode != 0 {
		return types.FailedExit(
			errors.Newf(errors.ErrNonZeroExit, "exit status %d", result.ExitCode).
				WithDetail("stderr", result.Stderr),
			result.ExitCode)
	}
	return types.Success()
}
