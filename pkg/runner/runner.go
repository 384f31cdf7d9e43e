// Package runner sequences steps against a single target. One runner
// processes one step at a time; running two orchestrations against the
// same target concurrently is unsupported and left to the caller to
// serialize.
package runner

import (
	"context"

	"github.com/arthur-debert/hostup/pkg/errors"
	"github.com/arthur-debert/hostup/pkg/logging"
	"github.com/arthur-debert/hostup/pkg/types"
	"github.com/rs/zerolog"
)

// Observer is notified after each step's outcome is recorded, so a long
// run's progress is visible before the final report.
type Observer func(step types.Step, outcome types.Outcome)

// Runner owns the step sequence, the environment, and the report for the
// duration of one run.
type Runner struct {
	confirmer types.Confirmer
	observer  Observer
	logger    zerolog.Logger
}

// New creates a runner using the given confirmation gate
func New(confirmer types.Confirmer) *Runner {
	return &Runner{
		confirmer: confirmer,
		logger:    logging.GetLogger("runner"),
	}
}

// WithObserver sets the per-step progress callback
func (r *Runner) WithObserver(observer Observer) *Runner {
	r.observer = observer
	return r
}

// Run executes the steps in order and returns the finalized report.
//
// Per step: an unmet precondition skips it without confirmation; a
// declined confirmation skips it even when required; a successful action
// whose postcondition does not hold is downgraded to failed. A failed
// required step aborts the run; steps after the abort get no report
// entry. A failed optional step never aborts.
//
// Cancellation stops the run between steps, so the report always holds a
// consistent prefix of what actually executed.
func (r *Runner) Run(ctx context.Context, steps []types.Step, env *types.Environment) *types.RunReport {
	report := types.NewRunReport()
	defer report.Finalize()

	for _, step := range steps {
		if ctx.Err() != nil {
			r.logger.Warn().Str("step", step.ID).Msg("Run canceled")
			report.MarkAborted(step.ID)
			break
		}

		outcome := r.runStep(ctx, step, env)
		report.Record(step.ID, outcome)

		if r.observer != nil {
			r.observer(step, outcome)
		}

		if outcome.IsFailed() && step.IsRequired() {
			r.logger.Error().
				Str("step", step.ID).
				Err(outcome.Err).
				Msg("Required step failed, aborting run")
			report.MarkAborted(step.ID)
			break
		}
	}

	return report
}

func (r *Runner) runStep(ctx context.Context, step types.Step, env *types.Environment) types.Outcome {
	logger := r.logger.With().Str("step", step.ID).Logger()

	if step.Precondition != nil && !step.Precondition(env) {
		logger.Info().Msg("Precondition not met, skipping")
		return types.Skipped(types.SkipPreconditionNotMet)
	}

	approved, err := r.confirmer.Confirm(types.ConfirmationRequest{
		ID:      step.ID,
		Title:   step.Description,
		Default: step.ConfirmDefault,
	})
	if err != nil {
		return types.Failed(errors.Wrapf(err, errors.ErrInternal,
			"confirmation failed for step %s", step.ID))
	}
	if !approved {
		logger.Info().Msg("Declined by user, skipping")
		return types.Skipped(types.SkipDeclinedByUser)
	}

	logger.Debug().Msg("Running step action")
	outcome := step.Action(ctx, env)

	if outcome.IsSuccess() && step.Postcondition != nil && !step.Postcondition(env) {
		logger.Warn().Msg("Postcondition check failed after successful action")
		return types.Failed(errors.Newf(errors.ErrPostconditionFailed,
			"postcondition check failed for step %s", step.ID))
	}

	return outcome
}
