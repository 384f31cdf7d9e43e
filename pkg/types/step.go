package types

import "context"

// Criticality determines whether a step's failure aborts the run
type Criticality string

const (
	// Required steps abort the run on failure
	Required Criticality = "required"

	// Optional steps are recorded and the run continues
	Optional Criticality = "optional"
)

// Step is a single named unit of orchestrated work. Steps are immutable
// once constructed; the step library in pkg/steps builds them at
// orchestration-definition time.
//
// Actions must be safely re-runnable: an already-applied step detects the
// existing state and reports success without mutating again
// (check-before-mutate).
type Step struct {
	// ID is unique within a run
	ID string

	// Description is shown in confirmation prompts and progress output
	Description string

	// Criticality is Required or Optional
	Criticality Criticality

	// Precondition gates the step. When it returns false the step is
	// skipped without asking for confirmation. Nil means always eligible.
	Precondition func(env *Environment) bool

	// Action performs the external effect and classifies the result
	Action func(ctx context.Context, env *Environment) Outcome

	// Postcondition re-verifies the effect after a successful action.
	// When it returns false the runner downgrades the outcome to failed.
	// Nil means no verification.
	Postcondition func(env *Environment) bool

	// ConfirmDefault is the answer used for empty interactive input and
	// for the non-interactive gate.
	ConfirmDefault bool
}

// IsRequired reports whether a failure of this step aborts the run
func (s Step) IsRequired() bool {
	return s.Criticality == Required
}
