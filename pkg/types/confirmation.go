package types

// ConfirmationRequest represents a request for user confirmation before
// executing a step
type ConfirmationRequest struct {
	// ID is the step identifier the confirmation relates to
	ID string

	// Title is a brief, user-friendly question describing what will happen
	Title string

	// Description provides detailed information about the effect
	Description string

	// Default indicates the response used when the user just presses
	// enter, and the response returned outright in non-interactive mode.
	// true = "yes", false = "no".
	Default bool
}

// Confirmer is the confirmation gate the runner asks before executing a
// step. Implementations may block for interactive input or answer
// immediately from the default (unattended mode).
type Confirmer interface {
	Confirm(req ConfirmationRequest) (bool, error)
}
