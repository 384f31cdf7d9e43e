package types

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// ReportEntry is one (step, outcome) pair recorded during a run
type ReportEntry struct {
	StepID  string
	Outcome Outcome
}

// RunReport is the ordered record of a run. Entries are appended in
// execution order and the report is frozen when the run ends. Steps after
// a fatal abort get no entry; the report never synthesizes them.
type RunReport struct {
	entries   []ReportEntry
	abortedAt string
	finalized bool
}

// NewRunReport creates an empty report
func NewRunReport() *RunReport {
	return &RunReport{}
}

// Record appends an outcome for a step. Appends after finalization are
// dropped so a late write cannot corrupt a frozen report.
func (r *RunReport) Record(stepID string, outcome Outcome) {
	if r.finalized {
		return
	}
	r.entries = append(r.entries, ReportEntry{StepID: stepID, Outcome: outcome})
}

// MarkAborted records that the run aborted at the given step
func (r *RunReport) MarkAborted(stepID string) {
	if r.finalized {
		return
	}
	r.abortedAt = stepID
}

// Finalize freezes the report
func (r *RunReport) Finalize() {
	r.finalized = true
}

// Entries returns a copy of the recorded entries in execution order
func (r *RunReport) Entries() []ReportEntry {
	out := make([]ReportEntry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Complete reports whether every required step succeeded or was skipped
func (r *RunReport) Complete() bool {
	return r.abortedAt == ""
}

// AbortedAt returns the identifier of the step the run aborted at,
// or the empty string for a complete run.
func (r *RunReport) AbortedAt() string {
	return r.abortedAt
}

// OverallStatus returns "complete" or "aborted at <identifier>"
func (r *RunReport) OverallStatus() string {
	if r.Complete() {
		return "complete"
	}
	return fmt.Sprintf("aborted at %s", r.abortedAt)
}

// Failures aggregates the errors of every failed entry, nil when none
// failed. A complete run can still carry failures from optional steps;
// callers use this to surface them without treating the run as aborted.
func (r *RunReport) Failures() error {
	var result *multierror.Error
	for _, entry := range r.entries {
		if entry.Outcome.IsFailed() && entry.Outcome.Err != nil {
			result = multierror.Append(result,
				fmt.Errorf("%s: %w", entry.StepID, entry.Outcome.Err))
		}
	}
	return result.ErrorOrNil()
}

// Summarize renders the report as text: one line per recorded entry in
// execution order, then the overall status. This is the single source of
// truth presented at the end of a run.
func (r *RunReport) Summarize() string {
	var b strings.Builder
	for _, entry := range r.entries {
		fmt.Fprintf(&b, "%s: %s\n", entry.StepID, entry.Outcome)
	}
	b.WriteString(r.OverallStatus())
	return b.String()
}
