package types_test

import (
	"testing"

	"github.com/arthur-debert/hostup/pkg/errors"
	"github.com/arthur-debert/hostup/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunReportOrdering(t *testing.T) {
	report := types.NewRunReport()
	report.Record("keygen", types.Success())
	report.Record("authorized-key", types.Skipped(types.SkipDeclinedByUser))
	report.Record("packages", types.Success())
	report.Finalize()

	entries := report.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, "keygen", entries[0].StepID)
	assert.Equal(t, "authorized-key", entries[1].StepID)
	assert.Equal(t, "packages", entries[2].StepID)
	assert.True(t, report.Complete())
	assert.Equal(t, "complete", report.OverallStatus())
}

func TestRunReportAborted(t *testing.T) {
	report := types.NewRunReport()
	report.Record("authorized-key", types.Failed(errors.New(errors.ErrCommandNotFound, "ssh not found")))
	report.MarkAborted("authorized-key")
	report.Finalize()

	assert.False(t, report.Complete())
	assert.Equal(t, "authorized-key", report.AbortedAt())
	assert.Equal(t, "aborted at authorized-key", report.OverallStatus())
}

func TestRunReportFrozenAfterFinalize(t *testing.T) {
	report := types.NewRunReport()
	report.Record("keygen", types.Success())
	report.Finalize()

	report.Record("late", types.Success())
	report.MarkAborted("late")

	assert.Len(t, report.Entries(), 1)
	assert.True(t, report.Complete())
}

func TestRunReportSummarize(t *testing.T) {
	report := types.NewRunReport()
	report.Record("keygen", types.Success())
	report.Record("private-key", types.Skipped(types.SkipPreconditionNotMet))
	report.Finalize()

	summary := report.Summarize()
	assert.Contains(t, summary, "keygen: success")
	assert.Contains(t, summary, "private-key: skipped (precondition not met)")
	assert.Contains(t, summary, "complete")
}
