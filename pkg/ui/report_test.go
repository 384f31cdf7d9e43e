package ui_test

import (
	"testing"

	"github.com/arthur-debert/hostup/pkg/errors"
	"github.com/arthur-debert/hostup/pkg/types"
	"github.com/arthur-debert/hostup/pkg/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input string
		want  ui.Format
		ok    bool
	}{
		{"auto", ui.FormatAuto, true},
		{"", ui.FormatAuto, true},
		{"term", ui.FormatTerminal, true},
		{"terminal", ui.FormatTerminal, true},
		{"text", ui.FormatText, true},
		{"plain", ui.FormatText, true},
		{"yaml", ui.FormatAuto, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ui.ParseFormat(tt.input)
			if tt.ok {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestRenderReportText(t *testing.T) {
	report := types.NewRunReport()
	report.Record("keygen", types.Success())
	report.Record("authorized-key", types.Failed(errors.New(errors.ErrNonZeroExit, "exit status 255")))
	report.MarkAborted("authorized-key")
	report.Finalize()

	out := ui.RenderReport(report, ui.FormatText)
	assert.Contains(t, out, "keygen: success")
	assert.Contains(t, out, "aborted at authorized-key")
}

func TestRenderProgressText(t *testing.T) {
	step := types.Step{ID: "packages"}

	out := ui.RenderProgress(step, types.Skipped(types.SkipDeclinedByUser), ui.FormatText)
	assert.Equal(t, "packages: skipped (declined by user)", out)
}

func TestRenderProgressTerminalShowsSkipReason(t *testing.T) {
	step := types.Step{ID: "packages"}

	out := ui.RenderProgress(step, types.Skipped(types.SkipPreconditionNotMet), ui.FormatTerminal)
	assert.Contains(t, out, "packages")
	assert.Contains(t, out, "precondition not met")
}
