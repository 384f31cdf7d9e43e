// Package ui renders run progress and the final report for the terminal,
// falling back to plain text when the output is piped or colorless.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pterm/pterm"

	"github.com/arthur-debert/hostup/pkg/types"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
	abortedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
)

// outcomeStyle returns the pterm style for an outcome status
func outcomeStyle(status types.OutcomeStatus) *pterm.Style {
	switch status {
	case types.StatusSuccess:
		return pterm.NewStyle(pterm.FgGreen)
	case types.StatusFailed:
		return pterm.NewStyle(pterm.FgRed)
	default:
		return pterm.NewStyle(pterm.FgGray)
	}
}

func outcomeMarker(status types.OutcomeStatus) string {
	switch status {
	case types.StatusSuccess:
		return "ok"
	case types.StatusFailed:
		return "failed"
	default:
		return "skipped"
	}
}

// RenderProgress returns a line reporting one step's outcome, printed as
// soon as the step finishes
func RenderProgress(step types.Step, outcome types.Outcome, format Format) string {
	if format == FormatTerminal {
		marker := outcomeStyle(outcome.Status).Sprint(outcomeMarker(outcome.Status))
		line := fmt.Sprintf("[%s] %s", marker, step.ID)
		if outcome.IsSkipped() {
			line += fmt.Sprintf(" (%s)", outcome.Reason)
		}
		return line
	}
	return fmt.Sprintf("%s: %s", step.ID, outcome)
}

// RenderReport renders the final run report
func RenderReport(report *types.RunReport, format Format) string {
	if format != FormatTerminal {
		return report.Summarize()
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render("Run report"))
	b.WriteString("\n")

	for _, entry := range report.Entries() {
		style := outcomeStyle(entry.Outcome.Status)
		fmt.Fprintf(&b, "  %s %s\n", style.Sprint(entry.Outcome.String()), entry.StepID)
	}

	if report.Complete() {
		b.WriteString(pterm.NewStyle(pterm.FgGreen, pterm.Bold).Sprint("complete"))
	} else {
		b.WriteString(abortedStyle.Render(report.OverallStatus()))
	}
	return b.String()
}
