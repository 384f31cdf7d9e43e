// Package confirm provides the confirmation gate implementations: an
// interactive console gate and a non-blocking gate for unattended runs.
package confirm

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/arthur-debert/hostup/pkg/errors"
	"github.com/arthur-debert/hostup/pkg/types"
)

// ConsoleGate asks for confirmation on the terminal. Empty input yields
// the request's default; "y"/"yes" approves; anything else declines.
type ConsoleGate struct {
	in  *bufio.Reader
	out io.Writer
}

// NewConsoleGate creates a gate reading from stdin and writing to stdout
func NewConsoleGate() *ConsoleGate {
	return NewConsoleGateWith(os.Stdin, os.Stdout)
}

// NewConsoleGateWith creates a gate with explicit streams, used by tests
func NewConsoleGateWith(in io.Reader, out io.Writer) *ConsoleGate {
	return &ConsoleGate{in: bufio.NewReader(in), out: out}
}

// Confirm implements types.Confirmer
func (g *ConsoleGate) Confirm(req types.ConfirmationRequest) (bool, error) {
	if req.Description != "" {
		fmt.Fprintln(g.out, req.Description)
	}

	hint := "[y/N]"
	if req.Default {
		hint = "[Y/n]"
	}
	fmt.Fprintf(g.out, "%s %s: ", req.Title, hint)

	line, err := g.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, errors.Wrap(err, errors.ErrInternal, "failed to read confirmation input")
	}

	answer := strings.ToLower(strings.TrimSpace(line))
	switch answer {
	case "":
		return req.Default, nil
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// AssumeGate answers every confirmation from the request's default without
// blocking. This is what makes unattended automation possible; the
// interactive scripts this replaces could not do that.
type AssumeGate struct{}

// NewAssumeGate creates a non-interactive gate
func NewAssumeGate() *AssumeGate {
	return &AssumeGate{}
}

// Confirm implements types.Confirmer
func (g *AssumeGate) Confirm(req types.ConfirmationRequest) (bool, error) {
	return req.Default, nil
}
