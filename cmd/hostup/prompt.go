package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/arthur-debert/hostup/pkg/config"
)

// promptMissing fills in the parameters a run cannot proceed without by
// asking on the terminal. In non-interactive mode, or when stdin is not a
// terminal, nothing is asked and validation catches what is still missing.
func promptMissing(opts *config.Options) error {
	if opts.NonInteractive {
		return nil
	}
	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return nil
	}
	return promptMissingFrom(opts, os.Stdin, os.Stdout)
}

// promptMissingFrom is the stream-injectable core of promptMissing
func promptMissingFrom(opts *config.Options, in io.Reader, out io.Writer) error {
	reader := bufio.NewReader(in)

	prompt := func(label, current string) (string, error) {
		if current != "" {
			return current, nil
		}
		fmt.Fprintf(out, "%s: ", label)
		line, err := reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return "", err
		}
		return strings.TrimSpace(line), nil
	}

	var err error
	if opts.TargetHost, err = prompt("Target host", opts.TargetHost); err != nil {
		return err
	}
	if opts.TargetUser, err = prompt("Target user", opts.TargetUser); err != nil {
		return err
	}
	if opts.PrivateKeyPath, err = prompt("Private key path", opts.PrivateKeyPath); err != nil {
		return err
	}
	return nil
}
