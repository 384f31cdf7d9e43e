// Package executor runs external commands and maps their exit status into
// typed results. A non-zero exit code is ordinary data here, not an error;
// errors are reserved for the cases where the command could not run at all
// (binary missing, start failure, timeout, cancellation).
package executor

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/arthur-debert/hostup/pkg/errors"
	"github.com/arthur-debert/hostup/pkg/logging"
	"github.com/rs/zerolog"
)

// Command describes one external command invocation
type Command struct {
	Name string
	Args []string

	// Input is fed to the command's stdin when non-empty
	Input string

	// Dir is the working directory, inherited when empty
	Dir string

	// Env entries are appended to the inherited environment
	Env map[string]string

	// Timeout bounds the invocation; zero means no timeout
	Timeout time.Duration
}

// Result captures an invocation that ran to completion
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
	Duration time.Duration
}

// CommandRunner is the interface the step library executes through.
// Tests substitute a fake; production code uses *Executor.
type CommandRunner interface {
	Run(ctx context.Context, cmd Command) (Result, error)
}

// Executor runs commands as subprocesses. It is stateless between calls.
type Executor struct {
	logger zerolog.Logger
	dryRun bool
}

// New creates an executor
func New(dryRun bool) *Executor {
	return &Executor{
		logger: logging.GetLogger("executor"),
		dryRun: dryRun,
	}
}

// Run executes the command and captures its exit status and output.
//
// Error cases, all classified with stable codes:
//   - COMMAND_NOT_FOUND: the binary could not be located
//   - COMMAND_START: the process could not be started
//   - TIMEOUT: cmd.Timeout elapsed; the in-flight process is killed
//   - CANCELED: the caller's context was canceled
//
// A process that starts and exits non-zero returns a Result with the exit
// code and a nil error.
func (e *Executor) Run(ctx context.Context, cmd Command) (Result, error) {
	if cmd.Name == "" {
		return Result{ExitCode: -1}, errors.New(errors.ErrInvalidInput, "command name is empty")
	}

	e.logger.Debug().
		Str("command", cmd.Name).
		Strs("args", cmd.Args).
		Str("dir", cmd.Dir).
		Msg("Executing command")

	if e.dryRun {
		e.logger.Info().
			Str("command", cmd.Name).
			Strs("args", cmd.Args).
			Msg("Dry run mode - command would be executed")
		return Result{ExitCode: 0}, nil
	}

	if _, err := exec.LookPath(cmd.Name); err != nil {
		return Result{ExitCode: -1},
			errors.Wrapf(err, errors.ErrCommandNotFound, "command not found: %s", cmd.Name)
	}

	runCtx := ctx
	var cancel context.CancelFunc
	if cmd.Timeout > 0 {
		runCtx, cancel = context.WithTimeout(ctx, cmd.Timeout)
		defer cancel()
	}

	proc := exec.CommandContext(runCtx, cmd.Name, cmd.Args...)
	if cmd.Dir != "" {
		proc.Dir = cmd.Dir
	}
	if cmd.Input != "" {
		proc.Stdin = strings.NewReader(cmd.Input)
	}

	proc.Env = os.Environ()
	for key, value := range cmd.Env {
		proc.Env = append(proc.Env, fmt.Sprintf("%s=%s", key, value))
	}

	var stdout, stderr bytes.Buffer
	proc.Stdout = &stdout
	proc.Stderr = &stderr

	start := time.Now()
	err := proc.Run()
	result := Result{
		ExitCode: 0,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}

	if err != nil {
		// Timeout and cancellation surface through the context, not the
		// exit code the kernel reports for the killed process.
		if runCtx.Err() == context.DeadlineExceeded {
			return result, errors.Wrapf(err, errors.ErrTimeout,
				"command exceeded timeout of %s: %s", cmd.Timeout, cmd.Name)
		}
		if ctx.Err() == context.Canceled {
			return result, errors.Wrapf(err, errors.ErrCanceled,
				"command canceled: %s", cmd.Name)
		}

		var exitErr *exec.ExitError
		if stderrors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			e.logger.Debug().
				Str("command", cmd.Name).
				Int("exitCode", result.ExitCode).
				Str("stderr", result.Stderr).
				Msg("Command exited non-zero")
			return result, nil
		}

		return result, errors.Wrapf(err, errors.ErrCommandStart,
			"failed to start command: %s", cmd.Name)
	}

	e.logger.Debug().
		Str("command", cmd.Name).
		Dur("duration", result.Duration).
		Msg("Command completed")
	return result, nil
}
