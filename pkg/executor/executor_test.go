// pkg/executor/executor_test.go
// TEST TYPE: Integration Test (runs real subprocesses)
// DEPENDENCIES: /bin/sh
// PURPOSE: Test exit-code capture, output capture, and error classification

package executor_test

import (
	"context"
	"testing"
	"time"

	"github.com/arthur-debert/hostup/pkg/errors"
	"github.com/arthur-debert/hostup/pkg/executor"
	"github.com/arthur-debert/hostup/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunCapturesExitAndOutput(t *testing.T) {
	e := executor.New(false)

	result, err := e.Run(context.Background(), executor.Command{
		Name: "sh",
		Args: []string{"-c", "echo out; echo err >&2; exit 0"},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, result.ExitCode)
	assert.Equal(t, "out\n", result.Stdout)
	assert.Equal(t, "err\n", result.Stderr)
}

func TestRunNonZeroExitIsNotAnError(t *testing.T) {
	e := executor.New(false)

	result, err := e.Run(context.Background(), executor.Command{
		Name: "sh",
		Args: []string{"-c", "exit 3"},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, result.ExitCode)
}

func TestRunCommandNotFound(t *testing.T) {
	e := executor.New(false)

	_, err := e.Run(context.Background(), executor.Command{
		Name: "hostup-no-such-binary",
	})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrCommandNotFound))
}

func TestRunTimeout(t *testing.T) {
	e := executor.New(false)

	_, err := e.Run(context.Background(), executor.Command{
		Name:    "sh",
		Args:    []string{"-c", "sleep 5"},
		Timeout: 50 * time.Millisecond,
	})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrTimeout))
}

func TestRunCanceled(t *testing.T) {
	e := executor.New(false)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	_, err := e.Run(ctx, executor.Command{
		Name: "sh",
		Args: []string{"-c", "sleep 5"},
	})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrCanceled))
}

func TestRunStdin(t *testing.T) {
	e := executor.New(false)

	result, err := e.Run(context.Background(), executor.Command{
		Name:  "sh",
		Args:  []string{"-c", "cat"},
		Input: "ssh-ed25519 AAAA key@host\n",
	})
	require.NoError(t, err)
	assert.Equal(t, "ssh-ed25519 AAAA key@host\n", result.Stdout)
}

func TestRunDryRun(t *testing.T) {
	e := executor.New(true)

	result, err := e.Run(context.Background(), executor.Command{
		Name: "hostup-no-such-binary",
		Args: []string{"--destroy-everything"},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, result.ExitCode)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		result     executor.Result
		err        error
		wantStatus types.OutcomeStatus
		wantCause  errors.ErrorCode
		wantExit   int
	}{
		{
			name:       "success",
			result:     executor.Result{ExitCode: 0},
			wantStatus: types.StatusSuccess,
			wantExit:   0,
		},
		{
			name:       "nonzero_exit",
			result:     executor.Result{ExitCode: 2, Stderr: "permission denied"},
			wantStatus: types.StatusFailed,
			wantCause:  errors.ErrNonZeroExit,
			wantExit:   2,
		},
		{
			name:       "executor_error_keeps_code",
			err:        errors.New(errors.ErrCommandNotFound, "no ssh"),
			wantStatus: types.StatusFailed,
			wantCause:  errors.ErrCommandNotFound,
			wantExit:   -1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome := executor.Classify(tt.result, tt.err)
			assert.Equal(t, tt.wantStatus, outcome.Status)
			assert.Equal(t, tt.wantExit, outcome.ExitCode)
			if tt.wantStatus == types.StatusFailed {
				assert.Equal(t, tt.wantCause, outcome.Cause())
			}
		})
	}
}
