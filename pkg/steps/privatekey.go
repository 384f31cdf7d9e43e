package steps

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/arthur-debert/hostup/pkg/errors"
	"github.com/arthur-debert/hostup/pkg/executor"
	"github.com/arthur-debert/hostup/pkg/remote"
	"github.com/arthur-debert/hostup/pkg/types"
)

// NewPrivateKey builds the optional step copying the private key itself to
// the target, for targets that need to hop onward (a bastion reaching
// internal nodes). Defaults to declined; the key leaves the local machine
// only on explicit approval.
func NewPrivateKey(runner executor.CommandRunner) types.Step {
	return types.Step{
		ID:             "private-key",
		Description:    "Copy the private key to the target (for onward hops)",
		Criticality:    types.Optional,
		ConfirmDefault: false,
		Precondition: func(env *types.Environment) bool {
			if !env.GetBool(types.KeyCopyPrivateKey) {
				return false
			}
			_, err := os.Stat(env.Get(types.KeyPrivateKeyPath))
			return err == nil
		},
		Action: func(ctx context.Context, env *types.Environment) types.Outcome {
			return copyPrivateKey(ctx, runner, env)
		},
	}
}

func remoteKeyPath(env *types.Environment) string {
	name := env.Get(types.KeyRemoteKeyFilename)
	if name == "" {
		name = "id_ed25519"
	}
	return "~/.ssh/" + name
}

func copyPrivateKey(ctx context.Context, runner executor.CommandRunner, env *types.Environment) types.Outcome {
	localPath := env.Get(types.KeyPrivateKeyPath)
	remotePath := remoteKeyPath(env)
	target := remote.TargetFromEnv(env)

	localInfo, err := os.Stat(localPath)
	if err != nil {
		return types.Failed(errors.Wrapf(err, errors.ErrNotFound,
			"failed to stat private key %s", localPath))
	}

	// Size probe: when the remote copy already matches, there is nothing
	// to do. wc -c prints nothing useful on a missing file but exits
	// non-zero, which falls through to the copy.
	probe, err := target.SSH(fmt.Sprintf("wc -c < %s", remotePath))
	if err != nil {
		return types.Failed(err)
	}
	probeResult, err := runner.Run(ctx, probe)
	if err != nil {
		return types.Failed(err)
	}
	if probeResult.ExitCode == 0 {
		remoteSize, parseErr := strconv.ParseInt(strings.TrimSpace(probeResult.Stdout), 10, 64)
		if parseErr == nil && remoteSize == localInfo.Size() {
			return types.Success()
		}
	}

	scp, err := target.SCP(localPath, remotePath)
	if err != nil {
		return types.Failed(err)
	}
	if outcome := executor.Classify(runner.Run(ctx, scp)); !outcome.IsSuccess() {
		return outcome
	}

	chmod, err := target.SSH(fmt.Sprintf("chmod 600 %s", remotePath))
	if err != nil {
		return types.Failed(err)
	}
	return executor.Classify(runner.Run(ctx, chmod))
}
