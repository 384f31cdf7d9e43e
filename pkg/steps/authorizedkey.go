package steps

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/arthur-debert/hostup/pkg/errors"
	"github.com/arthur-debert/hostup/pkg/executor"
	"github.com/arthur-debert/hostup/pkg/remote"
	"github.com/arthur-debert/hostup/pkg/types"
)

// NewAuthorizedKey builds the step distributing the local public key to
// the target's authorized_keys. The action probes for the exact key line
// first and appends only when it is absent, so a second run leaves exactly
// one occurrence of the line on the target.
func NewAuthorizedKey(runner executor.CommandRunner) types.Step {
	return types.Step{
		ID:             "authorized-key",
		Description:    "Distribute the public key to the target's authorized_keys",
		Criticality:    types.Required,
		ConfirmDefault: true,
		Precondition: func(env *types.Environment) bool {
			_, err := os.Stat(publicKeyPath(env))
			return err == nil
		},
		Action: func(ctx context.Context, env *types.Environment) types.Outcome {
			return distributePublicKey(ctx, runner, env)
		},
	}
}

func publicKeyPath(env *types.Environment) string {
	return env.Get(types.KeyPrivateKeyPath) + ".pub"
}

func distributePublicKey(ctx context.Context, runner executor.CommandRunner, env *types.Environment) types.Outcome {
	keyBytes, err := os.ReadFile(publicKeyPath(env))
	if err != nil {
		return types.Failed(errors.Wrapf(err, errors.ErrNotFound,
			"failed to read public key %s", publicKeyPath(env)))
	}
	keyLine := strings.TrimSpace(string(keyBytes))

	target := remote.TargetFromEnv(env)

	// Probe for the exact line. grep exits 0 when present, 1 when absent,
	// 2 when authorized_keys does not exist yet.
	probe, err := target.SSH(fmt.Sprintf("grep -qxF %s ~/.ssh/authorized_keys", quoteSingle(keyLine)))
	if err != nil {
		return types.Failed(err)
	}
	probeResult, err := runner.Run(ctx, probe)
	if err != nil {
		return types.Failed(err)
	}
	if probeResult.ExitCode == 0 {
		// Already distributed
		return types.Success()
	}

	appendCmd, err := target.SSH("mkdir -p ~/.ssh && chmod 700 ~/.ssh && cat >> ~/.ssh/authorized_keys && chmod 600 ~/.ssh/authorized_keys")
	if err != nil {
		return types.Failed(err)
	}
	appendCmd.Input = keyLine + "\n"

	return executor.Classify(runner.Run(ctx, appendCmd))
}
