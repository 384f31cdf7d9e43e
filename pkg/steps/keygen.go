package steps

import (
	"context"
	"fmt"
	"os"

	"github.com/arthur-debert/hostup/pkg/executor"
	"github.com/arthur-debert/hostup/pkg/types"
)

// NewKeygen builds the step generating the local keypair when the
// configured private key does not exist yet. Key generation itself is
// delegated to ssh-keygen; this step only decides whether to invoke it.
func NewKeygen(runner executor.CommandRunner) types.Step {
	return types.Step{
		ID:             "keygen",
		Description:    "Generate a local ed25519 keypair",
		Criticality:    types.Required,
		ConfirmDefault: true,
		Precondition: func(env *types.Environment) bool {
			_, err := os.Stat(env.Get(types.KeyPrivateKeyPath))
			return os.IsNotExist(err)
		},
		Action: func(ctx context.Context, env *types.Environment) types.Outcome {
			keyPath := env.Get(types.KeyPrivateKeyPath)
			comment := fmt.Sprintf("hostup:%s@%s",
				env.Get(types.KeyTargetUser), env.Get(types.KeyTargetHost))

			return executor.Classify(runner.Run(ctx, executor.Command{
				Name: "ssh-keygen",
				Args: []string{"-t", "ed25519", "-f", keyPath, "-N", "", "-C", comment},
			}))
		},
		Postcondition: func(env *types.Environment) bool {
			_, err := os.Stat(env.Get(types.KeyPrivateKeyPath))
			return err == nil
		},
	}
}
