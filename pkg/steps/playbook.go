package steps

import (
	"context"
	"os"

	"github.com/arthur-debert/hostup/pkg/executor"
	"github.com/arthur-debert/hostup/pkg/types"
)

// NewClonePlaybooks builds the optional step fetching the provisioning
// playbook repository (Kubespray). An existing checkout directory counts
// as already applied.
func NewClonePlaybooks(runner executor.CommandRunner) types.Step {
	return types.Step{
		ID:             "clone-playbooks",
		Description:    "Clone the provisioning playbook repository",
		Criticality:    types.Optional,
		ConfirmDefault: true,
		Precondition: func(env *types.Environment) bool {
			return env.Get(types.KeyPlaybookRepo) != "" && env.Get(types.KeyPlaybookDir) != ""
		},
		Action: func(ctx context.Context, env *types.Environment) types.Outcome {
			dir := env.Get(types.KeyPlaybookDir)
			if _, err := os.Stat(dir); err == nil {
				// Already cloned
				return types.Success()
			}

			args := []string{"clone", "--depth", "1"}
			if ref := env.Get(types.KeyPlaybookRef); ref != "" {
				args = append(args, "--branch", ref)
			}
			args = append(args, env.Get(types.KeyPlaybookRepo), dir)

			return executor.Classify(runner.Run(ctx, executor.Command{
				Name: "git",
				Args: args,
			}))
		},
		Postcondition: func(env *types.Environment) bool {
			_, err := os.Stat(env.Get(types.KeyPlaybookDir))
			return err == nil
		},
	}
}

// NewPlaybook builds the optional step running the provisioning playbook
// against the generated inventory. This is the long-running tail of a
// bootstrap; it gets no timeout.
func NewPlaybook(runner executor.CommandRunner) types.Step {
	return types.Step{
		ID:             "playbook",
		Description:    "Run the provisioning playbook against the inventory",
		Criticality:    types.Optional,
		ConfirmDefault: false,
		Precondition: func(env *types.Environment) bool {
			return env.Get(types.KeyInventoryPath) != "" && env.Get(types.KeyPlaybookFile) != ""
		},
		Action: func(ctx context.Context, env *types.Environment) types.Outcome {
			return executor.Classify(runner.Run(ctx, executor.Command{
				Name: "ansible-playbook",
				Args: []string{
					"-i", env.Get(types.KeyInventoryPath),
					"-b",
					env.Get(types.KeyPlaybookFile),
				},
				Dir: env.Get(types.KeyPlaybookDir),
			}))
		},
	}
}
