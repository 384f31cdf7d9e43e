package steps

import (
	"context"
	"os/exec"
	"strings"

	"github.com/arthur-debert/hostup/pkg/errors"
	"github.com/arthur-debert/hostup/pkg/executor"
	"github.com/arthur-debert/hostup/pkg/types"
)

// lookPath is swapped out in tests to control manager detection
var lookPath = exec.LookPath

// packageManagers in detection preference order
var packageManagers = []struct {
	binary string
	args   []string
}{
	{"apt-get", []string{"install", "-y"}},
	{"dnf", []string{"install", "-y"}},
	{"yum", []string{"install", "-y"}},
}

// NewPackages builds the optional step installing the tool dependencies
// (git, ansible, ...) on the local machine through whichever OS package
// manager is present.
func NewPackages(runner executor.CommandRunner) types.Step {
	return types.Step{
		ID:             "packages",
		Description:    "Install required packages via the OS package manager",
		Criticality:    types.Optional,
		ConfirmDefault: true,
		Precondition: func(env *types.Environment) bool {
			return len(packageList(env)) > 0
		},
		Action: func(ctx context.Context, env *types.Environment) types.Outcome {
			return installPackages(ctx, runner, env)
		},
	}
}

func packageList(env *types.Environment) []string {
	return strings.Fields(env.Get(types.KeyPackages))
}

func installPackages(ctx context.Context, runner executor.CommandRunner, env *types.Environment) types.Outcome {
	for _, mgr := range packageManagers {
		if _, err := lookPath(mgr.binary); err != nil {
			continue
		}
		args := append(append([]string{}, mgr.args...), packageList(env)...)
		return executor.Classify(runner.Run(ctx, executor.Command{
			Name: mgr.binary,
			Args: args,
		}))
	}

	return types.Failed(errors.New(errors.ErrCommandNotFound,
		"no supported package manager found (apt-get, dnf, yum)"))
}
