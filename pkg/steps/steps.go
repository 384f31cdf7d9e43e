// Package steps is the built-in step library: the named units of work the
// orchestrator sequences to bootstrap a host for cluster provisioning.
// Every action is check-before-mutate, so re-running an already-applied
// step reports success without touching the target again.
package steps

import (
	"strings"

	"github.com/arthur-debert/hostup/pkg/executor"
	"github.com/arthur-debert/hostup/pkg/types"
)

// DefaultSequence returns the full bootstrap sequence in execution order.
// Later steps depend on state mutated by earlier ones (the distributed key
// is what lets the playbook reach the node), which is why the runner is
// strictly sequential.
func DefaultSequence(runner executor.CommandRunner) []types.Step {
	return []types.Step{
		NewKeygen(runner),
		NewAuthorizedKey(runner),
		NewPrivateKey(runner),
		NewPackages(runner),
		NewClonePlaybooks(runner),
		NewPlaybook(runner),
	}
}

// quoteSingle wraps s in single quotes for safe embedding in a remote
// shell command line
func quoteSingle(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
