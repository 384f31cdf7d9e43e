package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/hostup/pkg/config"
	"github.com/arthur-debert/hostup/pkg/errors"
	"github.com/arthur-debert/hostup/pkg/executor"
	"github.com/arthur-debert/hostup/pkg/runner"
	"github.com/arthur-debert/hostup/pkg/steps"
	"github.com/arthur-debert/hostup/pkg/types"
	"github.com/arthur-debert/hostup/pkg/ui"
	"github.com/arthur-debert/hostup/pkg/ui/confirm"
)

var (
	flagHost           string
	flagUser           string
	flagKey            string
	flagCopyPrivateKey bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the bootstrap sequence against a target host",
	Long: `Resolves the run parameters from config, environment, flags, and
prompts, then executes the bootstrap steps in order. Each step asks for
confirmation (unless --yes) and an already-applied step detects the
existing state and succeeds without re-mutating the target.

Exits 0 when the run completes, non-zero when a required step fails.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := resolveOptions()
		if err != nil {
			return err
		}

		format := parseFormatFlag().Resolve(os.Stdout)
		env := types.NewEnvironment(opts.EnvironmentMap())
		exec := executor.New(dryRun)

		var gate types.Confirmer
		if opts.NonInteractive {
			gate = confirm.NewAssumeGate()
		} else {
			gate = confirm.NewConsoleGate()
		}

		observer := func(step types.Step, outcome types.Outcome) {
			fmt.Println(ui.RenderProgress(step, outcome, format))
		}

		report := runner.New(gate).
			WithObserver(observer).
			Run(cmd.Context(), steps.DefaultSequence(exec), env)

		fmt.Println()
		fmt.Println(ui.RenderReport(report, format))

		if !report.Complete() {
			return errors.Newf(errors.ErrInternal, "run %s", report.OverallStatus())
		}
		return nil
	},
}

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "List the steps a run would execute",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := resolveOptions()
		if err != nil {
			return err
		}

		env := types.NewEnvironment(opts.EnvironmentMap())
		exec := executor.New(true)

		fmt.Println(formatSectionHeader("planned steps"))
		for _, step := range steps.DefaultSequence(exec) {
			eligible := "would run"
			if step.Precondition != nil && !step.Precondition(env) {
				eligible = "would skip (precondition not met)"
			}
			fmt.Printf("  %s [%s] %s - %s\n",
				formatBold(step.ID), step.Criticality, step.Description, eligible)
		}
		return nil
	},
}

// resolveOptions layers flags and prompts over the loaded config
func resolveOptions() (*config.Options, error) {
	opts, err := config.Load()
	if err != nil {
		return nil, err
	}

	if flagHost != "" {
		opts.TargetHost = flagHost
	}
	if flagUser != "" {
		opts.TargetUser = flagUser
	}
	if flagKey != "" {
		opts.PrivateKeyPath = flagKey
	}
	if flagCopyPrivateKey {
		opts.CopyPrivateKey = true
	}
	if assumeYes {
		opts.NonInteractive = true
	}

	if err := promptMissing(opts); err != nil {
		return nil, err
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return opts, nil
}

func parseFormatFlag() ui.Format {
	format, err := ui.ParseFormat(formatFlag)
	if err != nil {
		return ui.FormatAuto
	}
	return format
}

func init() {
	for _, cmd := range []*cobra.Command{runCmd, planCmd} {
		cmd.Flags().StringVar(&flagHost, "host", "", "Target host to bootstrap")
		cmd.Flags().StringVar(&flagUser, "user", "", "SSH user on the target")
		cmd.Flags().StringVar(&flagKey, "key", "", "Path to the local private key")
		cmd.Flags().BoolVar(&flagCopyPrivateKey, "copy-private-key", false, "Also copy the private key to the target")
	}
}
