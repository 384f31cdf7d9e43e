package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/hostup/pkg/config"
	"github.com/arthur-debert/hostup/pkg/errors"
)

var flagConfigWrite string

var genconfigCmd = &cobra.Command{
	Use:   "genconfig",
	Short: "Generate a config file with all options commented out",
	Long: `Prints (or writes with --write) a hostup.toml where every option is
present but commented out with its default value, so you uncomment only
what you change.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		content := config.GenerateConfigContent()

		if flagConfigWrite == "" {
			fmt.Print(content)
			return nil
		}

		if _, err := os.Stat(flagConfigWrite); err == nil {
			return errors.Newf(errors.ErrInvalidInput,
				"refusing to overwrite existing file %s", flagConfigWrite)
		}
		if err := os.WriteFile(flagConfigWrite, []byte(content), 0644); err != nil {
			return errors.Wrapf(err, errors.ErrInternal,
				"failed to write config to %s", flagConfigWrite)
		}
		fmt.Printf("Config written to %s\n", flagConfigWrite)
		return nil
	},
}

func init() {
	genconfigCmd.Flags().StringVar(&flagConfigWrite, "write", "", "Write the generated config to this path instead of stdout")
}
