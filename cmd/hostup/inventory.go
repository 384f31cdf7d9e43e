package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/hostup/pkg/errors"
	"github.com/arthur-debert/hostup/pkg/inventory"
)

var (
	flagOutputs      string
	flagInventoryOut string
	flagSSHUser      string
	flagSSHKey       string
)

var inventoryCmd = &cobra.Command{
	Use:   "inventory",
	Short: "Generate a Kubespray inventory from terraform outputs",
	Long: `Reads the JSON produced by "terraform output -json" (or tofu) and
writes a Kubespray-compatible hosts.yaml. Control-plane, worker, and
bastion hosts are discovered from the usual output names; missing
hostnames are synthesized and missing values reported as warnings.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(flagOutputs)
		if err != nil {
			return errors.Wrapf(err, errors.ErrInventoryOutputs,
				"failed to open outputs file %s", flagOutputs)
		}
		defer f.Close()

		outputs, err := inventory.LoadOutputs(f)
		if err != nil {
			return err
		}

		inv, err := inventory.Build(outputs, flagSSHUser, flagSSHKey)
		if err != nil {
			return err
		}

		if err := inv.Write(flagInventoryOut); err != nil {
			return err
		}

		fmt.Printf("Inventory written to %s\n", flagInventoryOut)
		if len(inv.Warnings) > 0 {
			fmt.Println(formatSectionHeader("warnings"))
			for _, w := range inv.Warnings {
				fmt.Printf("  - %s\n", w)
			}
		}
		return nil
	},
}

func init() {
	inventoryCmd.Flags().StringVarP(&flagOutputs, "outputs", "o", "", "Path to terraform/tofu outputs JSON (terraform output -json)")
	inventoryCmd.Flags().StringVar(&flagInventoryOut, "out", "inventory/mycluster/hosts.yaml", "Output inventory YAML path")
	inventoryCmd.Flags().StringVarP(&flagSSHUser, "user", "u", "ubuntu", "SSH user for Ansible")
	inventoryCmd.Flags().StringVarP(&flagSSHKey, "key", "k", "~/.ssh/id_ed25519", "Path to the private SSH key for Ansible")
	_ = inventoryCmd.MarkFlagRequired("outputs")
}
