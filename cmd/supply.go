package cmd

import (
	"fmt"

	"github.com/Spydiecy/KalpDrop/wallet"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var supplyCmd = &cobra.Command{
	Use:   "supply",
	Short: "Show the total number of tokens claimed",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		manager, spin := newManager()
		defer spin.Close()

		supply, err := manager.RefreshSupply(cmd.Context())
		if err != nil {
			return failure("Failed to fetch total supply. Please try again.", err)
		}

		if jsonOutput {
			return printResponse(manager.State(wallet.OpSupply).Data)
		}

		fmt.Printf("📦 Total claimed: %s tokens\n", color.CyanString(supply.String()))
		fmt.Printf("🌐 Network: %s\n", networkLabel(manager.GetCurrentNetwork()))
		return nil
	},
}
