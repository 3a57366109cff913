package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Show token name, symbol and total supply",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		manager, spin := newManager()
		defer spin.Close()

		info, err := manager.TokenInfo(cmd.Context())
		if err != nil {
			return failure("Failed to fetch token info. Please try again.", err)
		}

		if jsonOutput {
			return printJSON(info)
		}

		gw := manager.Config()
		fmt.Println("🪙 Token")
		fmt.Printf("   Name:          %s\n", color.CyanString(info.Name))
		fmt.Printf("   Symbol:        %s\n", color.CyanString(info.Symbol))
		fmt.Printf("   Total claimed: %s\n", info.TotalSupply.String())
		fmt.Printf("   Contract:      %s\n", gw.ContractID)
		fmt.Printf("   Network:       %s\n", networkLabel(gw.Network))
		return nil
	},
}
