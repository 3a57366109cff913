package cmd

import (
	"fmt"
	"strings"

	"github.com/Spydiecy/KalpDrop/config"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var accountCmd = &cobra.Command{
	Use:   "account [address]",
	Short: "Show or set your default account",
	Long: `Show or set the address used when claim, balance and transactions
are run without an address.

Examples:
  kalpdrop account                # Show saved account
  kalpdrop account c7c7894e...    # Save account`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			if cfg.Account == "" {
				fmt.Println("📍 No account saved. Run 'kalpdrop account <address>' to set one")
				return nil
			}
			fmt.Printf("📍 Account: %s\n", color.CyanString(cfg.Account))
			return nil
		}

		address := strings.TrimSpace(args[0])
		if address == "" {
			return fmt.Errorf("address must not be empty")
		}
		if err := cfg.Set(config.KeyAccount, address); err != nil {
			return err
		}
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Printf("✅ Account saved: %s\n", color.CyanString(address))
		fmt.Println("💡 Use 'kalpdrop claim' to claim your airdrop")
		return nil
	},
}
