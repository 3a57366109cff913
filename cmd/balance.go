package cmd

import (
	"fmt"

	"github.com/Spydiecy/KalpDrop/wallet"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var balanceCmd = &cobra.Command{
	Use:   "balance [address]",
	Short: "Check a token balance",
	Long: `Check the KalpDrop token balance of an address.

Without an address the account saved with 'kalpdrop account' is used.

Examples:
  kalpdrop balance                  # Balance of your saved account
  kalpdrop balance c7c7894e...      # Balance of another address
  kalpdrop balance --json           # Raw gateway response`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBalance,
}

func runBalance(cmd *cobra.Command, args []string) error {
	manager, spin := newManager()
	defer spin.Close()

	var account string
	if len(args) == 1 {
		account = args[0]
	}

	balance, err := manager.RefreshBalance(cmd.Context(), account)
	if err != nil {
		return failure("Failed to fetch balance. Please try again.", err)
	}

	if jsonOutput {
		return printResponse(manager.State(wallet.OpBalance).Data)
	}

	fmt.Println("💰 Token Balance")
	fmt.Printf("🌐 Network: %s\n", networkLabel(manager.GetCurrentNetwork()))
	fmt.Println()
	fmt.Printf("🪂 Balance: %s tokens\n", color.CyanString(balance.String()))
	fmt.Printf("   📍 Address: %s\n", manager.Account())
	return nil
}
