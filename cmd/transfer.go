package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var transferCmd = &cobra.Command{
	Use:   "transfer [from] [to] [amount]",
	Short: "Transfer tokens between accounts",
	Long: `Transfer KalpDrop tokens from one account to another.

The gateway validates the accounts and the amount; kalpdrop only checks
that they are present. Your balance is refreshed after the transfer.

Examples:
  kalpdrop transfer c7c7894e... 5e1f2a3b... 10
  kalpdrop transfer c7c7894e... 5e1f2a3b... 10 --yes   # Skip confirmation`,
	Args: cobra.ExactArgs(3),
	RunE: runTransfer,
}

var assumeYes bool

func init() {
	transferCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Skip the confirmation prompt")
}

func runTransfer(cmd *cobra.Command, args []string) error {
	from, to := strings.TrimSpace(args[0]), strings.TrimSpace(args[1])
	if from == "" || to == "" {
		return fmt.Errorf("both from and to addresses are required")
	}
	value, err := strconv.ParseInt(args[2], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", args[2], err)
	}

	manager, spin := newManager()
	defer spin.Close()

	// with --json stdout carries only the gateway response
	prompt := io.Writer(os.Stdout)
	if jsonOutput {
		prompt = os.Stderr
	} else {
		fmt.Printf("📊 Transfer Details:\n")
		fmt.Printf("   From:    %s\n", from)
		fmt.Printf("   To:      %s\n", to)
		fmt.Printf("   Amount:  %d tokens\n", value)
		fmt.Printf("   Network: %s\n", networkLabel(manager.GetCurrentNetwork()))
	}

	if !assumeYes && !getTransferConfirmation(prompt, manager.IsTestnet()) {
		fmt.Fprintln(prompt, "❌ Transfer cancelled by user")
		return nil
	}

	resp, err := manager.Transfer(cmd.Context(), from, to, value)
	if err != nil {
		return failure("Transfer failed. Please try again.", err)
	}

	if jsonOutput {
		return printResponse(resp)
	}

	success("Transfer completed successfully!")
	fmt.Println()
	printRefreshed(manager)
	return nil
}

func getTransferConfirmation(w io.Writer, testnet bool) bool {
	fmt.Fprintln(w)
	if testnet {
		fmt.Fprintf(w, "⚠️ You are on %s. No real funds move with this transfer.\n", color.YellowString("testnet"))
	} else {
		fmt.Fprintf(w, "🚨 You are on %s. This transfer moves real tokens.\n", color.RedString("mainnet"))
	}

	fmt.Fprintf(w, "Press y to confirm or n to stop (y/n): ")

	var response string
	fmt.Scanln(&response)

	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes"
}
