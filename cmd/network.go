package cmd

import (
	"fmt"
	"strings"

	"github.com/Spydiecy/KalpDrop/api"
	"github.com/Spydiecy/KalpDrop/config"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var networkCmd = &cobra.Command{
	Use:   "network [mainnet|testnet]",
	Short: "Show or change network",
	Long: `Show the current gateway network or switch between mainnet and testnet.

The network is sent with every gateway request together with the
blockchain and the gateway wallet address.

Examples:
  kalpdrop network            # Show current network
  kalpdrop network mainnet    # Switch to mainnet
  kalpdrop network testnet    # Switch to testnet`,
	Args: cobra.MaximumNArgs(1),
	RunE: runNetwork,
}

func runNetwork(cmd *cobra.Command, args []string) error {
	// If no arguments provided, show current network
	if len(args) == 0 {
		return showCurrentNetwork()
	}

	network := strings.ToUpper(strings.TrimSpace(args[0]))

	// Validate network argument
	if network != api.NetworkMainnet && network != api.NetworkTestnet {
		return fmt.Errorf("invalid network: %s. Use 'mainnet' or 'testnet'", args[0])
	}

	return setNetwork(network)
}

func showCurrentNetwork() error {
	gw := cfg.API()

	fmt.Printf("🌐 Current network: %s\n", networkLabel(gw.Network))
	fmt.Println()
	fmt.Println("Network details:")
	fmt.Printf("   - Gateway:    %s\n", gw.BaseURL)
	fmt.Printf("   - Blockchain: %s\n", gw.Blockchain)
	fmt.Printf("   - Contract:   %s\n", gw.ContractID)
	fmt.Printf("   - Wallet:     %s\n", gw.WalletAddress)
	if gw.Network == api.NetworkMainnet {
		fmt.Println()
		fmt.Println("⚠️  Warning: transfers on mainnet move real tokens")
	}
	return nil
}

func setNetwork(network string) error {
	if err := cfg.Set(config.KeyNetwork, network); err != nil {
		return err
	}
	if err := cfg.Save(); err != nil {
		return err
	}

	fmt.Printf("🌐 Switched to %s network\n", network)
	fmt.Println()
	if network == api.NetworkTestnet {
		fmt.Println("⚠️  You are now on TESTNET mode")
		fmt.Println("   Claims and transfers use test tokens")
	} else {
		fmt.Printf("✅ You are now on %s mode\n", color.GreenString("MAINNET"))
		fmt.Println("   Transfers move real tokens")
	}
	fmt.Printf("💡 Saved to %s\n", cfg.Path())
	return nil
}
