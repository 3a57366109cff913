package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/Spydiecy/KalpDrop/api"
	"github.com/Spydiecy/KalpDrop/config"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or change the kalpdrop configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the resolved configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		gw := cfg.API()
		keySource := "not set"
		switch {
		case os.Getenv(api.EnvAPIKey) != "":
			keySource = api.EnvAPIKey
		case os.Getenv(api.EnvPublicAPIKey) != "":
			keySource = api.EnvPublicAPIKey
		case cfg.Gateway.APIKey != "":
			keySource = "config file"
		}

		fmt.Printf("📁 Config file:  %s\n", cfg.Path())
		fmt.Printf("🌐 Network:      %s\n", networkLabel(gw.Network))
		fmt.Printf("   Gateway:      %s\n", gw.BaseURL)
		fmt.Printf("   Contract:     %s\n", gw.ContractID)
		fmt.Printf("   Blockchain:   %s\n", gw.Blockchain)
		fmt.Printf("   Wallet:       %s\n", gw.WalletAddress)
		fmt.Printf("   Timeout:      %s\n", gw.Timeout)
		fmt.Printf("🔑 API key:      %s (header %s)\n", keySource, gw.APIKeyHeader)
		if cfg.Account != "" {
			fmt.Printf("📍 Account:      %s\n", cfg.Account)
		}
		return nil
	},
}

var configSetKeyCmd = &cobra.Command{
	Use:   "set-key",
	Short: "Store the gateway API key in the config file",
	Long: `Prompt for the Kalp Studio API key and store it in the config file.

Environment variables (KALPDROP_API_KEY, NEXT_PUBLIC_API_KEY) still take
precedence over the stored key.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Print("Enter your Kalp Studio API key: ")
		key, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err != nil {
			return fmt.Errorf("failed to read API key: %w", err)
		}
		fmt.Println() // New line after key input

		apiKey := strings.TrimSpace(string(key))
		if apiKey == "" {
			return fmt.Errorf("API key must not be empty")
		}

		if err := cfg.Set(config.KeyAPIKey, apiKey); err != nil {
			return err
		}
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Printf("✅ API key saved to %s\n", cfg.Path())
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetKeyCmd)
}
