package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Spydiecy/KalpDrop/api"
	"github.com/Spydiecy/KalpDrop/config"
	"github.com/Spydiecy/KalpDrop/logging"
	"github.com/Spydiecy/KalpDrop/wallet"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	version = "1.0.0"

	configPath string
	verbose    bool
	quiet      bool
	jsonOutput bool

	cfg    *config.Config
	logger *zap.SugaredLogger
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:     "kalpdrop",
	Aliases: []string{"kdrop"},
	Short:   "Claim, query and transfer KalpDrop airdrop tokens",
	Long: `KalpDrop is a command-line client for the KalpDrop airdrop token,
deployed on the Kalp blockchain and reached through the Kalp Studio gateway.

Features:
  • Claim airdrop tokens (100 per claim)
  • Check balances and the total claimed supply
  • Transfer tokens between accounts
  • Transaction history per address
  • Testnet and Mainnet gateway networks

Configuration:
  • ~/.kalpdrop/config.yaml (or --config)
  • KALPDROP_* environment variables and a local .env file
  • API key from KALPDROP_API_KEY, NEXT_PUBLIC_API_KEY or 'kalpdrop config set-key'

Examples:
  kalpdrop account c7c7894e...         # Remember your address
  kalpdrop claim                       # Claim 100 tokens
  kalpdrop balance                     # Check your balance
  kalpdrop transfer <from> <to> 10     # Send 10 tokens
  kalpdrop supply                      # Total tokens claimed so far
  kalpdrop network mainnet             # Switch gateway network`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		logger = logging.New(logging.Level(verbose, quiet, cfg.Log.Level))
		logger.Debugw("configuration loaded", "path", cfg.Path(), "network", cfg.Gateway.Network)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// Ctrl-C cancels any in-flight gateway call.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.kalpdrop/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress progress output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print raw gateway responses as JSON")

	// Add subcommands
	rootCmd.AddCommand(claimCmd)
	rootCmd.AddCommand(balanceCmd)
	rootCmd.AddCommand(transferCmd)
	rootCmd.AddCommand(supplyCmd)
	rootCmd.AddCommand(tokenCmd)
	rootCmd.AddCommand(transactionsCmd)
	rootCmd.AddCommand(networkCmd)
	rootCmd.AddCommand(accountCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("KalpDrop v%s\n", version)
	},
}

// newManager wires the gateway client, the contract facade and the wallet
// manager from the loaded configuration. The returned spinner renders the
// pending state of every tracked operation.
func newManager() (*wallet.Manager, *spinner) {
	spin := newSpinner(quiet || jsonOutput)
	client := api.NewClient(cfg.API(), api.WithLogger(logger.Named("api")))
	manager := wallet.NewManager(api.NewContract(client), wallet.Options{
		Account:    cfg.Account,
		ResultPath: cfg.Gateway.ResultPath,
		Logger:     logger.Named("wallet"),
		OnChange:   spin.observe,
	})
	return manager, spin
}
