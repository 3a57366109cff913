package cmd

import (
	"fmt"

	"github.com/Spydiecy/KalpDrop/api"
	"github.com/Spydiecy/KalpDrop/wallet"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var claimCmd = &cobra.Command{
	Use:   "claim [address]",
	Short: "Claim airdrop tokens",
	Long: fmt.Sprintf(`Claim %d KalpDrop tokens for an address.

Without an address the account saved with 'kalpdrop account' is used.
After a successful claim the total supply and your balance are refreshed.

Examples:
  kalpdrop claim                 # Claim for your saved account
  kalpdrop claim c7c7894e...     # Claim for another address`, api.ClaimAmount),
	Args: cobra.MaximumNArgs(1),
	RunE: runClaim,
}

func runClaim(cmd *cobra.Command, args []string) error {
	manager, spin := newManager()
	defer spin.Close()

	address := manager.Account()
	if len(args) == 1 {
		address = args[0]
	}

	resp, err := manager.Claim(cmd.Context(), address)
	if err != nil {
		return failure("Failed to claim airdrop. Please try again.", err)
	}

	if jsonOutput {
		return printResponse(resp)
	}

	success("Airdrop claimed successfully!")
	fmt.Printf("🪂 Claimed: %s tokens\n", color.CyanString("%d", api.ClaimAmount))
	fmt.Printf("   📍 Address: %s\n", address)
	fmt.Println()
	printRefreshed(manager)
	return nil
}

// printRefreshed shows the balance and supply refreshed after an invoke; a
// refresh that failed is reported without failing the command
func printRefreshed(manager *wallet.Manager) {
	if st := manager.State(wallet.OpBalance); st.Err != nil {
		fmt.Printf("⚠️  Balance: %s\n", color.YellowString("Failed to fetch balance"))
	} else if st.Seq > 0 {
		fmt.Printf("💰 Balance: %s tokens\n", manager.Balance().String())
	}
	if st := manager.State(wallet.OpSupply); st.Err != nil {
		fmt.Printf("⚠️  Total claimed: %s\n", color.YellowString("Failed to fetch total supply"))
	} else if st.Seq > 0 {
		fmt.Printf("📦 Total claimed: %s tokens\n", manager.TotalSupply().String())
	}
}
