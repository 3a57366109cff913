package cmd

import (
	"fmt"
	"time"

	"github.com/Spydiecy/KalpDrop/api"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	pageFlag  int
	limitFlag int
)

var transactionsCmd = &cobra.Command{
	Use:   "transactions [address]",
	Short: "Show transaction history with pagination",
	Long: `Show claims and transfers recorded by the token contract for an address.

Without an address the account saved with 'kalpdrop account' is used.

Examples:
  kalpdrop transactions                   # Page 1 for your saved account
  kalpdrop transactions --page 2          # Page 2
  kalpdrop transactions c7c7... --limit 5 # 5 entries per page

Pagination: 10 transactions per page by default, newest first`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTransactions,
}

func init() {
	transactionsCmd.Flags().IntVarP(&pageFlag, "page", "p", 1, "Page number")
	transactionsCmd.Flags().IntVarP(&limitFlag, "limit", "l", 10, "Transactions per page (1-20)")
}

func runTransactions(cmd *cobra.Command, args []string) error {
	// Validate pagination parameters
	if pageFlag < 1 {
		return fmt.Errorf("page must be 1 or greater")
	}
	if limitFlag < 1 || limitFlag > 20 {
		return fmt.Errorf("limit must be between 1 and 20")
	}

	manager, spin := newManager()
	defer spin.Close()

	var address string
	if len(args) == 1 {
		address = args[0]
	}

	startTime := time.Now()
	txs, err := manager.History(cmd.Context(), address)
	if err != nil {
		return failure("Failed to load transactions. Please try again.", err)
	}
	if address == "" {
		address = manager.Account()
	}

	pages := pageCount(len(txs), limitFlag)
	if pageFlag > pages {
		return fmt.Errorf("page %d is out of range: %d transactions fit on %d page(s) of %d", pageFlag, len(txs), pages, limitFlag)
	}

	page := applyPagination(txs, (pageFlag-1)*limitFlag, limitFlag)
	if jsonOutput {
		return printJSON(page)
	}

	fmt.Printf("📜 Transaction history (Page %d/%d, %d total):\n", pageFlag, pages, len(txs))
	fmt.Printf("🌐 Network: %s\n", networkLabel(manager.GetCurrentNetwork()))
	fmt.Printf("📍 Address: %s\n", address)
	fmt.Println()

	if len(txs) == 0 {
		fmt.Println("   No transactions found")
	}
	for _, tx := range page {
		displayTransaction(tx, address)
	}

	elapsed := time.Since(startTime)
	fmt.Printf("\n⏱️ Loaded in %v\n", elapsed.Round(time.Millisecond*10))
	return nil
}

func displayTransaction(tx api.Transaction, address string) {
	when := "unknown time"
	if tx.Time > 0 {
		when = time.Unix(tx.Time, 0).Format("2006-01-02 15:04:05")
	}

	switch {
	case tx.To == address && tx.From != address:
		fmt.Printf("⬇️  %s %s tokens (%s)\n", color.GreenString("+%d", tx.Amount), tx.Type, when)
		fmt.Printf("   From: %s\n", tx.From)
	default:
		fmt.Printf("⬆️  %s %s tokens (%s)\n", color.RedString("-%d", tx.Amount), tx.Type, when)
		fmt.Printf("   To:   %s\n", tx.To)
	}
}

func applyPagination(txs []api.Transaction, offset, limit int) []api.Transaction {
	if offset >= len(txs) {
		return []api.Transaction{}
	}
	end := offset + limit
	if end > len(txs) {
		end = len(txs)
	}
	return txs[offset:end]
}

// pageCount is the number of pages needed for total entries; an empty
// history still has one (empty) page
func pageCount(total, limit int) int {
	if total <= limit {
		return 1
	}
	return (total + limit - 1) / limit
}
