package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"moneylover/internal/core"
)

var txCmd = &cobra.Command{
	Use:   "tx",
	Short: "Transaction operations",
}

var txLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List recent transactions of a wallet",
	RunE: func(cmd *cobra.Command, args []string) error {
		walletID, _ := cmd.Flags().GetString("wallet")
		if walletID == "" {
			return fmt.Errorf("--wallet is required")
		}
		days, _ := cmd.Flags().GetInt("days")
		if days < 1 {
			return fmt.Errorf("--days must be at least 1")
		}

		client := newClient()
		session, err := restoreSession(cmd.Context(), client)
		if err != nil {
			return err
		}

		end := time.Now()
		start := end.AddDate(0, 0, -days)
		txs, err := client.GetTransactions(cmd.Context(), session, walletID, start, end)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "DATE\tAMOUNT\tCATEGORY\tNOTE")
		for _, tx := range txs {
			category := ""
			if tx.Category != nil {
				category = tx.Category.Name
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", tx.Date.Format("2006-01-02"), tx.Amount, category, tx.Note)
		}
		return w.Flush()
	},
}

var txAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a transaction",
	RunE: func(cmd *cobra.Command, args []string) error {
		walletID, _ := cmd.Flags().GetString("wallet")
		categoryID, _ := cmd.Flags().GetString("category")
		amountStr, _ := cmd.Flags().GetString("amount")
		note, _ := cmd.Flags().GetString("note")
		dateStr, _ := cmd.Flags().GetString("date")

		if walletID == "" || categoryID == "" || amountStr == "" {
			return fmt.Errorf("--wallet, --category and --amount are required")
		}
		amount, err := decimal.NewFromString(amountStr)
		if err != nil {
			return fmt.Errorf("invalid amount %q: %w", amountStr, err)
		}

		date := time.Now()
		if dateStr != "" {
			date, err = time.Parse("2006-01-02", dateStr)
			if err != nil {
				return fmt.Errorf("invalid date %q: %w", dateStr, err)
			}
		}

		client := newClient()
		session, err := restoreSession(cmd.Context(), client)
		if err != nil {
			return err
		}

		_, err = client.AddTransaction(cmd.Context(), session, core.TransactionInput{
			Account:  walletID,
			Category: categoryID,
			Amount:   amount,
			Note:     note,
			Date:     date,
		})
		if err != nil {
			return err
		}

		fmt.Println("Transaction added.")
		return nil
	},
}

func init() {
	txLsCmd.Flags().String("wallet", "", "Wallet id")
	txLsCmd.Flags().Int("days", 30, "How many days back to list")
	txAddCmd.Flags().String("wallet", "", "Wallet id")
	txAddCmd.Flags().String("category", "", "Category id")
	txAddCmd.Flags().String("amount", "", "Amount, e.g. 12.50")
	txAddCmd.Flags().String("note", "", "Optional note")
	txAddCmd.Flags().String("date", "", "Date as YYYY-MM-DD (default today)")
	txCmd.AddCommand(txLsCmd)
	txCmd.AddCommand(txAddCmd)
	rootCmd.AddCommand(txCmd)
}
