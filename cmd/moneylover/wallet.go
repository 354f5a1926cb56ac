package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var walletCmd = &cobra.Command{
	Use:   "wallet",
	Short: "Wallet operations",
}

var walletLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List wallets",
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newClient()
		session, err := restoreSession(cmd.Context(), client)
		if err != nil {
			return err
		}
		wallets, err := client.GetWallets(cmd.Context(), session)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tCURRENCY\tBALANCE")
		for _, wallet := range wallets {
			balance := ""
			if len(wallet.Balance) > 0 {
				balance = fmt.Sprintf("%v", wallet.Balance)
			}
			fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", wallet.ID, wallet.Name, wallet.CurrencyID, balance)
		}
		return w.Flush()
	},
}

func init() {
	walletCmd.AddCommand(walletLsCmd)
	rootCmd.AddCommand(walletCmd)
}
