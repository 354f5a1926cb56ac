package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var catCmd = &cobra.Command{
	Use:   "cat",
	Short: "Category operations",
}

var catLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List the categories of a wallet",
	RunE: func(cmd *cobra.Command, args []string) error {
		walletID, _ := cmd.Flags().GetString("wallet")
		if walletID == "" {
			return fmt.Errorf("--wallet is required")
		}

		client := newClient()
		session, err := restoreSession(cmd.Context(), client)
		if err != nil {
			return err
		}
		categories, err := client.GetCategories(cmd.Context(), session, walletID)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tTYPE\tPARENT")
		for _, c := range categories {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", c.ID, c.Name, c.Type, c.Parent)
		}
		return w.Flush()
	},
}

func init() {
	catLsCmd.Flags().String("wallet", "", "Wallet id")
	catCmd.AddCommand(catLsCmd)
	rootCmd.AddCommand(catCmd)
}
