package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Show the logged in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newClient()
		session, err := restoreSession(cmd.Context(), client)
		if err != nil {
			return err
		}
		info, err := client.GetUserInfo(cmd.Context(), session)
		if err != nil {
			return err
		}
		fmt.Printf("Email: %s\n", info.Email)
		fmt.Printf("Id:    %s\n", info.ID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(userCmd)
}
