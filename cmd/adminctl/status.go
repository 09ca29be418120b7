package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show server and session status",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		st, err := api.AuthStatus(ctx)
		if err != nil {
			return fmt.Errorf("server unreachable: %w", err)
		}
		fmt.Printf("server: %s\n", serverURL)
		if st.Authenticated {
			fmt.Printf("session: authenticated as %s\n", st.Username)
		} else {
			fmt.Println("session: not authenticated")
		}
		return nil
	},
}
