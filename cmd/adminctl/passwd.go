package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

const minPasswordLength = 8

var (
	passwdCurrent string
	passwdNew     string
	passwdConfirm string
)

var passwdCmd = &cobra.Command{
	Use:   "passwd",
	Short: "Change the admin password",
	Long: `Passwd changes the password of the admin account. The new password
must be at least 8 characters and different from the current one.

Example:
  adminctl passwd --current oldpass --new newpass123 --confirm newpass123`,
	RunE: runPasswd,
}

func init() {
	passwdCmd.Flags().StringVar(&passwdCurrent, "current", "", "current password (required)")
	passwdCmd.Flags().StringVar(&passwdNew, "new", "", "new password (required)")
	passwdCmd.Flags().StringVar(&passwdConfirm, "confirm", "", "new password again (required)")
	_ = passwdCmd.MarkFlagRequired("current")
	_ = passwdCmd.MarkFlagRequired("new")
	_ = passwdCmd.MarkFlagRequired("confirm")
}

func runPasswd(cmd *cobra.Command, args []string) error {
	// Validate locally before touching the network.
	if len(passwdNew) < minPasswordLength {
		return fmt.Errorf("new password must be at least %d characters", minPasswordLength)
	}
	if passwdNew == passwdCurrent {
		return fmt.Errorf("new password must differ from the current one")
	}
	if passwdNew != passwdConfirm {
		return fmt.Errorf("new password and confirmation do not match")
	}

	ctx := cmd.Context()
	password = passwdCurrent
	if err := login(ctx); err != nil {
		return err
	}
	if err := api.ChangePassword(ctx, passwdCurrent, passwdNew); err != nil {
		return fmt.Errorf("change password: %w", err)
	}

	fmt.Println("Password changed")
	return nil
}
