// Package main provides the adminctl CLI for managing portfolio content
// against a running API server.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"portfolio/api/internal/client"
)

var (
	serverURL string
	username  string
	password  string
	timeout   time.Duration

	// api is the shared API client, initialized on startup.
	api *client.Client
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "adminctl",
	Short: "adminctl manages portfolio content over the admin API",
	Long: `adminctl talks to a running portfolio API server. It can pull the
content document to a local JSON file, edit records in that file, push it
back, and manage the admin credentials.`,
	PersistentPreRunE: initClient,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", envOr("PORTFOLIO_SERVER", "http://localhost:3002"), "base URL of the API server")
	rootCmd.PersistentFlags().StringVar(&username, "username", envOr("PORTFOLIO_ADMIN_USER", "admin"), "admin username")
	rootCmd.PersistentFlags().StringVar(&password, "password", os.Getenv("PORTFOLIO_ADMIN_PASSWORD"), "admin password (or set PORTFOLIO_ADMIN_PASSWORD)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "request timeout")

	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(pullCmd)
	rootCmd.AddCommand(pushCmd)
	rootCmd.AddCommand(passwdCmd)
	rootCmd.AddCommand(recordsCmd)
}

func initClient(cmd *cobra.Command, args []string) error {
	c, err := client.New(serverURL, timeout)
	if err != nil {
		return fmt.Errorf("invalid server URL: %w", err)
	}
	api = c
	return nil
}

// login authenticates the shared client. Commands that hit protected
// endpoints call it first.
func login(ctx context.Context) error {
	if password == "" {
		return fmt.Errorf("no password given (use --password or PORTFOLIO_ADMIN_PASSWORD)")
	}
	if err := api.Login(ctx, username, password); err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
