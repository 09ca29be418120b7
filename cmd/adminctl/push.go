package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"portfolio/api/internal/portfolio"
)

var pushFile string

var pushCmd = &cobra.Command{
	Use:   "push",
	Short: "Upload a local JSON document to the server",
	Long: `Push reads a content document from a local JSON file and saves it to
the server, replacing the stored document.

Example:
  adminctl push --file portfolio.json`,
	RunE: runPush,
}

func init() {
	pushCmd.Flags().StringVar(&pushFile, "file", "portfolio.json", "source file")
}

func runPush(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	data, err := os.ReadFile(pushFile)
	if err != nil {
		return fmt.Errorf("read %s: %w", pushFile, err)
	}
	var doc portfolio.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%s is not valid JSON: %w", pushFile, err)
	}

	if err := login(ctx); err != nil {
		return err
	}
	if err := api.SavePortfolio(ctx, doc); err != nil {
		return fmt.Errorf("save portfolio: %w", err)
	}

	fmt.Println("Portfolio saved")
	return nil
}
