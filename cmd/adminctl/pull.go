package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var pullFile string

var pullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Download the content document to a local JSON file",
	Long: `Pull fetches the full content document from the server and writes it
to a local JSON file. Edit the file with "adminctl records" (or by hand)
and upload it again with "adminctl push".

Example:
  adminctl pull --file portfolio.json`,
	RunE: runPull,
}

func init() {
	pullCmd.Flags().StringVar(&pullFile, "file", "portfolio.json", "destination file")
}

func runPull(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if err := login(ctx); err != nil {
		return err
	}

	doc, err := api.GetPortfolio(ctx)
	if err != nil {
		return fmt.Errorf("fetch portfolio: %w", err)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	if err := os.WriteFile(pullFile, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", pullFile, err)
	}

	fmt.Printf("Wrote %s (%d sections)\n", pullFile, len(doc))
	return nil
}
