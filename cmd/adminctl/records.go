package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"portfolio/api/internal/editor"
	"portfolio/api/internal/portfolio"
)

var (
	recordsFile    string
	recordsSection string
	recordsID      string
	recordsSet     []string
	recordsTo      int
	recordsYes     bool
)

var recordsCmd = &cobra.Command{
	Use:   "records",
	Short: "Edit records in a pulled JSON document",
	Long: `Records edits a locally pulled content document. Changes are written
back to the file; use "adminctl push" to upload them.

Example:
  adminctl records add --file portfolio.json --section experience --set company=Acme --set title=Engineer
  adminctl records delete --file portfolio.json --section experience --id 3f1c... --yes
  adminctl records move --file portfolio.json --section experience --id 3f1c... --to 0`,
	// The shared API client is not needed for local file edits.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
}

func init() {
	recordsCmd.PersistentFlags().StringVar(&recordsFile, "file", "portfolio.json", "document file")
	recordsCmd.PersistentFlags().StringVar(&recordsSection, "section", "", "section name (required)")

	recordsAddCmd.Flags().StringArrayVar(&recordsSet, "set", nil, "field to set, as key=value (repeatable)")
	recordsDeleteCmd.Flags().StringVar(&recordsID, "id", "", "record id (required)")
	recordsDeleteCmd.Flags().BoolVar(&recordsYes, "yes", false, "confirm the deletion")
	recordsMoveCmd.Flags().StringVar(&recordsID, "id", "", "record id (required)")
	recordsMoveCmd.Flags().IntVar(&recordsTo, "to", 0, "target position, zero-based")
	_ = recordsDeleteCmd.MarkFlagRequired("id")
	_ = recordsMoveCmd.MarkFlagRequired("id")
	_ = recordsMoveCmd.MarkFlagRequired("to")

	recordsCmd.AddCommand(recordsListCmd)
	recordsCmd.AddCommand(recordsAddCmd)
	recordsCmd.AddCommand(recordsDeleteCmd)
	recordsCmd.AddCommand(recordsMoveCmd)
}

var recordsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the records of a section with their ids",
	RunE: func(cmd *cobra.Command, args []string) error {
		ed, err := openDocument(cmd.Context())
		if err != nil {
			return err
		}
		entries, err := ed.Records(recordsSection)
		if err != nil {
			return recordsError(err)
		}
		for i, entry := range entries {
			fmt.Printf("%d  %s  %s\n", i, entry.ID, recordSummary(entry.Fields))
		}
		return nil
	},
}

var recordsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Append a record to a section",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		ed, err := openDocument(ctx)
		if err != nil {
			return err
		}
		entry, err := ed.Add(recordsSection)
		if err != nil {
			return recordsError(err)
		}
		for _, pair := range recordsSet {
			key, value, ok := strings.Cut(pair, "=")
			if !ok {
				return fmt.Errorf("invalid --set %q, expected key=value", pair)
			}
			if err := ed.SetField(recordsSection, entry.ID, key, value); err != nil {
				return recordsError(err)
			}
		}
		if err := ed.FinishEdit(recordsSection, entry.ID); err != nil {
			return recordsError(err)
		}
		if err := ed.SaveAll(ctx); err != nil {
			return fmt.Errorf("write %s: %w", recordsFile, err)
		}
		fmt.Printf("Added record %s to %s\n", entry.ID, recordsSection)
		return nil
	},
}

var recordsDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete a record from a section",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		ed, err := openDocument(ctx)
		if err != nil {
			return err
		}
		if err := ed.Delete(recordsSection, recordsID, recordsYes); err != nil {
			if errors.Is(err, editor.ErrConfirmRequired) {
				return fmt.Errorf("deleting is permanent, pass --yes to confirm")
			}
			return recordsError(err)
		}
		if err := ed.SaveAll(ctx); err != nil {
			return fmt.Errorf("write %s: %w", recordsFile, err)
		}
		fmt.Printf("Deleted record %s from %s\n", recordsID, recordsSection)
		return nil
	},
}

var recordsMoveCmd = &cobra.Command{
	Use:   "move",
	Short: "Move a record to a new position within its section",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		ed, err := openDocument(ctx)
		if err != nil {
			return err
		}
		if err := ed.Move(recordsSection, recordsID, recordsTo); err != nil {
			return recordsError(err)
		}
		if err := ed.SaveAll(ctx); err != nil {
			return fmt.Errorf("write %s: %w", recordsFile, err)
		}
		fmt.Printf("Moved record %s to position %d\n", recordsID, recordsTo)
		return nil
	},
}

// fileBackend lets the editor work against a local JSON file instead of
// the API.
type fileBackend struct {
	path string
}

func (b fileBackend) Load(ctx context.Context) (portfolio.Document, error) {
	data, err := os.ReadFile(b.path)
	if err != nil {
		return nil, err
	}
	var doc portfolio.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%s is not valid JSON: %w", b.path, err)
	}
	return portfolio.Normalize(doc), nil
}

func (b fileBackend) Save(ctx context.Context, doc portfolio.Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(b.path, append(data, '\n'), 0o644)
}

func openDocument(ctx context.Context) (*editor.Editor, error) {
	if recordsSection == "" {
		return nil, fmt.Errorf("--section is required")
	}
	ed := editor.New(fileBackend{path: recordsFile})
	if err := ed.Load(ctx); err != nil {
		return nil, fmt.Errorf("load %s: %w", recordsFile, err)
	}
	return ed, nil
}

func recordsError(err error) error {
	if errors.Is(err, editor.ErrUnknownSection) {
		return fmt.Errorf("unknown section %q (valid: %s)", recordsSection, strings.Join(portfolio.SectionNames(), ", "))
	}
	return err
}

// recordSummary picks a short human label for a record, preferring the
// first non-empty string field in schema order.
func recordSummary(rec portfolio.Record) string {
	section, ok := portfolio.SectionByName(recordsSection)
	if !ok {
		return ""
	}
	for _, field := range section.Fields {
		if s := rec.String(field.Name); s != "" {
			return s
		}
	}
	return ""
}
