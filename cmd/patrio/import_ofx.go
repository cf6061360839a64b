package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/patrio-app/patrio/internal/cli"
	"github.com/patrio-app/patrio/internal/model"
	"github.com/patrio-app/patrio/internal/ofx"
)

func init() {
	importOFXCmd := &cobra.Command{
		Use:   "import-ofx [files...]",
		Short: "Import everyday expenses from OFX/QFX bank exports",
		Long: `Import everyday expenses from OFX or QFX files exported from your
bank. Debits become cotidiano entries; credits are skipped. Entries that
match an existing expense by date, amount, and provider are not created
again, so re-importing overlapping statements is safe.

Examples:
  # Import a single file
  patrio import-ofx ~/Descargas/movimientos_enero.ofx

  # Import everything in a directory
  patrio import-ofx ~/Descargas/*.ofx`,
		Args: cobra.MinimumNArgs(1),
		RunE: runImportOFX,
	}

	importOFXCmd.Flags().BoolP("dry-run", "d", false, "preview the import without creating entries")

	rootCmd.AddCommand(importOFXCmd)
}

func runImportOFX(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	var allFiles []string
	for _, pattern := range args {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return fmt.Errorf("invalid pattern %s: %w", pattern, err)
		}
		if len(matches) == 0 {
			if _, err := os.Stat(pattern); err == nil {
				allFiles = append(allFiles, pattern)
			} else {
				slog.Warn("No files found matching pattern", "pattern", pattern)
			}
		} else {
			allFiles = append(allFiles, matches...)
		}
	}

	if len(allFiles) == 0 {
		return fmt.Errorf("no files found to import")
	}

	client, err := newAPIClient()
	if err != nil {
		return err
	}

	// Fingerprints of what the backend already has, so re-imports are
	// idempotent.
	existing, err := client.ListCotidianos(ctx)
	if err != nil {
		return fmt.Errorf("failed to load existing expenses: %w", err)
	}
	seen := make(map[string]bool, len(existing))
	for _, e := range existing {
		seen[e.Fingerprint()] = true
	}

	parser := ofx.NewParser()
	var toCreate []model.Expense
	duplicates := 0

	for _, filePath := range allFiles {
		f, err := os.Open(filePath) // #nosec G304
		if err != nil {
			slog.Error("Failed to open file", "file", filePath, "error", err)
			continue
		}

		expenses, err := parser.ParseFile(ctx, f)
		_ = f.Close()
		if err != nil {
			slog.Error("Failed to parse OFX file", "file", filePath, "error", err)
			continue
		}

		added := 0
		for _, expense := range expenses {
			fp := expense.Fingerprint()
			if seen[fp] {
				duplicates++
				continue
			}
			seen[fp] = true
			toCreate = append(toCreate, expense)
			added++
		}

		slog.Info("Processed file",
			"file", filepath.Base(filePath),
			"expenses_found", len(expenses),
			"new", added,
			"duplicates", len(expenses)-added)
	}

	if len(toCreate) == 0 {
		fmt.Println("Nothing to import: every entry already exists.")
		return nil
	}

	if dryRun {
		fmt.Println(cli.FormatTitle(fmt.Sprintf("Would import %d expenses (%d duplicates skipped)",
			len(toCreate), duplicates)))
		table := cli.NewTable("FECHA", "PROVEEDOR", "IMPORTE")
		for _, e := range toCreate {
			table.AddRow(e.Date.Raw, e.Provider.Name, cli.FormatAmount(e.Amount, e.Currency))
		}
		fmt.Print(table.Render())
		return nil
	}

	bar := progressbar.NewOptions(len(toCreate),
		progressbar.OptionSetDescription("Importing expenses"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)

	created := 0
	var failed int
	for _, expense := range toCreate {
		if _, err := client.CreateCotidiano(ctx, expense); err != nil {
			slog.Error("Failed to create expense",
				"name", expense.Name,
				"date", expense.Date.Raw,
				"error", err)
			failed++
		} else {
			created++
		}
		_ = bar.Add(1)
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf(
		"Imported %d expenses (%d duplicates skipped, %d failed)",
		created, duplicates, failed)))

	return nil
}
