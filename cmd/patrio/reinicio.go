package main

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/patrio-app/patrio/internal/cli"
	"github.com/patrio-app/patrio/internal/config"
	"github.com/patrio-app/patrio/internal/model"
	"github.com/patrio-app/patrio/internal/sheets"
)

func reinicioCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reinicio",
		Short: "Month-close workflow",
		Long: `Close the current period: archive its entries, reset the pending
state, and open the next period. The close runs entirely on the backend;
this command previews, confirms, and triggers it.`,
	}

	cmd.AddCommand(reinicioPreviewCmd())
	cmd.AddCommand(reinicioRunCmd())
	cmd.AddCommand(reinicioSummaryCmd())

	return cmd
}

func reinicioPreviewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "preview",
		Short: "Preview the close without executing it",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := newAPIClient()
			if err != nil {
				return err
			}

			preview, err := client.PreviewClose(cmd.Context())
			if err != nil {
				return err
			}

			printCloseSummary(preview.Summary)
			fmt.Println()
			fmt.Printf("Pending expenses: %d\n", preview.PendingExpenses)
			fmt.Printf("Pending incomes:  %d\n", preview.PendingIncomes)
			if preview.Ready {
				fmt.Println(cli.FormatSuccess("Period is ready to close"))
			} else {
				fmt.Println(cli.FormatWarning("Period is not ready to close yet"))
			}
			return nil
		},
	}
}

func reinicioRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Execute the month close",
		Long: `Execute the month close. The backend takes a while for this;
the request waits longer than usual and retries once if it times out.
After a successful close every list should be refetched, so the local
snapshot cache is dropped.`,
		RunE: runReinicio,
	}

	cmd.Flags().BoolP("yes", "y", false, "skip the confirmation prompt")
	cmd.Flags().Bool("export", false, "export the closed period to Google Sheets")

	return cmd
}

func runReinicio(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	yes, _ := cmd.Flags().GetBool("yes")
	if !yes && !confirm("Close the current period? This cannot be undone") {
		fmt.Println("Aborted.")
		return nil
	}

	client, err := newSlowAPIClient()
	if err != nil {
		return err
	}

	result, err := client.ExecuteClose(ctx)
	if err != nil {
		return err
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Closed period %s (%d entries), now on %s",
		result.ClosedPeriod, result.EntriesClosed, result.NextPeriod)))
	printCloseSummary(result.Summary)

	// Everything changed server-side; cached snapshots are stale now.
	if store, storeErr := initStore(ctx); storeErr == nil {
		if err := store.DeleteSnapshots(ctx, string(client.ActiveBackend())); err != nil {
			slog.Warn("Failed to drop snapshot cache", "error", err)
		}
		_ = store.Close()
	}

	if export, _ := cmd.Flags().GetBool("export"); export {
		if err := exportCloseSummary(cmd, result.Summary); err != nil {
			return fmt.Errorf("close succeeded but export failed: %w", err)
		}
		fmt.Println(cli.FormatSuccess("Exported to Google Sheets"))
	}

	return nil
}

func reinicioSummaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary <period>",
		Short: "Show the summary of a closed period",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newAPIClient()
			if err != nil {
				return err
			}

			summary, err := client.GetCloseSummary(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			printCloseSummary(*summary)

			if export, _ := cmd.Flags().GetBool("export"); export {
				if err := exportCloseSummary(cmd, *summary); err != nil {
					return err
				}
				fmt.Println(cli.FormatSuccess("Exported to Google Sheets"))
			}
			return nil
		},
	}

	cmd.Flags().Bool("export", false, "export the period to Google Sheets")

	return cmd
}

func printCloseSummary(summary model.CloseSummary) {
	fmt.Println(cli.FormatTitle(fmt.Sprintf("Cierre %s", summary.Period)))
	fmt.Printf("Ingresos: %s\n", cli.FormatAmount(summary.TotalIncome, "EUR"))
	fmt.Printf("Gastos:   %s\n", cli.FormatAmount(summary.TotalExpenses, "EUR"))
	fmt.Printf("Neto:     %s\n", cli.FormatAmount(summary.Net, "EUR"))

	if len(summary.ByCategory) == 0 {
		return
	}

	categories := make([]string, 0, len(summary.ByCategory))
	for category := range summary.ByCategory {
		categories = append(categories, category)
	}
	sort.Slice(categories, func(i, j int) bool {
		if summary.ByCategory[categories[i]] != summary.ByCategory[categories[j]] {
			return summary.ByCategory[categories[i]] > summary.ByCategory[categories[j]]
		}
		return categories[i] < categories[j]
	})

	table := cli.NewTable("CATEGORÍA", "IMPORTE")
	for _, category := range categories {
		table.AddRow(category, cli.FormatAmount(summary.ByCategory[category], "EUR"))
	}
	fmt.Print(table.Render())
}

// exportCloseSummary builds the sheets exporter from config and writes the
// period.
func exportCloseSummary(cmd *cobra.Command, summary model.CloseSummary) error {
	cfg := sheets.DefaultConfig()
	cfg.ClientID = viper.GetString("sheets.client_id")
	cfg.ClientSecret = viper.GetString("sheets.client_secret")
	cfg.RefreshToken = viper.GetString("sheets.refresh_token")
	cfg.ServiceAccountPath = viper.GetString("sheets.service_account_path")
	cfg.SpreadsheetID = viper.GetString("sheets.spreadsheet_id")
	cfg.TokenFile = filepath.Join(config.ConfigDir(), "sheets-token.json")
	if name := viper.GetString("sheets.spreadsheet_name"); name != "" {
		cfg.SpreadsheetName = name
	}

	writer, err := sheets.NewWriter(cmd.Context(), cfg, slog.Default())
	if err != nil {
		return err
	}

	return writer.Export(cmd.Context(), summary)
}
