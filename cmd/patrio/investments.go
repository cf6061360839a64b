package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/patrio-app/patrio/internal/cli"
	"github.com/patrio-app/patrio/internal/model"
	"github.com/patrio-app/patrio/internal/view"
)

func inversionesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inversiones",
		Short: "Manage investments",
	}

	cmd.AddCommand(inversionesListCmd())

	return cmd
}

func inversionesListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List investments ranked by the selected KPI",
		Long: `List investments with their KPI lookups. Positions whose KPI
lookup failed still appear, ranked after the ones with values.`,
		RunE: runInversionesList,
	}

	cmd.Flags().StringP("metric", "m", "irr", "ranking metric (irr, roi, moic, capital)")
	cmd.Flags().StringP("search", "s", "", "text search over name and vehicle")
	cmd.Flags().String("vehicle", "", "vehicle filter ('all' for no constraint)")
	cmd.Flags().String("active", "", "active filter (all, yes, no)")
	cmd.Flags().Bool("offline", false, "render from the local snapshot cache without fetching")

	return cmd
}

func runInversionesList(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	metricFlag, _ := cmd.Flags().GetString("metric")
	metric, err := model.ParseInvestmentMetric(metricFlag)
	if err != nil {
		return err
	}

	search, _ := cmd.Flags().GetString("search")
	vehicle, _ := cmd.Flags().GetString("vehicle")
	active, err := triStateFlag(cmd, "active")
	if err != nil {
		return err
	}

	store, err := initStore(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	var rows []model.InvestmentRow
	if offline, _ := cmd.Flags().GetBool("offline"); offline {
		cfg, err := clientConfig()
		if err != nil {
			return err
		}
		snap, err := store.LoadSnapshot(ctx, "inversiones", string(cfg.Backend), &rows)
		if err != nil {
			return err
		}
		slog.Info("Serving cached snapshot", "domain", "inversiones", "fetched_at", snap.FetchedAt)
	} else {
		client, err := newAPIClient()
		if err != nil {
			return err
		}
		rows, err = view.LoadInvestmentRows(ctx, client, enrichOptions())
		if err != nil {
			return err
		}
		if err := store.SaveSnapshot(ctx, "inversiones", string(client.ActiveBackend()), rows); err != nil {
			slog.Warn("Failed to update snapshot cache", "domain", "inversiones", "error", err)
		}
	}

	filter := view.NewInvestmentFilter(view.InvestmentFilterOptions{
		Search:  search,
		Vehicle: vehicle,
		Active:  active,
	})
	visible := view.Rank(filter.Apply(rows), view.InvestmentRanking(metric))

	if len(visible) == 0 {
		fmt.Println(emptyStateMessage(filter.HasActiveFilters(), "inversiones"))
		return nil
	}

	table := cli.NewTable("ID", "NOMBRE", "VEHÍCULO", "CAPITAL", metricHeader(metric), "INICIO", "ACTIVO")
	for _, r := range visible {
		value := "—"
		if v, ok := r.Metric(metric); ok {
			value = fmt.Sprintf("%.2f", v)
		}
		activeCell := cli.PendingIcon
		if r.Active {
			activeCell = cli.PaidIcon
		}
		table.AddRow(r.ID, r.Name, r.Vehicle,
			cli.FormatAmount(r.Committed, r.Currency), value, r.StartDate.Raw, activeCell)
	}
	fmt.Print(table.Render())
	fmt.Println(cli.SubtleStyle.Render(fmt.Sprintf("%d of %d shown · ranked by %s", len(visible), len(rows), metric)))

	return nil
}

func metricHeader(m fmt.Stringer) string {
	return fmt.Sprintf("%s ↓", m)
}
