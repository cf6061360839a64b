package main

import (
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/patrio-app/patrio/internal/cli"
	"github.com/patrio-app/patrio/internal/model"
	"github.com/patrio-app/patrio/internal/tui"
	"github.com/patrio-app/patrio/internal/view"
)

func patrimonioCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "patrimonio",
		Short: "Manage the real-estate portfolio",
	}

	cmd.AddCommand(patrimonioListCmd())
	cmd.AddCommand(patrimonioBrowseCmd())

	return cmd
}

func patrimonioListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List properties ranked by the selected KPI",
		Long: `List the property portfolio with KPI, purchase, and valuation
lookups. A property whose lookups failed still appears with dashes in the
affected columns, ranked after the ones with values.`,
		RunE: runPatrimonioList,
	}

	cmd.Flags().StringP("metric", "m", "gross-yield", "ranking metric (gross-yield, net-yield, cap-rate, noi)")
	cmd.Flags().StringP("search", "s", "", "text search over name, address, city, and category")
	cmd.Flags().String("category", "", "category filter ('all' for no constraint)")
	cmd.Flags().String("city", "", "city filter")
	cmd.Flags().String("rented", "", "rented filter (all, yes, no)")
	cmd.Flags().String("active", "", "active filter (all, yes, no)")
	cmd.Flags().String("from", "", "earliest purchase date, inclusive (YYYY-MM-DD)")
	cmd.Flags().String("to", "", "latest purchase date, inclusive (YYYY-MM-DD)")
	cmd.Flags().Bool("offline", false, "render from the local snapshot cache without fetching")

	return cmd
}

func runPatrimonioList(cmd *cobra.Command, _ []string) error {
	metricFlag, _ := cmd.Flags().GetString("metric")
	metric, err := model.ParsePropertyMetric(metricFlag)
	if err != nil {
		return err
	}

	opts, err := propertyFilterOptions(cmd)
	if err != nil {
		return err
	}

	offline, _ := cmd.Flags().GetBool("offline")
	rows, err := loadPropertyRows(cmd, offline)
	if err != nil {
		return err
	}

	filter := view.NewPropertyFilter(opts)
	visible := view.Rank(filter.Apply(rows), view.PropertyRanking(metric))

	if len(visible) == 0 {
		fmt.Println(emptyStateMessage(filter.HasActiveFilters(), "propiedades"))
		return nil
	}

	table := cli.NewTable("ID", "NOMBRE", "CIUDAD", metricHeader(metric), "COMPRA", "VALORACIÓN", "ALQUILADO")
	for _, r := range visible {
		value := "—"
		if v, ok := r.Metric(metric); ok {
			value = fmt.Sprintf("%.2f", v)
		}
		valuation := "—"
		if r.Valuation != nil {
			valuation = cli.FormatAmount(r.Valuation.Value, r.Currency)
		}
		rented := cli.PendingIcon
		if r.Rented {
			rented = cli.PaidIcon
		}
		table.AddRow(r.ID, r.Name, r.City, value, r.PurchaseDate().Raw, valuation, rented)
	}
	fmt.Print(table.Render())
	fmt.Println(cli.SubtleStyle.Render(fmt.Sprintf("%d of %d shown · ranked by %s", len(visible), len(rows), metric)))

	return nil
}

func propertyFilterOptions(cmd *cobra.Command) (view.PropertyFilterOptions, error) {
	search, _ := cmd.Flags().GetString("search")
	category, _ := cmd.Flags().GetString("category")
	city, _ := cmd.Flags().GetString("city")

	rented, err := triStateFlag(cmd, "rented")
	if err != nil {
		return view.PropertyFilterOptions{}, err
	}
	active, err := triStateFlag(cmd, "active")
	if err != nil {
		return view.PropertyFilterOptions{}, err
	}
	from, err := dateFlag(cmd, "from")
	if err != nil {
		return view.PropertyFilterOptions{}, err
	}
	to, err := dateFlag(cmd, "to")
	if err != nil {
		return view.PropertyFilterOptions{}, err
	}

	return view.PropertyFilterOptions{
		Search:   search,
		Category: category,
		City:     city,
		Rented:   rented,
		Active:   active,
		From:     from,
		To:       to,
	}, nil
}

// loadPropertyRows fetches and enriches the portfolio, or serves the cached
// snapshot in offline mode.
func loadPropertyRows(cmd *cobra.Command, offline bool) ([]model.PropertyRow, error) {
	ctx := cmd.Context()

	store, err := initStore(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = store.Close() }()

	if offline {
		cfg, err := clientConfig()
		if err != nil {
			return nil, err
		}
		var rows []model.PropertyRow
		snap, err := store.LoadSnapshot(ctx, "patrimonio", string(cfg.Backend), &rows)
		if err != nil {
			return nil, err
		}
		slog.Info("Serving cached snapshot", "domain", "patrimonio", "fetched_at", snap.FetchedAt)
		return rows, nil
	}

	client, err := newAPIClient()
	if err != nil {
		return nil, err
	}

	rows, err := view.LoadPropertyRows(ctx, client, enrichOptions())
	if err != nil {
		return nil, err
	}

	if err := store.SaveSnapshot(ctx, "patrimonio", string(client.ActiveBackend()), rows); err != nil {
		slog.Warn("Failed to update snapshot cache", "domain", "patrimonio", "error", err)
	}

	return rows, nil
}

func patrimonioBrowseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse the portfolio interactively",
		RunE: func(cmd *cobra.Command, _ []string) error {
			offline, _ := cmd.Flags().GetBool("offline")
			rows, err := loadPropertyRows(cmd, offline)
			if err != nil {
				return err
			}

			program := tea.NewProgram(tui.NewBrowser(rows))
			_, err = program.Run()
			return err
		},
	}

	cmd.Flags().Bool("offline", false, "browse the local snapshot cache without fetching")

	return cmd
}
