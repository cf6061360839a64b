package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/patrio-app/patrio/internal/cli"
	"github.com/patrio-app/patrio/internal/model"
	"github.com/patrio-app/patrio/internal/view"
)

func ingresosCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingresos",
		Short: "Manage incomes",
	}

	cmd.AddCommand(ingresosListCmd())

	return cmd
}

func ingresosListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List incomes, filtered locally and ranked by amount",
		RunE:  runIngresosList,
	}

	cmd.Flags().StringP("search", "s", "", "text search over name, category, and source")
	cmd.Flags().String("category", "", "category filter ('all' for no constraint)")
	cmd.Flags().String("source", "", "source filter")
	cmd.Flags().String("received", "", "received filter (all, yes, no)")
	cmd.Flags().String("active", "", "active filter (all, yes, no)")
	cmd.Flags().String("from", "", "earliest date, inclusive (YYYY-MM-DD)")
	cmd.Flags().String("to", "", "latest date, inclusive (YYYY-MM-DD)")
	cmd.Flags().Bool("offline", false, "render from the local snapshot cache without fetching")

	return cmd
}

func runIngresosList(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	search, _ := cmd.Flags().GetString("search")
	category, _ := cmd.Flags().GetString("category")
	source, _ := cmd.Flags().GetString("source")

	received, err := triStateFlag(cmd, "received")
	if err != nil {
		return err
	}
	active, err := triStateFlag(cmd, "active")
	if err != nil {
		return err
	}
	from, err := dateFlag(cmd, "from")
	if err != nil {
		return err
	}
	to, err := dateFlag(cmd, "to")
	if err != nil {
		return err
	}

	store, err := initStore(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	var incomes []model.Income
	if offline, _ := cmd.Flags().GetBool("offline"); offline {
		cfg, err := clientConfig()
		if err != nil {
			return err
		}
		snap, err := store.LoadSnapshot(ctx, "ingresos", string(cfg.Backend), &incomes)
		if err != nil {
			return err
		}
		slog.Info("Serving cached snapshot", "domain", "ingresos", "fetched_at", snap.FetchedAt)
	} else {
		client, err := newAPIClient()
		if err != nil {
			return err
		}
		incomes, err = client.ListIncomes(ctx)
		if err != nil {
			return err
		}
		if err := store.SaveSnapshot(ctx, "ingresos", string(client.ActiveBackend()), incomes); err != nil {
			slog.Warn("Failed to update snapshot cache", "domain", "ingresos", "error", err)
		}
	}

	filter := view.NewIncomeFilter(view.IncomeFilterOptions{
		Search:   search,
		Category: category,
		Source:   source,
		Received: received,
		Active:   active,
		From:     from,
		To:       to,
	})
	visible := view.Rank(filter.Apply(incomes), view.IncomeRanking())

	if len(visible) == 0 {
		fmt.Println(emptyStateMessage(filter.HasActiveFilters(), "ingresos"))
		return nil
	}

	table := cli.NewTable("ID", "NOMBRE", "CATEGORÍA", "FUENTE", "IMPORTE", "FECHA", "RECIBIDO")
	for _, i := range visible {
		received := cli.PendingIcon
		if i.Received {
			received = cli.PaidIcon
		}
		table.AddRow(i.ID, i.Name, i.Category, i.Source.Name,
			cli.FormatAmount(i.Amount, i.Currency), i.Date.Raw, received)
	}
	fmt.Print(table.Render())
	fmt.Println(cli.SubtleStyle.Render(fmt.Sprintf("%d of %d shown", len(visible), len(incomes))))

	return nil
}
