package main

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/patrio-app/patrio/internal/cli"
	"github.com/patrio-app/patrio/internal/model"
	"github.com/patrio-app/patrio/internal/view"
)

func gastosCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gastos",
		Short: "Manage expenses",
	}

	cmd.AddCommand(gastosListCmd())
	cmd.AddCommand(gastosPayCmd())
	cmd.AddCommand(gastosUnpayCmd())
	cmd.AddCommand(gastosAddCmd())
	cmd.AddCommand(gastosDeleteCmd())

	return cmd
}

func gastosListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List expenses, filtered locally and ranked by amount",
		RunE:  runGastosList,
	}

	cmd.Flags().String("kind", "gestionables", "collection to list (gestionables, cotidianos)")
	cmd.Flags().String("mode", "all", "screen mode (all, pending, paid)")
	cmd.Flags().StringP("search", "s", "", "text search over name, category, and provider")
	cmd.Flags().String("category", "", "category filter ('all' for no constraint)")
	cmd.Flags().String("provider", "", "provider filter")
	cmd.Flags().String("paid", "", "paid filter (all, yes, no); ignored in pending/paid mode")
	cmd.Flags().String("active", "", "active filter (all, yes, no)")
	cmd.Flags().String("from", "", "earliest date, inclusive (YYYY-MM-DD)")
	cmd.Flags().String("to", "", "latest date, inclusive (YYYY-MM-DD)")
	cmd.Flags().Bool("offline", false, "render from the local snapshot cache without fetching")

	return cmd
}

func runGastosList(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	kind, _ := cmd.Flags().GetString("kind")
	if kind != "gestionables" && kind != "cotidianos" {
		return fmt.Errorf("invalid --kind %q (want gestionables or cotidianos)", kind)
	}

	modeFlag, _ := cmd.Flags().GetString("mode")
	mode, err := view.ParseExpenseListMode(modeFlag)
	if err != nil {
		return err
	}

	opts, err := expenseFilterOptions(cmd, mode)
	if err != nil {
		return err
	}

	offline, _ := cmd.Flags().GetBool("offline")
	expenses, err := loadExpenses(ctx, kind, offline)
	if err != nil {
		return err
	}

	filter := view.NewExpenseFilter(opts)
	visible := view.Rank(filter.Apply(expenses), view.ExpenseRanking())

	if len(visible) == 0 {
		fmt.Println(emptyStateMessage(filter.HasActiveFilters(), kind))
		return nil
	}

	table := cli.NewTable("ID", "NOMBRE", "CATEGORÍA", "PROVEEDOR", "IMPORTE", "FECHA", "PAGADO")
	for _, e := range visible {
		paid := cli.PendingIcon
		if e.Paid {
			paid = cli.PaidIcon
		}
		table.AddRow(e.ID, e.Name, e.Category, e.Provider.Name,
			cli.FormatAmount(e.Amount, e.Currency), e.Date.Raw, paid)
	}
	fmt.Print(table.Render())
	fmt.Println(cli.SubtleStyle.Render(fmt.Sprintf("%d of %d shown", len(visible), len(expenses))))

	return nil
}

func expenseFilterOptions(cmd *cobra.Command, mode view.ExpenseListMode) (view.ExpenseFilterOptions, error) {
	search, _ := cmd.Flags().GetString("search")
	category, _ := cmd.Flags().GetString("category")
	provider, _ := cmd.Flags().GetString("provider")

	paid, err := triStateFlag(cmd, "paid")
	if err != nil {
		return view.ExpenseFilterOptions{}, err
	}
	active, err := triStateFlag(cmd, "active")
	if err != nil {
		return view.ExpenseFilterOptions{}, err
	}
	from, err := dateFlag(cmd, "from")
	if err != nil {
		return view.ExpenseFilterOptions{}, err
	}
	to, err := dateFlag(cmd, "to")
	if err != nil {
		return view.ExpenseFilterOptions{}, err
	}

	return view.ExpenseFilterOptions{
		Mode:     mode,
		Search:   search,
		Category: category,
		Provider: provider,
		Paid:     paid,
		Active:   active,
		From:     from,
		To:       to,
	}, nil
}

// loadExpenses fetches a collection and refreshes its snapshot, or serves
// the cached snapshot in offline mode.
func loadExpenses(ctx context.Context, kind string, offline bool) ([]model.Expense, error) {
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
		var expenses []model.Expense
		snap, err := store.LoadSnapshot(ctx, kind, string(cfg.Backend), &expenses)
		if err != nil {
			return nil, err
		}
		slog.Info("Serving cached snapshot", "domain", kind, "fetched_at", snap.FetchedAt)
		return expenses, nil
	}

	client, err := newAPIClient()
	if err != nil {
		return nil, err
	}

	var expenses []model.Expense
	if kind == "gestionables" {
		expenses, err = client.ListGestionables(ctx)
	} else {
		expenses, err = client.ListCotidianos(ctx)
	}
	if err != nil {
		return nil, err
	}

	if err := store.SaveSnapshot(ctx, kind, string(client.ActiveBackend()), expenses); err != nil {
		slog.Warn("Failed to update snapshot cache", "domain", kind, "error", err)
	}

	return expenses, nil
}

func gastosPayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pay <id>",
		Short: "Mark an expense as paid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setExpensePaid(cmd.Context(), args[0], true)
		},
	}
}

func gastosUnpayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unpay <id>",
		Short: "Mark an expense as pending",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setExpensePaid(cmd.Context(), args[0], false)
		},
	}
}

// setExpensePaid flips the paid flag on the backend. There is no local
// optimistic update: the next list fetch shows the new state.
func setExpensePaid(ctx context.Context, id string, paid bool) error {
	client, err := newAPIClient()
	if err != nil {
		return err
	}

	if err := client.SetExpensePaid(ctx, id, paid); err != nil {
		return err
	}

	if paid {
		fmt.Println(cli.FormatSuccess(fmt.Sprintf("Expense %s marked as paid", id)))
	} else {
		fmt.Println(cli.FormatSuccess(fmt.Sprintf("Expense %s marked as pending", id)))
	}
	return nil
}

func gastosAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <name> <amount>",
		Short: "Add an everyday expense",
		Args:  cobra.ExactArgs(2),
		RunE:  runGastosAdd,
	}

	cmd.Flags().String("category", "", "expense category")
	cmd.Flags().String("provider", "", "provider name")
	cmd.Flags().String("date", "", "expense date (YYYY-MM-DD, default today)")
	cmd.Flags().String("notes", "", "free-form notes")

	return cmd
}

func runGastosAdd(cmd *cobra.Command, args []string) error {
	amount, err := strconv.ParseFloat(args[1], 64)
	if err != nil || amount <= 0 {
		return fmt.Errorf("invalid amount %q", args[1])
	}

	category, _ := cmd.Flags().GetString("category")
	provider, _ := cmd.Flags().GetString("provider")
	notes, _ := cmd.Flags().GetString("notes")

	date := model.DateOf(time.Now())
	if raw, _ := cmd.Flags().GetString("date"); raw != "" {
		date = model.ParseDate(raw)
		if !date.Valid {
			return fmt.Errorf("invalid --date %q (want YYYY-MM-DD)", raw)
		}
	}

	expense := model.Expense{
		Kind:     model.KindCotidiano,
		Name:     args[0],
		Category: category,
		Provider: model.Provider{Name: provider},
		Amount:   amount,
		Date:     date,
		Paid:     true,
		Active:   true,
		Notes:    notes,
	}
	expense.Normalize()

	client, err := newAPIClient()
	if err != nil {
		return err
	}

	created, err := client.CreateCotidiano(cmd.Context(), expense)
	if err != nil {
		return err
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Added expense %s (%s)",
		created.Name, cli.FormatAmount(created.Amount, created.Currency))))
	return nil
}

func gastosDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an expense",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			yes, _ := cmd.Flags().GetBool("yes")
			if !yes && !confirm(fmt.Sprintf("Delete expense %s?", args[0])) {
				fmt.Println("Aborted.")
				return nil
			}

			client, err := newAPIClient()
			if err != nil {
				return err
			}

			if err := client.DeleteExpense(cmd.Context(), args[0]); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Deleted expense %s", args[0])))
			return nil
		},
	}

	cmd.Flags().BoolP("yes", "y", false, "skip the confirmation prompt")

	return cmd
}
