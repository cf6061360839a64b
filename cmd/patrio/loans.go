package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/patrio-app/patrio/internal/cli"
	"github.com/patrio-app/patrio/internal/model"
)

func prestamosCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prestamos",
		Short: "Manage loans",
	}

	cmd.AddCommand(prestamosListCmd())
	cmd.AddCommand(prestamosScheduleCmd())
	cmd.AddCommand(prestamosPreviewCmd())

	return cmd
}

func prestamosListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List loans",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := newAPIClient()
			if err != nil {
				return err
			}

			loans, err := client.ListLoans(cmd.Context())
			if err != nil {
				return err
			}

			if len(loans) == 0 {
				fmt.Println("No loans yet.")
				return nil
			}

			table := cli.NewTable("ID", "NOMBRE", "PRESTAMISTA", "PRINCIPAL", "TAE", "PLAZO", "INICIO")
			for _, l := range loans {
				table.AddRow(l.ID, l.Name, l.Lender.Name,
					cli.FormatAmount(l.Principal, l.Currency),
					fmt.Sprintf("%.2f%%", l.AnnualRate),
					fmt.Sprintf("%d meses", l.TermMonths),
					l.StartDate.Raw)
			}
			fmt.Print(table.Render())
			return nil
		},
	}
}

func prestamosScheduleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schedule <id>",
		Short: "Fetch a loan's amortization schedule",
		Long: `Fetch the authoritative amortization schedule from the backend.
This endpoint is slow; the request waits longer than usual and retries
once if it times out.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newSlowAPIClient()
			if err != nil {
				return err
			}

			schedule, err := client.GetLoanSchedule(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			printSchedule(schedule)
			return nil
		},
	}
}

func prestamosPreviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Compute an amortization schedule locally",
		Long: `Compute a French-method (constant payment) schedule without
calling the backend. Useful for comparing offers before creating a loan.`,
		RunE: runPrestamosPreview,
	}

	cmd.Flags().Float64("principal", 0, "loan principal")
	cmd.Flags().Float64("rate", 0, "nominal annual rate, percent")
	cmd.Flags().Int("term", 0, "term in months")
	cmd.Flags().String("start", "", "first payment reference date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("principal")
	_ = cmd.MarkFlagRequired("term")

	return cmd
}

func runPrestamosPreview(cmd *cobra.Command, _ []string) error {
	principal, _ := cmd.Flags().GetFloat64("principal")
	rate, _ := cmd.Flags().GetFloat64("rate")
	term, _ := cmd.Flags().GetInt("term")
	start, _ := cmd.Flags().GetString("start")

	loan := model.Loan{
		Principal:  principal,
		AnnualRate: rate,
		TermMonths: term,
		StartDate:  model.ParseDate(start),
	}

	schedule, err := loan.AmortizationPreview()
	if err != nil {
		return err
	}

	printSchedule(schedule)

	total := 0.0
	interest := 0.0
	for _, row := range schedule {
		total += row.Payment
		interest += row.Interest
	}
	fmt.Println(cli.SubtleStyle.Render(fmt.Sprintf(
		"total paid %.2f · total interest %.2f", total, interest)))

	return nil
}

func printSchedule(schedule []model.Installment) {
	table := cli.NewTable("Nº", "FECHA", "CUOTA", "INTERÉS", "PRINCIPAL", "SALDO")
	for _, row := range schedule {
		table.AddRow(
			fmt.Sprintf("%d", row.Number),
			row.Date.Raw,
			fmt.Sprintf("%.2f", row.Payment),
			fmt.Sprintf("%.2f", row.Interest),
			fmt.Sprintf("%.2f", row.Principal),
			fmt.Sprintf("%.2f", row.Balance),
		)
	}
	fmt.Print(table.Render())
}
