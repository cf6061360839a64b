package api

import (
	"context"
	"fmt"

	"github.com/patrio-app/patrio/internal/model"
)

type loanPayload struct {
	ID           string  `json:"id"`
	Nombre       string  `json:"nombre"`
	Principal    float64 `json:"principal"`
	TasaAnual    float64 `json:"tasaAnual"`
	PlazoMeses   int     `json:"plazoMeses"`
	FechaInicio  string  `json:"fechaInicio"`
	Moneda       string  `json:"moneda"`
	Activo       bool    `json:"activo"`
	Prestamista  string  `json:"prestamista"`
	PrestamistaID string `json:"prestamistaId"`
	CategoriaID  int     `json:"categoriaPrestamistaId"`
}

func (p loanPayload) toModel() model.Loan {
	l := model.Loan{
		ID:         p.ID,
		Name:       p.Nombre,
		Principal:  p.Principal,
		AnnualRate: p.TasaAnual,
		TermMonths: p.PlazoMeses,
		StartDate:  model.ParseDate(p.FechaInicio),
		Currency:   p.Moneda,
		Active:     p.Activo,
		Lender: model.Provider{
			ID:   p.PrestamistaID,
			Name: p.Prestamista,
			Kind: model.ResolveProviderKind(p.CategoriaID),
		},
	}
	l.Normalize()
	return l
}

type installmentPayload struct {
	Numero    int     `json:"numero"`
	Fecha     string  `json:"fecha"`
	Cuota     float64 `json:"cuota"`
	Interes   float64 `json:"interes"`
	Principal float64 `json:"principal"`
	Saldo     float64 `json:"saldo"`
}

// ListLoans fetches all loans.
func (c *Client) ListLoans(ctx context.Context) ([]model.Loan, error) {
	var payload []loanPayload
	if err := c.get(ctx, "/prestamos", nil, &payload); err != nil {
		return nil, fmt.Errorf("failed to list loans: %w", err)
	}

	loans := make([]model.Loan, 0, len(payload))
	for _, p := range payload {
		loans = append(loans, p.toModel())
	}
	return loans, nil
}

// GetLoanSchedule fetches the backend-computed amortization schedule for a
// loan. Schedules are slow to compute server-side; use a slow client.
func (c *Client) GetLoanSchedule(ctx context.Context, id string) ([]model.Installment, error) {
	var payload []installmentPayload
	if err := c.get(ctx, "/prestamos/"+id+"/cuadro", nil, &payload); err != nil {
		return nil, fmt.Errorf("failed to fetch schedule for loan %s: %w", id, err)
	}

	schedule := make([]model.Installment, 0, len(payload))
	for _, p := range payload {
		schedule = append(schedule, model.Installment{
			Number:    p.Numero,
			Date:      model.ParseDate(p.Fecha),
			Payment:   p.Cuota,
			Interest:  p.Interes,
			Principal: p.Principal,
			Balance:   p.Saldo,
		})
	}
	return schedule, nil
}
