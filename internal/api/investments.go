package api

import (
	"context"
	"fmt"

	"github.com/patrio-app/patrio/internal/model"
)

type investmentPayload struct {
	ID          string  `json:"id"`
	Nombre      string  `json:"nombre"`
	Vehiculo    string  `json:"vehiculo"`
	Capital     float64 `json:"capital"`
	Moneda      string  `json:"moneda"`
	FechaInicio string  `json:"fechaInicio"`
	Activo      bool    `json:"activo"`
}

func (p investmentPayload) toModel() model.Investment {
	v := model.Investment{
		ID:        p.ID,
		Name:      p.Nombre,
		Vehicle:   p.Vehiculo,
		Committed: p.Capital,
		Currency:  p.Moneda,
		StartDate: model.ParseDate(p.FechaInicio),
		Active:    p.Activo,
	}
	v.Normalize()
	return v
}

// investmentKPIPayload mirrors the backend KPI block; pointers keep absent
// metrics distinguishable from zero.
type investmentKPIPayload struct {
	IRR  *float64 `json:"irr"`
	ROI  *float64 `json:"roi"`
	MOIC *float64 `json:"moic"`
}

// ListInvestments fetches all investment positions.
func (c *Client) ListInvestments(ctx context.Context) ([]model.Investment, error) {
	var payload []investmentPayload
	if err := c.get(ctx, "/inversiones", nil, &payload); err != nil {
		return nil, fmt.Errorf("failed to list investments: %w", err)
	}

	investments := make([]model.Investment, 0, len(payload))
	for _, p := range payload {
		investments = append(investments, p.toModel())
	}
	return investments, nil
}

// GetInvestmentKPIs fetches the computed KPI block for one investment.
func (c *Client) GetInvestmentKPIs(ctx context.Context, id string) (*model.InvestmentKPIs, error) {
	var payload investmentKPIPayload
	if err := c.get(ctx, "/inversiones/"+id+"/kpis", nil, &payload); err != nil {
		return nil, fmt.Errorf("failed to fetch KPIs for investment %s: %w", id, err)
	}

	return &model.InvestmentKPIs{
		IRR:  payload.IRR,
		ROI:  payload.ROI,
		MOIC: payload.MOIC,
	}, nil
}
