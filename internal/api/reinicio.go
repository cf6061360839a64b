package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/patrio-app/patrio/internal/common"
	"github.com/patrio-app/patrio/internal/model"
)

type closeSummaryPayload struct {
	Periodo       string             `json:"periodo"`
	PorCategoria  map[string]float64 `json:"porCategoria"`
	TotalIngresos float64            `json:"totalIngresos"`
	TotalGastos   float64            `json:"totalGastos"`
	Neto          float64            `json:"neto"`
}

func (p closeSummaryPayload) toModel() model.CloseSummary {
	byCategory := p.PorCategoria
	if byCategory == nil {
		byCategory = map[string]float64{}
	}
	return model.CloseSummary{
		Period:        p.Periodo,
		ByCategory:    byCategory,
		TotalIncome:   p.TotalIngresos,
		TotalExpenses: p.TotalGastos,
		Net:           p.Neto,
	}
}

type closePreviewPayload struct {
	Resumen          closeSummaryPayload `json:"resumen"`
	GastosPendientes int                 `json:"gastosPendientes"`
	IngresosPendientes int               `json:"ingresosPendientes"`
	Listo            bool                `json:"listo"`
}

type closeResultPayload struct {
	PeriodoCerrado  string              `json:"periodoCerrado"`
	PeriodoSiguiente string             `json:"periodoSiguiente"`
	CerradoEn       string              `json:"cerradoEn"`
	EntradasCerradas int                `json:"entradasCerradas"`
	Resumen         closeSummaryPayload `json:"resumen"`
}

// PreviewClose asks the backend for a dry run of the month close.
func (c *Client) PreviewClose(ctx context.Context) (*model.ClosePreview, error) {
	var payload closePreviewPayload
	if err := c.get(ctx, "/reinicio/preview", nil, &payload); err != nil {
		return nil, fmt.Errorf("failed to preview month close: %w", err)
	}

	return &model.ClosePreview{
		Summary:         payload.Resumen.toModel(),
		PendingExpenses: payload.GastosPendientes,
		PendingIncomes:  payload.IngresosPendientes,
		Ready:           payload.Listo,
	}, nil
}

// ExecuteClose finalizes the current period and opens the next one. The
// backend does the real work; this call can be slow, so run it through a
// slow client. A conflict means the period was already closed.
func (c *Client) ExecuteClose(ctx context.Context) (*model.CloseResult, error) {
	var payload closeResultPayload
	if err := c.post(ctx, "/reinicio", nil, &payload); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			switch apiErr.Status {
			case http.StatusConflict:
				return nil, fmt.Errorf("%w: %v", common.ErrPeriodAlreadyClosed, err)
			case http.StatusPreconditionFailed:
				return nil, fmt.Errorf("%w: %v", common.ErrPeriodNotReady, err)
			}
		}
		return nil, fmt.Errorf("failed to execute month close: %w", err)
	}

	return &model.CloseResult{
		ClosedPeriod:  payload.PeriodoCerrado,
		NextPeriod:    payload.PeriodoSiguiente,
		ClosedAt:      model.ParseDate(payload.CerradoEn),
		EntriesClosed: payload.EntradasCerradas,
		Summary:       payload.Resumen.toModel(),
	}, nil
}

// GetCloseSummary fetches the stored summary of an already-closed period,
// e.g. for export.
func (c *Client) GetCloseSummary(ctx context.Context, period string) (*model.CloseSummary, error) {
	var payload closeSummaryPayload
	if err := c.get(ctx, "/reinicio/"+period, nil, &payload); err != nil {
		return nil, fmt.Errorf("failed to fetch close summary for %s: %w", period, err)
	}

	summary := payload.toModel()
	return &summary, nil
}
