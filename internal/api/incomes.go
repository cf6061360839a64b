package api

import (
	"context"
	"fmt"

	"github.com/patrio-app/patrio/internal/model"
)

type incomePayload struct {
	ID          string  `json:"id"`
	Nombre      string  `json:"nombre"`
	Categoria   string  `json:"categoria"`
	Importe     float64 `json:"importe"`
	Moneda      string  `json:"moneda"`
	Fecha       string  `json:"fecha"`
	Recibido    bool    `json:"recibido"`
	Activo      bool    `json:"activo"`
	Fuente      string  `json:"fuente"`
	FuenteID    string  `json:"fuenteId"`
	CategoriaID int     `json:"categoriaFuenteId"`
}

func (p incomePayload) toModel() model.Income {
	i := model.Income{
		ID:       p.ID,
		Name:     p.Nombre,
		Category: p.Categoria,
		Amount:   p.Importe,
		Currency: p.Moneda,
		Date:     model.ParseDate(p.Fecha),
		Received: p.Recibido,
		Active:   p.Activo,
		Source: model.Provider{
			ID:   p.FuenteID,
			Name: p.Fuente,
			Kind: model.ResolveProviderKind(p.CategoriaID),
		},
	}
	i.Normalize()
	return i
}

// ListIncomes fetches all income entries.
func (c *Client) ListIncomes(ctx context.Context) ([]model.Income, error) {
	var payload []incomePayload
	if err := c.get(ctx, "/ingresos", nil, &payload); err != nil {
		return nil, fmt.Errorf("failed to list incomes: %w", err)
	}

	incomes := make([]model.Income, 0, len(payload))
	for _, p := range payload {
		incomes = append(incomes, p.toModel())
	}
	return incomes, nil
}
