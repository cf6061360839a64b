package api

import (
	"context"
	"fmt"

	"github.com/patrio-app/patrio/internal/model"
)

type propertyPayload struct {
	ID        string `json:"id"`
	Nombre    string `json:"nombre"`
	Direccion string `json:"direccion"`
	Ciudad    string `json:"ciudad"`
	Categoria string `json:"categoria"`
	Moneda    string `json:"moneda"`
	Alquilado bool   `json:"alquilado"`
	Activo    bool   `json:"activo"`
}

func (p propertyPayload) toModel() model.Property {
	prop := model.Property{
		ID:       p.ID,
		Name:     p.Nombre,
		Address:  p.Direccion,
		City:     p.Ciudad,
		Category: p.Categoria,
		Currency: p.Moneda,
		Rented:   p.Alquilado,
		Active:   p.Activo,
	}
	prop.Normalize()
	return prop
}

type propertyKPIPayload struct {
	RentabilidadBruta *float64 `json:"rentabilidadBruta"`
	RentabilidadNeta  *float64 `json:"rentabilidadNeta"`
	CapRate           *float64 `json:"capRate"`
	NOI               *float64 `json:"noi"`
}

type purchasePayload struct {
	Precio float64 `json:"precio"`
	Gastos float64 `json:"gastos"`
	Fecha  string  `json:"fecha"`
}

type valuationPayload struct {
	Valor float64 `json:"valor"`
	Fecha string  `json:"fecha"`
}

// ListProperties fetches the patrimonio collection.
func (c *Client) ListProperties(ctx context.Context) ([]model.Property, error) {
	var payload []propertyPayload
	if err := c.get(ctx, "/patrimonio", nil, &payload); err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}

	properties := make([]model.Property, 0, len(payload))
	for _, p := range payload {
		properties = append(properties, p.toModel())
	}
	return properties, nil
}

// GetPropertyKPIs fetches the computed yield block for one property.
func (c *Client) GetPropertyKPIs(ctx context.Context, id string) (*model.PropertyKPIs, error) {
	var payload propertyKPIPayload
	if err := c.get(ctx, "/patrimonio/"+id+"/kpis", nil, &payload); err != nil {
		return nil, fmt.Errorf("failed to fetch KPIs for property %s: %w", id, err)
	}

	return &model.PropertyKPIs{
		GrossYield: payload.RentabilidadBruta,
		NetYield:   payload.RentabilidadNeta,
		CapRate:    payload.CapRate,
		NOI:        payload.NOI,
	}, nil
}

// GetPropertyPurchase fetches the acquisition record for one property.
func (c *Client) GetPropertyPurchase(ctx context.Context, id string) (*model.PurchaseRecord, error) {
	var payload purchasePayload
	if err := c.get(ctx, "/patrimonio/"+id+"/compra", nil, &payload); err != nil {
		return nil, fmt.Errorf("failed to fetch purchase for property %s: %w", id, err)
	}

	return &model.PurchaseRecord{
		Price: payload.Precio,
		Costs: payload.Gastos,
		Date:  model.ParseDate(payload.Fecha),
	}, nil
}

// GetPropertyValuation fetches the latest appraisal for one property.
func (c *Client) GetPropertyValuation(ctx context.Context, id string) (*model.Valuation, error) {
	var payload valuationPayload
	if err := c.get(ctx, "/patrimonio/"+id+"/valoracion", nil, &payload); err != nil {
		return nil, fmt.Errorf("failed to fetch valuation for property %s: %w", id, err)
	}

	return &model.Valuation{
		Value: payload.Valor,
		Date:  model.ParseDate(payload.Fecha),
	}, nil
}
