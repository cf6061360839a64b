package api

import (
	"context"
	"fmt"

	"github.com/patrio-app/patrio/internal/model"
)

// expensePayload mirrors the backend's loosely-typed expense shape. Optional
// fields decode to zero values and are defaulted once in Normalize.
type expensePayload struct {
	ID          string  `json:"id"`
	Nombre      string  `json:"nombre"`
	Categoria   string  `json:"categoria"`
	Importe     float64 `json:"importe"`
	Moneda      string  `json:"moneda"`
	Fecha       string  `json:"fecha"`
	Pagado      bool    `json:"pagado"`
	Activo      bool    `json:"activo"`
	Notas       string  `json:"notas"`
	Proveedor   string  `json:"proveedor"`
	ProveedorID string  `json:"proveedorId"`
	CategoriaID int     `json:"categoriaProveedorId"`
}

func (p expensePayload) toModel(kind model.ExpenseKind) model.Expense {
	e := model.Expense{
		ID:       p.ID,
		Kind:     kind,
		Name:     p.Nombre,
		Category: p.Categoria,
		Amount:   p.Importe,
		Currency: p.Moneda,
		Date:     model.ParseDate(p.Fecha),
		Paid:     p.Pagado,
		Active:   p.Activo,
		Notes:    p.Notas,
		Provider: model.Provider{
			ID:   p.ProveedorID,
			Name: p.Proveedor,
			Kind: model.ResolveProviderKind(p.CategoriaID),
		},
	}
	e.Normalize()
	return e
}

// ListGestionables fetches the recurring/managed expense entries.
func (c *Client) ListGestionables(ctx context.Context) ([]model.Expense, error) {
	var payload []expensePayload
	if err := c.get(ctx, "/gestionables", nil, &payload); err != nil {
		return nil, fmt.Errorf("failed to list gestionables: %w", err)
	}

	expenses := make([]model.Expense, 0, len(payload))
	for _, p := range payload {
		expenses = append(expenses, p.toModel(model.KindGestionable))
	}
	return expenses, nil
}

// ListCotidianos fetches the everyday expense entries.
func (c *Client) ListCotidianos(ctx context.Context) ([]model.Expense, error) {
	var payload []expensePayload
	if err := c.get(ctx, "/cotidianos", nil, &payload); err != nil {
		return nil, fmt.Errorf("failed to list cotidianos: %w", err)
	}

	expenses := make([]model.Expense, 0, len(payload))
	for _, p := range payload {
		expenses = append(expenses, p.toModel(model.KindCotidiano))
	}
	return expenses, nil
}

// createExpenseRequest is the mutation payload for new expenses.
type createExpenseRequest struct {
	Nombre    string  `json:"nombre"`
	Categoria string  `json:"categoria,omitempty"`
	Importe   float64 `json:"importe"`
	Moneda    string  `json:"moneda,omitempty"`
	Fecha     string  `json:"fecha,omitempty"`
	Proveedor string  `json:"proveedor,omitempty"`
	Notas     string  `json:"notas,omitempty"`
}

// CreateCotidiano creates an everyday expense and returns the stored entry.
func (c *Client) CreateCotidiano(ctx context.Context, e model.Expense) (*model.Expense, error) {
	req := createExpenseRequest{
		Nombre:    e.Name,
		Categoria: e.Category,
		Importe:   e.Amount,
		Moneda:    e.Currency,
		Fecha:     e.Date.Raw,
		Proveedor: e.Provider.Name,
		Notas:     e.Notes,
	}

	var payload expensePayload
	if err := c.post(ctx, "/cotidianos", req, &payload); err != nil {
		return nil, fmt.Errorf("failed to create cotidiano: %w", err)
	}

	created := payload.toModel(model.KindCotidiano)
	return &created, nil
}

// SetExpensePaid toggles an expense's paid flag. The in-memory list is not
// patched by callers; a full reload follows success.
func (c *Client) SetExpensePaid(ctx context.Context, id string, paid bool) error {
	body := map[string]bool{"pagado": paid}
	if err := c.put(ctx, "/gestionables/"+id+"/pago", body, nil); err != nil {
		return fmt.Errorf("failed to update paid state for expense %s: %w", id, err)
	}
	return nil
}

// DeleteExpense removes an expense entry.
func (c *Client) DeleteExpense(ctx context.Context, id string) error {
	if err := c.delete(ctx, "/gestionables/"+id); err != nil {
		return fmt.Errorf("failed to delete expense %s: %w", id, err)
	}
	return nil
}
