package view

import (
	"context"
	"fmt"
	"time"

	"github.com/patrio-app/patrio/internal/model"
)

// PropertySource is the slice of the backend the property list needs.
type PropertySource interface {
	ListProperties(ctx context.Context) ([]model.Property, error)
	GetPropertyKPIs(ctx context.Context, id string) (*model.PropertyKPIs, error)
	GetPropertyPurchase(ctx context.Context, id string) (*model.PurchaseRecord, error)
	GetPropertyValuation(ctx context.Context, id string) (*model.Valuation, error)
}

// LoadPropertyRows fetches the patrimonio collection and enriches each row
// with its KPI, purchase, and valuation lookups. A base-list failure fails
// the load; lookup failures leave the corresponding field nil.
func LoadPropertyRows(ctx context.Context, src PropertySource, opts EnrichOptions) ([]model.PropertyRow, error) {
	properties, err := src.ListProperties(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load properties: %w", err)
	}

	rows := make([]model.PropertyRow, len(properties))
	for i, p := range properties {
		rows[i] = model.PropertyRow{Property: p}
	}

	lookups := []Lookup[model.PropertyRow]{
		func(ctx context.Context, row *model.PropertyRow) error {
			kpis, err := src.GetPropertyKPIs(ctx, row.ID)
			if err != nil {
				return err
			}
			row.KPIs = kpis
			return nil
		},
		func(ctx context.Context, row *model.PropertyRow) error {
			purchase, err := src.GetPropertyPurchase(ctx, row.ID)
			if err != nil {
				return err
			}
			row.Purchase = purchase
			return nil
		},
		func(ctx context.Context, row *model.PropertyRow) error {
			valuation, err := src.GetPropertyValuation(ctx, row.ID)
			if err != nil {
				return err
			}
			row.Valuation = valuation
			return nil
		},
	}

	return Enrich(ctx, rows, lookups, opts), nil
}

// PropertyFilterOptions are the user-facing filter knobs of the property
// list.
type PropertyFilterOptions struct {
	Search   string
	Category string
	City     string
	Rented   TriState
	Active   TriState
	From     *time.Time
	To       *time.Time
}

// NewPropertyFilter builds the property list's filter state.
func NewPropertyFilter(opts PropertyFilterOptions) *FilterState[model.PropertyRow] {
	return NewFilterState[model.PropertyRow](
		NewSearchPredicate(opts.Search, model.PropertyRow.SearchFields),
		NewCategoryPredicate("category", opts.Category, func(r model.PropertyRow) string { return r.Category }),
		NewCategoryPredicate("city", opts.City, func(r model.PropertyRow) string { return r.City }),
		NewFlagPredicate("rented", opts.Rented, func(r model.PropertyRow) bool { return r.Rented }),
		NewFlagPredicate("active", opts.Active, func(r model.PropertyRow) bool { return r.Active }),
		NewDateRangePredicate("purchased", opts.From, opts.To, model.PropertyRow.PurchaseDate),
	)
}

// PropertyRanking orders properties: active ones first, then the selected
// KPI descending, tie-broken by purchase date descending.
func PropertyRanking(metric model.PropertyMetric) Ranking[model.PropertyRow] {
	return Ranking[model.PropertyRow]{
		Group: func(r model.PropertyRow) bool { return r.Active },
		Metric: func(r model.PropertyRow) (float64, bool) {
			return r.Metric(metric)
		},
		Date: model.PropertyRow.PurchaseDate,
	}
}
