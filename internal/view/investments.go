package view

import (
	"context"
	"fmt"

	"github.com/patrio-app/patrio/internal/model"
)

// InvestmentSource is the slice of the backend the investment list needs.
type InvestmentSource interface {
	ListInvestments(ctx context.Context) ([]model.Investment, error)
	GetInvestmentKPIs(ctx context.Context, id string) (*model.InvestmentKPIs, error)
}

// LoadInvestmentRows fetches the investment collection and enriches each row
// with its KPI lookup.
func LoadInvestmentRows(ctx context.Context, src InvestmentSource, opts EnrichOptions) ([]model.InvestmentRow, error) {
	investments, err := src.ListInvestments(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load investments: %w", err)
	}

	rows := make([]model.InvestmentRow, len(investments))
	for i, v := range investments {
		rows[i] = model.InvestmentRow{Investment: v}
	}

	lookups := []Lookup[model.InvestmentRow]{
		func(ctx context.Context, row *model.InvestmentRow) error {
			kpis, err := src.GetInvestmentKPIs(ctx, row.ID)
			if err != nil {
				return err
			}
			row.KPIs = kpis
			return nil
		},
	}

	return Enrich(ctx, rows, lookups, opts), nil
}

// InvestmentFilterOptions are the user-facing filter knobs of the
// investment list.
type InvestmentFilterOptions struct {
	Search  string
	Vehicle string
	Active  TriState
}

// NewInvestmentFilter builds the investment list's filter state.
func NewInvestmentFilter(opts InvestmentFilterOptions) *FilterState[model.InvestmentRow] {
	return NewFilterState[model.InvestmentRow](
		NewSearchPredicate(opts.Search, model.InvestmentRow.SearchFields),
		NewCategoryPredicate("vehicle", opts.Vehicle, func(r model.InvestmentRow) string { return r.Vehicle }),
		NewFlagPredicate("active", opts.Active, func(r model.InvestmentRow) bool { return r.Active }),
	)
}

// InvestmentRanking orders investments: active ones first, then the
// selected metric descending, tie-broken by start date descending.
func InvestmentRanking(metric model.InvestmentMetric) Ranking[model.InvestmentRow] {
	return Ranking[model.InvestmentRow]{
		Group: func(r model.InvestmentRow) bool { return r.Active },
		Metric: func(r model.InvestmentRow) (float64, bool) {
			return r.Metric(metric)
		},
		Date: func(r model.InvestmentRow) model.Date { return r.StartDate },
	}
}
