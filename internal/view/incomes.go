package view

import (
	"time"

	"github.com/patrio-app/patrio/internal/model"
)

// IncomeFilterOptions are the user-facing filter knobs of the income list.
type IncomeFilterOptions struct {
	Search   string
	Category string
	Source   string
	Received TriState
	Active   TriState
	From     *time.Time
	To       *time.Time
}

// NewIncomeFilter builds the income list's filter state.
func NewIncomeFilter(opts IncomeFilterOptions) *FilterState[model.Income] {
	return NewFilterState[model.Income](
		NewSearchPredicate(opts.Search, model.Income.SearchFields),
		NewCategoryPredicate("category", opts.Category, func(i model.Income) string { return i.Category }),
		NewCategoryPredicate("source", opts.Source, func(i model.Income) string { return i.Source.Name }),
		NewFlagPredicate("received", opts.Received, func(i model.Income) bool { return i.Received }),
		NewFlagPredicate("active", opts.Active, func(i model.Income) bool { return i.Active }),
		NewDateRangePredicate("date", opts.From, opts.To, func(i model.Income) model.Date { return i.Date }),
	)
}

// IncomeRanking orders incomes: active ones first, then amount descending,
// tie-broken by date descending.
func IncomeRanking() Ranking[model.Income] {
	return Ranking[model.Income]{
		Group:  func(i model.Income) bool { return i.Active },
		Metric: func(i model.Income) (float64, bool) { return i.Amount, true },
		Date:   func(i model.Income) model.Date { return i.Date },
	}
}
