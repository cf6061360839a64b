package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/patrio-app/patrio/internal/model"
)

// ExpenseListMode is the screen-level mode of the expense list. The pending
// and paid modes pin the paid flag: it still filters, but does not count as
// a user-applied filter.
type ExpenseListMode string

// Expense list modes.
const (
	ExpenseModeAll     ExpenseListMode = "all"
	ExpenseModePending ExpenseListMode = "pending"
	ExpenseModePaid    ExpenseListMode = "paid"
)

// ParseExpenseListMode parses a CLI mode name.
func ParseExpenseListMode(s string) (ExpenseListMode, error) {
	switch ExpenseListMode(strings.ToLower(s)) {
	case ExpenseModeAll, "":
		return ExpenseModeAll, nil
	case ExpenseModePending:
		return ExpenseModePending, nil
	case ExpenseModePaid:
		return ExpenseModePaid, nil
	}
	return "", fmt.Errorf("unknown expense mode %q (want all, pending, or paid)", s)
}

// ExpenseFilterOptions are the user-facing filter knobs of the expense
// lists.
type ExpenseFilterOptions struct {
	Mode     ExpenseListMode
	Search   string
	Category string
	Provider string
	Paid     TriState
	Active   TriState
	From     *time.Time
	To       *time.Time
}

// NewExpenseFilter builds the expense list's filter state. In pending or
// paid mode the paid flag is pinned and the user's own paid filter is
// ignored.
func NewExpenseFilter(opts ExpenseFilterOptions) *FilterState[model.Expense] {
	paidField := func(e model.Expense) bool { return e.Paid }

	paid := NewFlagPredicate("paid", opts.Paid, paidField)
	switch opts.Mode {
	case ExpenseModePending:
		paid = NewFlagPredicate("paid", FlagFalse, paidField).Pin()
	case ExpenseModePaid:
		paid = NewFlagPredicate("paid", FlagTrue, paidField).Pin()
	}

	return NewFilterState[model.Expense](
		NewSearchPredicate(opts.Search, model.Expense.SearchFields),
		NewCategoryPredicate("category", opts.Category, func(e model.Expense) string { return e.Category }),
		NewCategoryPredicate("provider", opts.Provider, func(e model.Expense) string { return e.Provider.Name }),
		paid,
		NewFlagPredicate("active", opts.Active, func(e model.Expense) bool { return e.Active }),
		NewDateRangePredicate("date", opts.From, opts.To, func(e model.Expense) model.Date { return e.Date }),
	)
}

// ExpenseRanking orders expenses: active ones first, then amount descending,
// tie-broken by date descending.
func ExpenseRanking() Ranking[model.Expense] {
	return Ranking[model.Expense]{
		Group:  func(e model.Expense) bool { return e.Active },
		Metric: func(e model.Expense) (float64, bool) { return e.Amount, true },
		Date:   func(e model.Expense) model.Date { return e.Date },
	}
}
