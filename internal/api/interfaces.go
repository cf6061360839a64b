package api

import (
	"context"

	"github.com/patrio-app/patrio/internal/model"
)

// Service interfaces let commands and the TUI take only the endpoints they
// use, and make the client easy to mock in tests.

// ExpenseService covers the expense list and mutation endpoints.
type ExpenseService interface {
	ListGestionables(ctx context.Context) ([]model.Expense, error)
	ListCotidianos(ctx context.Context) ([]model.Expense, error)
	CreateCotidiano(ctx context.Context, e model.Expense) (*model.Expense, error)
	SetExpensePaid(ctx context.Context, id string, paid bool) error
	DeleteExpense(ctx context.Context, id string) error
}

// IncomeService covers the income endpoints.
type IncomeService interface {
	ListIncomes(ctx context.Context) ([]model.Income, error)
}

// LoanService covers the loan endpoints.
type LoanService interface {
	ListLoans(ctx context.Context) ([]model.Loan, error)
	GetLoanSchedule(ctx context.Context, id string) ([]model.Installment, error)
}

// InvestmentService covers the investment endpoints.
type InvestmentService interface {
	ListInvestments(ctx context.Context) ([]model.Investment, error)
	GetInvestmentKPIs(ctx context.Context, id string) (*model.InvestmentKPIs, error)
}

// PropertyService covers the patrimonio endpoints.
type PropertyService interface {
	ListProperties(ctx context.Context) ([]model.Property, error)
	GetPropertyKPIs(ctx context.Context, id string) (*model.PropertyKPIs, error)
	GetPropertyPurchase(ctx context.Context, id string) (*model.PurchaseRecord, error)
	GetPropertyValuation(ctx context.Context, id string) (*model.Valuation, error)
}

// ReinicioService covers the month-close workflow.
type ReinicioService interface {
	PreviewClose(ctx context.Context) (*model.ClosePreview, error)
	ExecuteClose(ctx context.Context) (*model.CloseResult, error)
	GetCloseSummary(ctx context.Context, period string) (*model.CloseSummary, error)
}

// Compile-time checks that Client implements every service.
var (
	_ ExpenseService    = (*Client)(nil)
	_ IncomeService     = (*Client)(nil)
	_ LoanService       = (*Client)(nil)
	_ InvestmentService = (*Client)(nil)
	_ PropertyService   = (*Client)(nil)
	_ ReinicioService   = (*Client)(nil)
)
