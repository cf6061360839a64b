package api

import (
	"context"

	"github.com/patrio-app/patrio/internal/model"
)

// MockPropertyService is a test double for PropertyService.
type MockPropertyService struct {
	ListPropertiesFn       func(ctx context.Context) ([]model.Property, error)
	GetPropertyKPIsFn      func(ctx context.Context, id string) (*model.PropertyKPIs, error)
	GetPropertyPurchaseFn  func(ctx context.Context, id string) (*model.PurchaseRecord, error)
	GetPropertyValuationFn func(ctx context.Context, id string) (*model.Valuation, error)

	KPICalls []string
}

// ListProperties implements PropertyService.
func (m *MockPropertyService) ListProperties(ctx context.Context) ([]model.Property, error) {
	if m.ListPropertiesFn != nil {
		return m.ListPropertiesFn(ctx)
	}
	return []model.Property{}, nil
}

// GetPropertyKPIs implements PropertyService.
func (m *MockPropertyService) GetPropertyKPIs(ctx context.Context, id string) (*model.PropertyKPIs, error) {
	m.KPICalls = append(m.KPICalls, id)
	if m.GetPropertyKPIsFn != nil {
		return m.GetPropertyKPIsFn(ctx, id)
	}
	return &model.PropertyKPIs{}, nil
}

// GetPropertyPurchase implements PropertyService.
func (m *MockPropertyService) GetPropertyPurchase(ctx context.Context, id string) (*model.PurchaseRecord, error) {
	if m.GetPropertyPurchaseFn != nil {
		return m.GetPropertyPurchaseFn(ctx, id)
	}
	return &model.PurchaseRecord{}, nil
}

// GetPropertyValuation implements PropertyService.
func (m *MockPropertyService) GetPropertyValuation(ctx context.Context, id string) (*model.Valuation, error) {
	if m.GetPropertyValuationFn != nil {
		return m.GetPropertyValuationFn(ctx, id)
	}
	return &model.Valuation{}, nil
}

// MockInvestmentService is a test double for InvestmentService.
type MockInvestmentService struct {
	ListInvestmentsFn    func(ctx context.Context) ([]model.Investment, error)
	GetInvestmentKPIsFn  func(ctx context.Context, id string) (*model.InvestmentKPIs, error)

	KPICalls []string
}

// ListInvestments implements InvestmentService.
func (m *MockInvestmentService) ListInvestments(ctx context.Context) ([]model.Investment, error) {
	if m.ListInvestmentsFn != nil {
		return m.ListInvestmentsFn(ctx)
	}
	return []model.Investment{}, nil
}

// GetInvestmentKPIs implements InvestmentService.
func (m *MockInvestmentService) GetInvestmentKPIs(ctx context.Context, id string) (*model.InvestmentKPIs, error) {
	m.KPICalls = append(m.KPICalls, id)
	if m.GetInvestmentKPIsFn != nil {
		return m.GetInvestmentKPIsFn(ctx, id)
	}
	return &model.InvestmentKPIs{}, nil
}

// MockExpenseService is a test double for ExpenseService.
type MockExpenseService struct {
	ListGestionablesFn func(ctx context.Context) ([]model.Expense, error)
	ListCotidianosFn   func(ctx context.Context) ([]model.Expense, error)
	CreateCotidianoFn  func(ctx context.Context, e model.Expense) (*model.Expense, error)
	SetExpensePaidFn   func(ctx context.Context, id string, paid bool) error
	DeleteExpenseFn    func(ctx context.Context, id string) error

	Created []model.Expense
}

// ListGestionables implements ExpenseService.
func (m *MockExpenseService) ListGestionables(ctx context.Context) ([]model.Expense, error) {
	if m.ListGestionablesFn != nil {
		return m.ListGestionablesFn(ctx)
	}
	return []model.Expense{}, nil
}

// ListCotidianos implements ExpenseService.
func (m *MockExpenseService) ListCotidianos(ctx context.Context) ([]model.Expense, error) {
	if m.ListCotidianosFn != nil {
		return m.ListCotidianosFn(ctx)
	}
	return []model.Expense{}, nil
}

// CreateCotidiano implements ExpenseService.
func (m *MockExpenseService) CreateCotidiano(ctx context.Context, e model.Expense) (*model.Expense, error) {
	m.Created = append(m.Created, e)
	if m.CreateCotidianoFn != nil {
		return m.CreateCotidianoFn(ctx, e)
	}
	created := e
	return &created, nil
}

// SetExpensePaid implements ExpenseService.
func (m *MockExpenseService) SetExpensePaid(ctx context.Context, id string, paid bool) error {
	if m.SetExpensePaidFn != nil {
		return m.SetExpensePaidFn(ctx, id, paid)
	}
	return nil
}

// DeleteExpense implements ExpenseService.
func (m *MockExpenseService) DeleteExpense(ctx context.Context, id string) error {
	if m.DeleteExpenseFn != nil {
		return m.DeleteExpenseFn(ctx, id)
	}
	return nil
}

// MockReinicioService is a test double for ReinicioService.
type MockReinicioService struct {
	PreviewCloseFn    func(ctx context.Context) (*model.ClosePreview, error)
	ExecuteCloseFn    func(ctx context.Context) (*model.CloseResult, error)
	GetCloseSummaryFn func(ctx context.Context, period string) (*model.CloseSummary, error)

	ExecuteCalls int
}

// PreviewClose implements ReinicioService.
func (m *MockReinicioService) PreviewClose(ctx context.Context) (*model.ClosePreview, error) {
	if m.PreviewCloseFn != nil {
		return m.PreviewCloseFn(ctx)
	}
	return &model.ClosePreview{Ready: true}, nil
}

// ExecuteClose implements ReinicioService.
func (m *MockReinicioService) ExecuteClose(ctx context.Context) (*model.CloseResult, error) {
	m.ExecuteCalls++
	if m.ExecuteCloseFn != nil {
		return m.ExecuteCloseFn(ctx)
	}
	return &model.CloseResult{}, nil
}

// GetCloseSummary implements ReinicioService.
func (m *MockReinicioService) GetCloseSummary(ctx context.Context, period string) (*model.CloseSummary, error) {
	if m.GetCloseSummaryFn != nil {
		return m.GetCloseSummaryFn(ctx, period)
	}
	return &model.CloseSummary{Period: period}, nil
}

// Compile-time interface checks.
var (
	_ PropertyService   = (*MockPropertyService)(nil)
	_ InvestmentService = (*MockInvestmentService)(nil)
	_ ExpenseService    = (*MockExpenseService)(nil)
	_ ReinicioService   = (*MockReinicioService)(nil)
)
