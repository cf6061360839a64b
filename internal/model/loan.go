package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Loan represents a loan tracked against the backend.
type Loan struct {
	ID         string
	Name       string
	Lender     Provider
	Principal  float64
	AnnualRate float64 // nominal annual rate, percent
	TermMonths int
	StartDate  Date
	Currency   string
	Active     bool
}

// Normalize fills defaults for fields the backend may omit.
func (l *Loan) Normalize() {
	if l.Currency == "" {
		l.Currency = "EUR"
	}
	if l.Lender.Kind == "" {
		l.Lender.Kind = ProviderOther
	}
}

// SearchFields returns the strings the text filter matches against.
func (l Loan) SearchFields() []string {
	return []string{l.Name, l.Lender.Name}
}

// Installment is one row of an amortization schedule. Schedules returned by
// the backend are authoritative; AmortizationPreview produces the same shape
// locally for sanity checks.
type Installment struct {
	Number    int
	Date      Date
	Payment   float64
	Interest  float64
	Principal float64
	Balance   float64
}

// AmortizationPreview computes a French-method (constant payment) schedule
// for the loan using decimal arithmetic, rounding money to cents. The final
// installment absorbs rounding drift so the balance lands on exactly zero.
func (l Loan) AmortizationPreview() ([]Installment, error) {
	if l.Principal <= 0 {
		return nil, fmt.Errorf("principal must be positive, got %.2f", l.Principal)
	}
	if l.TermMonths <= 0 {
		return nil, fmt.Errorf("term must be positive, got %d months", l.TermMonths)
	}
	if l.AnnualRate < 0 {
		return nil, fmt.Errorf("rate must not be negative, got %.4f", l.AnnualRate)
	}

	principal := decimal.NewFromFloat(l.Principal).Round(2)
	n := int64(l.TermMonths)

	// Zero-rate loans degrade to straight principal division.
	if l.AnnualRate == 0 {
		return l.zeroRateSchedule(principal, n), nil
	}

	monthlyRate := decimal.NewFromFloat(l.AnnualRate).
		Div(decimal.NewFromInt(1200))

	factor := decimal.NewFromInt(1).Add(monthlyRate).Pow(decimal.NewFromInt(n))
	payment := principal.Mul(monthlyRate).Mul(factor).
		Div(factor.Sub(decimal.NewFromInt(1))).
		Round(2)

	schedule := make([]Installment, 0, l.TermMonths)
	balance := principal

	for i := 1; i <= l.TermMonths; i++ {
		interest := balance.Mul(monthlyRate).Round(2)
		principalPart := payment.Sub(interest)
		if i == l.TermMonths {
			principalPart = balance
			payment = interest.Add(principalPart)
		}
		balance = balance.Sub(principalPart)

		schedule = append(schedule, Installment{
			Number:    i,
			Date:      l.installmentDate(i),
			Payment:   payment.InexactFloat64(),
			Interest:  interest.InexactFloat64(),
			Principal: principalPart.InexactFloat64(),
			Balance:   balance.InexactFloat64(),
		})
	}

	return schedule, nil
}

func (l Loan) zeroRateSchedule(principal decimal.Decimal, n int64) []Installment {
	payment := principal.Div(decimal.NewFromInt(n)).Round(2)
	schedule := make([]Installment, 0, n)
	balance := principal

	for i := int64(1); i <= n; i++ {
		part := payment
		if i == n {
			part = balance
		}
		balance = balance.Sub(part)
		schedule = append(schedule, Installment{
			Number:    int(i),
			Date:      l.installmentDate(int(i)),
			Payment:   part.InexactFloat64(),
			Principal: part.InexactFloat64(),
			Balance:   balance.InexactFloat64(),
		})
	}
	return schedule
}

func (l Loan) installmentDate(number int) Date {
	if !l.StartDate.Valid {
		return Date{}
	}
	return DateOf(l.StartDate.Time.AddDate(0, number, 0))
}
