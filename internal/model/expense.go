package model

import (
	"crypto/sha256"
	"fmt"
	"strings"
)

// ExpenseKind distinguishes recurring managed entries from everyday ones.
type ExpenseKind string

// Expense kinds.
const (
	// KindGestionable is a recurring/managed expense or income entry.
	KindGestionable ExpenseKind = "gestionable"
	// KindCotidiano is an everyday incidental expense.
	KindCotidiano ExpenseKind = "cotidiano"
)

// Expense represents a single expense entry from the backend.
type Expense struct {
	ID       string
	Kind     ExpenseKind
	Name     string
	Category string
	Provider Provider
	Amount   float64
	Currency string
	Date     Date
	Paid     bool
	Active   bool
	Notes    string
}

// Normalize fills defaults for fields the backend may omit. It is called
// once at the API boundary so downstream code never re-checks for blanks.
func (e *Expense) Normalize() {
	if e.Kind == "" {
		e.Kind = KindCotidiano
	}
	if e.Currency == "" {
		e.Currency = "EUR"
	}
	if e.Category == "" {
		e.Category = "uncategorized"
	}
	if e.Provider.Kind == "" {
		e.Provider.Kind = ProviderOther
	}
	e.Name = strings.TrimSpace(e.Name)
}

// SearchFields returns the strings the text filter matches against.
func (e Expense) SearchFields() []string {
	return []string{e.Name, e.Category, e.Provider.Name}
}

// Fingerprint identifies an expense for import deduplication: two entries
// with the same date, amount, and provider are considered the same charge.
func (e Expense) Fingerprint() string {
	data := fmt.Sprintf("%s:%.2f:%s",
		e.Date.Raw,
		e.Amount,
		e.Provider.Name)
	return fmt.Sprintf("%x", sha256.Sum256([]byte(data)))
}
