package model

import "strings"

// Income represents a single income entry from the backend.
type Income struct {
	ID       string
	Name     string
	Source   Provider
	Category string
	Amount   float64
	Currency string
	Date     Date
	Received bool
	Active   bool
}

// Normalize fills defaults for fields the backend may omit.
func (i *Income) Normalize() {
	if i.Currency == "" {
		i.Currency = "EUR"
	}
	if i.Category == "" {
		i.Category = "uncategorized"
	}
	if i.Source.Kind == "" {
		i.Source.Kind = ProviderOther
	}
	i.Name = strings.TrimSpace(i.Name)
}

// SearchFields returns the strings the text filter matches against.
func (i Income) SearchFields() []string {
	return []string{i.Name, i.Category, i.Source.Name}
}
