// Package view implements the ranked list pipeline shared by the list
// screens: fetch-and-enrich, local filtering, and rank-and-sort. Everything
// here is a deterministic projection of already-fetched rows; nothing talks
// to the network except the enrichment lookups it is handed.
package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/patrio-app/patrio/internal/model"
)

// TriState is a three-valued flag filter: unconstrained, require true, or
// require false.
type TriState int

// TriState values.
const (
	FlagAny TriState = iota
	FlagTrue
	FlagFalse
)

// ParseTriState parses a CLI flag value into a TriState.
func ParseTriState(s string) (TriState, error) {
	switch strings.ToLower(s) {
	case "", "all", "any":
		return FlagAny, nil
	case "yes", "true", "y":
		return FlagTrue, nil
	case "no", "false", "n":
		return FlagFalse, nil
	}
	return FlagAny, fmt.Errorf("invalid flag filter %q (want all, yes, or no)", s)
}

// Predicate is a single named filter over rows of type T. Predicates compose
// by logical AND; an inactive predicate matches everything.
type Predicate[T any] interface {
	Name() string
	// Active reports whether the predicate differs from its default
	// (unconstrained) value.
	Active() bool
	// Pinned reports whether the predicate is forced by a screen mode and
	// therefore not user-editable. Pinned predicates still filter, but do
	// not count as user-applied filters.
	Pinned() bool
	Match(row T) bool
}

// FilterState is a conjunction of independently toggleable predicates.
type FilterState[T any] struct {
	predicates []Predicate[T]
}

// NewFilterState builds a filter state from the given predicates.
func NewFilterState[T any](predicates ...Predicate[T]) *FilterState[T] {
	return &FilterState[T]{predicates: predicates}
}

// Add appends a predicate.
func (s *FilterState[T]) Add(p Predicate[T]) {
	s.predicates = append(s.predicates, p)
}

// Apply returns the rows matching every active predicate, preserving input
// order. With no active predicates the input is returned unchanged.
func (s *FilterState[T]) Apply(rows []T) []T {
	active := make([]Predicate[T], 0, len(s.predicates))
	for _, p := range s.predicates {
		if p.Active() {
			active = append(active, p)
		}
	}
	if len(active) == 0 {
		return rows
	}

	out := make([]T, 0, len(rows))
rowLoop:
	for _, row := range rows {
		for _, p := range active {
			if !p.Match(row) {
				continue rowLoop
			}
		}
		out = append(out, row)
	}
	return out
}

// HasActiveFilters reports whether any user-editable predicate is active.
// Pinned predicates are excluded: a screen whose mode forces paid=false
// should still show the plain "no results" empty state rather than the
// "clear your filters" one.
func (s *FilterState[T]) HasActiveFilters() bool {
	for _, p := range s.predicates {
		if p.Active() && !p.Pinned() {
			return true
		}
	}
	return false
}

// SearchPredicate matches a case-insensitive substring against a fixed list
// of searchable fields. An empty term matches everything.
type SearchPredicate[T any] struct {
	Fields func(row T) []string
	Term   string
}

// NewSearchPredicate builds a text search over the given field extractor.
func NewSearchPredicate[T any](term string, fields func(row T) []string) *SearchPredicate[T] {
	return &SearchPredicate[T]{Term: term, Fields: fields}
}

// Name implements Predicate.
func (p *SearchPredicate[T]) Name() string { return "search" }

// Active implements Predicate.
func (p *SearchPredicate[T]) Active() bool { return p.Term != "" }

// Pinned implements Predicate.
func (p *SearchPredicate[T]) Pinned() bool { return false }

// Match implements Predicate.
func (p *SearchPredicate[T]) Match(row T) bool {
	term := strings.ToLower(p.Term)
	for _, field := range p.Fields(row) {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

// CategoryAll is the sentinel meaning "no category constraint".
const CategoryAll = "all"

// CategoryPredicate matches exact equality against a categorical field.
type CategoryPredicate[T any] struct {
	Field    func(row T) string
	FilterID string
	Want     string
}

// NewCategoryPredicate builds an equality filter named name over the given
// field extractor. want may be empty or CategoryAll for unconstrained.
func NewCategoryPredicate[T any](name, want string, field func(row T) string) *CategoryPredicate[T] {
	return &CategoryPredicate[T]{FilterID: name, Want: want, Field: field}
}

// Name implements Predicate.
func (p *CategoryPredicate[T]) Name() string { return p.FilterID }

// Active implements Predicate.
func (p *CategoryPredicate[T]) Active() bool {
	return p.Want != "" && !strings.EqualFold(p.Want, CategoryAll)
}

// Pinned implements Predicate.
func (p *CategoryPredicate[T]) Pinned() bool { return false }

// Match implements Predicate.
func (p *CategoryPredicate[T]) Match(row T) bool {
	return p.Field(row) == p.Want
}

// FlagPredicate is a tri-state boolean filter. A pinned flag is forced by a
// higher-level screen mode (e.g. the pending view pins paid=no).
type FlagPredicate[T any] struct {
	Field    func(row T) bool
	FilterID string
	State    TriState
	Forced   bool
}

// NewFlagPredicate builds a tri-state flag filter.
func NewFlagPredicate[T any](name string, state TriState, field func(row T) bool) *FlagPredicate[T] {
	return &FlagPredicate[T]{FilterID: name, State: state, Field: field}
}

// Pin marks the flag as mode-forced and returns it.
func (p *FlagPredicate[T]) Pin() *FlagPredicate[T] {
	p.Forced = true
	return p
}

// Name implements Predicate.
func (p *FlagPredicate[T]) Name() string { return p.FilterID }

// Active implements Predicate.
func (p *FlagPredicate[T]) Active() bool { return p.State != FlagAny }

// Pinned implements Predicate.
func (p *FlagPredicate[T]) Pinned() bool { return p.Forced }

// Match implements Predicate.
func (p *FlagPredicate[T]) Match(row T) bool {
	if p.State == FlagTrue {
		return p.Field(row)
	}
	return !p.Field(row)
}

// DateRangePredicate matches rows whose date falls within the set bounds,
// inclusive. Rows with unparseable dates fail only when a bound is set,
// which is exactly when the predicate is active.
type DateRangePredicate[T any] struct {
	Field    func(row T) model.Date
	From     *time.Time
	To       *time.Time
	FilterID string
}

// NewDateRangePredicate builds an inclusive date-range filter. Either bound
// may be nil for half-open ranges.
func NewDateRangePredicate[T any](name string, from, to *time.Time, field func(row T) model.Date) *DateRangePredicate[T] {
	return &DateRangePredicate[T]{FilterID: name, From: from, To: to, Field: field}
}

// Name implements Predicate.
func (p *DateRangePredicate[T]) Name() string { return p.FilterID }

// Active implements Predicate.
func (p *DateRangePredicate[T]) Active() bool { return p.From != nil || p.To != nil }

// Pinned implements Predicate.
func (p *DateRangePredicate[T]) Pinned() bool { return false }

// Match implements Predicate.
func (p *DateRangePredicate[T]) Match(row T) bool {
	d := p.Field(row)
	if !d.Valid {
		return false
	}
	if p.From != nil && d.Time.Before(*p.From) {
		return false
	}
	if p.To != nil && d.Time.After(*p.To) {
		return false
	}
	return true
}
