package view

import (
	"sort"

	"github.com/patrio-app/patrio/internal/model"
)

// Ranking describes how to order filtered rows: a stable partition by a
// boolean grouping predicate followed by a metric sort within each group.
type Ranking[T any] struct {
	// Group partitions rows; the true group sorts wholly before the false
	// group regardless of metric values. Nil means a single group.
	Group func(row T) bool
	// Metric returns the selected ranking value; ok=false means the value
	// is unavailable and the row sorts last within its group.
	Metric func(row T) (float64, bool)
	// Date is the tie-break key, descending; rows with invalid dates sort
	// last among ties. Nil disables the tie-break.
	Date func(row T) model.Date
}

// Rank returns a new slice with rows ordered by the ranking: grouped rows
// first, metric descending within each group, unavailable metrics last,
// tie-broken by date descending with unparseable dates last. The sort is
// stable, so ranking its own output again yields the same order.
func Rank[T any](rows []T, r Ranking[T]) []T {
	out := make([]T, len(rows))
	copy(out, rows)

	sort.SliceStable(out, func(i, j int) bool {
		if r.Group != nil {
			gi, gj := r.Group(out[i]), r.Group(out[j])
			if gi != gj {
				return gi
			}
		}

		if r.Metric != nil {
			mi, oki := r.Metric(out[i])
			mj, okj := r.Metric(out[j])
			if oki != okj {
				return oki
			}
			if oki && okj && mi != mj {
				return mi > mj
			}
		}

		if r.Date != nil {
			di, dj := r.Date(out[i]), r.Date(out[j])
			if di.Valid != dj.Valid {
				return di.Valid
			}
			if di.Valid && dj.Valid && !di.Time.Equal(dj.Time) {
				return di.Time.After(dj.Time)
			}
		}

		return false
	})

	return out
}
