package model

// CloseSummary aggregates a period for the month-close (reinicio) workflow.
// The backend computes it; the client only displays and exports it.
type CloseSummary struct {
	Period        string // "2026-08"
	ByCategory    map[string]float64
	TotalIncome   float64
	TotalExpenses float64
	Net           float64
}

// ClosePreview is the dry-run view of a month close.
type ClosePreview struct {
	Summary         CloseSummary
	PendingExpenses int
	PendingIncomes  int
	Ready           bool
}

// CloseResult reports an executed month close.
type CloseResult struct {
	ClosedPeriod  string
	NextPeriod    string
	ClosedAt      Date
	EntriesClosed int
	Summary       CloseSummary
}
