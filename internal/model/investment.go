package model

import (
	"fmt"
	"strings"
)

// Investment represents an investment position from the backend.
type Investment struct {
	ID        string
	Name      string
	Vehicle   string // fund, stock, crypto, private, ...
	Committed float64
	Currency  string
	StartDate Date
	Active    bool
}

// Normalize fills defaults for fields the backend may omit.
func (v *Investment) Normalize() {
	if v.Currency == "" {
		v.Currency = "EUR"
	}
	if v.Vehicle == "" {
		v.Vehicle = "other"
	}
	v.Name = strings.TrimSpace(v.Name)
}

// InvestmentKPIs is the KPI block the backend computes per investment.
// Individual metrics may be absent for young positions.
type InvestmentKPIs struct {
	IRR  *float64 // percent
	ROI  *float64 // percent
	MOIC *float64
}

// InvestmentRow is an investment enriched with its KPI lookup. A nil KPIs
// field is the documented placeholder for a failed or missing lookup.
type InvestmentRow struct {
	Investment
	KPIs *InvestmentKPIs
}

// InvestmentMetric selects the ranking key for investment lists.
type InvestmentMetric int

// Investment ranking metrics.
const (
	InvestmentMetricIRR InvestmentMetric = iota
	InvestmentMetricROI
	InvestmentMetricMOIC
	InvestmentMetricCapital
)

// String returns the metric's CLI name.
func (m InvestmentMetric) String() string {
	switch m {
	case InvestmentMetricIRR:
		return "irr"
	case InvestmentMetricROI:
		return "roi"
	case InvestmentMetricMOIC:
		return "moic"
	case InvestmentMetricCapital:
		return "capital"
	}
	return "irr"
}

// ParseInvestmentMetric parses a CLI metric name.
func ParseInvestmentMetric(s string) (InvestmentMetric, error) {
	switch strings.ToLower(s) {
	case "irr":
		return InvestmentMetricIRR, nil
	case "roi":
		return InvestmentMetricROI, nil
	case "moic":
		return InvestmentMetricMOIC, nil
	case "capital":
		return InvestmentMetricCapital, nil
	}
	return 0, fmt.Errorf("unknown investment metric %q (want irr, roi, moic, or capital)", s)
}

// Metric returns the selected metric value, reporting false when the KPI
// block or the individual metric is unavailable.
func (r InvestmentRow) Metric(m InvestmentMetric) (float64, bool) {
	if m == InvestmentMetricCapital {
		return r.Committed, true
	}
	if r.KPIs == nil {
		return 0, false
	}
	var v *float64
	switch m {
	case InvestmentMetricIRR:
		v = r.KPIs.IRR
	case InvestmentMetricROI:
		v = r.KPIs.ROI
	case InvestmentMetricMOIC:
		v = r.KPIs.MOIC
	}
	if v == nil {
		return 0, false
	}
	return *v, true
}

// SearchFields returns the strings the text filter matches against.
func (r InvestmentRow) SearchFields() []string {
	return []string{r.Name, r.Vehicle}
}
