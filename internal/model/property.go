package model

import (
	"fmt"
	"strings"
)

// Property represents a real-estate asset (patrimonio) from the backend.
type Property struct {
	ID       string
	Name     string
	Address  string
	City     string
	Category string // residential, commercial, parking, ...
	Currency string
	Rented   bool
	Active   bool
}

// Normalize fills defaults for fields the backend may omit.
func (p *Property) Normalize() {
	if p.Currency == "" {
		p.Currency = "EUR"
	}
	if p.Category == "" {
		p.Category = "residential"
	}
	p.Name = strings.TrimSpace(p.Name)
}

// PropertyKPIs is the KPI block the backend computes per property.
type PropertyKPIs struct {
	GrossYield *float64 // percent
	NetYield   *float64 // percent
	CapRate    *float64 // percent
	NOI        *float64 // net operating income, currency units/year
}

// PurchaseRecord captures the original acquisition of a property.
type PurchaseRecord struct {
	Price float64
	Costs float64
	Date  Date
}

// Valuation is the most recent appraisal of a property.
type Valuation struct {
	Value float64
	Date  Date
}

// PropertyRow is a property enriched with its secondary lookups. Nil fields
// are the documented placeholder for failed or missing lookups.
type PropertyRow struct {
	Property
	KPIs      *PropertyKPIs
	Purchase  *PurchaseRecord
	Valuation *Valuation
}

// PropertyMetric selects the ranking key for property lists.
type PropertyMetric int

// Property ranking metrics.
const (
	PropertyMetricGrossYield PropertyMetric = iota
	PropertyMetricNetYield
	PropertyMetricCapRate
	PropertyMetricNOI
)

// String returns the metric's CLI name.
func (m PropertyMetric) String() string {
	switch m {
	case PropertyMetricGrossYield:
		return "gross-yield"
	case PropertyMetricNetYield:
		return "net-yield"
	case PropertyMetricCapRate:
		return "cap-rate"
	case PropertyMetricNOI:
		return "noi"
	}
	return "gross-yield"
}

// ParsePropertyMetric parses a CLI metric name.
func ParsePropertyMetric(s string) (PropertyMetric, error) {
	switch strings.ToLower(s) {
	case "gross-yield", "gross":
		return PropertyMetricGrossYield, nil
	case "net-yield", "net":
		return PropertyMetricNetYield, nil
	case "cap-rate", "cap":
		return PropertyMetricCapRate, nil
	case "noi":
		return PropertyMetricNOI, nil
	}
	return 0, fmt.Errorf("unknown property metric %q (want gross-yield, net-yield, cap-rate, or noi)", s)
}

// Metric returns the selected metric value, reporting false when the KPI
// block or the individual metric is unavailable.
func (r PropertyRow) Metric(m PropertyMetric) (float64, bool) {
	if r.KPIs == nil {
		return 0, false
	}
	var v *float64
	switch m {
	case PropertyMetricGrossYield:
		v = r.KPIs.GrossYield
	case PropertyMetricNetYield:
		v = r.KPIs.NetYield
	case PropertyMetricCapRate:
		v = r.KPIs.CapRate
	case PropertyMetricNOI:
		v = r.KPIs.NOI
	}
	if v == nil {
		return 0, false
	}
	return *v, true
}

// PurchaseDate returns the acquisition date when the purchase lookup
// succeeded.
func (r PropertyRow) PurchaseDate() Date {
	if r.Purchase == nil {
		return Date{}
	}
	return r.Purchase.Date
}

// SearchFields returns the strings the text filter matches against.
func (r PropertyRow) SearchFields() []string {
	return []string{r.Name, r.Address, r.City, r.Category}
}
