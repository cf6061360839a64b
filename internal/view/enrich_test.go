package view

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patrio-app/patrio/internal/model"
)

func TestEnrichAttachesLookupsByRowIdentity(t *testing.T) {
	src := &fakePropertySource{
		kpis: map[string]*model.PropertyKPIs{
			"p1": {GrossYield: ptr(4.2)},
			"p2": {GrossYield: ptr(6.0)},
			"p3": {GrossYield: ptr(1.1)},
		},
	}

	rows, err := LoadPropertyRows(context.Background(), src, EnrichOptions{Workers: 2})
	require.NoError(t, err)
	require.Len(t, rows, 3)

	// Base order is preserved regardless of lookup completion order.
	assert.Equal(t, []string{"p1", "p2", "p3"}, rowIDs(rows))
	for _, r := range rows {
		require.NotNil(t, r.KPIs, "row %s", r.ID)
	}
	assert.Equal(t, 4.2, *rows[0].KPIs.GrossYield)
}

func TestEnrichLookupFailureDegradesOnlyThatRow(t *testing.T) {
	src := &fakePropertySource{
		kpis: map[string]*model.PropertyKPIs{
			"p1": {GrossYield: ptr(4.2)},
			"p3": {GrossYield: ptr(1.1)},
		},
		kpiErrs: map[string]error{
			"p2": errors.New("backend hiccup"),
		},
	}

	rows, err := LoadPropertyRows(context.Background(), src, EnrichOptions{})
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.NotNil(t, rows[0].KPIs)
	assert.Nil(t, rows[1].KPIs, "failed lookup must leave the field at its placeholder")
	assert.NotNil(t, rows[2].KPIs)

	// The failed KPI row still carries its purchase record.
	assert.NotNil(t, rows[1].Purchase)
}

func TestEnrichBaseListFailureFailsTheLoad(t *testing.T) {
	src := &fakePropertySource{listErr: errors.New("boom")}

	_, err := LoadPropertyRows(context.Background(), src, EnrichOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load properties")
}

func TestEnrichReportsProgressPerRow(t *testing.T) {
	src := &fakePropertySource{
		kpis: map[string]*model.PropertyKPIs{
			"p1": {}, "p2": {}, "p3": {},
		},
	}

	var ticks atomic.Int64
	_, err := LoadPropertyRows(context.Background(), src, EnrichOptions{
		Workers: 3,
		OnRow:   func() { ticks.Add(1) },
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), ticks.Load())
}

func TestEnrichNoLookupsIsANoOp(t *testing.T) {
	rows := []model.PropertyRow{{Property: model.Property{ID: "p1"}}}
	got := Enrich(context.Background(), rows, nil, EnrichOptions{})
	assert.Equal(t, rows, got)
}

func TestEnrichStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rows := []model.PropertyRow{
		{Property: model.Property{ID: "p1"}},
		{Property: model.Property{ID: "p2"}},
	}

	var calls atomic.Int64
	lookups := []Lookup[model.PropertyRow]{
		func(ctx context.Context, row *model.PropertyRow) error {
			calls.Add(1)
			return nil
		},
	}

	got := Enrich(ctx, rows, lookups, EnrichOptions{Workers: 1})
	assert.Len(t, got, 2)
	assert.Zero(t, calls.Load(), "no lookups should run after cancellation")
}

// fakePropertySource serves canned rows p1..p3 with per-id lookup results.
type fakePropertySource struct {
	kpis    map[string]*model.PropertyKPIs
	kpiErrs map[string]error
	listErr error
}

func (f *fakePropertySource) ListProperties(_ context.Context) ([]model.Property, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return []model.Property{
		{ID: "p1", Name: "Piso Centro", Active: true},
		{ID: "p2", Name: "Local Norte", Active: true},
		{ID: "p3", Name: "Garaje Sur", Active: false},
	}, nil
}

func (f *fakePropertySource) GetPropertyKPIs(_ context.Context, id string) (*model.PropertyKPIs, error) {
	if err := f.kpiErrs[id]; err != nil {
		return nil, err
	}
	if k, ok := f.kpis[id]; ok {
		return k, nil
	}
	return nil, errors.New("no kpis")
}

func (f *fakePropertySource) GetPropertyPurchase(_ context.Context, id string) (*model.PurchaseRecord, error) {
	return &model.PurchaseRecord{Price: 100000, Date: model.ParseDate("2020-01-15")}, nil
}

func (f *fakePropertySource) GetPropertyValuation(_ context.Context, id string) (*model.Valuation, error) {
	return &model.Valuation{Value: 120000, Date: model.ParseDate("2026-01-01")}, nil
}
