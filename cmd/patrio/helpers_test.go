package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patrio-app/patrio/internal/view"
)

func TestDateFlag(t *testing.T) {
	cmd := gastosListCmd()

	// Unset flag means no bound.
	got, err := dateFlag(cmd, "from")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, cmd.Flags().Set("from", "2026-08-01"))
	got, err = dateFlag(cmd, "from")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "2026-08-01", got.Format("2006-01-02"))

	require.NoError(t, cmd.Flags().Set("to", "not-a-date"))
	_, err = dateFlag(cmd, "to")
	assert.Error(t, err)
}

func TestTriStateFlag(t *testing.T) {
	cmd := gastosListCmd()

	state, err := triStateFlag(cmd, "paid")
	require.NoError(t, err)
	assert.Equal(t, view.FlagAny, state)

	require.NoError(t, cmd.Flags().Set("paid", "yes"))
	state, err = triStateFlag(cmd, "paid")
	require.NoError(t, err)
	assert.Equal(t, view.FlagTrue, state)

	require.NoError(t, cmd.Flags().Set("active", "bogus"))
	_, err = triStateFlag(cmd, "active")
	assert.Error(t, err)
}

func TestExpenseFilterOptionsPendingModeDoesNotCountAsFilter(t *testing.T) {
	cmd := gastosListCmd()

	opts, err := expenseFilterOptions(cmd, view.ExpenseModePending)
	require.NoError(t, err)

	filter := view.NewExpenseFilter(opts)
	// The mode pins paid=no, but that is not a user-applied filter.
	assert.False(t, filter.HasActiveFilters())
}

func TestExpenseFilterOptionsUserFilterCounts(t *testing.T) {
	cmd := gastosListCmd()
	require.NoError(t, cmd.Flags().Set("category", "vivienda"))

	opts, err := expenseFilterOptions(cmd, view.ExpenseModeAll)
	require.NoError(t, err)

	filter := view.NewExpenseFilter(opts)
	assert.True(t, filter.HasActiveFilters())
}

func TestEmptyStateMessage(t *testing.T) {
	assert.Equal(t, "No gastos yet.", emptyStateMessage(false, "gastos"))
	assert.Equal(t, "No gastos match the active filters.", emptyStateMessage(true, "gastos"))
}

func TestMetricHeaderUsesMetricName(t *testing.T) {
	assert.Contains(t, metricHeader(mockStringer("irr")), "irr")
}

type mockStringer string

func (m mockStringer) String() string { return string(m) }
