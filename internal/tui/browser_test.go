package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patrio-app/patrio/internal/model"
)

func ptr(v float64) *float64 { return &v }

func testRows() []model.PropertyRow {
	return []model.PropertyRow{
		{
			Property: model.Property{ID: "p1", Name: "Piso Centro", City: "Madrid", Active: true},
			KPIs:     &model.PropertyKPIs{GrossYield: ptr(4.2), NetYield: ptr(3.1)},
		},
		{
			Property: model.Property{ID: "p2", Name: "Local Norte", City: "Bilbao", Active: true},
			KPIs:     &model.PropertyKPIs{GrossYield: ptr(6.8), NetYield: ptr(2.5)},
		},
		{
			Property: model.Property{ID: "p3", Name: "Garaje Sur", City: "Madrid", Active: false},
			KPIs:     &model.PropertyKPIs{GrossYield: ptr(9.9)},
		},
	}
}

func visibleIDs(b Browser) []string {
	ids := make([]string, len(b.visible))
	for i, r := range b.visible {
		ids[i] = r.ID
	}
	return ids
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestBrowserInitialRanking(t *testing.T) {
	b := NewBrowser(testRows())

	// Active rows first, gross yield descending; the inactive garage sorts
	// last despite its top yield.
	assert.Equal(t, []string{"p2", "p1", "p3"}, visibleIDs(b))
}

func TestBrowserMetricCycling(t *testing.T) {
	b := NewBrowser(testRows())

	updated, _ := b.Update(key("m"))
	b = updated.(Browser)

	assert.Equal(t, model.PropertyMetricNetYield, b.metric)
	// On net yield p1 beats p2; p3 has no net yield and stays last.
	assert.Equal(t, []string{"p1", "p2", "p3"}, visibleIDs(b))
}

func TestBrowserActiveToggle(t *testing.T) {
	b := NewBrowser(testRows())

	updated, _ := b.Update(key("a"))
	b = updated.(Browser)
	assert.Equal(t, []string{"p2", "p1"}, visibleIDs(b))

	updated, _ = b.Update(key("a"))
	b = updated.(Browser)
	assert.Equal(t, []string{"p3"}, visibleIDs(b))

	updated, _ = b.Update(key("a"))
	b = updated.(Browser)
	assert.Len(t, visibleIDs(b), 3)
}

func TestBrowserSearch(t *testing.T) {
	b := NewBrowser(testRows())

	updated, _ := b.Update(key("/"))
	b = updated.(Browser)
	require.Equal(t, modeSearch, b.mode)

	for _, r := range "madrid" {
		updated, _ = b.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		b = updated.(Browser)
	}
	updated, _ = b.Update(tea.KeyMsg{Type: tea.KeyEnter})
	b = updated.(Browser)

	assert.Equal(t, modeNormal, b.mode)
	assert.Equal(t, []string{"p1", "p3"}, visibleIDs(b))

	// Esc in normal mode clears the committed search.
	updated, _ = b.Update(tea.KeyMsg{Type: tea.KeyEsc})
	b = updated.(Browser)
	assert.Len(t, visibleIDs(b), 3)
}

func TestBrowserSearchCancelKeepsFilter(t *testing.T) {
	b := NewBrowser(testRows())

	updated, _ := b.Update(key("/"))
	b = updated.(Browser)
	updated, _ = b.Update(key("x"))
	b = updated.(Browser)
	updated, _ = b.Update(tea.KeyMsg{Type: tea.KeyEsc})
	b = updated.(Browser)

	// Cancelled input never applied.
	assert.Equal(t, modeNormal, b.mode)
	assert.Len(t, visibleIDs(b), 3)
}

func TestBrowserQuit(t *testing.T) {
	b := NewBrowser(testRows())

	updated, cmd := b.Update(key("q"))
	b = updated.(Browser)

	assert.True(t, b.quitting)
	require.NotNil(t, cmd)
}
