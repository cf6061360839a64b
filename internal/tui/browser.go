// Package tui provides an interactive browser over ranked asset lists.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/patrio-app/patrio/internal/cli"
	"github.com/patrio-app/patrio/internal/model"
	"github.com/patrio-app/patrio/internal/view"
)

type browserMode int

const (
	modeNormal browserMode = iota
	modeSearch
)

// Browser is the interactive property list: the same filter and ranking
// pipeline as the CLI list, with live search and metric switching.
type Browser struct {
	rows        []model.PropertyRow
	visible     []model.PropertyRow
	metric      model.PropertyMetric
	activeOnly  view.TriState
	search      string
	searchInput textinput.Model
	table       table.Model
	mode        browserMode
	width       int
	height      int
	quitting    bool
}

// NewBrowser creates a browser over already-loaded property rows.
func NewBrowser(rows []model.PropertyRow) Browser {
	columns := []table.Column{
		{Title: "Nombre", Width: 22},
		{Title: "Ciudad", Width: 14},
		{Title: "Métrica", Width: 10},
		{Title: "Alquilado", Width: 9},
		{Title: "Activo", Width: 6},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(20),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("#333")).
		BorderBottom(true).
		Bold(false)
	t.SetStyles(s)

	searchInput := textinput.New()
	searchInput.Placeholder = "Buscar..."
	searchInput.CharLimit = 50

	b := Browser{
		rows:        rows,
		metric:      model.PropertyMetricGrossYield,
		activeOnly:  view.FlagAny,
		searchInput: searchInput,
		table:       t,
		width:       80,
		height:      24,
	}
	b.refresh()
	return b
}

// Init implements tea.Model.
func (b Browser) Init() tea.Cmd {
	return tea.EnterAltScreen
}

// Update implements tea.Model.
func (b Browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.width = msg.Width
		b.height = msg.Height
		b.table.SetHeight(max(msg.Height-6, 5))
		return b, nil

	case tea.KeyMsg:
		if b.mode == modeSearch {
			return b.updateSearch(msg)
		}
		return b.updateNormal(msg)
	}

	var cmd tea.Cmd
	b.table, cmd = b.table.Update(msg)
	return b, cmd
}

func (b Browser) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		b.quitting = true
		return b, tea.Quit

	case "/":
		b.mode = modeSearch
		b.searchInput.SetValue(b.search)
		b.searchInput.Focus()
		return b, textinput.Blink

	case "m":
		b.metric = nextMetric(b.metric)
		b.refresh()
		return b, nil

	case "a":
		b.activeOnly = nextTriState(b.activeOnly)
		b.refresh()
		return b, nil

	case "esc":
		if b.search != "" {
			b.search = ""
			b.refresh()
		}
		return b, nil
	}

	var cmd tea.Cmd
	b.table, cmd = b.table.Update(msg)
	return b, cmd
}

func (b Browser) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		b.search = b.searchInput.Value()
		b.mode = modeNormal
		b.searchInput.Blur()
		b.refresh()
		return b, nil

	case "esc":
		b.mode = modeNormal
		b.searchInput.Blur()
		return b, nil
	}

	var cmd tea.Cmd
	b.searchInput, cmd = b.searchInput.Update(msg)
	return b, cmd
}

// refresh re-runs the filter and ranking pipeline into the table.
func (b *Browser) refresh() {
	filter := view.NewPropertyFilter(view.PropertyFilterOptions{
		Search: b.search,
		Active: b.activeOnly,
	})
	b.visible = view.Rank(filter.Apply(b.rows), view.PropertyRanking(b.metric))

	rows := make([]table.Row, len(b.visible))
	for i, r := range b.visible {
		metric := "—"
		if v, ok := r.Metric(b.metric); ok {
			metric = fmt.Sprintf("%.2f", v)
		}
		rented := cli.PendingIcon
		if r.Rented {
			rented = cli.PaidIcon
		}
		active := cli.PendingIcon
		if r.Active {
			active = cli.PaidIcon
		}
		rows[i] = table.Row{r.Name, r.City, metric, rented, active}
	}
	b.table.SetRows(rows)
	b.table.SetCursor(0)
}

// View implements tea.Model.
func (b Browser) View() string {
	if b.quitting {
		return ""
	}

	title := cli.FormatTitle(fmt.Sprintf("Patrimonio · %s", b.metric))

	var searchLine string
	if b.mode == modeSearch {
		searchLine = b.searchInput.View()
	} else if b.search != "" {
		searchLine = cli.SubtleStyle.Render(fmt.Sprintf("filtro: %q", b.search))
	}

	status := cli.SubtleStyle.Render(fmt.Sprintf(
		"%d/%d · /: buscar · m: métrica · a: activos · q: salir",
		len(b.visible), len(b.rows)))

	parts := []string{title, b.table.View(), status}
	if searchLine != "" {
		parts = []string{title, searchLine, b.table.View(), status}
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func nextMetric(m model.PropertyMetric) model.PropertyMetric {
	switch m {
	case model.PropertyMetricGrossYield:
		return model.PropertyMetricNetYield
	case model.PropertyMetricNetYield:
		return model.PropertyMetricCapRate
	case model.PropertyMetricCapRate:
		return model.PropertyMetricNOI
	default:
		return model.PropertyMetricGrossYield
	}
}

func nextTriState(s view.TriState) view.TriState {
	switch s {
	case view.FlagAny:
		return view.FlagTrue
	case view.FlagTrue:
		return view.FlagFalse
	default:
		return view.FlagAny
	}
}
