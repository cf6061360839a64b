package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "45.20 €", FormatAmount(45.2, "EUR"))
	assert.Equal(t, "45.20 €", FormatAmount(45.2, ""))
	assert.Equal(t, "100.00 $", FormatAmount(100, "USD"))
	assert.Equal(t, "1.50 CHF", FormatAmount(1.5, "CHF"))
}

func TestFormatMetric(t *testing.T) {
	value := 5.25
	assert.Equal(t, "5.25%", FormatMetric(&value))
	assert.Contains(t, FormatMetric(nil), "—")
}

func TestTableRender(t *testing.T) {
	table := NewTable("NOMBRE", "IMPORTE")
	table.AddRow("Alquiler", "950.00 €")
	table.AddRow("Luz", "80.00 €")
	require.Equal(t, 2, table.Len())

	out := table.Render()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3)

	assert.Contains(t, lines[0], "NOMBRE")
	assert.Contains(t, lines[1], "Alquiler")
	assert.Contains(t, lines[2], "Luz")

	// Columns align: both data rows start the amount at the same offset.
	assert.Equal(t, strings.Index(lines[1], "950.00"), strings.Index(lines[2], "80.00"))
}

func TestTablePadsShortRows(t *testing.T) {
	table := NewTable("A", "B", "C")
	table.AddRow("only")

	out := table.Render()
	assert.Contains(t, out, "only")
}
