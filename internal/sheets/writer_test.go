package sheets

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patrio-app/patrio/internal/model"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name:    "no auth",
			config:  Config{},
			wantErr: true,
		},
		{
			name:   "oauth with refresh token",
			config: Config{ClientID: "id", ClientSecret: "secret", RefreshToken: "rt"},
		},
		{
			name:   "oauth with token cache",
			config: Config{ClientID: "id", ClientSecret: "secret", TokenFile: "/tmp/token.json"},
		},
		{
			name:   "service account",
			config: Config{ServiceAccountPath: "/tmp/sa.json"},
		},
		{
			name: "both methods",
			config: Config{
				ClientID: "id", ClientSecret: "secret", RefreshToken: "rt",
				ServiceAccountPath: "/tmp/sa.json",
			},
			wantErr: true,
		},
		{
			name:    "negative retries",
			config:  Config{ServiceAccountPath: "/tmp/sa.json", RetryAttempts: -1},
			wantErr: true,
		},
		{
			name:    "negative delay",
			config:  Config{ServiceAccountPath: "/tmp/sa.json", RetryDelay: -time.Second},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPrepareCloseData(t *testing.T) {
	summary := model.CloseSummary{
		Period: "2026-08",
		ByCategory: map[string]float64{
			"vivienda":   950,
			"transporte": 120,
			"ocio":       230,
		},
		TotalIncome:   2400,
		TotalExpenses: 1300,
		Net:           1100,
	}

	values := prepareCloseData(summary)
	require.Len(t, values, 10)

	assert.Equal(t, []any{"Cierre", "2026-08"}, values[0])
	assert.Equal(t, []any{"Ingresos", 2400.0}, values[2])
	assert.Equal(t, []any{"Gastos", 1300.0}, values[3])
	assert.Equal(t, []any{"Neto", 1100.0}, values[4])

	// Category rows follow the header, largest amount first.
	assert.Equal(t, []any{"Categoría", "Importe"}, values[6])
	assert.Equal(t, []any{"vivienda", 950.0}, values[7])
	assert.Equal(t, []any{"ocio", 230.0}, values[8])
	assert.Equal(t, []any{"transporte", 120.0}, values[9])
}

func TestPrepareCloseDataEmptyCategories(t *testing.T) {
	values := prepareCloseData(model.CloseSummary{Period: "2026-01"})
	require.Len(t, values, 7)
	assert.Equal(t, []any{"Cierre", "2026-01"}, values[0])
}

func TestMockExporterRecordsCalls(t *testing.T) {
	mock := &MockExporter{}

	err := mock.Export(context.Background(), model.CloseSummary{Period: "2026-08"})
	require.NoError(t, err)
	require.Len(t, mock.Exported, 1)
	assert.Equal(t, "2026-08", mock.Exported[0].Period)
}
