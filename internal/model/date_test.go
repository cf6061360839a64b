package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantValid bool
		wantTime  time.Time
	}{
		{
			name:      "iso date",
			raw:       "2026-08-31",
			wantValid: true,
			wantTime:  time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "rfc3339",
			raw:       "2026-08-31T10:30:00Z",
			wantValid: true,
			wantTime:  time.Date(2026, 8, 31, 10, 30, 0, 0, time.UTC),
		},
		{
			name:      "european slashes",
			raw:       "31/08/2026",
			wantValid: true,
			wantTime:  time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "empty",
			raw:  "",
		},
		{
			name: "garbage",
			raw:  "next tuesday",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := ParseDate(tt.raw)
			assert.Equal(t, tt.wantValid, d.Valid)
			assert.Equal(t, tt.raw, d.Raw)
			if tt.wantValid {
				assert.True(t, d.Time.Equal(tt.wantTime), "got %v", d.Time)
			}
		})
	}
}

func TestDateComparisons(t *testing.T) {
	pivot := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	earlier := ParseDate("2026-01-01")
	later := ParseDate("2026-12-01")
	invalid := ParseDate("n/a")

	assert.True(t, earlier.Before(pivot))
	assert.False(t, earlier.After(pivot))
	assert.True(t, later.After(pivot))

	// Invalid dates are never before or after anything.
	assert.False(t, invalid.Before(pivot))
	assert.False(t, invalid.After(pivot))
}

func TestResolveProviderKind(t *testing.T) {
	assert.Equal(t, ProviderBank, ResolveProviderKind(1))
	assert.Equal(t, ProviderUtility, ResolveProviderKind(2))
	assert.Equal(t, ProviderOther, ResolveProviderKind(0))
	assert.Equal(t, ProviderOther, ResolveProviderKind(999))
}
