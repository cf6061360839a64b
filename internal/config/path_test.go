package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	t.Setenv("PATRIO_TEST_DIR", "/srv/data")

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "empty", input: "", expected: ""},
		{name: "tilde prefix", input: "~/patrio/cache.db", expected: filepath.Join(home, "patrio", "cache.db")},
		{name: "bare tilde", input: "~", expected: home},
		{name: "env var", input: "$PATRIO_TEST_DIR/cache.db", expected: "/srv/data/cache.db"},
		{name: "absolute untouched", input: "/var/lib/patrio.db", expected: "/var/lib/patrio.db"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExpandPath(tt.input))
		})
	}
}

func TestDataDirHonorsXDG(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/tmp/xdg-data")
	assert.Equal(t, "/tmp/xdg-data/patrio", DataDir())
}

func TestConfigDirHonorsXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-config")
	assert.Equal(t, "/tmp/xdg-config/patrio", ConfigDir())
}
