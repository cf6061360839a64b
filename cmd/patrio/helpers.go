package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/patrio-app/patrio/internal/api"
	"github.com/patrio-app/patrio/internal/config"
	"github.com/patrio-app/patrio/internal/storage"
	"github.com/patrio-app/patrio/internal/view"
)

// initStore opens the local snapshot cache and runs migrations.
func initStore(ctx context.Context) (*storage.SQLiteStore, error) {
	dbPath := viper.GetString("cache.path")
	if dbPath == "" {
		dbPath = filepath.Join(config.DataDir(), "patrio.db")
	}
	dbPath = config.ExpandPath(dbPath)

	store, err := storage.NewSQLiteStore(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// clientConfig assembles the API client settings from config, environment,
// and the saved session. The --backend flag wins over the session's target.
func clientConfig() (api.Config, error) {
	cfg := api.Config{
		BaseURL: viper.GetString("api.url"),
		Token:   viper.GetString("api.token"),
	}

	if state, err := api.LoadAuthState(); err == nil {
		if cfg.Token == "" {
			cfg.Token = state.Token
		}
		cfg.Backend = state.Backend
	}

	if b := viper.GetString("backend"); b != "" {
		backend, err := api.ParseBackend(b)
		if err != nil {
			return api.Config{}, err
		}
		cfg.Backend = backend
	}

	return cfg, nil
}

// newAPIClient builds the client for normal request traffic.
func newAPIClient() (*api.Client, error) {
	cfg, err := clientConfig()
	if err != nil {
		return nil, err
	}
	return api.NewClient(cfg)
}

// newSlowAPIClient builds the client for slow endpoints (month close, loan
// schedules).
func newSlowAPIClient() (*api.Client, error) {
	cfg, err := clientConfig()
	if err != nil {
		return nil, err
	}
	return api.NewSlowClient(cfg)
}

// enrichOptions reads the lookup concurrency from config.
func enrichOptions() view.EnrichOptions {
	return view.EnrichOptions{
		Workers: viper.GetInt("api.workers"),
	}
}

// dateFlag parses an optional YYYY-MM-DD flag into a time bound.
func dateFlag(cmd *cobra.Command, name string) (*time.Time, error) {
	value, _ := cmd.Flags().GetString(name)
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s %q (want YYYY-MM-DD)", name, value)
	}
	return &t, nil
}

// triStateFlag parses an all/yes/no flag.
func triStateFlag(cmd *cobra.Command, name string) (view.TriState, error) {
	value, _ := cmd.Flags().GetString(name)
	state, err := view.ParseTriState(value)
	if err != nil {
		return view.FlagAny, fmt.Errorf("invalid --%s: %w", name, err)
	}
	return state, nil
}

// emptyStateMessage distinguishes "nothing matches your filters" from a
// genuinely empty collection.
func emptyStateMessage(hasFilters bool, what string) string {
	if hasFilters {
		return fmt.Sprintf("No %s match the active filters.", what)
	}
	return fmt.Sprintf("No %s yet.", what)
}

// confirm prompts for a yes/no answer on stdin.
func confirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	var answer string
	if _, err := fmt.Fscanln(os.Stdin, &answer); err != nil {
		return false
	}
	return answer == "y" || answer == "Y" || answer == "yes"
}
