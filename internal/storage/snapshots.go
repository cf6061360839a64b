package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/patrio-app/patrio/internal/common"
)

// Snapshot describes a cached collection without its payload.
type Snapshot struct {
	FetchedAt time.Time
	ID        string
	Domain    string
	Backend   string
}

// SaveSnapshot stores rows as the current snapshot for a domain+backend
// pair, replacing any previous one. rows must be JSON-marshalable.
func (s *SQLiteStore) SaveSnapshot(ctx context.Context, domain, backend string, rows any) error {
	if domain == "" || backend == "" {
		return fmt.Errorf("domain and backend must not be empty")
	}

	payload, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot for %s: %w", domain, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO snapshots (id, domain, backend, fetched_at, payload)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(domain, backend) DO UPDATE SET
			id = excluded.id,
			fetched_at = excluded.fetched_at,
			payload = excluded.payload`,
		uuid.NewString(), domain, backend, time.Now().UTC(), string(payload))
	if err != nil {
		return fmt.Errorf("failed to save snapshot for %s: %w", domain, err)
	}

	return nil
}

// LoadSnapshot decodes the cached snapshot for a domain+backend pair into
// out. Returns common.ErrNotFound when nothing has been cached yet.
func (s *SQLiteStore) LoadSnapshot(ctx context.Context, domain, backend string, out any) (*Snapshot, error) {
	var (
		snap    Snapshot
		payload string
	)

	err := s.db.QueryRowContext(ctx, `
		SELECT id, domain, backend, fetched_at, payload
		FROM snapshots
		WHERE domain = ? AND backend = ?`,
		domain, backend).Scan(&snap.ID, &snap.Domain, &snap.Backend, &snap.FetchedAt, &payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("no cached %s snapshot for backend %s: %w", domain, backend, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot for %s: %w", domain, err)
	}

	if out != nil {
		if err := json.Unmarshal([]byte(payload), out); err != nil {
			return nil, fmt.Errorf("%w: snapshot %s: %v", common.ErrDatabaseCorrupted, snap.ID, err)
		}
	}

	return &snap, nil
}

// DeleteSnapshots drops all cached snapshots for a backend, e.g. after
// logging out of it.
func (s *SQLiteStore) DeleteSnapshots(ctx context.Context, backend string) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM snapshots WHERE backend = ?`, backend); err != nil {
		return fmt.Errorf("failed to delete snapshots for backend %s: %w", backend, err)
	}
	return nil
}
