package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/roach88/reckit/internal/deep"
	"github.com/roach88/reckit/internal/value"
)

// ErrNotFound is returned when no snapshot matches a lookup.
var ErrNotFound = errors.New("snapshot not found")

// Snapshot is one saved version of a named record sequence.
type Snapshot struct {
	ID          string
	Name        string
	Seq         int64
	Fingerprint string
	Records     []value.Value
}

// Save appends records as the next snapshot of name, unless they have the
// latest snapshot's fingerprint or are deep-equal (deep.Equals, default
// options) to it. It
// returns the snapshot that now heads the log and whether a row was
// written.
func (s *Store) Save(ctx context.Context, name string, records []value.Value) (Snapshot, bool, error) {
	body, err := value.MarshalCanonical(value.Array(records))
	if err != nil {
		return Snapshot{}, false, fmt.Errorf("save %s: %w", name, err)
	}
	fp, err := value.Fingerprint(value.Array(records))
	if err != nil {
		return Snapshot{}, false, fmt.Errorf("save %s: %w", name, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Snapshot{}, false, fmt.Errorf("save %s: begin tx: %w", name, err)
	}
	defer tx.Rollback() // No-op if committed

	latest, err := scanSnapshot(tx.QueryRowContext(ctx, `
		SELECT id, name, seq, fingerprint, body
		FROM snapshots
		WHERE name = ?
		ORDER BY seq DESC
		LIMIT 1
	`, name))
	switch {
	case errors.Is(err, ErrNotFound):
	case err != nil:
		return Snapshot{}, false, fmt.Errorf("save %s: %w", name, err)
	default:
		// The body is stored canonical (NFC strings), so a decoded latest
		// may differ from raw input that has the same fingerprint.
		if latest.Fingerprint == fp || deep.Equals(value.Array(latest.Records), value.Array(records)) {
			slog.Debug("snapshot unchanged", "name", name, "seq", latest.Seq)
			return latest, false, nil
		}
	}

	snap := Snapshot{
		ID:          s.ids.Generate(),
		Name:        name,
		Seq:         latest.Seq + 1,
		Fingerprint: fp,
		Records:     records,
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO snapshots (id, name, seq, fingerprint, record_count, body)
		VALUES (?, ?, ?, ?, ?, ?)
	`, snap.ID, snap.Name, snap.Seq, snap.Fingerprint, len(records), string(body))
	if err != nil {
		return Snapshot{}, false, fmt.Errorf("save %s: insert: %w", name, err)
	}

	if err := tx.Commit(); err != nil {
		return Snapshot{}, false, fmt.Errorf("save %s: commit: %w", name, err)
	}

	slog.Debug("snapshot saved", "name", name, "seq", snap.Seq, "id", snap.ID, "records", len(records))
	return snap, true, nil
}

// Latest returns the highest-seq snapshot of name, or ErrNotFound.
func (s *Store) Latest(ctx context.Context, name string) (Snapshot, error) {
	return scanSnapshot(s.db.QueryRowContext(ctx, `
		SELECT id, name, seq, fingerprint, body
		FROM snapshots
		WHERE name = ?
		ORDER BY seq DESC
		LIMIT 1
	`, name))
}

// Get returns snapshot seq of name, or ErrNotFound.
func (s *Store) Get(ctx context.Context, name string, seq int64) (Snapshot, error) {
	return scanSnapshot(s.db.QueryRowContext(ctx, `
		SELECT id, name, seq, fingerprint, body
		FROM snapshots
		WHERE name = ? AND seq = ?
	`, name, seq))
}

// FindByFingerprint returns every snapshot, across names, whose content
// has the given fingerprint.
func (s *Store) FindByFingerprint(ctx context.Context, fingerprint string) ([]Snapshot, error) {
	return s.querySnapshots(ctx, `
		SELECT id, name, seq, fingerprint, body
		FROM snapshots
		WHERE fingerprint = ?
		ORDER BY name COLLATE BINARY ASC, seq ASC, id COLLATE BINARY ASC
	`, fingerprint)
}

// History returns every snapshot of name in seq order.
// Returns an empty slice (not nil) when the name has no snapshots.
func (s *Store) History(ctx context.Context, name string) ([]Snapshot, error) {
	return s.querySnapshots(ctx, `
		SELECT id, name, seq, fingerprint, body
		FROM snapshots
		WHERE name = ?
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`, name)
}

// Names returns the distinct snapshot names in binary order.
func (s *Store) Names(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT name FROM snapshots ORDER BY name COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query names: %w", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate names: %w", err)
	}
	return names, nil
}

func (s *Store) querySnapshots(ctx context.Context, query string, args ...any) ([]Snapshot, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query snapshots: %w", err)
	}
	defer rows.Close()

	snaps := []Snapshot{}
	for rows.Next() {
		snap, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		snaps = append(snaps, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate snapshots: %w", err)
	}
	return snaps, nil
}

// scanner is the common interface of *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanSnapshot(row scanner) (Snapshot, error) {
	var snap Snapshot
	var body string
	if err := row.Scan(&snap.ID, &snap.Name, &snap.Seq, &snap.Fingerprint, &body); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Snapshot{}, ErrNotFound
		}
		return Snapshot{}, fmt.Errorf("scan snapshot: %w", err)
	}

	records, err := value.DecodeArray([]byte(body))
	if err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot %s: %w", snap.ID, err)
	}
	snap.Records = []value.Value(records)
	return snap, nil
}
