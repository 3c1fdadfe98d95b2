// Package store persists the best-score record.
package store

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/verte-zerg/neontype/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// BestKey identifies the single best record.
const BestKey = "neontype-best"

// Store wraps SQLite access for the best record.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS best_records (
			key TEXT PRIMARY KEY,
			wpm INTEGER NOT NULL,
			accuracy INTEGER NOT NULL,
			max_combo INTEGER NOT NULL,
			words_completed INTEGER NOT NULL,
			updated_at TEXT NOT NULL
		);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// ReadBest returns the stored best record, or ok=false when none exists.
func (s *Store) ReadBest(ctx context.Context) (model.BestRecord, bool, error) {
	var rec model.BestRecord
	var updatedAt string
	err := s.db.QueryRowContext(ctx,
		`SELECT wpm, accuracy, max_combo, words_completed, updated_at
		 FROM best_records WHERE key = ?`, BestKey,
	).Scan(&rec.WPM, &rec.Accuracy, &rec.MaxCombo, &rec.WordsCompleted, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.BestRecord{}, false, nil
	}
	if err != nil {
		return model.BestRecord{}, false, err
	}
	if updatedAt != "" {
		parsed, err := time.Parse(time.RFC3339Nano, updatedAt)
		if err != nil {
			return model.BestRecord{}, false, err
		}
		rec.UpdatedAt = parsed
	}
	return rec, true, nil
}

// WriteBest replaces the stored best record.
func (s *Store) WriteBest(ctx context.Context, rec model.BestRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO best_records (key, wpm, accuracy, max_combo, words_completed, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET
			wpm = excluded.wpm,
			accuracy = excluded.accuracy,
			max_combo = excluded.max_combo,
			words_completed = excluded.words_completed,
			updated_at = excluded.updated_at`,
		BestKey,
		rec.WPM,
		rec.Accuracy,
		rec.MaxCombo,
		rec.WordsCompleted,
		formatTime(rec.UpdatedAt),
	)
	return err
}

// DeleteBest removes the stored best record.
func (s *Store) DeleteBest(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM best_records WHERE key = ?`, BestKey)
	return err
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339Nano)
}
