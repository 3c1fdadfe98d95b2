package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/verte-zerg/neontype/internal/model"
)

// FileStore keeps the best record in a JSON file keyed by BestKey.
type FileStore struct {
	path string
}

// NewFileStore returns a FileStore writing to path.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, fmt.Errorf("best record path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &FileStore{path: path}, nil
}

// ReadBest returns the stored best record, or ok=false when the file or key is absent.
func (f *FileStore) ReadBest(_ context.Context) (model.BestRecord, bool, error) {
	records, err := f.load()
	if err != nil {
		return model.BestRecord{}, false, err
	}
	rec, ok := records[BestKey]
	return rec, ok, nil
}

// WriteBest replaces the stored best record atomically.
func (f *FileStore) WriteBest(_ context.Context, rec model.BestRecord) error {
	records, err := f.load()
	if err != nil {
		// A corrupt file is replaced rather than blocking the new record.
		records = map[string]model.BestRecord{}
	}
	records[BestKey] = rec
	return f.save(records)
}

// DeleteBest removes the stored best record.
func (f *FileStore) DeleteBest(_ context.Context) error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete best record: %w", err)
	}
	return nil
}

// Close implements the same lifecycle as Store; there is nothing to release.
func (f *FileStore) Close() error {
	return nil
}

func (f *FileStore) load() (map[string]model.BestRecord, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]model.BestRecord{}, nil
		}
		return nil, fmt.Errorf("failed to read best record: %w", err)
	}
	records := map[string]model.BestRecord{}
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse best record: %w", err)
	}
	return records, nil
}

func (f *FileStore) save(records map[string]model.BestRecord) (err error) {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode best record: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), "best-*.json.tmp")
	if err != nil {
		return fmt.Errorf("failed to persist best record: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to persist best record: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to persist best record: %w", err)
	}
	if err = os.Rename(tmpName, f.path); err != nil {
		return fmt.Errorf("failed to persist best record: %w", err)
	}
	return nil
}
