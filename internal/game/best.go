package game

import (
	"context"
	"fmt"

	"github.com/verte-zerg/neontype/internal/model"
)

// LoadBest reads the stored best record. An unreadable record counts as
// absent; the read error is returned only so callers can show it.
func LoadBest(ctx context.Context, st BestStore) (model.BestRecord, bool, error) {
	rec, ok, err := st.ReadBest(ctx)
	if err != nil {
		return model.BestRecord{}, false, fmt.Errorf("failed to read best record: %w", err)
	}
	return rec, ok, nil
}

// UpdateBest writes candidate when no best exists or it matches or beats the
// stored WPM. It returns the best record now in effect and whether candidate
// was written. A store failure never aborts the update; it comes back in
// storeErr for display.
func UpdateBest(ctx context.Context, st BestStore, candidate model.BestRecord) (best model.BestRecord, ok, written bool, storeErr error) {
	best, ok, storeErr = LoadBest(ctx, st)
	if ok && candidate.WPM < best.WPM {
		return best, true, false, nil
	}
	if err := st.WriteBest(ctx, candidate); err != nil {
		return best, ok, false, fmt.Errorf("failed to write best record: %w", err)
	}
	return candidate, true, true, storeErr
}
