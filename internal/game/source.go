// Package game implements the typing arcade session: the state machine,
// its timers and the notifications raised for the presentation layer.
package game

import (
	"context"
	"time"

	"github.com/verte-zerg/neontype/internal/model"
)

// WordSource supplies batches of target words.
// Implementations must return at least one non-empty word per batch.
type WordSource interface {
	DrawWordBatch() []string
}

// BestStore persists the best record between sessions.
type BestStore interface {
	ReadBest(ctx context.Context) (model.BestRecord, bool, error)
	WriteBest(ctx context.Context, rec model.BestRecord) error
}

// Clock provides the wall-clock anchor for elapsed time.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}
