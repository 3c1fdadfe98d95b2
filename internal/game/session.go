package game

import (
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/verte-zerg/neontype/internal/model"
	"github.com/verte-zerg/neontype/internal/stats"
)

// Session is the game state machine. It holds no timers; the Engine drives
// the periodic transitions. Every mutator is a no-op outside Playing.
type Session struct {
	tuning model.Tuning
	source WordSource

	id     string
	status model.Status

	words        []string
	currentIndex int
	typed        string

	correctChars int
	totalChars   int
	errors       int

	combo      int
	maxCombo   int
	comboMeter int
	overdrive  bool

	health         float64
	wordsCompleted int
	level          int

	startTime time.Time
	elapsed   time.Duration
	wpm       int
	accuracy  int

	best    model.BestRecord
	hasBest bool
	newBest bool

	storeErr string
}

// NewSession returns an idle session.
func NewSession(source WordSource, tuning model.Tuning) *Session {
	return &Session{
		tuning:   tuning,
		source:   source,
		status:   model.StatusIdle,
		health:   tuning.MaxHealth,
		level:    1,
		accuracy: 100,
	}
}

// Status returns the lifecycle state.
func (s *Session) Status() model.Status {
	return s.status
}

// ID returns the current play-through identifier.
func (s *Session) ID() string {
	return s.id
}

// Start discards any previous play-through and begins a fresh one.
func (s *Session) Start(now time.Time) {
	best, hasBest, storeErr := s.best, s.hasBest, s.storeErr
	*s = Session{
		tuning:    s.tuning,
		source:    s.source,
		id:        uuid.NewString(),
		status:    model.StatusPlaying,
		health:    s.tuning.MaxHealth,
		level:     1,
		accuracy:  100,
		startTime: now,
		best:      best,
		hasBest:   hasBest,
		storeErr:  storeErr,
	}
	s.words = s.draw()
}

// Submit applies the player's cumulative buffer for the current word.
// Only the last character is checked; earlier characters are not re-validated.
func (s *Session) Submit(buf string) []Event {
	if s.status != model.StatusPlaying {
		return nil
	}
	target := s.currentWord()
	if target == "" {
		return nil
	}

	var events []Event
	typed := []rune(buf)
	if n := len(typed); n > 0 {
		want := []rune(target)
		last := n - 1
		if last < len(want) && typed[last] == want[last] {
			s.correctChars++
			s.combo++
			s.maxCombo = max(s.maxCombo, s.combo)
			events = append(events, s.event(EventKeyCorrect))
			if s.combo%s.tuning.MilestoneEvery == 0 {
				ev := s.event(EventComboMilestone)
				ev.Combo = s.combo
				events = append(events, ev)
			}
		} else {
			s.errors++
			s.combo = 0
			s.comboMeter = lo.Clamp(s.comboMeter-s.tuning.ComboPenalty, 0, s.tuning.MaxComboMeter)
			s.overdrive = false
			events = append(events, s.event(EventKeyError))
		}
		s.totalChars++
	}

	if buf != target {
		s.typed = buf
		return events
	}

	s.comboMeter = lo.Clamp(s.comboMeter+s.tuning.ComboFill, 0, s.tuning.MaxComboMeter)
	s.health = lo.Clamp(s.health+s.tuning.HealthRestore, 0, s.tuning.MaxHealth)
	s.wordsCompleted++
	s.level = stats.Level(s.wordsCompleted, s.tuning.LevelBlock)
	s.typed = ""
	s.currentIndex++
	if s.currentIndex >= len(s.words) {
		s.words = s.draw()
		s.currentIndex = 0
	}
	done := s.event(EventWordComplete)
	done.Word = target
	events = append(events, done)

	if s.comboMeter >= s.tuning.MaxComboMeter && !s.overdrive {
		s.overdrive = true
		events = append(events, s.event(EventOverdriveStart))
	}
	return events
}

// Tick refreshes elapsed time and WPM.
func (s *Session) Tick(now time.Time) {
	if s.status != model.StatusPlaying {
		return
	}
	s.elapsed = now.Sub(s.startTime)
	s.wpm = stats.WPM(s.correctChars, s.elapsed)
}

// Drain applies one health-drain tick and reports whether health is now exhausted.
// The check reads the value just written, so the caller can end the session
// within the same step.
func (s *Session) Drain() bool {
	if s.status != model.StatusPlaying {
		return false
	}
	drain := stats.Drain(s.level, s.tuning.BaseDrain, s.tuning.LevelDrainIncrement)
	s.health = max(0, s.health-drain)
	return s.health <= 0
}

// ExpireOverdrive ends overdrive and lands the meter at the fixed mid-point.
func (s *Session) ExpireOverdrive() []Event {
	if s.status != model.StatusPlaying {
		return nil
	}
	wasOverdrive := s.overdrive
	s.overdrive = false
	s.comboMeter = s.tuning.OverdriveLanding
	if !wasOverdrive {
		return nil
	}
	return []Event{s.event(EventOverdriveEnd)}
}

// Finish freezes the final metrics and moves to GameOver.
func (s *Session) Finish(now time.Time) []Event {
	if s.status != model.StatusPlaying {
		return nil
	}
	s.elapsed = now.Sub(s.startTime)
	s.wpm = stats.WPM(s.correctChars, s.elapsed)
	s.accuracy = stats.Accuracy(s.correctChars, s.totalChars)
	s.overdrive = false
	s.status = model.StatusGameOver
	return []Event{s.event(EventGameOver)}
}

// Record returns the best-record candidate for the current metrics.
func (s *Session) Record(now time.Time) model.BestRecord {
	return model.BestRecord{
		WPM:            s.wpm,
		Accuracy:       s.accuracy,
		MaxCombo:       s.maxCombo,
		WordsCompleted: s.wordsCompleted,
		UpdatedAt:      now,
	}
}

// SetBest attaches the known best record to the session.
func (s *Session) SetBest(rec model.BestRecord, ok, isNew bool) {
	s.best = rec
	s.hasBest = ok
	s.newBest = isNew
}

// SetStoreErr records the latest best-record store failure; nil clears it.
func (s *Session) SetStoreErr(err error) {
	s.storeErr = ""
	if err != nil {
		s.storeErr = err.Error()
	}
}

// Snapshot returns a copy of the session state.
func (s *Session) Snapshot() model.Snapshot {
	return model.Snapshot{
		SessionID:        s.id,
		Status:           s.status,
		Words:            slices.Clone(s.words),
		CurrentWordIndex: s.currentIndex,
		TypedChars:       s.typed,
		CorrectChars:     s.correctChars,
		TotalChars:       s.totalChars,
		Errors:           s.errors,
		Combo:            s.combo,
		MaxCombo:         s.maxCombo,
		ComboMeter:       s.comboMeter,
		IsOverdrive:      s.overdrive,
		Health:           s.health,
		WordsCompleted:   s.wordsCompleted,
		Level:            s.level,
		StartTime:        s.startTime,
		Elapsed:          s.elapsed,
		WPM:              s.wpm,
		Accuracy:         s.accuracy,
		FallSpeed:        stats.FallSpeed(s.level, s.tuning.InitialFallSpeed, s.tuning.MinFallSpeed, s.tuning.FallSpeedStep),
		Best:             s.best,
		HasBest:          s.hasBest,
		NewBest:          s.newBest,
		StoreErr:         s.storeErr,
	}
}

func (s *Session) currentWord() string {
	if s.currentIndex < 0 || s.currentIndex >= len(s.words) {
		return ""
	}
	return s.words[s.currentIndex]
}

func (s *Session) draw() []string {
	batch := lo.Filter(s.source.DrawWordBatch(), func(word string, _ int) bool {
		return word != ""
	})
	if len(batch) == 0 {
		panic("game: word source returned an empty batch")
	}
	return batch
}

func (s *Session) event(kind EventKind) Event {
	return Event{Kind: kind, SessionID: s.id}
}
