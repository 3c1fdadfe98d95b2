// Package model defines shared data structures.
package model

import (
	"fmt"
	"time"
)

// Status is the lifecycle state of a game session.
type Status int

const (
	StatusIdle Status = iota
	StatusPlaying
	StatusGameOver
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusPlaying:
		return "playing"
	case StatusGameOver:
		return "gameover"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Source kinds for the word source.
const (
	SourceParagraphs = "paragraphs"
	SourceWords      = "words"
)

// Store kinds for the best-score store.
const (
	StoreSQLite = "sqlite"
	StoreJSON   = "json"
)

// Config defines play settings.
type Config struct {
	Source         string
	Lang           string
	ParagraphsPath string
	WordListPath   string
	Words          int
	CapsPct        float64
	PunctPct       float64
	PunctSet       string
	Store          string
	Tuning         Tuning
}

// GaugeCeiling bounds both the health gauge and the combo meter.
const GaugeCeiling = 100

// Tuning holds the timing and economy constants of a session.
type Tuning struct {
	MetricsInterval     time.Duration
	DrainInterval       time.Duration
	BaseDrain           float64
	LevelDrainIncrement float64
	MaxHealth           float64
	HealthRestore       float64
	MaxComboMeter       int
	ComboFill           int
	ComboPenalty        int
	OverdriveDuration   time.Duration
	OverdriveLanding    int
	LevelBlock          int
	MilestoneEvery      int
	InitialFallSpeed    time.Duration
	MinFallSpeed        time.Duration
	FallSpeedStep       time.Duration
}

// DefaultTuning returns the stock arcade tuning.
func DefaultTuning() Tuning {
	return Tuning{
		MetricsInterval:     500 * time.Millisecond,
		DrainInterval:       1500 * time.Millisecond,
		BaseDrain:           2,
		LevelDrainIncrement: 0.5,
		MaxHealth:           100,
		HealthRestore:       3,
		MaxComboMeter:       100,
		ComboFill:           8,
		ComboPenalty:        25,
		OverdriveDuration:   5 * time.Second,
		OverdriveLanding:    50,
		LevelBlock:          10,
		MilestoneEvery:      50,
		InitialFallSpeed:    3000 * time.Millisecond,
		MinFallSpeed:        800 * time.Millisecond,
		FallSpeedStep:       200 * time.Millisecond,
	}
}

// Validate reports the first tuning value that would break the session economy.
func (t Tuning) Validate() error {
	switch {
	case t.MetricsInterval <= 0:
		return fmt.Errorf("metrics interval must be > 0")
	case t.DrainInterval <= 0:
		return fmt.Errorf("drain interval must be > 0")
	case t.OverdriveDuration <= 0:
		return fmt.Errorf("overdrive duration must be > 0")
	case t.MaxHealth <= 0 || t.MaxHealth > GaugeCeiling:
		return fmt.Errorf("max health must be > 0 and <= %d", GaugeCeiling)
	case t.MaxComboMeter <= 0 || t.MaxComboMeter > GaugeCeiling:
		return fmt.Errorf("max combo meter must be > 0 and <= %d", GaugeCeiling)
	case t.BaseDrain < 0 || t.LevelDrainIncrement < 0:
		return fmt.Errorf("drain must be >= 0")
	case t.HealthRestore < 0 || t.ComboFill < 0 || t.ComboPenalty < 0:
		return fmt.Errorf("restore, fill and penalty must be >= 0")
	case t.OverdriveLanding < 0 || t.OverdriveLanding > t.MaxComboMeter:
		return fmt.Errorf("overdrive landing must be between 0 and %d", t.MaxComboMeter)
	case t.LevelBlock <= 0:
		return fmt.Errorf("level block must be > 0")
	case t.MilestoneEvery <= 0:
		return fmt.Errorf("milestone interval must be > 0")
	}
	return nil
}

// BestRecord is the persisted high-score snapshot.
type BestRecord struct {
	WPM            int       `json:"wpm"`
	Accuracy       int       `json:"accuracy"`
	MaxCombo       int       `json:"maxCombo"`
	WordsCompleted int       `json:"wordsCompleted"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Snapshot is a read-only copy of a game session.
type Snapshot struct {
	SessionID        string
	Status           Status
	Words            []string
	CurrentWordIndex int
	TypedChars       string
	CorrectChars     int
	TotalChars       int
	Errors           int
	Combo            int
	MaxCombo         int
	ComboMeter       int
	IsOverdrive      bool
	Health           float64
	WordsCompleted   int
	Level            int
	StartTime        time.Time
	Elapsed          time.Duration
	WPM              int
	Accuracy         int
	FallSpeed        time.Duration

	Best    BestRecord
	HasBest bool
	NewBest bool

	// StoreErr describes the latest best-record store failure; empty when none.
	StoreErr string
}

// CurrentWord returns the active target word, or "" when none exists.
func (s Snapshot) CurrentWord() string {
	if s.CurrentWordIndex < 0 || s.CurrentWordIndex >= len(s.Words) {
		return ""
	}
	return s.Words[s.CurrentWordIndex]
}
