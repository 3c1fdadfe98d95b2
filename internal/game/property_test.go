package game

import (
	"strings"
	"testing"
	"time"

	"pgregory.net/rapid"

	"github.com/verte-zerg/neontype/internal/model"
)

func drawWords(t *rapid.T) []string {
	return rapid.SliceOfN(rapid.StringMatching(`[a-z]{1,8}`), 1, 6).Draw(t, "words")
}

// nextCorrectBuffer extends the correctly typed prefix of the current word by one rune.
func nextCorrectBuffer(snap model.Snapshot) string {
	target := []rune(snap.CurrentWord())
	typed := snap.TypedChars
	prefix := 0
	if strings.HasPrefix(snap.CurrentWord(), typed) {
		prefix = len([]rune(typed))
	}
	if prefix >= len(target) {
		return string(target)
	}
	return string(target[:prefix+1])
}

func TestComboCountsConsecutiveCorrectKeystrokes(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		src := &fixedSource{words: drawWords(t)}
		s := NewSession(src, model.DefaultTuning())
		s.Start(testStart)

		n := rapid.IntRange(1, 200).Draw(t, "keystrokes")
		for i := 1; i <= n; i++ {
			s.Submit(nextCorrectBuffer(s.Snapshot()))
			snap := s.Snapshot()
			if snap.Combo != i {
				t.Fatalf("after %d correct keystrokes combo is %d", i, snap.Combo)
			}
			if snap.MaxCombo < snap.Combo {
				t.Fatalf("max combo %d below combo %d", snap.MaxCombo, snap.Combo)
			}
			if snap.Errors != 0 {
				t.Fatalf("unexpected errors: %d", snap.Errors)
			}
		}
	})
}

func TestSessionInvariantsHoldUnderArbitraryInterleaving(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		tuning := model.DefaultTuning()
		src := &fixedSource{words: drawWords(t)}
		s := NewSession(src, tuning)
		s.Start(testStart)
		now := testStart

		prev := s.Snapshot()
		steps := rapid.IntRange(1, 300).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			before := s.Snapshot()
			var events []Event
			switch action := rapid.IntRange(0, 6).Draw(t, "action"); action {
			case 0, 1:
				events = s.Submit(nextCorrectBuffer(before))
			case 2:
				events = s.Submit(before.CurrentWord())
			case 3:
				events = s.Submit(before.TypedChars + "#")
				if before.ComboMeter-tuning.ComboPenalty >= 0 {
					if got := s.Snapshot().ComboMeter; got != before.ComboMeter-tuning.ComboPenalty {
						t.Fatalf("expected meter %d after error, got %d", before.ComboMeter-tuning.ComboPenalty, got)
					}
				}
				if got := s.Snapshot(); got.Combo != 0 || got.IsOverdrive {
					t.Fatalf("error must reset combo and overdrive: %+v", got)
				}
			case 4:
				if s.Drain() {
					s.Finish(now)
				}
			case 5:
				events = s.ExpireOverdrive()
				if s.Status() == model.StatusPlaying {
					if got := s.Snapshot(); got.IsOverdrive || got.ComboMeter != tuning.OverdriveLanding {
						t.Fatalf("expiry must land at %d: %+v", tuning.OverdriveLanding, got)
					}
				}
			case 6:
				now = now.Add(time.Duration(rapid.IntRange(1, 5000).Draw(t, "ms")) * time.Millisecond)
				s.Tick(now)
			}

			snap := s.Snapshot()
			if snap.ComboMeter < 0 || snap.ComboMeter > tuning.MaxComboMeter {
				t.Fatalf("combo meter out of range: %d", snap.ComboMeter)
			}
			if snap.Health < 0 || snap.Health > tuning.MaxHealth {
				t.Fatalf("health out of range: %.2f", snap.Health)
			}
			if snap.MaxCombo < snap.Combo {
				t.Fatalf("max combo %d below combo %d", snap.MaxCombo, snap.Combo)
			}
			if snap.CorrectChars < prev.CorrectChars || snap.TotalChars < prev.TotalChars ||
				snap.Errors < prev.Errors || snap.MaxCombo < prev.MaxCombo || snap.WordsCompleted < prev.WordsCompleted {
				t.Fatalf("monotonic counter decreased: before %+v after %+v", prev, snap)
			}
			if snap.CurrentWordIndex < 0 || snap.CurrentWordIndex > len(snap.Words) {
				t.Fatalf("word index %d out of range for %d words", snap.CurrentWordIndex, len(snap.Words))
			}
			if want := snap.WordsCompleted/tuning.LevelBlock + 1; snap.Level != want {
				t.Fatalf("expected level %d, got %d", want, snap.Level)
			}
			if countKind(events, EventOverdriveStart) > 0 && before.IsOverdrive {
				t.Fatalf("overdrive re-triggered while active")
			}
			if completed := countKind(events, EventWordComplete); completed > 0 {
				if snap.WordsCompleted != before.WordsCompleted+1 || snap.TypedChars != "" {
					t.Fatalf("completion must add exactly one word and clear the buffer: %+v", snap)
				}
			}
			prev = snap
			if s.Status() == model.StatusGameOver {
				if snap.Health != 0 {
					t.Fatalf("game over before health ran out: %.2f", snap.Health)
				}
				return
			}
		}
	})
}
