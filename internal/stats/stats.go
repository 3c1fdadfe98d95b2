// Package stats contains derived metric calculations and reporting.
package stats

import (
	"fmt"
	"math"
	"time"
)

// WPM computes words per minute from correct characters, five characters per word.
func WPM(correctChars int, elapsed time.Duration) int {
	minutes := elapsed.Minutes()
	if minutes <= 0 {
		return 0
	}
	return int(math.Round(float64(correctChars) / 5.0 / minutes))
}

// Accuracy returns the rounded percentage of correct keystroke events.
// An untouched session counts as fully accurate.
func Accuracy(correctChars, totalChars int) int {
	if totalChars <= 0 {
		return 100
	}
	return int(math.Round(100 * float64(correctChars) / float64(totalChars)))
}

// Level derives the 1-based difficulty tier from completed words.
func Level(wordsCompleted, block int) int {
	if block <= 0 {
		return 1
	}
	return wordsCompleted/block + 1
}

// Drain returns the health lost per drain tick at the given level.
func Drain(level int, base, perLevel float64) float64 {
	if level < 1 {
		level = 1
	}
	return base + float64(level-1)*perLevel
}

// FallSpeed returns how long a word takes to cross the screen at the given level.
func FallSpeed(level int, initial, minimum, step time.Duration) time.Duration {
	speed := initial - time.Duration(level)*step
	if speed < minimum {
		return minimum
	}
	return speed
}

// FormatElapsed renders a duration as m:ss.
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Seconds())
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
