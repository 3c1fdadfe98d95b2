package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

const (
	wordsBehind = 1
	wordsAhead  = 8
)

type styledRune struct {
	s       string
	width   int
	isSpace bool
}

// wordWindow returns the slice bounds of the words shown around the current one.
func wordWindow(total, current int) (int, int) {
	start := current - wordsBehind
	if start < 0 {
		start = 0
	}
	end := current + wordsAhead
	if end > total {
		end = total
	}
	if start > end {
		start = end
	}
	return start, end
}

// buildWordRunes styles the visible words. The current word is coloured
// per character against typed; the cursor sits on the next untyped rune.
func buildWordRunes(words []string, current int, typed string, overdrive bool) []styledRune {
	start, end := wordWindow(len(words), current)
	typedRunes := []rune(typed)
	activeStyle := currentWordStyle
	if overdrive {
		activeStyle = overdriveWordStyle
	}

	out := make([]styledRune, 0, 64)
	for idx := start; idx < end; idx++ {
		if idx > start {
			out = append(out, styledRune{s: " ", width: 1, isSpace: true})
		}
		var style lipgloss.Style
		switch {
		case idx < current:
			style = pastStyle
		case idx > current:
			style = pendingStyle
		}
		for i, r := range []rune(words[idx]) {
			s := style
			if idx == current {
				switch {
				case i < len(typedRunes) && typedRunes[i] == r:
					s = correctStyle
				case i < len(typedRunes):
					s = incorrectStyle
				case i == len(typedRunes):
					s = activeStyle.Underline(true)
				default:
					s = activeStyle
				}
			}
			out = append(out, styledRune{
				s:     s.Render(string(r)),
				width: runewidth.RuneWidth(r),
			})
		}
	}
	return out
}

func renderStyledRunes(runes []styledRune) string {
	var b strings.Builder
	for _, item := range runes {
		b.WriteString(item.s)
	}
	return b.String()
}

func wrapStyledRunes(runes []styledRune, width int) string {
	if width <= 0 {
		return renderStyledRunes(runes)
	}
	var out strings.Builder
	line := make([]styledRune, 0, len(runes))
	lineWidth := 0
	lastSpaceIdx := -1

	for i := 0; i < len(runes); {
		item := runes[i]
		if lineWidth+item.width > width && len(line) > 0 {
			if lastSpaceIdx >= 0 {
				out.WriteString(renderStyledRunes(line[:lastSpaceIdx]))
				out.WriteRune('\n')
				line = append([]styledRune{}, line[lastSpaceIdx+1:]...)
				lineWidth = lineWidthOf(line)
				lastSpaceIdx = lastSpaceIndex(line)
			} else {
				out.WriteString(renderStyledRunes(line))
				out.WriteRune('\n')
				line = line[:0]
				lineWidth = 0
				lastSpaceIdx = -1
			}
			continue
		}
		line = append(line, item)
		lineWidth += item.width
		if item.isSpace {
			lastSpaceIdx = len(line) - 1
		}
		i++
	}
	out.WriteString(renderStyledRunes(line))
	return out.String()
}

func lineWidthOf(line []styledRune) int {
	total := 0
	for _, item := range line {
		total += item.width
	}
	return total
}

func lastSpaceIndex(line []styledRune) int {
	for i := len(line) - 1; i >= 0; i-- {
		if line[i].isSpace {
			return i
		}
	}
	return -1
}
