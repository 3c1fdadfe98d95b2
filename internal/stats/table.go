package stats

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// recordLine is one labelled value of the best-record table.
type recordLine struct {
	label string
	value string
}

// layoutRecord lays out a Metric/Value header followed by lines: labels
// left-aligned, values right-aligned under the widest value. Widths are
// measured in terminal cells, so styled values line up with plain ones.
func layoutRecord(lines []recordLine) []string {
	header := recordLine{label: "Metric", value: "Value"}
	labelWidth := lipgloss.Width(header.label)
	valueWidth := lipgloss.Width(header.value)
	for _, l := range lines {
		labelWidth = max(labelWidth, lipgloss.Width(l.label))
		valueWidth = max(valueWidth, lipgloss.Width(l.value))
	}

	out := make([]string, 0, len(lines)+1)
	for _, l := range append([]recordLine{header}, lines...) {
		out = append(out, padRight(l.label, labelWidth)+" "+padLeft(l.value, valueWidth))
	}
	return out
}

func padRight(s string, width int) string {
	return s + strings.Repeat(" ", max(0, width-lipgloss.Width(s)))
}

func padLeft(s string, width int) string {
	return strings.Repeat(" ", max(0, width-lipgloss.Width(s))) + s
}
