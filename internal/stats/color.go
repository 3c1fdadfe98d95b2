package stats

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

func shouldUseColor(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}

// rankLabel returns the rank name, tinted with the rank color when color is on.
func rankLabel(rank Rank, color bool) string {
	if !color {
		return rank.Name
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(rank.Color)).Bold(true).Render(rank.Name)
}
