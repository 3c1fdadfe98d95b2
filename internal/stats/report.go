package stats

import (
	"fmt"
	"io"

	"github.com/verte-zerg/neontype/internal/model"
)

// RenderBest prints the stored best record as an aligned table.
func RenderBest(w io.Writer, rec model.BestRecord, ok bool) error {
	if !ok {
		_, err := fmt.Fprintln(w, "No best record yet.")
		return err
	}
	if _, err := fmt.Fprintln(w, "Personal Best"); err != nil {
		return err
	}
	rank := RankFor(rec.WPM)
	lines := []recordLine{
		{"WPM", fmt.Sprintf("%d", rec.WPM)},
		{"Accuracy", fmt.Sprintf("%d%%", rec.Accuracy)},
		{"Max Combo", fmt.Sprintf("%d", rec.MaxCombo)},
		{"Words", fmt.Sprintf("%d", rec.WordsCompleted)},
		{"Rank", fmt.Sprintf("%s (top %d%%)", rankLabel(rank, shouldUseColor(w)), Percentile(rec.WPM))},
	}
	if !rec.UpdatedAt.IsZero() {
		lines = append(lines, recordLine{"Set", rec.UpdatedAt.Local().Format("2006-01-02 15:04")})
	}
	for _, line := range layoutRecord(lines) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
