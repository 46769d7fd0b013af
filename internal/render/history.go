package render

import (
	"fmt"
	"io"

	"github.com/keybeat/keybeat/internal/store"
)

// History writes stored reports as a table, newest first.
func History(w io.Writer, records []store.Record) error {
	headers := []string{"When", "WPM", "Accuracy", "Score", "Verdict", "ID"}
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		verdict := "clean"
		if rec.Suspicious {
			verdict = "suspicious"
		}
		if rec.Synthetic {
			verdict = "synthetic"
		}
		rows = append(rows, []string{
			rec.CreatedAt.Format("2006-01-02 15:04"),
			fmtFloat(rec.WPM, 1),
			fmtPercent(rec.Accuracy),
			fmt.Sprintf("%d", rec.ValidationScore),
			verdict,
			rec.ID,
		})
	}
	return writeTable(w, headers, rows, map[int]bool{1: true, 2: true, 3: true})
}
