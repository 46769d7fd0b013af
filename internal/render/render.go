// Package render prints analytics reports as aligned terminal text.
package render

import (
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/keybeat/keybeat/internal/analytics"
	"github.com/keybeat/keybeat/internal/model"
)

const (
	sparkChars        = " .:-=+*#%@"
	heatmapBarMax     = 40
	heatmapTopKeys    = 8
	weakKeyCount      = 5
	fallbackTermWidth = 80
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A"))
	alertStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
)

// Report writes the full human-readable report.
func Report(w io.Writer, rep model.AnalyticsReport, events []model.KeystrokeEvent) error {
	if err := renderSummary(w, rep); err != nil {
		return err
	}
	if err := renderTiming(w, rep); err != nil {
		return err
	}
	if err := renderCurve(w, rep); err != nil {
		return err
	}
	if err := renderDigraphs(w, rep); err != nil {
		return err
	}
	if err := renderErrors(w, rep, events); err != nil {
		return err
	}
	if err := renderHeatmap(w, rep); err != nil {
		return err
	}
	return renderAntiCheat(w, rep.AntiCheat)
}

func renderSummary(w io.Writer, rep model.AnalyticsReport) error {
	if _, err := fmt.Fprintln(w, headingStyle.Render("Summary")); err != nil {
		return err
	}
	rows := [][]string{
		{"WPM", fmtFloat(rep.WPM, 1)},
		{"Raw WPM", fmtFloat(rep.RawWPM, 1)},
		{"Adjusted WPM", fmtFloat(rep.AdjustedWPM, 1)},
		{"Burst WPM", fmtFloat(rep.BurstWPM, 1)},
		{"Accuracy", fmtPercent(rep.Accuracy)},
		{"Consistency", fmtFloat(rep.Consistency, 0)},
		{"Typing rhythm", fmtFloat(rep.TypingRhythm, 0)},
	}
	if rep.PeakWindow != nil {
		rows = append(rows, []string{
			"Peak window",
			fmt.Sprintf("%.1f WPM (pos %d-%d)", rep.PeakWindow.WPM, rep.PeakWindow.StartPosition, rep.PeakWindow.EndPosition),
		})
	}
	if rep.FatigueIndicator != nil {
		rows = append(rows, []string{"Fatigue", fmt.Sprintf("%+d%%", *rep.FatigueIndicator)})
	}
	return writeTable(w, nil, rows, map[int]bool{1: true})
}

func renderTiming(w io.Writer, rep model.AnalyticsReport) error {
	if _, err := fmt.Fprintln(w, headingStyle.Render("Timing")); err != nil {
		return err
	}
	rows := [][]string{
		{"Avg dwell", fmtMs(rep.AvgDwellMs)},
		{"Avg flight", fmtMs(rep.AvgFlightMs)},
		{"Flight std dev", fmtMs(rep.StdDevFlightMs)},
		{"Hand balance (L)", fmtPercentRatio(rep.HandBalance)},
	}
	return writeTable(w, nil, rows, map[int]bool{1: true})
}

func renderCurve(w io.Writer, rep model.AnalyticsReport) error {
	if rep.WPMByPosition == nil && rep.RollingAccuracy == nil {
		return nil
	}
	if _, err := fmt.Fprintln(w, headingStyle.Render("Progress")); err != nil {
		return err
	}
	if rep.WPMByPosition != nil {
		line := fmt.Sprintf("WPM by position   %s", sparkline(rep.WPMByPosition))
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if rep.RollingAccuracy != nil {
		line := fmt.Sprintf("Rolling accuracy  %s", sparkline(rep.RollingAccuracy))
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return blankLine(w)
}

func renderDigraphs(w io.Writer, rep model.AnalyticsReport) error {
	if rep.TopDigraphs == nil && rep.FastestDigraph == nil {
		return nil
	}
	if _, err := fmt.Fprintln(w, headingStyle.Render("Digraphs")); err != nil {
		return err
	}
	if rep.FastestDigraph != nil && rep.SlowestDigraph != nil {
		line := dimStyle.Render(fmt.Sprintf("fastest %q %.0f ms · slowest %q %.0f ms",
			rep.FastestDigraph.Digraph, rep.FastestDigraph.MeanMs,
			rep.SlowestDigraph.Digraph, rep.SlowestDigraph.MeanMs))
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if rep.TopDigraphs == nil {
		return blankLine(w)
	}
	headers := []string{"Digraph", "Mean (ms)", "Count"}
	rows := make([][]string, 0, len(rep.TopDigraphs)+len(rep.BottomDigraphs))
	for _, d := range rep.TopDigraphs {
		rows = append(rows, []string{d.Digraph, fmt.Sprintf("%.1f", d.MeanMs), fmt.Sprintf("%d", d.Count)})
	}
	for _, d := range rep.BottomDigraphs {
		rows = append(rows, []string{d.Digraph, fmt.Sprintf("%.1f", d.MeanMs), fmt.Sprintf("%d", d.Count)})
	}
	return writeTable(w, headers, rows, map[int]bool{1: true, 2: true})
}

func renderErrors(w io.Writer, rep model.AnalyticsReport, events []model.KeystrokeEvent) error {
	if _, err := fmt.Fprintln(w, headingStyle.Render("Errors")); err != nil {
		return err
	}
	rows := [][]string{
		{"Total", fmt.Sprintf("%d", rep.TotalErrors)},
	}
	for _, kind := range []model.ErrorKind{model.ErrorDoublet, model.ErrorSubstitution, model.ErrorOther} {
		if n, ok := rep.ErrorTypes[kind]; ok {
			rows = append(rows, []string{string(kind), fmt.Sprintf("%d", n)})
		}
	}
	if rep.ErrorBurstCount != nil {
		rows = append(rows, []string{"Error bursts", fmt.Sprintf("%d", *rep.ErrorBurstCount)})
	}
	if weak := analytics.WeakestKeys(events, weakKeyCount); len(weak) > 0 {
		rows = append(rows, []string{"Weakest keys", strings.Join(weak, " ")})
	}
	if err := writeTable(w, nil, rows, map[int]bool{1: true}); err != nil {
		return err
	}
	if len(rep.SlowestWords) == 0 {
		return nil
	}
	headers := []string{"Slow word", "Duration (ms)"}
	wordRows := make([][]string, 0, len(rep.SlowestWords))
	for _, wt := range rep.SlowestWords {
		wordRows = append(wordRows, []string{wt.Word, fmt.Sprintf("%d", wt.DurationMs)})
	}
	return writeTable(w, headers, wordRows, map[int]bool{1: true})
}

func renderHeatmap(w io.Writer, rep model.AnalyticsReport) error {
	if len(rep.KeyHeatmap) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, headingStyle.Render("Key heatmap")); err != nil {
		return err
	}
	type keyCount struct {
		key   string
		count int
	}
	counts := make([]keyCount, 0, len(rep.KeyHeatmap))
	maxCount := 0
	for key, count := range rep.KeyHeatmap {
		counts = append(counts, keyCount{key: key, count: count})
		if count > maxCount {
			maxCount = count
		}
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].count == counts[j].count {
			return counts[i].key < counts[j].key
		}
		return counts[i].count > counts[j].count
	})
	if len(counts) > heatmapTopKeys {
		counts = counts[:heatmapTopKeys]
	}
	barWidth := heatmapBarMax
	if avail := terminalWidth() - 20; avail > 0 && avail < barWidth {
		barWidth = avail
	}
	for _, kc := range counts {
		label := kc.key
		if label == " " {
			label = "<space>"
		}
		bar := strings.Repeat("#", barLen(kc.count, maxCount, barWidth))
		if _, err := fmt.Fprintf(w, "%-9s %4d %s\n", label, kc.count, dimStyle.Render(bar)); err != nil {
			return err
		}
	}
	return blankLine(w)
}

func renderAntiCheat(w io.Writer, res model.AntiCheatResult) error {
	if _, err := fmt.Fprintln(w, headingStyle.Render("Validation")); err != nil {
		return err
	}
	verdict := okStyle.Render("clean")
	if res.Suspicious {
		verdict = alertStyle.Render("suspicious")
	}
	if res.SyntheticInputDetected {
		verdict = alertStyle.Render("synthetic input detected")
	}
	rows := [][]string{
		{"Verdict", verdict},
		{"Score", fmt.Sprintf("%d", res.ValidationScore)},
	}
	if len(res.Flags) > 0 {
		rows = append(rows, []string{"Flags", strings.Join(res.Flags, ", ")})
	}
	if res.MinIntervalMs != nil {
		rows = append(rows, []string{"Min interval", fmt.Sprintf("%.0f ms", *res.MinIntervalMs)})
	}
	if res.IntervalVarianceMs2 != nil {
		rows = append(rows, []string{"Interval variance", fmt.Sprintf("%.2f ms²", *res.IntervalVarianceMs2)})
	}
	return writeTable(w, nil, rows, nil)
}

// sparkline renders a single-line ASCII sparkline for the values.
func sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

func barLen(count, maxCount, width int) int {
	if maxCount <= 0 || width <= 0 {
		return 0
	}
	n := int(math.Round(float64(count) / float64(maxCount) * float64(width)))
	if n < 1 {
		n = 1
	}
	return n
}

func terminalWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return fallbackTermWidth
}

func writeTable(w io.Writer, headers []string, rows [][]string, rightAlign map[int]bool) error {
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return blankLine(w)
}

func blankLine(w io.Writer) error {
	_, err := fmt.Fprintln(w, "")
	return err
}

// fmtFloat renders a pointer metric, "n/a" when absent.
func fmtFloat(v *float64, decimals int) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.*f", decimals, *v)
}

func fmtPercent(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.1f%%", *v)
}

func fmtPercentRatio(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.0f%%", *v*100)
}

func fmtMs(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.1f ms", *v)
}
