package tui

import (
	"fmt"

	"github.com/mrz1836/aigit/internal/domain"
)

// FormatBytes renders n with a decimal unit (B, KB, MB, GB).
func FormatBytes(n int) string {
	const unit = 1000
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := unit, 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGT"[exp])
}

// VerdictSummary describes a safety verdict in one line.
func VerdictSummary(v domain.SafetyVerdict) string {
	if v.NeedsConfirmation() {
		return fmt.Sprintf("staged diff is %s, above the %s safety threshold",
			FormatBytes(v.ByteSize), FormatBytes(v.Threshold))
	}
	return fmt.Sprintf("staged diff is %s (threshold %s)", FormatBytes(v.ByteSize), FormatBytes(v.Threshold))
}

// StatusRows turns status entries into table rows (state, path).
func StatusRows(entries []domain.FileStatusEntry) [][]string {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{FileStateLabel(e.State), e.Path})
	}
	return rows
}
