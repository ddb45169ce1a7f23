// Package display provides the banner, byte formatting, and the per-target
// summary table.
package display

import (
	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/backmassage/resmerge/internal/merge"
)

// FormatBytes returns a human-readable binary size (B, KiB, MiB, ...).
func FormatBytes(bytes int64) string {
	if bytes < 0 {
		bytes = 0
	}
	return humanize.IBytes(uint64(bytes))
}

// SummaryTable renders the per-target merge reports as a bordered table.
func SummaryTable(reports []merge.TargetReport) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Target", "Sources", "Deleted", "Appended"})
	for _, r := range reports {
		t.AppendRow(table.Row{r.Path, r.Sources, r.Deleted, FormatBytes(r.Bytes)})
	}
	return t.Render()
}
