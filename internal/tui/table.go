package tui

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/handiism/album-formatter/internal/match"
)

// renderAssignment builds the review table: one row per matched file,
// ordered by the assigned track's position in the album.
func renderAssignment(assignment *match.Assignment) string {
	entries := make([]match.Entry, len(assignment.Entries))
	copy(entries, assignment.Entries)
	sort.Slice(entries, func(i, j int) bool {
		a, b := assignment.Track(entries[i]), assignment.Track(entries[j])
		if a.Disc != b.Disc {
			return a.Disc < b.Disc
		}
		return a.Number < b.Number
	})

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"#", "File", "Song", "Confidence", "How"})

	for _, entry := range entries {
		track := assignment.Track(entry)
		tw.AppendRow(table.Row{
			fmt.Sprintf("%d-%02d", track.Disc, track.Number),
			filepath.Base(entry.Candidate.Path),
			track.Name,
			fmt.Sprintf("%.2f", entry.Confidence),
			entry.Status.String(),
		})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 4, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})

	return tw.Render()
}
