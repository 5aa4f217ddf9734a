package output

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/sdejongh/dirdiff/pkg/models"
)

// WriteSummary prints the run counters as a table
func WriteSummary(w io.Writer, summary *models.Summary) error {
	fmt.Fprintf(w, "Compared %s and %s (%s) in %s\n",
		summary.PathA, summary.PathB, summary.Mode, formatDuration(summary.Duration))

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Metric", "Count"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.PerColumn = []tw.Align{tw.AlignLeft, tw.AlignRight}
	})

	st := summary.Stats
	data := [][]string{
		{"Directories compared", strconv.Itoa(st.DirsCompared)},
		{"File pairs compared", strconv.Itoa(st.FilesCompared)},
		{"Identical", strconv.Itoa(st.FilesIdentical)},
		{"Text differences", strconv.Itoa(st.TextDiffs)},
		{"Binary differences", strconv.Itoa(st.BinaryMismatches)},
		{"Not comparable", strconv.Itoa(st.Uncomparable)},
		{"Only in left", strconv.Itoa(st.LeftOnly)},
		{"Only in right", strconv.Itoa(st.RightOnly)},
		{"Missing paths", strconv.Itoa(st.MissingPaths)},
		{"Lines added", strconv.Itoa(st.LinesAdded)},
		{"Lines removed", strconv.Itoa(st.LinesRemoved)},
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "Status: %s, %d differences\n", summary.Status, st.Differences())
	return err
}

// formatDuration formats duration in human-readable format
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
	}
	return fmt.Sprintf("%dh%dm", int(d.Hours()), int(d.Minutes())%60)
}
