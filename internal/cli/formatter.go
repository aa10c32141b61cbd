package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/idelchi/dirdiff/internal/growth"
)

const (
	// TabSpacing is the number of spaces between tabwriter columns.
	TabSpacing = 2
)

// Result is the displayable outcome of one comparison.
type Result struct {
	// Older names the older snapshot source.
	Older string `json:"older"`
	// Newer names the newer snapshot source (report file or scanned dir).
	Newer string `json:"newer"`
	// Entries are the grown directories, delta descending.
	Entries []growth.Entry `json:"entries"`
	// Grown is the number of grown directories before top/min-growth trimming.
	Grown int `json:"grown"`
	// Compared is the number of entries in the newer snapshot.
	Compared int `json:"compared"`
	// TotalGrowth is the sum of all positive deltas in bytes.
	TotalGrowth uint64 `json:"total_growth"`
	// Elapsed is the time taken by the comparison.
	Elapsed time.Duration `json:"elapsed"`
}

// newResult assembles a Result from the full, untrimmed diff.
func newResult(older, newer string, entries []growth.Entry, compared int, elapsed time.Duration) *Result {
	var total uint64
	for _, entry := range entries {
		total += entry.Delta
	}

	return &Result{
		Older:       older,
		Newer:       newer,
		Entries:     entries,
		Grown:       len(entries),
		Compared:    compared,
		TotalGrowth: total,
		Elapsed:     elapsed,
	}
}

// PrintJSON outputs the comparison result in JSON format.
func PrintJSON(result *Result, writer io.Writer) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}

	if _, err := fmt.Fprintln(writer, string(data)); err != nil {
		return err
	}

	return nil
}

// PrintTable outputs the comparison result in human-readable table format.
//
//nolint:forbidigo // This function prints output to the console.
func PrintTable(result *Result, writer io.Writer) error {
	w := tabwriter.NewWriter(writer, 0, 4, TabSpacing, ' ', 0)

	fmt.Fprintln(w, "\nGrown directories:\t\t")

	if len(result.Entries) == 0 {
		fmt.Fprintln(w, "  (none)")
	}

	for i, entry := range result.Entries {
		pct := 0.0
		if result.TotalGrowth > 0 {
			pct = 100.0 * float64(entry.Delta) / float64(result.TotalGrowth)
		}

		fmt.Fprintf(w, "  %d) '%s'\t+%s (%.1f%%)\n",
			i+1, entry.Path, humanize.Bytes(entry.Delta), pct)
	}

	fmt.Fprintln(w, "\nStats:\t\t")
	fmt.Fprintf(w, "Older snapshot:\t%s\n", result.Older)
	fmt.Fprintf(w, "Newer snapshot:\t%s\n", result.Newer)
	fmt.Fprintf(w, "Compared entries:\t%d\n", result.Compared)
	fmt.Fprintf(w, "Grown directories:\t%d\n", result.Grown)
	fmt.Fprintf(w, "Total growth:\t%s (%d bytes)\n",
		humanize.Bytes(result.TotalGrowth), result.TotalGrowth)

	fmt.Fprintf(w, "\nElapsed:\t%v\n", result.Elapsed)

	return w.Flush()
}
