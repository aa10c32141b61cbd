package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"github.com/idelchi/dirdiff/internal/growth"
	"github.com/idelchi/dirdiff/internal/report"
	"github.com/idelchi/dirdiff/internal/scan"
	"github.com/idelchi/dirdiff/internal/snapshot"
)

func logic(opts options) error {
	enableProgress := strings.ToLower(opts.Output) != "json" &&
		!opts.Debug &&
		isatty.IsTerminal(os.Stderr.Fd())

	if enableProgress {
		// Hide cursor for in-place updates; restore on exit.
		fmt.Fprint(os.Stderr, "\033[?25l")
		defer fmt.Fprint(os.Stderr, "\033[?25h")
	}

	newer, newerLabel, err := newerSnapshot(opts, enableProgress)
	if err != nil {
		return err
	}

	if opts.Scan != "" && opts.Write != "" {
		if err := report.Save(opts.Write, newer); err != nil {
			return err
		}

		if opts.Older == "" {
			//nolint:forbidigo // Result output to console
			fmt.Printf("wrote %d entries to %s\n", newer.Len(), opts.Write)

			return nil
		}
	}

	older, err := loadReport(opts.Older, enableProgress)
	if err != nil {
		return err
	}

	start := time.Now()
	entries := growth.DiffWith(newer, older, growth.Options{Workers: opts.Workers})
	elapsed := time.Since(start)

	result := newResult(opts.Older, newerLabel, entries, newer.Len(), elapsed)
	result.Entries = trimEntries(result.Entries, opts.MinGrowth, opts.Top)

	switch strings.ToLower(opts.Output) {
	case "json":
		return PrintJSON(result, os.Stdout)
	case "table":
		return PrintTable(result, os.Stdout)
	default:
		return fmt.Errorf("unknown output format: %s", opts.Output)
	}
}

// newerSnapshot produces the newer side of the comparison, either by
// scanning a live tree or by loading a report file.
func newerSnapshot(opts options, enableProgress bool) (*snapshot.Snapshot, string, error) {
	if opts.Scan == "" {
		snap, err := loadReport(opts.Newer, enableProgress)

		return snap, opts.Newer, err
	}

	var progressHook func(files, bytes int64)

	if enableProgress {
		progressHook = func(files, bytes int64) {
			msg := fmt.Sprintf("Scanning… %d files, %s",
				files, humanize.Bytes(uint64(bytes))) //nolint:gosec // Bytes is always positive
			fmt.Fprintf(os.Stderr, "\r\033[2K%s\r", msg)
		}
	}

	snap, err := scan.Run(context.Background(), scan.Options{
		Path:     opts.Scan,
		Excludes: opts.Excludes,
		Depth:    opts.Depth,
		Debug:    opts.Debug,
	}, progressHook)

	if enableProgress {
		fmt.Fprint(os.Stderr, "\r\033[2K\r")
	}

	return snap, opts.Scan, err
}

// loadReport loads one report file with a progress line on stderr.
func loadReport(path string, enableProgress bool) (*snapshot.Snapshot, error) {
	var opt report.Options

	if enableProgress {
		opt.Progress = func(lines, entries int64) {
			msg := fmt.Sprintf("Loading %s… %d lines, %d entries", path, lines, entries)
			fmt.Fprintf(os.Stderr, "\r\033[2K%s\r", msg)
		}
	}

	snap, err := report.LoadWith(path, opt)

	if enableProgress {
		fmt.Fprint(os.Stderr, "\r\033[2K\r")
	}

	return snap, err
}

// trimEntries drops entries below minGrowth and keeps at most top entries
// (0 keeps all). The input is already ordered by delta descending, so both
// cuts preserve the largest growth.
func trimEntries(entries []growth.Entry, minGrowth uint64, top int) []growth.Entry {
	if minGrowth > 0 {
		kept := entries[:0]

		for _, entry := range entries {
			if entry.Delta >= minGrowth {
				kept = append(kept, entry)
			}
		}

		entries = kept
	}

	if top > 0 && len(entries) > top {
		entries = entries[:top]
	}

	return entries
}
