// Package report reads and writes disk-usage report files.
//
// A report is plain text, one directory entry per matching line:
//
//	C:\Users\me\Documents [3.2MB]
//
// Lines that do not match this shape (headers, totals, separators, blanks)
// carry no data and are skipped.
package report

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/idelchi/dirdiff/internal/size"
	"github.com/idelchi/dirdiff/internal/snapshot"
)

// DefaultProgressInterval is the default interval for progress updates.
const DefaultProgressInterval = 500 * time.Millisecond

// maxLineBytes bounds a single report line; paths can be long but a line
// past this size is not a plausible report entry.
const maxLineBytes = 1 << 20

// Options configures parsing.
type Options struct {
	// Progress receives (lines, entries) counts while parsing. Nil disables
	// progress reporting.
	Progress func(lines, entries int64)
	// ProgressInterval controls progress callback cadence.
	// Zero means DefaultProgressInterval.
	ProgressInterval time.Duration
}

// Parse consumes the report as a single forward pass over its lines and
// builds a snapshot from every matching entry. Any invalid size token or
// duplicate path aborts the whole parse; no partial snapshot is returned.
func Parse(r io.Reader) (*snapshot.Snapshot, error) {
	return ParseWith(r, Options{})
}

// ParseWith is Parse with explicit options.
func ParseWith(r io.Reader, opt Options) (*snapshot.Snapshot, error) {
	var (
		mu             sync.Mutex
		lines, entries int64
	)

	if opt.Progress != nil {
		interval := opt.ProgressInterval
		if interval <= 0 {
			interval = DefaultProgressInterval
		}

		ticker := time.NewTicker(interval)
		done := make(chan struct{})

		defer close(done)

		go func() {
			defer ticker.Stop()

			for {
				select {
				case <-ticker.C:
					mu.Lock()

					l, e := lines, entries
					mu.Unlock()
					opt.Progress(l, e)
				case <-done:
					return
				}
			}
		}()
	}

	builder := snapshot.NewBuilder()

	var lineNo, matched int64

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	for scanner.Scan() {
		lineNo++

		path, token, ok := matchLine(scanner.Text())
		if !ok {
			continue
		}

		bytes, err := size.Parse(token)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}

		if err := builder.Add(path, bytes); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}

		matched++

		if opt.Progress != nil {
			mu.Lock()

			lines, entries = lineNo, matched
			mu.Unlock()
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading report: %w", err)
	}

	return builder.Finish(), nil
}

// matchLine splits one report line into its path key and bracketed size
// token. A matching line has the shape
//
//	<drive>:<path-remainder> [<size>]
//
// The path key is everything before the final " [" and must contain a colon
// separating a non-empty drive part from a non-empty remainder. Lines
// without that shape do not match and report (_, _, false).
func matchLine(line string) (path, token string, ok bool) {
	if !strings.HasSuffix(line, "]") {
		return "", "", false
	}

	open := strings.LastIndex(line, " [")
	if open < 0 {
		return "", "", false
	}

	token = line[open+2 : len(line)-1]
	if token == "" {
		return "", "", false
	}

	drive, remainder, found := strings.Cut(line[:open], ":")
	if !found || drive == "" || remainder == "" {
		return "", "", false
	}

	return drive + ":" + remainder, token, true
}

// Load reads and parses the report file at path.
func Load(path string) (*snapshot.Snapshot, error) {
	return LoadWith(path, Options{})
}

// LoadWith is Load with explicit options.
func LoadWith(path string, opt Options) (*snapshot.Snapshot, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening report %q: %w", path, err)
	}
	defer file.Close()

	snap, err := ParseWith(file, opt)
	if err != nil {
		return nil, fmt.Errorf("parsing report %q: %w", path, err)
	}

	return snap, nil
}
