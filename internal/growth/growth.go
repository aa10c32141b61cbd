// Package growth compares two disk-usage snapshots and reports the
// directories that grew between them.
//
// Shrunk and removed directories are not reported; only positive deltas
// surface.
package growth

import (
	"runtime"
	"sort"
	"sync"

	"github.com/idelchi/dirdiff/internal/snapshot"
)

// Entry is one grown path and the number of bytes it gained.
type Entry struct {
	// Path is the directory path as it appears in the newer snapshot.
	Path string `json:"path"`
	// Delta is the size increase in bytes, always positive.
	Delta uint64 `json:"delta"`
}

// Options tunes the comparison.
type Options struct {
	// Workers is the number of goroutines computing deltas.
	// Zero auto-tunes from the CPU count.
	Workers int
}

// Diff reports every path whose size in newer exceeds its size in older,
// treating paths absent from older as zero-sized. Paths present only in
// older are ignored. The result is ordered by delta descending, ties broken
// by path ascending, so repeated runs produce identical output.
func Diff(newer, older *snapshot.Snapshot) []Entry {
	return DiffWith(newer, older, Options{})
}

// DiffWith is Diff with explicit options.
//
// Each worker fills delta slots for a disjoint range of newer's entries and
// touches no shared state; the filter and sort run once all workers are
// done, so the output does not depend on the worker count.
func DiffWith(newer, older *snapshot.Snapshot, opt Options) []Entry {
	paths := newer.Paths()
	if len(paths) == 0 {
		return nil
	}

	workers := opt.Workers
	if workers <= 0 {
		workers = autoWorkers()
	}

	if workers > len(paths) {
		workers = len(paths)
	}

	deltas := make([]uint64, len(paths))
	chunk := (len(paths) + workers - 1) / workers

	var wg sync.WaitGroup

	for start := 0; start < len(paths); start += chunk {
		end := min(start+chunk, len(paths))

		wg.Add(1)

		go func(start, end int) {
			defer wg.Done()

			for i := start; i < end; i++ {
				newSize, _ := newer.Get(paths[i])
				oldSize, _ := older.Get(paths[i])

				if newSize > oldSize {
					deltas[i] = newSize - oldSize
				}
			}
		}(start, end)
	}

	wg.Wait()

	entries := make([]Entry, 0, len(paths))

	for i, delta := range deltas {
		if delta > 0 {
			entries = append(entries, Entry{Path: paths[i], Delta: delta})
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Delta != entries[j].Delta {
			return entries[i].Delta > entries[j].Delta
		}

		return entries[i].Path < entries[j].Path
	})

	return entries
}

// autoWorkers sizes the pool from the CPU count. The per-entry work is two
// map lookups, so oversubscribing past the core count buys nothing.
func autoWorkers() int {
	n := max(1, runtime.NumCPU())

	return min(n, 32)
}
