package scan

import (
	"path/filepath"
	"sync"

	"github.com/idelchi/dirdiff/internal/snapshot"
)

// collector aggregates per-directory sizes from concurrent fastwalk
// callbacks using a mutex.
type collector struct {
	mu         sync.Mutex // Protect concurrent access
	root       string
	dirs       map[string]uint64
	fileCount  int64
	totalBytes int64
	errorCount int64
}

// newCollector creates a collector rooted at root (already cleaned).
func newCollector(root string) *collector {
	return &collector{
		root: root,
		dirs: make(map[string]uint64),
	}
}

// addError increments the error counter. This operation is protected by a
// mutex since fastwalk calls the callback from multiple goroutines
// concurrently.
func (c *collector) addError() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errorCount++
}

// add credits size bytes to dir and every ancestor up to the scan root, so
// each directory's total covers its whole subtree.
func (c *collector) add(dir string, size int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.fileCount++
	c.totalBytes += size

	for {
		c.dirs[dir] += uint64(size)

		if dir == c.root {
			return
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached the filesystem root without hitting c.root.
			return
		}

		dir = parent
	}
}

// finish seals the collected directory totals into an immutable snapshot.
func (c *collector) finish() (*snapshot.Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	builder := snapshot.NewBuilder()

	for dir, bytes := range c.dirs {
		if err := builder.Add(dir, bytes); err != nil {
			return nil, err
		}
	}

	return builder.Finish(), nil
}

// errors returns the number of entries skipped due to read errors.
func (c *collector) errors() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.errorCount
}
