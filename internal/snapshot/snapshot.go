// Package snapshot holds the parsed, in-memory mapping of directory path to
// byte size from one disk-usage report.
//
// A Snapshot is built once through a Builder and is read-only afterwards,
// which makes it safe for unsynchronized concurrent reads.
package snapshot

import (
	"errors"
	"fmt"
	"sort"
)

// ErrDuplicatePath is returned when the same path is added twice while
// building a snapshot. A single report must not define a path more than once.
var ErrDuplicatePath = errors.New("duplicate path")

// Snapshot is an immutable mapping of normalized directory paths
// (e.g. `C:\Users\x`) to their sizes in bytes.
type Snapshot struct {
	sizes map[string]uint64
	paths []string
}

// Builder accumulates entries for a snapshot under construction.
// It is not safe for concurrent use.
type Builder struct {
	sizes map[string]uint64
}

// NewBuilder returns an empty snapshot builder.
func NewBuilder() *Builder {
	return &Builder{sizes: make(map[string]uint64)}
}

// Add records one (path, bytes) entry.
func (b *Builder) Add(path string, bytes uint64) error {
	if _, ok := b.sizes[path]; ok {
		return fmt.Errorf("path %q: %w", path, ErrDuplicatePath)
	}

	b.sizes[path] = bytes

	return nil
}

// Finish seals the accumulated entries into an immutable Snapshot.
// The builder must not be used afterwards.
func (b *Builder) Finish() *Snapshot {
	paths := make([]string, 0, len(b.sizes))
	for path := range b.sizes {
		paths = append(paths, path)
	}

	sort.Strings(paths)

	snap := &Snapshot{sizes: b.sizes, paths: paths}
	b.sizes = nil

	return snap
}

// Get returns the recorded size for path and whether the path is present.
func (s *Snapshot) Get(path string) (uint64, bool) {
	bytes, ok := s.sizes[path]

	return bytes, ok
}

// Len returns the number of entries in the snapshot.
func (s *Snapshot) Len() int {
	return len(s.paths)
}

// Paths returns the entry paths in ascending order.
// Callers must not modify the returned slice.
func (s *Snapshot) Paths() []string {
	return s.paths
}
