// Package ports defines the interfaces (contracts) that adapters must implement.
// These are the boundaries of the hexagonal architecture. Domain logic depends
// only on these interfaces, never on concrete implementations.
package ports

import (
	"cmp"
	"maps"
	"slices"
	"time"
)

// BaselineStore persists accepted findings so later runs only report new ones.
// The backing store (bbolt) is project-scoped: each projectID gets its own
// namespace. Concurrent reads are safe; writes are serialized by the adapter.
//
// Crash safety: SaveBaseline must be transactional. A crash mid-write must not
// corrupt the previously committed baseline.
type BaselineStore interface {
	// SaveBaseline replaces the baseline for a project.
	SaveBaseline(projectID string, b *Baseline) error

	// LoadBaseline retrieves the baseline for a project.
	// Returns nil, nil if no baseline exists.
	LoadBaseline(projectID string) (*Baseline, error)

	// DeleteBaseline removes the baseline for a project.
	// Idempotent: deleting a nonexistent baseline is not an error.
	DeleteBaseline(projectID string) error
}

// Baseline is the set of findings accepted at one point in time, keyed by
// fingerprint.
type Baseline struct {
	RunID     string
	CreatedAt time.Time
	Entries   map[uint64]BaselineEntry
}

// BaselineEntry describes one accepted finding for display.
type BaselineEntry struct {
	Check   string
	File    string
	Message string
}

// Contains reports whether a finding fingerprint was accepted.
func (b *Baseline) Contains(fingerprint uint64) bool {
	if b == nil {
		return false
	}
	_, ok := b.Entries[fingerprint]
	return ok
}

// Sorted returns the entries ordered by file, check and message.
func (b *Baseline) Sorted() []BaselineEntry {
	if b == nil {
		return nil
	}
	return slices.SortedFunc(maps.Values(b.Entries), func(x, y BaselineEntry) int {
		return cmp.Or(
			cmp.Compare(x.File, y.File),
			cmp.Compare(x.Check, y.Check),
			cmp.Compare(x.Message, y.Message),
		)
	})
}
