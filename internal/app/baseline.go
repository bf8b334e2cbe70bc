package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/corey/argsel/internal/ports"
)

// SaveBaseline checks patterns and records every finding as accepted,
// replacing any previous baseline.
func (a *App) SaveBaseline(ctx context.Context, patterns []string) (*ports.Baseline, error) {
	r, err := a.run(ctx, patterns)
	if err != nil {
		return nil, err
	}
	b := &ports.Baseline{
		RunID:     r.RunID,
		CreatedAt: r.Started,
		Entries:   make(map[uint64]ports.BaselineEntry, len(r.Findings)),
	}
	for _, f := range r.Findings {
		b.Entries[f.fp] = ports.BaselineEntry{Check: f.Check, File: f.File, Message: f.Message}
	}

	store, err := a.baseline()
	if err != nil {
		return nil, err
	}
	if err := store.SaveBaseline(a.ProjectID, b); err != nil {
		return nil, fmt.Errorf("save baseline: %w", err)
	}
	a.log.Info("baseline saved", "run", b.RunID, "entries", len(b.Entries))
	return b, nil
}

// LoadBaseline returns the project's baseline, or nil if none was saved.
func (a *App) LoadBaseline() (*ports.Baseline, error) {
	if _, err := os.Stat(a.Paths.Baseline); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	store, err := a.baseline()
	if err != nil {
		return nil, err
	}
	b, err := store.LoadBaseline(a.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("load baseline: %w", err)
	}
	return b, nil
}

// ClearBaseline forgets every accepted finding. Idempotent.
func (a *App) ClearBaseline() error {
	if _, err := os.Stat(a.Paths.Baseline); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	store, err := a.baseline()
	if err != nil {
		return err
	}
	if err := store.DeleteBaseline(a.ProjectID); err != nil {
		return fmt.Errorf("clear baseline: %w", err)
	}
	return nil
}
