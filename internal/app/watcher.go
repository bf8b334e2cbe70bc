package app

import (
	"context"
	"fmt"

	fsw "github.com/corey/argsel/internal/adapters/fsnotify"
	"github.com/corey/argsel/internal/ports"
)

// Watch checks patterns once, then again whenever a source file under the
// project root changes, until ctx is cancelled. Each run's result goes to
// onReport. Runs never overlap: changes that arrive during a run trigger a
// single run after it.
func (a *App) Watch(ctx context.Context, patterns []string, onReport func(*Report, error)) error {
	w, err := fsw.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	return a.watch(ctx, w, patterns, onReport)
}

func (a *App) watch(ctx context.Context, w ports.Watcher, patterns []string, onReport func(*Report, error)) error {
	defer w.Stop()

	changed := make(chan struct{}, 1)
	err := w.Watch(a.Root, func(path string) {
		rel := a.rel(path)
		if a.Config.Excluded(rel) {
			return
		}
		a.log.Debug("source changed", "file", rel)
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	if err != nil {
		return fmt.Errorf("watch %s: %w", a.Root, err)
	}

	onReport(a.Check(ctx, patterns))
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-changed:
			r, err := a.Check(ctx, patterns)
			if ctx.Err() != nil {
				return nil
			}
			onReport(r, err)
		}
	}
}
