package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/corey/argsel/internal/domain/argsel"
)

// ApplyFixes rewrites source files with the chosen alternative of each
// finding. A finding whose edits touch bytes an earlier finding in the same
// file already edits is left for the next run. Returns the number of
// findings fixed.
func (a *App) ApplyFixes(ctx context.Context, r *Report, kind FixKind) (int, error) {
	if kind == FixNone || r == nil {
		return 0, nil
	}

	byFile := make(map[string][]argsel.Edit)
	var files []string
	fixed := 0
	for i := range r.Findings {
		f := &r.Findings[i]
		fx, ok := f.fix(kind)
		if !ok || fx.IsEmpty() || f.path == "" {
			continue
		}
		edits, known := byFile[f.path]
		if overlaps(edits, fx.Edits) {
			a.log.Debug("fix overlaps an earlier fix", "file", f.File, "line", f.Line)
			continue
		}
		if !known {
			files = append(files, f.path)
		}
		byFile[f.path] = append(edits, fx.Edits...)
		fixed++
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, path := range files {
		g.Go(func() error {
			return rewrite(ctx, path, byFile[path])
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	a.log.Info("fixes applied", "findings", fixed, "files", len(files), "mode", string(kind))
	return fixed, nil
}

func overlaps(have, add []argsel.Edit) bool {
	for _, x := range add {
		for _, y := range have {
			if x.Start == y.Start || (x.Start < y.End && y.Start < x.End) {
				return true
			}
		}
	}
	return false
}

// rewrite applies edits to a file through a temporary file in the same
// directory, keeping the original permissions.
func rewrite(ctx context.Context, path string, edits []argsel.Edit) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	out, err := argsel.ApplyEdits(string(src), 0, edits)
	if err != nil {
		return fmt.Errorf("fix %s: %w", path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".argsel-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.WriteString(out); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), info.Mode().Perm()); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
