package app

import (
	"context"
	"errors"
	"fmt"
	"go/token"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/checker"
	"golang.org/x/tools/go/packages"

	fsw "github.com/corey/argsel/internal/adapters/fsnotify"
	"github.com/corey/argsel/internal/adapters/treesitter"
	"github.com/corey/argsel/internal/domain/argsel"
)

// Check runs the enabled checks over patterns and drops findings accepted
// in the baseline, counting them in Report.Baselined, unless the App was
// built with NoBaseline.
//
// Patterns are go/packages patterns plus .java files. Directory patterns
// ("dir", "./dir/...") are also searched for Java sources, recursively
// when they end in "...". No patterns means "./...".
func (a *App) Check(ctx context.Context, patterns []string) (*Report, error) {
	r, err := a.run(ctx, patterns)
	if err != nil {
		return nil, err
	}
	if !a.noBaseline {
		if err := a.filterBaseline(r); err != nil {
			return nil, err
		}
	}
	a.log.Info("check finished",
		"run", r.RunID,
		"packages", r.Packages,
		"java_files", r.Files,
		"findings", len(r.Findings),
		"baselined", r.Baselined,
		"elapsed", time.Since(r.Started).Round(time.Millisecond))
	return r, nil
}

// run checks patterns without consulting the baseline.
func (a *App) run(ctx context.Context, patterns []string) (*Report, error) {
	if len(patterns) == 0 {
		patterns = []string{"./..."}
	}
	goPatterns, javaFiles, err := a.resolve(patterns)
	if err != nil {
		return nil, err
	}

	r := &Report{RunID: uuid.NewString(), Started: time.Now()}
	seen := make(map[string]bool)
	if len(goPatterns) > 0 && len(a.analyzers) > 0 {
		if err := a.checkGo(ctx, goPatterns, r, seen); err != nil {
			return nil, err
		}
	}
	if len(javaFiles) > 0 {
		if err := a.checkJava(ctx, javaFiles, r, seen); err != nil {
			return nil, err
		}
	}
	r.sort()
	return r, nil
}

// resolve splits patterns into Go patterns and Java files. A directory
// pattern is handed to go/packages only when Go files live under it.
func (a *App) resolve(patterns []string) (goPatterns, javaFiles []string, err error) {
	for _, p := range patterns {
		if strings.EqualFold(filepath.Ext(p), ".java") {
			javaFiles = append(javaFiles, a.abs(p))
			continue
		}
		dir, recursive := strings.CutSuffix(p, "...")
		dir = strings.TrimSuffix(dir, "/")
		if dir == "" {
			dir = "."
		}
		info, statErr := os.Stat(a.abs(dir))
		if statErr != nil || !info.IsDir() {
			goPatterns = append(goPatterns, p) // import path
			continue
		}
		found, hasGo, err := a.walkSources(a.abs(dir), recursive)
		if err != nil {
			return nil, nil, fmt.Errorf("walk %s: %w", dir, err)
		}
		javaFiles = append(javaFiles, found...)
		if hasGo {
			if !filepath.IsAbs(p) && !strings.HasPrefix(p, ".") {
				p = "./" + p
			}
			goPatterns = append(goPatterns, p)
		}
	}
	slices.Sort(javaFiles)
	return goPatterns, slices.Compact(javaFiles), nil
}

// walkSources lists the Java files under dir that are not excluded and
// reports whether any Go file is present.
func (a *App) walkSources(dir string, recursive bool) (java []string, hasGo bool, err error) {
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && (!recursive || fsw.IgnoredDir(d.Name())) {
				return filepath.SkipDir
			}
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".go":
			hasGo = true
		case ".java":
			if !a.Config.Excluded(a.rel(path)) {
				java = append(java, path)
			}
		}
		return nil
	})
	return java, hasGo, err
}

// checkGo loads packages with their tests and runs the analyzers over them.
// Packages that fail to load or type-check are logged and skipped.
func (a *App) checkGo(ctx context.Context, patterns []string, r *Report, seen map[string]bool) error {
	cfg := &packages.Config{
		Mode:    packages.LoadAllSyntax,
		Context: ctx,
		Dir:     a.Root,
		Tests:   true,
	}
	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		a.log.Warn("go packages not loaded", "patterns", patterns, "error", err)
		r.Errors = append(r.Errors, &LoadError{Target: strings.Join(patterns, " "), Err: err})
		return nil
	}

	var roots []*packages.Package
	for _, pkg := range pkgs {
		if len(pkg.Errors) > 0 {
			a.log.Warn("skipping package", "package", pkg.ID, "error", pkg.Errors[0].Msg)
			r.Errors = append(r.Errors, &LoadError{Target: pkg.ID, Err: pkg.Errors[0]})
			continue
		}
		roots = append(roots, pkg)
	}
	if len(roots) == 0 {
		return nil
	}
	a.log.Debug("analyzing go packages", "count", len(roots))

	graph, err := checker.Analyze(a.analyzers, roots, &checker.Options{})
	if err != nil {
		return fmt.Errorf("analyze: %w", err)
	}
	r.Packages += len(roots)
	for act := range graph.All() {
		if !act.IsRoot {
			continue
		}
		if act.Err != nil {
			a.log.Warn("analyzer failed", "analyzer", act.Analyzer.Name, "package", act.Package.ID, "error", act.Err)
			r.Errors = append(r.Errors, &LoadError{Target: act.Package.ID, Err: act.Err})
			continue
		}
		fset := act.Package.Fset
		for _, d := range act.Diagnostics {
			pos := fset.Position(d.Pos)
			rel := a.rel(pos.Filename)
			if a.Config.Excluded(rel) {
				continue
			}
			f := Finding{
				Check:   d.Category,
				File:    rel,
				Line:    pos.Line,
				Column:  pos.Column,
				Offset:  pos.Offset,
				Message: d.Message,
				path:    pos.Filename,
			}
			for _, sf := range d.SuggestedFixes {
				f.Fixes = append(f.Fixes, convertFix(fset, sf))
			}
			r.add(seen, f)
		}
	}
	return nil
}

// convertFix turns analysis text edits back into file offsets.
func convertFix(fset *token.FileSet, sf analysis.SuggestedFix) argsel.Fix {
	fx := argsel.Fix{Description: sf.Message}
	for _, e := range sf.TextEdits {
		end := e.End
		if !end.IsValid() {
			end = e.Pos
		}
		fx.Edits = append(fx.Edits, argsel.Edit{
			Start: fset.Position(e.Pos).Offset,
			End:   fset.Position(end).Offset,
			Text:  string(e.NewText),
		})
	}
	return fx
}

// checkJava checks Java files in parallel. Unreadable files are recorded
// and skipped.
func (a *App) checkJava(ctx context.Context, files []string, r *Report, seen map[string]bool) error {
	results := make([][]Finding, len(files))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			src, err := os.ReadFile(path)
			if err == nil {
				var diags []treesitter.Diagnostic
				diags, err = a.java.CheckFile(src)
				results[i] = a.javaFindings(path, diags)
			}
			if err != nil {
				a.log.Warn("skipping java file", "file", a.rel(path), "error", err)
				mu.Lock()
				r.Errors = append(r.Errors, &LoadError{Target: a.rel(path), Err: err})
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	r.Files += len(files)
	for _, findings := range results {
		for _, f := range findings {
			r.add(seen, f)
		}
	}
	return nil
}

func (a *App) javaFindings(path string, diags []treesitter.Diagnostic) []Finding {
	out := make([]Finding, len(diags))
	rel := a.rel(path)
	for i, d := range diags {
		out[i] = Finding{
			Check:   d.Check,
			File:    rel,
			Line:    d.Line,
			Column:  d.Column,
			Offset:  d.Start,
			Message: d.Message,
			Fixes:   d.Fixes,
			path:    path,
		}
	}
	return out
}

// filterBaseline drops findings accepted in the baseline. A project without
// a baseline database is left alone; no database is created.
func (a *App) filterBaseline(r *Report) error {
	if _, err := os.Stat(a.Paths.Baseline); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	b, err := a.LoadBaseline()
	if err != nil {
		return err
	}
	if b == nil {
		return nil
	}
	kept := r.Findings[:0]
	for _, f := range r.Findings {
		if b.Contains(f.fp) {
			r.Baselined++
			continue
		}
		kept = append(kept, f)
	}
	r.Findings = kept
	return nil
}
