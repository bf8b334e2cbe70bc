// Package app wires configuration, the Go and Java hosts and the baseline
// store into the operations the CLI exposes: check, fix, baseline and watch.
package app

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"golang.org/x/tools/go/analysis"

	"github.com/corey/argsel/internal/adapters/ahocorasick"
	"github.com/corey/argsel/internal/adapters/bbolt"
	"github.com/corey/argsel/internal/adapters/goanalysis"
	"github.com/corey/argsel/internal/adapters/treesitter"
	"github.com/corey/argsel/internal/config"
	"github.com/corey/argsel/internal/domain/argsel"
	"github.com/corey/argsel/internal/ports"
)

// Options configures New.
type Options struct {
	Root       string       // project root, required
	ConfigPath string       // explicit config file; "" searches the root
	Checks     []string     // overrides the configured checks when non-nil
	NoBaseline bool         // report findings accepted in the baseline too
	Logger     *slog.Logger // nil discards logs
}

// App is one configured project.
type App struct {
	Root      string
	ProjectID string
	Paths     *Paths
	Config    *config.Config
	Checks    []string

	log        *slog.Logger
	noBaseline bool
	analyzers  []*analysis.Analyzer
	java       *treesitter.Checker

	mu    sync.Mutex
	store ports.BaselineStore
	close func() error
}

// New loads the project's configuration and builds both hosts. Does not
// touch the baseline store until a baseline operation needs it.
func New(opts Options) (*App, error) {
	if opts.Root == "" {
		return nil, fmt.Errorf("project root required")
	}
	root, err := filepath.Abs(opts.Root)
	if err != nil {
		return nil, fmt.Errorf("resolve project root: %w", err)
	}
	cfg, err := config.Load(root, opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	checks := cfg.Checks
	if opts.Checks != nil {
		for _, name := range opts.Checks {
			if !slices.Contains(config.Checks, name) {
				return nil, &config.ConfigError{Source: "--checks", Err: fmt.Errorf("unknown check %q", name)}
			}
		}
		checks = opts.Checks
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	engine := cfg.Engine()
	engine.ReversalPrefilter = ahocorasick.NewMatcher(argsel.ReversalKeys(engine.ReversalWords))

	goSettings := goanalysis.Settings{
		Engine:          engine,
		AssertPackages:  cfg.Assert.GoPackages,
		AssertFunctions: cfg.GoAssertFunctions(),
	}
	goSettings.Engine.IsEnum = goanalysis.IsEnum
	if goSettings.AssertFunctions == nil {
		goSettings.AssertFunctions = goanalysis.DefaultAssertFunctions
	}

	javaSettings := treesitter.Settings{Engine: engine, AssertMethods: cfg.JavaAssertMethods()}
	javaSettings.Engine.IsEnum = treesitter.IsEnum
	java, err := treesitter.NewChecker(javaSettings, checks)
	if err != nil {
		return nil, fmt.Errorf("java checker: %w", err)
	}

	return &App{
		Root:       root,
		ProjectID:  root,
		Paths:      NewPaths(root, cfg.BaselinePath(root)),
		Config:     cfg,
		Checks:     checks,
		log:        logger,
		noBaseline: opts.NoBaseline,
		analyzers:  goanalysis.NewAnalyzers(goSettings, checks),
		java:       java,
	}, nil
}

// Close releases the Java parser and the baseline store if it was opened.
func (a *App) Close() error {
	a.java.Close()
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.close == nil {
		return nil
	}
	err := a.close()
	a.store, a.close = nil, nil
	return err
}

// baseline opens the baseline store on first use.
func (a *App) baseline() (ports.BaselineStore, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.store != nil {
		return a.store, nil
	}
	if err := a.Paths.EnsureDirs(); err != nil {
		return nil, fmt.Errorf("create %s: %w", a.Paths.Root, err)
	}
	store, err := bbolt.NewStore(a.Paths.Baseline)
	if err != nil {
		return nil, fmt.Errorf("open baseline %s (is another argsel running?): %w", a.Paths.Baseline, err)
	}
	a.store, a.close = store, store.Close
	return store, nil
}

// rel returns path relative to the project root in slash form, or path
// itself when it lies outside the root.
func (a *App) rel(path string) string {
	r, err := filepath.Rel(a.Root, path)
	if err != nil || strings.HasPrefix(r, "..") {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(r)
}

// abs resolves a command-line path against the project root.
func (a *App) abs(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(a.Root, path)
}
