package app

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// Paths holds the resolved filesystem paths for the .argsel/ project directory.
type Paths struct {
	Root      string // .argsel/
	Baseline  string // baseline database, .argsel/baseline.db by default
	Gitignore string // .argsel/.gitignore
}

// NewPaths resolves paths for a project root. baseline is the configured
// baseline database path, already resolved against projectRoot.
func NewPaths(projectRoot, baseline string) *Paths {
	root := filepath.Join(projectRoot, ".argsel")
	if baseline == "" {
		baseline = filepath.Join(root, "baseline.db")
	}
	return &Paths{
		Root:      root,
		Baseline:  baseline,
		Gitignore: filepath.Join(root, ".gitignore"),
	}
}

// EnsureDirs creates .argsel/ and the baseline's directory, and keeps the
// state directory out of version control. Idempotent.
func (p *Paths) EnsureDirs() error {
	for _, d := range []string{p.Root, filepath.Dir(p.Baseline)} {
		if err := os.MkdirAll(d, 0755); err != nil {
			return err
		}
	}
	if _, err := os.Stat(p.Gitignore); errors.Is(err, fs.ErrNotExist) {
		return os.WriteFile(p.Gitignore, []byte("*\n"), 0644)
	}
	return nil
}
