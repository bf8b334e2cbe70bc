// Package fsnotify implements the ports.Watcher interface using github.com/fsnotify/fsnotify.
// It recursively watches a project directory, passes through only source files the
// checkers understand, and debounces rapid events (editors often trigger multiple
// writes per save).
package fsnotify

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/corey/argsel/internal/ports"
)

// DefaultExtensions are the source files that trigger a re-check.
var DefaultExtensions = []string{".go", ".java"}

// Directories to ignore when watching.
var ignoreDirs = map[string]bool{
	".git":         true,
	".hg":          true,
	".svn":         true,
	"node_modules": true,
	"vendor":       true,
	"testdata":     true,
	".idea":        true,
	".vscode":      true,
	"build":        true,
	"target":       true,
	".gradle":      true,
	".argsel":      true,
}

// IgnoredDir reports whether a directory name is never watched. Project
// walks use it too, so watch mode and one-shot checks see the same files.
func IgnoredDir(name string) bool {
	return ignoreDirs[name]
}

// Editor scratch files that share a source extension prefix.
var ignoreSuffixes = []string{"~", ".swp", ".swx", ".tmp", ".orig"}

const debounceInterval = 50 * time.Millisecond

var _ ports.Watcher = (*Watcher)(nil)

// Watcher implements ports.Watcher using fsnotify.
type Watcher struct {
	fw      *fsnotify.Watcher
	exts    map[string]bool
	done    chan struct{}
	wg      sync.WaitGroup
	stopped bool
	mu      sync.Mutex
}

// NewWatcher creates a new file system watcher that reports changes to files
// with the given extensions (DefaultExtensions when none are given).
func NewWatcher(extensions ...string) (*Watcher, error) {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	exts := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		exts[strings.ToLower(ext)] = true
	}
	return &Watcher{
		fw:   fw,
		exts: exts,
		done: make(chan struct{}),
	}, nil
}

// Watch starts monitoring projectPath recursively.
// onChange is called with the absolute path of each changed source file.
func (w *Watcher) Watch(projectPath string, onChange func(filePath string)) error {
	absPath, err := filepath.Abs(projectPath)
	if err != nil {
		return err
	}
	if _, err := os.Stat(absPath); err != nil {
		return err
	}

	err = filepath.WalkDir(absPath, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil // skip inaccessible paths
		}
		if d.IsDir() {
			if IgnoredDir(d.Name()) && path != absPath {
				return filepath.SkipDir
			}
			return w.fw.Add(path)
		}
		return nil
	})
	if err != nil {
		return err
	}

	w.wg.Add(1)
	go w.loop(onChange)
	return nil
}

func (w *Watcher) loop(onChange func(string)) {
	defer w.wg.Done()

	// Debounce state: last event time per file
	debounce := make(map[string]time.Time)

	for {
		select {
		case event, ok := <-w.fw.Events:
			if !ok {
				return
			}
			path := event.Name

			// New directories join the watch list
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(path); err == nil && info.IsDir() {
					if !IgnoredDir(info.Name()) {
						_ = w.fw.Add(path)
					}
					continue
				}
			}

			if !w.isSource(path) {
				continue
			}
			if !(event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
				event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)) {
				continue
			}

			now := time.Now()
			if last, seen := debounce[path]; seen && now.Sub(last) < debounceInterval {
				continue
			}
			debounce[path] = now

			select {
			case <-w.done:
				return
			default:
			}
			onChange(path)

		case _, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			// fsnotify recovers from queue overflows on its own

		case <-w.done:
			return
		}
	}
}

// Stop ends monitoring and releases all resources.
// Safe to call multiple times.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return nil
	}
	w.stopped = true
	close(w.done)
	w.mu.Unlock()

	err := w.fw.Close()
	w.wg.Wait()
	return err
}

// isSource reports whether a change to path should trigger onChange.
func (w *Watcher) isSource(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".#") {
		return false
	}
	for _, suffix := range ignoreSuffixes {
		if strings.HasSuffix(base, suffix) {
			return false
		}
	}
	if !w.exts[strings.ToLower(filepath.Ext(base))] {
		return false
	}
	for _, part := range strings.Split(filepath.Dir(path), string(filepath.Separator)) {
		if ignoreDirs[part] {
			return false
		}
	}
	return true
}
