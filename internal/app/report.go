package app

import (
	"fmt"
	"sort"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/corey/argsel/internal/domain/argsel"
)

// FixKind selects which alternative fix to apply.
type FixKind string

const (
	FixNone    FixKind = "none"
	FixPermute FixKind = "permute"
	FixComment FixKind = "comment"
)

// ParseFixKind validates a --fix value.
func ParseFixKind(s string) (FixKind, error) {
	switch k := FixKind(s); k {
	case FixNone, FixPermute, FixComment:
		return k, nil
	}
	return "", fmt.Errorf("unknown fix mode %q (want none, permute or comment)", s)
}

// Finding is one reported defect with its location in the project.
type Finding struct {
	Check       string       `json:"check"`
	File        string       `json:"file"` // relative to the project root, slash-separated
	Line        int          `json:"line"`
	Column      int          `json:"column"`
	Offset      int          `json:"offset"`
	Message     string       `json:"message"`
	Fingerprint string       `json:"fingerprint"`
	Fixes       []argsel.Fix `json:"fixes,omitempty"`

	path string // absolute
	fp   uint64
}

// fix returns the alternative matching kind. Label fixes have no
// alternative and serve both kinds.
func (f *Finding) fix(kind FixKind) (argsel.Fix, bool) {
	want := argsel.PermutationFixDescription
	if kind == FixComment {
		want = argsel.CommentFixDescription
	}
	for _, fx := range f.Fixes {
		if fx.Description == want || fx.Description == argsel.LabelFixDescription {
			return fx, true
		}
	}
	return argsel.Fix{}, false
}

// Report is the result of one check run.
type Report struct {
	RunID     string    `json:"run_id"`
	Started   time.Time `json:"started"`
	Files     int       `json:"java_files"`
	Packages  int       `json:"go_packages"`
	Findings  []Finding `json:"findings"`
	Baselined int       `json:"baselined"`
	Errors    []error   `json:"-"`
}

// fingerprint identifies a finding independently of its line, so a baseline
// survives edits elsewhere in the file.
func fingerprint(check, file, message string) uint64 {
	d := xxhash.New()
	d.WriteString(check)
	d.WriteString("\x00")
	d.WriteString(file)
	d.WriteString("\x00")
	d.WriteString(message)
	return d.Sum64()
}

func formatFingerprint(fp uint64) string {
	return fmt.Sprintf("%016x", fp)
}

// add records a finding unless an identical one (same check at the same
// offset) is already present; Go test variants report package code twice.
func (r *Report) add(seen map[string]bool, f Finding) {
	key := fmt.Sprintf("%s\x00%s\x00%d", f.Check, f.File, f.Offset)
	if seen[key] {
		return
	}
	seen[key] = true
	f.fp = fingerprint(f.Check, f.File, f.Message)
	f.Fingerprint = formatFingerprint(f.fp)
	r.Findings = append(r.Findings, f)
}

func (r *Report) sort() {
	sort.SliceStable(r.Findings, func(i, j int) bool {
		a, b := r.Findings[i], r.Findings[j]
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Offset != b.Offset {
			return a.Offset < b.Offset
		}
		return a.Check < b.Check
	})
}
