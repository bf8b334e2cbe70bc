package cmd

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corey/argsel/internal/app"
	"github.com/corey/argsel/internal/config"
	"github.com/corey/argsel/internal/domain/argsel"
	"github.com/corey/argsel/internal/ports"
)

func TestExitCode(t *testing.T) {
	assert.Equal(t, 3, ExitCode(exitError{code: exitFindings}))
	assert.Equal(t, 3, ExitCode(fmt.Errorf("wrapped: %w", exitError{code: 3})))
	assert.Equal(t, -1, ExitCode(errors.New("boom")))
	assert.Equal(t, -1, ExitCode(nil))
}

func TestResolveColor(t *testing.T) {
	on, err := resolveColor("always")
	require.NoError(t, err)
	assert.True(t, on)

	on, err = resolveColor("never")
	require.NoError(t, err)
	assert.False(t, on)

	t.Setenv("NO_COLOR", "1")
	on, err = resolveColor("auto")
	require.NoError(t, err)
	assert.False(t, on)

	_, err = resolveColor("sometimes")
	assert.Error(t, err)
}

func TestDescribeError(t *testing.T) {
	ce := &config.ConfigError{Source: ".argsel.yaml", Field: "checks", Err: errors.New(`unknown check "x"`)}
	assert.Contains(t, describeError(ce), "argsel config")
	assert.Contains(t, describeError(fmt.Errorf("open baseline: %w", errors.New("timeout"))), "locked")
	assert.Equal(t, "boom", describeError(errors.New("boom")))
}

func TestFormatReport(t *testing.T) {
	r := &app.Report{
		Started:  time.Now(),
		Files:    2,
		Packages: 1,
		Findings: []app.Finding{{
			Check:   "argselection",
			File:    "Canvas.java",
			Line:    5,
			Column:  9,
			Message: "arguments may be swapped\ndid you mean resize(width, height)?",
			Fixes: []argsel.Fix{
				{Description: argsel.PermutationFixDescription, Edits: []argsel.Edit{{Start: 1, End: 2, Text: "x"}}},
				{Description: argsel.CommentFixDescription},
			},
		}},
		Baselined: 4,
	}

	out := formatReport(r, false)
	assert.Contains(t, out, "Canvas.java:5:9: arguments may be swapped  [argselection]\n")
	assert.Contains(t, out, "    did you mean resize(width, height)?\n")
	assert.Contains(t, out, "    fix: Swap arguments\n")
	assert.NotContains(t, out, "Add parameter name comments")
	assert.Contains(t, out, "⚡ 1 finding │ 2 files, 1 packages │ 4 baselined │ ")
	assert.NotContains(t, out, "\033[")

	assert.Contains(t, formatReport(r, true), colorCyan+"Canvas.java"+colorReset)
}

func TestFormatBaseline(t *testing.T) {
	assert.Equal(t, "⚡ no baseline saved\n", formatBaseline(nil, false))

	b := &ports.Baseline{RunID: "run-1", CreatedAt: time.Now(), Entries: map[uint64]ports.BaselineEntry{
		1: {Check: "argselection", File: "b.go", Message: "first\nsecond"},
		2: {Check: "argselection", File: "a.go", Message: "other"},
	}}
	out := formatBaseline(b, false)
	assert.Contains(t, out, "2 findings")
	assert.Contains(t, out, "run run-1")
	assert.Contains(t, out, "  a.go  other  [argselection]\n  b.go  first  [argselection]\n")
	assert.NotContains(t, out, "second")
}

func TestFormatWarnings(t *testing.T) {
	out := formatWarnings([]error{&app.LoadError{Target: "example.com/x", Err: errors.New("no Go files")}}, false)
	assert.Equal(t, "warning: example.com/x: no Go files\n", out)
	assert.Empty(t, formatWarnings(nil, true))
}
