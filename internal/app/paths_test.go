package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPaths(t *testing.T) {
	p := NewPaths("/project", "")
	assert.Equal(t, filepath.Join("/project", ".argsel"), p.Root)
	assert.Equal(t, filepath.Join("/project", ".argsel", "baseline.db"), p.Baseline)
	assert.Equal(t, filepath.Join("/project", ".argsel", ".gitignore"), p.Gitignore)

	p = NewPaths("/project", "/var/lib/argsel/baseline.db")
	assert.Equal(t, "/var/lib/argsel/baseline.db", p.Baseline)
}

func TestEnsureDirs(t *testing.T) {
	dir := t.TempDir()
	p := NewPaths(dir, filepath.Join(dir, "state", "b.db"))

	require.NoError(t, p.EnsureDirs())
	for _, d := range []string{p.Root, filepath.Join(dir, "state")} {
		info, err := os.Stat(d)
		require.NoError(t, err, "dir %s should exist", d)
		assert.True(t, info.IsDir())
	}
	data, err := os.ReadFile(p.Gitignore)
	require.NoError(t, err)
	assert.Equal(t, "*\n", string(data))

	// A user-edited .gitignore is left alone.
	require.NoError(t, os.WriteFile(p.Gitignore, []byte("baseline.db\n"), 0644))
	require.NoError(t, p.EnsureDirs())
	data, err = os.ReadFile(p.Gitignore)
	require.NoError(t, err)
	assert.Equal(t, "baseline.db\n", string(data))
}
