package app

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corey/argsel/internal/config"
	"github.com/corey/argsel/internal/domain/argsel"
)

const canvasJava = `class Canvas {
    void resize(int width, int height) {}

    void layout(int width, int height) {
        resize(height, width);
    }
}
`

// writeProject creates files (slash paths relative to a temp root).
func writeProject(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return root
}

func newTestApp(t *testing.T, root string, opts ...func(*Options)) *App {
	t.Helper()
	o := Options{Root: root}
	for _, fn := range opts {
		fn(&o)
	}
	a, err := New(o)
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })
	return a
}

func TestNew_RequiresRoot(t *testing.T) {
	_, err := New(Options{})
	require.Error(t, err)
}

func TestNew_UnknownCheck(t *testing.T) {
	_, err := New(Options{Root: t.TempDir(), Checks: []string{"bogus"}})
	require.Error(t, err)
	var cerr *config.ConfigError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "--checks", cerr.Source)
}

func TestNew_InvalidConfigFile(t *testing.T) {
	root := writeProject(t, map[string]string{config.FileName: "penalty_threshold: -2\n"})
	_, err := New(Options{Root: root})
	var cerr *config.ConfigError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "penalty_threshold", cerr.Field)
}

func TestCheck_JavaProject(t *testing.T) {
	root := writeProject(t, map[string]string{"src/Canvas.java": canvasJava})
	a := newTestApp(t, root)

	r, err := a.Check(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, r.Files)
	assert.Equal(t, 0, r.Packages)
	assert.NotEmpty(t, r.RunID)
	require.Len(t, r.Findings, 1)

	f := r.Findings[0]
	assert.Equal(t, argsel.CheckArgumentSelection, f.Check)
	assert.Equal(t, "src/Canvas.java", f.File)
	assert.Equal(t, 5, f.Line)
	assert.Equal(t, 9, f.Column)
	assert.Len(t, f.Fingerprint, 16)
	assert.Contains(t, f.Message, "did you mean resize(width, height)?")
	assert.Len(t, f.Fixes, 2)

	// a plain check never creates the baseline database
	_, err = os.Stat(a.Paths.Baseline)
	assert.True(t, os.IsNotExist(err))
}

func TestCheck_ExplicitFileAndExcludes(t *testing.T) {
	root := writeProject(t, map[string]string{
		"src/Canvas.java":     canvasJava,
		"src/gen/Canvas.java": canvasJava,
		config.FileName:       "exclude: ['**/gen/**']\n",
	})
	a := newTestApp(t, root)

	r, err := a.Check(context.Background(), []string{"./..."})
	require.NoError(t, err)
	require.Len(t, r.Findings, 1)
	assert.Equal(t, "src/Canvas.java", r.Findings[0].File)

	// naming a file explicitly bypasses the excludes
	r, err = a.Check(context.Background(), []string{"src/gen/Canvas.java"})
	require.NoError(t, err)
	require.Len(t, r.Findings, 1)
	assert.Equal(t, "src/gen/Canvas.java", r.Findings[0].File)
}

func TestCheck_ChecksOverride(t *testing.T) {
	root := writeProject(t, map[string]string{"Canvas.java": canvasJava})
	a := newTestApp(t, root, func(o *Options) { o.Checks = []string{argsel.CheckNamedParams} })

	r, err := a.Check(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, r.Findings)
	assert.Equal(t, []string{argsel.CheckNamedParams}, a.Checks)
}

func TestResolve(t *testing.T) {
	root := writeProject(t, map[string]string{
		"go.mod":             "module example.com/demo\n",
		"main.go":            "package main\n",
		"java/App.java":      canvasJava,
		"java/nested/B.java": canvasJava,
		"java/vendor/C.java": canvasJava,
		"mixed/x.go":         "package mixed\n",
		"mixed/Y.java":       canvasJava,
	})
	a := newTestApp(t, root)

	goPatterns, java, err := a.resolve([]string{"java/...", "mixed", "example.com/demo/...", "extra/Z.java"})
	require.NoError(t, err)
	assert.Equal(t, []string{"./mixed", "example.com/demo/..."}, goPatterns)

	var rel []string
	for _, f := range java {
		rel = append(rel, a.rel(f))
	}
	assert.Equal(t, []string{"extra/Z.java", "java/App.java", "java/nested/B.java", "mixed/Y.java"}, rel)

	// non-recursive directory patterns stay in the directory
	_, java, err = a.resolve([]string{"java"})
	require.NoError(t, err)
	require.Len(t, java, 1)
	assert.Equal(t, "java/App.java", a.rel(java[0]))
}

func TestBaseline_Lifecycle(t *testing.T) {
	root := writeProject(t, map[string]string{"Canvas.java": canvasJava})
	a := newTestApp(t, root)
	ctx := context.Background()

	b, err := a.LoadBaseline()
	require.NoError(t, err)
	assert.Nil(t, b)

	b, err = a.SaveBaseline(ctx, nil)
	require.NoError(t, err)
	require.Len(t, b.Entries, 1)
	for _, e := range b.Entries {
		assert.Equal(t, "Canvas.java", e.File)
		assert.Equal(t, argsel.CheckArgumentSelection, e.Check)
	}

	r, err := a.Check(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, r.Findings)
	assert.Equal(t, 1, r.Baselined)

	loaded, err := a.LoadBaseline()
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, b.RunID, loaded.RunID)

	// the baseline survives reopening the project
	require.NoError(t, a.Close())
	a = newTestApp(t, root)
	r, err = a.Check(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, r.Baselined)

	require.NoError(t, a.ClearBaseline())
	require.NoError(t, a.ClearBaseline())
	r, err = a.Check(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, r.Findings, 1)
	assert.Zero(t, r.Baselined)
}

func TestBaseline_NewFindingStillReported(t *testing.T) {
	root := writeProject(t, map[string]string{"Canvas.java": canvasJava})
	a := newTestApp(t, root)
	ctx := context.Background()

	_, err := a.SaveBaseline(ctx, nil)
	require.NoError(t, err)

	more := canvasJava[:len(canvasJava)-2] + `
    void draw(int top, int left) {}
    void paint(int top, int left) { draw(left, top); }
}
`
	require.NoError(t, os.WriteFile(filepath.Join(root, "Canvas.java"), []byte(more), 0644))

	r, err := a.Check(ctx, nil)
	require.NoError(t, err)
	require.Len(t, r.Findings, 1)
	assert.Contains(t, r.Findings[0].Message, "draw(top, left)")
	assert.Equal(t, 1, r.Baselined)
}

func TestCheck_GoPackage(t *testing.T) {
	if testing.Short() {
		t.Skip("loads packages with the go command")
	}
	if _, err := exec.LookPath("go"); err != nil {
		t.Skip("go command not available")
	}
	root := writeProject(t, map[string]string{
		"go.mod": "module example.com/demo\n\ngo 1.22\n",
		"demo.go": `package demo

func resize(width, height int) {}

func layout(width, height int) {
	resize(height, width)
}
`,
	})
	a := newTestApp(t, root)

	r, err := a.Check(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, r.Errors)
	assert.Equal(t, 1, r.Packages)
	require.Len(t, r.Findings, 1)
	f := r.Findings[0]
	assert.Equal(t, argsel.CheckArgumentSelection, f.Check)
	assert.Equal(t, "demo.go", f.File)
	assert.Equal(t, 6, f.Line)

	n, err := a.ApplyFixes(context.Background(), r, FixPermute)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	data, err := os.ReadFile(filepath.Join(root, "demo.go"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "\tresize(width, height)\n")
}

func TestCheck_NoBaseline(t *testing.T) {
	root := writeProject(t, map[string]string{"Canvas.java": canvasJava})
	a := newTestApp(t, root)
	_, err := a.SaveBaseline(context.Background(), nil)
	require.NoError(t, err)
	require.NoError(t, a.Close())

	all := newTestApp(t, root, func(o *Options) { o.NoBaseline = true })
	r, err := all.Check(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, r.Findings, 1)
	assert.Zero(t, r.Baselined)
}
