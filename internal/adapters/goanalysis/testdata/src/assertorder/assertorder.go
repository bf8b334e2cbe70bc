package assertorder

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Color int

const (
	Red Color = iota
	Green
)

func total() int { return 0 }

func paint() Color { return Red }

func run() error { return nil }

var errBoom = errors.New("boom")

func literalSecond(t *testing.T) {
	got := total()
	assert.Equal(t, got, 42) // want `arguments to assert.Equal may be in the wrong order: expected got .got., expected .42.`
}

func literalFirst(t *testing.T) {
	got := total()
	assert.Equal(t, 42, got)
}

func enumSecond(t *testing.T) {
	favourite := Green
	assert.NotEqual(t, int(paint()), favourite) // want `arguments to assert.NotEqual may be in the wrong order`
}

func formatted(t *testing.T) {
	got := total()
	assert.Equalf(t, got, 42, "total of %d", 3) // want `arguments to assert.Equalf may be in the wrong order`
}

func required(t *testing.T) {
	got := total()
	require.Equal(t, got, 7) // want `arguments to require.Equal may be in the wrong order`
}

func methods(t *testing.T) {
	a := assert.New(t)
	got := total()
	a.Equal(got, 42) // want `arguments to a.Equal may be in the wrong order`
}

func prefixes(t *testing.T, want, got string) {
	assert.Equal(t, got, want) // want `arguments to assert.Equal may be in the wrong order`
}

func errorsAreSkipped(t *testing.T) {
	gotErr := run()
	wantErr := errBoom
	assert.Equal(t, gotErr, wantErr)
}

func symmetry(t *testing.T, want, got int) {
	assert.Equal(t, want, got)
	assert.Equal(t, got, want)
}

func notAnEquality(t *testing.T) {
	got := "abc"
	assert.Contains(t, got, "b")
}
