package treesitter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseIndex(t *testing.T, src string) *fileIndex {
	t.Helper()
	p, err := NewParser()
	require.NoError(t, err)
	t.Cleanup(p.Close)
	tree, err := p.Parse([]byte(src))
	require.NoError(t, err)
	t.Cleanup(tree.Close)
	return newFileIndex(tree.RootNode(), []byte(src))
}

const shapesSource = `package shapes;

interface Drawable {}

class Shape {
    static final int SIDES = 0;
    protected String name;

    void draw(int x, int y) {}
    void draw(String label) {}
    static String join(String sep, String... parts) { return sep; }
}

class Circle extends Shape implements Drawable {
    int radius;

    Circle(int radius) { this.radius = radius; }

    @SuppressWarnings({"argselection", "unchecked"})
    void scale(double factor) {}
}

enum Color { RED, GREEN; int code; }

record Point(int x, int y) {}
`

func TestFileIndex_Classes(t *testing.T) {
	idx := parseIndex(t, shapesSource)
	for _, name := range []string{"Drawable", "Shape", "Circle", "Color", "Point"} {
		assert.Contains(t, idx.classes, name)
	}
	assert.Equal(t, []string{"Shape", "Drawable"}, idx.classes["Circle"].supers)
	assert.True(t, idx.classes["Color"].enum)
	assert.False(t, idx.classes["Shape"].enum)
}

func TestFileIndex_Fields(t *testing.T) {
	idx := parseIndex(t, shapesSource)
	circle := idx.classes["Circle"]

	f, ok := idx.field(circle, "radius")
	require.True(t, ok)
	assert.Equal(t, "int", f.typ)
	assert.False(t, f.constant)

	// inherited from an in-file superclass
	f, ok = idx.field(circle, "SIDES")
	require.True(t, ok)
	assert.True(t, f.constant)
	f, ok = idx.field(circle, "name")
	require.True(t, ok)
	assert.Equal(t, "String", f.typ)

	f, ok = idx.field(idx.classes["Color"], "GREEN")
	require.True(t, ok)
	assert.Equal(t, "Color", f.typ)
	assert.True(t, f.constant)
	f, ok = idx.field(idx.classes["Color"], "code")
	require.True(t, ok)
	assert.False(t, f.constant)

	_, ok = idx.field(circle, "missing")
	assert.False(t, ok)
}

func TestFileIndex_Methods(t *testing.T) {
	idx := parseIndex(t, shapesSource)

	draws := idx.methods(idx.classes["Circle"], "draw")
	require.Len(t, draws, 2)
	assert.Equal(t, []paramInfo{{name: "x", typ: "int"}, {name: "y", typ: "int"}}, draws[0].params)
	assert.True(t, draws[0].accepts(2))
	assert.False(t, draws[0].accepts(1))

	joins := idx.methods(idx.classes["Shape"], "join")
	require.Len(t, joins, 1)
	join := joins[0]
	assert.True(t, join.varargs)
	assert.Equal(t, "String", join.result)
	assert.Equal(t, paramInfo{name: "parts", typ: "String[]"}, join.params[1])
	assert.True(t, join.accepts(1))
	assert.True(t, join.accepts(4))
	assert.False(t, join.accepts(0))

	assert.Empty(t, idx.methods(nil, "draw"))
}

func TestFileIndex_Constructors(t *testing.T) {
	idx := parseIndex(t, shapesSource)

	require.Len(t, idx.classes["Circle"].ctors, 1)
	assert.Equal(t, "radius", idx.classes["Circle"].ctors[0].params[0].name)

	point := idx.classes["Point"]
	require.Len(t, point.ctors, 1)
	assert.Equal(t, []paramInfo{{name: "x", typ: "int"}, {name: "y", typ: "int"}}, point.ctors[0].params)
	_, ok := idx.field(point, "y")
	assert.True(t, ok)
}

func TestFileIndex_Suppresses(t *testing.T) {
	idx := parseIndex(t, shapesSource)
	scale := idx.methods(idx.classes["Circle"], "scale")
	require.Len(t, scale, 1)
	assert.True(t, idx.suppresses(scale[0].node, "argselection"))
	assert.False(t, idx.suppresses(scale[0].node, "namedparams"))

	draw := idx.methods(idx.classes["Shape"], "draw")
	assert.False(t, idx.suppresses(draw[0].node, "argselection"))
}

func TestFileIndex_Line(t *testing.T) {
	idx := parseIndex(t, "a\nbc\n\nd")
	assert.Equal(t, 1, idx.line(0))
	assert.Equal(t, 1, idx.line(1))
	assert.Equal(t, 2, idx.line(2))
	assert.Equal(t, 3, idx.line(5))
	assert.Equal(t, 4, idx.line(6))
}

func TestBaseType(t *testing.T) {
	cases := map[string]string{
		"int":                      "int",
		"String":                   "String",
		"java.lang.String":         "String",
		"List<String>":             "List",
		"Map<String, List<Foo>>":   "Map",
		"java.util.List<String>[]": "List[]",
		"int[][]":                  "int[][]",
		"String...":                "String[]",
		"  Foo ":                   "Foo",
		"":                         "",
	}
	for in, want := range cases {
		assert.Equal(t, want, baseType(in), in)
	}
}

func TestFileIndex_Imports(t *testing.T) {
	idx := parseIndex(t, `package shapes;

import java.util.List;
import junit.framework.TestCase;
import static org.junit.Assert.assertEquals;
import static org.junit.jupiter.api.Assertions.*;
import java.io.*;

class ShapeTest extends TestCase {}
`)
	assert.Equal(t, "java.util.List", idx.qualify("List"))
	assert.Equal(t, "junit.framework.TestCase", idx.qualify("TestCase"))
	assert.Equal(t, "Widget", idx.qualify("Widget"))
	assert.Equal(t, map[string]string{"assertEquals": "org.junit.Assert"}, idx.staticImports)
	assert.Equal(t, []string{"org.junit.jupiter.api.Assertions"}, idx.staticWildcards)
	assert.NotContains(t, idx.imports, "*")
	assert.Contains(t, idx.classes, "ShapeTest")
}
