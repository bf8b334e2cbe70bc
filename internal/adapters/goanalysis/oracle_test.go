package goanalysis

import (
	"go/constant"
	"go/token"
	"go/types"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/corey/argsel/internal/ports"
)

// newEnumPackage declares type Color int with constants Red and Green, and
// type Count int without constants.
func newEnumPackage() (color, count *types.Named) {
	pkg := types.NewPackage("example.com/paint", "paint")
	scope := pkg.Scope()

	colorName := types.NewTypeName(token.NoPos, pkg, "Color", nil)
	color = types.NewNamed(colorName, types.Typ[types.Int], nil)
	scope.Insert(colorName)
	scope.Insert(types.NewConst(token.NoPos, pkg, "Red", color, constant.MakeInt64(0)))
	scope.Insert(types.NewConst(token.NoPos, pkg, "Green", color, constant.MakeInt64(1)))

	countName := types.NewTypeName(token.NoPos, pkg, "Count", nil)
	count = types.NewNamed(countName, types.Typ[types.Int], nil)
	scope.Insert(countName)
	scope.Insert(types.NewConst(token.NoPos, pkg, "Zero", types.Typ[types.Int], constant.MakeInt64(0)))
	return color, count
}

func TestIsEnum(t *testing.T) {
	color, count := newEnumPackage()

	assert.True(t, IsEnum(color))
	assert.False(t, IsEnum(count), "constants of the underlying type do not count")
	assert.False(t, IsEnum(types.Typ[types.Int]))
	assert.False(t, IsEnum(types.NewPointer(color)))
	assert.False(t, IsEnum(nil))
}

func TestEnumCache_MemoizesWithinOnePass(t *testing.T) {
	color, count := newEnumPackage()
	calls := 0
	cache := newEnumCache(func(typ ports.TypeRef) bool {
		calls++
		return IsEnum(typ)
	})

	assert.True(t, cache.IsEnum(color))
	assert.True(t, cache.IsEnum(color))
	assert.False(t, cache.IsEnum(count))
	assert.False(t, cache.IsEnum(count))
	assert.Equal(t, 2, calls)

	assert.False(t, cache.IsEnum(types.Typ[types.Int]))
	assert.False(t, cache.IsEnum(types.Typ[types.Int]))
	assert.Equal(t, 4, calls, "unnamed types are not cached")

	assert.Nil(t, newEnumCache(nil))
}

func TestEnumCache_FreshPassSeesReloadedPackage(t *testing.T) {
	// A watch run reloads the package after Count gained a constant.
	_, before := newEnumPackage()
	first := newEnumCache(IsEnum)
	assert.False(t, first.IsEnum(before))

	_, after := newEnumPackage()
	pkg := after.Obj().Pkg()
	pkg.Scope().Insert(types.NewConst(token.NoPos, pkg, "One", after, constant.MakeInt64(1)))

	second := newEnumCache(IsEnum)
	assert.True(t, second.IsEnum(after))
	assert.False(t, first.IsEnum(before), "earlier pass keeps its own answer")
}

func TestOracle_IsAssignable(t *testing.T) {
	color, _ := newEnumPackage()
	var o Oracle
	empty := types.NewInterfaceType(nil, nil).Complete()

	assert.True(t, o.IsAssignable(types.Typ[types.Int], types.Typ[types.Int]))
	assert.True(t, o.IsAssignable(types.Typ[types.String], empty))
	assert.True(t, o.IsAssignable(types.Typ[types.UntypedNil], types.NewPointer(color)))
	assert.False(t, o.IsAssignable(types.Typ[types.Int], color), "named types need a conversion")
	assert.False(t, o.IsAssignable(types.Typ[types.Int], types.Typ[types.String]))
	assert.False(t, o.IsAssignable(nil, types.Typ[types.Int]))
	assert.False(t, o.IsAssignable(types.Typ[types.Int], nil))
	assert.False(t, o.IsAssignable(types.Typ[types.Invalid], empty))
}

func TestIsError(t *testing.T) {
	assert.True(t, isError(types.Universe.Lookup("error").Type()))
	assert.False(t, isError(types.Typ[types.String]))
	assert.False(t, isError(types.NewInterfaceType(nil, nil).Complete()))
	assert.False(t, isError(nil))
}
