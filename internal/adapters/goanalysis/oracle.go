package goanalysis

import (
	"go/types"

	"github.com/corey/argsel/internal/ports"
)

// Oracle answers assignability questions with go/types.
type Oracle struct{}

var _ ports.TypeOracle = Oracle{}

// IsAssignable reports whether src is assignable to dst under Go's
// assignability rules. Types the checker could not resolve never are.
func (Oracle) IsAssignable(src, dst ports.TypeRef) bool {
	s, ok := src.(types.Type)
	if !ok || s == nil {
		return false
	}
	d, ok := dst.(types.Type)
	if !ok || d == nil {
		return false
	}
	if isInvalid(s) || isInvalid(d) {
		return false
	}
	return types.AssignableTo(s, d)
}

func isInvalid(t types.Type) bool {
	b, ok := t.(*types.Basic)
	return ok && b.Kind() == types.Invalid
}

// IsEnum reports whether t is a named type whose package declares constants
// of that type, Go's closest equivalent of an enum.
func IsEnum(t ports.TypeRef) bool {
	typ, ok := t.(types.Type)
	if !ok || typ == nil {
		return false
	}
	named, ok := types.Unalias(typ).(*types.Named)
	if !ok {
		return false
	}
	obj := named.Obj()
	if obj.Pkg() == nil {
		return false
	}
	scope := obj.Pkg().Scope()
	for _, name := range scope.Names() {
		c, ok := scope.Lookup(name).(*types.Const)
		if ok && types.Identical(c.Type(), named) {
			return true
		}
	}
	return false
}

// enumCache memoizes an enum predicate for the lifetime of one pass. Type
// objects belong to a single load, so the cache is dropped with it.
type enumCache struct {
	isEnum func(ports.TypeRef) bool
	seen   map[*types.TypeName]bool
}

// newEnumCache returns nil when isEnum is nil.
func newEnumCache(isEnum func(ports.TypeRef) bool) *enumCache {
	if isEnum == nil {
		return nil
	}
	return &enumCache{isEnum: isEnum, seen: make(map[*types.TypeName]bool)}
}

// IsEnum answers from the cache for named types and defers to the wrapped
// predicate otherwise.
func (c *enumCache) IsEnum(t ports.TypeRef) bool {
	typ, ok := t.(types.Type)
	if !ok || typ == nil {
		return c.isEnum(t)
	}
	named, ok := types.Unalias(typ).(*types.Named)
	if !ok {
		return c.isEnum(t)
	}
	if v, ok := c.seen[named.Obj()]; ok {
		return v
	}
	v := c.isEnum(t)
	c.seen[named.Obj()] = v
	return v
}

var errorType = types.Universe.Lookup("error").Type().Underlying().(*types.Interface)

// isError reports whether t implements the error interface.
func isError(t types.Type) bool {
	if t == nil || isInvalid(t) {
		return false
	}
	if types.Implements(t, errorType) {
		return true
	}
	if _, isIface := t.Underlying().(*types.Interface); isIface {
		return false
	}
	return types.Implements(types.NewPointer(t), errorType)
}
