package treesitter

import (
	"strings"

	"github.com/corey/argsel/internal/ports"
)

// javaType is a declared type reduced to its simple name.
type javaType struct {
	name string
	enum bool // declared as an enum in the same file
}

func (t javaType) String() string { return t.name }

// typeNull is the type of the null literal.
var typeNull = javaType{name: "null"}

// IsEnum reports whether t names an enum declared in the checked file.
func IsEnum(t ports.TypeRef) bool {
	jt, ok := t.(javaType)
	return ok && jt.enum
}

// widening lists the primitive types each primitive widens to.
var widening = map[string][]string{
	"byte":  {"short", "int", "long", "float", "double"},
	"short": {"int", "long", "float", "double"},
	"char":  {"int", "long", "float", "double"},
	"int":   {"long", "float", "double"},
	"long":  {"float", "double"},
	"float": {"double"},
}

var boxes = map[string]string{
	"boolean": "Boolean",
	"byte":    "Byte",
	"short":   "Short",
	"char":    "Character",
	"int":     "Integer",
	"long":    "Long",
	"float":   "Float",
	"double":  "Double",
}

// wellKnownSupers covers the JDK types arguments most often flow into.
var wellKnownSupers = map[string][]string{
	"String":    {"CharSequence", "Comparable"},
	"Integer":   {"Number", "Comparable"},
	"Long":      {"Number", "Comparable"},
	"Double":    {"Number", "Comparable"},
	"Float":     {"Number", "Comparable"},
	"Short":     {"Number", "Comparable"},
	"Byte":      {"Number", "Comparable"},
	"ArrayList": {"List", "Collection", "Iterable"},
	"List":      {"Collection", "Iterable"},
	"Set":       {"Collection", "Iterable"},
	"HashMap":   {"Map"},
	"HashSet":   {"Set", "Collection", "Iterable"},
}

func isPrimitive(name string) bool {
	_, ok := boxes[name]
	return ok
}

// oracle answers assignability from the declarations of one file.
type oracle struct {
	idx *fileIndex
}

var _ ports.TypeOracle = oracle{}

// IsAssignable applies Java's assignment conversions as far as the file's
// declarations allow: identity, primitive widening, boxing and unboxing, and
// subtyping through in-file supertypes and a few JDK types. Unresolved types
// are never assignable, except to Object which accepts every value.
func (o oracle) IsAssignable(src, dst ports.TypeRef) bool {
	d, ok := dst.(javaType)
	if !ok {
		return false
	}
	if d.name == "Object" {
		return true
	}
	s, ok := src.(javaType)
	if !ok {
		return false
	}
	if s.name == d.name {
		return true
	}
	if s == typeNull {
		return !isPrimitive(d.name)
	}

	if isPrimitive(s.name) {
		for _, w := range widening[s.name] {
			if w == d.name {
				return true
			}
		}
		return boxes[s.name] == d.name
	}
	if isPrimitive(d.name) {
		// unboxing, then widening
		for prim, box := range boxes {
			if box == s.name {
				return o.IsAssignable(javaType{name: prim}, d)
			}
		}
		return false
	}
	if strings.HasSuffix(s.name, "[]") || strings.HasSuffix(d.name, "[]") {
		return false
	}
	return o.subtype(s.name, d.name)
}

func (o oracle) subtype(src, dst string) bool {
	seen := map[string]bool{src: true}
	queue := []string{src}
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		var supers []string
		if o.idx != nil {
			if c := o.idx.classes[name]; c != nil {
				supers = append([]string(nil), c.supers...)
				if c.enum {
					supers = append(supers, "Enum", "Comparable")
				}
			}
		}
		supers = append(supers, wellKnownSupers[name]...)
		for _, s := range supers {
			if s == dst {
				return true
			}
			if !seen[s] {
				seen[s] = true
				queue = append(queue, s)
			}
		}
	}
	return false
}
