package argsel

import (
	"strings"

	"github.com/corey/argsel/internal/ports"
)

type fakeType string

func (t fakeType) String() string { return string(t) }

// fakeContext is a hand-built call site environment.
type fakeContext struct {
	assignable func(src, dst ports.TypeRef) bool
	enclosing  []string
	siblings   [][]string
	comments   map[int][]ports.Comment
}

func (f *fakeContext) IsAssignable(src, dst ports.TypeRef) bool {
	if f.assignable == nil {
		return true
	}
	return f.assignable(src, dst)
}

func (f *fakeContext) EnclosingNames() []string     { return f.enclosing }
func (f *fakeContext) SiblingArguments() [][]string { return f.siblings }

func (f *fakeContext) ArgumentComments(i int) []ports.Comment { return f.comments[i] }

// sameTypeOrObject accepts identical type names, and anything for Object.
func sameTypeOrObject(src, dst ports.TypeRef) bool {
	if src == nil || dst == nil {
		return false
	}
	return dst.String() == "Object" || src.String() == dst.String()
}

func formal(name, typ string) Formal {
	return Formal{Name: name, Type: fakeType(typ)}
}

func ident(name, typ string) Expr {
	return Expr{Kind: KindIdentifier, Name: name, Text: name, Type: fakeType(typ)}
}

func literal(text, typ string) Expr {
	return Expr{Kind: KindLiteral, Text: text, Constant: true, Type: fakeType(typ)}
}

// invocation lays the arguments out as callee(a, b, ...) and fills in the
// offsets and call text.
func invocation(callee string, formals []Formal, args ...Expr) *InvocationInfo {
	var b strings.Builder
	b.WriteString(callee + "(")
	for i := range args {
		if i > 0 {
			b.WriteString(", ")
		}
		args[i].Start = b.Len()
		b.WriteString(args[i].Text)
		args[i].End = b.Len()
	}
	b.WriteString(")")
	return &InvocationInfo{
		CalleeName: callee,
		CallText:   b.String(),
		Formals:    formals,
		Args:       args,
		Context:    &fakeContext{},
	}
}

// splitArgs re-extracts the argument texts of a single-level call.
func splitArgs(call string) []string {
	open := strings.Index(call, "(")
	inner := call[open+1 : len(call)-1]
	if inner == "" {
		return nil
	}
	return strings.Split(inner, ", ")
}

// pairs builds Changes directly, bypassing the solver.
func pairs(original, assigned []float64, p ...ParameterPair) Changes {
	return Changes{OriginalCost: original, AssignmentCost: assigned, ChangedPairs: p}
}

func pair(formalName string, formalIdx int, actualText string, actualIdx int) ParameterPair {
	return ParameterPair{
		Formal: Parameter{Name: formalName, Index: formalIdx, Text: formalName},
		Actual: Parameter{Name: actualText, Index: actualIdx, Text: actualText},
	}
}
