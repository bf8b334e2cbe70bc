// Package argsel implements the argument-selection defect engine.
//
// Given the formal parameters of a callee and the arguments written at one
// call site, the engine decides whether some other permutation of the
// arguments matches the parameter names better than the one written. If so
// it produces a Finding with an evidence message and two candidate fixes.
//
// The engine is pure: everything it needs from the host language (types,
// comments, enclosing declarations, other call sites) arrives through
// InvocationInfo and ports.CallContext. A configured Engine is immutable and
// safe for concurrent use.
package argsel

import (
	"regexp"

	"github.com/corey/argsel/internal/ports"
)

// Sentinel names for actual parameters whose name carries no information.
const (
	NameNull    = "*NULL*"    // null/nil literal; matches any formal at zero cost
	NameUnknown = "*UNKNOWN*" // literals and expressions without a usable name
)

// DefaultSyntheticNames matches formal names that were invented by a compiler
// rather than written by a programmer. A callee whose first formal matches has
// its whole formal list discarded.
var DefaultSyntheticNames = regexp.MustCompile(`^(_?|arg[0-9]+|this\$[0-9]+)$`)

// Kind classifies the syntactic shape of an argument expression.
type Kind int

const (
	KindOther Kind = iota
	KindIdentifier
	KindMemberAccess
	KindNullLiteral
	KindLiteral
	KindCall
	KindAllocation
)

func (k Kind) String() string {
	switch k {
	case KindIdentifier:
		return "identifier"
	case KindMemberAccess:
		return "member"
	case KindNullLiteral:
		return "null"
	case KindLiteral:
		return "literal"
	case KindCall:
		return "call"
	case KindAllocation:
		return "allocation"
	default:
		return "other"
	}
}

// Expr is a host's description of one argument expression, reduced to what
// name extraction needs. Offsets are byte offsets into the host's source file
// with End exclusive.
type Expr struct {
	Kind     Kind
	Name     string // identifier, member, callee or constructed type name
	Self     bool   // identifier is the self-reference (this, method receiver)
	Receiver *Expr  // KindCall: receiver expression, nil for unqualified calls
	Text     string // source text as written
	Start    int
	End      int
	Constant bool // compile-time constant
	Type     ports.TypeRef
}

// Formal is one declared parameter of the callee.
type Formal struct {
	Name string
	Type ports.TypeRef
}

// Parameter is one formal or actual parameter as seen by the cost model.
type Parameter struct {
	Name     string
	Type     ports.TypeRef
	Index    int
	Text     string
	Kind     Kind
	Constant bool
	Start    int
	End      int
}

// IsNull reports whether the parameter is a null/nil literal.
func (p Parameter) IsNull() bool { return p.Name == NameNull }

// IsUnknown reports whether no name could be extracted.
func (p Parameter) IsUnknown() bool { return p.Name == NameUnknown }

// IsKnown reports whether the parameter carries a real name.
func (p Parameter) IsKnown() bool { return !p.IsNull() && !p.IsUnknown() }

// FormalParameters builds the formal side of the cost model. Returns nil when
// the first formal's name matches synthetic, meaning the callee's parameter
// names were not written by a programmer.
func FormalParameters(formals []Formal, synthetic *regexp.Regexp) []Parameter {
	if len(formals) == 0 {
		return nil
	}
	if synthetic != nil && synthetic.MatchString(formals[0].Name) {
		return nil
	}
	params := make([]Parameter, len(formals))
	for i, f := range formals {
		params[i] = Parameter{
			Name:  f.Name,
			Type:  f.Type,
			Index: i,
			Text:  f.Name,
			Kind:  KindIdentifier,
		}
	}
	return params
}

// ActualParameters builds the actual side of the cost model from the argument
// expressions at a call site.
func ActualParameters(args []Expr, enclosingType string) []Parameter {
	params := make([]Parameter, len(args))
	for i, e := range args {
		params[i] = Parameter{
			Name:     ArgumentName(e, enclosingType),
			Type:     e.Type,
			Index:    i,
			Text:     e.Text,
			Kind:     e.Kind,
			Constant: e.Constant,
			Start:    e.Start,
			End:      e.End,
		}
	}
	return params
}

// ArgumentName extracts the name an argument expression is known by.
// enclosingType is the simple name of the type declaring the calling code and
// stands in for self-references and unqualified calls that strip to nothing.
func ArgumentName(e Expr, enclosingType string) string {
	switch e.Kind {
	case KindIdentifier:
		if e.Self {
			return orUnknown(simpleName(enclosingType))
		}
		return orUnknown(e.Name)
	case KindMemberAccess:
		return orUnknown(e.Name)
	case KindNullLiteral:
		return NameNull
	case KindCall:
		if name := StripAccessorPrefix(e.Name); name != "" {
			return name
		}
		if e.Receiver != nil {
			return ArgumentName(*e.Receiver, enclosingType)
		}
		return orUnknown(simpleName(enclosingType))
	case KindAllocation:
		return orUnknown(simpleName(e.Name))
	default:
		return NameUnknown
	}
}

func orUnknown(name string) string {
	if name == "" {
		return NameUnknown
	}
	return name
}
