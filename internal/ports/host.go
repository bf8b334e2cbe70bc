package ports

// TypeRef is an opaque handle for a type as the host understands it.
// go/types.Type satisfies it directly; the Java host uses declared type names.
// A nil TypeRef means the host could not resolve the type.
type TypeRef interface {
	String() string
}

// TypeOracle answers assignability questions for the cost model.
// Implementations must be safe for concurrent use.
type TypeOracle interface {
	// IsAssignable reports whether a value of type src may be passed where
	// dst is expected. Unresolved types (nil) are never assignable.
	IsAssignable(src, dst TypeRef) bool
}

// Comment is a source comment attached to one argument of a call.
type Comment struct {
	Text   string // raw text including the comment delimiters
	Start  int    // byte offset of the first character
	End    int    // byte offset one past the last character
	Block  bool   // /* */ as opposed to //
	Before bool   // comment precedes the argument (otherwise it follows it)
}

// CallContext is the host-side view of a single call site. The engine pulls
// everything it needs beyond the parameter lists through it, so hosts can
// compute the expensive parts lazily.
type CallContext interface {
	TypeOracle

	// EnclosingNames returns the names of the declarations enclosing the
	// call, innermost first (function, then receiver or class names).
	EnclosingNames() []string

	// SiblingArguments returns, for every other invocation of the same callee
	// in the enclosing function (or file when there is none), the source text
	// of its arguments in order. Declarations of the callee contribute their
	// parameter names.
	SiblingArguments() [][]string

	// ArgumentComments returns the comments attached to the i-th argument
	// as written. Returns nil when the host does not track comments.
	ArgumentComments(i int) []Comment
}
