package treesitter

import (
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/corey/argsel/internal/domain/argsel"
	"github.com/corey/argsel/internal/ports"
)

// binding is a local variable or parameter visible at a call site.
type binding struct {
	typ string // declared type text, "" when inferred
}

// site is one invocation being checked. It implements ports.CallContext.
type site struct {
	oracle

	idx     *fileIndex
	call    *tree_sitter.Node
	argList *tree_sitter.Node
	args    []*tree_sitter.Node
	commas  []int
	inner   []ports.Comment // comments between the parentheses
	name    string          // callee simple name
	object  *tree_sitter.Node

	method   *tree_sitter.Node   // innermost enclosing method or constructor
	classes  []*classInfo        // enclosing in-file classes, innermost first
	selfType string              // what "this" refers to
	names    []string            // enclosing declaration names, innermost first
	decls    []*tree_sitter.Node // enclosing declarations, for suppression
	locals   map[string]binding

	callee   *methodInfo
	siblings [][]string
	comments [][]ports.Comment
	resolved struct{ callee, siblings, comments bool }
}

var _ ports.CallContext = (*site)(nil)

func newSite(idx *fileIndex, cs callSite) *site {
	s := &site{
		oracle:  oracle{idx: idx},
		idx:     idx,
		call:    cs.call,
		argList: cs.args,
	}

	for i := uint(0); i < cs.args.ChildCount(); i++ {
		c := cs.args.Child(i)
		switch {
		case c == nil:
		case isComment(c):
			s.inner = append(s.inner, idx.comment(c))
		case c.Kind() == ",":
			s.commas = append(s.commas, int(c.StartByte()))
		case c.IsNamed():
			s.args = append(s.args, c)
		}
	}

	switch cs.call.Kind() {
	case "method_invocation":
		s.name = idx.text(cs.call.ChildByFieldName("name"))
		s.object = cs.call.ChildByFieldName("object")
	case "object_creation_expression":
		s.name = baseType(idx.text(cs.call.ChildByFieldName("type")))
	case "explicit_constructor_invocation":
		s.name = idx.text(cs.call.ChildByFieldName("constructor"))
	}

	s.enclose()
	return s
}

func (idx *fileIndex) comment(n *tree_sitter.Node) ports.Comment {
	return ports.Comment{
		Text:  idx.text(n),
		Start: int(n.StartByte()),
		End:   int(n.EndByte()),
		Block: n.Kind() == "block_comment",
	}
}

// enclose records the declarations surrounding the call.
func (s *site) enclose() {
	for n := s.call.Parent(); n != nil; n = n.Parent() {
		switch n.Kind() {
		case "method_declaration", "constructor_declaration":
			if s.method == nil {
				s.method = n
			}
			s.names = append(s.names, s.idx.text(n.ChildByFieldName("name")))
			s.decls = append(s.decls, n)
		case "class_declaration", "interface_declaration", "enum_declaration", "record_declaration":
			c := s.idx.byNode[n.Id()]
			if c != nil {
				s.classes = append(s.classes, c)
			}
			name := s.idx.text(n.ChildByFieldName("name"))
			if s.selfType == "" {
				s.selfType = name
			}
			s.names = append(s.names, name)
			s.decls = append(s.decls, n)
		case "class_body":
			// anonymous class: "this" is an instance of the supertype
			if p := n.Parent(); p != nil && p.Kind() == "object_creation_expression" {
				super := baseType(s.idx.text(p.ChildByFieldName("type")))
				if s.selfType == "" {
					s.selfType = super
				}
				if c := s.idx.classes[super]; c != nil {
					s.classes = append(s.classes, c)
				}
				s.names = append(s.names, super)
			}
		case "field_declaration", "local_variable_declaration":
			s.decls = append(s.decls, n)
		}
	}
}

// suppressed reports whether an enclosing declaration suppresses check.
func (s *site) suppressed(check string) bool {
	for _, d := range s.decls {
		if s.idx.suppresses(d, check) {
			return true
		}
	}
	return false
}

// lookup finds a variable visible at the call: parameters and locals of the
// enclosing method (and lambdas within it), then fields of enclosing classes.
func (s *site) lookup(name string) (binding, bool) {
	if s.locals == nil {
		s.locals = s.collectLocals()
	}
	if b, ok := s.locals[name]; ok {
		return b, true
	}
	for _, c := range s.classes {
		if f, ok := s.idx.field(c, name); ok {
			return binding{typ: f.typ}, true
		}
	}
	return binding{}, false
}

func (s *site) collectLocals() map[string]binding {
	locals := make(map[string]binding)
	add := func(name, typ string) {
		if _, seen := locals[name]; !seen && name != "" {
			locals[name] = binding{typ: typ}
		}
	}
	// lambdas between the call and its method shadow the method's names
	for n := s.call.Parent(); n != nil && !sameNode(n, s.method); n = n.Parent() {
		if n.Kind() != "lambda_expression" {
			continue
		}
		params := n.ChildByFieldName("parameters")
		switch {
		case params == nil:
		case params.Kind() == "identifier":
			add(s.idx.text(params), "")
		case params.Kind() == "formal_parameters":
			ps, _ := s.idx.formalParameters(params)
			for _, p := range ps {
				add(p.name, p.typ)
			}
		default:
			for _, id := range namedChildren(params) {
				add(s.idx.text(id), "")
			}
		}
	}
	if s.method == nil {
		return locals
	}
	ps, _ := s.idx.formalParameters(s.method.ChildByFieldName("parameters"))
	for _, p := range ps {
		add(p.name, p.typ)
	}
	walk(s.method.ChildByFieldName("body"), func(n *tree_sitter.Node) bool {
		switch n.Kind() {
		case "local_variable_declaration":
			typ := s.idx.text(n.ChildByFieldName("type"))
			for _, d := range namedChildren(n) {
				if d.Kind() == "variable_declarator" {
					add(s.idx.text(d.ChildByFieldName("name")), typ+dimensions(s.idx.text(d.ChildByFieldName("dimensions"))))
				}
			}
		case "enhanced_for_statement", "resource":
			add(s.idx.text(n.ChildByFieldName("name")), s.idx.text(n.ChildByFieldName("type")))
		case "catch_formal_parameter":
			typ := ""
			if ct := childByKind(n, "catch_type"); ct != nil {
				typ = s.idx.text(ct)
			}
			add(s.idx.text(n.ChildByFieldName("name")), typ)
		case "class_body":
			return false
		}
		return true
	})
	return locals
}

// describe returns the declared type text of an expression and whether it
// is a compile-time constant. The type is "" when it cannot be resolved.
func (s *site) describe(n *tree_sitter.Node) (typ string, constant bool) {
	if n == nil {
		return "", false
	}
	switch n.Kind() {
	case "parenthesized_expression":
		if inner := namedChildren(n); len(inner) > 0 {
			return s.describe(inner[0])
		}
	case "cast_expression":
		_, constant = s.describe(n.ChildByFieldName("value"))
		return s.idx.text(n.ChildByFieldName("type")), constant
	case "identifier":
		if b, ok := s.lookup(s.idx.text(n)); ok {
			return b.typ, s.isConstantField(s.idx.text(n))
		}
	case "this":
		return s.selfType, false
	case "field_access":
		return s.describeField(n)
	case "decimal_integer_literal", "hex_integer_literal", "octal_integer_literal", "binary_integer_literal":
		if strings.HasSuffix(strings.ToLower(s.idx.text(n)), "l") {
			return "long", true
		}
		return "int", true
	case "decimal_floating_point_literal", "hex_floating_point_literal":
		if strings.HasSuffix(strings.ToLower(s.idx.text(n)), "f") {
			return "float", true
		}
		return "double", true
	case "string_literal", "text_block":
		return "String", true
	case "character_literal":
		return "char", true
	case "true", "false":
		return "boolean", true
	case "null_literal":
		return "null", false
	case "method_invocation":
		if m := s.resolveInvocation(n); m != nil {
			return m.result, false
		}
	case "object_creation_expression":
		return s.idx.text(n.ChildByFieldName("type")), false
	case "array_creation_expression":
		return s.idx.text(n.ChildByFieldName("type")) + dimensions(s.idx.text(n.ChildByFieldName("dimensions"))), false
	}
	return "", false
}

// describeField resolves obj.field against classes declared in the file.
func (s *site) describeField(n *tree_sitter.Node) (string, bool) {
	obj := n.ChildByFieldName("object")
	name := s.idx.text(n.ChildByFieldName("field"))
	c := s.classOf(obj)
	if c == nil {
		return "", false
	}
	f, ok := s.idx.field(c, name)
	if !ok {
		return "", false
	}
	return f.typ, f.constant
}

// classOf returns the in-file class an expression's members belong to: the
// class of its value, or the class it names for static access.
func (s *site) classOf(obj *tree_sitter.Node) *classInfo {
	if obj == nil {
		return nil
	}
	switch obj.Kind() {
	case "this":
		if len(s.classes) > 0 {
			return s.classes[0]
		}
		return nil
	case "super":
		if len(s.classes) > 0 {
			for _, sup := range s.classes[0].supers {
				if c := s.idx.classes[sup]; c != nil {
					return c
				}
			}
		}
		return nil
	case "identifier":
		if _, ok := s.lookup(s.idx.text(obj)); !ok {
			return s.idx.classes[s.idx.text(obj)]
		}
	}
	typ, _ := s.describe(obj)
	return s.idx.classes[baseType(typ)]
}

// isConstantField reports whether name, read without a qualifier, is a
// static final field or enum constant rather than a local.
func (s *site) isConstantField(name string) bool {
	if s.locals != nil {
		if _, local := s.locals[name]; local {
			return false
		}
	}
	for _, c := range s.classes {
		if f, ok := s.idx.field(c, name); ok {
			return f.constant
		}
	}
	return false
}

// resolve finds the declaration of the site's callee in the file.
func (s *site) resolve() *methodInfo {
	if !s.resolved.callee {
		s.resolved.callee = true
		s.callee = s.resolveInvocation(s.call)
	}
	return s.callee
}

// resolveInvocation picks the unique in-file declaration a call can bind to.
func (s *site) resolveInvocation(call *tree_sitter.Node) *methodInfo {
	args := call.ChildByFieldName("arguments")
	if args == nil {
		return nil
	}
	var argNodes []*tree_sitter.Node
	for _, c := range namedChildren(args) {
		if !isComment(c) {
			argNodes = append(argNodes, c)
		}
	}

	var candidates []*methodInfo
	switch call.Kind() {
	case "method_invocation":
		name := s.idx.text(call.ChildByFieldName("name"))
		if obj := call.ChildByFieldName("object"); obj != nil {
			candidates = s.idx.methods(s.classOf(obj), name)
		} else {
			for _, c := range s.classes {
				if candidates = s.idx.methods(c, name); len(candidates) > 0 {
					break
				}
			}
		}
	case "object_creation_expression":
		if c := s.idx.classes[baseType(s.idx.text(call.ChildByFieldName("type")))]; c != nil {
			candidates = c.ctors
		}
	case "explicit_constructor_invocation":
		if len(s.classes) > 0 {
			c := s.classes[0]
			if s.idx.text(call.ChildByFieldName("constructor")) == "super" {
				c = nil
				for _, sup := range s.classes[0].supers {
					if c = s.idx.classes[sup]; c != nil {
						break
					}
				}
			}
			if c != nil {
				candidates = c.ctors
			}
		}
	}

	var arity []*methodInfo
	for _, m := range candidates {
		if m.accepts(len(argNodes)) {
			arity = append(arity, m)
		}
	}
	if len(arity) <= 1 {
		if len(arity) == 1 {
			return arity[0]
		}
		return nil
	}

	// Overloads with the same arity: keep those every argument fits.
	var fit []*methodInfo
	for _, m := range arity {
		ok := true
		for i, p := range m.params {
			if i >= len(argNodes) || (m.varargs && i == len(m.params)-1) {
				break
			}
			typ, _ := s.describe(argNodes[i])
			if !s.IsAssignable(s.typeRef(typ), s.idx.typeRef(p.typ)) {
				ok = false
				break
			}
		}
		if ok {
			fit = append(fit, m)
		}
	}
	if len(fit) == 1 {
		return fit[0]
	}
	return nil
}

func (s *site) typeRef(typ string) ports.TypeRef {
	if typ == "null" {
		return typeNull
	}
	return s.idx.typeRef(typ)
}

// calleeName is the call as written up to its arguments: "a.resize",
// "Size", "this".
func (s *site) calleeName() string {
	switch s.call.Kind() {
	case "method_invocation":
		if s.object != nil {
			return s.idx.text(s.object) + "." + s.name
		}
	}
	return s.name
}

// invocation builds the engine input for the site.
func (s *site) invocation(formals []argsel.Formal, variadic bool) *argsel.InvocationInfo {
	info := &argsel.InvocationInfo{
		Node:          s.call,
		CalleeName:    s.calleeName(),
		CallText:      s.idx.text(s.call),
		CallStart:     int(s.call.StartByte()),
		Formals:       formals,
		Variadic:      variadic,
		Args:          make([]argsel.Expr, len(s.args)),
		EnclosingType: s.selfType,
		Context:       s,
	}
	if s.callee != nil {
		info.Callee = s.callee
	}
	for i, arg := range s.args {
		info.Args[i] = s.classify(arg)
	}
	return info
}

// formals converts a declaration's parameters.
func (s *site) formals(m *methodInfo) []argsel.Formal {
	out := make([]argsel.Formal, len(m.params))
	for i, p := range m.params {
		out[i] = argsel.Formal{Name: p.name, Type: s.idx.typeRef(p.typ)}
	}
	return out
}

// classify reduces an argument expression to the engine's vocabulary.
func (s *site) classify(n *tree_sitter.Node) argsel.Expr {
	typ, constant := s.describe(n)
	out := argsel.Expr{
		Text:     s.idx.text(n),
		Start:    int(n.StartByte()),
		End:      int(n.EndByte()),
		Constant: constant,
		Type:     s.typeRef(typ),
	}
	s.shape(unwrap(n), &out)
	return out
}

func (s *site) shape(n *tree_sitter.Node, out *argsel.Expr) {
	switch n.Kind() {
	case "identifier":
		out.Kind = argsel.KindIdentifier
		out.Name = s.idx.text(n)
	case "this":
		out.Kind = argsel.KindIdentifier
		out.Self = true
	case "field_access":
		out.Kind = argsel.KindMemberAccess
		out.Name = s.idx.text(n.ChildByFieldName("field"))
	case "null_literal":
		out.Kind = argsel.KindNullLiteral
	case "decimal_integer_literal", "hex_integer_literal", "octal_integer_literal", "binary_integer_literal",
		"decimal_floating_point_literal", "hex_floating_point_literal",
		"string_literal", "text_block", "character_literal", "true", "false":
		out.Kind = argsel.KindLiteral
	case "method_invocation":
		out.Kind = argsel.KindCall
		out.Name = s.idx.text(n.ChildByFieldName("name"))
		if obj := n.ChildByFieldName("object"); obj != nil {
			recv := argsel.Expr{
				Text:  s.idx.text(obj),
				Start: int(obj.StartByte()),
				End:   int(obj.EndByte()),
			}
			s.shape(unwrap(obj), &recv)
			out.Receiver = &recv
		}
	case "object_creation_expression":
		out.Kind = argsel.KindAllocation
		out.Name = s.idx.text(n.ChildByFieldName("type"))
	default:
		out.Kind = argsel.KindOther
	}
}

// unwrap strips parentheses and casts.
func unwrap(n *tree_sitter.Node) *tree_sitter.Node {
	for n != nil {
		switch n.Kind() {
		case "parenthesized_expression":
			inner := namedChildren(n)
			if len(inner) == 0 {
				return n
			}
			n = inner[0]
		case "cast_expression":
			v := n.ChildByFieldName("value")
			if v == nil {
				return n
			}
			n = v
		default:
			return n
		}
	}
	return n
}

// EnclosingNames returns the enclosing declaration names, innermost first.
func (s *site) EnclosingNames() []string {
	return s.names
}

// SiblingArguments returns the argument texts of other invocations of the
// same callee in the enclosing method, or class when the call is not inside
// one. An enclosing method with the callee's name contributes its parameter
// names, and so do same-named methods of the class at class level.
func (s *site) SiblingArguments() [][]string {
	if s.resolved.siblings {
		return s.siblings
	}
	s.resolved.siblings = true

	var scope *tree_sitter.Node
	switch {
	case s.method != nil:
		scope = s.method
		if s.method.Kind() == "method_declaration" && s.idx.text(s.method.ChildByFieldName("name")) == s.name {
			ps, _ := s.idx.formalParameters(s.method.ChildByFieldName("parameters"))
			s.siblings = append(s.siblings, paramNames(ps))
		}
	case len(s.classes) > 0:
		c := s.classes[0]
		scope = c.node
		callee := s.resolve()
		for _, m := range c.methods {
			if m.name == s.name && m != callee {
				s.siblings = append(s.siblings, paramNames(m.params))
			}
		}
	default:
		return nil
	}

	walk(scope, func(n *tree_sitter.Node) bool {
		if sameNode(n, s.call) || n.Kind() != s.call.Kind() {
			return true
		}
		var name string
		switch n.Kind() {
		case "method_invocation":
			name = s.idx.text(n.ChildByFieldName("name"))
		case "object_creation_expression":
			name = baseType(s.idx.text(n.ChildByFieldName("type")))
		case "explicit_constructor_invocation":
			name = s.idx.text(n.ChildByFieldName("constructor"))
		}
		if name != s.name {
			return true
		}
		var texts []string
		if args := n.ChildByFieldName("arguments"); args != nil {
			for _, a := range namedChildren(args) {
				if !isComment(a) {
					texts = append(texts, s.idx.text(a))
				}
			}
		}
		if len(texts) == len(s.args) {
			s.siblings = append(s.siblings, texts)
		}
		return true
	})
	return s.siblings
}

func paramNames(ps []paramInfo) []string {
	names := make([]string, len(ps))
	for i, p := range ps {
		names[i] = p.name
	}
	return names
}

// ArgumentComments returns the comments attached to the i-th argument.
func (s *site) ArgumentComments(i int) []ports.Comment {
	if !s.resolved.comments {
		s.resolved.comments = true
		s.comments = s.attachComments()
	}
	if i < 0 || i >= len(s.comments) {
		return nil
	}
	return s.comments[i]
}

func (s *site) attachComments() [][]ports.Comment {
	if len(s.args) == 0 {
		return nil
	}
	comments := append([]ports.Comment(nil), s.inner...)
	if c, ok := s.trailingComment(); ok {
		comments = append(comments, c)
	}
	if len(comments) == 0 {
		return nil
	}
	spans := make([]argsel.Span, len(s.args))
	for i, a := range s.args {
		spans[i] = argsel.Span{Start: int(a.StartByte()), End: int(a.EndByte())}
	}
	return argsel.AttachComments(spans, s.commas, comments, s.idx.line)
}

// trailingComment returns a comment following the call's statement on the
// line the argument list closes on.
func (s *site) trailingComment() (ports.Comment, bool) {
	closeLine := s.idx.line(int(s.argList.EndByte()) - 1)
	stmt := s.call
	for p := stmt.Parent(); p != nil; stmt, p = p, p.Parent() {
		switch p.Kind() {
		case "block", "class_body", "constructor_body", "program", "switch_block_statement_group":
			next := stmt.NextSibling()
			if next != nil && isComment(next) && s.idx.line(int(next.StartByte())) == closeLine {
				return s.idx.comment(next), true
			}
			return ports.Comment{}, false
		}
	}
	return ports.Comment{}, false
}
