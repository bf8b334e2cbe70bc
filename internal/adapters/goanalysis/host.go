package goanalysis

import (
	"go/ast"
	"go/token"
	"go/types"
	"os"
	"strings"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/types/typeutil"

	"github.com/corey/argsel/internal/domain/argsel"
	"github.com/corey/argsel/internal/ports"
)

// host holds per-pass state shared by every call site in a package.
type host struct {
	pass       *analysis.Pass
	sources    map[*token.File][]byte
	directives map[*ast.File]map[int][]string
}

func newHost(pass *analysis.Pass) *host {
	return &host{
		pass:       pass,
		sources:    make(map[*token.File][]byte),
		directives: make(map[*ast.File]map[int][]string),
	}
}

// source returns the token file and content of the file containing pos.
// The content is nil when the file cannot be read.
func (h *host) source(pos token.Pos) (*token.File, []byte) {
	tf := h.pass.Fset.File(pos)
	if tf == nil {
		return nil, nil
	}
	if src, ok := h.sources[tf]; ok {
		return tf, src
	}
	readFile := h.pass.ReadFile
	if readFile == nil {
		readFile = os.ReadFile
	}
	src, err := readFile(tf.Name())
	if err != nil || len(src) != tf.Size() {
		src = nil
	}
	h.sources[tf] = src
	return tf, src
}

// site is one call or composite literal being checked. It implements
// ports.CallContext; sibling and comment lookups are computed on first use.
type site struct {
	Oracle

	h        *host
	node     ast.Node // *ast.CallExpr or *ast.CompositeLit
	args     []ast.Expr
	open     token.Pos // opening paren or brace
	close    token.Pos // closing paren or brace
	stack    []ast.Node
	callee   types.Object
	receiver *types.Var

	tf  *token.File
	src []byte

	comments [][]ports.Comment
	siblings [][]string
	resolved struct{ comments, siblings bool }
}

var _ ports.CallContext = (*site)(nil)

// newCallSite builds the site for a call expression. stack holds the
// enclosing nodes, outermost first, ending with call itself.
func (h *host) newCallSite(call *ast.CallExpr, stack []ast.Node) *site {
	s := &site{
		h:      h,
		node:   call,
		args:   call.Args,
		open:   call.Lparen,
		close:  call.Rparen,
		stack:  stack,
		callee: typeutil.Callee(h.pass.TypesInfo, call),
	}
	s.init()
	return s
}

// newLiteralSite builds the site for a composite literal.
func (h *host) newLiteralSite(lit *ast.CompositeLit, stack []ast.Node) *site {
	s := &site{
		h:     h,
		node:  lit,
		args:  lit.Elts,
		open:  lit.Lbrace,
		close: lit.Rbrace,
		stack: stack,
	}
	s.init()
	return s
}

func (s *site) init() {
	s.tf, s.src = s.h.source(s.node.Pos())
	if fn := s.enclosingFunc(); fn != nil && fn.Recv != nil && len(fn.Recv.List) > 0 {
		if names := fn.Recv.List[0].Names; len(names) > 0 {
			s.receiver, _ = s.h.pass.TypesInfo.Defs[names[0]].(*types.Var)
		}
	}
}

// ok reports whether source text is available for the site.
func (s *site) ok() bool {
	return s.tf != nil && s.src != nil
}

func (s *site) offset(p token.Pos) int {
	return s.tf.Offset(p)
}

func (s *site) pos(offset int) token.Pos {
	return s.tf.Pos(offset)
}

func (s *site) text(start, end int) string {
	if start < 0 || end > len(s.src) || start > end {
		return ""
	}
	return string(s.src[start:end])
}

func (s *site) line(offset int) int {
	if offset < 0 || offset > s.tf.Size() {
		return 0
	}
	return s.tf.Line(s.tf.Pos(offset))
}

// invocation builds the engine input for the site.
func (s *site) invocation(name string, formals []argsel.Formal, variadic bool) *argsel.InvocationInfo {
	info := &argsel.InvocationInfo{
		Node:          s.node,
		Callee:        s.callee,
		CalleeName:    name,
		CallStart:     s.offset(s.node.Pos()),
		Formals:       formals,
		Variadic:      variadic,
		Args:          make([]argsel.Expr, len(s.args)),
		EnclosingType: s.enclosingType(),
		Context:       s,
	}
	info.CallText = s.text(info.CallStart, s.offset(s.node.End()))
	for i, arg := range s.args {
		info.Args[i] = s.classify(arg)
	}
	return info
}

// enclosingFunc returns the innermost function declaration around the site.
func (s *site) enclosingFunc() *ast.FuncDecl {
	for i := len(s.stack) - 1; i >= 0; i-- {
		if fn, ok := s.stack[i].(*ast.FuncDecl); ok {
			return fn
		}
	}
	return nil
}

func (s *site) file() *ast.File {
	if len(s.stack) > 0 {
		if f, ok := s.stack[0].(*ast.File); ok {
			return f
		}
	}
	return nil
}

// enclosingType is the receiver's base type name inside a method.
func (s *site) enclosingType() string {
	if s.receiver == nil {
		return ""
	}
	return simpleTypeName(types.TypeString(s.receiver.Type(), func(*types.Package) string { return "" }))
}

// EnclosingNames returns the enclosing function and type names, innermost
// first. Variables being initialized are not declarations of the call's scope.
func (s *site) EnclosingNames() []string {
	var names []string
	for i := len(s.stack) - 1; i >= 0; i-- {
		switch n := s.stack[i].(type) {
		case *ast.FuncDecl:
			names = append(names, n.Name.Name)
			if t := s.enclosingType(); t != "" {
				names = append(names, t)
			}
		case *ast.TypeSpec:
			names = append(names, n.Name.Name)
		}
	}
	return names
}

// SiblingArguments returns the argument texts of other calls to the same
// callee in the enclosing function, or in the file at package level. An
// enclosing method with the callee's name contributes its parameter names,
// which covers wrappers that deliberately reverse their arguments.
func (s *site) SiblingArguments() [][]string {
	if s.resolved.siblings {
		return s.siblings
	}
	s.resolved.siblings = true
	if s.callee == nil || !s.ok() {
		return nil
	}

	var scope ast.Node
	fn := s.enclosingFunc()
	if fn != nil {
		scope = fn
		if s.sameCallee(fn) {
			s.siblings = append(s.siblings, paramNames(fn))
		}
	} else if f := s.file(); f != nil {
		scope = f
		for _, decl := range f.Decls {
			if d, ok := decl.(*ast.FuncDecl); ok && d.Recv != nil && s.sameCallee(d) {
				s.siblings = append(s.siblings, paramNames(d))
			}
		}
	}
	if scope == nil {
		return s.siblings
	}

	info := s.h.pass.TypesInfo
	ast.Inspect(scope, func(n ast.Node) bool {
		call, ok := n.(*ast.CallExpr)
		if !ok || call == s.node {
			return true
		}
		if typeutil.Callee(info, call) != s.callee {
			return true
		}
		texts := make([]string, len(call.Args))
		for i, arg := range call.Args {
			texts[i] = s.text(s.offset(arg.Pos()), s.offset(arg.End()))
		}
		s.siblings = append(s.siblings, texts)
		return true
	})
	return s.siblings
}

// sameCallee reports whether fn declares the callee, or a method of the same
// name (an implementation of the same interface method).
func (s *site) sameCallee(fn *ast.FuncDecl) bool {
	obj := s.h.pass.TypesInfo.Defs[fn.Name]
	if obj == nil {
		return false
	}
	if obj == s.callee {
		return s.enclosingFunc() == fn
	}
	callee, ok := s.callee.(*types.Func)
	if !ok || fn.Recv == nil || fn.Name.Name != callee.Name() {
		return false
	}
	sig, ok := callee.Type().(*types.Signature)
	return ok && sig.Recv() != nil
}

func paramNames(fn *ast.FuncDecl) []string {
	var names []string
	for _, field := range fn.Type.Params.List {
		for _, id := range field.Names {
			names = append(names, id.Name)
		}
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
	f := s.file()
	if f == nil || !s.ok() || len(s.args) == 0 {
		return nil
	}
	closeLine := s.h.pass.Fset.Position(s.close).Line

	var comments []ports.Comment
	for _, group := range f.Comments {
		if group.End() < s.open {
			continue
		}
		if group.Pos() > s.close && s.h.pass.Fset.Position(group.Pos()).Line != closeLine {
			break
		}
		for _, c := range group.List {
			if c.Pos() < s.open {
				continue
			}
			if c.Pos() > s.close && s.h.pass.Fset.Position(c.Pos()).Line != closeLine {
				break
			}
			comments = append(comments, ports.Comment{
				Text:  c.Text,
				Start: s.offset(c.Pos()),
				End:   s.offset(c.End()),
				Block: strings.HasPrefix(c.Text, "/*"),
			})
		}
	}
	if len(comments) == 0 {
		return nil
	}

	spans := make([]argsel.Span, len(s.args))
	for i, arg := range s.args {
		spans[i] = argsel.Span{Start: s.offset(arg.Pos()), End: s.offset(arg.End())}
	}
	commas := s.commas(spans, comments)
	return argsel.AttachComments(spans, commas, comments, s.line)
}

// commas returns the offsets of the commas separating the arguments,
// including a trailing comma before the closing delimiter.
func (s *site) commas(spans []argsel.Span, comments []ports.Comment) []int {
	inComment := func(off int) bool {
		for _, c := range comments {
			if off >= c.Start && off < c.End {
				return true
			}
		}
		return false
	}
	var out []int
	for i, span := range spans {
		end := s.offset(s.close)
		if i+1 < len(spans) {
			end = spans[i+1].Start
		}
		for off := span.End; off < end && off < len(s.src); off++ {
			if s.src[off] == ',' && !inComment(off) {
				out = append(out, off)
				break
			}
		}
	}
	return out
}

// suppressed reports whether an "//argsel:ignore" directive on the site's
// line or the line above silences check.
func (h *host) suppressed(f *ast.File, pos token.Pos, check string) bool {
	directives, ok := h.directives[f]
	if !ok {
		directives = make(map[int][]string)
		for _, group := range f.Comments {
			for _, c := range group.List {
				if strings.HasPrefix(c.Text, "//argsel:ignore") {
					line := h.pass.Fset.Position(c.Pos()).Line
					directives[line] = append(directives[line], c.Text)
				}
			}
		}
		h.directives[f] = directives
	}
	line := h.pass.Fset.Position(pos).Line
	for _, l := range []int{line, line - 1} {
		for _, text := range directives[l] {
			if argsel.IgnoreDirective(text, check) {
				return true
			}
		}
	}
	return false
}
