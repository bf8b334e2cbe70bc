package goanalysis

import (
	"go/ast"
	"go/token"
	"go/types"
	"strings"

	"github.com/corey/argsel/internal/domain/argsel"
)

// classify reduces an argument expression to the engine's vocabulary.
// Offsets and text always describe the expression as written; only the
// name is taken from the unwrapped form.
func (s *site) classify(e ast.Expr) argsel.Expr {
	out := argsel.Expr{
		Start: s.offset(e.Pos()),
		End:   s.offset(e.End()),
	}
	out.Text = s.text(out.Start, out.End)
	if tv, ok := s.h.pass.TypesInfo.Types[e]; ok {
		if tv.Type != nil {
			out.Type = tv.Type
		}
		out.Constant = tv.Value != nil
	}
	s.shape(s.unwrap(e), &out)
	return out
}

// shape fills in the kind and name of an unwrapped expression.
func (s *site) shape(e ast.Expr, out *argsel.Expr) {
	info := s.h.pass.TypesInfo
	switch x := e.(type) {
	case *ast.Ident:
		switch obj := info.ObjectOf(x).(type) {
		case *types.Nil:
			out.Kind = argsel.KindNullLiteral
			return
		case *types.Var:
			out.Self = obj == s.receiver && obj != nil
		}
		out.Kind = argsel.KindIdentifier
		out.Name = x.Name

	case *ast.SelectorExpr:
		out.Kind = argsel.KindMemberAccess
		out.Name = x.Sel.Name

	case *ast.BasicLit:
		out.Kind = argsel.KindLiteral

	case *ast.CompositeLit:
		out.Kind = argsel.KindAllocation
		out.Name = s.typeName(x, x.Type)

	case *ast.UnaryExpr:
		// &T{...}; any other unary operator hides the name
		if lit, ok := ast.Unparen(x.X).(*ast.CompositeLit); ok && x.Op == token.AND {
			out.Kind = argsel.KindAllocation
			out.Name = s.typeName(lit, lit.Type)
			return
		}
		out.Kind = argsel.KindOther

	case *ast.CallExpr:
		s.shapeCall(x, out)

	default:
		out.Kind = argsel.KindOther
	}
}

func (s *site) shapeCall(call *ast.CallExpr, out *argsel.Expr) {
	info := s.h.pass.TypesInfo
	if b, ok := info.Uses[calleeIdent(call.Fun)].(*types.Builtin); ok {
		switch b.Name() {
		case "new", "make":
			out.Kind = argsel.KindAllocation
			if len(call.Args) > 0 {
				out.Name = s.typeName(call.Args[0], call.Args[0])
			}
			return
		}
	}

	out.Kind = argsel.KindCall
	switch fun := ast.Unparen(call.Fun).(type) {
	case *ast.Ident:
		out.Name = fun.Name
	case *ast.SelectorExpr:
		out.Name = fun.Sel.Name
		if _, isPkg := info.ObjectOf(identOf(fun.X)).(*types.PkgName); !isPkg {
			recv := argsel.Expr{Start: s.offset(fun.X.Pos()), End: s.offset(fun.X.End())}
			recv.Text = s.text(recv.Start, recv.End)
			s.shape(s.unwrap(fun.X), &recv)
			out.Receiver = &recv
		}
	case *ast.IndexExpr:
		// generic instantiation f[T](...)
		if id := calleeIdent(fun.X); id != nil {
			out.Name = id.Name
		}
	}
}

// unwrap strips syntax that does not change which value is passed:
// parentheses, dereferences, address-of (except of composite literals) and
// type conversions.
func (s *site) unwrap(e ast.Expr) ast.Expr {
	info := s.h.pass.TypesInfo
	for {
		switch x := e.(type) {
		case *ast.ParenExpr:
			e = x.X
		case *ast.StarExpr:
			e = x.X
		case *ast.UnaryExpr:
			if x.Op != token.AND {
				return e
			}
			if _, isLit := ast.Unparen(x.X).(*ast.CompositeLit); isLit {
				return e
			}
			e = x.X
		case *ast.CallExpr:
			if len(x.Args) != 1 || !info.Types[x.Fun].IsType() {
				return e
			}
			e = x.Args[0]
		default:
			return e
		}
	}
}

// typeName returns the simple name of the type an allocation constructs.
func (s *site) typeName(e ast.Expr, typ ast.Expr) string {
	if typ != nil {
		return simpleTypeName(types.ExprString(typ))
	}
	if t := s.h.pass.TypesInfo.TypeOf(e); t != nil {
		return simpleTypeName(types.TypeString(t, func(*types.Package) string { return "" }))
	}
	return ""
}

// simpleTypeName drops package qualifiers, pointers, slices and type arguments.
func simpleTypeName(s string) string {
	if i := strings.IndexByte(s, '['); i > 0 {
		s = s[:i]
	} else if i == 0 {
		s = strings.TrimLeft(s, "[]0123456789")
	}
	s = strings.TrimLeft(s, "*")
	if i := strings.LastIndexByte(s, '.'); i >= 0 {
		s = s[i+1:]
	}
	return s
}

// calleeIdent returns the identifier naming a call's function, if any.
func calleeIdent(fun ast.Expr) *ast.Ident {
	switch f := ast.Unparen(fun).(type) {
	case *ast.Ident:
		return f
	case *ast.SelectorExpr:
		return f.Sel
	case *ast.IndexExpr:
		return calleeIdent(f.X)
	case *ast.IndexListExpr:
		return calleeIdent(f.X)
	}
	return nil
}

func identOf(e ast.Expr) *ast.Ident {
	id, _ := ast.Unparen(e).(*ast.Ident)
	return id
}
