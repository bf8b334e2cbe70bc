// Package goanalysis hosts the argument-selection engine as go/analysis
// analyzers. Symbol and type information comes from go/types; fixes are
// reported as analysis.SuggestedFix values.
package goanalysis

import (
	"go/ast"
	"go/types"
	"regexp"
	"slices"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
	"golang.org/x/tools/go/types/typeutil"

	"github.com/corey/argsel/internal/domain/argsel"
)

// Analyzer names, also used as diagnostic categories and in
// //argsel:ignore directives.
const (
	NameArgumentSelection = argsel.CheckArgumentSelection
	NameAssertOrder       = argsel.CheckAssertOrder
	NameStructOrder       = argsel.CheckStructOrder
	NameNamedParams       = argsel.CheckNamedParams
)

// Names lists every analyzer name in reporting order.
var Names = []string{NameArgumentSelection, NameAssertOrder, NameStructOrder, NameNamedParams}

// DefaultAssertPackages are the packages whose equality assertions are checked.
var DefaultAssertPackages = []string{
	"github.com/stretchr/testify/assert",
	"github.com/stretchr/testify/require",
}

// DefaultAssertFunctions matches the equality assertions of DefaultAssertPackages.
var DefaultAssertFunctions = regexp.MustCompile(
	`^(Equal|EqualValues|EqualExportedValues|Exactly|NotEqual|NotEqualValues|Same|NotSame|JSONEq|YAMLEq|InDelta|InEpsilon)f?$`)

// Settings configures the analyzers.
type Settings struct {
	Engine          argsel.Settings
	AssertPackages  []string
	AssertFunctions *regexp.Regexp
}

// DefaultSettings returns the settings the package-level analyzers use.
func DefaultSettings() Settings {
	engine := argsel.DefaultSettings()
	engine.ExpectedPrefixes = []string{"expected", "want"}
	engine.ActualPrefixes = []string{"actual", "got"}
	engine.IsEnum = IsEnum
	return Settings{
		Engine:          engine,
		AssertPackages:  DefaultAssertPackages,
		AssertFunctions: DefaultAssertFunctions,
	}
}

// Analyzers configured with DefaultSettings.
var (
	ArgumentSelection = NewArgumentSelection(DefaultSettings())
	AssertOrder       = NewAssertOrder(DefaultSettings())
	StructOrder       = NewStructOrder(DefaultSettings())
	NamedParams       = NewNamedParams(DefaultSettings())
)

// NewAnalyzers returns the analyzers whose names are in enabled, in the
// order of Names. A nil enabled list selects all of them.
func NewAnalyzers(s Settings, enabled []string) []*analysis.Analyzer {
	constructors := map[string]func(Settings) *analysis.Analyzer{
		NameArgumentSelection: NewArgumentSelection,
		NameAssertOrder:       NewAssertOrder,
		NameStructOrder:       NewStructOrder,
		NameNamedParams:       NewNamedParams,
	}
	var out []*analysis.Analyzer
	for _, name := range Names {
		if enabled != nil && !slices.Contains(enabled, name) {
			continue
		}
		out = append(out, constructors[name](s))
	}
	return out
}

// NewArgumentSelection reports calls whose arguments match other parameters'
// names better than their own.
func NewArgumentSelection(settings Settings) *analysis.Analyzer {
	engine := argsel.ArgumentSelection(settings.Engine)
	return &analysis.Analyzer{
		Name:     NameArgumentSelection,
		Doc:      "report calls whose arguments appear to be passed in the wrong order",
		URL:      "https://github.com/corey/argsel#argselection",
		Requires: []*analysis.Analyzer{inspect.Analyzer},
		Run: func(pass *analysis.Pass) (any, error) {
			eachCall(pass, NameArgumentSelection, func(h *host, call *ast.CallExpr, stack []ast.Node) {
				sig := signatureOf(pass, call)
				if sig == nil {
					return
				}
				s := h.newCallSite(call, stack)
				if !s.ok() {
					return
				}
				formals, variadic := formalsOf(sig)
				if f := engine.Check(s.invocation(calleeName(call), formals, variadic)); f != nil {
					report(pass, s, NameArgumentSelection, f)
				}
			})
			return nil, nil
		},
	}
}

// NewAssertOrder reports equality assertions whose expected and actual
// arguments are reversed.
func NewAssertOrder(settings Settings) *analysis.Analyzer {
	functions := settings.AssertFunctions
	if functions == nil {
		functions = DefaultAssertFunctions
	}
	packages := settings.AssertPackages
	if packages == nil {
		packages = DefaultAssertPackages
	}
	return &analysis.Analyzer{
		Name:     NameAssertOrder,
		Doc:      "report equality assertions with expected and actual values swapped",
		URL:      "https://github.com/corey/argsel#assertorder",
		Requires: []*analysis.Analyzer{inspect.Analyzer},
		Run: func(pass *analysis.Pass) (any, error) {
			engineSettings := settings.Engine
			if cache := newEnumCache(engineSettings.IsEnum); cache != nil {
				engineSettings.IsEnum = cache.IsEnum
			}
			engine := argsel.AssertOrder(engineSettings)
			eachCall(pass, NameAssertOrder, func(h *host, call *ast.CallExpr, stack []ast.Node) {
				fn, ok := typeutil.Callee(pass.TypesInfo, call).(*types.Func)
				if !ok || fn.Pkg() == nil || !slices.Contains(packages, fn.Pkg().Path()) {
					return
				}
				if !functions.MatchString(fn.Name()) {
					return
				}
				// Comparing errors is usually deliberate in either order.
				for _, arg := range call.Args {
					if isError(pass.TypesInfo.TypeOf(arg)) {
						return
					}
				}
				s := h.newCallSite(call, stack)
				if !s.ok() {
					return
				}
				formals, variadic := formalsOf(fn.Type().(*types.Signature))
				if f := engine.Check(s.invocation(calleeName(call), formals, variadic)); f != nil {
					report(pass, s, NameAssertOrder, f)
				}
			})
			return nil, nil
		},
	}
}

// NewStructOrder reports unkeyed struct literals whose values are named
// after a different field than the one they initialize.
func NewStructOrder(settings Settings) *analysis.Analyzer {
	engine := argsel.StructOrder(settings.Engine)
	return &analysis.Analyzer{
		Name:     NameStructOrder,
		Doc:      "report unkeyed struct literals whose values are named after other fields",
		URL:      "https://github.com/corey/argsel#structorder",
		Requires: []*analysis.Analyzer{inspect.Analyzer},
		Run: func(pass *analysis.Pass) (any, error) {
			insp := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)
			h := newHost(pass)
			walk(insp, (*ast.CompositeLit)(nil), func(n ast.Node, stack []ast.Node) {
				lit := n.(*ast.CompositeLit)
				f, ok := stack[0].(*ast.File)
				if !ok || ast.IsGenerated(f) || h.suppressed(f, lit.Pos(), NameStructOrder) {
					return
				}
				st := structOf(pass.TypesInfo.TypeOf(lit))
				if st == nil || len(lit.Elts) != st.NumFields() {
					return
				}
				for _, elt := range lit.Elts {
					if _, keyed := elt.(*ast.KeyValueExpr); keyed {
						return
					}
				}
				s := h.newLiteralSite(lit, stack)
				if !s.ok() {
					return
				}
				formals := make([]argsel.Formal, st.NumFields())
				for i := range formals {
					field := st.Field(i)
					formals[i] = argsel.Formal{Name: field.Name(), Type: field.Type()}
				}
				name := s.typeName(lit, lit.Type)
				if f := engine.Check(s.invocation(name, formals, false)); f != nil {
					report(pass, s, NameStructOrder, f)
				}
			})
			return nil, nil
		},
	}
}

// NewNamedParams reports /* name= */ argument comments that name a
// different parameter than the one the argument is passed to.
func NewNamedParams(settings Settings) *analysis.Analyzer {
	synthetic := settings.Engine.SyntheticNames
	return &analysis.Analyzer{
		Name:     NameNamedParams,
		Doc:      "report /* name= */ argument comments that do not match the parameter name",
		URL:      "https://github.com/corey/argsel#namedparams",
		Requires: []*analysis.Analyzer{inspect.Analyzer},
		Run: func(pass *analysis.Pass) (any, error) {
			eachCall(pass, NameNamedParams, func(h *host, call *ast.CallExpr, stack []ast.Node) {
				sig := signatureOf(pass, call)
				if sig == nil {
					return
				}
				formals, variadic := formalsOf(sig)
				if variadic {
					formals = formals[:len(formals)-1]
				}
				if len(formals) == 0 || (synthetic != nil && synthetic.MatchString(formals[0].Name)) {
					return
				}
				s := h.newCallSite(call, stack)
				if !s.ok() {
					return
				}
				n := min(len(formals), len(call.Args))
				args := make([]argsel.LabelledArgument, n)
				labelled := false
				for i := range n {
					comments := s.ArgumentComments(i)
					labelled = labelled || len(comments) > 0
					args[i] = argsel.LabelledArgument{
						Formal:   formals[i].Name,
						Text:     s.text(s.offset(call.Args[i].Pos()), s.offset(call.Args[i].End())),
						Start:    s.offset(call.Args[i].Pos()),
						End:      s.offset(call.Args[i].End()),
						Comments: comments,
					}
				}
				if !labelled {
					return
				}
				if lf := argsel.CheckLabels(args); lf != nil {
					pass.Report(analysis.Diagnostic{
						Pos:            call.Pos(),
						End:            call.End(),
						Category:       NameNamedParams,
						Message:        lf.Message,
						SuggestedFixes: []analysis.SuggestedFix{s.suggestedFix(lf.Fix)},
					})
				}
			})
			return nil, nil
		},
	}
}

// eachCall visits every call in non-generated files that is not suppressed
// for check.
func eachCall(pass *analysis.Pass, check string, fn func(h *host, call *ast.CallExpr, stack []ast.Node)) {
	insp := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)
	h := newHost(pass)
	walk(insp, (*ast.CallExpr)(nil), func(n ast.Node, stack []ast.Node) {
		call := n.(*ast.CallExpr)
		f, ok := stack[0].(*ast.File)
		if !ok || ast.IsGenerated(f) || h.suppressed(f, call.Pos(), check) {
			return
		}
		fn(h, call, stack)
	})
}

func walk(insp *inspector.Inspector, filter ast.Node, fn func(n ast.Node, stack []ast.Node)) {
	insp.WithStack([]ast.Node{filter}, func(n ast.Node, push bool, stack []ast.Node) bool {
		if push {
			fn(n, stack)
		}
		return true
	})
}

// signatureOf returns the signature of a call's function, or nil for type
// conversions, builtins and calls the checker could not resolve.
func signatureOf(pass *analysis.Pass, call *ast.CallExpr) *types.Signature {
	tv, ok := pass.TypesInfo.Types[call.Fun]
	if !ok || tv.IsType() || tv.IsBuiltin() {
		return nil
	}
	sig, _ := tv.Type.Underlying().(*types.Signature)
	return sig
}

// formalsOf lists a signature's parameters.
func formalsOf(sig *types.Signature) ([]argsel.Formal, bool) {
	params := sig.Params()
	formals := make([]argsel.Formal, params.Len())
	for i := range params.Len() {
		v := params.At(i)
		formals[i] = argsel.Formal{Name: v.Name(), Type: v.Type()}
	}
	return formals, sig.Variadic()
}

// calleeName is the call's function expression as written, e.g. "r.Resize".
func calleeName(call *ast.CallExpr) string {
	return types.ExprString(call.Fun)
}

// structOf returns the struct a composite literal constructs, following
// named types and the pointer of an elided &T{} element.
func structOf(t types.Type) *types.Struct {
	if t == nil {
		return nil
	}
	if p, ok := t.Underlying().(*types.Pointer); ok {
		t = p.Elem()
	}
	st, _ := t.Underlying().(*types.Struct)
	return st
}

func report(pass *analysis.Pass, s *site, check string, f *argsel.Finding) {
	pass.Report(analysis.Diagnostic{
		Pos:      s.node.Pos(),
		End:      s.node.End(),
		Category: check,
		Message:  f.Message,
		SuggestedFixes: []analysis.SuggestedFix{
			s.suggestedFix(f.PermutationFix),
			s.suggestedFix(f.CommentFix),
		},
	})
}

// suggestedFix converts engine edits (file offsets) to analysis text edits.
func (s *site) suggestedFix(fix argsel.Fix) analysis.SuggestedFix {
	edits := make([]analysis.TextEdit, len(fix.Edits))
	for i, e := range fix.Edits {
		edits[i] = analysis.TextEdit{
			Pos:     s.pos(e.Start),
			End:     s.pos(e.End),
			NewText: []byte(e.Text),
		}
	}
	return analysis.SuggestedFix{Message: fix.Description, TextEdits: edits}
}
