package treesitter

import (
	"fmt"
	"regexp"
	"slices"
	"sort"
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/corey/argsel/internal/domain/argsel"
)

// Checks lists the checks the Java host runs, in report order.
var Checks = []string{
	argsel.CheckArgumentSelection,
	argsel.CheckAssertOrder,
	argsel.CheckNamedParams,
}

// DefaultAssertMethods matches JUnit equality assertions.
var DefaultAssertMethods = regexp.MustCompile(`^assert(Equals|NotEquals|Same|NotSame|ArrayEquals|IterableEquals|LinesMatch)$`)

// Settings configures a Checker.
type Settings struct {
	Engine        argsel.Settings
	AssertMethods *regexp.Regexp
}

// DefaultSettings returns the engine defaults with Java enum detection.
func DefaultSettings() Settings {
	engine := argsel.DefaultSettings()
	engine.IsEnum = IsEnum
	return Settings{Engine: engine, AssertMethods: DefaultAssertMethods}
}

// Diagnostic is one finding in a Java file. Offsets are bytes into the
// checked source; Line and Column are 1-based.
type Diagnostic struct {
	Check   string
	Start   int
	End     int
	Line    int
	Column  int
	Message string
	Fixes   []argsel.Fix
}

// Checker runs the enabled checks over Java sources. It is safe for
// concurrent use.
type Checker struct {
	parser    *Parser
	selection *argsel.Engine
	asserts   *argsel.Engine
	methods   *regexp.Regexp
	synthetic *regexp.Regexp
	enabled   map[string]bool
}

// NewChecker builds a checker. A nil enabled list enables every check in
// Checks; unknown names are an error, names of checks this host does not
// implement are ignored.
func NewChecker(s Settings, enabled []string) (*Checker, error) {
	on := make(map[string]bool)
	if enabled == nil {
		enabled = Checks
	}
	for _, name := range enabled {
		switch name {
		case argsel.CheckArgumentSelection, argsel.CheckAssertOrder, argsel.CheckNamedParams:
			on[name] = true
		case argsel.CheckStructOrder:
		default:
			return nil, fmt.Errorf("unknown check %q", name)
		}
	}
	p, err := NewParser()
	if err != nil {
		return nil, err
	}
	methods := s.AssertMethods
	if methods == nil {
		methods = DefaultAssertMethods
	}
	return &Checker{
		parser:    p,
		selection: argsel.ArgumentSelection(s.Engine),
		asserts:   argsel.AssertOrder(s.Engine),
		methods:   methods,
		synthetic: s.Engine.SyntheticNames,
		enabled:   on,
	}, nil
}

// Close releases the parser's query.
func (c *Checker) Close() {
	c.parser.Close()
}

// CheckFile parses one compilation unit and returns its diagnostics in
// source order.
func (c *Checker) CheckFile(src []byte) ([]Diagnostic, error) {
	tree, err := c.parser.Parse(src)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	root := tree.RootNode()
	idx := newFileIndex(root, src)
	directives := idx.directives(root)

	var diags []Diagnostic
	add := func(s *site, check, message string, fixes ...argsel.Fix) {
		if s.suppressed(check) || directives.covers(idx.line(int(s.call.StartByte())), check) {
			return
		}
		pos := s.call.StartPosition()
		d := Diagnostic{
			Check:   check,
			Start:   int(s.call.StartByte()),
			End:     int(s.call.EndByte()),
			Line:    int(pos.Row) + 1,
			Column:  int(pos.Column) + 1,
			Message: message,
		}
		for _, f := range fixes {
			if !f.IsEmpty() {
				d.Fixes = append(d.Fixes, f)
			}
		}
		diags = append(diags, d)
	}

	for _, cs := range c.parser.callSites(root, src) {
		s := newSite(idx, cs)
		callee := s.resolve()

		if callee == nil {
			if c.enabled[argsel.CheckAssertOrder] && c.methods.MatchString(s.name) && cs.call.Kind() == "method_invocation" {
				if info := s.assertion(); info != nil {
					if f := c.asserts.Check(info); f != nil {
						add(s, argsel.CheckAssertOrder, f.Message, f.PermutationFix, f.CommentFix)
					}
				}
			}
			continue
		}

		formals := s.formals(callee)
		if c.enabled[argsel.CheckArgumentSelection] {
			if f := c.selection.Check(s.invocation(formals, callee.varargs)); f != nil {
				add(s, argsel.CheckArgumentSelection, f.Message, f.PermutationFix, f.CommentFix)
			}
		}
		if c.enabled[argsel.CheckNamedParams] {
			if f := s.labels(formals, callee.varargs, c.synthetic); f != nil {
				add(s, argsel.CheckNamedParams, f.Message, f.Fix)
			}
		}
	}

	sort.SliceStable(diags, func(i, j int) bool { return diags[i].Start < diags[j].Start })
	return diags, nil
}

// assertStyle is where an assertion library puts the optional message.
type assertStyle int

const (
	styleUnknown      assertStyle = iota
	styleMessageFirst             // JUnit 3 and 4
	styleMessageLast              // JUnit 5
	styleForeign                  // another library; argument order unknown
)

// assertStyleOf classifies the class an assertion is declared in. Unimported
// simple names are taken at face value.
func assertStyleOf(class string) assertStyle {
	switch class {
	case "org.junit.jupiter.api.Assertions", "Assertions":
		return styleMessageLast
	case "org.junit.Assert", "junit.framework.Assert", "junit.framework.TestCase", "Assert", "TestCase":
		return styleMessageFirst
	}
	if strings.Contains(class, ".") {
		return styleForeign
	}
	return styleUnknown
}

// assertStyle finds the class an unresolved assertion comes from: its
// qualifier, a static import, or an enclosing class's supertype.
func (s *site) assertStyle() assertStyle {
	if s.object != nil {
		return assertStyleOf(s.idx.qualify(s.idx.text(s.object)))
	}
	if class, ok := s.idx.staticImports[s.name]; ok {
		return assertStyleOf(class)
	}
	for _, class := range s.idx.staticWildcards {
		if style := assertStyleOf(class); style != styleUnknown {
			return style
		}
	}
	for _, c := range s.classes {
		for _, super := range c.supers {
			if style := assertStyleOf(s.idx.qualify(super)); style == styleMessageFirst {
				return style
			}
		}
	}
	return styleUnknown
}

// assertion synthesizes the formals of an equality assertion whose
// declaration is not in the file. A delta follows actual. Three and four
// argument calls are checked only when the message position is known; for
// JUnit 4 the first argument must also be a String to be the message.
// Assertions on exceptions are skipped since their expected value is
// usually computed.
func (s *site) assertion() *argsel.InvocationInfo {
	style := s.assertStyle()
	if style == styleForeign {
		return nil
	}
	var names []string
	switch n := len(s.args); {
	case n == 2:
		names = []string{"expected", "actual"}
	case style == styleMessageLast && n == 3:
		names = []string{"expected", "actual", "message"}
	case style == styleMessageLast && n == 4:
		names = []string{"expected", "actual", "delta", "message"}
	case style == styleMessageFirst && (n == 3 || n == 4):
		first, _ := s.describe(s.args[0])
		switch {
		case first == "String" || first == "java.lang.String":
			names = []string{"message", "expected", "actual", "delta"}[:n]
		case first != "" && first != "null" && n == 3:
			names = []string{"expected", "actual", "delta"}
		default:
			return nil
		}
	default:
		return nil
	}
	for _, a := range s.args {
		if typ, _ := s.describe(a); isThrowable(typ) {
			return nil
		}
	}
	formals := make([]argsel.Formal, len(names))
	for i, name := range names {
		formals[i] = argsel.Formal{Name: name, Type: javaType{name: "Object"}}
	}
	return s.invocation(formals, false)
}

func isThrowable(typ string) bool {
	t := baseType(typ)
	return t == "Throwable" || strings.HasSuffix(t, "Exception") || strings.HasSuffix(t, "Error")
}

// labels checks /* name= */ comments against the callee's parameters.
func (s *site) labels(formals []argsel.Formal, varargs bool, synthetic *regexp.Regexp) *argsel.LabelFinding {
	if varargs && len(formals) > 0 {
		formals = formals[:len(formals)-1]
	}
	if len(formals) == 0 || len(s.args) < len(formals) {
		return nil
	}
	args := make([]argsel.LabelledArgument, len(formals))
	for i, f := range formals {
		if synthetic != nil && synthetic.MatchString(f.Name) {
			return nil
		}
		args[i] = argsel.LabelledArgument{
			Formal:   f.Name,
			Text:     s.idx.text(s.args[i]),
			Start:    int(s.args[i].StartByte()),
			End:      int(s.args[i].EndByte()),
			Comments: s.ArgumentComments(i),
		}
	}
	return argsel.CheckLabels(args)
}

// directiveLines maps a line to the suppression directives written on it.
type directiveLines map[int][]string

// directives collects //argsel:ignore comments.
func (idx *fileIndex) directives(root *tree_sitter.Node) directiveLines {
	lines := make(directiveLines)
	walk(root, func(n *tree_sitter.Node) bool {
		if n.Kind() == "line_comment" {
			if text := idx.text(n); strings.HasPrefix(text, argsel.DirectivePrefix) {
				line := idx.line(int(n.StartByte()))
				lines[line] = append(lines[line], text)
			}
		}
		return true
	})
	return lines
}

// covers reports whether a directive on line or the line above it
// suppresses check.
func (d directiveLines) covers(line int, check string) bool {
	match := func(text string) bool { return argsel.IgnoreDirective(text, check) }
	return slices.ContainsFunc(d[line], match) || slices.ContainsFunc(d[line-1], match)
}
