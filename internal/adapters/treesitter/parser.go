// Package treesitter hosts the argument-selection engine for Java sources.
// Parsing uses tree-sitter's Java grammar. Types come from the declarations
// in the file being checked, so only callees declared in the same file are
// checked, plus JUnit-style assertions whose parameter shape is known.
package treesitter

import (
	"fmt"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_java "github.com/tree-sitter/tree-sitter-java/bindings/go"
)

// callQuery captures every construct that passes arguments to a callee.
const callQuery = `
(method_invocation arguments: (argument_list) @args) @call
(object_creation_expression arguments: (argument_list) @args) @call
(explicit_constructor_invocation arguments: (argument_list) @args) @call
`

// Parser parses Java source with tree-sitter. It is safe for concurrent use;
// each Parse call gets its own tree-sitter parser.
type Parser struct {
	language *tree_sitter.Language
	calls    *tree_sitter.Query
}

// NewParser loads the Java grammar and compiles the call-site query.
func NewParser() (*Parser, error) {
	language := tree_sitter.NewLanguage(tree_sitter_java.Language())
	calls, qerr := tree_sitter.NewQuery(language, callQuery)
	if qerr != nil {
		return nil, fmt.Errorf("compile call query: %s", qerr.Message)
	}
	return &Parser{language: language, calls: calls}, nil
}

// Close releases the compiled query. Safe to call more than once.
func (p *Parser) Close() {
	if p.calls != nil {
		p.calls.Close()
		p.calls = nil
	}
}

// Parse parses a Java compilation unit. The caller must Close the tree.
func (p *Parser) Parse(source []byte) (*tree_sitter.Tree, error) {
	parser := tree_sitter.NewParser()
	defer parser.Close()
	if err := parser.SetLanguage(p.language); err != nil {
		return nil, err
	}
	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil, fmt.Errorf("tree-sitter returned no tree")
	}
	return tree, nil
}

// callSite is one invocation found by the call query.
type callSite struct {
	call *tree_sitter.Node
	args *tree_sitter.Node // argument_list
}

// callSites returns the invocations under root in source order.
func (p *Parser) callSites(root *tree_sitter.Node, source []byte) []callSite {
	qc := tree_sitter.NewQueryCursor()
	defer qc.Close()

	names := p.calls.CaptureNames()
	var sites []callSite
	matches := qc.Matches(p.calls, root, source)
	for {
		match := matches.Next()
		if match == nil {
			break
		}
		var site callSite
		for _, c := range match.Captures {
			node := c.Node
			switch names[c.Index] {
			case "call":
				site.call = &node
			case "args":
				site.args = &node
			}
		}
		if site.call != nil && site.args != nil {
			sites = append(sites, site)
		}
	}
	return sites
}

// nodeText returns the source text for a node.
func nodeText(n *tree_sitter.Node, source []byte) string {
	if n == nil {
		return ""
	}
	return string(source[n.StartByte():n.EndByte()])
}

// childByKind finds the first child with the given kind.
func childByKind(n *tree_sitter.Node, kind string) *tree_sitter.Node {
	for i := uint(0); i < n.ChildCount(); i++ {
		c := n.Child(i)
		if c != nil && c.Kind() == kind {
			return c
		}
	}
	return nil
}

// namedChildren returns a node's named children, comments included.
func namedChildren(n *tree_sitter.Node) []*tree_sitter.Node {
	out := make([]*tree_sitter.Node, 0, n.NamedChildCount())
	for i := uint(0); i < n.NamedChildCount(); i++ {
		if c := n.NamedChild(i); c != nil {
			out = append(out, c)
		}
	}
	return out
}

// walk visits n and its descendants in pre-order. Returning false from fn
// skips the node's children.
func walk(n *tree_sitter.Node, fn func(*tree_sitter.Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for i := uint(0); i < n.NamedChildCount(); i++ {
		walk(n.NamedChild(i), fn)
	}
}

func isComment(n *tree_sitter.Node) bool {
	k := n.Kind()
	return k == "line_comment" || k == "block_comment"
}

// sameNode reports whether a and b are the same syntax node.
func sameNode(a, b *tree_sitter.Node) bool {
	return a != nil && b != nil && a.Id() == b.Id()
}
