package treesitter

import (
	"sort"
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/corey/argsel/internal/ports"
)

// classInfo is a type declared in the file.
type classInfo struct {
	name    string
	node    *tree_sitter.Node
	supers  []string
	fields  map[string]fieldInfo
	methods []*methodInfo
	ctors   []*methodInfo
	enum    bool
}

type fieldInfo struct {
	typ      string
	constant bool // static final, or an enum constant
}

// methodInfo is a method or constructor declared in the file.
type methodInfo struct {
	name    string
	class   *classInfo
	node    *tree_sitter.Node
	params  []paramInfo
	varargs bool
	result  string
}

type paramInfo struct {
	name string
	typ  string
}

// accepts reports whether the method can be called with n arguments.
func (m *methodInfo) accepts(n int) bool {
	if m.varargs {
		return n >= len(m.params)-1
	}
	return n == len(m.params)
}

// fileIndex holds the declarations of one compilation unit.
type fileIndex struct {
	src        []byte
	lineStarts []int
	classes    map[string]*classInfo
	byNode     map[uintptr]*classInfo

	imports         map[string]string // simple name -> qualified name
	staticImports   map[string]string // member -> declaring class
	staticWildcards []string          // classes imported with "import static C.*"
}

func newFileIndex(root *tree_sitter.Node, src []byte) *fileIndex {
	idx := &fileIndex{
		src:        src,
		lineStarts: []int{0},
		classes:    make(map[string]*classInfo),
		byNode:     make(map[uintptr]*classInfo),

		imports:       make(map[string]string),
		staticImports: make(map[string]string),
	}
	for i, b := range src {
		if b == '\n' {
			idx.lineStarts = append(idx.lineStarts, i+1)
		}
	}
	walk(root, func(n *tree_sitter.Node) bool {
		switch n.Kind() {
		case "import_declaration":
			idx.addImport(n)
			return false
		case "class_declaration", "interface_declaration", "enum_declaration", "record_declaration":
			idx.addClass(n)
		}
		return true
	})
	return idx
}

func (idx *fileIndex) addImport(n *tree_sitter.Node) {
	fields := strings.Fields(strings.TrimSuffix(strings.TrimSpace(idx.text(n)), ";"))
	if len(fields) < 2 || fields[0] != "import" {
		return
	}
	fields = fields[1:]
	static := fields[0] == "static"
	if static {
		fields = fields[1:]
	}
	path := strings.Join(fields, "")
	dot := strings.LastIndexByte(path, '.')
	if dot < 0 {
		return
	}
	owner, member := path[:dot], path[dot+1:]
	switch {
	case static && member == "*":
		idx.staticWildcards = append(idx.staticWildcards, owner)
	case static:
		if _, dup := idx.staticImports[member]; !dup {
			idx.staticImports[member] = owner
		}
	case member != "*":
		idx.imports[member] = path
	}
}

// qualify returns the imported qualified name of a simple type name, or the
// name itself.
func (idx *fileIndex) qualify(name string) string {
	if full, ok := idx.imports[name]; ok {
		return full
	}
	return name
}

// line returns the 1-based line holding offset.
func (idx *fileIndex) line(offset int) int {
	return sort.Search(len(idx.lineStarts), func(i int) bool { return idx.lineStarts[i] > offset })
}

func (idx *fileIndex) text(n *tree_sitter.Node) string {
	return nodeText(n, idx.src)
}

func (idx *fileIndex) addClass(n *tree_sitter.Node) {
	c := &classInfo{
		name:   idx.text(n.ChildByFieldName("name")),
		node:   n,
		fields: make(map[string]fieldInfo),
		enum:   n.Kind() == "enum_declaration",
	}
	if sc := n.ChildByFieldName("superclass"); sc != nil {
		for _, t := range namedChildren(sc) {
			c.supers = append(c.supers, baseType(idx.text(t)))
		}
	}
	if ifaces := n.ChildByFieldName("interfaces"); ifaces != nil {
		c.supers = append(c.supers, idx.typeList(ifaces)...)
	}
	if ext := childByKind(n, "extends_interfaces"); ext != nil {
		c.supers = append(c.supers, idx.typeList(ext)...)
	}

	// Record components are both fields and canonical constructor parameters.
	if params := n.ChildByFieldName("parameters"); params != nil {
		ctor := &methodInfo{name: c.name, class: c, node: n}
		ctor.params, ctor.varargs = idx.formalParameters(params)
		for _, p := range ctor.params {
			c.fields[p.name] = fieldInfo{typ: p.typ}
		}
		c.ctors = append(c.ctors, ctor)
	}

	if body := n.ChildByFieldName("body"); body != nil {
		for _, member := range namedChildren(body) {
			idx.addMember(c, member)
		}
	}
	if c.name != "" {
		if _, dup := idx.classes[c.name]; !dup {
			idx.classes[c.name] = c
		}
	}
	idx.byNode[n.Id()] = c
}

func (idx *fileIndex) typeList(n *tree_sitter.Node) []string {
	var out []string
	list := childByKind(n, "type_list")
	if list == nil {
		return nil
	}
	for _, t := range namedChildren(list) {
		out = append(out, baseType(idx.text(t)))
	}
	return out
}

func (idx *fileIndex) addMember(c *classInfo, member *tree_sitter.Node) {
	switch member.Kind() {
	case "field_declaration", "constant_declaration":
		typ := idx.text(member.ChildByFieldName("type"))
		constant := member.Kind() == "constant_declaration" || idx.hasModifiers(member, "static", "final")
		for _, d := range namedChildren(member) {
			if d.Kind() != "variable_declarator" {
				continue
			}
			name := idx.text(d.ChildByFieldName("name"))
			c.fields[name] = fieldInfo{typ: typ + dimensions(idx.text(d.ChildByFieldName("dimensions"))), constant: constant}
		}
	case "enum_constant":
		c.fields[idx.text(member.ChildByFieldName("name"))] = fieldInfo{typ: c.name, constant: true}
	case "enum_body_declarations":
		for _, m := range namedChildren(member) {
			idx.addMember(c, m)
		}
	case "method_declaration":
		m := &methodInfo{
			name:   idx.text(member.ChildByFieldName("name")),
			class:  c,
			node:   member,
			result: idx.text(member.ChildByFieldName("type")),
		}
		m.params, m.varargs = idx.formalParameters(member.ChildByFieldName("parameters"))
		c.methods = append(c.methods, m)
	case "constructor_declaration", "compact_constructor_declaration":
		m := &methodInfo{name: c.name, class: c, node: member}
		if params := member.ChildByFieldName("parameters"); params != nil {
			m.params, m.varargs = idx.formalParameters(params)
			c.ctors = append(c.ctors, m)
		}
	}
}

// formalParameters reads a formal_parameters node.
func (idx *fileIndex) formalParameters(n *tree_sitter.Node) ([]paramInfo, bool) {
	if n == nil {
		return nil, false
	}
	var (
		params  []paramInfo
		varargs bool
	)
	for _, p := range namedChildren(n) {
		switch p.Kind() {
		case "formal_parameter":
			params = append(params, paramInfo{
				name: idx.text(p.ChildByFieldName("name")),
				typ:  idx.text(p.ChildByFieldName("type")) + dimensions(idx.text(p.ChildByFieldName("dimensions"))),
			})
		case "spread_parameter":
			var param paramInfo
			for _, c := range namedChildren(p) {
				switch c.Kind() {
				case "modifiers":
				case "variable_declarator":
					param.name = idx.text(c.ChildByFieldName("name"))
				default:
					if param.typ == "" {
						param.typ = idx.text(c) + "[]"
					}
				}
			}
			params = append(params, param)
			varargs = true
		}
	}
	return params, varargs
}

// hasModifiers reports whether a declaration carries every given modifier.
func (idx *fileIndex) hasModifiers(decl *tree_sitter.Node, want ...string) bool {
	mods := childByKind(decl, "modifiers")
	if mods == nil {
		return false
	}
	words := strings.Fields(idx.text(mods))
	for _, w := range want {
		found := false
		for _, word := range words {
			if word == w {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// suppresses reports whether decl is annotated with a @SuppressWarnings
// naming check.
func (idx *fileIndex) suppresses(decl *tree_sitter.Node, check string) bool {
	mods := childByKind(decl, "modifiers")
	if mods == nil {
		return false
	}
	for _, a := range namedChildren(mods) {
		if a.Kind() != "annotation" && a.Kind() != "marker_annotation" {
			continue
		}
		name := idx.text(a.ChildByFieldName("name"))
		if name != "SuppressWarnings" && name != "java.lang.SuppressWarnings" {
			continue
		}
		if strings.Contains(idx.text(a.ChildByFieldName("arguments")), `"`+check+`"`) {
			return true
		}
	}
	return false
}

// field finds a field declared on c or, failing that, on a supertype
// declared in the same file.
func (idx *fileIndex) field(c *classInfo, name string) (fieldInfo, bool) {
	seen := make(map[string]bool)
	for c != nil && !seen[c.name] {
		seen[c.name] = true
		if f, ok := c.fields[name]; ok {
			return f, true
		}
		var next *classInfo
		for _, s := range c.supers {
			if sc := idx.classes[s]; sc != nil {
				next = sc
				break
			}
		}
		c = next
	}
	return fieldInfo{}, false
}

// methods returns the methods named name on c and its in-file supertypes.
func (idx *fileIndex) methods(c *classInfo, name string) []*methodInfo {
	var out []*methodInfo
	seen := make(map[string]bool)
	var visit func(c *classInfo)
	visit = func(c *classInfo) {
		if c == nil || seen[c.name] {
			return
		}
		seen[c.name] = true
		for _, m := range c.methods {
			if m.name == name {
				out = append(out, m)
			}
		}
		for _, s := range c.supers {
			visit(idx.classes[s])
		}
	}
	visit(c)
	return out
}

// typeRef converts declared type text into an oracle handle. Inferred (var)
// and missing types are unresolved.
func (idx *fileIndex) typeRef(text string) ports.TypeRef {
	base := baseType(text)
	if base == "" || base == "var" {
		return nil
	}
	c := idx.classes[base]
	return javaType{name: base, enum: c != nil && c.enum}
}

// baseType strips whitespace, type arguments and package qualifiers,
// keeping array dimensions: "java.util.List<String>[]" -> "List[]".
func baseType(text string) string {
	text = strings.TrimSpace(text)
	var b strings.Builder
	depth := 0
	for _, r := range text {
		switch {
		case r == '<':
			depth++
		case r == '>':
			depth--
		case depth == 0 && r != ' ' && r != '\t' && r != '\n':
			b.WriteRune(r)
		}
	}
	s := b.String()
	dims := ""
	for strings.HasSuffix(s, "[]") {
		dims += "[]"
		s = strings.TrimSuffix(s, "[]")
	}
	if strings.HasSuffix(s, "...") {
		dims += "[]"
		s = strings.TrimSuffix(s, "...")
	}
	if i := strings.LastIndexByte(s, '.'); i >= 0 {
		s = s[i+1:]
	}
	if s == "" {
		return ""
	}
	return s + dims
}

func dimensions(text string) string {
	return strings.Repeat("[]", strings.Count(text, "["))
}
