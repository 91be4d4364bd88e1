//go:build cgo

package component

import (
	"iter"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/pallendes/eslint-plugin-react/internal/jsast"
)

// Member is one entry of a definition body, in source order.
type Member struct {
	Name     string       // empty for computed keys, spreads, and static blocks
	Node     *sitter.Node // the full member node
	Value    *sitter.Node // method body or field/pair initializer, nil when absent
	Static   bool
	Computed bool
	Spread   bool
}

// Definition is one component definition candidate found in a module.
// It holds syntax-tree handles and must not outlive the parsed tree.
type Definition struct {
	Name       string // empty for anonymous definitions
	Form       Form
	Node       *sitter.Node // class node or factory call_expression
	BaseExpr   *sitter.Node // extends expression, nil for factories
	Members    []Member
	Decorators []*sitter.Node
}

// Extractor finds component definitions in one parsed module. It is tied to
// the module's source buffer and tree and is not safe for concurrent use.
type Extractor struct {
	source []byte
	root   *sitter.Node
	scope  *moduleScope
}

// NewExtractor indexes the module's top-level bindings and prepares
// extraction. The root node must come from parsing source.
func NewExtractor(root *sitter.Node, source []byte) *Extractor {
	return &Extractor{
		source: source,
		root:   root,
		scope:  newModuleScope(root, source),
	}
}

// Definitions yields component definition candidates lazily in source order.
// The sequence is single-pass; a module without components yields nothing.
func (e *Extractor) Definitions() iter.Seq[*Definition] {
	return func(yield func(*Definition) bool) {
		e.walk(e.root, yield)
	}
}

func (e *Extractor) walk(node *sitter.Node, yield func(*Definition) bool) bool {
	switch node.Type() {
	case "class_declaration", "class":
		if def := e.classDefinition(node); def != nil {
			if !yield(def) {
				return false
			}
		}
	case "call_expression":
		if def := e.factoryDefinition(node); def != nil {
			if !yield(def) {
				return false
			}
		}
	}
	for i := uint32(0); i < node.ChildCount(); i++ {
		if !e.walk(node.Child(int(i)), yield) {
			return false
		}
	}
	return true
}

// classDefinition builds a candidate from a class node. Classes without an
// extends clause are not candidates.
func (e *Extractor) classDefinition(class *sitter.Node) *Definition {
	base := baseExpression(class)
	if base == nil {
		return nil
	}
	def := &Definition{
		Form:     FormClass,
		Node:     class,
		BaseExpr: base,
	}
	if n := class.ChildByFieldName("name"); n != nil {
		def.Name = jsast.Text(n, e.source)
	} else {
		def.Name = e.inferredName(class)
	}
	for i := uint32(0); i < class.ChildCount(); i++ {
		if c := class.Child(int(i)); c.Type() == "decorator" {
			def.Decorators = append(def.Decorators, c)
		}
	}
	// decorators on an exported class attach to the export statement
	if p := class.Parent(); p != nil && p.Type() == "export_statement" {
		for i := uint32(0); i < p.ChildCount(); i++ {
			if c := p.Child(int(i)); c.Type() == "decorator" {
				def.Decorators = append(def.Decorators, c)
			}
		}
	}
	if body := class.ChildByFieldName("body"); body != nil {
		e.classMembers(body, def)
	}
	return def
}

func (e *Extractor) classMembers(body *sitter.Node, def *Definition) {
	for i := uint32(0); i < body.ChildCount(); i++ {
		child := body.Child(int(i))
		switch child.Type() {
		case "method_definition":
			def.Members = append(def.Members, e.methodMember(child, def))
		case "field_definition", "public_field_definition":
			def.Members = append(def.Members, e.fieldMember(child, def))
		case "abstract_method_signature", "method_signature", "index_signature":
			m := Member{Node: child, Static: hasStaticModifier(child)}
			if n := memberNameNode(child); n != nil {
				m.Name, m.Computed = propertyName(n, e.source)
			}
			def.Members = append(def.Members, m)
		case "class_static_block":
			def.Members = append(def.Members, Member{Node: child})
		case "decorator":
			def.Decorators = append(def.Decorators, child)
		}
	}
}

func (e *Extractor) methodMember(node *sitter.Node, def *Definition) Member {
	m := Member{
		Node:   node,
		Static: hasStaticModifier(node),
		Value:  node.ChildByFieldName("body"),
	}
	for i := uint32(0); i < node.ChildCount(); i++ {
		if c := node.Child(int(i)); c.Type() == "decorator" {
			def.Decorators = append(def.Decorators, c)
		}
	}
	if n := memberNameNode(node); n != nil {
		m.Name, m.Computed = propertyName(n, e.source)
	}
	return m
}

func (e *Extractor) fieldMember(node *sitter.Node, def *Definition) Member {
	m := Member{
		Node:   node,
		Static: hasStaticModifier(node),
		Value:  node.ChildByFieldName("value"),
	}
	for i := uint32(0); i < node.ChildCount(); i++ {
		if c := node.Child(int(i)); c.Type() == "decorator" {
			def.Decorators = append(def.Decorators, c)
		}
	}
	if n := memberNameNode(node); n != nil {
		m.Name, m.Computed = propertyName(n, e.source)
	}
	return m
}

// factoryDefinition builds a candidate from a createReactClass-style call.
// The call must have exactly one argument and it must be an object literal;
// anything else is skipped, not reported.
func (e *Extractor) factoryDefinition(call *sitter.Node) *Definition {
	callee := call.ChildByFieldName("function")
	if callee == nil || !e.scope.isFactoryCallee(callee) {
		return nil
	}
	args := call.ChildByFieldName("arguments")
	if args == nil {
		return nil
	}
	var obj *sitter.Node
	for i := uint32(0); i < args.NamedChildCount(); i++ {
		arg := args.NamedChild(int(i))
		if arg.Type() == "comment" {
			continue
		}
		if obj != nil {
			return nil
		}
		obj = arg
	}
	if obj == nil || obj.Type() != "object" {
		return nil
	}
	def := &Definition{
		Name: e.inferredName(call),
		Form: FormFactory,
		Node: call,
	}
	e.objectMembers(obj, def)
	return def
}

func (e *Extractor) objectMembers(obj *sitter.Node, def *Definition) {
	for i := uint32(0); i < obj.NamedChildCount(); i++ {
		child := obj.NamedChild(int(i))
		switch child.Type() {
		case "pair":
			m := Member{Node: child, Value: child.ChildByFieldName("value")}
			if k := child.ChildByFieldName("key"); k != nil {
				m.Name, m.Computed = propertyName(k, e.source)
			}
			def.Members = append(def.Members, m)
		case "method_definition":
			def.Members = append(def.Members, e.methodMember(child, def))
		case "shorthand_property_identifier":
			// { render } pulls the value from elsewhere; the body is opaque
			def.Members = append(def.Members, Member{Node: child, Name: jsast.Text(child, e.source)})
		case "spread_element":
			def.Members = append(def.Members, Member{Node: child, Spread: true})
		}
	}
}

// inferredName names anonymous definitions after the variable or property
// they are assigned to, looking through a single arrow-function wrapper to
// admit higher-order factory patterns.
func (e *Extractor) inferredName(node *sitter.Node) string {
	p := node.Parent()
	for p != nil && p.Type() == "parenthesized_expression" {
		p = p.Parent()
	}
	if p != nil && p.Type() == "arrow_function" {
		p = p.Parent()
	}
	if p == nil {
		return ""
	}
	switch p.Type() {
	case "variable_declarator":
		if n := p.ChildByFieldName("name"); n != nil && n.Type() == "identifier" {
			return jsast.Text(n, e.source)
		}
	case "assignment_expression":
		if left := p.ChildByFieldName("left"); left != nil {
			if t := left.Type(); t == "identifier" || t == "member_expression" {
				return jsast.Text(left, e.source)
			}
		}
	case "pair":
		if k := p.ChildByFieldName("key"); k != nil {
			name, _ := propertyName(k, e.source)
			return name
		}
	}
	return ""
}

// baseExpression returns the extends expression of a class node, handling
// both the javascript grammar (expression directly under class_heritage) and
// the typescript grammars (extends_clause with a value field).
func baseExpression(class *sitter.Node) *sitter.Node {
	var heritage *sitter.Node
	for i := uint32(0); i < class.ChildCount(); i++ {
		if c := class.Child(int(i)); c.Type() == "class_heritage" {
			heritage = c
			break
		}
	}
	if heritage == nil {
		return nil
	}
	for i := uint32(0); i < heritage.NamedChildCount(); i++ {
		c := heritage.NamedChild(int(i))
		switch c.Type() {
		case "extends_clause":
			if v := c.ChildByFieldName("value"); v != nil {
				return v
			}
			return c.NamedChild(0)
		case "implements_clause", "comment":
			continue
		default:
			return c
		}
	}
	return nil
}

func memberNameNode(node *sitter.Node) *sitter.Node {
	if n := node.ChildByFieldName("name"); n != nil {
		return n
	}
	return node.ChildByFieldName("property")
}

func propertyName(node *sitter.Node, source []byte) (name string, computed bool) {
	switch node.Type() {
	case "property_identifier", "shorthand_property_identifier", "private_property_identifier", "identifier", "number":
		return jsast.Text(node, source), false
	case "string":
		return unquote(jsast.Text(node, source)), false
	}
	return "", true
}

func hasStaticModifier(node *sitter.Node) bool {
	for i := uint32(0); i < node.ChildCount(); i++ {
		if node.Child(int(i)).Type() == "static" {
			return true
		}
	}
	return false
}

func unquote(s string) string {
	return strings.Trim(s, "\"'`")
}
