//go:build cgo

package component

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/pallendes/eslint-plugin-react/internal/jsast"
)

const (
	reactModule   = "react"
	factoryModule = "create-react-class"

	genericBaseName    = "Component"
	restrictedBaseName = "PureComponent"
)

// moduleScope indexes the top-level bindings that base-type and
// factory-callee resolution may consult: react imports and requires,
// create-react-class imports and requires, and plain declarator initializers
// for the single indirection the resolver follows. The literal names React
// and createReactClass are always recognized so that files relying on
// globals still resolve.
type moduleScope struct {
	reactNS    map[string]bool         // identifiers bound to the react module object
	reactNamed map[string]string       // local identifier -> exported react name
	factories  map[string]bool         // identifiers naming the factory function
	bindings   map[string]*sitter.Node // other top-level declarator initializers
	source     []byte
}

func newModuleScope(root *sitter.Node, source []byte) *moduleScope {
	s := &moduleScope{
		reactNS:    map[string]bool{"React": true},
		reactNamed: map[string]string{},
		factories:  map[string]bool{"createReactClass": true},
		bindings:   map[string]*sitter.Node{},
		source:     source,
	}
	for i := uint32(0); i < root.NamedChildCount(); i++ {
		child := root.NamedChild(int(i))
		switch child.Type() {
		case "import_statement":
			s.indexImport(child)
		case "lexical_declaration", "variable_declaration":
			s.indexDeclaration(child)
		case "export_statement":
			if d := child.ChildByFieldName("declaration"); d != nil {
				if t := d.Type(); t == "lexical_declaration" || t == "variable_declaration" {
					s.indexDeclaration(d)
				}
			}
		}
	}
	return s
}

// ResolveBase resolves a definition's base-type reference. Factory
// definitions have no base and resolve to BaseNone. Any reference that
// cannot be traced through at most one top-level binding to the react
// module's component bases resolves to BaseUnknown.
func (e *Extractor) ResolveBase(def *Definition) BaseKind {
	if def.Form == FormFactory {
		return BaseNone
	}
	if def.BaseExpr == nil {
		return BaseUnknown
	}
	return e.scope.resolve(def.BaseExpr, 0)
}

func (s *moduleScope) resolve(expr *sitter.Node, depth int) BaseKind {
	for expr != nil && expr.Type() == "parenthesized_expression" {
		expr = firstNamedNonComment(expr)
	}
	if expr == nil {
		return BaseUnknown
	}
	switch expr.Type() {
	case "member_expression":
		obj := expr.ChildByFieldName("object")
		prop := expr.ChildByFieldName("property")
		if obj == nil || prop == nil || obj.Type() != "identifier" || prop.Type() != "property_identifier" {
			return BaseUnknown
		}
		if !s.reactNS[jsast.Text(obj, s.source)] {
			return BaseUnknown
		}
		return baseKindForName(jsast.Text(prop, s.source))
	case "identifier":
		name := jsast.Text(expr, s.source)
		if exported, ok := s.reactNamed[name]; ok {
			return baseKindForName(exported)
		}
		if depth < 1 {
			if init, ok := s.bindings[name]; ok {
				return s.resolve(init, depth+1)
			}
		}
	}
	return BaseUnknown
}

func baseKindForName(name string) BaseKind {
	switch name {
	case genericBaseName:
		return BaseGeneric
	case restrictedBaseName:
		return BaseRestricted
	}
	return BaseUnknown
}

func (s *moduleScope) isFactoryCallee(callee *sitter.Node) bool {
	switch callee.Type() {
	case "identifier":
		return s.factories[jsast.Text(callee, s.source)]
	case "member_expression":
		obj := callee.ChildByFieldName("object")
		prop := callee.ChildByFieldName("property")
		if obj == nil || prop == nil || obj.Type() != "identifier" {
			return false
		}
		return jsast.Text(prop, s.source) == "createClass" && s.reactNS[jsast.Text(obj, s.source)]
	}
	return false
}

func (s *moduleScope) indexImport(stmt *sitter.Node) {
	src := stmt.ChildByFieldName("source")
	if src == nil {
		return
	}
	module := unquote(jsast.Text(src, s.source))
	if module != reactModule && module != factoryModule {
		return
	}
	for i := uint32(0); i < stmt.NamedChildCount(); i++ {
		clause := stmt.NamedChild(int(i))
		if clause.Type() != "import_clause" {
			continue
		}
		for j := uint32(0); j < clause.NamedChildCount(); j++ {
			s.indexImportBinding(clause.NamedChild(int(j)), module)
		}
	}
}

func (s *moduleScope) indexImportBinding(node *sitter.Node, module string) {
	switch node.Type() {
	case "identifier":
		name := jsast.Text(node, s.source)
		if module == reactModule {
			s.reactNS[name] = true
		} else {
			s.factories[name] = true
		}
	case "namespace_import":
		for i := uint32(0); i < node.NamedChildCount(); i++ {
			c := node.NamedChild(int(i))
			if c.Type() != "identifier" {
				continue
			}
			if module == reactModule {
				s.reactNS[jsast.Text(c, s.source)] = true
			} else {
				s.factories[jsast.Text(c, s.source)] = true
			}
		}
	case "named_imports":
		// create-react-class has only a default export
		if module != reactModule {
			return
		}
		for i := uint32(0); i < node.NamedChildCount(); i++ {
			spec := node.NamedChild(int(i))
			if spec.Type() != "import_specifier" {
				continue
			}
			nameNode := spec.ChildByFieldName("name")
			if nameNode == nil {
				continue
			}
			exported := jsast.Text(nameNode, s.source)
			local := exported
			if alias := spec.ChildByFieldName("alias"); alias != nil {
				local = jsast.Text(alias, s.source)
			}
			s.reactNamed[local] = exported
		}
	}
}

func (s *moduleScope) indexDeclaration(decl *sitter.Node) {
	for i := uint32(0); i < decl.NamedChildCount(); i++ {
		d := decl.NamedChild(int(i))
		if d.Type() != "variable_declarator" {
			continue
		}
		name := d.ChildByFieldName("name")
		value := d.ChildByFieldName("value")
		if name == nil || value == nil {
			continue
		}
		switch name.Type() {
		case "identifier":
			ident := jsast.Text(name, s.source)
			switch requiredModule(value, s.source) {
			case reactModule:
				s.reactNS[ident] = true
			case factoryModule:
				s.factories[ident] = true
			default:
				s.bindings[ident] = value
			}
		case "object_pattern":
			// const { Component, PureComponent: PC } = require('react')
			if requiredModule(value, s.source) != reactModule {
				continue
			}
			s.indexRequirePattern(name)
		}
	}
}

func (s *moduleScope) indexRequirePattern(pattern *sitter.Node) {
	for i := uint32(0); i < pattern.NamedChildCount(); i++ {
		p := pattern.NamedChild(int(i))
		switch p.Type() {
		case "shorthand_property_identifier_pattern":
			name := jsast.Text(p, s.source)
			s.reactNamed[name] = name
		case "pair_pattern":
			key := p.ChildByFieldName("key")
			value := p.ChildByFieldName("value")
			if key == nil || value == nil || value.Type() != "identifier" {
				continue
			}
			exported, computed := propertyName(key, s.source)
			if computed {
				continue
			}
			s.reactNamed[jsast.Text(value, s.source)] = exported
		}
	}
}

// requiredModule returns the module name when expr is require('<module>').
func requiredModule(expr *sitter.Node, source []byte) string {
	if expr.Type() != "call_expression" {
		return ""
	}
	fn := expr.ChildByFieldName("function")
	if fn == nil || fn.Type() != "identifier" || jsast.Text(fn, source) != "require" {
		return ""
	}
	args := expr.ChildByFieldName("arguments")
	if args == nil || args.NamedChildCount() != 1 {
		return ""
	}
	arg := args.NamedChild(0)
	if arg.Type() != "string" {
		return ""
	}
	return unquote(jsast.Text(arg, source))
}

func firstNamedNonComment(node *sitter.Node) *sitter.Node {
	for i := uint32(0); i < node.NamedChildCount(); i++ {
		if c := node.NamedChild(int(i)); c.Type() != "comment" {
			return c
		}
	}
	return nil
}
