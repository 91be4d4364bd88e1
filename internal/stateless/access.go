//go:build cgo

package stateless

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/pallendes/eslint-plugin-react/internal/jsast"
)

// rootCapabilities maps instance namespace roots to the capability they
// imply. The state mutation APIs count as state usage.
var rootCapabilities = map[string]Capability{
	"props":        CapReadsProps,
	"context":      CapReadsContext,
	"state":        CapUsesState,
	"refs":         CapUsesRefs,
	"setState":     CapUsesState,
	"replaceState": CapUsesState,
}

// scanRender collects every access to the component instance inside the
// render body: direct member access, string-keyed and computed subscripts,
// and destructuring of this at any depth. Accesses that do not match a
// known namespace root degrade to CapUnknownMember. this inside nested
// functions is attributed to the instance too; that overcounts plain
// function expressions, which errs toward disqualification.
func scanRender(body *sitter.Node, source []byte) []Finding {
	var findings []Finding
	for _, self := range jsast.FindNodes(body, []string{"this"}) {
		findings = append(findings, classifySelf(self, source)...)
	}
	return findings
}

func classifySelf(self *sitter.Node, source []byte) []Finding {
	parent := self.Parent()
	if parent == nil {
		return []Finding{unknownFinding(self, source)}
	}
	switch parent.Type() {
	case "member_expression":
		obj := parent.ChildByFieldName("object")
		if obj == nil || !obj.Equal(self) {
			return []Finding{unknownFinding(self, source)}
		}
		prop := parent.ChildByFieldName("property")
		if prop == nil || prop.Type() != "property_identifier" {
			return []Finding{unknownFinding(parent, source)}
		}
		return []Finding{rootFinding(jsast.Text(prop, source), parent, source)}
	case "subscript_expression":
		obj := parent.ChildByFieldName("object")
		if obj == nil || !obj.Equal(self) {
			return []Finding{unknownFinding(self, source)}
		}
		index := parent.ChildByFieldName("index")
		if index == nil || index.Type() != "string" {
			// a computed key may reach anything on the instance
			return []Finding{unknownFinding(parent, source)}
		}
		return []Finding{rootFinding(unquote(jsast.Text(index, source)), parent, source)}
	case "variable_declarator":
		if name := parent.ChildByFieldName("name"); name != nil && name.Type() == "object_pattern" {
			return patternFindings(name, source)
		}
		return []Finding{unknownFinding(self, source)}
	case "assignment_expression":
		left := parent.ChildByFieldName("left")
		right := parent.ChildByFieldName("right")
		if right != nil && right.Equal(self) && left != nil && left.Type() == "object_pattern" {
			return patternFindings(left, source)
		}
		return []Finding{unknownFinding(self, source)}
	}
	// bare this escaping anywhere else is unanalyzable
	return []Finding{unknownFinding(self, source)}
}

// patternFindings classifies the top-level keys of a destructuring pattern
// applied to this. Nested patterns stay within their root's namespace, so
// { props: { foo } } attributes exactly like this.props.foo would.
func patternFindings(pattern *sitter.Node, source []byte) []Finding {
	var findings []Finding
	for i := uint32(0); i < pattern.NamedChildCount(); i++ {
		child := pattern.NamedChild(int(i))
		switch child.Type() {
		case "shorthand_property_identifier_pattern":
			findings = append(findings, rootFinding(jsast.Text(child, source), child, source))
		case "object_assignment_pattern":
			// { props = {} } = this
			if left := child.ChildByFieldName("left"); left != nil && left.Type() == "shorthand_property_identifier_pattern" {
				findings = append(findings, rootFinding(jsast.Text(left, source), left, source))
			} else {
				findings = append(findings, unknownFinding(child, source))
			}
		case "pair_pattern":
			key := child.ChildByFieldName("key")
			if key == nil {
				findings = append(findings, unknownFinding(child, source))
				continue
			}
			switch key.Type() {
			case "property_identifier":
				findings = append(findings, rootFinding(jsast.Text(key, source), key, source))
			case "string":
				findings = append(findings, rootFinding(unquote(jsast.Text(key, source)), key, source))
			default:
				findings = append(findings, unknownFinding(child, source))
			}
		case "rest_pattern":
			// ...rest grabs every remaining member
			findings = append(findings, unknownFinding(child, source))
		case "comment":
		default:
			findings = append(findings, unknownFinding(child, source))
		}
	}
	return findings
}

func rootFinding(root string, node *sitter.Node, source []byte) Finding {
	capability, ok := rootCapabilities[root]
	if !ok {
		capability = CapUnknownMember
	}
	return Finding{
		Capability: capability,
		Text:       snippet(node, source),
		Line:       jsast.Line(node),
		Column:     jsast.Column(node),
	}
}

func unknownFinding(node *sitter.Node, source []byte) Finding {
	return Finding{
		Capability: CapUnknownMember,
		Text:       snippet(node, source),
		Line:       jsast.Line(node),
		Column:     jsast.Column(node),
	}
}

// nestedFunctionTypes are bodies whose return statements do not return from
// render itself.
var nestedFunctionTypes = map[string]bool{
	"function":                       true,
	"function_expression":            true,
	"function_declaration":           true,
	"generator_function":             true,
	"generator_function_declaration": true,
	"arrow_function":                 true,
	"method_definition":              true,
	"class":                          true,
	"class_declaration":              true,
}

// detectNullReturn reports whether render itself returns an explicit null.
// For expression-bodied arrow renders the body is the return value.
func detectNullReturn(body *sitter.Node) bool {
	if body == nil {
		return false
	}
	if body.Type() != "statement_block" {
		return isNullExpression(body)
	}
	return returnsNull(body)
}

func returnsNull(node *sitter.Node) bool {
	for i := uint32(0); i < node.ChildCount(); i++ {
		child := node.Child(int(i))
		if nestedFunctionTypes[child.Type()] {
			continue
		}
		if child.Type() == "return_statement" {
			for j := uint32(0); j < child.NamedChildCount(); j++ {
				if isNullExpression(child.NamedChild(int(j))) {
					return true
				}
			}
			continue
		}
		if returnsNull(child) {
			return true
		}
	}
	return false
}

func isNullExpression(node *sitter.Node) bool {
	for node != nil && node.Type() == "parenthesized_expression" {
		node = firstNamedNonComment(node)
	}
	return node != nil && node.Type() == "null"
}

func firstNamedNonComment(node *sitter.Node) *sitter.Node {
	for i := uint32(0); i < node.NamedChildCount(); i++ {
		if c := node.NamedChild(int(i)); c.Type() != "comment" {
			return c
		}
	}
	return nil
}

func snippet(node *sitter.Node, source []byte) string {
	text := jsast.Text(node, source)
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[:i]
	}
	if len(text) > 60 {
		text = text[:60]
	}
	return text
}

func unquote(s string) string {
	return strings.Trim(s, "\"'`")
}
