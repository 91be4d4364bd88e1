//go:build cgo

package stateless

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/pallendes/eslint-plugin-react/internal/component"
	linterrors "github.com/pallendes/eslint-plugin-react/internal/errors"
	"github.com/pallendes/eslint-plugin-react/internal/jsast"
)

// Analyzer classifies the component definitions of JavaScript and
// TypeScript modules. It owns a parser and is not safe for concurrent use;
// create one per worker.
type Analyzer struct {
	parser *jsast.Parser
	opts   Options
}

// NewAnalyzer creates an analyzer. Returns nil when the tree-sitter backend
// is not compiled in.
func NewAnalyzer(opts Options) *Analyzer {
	return &Analyzer{parser: jsast.NewParser(), opts: opts}
}

// SetOptions replaces the classification options for subsequent calls.
// Directory overrides use this to flip options per file without paying
// for a new parser.
func (a *Analyzer) SetOptions(opts Options) {
	a.opts = opts
}

// IsAvailable reports whether the tree-sitter backend is compiled in.
func IsAvailable() bool {
	return true
}

// AnalyzeFile reads and classifies a single module.
func (a *Analyzer) AnalyzeFile(ctx context.Context, path string) (*FileAnalysis, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return a.AnalyzeSource(ctx, path, source)
}

// AnalyzeSource classifies every component definition in one module. The
// path selects the grammar and labels the result; it is not read.
func (a *Analyzer) AnalyzeSource(ctx context.Context, path string, source []byte) (*FileAnalysis, error) {
	ext := filepath.Ext(path)
	lang, ok := jsast.LanguageFromExtension(ext)
	if !ok {
		return nil, linterrors.NewLintError(linterrors.UnsupportedExtension,
			fmt.Sprintf("unsupported file extension %q", ext), nil, nil)
	}
	root, err := a.parser.Parse(ctx, source, lang)
	if err != nil {
		return nil, linterrors.NewLintError(linterrors.ParseFailed,
			fmt.Sprintf("parse %s", path), err, nil)
	}

	analysis := &FileAnalysis{Path: path, Language: string(lang)}
	extractor := component.NewExtractor(root, source)
	for def := range extractor.Definitions() {
		if ca, ok := a.analyzeDefinition(extractor, def, source); ok {
			analysis.Components = append(analysis.Components, ca)
		}
	}
	return analysis, nil
}

// analyzeDefinition classifies one definition. Definitions without an
// instance render member are not components this analysis can reason about
// and are dropped, not reported.
func (a *Analyzer) analyzeDefinition(e *component.Extractor, def *component.Definition, source []byte) (ComponentAnalysis, bool) {
	factory := def.Form == component.FormFactory

	var (
		members      []MemberInfo
		lifecycle    []MemberInfo
		others       []MemberInfo
		childContext *MemberInfo
		badCtor      *MemberInfo
		renderInfo   *MemberInfo
		renderBody   *sitter.Node
	)
	for _, m := range def.Members {
		info := MemberInfo{Name: m.Name, Static: m.Static, Line: jsast.Line(m.Node)}
		switch {
		case m.Computed || m.Spread || m.Name == "":
			info.Kind = MemberOther
		case !factory && isTypedPropsDeclaration(m):
			info.Kind = MemberMetadata
		default:
			info.Kind = classifyMemberName(m.Name, m.Static, factory)
		}
		members = append(members, info)

		switch info.Kind {
		case MemberRender:
			r := info
			renderInfo = &r
			renderBody = functionBody(m.Value)
		case MemberLifecycle:
			lifecycle = append(lifecycle, info)
		case MemberConstructor:
			if !trivialConstructor(m.Value) {
				c := info
				badCtor = &c
			}
		case MemberMetadata:
			if m.Name == childContextName {
				c := info
				childContext = &c
			}
		case MemberOther:
			others = append(others, info)
		}
	}

	if renderInfo == nil {
		return ComponentAnalysis{}, false
	}

	var findings []Finding
	returnsNull := false
	if renderBody == nil {
		// the render value is defined elsewhere and cannot be inspected
		findings = []Finding{{
			Capability: CapUnknownMember,
			Text:       "render",
			Line:       renderInfo.Line,
		}}
	} else {
		findings = scanRender(renderBody, source)
		returnsNull = detectNullReturn(renderBody)
	}

	var decoratorLines []int
	for _, d := range def.Decorators {
		decoratorLines = append(decoratorLines, jsast.Line(d))
	}

	base := e.ResolveBase(def)
	verdict, reasons := decideVerdict(ruleInput{
		base:         base,
		line:         jsast.Line(def.Node),
		decorators:   decoratorLines,
		childContext: childContext,
		lifecycle:    lifecycle,
		others:       others,
		badCtor:      badCtor,
		findings:     findings,
	}, a.opts)

	name := def.Name
	if name == "" {
		name = "(anonymous)"
	}
	ca := ComponentAnalysis{
		Name:        name,
		Form:        def.Form,
		Base:        base,
		Line:        jsast.Line(def.Node),
		Column:      jsast.Column(def.Node),
		EndLine:     jsast.EndLine(def.Node),
		Verdict:     verdict,
		Reasons:     reasons,
		Findings:    findings,
		Members:     members,
		ReturnsNull: returnsNull,
	}
	if note := nullReturnNote(a.opts.ReactVersion, returnsNull); note != "" {
		ca.Notes = append(ca.Notes, note)
	}
	return ca, true
}

// isTypedPropsDeclaration matches the typescript idiom of declaring the
// props shape as an annotated field without a value. That is contract
// metadata, not instance behavior.
func isTypedPropsDeclaration(m component.Member) bool {
	if m.Name != "props" || m.Static || m.Value != nil || m.Node == nil {
		return false
	}
	return m.Node.ChildByFieldName("type") != nil
}

// functionBody normalizes a member value to the node scanned as the render
// body: the statement block of a method, the body of a function or arrow
// initializer (which may be a bare expression), or nil when opaque.
func functionBody(value *sitter.Node) *sitter.Node {
	if value == nil {
		return nil
	}
	switch value.Type() {
	case "statement_block":
		return value
	case "function", "function_expression", "arrow_function", "generator_function":
		return value.ChildByFieldName("body")
	case "parenthesized_expression":
		return functionBody(firstNamedNonComment(value))
	}
	return nil
}

// trivialConstructor accepts an empty body or a single super call whose
// arguments are plain identifiers or literals. Anything else means the
// constructor computes, which the function form cannot reproduce.
func trivialConstructor(body *sitter.Node) bool {
	if body == nil || body.Type() != "statement_block" {
		return false
	}
	var stmts []*sitter.Node
	for i := uint32(0); i < body.NamedChildCount(); i++ {
		if c := body.NamedChild(int(i)); c.Type() != "comment" {
			stmts = append(stmts, c)
		}
	}
	if len(stmts) == 0 {
		return true
	}
	if len(stmts) != 1 || stmts[0].Type() != "expression_statement" {
		return false
	}
	call := firstNamedNonComment(stmts[0])
	if call == nil || call.Type() != "call_expression" {
		return false
	}
	fn := call.ChildByFieldName("function")
	if fn == nil || fn.Type() != "super" {
		return false
	}
	args := call.ChildByFieldName("arguments")
	if args == nil {
		return false
	}
	for i := uint32(0); i < args.NamedChildCount(); i++ {
		switch args.NamedChild(int(i)).Type() {
		case "identifier", "string", "number", "true", "false", "null", "undefined", "comment":
		default:
			return false
		}
	}
	return true
}
