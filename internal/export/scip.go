package export

import (
	"fmt"
	"path/filepath"
	"strings"

	scippb "github.com/sourcegraph/scip/bindings/go/scip"
	"google.golang.org/protobuf/proto"

	"github.com/pallendes/eslint-plugin-react/internal/component"
	"github.com/pallendes/eslint-plugin-react/internal/output"
	"github.com/pallendes/eslint-plugin-react/internal/stateless"
	"github.com/pallendes/eslint-plugin-react/internal/version"
)

const scipScheme = "scip-reactlint"

// encodeSCIP builds a SCIP index over the run: one document per file, one
// definition occurrence per component, with the verdict and its reasons
// in the symbol documentation.
func encodeSCIP(res *output.RunResult, opts Options) ([]byte, error) {
	root := res.Root
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}

	idx := &scippb.Index{
		Metadata: &scippb.Metadata{
			ToolInfo: &scippb.ToolInfo{
				Name:    "reactlint",
				Version: version.Version,
			},
			ProjectRoot:          "file://" + filepath.ToSlash(root),
			TextDocumentEncoding: scippb.TextEncoding_UTF8,
		},
	}

	for _, f := range res.Files {
		doc := &scippb.Document{
			RelativePath: f.Path,
			Language:     scipLanguage(f.Language),
		}
		for _, c := range f.Components {
			symbol := formatSymbol(opts, f.Path, &c)
			doc.Symbols = append(doc.Symbols, &scippb.SymbolInformation{
				Symbol:        symbol,
				DisplayName:   c.Name,
				Kind:          symbolKind(c.Form),
				Documentation: symbolDocumentation(&c),
			})
			doc.Occurrences = append(doc.Occurrences, &scippb.Occurrence{
				Range:       occurrenceRange(&c),
				Symbol:      symbol,
				SymbolRoles: int32(scippb.SymbolRole_Definition),
			})
		}
		idx.Documents = append(idx.Documents, doc)
	}

	return proto.Marshal(idx)
}

// formatSymbol renders the SCIP symbol for one component:
//
//	scip-reactlint npm <package> <version> `src/header.jsx`/Header#
//
// Class components take the type suffix, factory products the method one.
func formatSymbol(opts Options, path string, c *stateless.ComponentAnalysis) string {
	pkg := opts.PackageName
	if pkg == "" {
		pkg = "."
	}
	ver := opts.PackageVersion
	if ver == "" {
		ver = "."
	}

	suffix := "#"
	if c.Form == component.FormFactory {
		suffix = "()."
	}
	return fmt.Sprintf("%s npm %s %s %s/%s%s",
		scipScheme, pkg, ver, escapeDescriptor(path), escapeDescriptor(c.Name), suffix)
}

// escapeDescriptor backtick-quotes descriptor names that fall outside the
// plain identifier grammar, such as file paths and "(anonymous)".
func escapeDescriptor(name string) string {
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '_', r == '+', r == '$', r == '-':
		default:
			return "`" + name + "`"
		}
	}
	return name
}

func symbolKind(form component.Form) scippb.SymbolInformation_Kind {
	if form == component.FormFactory {
		return scippb.SymbolInformation_Function
	}
	return scippb.SymbolInformation_Class
}

// symbolDocumentation renders the verdict and its reasons as the symbol's
// documentation block.
func symbolDocumentation(c *stateless.ComponentAnalysis) []string {
	docs := []string{"verdict: " + string(c.Verdict)}
	for _, r := range c.Reasons {
		line := "reason: " + string(r.Code)
		if r.Detail != "" {
			line += " " + r.Detail
		}
		docs = append(docs, fmt.Sprintf("%s (line %d)", line, r.Line))
	}
	docs = append(docs, c.Notes...)
	return docs
}

// occurrenceRange converts the one-based definition position to SCIP's
// zero-based [line, start, end] form covering the component name.
func occurrenceRange(c *stateless.ComponentAnalysis) []int32 {
	line := int32(c.Line - 1)
	col := int32(c.Column - 1)
	if line < 0 {
		line = 0
	}
	if col < 0 {
		col = 0
	}
	return []int32{line, col, col + int32(len(c.Name))}
}

// scipLanguage maps the parser's language names onto SCIP's registry.
func scipLanguage(language string) string {
	switch strings.ToLower(language) {
	case "javascript":
		return scippb.Language_JavaScript.String()
	case "typescript":
		return scippb.Language_TypeScript.String()
	case "tsx":
		return scippb.Language_TypeScriptReact.String()
	}
	return language
}
