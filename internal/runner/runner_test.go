//go:build cgo

package runner

import (
	"context"
	"reflect"
	"testing"

	"go.uber.org/goleak"

	"github.com/pallendes/eslint-plugin-react/internal/config"
	"github.com/pallendes/eslint-plugin-react/internal/logging"
	"github.com/pallendes/eslint-plugin-react/internal/output"
	"github.com/pallendes/eslint-plugin-react/internal/stateless"
	"github.com/pallendes/eslint-plugin-react/internal/storage"
	"github.com/pallendes/eslint-plugin-react/internal/testutil"
)

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Run.Workers = 2
	return cfg
}

func TestRun(t *testing.T) {
	if !stateless.IsAvailable() {
		t.Skip("tree-sitter not available")
	}
	defer goleak.VerifyNone(t)

	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"src/header.jsx": `
class Header extends React.Component {
  render() {
    return <h1>{this.props.title}</h1>;
  }
}
`,
		"src/counter.jsx": `
class Counter extends React.Component {
  render() {
    return <span>{this.state.count}</span>;
  }
}
`,
	})

	r := New(root, testConfig(), nil, logging.Nop())
	res, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if res.RunID == "" {
		t.Error("run ID should be set")
	}
	if res.Root != root {
		t.Errorf("root = %q, want %q", res.Root, root)
	}

	if res.Summary.FilesScanned != 2 {
		t.Errorf("filesScanned = %d, want 2", res.Summary.FilesScanned)
	}
	if res.Summary.Components != 2 {
		t.Errorf("components = %d, want 2", res.Summary.Components)
	}
	if res.Summary.PureCandidates != 1 || res.Summary.Disqualified != 1 {
		t.Errorf("verdicts = %d pure / %d disqualified, want 1 / 1",
			res.Summary.PureCandidates, res.Summary.Disqualified)
	}

	if len(res.Diagnostics) != 1 {
		t.Fatalf("diagnostics = %d, want 1 (only the pure candidate)", len(res.Diagnostics))
	}
	d := res.Diagnostics[0]
	if d.Component != "Header" || d.Path != "src/header.jsx" {
		t.Errorf("diagnostic = %s in %s, want Header in src/header.jsx", d.Component, d.Path)
	}
	if d.Message != stateless.Message {
		t.Errorf("diagnostic message = %q", d.Message)
	}

	// Files come back sorted by path
	if len(res.Files) != 2 || res.Files[0].Path != "src/counter.jsx" || res.Files[1].Path != "src/header.jsx" {
		t.Errorf("files out of order: %v", res.Files)
	}
}

func TestRunFilesMissingFile(t *testing.T) {
	if !stateless.IsAvailable() {
		t.Skip("tree-sitter not available")
	}

	root := t.TempDir()

	r := New(root, testConfig(), nil, logging.Nop())
	res, err := r.RunFiles(context.Background(), []string{"src/missing.jsx"})
	if err != nil {
		t.Fatalf("RunFiles failed: %v", err)
	}

	if res.Summary.FilesFailed != 1 {
		t.Errorf("filesFailed = %d, want 1", res.Summary.FilesFailed)
	}
	if len(res.Warnings) != 1 {
		t.Fatalf("warnings = %d, want 1", len(res.Warnings))
	}
	w := res.Warnings[0]
	if w.Path != "src/missing.jsx" || w.Code != "PARSE_FAILED" {
		t.Errorf("warning = %+v", w)
	}
}

func TestRunWithCache(t *testing.T) {
	if !stateless.IsAvailable() {
		t.Skip("tree-sitter not available")
	}

	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"src/a.jsx": `
class A extends React.Component {
  render() { return <div>{this.props.x}</div>; }
}
`,
		"src/b.jsx": `
class B extends React.Component {
  render() { return <div>{this.props.y}</div>; }
}
`,
	})

	db, err := storage.Open(root, logging.Nop())
	if err != nil {
		t.Fatalf("failed to open cache: %v", err)
	}
	defer func() { _ = db.Close() }()

	r := New(root, testConfig(), storage.NewCache(db), logging.Nop())

	first, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("first Run failed: %v", err)
	}
	if first.Summary.FilesFromCache != 0 {
		t.Errorf("first run filesFromCache = %d, want 0", first.Summary.FilesFromCache)
	}

	second, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("second Run failed: %v", err)
	}
	if second.Summary.FilesFromCache != 2 {
		t.Errorf("second run filesFromCache = %d, want 2", second.Summary.FilesFromCache)
	}

	// Cached and fresh runs agree on everything but run identity
	if !reflect.DeepEqual(first.Diagnostics, second.Diagnostics) {
		t.Errorf("diagnostics changed across cached run:\n%+v\nvs\n%+v",
			first.Diagnostics, second.Diagnostics)
	}

	// Editing a file invalidates only its entry
	writeTree(t, root, map[string]string{
		"src/a.jsx": `
class A extends React.Component {
  render() { return <div>{this.state.x}</div>; }
}
`,
	})

	third, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("third Run failed: %v", err)
	}
	if third.Summary.FilesFromCache != 1 {
		t.Errorf("third run filesFromCache = %d, want 1", third.Summary.FilesFromCache)
	}
	if third.Summary.PureCandidates != 1 || third.Summary.Disqualified != 1 {
		t.Errorf("third run verdicts = %d pure / %d disqualified, want 1 / 1",
			third.Summary.PureCandidates, third.Summary.Disqualified)
	}
}

func TestRunFixtureProject(t *testing.T) {
	if !stateless.IsAvailable() {
		t.Skip("tree-sitter not available")
	}

	fix := testutil.Load(t, "project")
	res, err := New(fix.Root, testConfig(), nil, logging.Nop()).Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if res.Summary.FilesScanned != 4 {
		t.Errorf("filesScanned = %d, want 4 (node_modules pruned)", res.Summary.FilesScanned)
	}
	if res.Summary.PureCandidates != 2 || res.Summary.Disqualified != 2 {
		t.Errorf("verdicts = %d pure / %d disqualified, want 2 / 2",
			res.Summary.PureCandidates, res.Summary.Disqualified)
	}

	var diags []string
	for _, d := range res.Diagnostics {
		diags = append(diags, d.Path+" "+d.Component)
	}
	want := []string{"src/header.jsx Header", "src/legacy.js Greeting"}
	if !reflect.DeepEqual(diags, want) {
		t.Errorf("diagnostics = %v, want %v", diags, want)
	}

	languages := map[string]string{}
	for _, f := range res.Files {
		languages[f.Path] = f.Language
	}
	if languages["src/counter.jsx"] != "javascript" || languages["src/widget.tsx"] != "tsx" {
		t.Errorf("languages = %v", languages)
	}
}

// TestRunGolden pins the stable portion of a fixture run byte for byte.
// Refresh with: go test ./internal/runner -run TestRunGolden -update
func TestRunGolden(t *testing.T) {
	if !stateless.IsAvailable() {
		t.Skip("tree-sitter not available")
	}

	fix := testutil.Load(t, "project")
	res, err := New(fix.Root, testConfig(), nil, logging.Nop()).Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	stable := struct {
		Diagnostics []output.Diagnostic `json:"diagnostics"`
		Summary     output.RunSummary   `json:"summary"`
	}{res.Diagnostics, res.Summary}

	data, err := output.DeterministicEncode(stable)
	if err != nil {
		t.Fatalf("DeterministicEncode failed: %v", err)
	}

	testutil.CompareGolden(t, fix, "run", data)
}

func TestRunEmptyTree(t *testing.T) {
	if !stateless.IsAvailable() {
		t.Skip("tree-sitter not available")
	}

	r := New(t.TempDir(), testConfig(), nil, logging.Nop())
	res, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if res.Summary.FilesScanned != 0 || len(res.Diagnostics) != 0 {
		t.Errorf("empty tree produced %+v", res.Summary)
	}
}

func TestConfigHashChangesWithOptions(t *testing.T) {
	base := stateless.Options{}

	flipped := base
	flipped.IgnorePureComponentBase = true
	if fingerprintOptions(base) == fingerprintOptions(flipped) {
		t.Error("fingerprint should change when rule options change")
	}

	versioned := base
	versioned.ReactVersion = "16.2.0"
	if fingerprintOptions(base) == fingerprintOptions(versioned) {
		t.Error("fingerprint should change with the react version")
	}
}

func TestRunWithDirectoryOverride(t *testing.T) {
	if !stateless.IsAvailable() {
		t.Skip("tree-sitter not available")
	}

	// The same component under both trees: a PureComponent reading no
	// outside data stays disqualified under the default options but
	// becomes a pure candidate where the override flips the flag.
	badge := `
class Badge extends React.PureComponent {
  render() {
    return <b>v2</b>;
  }
}
`
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"src/badge.jsx":         badge,
		"legacy/badge.jsx":      badge,
		"legacy/reactlint.toml": "ignore_pure_component_base = true\n",
	})

	r := New(root, testConfig(), nil, logging.Nop())
	res, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(res.Diagnostics) != 1 {
		t.Fatalf("diagnostics = %+v, want exactly the overridden subtree's", res.Diagnostics)
	}
	if res.Diagnostics[0].Path != "legacy/badge.jsx" {
		t.Errorf("diagnostic path = %q, want legacy/badge.jsx", res.Diagnostics[0].Path)
	}
}
