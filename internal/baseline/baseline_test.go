package baseline

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	linterrors "github.com/pallendes/eslint-plugin-react/internal/errors"
	"github.com/pallendes/eslint-plugin-react/internal/output"
	"github.com/pallendes/eslint-plugin-react/internal/paths"
)

func TestLoadMissingFile(t *testing.T) {
	b, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if b.Count() != 0 {
		t.Errorf("missing baseline should be empty, got %d findings", b.Count())
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	root := t.TempDir()

	b := &Baseline{
		Version: 1,
		Findings: []Finding{
			{Path: "src/header.jsx", Component: "Header", Line: 3},
			{Path: "src/nav.jsx", Component: "Nav", Line: 10},
		},
	}
	if err := b.Save(root); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(root)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !reflect.DeepEqual(loaded.Findings, b.Findings) {
		t.Errorf("round trip changed findings:\ngot  %+v\nwant %+v", loaded.Findings, b.Findings)
	}
}

func TestLoadMalformed(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(paths.ProjectDir(root), 0755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	if err := os.WriteFile(paths.BaselineFile(root), []byte("findings: [not: valid"), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	_, err := Load(root)
	if err == nil {
		t.Fatal("Load should fail on malformed YAML")
	}
	var lintErr *linterrors.LintError
	if !errors.As(err, &lintErr) || lintErr.Code != linterrors.BaselineInvalid {
		t.Errorf("error = %v, want code BASELINE_INVALID", err)
	}
}

func TestLoadNewerVersion(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(paths.ProjectDir(root), 0755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	if err := os.WriteFile(paths.BaselineFile(root), []byte("version: 99\nfindings: []\n"), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	if _, err := Load(root); err == nil {
		t.Error("Load should refuse a baseline from a newer tool")
	}
}

func TestFromRunSorts(t *testing.T) {
	res := &output.RunResult{
		Diagnostics: []output.Diagnostic{
			{Path: "src/b.jsx", Component: "Widget", Line: 20},
			{Path: "src/a.jsx", Component: "Second", Line: 30},
			{Path: "src/a.jsx", Component: "First", Line: 5},
		},
	}

	b := FromRun(res)

	want := []Finding{
		{Path: "src/a.jsx", Component: "First", Line: 5},
		{Path: "src/a.jsx", Component: "Second", Line: 30},
		{Path: "src/b.jsx", Component: "Widget", Line: 20},
	}
	if !reflect.DeepEqual(b.Findings, want) {
		t.Errorf("findings = %+v, want %+v", b.Findings, want)
	}
	if b.Generated == "" {
		t.Error("generated timestamp should be set")
	}
}

func TestFilter(t *testing.T) {
	b := &Baseline{
		Version: 1,
		Findings: []Finding{
			{Path: "src/old.jsx", Component: "Legacy", Line: 3},
		},
	}

	diags := []output.Diagnostic{
		{Path: "src/old.jsx", Component: "Legacy", Line: 7},
		{Path: "src/old.jsx", Component: "Fresh", Line: 20},
		{Path: "src/new.jsx", Component: "Legacy", Line: 3},
	}

	kept, suppressed := b.Filter(diags)

	// The accepted component is suppressed even though it moved lines;
	// the same name in another file is not.
	if len(suppressed) != 1 || suppressed[0].Component != "Legacy" || suppressed[0].Path != "src/old.jsx" {
		t.Errorf("suppressed = %+v, want Legacy in src/old.jsx", suppressed)
	}
	if len(kept) != 2 {
		t.Errorf("kept = %+v, want Fresh and src/new.jsx Legacy", kept)
	}
}

func TestFilterEmptyBaseline(t *testing.T) {
	b := &Baseline{Version: 1}
	diags := []output.Diagnostic{{Path: "src/a.jsx", Component: "A", Line: 1}}

	kept, suppressed := b.Filter(diags)
	if len(kept) != 1 || len(suppressed) != 0 {
		t.Errorf("empty baseline must keep everything, kept=%d suppressed=%d", len(kept), len(suppressed))
	}
}

func TestSaveCreatesProjectDir(t *testing.T) {
	root := t.TempDir()

	b := &Baseline{Version: 1}
	if err := b.Save(root); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(root, paths.ProjectDirName, "baseline.yaml")); err != nil {
		t.Errorf("baseline file not created: %v", err)
	}
}
