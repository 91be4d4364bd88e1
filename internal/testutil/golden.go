package testutil

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"testing"
)

// updateGolden controls whether golden files should be updated.
// Use: go test ./... -run TestRunGolden -update
var updateGolden = flag.Bool("update", false, "update golden files")

// ShouldUpdate returns true if golden files should be updated.
func ShouldUpdate() bool {
	return *updateGolden
}

// CompareGolden compares got, a deterministically encoded JSON document,
// against the golden file, failing with a diff on mismatch. The caller is
// responsible for stripping run-varying fields first. If the -update flag
// is set, the golden file is rewritten instead of compared.
func CompareGolden(t *testing.T, fixture *Fixture, name string, got []byte) {
	t.Helper()

	canonical := indentJSON(t, got)
	goldenPath := fixture.ExpectedPath(name)

	if *updateGolden {
		UpdateGolden(t, fixture, name, canonical)
		t.Logf("Updated golden: %s", goldenPath)
		return
	}

	expected, err := os.ReadFile(goldenPath)
	if err != nil {
		if os.IsNotExist(err) {
			t.Fatalf("Golden file missing: %s\n\nGot:\n%s\n\nRun with -update to create:\n  go test ./... -run %s -update",
				goldenPath, string(canonical), t.Name())
		}
		t.Fatalf("Failed to read golden file: %v", err)
	}

	if !bytes.Equal(canonical, expected) {
		diff := unifiedDiff(string(expected), string(canonical), goldenPath)
		t.Fatalf("Golden mismatch for %s:\n%s\n\nRun with -update to refresh:\n  go test ./... -run %s -update",
			name, diff, t.Name())
	}
}

// UpdateGolden writes data to the golden file, creating the expected/
// directory if needed.
func UpdateGolden(t *testing.T, fixture *Fixture, name string, data []byte) {
	t.Helper()

	if err := os.MkdirAll(fixture.ExpectedDir, 0o755); err != nil {
		t.Fatalf("Failed to create expected directory: %v", err)
	}

	if err := os.WriteFile(fixture.ExpectedPath(name), data, 0o644); err != nil {
		t.Fatalf("Failed to write golden file: %v", err)
	}
}

// indentJSON reformats compact JSON with two-space indentation and a
// trailing newline so goldens stay readable and diff cleanly.
func indentJSON(t *testing.T, data []byte) []byte {
	t.Helper()

	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		t.Fatalf("Golden data is not valid JSON: %v", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes()
}

// unifiedDiff renders the differing line runs between two strings, one
// hunk per contiguous run. Enough to read a mismatch without a diff tool.
func unifiedDiff(expected, got, path string) string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "--- %s (expected)\n", path)
	fmt.Fprintf(&buf, "+++ %s (got)\n", path)

	expLines := strings.Split(expected, "\n")
	gotLines := strings.Split(got, "\n")

	total := len(expLines)
	if len(gotLines) > total {
		total = len(gotLines)
	}

	lineAt := func(lines []string, i int) (string, bool) {
		if i < len(lines) {
			return lines[i], true
		}
		return "", false
	}

	for i := 0; i < total; {
		e, eok := lineAt(expLines, i)
		g, gok := lineAt(gotLines, i)
		if eok == gok && e == g {
			i++
			continue
		}

		start := i
		for i < total {
			e, eok = lineAt(expLines, i)
			g, gok = lineAt(gotLines, i)
			if eok == gok && e == g {
				break
			}
			i++
		}

		fmt.Fprintf(&buf, "@@ -%d +%d @@\n", start+1, start+1)
		for j := start; j < i; j++ {
			if line, ok := lineAt(expLines, j); ok {
				buf.WriteString("-" + line + "\n")
			}
		}
		for j := start; j < i; j++ {
			if line, ok := lineAt(gotLines, j); ok {
				buf.WriteString("+" + line + "\n")
			}
		}
	}

	return buf.String()
}
