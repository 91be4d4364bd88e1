// Package testutil provides golden-file helpers for tests that lint the
// fixture projects under testdata/.
package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// Fixture is one project tree under testdata/.
type Fixture struct {
	// Name is the directory name under testdata/
	Name string

	// Root is the absolute path to the project tree
	Root string

	// ExpectedDir is the path to the expected/ directory holding goldens
	ExpectedDir string
}

// Load locates a fixture project, failing the test if it does not exist.
func Load(t *testing.T, name string) *Fixture {
	t.Helper()

	root := filepath.Join(testdataRoot(t), name)
	if _, err := os.Stat(root); os.IsNotExist(err) {
		t.Fatalf("Fixture directory not found: %s", root)
	}

	return &Fixture{
		Name:        name,
		Root:        root,
		ExpectedDir: filepath.Join(root, "expected"),
	}
}

// ExpectedPath returns the path to a golden file within the fixture.
// The name should not include the .json extension.
func (f *Fixture) ExpectedPath(name string) string {
	return filepath.Join(f.ExpectedDir, name+".json")
}

// testdataRoot returns the absolute path to testdata/, resolved relative
// to this source file so tests pass regardless of working directory.
func testdataRoot(t *testing.T) string {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get caller information")
	}

	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(thisFile)))
	root := filepath.Join(projectRoot, "testdata")

	if _, err := os.Stat(root); os.IsNotExist(err) {
		t.Fatalf("Testdata root not found: %s", root)
	}

	return root
}
