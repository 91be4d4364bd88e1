package paths

import (
	"os"
	"path/filepath"
	"testing"
)

func TestProjectDir(t *testing.T) {
	root := "/my/repo"

	dir := ProjectDir(root)
	expected := filepath.Join(root, ".reactlint")
	if dir != expected {
		t.Errorf("ProjectDir = %s, want %s", dir, expected)
	}
}

func TestProjectFilePaths(t *testing.T) {
	root := "/my/repo"

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"config", ConfigFile(root), filepath.Join(root, ".reactlint", "config.json")},
		{"cache", CacheFile(root), filepath.Join(root, ".reactlint", "cache.db")},
		{"baseline", BaselineFile(root), filepath.Join(root, ".reactlint", "baseline.yaml")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %s, want %s", tt.got, tt.want)
			}
		})
	}
}

func TestCanonicalizePath(t *testing.T) {
	// Create a temp directory for testing
	tempDir, err := os.MkdirTemp("", "reactlint-paths-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { _ = os.RemoveAll(tempDir) })

	// Create test file
	testFile := filepath.Join(tempDir, "subdir", "App.jsx")
	if err := os.MkdirAll(filepath.Dir(testFile), 0755); err != nil {
		t.Fatalf("Failed to create subdir: %v", err)
	}
	if err := os.WriteFile(testFile, []byte("export default null"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	// Test canonicalization
	canonical, err := CanonicalizePath(testFile, tempDir)
	if err != nil {
		t.Fatalf("CanonicalizePath failed: %v", err)
	}

	expected := "subdir/App.jsx"
	if canonical != expected {
		t.Errorf("Expected %s, got %s", expected, canonical)
	}
}

func TestCanonicalizePath_Missing(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "reactlint-paths-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { _ = os.RemoveAll(tempDir) })

	// A file that does not exist yet still canonicalizes
	missing := filepath.Join(tempDir, "not", "yet", "here.tsx")
	canonical, err := CanonicalizePath(missing, tempDir)
	if err != nil {
		t.Fatalf("CanonicalizePath failed: %v", err)
	}
	if canonical != "not/yet/here.tsx" {
		t.Errorf("Expected not/yet/here.tsx, got %s", canonical)
	}
}

func TestNormalizePath(t *testing.T) {
	// Test that forward slashes are preserved
	result := NormalizePath("path/to/file")
	expected := "path/to/file"
	if result != expected {
		t.Errorf("NormalizePath(path/to/file): expected %s, got %s", expected, result)
	}

	// Note: filepath.ToSlash only converts the OS-specific separator
	// On Unix, backslashes are valid filename characters and won't be converted
	// On Windows, backslashes would be converted to forward slashes
}

func TestJoinRepoPath(t *testing.T) {
	result := JoinRepoPath("/repo/root", "path/to/App.jsx")
	expected := filepath.Join("/repo/root", "path", "to", "App.jsx")
	if result != expected {
		t.Errorf("JoinRepoPath: expected %s, got %s", expected, result)
	}
}

func TestIsWithinRepo(t *testing.T) {
	// Create a temp directory for testing
	tempDir, err := os.MkdirTemp("", "reactlint-paths-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { _ = os.RemoveAll(tempDir) })

	// Create a file inside repo
	testFile := filepath.Join(tempDir, "subdir", "App.jsx")
	if err := os.MkdirAll(filepath.Dir(testFile), 0755); err != nil {
		t.Fatalf("Failed to create subdir: %v", err)
	}
	if err := os.WriteFile(testFile, []byte("export default null"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	// File inside repo should return true
	if !IsWithinRepo(testFile, tempDir) {
		t.Error("Expected file to be within repo")
	}

	// File outside repo should return false
	outsideFile := filepath.Join(os.TempDir(), "outside.jsx")
	if IsWithinRepo(outsideFile, tempDir) {
		t.Error("Expected file outside repo to return false")
	}
}
