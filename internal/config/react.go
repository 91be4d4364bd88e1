package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver"
)

// packageJSON is the subset of package.json reactlint reads
type packageJSON struct {
	Name             string            `json:"name"`
	Version          string            `json:"version"`
	Dependencies     map[string]string `json:"dependencies"`
	DevDependencies  map[string]string `json:"devDependencies"`
	PeerDependencies map[string]string `json:"peerDependencies"`
}

// DetectReactVersion reads the project's package.json and returns the
// declared react version as a plain semver string. Returns "" when no
// package.json exists or react is not declared; range operators in the
// declaration are stripped so "^16.8.0" detects as "16.8.0". A declared
// version that still does not parse as semver also returns "" rather
// than an error: version detection must never block a lint run.
func DetectReactVersion(repoRoot string) string {
	data, err := os.ReadFile(filepath.Join(repoRoot, "package.json"))
	if err != nil {
		return ""
	}

	var pkg packageJSON
	if err := json.Unmarshal(data, &pkg); err != nil {
		return ""
	}

	raw := pkg.Dependencies["react"]
	if raw == "" {
		raw = pkg.DevDependencies["react"]
	}
	if raw == "" {
		raw = pkg.PeerDependencies["react"]
	}
	if raw == "" {
		return ""
	}

	normalized := normalizeVersionRange(raw)
	if _, err := semver.NewVersion(normalized); err != nil {
		return ""
	}
	return normalized
}

// ProjectIdentity reads the project's name and version from package.json.
// Either may be empty when package.json is missing or does not declare it.
func ProjectIdentity(repoRoot string) (name, version string) {
	data, err := os.ReadFile(filepath.Join(repoRoot, "package.json"))
	if err != nil {
		return "", ""
	}

	var pkg packageJSON
	if err := json.Unmarshal(data, &pkg); err != nil {
		return "", ""
	}
	return pkg.Name, pkg.Version
}

// normalizeVersionRange reduces an npm version range to its lower-bound
// version string. Ranges like "^16.8.0", "~15.6.1", ">=16.0.0 <17" and
// "16.x" all reduce to the first concrete version they name.
func normalizeVersionRange(raw string) string {
	s := strings.TrimSpace(raw)

	// "16.0.0 || 17.0.0" and ">=16 <17": lower bound is the first token
	if idx := strings.IndexAny(s, " |"); idx >= 0 {
		s = s[:idx]
	}

	s = strings.TrimLeft(s, "^~>=<")
	s = strings.TrimPrefix(s, "v")

	// "16.x" and "16.*" mean the lowest patch of that line
	s = strings.ReplaceAll(s, ".x", ".0")
	s = strings.ReplaceAll(s, ".*", ".0")

	// Pad "16" and "16.8" to full triples
	switch strings.Count(s, ".") {
	case 0:
		s += ".0.0"
	case 1:
		s += ".0"
	}

	return s
}
