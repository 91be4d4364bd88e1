package output

import (
	"bytes"
	"encoding/json"
	"strings"
)

// SnapshotExcludeFields lists fields that vary between runs over identical
// sources and are excluded when comparing run results.
var SnapshotExcludeFields = []string{
	"runId",
	"startedAt",
	"durationMs",
}

// NormalizeForSnapshot removes run-varying fields for comparison
func NormalizeForSnapshot(data []byte) ([]byte, error) {
	var parsed map[string]interface{}
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, err
	}

	for _, field := range SnapshotExcludeFields {
		removeNestedField(parsed, field)
	}

	// Re-encode deterministically
	return DeterministicEncode(parsed)
}

// CompareSnapshots returns true if two encoded run results are identical
// (ignoring run-varying fields)
func CompareSnapshots(a, b []byte) (bool, string) {
	normalizedA, err := NormalizeForSnapshot(a)
	if err != nil {
		return false, "failed to normalize snapshot A: " + err.Error()
	}

	normalizedB, err := NormalizeForSnapshot(b)
	if err != nil {
		return false, "failed to normalize snapshot B: " + err.Error()
	}

	if !bytes.Equal(normalizedA, normalizedB) {
		return false, "snapshots differ"
	}

	return true, ""
}

// SnapshotEqual compares two values for equality, ignoring run-varying fields
func SnapshotEqual(a, b interface{}) bool {
	aJSON, err := DeterministicEncode(a)
	if err != nil {
		return false
	}

	bJSON, err := DeterministicEncode(b)
	if err != nil {
		return false
	}

	equal, _ := CompareSnapshots(aJSON, bJSON)
	return equal
}

// removeNestedField removes a nested field from a map using dot notation,
// e.g. "summary.durationMs" removes "durationMs" from the "summary" object.
func removeNestedField(data map[string]interface{}, path string) {
	parts := splitPath(path)
	if len(parts) == 0 {
		return
	}

	current := data
	for i := 0; i < len(parts)-1; i++ {
		next, ok := current[parts[i]]
		if !ok {
			return
		}

		nextMap, ok := next.(map[string]interface{})
		if !ok {
			return
		}

		current = nextMap
	}

	delete(current, parts[len(parts)-1])
}

// splitPath splits a dot-separated path into parts
func splitPath(path string) []string {
	var parts []string
	for _, p := range strings.Split(path, ".") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}
