package stateless

import (
	"fmt"

	"github.com/Masterminds/semver"
)

// nullReturnMinVersion is the first react version in which a function
// component may return null.
const nullReturnMinVersion = "15.0.0"

// nullReturnNote explains a render that returns null when the configured
// react version predates function components returning null. The note never
// changes a verdict; it is surfaced alongside the diagnostic. An empty or
// unparseable version assumes support.
func nullReturnNote(reactVersion string, returnsNull bool) string {
	if !returnsNull || reactVersion == "" {
		return ""
	}
	v, err := semver.NewVersion(reactVersion)
	if err != nil {
		return ""
	}
	threshold, err := semver.NewVersion(nullReturnMinVersion)
	if err != nil {
		return ""
	}
	if v.LessThan(threshold) {
		return fmt.Sprintf("render returns null, which a function component only supports from react %s on (configured version %s)",
			nullReturnMinVersion, reactVersion)
	}
	return ""
}
