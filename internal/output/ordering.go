package output

import (
	"sort"
)

// SortFiles sorts file results by path ASC
func SortFiles(files []FileResult) {
	sort.SliceStable(files, func(i, j int) bool {
		return files[i].Path < files[j].Path
	})
}

// SortDiagnostics sorts diagnostics by path ASC, line ASC, column ASC, component ASC
func SortDiagnostics(diags []Diagnostic) {
	sort.SliceStable(diags, func(i, j int) bool {
		// Primary: path ASC
		if diags[i].Path != diags[j].Path {
			return diags[i].Path < diags[j].Path
		}
		// Secondary: line ASC
		if diags[i].Line != diags[j].Line {
			return diags[i].Line < diags[j].Line
		}
		// Tertiary: column ASC
		if diags[i].Column != diags[j].Column {
			return diags[i].Column < diags[j].Column
		}
		// Quaternary: component ASC
		return diags[i].Component < diags[j].Component
	})
}

// SortWarnings sorts warnings by path ASC, code ASC
func SortWarnings(warnings []Warning) {
	sort.SliceStable(warnings, func(i, j int) bool {
		// Primary: path ASC
		if warnings[i].Path != warnings[j].Path {
			return warnings[i].Path < warnings[j].Path
		}
		// Secondary: code ASC
		return warnings[i].Code < warnings[j].Code
	})
}

// Normalize applies the full ordering contract to a run result in place.
// Components within a file keep their source order and are left alone.
func Normalize(res *RunResult) {
	if res == nil {
		return
	}
	SortFiles(res.Files)
	SortDiagnostics(res.Diagnostics)
	SortWarnings(res.Warnings)
}
