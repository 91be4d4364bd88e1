package output

import "github.com/pallendes/eslint-plugin-react/internal/stateless"

// Diagnostic is one actionable message: a component that could be written
// as a pure function.
type Diagnostic struct {
	Path      string   `json:"path"`
	Line      int      `json:"line"`
	Column    int      `json:"column,omitempty"`
	Component string   `json:"component"`
	Message   string   `json:"message"`
	Notes     []string `json:"notes,omitempty"`
}

// Warning is a non-fatal per-file failure surfaced with the result instead
// of aborting the run.
type Warning struct {
	Path    string `json:"path"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// FileResult is the analysis of one module.
type FileResult struct {
	Path       string                        `json:"path"`
	Language   string                        `json:"language,omitempty"`
	Components []stateless.ComponentAnalysis `json:"components,omitempty"`
	FromCache  bool                          `json:"fromCache,omitempty"`
}

// RunSummary aggregates counts across a run.
type RunSummary struct {
	FilesScanned   int `json:"filesScanned"`
	FilesFromCache int `json:"filesFromCache"`
	FilesFailed    int `json:"filesFailed"`
	Components     int `json:"components"`
	PureCandidates int `json:"pureCandidates"`
	Disqualified   int `json:"disqualified"`
}

// RunResult is the complete result of one lint run. RunID, StartedAt, and
// DurationMs vary between runs and are excluded from snapshot comparison.
type RunResult struct {
	RunID        string       `json:"runId"`
	Root         string       `json:"root"`
	ReactVersion string       `json:"reactVersion,omitempty"`
	StartedAt    string       `json:"startedAt,omitempty"`
	DurationMs   int64        `json:"durationMs,omitempty"`
	Files        []FileResult `json:"files,omitempty"`
	Diagnostics  []Diagnostic `json:"diagnostics,omitempty"`
	Warnings     []Warning    `json:"warnings,omitempty"`
	Summary      RunSummary   `json:"summary"`
}

// DiagnosticsFor lifts a file's pure candidates into diagnostics.
// Disqualified components produce none; their reasons stay on the
// component record.
func DiagnosticsFor(path string, components []stateless.ComponentAnalysis) []Diagnostic {
	var diags []Diagnostic
	for _, c := range components {
		if c.Verdict != stateless.VerdictPureCandidate {
			continue
		}
		diags = append(diags, Diagnostic{
			Path:      path,
			Line:      c.Line,
			Column:    c.Column,
			Component: c.Name,
			Message:   stateless.Message,
			Notes:     c.Notes,
		})
	}
	return diags
}
