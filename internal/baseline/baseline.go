// Package baseline persists accepted findings so an established codebase
// can adopt the linter without first rewriting every old component. A run
// with suppression filters out diagnostics recorded in the baseline file;
// new findings still surface.
package baseline

import (
	"fmt"
	"os"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	linterrors "github.com/pallendes/eslint-plugin-react/internal/errors"
	"github.com/pallendes/eslint-plugin-react/internal/output"
	"github.com/pallendes/eslint-plugin-react/internal/paths"
)

const currentVersion = 1

// Finding identifies one accepted diagnostic. Matching uses path and
// component only; the line is recorded for the reader and tolerates the
// component moving within its file.
type Finding struct {
	Path      string `yaml:"path"`
	Component string `yaml:"component"`
	Line      int    `yaml:"line,omitempty"`
}

// Baseline is the parsed .reactlint/baseline.yaml file.
type Baseline struct {
	Version   int       `yaml:"version"`
	Generated string    `yaml:"generated,omitempty"`
	Findings  []Finding `yaml:"findings"`
}

type findingKey struct {
	path      string
	component string
}

// Load reads the baseline for a project root. A missing file is an empty
// baseline, not an error; nothing is suppressed until one is written.
func Load(root string) (*Baseline, error) {
	data, err := os.ReadFile(paths.BaselineFile(root))
	if os.IsNotExist(err) {
		return &Baseline{Version: currentVersion}, nil
	}
	if err != nil {
		return nil, linterrors.NewLintError(linterrors.BaselineInvalid,
			"failed to read baseline file", err,
			linterrors.GetSuggestedFixes(linterrors.BaselineInvalid))
	}

	var b Baseline
	if err := yaml.Unmarshal(data, &b); err != nil {
		return nil, linterrors.NewLintError(linterrors.BaselineInvalid,
			"failed to parse baseline file", err,
			linterrors.GetSuggestedFixes(linterrors.BaselineInvalid))
	}
	if b.Version > currentVersion {
		return nil, linterrors.NewLintError(linterrors.BaselineInvalid,
			fmt.Sprintf("baseline version %d is newer than this tool understands", b.Version),
			nil, linterrors.GetSuggestedFixes(linterrors.BaselineInvalid))
	}
	return &b, nil
}

// Save writes the baseline under the project's .reactlint directory.
func (b *Baseline) Save(root string) error {
	if err := os.MkdirAll(paths.ProjectDir(root), 0755); err != nil {
		return fmt.Errorf("failed to create project directory: %w", err)
	}

	data, err := yaml.Marshal(b)
	if err != nil {
		return fmt.Errorf("failed to encode baseline: %w", err)
	}
	if err := os.WriteFile(paths.BaselineFile(root), data, 0644); err != nil {
		return fmt.Errorf("failed to write baseline file: %w", err)
	}
	return nil
}

// FromRun records every diagnostic of a run as an accepted finding,
// sorted so the file diffs cleanly between regenerations.
func FromRun(res *output.RunResult) *Baseline {
	b := &Baseline{
		Version:   currentVersion,
		Generated: time.Now().UTC().Format(time.RFC3339),
	}
	for _, d := range res.Diagnostics {
		b.Findings = append(b.Findings, Finding{
			Path:      d.Path,
			Component: d.Component,
			Line:      d.Line,
		})
	}
	sort.Slice(b.Findings, func(i, j int) bool {
		if b.Findings[i].Path != b.Findings[j].Path {
			return b.Findings[i].Path < b.Findings[j].Path
		}
		if b.Findings[i].Line != b.Findings[j].Line {
			return b.Findings[i].Line < b.Findings[j].Line
		}
		return b.Findings[i].Component < b.Findings[j].Component
	})
	return b
}

// Filter splits diagnostics into those still reported and those the
// baseline suppresses.
func (b *Baseline) Filter(diags []output.Diagnostic) (kept, suppressed []output.Diagnostic) {
	if len(b.Findings) == 0 {
		return diags, nil
	}

	accepted := make(map[findingKey]bool, len(b.Findings))
	for _, f := range b.Findings {
		accepted[findingKey{path: f.Path, component: f.Component}] = true
	}

	for _, d := range diags {
		if accepted[findingKey{path: d.Path, component: d.Component}] {
			suppressed = append(suppressed, d)
		} else {
			kept = append(kept, d)
		}
	}
	return kept, suppressed
}

// Count returns the number of accepted findings.
func (b *Baseline) Count() int {
	return len(b.Findings)
}
