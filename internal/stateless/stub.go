//go:build !cgo

package stateless

import (
	"context"
	"errors"
)

// ErrNoCGO is returned when component analysis is unavailable due to missing CGO.
var ErrNoCGO = errors.New("component analysis requires CGO (tree-sitter)")

// Analyzer classifies component definitions.
// This is a stub implementation for non-CGO builds.
type Analyzer struct{}

// NewAnalyzer creates an analyzer.
// Returns nil when CGO is disabled.
func NewAnalyzer(opts Options) *Analyzer {
	return nil
}

// SetOptions replaces the classification options for subsequent calls.
// Stub implementation does nothing.
func (a *Analyzer) SetOptions(opts Options) {
}

// AnalyzeFile reads and classifies a single module.
// Stub implementation returns an error.
func (a *Analyzer) AnalyzeFile(ctx context.Context, path string) (*FileAnalysis, error) {
	return nil, ErrNoCGO
}

// AnalyzeSource classifies every component definition in one module.
// Stub implementation returns an error.
func (a *Analyzer) AnalyzeSource(ctx context.Context, path string, source []byte) (*FileAnalysis, error) {
	return nil, ErrNoCGO
}

// IsAvailable reports whether component analysis is available.
// Returns false when CGO is disabled.
func IsAvailable() bool {
	return false
}
