package errors

import (
	"fmt"
)

// ErrorCode represents stable error codes for all failure modes
type ErrorCode string

const (
	// ParseFailed indicates a source file could not be parsed
	ParseFailed ErrorCode = "PARSE_FAILED"
	// UnsupportedExtension indicates a file type the parser has no grammar for
	UnsupportedExtension ErrorCode = "UNSUPPORTED_EXTENSION"
	// ParserUnavailable indicates tree-sitter support is not compiled in
	ParserUnavailable ErrorCode = "PARSER_UNAVAILABLE"
	// ConfigInvalid indicates the configuration failed validation
	ConfigInvalid ErrorCode = "CONFIG_INVALID"
	// CacheUnavailable indicates the verdict cache could not be opened
	CacheUnavailable ErrorCode = "CACHE_UNAVAILABLE"
	// BaselineInvalid indicates the baseline file could not be read
	BaselineInvalid ErrorCode = "BASELINE_INVALID"
	// ExportFailed indicates an inventory export could not be written
	ExportFailed ErrorCode = "EXPORT_FAILED"
	// WatchFailed indicates the filesystem watcher could not start
	WatchFailed ErrorCode = "WATCH_FAILED"
	// InternalError indicates unexpected error
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// FixActionType represents the type of fix action
type FixActionType string

const (
	// RunCommand suggests running a command
	RunCommand FixActionType = "run-command"
	// OpenDocs suggests opening documentation
	OpenDocs FixActionType = "open-docs"
	// EditConfig suggests editing the project configuration
	EditConfig FixActionType = "edit-config"
)

// FixAction represents a suggested fix for an error
type FixAction struct {
	Type        FixActionType `json:"type"`
	Command     string        `json:"command,omitempty"`
	Safe        bool          `json:"safe,omitempty"`
	Description string        `json:"description,omitempty"`
	URL         string        `json:"url,omitempty"`
	Path        string        `json:"path,omitempty"`
}

// LintError represents a reactlint error with code, message, and suggestions.
// These are tool-level failures only. Analysis uncertainty never becomes a
// LintError: an unresolvable base type degrades the resolution to unknown, an
// unrecognized self access degrades the capability finding, and a malformed
// definition is skipped. The run keeps going in all three cases.
type LintError struct {
	Code           ErrorCode   `json:"code"`
	Message        string      `json:"message"`
	Details        interface{} `json:"details,omitempty"`
	SuggestedFixes []FixAction `json:"suggestedFixes,omitempty"`
	cause          error       // Underlying error (not exported to JSON)
}

// NewLintError creates a new LintError
func NewLintError(code ErrorCode, message string, cause error, suggestedFixes []FixAction) *LintError {
	return &LintError{
		Code:           code,
		Message:        message,
		cause:          cause,
		SuggestedFixes: suggestedFixes,
	}
}

// Error implements the error interface
func (e *LintError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *LintError) Unwrap() error {
	return e.cause
}

// WithDetails adds details to the error
func (e *LintError) WithDetails(details interface{}) *LintError {
	e.Details = details
	return e
}

// ErrorActions maps error codes to suggested fix actions
var ErrorActions = map[ErrorCode][]FixAction{
	ParserUnavailable: {
		{
			Type:        RunCommand,
			Command:     "CGO_ENABLED=1 go install github.com/pallendes/eslint-plugin-react/cmd/reactlint@latest",
			Safe:        true,
			Description: "Rebuild reactlint with cgo enabled for tree-sitter support",
		},
	},
	ConfigInvalid: {
		{
			Type:        EditConfig,
			Path:        ".reactlint/config.json",
			Description: "Fix the invalid configuration value",
		},
		{
			Type:        RunCommand,
			Command:     "reactlint doctor",
			Safe:        true,
			Description: "Validate configuration and environment",
		},
	},
	CacheUnavailable: {
		{
			Type:        RunCommand,
			Command:     "reactlint cache clear",
			Safe:        true,
			Description: "Reset the verdict cache",
		},
	},
	BaselineInvalid: {
		{
			Type:        RunCommand,
			Command:     "reactlint lint --write-baseline",
			Safe:        false,
			Description: "Regenerate the baseline from current findings",
		},
	},
	WatchFailed: {
		{
			Type:        RunCommand,
			Command:     "reactlint doctor",
			Safe:        true,
			Description: "Check filesystem watcher limits",
		},
	},
}

// GetSuggestedFixes returns suggested fixes for an error code
func GetSuggestedFixes(code ErrorCode) []FixAction {
	if fixes, ok := ErrorActions[code]; ok {
		return fixes
	}
	return nil
}
