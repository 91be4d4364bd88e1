// Package export writes component inventories for downstream tooling:
// deterministic JSON for diffing and scripting, and a SCIP index so code
// intelligence tools can navigate component definitions together with
// their verdicts.
package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"

	linterrors "github.com/pallendes/eslint-plugin-react/internal/errors"
	"github.com/pallendes/eslint-plugin-react/internal/output"
)

// Format selects the export encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatSCIP Format = "scip"
)

// Options configures one export.
type Options struct {
	Format Format

	// Compress wraps the artifact in zstd and appends .zst to the path.
	Compress bool

	// PackageName and PackageVersion identify the linted project inside
	// SCIP symbols. Empty values fall back to the local-package marker.
	PackageName    string
	PackageVersion string
}

// Write encodes the run result to the given path and returns the path
// actually written, which differs from the requested one when
// compression appends its suffix.
func Write(res *output.RunResult, path string, opts Options) (string, error) {
	var (
		data []byte
		err  error
	)
	switch opts.Format {
	case FormatSCIP:
		data, err = encodeSCIP(res, opts)
	case FormatJSON, "":
		data, err = output.DeterministicEncodeIndented(res, "  ")
	default:
		return "", linterrors.NewLintError(linterrors.ExportFailed,
			fmt.Sprintf("unknown export format %q", opts.Format), nil, nil)
	}
	if err != nil {
		return "", linterrors.NewLintError(linterrors.ExportFailed,
			"failed to encode export", err, nil)
	}

	if opts.Compress {
		if data, err = compress(data); err != nil {
			return "", linterrors.NewLintError(linterrors.ExportFailed,
				"failed to compress export", err, nil)
		}
		path += ".zst"
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", linterrors.NewLintError(linterrors.ExportFailed,
				"failed to create export directory", err, nil)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", linterrors.NewLintError(linterrors.ExportFailed,
			"failed to write export file", err, nil)
	}
	return path, nil
}

func compress(data []byte) ([]byte, error) {
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, err
	}
	defer enc.Close()
	return enc.EncodeAll(data, make([]byte, 0, len(data)/2)), nil
}
