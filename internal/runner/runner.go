// Package runner drives a lint run end to end: file discovery, parallel
// per-file analysis with verdict caching, and deterministic assembly of
// the run result.
package runner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/pallendes/eslint-plugin-react/internal/config"
	linterrors "github.com/pallendes/eslint-plugin-react/internal/errors"
	"github.com/pallendes/eslint-plugin-react/internal/logging"
	"github.com/pallendes/eslint-plugin-react/internal/output"
	"github.com/pallendes/eslint-plugin-react/internal/paths"
	"github.com/pallendes/eslint-plugin-react/internal/stateless"
	"github.com/pallendes/eslint-plugin-react/internal/storage"
	"github.com/pallendes/eslint-plugin-react/internal/version"
)

// Runner executes lint runs over a project tree
type Runner struct {
	root   string
	cfg    *config.Config
	logger *logging.Logger
	cache  *storage.Cache
}

// New creates a runner. cache may be nil to lint without the verdict cache.
func New(root string, cfg *config.Config, cache *storage.Cache, logger *logging.Logger) *Runner {
	return &Runner{
		root:   root,
		cfg:    cfg,
		cache:  cache,
		logger: logger,
	}
}

// fileOutcome is the result of linting one file. Exactly one field is set.
type fileOutcome struct {
	result  *output.FileResult
	warning *output.Warning
}

// Run discovers, analyzes, and assembles one complete lint run
func (r *Runner) Run(ctx context.Context) (*output.RunResult, error) {
	files, err := Discover(r.root, r.cfg.Files, r.logger)
	if err != nil {
		return nil, fmt.Errorf("file discovery failed: %w", err)
	}

	return r.RunFiles(ctx, files)
}

// RunFiles lints an explicit set of repo-relative files. Watch mode uses
// this to re-lint only the files a filesystem batch touched.
func (r *Runner) RunFiles(ctx context.Context, files []string) (*output.RunResult, error) {
	if !stateless.IsAvailable() {
		return nil, linterrors.NewLintError(linterrors.ParserUnavailable,
			"tree-sitter support is not compiled into this binary", nil,
			linterrors.GetSuggestedFixes(linterrors.ParserUnavailable))
	}

	started := time.Now()

	overrides := loadOverrides(r.root, r.cfg, r.logger)
	files = overrides.filter(files)

	r.logger.Info("Starting lint run", map[string]interface{}{
		"root":  r.root,
		"files": len(files),
	})

	if r.cache != nil {
		if err := r.cache.InvalidateOtherConfigs(overrides.activeHashes()...); err != nil {
			r.logger.Warn("Cache invalidation failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	workers := r.cfg.Run.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(files) && len(files) > 0 {
		workers = len(files)
	}

	outcomes := make([]fileOutcome, len(files))

	g, gctx := errgroup.WithContext(ctx)
	jobs := make(chan int)

	g.Go(func() error {
		defer close(jobs)
		for i := range files {
			select {
			case jobs <- i:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	for w := 0; w < workers; w++ {
		g.Go(func() error {
			// Tree-sitter parsers are not safe for concurrent use, so
			// each worker owns its own analyzer.
			analyzer := stateless.NewAnalyzer(overrides.baseOpts)
			for i := range jobs {
				opts, configHash := overrides.resolve(files[i])
				analyzer.SetOptions(opts)
				outcomes[i] = r.lintFile(gctx, analyzer, files[i], configHash)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := r.assemble(outcomes)
	res.RunID = uuid.NewString()
	res.StartedAt = started.UTC().Format(time.RFC3339)
	res.DurationMs = time.Since(started).Milliseconds()
	output.Normalize(res)

	r.logger.Info("Lint run finished", map[string]interface{}{
		"files":          res.Summary.FilesScanned,
		"fromCache":      res.Summary.FilesFromCache,
		"failed":         res.Summary.FilesFailed,
		"components":     res.Summary.Components,
		"pureCandidates": res.Summary.PureCandidates,
		"durationMs":     res.DurationMs,
	})

	return res, nil
}

// lintFile analyzes one file, consulting the verdict cache first.
// Failures never abort the run; they degrade to a warning.
func (r *Runner) lintFile(ctx context.Context, analyzer *stateless.Analyzer, rel, configHash string) fileOutcome {
	full := paths.JoinRepoPath(r.root, rel)

	data, err := os.ReadFile(full)
	if err != nil {
		return fileOutcome{warning: &output.Warning{
			Path:    rel,
			Code:    string(linterrors.ParseFailed),
			Message: "failed to read file: " + err.Error(),
		}}
	}

	contentHash := storage.HashContent(data)

	if r.cache != nil {
		language, componentsJSON, found, err := r.cache.Get(rel, contentHash, configHash)
		if err != nil {
			r.logger.Warn("Cache lookup failed", map[string]interface{}{
				"path":  rel,
				"error": err.Error(),
			})
		} else if found {
			var components []stateless.ComponentAnalysis
			if err := json.Unmarshal([]byte(componentsJSON), &components); err == nil {
				return fileOutcome{result: &output.FileResult{
					Path:       rel,
					Language:   language,
					Components: components,
					FromCache:  true,
				}}
			}
			// Corrupt entry, drop it and analyze fresh
			_ = r.cache.InvalidatePath(rel)
		}
	}

	analysis, err := analyzer.AnalyzeSource(ctx, rel, data)
	if err != nil {
		code := linterrors.ParseFailed
		var lintErr *linterrors.LintError
		if errors.As(err, &lintErr) {
			code = lintErr.Code
		}
		return fileOutcome{warning: &output.Warning{
			Path:    rel,
			Code:    string(code),
			Message: err.Error(),
		}}
	}

	if r.cache != nil {
		if encoded, err := json.Marshal(analysis.Components); err == nil {
			if err := r.cache.Put(rel, contentHash, configHash, analysis.Language, string(encoded)); err != nil {
				r.logger.Warn("Cache store failed", map[string]interface{}{
					"path":  rel,
					"error": err.Error(),
				})
			}
		}
	}

	return fileOutcome{result: &output.FileResult{
		Path:       rel,
		Language:   analysis.Language,
		Components: analysis.Components,
	}}
}

// assemble folds per-file outcomes into a run result
func (r *Runner) assemble(outcomes []fileOutcome) *output.RunResult {
	res := &output.RunResult{
		Root:         r.root,
		ReactVersion: r.cfg.Rule.ReactVersion,
	}

	for _, o := range outcomes {
		switch {
		case o.warning != nil:
			res.Warnings = append(res.Warnings, *o.warning)
			res.Summary.FilesFailed++

		case o.result != nil:
			res.Files = append(res.Files, *o.result)
			res.Summary.FilesScanned++
			if o.result.FromCache {
				res.Summary.FilesFromCache++
			}
			res.Summary.Components += len(o.result.Components)
			for _, c := range o.result.Components {
				switch c.Verdict {
				case stateless.VerdictPureCandidate:
					res.Summary.PureCandidates++
				case stateless.VerdictDisqualified:
					res.Summary.Disqualified++
				}
			}
			res.Diagnostics = append(res.Diagnostics, output.DiagnosticsFor(o.result.Path, o.result.Components)...)
		}
	}

	return res
}

// fingerprintOptions hashes every input that can change a stored analysis:
// the tool version, the rule options, and the effective react version
// (it feeds the render-null note).
func fingerprintOptions(opts stateless.Options) string {
	return storage.HashKey(fmt.Sprintf("tool=%s;ignoreRestrictedBase=%t;react=%s",
		version.Version, opts.IgnorePureComponentBase, opts.ReactVersion))
}
