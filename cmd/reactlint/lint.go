package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/pallendes/eslint-plugin-react/internal/baseline"
	"github.com/pallendes/eslint-plugin-react/internal/logging"
	"github.com/pallendes/eslint-plugin-react/internal/output"
	"github.com/pallendes/eslint-plugin-react/internal/runner"
	"github.com/pallendes/eslint-plugin-react/internal/version"
	"github.com/pallendes/eslint-plugin-react/internal/watcher"
)

var (
	lintWatch         bool
	lintWriteBaseline bool
	lintNoBaseline    bool
	lintNoCache       bool
	lintFailOnFound   bool
	lintDebounceMs    int
)

var lintCmd = &cobra.Command{
	Use:   "lint [path]",
	Short: "Find components that could be pure functions",
	Long: `Lint a project for class and factory components that could be written
as plain functions.

Reports one diagnostic per convertible component. Components that need
the instance form are never flagged; their reasons are visible through
'reactlint components'. Parse failures degrade to warnings and never
abort a run.

Examples:
  reactlint lint                     # Lint the whole project
  reactlint lint src/components     # Lint a subtree
  reactlint lint --watch            # Re-lint files as they change
  reactlint lint --write-baseline   # Accept the current findings
  reactlint lint --fail-on-found    # Exit 1 when findings remain`,
	Args: cobra.MaximumNArgs(1),
	Run:  runLint,
}

func init() {
	lintCmd.Flags().BoolVar(&lintWatch, "watch", false, "Watch the tree and re-lint changed files")
	lintCmd.Flags().BoolVar(&lintWriteBaseline, "write-baseline", false, "Record current findings as accepted and exit")
	lintCmd.Flags().BoolVar(&lintNoBaseline, "no-baseline", false, "Report findings the baseline would suppress")
	lintCmd.Flags().BoolVar(&lintNoCache, "no-cache", false, "Bypass the verdict cache for this run")
	lintCmd.Flags().BoolVar(&lintFailOnFound, "fail-on-found", false, "Exit with code 1 when diagnostics remain after baseline filtering")
	lintCmd.Flags().IntVar(&lintDebounceMs, "debounce-ms", 500, "Batch window for --watch, in milliseconds")
	rootCmd.AddCommand(lintCmd)
}

func runLint(cmd *cobra.Command, args []string) {
	start := time.Now()
	repoRoot := mustGetRepoRoot()
	cfg := mustLoadConfig(repoRoot)
	format := resolveFormat(cfg)
	logger := newLogger(cfg, format)

	requireParser()

	if lintWatch && lintWriteBaseline {
		fmt.Fprintf(os.Stderr, "Error: --watch and --write-baseline cannot be combined\n")
		os.Exit(1)
	}

	cache, closeCache := openCache(repoRoot, cfg.Cache.Enabled && !lintNoCache, logger)
	defer closeCache()

	r := runner.New(repoRoot, cfg, cache, logger)

	files, err := runner.Discover(repoRoot, cfg.Files, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error discovering files: %v\n", err)
		os.Exit(1)
	}
	if len(args) == 1 {
		files = filterByPrefix(files, args[0])
	}

	if lintWatch {
		runLintWatch(r, files, repoRoot, format, logger)
		return
	}

	res, err := r.RunFiles(newContext(), files)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	exitCode := reportRun(res, repoRoot, format)

	logger.Debug("Lint completed", map[string]interface{}{
		"files":    res.Summary.FilesScanned,
		"duration": time.Since(start).Milliseconds(),
	})

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}

// runLintWatch lints the discovered set once, then re-lints each batch of
// changed files until interrupted.
func runLintWatch(r *runner.Runner, files []string, repoRoot, format string, logger *logging.Logger) {
	res, err := r.RunFiles(newContext(), files)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	reportRun(res, repoRoot, format)

	batches := make(chan []watcher.Event, 16)
	w, err := watcher.New(repoRoot, watcher.Config{DebounceMs: lintDebounceMs}, logger, func(events []watcher.Event) {
		batches <- events
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating watcher: %v\n", err)
		os.Exit(1)
	}
	if err := w.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "Error starting watcher: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = w.Stop() }()

	fmt.Println("Watching for changes. Press Ctrl+C to stop.")

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	for {
		select {
		case sig := <-shutdown:
			logger.Info("Received shutdown signal", map[string]interface{}{
				"signal": sig.String(),
			})
			return

		case events := <-batches:
			changed := changedFiles(events)
			if len(changed) == 0 {
				continue
			}
			res, err := r.RunFiles(newContext(), changed)
			if err != nil {
				logger.Error("Re-lint failed", map[string]interface{}{
					"error": err.Error(),
				})
				continue
			}
			reportRun(res, repoRoot, format)
		}
	}
}

// reportRun applies baseline handling, prints the run, and returns the
// process exit code. Watch mode calls it repeatedly and ignores the code.
func reportRun(res *output.RunResult, repoRoot, format string) int {
	if lintWriteBaseline {
		bl := baseline.FromRun(res)
		if err := bl.Save(repoRoot); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing baseline: %v\n", err)
			return 1
		}
		fmt.Printf("Baseline written: %d finding(s) accepted\n", bl.Count())
		return 0
	}

	suppressed := 0
	if !lintNoBaseline {
		bl, err := baseline.Load(repoRoot)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		kept, dropped := bl.Filter(res.Diagnostics)
		res.Diagnostics = kept
		suppressed = len(dropped)
	}

	cliResponse := convertLintResponse(res, suppressed)

	out, err := FormatResponse(cliResponse, OutputFormat(format))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		return 1
	}
	fmt.Println(out)

	if lintFailOnFound && len(res.Diagnostics) > 0 {
		return 1
	}
	return 0
}

// filterByPrefix keeps discovered files under one repo-relative path.
func filterByPrefix(files []string, arg string) []string {
	prefix := strings.TrimSuffix(filepath.ToSlash(filepath.Clean(arg)), "/")
	if prefix == "" || prefix == "." {
		return files
	}

	kept := files[:0]
	for _, f := range files {
		if f == prefix || strings.HasPrefix(f, prefix+"/") {
			kept = append(kept, f)
		}
	}
	return kept
}

// changedFiles extracts re-lintable paths from a watch batch. Deletes and
// renames leave nothing to read at the path, so they are skipped.
func changedFiles(events []watcher.Event) []string {
	var files []string
	for _, e := range events {
		if e.Type == watcher.EventDelete || e.Type == watcher.EventRename {
			continue
		}
		files = append(files, e.Path)
	}
	return files
}

// LintResponseCLI contains lint results for CLI output
type LintResponseCLI struct {
	ToolVersion     string              `json:"toolVersion"`
	RunID           string              `json:"runId"`
	ReactVersion    string              `json:"reactVersion,omitempty"`
	DurationMs      int64               `json:"durationMs"`
	Diagnostics     []output.Diagnostic `json:"diagnostics,omitempty"`
	Warnings        []output.Warning    `json:"warnings,omitempty"`
	Summary         output.RunSummary   `json:"summary"`
	SuppressedCount int                 `json:"suppressedCount,omitempty"`
}

func convertLintResponse(res *output.RunResult, suppressed int) *LintResponseCLI {
	return &LintResponseCLI{
		ToolVersion:     version.Version,
		RunID:           res.RunID,
		ReactVersion:    res.ReactVersion,
		DurationMs:      res.DurationMs,
		Diagnostics:     res.Diagnostics,
		Warnings:        res.Warnings,
		Summary:         res.Summary,
		SuppressedCount: suppressed,
	}
}
