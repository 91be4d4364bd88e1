package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pallendes/eslint-plugin-react/internal/baseline"
	"github.com/pallendes/eslint-plugin-react/internal/config"
	linterrors "github.com/pallendes/eslint-plugin-react/internal/errors"
	"github.com/pallendes/eslint-plugin-react/internal/stateless"
	"github.com/pallendes/eslint-plugin-react/internal/storage"
)

var doctorCheck string

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose reactlint issues",
	Long: `Diagnose reactlint configuration and environment issues.

Checks parser availability, configuration validity, react version
detection, verdict cache health, and the baseline file.

Examples:
  reactlint doctor
  reactlint doctor --check=parser
  reactlint doctor --check=cache`,
	Run: runDoctor,
}

func init() {
	doctorCmd.Flags().StringVar(&doctorCheck, "check", "", "Run specific check (parser, config, react, cache, baseline)")
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) {
	start := time.Now()
	repoRoot := mustGetRepoRoot()

	// Doctor reports on broken configs instead of exiting, so the config
	// is loaded leniently here.
	format := resolveFormat(nil)
	if cfg, err := loadProjectConfig(repoRoot); err == nil {
		format = resolveFormat(cfg)
	}
	logger := newLogger(nil, format)

	checks := []DoctorCheckCLI{}
	add := func(name string, check func(string) DoctorCheckCLI) {
		if doctorCheck == "" || doctorCheck == name {
			checks = append(checks, check(repoRoot))
		}
	}

	add("parser", checkParser)
	add("config", checkConfig)
	add("react", checkReact)
	add("cache", checkCache)
	add("baseline", checkBaseline)

	if len(checks) == 0 {
		fmt.Fprintf(os.Stderr, "Error: unknown check '%s': must be one of: parser, config, react, cache, baseline\n", doctorCheck)
		os.Exit(1)
	}

	healthy := true
	for _, c := range checks {
		if c.Status == "fail" {
			healthy = false
		}
	}

	cliResponse := &DoctorResponseCLI{
		Healthy: healthy,
		Checks:  checks,
	}

	out, err := FormatResponse(cliResponse, OutputFormat(format))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(out)

	logger.Debug("Diagnostics completed", map[string]interface{}{
		"checks":   len(checks),
		"healthy":  healthy,
		"duration": time.Since(start).Milliseconds(),
	})

	if !healthy {
		os.Exit(1)
	}
}

func checkParser(string) DoctorCheckCLI {
	if !stateless.IsAvailable() {
		return DoctorCheckCLI{
			Name:           "parser",
			Status:         "fail",
			Message:        "built without cgo; tree-sitter grammars are unavailable and nothing can be analyzed",
			SuggestedFixes: convertFixes(linterrors.GetSuggestedFixes(linterrors.ParserUnavailable)),
		}
	}
	return DoctorCheckCLI{
		Name:    "parser",
		Status:  "pass",
		Message: "tree-sitter grammars compiled in (javascript, typescript, tsx)",
	}
}

func checkConfig(repoRoot string) DoctorCheckCLI {
	cfg, err := loadProjectConfig(repoRoot)
	if err != nil {
		return DoctorCheckCLI{
			Name:           "config",
			Status:         "fail",
			Message:        fmt.Sprintf("cannot read configuration: %v", err),
			SuggestedFixes: convertFixes(linterrors.GetSuggestedFixes(linterrors.ConfigInvalid)),
		}
	}
	if err := cfg.Validate(); err != nil {
		return DoctorCheckCLI{
			Name:           "config",
			Status:         "fail",
			Message:        err.Error(),
			SuggestedFixes: convertFixes(linterrors.GetSuggestedFixes(linterrors.ConfigInvalid)),
		}
	}
	return DoctorCheckCLI{
		Name:    "config",
		Status:  "pass",
		Message: "configuration is valid",
	}
}

func checkReact(repoRoot string) DoctorCheckCLI {
	cfg, err := loadProjectConfig(repoRoot)
	if err == nil && cfg.Rule.ReactVersion != "" {
		return DoctorCheckCLI{
			Name:    "react",
			Status:  "pass",
			Message: fmt.Sprintf("react %s (configured)", cfg.Rule.ReactVersion),
		}
	}

	if detected := config.DetectReactVersion(repoRoot); detected != "" {
		return DoctorCheckCLI{
			Name:    "react",
			Status:  "pass",
			Message: fmt.Sprintf("react %s (detected from package.json)", detected),
		}
	}

	return DoctorCheckCLI{
		Name:    "react",
		Status:  "warn",
		Message: "react version not detected; full feature support is assumed",
	}
}

func checkCache(repoRoot string) DoctorCheckCLI {
	cfg, err := loadProjectConfig(repoRoot)
	if err == nil && !cfg.Cache.Enabled {
		return DoctorCheckCLI{
			Name:    "cache",
			Status:  "pass",
			Message: "verdict cache disabled in configuration",
		}
	}

	db, err := storage.Open(repoRoot, newLogger(nil, "human"))
	if err != nil {
		return DoctorCheckCLI{
			Name:           "cache",
			Status:         "fail",
			Message:        fmt.Sprintf("cannot open verdict cache: %v", err),
			SuggestedFixes: convertFixes(linterrors.GetSuggestedFixes(linterrors.CacheUnavailable)),
		}
	}
	defer func() { _ = db.Close() }()

	stats, err := storage.NewCache(db).Stats()
	if err != nil {
		return DoctorCheckCLI{
			Name:           "cache",
			Status:         "fail",
			Message:        fmt.Sprintf("cache opened, but stats query failed: %v", err),
			SuggestedFixes: convertFixes(linterrors.GetSuggestedFixes(linterrors.CacheUnavailable)),
		}
	}

	return DoctorCheckCLI{
		Name:    "cache",
		Status:  "pass",
		Message: fmt.Sprintf("%d entries for %d file(s), %s", stats.Entries, stats.Paths, formatBytes(stats.SizeBytes)),
	}
}

func checkBaseline(repoRoot string) DoctorCheckCLI {
	bl, err := baseline.Load(repoRoot)
	if err != nil {
		return DoctorCheckCLI{
			Name:           "baseline",
			Status:         "fail",
			Message:        err.Error(),
			SuggestedFixes: convertFixes(linterrors.GetSuggestedFixes(linterrors.BaselineInvalid)),
		}
	}
	if bl.Count() == 0 {
		return DoctorCheckCLI{
			Name:    "baseline",
			Status:  "pass",
			Message: "no baseline; every finding is reported",
		}
	}
	return DoctorCheckCLI{
		Name:    "baseline",
		Status:  "pass",
		Message: fmt.Sprintf("%d accepted finding(s) suppressed", bl.Count()),
	}
}

// DoctorResponseCLI contains diagnostic results for CLI output
type DoctorResponseCLI struct {
	Healthy bool             `json:"healthy"`
	Checks  []DoctorCheckCLI `json:"checks"`
}

// DoctorCheckCLI represents a single diagnostic check
type DoctorCheckCLI struct {
	Name           string         `json:"name"`
	Status         string         `json:"status"` // "pass", "warn", "fail"
	Message        string         `json:"message"`
	SuggestedFixes []FixActionCLI `json:"suggestedFixes,omitempty"`
}

// FixActionCLI represents a suggested fix
type FixActionCLI struct {
	Type        string `json:"type"`
	Command     string `json:"command,omitempty"`
	Description string `json:"description"`
	Safe        bool   `json:"safe"`
}

func convertFixes(fixes []linterrors.FixAction) []FixActionCLI {
	out := make([]FixActionCLI, 0, len(fixes))
	for _, f := range fixes {
		out = append(out, FixActionCLI{
			Type:        string(f.Type),
			Command:     f.Command,
			Description: f.Description,
			Safe:        f.Safe,
		})
	}
	return out
}
