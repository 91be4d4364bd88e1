package main

import (
	"context"
	"fmt"
	"os"

	"github.com/pallendes/eslint-plugin-react/internal/config"
	"github.com/pallendes/eslint-plugin-react/internal/logging"
	"github.com/pallendes/eslint-plugin-react/internal/stateless"
	"github.com/pallendes/eslint-plugin-react/internal/storage"
)

// getRepoRoot returns the project root directory.
func getRepoRoot() (string, error) {
	return os.Getwd()
}

// mustGetRepoRoot returns the project root or exits on error.
func mustGetRepoRoot() string {
	repoRoot, err := getRepoRoot()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return repoRoot
}

// newContext creates a new context for command execution.
func newContext() context.Context {
	return context.Background()
}

// newLogger creates a logger honoring the output format and the
// resolved log level. JSON output gets JSON logs so both streams stay
// machine-parseable.
func newLogger(cfg *config.Config, format string) *logging.Logger {
	logFormat := logging.HumanFormat
	if format == "json" {
		logFormat = logging.JSONFormat
	}
	return logging.NewLogger(logging.Config{
		Format: logFormat,
		Level:  logging.ParseLevel(resolveLogLevel(cfg)),
	})
}

// loadProjectConfig loads configuration honoring the --config flag.
func loadProjectConfig(repoRoot string) (*config.Config, error) {
	if configFlag != "" {
		return config.LoadConfigFile(configFlag)
	}
	return config.LoadConfig(repoRoot)
}

// mustLoadConfig loads the project configuration or exits when it is
// invalid. A config that cannot be read falls back to defaults with a
// warning; one that parses but fails validation is a hard error. An
// unset react version is filled from package.json when possible.
func mustLoadConfig(repoRoot string) *config.Config {
	logger := logging.NewLogger(logging.Config{
		Format: logging.HumanFormat,
		Level:  logging.WarnLevel,
	})

	cfg, err := loadProjectConfig(repoRoot)
	if err != nil {
		logger.Warn("Failed to load config, using defaults", map[string]interface{}{
			"error": err.Error(),
		})
		cfg = config.DefaultConfig()
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintf(os.Stderr, "Run 'reactlint doctor' to diagnose configuration issues.\n")
		os.Exit(1)
	}

	if cfg.Rule.ReactVersion == "" {
		cfg.Rule.ReactVersion = config.DetectReactVersion(repoRoot)
	}

	return cfg
}

// requireParser exits unless tree-sitter support is compiled in.
func requireParser() {
	if !stateless.IsAvailable() {
		fmt.Fprintf(os.Stderr, "Error: component analysis requires cgo (tree-sitter)\n")
		fmt.Fprintf(os.Stderr, "This binary was built without cgo support.\n")
		os.Exit(1)
	}
}

// openCache opens the verdict cache. A cache that cannot be opened
// degrades to linting without one; the returned close function is safe
// to call either way.
func openCache(repoRoot string, enabled bool, logger *logging.Logger) (*storage.Cache, func()) {
	if !enabled {
		return nil, func() {}
	}

	db, err := storage.Open(repoRoot, logger)
	if err != nil {
		logger.Warn("Verdict cache unavailable, linting without it", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, func() {}
	}

	return storage.NewCache(db), func() { _ = db.Close() }
}
