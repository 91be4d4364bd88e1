package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pallendes/eslint-plugin-react/internal/config"
	"github.com/pallendes/eslint-plugin-react/internal/version"
)

var (
	// configFlag is the CLI --config flag value
	configFlag string
	// formatFlag is the CLI --format flag value
	formatFlag string
	// logLevelFlag is the CLI --log-level flag value
	logLevelFlag string
)

var rootCmd = &cobra.Command{
	Use:   "reactlint",
	Short: "reactlint - find components that could be pure functions",
	Long: `reactlint classifies React class and createReactClass components by the
instance capabilities they actually use, and flags the ones that could be
rewritten as plain functions. Components that need state, refs, lifecycle
methods, or anything the analysis cannot prove safe are never flagged.`,
	Version: version.Version,
}

func init() {
	rootCmd.SetVersionTemplate("reactlint version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "",
		"Config file (default: .reactlint/config.json under the project root)")
	rootCmd.PersistentFlags().StringVar(&formatFlag, "format", "",
		"Output format: human or json (default from config)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "",
		"Log level: debug, info, warn, error (default from config)")
}

// resolveFormat determines the effective output format.
// Precedence: CLI flag > REACTLINT_FORMAT env var > config.json > human
func resolveFormat(cfg *config.Config) string {
	// 1. CLI flag (highest priority)
	if formatFlag != "" {
		return formatFlag
	}

	// 2. Environment variable
	if env := os.Getenv("REACTLINT_FORMAT"); env != "" {
		return env
	}

	// 3. Config file default
	if cfg != nil && cfg.Output.Format != "" {
		return cfg.Output.Format
	}

	// 4. Default
	return "human"
}

// resolveLogLevel determines the effective log level.
// Precedence: CLI flag > REACTLINT_LOG_LEVEL env var > config.json > info
func resolveLogLevel(cfg *config.Config) string {
	if logLevelFlag != "" {
		return logLevelFlag
	}

	if env := os.Getenv("REACTLINT_LOG_LEVEL"); env != "" {
		return env
	}

	if cfg != nil && cfg.Logging.Level != "" {
		return cfg.Logging.Level
	}

	return "info"
}
