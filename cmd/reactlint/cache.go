package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pallendes/eslint-plugin-react/internal/logging"
	"github.com/pallendes/eslint-plugin-react/internal/storage"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect and manage the verdict cache",
	Long: `Inspect and manage the verdict cache at .reactlint/cache.db.

The cache stores per-file classification results keyed by content and
configuration, so unchanged files are never re-parsed. It is safe to
clear at any time; the next run rebuilds it.`,
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show verdict cache statistics",
	Run:   runCacheStats,
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every cached verdict",
	Run:   runCacheClear,
}

func init() {
	cacheCmd.AddCommand(cacheStatsCmd)
	cacheCmd.AddCommand(cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}

// mustOpenCache opens the cache or exits. Unlike lint, cache commands
// exist to touch the cache, so unavailability is a hard error here.
func mustOpenCache(repoRoot string, logger *logging.Logger) (*storage.Cache, func()) {
	db, err := storage.Open(repoRoot, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening verdict cache: %v\n", err)
		os.Exit(1)
	}
	return storage.NewCache(db), func() { _ = db.Close() }
}

func runCacheStats(cmd *cobra.Command, args []string) {
	repoRoot := mustGetRepoRoot()
	cfg := mustLoadConfig(repoRoot)
	format := resolveFormat(cfg)
	logger := newLogger(cfg, format)

	cache, closeCache := mustOpenCache(repoRoot, logger)
	defer closeCache()

	stats, err := cache.Stats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading cache stats: %v\n", err)
		os.Exit(1)
	}

	cliResponse := &CacheStatsResponseCLI{
		Enabled:   cfg.Cache.Enabled,
		Entries:   stats.Entries,
		Paths:     stats.Paths,
		SizeBytes: stats.SizeBytes,
		DBPath:    stats.DBPath,
	}

	out, err := FormatResponse(cliResponse, OutputFormat(format))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(out)
}

func runCacheClear(cmd *cobra.Command, args []string) {
	repoRoot := mustGetRepoRoot()
	cfg := mustLoadConfig(repoRoot)
	logger := newLogger(cfg, resolveFormat(cfg))

	cache, closeCache := mustOpenCache(repoRoot, logger)
	defer closeCache()

	stats, err := cache.Stats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading cache stats: %v\n", err)
		os.Exit(1)
	}

	if err := cache.Clear(); err != nil {
		fmt.Fprintf(os.Stderr, "Error clearing cache: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Verdict cache cleared: %d entries removed\n", stats.Entries)
}

// CacheStatsResponseCLI contains cache statistics for CLI output
type CacheStatsResponseCLI struct {
	Enabled   bool   `json:"enabled"`
	Entries   int    `json:"entries"`
	Paths     int    `json:"paths"`
	SizeBytes int64  `json:"sizeBytes"`
	DBPath    string `json:"dbPath"`
}
