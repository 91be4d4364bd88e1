package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pallendes/eslint-plugin-react/internal/config"
	linterrors "github.com/pallendes/eslint-plugin-react/internal/errors"
	"github.com/pallendes/eslint-plugin-react/internal/logging"
	"github.com/pallendes/eslint-plugin-react/internal/paths"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize reactlint configuration",
	Long:  "Creates a .reactlint/ directory with default configuration in the current project root",
	RunE:  runInit,
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Force reinitialization (removes existing .reactlint directory)")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	logger := logging.NewLogger(logging.Config{
		Format: logging.HumanFormat,
		Level:  logging.InfoLevel,
	})

	cwd, err := os.Getwd()
	if err != nil {
		return linterrors.NewLintError(linterrors.InternalError, "Failed to get current directory", err, nil)
	}

	projectDir := paths.ProjectDir(cwd)
	if _, statErr := os.Stat(projectDir); statErr == nil {
		if !initForce {
			// Idempotent behavior: already initialized is success (CI-friendly)
			fmt.Println("reactlint already initialized.")
			fmt.Printf("Configuration at: %s\n", paths.ConfigFile(cwd))
			fmt.Println("\nRun 'reactlint init --force' to reinitialize.")
			return nil
		}
		if removeErr := os.RemoveAll(projectDir); removeErr != nil {
			return linterrors.NewLintError(linterrors.InternalError, "Failed to remove existing .reactlint directory", removeErr, nil)
		}
		logger.Info("Removed existing .reactlint directory", nil)
	}

	cfg := config.DefaultConfig()
	cfg.RepoRoot = "."
	if detected := config.DetectReactVersion(cwd); detected != "" {
		cfg.Rule.ReactVersion = detected
		logger.Info("Detected react version", map[string]interface{}{
			"version": detected,
		})
	}

	if err := cfg.Save(cwd); err != nil {
		return linterrors.NewLintError(linterrors.InternalError, "Failed to write config file", err, nil)
	}

	configPath := paths.ConfigFile(cwd)
	logger.Info("reactlint initialized successfully", map[string]interface{}{
		"config_path": configPath,
	})

	fmt.Println("reactlint initialized successfully!")
	fmt.Printf("Configuration written to: %s\n", filepath.ToSlash(configPath))
	fmt.Println("\nNext steps:")
	fmt.Println("  1. Run 'reactlint doctor' to check your setup")
	fmt.Println("  2. Run 'reactlint lint' to find convertible components")

	return nil
}
