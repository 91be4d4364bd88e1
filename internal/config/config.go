package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/Masterminds/semver"
	"github.com/spf13/viper"

	"github.com/pallendes/eslint-plugin-react/internal/paths"
)

// Config represents the complete reactlint configuration
type Config struct {
	Version  int    `json:"version" mapstructure:"version"`
	RepoRoot string `json:"repoRoot" mapstructure:"repoRoot"`

	Rule    RuleConfig    `json:"rule" mapstructure:"rule"`
	Files   FilesConfig   `json:"files" mapstructure:"files"`
	Run     RunConfig     `json:"run" mapstructure:"run"`
	Cache   CacheConfig   `json:"cache" mapstructure:"cache"`
	Output  OutputConfig  `json:"output" mapstructure:"output"`
	Logging LoggingConfig `json:"logging" mapstructure:"logging"`
}

// RuleConfig contains the classification options
type RuleConfig struct {
	// IgnorePureComponentBase treats components extending the memoizing
	// base class (React.PureComponent) exactly like plain Component
	// subclasses. When false, a PureComponent subclass that reads neither
	// props nor context is left alone: rewriting it as a function would
	// silently drop its shallow-compare behavior.
	IgnorePureComponentBase bool `json:"ignorePureComponentBase" mapstructure:"ignorePureComponentBase"`

	// ReactVersion is the project's React version. Empty means unknown,
	// in which case detection from package.json is attempted and full
	// feature support is assumed as the fallback.
	ReactVersion string `json:"reactVersion" mapstructure:"reactVersion"`
}

// FilesConfig controls which files are linted
type FilesConfig struct {
	Include          []string `json:"include" mapstructure:"include"`
	Exclude          []string `json:"exclude" mapstructure:"exclude"`
	MaxFileSizeBytes int      `json:"maxFileSizeBytes" mapstructure:"maxFileSizeBytes"`
}

// RunConfig controls run execution
type RunConfig struct {
	// Workers is the parallel lint worker count. Zero means one worker
	// per CPU.
	Workers int `json:"workers" mapstructure:"workers"`
}

// CacheConfig contains verdict cache configuration
type CacheConfig struct {
	Enabled bool `json:"enabled" mapstructure:"enabled"`
}

// OutputConfig contains output configuration
type OutputConfig struct {
	Format string `json:"format" mapstructure:"format"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Format string `json:"format" mapstructure:"format"`
	Level  string `json:"level" mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version:  1,
		RepoRoot: ".",
		Rule: RuleConfig{
			IgnorePureComponentBase: false,
			ReactVersion:            "",
		},
		Files: FilesConfig{
			Include: []string{"**/*.js", "**/*.jsx", "**/*.ts", "**/*.tsx"},
			Exclude: []string{
				"node_modules/**",
				"vendor/**",
				"dist/**",
				"build/**",
			},
			MaxFileSizeBytes: 1000000,
		},
		Run: RunConfig{
			Workers: 0,
		},
		Cache: CacheConfig{
			Enabled: true,
		},
		Output: OutputConfig{
			Format: "human",
		},
		Logging: LoggingConfig{
			Format: "human",
			Level:  "info",
		},
	}
}

// newViper returns a viper instance with every default registered
func newViper() *viper.Viper {
	v := viper.New()

	v.SetDefault("version", 1)
	v.SetDefault("repoRoot", ".")
	v.SetDefault("files.include", DefaultConfig().Files.Include)
	v.SetDefault("files.exclude", DefaultConfig().Files.Exclude)
	v.SetDefault("files.maxFileSizeBytes", 1000000)
	v.SetDefault("cache.enabled", true)
	v.SetDefault("output.format", "human")
	v.SetDefault("logging.format", "human")
	v.SetDefault("logging.level", "info")

	return v
}

// LoadConfig loads configuration from .reactlint/config.json
func LoadConfig(repoRoot string) (*Config, error) {
	v := newViper()

	// Configure viper
	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(paths.ProjectDir(repoRoot))

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		// If config doesn't exist, return default config
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	// Unmarshal into config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadConfigFile loads configuration from an explicit file path. Unlike
// LoadConfig, a missing file is an error: the user asked for that
// specific file.
func LoadConfigFile(path string) (*Config, error) {
	v := newViper()

	v.SetConfigFile(path)
	v.SetConfigType("json")

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the configuration to .reactlint/config.json
func (c *Config) Save(repoRoot string) error {
	configPath := paths.ConfigFile(repoRoot)

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return err
	}

	// Marshal to JSON with indentation
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	// Write to file
	return os.WriteFile(configPath, data, 0644)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Version != 1 {
		return &ConfigError{Field: "version", Message: "unsupported config version"}
	}

	switch c.Output.Format {
	case "human", "json":
	default:
		return &ConfigError{Field: "output.format", Message: "must be 'human' or 'json'"}
	}

	if c.Rule.ReactVersion != "" {
		if _, err := semver.NewVersion(c.Rule.ReactVersion); err != nil {
			return &ConfigError{Field: "rule.reactVersion", Message: "not a valid semantic version"}
		}
	}

	if c.Files.MaxFileSizeBytes < 0 {
		return &ConfigError{Field: "files.maxFileSizeBytes", Message: "must not be negative"}
	}

	if c.Run.Workers < 0 {
		return &ConfigError{Field: "run.workers", Message: "must not be negative"}
	}

	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
