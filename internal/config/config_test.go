package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	// Check version
	if cfg.Version != 1 {
		t.Errorf("Version = %d, want 1", cfg.Version)
	}

	// The restricted-base rule is conservative by default
	if cfg.Rule.IgnorePureComponentBase {
		t.Error("IgnorePureComponentBase should be false by default")
	}
	if cfg.Rule.ReactVersion != "" {
		t.Errorf("ReactVersion = %q, want empty", cfg.Rule.ReactVersion)
	}

	// Check file selection defaults
	if len(cfg.Files.Include) == 0 {
		t.Error("Include should not be empty")
	}
	hasJSX := false
	for _, pattern := range cfg.Files.Include {
		if pattern == "**/*.jsx" {
			hasJSX = true
		}
	}
	if !hasJSX {
		t.Error("Include should cover **/*.jsx")
	}
	if len(cfg.Files.Exclude) == 0 {
		t.Error("Exclude should not be empty")
	}
	if cfg.Files.MaxFileSizeBytes <= 0 {
		t.Error("MaxFileSizeBytes should be positive")
	}

	// Cache on, human output, info logging
	if !cfg.Cache.Enabled {
		t.Error("Cache should be enabled by default")
	}
	if cfg.Output.Format != "human" {
		t.Errorf("Output.Format = %q, want %q", cfg.Output.Format, "human")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "info")
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"default is valid", func(c *Config) {}, false},
		{"version 2 unsupported", func(c *Config) { c.Version = 2 }, true},
		{"version 0 unsupported", func(c *Config) { c.Version = 0 }, true},
		{"json format", func(c *Config) { c.Output.Format = "json" }, false},
		{"bad format", func(c *Config) { c.Output.Format = "xml" }, true},
		{"valid react version", func(c *Config) { c.Rule.ReactVersion = "16.8.0" }, false},
		{"bad react version", func(c *Config) { c.Rule.ReactVersion = "latest" }, true},
		{"negative file size", func(c *Config) { c.Files.MaxFileSizeBytes = -1 }, true},
		{"negative workers", func(c *Config) { c.Run.Workers = -2 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()

			if tt.wantErr && err == nil {
				t.Error("Validate() should return error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Validate() returned unexpected error: %v", err)
			}

			// Check error type
			if err != nil {
				if _, ok := err.(*ConfigError); !ok {
					t.Errorf("Validate() error type = %T, want *ConfigError", err)
				}
			}
		})
	}
}

func TestConfigError_Error(t *testing.T) {
	err := &ConfigError{
		Field:   "version",
		Message: "unsupported config version",
	}

	got := err.Error()
	want := "config error in field 'version': unsupported config version"
	if got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestLoadConfig_Default(t *testing.T) {
	tmpDir := t.TempDir()

	cfg, err := LoadConfig(tmpDir)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	// Should return default config when no config file exists
	if cfg.Version != 1 {
		t.Errorf("Version = %d, want 1 (default)", cfg.Version)
	}
	if !cfg.Cache.Enabled {
		t.Error("Cache should default to enabled")
	}
}

func TestLoadConfig_FromFile(t *testing.T) {
	// Create a temp directory with config
	tmpDir := t.TempDir()
	cfgDir := filepath.Join(tmpDir, ".reactlint")
	if err := os.MkdirAll(cfgDir, 0755); err != nil {
		t.Fatalf("Failed to create .reactlint dir: %v", err)
	}

	configContent := `{
		"version": 1,
		"repoRoot": ".",
		"rule": {
			"ignorePureComponentBase": true,
			"reactVersion": "0.14.8"
		},
		"cache": {"enabled": false},
		"output": {"format": "json"}
	}`

	configPath := filepath.Join(cfgDir, "config.json")
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := LoadConfig(tmpDir)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	// Check custom values were loaded
	if !cfg.Rule.IgnorePureComponentBase {
		t.Error("IgnorePureComponentBase should be true per config")
	}
	if cfg.Rule.ReactVersion != "0.14.8" {
		t.Errorf("ReactVersion = %q, want %q", cfg.Rule.ReactVersion, "0.14.8")
	}
	if cfg.Cache.Enabled {
		t.Error("Cache should be disabled per config")
	}
	if cfg.Output.Format != "json" {
		t.Errorf("Output.Format = %q, want %q", cfg.Output.Format, "json")
	}

	// Unset sections keep their defaults
	if len(cfg.Files.Include) == 0 {
		t.Error("Include should fall back to defaults")
	}
}

func TestConfig_Save(t *testing.T) {
	tmpDir := t.TempDir()

	cfg := DefaultConfig()
	cfg.Rule.IgnorePureComponentBase = true

	err := cfg.Save(tmpDir)
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	// Verify file was created
	configPath := filepath.Join(tmpDir, ".reactlint", "config.json")
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Error("Config file was not created")
	}

	// Load it back and verify
	loaded, err := LoadConfig(tmpDir)
	if err != nil {
		t.Fatalf("LoadConfig() after save error = %v", err)
	}

	if !loaded.Rule.IgnorePureComponentBase {
		t.Error("Loaded IgnorePureComponentBase should be true")
	}
}

func TestDetectReactVersion(t *testing.T) {
	tests := []struct {
		name        string
		packageJSON string
		want        string
	}{
		{
			name:        "plain dependency",
			packageJSON: `{"dependencies": {"react": "16.8.0"}}`,
			want:        "16.8.0",
		},
		{
			name:        "caret range",
			packageJSON: `{"dependencies": {"react": "^15.6.1"}}`,
			want:        "15.6.1",
		},
		{
			name:        "tilde range",
			packageJSON: `{"dependencies": {"react": "~0.14.8"}}`,
			want:        "0.14.8",
		},
		{
			name:        "gte range",
			packageJSON: `{"dependencies": {"react": ">=16.0.0 <17"}}`,
			want:        "16.0.0",
		},
		{
			name:        "or range takes lower bound",
			packageJSON: `{"dependencies": {"react": "16.0.0 || 17.0.0"}}`,
			want:        "16.0.0",
		},
		{
			name:        "x range",
			packageJSON: `{"dependencies": {"react": "16.x"}}`,
			want:        "16.0.0",
		},
		{
			name:        "major only",
			packageJSON: `{"dependencies": {"react": "17"}}`,
			want:        "17.0.0",
		},
		{
			name:        "devDependencies fallback",
			packageJSON: `{"devDependencies": {"react": "^16.2.0"}}`,
			want:        "16.2.0",
		},
		{
			name:        "peerDependencies fallback",
			packageJSON: `{"peerDependencies": {"react": "15.0.0"}}`,
			want:        "15.0.0",
		},
		{
			name:        "no react",
			packageJSON: `{"dependencies": {"vue": "3.0.0"}}`,
			want:        "",
		},
		{
			name:        "unparseable range",
			packageJSON: `{"dependencies": {"react": "workspace:*"}}`,
			want:        "",
		},
		{
			name:        "invalid json",
			packageJSON: `{not json`,
			want:        "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			pkgPath := filepath.Join(tmpDir, "package.json")
			if err := os.WriteFile(pkgPath, []byte(tt.packageJSON), 0644); err != nil {
				t.Fatalf("Failed to write package.json: %v", err)
			}

			got := DetectReactVersion(tmpDir)
			if got != tt.want {
				t.Errorf("DetectReactVersion() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDetectReactVersion_NoPackageJSON(t *testing.T) {
	tmpDir := t.TempDir()

	if got := DetectReactVersion(tmpDir); got != "" {
		t.Errorf("DetectReactVersion() = %q, want empty", got)
	}
}

func TestParseOverrideFile(t *testing.T) {
	tmpDir := t.TempDir()
	overridePath := filepath.Join(tmpDir, OverrideFile)

	content := `ignore_pure_component_base = true
react_version = "0.14.0"
exclude = ["legacy/**"]
`
	if err := os.WriteFile(overridePath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write override: %v", err)
	}

	override, err := ParseOverrideFile(overridePath)
	if err != nil {
		t.Fatalf("ParseOverrideFile() error = %v", err)
	}

	if override.IgnorePureComponentBase == nil || !*override.IgnorePureComponentBase {
		t.Error("IgnorePureComponentBase should be true")
	}
	if override.ReactVersion == nil || *override.ReactVersion != "0.14.0" {
		t.Error("ReactVersion should be 0.14.0")
	}
	if len(override.Exclude) != 1 || override.Exclude[0] != "legacy/**" {
		t.Errorf("Exclude = %v, want [legacy/**]", override.Exclude)
	}
}

func TestParseOverrideFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	overridePath := filepath.Join(tmpDir, OverrideFile)
	if err := os.WriteFile(overridePath, []byte("not [valid toml"), 0644); err != nil {
		t.Fatalf("Failed to write override: %v", err)
	}

	if _, err := ParseOverrideFile(overridePath); err == nil {
		t.Error("ParseOverrideFile() should fail on malformed TOML")
	}
}

func TestWithOverride(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Rule.ReactVersion = "16.8.0"

	ignore := true
	version := "0.14.0"
	override := &Override{
		IgnorePureComponentBase: &ignore,
		ReactVersion:            &version,
		Exclude:                 []string{"legacy/**"},
	}

	merged := cfg.WithOverride(override)

	if !merged.Rule.IgnorePureComponentBase {
		t.Error("merged IgnorePureComponentBase should be true")
	}
	if merged.Rule.ReactVersion != "0.14.0" {
		t.Errorf("merged ReactVersion = %q, want 0.14.0", merged.Rule.ReactVersion)
	}
	if len(merged.Files.Exclude) != len(cfg.Files.Exclude) {
		t.Errorf("exclude patterns are directory-scoped, global list must not change, got %v", merged.Files.Exclude)
	}

	// Original is untouched
	if cfg.Rule.IgnorePureComponentBase {
		t.Error("WithOverride must not mutate the receiver")
	}

	// Nil override returns the receiver
	if cfg.WithOverride(nil) != cfg {
		t.Error("WithOverride(nil) should return the receiver")
	}
}
