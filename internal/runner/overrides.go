package runner

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pallendes/eslint-plugin-react/internal/config"
	"github.com/pallendes/eslint-plugin-react/internal/logging"
	"github.com/pallendes/eslint-plugin-react/internal/stateless"
)

// overrideEntry binds one parsed reactlint.toml to the subtree it governs.
type overrideEntry struct {
	// dir is the repo-relative slash directory holding the override file,
	// "" for the repo root
	dir      string
	override *config.Override
	opts     stateless.Options
	hash     string
}

// overrideSet resolves the effective engine options for each file. The
// innermost override file wins; its nil fields inherit from the project
// configuration, not from outer override files. Exclude patterns
// accumulate: a file is dropped when any governing override excludes it.
type overrideSet struct {
	baseOpts stateless.Options
	baseHash string
	entries  []overrideEntry
}

// loadOverrides walks the tree for reactlint.toml files, skipping the
// same directories discovery skips. Unparsable override files are
// reported and ignored rather than failing the run.
func loadOverrides(root string, cfg *config.Config, logger *logging.Logger) *overrideSet {
	baseOpts := stateless.Options{
		IgnorePureComponentBase: cfg.Rule.IgnorePureComponentBase,
		ReactVersion:            cfg.Rule.ReactVersion,
	}
	set := &overrideSet{
		baseOpts: baseOpts,
		baseHash: fingerprintOptions(baseOpts),
	}

	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			if path == root {
				return nil
			}
			name := info.Name()
			if strings.HasPrefix(name, ".") || skippedDirNames[name] {
				return filepath.SkipDir
			}
			return nil
		}
		if info.Name() != config.OverrideFile {
			return nil
		}

		override, err := config.ParseOverrideFile(path)
		if err != nil {
			logger.Warn("Ignoring invalid override file", map[string]interface{}{
				"path":  path,
				"error": err.Error(),
			})
			return nil
		}

		rel, err := filepath.Rel(root, filepath.Dir(path))
		if err != nil {
			return nil
		}
		dir := filepath.ToSlash(rel)
		if dir == "." {
			dir = ""
		}

		merged := cfg.WithOverride(override)
		opts := stateless.Options{
			IgnorePureComponentBase: merged.Rule.IgnorePureComponentBase,
			ReactVersion:            merged.Rule.ReactVersion,
		}
		set.entries = append(set.entries, overrideEntry{
			dir:      dir,
			override: override,
			opts:     opts,
			hash:     fingerprintOptions(opts),
		})
		return nil
	})
	if err != nil {
		logger.Warn("Override discovery failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	// Deepest directory first so the first prefix match is the innermost
	sort.Slice(set.entries, func(i, j int) bool {
		di, dj := strings.Count(set.entries[i].dir, "/"), strings.Count(set.entries[j].dir, "/")
		if di != dj {
			return di > dj
		}
		return set.entries[i].dir > set.entries[j].dir
	})
	return set
}

// governs reports whether the entry's directory contains the given
// repo-relative file path.
func (e *overrideEntry) governs(rel string) bool {
	if e.dir == "" {
		return true
	}
	return strings.HasPrefix(rel, e.dir+"/")
}

// resolve returns the engine options and cache fingerprint for one file.
func (s *overrideSet) resolve(rel string) (stateless.Options, string) {
	for i := range s.entries {
		if s.entries[i].governs(rel) {
			return s.entries[i].opts, s.entries[i].hash
		}
	}
	return s.baseOpts, s.baseHash
}

// excluded reports whether any governing override excludes the file.
// Patterns are matched against the path relative to the override's own
// directory.
func (s *overrideSet) excluded(rel string) bool {
	for i := range s.entries {
		e := &s.entries[i]
		if !e.governs(rel) || len(e.override.Exclude) == 0 {
			continue
		}
		sub := rel
		if e.dir != "" {
			sub = strings.TrimPrefix(rel, e.dir+"/")
		}
		if matchesAny(e.override.Exclude, sub) {
			return true
		}
	}
	return false
}

// filter drops discovered files excluded by an override.
func (s *overrideSet) filter(files []string) []string {
	if len(s.entries) == 0 {
		return files
	}
	kept := files[:0]
	for _, f := range files {
		if !s.excluded(f) {
			kept = append(kept, f)
		}
	}
	return kept
}

// activeHashes lists every cache fingerprint this run can write under.
func (s *overrideSet) activeHashes() []string {
	hashes := make([]string, 0, len(s.entries)+1)
	hashes = append(hashes, s.baseHash)
	for i := range s.entries {
		hashes = append(hashes, s.entries[i].hash)
	}
	return hashes
}
