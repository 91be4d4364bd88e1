package runner

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/pallendes/eslint-plugin-react/internal/config"
	"github.com/pallendes/eslint-plugin-react/internal/jsast"
	"github.com/pallendes/eslint-plugin-react/internal/logging"
	"github.com/pallendes/eslint-plugin-react/internal/paths"
)

// skippedDirNames are never descended into regardless of configuration.
var skippedDirNames = map[string]bool{
	"node_modules":       true,
	"vendor":             true,
	paths.ProjectDirName: true,
}

// Discover walks the tree under root and returns the repo-relative slash
// paths of every lintable file, sorted. Hidden directories, node_modules,
// vendor, and the reactlint state directory are pruned. A file is lintable
// when its extension has a grammar, it matches the include globs (an empty
// include list means every supported file), matches no exclude glob, and
// fits under the size limit.
func Discover(root string, files config.FilesConfig, logger *logging.Logger) ([]string, error) {
	var found []string

	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // Skip unreadable entries
		}

		name := info.Name()
		if info.IsDir() {
			if path == root {
				return nil
			}
			if strings.HasPrefix(name, ".") || skippedDirNames[name] {
				return filepath.SkipDir
			}
			return nil
		}

		ext := strings.ToLower(filepath.Ext(name))
		if _, ok := jsast.LanguageFromExtension(ext); !ok {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if len(files.Include) > 0 && !matchesAny(files.Include, rel) {
			return nil
		}
		if matchesAny(files.Exclude, rel) {
			return nil
		}

		if files.MaxFileSizeBytes > 0 && info.Size() > int64(files.MaxFileSizeBytes) {
			logger.Debug("Skipping oversized file", map[string]interface{}{
				"path": rel,
				"size": info.Size(),
			})
			return nil
		}

		found = append(found, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(found)
	return found, nil
}

// matchesAny reports whether a repo-relative slash path matches any of the
// glob patterns
func matchesAny(patterns []string, rel string) bool {
	for _, pattern := range patterns {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
	}
	return false
}
