package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
)

// Cache stores per-file analysis results keyed by (path, content hash,
// config hash). Entries never expire; a changed file or changed engine
// configuration simply misses and the stale row is replaced on the next
// store for that path.
type Cache struct {
	db *DB
}

// CacheStats describes the current contents of the verdict cache
type CacheStats struct {
	Entries   int    `json:"entries"`
	Paths     int    `json:"paths"`
	SizeBytes int64  `json:"sizeBytes"`
	DBPath    string `json:"dbPath"`
}

// NewCache creates a new cache over an open database
func NewCache(db *DB) *Cache {
	return &Cache{db: db}
}

// HashContent returns the cache hash of a file's raw bytes
func HashContent(data []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(data))
}

// HashKey returns the cache hash of an engine configuration fingerprint.
// Callers build the fingerprint from every input that can change a
// verdict, so stale entries from other configurations never match.
func HashKey(fingerprint string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(fingerprint))
}

// Get retrieves the cached analysis for a file.
// Returns found=false when no entry matches both hashes.
func (c *Cache) Get(path, contentHash, configHash string) (string, string, bool, error) {
	var language, componentsJSON string

	err := c.db.QueryRow(`
		SELECT language, components_json
		FROM file_cache
		WHERE path = ? AND content_hash = ? AND config_hash = ?
	`, path, contentHash, configHash).Scan(&language, &componentsJSON)

	if err == sql.ErrNoRows {
		return "", "", false, nil
	}
	if err != nil {
		return "", "", false, fmt.Errorf("cache lookup failed: %w", err)
	}

	return language, componentsJSON, true, nil
}

// Put stores the analysis for a file, replacing any previous entries for
// the same path so the cache stays bounded by the tree size.
func (c *Cache) Put(path, contentHash, configHash, language, componentsJSON string) error {
	return c.db.WithTx(func(tx *sql.Tx) error {
		if _, err := tx.Exec(`
			DELETE FROM file_cache
			WHERE path = ? AND (content_hash != ? OR config_hash != ?)
		`, path, contentHash, configHash); err != nil {
			return fmt.Errorf("failed to drop stale cache rows: %w", err)
		}

		if _, err := tx.Exec(`
			INSERT OR REPLACE INTO file_cache (path, content_hash, config_hash, language, components_json, created_at)
			VALUES (?, ?, ?, ?, ?, ?)
		`, path, contentHash, configHash, language, componentsJSON, time.Now().UTC().Format(time.RFC3339)); err != nil {
			return fmt.Errorf("failed to store cache entry: %w", err)
		}

		return nil
	})
}

// InvalidatePath removes all entries for a file
func (c *Cache) InvalidatePath(path string) error {
	_, err := c.db.Exec("DELETE FROM file_cache WHERE path = ?", path)
	if err != nil {
		return fmt.Errorf("failed to invalidate cache for path: %w", err)
	}
	return nil
}

// InvalidateOtherConfigs removes entries stored under engine
// configurations no longer in effect. Called at the start of a run with
// every fingerprint the run can write under (the project configuration
// plus each directory override), so a config change does not leave dead
// rows behind.
func (c *Cache) InvalidateOtherConfigs(activeHashes ...string) error {
	if len(activeHashes) == 0 {
		return nil
	}

	placeholders := strings.Repeat("?,", len(activeHashes))
	args := make([]interface{}, len(activeHashes))
	for i, h := range activeHashes {
		args[i] = h
	}

	res, err := c.db.Exec(
		"DELETE FROM file_cache WHERE config_hash NOT IN ("+placeholders[:len(placeholders)-1]+")",
		args...)
	if err != nil {
		return fmt.Errorf("failed to invalidate cache by config: %w", err)
	}

	if dropped, err := res.RowsAffected(); err == nil && dropped > 0 {
		c.db.logger.Debug("Dropped cache entries from other configurations", map[string]interface{}{
			"dropped": dropped,
		})
	}

	return nil
}

// Clear removes every cache entry
func (c *Cache) Clear() error {
	_, err := c.db.Exec("DELETE FROM file_cache")
	if err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	return nil
}

// Stats returns statistics about cache usage
func (c *Cache) Stats() (CacheStats, error) {
	stats := CacheStats{DBPath: c.db.Path()}

	err := c.db.QueryRow(`
		SELECT COUNT(*), COUNT(DISTINCT path), COALESCE(SUM(LENGTH(components_json)), 0)
		FROM file_cache
	`).Scan(&stats.Entries, &stats.Paths, &stats.SizeBytes)
	if err != nil {
		return CacheStats{}, fmt.Errorf("failed to get cache stats: %w", err)
	}

	return stats, nil
}
