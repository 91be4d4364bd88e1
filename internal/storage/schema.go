package storage

import (
	"database/sql"
	"fmt"
)

// Schema version tracking
const currentSchemaVersion = 1

// initializeSchema creates all tables for a new database
func (db *DB) initializeSchema() error {
	return db.WithTx(func(tx *sql.Tx) error {
		if err := createSchemaVersionTable(tx); err != nil {
			return err
		}

		if err := createFileCacheTable(tx); err != nil {
			return err
		}

		if err := setSchemaVersion(tx, currentSchemaVersion); err != nil {
			return err
		}

		db.logger.Info("Cache schema initialized", map[string]interface{}{
			"version": currentSchemaVersion,
		})

		return nil
	})
}

// runMigrations runs any pending schema migrations
func (db *DB) runMigrations() error {
	version, err := db.getSchemaVersion()
	if err != nil {
		return err
	}

	if version == currentSchemaVersion {
		db.logger.Debug("Cache schema is up to date", map[string]interface{}{
			"version": version,
		})
		return nil
	}

	db.logger.Info("Migrating cache schema", map[string]interface{}{
		"from_version": version,
		"to_version":   currentSchemaVersion,
	})

	// Run migrations sequentially as the schema evolves. A cache can
	// always be rebuilt, so unknown old versions are dropped wholesale.
	if version < 1 {
		return db.WithTx(func(tx *sql.Tx) error {
			if _, err := tx.Exec("DROP TABLE IF EXISTS file_cache"); err != nil {
				return err
			}
			if err := createFileCacheTable(tx); err != nil {
				return err
			}
			return setSchemaVersion(tx, currentSchemaVersion)
		})
	}

	return nil
}

// getSchemaVersion gets the current schema version
func (db *DB) getSchemaVersion() (int, error) {
	// Check if schema_version table exists
	var tableName string
	err := db.QueryRow(`
		SELECT name FROM sqlite_master
		WHERE type='table' AND name='schema_version'
	`).Scan(&tableName)

	if err == sql.ErrNoRows {
		// Table doesn't exist, this is a new database
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	var version int
	err = db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&version)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	return version, nil
}

// setSchemaVersion sets the schema version
func setSchemaVersion(tx *sql.Tx, version int) error {
	_, err := tx.Exec("DELETE FROM schema_version")
	if err != nil {
		return err
	}
	_, err = tx.Exec("INSERT INTO schema_version (version) VALUES (?)", version)
	return err
}

// createSchemaVersionTable creates the schema_version tracking table
func createSchemaVersionTable(tx *sql.Tx) error {
	_, err := tx.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER NOT NULL
		)
	`)
	return err
}

// createFileCacheTable creates the per-file verdict cache table.
// An entry is valid only while both the file content and the engine
// configuration hash to the same values it was stored under.
func createFileCacheTable(tx *sql.Tx) error {
	_, err := tx.Exec(`
		CREATE TABLE IF NOT EXISTS file_cache (
			path TEXT NOT NULL,
			content_hash TEXT NOT NULL,
			config_hash TEXT NOT NULL,
			language TEXT NOT NULL,
			components_json TEXT NOT NULL,
			created_at TEXT NOT NULL,

			PRIMARY KEY (path, content_hash, config_hash)
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create file_cache table: %w", err)
	}

	// Create indexes for invalidation queries
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_file_cache_path ON file_cache(path)",
		"CREATE INDEX IF NOT EXISTS idx_file_cache_config_hash ON file_cache(config_hash)",
	}

	for _, indexSQL := range indexes {
		if _, err := tx.Exec(indexSQL); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}
