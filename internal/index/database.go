// Package index handles the SQLite document index.
package index

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	_ "modernc.org/sqlite"
)

// Database is the SQLite database handle.
type Database struct {
	db *sql.DB
}

var (
	// ErrDocumentNotFound indicates the requested path is not in the index.
	ErrDocumentNotFound = errors.New("document not found in index")
)

// FileName is the index file inside the state directory.
const FileName = "index.db"

// CurrentDBVersion is the current database schema version.
// v1: documents table
// v2: date_error column for documents whose date failed to parse
const CurrentDBVersion = 2

// Open opens or creates the database inside stateDir.
func Open(stateDir string) (*Database, error) {
	if err := os.MkdirAll(stateDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", stateDir, err)
	}

	db, err := sql.Open("sqlite", filepath.Join(stateDir, FileName))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	d := &Database{db: db}
	if err := d.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	return d, nil
}

// OpenWithRebuild opens the database, recreating it if the stored schema
// version differs from CurrentDBVersion.
// Returns (database, wasRebuilt, error).
func OpenWithRebuild(stateDir string) (*Database, bool, error) {
	dbPath := filepath.Join(stateDir, FileName)

	if _, err := os.Stat(dbPath); err == nil {
		db, err := sql.Open("sqlite", dbPath)
		if err == nil {
			compatible := isSchemaCompatible(db)
			db.Close()
			if !compatible {
				if err := removeDatabaseFiles(dbPath); err != nil {
					return nil, false, err
				}
				fresh, err := Open(stateDir)
				return fresh, true, err
			}
		}
	}

	db, err := Open(stateDir)
	return db, false, err
}

// Close closes the database.
func (d *Database) Close() error {
	return d.db.Close()
}

func removeDatabaseFiles(dbPath string) error {
	paths := []string{dbPath, dbPath + "-wal", dbPath + "-shm"}
	for _, p := range paths {
		if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to remove %s: %w", p, err)
		}
	}
	return nil
}

// isSchemaCompatible reports whether db was written by this schema version.
func isSchemaCompatible(db *sql.DB) bool {
	var value string
	err := db.QueryRow("SELECT value FROM meta WHERE key = 'version'").Scan(&value)
	if err != nil {
		return false
	}
	version, err := strconv.Atoi(value)
	return err == nil && version == CurrentDBVersion
}

// initialize creates the database schema.
func (d *Database) initialize() error {
	schema := `
		PRAGMA journal_mode = WAL;
		PRAGMA synchronous = NORMAL;
		PRAGMA temp_store = MEMORY;

		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS documents (
			path TEXT PRIMARY KEY,
			permalink TEXT NOT NULL,
			title TEXT NOT NULL DEFAULT '',
			date_source TEXT NOT NULL DEFAULT '',
			date_utc_ms INTEGER,        -- NULL when undated or unparseable
			date_error TEXT NOT NULL DEFAULT '',
			indexed_at INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_documents_date ON documents(date_utc_ms);
	`

	if _, err := d.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	_, err := d.db.Exec(
		"INSERT OR IGNORE INTO meta (key, value) VALUES ('version', ?)",
		strconv.Itoa(CurrentDBVersion),
	)
	if err != nil {
		return fmt.Errorf("failed to record schema version: %w", err)
	}
	return nil
}
