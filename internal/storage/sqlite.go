package storage

import (
	"database/sql"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/ansetechnoapp/syncmark-helper/internal/model"
)

// SQLiteFileName is the database file used by the sqlite backend.
const SQLiteFileName = "syncmark_bookmarks.db"

const currentSchemaVersion = 1

// SQLiteStorage implements Storage using a SQLite database.
// Each record is stored verbatim alongside its position in the set.
type SQLiteStorage struct {
	db   *sql.DB
	path string
}

// NewSQLiteStorage creates a new SQLiteStorage with the given database path.
func NewSQLiteStorage(path string) (*SQLiteStorage, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, err
		}
	}

	s := &SQLiteStorage{db: db, path: path}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// Path returns the database file path.
func (s *SQLiteStorage) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// SchemaVersion returns the schema version recorded in the database.
func (s *SQLiteStorage) SchemaVersion() (int, error) {
	var version int
	err := s.db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&version)
	return version, err
}

func (s *SQLiteStorage) migrate() error {
	version, err := s.SchemaVersion()
	if err != nil {
		// Table doesn't exist or is empty, start fresh
		version = 0
	}

	if version < currentSchemaVersion {
		if err := s.migrateV1(); err != nil {
			return err
		}
	}

	return nil
}

// migrateV1 creates the initial schema. Records are opaque, so the url is
// read from the record itself rather than kept in a column of its own.
func (s *SQLiteStorage) migrateV1() error {
	schema := `
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS bookmarks (
			position INTEGER PRIMARY KEY NOT NULL,
			record TEXT NOT NULL
		);

		INSERT OR REPLACE INTO schema_version (version) VALUES (1);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Load reads the bookmark set from the database, in stored order.
func (s *SQLiteStorage) Load() (model.Set, error) {
	rows, err := s.db.Query(`SELECT record FROM bookmarks ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	set := model.NewSet()
	for rows.Next() {
		var record string
		if err := rows.Scan(&record); err != nil {
			return nil, err
		}
		b, err := model.ParseBookmark([]byte(record))
		if err != nil {
			return nil, err
		}
		set = append(set, b)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return set, nil
}

// Save replaces the stored set with the given one.
// Uses a transaction for atomicity - all or nothing.
func (s *SQLiteStorage) Save(set model.Set) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM bookmarks"); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`INSERT INTO bookmarks (position, record) VALUES (?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, b := range set {
		raw, err := b.MarshalJSON()
		if err != nil {
			return err
		}
		if _, err := stmt.Exec(i, string(raw)); err != nil {
			return err
		}
	}

	return tx.Commit()
}
