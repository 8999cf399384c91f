package store

import (
	"database/sql"
	_ "embed"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// ledgerVersion is written to PRAGMA user_version when the schema is created.
const ledgerVersion = 1

// connParams are go-sqlite3 DSN options, applied to every connection the
// driver opens.
const connParams = "_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000&_foreign_keys=on"

// ErrUnsupportedVersion is returned by Open for a ledger written by a newer
// version of fissure.
var ErrUnsupportedVersion = errors.New("unsupported ledger version")

// Store is the run ledger.
type Store struct {
	db *sql.DB
}

// Open opens the ledger at path, creating the file and its schema when
// the file is new. Opening an existing ledger leaves it untouched.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?"+connParams)
	if err != nil {
		return nil, fmt.Errorf("open ledger %s: %w", path, err)
	}
	// One writer at a time; a single connection also keeps BEGIN/COMMIT
	// and MAX(seq) reads on the same session.
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("open ledger %s: %w", path, err)
	}
	return s, nil
}

// ensureSchema creates the tables of a new ledger and stamps its version.
func (s *Store) ensureSchema() error {
	var version int
	if err := s.db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("read version: %w", err)
	}
	if version == ledgerVersion {
		return nil
	}
	if version > ledgerVersion {
		return fmt.Errorf("%w: file is v%d, this build reads v%d", ErrUnsupportedVersion, version, ledgerVersion)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin schema: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", ledgerVersion)); err != nil {
		return fmt.Errorf("stamp version: %w", err)
	}
	return tx.Commit()
}

// Close releases the database handle.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
