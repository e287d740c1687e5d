package sqlite

import (
	"database/sql"
	"os"
	"path/filepath"

	"github.com/hutarka-ai/hutarka/pkg/domain/interfaces"
	"github.com/m-mizutani/goerr/v2"

	_ "modernc.org/sqlite"
)

// SQLite is a Repository backed by a local SQLite database, suited to
// single-node deployments where state lives in a file next to the process.
type SQLite struct {
	db *sql.DB
}

var _ interfaces.Repository = &SQLite{}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		embedding TEXT
	)`,
}

func New(dbPath string) (*SQLite, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, goerr.Wrap(err, "failed to create database directory", goerr.V("dir", dir))
	}

	db, err := sql.Open("sqlite", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open sqlite database", goerr.V("path", dbPath))
	}

	x := &SQLite{db: db}
	if err := x.migrate(); err != nil {
		_ = db.Close()
		return nil, goerr.Wrap(err, "failed to migrate sqlite database", goerr.V("path", dbPath))
	}

	return x, nil
}

func (x *SQLite) migrate() error {
	for _, stmt := range migrations {
		if _, err := x.db.Exec(stmt); err != nil {
			return goerr.Wrap(err, "migration failed", goerr.V("stmt", stmt))
		}
	}
	return nil
}

func (x *SQLite) Close() error {
	return x.db.Close()
}
