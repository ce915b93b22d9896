// Package sqlite persists client settings in a sqlite database.
package sqlite

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/rocketgeek/akismetclient-go/errors"
)

type Store struct {
	db *sql.DB
}

func Open(path string) (*Store, error) {
	if path == "" {
		return nil, errors.NewConfigError("sqlite path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, errors.NewStorageError("mkdir settings dir", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.NewStorageError("open sqlite", err)
	}
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) migrate(ctx context.Context) error {
	stmts := []string{
		`PRAGMA journal_mode=WAL;`,
		`CREATE TABLE IF NOT EXISTS options (
			name TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_ts_unix_ns INTEGER NOT NULL
		);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return errors.NewStorageError("sqlite migrate", err)
		}
	}
	return nil
}

func (s *Store) Get(ctx context.Context, name string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM options WHERE name = ?`, name).Scan(&value)
	if stderrors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.NewStorageError(fmt.Sprintf("read option %s", name), err)
	}
	return value, true, nil
}

func (s *Store) Set(ctx context.Context, name, value string) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO options (name, value, updated_ts_unix_ns) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET value = excluded.value, updated_ts_unix_ns = excluded.updated_ts_unix_ns`,
		name, value, time.Now().UnixNano())
	if err != nil {
		return errors.NewStorageError(fmt.Sprintf("write option %s", name), err)
	}
	return nil
}
