package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// SessionsDB is the sqlite file created in the data directory
const SessionsDB = "sessions.db"

const createSessionsTable = `CREATE TABLE IF NOT EXISTS sessions (
	token      TEXT PRIMARY KEY,
	last_page  INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
)`

// SQLiteStore keeps sessions across server restarts
type SQLiteStore struct {
	db *sql.DB
}

func OpenSQLiteStore(dataDir string) (*SQLiteStore, error) {
	dbPath := filepath.Join(dataDir, SessionsDB)
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open session database: %w", err)
	}
	// a single connection serialises writers
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(createSessionsTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create sessions table: %w", err)
	}

	slog.Debug("Opened session database", "path", dbPath)
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) LastPage(ctx context.Context, token string) (int, bool, error) {
	var page int
	err := s.db.QueryRowContext(ctx, `SELECT last_page FROM sessions WHERE token = ?`, token).Scan(&page)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to read session: %w", err)
	}
	return page, true, nil
}

func (s *SQLiteStore) SetLastPage(ctx context.Context, token string, page int) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO sessions (token, last_page, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(token) DO UPDATE SET last_page = excluded.last_page, updated_at = excluded.updated_at`,
		token, page, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
