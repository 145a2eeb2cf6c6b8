package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/codeOfTheFuture/mern-stack-authentication/internal/client/session/migrations"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

const userInfoKey = "userInfo"

type SQLiteStore struct {
	db *sql.DB
}

// Open opens (or creates) the local session database at dsn and applies the
// embedded migrations.
func Open(ctx context.Context, dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}

	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return nil, fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, "."); err != nil {
		return nil, fmt.Errorf("failed to migrate session store: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) SetCredentials(ctx context.Context, info UserInfo) error {
	value, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to encode user info: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO session (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, userInfoKey, value)
	if err != nil {
		return fmt.Errorf("failed to store user info: %w", err)
	}

	return nil
}

func (s *SQLiteStore) Current(ctx context.Context) (*UserInfo, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM session WHERE key = ?`, userInfoKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user info: %w", err)
	}

	var info UserInfo
	if err := json.Unmarshal(value, &info); err != nil {
		return nil, fmt.Errorf("failed to decode user info: %w", err)
	}

	return &info, nil
}

func (s *SQLiteStore) ClearCredentials(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM session WHERE key = ?`, userInfoKey)
	if err != nil {
		return fmt.Errorf("failed to clear user info: %w", err)
	}

	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
