package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	repo "storefront/internal/repository"
)

const createKVEntriesSQL = `
CREATE TABLE IF NOT EXISTS kv_entries (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at TEXT NOT NULL
)`

// SQLiteに保存するKVストア
type KVSQLiteRepository struct {
	db *sql.DB
}

// DI（テーブルが無ければ作る）
func NewKVSQLiteRepository(ctx context.Context, db *sql.DB) (*KVSQLiteRepository, error) {
	if _, err := db.ExecContext(ctx, createKVEntriesSQL); err != nil {
		return nil, fmt.Errorf("kv sqlite migrate: %w", err)
	}
	return &KVSQLiteRepository{db: db}, nil
}

func (r *KVSQLiteRepository) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM kv_entries WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", repo.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("kv sqlite get %q: %w", key, err)
	}
	return value, nil
}

// 同一キーは上書き
func (r *KVSQLiteRepository) Set(ctx context.Context, key string, value string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO kv_entries (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("kv sqlite set %q: %w", key, err)
	}
	return nil
}
