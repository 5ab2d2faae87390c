package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"

	repo "storefront/internal/repository"
)

// 1キー1ファイルで保存するKVストア
type KVFileRepository struct {
	dir string
}

// DI（ディレクトリが無ければ作る）
func NewKVFileRepository(dir string) (*KVFileRepository, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("kv file mkdir: %w", err)
	}
	return &KVFileRepository{dir: dir}, nil
}

func (r *KVFileRepository) Get(ctx context.Context, key string) (string, error) {
	b, err := os.ReadFile(r.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return "", repo.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("kv file read %q: %w", key, err)
	}
	return string(b), nil
}

// 一時ファイルに書いてからrenameする（途中で落ちても壊れたファイルを残さない）
func (r *KVFileRepository) Set(ctx context.Context, key string, value string) error {
	tmp, err := os.CreateTemp(r.dir, ".kv-*")
	if err != nil {
		return fmt.Errorf("kv file create temp: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(value); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("kv file write %q: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("kv file close %q: %w", key, err)
	}
	if err := os.Rename(tmpName, r.path(key)); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("kv file rename %q: %w", key, err)
	}
	return nil
}

func (r *KVFileRepository) path(key string) string {
	return filepath.Join(r.dir, url.PathEscape(key)+".json")
}
