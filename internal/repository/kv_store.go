package repository

import (
	"context"

	"storefront/internal/domain/model"
)

// 文字列キーに文字列値を保存する永続ストア（カートのスナップショットの保存先）。
// キーが無いときは ErrNotFound を返す。
type KVStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
}

// 読み込み済みカタログの参照だけを約束。
type CatalogReader interface {
	All() []model.CatalogItem
	ByID(id string) (model.CatalogItem, bool)
	Featured() []model.CatalogItem
	NewReleases(limit int) []model.CatalogItem
	OnSale() []model.CatalogItem
	Genres() []string
	Platforms() []string
}
