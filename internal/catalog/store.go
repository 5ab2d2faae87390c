package catalog

import (
	"errors"
	"fmt"
	"slices"

	"storefront/internal/domain/model"
)

var ErrDuplicateID = errors.New("duplicate catalog id")

// 読み込み済みのカタログ。
// 構築後は一切変更しないので、ロック無しで並行に読んでよい。
type Store struct {
	items     []model.CatalogItem
	index     map[string]int
	genres    []string
	platforms []string
}

// NewStore は商品を検証して Store を作る。
// 割引率が省略されている商品は補完する。
func NewStore(items []model.CatalogItem) (*Store, error) {
	s := &Store{
		items: make([]model.CatalogItem, 0, len(items)),
		index: make(map[string]int, len(items)),
	}

	seenGenre := map[string]bool{}
	seenPlatform := map[string]bool{}

	for _, it := range items {
		normalized, err := it.Normalize()
		if err != nil {
			return nil, err
		}
		if _, dup := s.index[normalized.ID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, normalized.ID)
		}

		s.index[normalized.ID] = len(s.items)
		s.items = append(s.items, normalized)

		// ファセットは初出順
		for _, g := range normalized.Genres {
			if !seenGenre[g] {
				seenGenre[g] = true
				s.genres = append(s.genres, g)
			}
		}
		for _, p := range normalized.Platforms {
			if !seenPlatform[p] {
				seenPlatform[p] = true
				s.platforms = append(s.platforms, p)
			}
		}
	}

	return s, nil
}

// 全商品（読み込み順）
func (s *Store) All() []model.CatalogItem {
	return slices.Clone(s.items)
}

func (s *Store) Len() int {
	return len(s.items)
}

func (s *Store) ByID(id string) (model.CatalogItem, bool) {
	i, ok := s.index[id]
	if !ok {
		return model.CatalogItem{}, false
	}
	return s.items[i], true
}

func (s *Store) ByGenre(genre string) []model.CatalogItem {
	return s.filter(func(it model.CatalogItem) bool { return it.HasGenre(genre) })
}

func (s *Store) ByPlatform(platform string) []model.CatalogItem {
	return s.filter(func(it model.CatalogItem) bool { return it.HasPlatform(platform) })
}

// おすすめ（featuredフラグの付いた商品）
func (s *Store) Featured() []model.CatalogItem {
	return s.filter(func(it model.CatalogItem) bool { return it.Featured })
}

// セール中の商品
func (s *Store) OnSale() []model.CatalogItem {
	return s.filter(model.CatalogItem.OnSale)
}

// 発売日の新しい順に最大limit件。limit<=0なら全件。
func (s *Store) NewReleases(limit int) []model.CatalogItem {
	out := slices.Clone(s.items)
	slices.SortStableFunc(out, func(a, b model.CatalogItem) int {
		return b.ReleaseDate.Compare(a.ReleaseDate.Time)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// 全ジャンル（初出順）
func (s *Store) Genres() []string {
	return slices.Clone(s.genres)
}

// 全プラットフォーム（初出順）
func (s *Store) Platforms() []string {
	return slices.Clone(s.platforms)
}

func (s *Store) filter(keep func(model.CatalogItem) bool) []model.CatalogItem {
	out := []model.CatalogItem{}
	for _, it := range s.items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}
