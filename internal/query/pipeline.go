// Package query はカタログの絞り込み・検索・並び替えを行う。
// 副作用の無い純粋関数なので、同時に何回呼んでもよい。
package query

import (
	"cmp"
	"slices"
	"strings"

	"storefront/internal/domain/model"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// 商品の読み取り元（catalog.Store）
type Source interface {
	All() []model.CatalogItem
}

// Run は条件で絞り込んで並び替えた結果を返す。
// 毎回カタログ全体から計算し直す（キャッシュは持たない）。
func Run(src Source, c Criteria) []model.CatalogItem {
	c = c.Normalize()
	m := newMatcher(c)

	out := []model.CatalogItem{}
	for _, it := range src.All() {
		if m.match(it) {
			out = append(out, it)
		}
	}

	if less := comparator(c.Sort); less != nil {
		// 同じキーはカタログ順を保つ
		slices.SortStableFunc(out, less)
	}
	return out
}

// Search はテキストだけで検索する。
func Search(src Source, text string) []model.CatalogItem {
	return Run(src, Criteria{Text: text})
}

type matcher struct {
	c         Criteria
	fold      cases.Caser
	text      string
	genres    map[string]bool
	platforms map[string]bool
}

// cases.Caser は並行利用できないので Run ごとに作る
func newMatcher(c Criteria) *matcher {
	m := &matcher{
		c:         c,
		fold:      cases.Fold(),
		genres:    toSet(c.Genres),
		platforms: toSet(c.Platforms),
	}
	m.text = m.fold.String(c.Text)
	return m
}

func (m *matcher) match(it model.CatalogItem) bool {
	return m.matchText(it) &&
		m.matchGenres(it) &&
		m.matchPlatforms(it) &&
		m.matchPrice(it) &&
		m.matchCategory(it) &&
		m.matchSale(it)
}

// タイトル・説明・ジャンル・プラットフォームのどれかに部分一致（大文字小文字を無視）
func (m *matcher) matchText(it model.CatalogItem) bool {
	if m.text == "" {
		return true
	}
	if m.contains(it.Title) || m.contains(it.Description) {
		return true
	}
	for _, g := range it.Genres {
		if m.contains(g) {
			return true
		}
	}
	for _, p := range it.Platforms {
		if m.contains(p) {
			return true
		}
	}
	return false
}

func (m *matcher) contains(s string) bool {
	return strings.Contains(m.fold.String(s), m.text)
}

// 選択なしは全件通す。選択ありは1つでも重なれば通す。
func (m *matcher) matchGenres(it model.CatalogItem) bool {
	return len(m.genres) == 0 || intersects(it.Genres, m.genres)
}

func (m *matcher) matchPlatforms(it model.CatalogItem) bool {
	return len(m.platforms) == 0 || intersects(it.Platforms, m.platforms)
}

// 実売価格（セール価格優先）で下限〜上限（両端含む）
func (m *matcher) matchPrice(it model.CatalogItem) bool {
	price := it.EffectivePrice()
	if m.c.MinPrice.Valid && price.LessThan(m.c.MinPrice.Decimal) {
		return false
	}
	if m.c.MaxPrice.Valid && price.GreaterThan(m.c.MaxPrice.Decimal) {
		return false
	}
	return true
}

func (m *matcher) matchCategory(it model.CatalogItem) bool {
	if m.c.Category == "" {
		return true
	}
	for _, g := range it.Genres {
		if strings.EqualFold(g, m.c.Category) {
			return true
		}
	}
	return false
}

func (m *matcher) matchSale(it model.CatalogItem) bool {
	return !m.c.OnSaleOnly || it.OnSale()
}

// relevance は nil（並び替えない）
func comparator(key SortKey) func(a, b model.CatalogItem) int {
	switch key {
	case SortPriceAsc:
		return func(a, b model.CatalogItem) int {
			return a.EffectivePrice().Cmp(b.EffectivePrice())
		}
	case SortPriceDesc:
		return func(a, b model.CatalogItem) int {
			return b.EffectivePrice().Cmp(a.EffectivePrice())
		}
	case SortNameAsc:
		coll := collate.New(language.English)
		return func(a, b model.CatalogItem) int {
			return coll.CompareString(a.Title, b.Title)
		}
	case SortNameDesc:
		coll := collate.New(language.English)
		return func(a, b model.CatalogItem) int {
			return coll.CompareString(b.Title, a.Title)
		}
	case SortReleaseDate:
		return func(a, b model.CatalogItem) int {
			return b.ReleaseDate.Compare(a.ReleaseDate.Time)
		}
	case SortRating:
		return func(a, b model.CatalogItem) int {
			return cmp.Compare(b.Rating, a.Rating)
		}
	default:
		return nil
	}
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}

func intersects(values []string, set map[string]bool) bool {
	for _, v := range values {
		if set[v] {
			return true
		}
	}
	return false
}
