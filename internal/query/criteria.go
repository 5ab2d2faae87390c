package query

import (
	"strings"

	"github.com/shopspring/decimal"
)

// 並び順
type SortKey string

const (
	SortRelevance   SortKey = "relevance" // 並び替えない（カタログ順）
	SortPriceAsc    SortKey = "priceAsc"
	SortPriceDesc   SortKey = "priceDesc"
	SortNameAsc     SortKey = "nameAsc"
	SortNameDesc    SortKey = "nameDesc"
	SortReleaseDate SortKey = "releaseDate" // 新しい順
	SortRating      SortKey = "rating"      // 評価の高い順
)

// ストアページのデフォルト価格帯
var (
	DefaultMinPrice = decimal.Zero
	DefaultMaxPrice = decimal.NewFromInt(100)
)

// ParseSortKey は並び順の文字列を解釈する。
// camelCase と snake_case の両方を受け付け、不明な値は relevance 扱い。
func ParseSortKey(s string) SortKey {
	switch strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "_", "")) {
	case "priceasc":
		return SortPriceAsc
	case "pricedesc":
		return SortPriceDesc
	case "nameasc":
		return SortNameAsc
	case "namedesc":
		return SortNameDesc
	case "releasedate", "new", "newest":
		return SortReleaseDate
	case "rating":
		return SortRating
	default:
		return SortRelevance
	}
}

// 検索条件
// ユーザー操作から来る未検証の値なので、Normalizeで補正してから使う。
type Criteria struct {
	Text       string
	Genres     []string
	Platforms  []string
	MinPrice   decimal.NullDecimal // Valid=false なら下限なし
	MaxPrice   decimal.NullDecimal // Valid=false なら上限なし
	Sort       SortKey
	Category   string // ジャンル名の完全一致（大文字小文字は無視）
	OnSaleOnly bool
}

// Price は価格帯の指定用。
func Price(d decimal.Decimal) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: d, Valid: true}
}

// Normalize は補正済みのコピーを返す。
//   - 前後の空白を除去
//   - 空のジャンル/プラットフォームを除き、重複をまとめる
//   - 負の価格は0に丸める
//   - 下限>上限なら入れ替える
//   - 不明な並び順は relevance
func (c Criteria) Normalize() Criteria {
	out := Criteria{
		Text:       strings.TrimSpace(c.Text),
		Genres:     compact(c.Genres),
		Platforms:  compact(c.Platforms),
		MinPrice:   clampNonNegative(c.MinPrice),
		MaxPrice:   clampNonNegative(c.MaxPrice),
		Sort:       ParseSortKey(string(c.Sort)),
		Category:   strings.TrimSpace(c.Category),
		OnSaleOnly: c.OnSaleOnly,
	}

	if out.MinPrice.Valid && out.MaxPrice.Valid && out.MinPrice.Decimal.GreaterThan(out.MaxPrice.Decimal) {
		out.MinPrice, out.MaxPrice = out.MaxPrice, out.MinPrice
	}
	return out
}

// ActiveFilterCount は「絞り込み中」の数（ジャンル数＋プラットフォーム数＋価格帯を狭めていれば1）。
func (c Criteria) ActiveFilterCount() int {
	n := c.Normalize()

	count := len(n.Genres) + len(n.Platforms)
	if (n.MinPrice.Valid && n.MinPrice.Decimal.GreaterThan(DefaultMinPrice)) ||
		(n.MaxPrice.Valid && n.MaxPrice.Decimal.LessThan(DefaultMaxPrice)) {
		count++
	}
	return count
}

func clampNonNegative(p decimal.NullDecimal) decimal.NullDecimal {
	if p.Valid && p.Decimal.IsNegative() {
		return Price(decimal.Zero)
	}
	return p
}

func compact(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
