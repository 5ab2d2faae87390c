package query_test

import (
	"sync"
	"testing"

	"storefront/internal/catalog"
	"storefront/internal/domain/model"
	"storefront/internal/query"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// テスト用の読み取り元
type sliceSource []model.CatalogItem

func (s sliceSource) All() []model.CatalogItem { return s }

var decimalComparer = cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })

func seed(t *testing.T) *catalog.Store {
	t.Helper()
	s, err := catalog.Load("")
	require.NoError(t, err)
	return s
}

func ids(items []model.CatalogItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

func priced(id string, price string, sale string) model.CatalogItem {
	it := model.CatalogItem{ID: id, Title: "Game " + id, Price: decimal.RequireFromString(price)}
	if sale != "" {
		d := decimal.RequireFromString(sale)
		it.SalePrice = &d
	}
	return it
}

// =====================
// Filter
// =====================

func TestRun_NoCriteria_ReturnsCatalogOrder(t *testing.T) {
	got := query.Run(seed(t), query.Criteria{})
	assert.Equal(t, []string{"1", "2", "3", "4", "5", "6", "7", "8"}, ids(got))
}

func TestRun_InvertedPriceRangeIsSwapped(t *testing.T) {
	c := query.Criteria{MinPrice: query.Price(decimal.NewFromInt(50)), MaxPrice: query.Price(decimal.NewFromInt(10))}

	got := query.Run(seed(t), c)
	assert.Equal(t, []string{"1", "2", "3", "4", "5", "7", "8"}, ids(got))
	for _, it := range got {
		p := it.EffectivePrice()
		assert.True(t, p.GreaterThanOrEqual(decimal.NewFromInt(10)) && p.LessThanOrEqual(decimal.NewFromInt(50)), it.ID)
	}
}

func TestRun_PriceRangeUsesEffectivePriceInclusive(t *testing.T) {
	src := sliceSource{
		priced("a", "59.99", "39.99"),
		priced("b", "39.99", ""),
		priced("c", "40.00", ""),
	}
	c := query.Criteria{MinPrice: query.Price(decimal.RequireFromString("39.99")), MaxPrice: query.Price(decimal.RequireFromString("39.99"))}

	assert.Equal(t, []string{"a", "b"}, ids(query.Run(src, c)))
}

func TestRun_NegativeMinPriceClampedToZero(t *testing.T) {
	c := query.Criteria{MinPrice: query.Price(decimal.NewFromInt(-5)), MaxPrice: query.Price(decimal.NewFromInt(20))}

	assert.Equal(t, []string{"3", "8"}, ids(query.Run(seed(t), c)))
}

func TestRun_GenreAndText(t *testing.T) {
	c := query.Criteria{Genres: []string{"RPG"}, Text: "cyber"}

	got := query.Run(seed(t), c)
	require.Equal(t, []string{"1"}, ids(got))
	assert.True(t, got[0].HasGenre("RPG"))
}

func TestRun_TextIsCaseInsensitiveAndTrimmed(t *testing.T) {
	s := seed(t)

	assert.Equal(t, []string{"1"}, ids(query.Run(s, query.Criteria{Text: "  CYBER  "})))
	//ジャンル名・説明文にもマッチ
	assert.Equal(t, []string{"1", "2", "7"}, ids(query.Search(s, "rpg")))
	//プラットフォーム名にもマッチ
	assert.Equal(t, []string{"8"}, ids(query.Search(s, "mobile")))
	assert.Empty(t, query.Search(s, "no such game"))
}

func TestRun_GenresAreUnion(t *testing.T) {
	got := query.Run(seed(t), query.Criteria{Genres: []string{"Racing", "Puzzle"}})
	assert.Equal(t, []string{"3", "8"}, ids(got))
}

func TestRun_Platforms(t *testing.T) {
	got := query.Run(seed(t), query.Criteria{Platforms: []string{"Nintendo Switch"}})
	assert.Equal(t, []string{"2", "7", "8"}, ids(got))
}

func TestRun_Category(t *testing.T) {
	got := query.Run(seed(t), query.Criteria{Category: "rpg"})
	assert.Equal(t, []string{"1", "2", "7"}, ids(got))
}

func TestRun_OnSaleOnly(t *testing.T) {
	got := query.Run(seed(t), query.Criteria{OnSaleOnly: true})
	assert.Equal(t, []string{"1", "3", "5", "8"}, ids(got))
}

func TestRun_EmptyFacetValuesIgnored(t *testing.T) {
	got := query.Run(seed(t), query.Criteria{Genres: []string{"", "  "}})
	assert.Len(t, got, 8)
}

// =====================
// Sort
// =====================

func TestRun_SortPriceDesc(t *testing.T) {
	src := sliceSource{
		priced("a", "59.99", "39.99"),
		priced("b", "49.99", ""),
		priced("c", "39.99", "19.99"),
	}

	got := query.Run(src, query.Criteria{Sort: query.SortPriceDesc})
	assert.Equal(t, []string{"b", "a", "c"}, ids(got))
}

func TestRun_Sorts(t *testing.T) {
	s := seed(t)

	tests := []struct {
		sort query.SortKey
		want []string
	}{
		{query.SortRelevance, []string{"1", "2", "3", "4", "5", "6", "7", "8"}},
		{query.SortPriceAsc, []string{"8", "3", "4", "5", "1", "2", "7", "6"}},
		{query.SortPriceDesc, []string{"6", "2", "7", "1", "4", "5", "3", "8"}},
		{query.SortNameAsc, []string{"5", "1", "2", "7", "8", "6", "4", "3"}},
		{query.SortNameDesc, []string{"3", "4", "6", "8", "7", "2", "1", "5"}},
		{query.SortReleaseDate, []string{"4", "6", "2", "5", "1", "7", "3", "8"}},
		{query.SortRating, []string{"1", "6", "4", "2", "7", "5", "8", "3"}},
		{"bogus", []string{"1", "2", "3", "4", "5", "6", "7", "8"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.sort), func(t *testing.T) {
			assert.Equal(t, tt.want, ids(query.Run(s, query.Criteria{Sort: tt.sort})))
		})
	}
}

func TestRun_SortIsStableForTies(t *testing.T) {
	src := sliceSource{
		priced("x", "10", ""),
		priced("y", "5", ""),
		priced("z", "10", ""),
	}

	got := query.Run(src, query.Criteria{Sort: query.SortPriceDesc})
	assert.Equal(t, []string{"x", "z", "y"}, ids(got))
}

// =====================
// Determinism / concurrency
// =====================

func TestRun_Deterministic(t *testing.T) {
	s := seed(t)
	c := query.Criteria{Text: "a", Platforms: []string{"PC"}, Sort: query.SortNameAsc, MaxPrice: query.Price(decimal.NewFromInt(50))}

	first := query.Run(s, c)
	second := query.Run(s, c)
	if diff := cmp.Diff(first, second, decimalComparer); diff != "" {
		t.Fatalf("Run not deterministic (-first +second):\n%s", diff)
	}
}

func TestRun_Concurrent(t *testing.T) {
	s := seed(t)
	want := ids(query.Run(s, query.Criteria{Sort: query.SortNameAsc, Text: "adventure"}))

	var wg sync.WaitGroup
	results := make([][]string, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = ids(query.Run(s, query.Criteria{Sort: query.SortNameAsc, Text: "adventure"}))
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
}
