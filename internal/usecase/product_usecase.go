package usecase

import (
	"context"
	"net/http"
	"strings"

	"storefront/internal/domain/model"
	"storefront/internal/query"
	repo "storefront/internal/repository"

	"github.com/shopspring/decimal"
)

const (
	defaultLimit     = 20
	maxLimit         = 100
	newReleasesLimit = 3
)

type ProductUsecase struct {
	catalog repo.CatalogReader
}

// DI
func NewProductUsecase(catalog repo.CatalogReader) *ProductUsecase {
	return &ProductUsecase{catalog: catalog}
}

// GET /productsの入力DTO
// 画面操作から来る値なので、不正な値はエラーにせず補正する。
type ListProductsInput struct {
	Page      int
	Limit     int
	Q         string
	Genres    []string
	Platforms []string
	MinPrice  *decimal.Decimal
	MaxPrice  *decimal.Decimal
	Sort      string
	Category  string
	OnSale    bool
}

type ProductListOutput struct {
	Items         []model.CatalogItem `json:"items"`
	Total         int64               `json:"total"`
	Page          int                 `json:"page"`
	Limit         int                 `json:"limit"`
	ActiveFilters int                 `json:"active_filters"`
}

type FacetsOutput struct {
	Genres    []string `json:"genres"`
	Platforms []string `json:"platforms"`
}

type HomeOutput struct {
	Featured    []model.CatalogItem `json:"featured"`
	NewReleases []model.CatalogItem `json:"new_releases"`
	OnSale      []model.CatalogItem `json:"on_sale"`
}

func (u *ProductUsecase) ListProducts(ctx context.Context, in ListProductsInput) (ProductListOutput, error) {
	page := in.Page
	if page < 1 {
		page = 1
	}
	limit := in.Limit
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	criteria := query.Criteria{
		Text:       in.Q,
		Genres:     in.Genres,
		Platforms:  in.Platforms,
		MinPrice:   nullPrice(in.MinPrice),
		MaxPrice:   nullPrice(in.MaxPrice),
		Sort:       query.SortKey(in.Sort),
		Category:   in.Category,
		OnSaleOnly: in.OnSale,
	}

	items := query.Run(u.catalog, criteria)
	total := len(items)

	//ページング（パイプラインの結果に対して行う）
	// 巨大なpageでも掛け算があふれないよう、先に範囲外を判定する
	offset := total
	if page-1 <= total/limit {
		offset = min((page-1)*limit, total)
	}
	end := total
	if total-offset > limit {
		end = offset + limit
	}

	return ProductListOutput{
		Items:         items[offset:end],
		Total:         int64(total),
		Page:          page,
		Limit:         limit,
		ActiveFilters: criteria.ActiveFilterCount(),
	}, nil
}

func (u *ProductUsecase) GetProductDetail(ctx context.Context, productID string) (model.CatalogItem, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return model.CatalogItem{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	p, ok := u.catalog.ByID(productID)
	if !ok {
		return model.CatalogItem{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	return p, nil
}

// 絞り込み画面の選択肢
func (u *ProductUsecase) Facets(ctx context.Context) FacetsOutput {
	return FacetsOutput{
		Genres:    u.catalog.Genres(),
		Platforms: u.catalog.Platforms(),
	}
}

// トップページの商品一覧
func (u *ProductUsecase) Home(ctx context.Context) HomeOutput {
	return HomeOutput{
		Featured:    u.catalog.Featured(),
		NewReleases: u.catalog.NewReleases(newReleasesLimit),
		OnSale:      u.catalog.OnSale(),
	}
}

func nullPrice(p *decimal.Decimal) decimal.NullDecimal {
	if p == nil {
		return decimal.NullDecimal{}
	}
	return query.Price(*p)
}
