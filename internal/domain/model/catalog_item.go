package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrInvalidCatalogItem = errors.New("invalid catalog item")

var hundred = decimal.NewFromInt(100)

// カタログの商品（ゲーム）
// 起動時に一度だけ読み込み、以後は変更しない。
type CatalogItem struct {
	ID          string           `json:"id" yaml:"id"`
	Title       string           `json:"title" yaml:"title"`
	Description string           `json:"description" yaml:"description"`
	Price       decimal.Decimal  `json:"price" yaml:"price"`
	SalePrice   *decimal.Decimal `json:"sale_price,omitempty" yaml:"sale_price"`
	Discount    *int64           `json:"discount,omitempty" yaml:"discount"` // 割引率（%）
	Image       string           `json:"image" yaml:"image"`
	Screenshots []string         `json:"screenshots" yaml:"screenshots"`
	ReleaseDate Date             `json:"release_date" yaml:"release_date"`
	Developer   string           `json:"developer" yaml:"developer"`
	Publisher   string           `json:"publisher" yaml:"publisher"`
	Genres      []string         `json:"genres" yaml:"genres"`
	Platforms   []string         `json:"platforms" yaml:"platforms"`
	Rating      float64          `json:"rating" yaml:"rating"`   // 0〜5
	Reviews     int64            `json:"reviews" yaml:"reviews"` // レビュー件数
	Featured    bool             `json:"featured" yaml:"featured"`
}

// セール価格があればセール価格、無ければ通常価格
func (i CatalogItem) EffectivePrice() decimal.Decimal {
	if i.SalePrice != nil {
		return *i.SalePrice
	}
	return i.Price
}

func (i CatalogItem) OnSale() bool {
	return i.SalePrice != nil
}

func (i CatalogItem) HasGenre(genre string) bool {
	for _, g := range i.Genres {
		if g == genre {
			return true
		}
	}
	return false
}

func (i CatalogItem) HasPlatform(platform string) bool {
	for _, p := range i.Platforms {
		if p == platform {
			return true
		}
	}
	return false
}

// DiscountFor は round((1 - sale/base) * 100) を返す。
func DiscountFor(base, sale decimal.Decimal) int64 {
	if base.Sign() <= 0 {
		return 0
	}
	return decimal.NewFromInt(1).Sub(sale.Div(base)).Mul(hundred).Round(0).IntPart()
}

// Normalize は不変条件を検証し、割引率が省略されていれば補完したコピーを返す。
func (i CatalogItem) Normalize() (CatalogItem, error) {
	if strings.TrimSpace(i.ID) == "" {
		return CatalogItem{}, fmt.Errorf("%w: id required", ErrInvalidCatalogItem)
	}
	if strings.TrimSpace(i.Title) == "" {
		return CatalogItem{}, fmt.Errorf("%w: %s: title required", ErrInvalidCatalogItem, i.ID)
	}
	if i.Price.Sign() < 0 {
		return CatalogItem{}, fmt.Errorf("%w: %s: price must be >= 0", ErrInvalidCatalogItem, i.ID)
	}
	if i.Rating < 0 || i.Rating > 5 {
		return CatalogItem{}, fmt.Errorf("%w: %s: rating must be 0-5", ErrInvalidCatalogItem, i.ID)
	}
	if i.Reviews < 0 {
		return CatalogItem{}, fmt.Errorf("%w: %s: reviews must be >= 0", ErrInvalidCatalogItem, i.ID)
	}

	if i.SalePrice == nil {
		if i.Discount != nil {
			return CatalogItem{}, fmt.Errorf("%w: %s: discount without sale_price", ErrInvalidCatalogItem, i.ID)
		}
		return i, nil
	}

	sale := *i.SalePrice
	if sale.Sign() < 0 || !sale.LessThan(i.Price) {
		return CatalogItem{}, fmt.Errorf("%w: %s: sale_price must be below price", ErrInvalidCatalogItem, i.ID)
	}

	want := DiscountFor(i.Price, sale)
	if i.Discount == nil {
		i.Discount = &want
		return i, nil
	}
	if *i.Discount != want {
		return CatalogItem{}, fmt.Errorf("%w: %s: discount %d, want %d", ErrInvalidCatalogItem, i.ID, *i.Discount, want)
	}
	return i, nil
}
