package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"storefront/internal/cart"
	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"github.com/shopspring/decimal"
)

// CartUsecase は /cart の業務ロジックです。
// 状態は cart.Machine が持ち、ここでは入力の検証とレスポンス組み立てだけ行う。
type CartUsecase struct {
	machine *cart.Machine
	catalog repo.CatalogReader
	taxRate decimal.Decimal
}

func NewCartUsecase(
	machine *cart.Machine,
	catalog repo.CatalogReader,
	taxRate decimal.Decimal,
) *CartUsecase {
	return &CartUsecase{
		machine: machine,
		catalog: catalog,
		taxRate: taxRate,
	}
}

// price は追加時点の価格（セール価格優先）
type CartItemResponse struct {
	ID       string          `json:"id"`
	Title    string          `json:"title"`
	Image    string          `json:"image"`
	Price    decimal.Decimal `json:"price"`
	Quantity int64           `json:"quantity"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

type CartResponse struct {
	Items     []CartItemResponse `json:"items"`
	ItemCount int64              `json:"item_count"`
	Subtotal  decimal.Decimal    `json:"subtotal"`
	Tax       decimal.Decimal    `json:"tax"`
	Total     decimal.Decimal    `json:"total"`
}

// 金額はJSONでは常に小数2桁の文字列（"4.00"）
func (r CartItemResponse) MarshalJSON() ([]byte, error) {
	type alias CartItemResponse
	return json.Marshal(struct {
		alias
		Price    string `json:"price"`
		Subtotal string `json:"subtotal"`
	}{
		alias:    alias(r),
		Price:    r.Price.StringFixed(2),
		Subtotal: r.Subtotal.StringFixed(2),
	})
}

func (r CartResponse) MarshalJSON() ([]byte, error) {
	type alias CartResponse
	return json.Marshal(struct {
		alias
		Subtotal string `json:"subtotal"`
		Tax      string `json:"tax"`
		Total    string `json:"total"`
	}{
		alias:    alias(r),
		Subtotal: r.Subtotal.StringFixed(2),
		Tax:      r.Tax.StringFixed(2),
		Total:    r.Total.StringFixed(2),
	})
}

type AddCartInput struct {
	ProductID string
}

type UpdateCartItemInput struct {
	Quantity int64
}

func (u *CartUsecase) GetCart(ctx context.Context) (CartResponse, error) {
	return u.buildCartResponse(u.machine.State()), nil
}

// AddToCart はカタログの商品を追加（同一商品は数量+1）。
func (u *CartUsecase) AddToCart(ctx context.Context, in AddCartInput) (CartResponse, error) {
	productID := strings.TrimSpace(in.ProductID)
	if productID == "" {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}

	// 商品チェック
	p, ok := u.catalog.ByID(productID)
	if !ok {
		return CartResponse{}, NewHTTPError(http.StatusNotFound, "not found")
	}

	state, err := u.machine.Add(ctx, p.ID, p.EffectivePrice(), p.Title, p.Image)
	if err != nil {
		return CartResponse{}, commandError(err)
	}
	return u.buildCartResponse(state), nil
}

// 数量変更（0以下は削除、カートに無ければ何もしない）
func (u *CartUsecase) UpdateCartItem(ctx context.Context, itemID string, in UpdateCartItemInput) (CartResponse, error) {
	itemID = strings.TrimSpace(itemID)
	if itemID == "" {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	state, err := u.machine.SetQuantity(ctx, itemID, in.Quantity)
	if err != nil {
		return CartResponse{}, commandError(err)
	}
	return u.buildCartResponse(state), nil
}

// 明細削除
func (u *CartUsecase) DeleteCartItem(ctx context.Context, itemID string) (CartResponse, error) {
	itemID = strings.TrimSpace(itemID)
	if itemID == "" {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	state, err := u.machine.Remove(ctx, itemID)
	if err != nil {
		return CartResponse{}, commandError(err)
	}
	return u.buildCartResponse(state), nil
}

// カートを空にする
func (u *CartUsecase) ClearCart(ctx context.Context) (CartResponse, error) {
	state, err := u.machine.Clear(ctx)
	if err != nil {
		return CartResponse{}, commandError(err)
	}
	return u.buildCartResponse(state), nil
}

// 明細をまとめてCartResponseを作る。
func (u *CartUsecase) buildCartResponse(state model.Cart) CartResponse {
	lines := state.Lines()
	items := make([]CartItemResponse, 0, len(lines))
	for _, l := range lines {
		items = append(items, CartItemResponse{
			ID:       l.ItemID,
			Title:    l.Title,
			Image:    l.Image,
			Price:    l.UnitPrice,
			Quantity: l.Quantity,
			Subtotal: l.Subtotal(),
		})
	}

	sum := cart.Summarize(state, u.taxRate)
	return CartResponse{
		Items:     items,
		ItemCount: sum.ItemCount,
		Subtotal:  sum.Subtotal,
		Tax:       sum.Tax,
		Total:     sum.Total,
	}
}

func commandError(err error) error {
	if errors.Is(err, cart.ErrEmptyItemID) {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return NewHTTPError(http.StatusInternalServerError, "cart error")
}
