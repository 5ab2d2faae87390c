package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const DefaultKey = "cart"

var ErrCorruptSnapshot = errors.New("corrupt cart snapshot")

// 保存形式の1明細 {id, title, price, image, quantity}
type record struct {
	ID       string      `json:"id"`
	Title    string      `json:"title"`
	Price    json.Number `json:"price"`
	Image    string      `json:"image"`
	Quantity int64       `json:"quantity"`
}

// Persistence はカート状態をKVストアの固定キーに保存/復元する。
// ストアのエラーは外に出さず、ログに残して結果だけ返す。
type Persistence struct {
	store  repo.KVStore
	key    string
	logger *zap.Logger
}

// DI
func NewPersistence(store repo.KVStore, key string, logger *zap.Logger) *Persistence {
	if key == "" {
		key = DefaultKey
	}
	return &Persistence{store: store, key: key, logger: logger}
}

// Write は状態を保存する。失敗してもエラーは返さず false を返す。
func (p *Persistence) Write(ctx context.Context, state model.Cart) bool {
	payload, err := Encode(state)
	if err != nil {
		p.logger.Error("cart encode failed", zap.String("key", p.key), zap.Error(err))
		return false
	}
	if err := p.store.Set(ctx, p.key, payload); err != nil {
		p.logger.Warn("cart write failed; keeping in-memory state", zap.String("key", p.key), zap.Error(err))
		return false
	}
	return true
}

// Read は保存済みの状態を返す。キーが無い・壊れている・読めないときは空のカート。
func (p *Persistence) Read(ctx context.Context) model.Cart {
	payload, err := p.store.Get(ctx, p.key)
	if errors.Is(err, repo.ErrNotFound) {
		return model.EmptyCart()
	}
	if err != nil {
		p.logger.Warn("cart read failed; starting empty", zap.String("key", p.key), zap.Error(err))
		return model.EmptyCart()
	}

	state, err := Decode(payload)
	if err != nil {
		p.logger.Warn("cart snapshot discarded", zap.String("key", p.key), zap.Error(err))
		return model.EmptyCart()
	}
	return state
}

// Encode は明細をJSON配列にする（空のカートは "[]"）。
func Encode(state model.Cart) (string, error) {
	lines := state.Lines()
	records := make([]record, 0, len(lines))
	for _, l := range lines {
		records = append(records, record{
			ID:       l.ItemID,
			Title:    l.Title,
			Price:    json.Number(l.UnitPrice.String()),
			Image:    l.Image,
			Quantity: l.Quantity,
		})
	}

	b, err := json.Marshal(records)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Decode は Encode の逆。1件でも不正な明細があればスナップショット全体を不正とする。
func Decode(payload string) (model.Cart, error) {
	var records []record
	if err := json.Unmarshal([]byte(payload), &records); err != nil {
		return model.EmptyCart(), fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}

	state := model.EmptyCart()
	for i, r := range records {
		if r.ID == "" {
			return model.EmptyCart(), fmt.Errorf("%w: record %d: id required", ErrCorruptSnapshot, i)
		}
		if r.Quantity < 1 {
			return model.EmptyCart(), fmt.Errorf("%w: record %d: quantity %d", ErrCorruptSnapshot, i, r.Quantity)
		}
		if state.Contains(r.ID) {
			return model.EmptyCart(), fmt.Errorf("%w: record %d: duplicate id %s", ErrCorruptSnapshot, i, r.ID)
		}

		price, err := decimal.NewFromString(r.Price.String())
		if err != nil || price.IsNegative() {
			return model.EmptyCart(), fmt.Errorf("%w: record %d: price %q", ErrCorruptSnapshot, i, r.Price)
		}

		state = state.WithLine(model.CartLine{
			ItemID:    r.ID,
			Title:     r.Title,
			Image:     r.Image,
			UnitPrice: price,
			Quantity:  r.Quantity,
		})
	}
	return state, nil
}
