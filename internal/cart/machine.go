// Package cart はカートの状態遷移と永続化を扱う。
package cart

import (
	"context"
	"sync"

	"storefront/internal/domain/model"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Persister はカート状態の保存先（通常は *Persistence）。
type Persister interface {
	Read(ctx context.Context) model.Cart
	Write(ctx context.Context, state model.Cart) bool
}

// Machine はカート状態を持ち、コマンドを1つずつ順番に適用する。
// 適用のたびに Persister へ書き込む。
type Machine struct {
	mu        sync.Mutex
	state     model.Cart
	persister Persister
	logger    *zap.Logger
}

// NewMachine は保存先から状態を復元して Machine を作る。
func NewMachine(ctx context.Context, persister Persister, logger *zap.Logger) *Machine {
	state := persister.Read(ctx)
	logger.Debug("cart restored",
		zap.Int("lines", state.Len()),
		zap.Int64("items", state.TotalItemCount()),
	)
	return &Machine{
		state:     state,
		persister: persister,
		logger:    logger,
	}
}

// Dispatch はコマンドを適用し、保存を試みてから新しい状態を返す。
// 保存に失敗してもメモリ上の状態は戻さない。
func (m *Machine) Dispatch(ctx context.Context, cmd Command) (model.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	next, err := Reduce(m.state, cmd)
	if err != nil {
		return m.state, err
	}
	m.state = next

	persisted := m.persister.Write(ctx, next)
	m.logger.Debug("cart command applied",
		zap.String("command", cmd.commandName()),
		zap.Int64("items", next.TotalItemCount()),
		zap.Bool("persisted", persisted),
	)
	return next, nil
}

func (m *Machine) Add(ctx context.Context, itemID string, unitPrice decimal.Decimal, title string, image string) (model.Cart, error) {
	return m.Dispatch(ctx, AddItem{ItemID: itemID, UnitPrice: unitPrice, Title: title, Image: image})
}

func (m *Machine) Remove(ctx context.Context, itemID string) (model.Cart, error) {
	return m.Dispatch(ctx, RemoveItem{ItemID: itemID})
}

func (m *Machine) SetQuantity(ctx context.Context, itemID string, quantity int64) (model.Cart, error) {
	return m.Dispatch(ctx, SetQuantity{ItemID: itemID, Quantity: quantity})
}

func (m *Machine) Clear(ctx context.Context) (model.Cart, error) {
	return m.Dispatch(ctx, ClearCart{})
}

// 現在の状態（値なので呼び出し側が変更しても影響しない）
func (m *Machine) State() model.Cart {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Machine) TotalItemCount() int64 {
	return m.State().TotalItemCount()
}

func (m *Machine) TotalPrice() decimal.Decimal {
	return m.State().TotalPrice()
}

func (m *Machine) Contains(itemID string) bool {
	return m.State().Contains(itemID)
}
