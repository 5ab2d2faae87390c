package cart

import (
	"errors"
	"fmt"

	"storefront/internal/domain/model"

	"github.com/shopspring/decimal"
)

var (
	ErrUnknownCommand = errors.New("unknown cart command")
	ErrEmptyItemID    = errors.New("item id required")
)

// Reduce は state に cmd を適用した新しい状態を返す。state自体は変更しない。
// エラーになるのはコマンドの形が不正なときだけ。
func Reduce(state model.Cart, cmd Command) (model.Cart, error) {
	switch c := cmd.(type) {
	case AddItem:
		if c.ItemID == "" {
			return state, ErrEmptyItemID
		}
		if line, ok := state.Line(c.ItemID); ok {
			line.Quantity++
			return state.WithLine(line), nil
		}

		price := c.UnitPrice
		if price.IsNegative() {
			price = decimal.Zero
		}
		return state.WithLine(model.CartLine{
			ItemID:    c.ItemID,
			Title:     c.Title,
			Image:     c.Image,
			UnitPrice: price,
			Quantity:  1,
		}), nil

	case RemoveItem:
		if c.ItemID == "" {
			return state, ErrEmptyItemID
		}
		return state.Without(c.ItemID), nil

	case SetQuantity:
		if c.ItemID == "" {
			return state, ErrEmptyItemID
		}
		if c.Quantity <= 0 {
			return state.Without(c.ItemID), nil
		}
		line, ok := state.Line(c.ItemID)
		if !ok {
			return state, nil
		}
		line.Quantity = c.Quantity
		return state.WithLine(line), nil

	case ClearCart:
		return model.EmptyCart(), nil

	default:
		return state, fmt.Errorf("%w: %T", ErrUnknownCommand, cmd)
	}
}
