package cart

import (
	"storefront/internal/domain/model"

	"github.com/shopspring/decimal"
)

// 注文サマリー（表示用。決済はしない）
type Summary struct {
	ItemCount int64
	Subtotal  decimal.Decimal
	Tax       decimal.Decimal // 小数2桁で丸め
	Total     decimal.Decimal
}

func Summarize(state model.Cart, taxRate decimal.Decimal) Summary {
	subtotal := state.TotalPrice()
	tax := subtotal.Mul(taxRate).Round(2)
	return Summary{
		ItemCount: state.TotalItemCount(),
		Subtotal:  subtotal,
		Tax:       tax,
		Total:     subtotal.Add(tax),
	}
}
