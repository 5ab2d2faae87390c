package model

import "github.com/shopspring/decimal"

// カートの明細
// UnitPriceは最初に追加した時点の価格を保持する。
type CartLine struct {
	ItemID    string          `json:"id"`
	Title     string          `json:"title"`
	Image     string          `json:"image"`
	UnitPrice decimal.Decimal `json:"price"`
	Quantity  int64           `json:"quantity"` // 常に1以上
}

// 単価×数量
func (l CartLine) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(l.Quantity))
}

func (l CartLine) Equal(o CartLine) bool {
	return l.ItemID == o.ItemID &&
		l.Title == o.Title &&
		l.Image == o.Image &&
		l.UnitPrice.Equal(o.UnitPrice) &&
		l.Quantity == o.Quantity
}
