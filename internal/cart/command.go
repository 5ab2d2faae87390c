package cart

import "github.com/shopspring/decimal"

// Command はカートへの操作。AddItem / RemoveItem / SetQuantity / ClearCart のいずれか。
type Command interface {
	commandName() string
}

// 同じ商品があれば数量+1（単価は最初の値のまま）、無ければ数量1で追加
type AddItem struct {
	ItemID    string
	UnitPrice decimal.Decimal
	Title     string
	Image     string
}

// 明細を削除（無ければ何もしない）
type RemoveItem struct {
	ItemID string
}

// 数量を置き換える。0以下は削除、カートに無い商品は何もしない。
type SetQuantity struct {
	ItemID   string
	Quantity int64
}

type ClearCart struct{}

func (AddItem) commandName() string     { return "add_item" }
func (RemoveItem) commandName() string  { return "remove_item" }
func (SetQuantity) commandName() string { return "set_quantity" }
func (ClearCart) commandName() string   { return "clear_cart" }
