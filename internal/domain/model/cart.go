package model

import "github.com/shopspring/decimal"

// カートの状態（1商品につき明細は1つ）
// 値として扱い、変更系のメソッドは常に新しいCartを返す。
type Cart struct {
	lines []CartLine
}

func EmptyCart() Cart {
	return Cart{}
}

// 追加順を保ったまま明細をコピーして返す。
func (c Cart) Lines() []CartLine {
	out := make([]CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c Cart) Line(itemID string) (CartLine, bool) {
	if i := c.indexOf(itemID); i >= 0 {
		return c.lines[i], true
	}
	return CartLine{}, false
}

func (c Cart) Contains(itemID string) bool {
	return c.indexOf(itemID) >= 0
}

func (c Cart) Len() int {
	return len(c.lines)
}

func (c Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// 全明細の数量合計
func (c Cart) TotalItemCount() int64 {
	var n int64
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

// 全明細の 単価×数量 の合計
func (c Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// WithLine は同じItemIDの明細を置き換え、無ければ末尾に追加したCartを返す。
func (c Cart) WithLine(line CartLine) Cart {
	out := c.Lines()
	if i := c.indexOf(line.ItemID); i >= 0 {
		out[i] = line
		return Cart{lines: out}
	}
	return Cart{lines: append(out, line)}
}

// Without は指定ItemIDの明細を除いたCartを返す。無ければそのまま。
func (c Cart) Without(itemID string) Cart {
	i := c.indexOf(itemID)
	if i < 0 {
		return c
	}
	out := make([]CartLine, 0, len(c.lines)-1)
	out = append(out, c.lines[:i]...)
	out = append(out, c.lines[i+1:]...)
	return Cart{lines: out}
}

func (c Cart) Equal(o Cart) bool {
	if len(c.lines) != len(o.lines) {
		return false
	}
	for i := range c.lines {
		if !c.lines[i].Equal(o.lines[i]) {
			return false
		}
	}
	return true
}

func (c Cart) indexOf(itemID string) int {
	for i, l := range c.lines {
		if l.ItemID == itemID {
			return i
		}
	}
	return -1
}
