package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func line(id string, price string, qty int64) CartLine {
	return CartLine{ItemID: id, Title: "T" + id, UnitPrice: decimal.RequireFromString(price), Quantity: qty}
}

func TestCart_Empty(t *testing.T) {
	c := EmptyCart()

	assert.True(t, c.IsEmpty())
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, int64(0), c.TotalItemCount())
	assert.True(t, c.TotalPrice().IsZero())
	assert.Empty(t, c.Lines())
}

func TestCart_WithLine_AppendsAndReplaces(t *testing.T) {
	c := EmptyCart().
		WithLine(line("1", "39.99", 1)).
		WithLine(line("2", "49.99", 1))

	require.Equal(t, 2, c.Len())

	//同じIDは位置を保ったまま置き換え
	c2 := c.WithLine(line("1", "39.99", 3))
	lines := c2.Lines()
	assert.Equal(t, "1", lines[0].ItemID)
	assert.Equal(t, int64(3), lines[0].Quantity)
	assert.Equal(t, "2", lines[1].ItemID)

	//元のCartは変わらない
	l, ok := c.Line("1")
	require.True(t, ok)
	assert.Equal(t, int64(1), l.Quantity)
}

func TestCart_Without(t *testing.T) {
	c := EmptyCart().
		WithLine(line("1", "10", 1)).
		WithLine(line("2", "20", 1)).
		WithLine(line("3", "30", 1))

	c2 := c.Without("2")
	assert.Equal(t, 2, c2.Len())
	assert.False(t, c2.Contains("2"))
	assert.Equal(t, []string{"1", "3"}, ids(c2))

	//無いIDはそのまま
	assert.True(t, c.Without("9").Equal(c))
	assert.Equal(t, 3, c.Len())
}

func TestCart_Totals(t *testing.T) {
	c := EmptyCart().
		WithLine(line("1", "39.99", 2)).
		WithLine(line("2", "49.99", 1))

	assert.Equal(t, int64(3), c.TotalItemCount())
	assert.True(t, decimal.RequireFromString("129.97").Equal(c.TotalPrice()), c.TotalPrice().String())
}

func TestCart_LinesReturnsCopy(t *testing.T) {
	c := EmptyCart().WithLine(line("1", "10", 1))

	lines := c.Lines()
	lines[0].Quantity = 99

	l, _ := c.Line("1")
	assert.Equal(t, int64(1), l.Quantity)
}

func TestCart_Equal(t *testing.T) {
	a := EmptyCart().WithLine(line("1", "10.50", 1))
	b := EmptyCart().WithLine(line("1", "10.5", 1))

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(EmptyCart()))
	assert.False(t, a.Equal(EmptyCart().WithLine(line("1", "10.5", 2))))
}

func ids(c Cart) []string {
	out := []string{}
	for _, l := range c.Lines() {
		out = append(out, l.ItemID)
	}
	return out
}
