package cart

import (
	"errors"
	"math/rand"
	"testing"

	"storefront/internal/domain/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func mustReduce(t *testing.T, state model.Cart, cmds ...Command) model.Cart {
	t.Helper()
	for _, cmd := range cmds {
		next, err := Reduce(state, cmd)
		require.NoError(t, err, "%T", cmd)
		state = next
	}
	return state
}

func TestReduce_AddTwiceIncrementsQuantity(t *testing.T) {
	state := mustReduce(t, model.EmptyCart(),
		AddItem{ItemID: "g1", UnitPrice: dec("10.0")},
		AddItem{ItemID: "g1", UnitPrice: dec("10.0")},
	)

	require.Equal(t, 1, state.Len())
	l, _ := state.Line("g1")
	assert.Equal(t, int64(2), l.Quantity)
	assert.True(t, dec("20").Equal(state.TotalPrice()))
}

func TestReduce_AddKeepsFirstPriceAndDetails(t *testing.T) {
	state := mustReduce(t, model.EmptyCart(),
		AddItem{ItemID: "g1", UnitPrice: dec("39.99"), Title: "Cyber", Image: "a.jpg"},
		AddItem{ItemID: "g1", UnitPrice: dec("59.99"), Title: "Other", Image: "b.jpg"},
	)

	l, _ := state.Line("g1")
	assert.True(t, dec("39.99").Equal(l.UnitPrice))
	assert.Equal(t, "Cyber", l.Title)
	assert.Equal(t, "a.jpg", l.Image)
}

func TestReduce_AddNegativePriceClampedToZero(t *testing.T) {
	state := mustReduce(t, model.EmptyCart(), AddItem{ItemID: "g1", UnitPrice: dec("-5")})

	l, _ := state.Line("g1")
	assert.True(t, l.UnitPrice.IsZero())
}

func TestReduce_AddPreservesInsertionOrder(t *testing.T) {
	state := mustReduce(t, model.EmptyCart(),
		AddItem{ItemID: "b", UnitPrice: dec("1")},
		AddItem{ItemID: "a", UnitPrice: dec("1")},
		AddItem{ItemID: "b", UnitPrice: dec("1")},
	)

	lines := state.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "b", lines[0].ItemID)
	assert.Equal(t, "a", lines[1].ItemID)
}

func TestReduce_SetQuantityZeroRemoves(t *testing.T) {
	state := mustReduce(t, model.EmptyCart(),
		AddItem{ItemID: "g1", UnitPrice: dec("10")},
		SetQuantity{ItemID: "g1", Quantity: 3},
		AddItem{ItemID: "g2", UnitPrice: dec("5")},
	)
	before := state.TotalItemCount()

	state = mustReduce(t, state, SetQuantity{ItemID: "g1", Quantity: 0})

	assert.False(t, state.Contains("g1"))
	assert.Equal(t, before-3, state.TotalItemCount())
}

func TestReduce_SetQuantityNegativeRemoves(t *testing.T) {
	state := mustReduce(t, model.EmptyCart(),
		AddItem{ItemID: "g1", UnitPrice: dec("10")},
		SetQuantity{ItemID: "g1", Quantity: -2},
	)
	assert.True(t, state.IsEmpty())
}

func TestReduce_SetQuantityAbsentIsNoop(t *testing.T) {
	state := mustReduce(t, model.EmptyCart(), AddItem{ItemID: "g1", UnitPrice: dec("10")})

	next := mustReduce(t, state, SetQuantity{ItemID: "nope", Quantity: 4})
	assert.True(t, next.Equal(state))
}

func TestReduce_RemoveAbsentIsNoop(t *testing.T) {
	state := mustReduce(t, model.EmptyCart(), AddItem{ItemID: "g1", UnitPrice: dec("10")})

	next := mustReduce(t, state, RemoveItem{ItemID: "nope"})
	assert.True(t, next.Equal(state))

	next = mustReduce(t, state, RemoveItem{ItemID: "g1"})
	assert.True(t, next.IsEmpty())
}

func TestReduce_Clear(t *testing.T) {
	state := mustReduce(t, model.EmptyCart(),
		AddItem{ItemID: "g1", UnitPrice: dec("10")},
		AddItem{ItemID: "g2", UnitPrice: dec("20")},
		ClearCart{},
	)

	assert.True(t, state.IsEmpty())
	assert.Equal(t, int64(0), state.TotalItemCount())
	assert.True(t, state.TotalPrice().IsZero())
}

func TestReduce_DoesNotMutateInput(t *testing.T) {
	state := mustReduce(t, model.EmptyCart(), AddItem{ItemID: "g1", UnitPrice: dec("10")})
	snapshot := state.Lines()

	mustReduce(t, state, AddItem{ItemID: "g1"}, SetQuantity{ItemID: "g1", Quantity: 9}, ClearCart{})

	assert.True(t, model.EmptyCart().WithLine(snapshot[0]).Equal(state))
}

func TestReduce_EmptyItemID(t *testing.T) {
	for _, cmd := range []Command{AddItem{}, RemoveItem{}, SetQuantity{Quantity: 1}} {
		_, err := Reduce(model.EmptyCart(), cmd)
		assert.True(t, errors.Is(err, ErrEmptyItemID), "%T", cmd)
	}
}

type bogusCommand struct{}

func (bogusCommand) commandName() string { return "bogus" }

func TestReduce_UnknownCommand(t *testing.T) {
	state := mustReduce(t, model.EmptyCart(), AddItem{ItemID: "g1", UnitPrice: dec("10")})

	next, err := Reduce(state, bogusCommand{})
	assert.True(t, errors.Is(err, ErrUnknownCommand))
	assert.True(t, next.Equal(state))
}

// どんな操作列の後でも、明細はIDが一意で数量は1以上
func TestReduce_InvariantsHoldForRandomSequences(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	itemIDs := []string{"1", "2", "3", "4"}

	for run := 0; run < 200; run++ {
		state := model.EmptyCart()
		for step := 0; step < 30; step++ {
			id := itemIDs[rng.Intn(len(itemIDs))]

			var cmd Command
			switch rng.Intn(10) {
			case 0:
				cmd = ClearCart{}
			case 1, 2:
				cmd = RemoveItem{ItemID: id}
			case 3, 4, 5:
				cmd = SetQuantity{ItemID: id, Quantity: int64(rng.Intn(7) - 2)}
			default:
				cmd = AddItem{ItemID: id, UnitPrice: decimal.NewFromInt(int64(rng.Intn(60)))}
			}
			state = mustReduce(t, state, cmd)

			seen := map[string]bool{}
			var count int64
			total := decimal.Zero
			for _, l := range state.Lines() {
				require.False(t, seen[l.ItemID], "duplicate line %s", l.ItemID)
				seen[l.ItemID] = true
				require.GreaterOrEqual(t, l.Quantity, int64(1))
				count += l.Quantity
				total = total.Add(l.Subtotal())
			}
			require.Equal(t, count, state.TotalItemCount())
			require.True(t, total.Equal(state.TotalPrice()))
		}
	}
}
