package cart_test

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/PedroLucas003/virada-brewery-store/cart"
	"github.com/PedroLucas003/virada-brewery-store/models"
)

func product(id, name, price string) models.Product {
	return models.Product{
		ID:        id,
		Name:      name,
		UnitPrice: decimal.RequireFromString(price),
	}
}

func TestAddItem_NewLine(t *testing.T) {
	s := cart.NewStore()

	s.AddItem(product("b1", "IPA", "10.00"))

	items := s.Items()
	assert.Len(t, items, 1)
	assert.Equal(t, "b1", items[0].ProductID)
	assert.Equal(t, 1, items[0].Quantity)
}

func TestAddItem_ExistingLineIncrementsByOne(t *testing.T) {
	s := cart.NewStore()

	s.AddItem(product("b1", "IPA", "10.00"))
	s.AddItem(product("b1", "IPA", "10.00"))
	s.AddItem(product("b1", "IPA", "10.00"))

	items := s.Items()
	assert.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
	assert.Equal(t, 3, s.TotalItems())
}

func TestAddItem_NoDuplicateIDs(t *testing.T) {
	s := cart.NewStore()

	// Interleaved adds over a handful of products must never produce
	// two lines with the same id, and total items must equal the sum
	// of quantities.
	for i := 0; i < 30; i++ {
		s.AddItem(product(fmt.Sprintf("b%d", i%5), "Beer", "7.50"))
	}

	items := s.Items()
	seen := map[string]bool{}
	sum := 0
	for _, item := range items {
		assert.False(t, seen[item.ProductID], "duplicate id %s", item.ProductID)
		seen[item.ProductID] = true
		assert.GreaterOrEqual(t, item.Quantity, 1)
		sum += item.Quantity
	}
	assert.Len(t, items, 5)
	assert.Equal(t, 30, sum)
	assert.Equal(t, 30, s.TotalItems())
}

func TestAddItem_PreservesInsertionOrder(t *testing.T) {
	s := cart.NewStore()

	s.AddItem(product("b1", "IPA", "10.00"))
	s.AddItem(product("b2", "Stout", "12.00"))
	s.AddItem(product("b1", "IPA", "10.00"))
	s.AddItem(product("b3", "Lager", "8.00"))

	items := s.Items()
	assert.Equal(t, []string{"b1", "b2", "b3"}, []string{items[0].ProductID, items[1].ProductID, items[2].ProductID})
}

func TestRemoveItem(t *testing.T) {
	s := cart.NewStore()
	s.AddItem(product("b1", "IPA", "10.00"))
	s.AddItem(product("b2", "Stout", "12.00"))

	s.RemoveItem("b1")

	items := s.Items()
	assert.Len(t, items, 1)
	assert.Equal(t, "b2", items[0].ProductID)

	// Removing an absent id is a no-op.
	s.RemoveItem("missing")
	assert.Equal(t, 1, s.Len())
}

func TestUpdateQuantity_AbsoluteSet(t *testing.T) {
	s := cart.NewStore()
	s.AddItem(product("b1", "IPA", "10.00"))

	s.UpdateQuantity("b1", 7)

	assert.Equal(t, 7, s.Items()[0].Quantity)
	assert.Equal(t, 7, s.TotalItems())
}

func TestUpdateQuantity_ZeroOrBelowRemoves(t *testing.T) {
	for _, q := range []int{0, -1, -10} {
		s := cart.NewStore()
		s.AddItem(product("b1", "IPA", "10.00"))

		s.UpdateQuantity("b1", q)

		assert.Equal(t, 0, s.Len(), "quantity %d should remove the line", q)
	}
}

func TestUpdateQuantity_AbsentIDIsNoop(t *testing.T) {
	s := cart.NewStore()
	s.AddItem(product("b1", "IPA", "10.00"))

	s.UpdateQuantity("missing", 3)

	assert.Equal(t, 1, s.Len())
	assert.Equal(t, 1, s.Items()[0].Quantity)
}

func TestClear(t *testing.T) {
	s := cart.NewStore()
	s.AddItem(product("b1", "IPA", "10.00"))
	s.AddItem(product("b2", "Stout", "12.00"))

	s.Clear()

	assert.Equal(t, 0, s.Len())
	assert.Equal(t, 0, s.TotalItems())
	assert.True(t, s.TotalPrice().IsZero())
}

func TestTotals(t *testing.T) {
	s := cart.NewStore()
	s.AddItem(product("a", "IPA", "10.00"))
	s.AddItem(product("a", "IPA", "10.00"))
	s.AddItem(product("b", "Stout", "5.00"))

	assert.True(t, s.TotalPrice().Equal(decimal.RequireFromString("25.00")),
		"got %s", s.TotalPrice())
	assert.Equal(t, 3, s.TotalItems())
}

func TestEvents_AddDistinguishesNewFromIncrement(t *testing.T) {
	s := cart.NewStore()
	var events []cart.EventKind
	s.Subscribe(func(ev cart.Event) {
		events = append(events, ev.Kind)
	})

	s.AddItem(product("b1", "IPA", "10.00"))
	s.AddItem(product("b1", "IPA", "10.00"))
	s.UpdateQuantity("b1", 5)
	s.RemoveItem("b1")
	s.Clear()

	assert.Equal(t, []cart.EventKind{
		cart.EventItemAdded,
		cart.EventQuantityIncreased,
		cart.EventQuantityUpdated,
		cart.EventItemRemoved,
		cart.EventCleared,
	}, events)
}

func TestItems_ReturnsCopy(t *testing.T) {
	s := cart.NewStore()
	s.AddItem(product("b1", "IPA", "10.00"))

	items := s.Items()
	items[0].Quantity = 99

	assert.Equal(t, 1, s.Items()[0].Quantity)
}
