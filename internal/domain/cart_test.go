package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func testProduct(restaurantID string, price float64, stock int) *Product {
	return &Product{
		ID:           primitive.NewObjectID(),
		Name:         "empanada",
		Price:        price,
		Stock:        stock,
		RestaurantID: restaurantID,
	}
}

func TestCartAddItem(t *testing.T) {
	t.Run("first item binds the restaurant", func(t *testing.T) {
		cart := NewCart("client-1")
		p := testProduct("rest-1", 3500, 10)

		require.NoError(t, cart.AddItem(p))

		assert.Equal(t, "rest-1", cart.RestaurantID)
		require.Len(t, cart.Items, 1)
		assert.Equal(t, p.ID.Hex(), cart.Items[0].ProductID)
		assert.Equal(t, 1, cart.Items[0].Quantity)
	})

	t.Run("adding again bumps quantity", func(t *testing.T) {
		cart := NewCart("client-1")
		p := testProduct("rest-1", 3500, 10)

		require.NoError(t, cart.AddItem(p))
		require.NoError(t, cart.AddItem(p))

		require.Len(t, cart.Items, 1)
		assert.Equal(t, 2, cart.Items[0].Quantity)
	})

	t.Run("out of stock", func(t *testing.T) {
		cart := NewCart("client-1")

		err := cart.AddItem(testProduct("rest-1", 3500, 0))

		assert.ErrorIs(t, err, ErrOutOfStock)
		assert.True(t, cart.IsEmpty())
	})

	t.Run("quantity never exceeds stock", func(t *testing.T) {
		cart := NewCart("client-1")
		p := testProduct("rest-1", 3500, 2)

		require.NoError(t, cart.AddItem(p))
		require.NoError(t, cart.AddItem(p))

		err := cart.AddItem(p)

		assert.ErrorIs(t, err, ErrStockExceeded)
		assert.Equal(t, 2, cart.Items[0].Quantity)
	})

	t.Run("rejects product from another restaurant", func(t *testing.T) {
		cart := NewCart("client-1")
		require.NoError(t, cart.AddItem(testProduct("rest-1", 3500, 10)))

		err := cart.AddItem(testProduct("rest-2", 5000, 10))

		assert.ErrorIs(t, err, ErrRestaurantMismatch)
		assert.Len(t, cart.Items, 1)
		assert.Equal(t, "rest-1", cart.RestaurantID)
	})
}

func TestCartIncrement(t *testing.T) {
	cart := NewCart("client-1")
	p := testProduct("rest-1", 3500, 2)
	require.NoError(t, cart.AddItem(p))

	require.NoError(t, cart.Increment(p.ID.Hex(), p.Stock))
	assert.Equal(t, 2, cart.Items[0].Quantity)

	assert.ErrorIs(t, cart.Increment(p.ID.Hex(), p.Stock), ErrStockExceeded)
	assert.ErrorIs(t, cart.Increment("missing", 10), ErrItemNotInCart)
}

func TestCartDecrement(t *testing.T) {
	cart := NewCart("client-1")
	p := testProduct("rest-1", 3500, 10)
	require.NoError(t, cart.AddItem(p))
	require.NoError(t, cart.AddItem(p))

	require.NoError(t, cart.Decrement(p.ID.Hex()))
	assert.Equal(t, 1, cart.Items[0].Quantity)

	// dropping below one removes the line entirely
	require.NoError(t, cart.Decrement(p.ID.Hex()))
	assert.True(t, cart.IsEmpty())
	assert.Empty(t, cart.RestaurantID)

	assert.ErrorIs(t, cart.Decrement(p.ID.Hex()), ErrItemNotInCart)
}

func TestCartRemoveItem(t *testing.T) {
	cart := NewCart("client-1")
	a := testProduct("rest-1", 3500, 10)
	b := testProduct("rest-1", 2000, 10)
	require.NoError(t, cart.AddItem(a))
	require.NoError(t, cart.AddItem(b))

	require.NoError(t, cart.RemoveItem(a.ID.Hex()))

	require.Len(t, cart.Items, 1)
	assert.Equal(t, b.ID.Hex(), cart.Items[0].ProductID)
	assert.Equal(t, "rest-1", cart.RestaurantID)

	require.NoError(t, cart.RemoveItem(b.ID.Hex()))
	assert.Empty(t, cart.RestaurantID)

	assert.ErrorIs(t, cart.RemoveItem(b.ID.Hex()), ErrItemNotInCart)
}

func TestCartSetRestaurant(t *testing.T) {
	t.Run("empty cart rebinds freely", func(t *testing.T) {
		cart := NewCart("client-1")

		require.NoError(t, cart.SetRestaurant("rest-2", false))

		assert.Equal(t, "rest-2", cart.RestaurantID)
	})

	t.Run("same restaurant is a no-op", func(t *testing.T) {
		cart := NewCart("client-1")
		require.NoError(t, cart.AddItem(testProduct("rest-1", 3500, 10)))

		require.NoError(t, cart.SetRestaurant("rest-1", false))

		assert.Len(t, cart.Items, 1)
	})

	t.Run("non-empty cart requires confirmation", func(t *testing.T) {
		cart := NewCart("client-1")
		require.NoError(t, cart.AddItem(testProduct("rest-1", 3500, 10)))

		err := cart.SetRestaurant("rest-2", false)

		assert.ErrorIs(t, err, ErrRestaurantMismatch)
		assert.Equal(t, "rest-1", cart.RestaurantID)
		assert.Len(t, cart.Items, 1)
	})

	t.Run("confirmed rebind clears items", func(t *testing.T) {
		cart := NewCart("client-1")
		require.NoError(t, cart.AddItem(testProduct("rest-1", 3500, 10)))

		require.NoError(t, cart.SetRestaurant("rest-2", true))

		assert.Equal(t, "rest-2", cart.RestaurantID)
		assert.True(t, cart.IsEmpty())
	})
}

func TestCartTotal(t *testing.T) {
	cart := NewCart("client-1")
	a := testProduct("rest-1", 3500, 10)
	b := testProduct("rest-1", 2000, 10)
	require.NoError(t, cart.AddItem(a))
	require.NoError(t, cart.AddItem(a))
	require.NoError(t, cart.AddItem(b))

	assert.InDelta(t, 9000, cart.Total(), 0.001)
}

func TestCartOrderItems(t *testing.T) {
	cart := NewCart("client-1")
	p := testProduct("rest-1", 3500, 10)
	require.NoError(t, cart.AddItem(p))
	require.NoError(t, cart.AddItem(p))

	items := cart.OrderItems()

	require.Len(t, items, 1)
	assert.Equal(t, p.ID.Hex(), items[0].ProductID)
	assert.Equal(t, p.Name, items[0].Name)
	assert.Equal(t, p.Price, items[0].Price)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestCartClear(t *testing.T) {
	cart := NewCart("client-1")
	require.NoError(t, cart.AddItem(testProduct("rest-1", 3500, 10)))

	cart.Clear()

	assert.True(t, cart.IsEmpty())
	assert.Empty(t, cart.RestaurantID)
	assert.InDelta(t, 0, cart.Total(), 0.001)
}
