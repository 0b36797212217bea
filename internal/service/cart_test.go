package service

import (
	"context"
	"testing"

	"github.com/Juliban27/DiningThrough/internal/domain"
	"github.com/Juliban27/DiningThrough/internal/repo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCartService(t *testing.T) {
	arepa := &domain.Product{
		ID:           primitive.NewObjectID(),
		Name:         "arepa",
		Price:        4000,
		Stock:        3,
		RestaurantID: "rest-1",
	}
	ctx := context.Background()

	t.Run("add then get round trip", func(t *testing.T) {
		cartStore := newFakeCartStore()
		svc := NewCartService(cartStore, newFakeProductRepo(arepa), testLogger)

		cart, err := svc.AddItem(ctx, "client-1", arepa.ID)
		require.NoError(t, err)
		require.Len(t, cart.Items, 1)

		loaded, err := svc.GetCart(ctx, "client-1")
		require.NoError(t, err)
		assert.Equal(t, cart.Items, loaded.Items)
		assert.Equal(t, "rest-1", loaded.RestaurantID)
	})

	t.Run("add unknown product", func(t *testing.T) {
		svc := NewCartService(newFakeCartStore(), newFakeProductRepo(), testLogger)

		_, err := svc.AddItem(ctx, "client-1", primitive.NewObjectID())

		assert.ErrorIs(t, err, repo.ErrNotFound)
	})

	t.Run("increment reads fresh stock", func(t *testing.T) {
		cartStore := newFakeCartStore()
		productRepo := newFakeProductRepo(arepa)
		svc := NewCartService(cartStore, productRepo, testLogger)

		_, err := svc.AddItem(ctx, "client-1", arepa.ID)
		require.NoError(t, err)

		// stock dropped to 1 after the add
		require.NoError(t, productRepo.UpdateStock(ctx, arepa.ID, 1))

		_, err = svc.Increment(ctx, "client-1", arepa.ID)
		assert.ErrorIs(t, err, domain.ErrStockExceeded)
	})

	t.Run("decrement removes last unit", func(t *testing.T) {
		cartStore := newFakeCartStore()
		svc := NewCartService(cartStore, newFakeProductRepo(arepa), testLogger)

		_, err := svc.AddItem(ctx, "client-1", arepa.ID)
		require.NoError(t, err)

		cart, err := svc.Decrement(ctx, "client-1", arepa.ID)
		require.NoError(t, err)
		assert.True(t, cart.IsEmpty())
	})

	t.Run("remove missing item", func(t *testing.T) {
		svc := NewCartService(newFakeCartStore(), newFakeProductRepo(), testLogger)

		_, err := svc.RemoveItem(ctx, "client-1", primitive.NewObjectID())

		assert.ErrorIs(t, err, domain.ErrItemNotInCart)
	})

	t.Run("set restaurant requires confirm when items exist", func(t *testing.T) {
		cartStore := newFakeCartStore()
		svc := NewCartService(cartStore, newFakeProductRepo(arepa), testLogger)

		_, err := svc.AddItem(ctx, "client-1", arepa.ID)
		require.NoError(t, err)

		_, err = svc.SetRestaurant(ctx, "client-1", "rest-2", false)
		assert.ErrorIs(t, err, domain.ErrRestaurantMismatch)

		cart, err := svc.SetRestaurant(ctx, "client-1", "rest-2", true)
		require.NoError(t, err)
		assert.Equal(t, "rest-2", cart.RestaurantID)
		assert.True(t, cart.IsEmpty())
	})

	t.Run("clear drops the session", func(t *testing.T) {
		cartStore := newFakeCartStore()
		svc := NewCartService(cartStore, newFakeProductRepo(arepa), testLogger)

		_, err := svc.AddItem(ctx, "client-1", arepa.ID)
		require.NoError(t, err)

		require.NoError(t, svc.Clear(ctx, "client-1"))

		cart, err := svc.GetCart(ctx, "client-1")
		require.NoError(t, err)
		assert.True(t, cart.IsEmpty())
	})
}
