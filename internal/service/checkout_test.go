package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/Juliban27/DiningThrough/internal/domain"
	"github.com/Juliban27/DiningThrough/internal/queue"
	"github.com/Juliban27/DiningThrough/internal/repo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func seedCart(t *testing.T, store *fakeCartStore, clientID string, products ...*domain.Product) *domain.Cart {
	t.Helper()

	cart := domain.NewCart(clientID)
	for _, p := range products {
		require.NoError(t, cart.AddItem(p))
	}
	require.NoError(t, store.Save(context.Background(), cart))

	return cart
}

func TestCheckout(t *testing.T) {
	burger := &domain.Product{
		ID:           primitive.NewObjectID(),
		Name:         "burger",
		Price:        12000,
		Stock:        5,
		RestaurantID: "rest-1",
	}
	soda := &domain.Product{
		ID:           primitive.NewObjectID(),
		Name:         "soda",
		Price:        3000,
		Stock:        5,
		RestaurantID: "rest-1",
	}

	t.Run("happy path", func(t *testing.T) {
		cartStore := newFakeCartStore()
		billRepo := &fakeBillRepo{}
		orderRepo := newFakeOrderRepo()
		productRepo := newFakeProductRepo(burger, soda)
		broker := newFakeBroker()
		svc := NewCheckoutService(cartStore, billRepo, orderRepo, productRepo, passthroughTransactor{}, broker, testLogger)

		seedCart(t, cartStore, "client-1", burger, burger, soda)

		order, err := svc.Checkout(context.Background(), "client-1", "rest-1")
		require.NoError(t, err)

		assert.Equal(t, domain.StatePending, order.State)
		assert.Equal(t, "client-1", order.ClientID)
		assert.Equal(t, "rest-1", order.PuntoVenta)
		require.Len(t, order.Products, 2)

		// bill mirrors the cart
		require.Len(t, billRepo.bills, 1)
		bill := billRepo.bills[0]
		assert.NotEmpty(t, bill.Number)
		assert.InDelta(t, 27000, bill.Total, 0.001)
		assert.Equal(t, order.Products, bill.Products)

		// stock was reserved
		p, err := productRepo.GetByID(context.Background(), burger.ID)
		require.NoError(t, err)
		assert.Equal(t, 3, p.Stock)

		// cart is gone
		cart, err := cartStore.Get(context.Background(), "client-1")
		require.NoError(t, err)
		assert.True(t, cart.IsEmpty())

		// order created event went out
		msgs := broker.published[queue.QueueOrderCreated]
		require.Len(t, msgs, 1)
		var event domain.OrderCreatedEvent
		require.NoError(t, json.Unmarshal(msgs[0], &event))
		assert.Equal(t, order.ID.Hex(), event.OrderID)
		assert.InDelta(t, 27000, event.Total, 0.001)
	})

	t.Run("empty cart", func(t *testing.T) {
		cartStore := newFakeCartStore()
		svc := NewCheckoutService(cartStore, &fakeBillRepo{}, newFakeOrderRepo(), newFakeProductRepo(), passthroughTransactor{}, newFakeBroker(), testLogger)

		_, err := svc.Checkout(context.Background(), "client-1", "rest-1")

		assert.ErrorIs(t, err, domain.ErrEmptyCart)
	})

	t.Run("restaurant mismatch", func(t *testing.T) {
		cartStore := newFakeCartStore()
		svc := NewCheckoutService(cartStore, &fakeBillRepo{}, newFakeOrderRepo(), newFakeProductRepo(burger), passthroughTransactor{}, newFakeBroker(), testLogger)

		seedCart(t, cartStore, "client-1", burger)

		_, err := svc.Checkout(context.Background(), "client-1", "rest-2")

		assert.ErrorIs(t, err, domain.ErrRestaurantMismatch)
	})

	t.Run("bill write failure keeps the cart", func(t *testing.T) {
		cartStore := newFakeCartStore()
		billRepo := &fakeBillRepo{createErr: errors.New("write concern error")}
		broker := newFakeBroker()
		svc := NewCheckoutService(cartStore, billRepo, newFakeOrderRepo(), newFakeProductRepo(burger), passthroughTransactor{}, broker, testLogger)

		seedCart(t, cartStore, "client-1", burger)

		_, err := svc.Checkout(context.Background(), "client-1", "rest-1")
		require.Error(t, err)

		cart, err := cartStore.Get(context.Background(), "client-1")
		require.NoError(t, err)
		assert.False(t, cart.IsEmpty())
		assert.Empty(t, broker.published[queue.QueueOrderCreated])
	})

	t.Run("insufficient stock aborts", func(t *testing.T) {
		scarce := &domain.Product{
			ID:           primitive.NewObjectID(),
			Name:         "last slice",
			Price:        5000,
			Stock:        2,
			RestaurantID: "rest-1",
		}
		cartStore := newFakeCartStore()
		broker := newFakeBroker()
		productRepo := newFakeProductRepo(scarce)
		svc := NewCheckoutService(cartStore, &fakeBillRepo{}, newFakeOrderRepo(), productRepo, passthroughTransactor{}, broker, testLogger)

		seedCart(t, cartStore, "client-1", scarce, scarce)

		// someone else bought a slice between add-to-cart and checkout
		require.NoError(t, productRepo.UpdateStock(context.Background(), scarce.ID, 1))

		_, err := svc.Checkout(context.Background(), "client-1", "rest-1")
		require.Error(t, err)
		assert.ErrorIs(t, err, repo.ErrInsufficientStock)

		// the cart survives so the client can adjust it
		cart, err := cartStore.Get(context.Background(), "client-1")
		require.NoError(t, err)
		assert.False(t, cart.IsEmpty())

		// no event for a failed checkout
		assert.Empty(t, broker.published[queue.QueueOrderCreated])
	})
}
