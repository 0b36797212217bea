package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Juliban27/DiningThrough/internal/domain"
	"github.com/Juliban27/DiningThrough/internal/queue"
	"github.com/Juliban27/DiningThrough/internal/repo"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type CheckoutService struct {
	cartStore   repo.CartStore
	billRepo    repo.BillRepository
	orderRepo   repo.OrderRepository
	productRepo repo.ProductRepository
	transactor  repo.Transactor
	broker      queue.Broker
	logger      *zap.SugaredLogger
}

func NewCheckoutService(
	cartStore repo.CartStore,
	billRepo repo.BillRepository,
	orderRepo repo.OrderRepository,
	productRepo repo.ProductRepository,
	transactor repo.Transactor,
	broker queue.Broker,
	logger *zap.SugaredLogger,
) *CheckoutService {
	return &CheckoutService{
		cartStore:   cartStore,
		billRepo:    billRepo,
		orderRepo:   orderRepo,
		productRepo: productRepo,
		transactor:  transactor,
		broker:      broker,
		logger:      logger,
	}
}

// Checkout converts the client's cart into a bill and a pending order and
// reserves stock, all inside one transaction: either everything commits or
// nothing does, so a failed step never leaves an orphaned bill behind.
func (s *CheckoutService) Checkout(ctx context.Context, clientID, restaurantID string) (*domain.Order, error) {
	cart, err := s.cartStore.Get(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	if cart.IsEmpty() {
		return nil, domain.ErrEmptyCart
	}

	if cart.RestaurantID != restaurantID {
		return nil, domain.ErrRestaurantMismatch
	}

	now := time.Now()
	items := cart.OrderItems()
	total := cart.Total()

	bill := &domain.Bill{
		Number:   uuid.NewString(),
		ClientID: clientID,
		Products: items,
		Total:    total,
		Date:     now,
	}

	order := &domain.Order{
		ClientID:   clientID,
		PuntoVenta: restaurantID,
		Products:   items,
		State:      domain.StatePending,
		Date:       now,
	}

	err = s.transactor.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.billRepo.Create(txCtx, bill); err != nil {
			return fmt.Errorf("failed to create bill: %w", err)
		}

		if err := s.orderRepo.Create(txCtx, order); err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		for _, item := range items {
			productID, err := primitive.ObjectIDFromHex(item.ProductID)
			if err != nil {
				return fmt.Errorf("invalid product id %q: %w", item.ProductID, err)
			}

			if err := s.productRepo.DecrementStock(txCtx, productID, item.Quantity); err != nil {
				return fmt.Errorf("failed to reserve %d x %s: %w", item.Quantity, item.Name, err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("checkout failed: %w", err)
	}

	// the order is committed; losing the cart or the event is not fatal
	if err := s.cartStore.Delete(ctx, clientID); err != nil {
		s.logger.Warnw("failed to clear cart after checkout", "client_id", clientID, "error", err)
	}

	event := domain.OrderCreatedEvent{
		OrderID:    order.ID.Hex(),
		BillID:     bill.ID.Hex(),
		ClientID:   clientID,
		PuntoVenta: restaurantID,
		Products:   items,
		Total:      total,
		Timestamp:  now,
	}

	eventBytes, err := json.Marshal(event)
	if err != nil {
		s.logger.Errorw("failed to marshal order created event", "order_id", order.ID.Hex(), "error", err)
		return order, nil
	}

	if err := s.broker.Publish(ctx, queue.QueueOrderCreated, eventBytes); err != nil {
		s.logger.Errorw("failed to publish order created event", "order_id", order.ID.Hex(), "error", err)
	}

	s.logger.Infow("checkout completed", "order_id", order.ID.Hex(), "bill_id", bill.ID.Hex(), "client_id", clientID, "total", total)

	return order, nil
}
