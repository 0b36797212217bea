package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Juliban27/DiningThrough/internal/domain"
	"github.com/Juliban27/DiningThrough/internal/queue"
	"github.com/Juliban27/DiningThrough/internal/repo"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type OrderService struct {
	orderRepo repo.OrderRepository
	auditRepo repo.OrderStatusAuditRepository
	broker    queue.Broker
	logger    *zap.SugaredLogger
}

func NewOrderService(
	orderRepo repo.OrderRepository,
	auditRepo repo.OrderStatusAuditRepository,
	broker queue.Broker,
	logger *zap.SugaredLogger,
) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		auditRepo: auditRepo,
		broker:    broker,
		logger:    logger,
	}
}

// ApplyTransition advances an order through its lifecycle. The event is
// checked against the transition table first, and the write itself re-checks
// the current state, so a stale caller racing another admin gets
// ErrInvalidTransition instead of clobbering the newer state.
func (s *OrderService) ApplyTransition(ctx context.Context, orderID primitive.ObjectID, event domain.OrderEvent, actorID string) (*domain.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	next, err := domain.Transition(order.State, event)
	if err != nil {
		return nil, err
	}

	if err := s.orderRepo.UpdateState(ctx, orderID, order.State, next); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			// the order moved under us between read and write
			return nil, domain.ErrInvalidTransition
		}
		return nil, fmt.Errorf("failed to apply transition: %w", err)
	}

	statusEvent := domain.OrderStatusEvent{
		EventType: domain.EventOrderStatusChanged,
		OrderID:   orderID.Hex(),
		OldState:  order.State,
		NewState:  next,
		ActorID:   actorID,
		Timestamp: time.Now(),
	}

	eventBytes, err := json.Marshal(statusEvent)
	if err != nil {
		s.logger.Errorw("failed to marshal status event", "order_id", orderID.Hex(), "error", err)
	} else if err := s.broker.Publish(ctx, queue.QueueOrderStatus, eventBytes); err != nil {
		s.logger.Errorw("failed to publish status event", "order_id", orderID.Hex(), "error", err)
	}

	s.logger.Infow("order transition applied", "order_id", orderID.Hex(), "event", event, "old_state", order.State, "new_state", next)

	order.State = next

	return order, nil
}

// ProcessOrderStatusEvent persists the audit trail entry for a transition.
// Runs on the status worker, off the queue.
func (s *OrderService) ProcessOrderStatusEvent(ctx context.Context, event domain.OrderStatusEvent) error {
	audit := &domain.OrderStatusAudit{
		OrderID:   event.OrderID,
		EventType: event.EventType,
		OldState:  event.OldState,
		NewState:  event.NewState,
		ActorID:   event.ActorID,
		Timestamp: event.Timestamp,
	}

	if err := s.auditRepo.Create(ctx, audit); err != nil {
		s.logger.Errorw("failed to create order status audit", "order_id", event.OrderID, "error", err)
		return fmt.Errorf("failed to create order status audit: %w", err)
	}

	s.logger.Infow("order status audit created", "order_id", event.OrderID, "new_state", event.NewState)

	return nil
}

// ProcessOrderCreatedEvent records the creation entry of the audit trail.
func (s *OrderService) ProcessOrderCreatedEvent(ctx context.Context, event domain.OrderCreatedEvent) error {
	audit := &domain.OrderStatusAudit{
		OrderID:   event.OrderID,
		EventType: domain.EventOrderCreated,
		NewState:  domain.StatePending,
		ActorID:   event.ClientID,
		Timestamp: event.Timestamp,
	}

	if err := s.auditRepo.Create(ctx, audit); err != nil {
		s.logger.Errorw("failed to create order audit", "order_id", event.OrderID, "error", err)
		return fmt.Errorf("failed to create order audit: %w", err)
	}

	return nil
}

func (s *OrderService) GetOrderAudit(ctx context.Context, orderID string, limit int) ([]domain.OrderStatusAudit, error) {
	audits, err := s.auditRepo.GetByOrderID(ctx, orderID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get order audit: %w", err)
	}

	return audits, nil
}
