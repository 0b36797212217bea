package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/Juliban27/DiningThrough/internal/domain"
	"github.com/Juliban27/DiningThrough/internal/queue"
	"github.com/Juliban27/DiningThrough/internal/repo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func pendingOrder() *domain.Order {
	return &domain.Order{
		ID:         primitive.NewObjectID(),
		ClientID:   "client-1",
		PuntoVenta: "rest-1",
		State:      domain.StatePending,
		Date:       time.Now(),
	}
}

func TestApplyTransition(t *testing.T) {
	t.Run("pending to accepted", func(t *testing.T) {
		order := pendingOrder()
		orderRepo := newFakeOrderRepo(order)
		broker := newFakeBroker()
		svc := NewOrderService(orderRepo, &fakeAuditRepo{}, broker, testLogger)

		updated, err := svc.ApplyTransition(context.Background(), order.ID, domain.EventConfirm, "admin-1")
		require.NoError(t, err)
		assert.Equal(t, domain.StateAccepted, updated.State)

		stored, err := orderRepo.GetByID(context.Background(), order.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.StateAccepted, stored.State)

		msgs := broker.published[queue.QueueOrderStatus]
		require.Len(t, msgs, 1)
		var event domain.OrderStatusEvent
		require.NoError(t, json.Unmarshal(msgs[0], &event))
		assert.Equal(t, domain.StatePending, event.OldState)
		assert.Equal(t, domain.StateAccepted, event.NewState)
		assert.Equal(t, "admin-1", event.ActorID)
	})

	t.Run("full lifecycle to claimed", func(t *testing.T) {
		order := pendingOrder()
		orderRepo := newFakeOrderRepo(order)
		svc := NewOrderService(orderRepo, &fakeAuditRepo{}, newFakeBroker(), testLogger)
		ctx := context.Background()

		for _, event := range []domain.OrderEvent{domain.EventConfirm, domain.EventMarkReady, domain.EventMarkClaimed} {
			_, err := svc.ApplyTransition(ctx, order.ID, event, "admin-1")
			require.NoError(t, err)
		}

		stored, err := orderRepo.GetByID(ctx, order.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.StateClaimed, stored.State)
	})

	t.Run("illegal event", func(t *testing.T) {
		order := pendingOrder()
		svc := NewOrderService(newFakeOrderRepo(order), &fakeAuditRepo{}, newFakeBroker(), testLogger)

		_, err := svc.ApplyTransition(context.Background(), order.ID, domain.EventMarkClaimed, "admin-1")

		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	})

	t.Run("terminal order stays terminal", func(t *testing.T) {
		order := pendingOrder()
		order.State = domain.StateRejected
		svc := NewOrderService(newFakeOrderRepo(order), &fakeAuditRepo{}, newFakeBroker(), testLogger)

		_, err := svc.ApplyTransition(context.Background(), order.ID, domain.EventConfirm, "admin-1")

		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	})

	t.Run("missing order", func(t *testing.T) {
		svc := NewOrderService(newFakeOrderRepo(), &fakeAuditRepo{}, newFakeBroker(), testLogger)

		_, err := svc.ApplyTransition(context.Background(), primitive.NewObjectID(), domain.EventConfirm, "admin-1")

		assert.ErrorIs(t, err, repo.ErrNotFound)
	})

	t.Run("stale write loses the race", func(t *testing.T) {
		order := pendingOrder()
		orderRepo := newFakeOrderRepo(order)
		// another admin commits a transition between our read and write
		orderRepo.updateStateErr = repo.ErrNotFound
		svc := NewOrderService(orderRepo, &fakeAuditRepo{}, newFakeBroker(), testLogger)

		_, err := svc.ApplyTransition(context.Background(), order.ID, domain.EventReject, "admin-1")

		assert.ErrorIs(t, err, domain.ErrInvalidTransition)

		stored, err := orderRepo.GetByID(context.Background(), order.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.StatePending, stored.State)
	})
}

func TestProcessOrderStatusEvent(t *testing.T) {
	auditRepo := &fakeAuditRepo{}
	svc := NewOrderService(newFakeOrderRepo(), auditRepo, newFakeBroker(), testLogger)

	event := domain.OrderStatusEvent{
		EventType: domain.EventOrderStatusChanged,
		OrderID:   primitive.NewObjectID().Hex(),
		OldState:  domain.StatePending,
		NewState:  domain.StateAccepted,
		ActorID:   "admin-1",
		Timestamp: time.Now(),
	}

	require.NoError(t, svc.ProcessOrderStatusEvent(context.Background(), event))

	audits, err := svc.GetOrderAudit(context.Background(), event.OrderID, 10)
	require.NoError(t, err)
	require.Len(t, audits, 1)
	assert.Equal(t, domain.StateAccepted, audits[0].NewState)
	assert.Equal(t, "admin-1", audits[0].ActorID)
}

func TestProcessOrderCreatedEvent(t *testing.T) {
	auditRepo := &fakeAuditRepo{}
	svc := NewOrderService(newFakeOrderRepo(), auditRepo, newFakeBroker(), testLogger)

	event := domain.OrderCreatedEvent{
		OrderID:   primitive.NewObjectID().Hex(),
		ClientID:  "client-1",
		Timestamp: time.Now(),
	}

	require.NoError(t, svc.ProcessOrderCreatedEvent(context.Background(), event))

	audits, err := svc.GetOrderAudit(context.Background(), event.OrderID, 10)
	require.NoError(t, err)
	require.Len(t, audits, 1)
	assert.Equal(t, domain.EventOrderCreated, audits[0].EventType)
	assert.Equal(t, domain.StatePending, audits[0].NewState)
}
