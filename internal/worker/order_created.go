package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Juliban27/DiningThrough/internal/domain"
	"github.com/Juliban27/DiningThrough/internal/queue"
	"github.com/Juliban27/DiningThrough/internal/service"
	"go.uber.org/zap"
)

// OrderCreatedWorker consumes checkout events: it opens the audit trail for
// the new order and notifies the restaurant side (currently a log line the
// kitchen dashboard tails).
type OrderCreatedWorker struct {
	orderService *service.OrderService
	broker       queue.Broker
	logger       *zap.SugaredLogger
	ctx          context.Context
	cancel       context.CancelFunc
}

func NewOrderCreatedWorker(
	orderService *service.OrderService,
	broker queue.Broker,
	logger *zap.SugaredLogger,
) *OrderCreatedWorker {
	ctx, cancel := context.WithCancel(context.Background())

	return &OrderCreatedWorker{
		orderService: orderService,
		broker:       broker,
		logger:       logger,
		ctx:          ctx,
		cancel:       cancel,
	}
}

func (w *OrderCreatedWorker) Start() error {
	w.logger.Info("starting order created worker")

	return w.broker.Subscribe(w.ctx, queue.QueueOrderCreated, w.handleMessage)
}

func (w *OrderCreatedWorker) Stop() {
	w.logger.Info("stopping order created worker")
	w.cancel()
}

func (w *OrderCreatedWorker) handleMessage(ctx context.Context, message []byte) error {
	var event domain.OrderCreatedEvent
	if err := json.Unmarshal(message, &event); err != nil {
		w.logger.Errorw("failed to unmarshal event", "error", err)
		return fmt.Errorf("failed to unmarshal event: %w", err)
	}

	w.logger.Infow("new order received",
		"order_id", event.OrderID,
		"punto_venta", event.PuntoVenta,
		"items", len(event.Products),
		"total", event.Total,
	)

	if err := w.orderService.ProcessOrderCreatedEvent(ctx, event); err != nil {
		w.logger.Errorw("failed to process order created event", "order_id", event.OrderID, "error", err)
		return err
	}

	return nil
}
