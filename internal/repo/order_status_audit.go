package repo

import (
	"context"

	"github.com/Juliban27/DiningThrough/internal/domain"
)

type OrderStatusAuditRepository interface {
	Create(ctx context.Context, audit *domain.OrderStatusAudit) error
	GetByOrderID(ctx context.Context, orderID string, limit int) ([]domain.OrderStatusAudit, error)
}
