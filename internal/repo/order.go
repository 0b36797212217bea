package repo

import (
	"context"

	"github.com/Juliban27/DiningThrough/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderFilter struct {
	ClientID   string
	PuntoVenta string
	States     []domain.OrderState
}

type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Order, error)
	List(ctx context.Context, filter OrderFilter) ([]domain.Order, error)
	Update(ctx context.Context, order *domain.Order) error
	// UpdateState applies the transition from -> to as a compare-and-set: it
	// fails with ErrNotFound when the order is missing or no longer in the
	// from state, so stale callers cannot overwrite a concurrent transition.
	UpdateState(ctx context.Context, id primitive.ObjectID, from, to domain.OrderState) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}
