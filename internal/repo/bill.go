package repo

import (
	"context"

	"github.com/Juliban27/DiningThrough/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BillRepository interface {
	Create(ctx context.Context, bill *domain.Bill) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Bill, error)
	List(ctx context.Context, clientID string) ([]domain.Bill, error)
}
