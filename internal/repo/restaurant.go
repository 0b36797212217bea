package repo

import (
	"context"

	"github.com/Juliban27/DiningThrough/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RestaurantRepository interface {
	Create(ctx context.Context, restaurant *domain.Restaurant) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Restaurant, error)
	List(ctx context.Context) ([]domain.Restaurant, error)
	Update(ctx context.Context, restaurant *domain.Restaurant) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}
