package repo

import (
	"context"
	"errors"

	"github.com/Juliban27/DiningThrough/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrNotFound          = errors.New("resource not found")
	ErrDuplicateEmail    = errors.New("a user with that email already exists")
	ErrInsufficientStock = errors.New("insufficient stock for requested quantity")
)

type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Product, error)
	List(ctx context.Context, restaurantID string) ([]domain.Product, error)
	Update(ctx context.Context, product *domain.Product) error
	UpdateStock(ctx context.Context, id primitive.ObjectID, stock int) error
	// DecrementStock atomically subtracts quantity, failing with
	// ErrInsufficientStock when fewer than quantity units remain. Stock can
	// never go negative through this path.
	DecrementStock(ctx context.Context, id primitive.ObjectID, quantity int) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}
