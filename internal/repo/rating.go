package repo

import (
	"context"

	"github.com/Juliban27/DiningThrough/internal/domain"
)

type RatingRepository interface {
	Create(ctx context.Context, rating *domain.Rating) error
	ListByProductID(ctx context.Context, productID string) ([]domain.Rating, error)
	// Summary recomputes average and count from the stored ratings; it returns
	// a zero-valued summary when the product has none.
	Summary(ctx context.Context, productID string) (*domain.RatingSummary, error)
}
