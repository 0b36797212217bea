package service

import (
	"context"
	"fmt"

	"github.com/Juliban27/DiningThrough/internal/domain"
	"github.com/Juliban27/DiningThrough/internal/repo"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type RatingService struct {
	ratingRepo  repo.RatingRepository
	productRepo repo.ProductRepository
	logger      *zap.SugaredLogger
}

func NewRatingService(
	ratingRepo repo.RatingRepository,
	productRepo repo.ProductRepository,
	logger *zap.SugaredLogger,
) *RatingService {
	return &RatingService{
		ratingRepo:  ratingRepo,
		productRepo: productRepo,
		logger:      logger,
	}
}

// SubmitRating appends a new rating. A user may rate the same product more
// than once over time; no uniqueness is enforced.
func (s *RatingService) SubmitRating(ctx context.Context, productID, userID string, score int, comment string) (*domain.Rating, error) {
	if score < 1 || score > 5 {
		return nil, domain.ErrInvalidScore
	}

	oid, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return nil, repo.ErrNotFound
	}

	if _, err := s.productRepo.GetByID(ctx, oid); err != nil {
		return nil, err
	}

	rating := &domain.Rating{
		ProductID: productID,
		UserID:    userID,
		Score:     score,
		Comment:   comment,
	}

	if err := s.ratingRepo.Create(ctx, rating); err != nil {
		return nil, fmt.Errorf("failed to submit rating: %w", err)
	}

	s.logger.Infow("rating submitted", "product_id", productID, "user_id", userID, "score", score)

	return rating, nil
}

func (s *RatingService) ListRatings(ctx context.Context, productID string) ([]domain.Rating, error) {
	return s.ratingRepo.ListByProductID(ctx, productID)
}

// GetAverage recomputes (average, count) from the full rating set; a product
// with no ratings reports (0, 0).
func (s *RatingService) GetAverage(ctx context.Context, productID string) (*domain.RatingSummary, error) {
	summary, err := s.ratingRepo.Summary(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to get rating summary: %w", err)
	}

	return summary, nil
}
