package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/Juliban27/DiningThrough/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type RatingRepository struct {
	collection *mongo.Collection
}

func NewRatingRepository(db *mongo.Database) *RatingRepository {
	return &RatingRepository{
		collection: db.Collection("ratings"),
	}
}

func (r *RatingRepository) Create(ctx context.Context, rating *domain.Rating) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if rating.ID.IsZero() {
		rating.ID = primitive.NewObjectID()
	}
	if rating.Date.IsZero() {
		rating.Date = time.Now()
	}

	_, err := r.collection.InsertOne(ctx, rating)
	if err != nil {
		return fmt.Errorf("failed to create rating: %w", err)
	}

	return nil
}

func (r *RatingRepository) ListByProductID(ctx context.Context, productID string) ([]domain.Rating, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"product_id": productID}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list ratings: %w", err)
	}
	defer cursor.Close(ctx)

	var ratings []domain.Rating
	if err := cursor.All(ctx, &ratings); err != nil {
		return nil, fmt.Errorf("failed to decode ratings: %w", err)
	}

	return ratings, nil
}

// Summary recomputes the aggregate from the stored ratings on every call, so
// the result is always consistent with the underlying records.
func (r *RatingRepository) Summary(ctx context.Context, productID string) (*domain.RatingSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"product_id": productID}}},
		{{Key: "$group", Value: bson.M{
			"_id":     "$product_id",
			"average": bson.M{"$avg": "$score"},
			"count":   bson.M{"$sum": 1},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate ratings: %w", err)
	}
	defer cursor.Close(ctx)

	var summaries []domain.RatingSummary
	if err := cursor.All(ctx, &summaries); err != nil {
		return nil, fmt.Errorf("failed to decode rating summary: %w", err)
	}

	if len(summaries) == 0 {
		return &domain.RatingSummary{ProductID: productID}, nil
	}

	return &summaries[0], nil
}
