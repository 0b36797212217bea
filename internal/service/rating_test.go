package service

import (
	"context"
	"testing"

	"github.com/Juliban27/DiningThrough/internal/domain"
	"github.com/Juliban27/DiningThrough/internal/repo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestSubmitRating(t *testing.T) {
	product := &domain.Product{
		ID:           primitive.NewObjectID(),
		Name:         "tinto",
		Price:        2000,
		Stock:        10,
		RestaurantID: "rest-1",
	}
	ctx := context.Background()

	t.Run("valid score", func(t *testing.T) {
		svc := NewRatingService(&fakeRatingRepo{}, newFakeProductRepo(product), testLogger)

		rating, err := svc.SubmitRating(ctx, product.ID.Hex(), "user-1", 4, "muy bueno")
		require.NoError(t, err)

		assert.Equal(t, product.ID.Hex(), rating.ProductID)
		assert.Equal(t, 4, rating.Score)
		assert.Equal(t, "muy bueno", rating.Comment)
	})

	t.Run("score bounds", func(t *testing.T) {
		svc := NewRatingService(&fakeRatingRepo{}, newFakeProductRepo(product), testLogger)

		for _, score := range []int{0, -1, 6, 100} {
			_, err := svc.SubmitRating(ctx, product.ID.Hex(), "user-1", score, "")
			assert.ErrorIs(t, err, domain.ErrInvalidScore, score)
		}

		for score := 1; score <= 5; score++ {
			_, err := svc.SubmitRating(ctx, product.ID.Hex(), "user-1", score, "")
			assert.NoError(t, err, score)
		}
	})

	t.Run("unknown product", func(t *testing.T) {
		svc := NewRatingService(&fakeRatingRepo{}, newFakeProductRepo(), testLogger)

		_, err := svc.SubmitRating(ctx, primitive.NewObjectID().Hex(), "user-1", 3, "")
		assert.ErrorIs(t, err, repo.ErrNotFound)

		_, err = svc.SubmitRating(ctx, "not-a-hex-id", "user-1", 3, "")
		assert.ErrorIs(t, err, repo.ErrNotFound)
	})
}

func TestGetAverage(t *testing.T) {
	product := &domain.Product{
		ID:           primitive.NewObjectID(),
		Name:         "tinto",
		Price:        2000,
		Stock:        10,
		RestaurantID: "rest-1",
	}
	ctx := context.Background()
	svc := NewRatingService(&fakeRatingRepo{}, newFakeProductRepo(product), testLogger)

	t.Run("no ratings yet", func(t *testing.T) {
		summary, err := svc.GetAverage(ctx, product.ID.Hex())
		require.NoError(t, err)

		assert.Equal(t, 0, summary.Count)
		assert.InDelta(t, 0, summary.Average, 0.001)
	})

	t.Run("average tracks every submission", func(t *testing.T) {
		for _, score := range []int{5, 4, 3} {
			_, err := svc.SubmitRating(ctx, product.ID.Hex(), "user-1", score, "")
			require.NoError(t, err)
		}

		summary, err := svc.GetAverage(ctx, product.ID.Hex())
		require.NoError(t, err)

		assert.Equal(t, 3, summary.Count)
		assert.InDelta(t, 4.0, summary.Average, 0.001)
	})
}

func TestListRatings(t *testing.T) {
	product := &domain.Product{
		ID:           primitive.NewObjectID(),
		Name:         "tinto",
		Price:        2000,
		Stock:        10,
		RestaurantID: "rest-1",
	}
	ctx := context.Background()
	svc := NewRatingService(&fakeRatingRepo{}, newFakeProductRepo(product), testLogger)

	_, err := svc.SubmitRating(ctx, product.ID.Hex(), "user-1", 5, "excelente")
	require.NoError(t, err)
	_, err = svc.SubmitRating(ctx, product.ID.Hex(), "user-2", 2, "frio")
	require.NoError(t, err)

	ratings, err := svc.ListRatings(ctx, product.ID.Hex())
	require.NoError(t, err)
	assert.Len(t, ratings, 2)

	other, err := svc.ListRatings(ctx, primitive.NewObjectID().Hex())
	require.NoError(t, err)
	assert.Empty(t, other)
}
