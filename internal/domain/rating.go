package domain

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrInvalidScore = errors.New("score must be between 1 and 5")

type Rating struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProductID string             `bson:"product_id" json:"product_id"`
	UserID    string             `bson:"user_id" json:"user_id"`
	Score     int                `bson:"score" json:"score"`
	Comment   string             `bson:"comment,omitempty" json:"comment,omitempty"`
	Date      time.Time          `bson:"date" json:"date"`
}

// RatingSummary is derived from the ratings collection at read time, never
// stored.
type RatingSummary struct {
	ProductID string  `bson:"_id" json:"product_id"`
	Average   float64 `bson:"average" json:"average"`
	Count     int     `bson:"count" json:"count"`
}
