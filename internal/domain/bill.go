package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Bill is the immutable receipt written at checkout. It is never updated after
// creation.
type Bill struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Number   string             `bson:"number" json:"number"`
	ClientID string             `bson:"client_id" json:"client_id"`
	Products []OrderItem        `bson:"products" json:"products"`
	Total    float64            `bson:"total" json:"total"`
	Date     time.Time          `bson:"date" json:"date"`
}
