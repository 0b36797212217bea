package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Juliban27/DiningThrough/internal/domain"
	"github.com/Juliban27/DiningThrough/internal/repo"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type BillRepository struct {
	collection *mongo.Collection
}

func NewBillRepository(db *mongo.Database) *BillRepository {
	return &BillRepository{
		collection: db.Collection("bills"),
	}
}

func (r *BillRepository) Create(ctx context.Context, bill *domain.Bill) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if bill.ID.IsZero() {
		bill.ID = primitive.NewObjectID()
	}
	if bill.Number == "" {
		bill.Number = uuid.NewString()
	}
	if bill.Date.IsZero() {
		bill.Date = time.Now()
	}

	_, err := r.collection.InsertOne(ctx, bill)
	if err != nil {
		return fmt.Errorf("failed to create bill: %w", err)
	}

	return nil
}

func (r *BillRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Bill, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var bill domain.Bill
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&bill)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repo.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get bill: %w", err)
	}

	return &bill, nil
}

func (r *BillRepository) List(ctx context.Context, clientID string) ([]domain.Bill, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{}
	if clientID != "" {
		filter["client_id"] = clientID
	}

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}
	defer cursor.Close(ctx)

	var bills []domain.Bill
	if err := cursor.All(ctx, &bills); err != nil {
		return nil, fmt.Errorf("failed to decode bills: %w", err)
	}

	return bills, nil
}
