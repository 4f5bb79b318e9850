package repository

import (
	"context"
	"time"

	"tropical-cargo-api/internal/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type MongoQuoteRepository struct {
	col *mongo.Collection
}

func NewMongoQuoteRepository(db *mongo.Database) *MongoQuoteRepository {
	return &MongoQuoteRepository{col: db.Collection("quotes")}
}

func (m *MongoQuoteRepository) Insert(ctx context.Context, q *model.Quote) error {
	now := time.Now().UTC()
	q.CreatedAt = now
	q.UpdatedAt = now
	if q.Services == nil {
		q.Services = []string{}
	}

	res, err := m.col.InsertOne(ctx, q)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		q.ID = id
	}
	return nil
}
