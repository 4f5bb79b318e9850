package repository

import (
	"context"
	"errors"
	"time"

	"tropical-cargo-api/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/sync/errgroup"
)

var (
	ErrNotFound  = errors.New("document not found")
	ErrDuplicate = errors.New("duplicate key")
)

// Mongo implementation
type MongoOrderRepository struct {
	col *mongo.Collection
}

func NewMongoOrderRepository(db *mongo.Database) *MongoOrderRepository {
	return &MongoOrderRepository{col: db.Collection("orders")}
}

func (m *MongoOrderRepository) Insert(ctx context.Context, o *model.Order) error {
	now := time.Now().UTC()
	o.CreatedAt = now
	o.UpdatedAt = now

	res, err := m.col.InsertOne(ctx, o)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		o.ID = id
	}
	return nil
}

func (m *MongoOrderRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Order, error) {
	var res model.Order
	err := m.col.FindOne(ctx, bson.M{"_id": id}).Decode(&res)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	return &res, err
}

func (m *MongoOrderRepository) FindByTrackingNumber(ctx context.Context, trackingNumber string) (*model.Order, error) {
	var res model.Order
	err := m.col.FindOne(ctx, bson.M{"trackingNumber": trackingNumber}).Decode(&res)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	return &res, err
}

// IdentifierExists reports whether any order already claims the identifier
// value on field (bookingNumber or trackingNumber).
func (m *MongoOrderRepository) IdentifierExists(ctx context.Context, field, value string) (bool, error) {
	err := m.col.FindOne(ctx, bson.M{field: value}, options.FindOne().SetProjection(bson.M{"_id": 1})).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Find returns one page of orders matching the filter, newest first, plus the
// total match count. Page and count queries run concurrently.
func (m *MongoOrderRepository) Find(ctx context.Context, filter model.OrderFilter, page model.PageRequest) ([]*model.Order, int64, error) {
	query := buildOrderQuery(filter)

	var (
		orders []*model.Order
		total  int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		opts := options.Find().
			SetSort(bson.D{{Key: "createdAt", Value: -1}}).
			SetSkip(page.Skip()).
			SetLimit(int64(page.Limit))

		cur, err := m.col.Find(gctx, query, opts)
		if err != nil {
			return err
		}
		defer cur.Close(gctx)

		for cur.Next(gctx) {
			var v model.Order
			if err := cur.Decode(&v); err != nil {
				return err
			}
			orders = append(orders, &v)
		}
		return cur.Err()
	})
	g.Go(func() error {
		n, err := m.col.CountDocuments(gctx, query)
		total = n
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// ApplyStatusPatch writes the present patch fields in a single update and
// returns the resulting document. The status always overwrites both the
// top-level field and tracking.currentStatus.
func (m *MongoOrderRepository) ApplyStatusPatch(ctx context.Context, id primitive.ObjectID, patch model.StatusPatch) (*model.Order, error) {
	set := bson.M{
		"status":                 patch.Status,
		"tracking.currentStatus": string(patch.Status),
		"updatedAt":              time.Now().UTC(),
	}
	if patch.CurrentLocation != nil {
		set["tracking.currentLocation"] = *patch.CurrentLocation
	}
	if patch.ProgressPercentage != nil {
		set["tracking.progressPercentage"] = *patch.ProgressPercentage
	}
	if patch.EstimatedDeliveryDate != nil {
		set["tracking.estimatedDeliveryDate"] = *patch.EstimatedDeliveryDate
	}
	if patch.Notes != nil {
		set["notes"] = *patch.Notes
	}
	if patch.IsActive != nil {
		set["isActive"] = *patch.IsActive
	}
	mergeMilestones(set, patch.Milestones)

	update := bson.M{"$set": set}
	if patch.Event != nil {
		ev := *patch.Event
		if ev.ID.IsZero() {
			ev.ID = primitive.NewObjectID()
		}
		update["$push"] = bson.M{"tracking.events": ev}
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var res model.Order
	err := m.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&res)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	return &res, err
}

// SetLastNotificationSent records when a status notification last went out.
func (m *MongoOrderRepository) SetLastNotificationSent(ctx context.Context, id primitive.ObjectID, at time.Time) error {
	_, err := m.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"notifications.lastNotificationSent": at},
	})
	return err
}

func (m *MongoOrderRepository) DeleteByID(ctx context.Context, id primitive.ObjectID) error {
	res, err := m.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func buildOrderQuery(filter model.OrderFilter) bson.M {
	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.IsActive != nil {
		query["isActive"] = *filter.IsActive
	}
	if filter.CustomerID != nil {
		query["customerId"] = *filter.CustomerID
	}
	if filter.TrackingNumber != "" {
		query["trackingNumber"] = filter.TrackingNumber
	}
	if filter.BookingNumber != "" {
		query["bookingNumber"] = filter.BookingNumber
	}
	return query
}

// mergeMilestones adds one $set entry per provided milestone so existing
// checkpoints survive partial updates.
func mergeMilestones(set bson.M, ms *model.Milestones) {
	if ms == nil {
		return
	}
	put := func(key string, t *time.Time) {
		if t != nil {
			set["tracking.milestones."+key] = *t
		}
	}
	put("orderConfirmed", ms.OrderConfirmed)
	put("packagePickedUp", ms.PackagePickedUp)
	put("inTransit", ms.InTransit)
	put("arrivedAtDestination", ms.ArrivedAtDestination)
	put("outForDelivery", ms.OutForDelivery)
	put("delivered", ms.Delivered)
}
