package repository

import (
	"context"
	"strings"
	"time"

	"tropical-cargo-api/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

// bcryptCost matches the hashing cost used by the registration flow the
// website launched with, so existing hashes keep verifying.
const bcryptCost = 12

// MongoUserRepository owns the hashing policy: plaintext passwords enter
// through Create and VerifyPassword only and are never stored.
type MongoUserRepository struct {
	col *mongo.Collection
}

func NewMongoUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{col: db.Collection("users")}
}

// Create hashes the password, stamps timestamps and inserts the user.
// Returns ErrDuplicate when the email (or a present partner id) is taken.
func (m *MongoUserRepository) Create(ctx context.Context, u *model.User, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	u.Password = string(hash)
	u.CreatedAt = now
	u.UpdatedAt = now

	res, err := m.col.InsertOne(ctx, u)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		u.ID = id
	}
	return nil
}

// FindByID returns the user without the password hash.
func (m *MongoUserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	var res model.User
	opts := options.FindOne().SetProjection(bson.M{"password": 0})
	err := m.col.FindOne(ctx, bson.M{"_id": id}, opts).Decode(&res)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	return &res, err
}

// FindByEmail returns the user without the password hash.
func (m *MongoUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return m.findByEmail(ctx, email, options.FindOne().SetProjection(bson.M{"password": 0}))
}

// FindByEmailWithPassword includes the normally-hidden hash, for sign-in.
func (m *MongoUserRepository) FindByEmailWithPassword(ctx context.Context, email string) (*model.User, error) {
	return m.findByEmail(ctx, email, options.FindOne())
}

func (m *MongoUserRepository) findByEmail(ctx context.Context, email string, opts *options.FindOneOptions) (*model.User, error) {
	var res model.User
	err := m.col.FindOne(ctx, bson.M{"email": strings.ToLower(strings.TrimSpace(email))}, opts).Decode(&res)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	return &res, err
}

// VerifyPassword compares a candidate against a stored bcrypt hash.
func (m *MongoUserRepository) VerifyPassword(hash, candidate string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(candidate)) == nil
}
