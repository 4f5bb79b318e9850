package service

import (
	"context"
	"testing"

	"tropical-cargo-api/internal/dto"
	"tropical-cargo-api/internal/model"
	"tropical-cargo-api/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type stubUserRepo struct {
	byEmail   map[string]*model.User
	byID      map[primitive.ObjectID]*model.User
	created   *model.User
	createErr error

	// plaintext passwords for VerifyPassword, keyed by "hash"
	passwords map[string]string
}

func (s *stubUserRepo) Create(_ context.Context, u *model.User, password string) error {
	if s.createErr != nil {
		return s.createErr
	}
	if _, ok := s.byEmail[u.Email]; ok {
		return repository.ErrDuplicate
	}
	u.ID = primitive.NewObjectID()
	u.Password = "hashed:" + password
	s.created = u
	return nil
}

func (s *stubUserRepo) FindByID(_ context.Context, id primitive.ObjectID) (*model.User, error) {
	if u, ok := s.byID[id]; ok {
		return u, nil
	}
	return nil, repository.ErrNotFound
}

func (s *stubUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	if u, ok := s.byEmail[email]; ok {
		return u, nil
	}
	return nil, repository.ErrNotFound
}

func (s *stubUserRepo) FindByEmailWithPassword(_ context.Context, email string) (*model.User, error) {
	return s.FindByEmail(nil, email)
}

func (s *stubUserRepo) VerifyPassword(hash, candidate string) bool {
	return s.passwords[hash] == candidate
}

func registerRequest() *dto.RegisterRequest {
	return &dto.RegisterRequest{
		Email:         "Jane@Example.com",
		Password:      "Str0ng!Pass",
		FirstName:     "Jane",
		LastName:      "Doe",
		PrimaryPhone:  "555-0100",
		StreetAddress: "1 Harbour St",
		City:          "Kingston",
		Country:       "Jamaica",
	}
}

func TestRegisterNormalizesEmailAndBuildsDocument(t *testing.T) {
	repo := &stubUserRepo{byEmail: map[string]*model.User{}}
	svc := NewUserService(repo)

	user, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	assert.Equal(t, "jane@example.com", user.Email)
	assert.Equal(t, "Jane Doe", user.Name)
	assert.Equal(t, "Kingston", user.Address.City)
	assert.True(t, user.IsActive)
	assert.False(t, user.IsEmailVerified)
	assert.False(t, user.ID.IsZero())
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := &stubUserRepo{byEmail: map[string]*model.User{
		"jane@example.com": {Email: "jane@example.com"},
	}}
	svc := NewUserService(repo)

	_, err := svc.Register(context.Background(), registerRequest())
	assert.ErrorIs(t, err, ErrEmailTaken)
	assert.Nil(t, repo.created, "no second user document may be created")
}

func TestRegisterDuplicatePartnerID(t *testing.T) {
	// the insert hits the sparse partner id index, not the email index
	repo := &stubUserRepo{
		byEmail:   map[string]*model.User{},
		createErr: repository.ErrDuplicate,
	}
	svc := NewUserService(repo)

	req := registerRequest()
	req.PartnerID = "123456789"

	_, err := svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, ErrPartnerIDTaken)
}

func TestAuthenticateSuccess(t *testing.T) {
	user := &model.User{
		ID:       primitive.NewObjectID(),
		Email:    "jane@example.com",
		Password: "hash-1",
	}
	repo := &stubUserRepo{
		byEmail:   map[string]*model.User{user.Email: user},
		passwords: map[string]string{"hash-1": "Str0ng!Pass"},
	}
	svc := NewUserService(repo)

	got, err := svc.Authenticate(context.Background(), "jane@example.com", "Str0ng!Pass")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
}

func TestAuthenticateFailsClosed(t *testing.T) {
	user := &model.User{
		ID:       primitive.NewObjectID(),
		Email:    "jane@example.com",
		Password: "hash-1",
	}
	noHash := &model.User{ID: primitive.NewObjectID(), Email: "legacy@example.com"}
	repo := &stubUserRepo{
		byEmail:   map[string]*model.User{user.Email: user, noHash.Email: noHash},
		passwords: map[string]string{"hash-1": "Str0ng!Pass"},
	}
	svc := NewUserService(repo)

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"unknown email", "ghost@example.com", "Str0ng!Pass"},
		{"wrong password", "jane@example.com", "wrong"},
		{"user without hash", "legacy@example.com", "anything"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Authenticate(context.Background(), tt.email, tt.password)
			assert.ErrorIs(t, err, ErrInvalidCredentials)
		})
	}
}
