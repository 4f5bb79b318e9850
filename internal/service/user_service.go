package service

import (
	"context"
	"errors"
	"strings"

	"tropical-cargo-api/internal/dto"
	"tropical-cargo-api/internal/model"
	"tropical-cargo-api/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserRepository is the single canonical persistence surface for accounts.
// Hashing lives behind Create and VerifyPassword so call sites never touch
// plaintext handling.
type UserRepository interface {
	Create(ctx context.Context, u *model.User, password string) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByEmailWithPassword(ctx context.Context, email string) (*model.User, error)
	VerifyPassword(hash, candidate string) bool
}

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrPartnerIDTaken     = errors.New("partner id already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
)

type UserService struct {
	repo UserRepository
}

func NewUserService(repo UserRepository) *UserService {
	return &UserService{repo: repo}
}

// Register folds the flat registration form into a user document and stores
// it. The unique email index backs the conflict check against races.
func (s *UserService) Register(ctx context.Context, req *dto.RegisterRequest) (*model.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	user := &model.User{
		Email:     email,
		Name:      strings.TrimSpace(req.FirstName + " " + req.LastName),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.PrimaryPhone,
		Address: model.Address{
			Street:  req.StreetAddress,
			City:    req.City,
			State:   req.State,
			ZipCode: req.ZipCode,
			Country: req.Country,
		},
		Company: &model.Company{
			Name:        req.CompanyName,
			Title:       req.Title,
			Department:  req.Department,
			PartnerID:   req.PartnerID,
			TruckNumber: req.TruckNumber,
		},
		IsActive: true,
	}

	if err := s.repo.Create(ctx, user, req.Password); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, s.duplicateError(ctx, email)
		}
		return nil, err
	}
	return user, nil
}

// duplicateError names the unique index a racing insert collided on. The
// store reports only that a duplicate key occurred, so the email is checked
// again: present means the email index, absent means the sparse partner id.
func (s *UserService) duplicateError(ctx context.Context, email string) error {
	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return ErrEmailTaken
	}
	return ErrPartnerIDTaken
}

// Authenticate checks credentials and fails closed: an unknown email, a
// missing hash and a wrong password all collapse into ErrInvalidCredentials.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	user, err := s.repo.FindByEmailWithPassword(ctx, email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if user.Password == "" {
		return nil, ErrInvalidCredentials
	}
	if !s.repo.VerifyPassword(user.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// GetByID resolves the session user, password hash excluded.
func (s *UserService) GetByID(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	return user, err
}
