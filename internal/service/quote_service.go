package service

import (
	"context"
	"strings"

	"tropical-cargo-api/internal/dto"
	"tropical-cargo-api/internal/model"
)

type QuoteRepository interface {
	Insert(ctx context.Context, q *model.Quote) error
}

type QuoteService struct {
	repo QuoteRepository
}

func NewQuoteService(repo QuoteRepository) *QuoteService {
	return &QuoteService{repo: repo}
}

// Submit stores a quote request. Quotes have no update or query surface.
func (s *QuoteService) Submit(ctx context.Context, req *dto.QuoteRequest) (*model.Quote, error) {
	quote := &model.Quote{
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		Email:             strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:             req.Phone,
		LocationType:      model.LocationType(req.LocationType),
		Services:          req.Services,
		AdditionalDetails: req.AdditionalDetails,
	}
	if err := s.repo.Insert(ctx, quote); err != nil {
		return nil, err
	}
	return quote, nil
}
