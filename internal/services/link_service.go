package services

import (
	"context"

	"github.com/rowjay/scissors/internal/constants"
	"github.com/rowjay/scissors/internal/dto"
	"github.com/rowjay/scissors/internal/models"
	"github.com/rowjay/scissors/internal/repository"
	"github.com/rowjay/scissors/internal/validator"
)

type LinkService interface {
	Shorten(ctx context.Context, originalURL, alias string) (*models.Link, error)
	Page(ctx context.Context, page int) (*models.LinkPage, error)
}

type linkServiceImpl struct {
	repo      repository.LinkRepository
	validator *validator.RequestValidator
}

func NewLinkService(repo repository.LinkRepository) LinkService {
	return &linkServiceImpl{
		repo:      repo,
		validator: validator.NewRequestValidator(),
	}
}

func (s *linkServiceImpl) Shorten(ctx context.Context, originalURL, alias string) (*models.Link, error) {
	req := &dto.CreateLinkRequest{
		Alias:       alias,
		OriginalURL: originalURL,
	}
	if err := s.validator.ValidateCreate(req); err != nil {
		return nil, err
	}

	return s.repo.Create(ctx, req)
}

func (s *linkServiceImpl) Page(ctx context.Context, page int) (*models.LinkPage, error) {
	if page < constants.FirstPage {
		page = constants.FirstPage
	}

	result, err := s.repo.List(ctx, page)
	if err != nil {
		return nil, err
	}
	if result.TotalPages < 0 {
		result.TotalPages = 0
	}
	return result, nil
}
