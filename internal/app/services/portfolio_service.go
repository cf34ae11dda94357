package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/subber-app/subber/internal/app/models"
	"github.com/subber-app/subber/internal/app/models/dto"
	"github.com/subber-app/subber/internal/app/repositories"
	"github.com/subber-app/subber/internal/pkg/apperrors"
	"github.com/subber-app/subber/internal/pkg/helpers"
)

// PortfolioService defines the interface for portfolio operations
type PortfolioService interface {
	ListPortfolio(ctx context.Context, userID string) ([]models.PortfolioItem, error)
	CreateItem(ctx context.Context, ownerID string, req *dto.CreatePortfolioItemRequest) (*models.PortfolioItem, error)
	UpdateItem(ctx context.Context, itemID, ownerID string, req *dto.UpdatePortfolioItemRequest) (*models.PortfolioItem, error)
	DeleteItem(ctx context.Context, itemID, ownerID string) error
}

// portfolioServiceImpl implements PortfolioService
type portfolioServiceImpl struct {
	portfolioRepo *repositories.PortfolioRepository
	userRepo      *repositories.UserRepository
	logger        zerolog.Logger
}

// NewPortfolioService creates a new PortfolioService
func NewPortfolioService(
	portfolioRepo *repositories.PortfolioRepository,
	userRepo *repositories.UserRepository,
	logger zerolog.Logger,
) PortfolioService {
	return &portfolioServiceImpl{
		portfolioRepo: portfolioRepo,
		userRepo:      userRepo,
		logger:        logger,
	}
}

// ListPortfolio returns a user's portfolio items in display order
func (s *portfolioServiceImpl) ListPortfolio(ctx context.Context, userID string) ([]models.PortfolioItem, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.portfolioRepo.ListByUser(ctx, userID)
}

// CreateItem adds an item to the caller's portfolio
func (s *portfolioServiceImpl) CreateItem(ctx context.Context, ownerID string, req *dto.CreatePortfolioItemRequest) (*models.PortfolioItem, error) {
	item := &models.PortfolioItem{
		UserID:      ownerID,
		Title:       req.Title,
		Description: helpers.NullIfEmptyPtr(req.Description),
		Image:       req.Image,
		Link:        helpers.NullIfEmptyPtr(req.Link),
		Tags:        req.Tags,
	}
	if req.SortOrder != nil {
		item.SortOrder = *req.SortOrder
	}
	return s.portfolioRepo.Insert(ctx, item)
}

// UpdateItem applies the supplied fields to an item the caller owns; absent
// fields are left unchanged.
func (s *portfolioServiceImpl) UpdateItem(ctx context.Context, itemID, ownerID string, req *dto.UpdatePortfolioItemRequest) (*models.PortfolioItem, error) {
	item, err := s.ownedItem(ctx, itemID, ownerID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		item.Title = *req.Title
	}
	if req.Description != nil {
		item.Description = helpers.NullIfEmptyPtr(req.Description)
	}
	if req.Image != nil {
		item.Image = req.Image
	}
	if req.Link != nil {
		item.Link = helpers.NullIfEmptyPtr(req.Link)
	}
	if req.Tags != nil {
		item.Tags = req.Tags
	}
	if req.SortOrder != nil {
		item.SortOrder = *req.SortOrder
	}

	return s.portfolioRepo.Update(ctx, item)
}

// DeleteItem removes an item the caller owns
func (s *portfolioServiceImpl) DeleteItem(ctx context.Context, itemID, ownerID string) error {
	if _, err := s.ownedItem(ctx, itemID, ownerID); err != nil {
		return err
	}
	return s.portfolioRepo.Delete(ctx, itemID)
}

func (s *portfolioServiceImpl) ownedItem(ctx context.Context, itemID, ownerID string) (*models.PortfolioItem, error) {
	item, err := s.portfolioRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.UserID != ownerID {
		return nil, apperrors.NewForbiddenError("only the owner can modify a portfolio item")
	}
	return item, nil
}
