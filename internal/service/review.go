package service

import (
	"context"
	"strings"

	"github.com/chrisueda/sakewalk/internal/model"
)

// ReviewRepository defines the interface for review storage
type ReviewRepository interface {
	Create(ctx context.Context, review *model.Review) error
	ListBySake(ctx context.Context, sakeID string) ([]*model.Review, error)
}

// SakeGetter is the slice of sake storage the review service needs to
// confirm the reviewed sake exists.
type SakeGetter interface {
	GetByID(ctx context.Context, id string) (*model.Sake, error)
}

// ReviewService handles review business logic
type ReviewService struct {
	repo  ReviewRepository
	sakes SakeGetter
}

// ReviewServiceConfig holds configuration for the review service
type ReviewServiceConfig struct {
	Repo  ReviewRepository
	Sakes SakeGetter
}

// NewReviewService creates a new review service
func NewReviewService(cfg ReviewServiceConfig) *ReviewService {
	return &ReviewService{repo: cfg.Repo, sakes: cfg.Sakes}
}

// Create attaches a review to a sake. Ratings are integers from 1 to 5;
// reviews are immutable once created.
func (s *ReviewService) Create(ctx context.Context, authorID, sakeID string, req *model.CreateReviewRequest) (*model.Review, error) {
	if req.Rating < model.MinRating || req.Rating > model.MaxRating {
		return nil, ErrInvalidRating
	}

	sake, err := s.sakes.GetByID(ctx, sakeID)
	if err != nil {
		return nil, err
	}
	if sake == nil {
		return nil, ErrSakeNotFound
	}

	review := &model.Review{
		SakeID:   sake.ID,
		AuthorID: authorID,
		Rating:   req.Rating,
		Text:     strings.TrimSpace(req.Text),
	}
	if err := s.repo.Create(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

// ListBySake retrieves the reviews of a sake, newest first
func (s *ReviewService) ListBySake(ctx context.Context, sakeID string) ([]*model.Review, error) {
	return s.repo.ListBySake(ctx, sakeID)
}
