package service

import (
	"context"
	"strings"

	"github.com/chrisueda/sakewalk/internal/model"
	"github.com/chrisueda/sakewalk/internal/slug"
)

// PageSize is the fixed sake listing page size
const PageSize = 4

// SakeRepository defines the interface for sake storage
type SakeRepository interface {
	Create(ctx context.Context, sake *model.Sake) error
	Update(ctx context.Context, sake *model.Sake) error
	GetByID(ctx context.Context, id string) (*model.Sake, error)
	GetBySlug(ctx context.Context, slug string) (*model.Sake, error)
	List(ctx context.Context) ([]*model.Sake, error)
	Page(ctx context.Context, skip, limit int) ([]*model.Sake, error)
	Count(ctx context.Context) (int, error)
	SlugsMatching(ctx context.Context, pattern string) ([]string, error)
	ListTags(ctx context.Context) ([]model.TagCount, error)
	ByTag(ctx context.Context, tag string) ([]*model.Sake, error)
	WithRatings(ctx context.Context) ([]*model.SakeWithRatings, error)
	ByIDs(ctx context.Context, ids []string) ([]*model.Sake, error)
}

// SakeService handles sake business logic
type SakeService struct {
	repo SakeRepository
}

// SakeServiceConfig holds configuration for the sake service
type SakeServiceConfig struct {
	Repo SakeRepository
}

// NewSakeService creates a new sake service
func NewSakeService(cfg SakeServiceConfig) *SakeService {
	return &SakeService{repo: cfg.Repo}
}

// Create validates the request, derives a unique slug and persists the sake.
// Like location creation, the slug check-then-insert can race across
// concurrent creates with the same name; accepted limitation.
func (s *SakeService) Create(ctx context.Context, req *model.CreateSakeRequest) (*model.Sake, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrNameRequired
	}

	uniqueSlug, err := s.uniqueSlug(ctx, name)
	if err != nil {
		return nil, err
	}

	sake := &model.Sake{
		Name:              name,
		Slug:              uniqueSlug,
		Description:       strings.TrimSpace(req.Description),
		Tags:              req.Tags,
		MainCategory:      req.MainCategory,
		SecondaryCategory: req.SecondaryCategory,
		Photo:             req.Photo,
	}
	if err := s.repo.Create(ctx, sake); err != nil {
		return nil, err
	}
	return sake, nil
}

// Update applies a partial edit. The slug is recomputed only when the edit
// changes the name; editing any other field leaves it untouched.
func (s *SakeService) Update(ctx context.Context, id string, req *model.UpdateSakeRequest) (*model.Sake, error) {
	sake, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sake == nil {
		return nil, ErrSakeNotFound
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, ErrNameRequired
		}
		if name != sake.Name {
			uniqueSlug, err := s.uniqueSlug(ctx, name)
			if err != nil {
				return nil, err
			}
			sake.Slug = uniqueSlug
		}
		sake.Name = name
	}
	if req.Description != nil {
		sake.Description = strings.TrimSpace(*req.Description)
	}
	if req.Tags != nil {
		sake.Tags = req.Tags
	}
	if req.MainCategory != nil {
		sake.MainCategory = *req.MainCategory
	}
	if req.SecondaryCategory != nil {
		sake.SecondaryCategory = *req.SecondaryCategory
	}
	if req.Photo != nil {
		sake.Photo = *req.Photo
	}

	if err := s.repo.Update(ctx, sake); err != nil {
		return nil, err
	}
	return sake, nil
}

// GetBySlug retrieves a single sake with its reviews joined
func (s *SakeService) GetBySlug(ctx context.Context, slugVal string) (*model.Sake, error) {
	sake, err := s.repo.GetBySlug(ctx, slugVal)
	if err != nil {
		return nil, err
	}
	if sake == nil {
		return nil, ErrSakeNotFound
	}
	return sake, nil
}

// Page returns one 1-indexed page of the sake listing. Requesting a page
// beyond the last returns a PageOutOfRangeError carrying the last valid
// page so the handler can redirect there instead of serving an empty list.
func (s *SakeService) Page(ctx context.Context, page int) (*model.SakePage, error) {
	if page < 1 {
		page = 1
	}

	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	pages := (total + PageSize - 1) / PageSize

	if page > 1 && page > pages {
		last := pages
		if last < 1 {
			last = 1
		}
		return nil, &PageOutOfRangeError{Requested: page, Last: last}
	}

	sakes, err := s.repo.Page(ctx, (page-1)*PageSize, PageSize)
	if err != nil {
		return nil, err
	}
	return &model.SakePage{Sakes: sakes, Page: page, Pages: pages, Total: total}, nil
}

// Tags returns the tag cloud alongside the sakes matching the selected tag
func (s *SakeService) Tags(ctx context.Context, tag string) ([]model.TagCount, []*model.Sake, error) {
	tags, err := s.repo.ListTags(ctx)
	if err != nil {
		return nil, nil, err
	}
	tags = sortTagCounts(tags)

	var sakes []*model.Sake
	if tag == "" {
		sakes, err = s.repo.List(ctx)
	} else {
		sakes, err = s.repo.ByTag(ctx, tag)
	}
	if err != nil {
		return nil, nil, err
	}
	return tags, sakes, nil
}

// TopRated joins sakes to their review ratings and ranks them by mean
// rating, keeping only those with at least TopRatedMinReviews reviews,
// truncated to TopRatedLimit.
func (s *SakeService) TopRated(ctx context.Context) ([]*model.RatedSake, error) {
	rows, err := s.repo.WithRatings(ctx)
	if err != nil {
		return nil, err
	}
	return rankTopRated(rows, TopRatedMinReviews, TopRatedLimit), nil
}

// Hearts returns the sakes in the user's heart set, newest first
func (s *SakeService) Hearts(ctx context.Context, user *model.User) ([]*model.Sake, error) {
	return s.repo.ByIDs(ctx, user.Hearts)
}

func (s *SakeService) uniqueSlug(ctx context.Context, name string) (string, error) {
	base := slug.Make(name)
	if base == "" {
		return "", ErrNameRequired
	}
	existing, err := s.repo.SlugsMatching(ctx, slug.Pattern(base))
	if err != nil {
		return "", err
	}
	return slug.NextUnique(base, existing), nil
}
