package service

import (
	"context"
	"strings"

	"github.com/chrisueda/sakewalk/internal/model"
	"github.com/chrisueda/sakewalk/internal/slug"
)

// SearchLimit bounds the full-text search result set
const SearchLimit = 5

// LocationRepository defines the interface for location storage
type LocationRepository interface {
	Create(ctx context.Context, loc *model.Location) error
	Update(ctx context.Context, loc *model.Location) error
	GetByID(ctx context.Context, id string) (*model.Location, error)
	GetBySlug(ctx context.Context, slug string) (*model.Location, error)
	List(ctx context.Context) ([]*model.Location, error)
	SlugsMatching(ctx context.Context, pattern string) ([]string, error)
	ListTags(ctx context.Context) ([]model.TagCount, error)
	ByTag(ctx context.Context, tag string) ([]*model.Location, error)
	Search(ctx context.Context, q string, limit int) ([]*model.Location, error)
	Nearby(ctx context.Context, center model.GeoPoint, radiusMeters float64, limit int) ([]*model.NearbyLocation, error)
}

// LocationService handles location business logic
type LocationService struct {
	repo LocationRepository
}

// LocationServiceConfig holds configuration for the location service
type LocationServiceConfig struct {
	Repo LocationRepository
}

// NewLocationService creates a new location service
func NewLocationService(cfg LocationServiceConfig) *LocationService {
	return &LocationService{repo: cfg.Repo}
}

// Create validates the request, derives a unique slug and persists the
// location with the requesting user as author.
//
// The slug uniqueness check and the insert are two store calls; two
// concurrent creates with the same name can race and produce the same slug.
// Accepted limitation for a human-facing identifier.
func (s *LocationService) Create(ctx context.Context, authorID string, req *model.CreateLocationRequest) (*model.Location, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if strings.TrimSpace(req.Address) == "" {
		return nil, ErrAddressRequired
	}
	if req.Lng == nil || req.Lat == nil {
		return nil, ErrCoordinatesRequired
	}
	if err := ValidateCoordinates(*req.Lng, *req.Lat); err != nil {
		return nil, err
	}

	uniqueSlug, err := s.uniqueSlug(ctx, name)
	if err != nil {
		return nil, err
	}

	loc := &model.Location{
		Name:        name,
		Slug:        uniqueSlug,
		Description: strings.TrimSpace(req.Description),
		Tags:        req.Tags,
		Address:     strings.TrimSpace(req.Address),
		Point:       model.GeoPoint{Lng: *req.Lng, Lat: *req.Lat},
		Photo:       req.Photo,
		AuthorID:    authorID,
	}
	if err := s.repo.Create(ctx, loc); err != nil {
		return nil, err
	}
	return loc, nil
}

// Update applies a partial edit to a location owned by userID. The slug is
// recomputed only when the edit changes the name; any other field edit
// leaves it untouched.
func (s *LocationService) Update(ctx context.Context, userID, id string, req *model.UpdateLocationRequest) (*model.Location, error) {
	loc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, ErrLocationNotFound
	}
	if loc.AuthorID != userID {
		return nil, ErrNotOwner
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, ErrNameRequired
		}
		if name != loc.Name {
			uniqueSlug, err := s.uniqueSlug(ctx, name)
			if err != nil {
				return nil, err
			}
			loc.Slug = uniqueSlug
		}
		loc.Name = name
	}
	if req.Description != nil {
		loc.Description = strings.TrimSpace(*req.Description)
	}
	if req.Tags != nil {
		loc.Tags = req.Tags
	}
	if req.Address != nil {
		if strings.TrimSpace(*req.Address) == "" {
			return nil, ErrAddressRequired
		}
		loc.Address = strings.TrimSpace(*req.Address)
	}
	if req.Lng != nil || req.Lat != nil {
		if req.Lng == nil || req.Lat == nil {
			return nil, ErrCoordinatesRequired
		}
		if err := ValidateCoordinates(*req.Lng, *req.Lat); err != nil {
			return nil, err
		}
		loc.Point = model.GeoPoint{Lng: *req.Lng, Lat: *req.Lat}
	}
	if req.Photo != nil {
		loc.Photo = *req.Photo
	}

	if err := s.repo.Update(ctx, loc); err != nil {
		return nil, err
	}
	return loc, nil
}

// GetBySlug retrieves a single location by slug
func (s *LocationService) GetBySlug(ctx context.Context, slugVal string) (*model.Location, error) {
	loc, err := s.repo.GetBySlug(ctx, slugVal)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, ErrLocationNotFound
	}
	return loc, nil
}

// List retrieves all locations, newest first
func (s *LocationService) List(ctx context.Context) ([]*model.Location, error) {
	return s.repo.List(ctx)
}

// Tags returns the tag cloud alongside the locations matching the selected
// tag; with no tag selected, every location is returned.
func (s *LocationService) Tags(ctx context.Context, tag string) ([]model.TagCount, []*model.Location, error) {
	tags, err := s.repo.ListTags(ctx)
	if err != nil {
		return nil, nil, err
	}
	tags = sortTagCounts(tags)

	var locations []*model.Location
	if tag == "" {
		locations, err = s.repo.List(ctx)
	} else {
		locations, err = s.repo.ByTag(ctx, tag)
	}
	if err != nil {
		return nil, nil, err
	}
	return tags, locations, nil
}

// Search runs a relevance-ordered full-text search over name and description
func (s *LocationService) Search(ctx context.Context, q string) ([]*model.Location, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, ErrSearchQueryRequired
	}
	return s.repo.Search(ctx, q, SearchLimit)
}

// Nearby finds locations within the default radius of the point, nearest
// first. Coordinates must already be parsed floats; they are validated as
// finite here before any query is built.
func (s *LocationService) Nearby(ctx context.Context, lng, lat float64) ([]*model.NearbyLocation, error) {
	if err := ValidateCoordinates(lng, lat); err != nil {
		return nil, err
	}
	center := model.GeoPoint{Lng: lng, Lat: lat}

	results, err := s.repo.Nearby(ctx, center, DefaultNearbyRadiusMeters, NearbyLimit)
	if err != nil {
		return nil, err
	}
	for _, loc := range results {
		loc.DistanceMeters = HaversineMeters(center, loc.Point)
	}
	return results, nil
}

func (s *LocationService) uniqueSlug(ctx context.Context, name string) (string, error) {
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
