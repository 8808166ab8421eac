package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/chrisueda/sakewalk/internal/middleware"
	"github.com/chrisueda/sakewalk/internal/model"
	"github.com/chrisueda/sakewalk/internal/service"
)

// ============================================================================
// Stub Repository
// ============================================================================

type stubLocationRepo struct {
	locations []*model.Location
	nearby    []*model.NearbyLocation
	created   *model.Location
}

func (s *stubLocationRepo) Create(_ context.Context, loc *model.Location) error {
	s.created = loc
	return nil
}

func (s *stubLocationRepo) Update(_ context.Context, _ *model.Location) error { return nil }

func (s *stubLocationRepo) GetByID(_ context.Context, id string) (*model.Location, error) {
	for _, loc := range s.locations {
		if loc.ID == id {
			return loc, nil
		}
	}
	return nil, nil
}

func (s *stubLocationRepo) GetBySlug(_ context.Context, slug string) (*model.Location, error) {
	for _, loc := range s.locations {
		if loc.Slug == slug {
			return loc, nil
		}
	}
	return nil, nil
}

func (s *stubLocationRepo) List(_ context.Context) ([]*model.Location, error) {
	return s.locations, nil
}

func (s *stubLocationRepo) SlugsMatching(_ context.Context, _ string) ([]string, error) {
	var slugs []string
	for _, loc := range s.locations {
		slugs = append(slugs, loc.Slug)
	}
	return slugs, nil
}

func (s *stubLocationRepo) ListTags(_ context.Context) ([]model.TagCount, error) {
	return nil, nil
}

func (s *stubLocationRepo) ByTag(_ context.Context, _ string) ([]*model.Location, error) {
	return nil, nil
}

func (s *stubLocationRepo) Search(_ context.Context, _ string, _ int) ([]*model.Location, error) {
	return s.locations, nil
}

func (s *stubLocationRepo) Nearby(_ context.Context, _ model.GeoPoint, _ float64, _ int) ([]*model.NearbyLocation, error) {
	return s.nearby, nil
}

func newLocationHandler(repo *stubLocationRepo) *LocationHandler {
	return NewLocationHandler(LocationHandlerConfig{
		Locations: service.NewLocationService(service.LocationServiceConfig{Repo: repo}),
	})
}

func authedRequest(req *http.Request, userID string) *http.Request {
	ctx := context.WithValue(req.Context(), middleware.UserKey, &model.User{ID: userID})
	return req.WithContext(ctx)
}

// ============================================================================
// Nearby Tests
// ============================================================================

func TestLocationNearby_MissingParams(t *testing.T) {
	t.Parallel()

	h := newLocationHandler(&stubLocationRepo{})
	req := httptest.NewRequest(http.MethodGet, "/v1/locations/near", nil)
	rr := httptest.NewRecorder()

	h.Nearby(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rr.Code)
	}
}

func TestLocationNearby_NonFiniteParams(t *testing.T) {
	t.Parallel()

	h := newLocationHandler(&stubLocationRepo{})
	req := httptest.NewRequest(http.MethodGet, "/v1/locations/near?lng=NaN&lat=35", nil)
	rr := httptest.NewRecorder()

	h.Nearby(rr, req)

	// NaN parses as a float but is rejected as a coordinate.
	if rr.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %d", rr.Code)
	}
}

func TestLocationNearby_ReturnsDistances(t *testing.T) {
	t.Parallel()

	repo := &stubLocationRepo{
		nearby: []*model.NearbyLocation{
			{Slug: "shinjuku", Point: model.GeoPoint{Lng: 139.7006, Lat: 35.6896}},
		},
	}
	h := newLocationHandler(repo)
	req := httptest.NewRequest(http.MethodGet, "/v1/locations/near?lng=139.7671&lat=35.6812", nil)
	rr := httptest.NewRecorder()

	h.Nearby(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var resp struct {
		Data []*model.NearbyLocation `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Data) != 1 || resp.Data[0].DistanceMeters <= 0 {
		t.Errorf("expected distance filled in, got %+v", resp.Data)
	}
}

// ============================================================================
// Create Tests
// ============================================================================

func TestLocationCreate_RequiresAuth(t *testing.T) {
	t.Parallel()

	h := newLocationHandler(&stubLocationRepo{})
	req := httptest.NewRequest(http.MethodPost, "/v1/locations", strings.NewReader(`{}`))
	rr := httptest.NewRecorder()

	h.Create(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rr.Code)
	}
}

func TestLocationCreate_Success(t *testing.T) {
	t.Parallel()

	repo := &stubLocationRepo{}
	h := newLocationHandler(repo)

	body := `{"name":"Sake Bar Ginjo","address":"1-2-3 Shinjuku","lng":139.7,"lat":35.6}`
	req := httptest.NewRequest(http.MethodPost, "/v1/locations", strings.NewReader(body))
	req = authedRequest(req, "user:alice")
	rr := httptest.NewRecorder()

	h.Create(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}
	if repo.created == nil || repo.created.Slug != "sake-bar-ginjo" {
		t.Errorf("expected persisted location with derived slug, got %+v", repo.created)
	}
	if repo.created.AuthorID != "user:alice" {
		t.Errorf("expected author from context, got %q", repo.created.AuthorID)
	}
}

func TestLocationCreate_ValidationFailure(t *testing.T) {
	t.Parallel()

	h := newLocationHandler(&stubLocationRepo{})

	body := `{"name":"Sake Bar Ginjo"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/locations", strings.NewReader(body))
	req = authedRequest(req, "user:alice")
	rr := httptest.NewRecorder()

	h.Create(rr, req)

	if rr.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %d", rr.Code)
	}
}

// ============================================================================
// Update Tests
// ============================================================================

func TestLocationUpdate_ForbiddenForNonOwner(t *testing.T) {
	t.Parallel()

	repo := &stubLocationRepo{
		locations: []*model.Location{
			{ID: "location:abc", Name: "Bar", Slug: "bar", AuthorID: "user:alice"},
		},
	}
	h := newLocationHandler(repo)

	req := httptest.NewRequest(http.MethodPatch, "/v1/locations/location:abc", strings.NewReader(`{"name":"Stolen"}`))
	req.SetPathValue("id", "location:abc")
	req = authedRequest(req, "user:mallory")
	rr := httptest.NewRecorder()

	h.Update(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", rr.Code)
	}
}

// ============================================================================
// Search Tests
// ============================================================================

func TestLocationSearch_EmptyQuery(t *testing.T) {
	t.Parallel()

	h := newLocationHandler(&stubLocationRepo{})
	req := httptest.NewRequest(http.MethodGet, "/v1/search", nil)
	rr := httptest.NewRecorder()

	h.Search(rr, req)

	if rr.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %d", rr.Code)
	}
}
