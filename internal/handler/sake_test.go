package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/chrisueda/sakewalk/internal/model"
	"github.com/chrisueda/sakewalk/internal/service"
)

// ============================================================================
// Stub Repository
// ============================================================================

// stubSakeRepo serves a fixed listing; unneeded methods panic so a test
// touching them fails loudly.
type stubSakeRepo struct {
	sakes []*model.Sake
	rated []*model.SakeWithRatings
}

func (s *stubSakeRepo) Create(_ context.Context, _ *model.Sake) error { panic("unexpected Create") }
func (s *stubSakeRepo) Update(_ context.Context, _ *model.Sake) error { panic("unexpected Update") }

func (s *stubSakeRepo) GetByID(_ context.Context, id string) (*model.Sake, error) {
	for _, sake := range s.sakes {
		if sake.ID == id {
			return sake, nil
		}
	}
	return nil, nil
}

func (s *stubSakeRepo) GetBySlug(_ context.Context, slug string) (*model.Sake, error) {
	for _, sake := range s.sakes {
		if sake.Slug == slug {
			return sake, nil
		}
	}
	return nil, nil
}

func (s *stubSakeRepo) List(_ context.Context) ([]*model.Sake, error) {
	return s.sakes, nil
}

func (s *stubSakeRepo) Page(_ context.Context, skip, limit int) ([]*model.Sake, error) {
	if skip >= len(s.sakes) {
		return nil, nil
	}
	end := skip + limit
	if end > len(s.sakes) {
		end = len(s.sakes)
	}
	return s.sakes[skip:end], nil
}

func (s *stubSakeRepo) Count(_ context.Context) (int, error) {
	return len(s.sakes), nil
}

func (s *stubSakeRepo) SlugsMatching(_ context.Context, _ string) ([]string, error) {
	return nil, nil
}

func (s *stubSakeRepo) ListTags(_ context.Context) ([]model.TagCount, error) {
	return nil, nil
}

func (s *stubSakeRepo) ByTag(_ context.Context, _ string) ([]*model.Sake, error) {
	return nil, nil
}

func (s *stubSakeRepo) WithRatings(_ context.Context) ([]*model.SakeWithRatings, error) {
	return s.rated, nil
}

func (s *stubSakeRepo) ByIDs(_ context.Context, _ []string) ([]*model.Sake, error) {
	return nil, nil
}

func newSakeHandler(repo *stubSakeRepo) *SakeHandler {
	return NewSakeHandler(SakeHandlerConfig{
		Sakes: service.NewSakeService(service.SakeServiceConfig{Repo: repo}),
	})
}

func listingOf(n int) *stubSakeRepo {
	repo := &stubSakeRepo{}
	for i := 0; i < n; i++ {
		repo.sakes = append(repo.sakes, &model.Sake{Name: "s"})
	}
	return repo
}

// ============================================================================
// Page Tests
// ============================================================================

func TestSakePage_FirstPage(t *testing.T) {
	t.Parallel()

	h := newSakeHandler(listingOf(7))
	req := httptest.NewRequest(http.MethodGet, "/v1/sakes", nil)
	rr := httptest.NewRecorder()

	h.List(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var resp CollectionResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Pagination == nil || resp.Pagination.Pages != 2 || resp.Pagination.Total != 7 {
		t.Errorf("unexpected pagination %+v", resp.Pagination)
	}
	if resp.Links["next"] != "/v1/sakes/page/2" {
		t.Errorf("expected next link, got %v", resp.Links)
	}
}

func TestSakePage_OutOfRangeRedirectsToLastPage(t *testing.T) {
	t.Parallel()

	h := newSakeHandler(listingOf(7))
	req := httptest.NewRequest(http.MethodGet, "/v1/sakes/page/99", nil)
	req.SetPathValue("page", "99")
	rr := httptest.NewRecorder()

	h.Page(rr, req)

	if rr.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rr.Code)
	}
	loc := rr.Header().Get("Location")
	if !strings.HasPrefix(loc, "/v1/sakes/page/2?notice=") {
		t.Errorf("expected redirect to last page with notice, got %q", loc)
	}
}

func TestSakePage_NonNumericPage(t *testing.T) {
	t.Parallel()

	h := newSakeHandler(listingOf(7))
	req := httptest.NewRequest(http.MethodGet, "/v1/sakes/page/abc", nil)
	req.SetPathValue("page", "abc")
	rr := httptest.NewRecorder()

	h.Page(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rr.Code)
	}
}

// ============================================================================
// Get Tests
// ============================================================================

func TestSakeGet_BySlug(t *testing.T) {
	t.Parallel()

	repo := &stubSakeRepo{sakes: []*model.Sake{{ID: "sake:d", Name: "Dassai", Slug: "dassai"}}}
	h := newSakeHandler(repo)

	req := httptest.NewRequest(http.MethodGet, "/v1/sakes/dassai", nil)
	req.SetPathValue("slug", "dassai")
	rr := httptest.NewRecorder()

	h.Get(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `"Dassai"`) {
		t.Errorf("expected sake in body, got %s", rr.Body.String())
	}
}

func TestSakeGet_UnknownSlug(t *testing.T) {
	t.Parallel()

	h := newSakeHandler(&stubSakeRepo{})
	req := httptest.NewRequest(http.MethodGet, "/v1/sakes/nope", nil)
	req.SetPathValue("slug", "nope")
	rr := httptest.NewRecorder()

	h.Get(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/problem+json" {
		t.Errorf("expected problem+json, got %q", ct)
	}
}

// ============================================================================
// Top Tests
// ============================================================================

func TestSakeTop(t *testing.T) {
	t.Parallel()

	repo := &stubSakeRepo{
		rated: []*model.SakeWithRatings{
			{Sake: &model.Sake{Name: "good"}, Ratings: []int{5, 4}},
			{Sake: &model.Sake{Name: "single"}, Ratings: []int{5}},
		},
	}
	h := newSakeHandler(repo)

	req := httptest.NewRequest(http.MethodGet, "/v1/top", nil)
	rr := httptest.NewRecorder()

	h.Top(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, `"good"`) || strings.Contains(body, `"single"`) {
		t.Errorf("expected only multi-review sakes ranked, got %s", body)
	}
}

// ============================================================================
// Auth Guard Tests
// ============================================================================

func TestSakeCreate_RequiresAuth(t *testing.T) {
	t.Parallel()

	h := newSakeHandler(&stubSakeRepo{})
	req := httptest.NewRequest(http.MethodPost, "/v1/sakes", strings.NewReader(`{"name":"x"}`))
	rr := httptest.NewRecorder()

	h.Create(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rr.Code)
	}
}
