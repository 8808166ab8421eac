package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/chrisueda/sakewalk/internal/model"
)

// ============================================================================
// Mock Authenticator
// ============================================================================

type mockAuthenticator struct {
	authenticateFn func(ctx context.Context, token string) (*model.User, error)
}

func (m *mockAuthenticator) Authenticate(ctx context.Context, token string) (*model.User, error) {
	return m.authenticateFn(ctx, token)
}

// successAuthenticator resolves any token to the given user
func successAuthenticator(userID string) *mockAuthenticator {
	return &mockAuthenticator{
		authenticateFn: func(_ context.Context, _ string) (*model.User, error) {
			return &model.User{ID: userID}, nil
		},
	}
}

// unknownTokenAuthenticator resolves every token to no user
func unknownTokenAuthenticator() *mockAuthenticator {
	return &mockAuthenticator{
		authenticateFn: func(_ context.Context, _ string) (*model.User, error) {
			return nil, nil
		},
	}
}

// ============================================================================
// Test Helpers
// ============================================================================

func newTestRequest(authHeader string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	return req
}

// captureHandler captures the request context for inspection
type captureHandler struct {
	called bool
	ctx    context.Context
}

func (h *captureHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.called = true
	h.ctx = r.Context()
	w.WriteHeader(http.StatusOK)
}

// ============================================================================
// Auth() Middleware Tests
// ============================================================================

func TestAuth_MissingAuthorizationHeader_ReturnsUnauthorized(t *testing.T) {
	t.Parallel()

	handler := &captureHandler{}
	req := newTestRequest("")
	rr := httptest.NewRecorder()

	Auth(successAuthenticator("user:123"))(handler).ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rr.Code)
	}
	if handler.called {
		t.Error("handler should not be called")
	}
}

func TestAuth_MalformedHeader_ReturnsUnauthorized(t *testing.T) {
	t.Parallel()

	handler := &captureHandler{}
	req := newTestRequest("NotBearer token123")
	rr := httptest.NewRecorder()

	Auth(successAuthenticator("user:123"))(handler).ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rr.Code)
	}
}

func TestAuth_UnknownToken_ReturnsUnauthorized(t *testing.T) {
	t.Parallel()

	handler := &captureHandler{}
	req := newTestRequest("Bearer deadbeef")
	rr := httptest.NewRecorder()

	Auth(unknownTokenAuthenticator())(handler).ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rr.Code)
	}
	if handler.called {
		t.Error("handler should not be called")
	}
}

func TestAuth_LookupError_ReturnsInternalError(t *testing.T) {
	t.Parallel()

	auth := &mockAuthenticator{
		authenticateFn: func(_ context.Context, _ string) (*model.User, error) {
			return nil, errors.New("store down")
		},
	}
	handler := &captureHandler{}
	req := newTestRequest("Bearer deadbeef")
	rr := httptest.NewRecorder()

	Auth(auth)(handler).ServeHTTP(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rr.Code)
	}
}

func TestAuth_ValidToken_AttachesUser(t *testing.T) {
	t.Parallel()

	handler := &captureHandler{}
	req := newTestRequest("Bearer deadbeef")
	rr := httptest.NewRecorder()

	Auth(successAuthenticator("user:alice"))(handler).ServeHTTP(rr, req)

	if !handler.called {
		t.Fatal("expected handler to be called")
	}
	if GetUserID(handler.ctx) != "user:alice" {
		t.Errorf("expected user:alice in context, got %q", GetUserID(handler.ctx))
	}
	if GetUser(handler.ctx) == nil {
		t.Error("expected full user in context")
	}
}

func TestAuth_BearerCaseInsensitive(t *testing.T) {
	t.Parallel()

	handler := &captureHandler{}
	req := newTestRequest("bearer deadbeef")
	rr := httptest.NewRecorder()

	Auth(successAuthenticator("user:alice"))(handler).ServeHTTP(rr, req)

	if !handler.called {
		t.Error("expected lowercase bearer scheme to be accepted")
	}
}

// ============================================================================
// OptionalAuth() Middleware Tests
// ============================================================================

func TestOptionalAuth_NoHeader_PassesThroughAnonymously(t *testing.T) {
	t.Parallel()

	handler := &captureHandler{}
	req := newTestRequest("")
	rr := httptest.NewRecorder()

	OptionalAuth(successAuthenticator("user:alice"))(handler).ServeHTTP(rr, req)

	if !handler.called {
		t.Fatal("expected handler to be called")
	}
	if GetUser(handler.ctx) != nil {
		t.Error("expected no user in context")
	}
}

func TestOptionalAuth_ValidToken_AttachesUser(t *testing.T) {
	t.Parallel()

	handler := &captureHandler{}
	req := newTestRequest("Bearer deadbeef")
	rr := httptest.NewRecorder()

	OptionalAuth(successAuthenticator("user:alice"))(handler).ServeHTTP(rr, req)

	if GetUserID(handler.ctx) != "user:alice" {
		t.Errorf("expected user:alice in context, got %q", GetUserID(handler.ctx))
	}
}

func TestOptionalAuth_UnknownToken_PassesThroughAnonymously(t *testing.T) {
	t.Parallel()

	handler := &captureHandler{}
	req := newTestRequest("Bearer deadbeef")
	rr := httptest.NewRecorder()

	OptionalAuth(unknownTokenAuthenticator())(handler).ServeHTTP(rr, req)

	if !handler.called {
		t.Fatal("expected handler to be called")
	}
	if GetUser(handler.ctx) != nil {
		t.Error("expected no user in context")
	}
}
