package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/chrisueda/sakewalk/internal/middleware"
	"github.com/chrisueda/sakewalk/internal/model"
	"github.com/chrisueda/sakewalk/internal/service"
)

// SakeHandler handles sake endpoints
type SakeHandler struct {
	sakes *service.SakeService
	users *service.UserService
}

// SakeHandlerConfig holds dependencies for the sake handler
type SakeHandlerConfig struct {
	Sakes *service.SakeService
	Users *service.UserService
}

// NewSakeHandler creates a new sake handler
func NewSakeHandler(cfg SakeHandlerConfig) *SakeHandler {
	return &SakeHandler{sakes: cfg.Sakes, users: cfg.Users}
}

// List handles GET /v1/sakes, serving the first page of the listing
func (h *SakeHandler) List(w http.ResponseWriter, r *http.Request) {
	h.servePage(w, r, 1)
}

// Page handles GET /v1/sakes/page/{page}
func (h *SakeHandler) Page(w http.ResponseWriter, r *http.Request) {
	page, err := strconv.Atoi(r.PathValue("page"))
	if err != nil || page < 1 {
		WriteError(w, model.NewBadRequestError("page must be a positive integer"))
		return
	}
	h.servePage(w, r, page)
}

// servePage writes one listing page. A request beyond the last page
// redirects to the last page with a notice instead of serving an empty list.
func (h *SakeHandler) servePage(w http.ResponseWriter, r *http.Request, page int) {
	result, err := h.sakes.Page(r.Context(), page)
	if err != nil {
		var oops *service.PageOutOfRangeError
		if errors.As(err, &oops) {
			notice := url.QueryEscape(fmt.Sprintf("Hey! You asked for page %d. But that doesn't exist. So I put you on page %d", oops.Requested, oops.Last))
			http.Redirect(w, r, fmt.Sprintf("/v1/sakes/page/%d?notice=%s", oops.Last, notice), http.StatusFound)
			return
		}
		WriteError(w, MapServiceError(err))
		return
	}

	links := map[string]string{
		"self": fmt.Sprintf("/v1/sakes/page/%d", result.Page),
	}
	if result.Page > 1 {
		links["prev"] = fmt.Sprintf("/v1/sakes/page/%d", result.Page-1)
	}
	if result.Page < result.Pages {
		links["next"] = fmt.Sprintf("/v1/sakes/page/%d", result.Page+1)
	}

	WriteCollection(w, http.StatusOK, result.Sakes, &PaginationInfo{
		Page:  result.Page,
		Pages: result.Pages,
		Total: result.Total,
	}, links)
}

// Get handles GET /v1/sakes/{slug}
func (h *SakeHandler) Get(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if slug == "" {
		WriteError(w, model.NewBadRequestError("sake slug required"))
		return
	}

	sake, err := h.sakes.GetBySlug(r.Context(), slug)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, sake, map[string]string{
		"self": "/v1/sakes/" + sake.Slug,
	})
}

// Create handles POST /v1/sakes
func (h *SakeHandler) Create(w http.ResponseWriter, r *http.Request) {
	if middleware.GetUserID(r.Context()) == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	var req model.CreateSakeRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	sake, err := h.sakes.Create(r.Context(), &req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusCreated, sake, map[string]string{
		"self": "/v1/sakes/" + sake.Slug,
	})
}

// Update handles PATCH /v1/sakes/{id}
func (h *SakeHandler) Update(w http.ResponseWriter, r *http.Request) {
	if middleware.GetUserID(r.Context()) == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	id := r.PathValue("id")
	if id == "" {
		WriteError(w, model.NewBadRequestError("sake ID required"))
		return
	}

	var req model.UpdateSakeRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	sake, err := h.sakes.Update(r.Context(), id, &req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, sake, map[string]string{
		"self": "/v1/sakes/" + sake.Slug,
	})
}

// Tags handles GET /v1/tags and GET /v1/tags/{tag}
func (h *SakeHandler) Tags(w http.ResponseWriter, r *http.Request) {
	tag := r.PathValue("tag")

	tags, sakes, err := h.sakes.Tags(r.Context(), tag)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"tags":     tags,
		"sakes":    sakes,
		"selected": tag,
	})
}

// Top handles GET /v1/top
func (h *SakeHandler) Top(w http.ResponseWriter, r *http.Request) {
	ranked, err := h.sakes.TopRated(r.Context())
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteCollection(w, http.StatusOK, ranked, nil, map[string]string{
		"self": "/v1/top",
	})
}

// Heart handles POST /v1/sakes/{id}/heart
func (h *SakeHandler) Heart(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	id := r.PathValue("id")
	if id == "" {
		WriteError(w, model.NewBadRequestError("sake ID required"))
		return
	}

	user, err := h.users.ToggleHeart(r.Context(), userID, id)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, map[string]interface{}{
		"hearts":  user.Hearts,
		"hearted": user.HasHearted(id),
	}, map[string]string{
		"hearts": "/v1/hearts",
	})
}

// Hearts handles GET /v1/hearts
func (h *SakeHandler) Hearts(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	if user == nil {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	sakes, err := h.sakes.Hearts(r.Context(), user)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteCollection(w, http.StatusOK, sakes, nil, map[string]string{
		"self": "/v1/hearts",
	})
}
