package handler

import (
	"net/http"
	"strconv"

	"github.com/chrisueda/sakewalk/internal/middleware"
	"github.com/chrisueda/sakewalk/internal/model"
	"github.com/chrisueda/sakewalk/internal/service"
)

// LocationHandler handles location endpoints
type LocationHandler struct {
	locations *service.LocationService
}

// LocationHandlerConfig holds dependencies for the location handler
type LocationHandlerConfig struct {
	Locations *service.LocationService
}

// NewLocationHandler creates a new location handler
func NewLocationHandler(cfg LocationHandlerConfig) *LocationHandler {
	return &LocationHandler{locations: cfg.Locations}
}

// List handles GET /v1/locations
func (h *LocationHandler) List(w http.ResponseWriter, r *http.Request) {
	locations, err := h.locations.List(r.Context())
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteCollection(w, http.StatusOK, locations, nil, map[string]string{
		"self": "/v1/locations",
	})
}

// Get handles GET /v1/locations/{slug}
func (h *LocationHandler) Get(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if slug == "" {
		WriteError(w, model.NewBadRequestError("location slug required"))
		return
	}

	loc, err := h.locations.GetBySlug(r.Context(), slug)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, loc, map[string]string{
		"self": "/v1/locations/" + loc.Slug,
	})
}

// Create handles POST /v1/locations
func (h *LocationHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	var req model.CreateLocationRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	loc, err := h.locations.Create(r.Context(), userID, &req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusCreated, loc, map[string]string{
		"self": "/v1/locations/" + loc.Slug,
	})
}

// Update handles PATCH /v1/locations/{id}
func (h *LocationHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	id := r.PathValue("id")
	if id == "" {
		WriteError(w, model.NewBadRequestError("location ID required"))
		return
	}

	var req model.UpdateLocationRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	loc, err := h.locations.Update(r.Context(), userID, id, &req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, loc, map[string]string{
		"self": "/v1/locations/" + loc.Slug,
	})
}

// Tags handles GET /v1/tags and GET /v1/tags/{tag}
func (h *LocationHandler) Tags(w http.ResponseWriter, r *http.Request) {
	tag := r.PathValue("tag")

	tags, locations, err := h.locations.Tags(r.Context(), tag)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"tags":      tags,
		"locations": locations,
		"selected":  tag,
	})
}

// Search handles GET /v1/search?q=
func (h *LocationHandler) Search(w http.ResponseWriter, r *http.Request) {
	results, err := h.locations.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteCollection(w, http.StatusOK, results, nil, map[string]string{
		"self": "/v1/search",
	})
}

// Nearby handles GET /v1/locations/near?lng=&lat=
func (h *LocationHandler) Nearby(w http.ResponseWriter, r *http.Request) {
	lng, errLng := strconv.ParseFloat(r.URL.Query().Get("lng"), 64)
	lat, errLat := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	if errLng != nil || errLat != nil {
		WriteError(w, model.NewBadRequestError("lng and lat must be valid numbers"))
		return
	}

	results, err := h.locations.Nearby(r.Context(), lng, lat)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteCollection(w, http.StatusOK, results, nil, map[string]string{
		"self": "/v1/locations/near",
	})
}
