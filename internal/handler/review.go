package handler

import (
	"net/http"

	"github.com/chrisueda/sakewalk/internal/middleware"
	"github.com/chrisueda/sakewalk/internal/model"
	"github.com/chrisueda/sakewalk/internal/service"
)

// ReviewHandler handles review endpoints
type ReviewHandler struct {
	reviews *service.ReviewService
}

// ReviewHandlerConfig holds dependencies for the review handler
type ReviewHandlerConfig struct {
	Reviews *service.ReviewService
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(cfg ReviewHandlerConfig) *ReviewHandler {
	return &ReviewHandler{reviews: cfg.Reviews}
}

// Create handles POST /v1/reviews/{sakeId}
func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	sakeID := r.PathValue("sakeId")
	if sakeID == "" {
		WriteError(w, model.NewBadRequestError("sake ID required"))
		return
	}

	var req model.CreateReviewRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	review, err := h.reviews.Create(r.Context(), userID, sakeID, &req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusCreated, review, nil)
}
