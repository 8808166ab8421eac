package handler

import (
	"errors"
	"net/http"

	"github.com/chrisueda/sakewalk/internal/middleware"
	"github.com/chrisueda/sakewalk/internal/model"
	"github.com/chrisueda/sakewalk/internal/upload"
)

// UploadHandler handles photo uploads
type UploadHandler struct {
	processor *upload.Processor
	maxBytes  int64
}

// UploadHandlerConfig holds dependencies for the upload handler
type UploadHandlerConfig struct {
	Processor *upload.Processor
	MaxBytes  int64
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(cfg UploadHandlerConfig) *UploadHandler {
	return &UploadHandler{processor: cfg.Processor, maxBytes: cfg.MaxBytes}
}

// Create handles POST /v1/uploads. The multipart field is named "photo";
// the response carries the stored filename for the client to attach to a
// location or sake.
func (h *UploadHandler) Create(w http.ResponseWriter, r *http.Request) {
	if middleware.GetUserID(r.Context()) == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)
	file, header, err := r.FormFile("photo")
	if err != nil {
		WriteError(w, model.NewBadRequestError("multipart field 'photo' required"))
		return
	}
	defer file.Close()

	name, err := h.processor.Save(header.Header.Get("Content-Type"), file)
	if err != nil {
		switch {
		case errors.Is(err, upload.ErrNotImage), errors.Is(err, upload.ErrUndecodable):
			WriteError(w, model.NewValidationError([]model.FieldError{
				{Field: "photo", Message: "file must be a decodable image"},
			}))
		case errors.Is(err, upload.ErrTooLarge):
			WriteError(w, model.NewValidationError([]model.FieldError{
				{Field: "photo", Message: "file exceeds the size limit"},
			}))
		default:
			WriteError(w, model.NewInternalError(""))
		}
		return
	}

	WriteData(w, http.StatusCreated, map[string]string{"photo": name}, nil)
}
