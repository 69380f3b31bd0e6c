package handler

import (
	"errors"
	"log"
	"net/http"

	"talenthub-api/internal/middleware"
	"talenthub-api/internal/service"
	"talenthub-api/pkg/apierror"
	"talenthub-api/pkg/response"
)

// ShowcaseHandler handles showcase HTTP requests.
type ShowcaseHandler struct {
	showcases      *service.ShowcaseService
	maxUploadBytes int64
}

// NewShowcaseHandler creates a new showcase handler.
func NewShowcaseHandler(showcases *service.ShowcaseService, maxUploadBytes int64) *ShowcaseHandler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = 50 << 20
	}
	return &ShowcaseHandler{
		showcases:      showcases,
		maxUploadBytes: maxUploadBytes,
	}
}

// Upload handles POST /showcases (multipart form: title, description, file)
func (h *ShowcaseHandler) Upload(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())
	if identity == nil {
		response.Error(w, apierror.Unauthorized(""))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		response.Error(w, apierror.BadRequest("invalid or oversized multipart form"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		response.Error(w, apierror.ValidationError("invalid upload",
			apierror.FieldError{Field: "file", Message: "media file is required"}))
		return
	}
	defer file.Close()

	showcase, err := h.showcases.Upload(r.Context(), identity.UserID, service.UploadInput{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Data:        file,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingTitle):
			response.Error(w, apierror.ValidationError("invalid upload",
				apierror.FieldError{Field: "title", Message: "title is required"}))
		case errors.Is(err, service.ErrUnsupportedMedia):
			response.Error(w, apierror.UnsupportedMedia(""))
		default:
			log.Printf("[ShowcaseHandler] Upload failed for owner=%s rid=%s: %v",
				identity.UserID, middleware.GetRequestID(r.Context()), err)
			response.Error(w, apierror.InternalError("failed to upload showcase"))
		}
		return
	}

	response.Created(w, showcase)
}

// ListMine handles GET /showcases
func (h *ShowcaseHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())
	if identity == nil {
		response.Error(w, apierror.Unauthorized(""))
		return
	}

	showcases, err := h.showcases.ListByOwner(r.Context(), identity.UserID)
	if err != nil {
		response.Error(w, apierror.InternalError("failed to list showcases"))
		return
	}

	response.OK(w, showcases)
}
