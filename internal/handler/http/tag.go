package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/BUTnghiemtuc/MobiTechPro/internal/service"
	"github.com/BUTnghiemtuc/MobiTechPro/pkg/httputil"
	"github.com/BUTnghiemtuc/MobiTechPro/pkg/middleware"
	"github.com/BUTnghiemtuc/MobiTechPro/pkg/validator"
)

// TagHandler handles HTTP requests for product tags.
type TagHandler struct {
	service *service.TagService
	logger  *slog.Logger
}

// NewTagHandler creates a new tag HTTP handler.
func NewTagHandler(svc *service.TagService, logger *slog.Logger) *TagHandler {
	return &TagHandler{
		service: svc,
		logger:  logger,
	}
}

// CreateTagRequest is the JSON request body for creating a tag.
type CreateTagRequest struct {
	Name  string `json:"name" validate:"required,max=64"`
	Color string `json:"color" validate:"max=32"`
}

// ListTags handles GET /api/v1/tags
func (h *TagHandler) ListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.service.List(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: tags})
}

// TagStats handles GET /api/v1/tags/stats
func (h *TagHandler) TagStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: stats})
}

// CreateTag handles POST /api/v1/tags (staff only)
func (h *TagHandler) CreateTag(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req CreateTagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	tag, err := h.service.Create(r.Context(), service.CreateTagInput{
		Name:      req.Name,
		Color:     req.Color,
		CreatedBy: middleware.UserIDFromContext(r.Context()),
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: tag})
}

// DeleteTag handles DELETE /api/v1/tags/{id} (staff only)
func (h *TagHandler) DeleteTag(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id.String()); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AssignTag handles POST /api/v1/products/{id}/tags/{tagID} (staff only)
func (h *TagHandler) AssignTag(w http.ResponseWriter, r *http.Request) {
	productID, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	tagID, ok := httputil.ParseUUID(w, chi.URLParam(r, "tagID"))
	if !ok {
		return
	}

	if err := h.service.Assign(r.Context(), productID.String(), tagID.String()); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UnassignTag handles DELETE /api/v1/products/{id}/tags/{tagID} (staff only)
func (h *TagHandler) UnassignTag(w http.ResponseWriter, r *http.Request) {
	productID, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	tagID, ok := httputil.ParseUUID(w, chi.URLParam(r, "tagID"))
	if !ok {
		return
	}

	if err := h.service.Unassign(r.Context(), productID.String(), tagID.String()); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
