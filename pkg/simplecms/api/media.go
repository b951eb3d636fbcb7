package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/tendant/simple-cms/pkg/simplecms"
)

// MediaRequest is the request body for registering an upload. URL is
// either a base64 data URL or an http(s) URL.
type MediaRequest struct {
	Name string `json:"name" validate:"required,max=255"`
	Type string `json:"type" validate:"required,startswith=image/"`
	URL  string `json:"url" validate:"required"`
	Size int64  `json:"size" validate:"gt=0"`
}

// ListMedia returns the media library in upload order
func (h *Handler) ListMedia(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, h.service.Media())
}

// CreateMedia validates and adds an image to the media library
func (h *Handler) CreateMedia(w http.ResponseWriter, r *http.Request) {
	var req MediaRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.Name = trimmed(req.Name)
	req.Type = strings.ToLower(trimmed(req.Type))
	req.URL = trimmed(req.URL)
	if err := h.validate.Struct(req); err != nil {
		writeValidationError(w, r, err)
		return
	}

	urlTag := "http_url"
	if strings.HasPrefix(req.URL, "data:") {
		urlTag = "datauri"
	}
	if err := h.validate.Var(req.URL, urlTag); err != nil {
		writeError(w, r, http.StatusBadRequest, "url must be a data URL or an http(s) URL")
		return
	}

	if req.Size > h.maxUpload || dataURISize(req.URL) > h.maxUpload {
		writeError(w, r, http.StatusRequestEntityTooLarge, "file exceeds the upload limit")
		return
	}

	media := h.service.AddMedia(r.Context(), simplecms.CreateMediaRequest{
		Name: req.Name,
		Type: req.Type,
		URL:  req.URL,
		Size: req.Size,
	})

	slog.Info("Media uploaded", "media_id", media.ID, "name", media.Name, "size", media.Size)
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, media)
}

// DeleteMedia removes a media item. Content still pointing at its URL is
// left as is.
func (h *Handler) DeleteMedia(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !h.service.DeleteMedia(r.Context(), id) {
		writeServiceError(w, r, errMediaNotFound)
		return
	}
	slog.Info("Media deleted", "media_id", id)
	w.WriteHeader(http.StatusNoContent)
}

// dataURISize estimates the decoded size of a base64 data URL payload
func dataURISize(uri string) int64 {
	if !strings.HasPrefix(uri, "data:") {
		return 0
	}
	_, payload, ok := strings.Cut(uri, ",")
	if !ok {
		return 0
	}
	payload = strings.TrimRight(payload, "=")
	return int64(len(payload)) * 3 / 4
}
