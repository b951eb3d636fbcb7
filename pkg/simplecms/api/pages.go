package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/tendant/simple-cms/pkg/simplecms"
)

// PageRequest is the request body for creating a page
type PageRequest struct {
	Title   string `json:"title" validate:"required,max=300"`
	Slug    string `json:"slug" validate:"required,max=200"`
	Content string `json:"content" validate:"required"`
	Status  string `json:"status" validate:"omitempty,oneof=draft published"`
}

// PagePatchRequest is the request body for updating a page
type PagePatchRequest struct {
	Title   *string `json:"title"`
	Slug    *string `json:"slug"`
	Content *string `json:"content"`
	Status  *string `json:"status"`
}

// ListPages returns every page, drafts included
func (h *Handler) ListPages(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, h.service.Pages())
}

// GetPageByID returns a page by id
func (h *Handler) GetPageByID(w http.ResponseWriter, r *http.Request) {
	page, ok := h.service.Page(chi.URLParam(r, "id"))
	if !ok {
		writeServiceError(w, r, errPageNotFound)
		return
	}
	render.JSON(w, r, page)
}

// CreatePage validates and adds a page
func (h *Handler) CreatePage(w http.ResponseWriter, r *http.Request) {
	var req PageRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	req.Title = trimmed(req.Title)
	req.Slug = simplecms.Slugify(req.Slug)
	if req.Slug == "" {
		req.Slug = simplecms.Slugify(req.Title)
	}
	if trimmed(req.Content) == "" {
		req.Content = ""
	}
	if err := h.validate.Struct(req); err != nil {
		writeValidationError(w, r, err)
		return
	}
	if _, taken := h.service.PageBySlug(req.Slug); taken {
		writeServiceError(w, r, errPageSlugTaken)
		return
	}

	status := simplecms.StatusDraft
	if req.Status != "" {
		status = simplecms.Status(req.Status)
	}

	page := h.service.AddPage(r.Context(), simplecms.CreatePageRequest{
		Title:   req.Title,
		Slug:    req.Slug,
		Content: h.sanitizeHTML(req.Content),
		Status:  status,
	})

	slog.Info("Page created", "page_id", page.ID, "slug", page.Slug)
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, page)
}

// UpdatePage applies a partial update
func (h *Handler) UpdatePage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := h.service.Page(id); !ok {
		writeServiceError(w, r, errPageNotFound)
		return
	}

	var req PagePatchRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	var patch simplecms.PagePatch
	if req.Title != nil {
		title := trimmed(*req.Title)
		if title == "" {
			writeError(w, r, http.StatusBadRequest, "title cannot be empty")
			return
		}
		patch.Title = &title
	}
	if req.Slug != nil {
		slug := simplecms.Slugify(*req.Slug)
		if slug == "" {
			writeError(w, r, http.StatusBadRequest, "slug cannot be empty")
			return
		}
		if other, taken := h.service.PageBySlug(slug); taken && other.ID != id {
			writeServiceError(w, r, errPageSlugTaken)
			return
		}
		patch.Slug = &slug
	}
	if req.Content != nil {
		if trimmed(*req.Content) == "" {
			writeError(w, r, http.StatusBadRequest, "content cannot be empty")
			return
		}
		content := h.sanitizeHTML(*req.Content)
		patch.Content = &content
	}
	if req.Status != nil {
		status, err := simplecms.ParseStatus(*req.Status)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		patch.Status = &status
	}

	page, ok := h.service.UpdatePage(r.Context(), id, patch)
	if !ok {
		writeServiceError(w, r, errPageNotFound)
		return
	}
	render.JSON(w, r, page)
}

// DeletePage removes a page
func (h *Handler) DeletePage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !h.service.DeletePage(r.Context(), id) {
		writeServiceError(w, r, errPageNotFound)
		return
	}
	slog.Info("Page deleted", "page_id", id)
	w.WriteHeader(http.StatusNoContent)
}
