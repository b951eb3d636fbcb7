package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/tendant/simple-cms/pkg/simplecms"
)

// CategoryRequest is the request body for creating a category
type CategoryRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=500"`
}

// CategoryPatchRequest is the request body for updating a category
type CategoryPatchRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// CreateCategory adds a category. The slug is derived from the name.
func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.Name = trimmed(req.Name)
	req.Description = trimmed(req.Description)
	if err := h.validate.Struct(req); err != nil {
		writeValidationError(w, r, err)
		return
	}

	slug := simplecms.Slugify(req.Name)
	if slug == "" {
		writeError(w, r, http.StatusBadRequest, "name must contain letters or digits")
		return
	}
	if _, taken := h.service.CategoryBySlug(slug); taken {
		writeServiceError(w, r, errCategorySlugTaken)
		return
	}

	category := h.service.AddCategory(r.Context(), simplecms.CreateCategoryRequest{
		Name:        req.Name,
		Description: req.Description,
	})

	slog.Info("Category created", "category_id", category.ID, "slug", category.Slug)
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, category)
}

// UpdateCategory renames or redescribes a category
func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := h.service.Category(id); !ok {
		writeServiceError(w, r, errCategoryNotFound)
		return
	}

	var req CategoryPatchRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	var patch simplecms.CategoryPatch
	if req.Name != nil {
		name := trimmed(*req.Name)
		slug := simplecms.Slugify(name)
		if slug == "" {
			writeError(w, r, http.StatusBadRequest, "name must contain letters or digits")
			return
		}
		if other, taken := h.service.CategoryBySlug(slug); taken && other.ID != id {
			writeServiceError(w, r, errCategorySlugTaken)
			return
		}
		patch.Name = &name
	}
	if req.Description != nil {
		description := trimmed(*req.Description)
		patch.Description = &description
	}

	category, ok := h.service.UpdateCategory(r.Context(), id, patch)
	if !ok {
		writeServiceError(w, r, errCategoryNotFound)
		return
	}
	render.JSON(w, r, category)
}

// DeleteCategory removes a category and unlinks it from every article
func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !h.service.DeleteCategory(r.Context(), id) {
		writeServiceError(w, r, errCategoryNotFound)
		return
	}
	slog.Info("Category deleted", "category_id", id)
	w.WriteHeader(http.StatusNoContent)
}
