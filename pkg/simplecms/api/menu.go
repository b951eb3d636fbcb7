package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/tendant/simple-cms/pkg/simplecms"
)

// MenuItemRequest is the request body for creating a menu item
type MenuItemRequest struct {
	Label    string `json:"label" validate:"required,max=100"`
	URL      string `json:"url" validate:"required,max=2048"`
	Order    *int   `json:"order" validate:"omitempty,min=0"`
	Parent   string `json:"parent"`
	Location string `json:"location" validate:"max=50"`
}

// MenuItemPatchRequest is the request body for updating a menu item
type MenuItemPatchRequest struct {
	Label    *string `json:"label"`
	URL      *string `json:"url"`
	Order    *int    `json:"order"`
	Parent   *string `json:"parent"`
	Location *string `json:"location"`
}

// ReorderRequest lists every menu item id in its new order
type ReorderRequest struct {
	IDs []string `json:"ids" validate:"required"`
}

// ListMenuItems returns every menu item by ascending order
func (h *Handler) ListMenuItems(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, h.service.MenuItems())
}

// CreateMenuItem appends a menu item. Without an explicit order it goes last.
func (h *Handler) CreateMenuItem(w http.ResponseWriter, r *http.Request) {
	var req MenuItemRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.Label = trimmed(req.Label)
	req.URL = trimmed(req.URL)
	req.Location = trimmed(req.Location)
	if err := h.validate.Struct(req); err != nil {
		writeValidationError(w, r, err)
		return
	}
	if req.Parent != "" {
		if _, ok := h.service.MenuItem(req.Parent); !ok {
			writeError(w, r, http.StatusBadRequest, "unknown parent menu item")
			return
		}
	}

	order := len(h.service.MenuItems())
	if req.Order != nil {
		order = *req.Order
	}
	location := req.Location
	if location == "" {
		location = defaultMenuLocation
	}

	item := h.service.AddMenuItem(r.Context(), simplecms.CreateMenuItemRequest{
		Label:    req.Label,
		URL:      req.URL,
		Order:    order,
		Parent:   req.Parent,
		Location: location,
	})

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, item)
}

// UpdateMenuItem applies a partial update
func (h *Handler) UpdateMenuItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := h.service.MenuItem(id); !ok {
		writeServiceError(w, r, errMenuItemNotFound)
		return
	}

	var req MenuItemPatchRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	patch := simplecms.MenuItemPatch{Order: req.Order}
	if req.Label != nil {
		label := trimmed(*req.Label)
		if label == "" {
			writeError(w, r, http.StatusBadRequest, "label cannot be empty")
			return
		}
		patch.Label = &label
	}
	if req.URL != nil {
		url := trimmed(*req.URL)
		if url == "" {
			writeError(w, r, http.StatusBadRequest, "url cannot be empty")
			return
		}
		patch.URL = &url
	}
	if req.Order != nil && *req.Order < 0 {
		writeError(w, r, http.StatusBadRequest, "order cannot be negative")
		return
	}
	if req.Parent != nil {
		parent := trimmed(*req.Parent)
		if parent == id {
			writeError(w, r, http.StatusBadRequest, "a menu item cannot be its own parent")
			return
		}
		if parent != "" {
			if _, ok := h.service.MenuItem(parent); !ok {
				writeError(w, r, http.StatusBadRequest, "unknown parent menu item")
				return
			}
		}
		patch.Parent = &parent
	}
	if req.Location != nil {
		location := trimmed(*req.Location)
		if location == "" {
			location = defaultMenuLocation
		}
		patch.Location = &location
	}

	item, ok := h.service.UpdateMenuItem(r.Context(), id, patch)
	if !ok {
		writeServiceError(w, r, errMenuItemNotFound)
		return
	}
	render.JSON(w, r, item)
}

// DeleteMenuItem removes a menu item
func (h *Handler) DeleteMenuItem(w http.ResponseWriter, r *http.Request) {
	if !h.service.DeleteMenuItem(r.Context(), chi.URLParam(r, "id")) {
		writeServiceError(w, r, errMenuItemNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ReorderMenuItems replaces the menu order. The body must name every
// existing item exactly once; item i gets order i.
func (h *Handler) ReorderMenuItems(w http.ResponseWriter, r *http.Request) {
	var req ReorderRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeValidationError(w, r, err)
		return
	}

	current := h.service.MenuItems()
	if len(req.IDs) != len(current) {
		writeError(w, r, http.StatusBadRequest, "ids must list every menu item exactly once")
		return
	}
	byID := make(map[string]simplecms.MenuItem, len(current))
	for _, item := range current {
		byID[item.ID] = item
	}

	ordered := make([]simplecms.MenuItem, 0, len(req.IDs))
	for _, id := range req.IDs {
		item, ok := byID[id]
		if !ok {
			writeError(w, r, http.StatusBadRequest, "ids must list every menu item exactly once")
			return
		}
		delete(byID, id)
		ordered = append(ordered, item)
	}

	render.JSON(w, r, h.service.ReorderMenuItems(r.Context(), ordered))
}
