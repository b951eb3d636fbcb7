package api

import (
	"net/http"

	"github.com/go-chi/render"
)

// GetStats returns dashboard counters and the most recently updated articles
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, h.service.Stats(recentlyUpdated))
}
