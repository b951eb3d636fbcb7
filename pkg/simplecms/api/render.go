package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/tendant/simple-cms/pkg/simplecms"
)

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Error  string   `json:"error"`
	Fields []string `json:"fields,omitempty"`
}

var (
	errArticleNotFound  = fmt.Errorf("article %w", simplecms.ErrNotFound)
	errCategoryNotFound = fmt.Errorf("category %w", simplecms.ErrNotFound)
	errPageNotFound     = fmt.Errorf("page %w", simplecms.ErrNotFound)
	errMenuItemNotFound = fmt.Errorf("menu item %w", simplecms.ErrNotFound)
	errMediaNotFound    = fmt.Errorf("media %w", simplecms.ErrNotFound)

	errArticleSlugTaken  = fmt.Errorf("article %w", simplecms.ErrSlugTaken)
	errCategorySlugTaken = fmt.Errorf("category %w", simplecms.ErrSlugTaken)
	errPageSlugTaken     = fmt.Errorf("page %w", simplecms.ErrSlugTaken)
)

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	render.Status(r, status)
	render.JSON(w, r, ErrorResponse{Error: msg})
}

// writeServiceError renders err with the status of the sentinel it wraps
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	writeError(w, r, errorStatus(err), err.Error())
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, simplecms.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, simplecms.ErrSlugTaken):
		return http.StatusConflict
	case errors.Is(err, simplecms.ErrInvalidStatus):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeValidationError renders validator failures as a 400 listing the
// offending fields.
func writeValidationError(w http.ResponseWriter, r *http.Request, err error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	resp := ErrorResponse{Error: "validation failed"}
	for _, fe := range verrs {
		resp.Fields = append(resp.Fields, fmt.Sprintf("%s: %s", fe.Field(), fe.Tag()))
	}
	render.Status(r, http.StatusBadRequest)
	render.JSON(w, r, resp)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, r, http.StatusRequestEntityTooLarge, "request body too large")
			return false
		}
		slog.Debug("Invalid request body", "path", r.URL.Path, "err", err)
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// ListResponse is a page of items
type ListResponse[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// pagination reads page and per_page, defaulting to 1 and 10. limit is
// accepted in place of per_page. Values that do not parse fall back to the
// defaults; page is not clamped so requests past the end get an empty page.
func pagination(r *http.Request) (page, perPage int) {
	page, perPage = 1, defaultPerPage
	q := r.URL.Query()
	if v, err := strconv.Atoi(q.Get("page")); err == nil {
		page = v
	}
	size := q.Get("per_page")
	if size == "" {
		size = q.Get("limit")
	}
	if v, err := strconv.Atoi(size); err == nil && v > 0 {
		perPage = min(v, maxPerPage)
	}
	return page, perPage
}

func trimmed(s string) string {
	return strings.TrimSpace(s)
}

func newListResponse[T any](items []T, page, perPage int) ListResponse[T] {
	return ListResponse[T]{
		Items:      simplecms.Paginate(items, perPage, page),
		Page:       page,
		PerPage:    perPage,
		Total:      len(items),
		TotalPages: simplecms.PageCount(len(items), perPage),
	}
}

func joinIDs(ids []string) string {
	return strings.Join(ids, ", ")
}
