package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/tendant/simple-cms/pkg/simplecms"
)

// ArticleRequest is the request body for creating an article
type ArticleRequest struct {
	Title         string     `json:"title" validate:"required,max=300"`
	Slug          string     `json:"slug" validate:"required,max=200"`
	Content       string     `json:"content" validate:"required"`
	Excerpt       string     `json:"excerpt"`
	FeaturedImage string     `json:"featuredImage"`
	Categories    []string   `json:"categories" validate:"unique,dive,required"`
	Status        string     `json:"status" validate:"omitempty,oneof=draft published"`
	PublishedAt   *time.Time `json:"publishedAt"`
}

// ArticlePatchRequest is the request body for updating an article. Omitted
// fields are left unchanged.
type ArticlePatchRequest struct {
	Title         *string    `json:"title"`
	Slug          *string    `json:"slug"`
	Content       *string    `json:"content"`
	Excerpt       *string    `json:"excerpt"`
	FeaturedImage *string    `json:"featuredImage"`
	Categories    []string   `json:"categories"`
	Status        *string    `json:"status"`
	PublishedAt   *time.Time `json:"publishedAt"`
}

// ListArticles returns every article, drafts included, newest first
func (h *Handler) ListArticles(w http.ResponseWriter, r *http.Request) {
	articles := h.service.Articles()
	if status := r.URL.Query().Get("status"); status != "" {
		filtered := []simplecms.Article{}
		for _, a := range articles {
			if string(a.Status) == status {
				filtered = append(filtered, a)
			}
		}
		articles = filtered
	}
	page, perPage := pagination(r)
	render.JSON(w, r, newListResponse(articles, page, perPage))
}

// GetArticle returns an article by id
func (h *Handler) GetArticle(w http.ResponseWriter, r *http.Request) {
	article, ok := h.service.Article(chi.URLParam(r, "id"))
	if !ok {
		writeServiceError(w, r, errArticleNotFound)
		return
	}
	render.JSON(w, r, article)
}

// CreateArticle validates and adds an article authored by the caller
func (h *Handler) CreateArticle(w http.ResponseWriter, r *http.Request) {
	var req ArticleRequest
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

	if _, taken := h.service.ArticleBySlug(req.Slug); taken {
		writeServiceError(w, r, errArticleSlugTaken)
		return
	}
	if unknown := h.unknownCategories(req.Categories); len(unknown) > 0 {
		writeError(w, r, http.StatusBadRequest, "unknown categories: "+joinIDs(unknown))
		return
	}

	author, err := userID(r)
	if err != nil {
		writeError(w, r, http.StatusUnauthorized, "unauthenticated")
		return
	}

	status := simplecms.StatusDraft
	if req.Status != "" {
		status = simplecms.Status(req.Status)
	}

	content := h.sanitizeHTML(req.Content)
	excerpt := trimmed(req.Excerpt)
	if excerpt == "" {
		excerpt = h.excerptFrom(content)
	}

	publishedAt := req.PublishedAt
	if status == simplecms.StatusPublished && publishedAt == nil {
		now := h.now().UTC()
		publishedAt = &now
	}
	if status == simplecms.StatusDraft {
		publishedAt = nil
	}

	article := h.service.AddArticle(r.Context(), simplecms.CreateArticleRequest{
		Title:         req.Title,
		Slug:          req.Slug,
		Content:       content,
		Excerpt:       excerpt,
		FeaturedImage: trimmed(req.FeaturedImage),
		Author:        author,
		Categories:    req.Categories,
		Status:        status,
		PublishedAt:   publishedAt,
	})

	slog.Info("Article created", "article_id", article.ID, "slug", article.Slug)
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, article)
}

// UpdateArticle applies a partial update
func (h *Handler) UpdateArticle(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	existing, ok := h.service.Article(id)
	if !ok {
		writeServiceError(w, r, errArticleNotFound)
		return
	}

	var req ArticlePatchRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	patch := simplecms.ArticlePatch{
		FeaturedImage: req.FeaturedImage,
		PublishedAt:   req.PublishedAt,
	}

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
		if other, taken := h.service.ArticleBySlug(slug); taken && other.ID != id {
			writeServiceError(w, r, errArticleSlugTaken)
			return
		}
		patch.Slug = &slug
	}

	content := existing.Content
	if req.Content != nil {
		if trimmed(*req.Content) == "" {
			writeError(w, r, http.StatusBadRequest, "content cannot be empty")
			return
		}
		content = h.sanitizeHTML(*req.Content)
		patch.Content = &content
	}

	if req.Excerpt != nil {
		excerpt := trimmed(*req.Excerpt)
		if excerpt == "" {
			excerpt = h.excerptFrom(content)
		}
		patch.Excerpt = &excerpt
	}

	if req.Categories != nil {
		if err := h.validate.Var(req.Categories, "unique"); err != nil {
			writeError(w, r, http.StatusBadRequest, "categories must not repeat")
			return
		}
		if unknown := h.unknownCategories(req.Categories); len(unknown) > 0 {
			writeError(w, r, http.StatusBadRequest, "unknown categories: "+joinIDs(unknown))
			return
		}
		patch.Categories = req.Categories
	}

	status := existing.Status
	if req.Status != nil {
		parsed, err := simplecms.ParseStatus(*req.Status)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		status = parsed
		patch.Status = &parsed
	}

	// Drafts never carry a publish date, whatever the request says
	switch {
	case status == simplecms.StatusDraft:
		patch.PublishedAt = nil
		patch.ClearPublishedAt = true
	case status == simplecms.StatusPublished && existing.PublishedAt == nil && patch.PublishedAt == nil:
		now := h.now().UTC()
		patch.PublishedAt = &now
	}

	article, ok := h.service.UpdateArticle(r.Context(), id, patch)
	if !ok {
		writeServiceError(w, r, errArticleNotFound)
		return
	}

	slog.Info("Article updated", "article_id", id)
	render.JSON(w, r, article)
}

// DeleteArticle removes an article
func (h *Handler) DeleteArticle(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !h.service.DeleteArticle(r.Context(), id) {
		writeServiceError(w, r, errArticleNotFound)
		return
	}
	slog.Info("Article deleted", "article_id", id)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) unknownCategories(ids []string) []string {
	var unknown []string
	for _, id := range ids {
		if _, ok := h.service.Category(id); !ok {
			unknown = append(unknown, id)
		}
	}
	return unknown
}
