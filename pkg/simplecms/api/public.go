package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/tendant/simple-cms/pkg/simplecms"
)

// ArticleDetail is a published article with its resolved categories and
// related reading.
type ArticleDetail struct {
	simplecms.Article
	CategoryList []simplecms.Category `json:"categoryList"`
	Related      []simplecms.Article  `json:"related"`
}

// GetSite returns the site settings
func (h *Handler) GetSite(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, h.service.SiteSettings())
}

// GetMenu returns menu items by ascending order, optionally filtered by ?location=
func (h *Handler) GetMenu(w http.ResponseWriter, r *http.Request) {
	location := r.URL.Query().Get("location")
	if location == "" {
		render.JSON(w, r, h.service.MenuItems())
		return
	}
	render.JSON(w, r, h.service.MenuItemsByLocation(location))
}

// ListPublishedArticles returns a page of published articles, newest first
func (h *Handler) ListPublishedArticles(w http.ResponseWriter, r *http.Request) {
	page, perPage := pagination(r)
	render.JSON(w, r, newListResponse(h.service.PublishedArticles(), page, perPage))
}

// GetPublishedArticle returns a published article by slug. Drafts are hidden.
func (h *Handler) GetPublishedArticle(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	article, ok := h.service.ArticleBySlug(slug)
	if !ok || article.Status != simplecms.StatusPublished {
		writeServiceError(w, r, errArticleNotFound)
		return
	}

	render.JSON(w, r, ArticleDetail{
		Article:      article,
		CategoryList: h.service.ArticleCategories(article),
		Related:      h.service.RelatedArticles(article, relatedArticles),
	})
}

// ListCategories returns every category in insertion order
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, h.service.Categories())
}

// GetCategory returns a category by slug
func (h *Handler) GetCategory(w http.ResponseWriter, r *http.Request) {
	category, ok := h.service.CategoryBySlug(chi.URLParam(r, "slug"))
	if !ok {
		writeServiceError(w, r, errCategoryNotFound)
		return
	}
	render.JSON(w, r, category)
}

// ListCategoryArticles returns a page of the category's published articles
func (h *Handler) ListCategoryArticles(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if _, ok := h.service.CategoryBySlug(slug); !ok {
		writeServiceError(w, r, errCategoryNotFound)
		return
	}
	page, perPage := pagination(r)
	render.JSON(w, r, newListResponse(h.service.ArticlesByCategory(slug), page, perPage))
}

// GetPage returns a page by slug
func (h *Handler) GetPage(w http.ResponseWriter, r *http.Request) {
	page, ok := h.service.PageBySlug(chi.URLParam(r, "slug"))
	if !ok {
		writeServiceError(w, r, errPageNotFound)
		return
	}
	render.JSON(w, r, page)
}
