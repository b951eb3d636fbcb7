package api

import (
	"log/slog"
	"reflect"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth"
	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"

	"github.com/tendant/simple-cms/pkg/simplecms"
)

const (
	defaultPerPage      = 10
	maxPerPage          = 100
	relatedArticles     = 4
	recentlyUpdated     = 5
	defaultMaxUpload    = 5 << 20
	excerptLength       = 150
	defaultMenuLocation = "main"
)

// Handler serves the public reading API and the authenticated admin API
// on top of a simplecms.Service. All input validation happens here.
type Handler struct {
	service   simplecms.Service
	auth      *Auth
	validate  *validator.Validate
	sanitizer *bluemonday.Policy
	stripper  *bluemonday.Policy
	maxUpload int64
	origins   []string
	now       func() time.Time
}

// Option configures a Handler
type Option func(*Handler)

// WithMaxUploadBytes caps the decoded size of uploaded media
func WithMaxUploadBytes(n int64) Option {
	return func(h *Handler) {
		if n > 0 {
			h.maxUpload = n
		}
	}
}

// WithAllowedOrigins enables CORS for the given origins
func WithAllowedOrigins(origins ...string) Option {
	return func(h *Handler) {
		h.origins = origins
	}
}

// WithClock overrides time.Now for publish timestamps
func WithClock(now func() time.Time) Option {
	return func(h *Handler) {
		if now != nil {
			h.now = now
		}
	}
}

// NewHandler creates a new handler
func NewHandler(service simplecms.Service, auth *Auth, opts ...Option) *Handler {
	h := &Handler{
		service:   service,
		auth:      auth,
		validate:  newValidator(),
		sanitizer: bluemonday.UGCPolicy(),
		stripper:  bluemonday.StripTagsPolicy(),
		maxUpload: defaultMaxUpload,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	return v
}

// Routes returns the full API router
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware(slog.Default()))
	r.Use(RecoveryMiddleware)
	if len(h.origins) > 0 {
		r.Use(CORSMiddleware(h.origins))
	}

	r.Get("/site", h.GetSite)
	r.Get("/menu", h.GetMenu)
	r.Get("/articles", h.ListPublishedArticles)
	r.Get("/articles/{slug}", h.GetPublishedArticle)
	r.Get("/categories", h.ListCategories)
	r.Get("/categories/{slug}", h.GetCategory)
	r.Get("/categories/{slug}/articles", h.ListCategoryArticles)
	r.Get("/pages/{slug}", h.GetPage)

	r.Post("/auth/login", h.Login)

	r.Route("/admin", func(r chi.Router) {
		r.Use(jwtauth.Verifier(h.auth.tokens))
		r.Use(jwtauth.Authenticator)
		r.Use(RequestSizeLimitMiddleware(h.maxBodyBytes()))

		r.Get("/me", h.Me)
		r.Get("/stats", h.GetStats)

		r.Route("/articles", func(r chi.Router) {
			r.Get("/", h.ListArticles)
			r.Post("/", h.CreateArticle)
			r.Get("/{id}", h.GetArticle)
			r.Patch("/{id}", h.UpdateArticle)
			r.Delete("/{id}", h.DeleteArticle)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", h.ListCategories)
			r.Post("/", h.CreateCategory)
			r.Patch("/{id}", h.UpdateCategory)
			r.Delete("/{id}", h.DeleteCategory)
		})

		r.Route("/pages", func(r chi.Router) {
			r.Get("/", h.ListPages)
			r.Post("/", h.CreatePage)
			r.Get("/{id}", h.GetPageByID)
			r.Patch("/{id}", h.UpdatePage)
			r.Delete("/{id}", h.DeletePage)
		})

		r.Route("/menu", func(r chi.Router) {
			r.Get("/", h.ListMenuItems)
			r.Post("/", h.CreateMenuItem)
			r.Put("/order", h.ReorderMenuItems)
			r.Patch("/{id}", h.UpdateMenuItem)
			r.Delete("/{id}", h.DeleteMenuItem)
		})

		r.Route("/media", func(r chi.Router) {
			r.Get("/", h.ListMedia)
			r.Post("/", h.CreateMedia)
			r.Delete("/{id}", h.DeleteMedia)
		})

		r.Get("/settings", h.GetSite)
		r.Patch("/settings", h.UpdateSettings)
	})

	return r
}

// maxBodyBytes leaves room for base64 data URLs, which are 4/3 the size of
// the raw file, plus the JSON envelope.
func (h *Handler) maxBodyBytes() int64 {
	return h.maxUpload*4/3 + 64<<10
}
