package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tendant/simple-cms/pkg/simplecms"
	"github.com/tendant/simple-cms/pkg/simplecms/kv"
	"github.com/tendant/simple-cms/pkg/simplecms/kv/memory"
)

const (
	testSecret   = "test-secret"
	testUsername = "admin"
	testPassword = "admin123"
)

var testNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

type testServer struct {
	router  http.Handler
	service simplecms.Service
	token   string
}

// setupHandlerTest builds the API over an in-memory store seeded with the
// demo content and logs in as the default admin.
func setupHandlerTest(t *testing.T, opts ...Option) *testServer {
	t.Helper()
	service, err := simplecms.New(
		simplecms.WithKVStore(kv.NewStore(memory.New())),
		simplecms.WithSeed(simplecms.DefaultSeed()),
	)
	require.NoError(t, err)
	service.Load(context.Background())

	admin, err := DefaultAdmin(testUsername, testPassword)
	require.NoError(t, err)
	auth, err := NewAuth(testSecret, admin)
	require.NoError(t, err)

	options := append([]Option{WithClock(func() time.Time { return testNow })}, opts...)
	handler := NewHandler(service, auth, options...)

	ts := &testServer{router: handler.Routes(), service: service}
	ts.token = ts.login(t, testUsername, testPassword)
	return ts
}

func (ts *testServer) login(t *testing.T, username, password string) string {
	t.Helper()
	w := ts.do(t, http.MethodPost, "/auth/login", LoginRequest{Username: username, Password: password}, false)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Token
}

func (ts *testServer) do(t *testing.T, method, path string, body any, authed bool) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if authed {
		req.Header.Set("Authorization", "Bearer "+ts.token)
	}
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestLogin(t *testing.T) {
	ts := setupHandlerTest(t)

	t.Run("valid credentials", func(t *testing.T) {
		w := ts.do(t, http.MethodPost, "/auth/login", LoginRequest{Username: testUsername, Password: testPassword}, false)
		assert.Equal(t, http.StatusOK, w.Code)

		resp := decode[LoginResponse](t, w)
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, "1", resp.User.ID)
		assert.NotContains(t, w.Body.String(), "$2a$")
	})

	t.Run("wrong password", func(t *testing.T) {
		w := ts.do(t, http.MethodPost, "/auth/login", LoginRequest{Username: testUsername, Password: "nope"}, false)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("missing fields", func(t *testing.T) {
		w := ts.do(t, http.MethodPost, "/auth/login", map[string]string{"username": testUsername}, false)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decode[ErrorResponse](t, w)
		assert.Contains(t, resp.Fields, "password: required")
	})
}

func TestAdminRequiresToken(t *testing.T) {
	ts := setupHandlerTest(t)

	w := ts.do(t, http.MethodGet, "/admin/articles", nil, false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	ts.token = "not-a-token"
	w = ts.do(t, http.MethodGet, "/admin/articles", nil, true)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMe(t *testing.T) {
	ts := setupHandlerTest(t)

	w := ts.do(t, http.MethodGet, "/admin/me", nil, true)
	require.Equal(t, http.StatusOK, w.Code)
	user := decode[simplecms.User](t, w)
	assert.Equal(t, testUsername, user.Username)
	assert.Equal(t, simplecms.RoleAdmin, user.Role)
}

func TestPublicSiteAndMenu(t *testing.T) {
	ts := setupHandlerTest(t)

	w := ts.do(t, http.MethodGet, "/site", nil, false)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "The Daily Chronicle", decode[simplecms.SiteSettings](t, w).Title)

	w = ts.do(t, http.MethodGet, "/menu?location=main", nil, false)
	require.Equal(t, http.StatusOK, w.Code)
	menu := decode[[]simplecms.MenuItem](t, w)
	require.Len(t, menu, 7)
	assert.Equal(t, "Home", menu[0].Label)

	w = ts.do(t, http.MethodGet, "/menu?location=footer", nil, false)
	assert.Empty(t, decode[[]simplecms.MenuItem](t, w))
}

func TestPublicArticles(t *testing.T) {
	ts := setupHandlerTest(t)

	w := ts.do(t, http.MethodGet, "/articles?per_page=2", nil, false)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[ListResponse[simplecms.Article]](t, w)
	assert.Equal(t, 3, list.Total)
	assert.Equal(t, 2, list.TotalPages)
	require.Len(t, list.Items, 2)
	assert.Equal(t, "breakthrough-renewable-energy-storage", list.Items[0].Slug)

	w = ts.do(t, http.MethodGet, "/articles?page=5", nil, false)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[ListResponse[simplecms.Article]](t, w).Items)

	w = ts.do(t, http.MethodGet, "/articles/breakthrough-renewable-energy-storage", nil, false)
	require.Equal(t, http.StatusOK, w.Code)
	detail := decode[ArticleDetail](t, w)
	assert.Equal(t, "3", detail.ID)
	require.Len(t, detail.CategoryList, 2)
	assert.Equal(t, "technology", detail.CategoryList[0].Slug)
	require.Len(t, detail.Related, 1)
	assert.Equal(t, "1", detail.Related[0].ID)

	w = ts.do(t, http.MethodGet, "/articles/missing", nil, false)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPublicArticles_Limit(t *testing.T) {
	ts := setupHandlerTest(t)

	tests := []struct {
		query     string
		wantItems int
		wantSize  int
	}{
		{"?limit=1", 1, 1},
		{"?limit=2&page=2", 1, 2},
		{"?limit=1&per_page=3", 3, 3},
		{"?limit=0", 3, defaultPerPage},
		{"?limit=abc", 3, defaultPerPage},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			w := ts.do(t, http.MethodGet, "/articles"+tt.query, nil, false)
			require.Equal(t, http.StatusOK, w.Code)
			list := decode[ListResponse[simplecms.Article]](t, w)
			assert.Len(t, list.Items, tt.wantItems)
			assert.Equal(t, tt.wantSize, list.PerPage)
			assert.Equal(t, 3, list.Total)
		})
	}
}

func TestPublicArticles_HidesDrafts(t *testing.T) {
	ts := setupHandlerTest(t)

	w := ts.do(t, http.MethodPost, "/admin/articles", ArticleRequest{
		Title:   "Secret Draft",
		Content: "<p>Not yet</p>",
	}, true)
	require.Equal(t, http.StatusCreated, w.Code)

	w = ts.do(t, http.MethodGet, "/articles/secret-draft", nil, false)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = ts.do(t, http.MethodGet, "/articles", nil, false)
	assert.Equal(t, 3, decode[ListResponse[simplecms.Article]](t, w).Total)
}

func TestCategoryArticles(t *testing.T) {
	ts := setupHandlerTest(t)

	w := ts.do(t, http.MethodGet, "/categories/technology/articles", nil, false)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[ListResponse[simplecms.Article]](t, w)
	assert.Equal(t, 2, list.Total)
	require.Len(t, list.Items, 2)
	assert.Equal(t, "3", list.Items[0].ID)
	assert.Equal(t, "1", list.Items[1].ID)

	w = ts.do(t, http.MethodGet, "/categories/technology/articles?page=2&per_page=1", nil, false)
	list = decode[ListResponse[simplecms.Article]](t, w)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "1", list.Items[0].ID)

	w = ts.do(t, http.MethodGet, "/categories/sports/articles", nil, false)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPublicPage(t *testing.T) {
	ts := setupHandlerTest(t)

	w := ts.do(t, http.MethodGet, "/pages/about", nil, false)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "About Us", decode[simplecms.Page](t, w).Title)

	w = ts.do(t, http.MethodGet, "/pages/nope", nil, false)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateArticle(t *testing.T) {
	tests := []struct {
		name       string
		req        any
		wantStatus int
		check      func(t *testing.T, a simplecms.Article)
	}{
		{
			name:       "derives slug and excerpt",
			req:        ArticleRequest{Title: "Hello, World!  Foo", Content: "<p>Some <b>bold</b> text</p>"},
			wantStatus: http.StatusCreated,
			check: func(t *testing.T, a simplecms.Article) {
				assert.Equal(t, "hello-world-foo", a.Slug)
				assert.Equal(t, "Some bold text", a.Excerpt)
				assert.Equal(t, "1", a.Author)
				assert.Equal(t, simplecms.StatusDraft, a.Status)
				assert.Nil(t, a.PublishedAt)
				assert.Equal(t, a.CreatedAt, a.UpdatedAt)
				assert.Equal(t, []string{}, a.Categories)
			},
		},
		{
			name: "published gets a publish date",
			req: ArticleRequest{
				Title:      "Launch",
				Content:    "<p>Live</p>",
				Status:     "published",
				Categories: []string{"2"},
			},
			wantStatus: http.StatusCreated,
			check: func(t *testing.T, a simplecms.Article) {
				require.NotNil(t, a.PublishedAt)
				assert.True(t, a.PublishedAt.Equal(testNow))
				assert.Equal(t, []string{"2"}, a.Categories)
			},
		},
		{
			name:       "sanitizes content",
			req:        ArticleRequest{Title: "XSS", Content: `<p onclick="x()">Hi</p><script>alert(1)</script>`},
			wantStatus: http.StatusCreated,
			check: func(t *testing.T, a simplecms.Article) {
				assert.Equal(t, "<p>Hi</p>", a.Content)
			},
		},
		{
			name:       "missing content",
			req:        ArticleRequest{Title: "Empty", Content: "   "},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "title without slug characters",
			req:        ArticleRequest{Title: "!!!", Content: "<p>x</p>"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "bad status",
			req:        ArticleRequest{Title: "Odd", Content: "<p>x</p>", Status: "archived"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown category",
			req:        ArticleRequest{Title: "Lost", Content: "<p>x</p>", Categories: []string{"99"}},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "repeated category",
			req:        ArticleRequest{Title: "Twice", Content: "<p>x</p>", Categories: []string{"1", "1"}},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "slug taken",
			req:        ArticleRequest{Title: "Clash", Slug: "future-ai-everyday-life", Content: "<p>x</p>"},
			wantStatus: http.StatusConflict,
		},
		{
			name:       "unknown field",
			req:        map[string]string{"title": "T", "content": "c", "bogus": "1"},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := setupHandlerTest(t)
			w := ts.do(t, http.MethodPost, "/admin/articles", tt.req, true)
			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			if tt.check != nil {
				a := decode[simplecms.Article](t, w)
				tt.check(t, a)
				stored, ok := ts.service.Article(a.ID)
				require.True(t, ok)
				assert.Equal(t, a.Slug, stored.Slug)
			}
		})
	}
}

func TestUpdateArticle_PublishAndUnpublish(t *testing.T) {
	ts := setupHandlerTest(t)

	w := ts.do(t, http.MethodPost, "/admin/articles", ArticleRequest{Title: "Draft", Content: "<p>Body</p>"}, true)
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode[simplecms.Article](t, w)

	w = ts.do(t, http.MethodPatch, "/admin/articles/"+created.ID, map[string]any{"status": "published"}, true)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	published := decode[simplecms.Article](t, w)
	assert.Equal(t, simplecms.StatusPublished, published.Status)
	require.NotNil(t, published.PublishedAt)
	assert.True(t, published.UpdatedAt.After(created.UpdatedAt))
	assert.Equal(t, "Draft", published.Title)

	w = ts.do(t, http.MethodGet, "/articles/draft", nil, false)
	assert.Equal(t, http.StatusOK, w.Code)

	w = ts.do(t, http.MethodPatch, "/admin/articles/"+created.ID, map[string]any{"status": "draft"}, true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, decode[simplecms.Article](t, w).PublishedAt)
}

func TestUpdateArticle_DraftIgnoresPublishDate(t *testing.T) {
	ts := setupHandlerTest(t)

	w := ts.do(t, http.MethodPost, "/admin/articles", ArticleRequest{Title: "Still Drafting", Content: "<p>Body</p>"}, true)
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode[simplecms.Article](t, w)

	w = ts.do(t, http.MethodPatch, "/admin/articles/"+created.ID, map[string]any{
		"publishedAt": time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
	}, true)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	updated := decode[simplecms.Article](t, w)
	assert.Equal(t, simplecms.StatusDraft, updated.Status)
	assert.Nil(t, updated.PublishedAt)

	stored, ok := ts.service.Article(created.ID)
	require.True(t, ok)
	assert.Nil(t, stored.PublishedAt)
}

func TestUpdateArticle_PublishedKeepsGivenDate(t *testing.T) {
	ts := setupHandlerTest(t)
	date := time.Date(2023, 2, 1, 8, 0, 0, 0, time.UTC)

	w := ts.do(t, http.MethodPatch, "/admin/articles/1", map[string]any{"publishedAt": date}, true)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	updated := decode[simplecms.Article](t, w)
	require.NotNil(t, updated.PublishedAt)
	assert.True(t, updated.PublishedAt.Equal(date))
}

func TestUpdateArticle_Validation(t *testing.T) {
	ts := setupHandlerTest(t)

	tests := []struct {
		name       string
		id         string
		body       map[string]any
		wantStatus int
	}{
		{"unknown article", "nope", map[string]any{"title": "x"}, http.StatusNotFound},
		{"empty title", "1", map[string]any{"title": "  "}, http.StatusBadRequest},
		{"slug of another article", "1", map[string]any{"slug": "global-markets-economic-policy"}, http.StatusConflict},
		{"own slug", "1", map[string]any{"slug": "future-ai-everyday-life"}, http.StatusOK},
		{"invalid status", "1", map[string]any{"status": "gone"}, http.StatusBadRequest},
		{"unknown category", "1", map[string]any{"categories": []string{"42"}}, http.StatusBadRequest},
		{"repeated category", "1", map[string]any{"categories": []string{"2", "2"}}, http.StatusBadRequest},
		{"clear categories", "1", map[string]any{"categories": []string{}}, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ts.do(t, http.MethodPatch, "/admin/articles/"+tt.id, tt.body, true)
			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())
		})
	}

	a, ok := ts.service.Article("1")
	require.True(t, ok)
	assert.Empty(t, a.Categories)
}

func TestUpdateArticle_EmptyExcerptIsDerived(t *testing.T) {
	ts := setupHandlerTest(t)

	w := ts.do(t, http.MethodPatch, "/admin/articles/2", map[string]any{
		"content": "<p>Short update</p>",
		"excerpt": "",
	}, true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Short update", decode[simplecms.Article](t, w).Excerpt)
}

func TestAdminListArticles(t *testing.T) {
	ts := setupHandlerTest(t)
	ts.do(t, http.MethodPost, "/admin/articles", ArticleRequest{Title: "Draft", Content: "<p>x</p>"}, true)

	w := ts.do(t, http.MethodGet, "/admin/articles", nil, true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 4, decode[ListResponse[simplecms.Article]](t, w).Total)

	w = ts.do(t, http.MethodGet, "/admin/articles?status=draft", nil, true)
	list := decode[ListResponse[simplecms.Article]](t, w)
	require.Equal(t, 1, list.Total)
	assert.Equal(t, "draft", list.Items[0].Slug)
}

func TestDeleteArticle(t *testing.T) {
	ts := setupHandlerTest(t)

	w := ts.do(t, http.MethodDelete, "/admin/articles/1", nil, true)
	assert.Equal(t, http.StatusNoContent, w.Code)
	_, ok := ts.service.Article("1")
	assert.False(t, ok)

	w = ts.do(t, http.MethodDelete, "/admin/articles/1", nil, true)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCategories(t *testing.T) {
	ts := setupHandlerTest(t)

	w := ts.do(t, http.MethodPost, "/admin/categories", CategoryRequest{Name: "Arts & Culture"}, true)
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode[simplecms.Category](t, w)
	assert.Equal(t, "arts-culture", created.Slug)

	w = ts.do(t, http.MethodPost, "/admin/categories", CategoryRequest{Name: "technology"}, true)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = ts.do(t, http.MethodPost, "/admin/categories", CategoryRequest{}, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(t, http.MethodPatch, "/admin/categories/"+created.ID, map[string]any{"name": "Culture"}, true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "culture", decode[simplecms.Category](t, w).Slug)

	w = ts.do(t, http.MethodGet, "/categories/culture", nil, false)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDeleteCategory_UnlinksArticles(t *testing.T) {
	ts := setupHandlerTest(t)

	w := ts.do(t, http.MethodDelete, "/admin/categories/1", nil, true)
	require.Equal(t, http.StatusNoContent, w.Code)

	for _, a := range ts.service.Articles() {
		assert.NotContains(t, a.Categories, "1")
	}
	a, _ := ts.service.Article("3")
	assert.Equal(t, []string{"4"}, a.Categories)

	w = ts.do(t, http.MethodDelete, "/admin/categories/1", nil, true)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPages(t *testing.T) {
	ts := setupHandlerTest(t)

	w := ts.do(t, http.MethodPost, "/admin/pages", PageRequest{Title: "Privacy Policy", Content: "<p>We keep nothing.</p>"}, true)
	require.Equal(t, http.StatusCreated, w.Code)
	page := decode[simplecms.Page](t, w)
	assert.Equal(t, "privacy-policy", page.Slug)
	assert.Equal(t, simplecms.StatusDraft, page.Status)

	w = ts.do(t, http.MethodPost, "/admin/pages", PageRequest{Title: "About", Content: "<p>dup</p>"}, true)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = ts.do(t, http.MethodPatch, "/admin/pages/"+page.ID, map[string]any{"status": "published"}, true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, simplecms.StatusPublished, decode[simplecms.Page](t, w).Status)

	w = ts.do(t, http.MethodGet, "/admin/pages/"+page.ID, nil, true)
	assert.Equal(t, http.StatusOK, w.Code)

	w = ts.do(t, http.MethodGet, "/admin/pages", nil, true)
	assert.Len(t, decode[[]simplecms.Page](t, w), 3)

	w = ts.do(t, http.MethodDelete, "/admin/pages/"+page.ID, nil, true)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = ts.do(t, http.MethodGet, "/pages/privacy-policy", nil, false)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMenuItems(t *testing.T) {
	ts := setupHandlerTest(t)

	w := ts.do(t, http.MethodPost, "/admin/menu", MenuItemRequest{Label: "Sports", URL: "/category/sports"}, true)
	require.Equal(t, http.StatusCreated, w.Code)
	item := decode[simplecms.MenuItem](t, w)
	assert.Equal(t, 7, item.Order)
	assert.Equal(t, "main", item.Location)

	w = ts.do(t, http.MethodPost, "/admin/menu", MenuItemRequest{Label: "Orphan", URL: "/x", Parent: "nope"}, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(t, http.MethodPatch, "/admin/menu/"+item.ID, map[string]any{"parent": item.ID}, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(t, http.MethodPatch, "/admin/menu/"+item.ID, map[string]any{"label": "Sport", "parent": "1"}, true)
	require.Equal(t, http.StatusOK, w.Code)
	updated := decode[simplecms.MenuItem](t, w)
	assert.Equal(t, "Sport", updated.Label)
	assert.Equal(t, "1", updated.Parent)

	w = ts.do(t, http.MethodDelete, "/admin/menu/"+item.ID, nil, true)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Len(t, ts.service.MenuItems(), 7)
}

func TestReorderMenuItems(t *testing.T) {
	ts := setupHandlerTest(t)

	ids := []string{"7", "6", "5", "4", "3", "2", "1"}
	w := ts.do(t, http.MethodPut, "/admin/menu/order", ReorderRequest{IDs: ids}, true)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	menu := ts.service.MenuItems()
	require.Len(t, menu, 7)
	for i, item := range menu {
		assert.Equal(t, ids[i], item.ID)
		assert.Equal(t, i, item.Order)
	}

	for _, bad := range [][]string{
		{"1", "2"},
		{"1", "1", "2", "3", "4", "5", "6"},
		{"1", "2", "3", "4", "5", "6", "99"},
	} {
		w = ts.do(t, http.MethodPut, "/admin/menu/order", ReorderRequest{IDs: bad}, true)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}
}

func TestCreateMedia(t *testing.T) {
	const pixel = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg=="

	tests := []struct {
		name       string
		req        MediaRequest
		wantStatus int
	}{
		{"data url", MediaRequest{Name: "pixel.png", Type: "image/png", URL: pixel, Size: 70}, http.StatusCreated},
		{"remote url", MediaRequest{Name: "logo.svg", Type: "image/svg+xml", URL: "https://cdn.example.com/logo.svg", Size: 2048}, http.StatusCreated},
		{"not an image", MediaRequest{Name: "doc.pdf", Type: "application/pdf", URL: "https://example.com/doc.pdf", Size: 10}, http.StatusBadRequest},
		{"bad url", MediaRequest{Name: "x.png", Type: "image/png", URL: "not a url", Size: 10}, http.StatusBadRequest},
		{"zero size", MediaRequest{Name: "x.png", Type: "image/png", URL: pixel}, http.StatusBadRequest},
		{"too large", MediaRequest{Name: "big.png", Type: "image/png", URL: pixel, Size: 6 << 20}, http.StatusRequestEntityTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := setupHandlerTest(t)
			w := ts.do(t, http.MethodPost, "/admin/media", tt.req, true)
			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())
		})
	}
}

func TestListMedia_UploadOrder(t *testing.T) {
	ts := setupHandlerTest(t)
	before := len(ts.service.Media())

	for _, name := range []string{"first.png", "second.png", "third.png"} {
		w := ts.do(t, http.MethodPost, "/admin/media", MediaRequest{
			Name: name, Type: "image/png", URL: "https://cdn.example.com/" + name, Size: 10,
		}, true)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := ts.do(t, http.MethodGet, "/admin/media", nil, true)
	require.Equal(t, http.StatusOK, w.Code)
	media := decode[[]simplecms.Media](t, w)
	require.Len(t, media, before+3)

	var names []string
	for _, m := range media[before:] {
		names = append(names, m.Name)
	}
	assert.Equal(t, []string{"first.png", "second.png", "third.png"}, names)
}

func TestCreateMedia_DecodedSizeLimit(t *testing.T) {
	ts := setupHandlerTest(t, WithMaxUploadBytes(1024))

	payload := "data:image/png;base64," + strings.Repeat("A", 4096)
	w := ts.do(t, http.MethodPost, "/admin/media", MediaRequest{Name: "big.png", Type: "image/png", URL: payload, Size: 100}, true)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Empty(t, ts.service.Media())
}

func TestDeleteMedia(t *testing.T) {
	ts := setupHandlerTest(t)

	w := ts.do(t, http.MethodPost, "/admin/media", MediaRequest{
		Name: "hero.jpg", Type: "image/jpeg", URL: "https://cdn.example.com/hero.jpg", Size: 1000,
	}, true)
	require.Equal(t, http.StatusCreated, w.Code)
	media := decode[simplecms.Media](t, w)

	w = ts.do(t, http.MethodPatch, "/admin/articles/1", map[string]any{"featuredImage": media.URL}, true)
	require.Equal(t, http.StatusOK, w.Code)

	w = ts.do(t, http.MethodDelete, "/admin/media/"+media.ID, nil, true)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = ts.do(t, http.MethodGet, "/admin/media", nil, true)
	assert.Empty(t, decode[[]simplecms.Media](t, w))

	a, _ := ts.service.Article("1")
	assert.Equal(t, media.URL, a.FeaturedImage)
}

func TestUpdateSettings(t *testing.T) {
	ts := setupHandlerTest(t)
	before := ts.service.SiteSettings()

	w := ts.do(t, http.MethodPatch, "/admin/settings", map[string]any{
		"tagline": "Fresh news",
		"social":  map[string]string{"twitter": "https://twitter.com/chronicle"},
	}, true)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	settings := decode[simplecms.SiteSettings](t, w)
	assert.Equal(t, "Fresh news", settings.Tagline)
	assert.Equal(t, before.Title, settings.Title)
	assert.Equal(t, "https://twitter.com/chronicle", settings.Social.Twitter)
	assert.Equal(t, before.Social.Facebook, settings.Social.Facebook)

	w = ts.do(t, http.MethodPatch, "/admin/settings", map[string]any{"contactEmail": "nope"}, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(t, http.MethodPatch, "/admin/settings", map[string]any{"title": ""}, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(t, http.MethodPatch, "/admin/settings", map[string]any{
		"social": map[string]string{"facebook": "javascript:alert(1)"},
	}, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetStats(t *testing.T) {
	ts := setupHandlerTest(t)

	w := ts.do(t, http.MethodGet, "/admin/stats", nil, true)
	require.Equal(t, http.StatusOK, w.Code)

	stats := decode[simplecms.Stats](t, w)
	assert.Equal(t, 3, stats.Articles)
	assert.Equal(t, 3, stats.PublishedArticles)
	assert.Equal(t, 4, stats.Categories)
	assert.Equal(t, 7, stats.MenuItems)
	require.Len(t, stats.RecentlyUpdated, 3)
	assert.Equal(t, "3", stats.RecentlyUpdated[0].ID)
}

func TestCORS(t *testing.T) {
	ts := setupHandlerTest(t, WithAllowedOrigins("https://admin.example.com"))

	req := httptest.NewRequest(http.MethodOptions, "/admin/articles", nil)
	req.Header.Set("Origin", "https://admin.example.com")
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://admin.example.com", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestErrorEnvelope(t *testing.T) {
	ts := setupHandlerTest(t)

	tests := []struct {
		name       string
		method     string
		path       string
		body       any
		wantStatus int
		wantError  error
	}{
		{"missing article", http.MethodGet, "/admin/articles/nope", nil, http.StatusNotFound, errArticleNotFound},
		{"missing public page", http.MethodGet, "/pages/nope", nil, http.StatusNotFound, errPageNotFound},
		{"missing menu item", http.MethodDelete, "/admin/menu/nope", nil, http.StatusNotFound, errMenuItemNotFound},
		{"missing media", http.MethodDelete, "/admin/media/nope", nil, http.StatusNotFound, errMediaNotFound},
		{"article slug taken", http.MethodPost, "/admin/articles", ArticleRequest{Title: "Clash", Slug: "future-ai-everyday-life", Content: "<p>x</p>"}, http.StatusConflict, errArticleSlugTaken},
		{"category slug taken", http.MethodPost, "/admin/categories", CategoryRequest{Name: "Business"}, http.StatusConflict, errCategorySlugTaken},
		{"page slug taken", http.MethodPost, "/admin/pages", PageRequest{Title: "Contact", Content: "<p>x</p>"}, http.StatusConflict, errPageSlugTaken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ts.do(t, tt.method, tt.path, tt.body, true)
			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			assert.Equal(t, tt.wantError.Error(), decode[ErrorResponse](t, w).Error)
		})
	}
}

func TestErrorStatus(t *testing.T) {
	_, statusErr := simplecms.ParseStatus("archived")

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", errCategoryNotFound, http.StatusNotFound},
		{"slug taken", errPageSlugTaken, http.StatusConflict},
		{"invalid status", statusErr, http.StatusBadRequest},
		{"bare sentinel", simplecms.ErrSlugTaken, http.StatusConflict},
		{"unknown", assert.AnError, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errorStatus(tt.err))
		})
	}
}
