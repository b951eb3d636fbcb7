package simplecms

import "context"

// Service is the main interface for the content store.
//
// Queries never block on storage and return copies; absence is reported
// with a false second result. Mutations apply the change in memory, persist
// the whole affected collection and notify listeners before returning. They
// never fail: input validation belongs to the calling surface.
type Service interface {
	// Load replaces every collection with its persisted value, falling back
	// to the seed for collections that were never stored.
	Load(ctx context.Context)

	// Subscribe registers a change listener and returns its unsubscribe func
	Subscribe(listener Listener) func()

	// Article queries
	Article(id string) (Article, bool)
	ArticleBySlug(slug string) (Article, bool)
	Articles() []Article
	PublishedArticles() []Article
	ArticlesByCategory(categorySlug string) []Article
	ArticleCategories(article Article) []Category
	RelatedArticles(article Article, limit int) []Article

	// Article mutations
	AddArticle(ctx context.Context, req CreateArticleRequest) Article
	UpdateArticle(ctx context.Context, id string, patch ArticlePatch) (Article, bool)
	DeleteArticle(ctx context.Context, id string) bool

	// Category queries
	Category(id string) (Category, bool)
	CategoryBySlug(slug string) (Category, bool)
	Categories() []Category

	// Category mutations
	AddCategory(ctx context.Context, req CreateCategoryRequest) Category
	UpdateCategory(ctx context.Context, id string, patch CategoryPatch) (Category, bool)
	DeleteCategory(ctx context.Context, id string) bool

	// Page queries
	Page(id string) (Page, bool)
	PageBySlug(slug string) (Page, bool)
	Pages() []Page
	PublishedPages() []Page

	// Page mutations
	AddPage(ctx context.Context, req CreatePageRequest) Page
	UpdatePage(ctx context.Context, id string, patch PagePatch) (Page, bool)
	DeletePage(ctx context.Context, id string) bool

	// Menu queries
	MenuItem(id string) (MenuItem, bool)
	MenuItems() []MenuItem
	MenuItemsByLocation(location string) []MenuItem

	// Menu mutations
	AddMenuItem(ctx context.Context, req CreateMenuItemRequest) MenuItem
	UpdateMenuItem(ctx context.Context, id string, patch MenuItemPatch) (MenuItem, bool)
	DeleteMenuItem(ctx context.Context, id string) bool
	ReorderMenuItems(ctx context.Context, items []MenuItem) []MenuItem

	// Media
	MediaItem(id string) (Media, bool)
	Media() []Media
	AddMedia(ctx context.Context, req CreateMediaRequest) Media
	DeleteMedia(ctx context.Context, id string) bool

	// Site settings
	SiteSettings() SiteSettings
	UpdateSiteSettings(ctx context.Context, patch SiteSettingsPatch) SiteSettings

	// Stats summarises the store, including the recent most recently updated articles
	Stats(recent int) Stats
}
