package simplecms

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/tendant/simple-cms/pkg/simplecms/kv"
)

// service implements the Service interface
type service struct {
	store  *kv.Store
	seed   Seed
	now    func() time.Time
	newID  func() string
	logger *slog.Logger

	mu         sync.RWMutex
	articles   []Article
	categories []Category
	pages      []Page
	menuItems  []MenuItem
	media      []Media
	settings   SiteSettings

	listenersMu      sync.Mutex
	subscriptions    []subscription
	nextSubscription uint64
}

// Option represents a functional option for configuring the service
type Option func(*service)

// WithKVStore sets the durable store collections are written through to
func WithKVStore(store *kv.Store) Option {
	return func(s *service) {
		s.store = store
	}
}

// WithSeed sets the fallback dataset used for never-persisted collections
func WithSeed(seed Seed) Option {
	return func(s *service) {
		s.seed = seed
	}
}

// WithClock overrides time.Now
func WithClock(now func() time.Time) Option {
	return func(s *service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator overrides the id generator
func WithIDGenerator(newID func() string) Option {
	return func(s *service) {
		if newID != nil {
			s.newID = newID
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithListener subscribes listener for the lifetime of the service
func WithListener(listener Listener) Option {
	return func(s *service) {
		s.Subscribe(listener)
	}
}

// New creates a new service instance with the given options. The returned
// service holds the seed data until Load is called.
func New(options ...Option) (Service, error) {
	s := &service{
		seed:   DefaultSeed(),
		now:    time.Now,
		newID:  NewID,
		logger: slog.Default(),
	}

	for _, option := range options {
		option(s)
	}

	if s.store == nil {
		return nil, ErrKVStoreRequired
	}

	s.apply(s.seed.clone())
	return s, nil
}

func (s *service) apply(seed Seed) {
	s.articles = seed.Articles
	s.categories = seed.Categories
	s.pages = seed.Pages
	s.menuItems = seed.MenuItems
	s.media = seed.Media
	s.settings = seed.Settings
}

func (s *service) clock() time.Time {
	return s.now().UTC()
}

// touch returns a fresh updatedAt strictly after prev, even when the clock
// has not advanced.
func (s *service) touch(prev time.Time) time.Time {
	now := s.clock()
	if !now.After(prev) {
		now = prev.Add(time.Nanosecond)
	}
	return now
}

func (s *service) Load(ctx context.Context) {
	seed := s.seed.clone()
	loaded := Seed{
		Articles:   kv.Load(ctx, s.store, CollectionArticles.Key(), seed.Articles),
		Categories: kv.Load(ctx, s.store, CollectionCategories.Key(), seed.Categories),
		Pages:      kv.Load(ctx, s.store, CollectionPages.Key(), seed.Pages),
		MenuItems:  kv.Load(ctx, s.store, CollectionMenuItems.Key(), seed.MenuItems),
		Media:      kv.Load(ctx, s.store, CollectionMedia.Key(), seed.Media),
		Settings:   kv.Load(ctx, s.store, CollectionSiteSettings.Key(), seed.Settings),
	}
	normalize(&loaded)

	s.mu.Lock()
	s.apply(loaded)
	s.mu.Unlock()

	s.logger.Debug("content loaded",
		"articles", len(loaded.Articles),
		"categories", len(loaded.Categories),
		"pages", len(loaded.Pages),
		"menuItems", len(loaded.MenuItems),
		"media", len(loaded.Media))

	events := make([]Event, 0, len(Collections))
	for _, c := range Collections {
		events = append(events, Event{Type: EventLoaded, Collection: c})
	}
	s.notify(ctx, events...)
}

// normalize replaces JSON nulls with empty collections
func normalize(seed *Seed) {
	if seed.Articles == nil {
		seed.Articles = []Article{}
	}
	for i := range seed.Articles {
		if seed.Articles[i].Categories == nil {
			seed.Articles[i].Categories = []string{}
		}
	}
	if seed.Categories == nil {
		seed.Categories = []Category{}
	}
	if seed.Pages == nil {
		seed.Pages = []Page{}
	}
	if seed.MenuItems == nil {
		seed.MenuItems = []MenuItem{}
	}
	if seed.Media == nil {
		seed.Media = []Media{}
	}
}

func (s *service) persist(ctx context.Context, c Collection, value any) {
	s.store.Save(ctx, c.Key(), value)
}

func indexOf[T any](items []T, match func(T) bool) int {
	return slices.IndexFunc(items, match)
}

// Article operations

func (s *service) AddArticle(ctx context.Context, req CreateArticleRequest) Article {
	now := s.clock()
	status := req.Status
	if status == "" {
		status = StatusDraft
	}
	article := Article{
		ID:            s.newID(),
		Title:         req.Title,
		Slug:          req.Slug,
		Content:       req.Content,
		Excerpt:       req.Excerpt,
		FeaturedImage: req.FeaturedImage,
		Author:        req.Author,
		Categories:    cloneStrings(req.Categories),
		Status:        status,
		CreatedAt:     now,
		UpdatedAt:     now,
		PublishedAt:   cloneTime(req.PublishedAt),
	}

	s.mu.Lock()
	next := append(slices.Clip(s.articles), article)
	s.articles = next
	s.persist(ctx, CollectionArticles, next)
	s.mu.Unlock()

	s.notify(ctx, Event{Type: EventCreated, Collection: CollectionArticles, ID: article.ID})
	return cloneArticle(article)
}

func (s *service) UpdateArticle(ctx context.Context, id string, patch ArticlePatch) (Article, bool) {
	s.mu.Lock()
	i := indexOf(s.articles, func(a Article) bool { return a.ID == id })
	if i < 0 {
		s.mu.Unlock()
		return Article{}, false
	}
	prev := s.articles[i]
	updated := mergeArticle(cloneArticle(prev), patch)
	updated.UpdatedAt = s.touch(prev.UpdatedAt)

	next := slices.Clone(s.articles)
	next[i] = updated
	s.articles = next
	s.persist(ctx, CollectionArticles, next)
	s.mu.Unlock()

	s.notify(ctx, Event{Type: EventUpdated, Collection: CollectionArticles, ID: id})
	return cloneArticle(updated), true
}

func (s *service) DeleteArticle(ctx context.Context, id string) bool {
	s.mu.Lock()
	i := indexOf(s.articles, func(a Article) bool { return a.ID == id })
	if i < 0 {
		s.mu.Unlock()
		return false
	}
	next := slices.Delete(slices.Clone(s.articles), i, i+1)
	s.articles = next
	s.persist(ctx, CollectionArticles, next)
	s.mu.Unlock()

	s.notify(ctx, Event{Type: EventDeleted, Collection: CollectionArticles, ID: id})
	return true
}

// Category operations

func (s *service) AddCategory(ctx context.Context, req CreateCategoryRequest) Category {
	category := Category{
		ID:          s.newID(),
		Name:        req.Name,
		Slug:        Slugify(req.Name),
		Description: req.Description,
	}

	s.mu.Lock()
	next := append(slices.Clip(s.categories), category)
	s.categories = next
	s.persist(ctx, CollectionCategories, next)
	s.mu.Unlock()

	s.notify(ctx, Event{Type: EventCreated, Collection: CollectionCategories, ID: category.ID})
	return category
}

func (s *service) UpdateCategory(ctx context.Context, id string, patch CategoryPatch) (Category, bool) {
	s.mu.Lock()
	i := indexOf(s.categories, func(c Category) bool { return c.ID == id })
	if i < 0 {
		s.mu.Unlock()
		return Category{}, false
	}
	updated := mergeCategory(s.categories[i], patch)

	next := slices.Clone(s.categories)
	next[i] = updated
	s.categories = next
	s.persist(ctx, CollectionCategories, next)
	s.mu.Unlock()

	s.notify(ctx, Event{Type: EventUpdated, Collection: CollectionCategories, ID: id})
	return updated, true
}

// DeleteCategory removes the category and scrubs its id from every article.
// Articles themselves are kept and their updatedAt is left alone.
func (s *service) DeleteCategory(ctx context.Context, id string) bool {
	s.mu.Lock()
	i := indexOf(s.categories, func(c Category) bool { return c.ID == id })
	if i < 0 {
		s.mu.Unlock()
		return false
	}
	nextCategories := slices.Delete(slices.Clone(s.categories), i, i+1)
	s.categories = nextCategories

	events := []Event{{Type: EventDeleted, Collection: CollectionCategories, ID: id}}
	nextArticles := slices.Clone(s.articles)
	for j, a := range nextArticles {
		if !slices.Contains(a.Categories, id) {
			continue
		}
		scrubbed := cloneArticle(a)
		scrubbed.Categories = slices.DeleteFunc(scrubbed.Categories, func(c string) bool { return c == id })
		nextArticles[j] = scrubbed
		events = append(events, Event{Type: EventUpdated, Collection: CollectionArticles, ID: a.ID})
	}
	s.articles = nextArticles

	s.persist(ctx, CollectionCategories, nextCategories)
	s.persist(ctx, CollectionArticles, nextArticles)
	s.mu.Unlock()

	s.notify(ctx, events...)
	return true
}

// Page operations

func (s *service) AddPage(ctx context.Context, req CreatePageRequest) Page {
	now := s.clock()
	status := req.Status
	if status == "" {
		status = StatusDraft
	}
	page := Page{
		ID:        s.newID(),
		Title:     req.Title,
		Slug:      req.Slug,
		Content:   req.Content,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.mu.Lock()
	next := append(slices.Clip(s.pages), page)
	s.pages = next
	s.persist(ctx, CollectionPages, next)
	s.mu.Unlock()

	s.notify(ctx, Event{Type: EventCreated, Collection: CollectionPages, ID: page.ID})
	return page
}

func (s *service) UpdatePage(ctx context.Context, id string, patch PagePatch) (Page, bool) {
	s.mu.Lock()
	i := indexOf(s.pages, func(p Page) bool { return p.ID == id })
	if i < 0 {
		s.mu.Unlock()
		return Page{}, false
	}
	prev := s.pages[i]
	updated := mergePage(prev, patch)
	updated.UpdatedAt = s.touch(prev.UpdatedAt)

	next := slices.Clone(s.pages)
	next[i] = updated
	s.pages = next
	s.persist(ctx, CollectionPages, next)
	s.mu.Unlock()

	s.notify(ctx, Event{Type: EventUpdated, Collection: CollectionPages, ID: id})
	return updated, true
}

func (s *service) DeletePage(ctx context.Context, id string) bool {
	s.mu.Lock()
	i := indexOf(s.pages, func(p Page) bool { return p.ID == id })
	if i < 0 {
		s.mu.Unlock()
		return false
	}
	next := slices.Delete(slices.Clone(s.pages), i, i+1)
	s.pages = next
	s.persist(ctx, CollectionPages, next)
	s.mu.Unlock()

	s.notify(ctx, Event{Type: EventDeleted, Collection: CollectionPages, ID: id})
	return true
}

// Menu operations

func (s *service) AddMenuItem(ctx context.Context, req CreateMenuItemRequest) MenuItem {
	item := MenuItem{
		ID:       s.newID(),
		Label:    req.Label,
		URL:      req.URL,
		Order:    req.Order,
		Parent:   req.Parent,
		Location: req.Location,
	}

	s.mu.Lock()
	next := append(slices.Clip(s.menuItems), item)
	s.menuItems = next
	s.persist(ctx, CollectionMenuItems, next)
	s.mu.Unlock()

	s.notify(ctx, Event{Type: EventCreated, Collection: CollectionMenuItems, ID: item.ID})
	return item
}

func (s *service) UpdateMenuItem(ctx context.Context, id string, patch MenuItemPatch) (MenuItem, bool) {
	s.mu.Lock()
	i := indexOf(s.menuItems, func(m MenuItem) bool { return m.ID == id })
	if i < 0 {
		s.mu.Unlock()
		return MenuItem{}, false
	}
	updated := mergeMenuItem(s.menuItems[i], patch)

	next := slices.Clone(s.menuItems)
	next[i] = updated
	s.menuItems = next
	s.persist(ctx, CollectionMenuItems, next)
	s.mu.Unlock()

	s.notify(ctx, Event{Type: EventUpdated, Collection: CollectionMenuItems, ID: id})
	return updated, true
}

func (s *service) DeleteMenuItem(ctx context.Context, id string) bool {
	s.mu.Lock()
	i := indexOf(s.menuItems, func(m MenuItem) bool { return m.ID == id })
	if i < 0 {
		s.mu.Unlock()
		return false
	}
	next := slices.Delete(slices.Clone(s.menuItems), i, i+1)
	s.menuItems = next
	s.persist(ctx, CollectionMenuItems, next)
	s.mu.Unlock()

	s.notify(ctx, Event{Type: EventDeleted, Collection: CollectionMenuItems, ID: id})
	return true
}

// ReorderMenuItems replaces the whole menu with items, setting each item's
// order to its index.
func (s *service) ReorderMenuItems(ctx context.Context, items []MenuItem) []MenuItem {
	next := cloneSlice(items)
	for i := range next {
		next[i].Order = i
	}

	s.mu.Lock()
	s.menuItems = next
	s.persist(ctx, CollectionMenuItems, next)
	s.mu.Unlock()

	s.notify(ctx, Event{Type: EventReordered, Collection: CollectionMenuItems})
	return cloneSlice(next)
}

// Media operations

func (s *service) AddMedia(ctx context.Context, req CreateMediaRequest) Media {
	media := Media{
		ID:         s.newID(),
		Name:       req.Name,
		Type:       req.Type,
		URL:        req.URL,
		Size:       req.Size,
		UploadedAt: s.clock(),
	}

	s.mu.Lock()
	next := append(slices.Clip(s.media), media)
	s.media = next
	s.persist(ctx, CollectionMedia, next)
	s.mu.Unlock()

	s.notify(ctx, Event{Type: EventCreated, Collection: CollectionMedia, ID: media.ID})
	return media
}

// DeleteMedia removes the media item. Articles that still reference its URL
// are left untouched.
func (s *service) DeleteMedia(ctx context.Context, id string) bool {
	s.mu.Lock()
	i := indexOf(s.media, func(m Media) bool { return m.ID == id })
	if i < 0 {
		s.mu.Unlock()
		return false
	}
	next := slices.Delete(slices.Clone(s.media), i, i+1)
	s.media = next
	s.persist(ctx, CollectionMedia, next)
	s.mu.Unlock()

	s.notify(ctx, Event{Type: EventDeleted, Collection: CollectionMedia, ID: id})
	return true
}

// Site settings

func (s *service) UpdateSiteSettings(ctx context.Context, patch SiteSettingsPatch) SiteSettings {
	s.mu.Lock()
	updated := mergeSiteSettings(s.settings, patch)
	s.settings = updated
	s.persist(ctx, CollectionSiteSettings, updated)
	s.mu.Unlock()

	s.notify(ctx, Event{Type: EventUpdated, Collection: CollectionSiteSettings})
	return updated
}
