package simplecms

import (
	"slices"
	"sort"
	"time"
)

// EffectiveDate is the date an article is listed under: publishedAt when
// set, otherwise createdAt.
func EffectiveDate(a Article) time.Time {
	if a.PublishedAt != nil {
		return *a.PublishedAt
	}
	return a.CreatedAt
}

// sortArticles orders by effective date, newest first. Ties keep collection order.
func sortArticles(articles []Article) {
	sort.SliceStable(articles, func(i, j int) bool {
		return EffectiveDate(articles[i]).After(EffectiveDate(articles[j]))
	})
}

func sortPages(pages []Page) {
	sort.SliceStable(pages, func(i, j int) bool {
		return pages[i].CreatedAt.After(pages[j].CreatedAt)
	})
}

func sortMenuItems(items []MenuItem) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Order < items[j].Order
	})
}

// Paginate returns the 1-based page of items. Pages outside
// [1, PageCount(len(items), pageSize)] and non-positive sizes give an empty slice.
func Paginate[T any](items []T, pageSize, page int) []T {
	if pageSize <= 0 || page < 1 {
		return []T{}
	}
	if page-1 >= PageCount(len(items), pageSize) {
		return []T{}
	}
	start := (page - 1) * pageSize
	end := min(start+pageSize, len(items))
	return cloneSlice(items[start:end])
}

// PageCount returns ceil(total/pageSize)
func PageCount(total, pageSize int) int {
	if pageSize <= 0 || total <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

// Article queries

func (s *service) Article(id string) (Article, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, a := range s.articles {
		if a.ID == id {
			return cloneArticle(a), true
		}
	}
	return Article{}, false
}

// ArticleBySlug matches the slug exactly, case-sensitively
func (s *service) ArticleBySlug(slug string) (Article, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, a := range s.articles {
		if a.Slug == slug {
			return cloneArticle(a), true
		}
	}
	return Article{}, false
}

func (s *service) Articles() []Article {
	s.mu.RLock()
	out := cloneArticles(s.articles)
	s.mu.RUnlock()

	sortArticles(out)
	return out
}

func (s *service) PublishedArticles() []Article {
	return s.filterArticles(func(a Article) bool {
		return a.Status == StatusPublished
	})
}

// ArticlesByCategory returns published articles in the category with the
// given slug. An unknown slug gives an empty list.
func (s *service) ArticlesByCategory(categorySlug string) []Article {
	category, ok := s.CategoryBySlug(categorySlug)
	if !ok {
		return []Article{}
	}
	return s.filterArticles(func(a Article) bool {
		return a.Status == StatusPublished && slices.Contains(a.Categories, category.ID)
	})
}

// ArticleCategories resolves the article's category ids, skipping ids that
// no longer exist.
func (s *service) ArticleCategories(article Article) []Category {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []Category{}
	for _, id := range article.Categories {
		for _, c := range s.categories {
			if c.ID == id {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

// RelatedArticles returns up to limit other published articles sharing at
// least one category with article.
func (s *service) RelatedArticles(article Article, limit int) []Article {
	if limit <= 0 {
		return []Article{}
	}
	related := s.filterArticles(func(a Article) bool {
		if a.ID == article.ID || a.Status != StatusPublished {
			return false
		}
		return slices.ContainsFunc(a.Categories, func(id string) bool {
			return slices.Contains(article.Categories, id)
		})
	})
	if len(related) > limit {
		related = related[:limit]
	}
	return related
}

func (s *service) filterArticles(keep func(Article) bool) []Article {
	s.mu.RLock()
	out := []Article{}
	for _, a := range s.articles {
		if keep(a) {
			out = append(out, cloneArticle(a))
		}
	}
	s.mu.RUnlock()

	sortArticles(out)
	return out
}

// Category queries

func (s *service) Category(id string) (Category, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

func (s *service) CategoryBySlug(slug string) (Category, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.categories {
		if c.Slug == slug {
			return c, true
		}
	}
	return Category{}, false
}

// Categories returns categories in insertion order
func (s *service) Categories() []Category {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return cloneSlice(s.categories)
}

// Page queries

func (s *service) Page(id string) (Page, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.pages {
		if p.ID == id {
			return p, true
		}
	}
	return Page{}, false
}

func (s *service) PageBySlug(slug string) (Page, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.pages {
		if p.Slug == slug {
			return p, true
		}
	}
	return Page{}, false
}

func (s *service) Pages() []Page {
	s.mu.RLock()
	out := cloneSlice(s.pages)
	s.mu.RUnlock()

	sortPages(out)
	return out
}

func (s *service) PublishedPages() []Page {
	s.mu.RLock()
	out := []Page{}
	for _, p := range s.pages {
		if p.Status == StatusPublished {
			out = append(out, p)
		}
	}
	s.mu.RUnlock()

	sortPages(out)
	return out
}

// Menu queries

func (s *service) MenuItem(id string) (MenuItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, m := range s.menuItems {
		if m.ID == id {
			return m, true
		}
	}
	return MenuItem{}, false
}

// MenuItems returns every menu item by ascending order
func (s *service) MenuItems() []MenuItem {
	s.mu.RLock()
	out := cloneSlice(s.menuItems)
	s.mu.RUnlock()

	sortMenuItems(out)
	return out
}

// MenuItemsByLocation returns the items tagged with location, by ascending order
func (s *service) MenuItemsByLocation(location string) []MenuItem {
	s.mu.RLock()
	out := []MenuItem{}
	for _, m := range s.menuItems {
		if m.Location == location {
			out = append(out, m)
		}
	}
	s.mu.RUnlock()

	sortMenuItems(out)
	return out
}

// Media queries

func (s *service) MediaItem(id string) (Media, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, m := range s.media {
		if m.ID == id {
			return m, true
		}
	}
	return Media{}, false
}

// Media returns media in upload order
func (s *service) Media() []Media {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return cloneSlice(s.media)
}

func (s *service) SiteSettings() SiteSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.settings
}

func (s *service) Stats(recent int) Stats {
	s.mu.RLock()
	stats := Stats{
		Articles:   len(s.articles),
		Categories: len(s.categories),
		Pages:      len(s.pages),
		Media:      len(s.media),
		MenuItems:  len(s.menuItems),
	}
	for _, a := range s.articles {
		switch a.Status {
		case StatusPublished:
			stats.PublishedArticles++
		case StatusDraft:
			stats.DraftArticles++
		}
	}
	byUpdate := cloneArticles(s.articles)
	s.mu.RUnlock()

	sort.SliceStable(byUpdate, func(i, j int) bool {
		return byUpdate[i].UpdatedAt.After(byUpdate[j].UpdatedAt)
	})
	if recent < 0 {
		recent = 0
	}
	if len(byUpdate) > recent {
		byUpdate = byUpdate[:recent]
	}
	stats.RecentlyUpdated = byUpdate
	return stats
}
