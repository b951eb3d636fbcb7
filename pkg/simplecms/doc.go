// Package simplecms is an editorial content store: articles, categories,
// pages, navigation menu items, media and a site settings singleton.
//
// A Service owns every collection in memory, answers read queries (by slug,
// by category, ordered and paginated listings) and writes each mutated
// collection through to a kv.Store in full. Listeners registered with
// Subscribe observe every change after it is persisted.
//
// Basic usage:
//
//	store := kv.NewStore(memory.New())
//	svc, err := simplecms.New(simplecms.WithKVStore(store))
//	if err != nil { ... }
//	svc.Load(ctx)
//	cat := svc.AddCategory(ctx, simplecms.CreateCategoryRequest{Name: "Tech"})
//	svc.AddArticle(ctx, simplecms.CreateArticleRequest{
//		Title:      "Hello",
//		Slug:       "hello",
//		Categories: []string{cat.ID},
//		Status:     simplecms.StatusDraft,
//	})
package simplecms
