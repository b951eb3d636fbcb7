package simplecms

import "time"

func cloneSlice[T any](in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return []string{}
	}
	return cloneSlice(in)
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

func cloneArticle(a Article) Article {
	a.Categories = cloneStrings(a.Categories)
	a.PublishedAt = cloneTime(a.PublishedAt)
	return a
}

func cloneArticles(in []Article) []Article {
	out := make([]Article, len(in))
	for i, a := range in {
		out[i] = cloneArticle(a)
	}
	return out
}
