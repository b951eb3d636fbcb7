package simplecms

// Field-by-field patch application. Timestamps are handled by the caller.

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

func mergeArticle(a Article, p ArticlePatch) Article {
	setIf(&a.Title, p.Title)
	setIf(&a.Slug, p.Slug)
	setIf(&a.Content, p.Content)
	setIf(&a.Excerpt, p.Excerpt)
	setIf(&a.FeaturedImage, p.FeaturedImage)
	setIf(&a.Author, p.Author)
	setIf(&a.Status, p.Status)
	if p.Categories != nil {
		a.Categories = cloneSlice(p.Categories)
	}
	switch {
	case p.ClearPublishedAt:
		a.PublishedAt = nil
	case p.PublishedAt != nil:
		a.PublishedAt = cloneTime(p.PublishedAt)
	}
	return a
}

func mergeCategory(c Category, p CategoryPatch) Category {
	if p.Name != nil {
		c.Name = *p.Name
		c.Slug = Slugify(*p.Name)
	}
	setIf(&c.Description, p.Description)
	return c
}

func mergePage(pg Page, p PagePatch) Page {
	setIf(&pg.Title, p.Title)
	setIf(&pg.Slug, p.Slug)
	setIf(&pg.Content, p.Content)
	setIf(&pg.Status, p.Status)
	return pg
}

func mergeMenuItem(m MenuItem, p MenuItemPatch) MenuItem {
	setIf(&m.Label, p.Label)
	setIf(&m.URL, p.URL)
	setIf(&m.Order, p.Order)
	setIf(&m.Parent, p.Parent)
	setIf(&m.Location, p.Location)
	return m
}

func mergeSocial(s SocialLinks, p *SocialPatch) SocialLinks {
	if p == nil {
		return s
	}
	setIf(&s.Facebook, p.Facebook)
	setIf(&s.Twitter, p.Twitter)
	setIf(&s.Instagram, p.Instagram)
	setIf(&s.LinkedIn, p.LinkedIn)
	return s
}

func mergeSiteSettings(s SiteSettings, p SiteSettingsPatch) SiteSettings {
	setIf(&s.Title, p.Title)
	setIf(&s.Tagline, p.Tagline)
	setIf(&s.Description, p.Description)
	setIf(&s.Logo, p.Logo)
	setIf(&s.Favicon, p.Favicon)
	setIf(&s.FooterText, p.FooterText)
	setIf(&s.ContactEmail, p.ContactEmail)
	s.Social = mergeSocial(s.Social, p.Social)
	return s
}
