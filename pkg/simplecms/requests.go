package simplecms

import "time"

// CreateArticleRequest contains parameters for creating an article
type CreateArticleRequest struct {
	Title         string
	Slug          string
	Content       string
	Excerpt       string
	FeaturedImage string
	Author        string
	Categories    []string
	Status        Status
	PublishedAt   *time.Time
}

// ArticlePatch lists the article fields to change. Nil fields are left as
// they are. A nil Categories leaves the categories untouched while an empty
// non-nil slice clears them.
type ArticlePatch struct {
	Title            *string
	Slug             *string
	Content          *string
	Excerpt          *string
	FeaturedImage    *string
	Author           *string
	Categories       []string
	Status           *Status
	PublishedAt      *time.Time
	ClearPublishedAt bool
}

// CreateCategoryRequest contains parameters for creating a category.
// The slug is always derived from Name.
type CreateCategoryRequest struct {
	Name        string
	Description string
}

// CategoryPatch lists the category fields to change
type CategoryPatch struct {
	Name        *string
	Description *string
}

// CreatePageRequest contains parameters for creating a page
type CreatePageRequest struct {
	Title   string
	Slug    string
	Content string
	Status  Status
}

// PagePatch lists the page fields to change
type PagePatch struct {
	Title   *string
	Slug    *string
	Content *string
	Status  *Status
}

// CreateMenuItemRequest contains parameters for creating a menu item
type CreateMenuItemRequest struct {
	Label    string
	URL      string
	Order    int
	Parent   string
	Location string
}

// MenuItemPatch lists the menu item fields to change
type MenuItemPatch struct {
	Label    *string
	URL      *string
	Order    *int
	Parent   *string
	Location *string
}

// CreateMediaRequest carries an already-encoded upload
type CreateMediaRequest struct {
	Name string
	Type string
	URL  string
	Size int64
}

// SocialPatch lists the social links to change
type SocialPatch struct {
	Facebook  *string
	Twitter   *string
	Instagram *string
	LinkedIn  *string
}

// SiteSettingsPatch lists the settings to change. Social is merged link by
// link.
type SiteSettingsPatch struct {
	Title        *string
	Tagline      *string
	Description  *string
	Logo         *string
	Favicon      *string
	FooterText   *string
	ContactEmail *string
	Social       *SocialPatch
}
