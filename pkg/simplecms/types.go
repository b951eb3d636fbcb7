package simplecms

import "time"

// Status is the publication state of an article or page
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
)

// Role of a user. Only the authenticated flag is enforced.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
)

// Article represents a news or blog post
type Article struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Slug          string     `json:"slug"`
	Content       string     `json:"content"`
	Excerpt       string     `json:"excerpt"`
	FeaturedImage string     `json:"featuredImage,omitempty"`
	Author        string     `json:"author"`
	Categories    []string   `json:"categories"`
	Status        Status     `json:"status"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
	PublishedAt   *time.Time `json:"publishedAt,omitempty"`
}

// Category groups articles
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
}

// Page is a standalone piece of content such as "About"
type Page struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Content   string    `json:"content"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// MenuItem is one navigation entry
type MenuItem struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	URL      string `json:"url"`
	Order    int    `json:"order"`
	Parent   string `json:"parent,omitempty"`
	Location string `json:"location,omitempty"`
}

// Media is an uploaded image referenced by URL
type Media struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Type       string    `json:"type"`
	URL        string    `json:"url"`
	Size       int64     `json:"size"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// SocialLinks holds the site's social profile URLs
type SocialLinks struct {
	Facebook  string `json:"facebook,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
}

// SiteSettings is the site-wide configuration singleton
type SiteSettings struct {
	Title        string      `json:"title"`
	Tagline      string      `json:"tagline"`
	Description  string      `json:"description"`
	Logo         string      `json:"logo,omitempty"`
	Favicon      string      `json:"favicon,omitempty"`
	FooterText   string      `json:"footerText,omitempty"`
	ContactEmail string      `json:"contactEmail"`
	Social       SocialLinks `json:"social"`
}

// User is an editor able to sign in to the admin surface
type User struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Role         Role   `json:"role"`
	PasswordHash string `json:"-"`
}

// Stats summarises the store for the admin dashboard
type Stats struct {
	Articles          int       `json:"articles"`
	PublishedArticles int       `json:"publishedArticles"`
	DraftArticles     int       `json:"draftArticles"`
	Categories        int       `json:"categories"`
	Pages             int       `json:"pages"`
	Media             int       `json:"media"`
	MenuItems         int       `json:"menuItems"`
	RecentlyUpdated   []Article `json:"recentlyUpdated"`
}
