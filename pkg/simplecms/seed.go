package simplecms

import "time"

// Seed is the dataset a Service falls back to for any collection that has
// never been persisted.
type Seed struct {
	Articles   []Article
	Categories []Category
	Pages      []Page
	MenuItems  []MenuItem
	Media      []Media
	Settings   SiteSettings
}

// EmptySeed returns a seed with no content and blank settings
func EmptySeed() Seed {
	return Seed{
		Articles:   []Article{},
		Categories: []Category{},
		Pages:      []Page{},
		MenuItems:  []MenuItem{},
		Media:      []Media{},
	}
}

func seedTime(value string) time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		panic(err)
	}
	return t
}

func seedTimePtr(value string) *time.Time {
	t := seedTime(value)
	return &t
}

// DefaultSeed returns the demo newsroom: four categories, three published
// articles, About and Contact pages and a seven-entry main menu.
func DefaultSeed() Seed {
	return Seed{
		Categories: []Category{
			{ID: "1", Name: "Technology", Slug: "technology", Description: "Latest technology news and advancements"},
			{ID: "2", Name: "Business", Slug: "business", Description: "Business news and market updates"},
			{ID: "3", Name: "Politics", Slug: "politics", Description: "Political news and analysis"},
			{ID: "4", Name: "Science", Slug: "science", Description: "Scientific discoveries and research"},
		},
		Articles: []Article{
			{
				ID:    "1",
				Title: "The Future of AI in Everyday Life",
				Slug:  "future-ai-everyday-life",
				Content: "<p>Artificial intelligence is rapidly transforming how we live and work. From smart assistants to autonomous vehicles, AI technologies are becoming increasingly integrated into our daily routines.</p>" +
					"<p>Recent advancements in machine learning have enabled AI systems to understand human language, recognize images, and even create art.</p>" +
					"<p>As AI continues to evolve, policymakers, technologists and citizens will need to work together so that these tools benefit humanity as a whole.</p>",
				Excerpt:     "Artificial intelligence is rapidly transforming how we live and work. From smart assistants to autonomous vehicles, AI technologies are becoming increasingly integrated into our daily routines.",
				Author:      "1",
				Categories:  []string{"1"},
				Status:      StatusPublished,
				CreatedAt:   seedTime("2023-01-15T12:00:00Z"),
				UpdatedAt:   seedTime("2023-01-15T15:30:00Z"),
				PublishedAt: seedTimePtr("2023-01-15T16:00:00Z"),
			},
			{
				ID:    "2",
				Title: "Global Markets React to Economic Policy Shifts",
				Slug:  "global-markets-economic-policy",
				Content: "<p>Global financial markets experienced significant volatility today in response to major economic policy announcements from several central banks.</p>" +
					"<p>The European Central Bank's new stimulus measures boosted European markets, while Asian markets showed a mixed response.</p>" +
					"<p>Market strategists are now watching how these developments will affect global trade, inflation expectations and currency markets.</p>",
				Excerpt:     "Global financial markets experienced significant volatility today in response to major economic policy announcements from several central banks.",
				Author:      "1",
				Categories:  []string{"2"},
				Status:      StatusPublished,
				CreatedAt:   seedTime("2023-01-16T09:15:00Z"),
				UpdatedAt:   seedTime("2023-01-16T11:45:00Z"),
				PublishedAt: seedTimePtr("2023-01-16T14:00:00Z"),
			},
			{
				ID:    "3",
				Title: "Breakthrough in Renewable Energy Storage",
				Slug:  "breakthrough-renewable-energy-storage",
				Content: "<p>Scientists at the National Renewable Energy Laboratory have announced a major breakthrough in energy storage technology that could accelerate the global transition to renewable energy sources.</p>" +
					"<p>The innovation addresses the intermittent nature of sources like solar and wind by storing excess energy cheaply and releasing it when production drops.</p>" +
					"<p>The research team is now working with industry partners to scale up production.</p>",
				Excerpt:     "Scientists have announced a major breakthrough in energy storage technology that could accelerate the global transition to renewable energy sources.",
				Author:      "1",
				Categories:  []string{"1", "4"},
				Status:      StatusPublished,
				CreatedAt:   seedTime("2023-01-18T10:20:00Z"),
				UpdatedAt:   seedTime("2023-01-19T09:30:00Z"),
				PublishedAt: seedTimePtr("2023-01-19T13:00:00Z"),
			},
		},
		Pages: []Page{
			{
				ID:    "1",
				Title: "About Us",
				Slug:  "about",
				Content: "<h2>About Our News Organization</h2>" +
					"<p>Founded with a commitment to journalistic integrity and public service, our news organization strives to deliver accurate, unbiased, and timely information to our readers.</p>" +
					"<h3>Contact Us</h3><p>Please reach out to us at contact@example.com.</p>",
				Status:    StatusPublished,
				CreatedAt: seedTime("2023-01-10T08:00:00Z"),
				UpdatedAt: seedTime("2023-01-10T08:00:00Z"),
			},
			{
				ID:    "2",
				Title: "Contact",
				Slug:  "contact",
				Content: "<h2>Contact Us</h2>" +
					"<p>Email: info@example.com<br>Phone: (555) 123-4567</p>" +
					"<h3>News Tips</h3><p>Email: tips@example.com</p>",
				Status:    StatusPublished,
				CreatedAt: seedTime("2023-01-10T09:30:00Z"),
				UpdatedAt: seedTime("2023-01-10T09:30:00Z"),
			},
		},
		MenuItems: []MenuItem{
			{ID: "1", Label: "Home", URL: "/", Order: 1, Location: "main"},
			{ID: "2", Label: "Technology", URL: "/category/technology", Order: 2, Location: "main"},
			{ID: "3", Label: "Business", URL: "/category/business", Order: 3, Location: "main"},
			{ID: "4", Label: "Politics", URL: "/category/politics", Order: 4, Location: "main"},
			{ID: "5", Label: "Science", URL: "/category/science", Order: 5, Location: "main"},
			{ID: "6", Label: "About", URL: "/page/about", Order: 6, Location: "main"},
			{ID: "7", Label: "Contact", URL: "/page/contact", Order: 7, Location: "main"},
		},
		Media: []Media{},
		Settings: SiteSettings{
			Title:        "The Daily Chronicle",
			Tagline:      "Informed Perspectives, Every Day",
			Description:  "Your trusted source for the latest news, in-depth analysis, and thoughtful commentary on the issues that matter most.",
			ContactEmail: "contact@dailychronicle.example.com",
			Social: SocialLinks{
				Facebook:  "https://facebook.com/dailychronicle",
				Twitter:   "https://twitter.com/dailychronicle",
				Instagram: "https://instagram.com/dailychronicle",
			},
		},
	}
}

// clone returns a deep copy so callers can never alias seed slices
func (s Seed) clone() Seed {
	return Seed{
		Articles:   cloneArticles(s.Articles),
		Categories: cloneSlice(s.Categories),
		Pages:      cloneSlice(s.Pages),
		MenuItems:  cloneSlice(s.MenuItems),
		Media:      cloneSlice(s.Media),
		Settings:   s.Settings,
	}
}
