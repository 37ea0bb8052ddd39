package blog

// Author is the post author projection embedded in listings.
type Author struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// Tag labels a post.
type Tag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// PostStatus is the publication state of a post.
type PostStatus string

const (
	StatusDraft     PostStatus = "draft"
	StatusPublished PostStatus = "published"
)

// Post is a blog article, optionally carrying the affiliate links embedded
// in its body.
type Post struct {
	ID                int64          `json:"id"`
	Title             string         `json:"title"`
	Slug              string         `json:"slug"`
	Content           string         `json:"content,omitempty"`
	Excerpt           string         `json:"excerpt,omitempty"`
	Category          string         `json:"category,omitempty"`
	FeaturedImage     string         `json:"featured_image,omitempty"`
	Status            PostStatus     `json:"status"`
	ViewCount         int            `json:"view_count"`
	LikeCount         int            `json:"like_count"`
	EstimatedReadTime int            `json:"estimated_read_time,omitempty"`
	CreatedAt         string         `json:"created_at,omitempty"`
	UpdatedAt         string         `json:"updated_at,omitempty"`
	MetaTitle         string         `json:"meta_title,omitempty"`
	MetaDescription   string         `json:"meta_description,omitempty"`
	MetaKeywords      string         `json:"meta_keywords,omitempty"`
	Author            *Author        `json:"author,omitempty"`
	Tags              []Tag          `json:"tags,omitempty"`
	AffiliateLinks    []EmbeddedLink `json:"affiliate_links,omitempty"`
}

// EmbeddedLink is the affiliate link projection attached to a post.
type EmbeddedLink struct {
	ID             int64   `json:"id"`
	ProductName    string  `json:"product_name"`
	ProductURL     string  `json:"product_url"`
	AffiliateURL   string  `json:"affiliate_url"`
	Platform       string  `json:"platform"`
	CommissionRate float64 `json:"commission_rate,omitempty"`
}

// Draft is the writable post payload.
type Draft struct {
	Title           string      `json:"title"`
	Content         string      `json:"content"`
	Excerpt         string      `json:"excerpt,omitempty"`
	Category        string      `json:"category,omitempty"`
	FeaturedImage   string      `json:"featured_image,omitempty"`
	Status          PostStatus  `json:"status,omitempty"`
	MetaTitle       string      `json:"meta_title,omitempty"`
	MetaDescription string      `json:"meta_description,omitempty"`
	MetaKeywords    string      `json:"meta_keywords,omitempty"`
	Tags            []string    `json:"tags,omitempty"`
	AffiliateLinks  []LinkDraft `json:"affiliate_links,omitempty"`
}

// LinkDraft is an affiliate link attached while writing a post.
type LinkDraft struct {
	ProductName    string  `json:"product_name"`
	ProductURL     string  `json:"product_url"`
	AffiliateURL   string  `json:"affiliate_url"`
	Platform       string  `json:"platform"`
	CommissionRate float64 `json:"commission_rate,omitempty"`
}
