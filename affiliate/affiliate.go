package affiliate

// Link is an affiliate link with its accumulated performance counters.
type Link struct {
	ID              int64    `json:"id"`
	ProductName     string   `json:"product_name"`
	ProductURL      string   `json:"product_url"`
	AffiliateURL    string   `json:"affiliate_url"`
	Platform        string   `json:"platform"`
	CommissionRate  float64  `json:"commission_rate"`
	ClickCount      int      `json:"click_count"`
	ConversionCount int      `json:"conversion_count"`
	TotalEarnings   float64  `json:"total_earnings"`
	CreatedAt       string   `json:"created_at,omitempty"`
	BlogPost        *PostRef `json:"blog_post,omitempty"`
}

// PostRef is the owning blog post projection on a link.
type PostRef struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Slug  string `json:"slug"`
}

// LinkDraft is the writable link payload.
type LinkDraft struct {
	ProductName    string  `json:"product_name"`
	ProductURL     string  `json:"product_url"`
	AffiliateURL   string  `json:"affiliate_url"`
	Platform       string  `json:"platform"`
	CommissionRate float64 `json:"commission_rate,omitempty"`
	BlogPostID     int64   `json:"blog_post_id,omitempty"`
}

// Product is a sponsored product returned by search and recommendation.
type Product struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Price          float64 `json:"price"`
	ImageURL       string  `json:"image_url"`
	ProductURL     string  `json:"product_url"`
	AffiliateURL   string  `json:"affiliate_url"`
	Rating         float64 `json:"rating"`
	ReviewCount    int     `json:"review_count"`
	CommissionRate float64 `json:"commission_rate"`
	Platform       string  `json:"platform"`
}

// Totals aggregates link performance over a stats period.
type Totals struct {
	TotalLinks       int     `json:"total_links"`
	TotalClicks      int     `json:"total_clicks"`
	TotalConversions int     `json:"total_conversions"`
	TotalEarnings    float64 `json:"total_earnings"`
	ConversionRate   float64 `json:"conversion_rate"`
}

// PlatformTotals is the per-platform breakdown inside Stats.
type PlatformTotals struct {
	Links       int     `json:"links"`
	Clicks      int     `json:"clicks"`
	Conversions int     `json:"conversions"`
	Earnings    float64 `json:"earnings"`
}

// TopLink is a best-performing link summary inside Stats.
type TopLink struct {
	ID          int64   `json:"id"`
	ProductName string  `json:"product_name"`
	Platform    string  `json:"platform"`
	Clicks      int     `json:"clicks"`
	Conversions int     `json:"conversions"`
	Earnings    float64 `json:"earnings"`
}

// Stats is the server-computed affiliate performance report.
type Stats struct {
	Period        string                    `json:"period"`
	Totals        Totals                    `json:"total_stats"`
	PlatformStats map[string]PlatformTotals `json:"platform_stats"`
	TopLinks      []TopLink                 `json:"top_links"`
}
