package affiliate

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	apperrors "github.com/jinsdrum/petplace/internal/errors"
	"github.com/jinsdrum/petplace/transport"
)

// Period is a stats aggregation window.
type Period string

const (
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
)

// LinkList is the paginated link listing.
type LinkList struct {
	Links      []Link               `json:"links"`
	Pagination transport.Pagination `json:"pagination"`
}

// LinkListParams filters and pages the link listing.
type LinkListParams struct {
	Page     int
	PerPage  int
	Platform string
}

func (p LinkListParams) values() url.Values {
	v := url.Values{}
	if p.Page > 0 {
		v.Set("page", strconv.Itoa(p.Page))
	}
	if p.PerPage > 0 {
		v.Set("per_page", strconv.Itoa(p.PerPage))
	}
	if p.Platform != "" {
		v.Set("platform", p.Platform)
	}
	return v
}

// Service exposes the affiliate marketing endpoints.
type Service struct {
	api *transport.AuthClient
}

// NewService creates an affiliate Service on top of the authenticated
// pipeline.
func NewService(api *transport.AuthClient) *Service {
	return &Service{api: api}
}

// Links lists the current user's affiliate links.
func (s *Service) Links(ctx context.Context, params LinkListParams) (*LinkList, error) {
	var out LinkList
	err := s.api.Do(ctx, transport.Request{
		Method: http.MethodGet,
		Path:   "/affiliate/links",
		Query:  params.values(),
	}, &out)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.Links] listing links")
	}
	return &out, nil
}

// CreateLink registers a new affiliate link, optionally attached to a post.
func (s *Service) CreateLink(ctx context.Context, draft LinkDraft) (*Link, error) {
	if strings.TrimSpace(draft.ProductName) == "" {
		return nil, errors.Wrap(apperrors.ErrMissingField, "product_name is required")
	}
	if strings.TrimSpace(draft.AffiliateURL) == "" {
		return nil, errors.Wrap(apperrors.ErrMissingField, "affiliate_url is required")
	}
	var out struct {
		AffiliateLink *Link `json:"affiliate_link"`
	}
	err := s.api.Do(ctx, transport.Request{
		Method: http.MethodPost,
		Path:   "/affiliate/links",
		Body:   draft,
	}, &out)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.CreateLink] creating link")
	}
	return out.AffiliateLink, nil
}

// TrackClick records a click on a link.
func (s *Service) TrackClick(ctx context.Context, linkID int64) error {
	err := s.api.Do(ctx, transport.Request{
		Method: http.MethodPost,
		Path:   "/affiliate/links/" + strconv.FormatInt(linkID, 10) + "/click",
	}, nil)
	return errors.Wrap(err, "[Service.TrackClick] tracking click")
}

// TrackConversion records a conversion and its commission amount.
func (s *Service) TrackConversion(ctx context.Context, linkID int64, commissionAmount float64) error {
	err := s.api.Do(ctx, transport.Request{
		Method: http.MethodPost,
		Path:   "/affiliate/links/" + strconv.FormatInt(linkID, 10) + "/conversion",
		Body: map[string]float64{
			"commission_amount": commissionAmount,
		},
	}, nil)
	return errors.Wrap(err, "[Service.TrackConversion] tracking conversion")
}

// Stats fetches the aggregated performance report for a period.
func (s *Service) Stats(ctx context.Context, period Period) (*Stats, error) {
	v := url.Values{}
	if period != "" {
		v.Set("period", string(period))
	}
	var out Stats
	err := s.api.Do(ctx, transport.Request{
		Method: http.MethodGet,
		Path:   "/affiliate/stats",
		Query:  v,
	}, &out)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.Stats] fetching stats")
	}
	return &out, nil
}

// SearchProducts searches sponsored products across platforms.
func (s *Service) SearchProducts(ctx context.Context, query, platform string, limit int) ([]Product, error) {
	if strings.TrimSpace(query) == "" {
		return nil, errors.Wrap(apperrors.ErrMissingField, "query is required")
	}
	v := url.Values{}
	v.Set("query", query)
	if platform != "" {
		v.Set("platform", platform)
	}
	if limit > 0 {
		v.Set("limit", strconv.Itoa(limit))
	}
	var out struct {
		Products []Product `json:"products"`
	}
	err := s.api.Do(ctx, transport.Request{
		Method: http.MethodGet,
		Path:   "/affiliate/products/search",
		Query:  v,
	}, &out)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.SearchProducts] searching products")
	}
	return out.Products, nil
}

// RecommendedProducts fetches pre-computed product recommendations.
func (s *Service) RecommendedProducts(ctx context.Context, category string, limit int) ([]Product, error) {
	v := url.Values{}
	if category != "" {
		v.Set("category", category)
	}
	if limit > 0 {
		v.Set("limit", strconv.Itoa(limit))
	}
	var out struct {
		Products []Product `json:"products"`
	}
	err := s.api.Do(ctx, transport.Request{
		Method: http.MethodGet,
		Path:   "/affiliate/products/recommend",
		Query:  v,
	}, &out)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.RecommendedProducts] fetching recommendations")
	}
	return out.Products, nil
}

// EarningsReport fetches the earnings breakdown for a date range (dates in
// YYYY-MM-DD form; either bound may be empty).
func (s *Service) EarningsReport(ctx context.Context, startDate, endDate string) (map[string]any, error) {
	v := url.Values{}
	if startDate != "" {
		v.Set("start_date", startDate)
	}
	if endDate != "" {
		v.Set("end_date", endDate)
	}
	out := map[string]any{}
	err := s.api.Do(ctx, transport.Request{
		Method: http.MethodGet,
		Path:   "/affiliate/earnings/report",
		Query:  v,
	}, &out)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.EarningsReport] fetching report")
	}
	return out, nil
}
