package reviews

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/pkg/errors"

	"github.com/jinsdrum/petplace/transport"
)

// List is a paginated review listing.
type List struct {
	Reviews    []Review             `json:"reviews"`
	Pagination transport.Pagination `json:"pagination"`
}

// BusinessList is the per-facility listing with the server-computed rating
// aggregates displayed next to it.
type BusinessList struct {
	Reviews            []Review             `json:"reviews"`
	Pagination         transport.Pagination `json:"pagination"`
	RatingDistribution map[string]int       `json:"rating_distribution"`
	AverageRating      float64              `json:"average_rating"`
	TotalReviews       int                  `json:"total_reviews"`
}

// BusinessListParams pages and sorts the per-facility listing.
type BusinessListParams struct {
	Page    int
	PerPage int
	SortBy  SortOrder
}

func (p BusinessListParams) values() url.Values {
	v := url.Values{}
	if p.Page > 0 {
		v.Set("page", strconv.Itoa(p.Page))
	}
	if p.PerPage > 0 {
		v.Set("per_page", strconv.Itoa(p.PerPage))
	}
	if p.SortBy != "" {
		v.Set("sort_by", string(p.SortBy))
	}
	return v
}

// ListParams filters the global review listing.
type ListParams struct {
	Page       int
	PerPage    int
	BusinessID int64
	UserID     int64
	MinRating  int
	MaxRating  int
}

func (p ListParams) values() url.Values {
	v := url.Values{}
	if p.Page > 0 {
		v.Set("page", strconv.Itoa(p.Page))
	}
	if p.PerPage > 0 {
		v.Set("per_page", strconv.Itoa(p.PerPage))
	}
	if p.BusinessID > 0 {
		v.Set("business_id", strconv.FormatInt(p.BusinessID, 10))
	}
	if p.UserID > 0 {
		v.Set("user_id", strconv.FormatInt(p.UserID, 10))
	}
	if p.MinRating > 0 {
		v.Set("min_rating", strconv.Itoa(p.MinRating))
	}
	if p.MaxRating > 0 {
		v.Set("max_rating", strconv.Itoa(p.MaxRating))
	}
	return v
}

type reviewData struct {
	Review *Review `json:"review"`
}

// Service exposes the review endpoints.
type Service struct {
	api *transport.AuthClient
}

// NewService creates a review Service on top of the authenticated pipeline.
func NewService(api *transport.AuthClient) *Service {
	return &Service{api: api}
}

// Create submits a new review.
func (s *Service) Create(ctx context.Context, draft Draft) (*Review, error) {
	if err := ValidateDraft(draft); err != nil {
		return nil, err
	}
	var out reviewData
	err := s.api.Do(ctx, transport.Request{
		Method: http.MethodPost,
		Path:   "/reviews",
		Body:   draft,
	}, &out)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.Create] creating review")
	}
	return out.Review, nil
}

// Update edits an owned review.
func (s *Service) Update(ctx context.Context, id int64, draft Draft) (*Review, error) {
	if err := ValidateDraft(draft); err != nil {
		return nil, err
	}
	var out reviewData
	err := s.api.Do(ctx, transport.Request{
		Method: http.MethodPut,
		Path:   "/reviews/" + strconv.FormatInt(id, 10),
		Body:   draft,
	}, &out)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.Update] updating review")
	}
	return out.Review, nil
}

// Delete removes an owned review.
func (s *Service) Delete(ctx context.Context, id int64) error {
	err := s.api.Do(ctx, transport.Request{
		Method: http.MethodDelete,
		Path:   "/reviews/" + strconv.FormatInt(id, 10),
	}, nil)
	return errors.Wrap(err, "[Service.Delete] deleting review")
}

// Get fetches a single review.
func (s *Service) Get(ctx context.Context, id int64) (*Review, error) {
	var out reviewData
	err := s.api.Do(ctx, transport.Request{
		Method: http.MethodGet,
		Path:   "/reviews/" + strconv.FormatInt(id, 10),
	}, &out)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.Get] fetching review")
	}
	return out.Review, nil
}

// ListByBusiness fetches a facility's reviews with rating aggregates.
func (s *Service) ListByBusiness(ctx context.Context, businessID int64, params BusinessListParams) (*BusinessList, error) {
	var out BusinessList
	err := s.api.Do(ctx, transport.Request{
		Method: http.MethodGet,
		Path:   "/businesses/" + strconv.FormatInt(businessID, 10) + "/reviews",
		Query:  params.values(),
	}, &out)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.ListByBusiness] listing reviews")
	}
	return &out, nil
}

// ListByUser fetches a user's reviews.
func (s *Service) ListByUser(ctx context.Context, userID int64, page, perPage int) (*List, error) {
	v := url.Values{}
	if page > 0 {
		v.Set("page", strconv.Itoa(page))
	}
	if perPage > 0 {
		v.Set("per_page", strconv.Itoa(perPage))
	}
	var out List
	err := s.api.Do(ctx, transport.Request{
		Method: http.MethodGet,
		Path:   "/users/" + strconv.FormatInt(userID, 10) + "/reviews",
		Query:  v,
	}, &out)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.ListByUser] listing reviews")
	}
	return &out, nil
}

// List fetches the global review listing.
func (s *Service) List(ctx context.Context, params ListParams) (*List, error) {
	var out List
	err := s.api.Do(ctx, transport.Request{
		Method: http.MethodGet,
		Path:   "/reviews",
		Query:  params.values(),
	}, &out)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.List] listing reviews")
	}
	return &out, nil
}
