package businesses

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

// ListParams filters and pages the facility directory.
type ListParams struct {
	Category  string
	PetType   string
	Latitude  float64
	Longitude float64
	Radius    float64 // kilometers, used with Latitude/Longitude
	Search    string
	Page      int
	PerPage   int
}

func (p ListParams) values() url.Values {
	v := url.Values{}
	if p.Category != "" {
		v.Set("category", p.Category)
	}
	if p.PetType != "" {
		v.Set("pet_type", p.PetType)
	}
	if p.Latitude != 0 || p.Longitude != 0 {
		v.Set("lat", strconv.FormatFloat(p.Latitude, 'f', -1, 64))
		v.Set("lng", strconv.FormatFloat(p.Longitude, 'f', -1, 64))
	}
	if p.Radius > 0 {
		v.Set("radius", strconv.FormatFloat(p.Radius, 'f', -1, 64))
	}
	if p.Search != "" {
		v.Set("search", p.Search)
	}
	if p.Page > 0 {
		v.Set("page", strconv.Itoa(p.Page))
	}
	if p.PerPage > 0 {
		v.Set("per_page", strconv.Itoa(p.PerPage))
	}
	return v
}

// SearchParams drives the dedicated text-search endpoint. Query is matched
// against facility names, descriptions and addresses server-side.
type SearchParams struct {
	Query    string
	Category string
	PetType  string
	Page     int
	PerPage  int
}

func (p SearchParams) values() url.Values {
	v := url.Values{}
	v.Set("q", strings.TrimSpace(p.Query))
	if p.Category != "" {
		v.Set("category", p.Category)
	}
	if p.PetType != "" {
		v.Set("pet_type", p.PetType)
	}
	if p.Page > 0 {
		v.Set("page", strconv.Itoa(p.Page))
	}
	if p.PerPage > 0 {
		v.Set("per_page", strconv.Itoa(p.PerPage))
	}
	return v
}

// SearchResult is the search listing with the echoed query term.
type SearchResult struct {
	Businesses []Business           `json:"businesses"`
	Query      string               `json:"query"`
	Pagination transport.Pagination `json:"pagination"`
}

// List is the paginated facility listing.
type List struct {
	Businesses []Business           `json:"businesses"`
	Pagination transport.Pagination `json:"pagination"`
}

// Category is a facility category with its listing count.
type Category struct {
	Code  string `json:"code"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// NearbyQuery searches facilities around a coordinate.
type NearbyQuery struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Radius    float64 `json:"radius,omitempty"`
	Category  string  `json:"category,omitempty"`
	PetType   string  `json:"pet_type,omitempty"`
	Limit     int     `json:"limit,omitempty"`
}

// Service exposes the facility directory endpoints.
type Service struct {
	api *transport.AuthClient
}

// NewService creates a facility Service on top of the authenticated pipeline.
func NewService(api *transport.AuthClient) *Service {
	return &Service{api: api}
}

// List fetches a filtered, paginated page of facilities.
func (s *Service) List(ctx context.Context, params ListParams) (*List, error) {
	var out List
	err := s.api.Do(ctx, transport.Request{
		Method: http.MethodGet,
		Path:   "/businesses",
		Query:  params.values(),
	}, &out)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.List] listing businesses")
	}
	return &out, nil
}

// Search runs a text search over the directory, ranked by rating and view
// count server-side. The backend requires at least two characters of query.
func (s *Service) Search(ctx context.Context, params SearchParams) (*SearchResult, error) {
	if len([]rune(strings.TrimSpace(params.Query))) < 2 {
		return nil, errors.Wrap(apperrors.ErrMissingField, "search query must be at least 2 characters")
	}
	var out SearchResult
	err := s.api.Do(ctx, transport.Request{
		Method: http.MethodGet,
		Path:   "/businesses/search",
		Query:  params.values(),
	}, &out)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.Search] searching businesses")
	}
	return &out, nil
}

// Get fetches a single facility.
func (s *Service) Get(ctx context.Context, id int64) (*Business, error) {
	var out Business
	err := s.api.Do(ctx, transport.Request{
		Method: http.MethodGet,
		Path:   "/businesses/" + strconv.FormatInt(id, 10),
	}, &out)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.Get] fetching business")
	}
	return &out, nil
}

// Create submits a new facility registration. The listing starts in pending
// status until approved server-side.
func (s *Service) Create(ctx context.Context, registration Registration) (*Business, error) {
	if err := ValidateRegistration(registration); err != nil {
		return nil, err
	}
	var out Business
	err := s.api.Do(ctx, transport.Request{
		Method: http.MethodPost,
		Path:   "/businesses",
		Body:   registration,
	}, &out)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.Create] creating business")
	}
	return &out, nil
}

// Update applies a partial edit to an owned facility.
func (s *Service) Update(ctx context.Context, id int64, update Update) (*Business, error) {
	var out Business
	err := s.api.Do(ctx, transport.Request{
		Method: http.MethodPut,
		Path:   "/businesses/" + strconv.FormatInt(id, 10),
		Body:   update,
	}, &out)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.Update] updating business")
	}
	return &out, nil
}

// Delete removes an owned facility listing.
func (s *Service) Delete(ctx context.Context, id int64) error {
	err := s.api.Do(ctx, transport.Request{
		Method: http.MethodDelete,
		Path:   "/businesses/" + strconv.FormatInt(id, 10),
	}, nil)
	return errors.Wrap(err, "[Service.Delete] deleting business")
}

// Categories fetches the category codes with listing counts.
func (s *Service) Categories(ctx context.Context) ([]Category, error) {
	var out []Category
	err := s.api.Do(ctx, transport.Request{
		Method: http.MethodGet,
		Path:   "/businesses/categories",
	}, &out)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.Categories] listing categories")
	}
	return out, nil
}

// Featured fetches the curated featured listings.
func (s *Service) Featured(ctx context.Context) ([]Business, error) {
	var out []Business
	err := s.api.Do(ctx, transport.Request{
		Method: http.MethodGet,
		Path:   "/businesses/featured",
	}, &out)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.Featured] listing featured businesses")
	}
	return out, nil
}

// Nearby searches facilities around a coordinate.
func (s *Service) Nearby(ctx context.Context, query NearbyQuery) ([]Business, error) {
	var out []Business
	err := s.api.Do(ctx, transport.Request{
		Method: http.MethodPost,
		Path:   "/businesses/nearby",
		Body:   query,
	}, &out)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.Nearby] searching nearby businesses")
	}
	return out, nil
}
