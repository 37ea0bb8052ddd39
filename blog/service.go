package blog

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

// SortOrder selects the ordering of the post listing.
type SortOrder string

const (
	SortNewest  SortOrder = "newest"
	SortOldest  SortOrder = "oldest"
	SortPopular SortOrder = "popular"
	SortTitle   SortOrder = "title"
)

// ListParams filters and pages the post listing.
type ListParams struct {
	Page     int
	PerPage  int
	Search   string
	Category string
	Tag      string
	SortBy   SortOrder
	Status   string // published, draft or all
}

func (p ListParams) values() url.Values {
	v := url.Values{}
	if p.Page > 0 {
		v.Set("page", strconv.Itoa(p.Page))
	}
	if p.PerPage > 0 {
		v.Set("per_page", strconv.Itoa(p.PerPage))
	}
	if p.Search != "" {
		v.Set("search", p.Search)
	}
	if p.Category != "" {
		v.Set("category", p.Category)
	}
	if p.Tag != "" {
		v.Set("tag", p.Tag)
	}
	if p.SortBy != "" {
		v.Set("sort_by", string(p.SortBy))
	}
	if p.Status != "" {
		v.Set("status", p.Status)
	}
	return v
}

// List is the paginated post listing.
type List struct {
	Posts      []Post               `json:"posts"`
	Pagination transport.Pagination `json:"pagination"`
}

// Service exposes the blog endpoints.
type Service struct {
	api *transport.AuthClient
}

// NewService creates a blog Service on top of the authenticated pipeline.
func NewService(api *transport.AuthClient) *Service {
	return &Service{api: api}
}

// List fetches a filtered page of posts.
func (s *Service) List(ctx context.Context, params ListParams) (*List, error) {
	var out List
	err := s.api.Do(ctx, transport.Request{
		Method: http.MethodGet,
		Path:   "/blog/posts",
		Query:  params.values(),
	}, &out)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.List] listing posts")
	}
	return &out, nil
}

// Get fetches a post by its slug.
func (s *Service) Get(ctx context.Context, slug string) (*Post, error) {
	var out struct {
		Post *Post `json:"post"`
	}
	err := s.api.Do(ctx, transport.Request{
		Method: http.MethodGet,
		Path:   "/blog/posts/" + url.PathEscape(slug),
	}, &out)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.Get] fetching post")
	}
	return out.Post, nil
}

// Create publishes (or drafts) a new post.
func (s *Service) Create(ctx context.Context, draft Draft) (*Post, error) {
	if strings.TrimSpace(draft.Title) == "" {
		return nil, errors.Wrap(apperrors.ErrMissingField, "title is required")
	}
	if strings.TrimSpace(draft.Content) == "" {
		return nil, errors.Wrap(apperrors.ErrMissingField, "content is required")
	}
	var out struct {
		BlogPost *Post `json:"blog_post"`
	}
	err := s.api.Do(ctx, transport.Request{
		Method: http.MethodPost,
		Path:   "/blog/posts",
		Body:   draft,
	}, &out)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.Create] creating post")
	}
	return out.BlogPost, nil
}

// Update edits an owned post.
func (s *Service) Update(ctx context.Context, id int64, draft Draft) error {
	err := s.api.Do(ctx, transport.Request{
		Method: http.MethodPut,
		Path:   "/blog/posts/" + strconv.FormatInt(id, 10),
		Body:   draft,
	}, nil)
	return errors.Wrap(err, "[Service.Update] updating post")
}

// Delete removes an owned post.
func (s *Service) Delete(ctx context.Context, id int64) error {
	err := s.api.Do(ctx, transport.Request{
		Method: http.MethodDelete,
		Path:   "/blog/posts/" + strconv.FormatInt(id, 10),
	}, nil)
	return errors.Wrap(err, "[Service.Delete] deleting post")
}

// Like records a like and returns the updated count.
func (s *Service) Like(ctx context.Context, id int64) (int, error) {
	var out struct {
		LikeCount int `json:"like_count"`
	}
	err := s.api.Do(ctx, transport.Request{
		Method: http.MethodPost,
		Path:   "/blog/posts/" + strconv.FormatInt(id, 10) + "/like",
	}, &out)
	if err != nil {
		return 0, errors.Wrap(err, "[Service.Like] liking post")
	}
	return out.LikeCount, nil
}

// Categories fetches the distinct post categories.
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	var out struct {
		Categories []string `json:"categories"`
	}
	err := s.api.Do(ctx, transport.Request{
		Method: http.MethodGet,
		Path:   "/blog/categories",
	}, &out)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.Categories] listing categories")
	}
	return out.Categories, nil
}

// Tags fetches the known tags.
func (s *Service) Tags(ctx context.Context) ([]Tag, error) {
	var out struct {
		Tags []Tag `json:"tags"`
	}
	err := s.api.Do(ctx, transport.Request{
		Method: http.MethodGet,
		Path:   "/blog/tags",
	}, &out)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.Tags] listing tags")
	}
	return out.Tags, nil
}
