package blog_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jinsdrum/petplace/blog"
	apperrors "github.com/jinsdrum/petplace/internal/errors"
	"github.com/jinsdrum/petplace/transport"
)

type staticTokens struct{ token string }

func (s staticTokens) AccessToken() string { return s.token }

func (s staticTokens) RefreshAccessToken(context.Context) (string, error) {
	return "", apperrors.ErrNoRefreshToken
}

func newTestService(t *testing.T, handler http.HandlerFunc) *blog.Service {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client, err := transport.New(server.URL)
	require.NoError(t, err)
	return blog.NewService(transport.NewAuthClient(client, staticTokens{token: "T1"}))
}

func TestListEncodesFilters(t *testing.T) {
	service := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/blog/posts", r.URL.Path)
		q := r.URL.Query()
		require.Equal(t, "training", q.Get("category"))
		require.Equal(t, "popular", q.Get("sort_by"))
		require.Equal(t, "published", q.Get("status"))

		_, _ = w.Write([]byte(`{"success":true,"data":{
			"posts":[{"id":1,"title":"Crate Training 101","slug":"crate-training-101","status":"published","view_count":310}],
			"pagination":{"page":1,"pages":1,"per_page":10,"total":1,"has_next":false,"has_prev":false}
		}}`))
	})

	list, err := service.List(context.Background(), blog.ListParams{
		Category: "training",
		SortBy:   blog.SortPopular,
		Status:   "published",
	})
	require.NoError(t, err)
	require.Len(t, list.Posts, 1)
	require.Equal(t, "crate-training-101", list.Posts[0].Slug)
	require.Equal(t, blog.StatusPublished, list.Posts[0].Status)
}

func TestGetBySlugUnwrapsPost(t *testing.T) {
	service := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/blog/posts/crate-training-101", r.URL.Path)
		_, _ = w.Write([]byte(`{"success":true,"data":{"post":{
			"id":1,"title":"Crate Training 101","slug":"crate-training-101","status":"published",
			"author":{"id":7,"name":"Alice"},
			"tags":[{"id":2,"name":"dog"}],
			"affiliate_links":[{"id":3,"product_name":"Crate","affiliate_url":"https://aff.example/c","platform":"coupang"}]
		}}}`))
	})

	post, err := service.Get(context.Background(), "crate-training-101")
	require.NoError(t, err)
	require.Equal(t, "Crate Training 101", post.Title)
	require.Equal(t, "Alice", post.Author.Name)
	require.Len(t, post.Tags, 1)
	require.Len(t, post.AffiliateLinks, 1)
}

func TestCreateRequiresTitleAndContent(t *testing.T) {
	called := false
	service := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	_, err := service.Create(context.Background(), blog.Draft{Content: "body"})
	require.ErrorIs(t, err, apperrors.ErrMissingField)

	_, err = service.Create(context.Background(), blog.Draft{Title: "Title"})
	require.ErrorIs(t, err, apperrors.ErrMissingField)
	require.False(t, called)
}

func TestCreateUnwrapsBlogPost(t *testing.T) {
	service := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)

		var draft blog.Draft
		require.NoError(t, json.NewDecoder(r.Body).Decode(&draft))
		require.Equal(t, []string{"dog", "training"}, draft.Tags)
		require.Len(t, draft.AffiliateLinks, 1)

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"success":true,"data":{"blog_post":{"id":5,"title":"New Post","slug":"new-post","status":"draft"}}}`))
	})

	post, err := service.Create(context.Background(), blog.Draft{
		Title:   "New Post",
		Content: "body",
		Status:  blog.StatusDraft,
		Tags:    []string{"dog", "training"},
		AffiliateLinks: []blog.LinkDraft{
			{ProductName: "Crate", AffiliateURL: "https://aff.example/c", Platform: "coupang"},
		},
	})
	require.NoError(t, err)
	require.EqualValues(t, 5, post.ID)
	require.Equal(t, blog.StatusDraft, post.Status)
}

func TestLikeReturnsCount(t *testing.T) {
	service := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/blog/posts/5/like", r.URL.Path)
		_, _ = w.Write([]byte(`{"success":true,"data":{"like_count":18}}`))
	})

	count, err := service.Like(context.Background(), 5)
	require.NoError(t, err)
	require.Equal(t, 18, count)
}

func TestCategoriesAndTags(t *testing.T) {
	service := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/blog/categories":
			_, _ = w.Write([]byte(`{"success":true,"data":{"categories":["training","health"]}}`))
		case "/blog/tags":
			_, _ = w.Write([]byte(`{"success":true,"data":{"tags":[{"id":2,"name":"dog"},{"id":3,"name":"cat"}]}}`))
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	})

	categories, err := service.Categories(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"training", "health"}, categories)

	tags, err := service.Tags(context.Background())
	require.NoError(t, err)
	require.Len(t, tags, 2)
	require.Equal(t, "dog", tags[0].Name)
}
