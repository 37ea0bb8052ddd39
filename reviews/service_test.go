package reviews_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "github.com/jinsdrum/petplace/internal/errors"
	"github.com/jinsdrum/petplace/reviews"
	"github.com/jinsdrum/petplace/transport"
)

type staticTokens struct{ token string }

func (s staticTokens) AccessToken() string { return s.token }

func (s staticTokens) RefreshAccessToken(context.Context) (string, error) {
	return "", apperrors.ErrNoRefreshToken
}

func newTestService(t *testing.T, handler http.HandlerFunc) *reviews.Service {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client, err := transport.New(server.URL)
	require.NoError(t, err)
	return reviews.NewService(transport.NewAuthClient(client, staticTokens{token: "T1"}))
}

func TestValidateDraft(t *testing.T) {
	valid := reviews.Draft{BusinessID: 1, Rating: 4, Content: "Great terrace for dogs"}
	require.NoError(t, reviews.ValidateDraft(valid))

	for _, rating := range []int{0, -1, 6} {
		draft := valid
		draft.Rating = rating
		require.ErrorIs(t, reviews.ValidateDraft(draft), apperrors.ErrInvalidRating)
	}

	noBusiness := valid
	noBusiness.BusinessID = 0
	require.ErrorIs(t, reviews.ValidateDraft(noBusiness), apperrors.ErrMissingField)

	noContent := valid
	noContent.Content = ""
	require.ErrorIs(t, reviews.ValidateDraft(noContent), apperrors.ErrMissingField)
}

func TestCreateUnwrapsReview(t *testing.T) {
	service := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/reviews", r.URL.Path)

		var draft reviews.Draft
		require.NoError(t, json.NewDecoder(r.Body).Decode(&draft))
		require.EqualValues(t, 42, draft.BusinessID)
		require.Equal(t, 5, draft.Rating)

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"success":true,"data":{"review":{"id":9,"user_id":1,"business_id":42,"rating":5,"content":"Perfect"}}}`))
	})

	review, err := service.Create(context.Background(), reviews.Draft{BusinessID: 42, Rating: 5, Content: "Perfect"})
	require.NoError(t, err)
	require.EqualValues(t, 9, review.ID)
	require.Equal(t, 5, review.Rating)
}

func TestCreateRejectsInvalidDraftLocally(t *testing.T) {
	called := false
	service := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	_, err := service.Create(context.Background(), reviews.Draft{BusinessID: 42, Rating: 7, Content: "x"})
	require.ErrorIs(t, err, apperrors.ErrInvalidRating)
	require.False(t, called)
}

func TestListByBusinessDecodesAggregates(t *testing.T) {
	service := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/businesses/42/reviews", r.URL.Path)
		require.Equal(t, "rating_high", r.URL.Query().Get("sort_by"))

		_, _ = w.Write([]byte(`{"success":true,"data":{
			"reviews":[{"id":1,"business_id":42,"rating":5,"content":"Great"}],
			"pagination":{"page":1,"pages":1,"per_page":10,"total":1,"has_next":false,"has_prev":false},
			"rating_distribution":{"5":8,"4":3,"3":1,"2":0,"1":0},
			"average_rating":4.6,
			"total_reviews":12
		}}`))
	})

	list, err := service.ListByBusiness(context.Background(), 42, reviews.BusinessListParams{SortBy: reviews.SortRatingHigh})
	require.NoError(t, err)
	require.Len(t, list.Reviews, 1)
	require.Equal(t, 8, list.RatingDistribution["5"])
	require.InDelta(t, 4.6, list.AverageRating, 0.001)
	require.Equal(t, 12, list.TotalReviews)
}

func TestListByUser(t *testing.T) {
	service := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/users/7/reviews", r.URL.Path)
		require.Equal(t, "2", r.URL.Query().Get("page"))
		_, _ = w.Write([]byte(`{"success":true,"data":{
			"reviews":[],
			"pagination":{"page":2,"pages":2,"per_page":10,"total":11,"has_next":false,"has_prev":true}
		}}`))
	})

	list, err := service.ListByUser(context.Background(), 7, 2, 0)
	require.NoError(t, err)
	require.Empty(t, list.Reviews)
	require.Equal(t, 11, list.Pagination.Total)
}

func TestDeleteReview(t *testing.T) {
	service := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/reviews/9", r.URL.Path)
		_, _ = w.Write([]byte(`{"success":true,"message":"deleted"}`))
	})

	require.NoError(t, service.Delete(context.Background(), 9))
}
