package businesses_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jinsdrum/petplace/businesses"
	apperrors "github.com/jinsdrum/petplace/internal/errors"
	"github.com/jinsdrum/petplace/internal/utils"
	"github.com/jinsdrum/petplace/transport"
)

type anonymousTokens struct{}

func (anonymousTokens) AccessToken() string { return "" }

func (anonymousTokens) RefreshAccessToken(context.Context) (string, error) {
	return "", apperrors.ErrNoRefreshToken
}

func newTestService(t *testing.T, handler http.HandlerFunc) *businesses.Service {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client, err := transport.New(server.URL)
	require.NoError(t, err)
	return businesses.NewService(transport.NewAuthClient(client, anonymousTokens{}))
}

func TestListEncodesFilters(t *testing.T) {
	service := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/businesses", r.URL.Path)
		q := r.URL.Query()
		require.Equal(t, "cafe", q.Get("category"))
		require.Equal(t, "dog", q.Get("pet_type"))
		require.Equal(t, "37.5665", q.Get("lat"))
		require.Equal(t, "126.978", q.Get("lng"))
		require.Equal(t, "5", q.Get("radius"))
		require.Equal(t, "terrace", q.Get("search"))
		require.Equal(t, "2", q.Get("page"))
		require.Equal(t, "20", q.Get("per_page"))

		_, _ = w.Write([]byte(`{"success":true,"data":{
			"businesses":[{"id":1,"name":"Bark Park Cafe","category":"cafe","address":"Seoul"}],
			"pagination":{"page":2,"pages":3,"per_page":20,"total":41,"has_next":true,"has_prev":true}
		}}`))
	})

	list, err := service.List(context.Background(), businesses.ListParams{
		Category:  "cafe",
		PetType:   "dog",
		Latitude:  37.5665,
		Longitude: 126.978,
		Radius:    5,
		Search:    "terrace",
		Page:      2,
		PerPage:   20,
	})
	require.NoError(t, err)
	require.Len(t, list.Businesses, 1)
	require.Equal(t, "Bark Park Cafe", list.Businesses[0].Name)
	require.Equal(t, 41, list.Pagination.Total)
	require.True(t, list.Pagination.HasNext)
}

func TestGetDecodesBusiness(t *testing.T) {
	service := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/businesses/42", r.URL.Path)
		_, _ = w.Write([]byte(`{"success":true,"data":{
			"id":42,"name":"Pet Hotel Haven","category":"hotel","address":"Busan",
			"latitude":35.1,"longitude":129.0,"pet_allowed_types":["dog","cat"],
			"average_rating":4.5,"review_count":12
		}}`))
	})

	business, err := service.Get(context.Background(), 42)
	require.NoError(t, err)
	require.EqualValues(t, 42, business.ID)
	require.Equal(t, []string{"dog", "cat"}, business.PetAllowedTypes)
	require.InDelta(t, 4.5, business.AverageRating, 0.001)
}

func TestCreateValidatesBeforeSending(t *testing.T) {
	called := false
	service := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	_, err := service.Create(context.Background(), businesses.Registration{Category: "cafe", Address: "Seoul"})
	require.ErrorIs(t, err, apperrors.ErrMissingField)

	_, err = service.Create(context.Background(), businesses.Registration{
		Name: "Bark Park", Category: "cafe", Address: "Seoul", Latitude: 95,
	})
	require.ErrorIs(t, err, apperrors.ErrInvalidCoordinates)
	require.False(t, called, "invalid registrations must never reach the backend")
}

func TestCreateSendsRegistration(t *testing.T) {
	service := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/businesses", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "Bark Park", body["name"])
		require.Equal(t, "cafe", body["category"])

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"success":true,"data":{"id":7,"name":"Bark Park","category":"cafe","address":"Seoul","status":"pending"}}`))
	})

	business, err := service.Create(context.Background(), businesses.Registration{
		Name: "Bark Park", Category: "cafe", Address: "Seoul", Latitude: 37.5, Longitude: 127.0,
	})
	require.NoError(t, err)
	require.EqualValues(t, 7, business.ID)
	require.Equal(t, "pending", business.Status)
}

func TestNearbyPostsCoordinates(t *testing.T) {
	service := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/businesses/nearby", r.URL.Path)

		var body businesses.NearbyQuery
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.InDelta(t, 37.5, body.Latitude, 0.001)
		require.EqualValues(t, 3, body.Radius)

		_, _ = w.Write([]byte(`{"success":true,"data":[{"id":1,"name":"Close Cafe","category":"cafe","address":"Seoul"}]}`))
	})

	found, err := service.Nearby(context.Background(), businesses.NearbyQuery{Latitude: 37.5, Longitude: 127.0, Radius: 3})
	require.NoError(t, err)
	require.Len(t, found, 1)
}

func TestCategories(t *testing.T) {
	service := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/businesses/categories", r.URL.Path)
		_, _ = w.Write([]byte(`{"success":true,"data":[{"code":"cafe","name":"Cafe","count":12},{"code":"hotel","name":"Hotel","count":3}]}`))
	})

	categories, err := service.Categories(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 2)
	require.Equal(t, "cafe", categories[0].Code)
	require.Equal(t, 12, categories[0].Count)
}

func TestUpdateSendsOnlyChangedFields(t *testing.T) {
	service := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/businesses/7", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, map[string]any{
			"name":              "Bark Park II",
			"parking_available": true,
			"pet_fee":           5000.0,
		}, body)

		_, _ = w.Write([]byte(`{"success":true,"data":{"id":7,"name":"Bark Park II","category":"cafe","address":"Seoul"}}`))
	})

	updated, err := service.Update(context.Background(), 7, businesses.Update{
		Name:             utils.Ptr("Bark Park II"),
		ParkingAvailable: utils.Ptr(true),
		PetFee:           utils.Ptr(5000.0),
	})
	require.NoError(t, err)
	require.Equal(t, "Bark Park II", updated.Name)
}

func TestSearchEncodesQuery(t *testing.T) {
	service := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/businesses/search", r.URL.Path)
		q := r.URL.Query()
		require.Equal(t, "dog cafe", q.Get("q"))
		require.Equal(t, "cafe", q.Get("category"))
		require.Equal(t, "2", q.Get("page"))

		_, _ = w.Write([]byte(`{"success":true,"data":{
			"businesses":[{"id":1,"name":"Bark Park Cafe","category":"cafe","address":"Seoul"}],
			"query":"dog cafe",
			"pagination":{"page":2,"pages":2,"per_page":20,"total":21,"has_next":false,"has_prev":true}
		}}`))
	})

	result, err := service.Search(context.Background(), businesses.SearchParams{
		Query:    "dog cafe",
		Category: "cafe",
		Page:     2,
	})
	require.NoError(t, err)
	require.Len(t, result.Businesses, 1)
	require.Equal(t, "dog cafe", result.Query)
	require.Equal(t, 21, result.Pagination.Total)
}

func TestSearchRequiresTwoCharacterQuery(t *testing.T) {
	called := false
	service := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	for _, query := range []string{"", " ", "a", " a "} {
		_, err := service.Search(context.Background(), businesses.SearchParams{Query: query})
		require.ErrorIs(t, err, apperrors.ErrMissingField, "query %q must be rejected locally", query)
	}
	require.False(t, called, "short queries must never reach the backend")
}
