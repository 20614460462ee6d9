package recommender

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoneySaver(t *testing.T) {
	var gotPath string
	var gotBody map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"recommendations": {
				"g1": [
					{"id": "alt-1", "name": "Store Brand Oats", "price": 1.49, "similarity": 0.91},
					{"id": "alt-2", "name": "Bulk Oats", "price": 1.19}
				]
			}
		}`))
	}))
	defer server.Close()

	client, err := NewClient(Config{BaseURL: server.URL})
	require.NoError(t, err)

	recs, err := client.MoneySaver(context.Background(), []GroceryItem{
		{ID: "g1", Name: "Premium Oats", Category: "pantry", Price: 2.99, Description: "rolled oats"},
	})
	require.NoError(t, err)

	assert.Equal(t, "/api/money-saver/recommendations", gotPath)

	items, ok := gotBody["items"].([]interface{})
	require.True(t, ok)
	require.Len(t, items, 1)
	first := items[0].(map[string]interface{})
	assert.Equal(t, "g1", first["id"])
	assert.Equal(t, "pantry", first["category"])

	require.Len(t, recs["g1"], 2)
	assert.Equal(t, "alt-1", recs["g1"][0].ID)
	assert.Equal(t, 1.49, recs["g1"][0].Price)
	assert.Equal(t, 0.91, recs["g1"][0].Similarity)
}

func TestRestaurantUpgrades(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/restaurant/upgrade-recommendations", r.URL.Path)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		items := body["items"].([]interface{})
		first := items[0].(map[string]interface{})
		assert.Equal(t, "r-9", first["restaurant_id"])

		_, _ = w.Write([]byte(`{
			"recommendations": {
				"m1": [{"id": "m2", "name": "Deluxe Ramen", "price": 14.5, "upgrade_amount": 3.5}]
			}
		}`))
	}))
	defer server.Close()

	client, err := NewClient(Config{BaseURL: server.URL})
	require.NoError(t, err)

	recs, err := client.RestaurantUpgrades(context.Background(), []UpgradeItem{
		{ID: "m1", Name: "Ramen", Price: 11.0, RestaurantID: "r-9"},
	})
	require.NoError(t, err)

	require.Len(t, recs["m1"], 1)
	assert.Equal(t, 3.5, recs["m1"][0].UpgradeAmount)
}

func TestHealthyEmptyRecommendations(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client, err := NewClient(Config{BaseURL: server.URL})
	require.NoError(t, err)

	recs, err := client.Healthy(context.Background(), []GroceryItem{{ID: "g1", Name: "Chips", Price: 2.0}})
	require.NoError(t, err)
	assert.NotNil(t, recs)
	assert.Empty(t, recs)
}

func TestServiceError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error": "index unavailable"}`))
	}))
	defer server.Close()

	client, err := NewClient(Config{BaseURL: server.URL})
	require.NoError(t, err)

	_, err = client.MoneySaver(context.Background(), nil)
	assert.ErrorIs(t, err, ErrServiceError)
}

func TestNetworkError(t *testing.T) {
	client, err := NewClient(Config{BaseURL: "http://127.0.0.1:1"})
	require.NoError(t, err)

	_, err = client.Healthy(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNetworkError)
}

func TestInvalidConfig(t *testing.T) {
	_, err := NewClient(Config{})
	assert.Error(t, err)
}
