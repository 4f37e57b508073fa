package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"smartplates/internal/core/cache"
	"smartplates/internal/core/recipe"
	"smartplates/internal/infrastructure/config"
	"smartplates/internal/infrastructure/monitoring"
	"smartplates/internal/pkg/common"
)

const complexSearchBody = `{
  "results": [{
    "id": 716429,
    "title": "Pasta with Garlic",
    "image": "https://img.example/716429.jpg",
    "servings": 2,
    "readyInMinutes": 45,
    "sourceUrl": "https://example.com/pasta",
    "dishTypes": ["main course"],
    "diets": ["vegetarian"],
    "extendedIngredients": [
      {"name": "garlic", "original": "3 cloves garlic", "amount": 3, "unit": "cloves"},
      {"name": "pasta", "original": "200 g pasta", "amount": 200, "unit": "g"}
    ],
    "analyzedInstructions": [{"steps": [{"step": "Boil pasta."}, {"step": "Add garlic."}]}]
  }],
  "totalResults": 1
}`

func newRecipeAPIServer(t *testing.T, calls *int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)
		assert.Equal(t, "/recipes/complexSearch", r.URL.Path)
		assert.Equal(t, "secret", r.URL.Query().Get("apiKey"))
		assert.Equal(t, "pasta", r.URL.Query().Get("query"))
		assert.Equal(t, "5", r.URL.Query().Get("number"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(complexSearchBody))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func apiConfig(baseURL string) config.RecipeAPIConfig {
	return config.RecipeAPIConfig{
		Enabled:           true,
		BaseURL:           baseURL,
		APIKey:            "secret",
		Timeout:           5 * time.Second,
		RequestsPerMinute: 60,
		ResultLimit:       5,
	}
}

func TestRecipeAPIClient_SearchRecipes(t *testing.T) {
	var calls int32
	srv := newRecipeAPIServer(t, &calls)
	client := NewRecipeAPIClient(apiConfig(srv.URL))

	recipes, err := client.SearchRecipes(context.Background(), "  Pasta ")
	require.NoError(t, err)
	require.Len(t, recipes, 1)

	r := recipes[0]
	assert.Equal(t, "spoonacular-716429", r.ID)
	assert.Equal(t, "716429", r.ExternalID)
	assert.Equal(t, recipe.SourceExternal, r.Source)
	assert.Equal(t, "Pasta with Garlic", r.Title)
	assert.Equal(t, 45, r.ReadyInMinutes)
	assert.Equal(t, []string{"Boil pasta.", "Add garlic."}, r.Instructions)
	assert.Equal(t, []string{"main course", "vegetarian"}, r.Tags)
	require.Len(t, r.Ingredients, 2)
	assert.Equal(t, recipe.Ingredient{Name: "garlic", OriginalName: "3 cloves garlic", Amount: 3, Unit: "cloves"}, r.Ingredients[0])
}

func TestRecipeAPIClient_UsesCache(t *testing.T) {
	var calls int32
	srv := newRecipeAPIServer(t, &calls)
	c := cache.NewManager(10, 0)
	defer c.Close()
	metrics := monitoring.NewMetrics()
	client := NewRecipeAPIClient(apiConfig(srv.URL), WithCache(c, time.Hour), WithMetrics(metrics))

	ctx := context.Background()
	first, err := client.SearchRecipes(ctx, "pasta")
	require.NoError(t, err)
	second, err := client.SearchRecipes(ctx, "PASTA")
	require.NoError(t, err)

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.Equal(t, first, second)
	assert.Equal(t, int64(1), c.Stats().Hits)
}

func TestRecipeAPIClient_RateLimited(t *testing.T) {
	var calls int32
	srv := newRecipeAPIServer(t, &calls)
	limiter := rate.NewLimiter(rate.Every(time.Hour), 1)
	client := NewRecipeAPIClient(apiConfig(srv.URL), WithLimiter(limiter))

	ctx := context.Background()
	_, err := client.SearchRecipes(ctx, "pasta")
	require.NoError(t, err)
	_, err = client.SearchRecipes(ctx, "pasta")
	assert.ErrorIs(t, err, common.ErrTooManyRequests)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestRecipeAPIClient_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
	}))
	defer srv.Close()

	_, err := NewRecipeAPIClient(apiConfig(srv.URL)).SearchRecipes(context.Background(), "pasta")
	assert.ErrorIs(t, err, common.ErrUpstreamError)

	status, _ := common.ToResponse(err, false)
	assert.Equal(t, http.StatusBadGateway, status)
}

func TestRecipeAPIClient_Disabled(t *testing.T) {
	cfg := apiConfig("http://127.0.0.1:0")
	cfg.Enabled = false
	_, err := NewRecipeAPIClient(cfg).SearchRecipes(context.Background(), "pasta")
	assert.ErrorIs(t, err, common.ErrUpstreamDisabled)
}

func openRouterConfig(baseURL string) config.OpenRouterConfig {
	return config.OpenRouterConfig{
		Enabled:   true,
		BaseURL:   baseURL,
		APIKey:    "or-key",
		Model:     "test/model",
		MaxTokens: 100,
		Timeout:   5 * time.Second,
	}
}

func TestOpenRouterService_GenerateResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer or-key", r.Header.Get("Authorization"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test/model", req.Model)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "make soup", req.Messages[1].Content)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"{\"title\":\"Soup\"}"}}]}`))
	}))
	defer srv.Close()

	out, err := NewOpenRouterService(openRouterConfig(srv.URL), nil).GenerateResponse(context.Background(), " make soup ")
	require.NoError(t, err)
	assert.Equal(t, `{"title":"Soup"}`, out)
}

func TestOpenRouterService_Errors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"bad key"}}`))
	}))
	defer srv.Close()

	_, err := NewOpenRouterService(openRouterConfig(srv.URL), nil).GenerateResponse(context.Background(), "x")
	assert.ErrorIs(t, err, common.ErrAIServiceError)
	assert.Contains(t, err.Error(), "bad key")

	cfg := openRouterConfig(srv.URL)
	cfg.Enabled = false
	_, err = NewOpenRouterService(cfg, nil).GenerateResponse(context.Background(), "x")
	assert.ErrorIs(t, err, common.ErrServiceUnavailable)
}
