package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"smartplates/internal/core/cache"
	"smartplates/internal/core/recipe"
	"smartplates/internal/infrastructure/config"
	"smartplates/internal/infrastructure/monitoring"
	"smartplates/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const upstreamRecipeAPI = "recipe_api"

// externalIDPrefix 外部食譜在本地的 ID 前綴
const externalIDPrefix = "spoonacular-"

// RecipeAPIClient Spoonacular 相容的外部食譜搜尋
type RecipeAPIClient struct {
	config   config.RecipeAPIConfig
	client   *resty.Client
	cache    cache.Cache
	cacheTTL time.Duration
	limiter  *rate.Limiter
	metrics  *monitoring.Metrics
}

// RecipeAPIOption 外部 API 客戶端選項
type RecipeAPIOption func(*RecipeAPIClient)

// WithCache 注入回應快取
func WithCache(c cache.Cache, ttl time.Duration) RecipeAPIOption {
	return func(r *RecipeAPIClient) {
		r.cache = c
		if ttl > 0 {
			r.cacheTTL = ttl
		}
	}
}

// WithLimiter 取代預設的每分鐘請求數限制
func WithLimiter(l *rate.Limiter) RecipeAPIOption {
	return func(r *RecipeAPIClient) { r.limiter = l }
}

// WithMetrics 記錄快取與上游指標
func WithMetrics(m *monitoring.Metrics) RecipeAPIOption {
	return func(r *RecipeAPIClient) { r.metrics = m }
}

// NewRecipeAPIClient 建立外部食譜 API 客戶端
func NewRecipeAPIClient(cfg config.RecipeAPIConfig, opts ...RecipeAPIOption) *RecipeAPIClient {
	rpm := cfg.RequestsPerMinute
	if rpm <= 0 {
		rpm = 60
	}
	if cfg.ResultLimit <= 0 {
		cfg.ResultLimit = 10
	}

	c := &RecipeAPIClient{
		config: cfg,
		client: resty.New().
			SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
			SetTimeout(cfg.Timeout).
			SetHeader("Accept", "application/json"),
		cacheTTL: time.Hour,
		limiter:  rate.NewLimiter(rate.Every(time.Minute/time.Duration(rpm)), rpm),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type complexSearchResponse struct {
	Results      []spoonacularRecipe `json:"results"`
	TotalResults int                 `json:"totalResults"`
}

type spoonacularRecipe struct {
	ID                   int                       `json:"id"`
	Title                string                    `json:"title"`
	Image                string                    `json:"image"`
	Summary              string                    `json:"summary"`
	Servings             int                       `json:"servings"`
	ReadyInMinutes       int                       `json:"readyInMinutes"`
	SourceURL            string                    `json:"sourceUrl"`
	DishTypes            []string                  `json:"dishTypes"`
	Diets                []string                  `json:"diets"`
	ExtendedIngredients  []spoonacularIngredient   `json:"extendedIngredients"`
	AnalyzedInstructions []spoonacularInstructions `json:"analyzedInstructions"`
}

type spoonacularInstructions struct {
	Steps []struct {
		Step string `json:"step"`
	} `json:"steps"`
}

type spoonacularIngredient struct {
	Name     string  `json:"name"`
	Original string  `json:"original"`
	Amount   float64 `json:"amount"`
	Unit     string  `json:"unit"`
}

// SearchRecipes 以關鍵字搜尋外部食譜，結果依查詢快取
func (c *RecipeAPIClient) SearchRecipes(ctx context.Context, query string) ([]recipe.Recipe, error) {
	if !c.config.Enabled || c.config.APIKey == "" {
		return nil, common.ErrUpstreamDisabled
	}

	query = strings.ToLower(strings.TrimSpace(query))
	key := cache.Key("recipe_api:search", query, strconv.Itoa(c.config.ResultLimit))

	if cached, ok := c.lookup(ctx, key); ok {
		return cached, nil
	}

	if !c.limiter.Allow() {
		common.LogWarn("外部食譜 API 已達速率上限", zap.String("query", query))
		return nil, common.ErrTooManyRequests
	}

	start := time.Now()
	recipes, err := c.fetch(ctx, query)
	duration := time.Since(start)
	common.LogUpstreamCall(upstreamRecipeAPI, duration, err)
	c.metrics.RecordUpstream(upstreamRecipeAPI, duration, err)
	if err != nil {
		return nil, err
	}

	c.store(ctx, key, recipes)
	return recipes, nil
}

func (c *RecipeAPIClient) lookup(ctx context.Context, key string) ([]recipe.Recipe, bool) {
	if c.cache == nil {
		return nil, false
	}
	raw, ok := c.cache.Get(ctx, key)
	c.metrics.RecordCache(ok)
	if !ok {
		return nil, false
	}

	var recipes []recipe.Recipe
	if err := common.ParseJSON(raw, &recipes); err != nil {
		common.LogWarn("快取內容無法解析", zap.String("鍵", key), zap.Error(err))
		return nil, false
	}
	return recipes, true
}

func (c *RecipeAPIClient) store(ctx context.Context, key string, recipes []recipe.Recipe) {
	if c.cache == nil {
		return
	}
	data, err := json.Marshal(recipes)
	if err != nil {
		return
	}
	if err := c.cache.Set(ctx, key, string(data), c.cacheTTL); err != nil {
		common.LogWarn("寫入快取失敗", zap.String("鍵", key), zap.Error(err))
	}
}

func (c *RecipeAPIClient) fetch(ctx context.Context, query string) ([]recipe.Recipe, error) {
	var result complexSearchResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"query":                query,
			"number":               strconv.Itoa(c.config.ResultLimit),
			"addRecipeInformation": "true",
			"fillIngredients":      "true",
			"apiKey":               c.config.APIKey,
		}).
		SetResult(&result).
		Get("/recipes/complexSearch")
	if err != nil {
		return nil, common.ErrUpstreamError.Wrap(fmt.Errorf("recipe api request failed: %w", err))
	}
	if resp.IsError() {
		return nil, common.ErrUpstreamError.Wrap(fmt.Errorf("recipe api returned %d", resp.StatusCode()))
	}

	recipes := make([]recipe.Recipe, 0, len(result.Results))
	for _, r := range result.Results {
		recipes = append(recipes, r.toRecipe())
	}
	return recipes, nil
}

func (r spoonacularRecipe) toRecipe() recipe.Recipe {
	out := recipe.Recipe{
		ID:             externalIDPrefix + strconv.Itoa(r.ID),
		Title:          r.Title,
		Summary:        r.Summary,
		Servings:       r.Servings,
		ReadyInMinutes: r.ReadyInMinutes,
		ImageURL:       r.Image,
		SourceURL:      r.SourceURL,
		Source:         recipe.SourceExternal,
		ExternalID:     strconv.Itoa(r.ID),
		Ingredients:    make([]recipe.Ingredient, 0, len(r.ExtendedIngredients)),
	}
	for _, ing := range r.ExtendedIngredients {
		out.Ingredients = append(out.Ingredients, recipe.Ingredient{
			Name:         ing.Name,
			OriginalName: ing.Original,
			Amount:       ing.Amount,
			Unit:         ing.Unit,
		})
	}
	for _, block := range r.AnalyzedInstructions {
		for _, step := range block.Steps {
			out.Instructions = append(out.Instructions, step.Step)
		}
	}
	out.Tags = append(out.Tags, r.DishTypes...)
	out.Tags = append(out.Tags, r.Diets...)
	return out
}
