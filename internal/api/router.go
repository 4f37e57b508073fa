package api

import (
	"time"

	"smartplates/internal/api/handlers/grocery"
	"smartplates/internal/api/handlers/health"
	"smartplates/internal/api/handlers/mealplan"
	recipeHandler "smartplates/internal/api/handlers/recipe"
	"smartplates/internal/api/middleware"
	"smartplates/internal/core/cache"
	groceryService "smartplates/internal/core/grocery"
	mealplanService "smartplates/internal/core/mealplan"
	"smartplates/internal/core/recipe"
	"smartplates/internal/core/search"
	"smartplates/internal/core/service"
	"smartplates/internal/infrastructure/config"
	"smartplates/internal/infrastructure/monitoring"
	"smartplates/internal/infrastructure/store"
	"smartplates/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Services 路由使用的服務
type Services struct {
	Store     store.Store
	Metrics   *monitoring.Metrics
	Recipes   *recipe.Service
	MealPlans *mealplanService.Service
	Groceries *groceryService.Service
}

// NewServices 依設定組裝服務，responseCache 與 metrics 可為 nil
func NewServices(cfg *config.Config, st store.Store, responseCache cache.Cache, metrics *monitoring.Metrics) *Services {
	matcher := search.NewMatcher(search.WithThreshold(cfg.Search.SimilarityThreshold))

	var external recipe.ExternalSource
	if cfg.RecipeAPI.Enabled {
		opts := []service.RecipeAPIOption{service.WithMetrics(metrics)}
		if responseCache != nil {
			opts = append(opts, service.WithCache(responseCache, cfg.Cache.TTL))
		}
		external = service.NewRecipeAPIClient(cfg.RecipeAPI, opts...)
	}

	var generator recipe.Generator
	if cfg.OpenRouter.Enabled {
		generator = service.NewOpenRouterService(cfg.OpenRouter, metrics)
	}

	recipes := recipe.NewService(st, matcher, external, generator, metrics)
	plans := mealplanService.NewService(st)
	groceries := groceryService.NewService(st, plans, recipes, nil, metrics)

	common.LogInfo("Services initialized",
		zap.Bool("recipe_api_enabled", external != nil),
		zap.Bool("ai_enabled", generator != nil),
		zap.Bool("cache_enabled", responseCache != nil),
		zap.Float64("similarity_threshold", matcher.Threshold()),
	)

	return &Services{
		Store:     st,
		Metrics:   metrics,
		Recipes:   recipes,
		MealPlans: plans,
		Groceries: groceries,
	}
}

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config, svc *Services) *gin.Engine {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	metrics := svc.Metrics
	if metrics == nil {
		metrics = monitoring.NewMetrics()
	}

	router := gin.New()

	// 基礎中間件
	router.Use(middleware.Recovery())
	router.Use(requestid.New())
	router.Use(middleware.Logger())
	router.Use(middleware.Metrics(metrics))

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID", middleware.OwnerHeader},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	router.Use(middleware.BodySizeLimit(cfg.Server.MaxBodyBytes))
	router.Use(middleware.Timeout(cfg.Server.RequestTimeout))

	// 健康檢查與指標
	healthHandler := health.NewHandler(cfg.App.Version, svc.Store)
	router.GET("/health", healthHandler.HealthCheck)
	router.GET("/ready", healthHandler.ReadinessCheck)
	router.GET("/live", health.LivenessCheck)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := router.Group("/api/v1")
	api.Use(middleware.RequireOwner())
	if cfg.RateLimit.Enabled {
		api.Use(middleware.RateLimit(middleware.NewRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window)))
	}

	// 生成類路由擋下重複送出
	dedup := middleware.NewDeduplicator(cfg.DedupWindow).Middleware()

	groceryHandler := grocery.NewHandler(svc.Groceries)

	recipeHandler.NewHandler(svc.Recipes).Register(api.Group("/recipes"), dedup)

	plans := api.Group("/meal-plans")
	mealplan.NewHandler(svc.MealPlans).Register(plans)
	plans.POST("/:id/grocery-list", dedup, groceryHandler.HandleGenerate)

	groceryHandler.Register(api.Group("/grocery-lists"))

	common.LogInfo("Router setup completed",
		zap.Bool("rate_limit", cfg.RateLimit.Enabled),
		zap.Duration("request_timeout", cfg.Server.RequestTimeout),
		zap.Int64("max_body_size", cfg.Server.MaxBodyBytes),
	)

	return router
}
