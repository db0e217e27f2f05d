package http

import (
	"github.com/gin-gonic/gin"
	"github.com/pantrylens/kitchen/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// SetupRouter creates and configures the Gin router. gatherer may be nil, in which
// case /metrics is not served.
func SetupRouter(cfg *config.Config, handler *Handler, gatherer prometheus.Gatherer, logger *zap.Logger) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()

	// Global middleware
	router.Use(RequestIDMiddleware())
	router.Use(RecoveryMiddleware(logger))
	router.Use(LoggerMiddleware(logger.Named("access")))
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	if gatherer != nil && cfg.Metrics.Enabled {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		pantry := v1.Group("/pantry")
		{
			pantry.GET("", handler.ListPantry)
			pantry.POST("", handler.CreatePantryItem)
			pantry.PATCH("/:id", handler.UpdatePantryItem)
			pantry.DELETE("/:id", handler.DeletePantryItem)
			pantry.POST("/:id/consume", handler.ConsumePantryItem)
		}

		shopping := v1.Group("/shopping-list")
		{
			shopping.GET("", handler.ListShopping)
			shopping.POST("", handler.CreateShoppingItem)
			shopping.DELETE("/:id", handler.DeleteShoppingItem)
			shopping.PUT("/:id/done", handler.SetShoppingDone)
			shopping.POST("/purchase", handler.PurchaseToPantry)
		}

		recipes := v1.Group("/recipes")
		{
			recipes.GET("", handler.ListRecipes)
			recipes.GET("/:id", handler.GetRecipe)
			recipes.POST("/:id/shopping-list/add-missing", handler.AddMissingToShoppingList)
			recipes.POST("/:id/shopping-list/add-ingredient", handler.AddIngredientToShoppingList)
		}

		v1.GET("/recommendations/expiring", handler.ExpiringRecommendations)
		v1.GET("/ingredients/search", handler.SearchIngredients)

		log := v1.Group("/log")
		{
			log.POST("/recipe", handler.LogRecipe)
			log.POST("/ingredient", handler.LogIngredient)
			log.GET("/daily-summary", handler.DailySummary)
			log.DELETE("/:id", handler.DeleteLogEntry)
		}

		v1.GET("/profile", handler.GetProfile)
		v1.PATCH("/profile", handler.UpdateProfile)

		v1.POST("/session/transition", handler.SessionTransition)

		exports := v1.Group("/export")
		{
			exports.GET("/shopping-list.xlsx", handler.ExportShoppingList)
			exports.GET("/pantry.xlsx", handler.ExportPantry)
		}
	}

	return router
}
