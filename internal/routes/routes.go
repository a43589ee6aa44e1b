package routes

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"storefront-api/internal/handlers"
	"storefront-api/internal/middleware"
)

// NewRouter builds the engine with the shared middleware stack and the
// metrics endpoint.
func NewRouter(logger *slog.Logger, corsOrigins []string, metrics *middleware.Metrics) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestLogger(logger),
		metrics.Middleware(),
		middleware.CORS(corsOrigins),
	)
	router.GET("/metrics", metrics.Handler())
	return router
}

func RegisterRoutes(router *gin.Engine, products *handlers.ProductHandler, system *handlers.SystemHandler) {
	router.GET("/", system.Root)
	router.GET("/test", system.Diagnostic)

	api := router.Group("/api")
	{
		api.GET("/products", products.ListProducts)
		api.POST("/products", products.CreateProduct)
		api.GET("/categories", products.ListCategories)
		api.POST("/seed", products.SeedProducts)
	}
}
