package routes

import (
	"net/http"

	"gymdesk_backend/internal/handlers"
	"gymdesk_backend/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes registers all HTTP routes.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	jwtSecret string,
) {
	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	ginRouter.GET("/metrics", gin.WrapH(promhttp.Handler()))
	ginRouter.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Every v1 route requires an authenticated identity; tenant and role
	// resolution happen in the services.
	api := ginRouter.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(jwtSecret))
	{
		appHandlers.MemberHandler.RegisterRoutes(api)
		appHandlers.TrainerHandler.RegisterRoutes(api)
		appHandlers.ExerciseHandler.RegisterRoutes(api)
		appHandlers.SubscriptionHandler.RegisterRoutes(api)
		appHandlers.ProvisionHandler.RegisterRoutes(api)
	}
}
