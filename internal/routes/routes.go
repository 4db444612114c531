package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"growcoach_backend/internal/handlers"
	"growcoach_backend/internal/middleware"
)

// RegisterRoutes wires all HTTP routes under /api/v1.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	authMW *middleware.AuthMiddleware,
	authLimiter *middleware.RateLimiter,
) {
	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := ginRouter.Group("/api/v1")
	{
		appHandlers.AuthHandler.RegisterRoutes(api, authMW, authLimiter)
		appHandlers.CandidateHandler.RegisterRoutes(api, authMW)
		appHandlers.CompanyHandler.RegisterRoutes(api, authMW)
		appHandlers.JobHandler.RegisterRoutes(api, authMW)
		appHandlers.AdminHandler.RegisterRoutes(api, authMW)
		appHandlers.FileHandler.RegisterRoutes(api)
	}
}
