package api

import (
	"staffhub/internal/metrics"
	"staffhub/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(employeeHandler *EmployeeHandler, authHandler *AuthHandler, accessSecret []byte, allowedOrigin string) *gin.Engine {
	r := gin.New()

	// Global Middleware
	r.Use(
		middleware.CorsMiddleware(allowedOrigin),
		middleware.RequestID(),
		middleware.GinZapLogger(),
		middleware.GinZapRecovery(),
		middleware.HttpMiddleware(),
	)
	r.SetTrustedProxies(nil)

	// Public Routes
	r.GET("/health", employeeHandler.HealthCheck)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// Auth Routes (Public)
	r.POST("/login", authHandler.Login)
	r.POST("/refresh-token", authHandler.Refresh)
	r.POST("/logout", authHandler.Logout)

	// Protected Routes
	protected := r.Group("/employees")
	protected.Use(middleware.SessionMiddleware(accessSecret))
	{
		protected.POST("", employeeHandler.Create)
		protected.GET("", employeeHandler.List)
		protected.GET("/:id", employeeHandler.Get)
		protected.PUT("/:id", employeeHandler.Update)
		protected.DELETE("/:id", employeeHandler.Delete)
	}

	return r
}
