package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"thooral.backend/internal/interfaces/http/handlers"
)

type routeDeps struct {
	authHandler    *handlers.AuthHandler
	userHandler    *handlers.UserHandler
	authMiddleware gin.HandlerFunc
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "success",
			"message":   "API is operational",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})
}

func registerMetricsRoute(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func registerAPIRoutes(r *gin.Engine, d routeDeps) {
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/register", d.authHandler.Register)
			auth.POST("/verify-email", d.authHandler.VerifyEmail)
			auth.POST("/login", d.authHandler.Login)
			auth.POST("/forgot-password", d.authHandler.ForgotPassword)
			auth.POST("/reset-password", d.authHandler.ResetPassword)
			auth.POST("/refresh", d.authHandler.RefreshToken)
		}

		// User routes
		users := api.Group("/users")
		{
			users.GET("/me", d.authMiddleware, d.userHandler.GetCurrentUser)
			users.PUT("/me", d.authMiddleware, d.userHandler.UpdateCurrentUser)

			users.GET("", d.userHandler.GetUsers)
			users.GET("/:id", d.userHandler.GetUserByID)
			users.DELETE("/:id", d.authMiddleware, d.userHandler.DeleteUser)
		}
	}
}
