package main

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"bookcatalog-backend/internal/shared/middleware"
	"bookcatalog-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
		middleware.ClientIP(),
	)

	api := router.Group("/api")
	{
		api.GET("/health", healthCheckHandler(c))

		setupAuthRoutes(api, c)
		setupCategoryRoutes(api, c)
		setupBookRoutes(api, c)
	}

	return router
}

// ========================================
// AUTH ROUTES
// ========================================
func setupAuthRoutes(api *gin.RouterGroup, c *container.Container) {
	auth := api.Group("/auth")
	auth.Use(c.RateLimiter.Middleware())
	{
		auth.POST("/signup", c.UserHandler.Signup)
		auth.POST("/login", c.UserHandler.Login)
	}
}

// ========================================
// CATEGORY ROUTES
// ========================================
func setupCategoryRoutes(api *gin.RouterGroup, c *container.Container) {
	api.GET("/categories", c.CategoryHandler.ListCategories)
}

// ========================================
// BOOK ROUTES
// ========================================
func setupBookRoutes(api *gin.RouterGroup, c *container.Container) {
	books := api.Group("/books")
	{
		// Public
		books.GET("", c.BookHandler.ListBooks)
		books.GET("/search", c.BookHandler.SearchBooks)
		books.GET("/export", c.BookHandler.ExportBooks)
		books.GET(coverRoute(c.Config.Cover.RoutePrefix), c.BookHandler.GetCover)
		books.GET("/:id", c.BookHandler.GetBookDetail)

		// Owner only, ghi có rate limit theo user
		protected := books.Group("")
		protected.Use(middleware.AuthMiddleware(c.JWTManager), c.RateLimiter.Middleware())
		{
			protected.POST("/create", c.BookHandler.CreateBook)
			protected.PUT("/:id", c.BookHandler.UpdateBook)
			protected.DELETE("/:id", c.BookHandler.DeleteBook)
		}
	}
}

// coverRoute đổi "/api/books/cover/" thành "/cover/:id" (relative với group /api/books)
func coverRoute(prefix string) string {
	rel := strings.TrimPrefix(strings.Trim(prefix, "/"), "api/books")
	rel = strings.Trim(rel, "/")
	if rel == "" {
		rel = "cover"
	}
	return "/" + rel + "/:id"
}

// ========================================
// HEALTH CHECK
// ========================================
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
		}

		dbStatus := "ok"
		if err := appCtx.DB.Ping(ctx); err != nil {
			dbStatus = "error: " + err.Error()
			health["status"] = "degraded"
		}

		// Redis không critical: cache fallback sang noop
		redisStatus := "ok"
		if err := appCtx.PingRedis(ctx); err != nil {
			redisStatus = "error: " + err.Error()
		}

		health["services"] = gin.H{
			"database": dbStatus,
			"redis":    redisStatus,
		}
		if stats, err := appCtx.DB.Stats(); err == nil {
			health["pool"] = stats
		}

		statusCode := http.StatusOK
		if dbStatus != "ok" {
			statusCode = http.StatusServiceUnavailable
		}
		c.JSON(statusCode, health)
	}
}
