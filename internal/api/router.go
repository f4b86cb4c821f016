package api

import (
	"context"
	"database/sql"
	"net/http"
	"path/filepath"
	"time"

	"github.com/blog-api/internal/config"
	"github.com/blog-api/internal/models"
	"github.com/blog-api/internal/service"
	"github.com/blog-api/internal/storage"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
	healthTimeout   = 2 * time.Second
)

// HealthChecker reports whether the database is reachable and how its pool is doing
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
	Stats() sql.DBStats
}

// NewRouter creates and configures the Gin router.
// health may be nil, in which case /health only reports liveness.
func NewRouter(
	services *service.Services,
	verifier TokenVerifier,
	health HealthChecker,
	cfg *config.Config,
	log zerolog.Logger,
) *gin.Engine {
	router := gin.New()

	// Middleware
	router.Use(requestIDMiddleware())
	router.Use(recoveryMiddleware(log))
	router.Use(loggingMiddleware(log))
	router.Use(corsMiddleware())

	// Handlers
	articles := NewArticleHandler(services, log)
	categories := NewCategoryHandler(services, log)
	likes := NewLikeHandler(services, log)
	uploads := NewUploadHandler(services, log)

	router.GET("/health", healthCheck(health))

	// Public
	router.GET("/findCategoriesName", categories.FindCategoriesName)
	router.GET("/getArticleCategories", categories.GetArticleCategories)

	if cfg.Upload.Dir != "" {
		router.Static("/"+storage.ImagePrefix, filepath.Join(cfg.Upload.Dir, storage.ImagePrefix))
	}

	// Signed-in users
	user := router.Group("/", authMiddleware(verifier, services.User, log))
	{
		user.GET("/canYouWrite", articles.CanYouWrite)
		user.POST("/publishArticle", articles.PublishArticle)
		user.POST("/uploadImage", uploads.UploadImage)
		user.POST("/articleThumbsUp", likes.ArticleThumbsUp)
		user.POST("/commentThumbsUp", likes.CommentThumbsUp)
	}

	// Admins
	admin := user.Group("/", requireAdmin())
	{
		admin.POST("/updateCategory", categories.UpdateCategory)
		admin.GET("/deleteArticle", articles.DeleteArticle)
		admin.GET("/getArticleThumbsUp", likes.GetArticleThumbsUp)
		admin.POST("/readThisThumbsUp", likes.ReadThisThumbsUp)
	}

	return router
}

// healthCheck returns the health status
func healthCheck(health HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		data := gin.H{
			"status":    "healthy",
			"timestamp": time.Now().Format(time.RFC3339),
			"service":   "blog-api",
		}

		if health != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
			defer cancel()
			if err := health.HealthCheck(ctx); err != nil {
				data["status"] = "unhealthy"
				data["database"] = err.Error()
				respond(c, http.StatusServiceUnavailable, models.CodeServerException, "", data)
				return
			}
			data["database"] = "ok"
			stats := health.Stats()
			data["pool"] = gin.H{
				"open_connections": stats.OpenConnections,
				"in_use":           stats.InUse,
				"idle":             stats.Idle,
				"wait_count":       stats.WaitCount,
			}
		}

		ok(c, data)
	}
}

// requestIDMiddleware tags every request with an id, reusing the client's when given
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func requestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

// recoveryMiddleware handles panics
func recoveryMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().
					Interface("error", err).
					Str("request_id", requestID(c)).
					Str("path", c.Request.URL.Path).
					Msg("Panic recovered")
				respond(c, http.StatusInternalServerError, models.CodeServerException, "", nil)
				c.Abort()
			}
		}()
		c.Next()
	}
}

// loggingMiddleware logs requests
func loggingMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		event := log.Info()
		if statusCode >= 400 {
			event = log.Warn()
		}
		if statusCode >= 500 {
			event = log.Error()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", statusCode).
			Dur("duration", duration).
			Str("client_ip", c.ClientIP()).
			Str("request_id", requestID(c)).
			Msg("Request completed")
	}
}

// corsMiddleware handles CORS
func corsMiddleware() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization", requestIDHeader},
		ExposeHeaders:   []string{requestIDHeader},
		MaxAge:          12 * time.Hour,
	})
}
