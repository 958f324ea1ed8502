package httpserver

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"leveragebrief/internal/handler"
)

type Router struct {
	Engine *gin.Engine
}

func NewRouter(
	toolHandler *handler.ToolHandler,
	adminHandler *handler.AdminHandler,
	jwtSecret string,
	db *pgxpool.Pool,
) *Router {
	r := gin.Default()
	r.Use(MetricsMiddleware())

	// Health endpoints (放在最前面)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.HEAD("/healthz", func(c *gin.Context) {
		c.Status(200)
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.HEAD("/health", func(c *gin.Context) {
		c.Status(200)
	})

	r.GET("/readyz", func(c *gin.Context) {
		if db == nil {
			// Auditing is optional; the tool surface is ready without it.
			c.JSON(200, gin.H{"status": "ready", "audit": "disabled"})
			return
		}

		ctx, cancel := context.WithTimeout(c, 1*time.Second)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			c.JSON(500, gin.H{"status": "db_not_ready", "error": err.Error()})
			return
		}

		c.JSON(200, gin.H{"status": "ready"})
	})

	// Metrics
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Tool surface (unauthenticated; discovery fallback handles probes)
	r.GET("/mcp", toolHandler.Discover)
	r.POST("/mcp", toolHandler.Invoke)
	r.POST("/mcp/tools/list", toolHandler.Discover)

	// Admin surface
	r.POST("/admin/login", adminHandler.Login)

	admin := r.Group("/admin")
	admin.Use(AuthMiddleware(jwtSecret))
	{
		admin.GET("/stats", adminHandler.Stats)
	}

	return &Router{Engine: r}
}

func (r *Router) Run(port string) error {
	return r.Engine.Run(port)
}
