package router

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/brightforge/agency-backend/internal/config"
	"github.com/brightforge/agency-backend/internal/handler"
	"github.com/brightforge/agency-backend/internal/middleware"
	"github.com/brightforge/agency-backend/internal/response"
	"github.com/brightforge/agency-backend/internal/service"
)

// staticAssetMaxAge is the Cache-Control max-age for fingerprinted bundle files (1 year).
const staticAssetMaxAge = 31536000

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth         *handler.AuthHandler
	Contact      *handler.ContactHandler
	Client       *handler.ClientHandler
	Project      *handler.ProjectHandler
	Notification *handler.NotificationHandler
	Analytics    *handler.AnalyticsHandler
	Dashboard    *handler.DashboardHandler
	Webhook      *handler.WebhookHandler
	System       *handler.SystemHandler
	WS           *handler.WSHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response carries X-Request-ID.
	router.Use(response.RequestIDMiddleware())

	// Apply brotli middleware globally.
	router.Use(middleware.Brotli())

	requireAdmin := middleware.RequireAdminSession(authService)

	api := router.Group("/api")
	api.GET("/health", handlers.System.Health)

	// ─── 1. Admin Auth Group ───────────────────────────────────────────
	admin := api.Group("/admin")
	{
		admin.POST("/login", handlers.Auth.Login)
		admin.POST("/create-default", handlers.Auth.CreateDefault)
		admin.POST("/logout", requireAdmin, handlers.Auth.Logout)
		admin.GET("/session", requireAdmin, handlers.Auth.Session)
	}

	// ─── 2. Contact Group (Public, PATCH requires a session) ───────────
	contact := api.Group("/contact")
	{
		contact.POST("", handlers.Contact.Submit)
		contact.GET("", handlers.Contact.List)
		contact.GET("/stats", handlers.Contact.Stats)
		contact.GET("/:id", handlers.Contact.Get)
		contact.DELETE("/:id", handlers.Contact.Delete)
		contact.PATCH("/:id", requireAdmin, handlers.Contact.Update)
	}

	// ─── 3. Inbound Webhooks ───────────────────────────────────────────
	api.POST("/webhooks/n8n", middleware.RequireWebhookJWT(cfg.WebhookSecret), handlers.Webhook.N8N)

	// ─── 4. Back-office Group (Session) ────────────────────────────────
	office := api.Group("")
	office.Use(requireAdmin)
	{
		clients := office.Group("/clients")
		{
			clients.POST("", handlers.Client.Create)
			clients.GET("", handlers.Client.List)
			clients.GET("/:id", handlers.Client.Get)
			clients.PATCH("/:id", handlers.Client.Update)
			clients.DELETE("/:id", handlers.Client.Delete)
		}

		projects := office.Group("/projects")
		{
			projects.POST("", handlers.Project.Create)
			projects.GET("", handlers.Project.List)
			projects.GET("/:id", handlers.Project.Get)
			projects.PATCH("/:id", handlers.Project.Update)
			projects.DELETE("/:id", handlers.Project.Delete)
		}

		notifications := office.Group("/notifications")
		{
			notifications.POST("", handlers.Notification.Create)
			notifications.GET("", handlers.Notification.List)
			notifications.GET("/unread", handlers.Notification.ListUnread)
			notifications.GET("/:id", handlers.Notification.Get)
			notifications.PATCH("/:id", handlers.Notification.Update)
			notifications.PATCH("/:id/read", handlers.Notification.MarkRead)
			notifications.DELETE("/:id", handlers.Notification.Delete)
		}

		office.POST("/analytics", handlers.Analytics.Record)
		office.GET("/analytics/:metric", handlers.Analytics.Query)
		office.GET("/dashboard/stats", handlers.Dashboard.GetStats)
		office.GET("/integrations/status", handlers.System.IntegrationStatus)
	}

	// ─── 5. WebSocket (Session via query token) ────────────────────────
	router.GET("/ws/notifications", middleware.RequireAdminWSSession(authService), handlers.WS.NotificationStream)

	// ─── 6. Fallbacks ──────────────────────────────────────────────────
	router.NoRoute(apiNotFound, middleware.StaticCacheControl(staticAssetMaxAge), serveStatic(cfg.StaticDir))

	return router
}

// apiNotFound answers unmatched /api paths and stops the chain.
func apiNotFound(c *gin.Context) {
	path := c.Request.URL.Path
	if path != "/api" && !strings.HasPrefix(path, "/api/") {
		return
	}
	c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
		"success": false,
		"code":    response.ErrEndpointNotFound,
		"message": response.GetMessage(response.ErrEndpointNotFound),
		"path":    path,
	})
}

// serveStatic serves files from dir and falls back to index.html so client-side
// routes of the marketing site resolve. An empty dir disables static hosting.
func serveStatic(dir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if dir == "" || (c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead) ||
			hasDotDotSegment(c.Request.URL.Path) {
			response.FailMessage(c, http.StatusNotFound, response.ErrNotFound, "Not found")
			return
		}

		// Clean against a rooted path so ".." cannot leave dir.
		rel := filepath.FromSlash(filepath.Clean("/" + c.Request.URL.Path))
		file := filepath.Join(dir, rel)
		if info, err := os.Stat(file); err == nil && !info.IsDir() {
			c.File(file)
			return
		}

		index := filepath.Join(dir, "index.html")
		if _, err := os.Stat(index); err != nil {
			response.FailMessage(c, http.StatusNotFound, response.ErrNotFound, "Not found")
			return
		}
		c.Header("Cache-Control", "no-cache")
		c.File(index)
	}
}

// hasDotDotSegment reports whether p contains a ".." path element.
func hasDotDotSegment(p string) bool {
	for _, seg := range strings.Split(p, "/") {
		if seg == ".." {
			return true
		}
	}
	return false
}
