package http

import (
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/novelzone/internal/auth"
	"github.com/mrlokans/novelzone/internal/database/integrity"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(auth.SecurityHeadersMiddleware())
	router.Use(ReaderMiddleware(cfg.ReaderID))

	monitor := cfg.Monitor
	if monitor == nil {
		monitor = integrity.NewMonitor()
	}

	health := NewHealthController(cfg.Database, monitor, cfg.Version)
	router.GET("/health", health.Liveness)
	router.GET("/api/health", health.Status)

	// Everything below reads the catalog through one connection per request.
	api := router.Group("/", ScopeMiddleware(cfg.Manager))

	home := NewHomeController(cfg.PopularLimit, cfg.ContinueLimit)
	api.GET("/", home.Home)

	novels := NewNovelsController(cfg.PopularLimit)
	api.GET("/api/novels", novels.List)
	api.GET("/api/novels/popular", novels.Popular)
	api.GET("/api/novels/:slug", novels.Get)
	api.GET("/api/novels/:slug/chapters/:number", novels.ReadChapter)

	reader := NewReaderController(cfg.ContinueLimit)
	api.GET("/api/reader/continue", reader.ContinueReading)

	genres := NewGenresController()
	api.GET("/api/genres", genres.List)
	api.GET("/api/genres/:slug/novels", genres.Novels)

	integrityController := NewIntegrityController(monitor, cfg.TaskQueue)
	api.GET("/api/admin/integrity", integrityController.Check)
	api.GET("/api/admin/integrity/last", integrityController.Last)
	router.POST("/api/admin/integrity/run", integrityController.Run)
	router.GET("/api/admin/integrity/runs/:id", integrityController.RunStatus)

	return router
}
