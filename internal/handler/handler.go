package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"gamepulse/dashboard/internal/auth"
	"gamepulse/dashboard/internal/cache"
	"gamepulse/dashboard/internal/dataset"
	"gamepulse/dashboard/internal/filters"
	"gamepulse/dashboard/internal/hub"
	"gamepulse/dashboard/internal/models"

	"github.com/gin-gonic/gin"
)

// ErrorResponse represents a generic error response.
type ErrorResponse struct {
	Error string `json:"error" example:"An error message"`
}

// TableSource serves the current dataset.
type TableSource interface {
	Current(ctx context.Context) (*dataset.Table, error)
	Reload(ctx context.Context) (*dataset.Table, error)
	Version() uint64
}

// SnapshotWriter persists the current records.
type SnapshotWriter interface {
	SaveSnapshot(ctx context.Context, source string, records []models.GameRecord, cols []string) error
	History(ctx context.Context, limit int) ([]models.SnapshotMeta, error)
}

// Settings are the configuration values the handlers depend on.
type Settings struct {
	YearsBackDefault  int
	JWTSecret         string
	AdminPasswordHash string
	TokenTTL          time.Duration
}

// Handler serves the dashboard API and pages.
type Handler struct {
	tables    TableSource
	cache     cache.Cache
	hub       *hub.Hub
	snapshots SnapshotWriter
	settings  Settings
}

// New creates a Handler. snapshots may be nil when no snapshot store is configured.
func New(tables TableSource, c cache.Cache, h *hub.Hub, snapshots SnapshotWriter, s Settings) *Handler {
	if s.TokenTTL <= 0 {
		s.TokenTTL = 12 * time.Hour
	}
	return &Handler{tables: tables, cache: c, hub: h, snapshots: snapshots, settings: s}
}

// Register mounts every route on router.
func (h *Handler) Register(router *gin.Engine) {
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	router.GET("/", h.Dashboard)
	router.GET("/dashboard/:section", h.Dashboard)

	secret := []byte(h.settings.JWTSecret)
	apiV1 := router.Group("/api/v1")
	apiV1.Use(auth.OptionalAuthMiddleware(secret))
	{
		apiV1.GET("/dataset", h.GetDataset)
		apiV1.GET("/filters", h.GetFilters)
		apiV1.GET("/genres", h.GetGenres)
		apiV1.GET("/games", h.GetGames)
		apiV1.GET("/sections", h.ListSections)
		apiV1.GET("/sections/:section", h.GetSection)
		apiV1.GET("/events", h.StreamEvents)

		authRoutes := apiV1.Group("/auth")
		{
			authRoutes.POST("/login", h.Login)
		}

		adminRoutes := apiV1.Group("/admin")
		if len(secret) == 0 {
			adminRoutes.Use(adminDisabled)
		} else {
			adminRoutes.Use(auth.AdminMiddleware(secret))
		}
		{
			adminRoutes.POST("/reload", h.ReloadDataset)
			adminRoutes.POST("/snapshot", h.SaveSnapshot)
		}
	}
}

// adminDisabled rejects admin routes when no JWT secret is configured.
func adminDisabled(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "Admin access is not configured"})
}

// table returns the current dataset or writes a 503 and returns nil.
func (h *Handler) table(c *gin.Context) *dataset.Table {
	t, err := h.tables.Current(c.Request.Context())
	if err != nil {
		status := http.StatusServiceUnavailable
		if errors.Is(err, context.Canceled) {
			status = http.StatusRequestTimeout
		}
		c.JSON(status, gin.H{"error": "Dataset unavailable: " + err.Error()})
		return nil
	}
	return t
}

// criteria binds the filter query string against the table's widget options.
func (h *Handler) criteria(c *gin.Context, t *dataset.Table) (filters.Criteria, filters.Options, bool) {
	opts := filters.BuildOptions(t, h.settings.YearsBackDefault)
	var q filters.Query
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return filters.Criteria{}, opts, false
	}
	return q.Criteria(opts), opts, true
}
