package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"gamepulse/dashboard/internal/auth"
	"gamepulse/dashboard/internal/cache"
	"gamepulse/dashboard/internal/filters"
	"gamepulse/dashboard/internal/insights"
	"gamepulse/dashboard/internal/models"
	"gamepulse/dashboard/internal/render"

	"github.com/gin-gonic/gin"
)

// region --- DTOs ---

// DatasetResponse describes the loaded dataset.
type DatasetResponse struct {
	Source    string                `json:"source"`
	Rows      int                   `json:"rows"`
	Columns   []string              `json:"columns"`
	LoadedAt  time.Time             `json:"loaded_at"`
	Version   uint64                `json:"version"`
	Notices   []string              `json:"notices"`
	Snapshots []models.SnapshotMeta `json:"snapshots,omitempty"`
}

// FiltersResponse carries the filter widgets and the criteria resolved from the query.
type FiltersResponse struct {
	Options  filters.Options  `json:"options"`
	Defaults filters.Criteria `json:"defaults"`
	Applied  filters.Criteria `json:"applied"`
}

// SectionResponse is a section result with its rendered ECharts options.
type SectionResponse struct {
	*insights.Result
	Charts   []render.Chart   `json:"charts"`
	Criteria filters.Criteria `json:"criteria"`
}

// endregion

// GetDataset godoc
// @Summary      Dataset metadata
// @Description  Source, size, columns and load notices of the current dataset. Admins also get the snapshot history.
// @Tags         dataset
// @Produce      json
// @Success      200  {object}  DatasetResponse
// @Failure      503  {object}  ErrorResponse "Dataset unavailable"
// @Router       /dataset [get]
func (h *Handler) GetDataset(c *gin.Context) {
	t := h.table(c)
	if t == nil {
		return
	}
	resp := DatasetResponse{
		Source:   t.Source,
		Rows:     t.Len(),
		Columns:  t.Columns(),
		LoadedAt: t.LoadedAt,
		Version:  t.Version,
		Notices:  t.Notices,
	}
	if resp.Notices == nil {
		resp.Notices = []string{}
	}
	if auth.IsAdmin(c) && h.snapshots != nil {
		history, err := h.snapshots.History(c.Request.Context(), 10)
		if err != nil {
			slog.Warn("snapshot history unavailable", "error", err)
		}
		resp.Snapshots = history
	}
	c.JSON(http.StatusOK, resp)
}

// GetFilters godoc
// @Summary      Filter widgets
// @Description  Bounds and choices of every filter, the default selection and the selection resolved from the query string.
// @Tags         dataset
// @Produce      json
// @Param        year_min        query  int     false  "First release year"
// @Param        year_max        query  int     false  "Last release year"
// @Param        price_min       query  number  false  "Minimum price"
// @Param        price_max       query  number  false  "Maximum price"
// @Param        platforms       query  []string false "Platforms (any of)" collectionFormat(multi)
// @Param        genres          query  []string false "Primary genres" collectionFormat(multi)
// @Param        min_acceptance  query  number  false  "Minimum acceptance percentage"
// @Param        min_user_score  query  number  false  "Minimum user score"
// @Success      200  {object}  FiltersResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      503  {object}  ErrorResponse "Dataset unavailable"
// @Router       /filters [get]
func (h *Handler) GetFilters(c *gin.Context) {
	t := h.table(c)
	if t == nil {
		return
	}
	crit, opts, ok := h.criteria(c, t)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, FiltersResponse{Options: opts, Defaults: opts.Defaults(), Applied: crit})
}

// GetGenres godoc
// @Summary      Genre dimension
// @Description  Every genre tag with its number of games, most frequent first.
// @Tags         dataset
// @Produce      json
// @Success      200  {array}   models.GenreCount
// @Failure      503  {object}  ErrorResponse "Dataset unavailable"
// @Router       /genres [get]
func (h *Handler) GetGenres(c *gin.Context) {
	t := h.table(c)
	if t == nil {
		return
	}
	genres := t.Genres()
	if genres == nil {
		genres = []models.GenreCount{}
	}
	c.JSON(http.StatusOK, genres)
}

// ListSections godoc
// @Summary      List sections
// @Tags         sections
// @Produce      json
// @Success      200  {array}  insights.SectionInfo
// @Router       /sections [get]
func (h *Handler) ListSections(c *gin.Context) {
	c.JSON(http.StatusOK, insights.Sections)
}

// GetSection godoc
// @Summary      Section data
// @Description  KPIs, chart data and ECharts options of one section for the filtered games.
// @Tags         sections
// @Produce      json
// @Param        section         path   string  true   "Section id" Enums(overview, top-publishers, price-vs-popularity, price-by-genre, genre-trends)
// @Param        year_min        query  int     false  "First release year"
// @Param        year_max        query  int     false  "Last release year"
// @Param        price_min       query  number  false  "Minimum price"
// @Param        price_max       query  number  false  "Maximum price"
// @Param        platforms       query  []string false "Platforms (any of)" collectionFormat(multi)
// @Param        genres          query  []string false "Primary genres" collectionFormat(multi)
// @Param        min_acceptance  query  number  false  "Minimum acceptance percentage"
// @Param        min_user_score  query  number  false  "Minimum user score"
// @Success      200  {object}  SectionResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Unknown section"
// @Failure      503  {object}  ErrorResponse "Dataset unavailable"
// @Router       /sections/{section} [get]
func (h *Handler) GetSection(c *gin.Context) {
	section := c.Param("section")
	if _, err := insights.ParseSection(section); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	t := h.table(c)
	if t == nil {
		return
	}
	crit, _, ok := h.criteria(c, t)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	key := cache.Key(t.Version, section, crit)
	if body, hit := h.cache.Get(ctx, key); hit {
		c.Header("X-Cache", "HIT")
		c.Data(http.StatusOK, "application/json; charset=utf-8", body)
		return
	}

	res, err := insights.Build(t, crit, section)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	resp := SectionResponse{Result: res, Charts: render.Charts(res), Criteria: crit}
	if resp.Charts == nil {
		resp.Charts = []render.Chart{}
	}

	c.Header("X-Cache", "MISS")
	c.JSON(http.StatusOK, resp)
	if body, err := json.Marshal(resp); err == nil {
		h.cache.Set(ctx, key, body)
	}
}

// Dashboard godoc
// @Summary      Dashboard page
// @Description  Server-rendered HTML dashboard of one section.
// @Tags         dashboard
// @Produce      html
// @Param        section  path  string  false  "Section id"
// @Success      200
// @Failure      404  {object}  ErrorResponse "Unknown section"
// @Router       /dashboard/{section} [get]
func (h *Handler) Dashboard(c *gin.Context) {
	t := h.table(c)
	if t == nil {
		return
	}
	crit, opts, ok := h.criteria(c, t)
	if !ok {
		return
	}

	res, err := insights.Build(t, crit, c.Param("section"))
	if err != nil {
		if errors.Is(err, insights.ErrUnknownSection) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	page := render.NewPage(res, opts, crit, t.Source, t.Len(), t.Notices, c.Request.URL.Query())
	var buf bytes.Buffer
	if err := page.Write(&buf); err != nil {
		slog.Error("dashboard render failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render dashboard"})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}
