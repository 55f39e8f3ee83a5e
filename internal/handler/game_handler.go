package handler

import (
	"cmp"
	"net/http"
	"slices"
	"strings"

	"gamepulse/dashboard/internal/filters"
	"gamepulse/dashboard/internal/models"

	"github.com/gin-gonic/gin"
)

// region --- DTOs ---

type GameResponse struct {
	AppID           int64    `json:"app_id,omitempty"`
	Name            string   `json:"name"`
	ReleaseYear     *int     `json:"release_year"`
	Price           *float64 `json:"price"`
	IsFree          bool     `json:"is_free"`
	PrimaryGenre    string   `json:"primary_genre"`
	Genres          []string `json:"genres"`
	Publisher       string   `json:"publisher,omitempty"`
	UserScore       *float64 `json:"user_score"`
	Acceptance      *float64 `json:"acceptance"`
	OwnersMid       *int64   `json:"owners_mid"`
	Recommendations int64    `json:"recommendations"`
	Platforms       []string `json:"platforms"`
}

func newGameResponse(g models.GameRecord) GameResponse {
	resp := GameResponse{
		AppID:           g.AppID,
		Name:            g.Name,
		ReleaseYear:     g.ReleaseYear,
		Price:           g.Price,
		IsFree:          g.IsFree,
		PrimaryGenre:    g.PrimaryGenre,
		Genres:          g.Genres,
		Publisher:       g.Publisher,
		UserScore:       g.UserScore,
		Acceptance:      g.Acceptance,
		Recommendations: g.Recommendations,
		Platforms:       []string{},
	}
	if resp.Genres == nil {
		resp.Genres = []string{}
	}
	if g.Owners != nil {
		mid := g.Owners.Mid
		resp.OwnersMid = &mid
	}
	for _, p := range models.Platforms {
		if g.Supports(p) {
			resp.Platforms = append(resp.Platforms, p)
		}
	}
	return resp
}

// PaginatedGameResponse defines the structure for a paginated list of games.
type PaginatedGameResponse struct {
	Data []GameResponse `json:"data"`
	Meta PaginationMeta `json:"meta"`
}

// endregion

var gameSorts = map[string]func(a, b models.GameRecord) int{
	"name": func(a, b models.GameRecord) int {
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	},
	"year":   func(a, b models.GameRecord) int { return cmpPtr(a.ReleaseYear, b.ReleaseYear) },
	"price":  func(a, b models.GameRecord) int { return cmpPtr(a.Price, b.Price) },
	"score":  func(a, b models.GameRecord) int { return cmpPtr(a.UserScore, b.UserScore) },
	"owners": func(a, b models.GameRecord) int { return cmp.Compare(ownersMid(a), ownersMid(b)) },
}

// cmpPtr orders missing values first.
func cmpPtr[T cmp.Ordered](a, b *T) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	return cmp.Compare(*a, *b)
}

func ownersMid(g models.GameRecord) int64 {
	if g.Owners == nil {
		return 0
	}
	return g.Owners.Mid
}

// GetGames godoc
// @Summary      List filtered games
// @Description  Returns a paginated list of the games matching the filters, optionally searched by name and sorted.
// @Tags         games
// @Produce      json
// @Param        q               query  string  false  "Search term for game name"
// @Param        sort            query  string  false  "Sort key" Enums(name, year, price, score, owners) default(owners)
// @Param        order           query  string  false  "Sort order" Enums(asc, desc) default(desc)
// @Param        page            query  int     false  "Page number" default(1)
// @Param        limit           query  int     false  "Items per page" default(10)
// @Param        year_min        query  int     false  "First release year"
// @Param        year_max        query  int     false  "Last release year"
// @Param        price_min       query  number  false  "Minimum price"
// @Param        price_max       query  number  false  "Maximum price"
// @Param        platforms       query  []string false "Platforms (any of)" collectionFormat(multi)
// @Param        genres          query  []string false "Primary genres" collectionFormat(multi)
// @Param        min_acceptance  query  number  false  "Minimum acceptance percentage"
// @Param        min_user_score  query  number  false  "Minimum user score"
// @Success      200  {object}  PaginatedGameResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      503  {object}  ErrorResponse "Dataset unavailable"
// @Router       /games [get]
func (h *Handler) GetGames(c *gin.Context) {
	t := h.table(c)
	if t == nil {
		return
	}
	crit, _, ok := h.criteria(c, t)
	if !ok {
		return
	}
	page, limit := pageParams(c)

	sortKey := c.DefaultQuery("sort", "owners")
	compare, ok := gameSorts[sortKey]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown sort key: " + sortKey})
		return
	}

	rows := filters.Apply(t, crit)
	if search := strings.ToLower(strings.TrimSpace(c.Query("q"))); search != "" {
		rows = slices.DeleteFunc(rows, func(g models.GameRecord) bool {
			return !strings.Contains(strings.ToLower(g.Name), search)
		})
	}

	desc := c.DefaultQuery("order", "desc") != "asc"
	slices.SortStableFunc(rows, func(a, b models.GameRecord) int {
		if desc {
			return compare(b, a)
		}
		return compare(a, b)
	})

	pageRows := Paginate(rows, page, limit)
	response := make([]GameResponse, len(pageRows.Data))
	for i, g := range pageRows.Data {
		response[i] = newGameResponse(g)
	}
	c.JSON(http.StatusOK, NewPaginatedResponse(response, pageRows.Meta.TotalItems, page, limit))
}
