package handler

import (
	"log/slog"
	"net/http"
	"time"

	"gamepulse/dashboard/internal/dataset"
	"gamepulse/dashboard/internal/hub"
	"gamepulse/dashboard/pkg/jwt"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// region --- DTOs ---

type LoginInput struct {
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type ReloadResponse struct {
	Source  string   `json:"source"`
	Rows    int      `json:"rows"`
	Version uint64   `json:"version"`
	Notices []string `json:"notices"`
}

type SnapshotResponse struct {
	Source string `json:"source"`
	Rows   int    `json:"rows"`
}

// endregion

// Login godoc
// @Summary      Log in as administrator
// @Description  Exchanges the admin password for a JWT.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input body LoginInput true "Admin credentials"
// @Success      200  {object}  LoginResponse
// @Failure      400  {object}  ErrorResponse "Invalid input"
// @Failure      401  {object}  ErrorResponse "Invalid credentials"
// @Failure      503  {object}  ErrorResponse "Admin access not configured"
// @Router       /auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if h.settings.AdminPasswordHash == "" || h.settings.JWTSecret == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Admin access is not configured"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(h.settings.AdminPasswordHash), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := jwt.GenerateToken("admin", jwt.AdminRole, []byte(h.settings.JWTSecret), h.settings.TokenTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, LoginResponse{Token: token, ExpiresAt: time.Now().Add(h.settings.TokenTTL)})
}

// ReloadDataset godoc
// @Summary      Reload the dataset
// @Description  Loads the dataset again from its sources and notifies event subscribers.
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ReloadResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Admin access required"
// @Failure      500  {object}  ErrorResponse
// @Router       /admin/reload [post]
func (h *Handler) ReloadDataset(c *gin.Context) {
	t, err := h.tables.Reload(c.Request.Context())
	if err != nil {
		slog.Error("dataset reload failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reload dataset: " + err.Error()})
		return
	}
	notices := t.Notices
	if notices == nil {
		notices = []string{}
	}
	c.JSON(http.StatusOK, ReloadResponse{Source: t.Source, Rows: t.Len(), Version: t.Version, Notices: notices})
}

// SaveSnapshot godoc
// @Summary      Snapshot the dataset
// @Description  Writes the current records to the snapshot store so the next start skips parsing.
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      201  {object}  SnapshotResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Admin access required"
// @Failure      409  {object}  ErrorResponse "Nothing to snapshot"
// @Failure      501  {object}  ErrorResponse "Snapshot store not configured"
// @Router       /admin/snapshot [post]
func (h *Handler) SaveSnapshot(c *gin.Context) {
	if h.snapshots == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "Snapshot store is not configured"})
		return
	}
	t := h.table(c)
	if t == nil {
		return
	}
	if t.Empty() {
		c.JSON(http.StatusConflict, gin.H{"error": "The dataset is empty"})
		return
	}

	source := dataset.BaseSource(t.Source)
	if err := h.snapshots.SaveSnapshot(c.Request.Context(), source, t.Records(), t.Columns()); err != nil {
		slog.Error("snapshot failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save snapshot"})
		return
	}
	h.hub.Broadcast(hub.TopicDataset, hub.Event{Type: "snapshot", Payload: SnapshotResponse{Source: source, Rows: t.Len()}})
	c.JSON(http.StatusCreated, SnapshotResponse{Source: source, Rows: t.Len()})
}
