package handler

import (
	"io"
	"time"

	"gamepulse/dashboard/internal/dataset"
	"gamepulse/dashboard/internal/hub"

	"github.com/gin-gonic/gin"
)

const keepAliveInterval = 25 * time.Second

// DatasetEvent is the payload of a "reloaded" event.
type DatasetEvent struct {
	Source  string `json:"source"`
	Rows    int    `json:"rows"`
	Version uint64 `json:"version"`
}

// PublishReloads broadcasts every dataset reload of the provider to event subscribers.
func (h *Handler) PublishReloads(p *dataset.Provider) {
	p.OnReload(func(t *dataset.Table, version uint64) {
		h.hub.Broadcast(hub.TopicDataset, hub.Event{
			Type:    "reloaded",
			Payload: DatasetEvent{Source: t.Source, Rows: t.Len(), Version: version},
		})
	})
}

// StreamEvents godoc
// @Summary      Dataset events
// @Description  Server-sent events stream announcing dataset reloads and snapshots.
// @Tags         dataset
// @Produce      text/event-stream
// @Success      200
// @Router       /events [get]
func (h *Handler) StreamEvents(c *gin.Context) {
	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	client := make(hub.Client, 8)
	h.hub.Subscribe(hub.TopicDataset, client)
	defer h.hub.Unsubscribe(hub.TopicDataset, client)

	c.SSEvent("hello", gin.H{"version": h.tables.Version()})
	c.Writer.Flush()

	ticker := time.NewTicker(keepAliveInterval)
	defer ticker.Stop()

	c.Stream(func(w io.Writer) bool {
		select {
		case <-c.Request.Context().Done():
			return false
		case msg, ok := <-client:
			if !ok {
				return false
			}
			c.SSEvent("dataset", string(msg))
			return true
		case <-ticker.C:
			c.SSEvent("ping", time.Now().Unix())
			return true
		}
	})
}
