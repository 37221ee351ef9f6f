package http

import (
	"io"

	"github.com/gin-gonic/gin"

	"github.com/autolot/car-inventory-service/internal/core/ports"
)

type EventHandler struct {
	hub    ports.EventHub
	logger ports.LoggerPort
}

func NewEventHandler(hub ports.EventHub, logger ports.LoggerPort) *EventHandler {
	return &EventHandler{
		hub:    hub,
		logger: logger,
	}
}

// @Summary Realtime inventory change stream
// @Description Server-sent events named carAdded, carUpdated and carDeleted
// @Tags events
// @Produce text/event-stream
// @Router /events [get]
func (h *EventHandler) Stream(c *gin.Context) {
	id, events := h.hub.Subscribe()
	defer h.hub.Unsubscribe(id)

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case event, ok := <-events:
			if !ok {
				return false
			}
			// Deletions carry only the id, like the other mutations'
			// payloads carry the full snapshot.
			if event.Car != nil {
				c.SSEvent(string(event.Kind), event.Car)
			} else {
				c.SSEvent(string(event.Kind), event.CarID)
			}
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
