package api

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/gin-gonic/gin"

	"claudeboard/log"
	"claudeboard/notifications"
)

// heartbeatInterval keeps idle SSE connections alive through proxies.
const heartbeatInterval = 30 * time.Second

// Events handles GET /api/events (SSE). The first message on every
// connection is the connected handshake; after that the stream carries one
// message per change notification until the client disconnects or the
// service shuts down.
func (h *Handlers) Events(c *gin.Context) {
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no") // Disable nginx buffering

	events, unsubscribe := h.notif.Subscribe()
	defer unsubscribe()

	writeSSEEvent(c.Writer, notifications.Event{Type: notifications.TopicConnected})
	c.Writer.Flush()

	log.Debug().Msg("client connected to event stream")

	ticker := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				// Service shut down
				return
			}
			writeSSEEvent(c.Writer, event)
			c.Writer.Flush()

		case <-ticker.C:
			fmt.Fprint(c.Writer, ": heartbeat\n\n")
			c.Writer.Flush()

		case <-c.Request.Context().Done():
			log.Debug().Msg("client disconnected from event stream")
			return
		}
	}
}

func writeSSEEvent(w io.Writer, event notifications.Event) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal event")
		return
	}
	fmt.Fprintf(w, "data: %s\n\n", data)
}
