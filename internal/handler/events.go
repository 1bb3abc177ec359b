package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/claudioasousa/Espetaria-PRO/internal/notify"

	"github.com/gin-gonic/gin"
)

// Events streams change notifications as Server-Sent Events. Clients open one
// stream and re-fetch a snapshot when its topic fires, instead of polling
// every collection on a timer. The stream ends when the client disconnects.
func Events(notifier *notify.Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		flusher, ok := c.Writer.(http.Flusher)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}

		c.Header("Content-Type", "text/event-stream")
		c.Header("Cache-Control", "no-cache")
		c.Header("Connection", "keep-alive")
		c.Writer.WriteHeader(http.StatusOK)
		flusher.Flush()

		ctx := c.Request.Context()
		events := notifier.Subscribe(ctx)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, open := <-events:
				if !open {
					return
				}
				data, err := json.Marshal(ev)
				if err != nil {
					continue
				}
				fmt.Fprintf(c.Writer, "event: %s\ndata: %s\n\n", ev.Type, data)
				flusher.Flush()
			}
		}
	}
}
