package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/obralog/obralog-admin/internal/shell"
)

// stream pushes the client's view over Server-Sent Events whenever it
// changes, including changes no request caused: the delayed flyout close
// and site directory refreshes.
func (h *Handler) stream(c *gin.Context) {
	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "streaming unsupported"})
		return
	}

	s := h.session(c)
	views, cancel := s.Subscribe()
	defer cancel()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no") // nginx: disable buffering
	c.Status(http.StatusOK)

	if err := writeEvent(c, "initial", s.View()); err != nil {
		return
	}
	flusher.Flush()

	ctx := c.Request.Context()
	ticker := time.NewTicker(h.keepAlive)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-ticker.C:
			if _, err := fmt.Fprint(c.Writer, ": keep-alive\n\n"); err != nil {
				return
			}
			flusher.Flush()

		case v, ok := <-views:
			if !ok {
				return
			}
			if err := writeEvent(c, "update", v); err != nil {
				h.logger.Debug("shell stream closed", zap.String("client", s.Client()), zap.Error(err))
				return
			}
			flusher.Flush()
		}
	}
}

func writeEvent(c *gin.Context, event string, v shell.View) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(c.Writer, "event: %s\ndata: %s\n\n", event, data)
	return err
}
