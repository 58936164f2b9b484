package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/obralog/obralog-admin/internal/api/http/middleware"
	"github.com/obralog/obralog-admin/internal/sites/domain"
	"github.com/obralog/obralog-admin/internal/sites/screen"
)

// list fetches through the gateway and filters by ?q=. A failed fetch falls
// back to the cached directory instead of interrupting the screen. The
// client's editor state rides along so the browser can disable the submit
// control and keep an open delete confirmation across reloads.
func (h *Handler) list(c *gin.Context) {
	items, err := h.repo.List(c.Request.Context())
	stale := false
	if err != nil {
		h.logger.Warn("list sites failed, serving cached directory",
			zap.String("request_id", middleware.GetRequestID(c.Request.Context())), zap.Error(err))
		items = h.dir.Sites()
		stale = true
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":     true,
		"sites":  screen.Filter(items, c.Query("q")),
		"stale":  stale,
		"editor": h.editors.State(middleware.ClientID(c)),
	})
}

func (h *Handler) get(c *gin.Context) {
	id := c.Param("id")

	site, err := h.repo.Get(c.Request.Context(), id)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "site not found"})
		return
	case err != nil:
		h.logger.Warn("get site failed",
			zap.String("id", id),
			zap.String("request_id", middleware.GetRequestID(c.Request.Context())),
			zap.Error(err))
		if cached, ok := h.dir.Lookup(id); ok {
			c.JSON(http.StatusOK, gin.H{"ok": true, "site": cached, "stale": true})
			return
		}
		c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false, "error": "site store unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "site": site, "stale": false})
}

func (h *Handler) create(c *gin.Context) {
	var req siteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}
	h.submit(c, screen.Form{Name: req.Name}, http.StatusCreated)
}

func (h *Handler) rename(c *gin.Context) {
	var req siteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}
	h.submit(c, screen.Form{Name: req.Name, EditingID: c.Param("id")}, http.StatusOK)
}

func (h *Handler) submit(c *gin.Context, form screen.Form, okStatus int) {
	editor := h.editors.Get(middleware.ClientID(c))

	site, err := editor.Submit(c.Request.Context(), form)
	if err != nil {
		h.writeMutationError(c, err)
		return
	}

	c.JSON(okStatus, gin.H{"ok": true, "site": site, "sites": h.dir.Sites()})
}

func (h *Handler) requestDelete(c *gin.Context) {
	id := c.Param("id")
	editor := h.editors.Get(middleware.ClientID(c))
	editor.RequestDelete(id)

	prompt := deletePrompt{ID: id, Message: screen.MsgConfirmDelete}
	if s, ok := h.dir.Lookup(id); ok {
		prompt.Name = s.Name
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "confirm": prompt, "editor": editor.State()})
}

func (h *Handler) cancelDelete(c *gin.Context) {
	editor := h.editors.Get(middleware.ClientID(c))
	editor.CancelDelete()
	c.JSON(http.StatusOK, gin.H{"ok": true, "editor": editor.State()})
}

func (h *Handler) delete(c *gin.Context) {
	id := c.Param("id")
	editor := h.editors.Get(middleware.ClientID(c))

	if err := editor.ConfirmDelete(c.Request.Context(), id); err != nil {
		h.writeMutationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "sites": h.dir.Sites()})
}

func (h *Handler) directory(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"ok":      true,
		"sites":   h.dir.Sites(),
		"loading": h.dir.Loading(),
	})
}

// refreshDirectory re-fetches the shared list. Failures keep the cached list.
func (h *Handler) refreshDirectory(c *gin.Context) {
	err := h.dir.Refresh(c.Request.Context())
	refreshed := err == nil
	if err != nil {
		h.logger.Debug("directory refresh failed",
			zap.String("request_id", middleware.GetRequestID(c.Request.Context())), zap.Error(err))
	}
	c.JSON(http.StatusOK, gin.H{
		"ok":        true,
		"refreshed": refreshed,
		"sites":     h.dir.Sites(),
		"loading":   h.dir.Loading(),
	})
}

func (h *Handler) writeMutationError(c *gin.Context, err error) {
	var (
		ve *screen.ValidationError
		me *screen.MutationError
	)
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": ve.Message, "field": "name"})
	case errors.Is(err, screen.ErrBusy):
		c.JSON(http.StatusConflict, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, screen.ErrNotConfirmed):
		c.JSON(http.StatusPreconditionRequired, gin.H{"ok": false, "error": err.Error()})
	case errors.As(err, &me) && errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "site not found", "notice": me.Notice})
	case errors.As(err, &me):
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "mutation failed", "notice": me.Notice})
	default:
		h.logger.Error("unexpected site mutation error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "internal error"})
	}
}
