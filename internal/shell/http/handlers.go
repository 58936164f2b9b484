package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/obralog/obralog-admin/internal/api/http/middleware"
	"github.com/obralog/obralog-admin/internal/preferences"
	"github.com/obralog/obralog-admin/internal/shell"
)

func (h *Handler) session(c *gin.Context) *shell.Shell {
	return h.shells.Get(c.Request.Context(), middleware.ClientID(c))
}

func (h *Handler) writeView(c *gin.Context, s *shell.Shell) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "view": s.View()})
}

// persisted writes the view after a flag change. A failed preference write
// is logged and the in-memory state still applies.
func (h *Handler) persisted(c *gin.Context, s *shell.Shell, err error) {
	if err != nil {
		h.logger.Warn("failed to persist ui preference",
			zap.String("client", s.Client()), zap.Error(err))
	}
	h.writeView(c, s)
}

func (h *Handler) view(c *gin.Context) {
	h.writeView(c, h.session(c))
}

func (h *Handler) navigate(c *gin.Context) {
	var req navigateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}
	s := h.session(c)
	h.persisted(c, s, s.Navigate(c.Request.Context(), req.Path))
}

func (h *Handler) resize(c *gin.Context) {
	var req resizeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}
	s := h.session(c)
	s.Resize(req.Width)
	h.writeView(c, s)
}

func (h *Handler) toggleSidebar(c *gin.Context) {
	s := h.session(c)
	h.persisted(c, s, s.ToggleSidebar(c.Request.Context()))
}

func (h *Handler) toggleMobile(c *gin.Context) {
	s := h.session(c)
	s.ToggleMobile()
	h.writeView(c, s)
}

func (h *Handler) closeMobile(c *gin.Context) {
	s := h.session(c)
	s.CloseMobile()
	h.writeView(c, s)
}

func (h *Handler) toggleSettings(c *gin.Context) {
	s := h.session(c)
	h.persisted(c, s, s.ToggleSettings(c.Request.Context()))
}

func (h *Handler) toggleSettingsCollapse(c *gin.Context) {
	s := h.session(c)
	h.persisted(c, s, s.ToggleSettingsCollapse(c.Request.Context()))
}

func (h *Handler) toggleGroup(c *gin.Context) {
	s := h.session(c)
	err := s.ToggleGroup(c.Param("group"))
	switch {
	case errors.Is(err, shell.ErrUnknownGroup):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, shell.ErrPanelCollapsed):
		c.JSON(http.StatusConflict, gin.H{"ok": false, "error": err.Error()})
	default:
		h.writeView(c, s)
	}
}

func (h *Handler) hoverItem(c *gin.Context) {
	var req hoverItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}
	s := h.session(c)
	shown, err := s.HoverItem(req.ItemID, req.Rect)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "shown": shown, "view": s.View()})
}

func (h *Handler) leaveItem(c *gin.Context) {
	s := h.session(c)
	s.LeaveItem()
	h.writeView(c, s)
}

func (h *Handler) hoverGroup(c *gin.Context) {
	var req hoverGroupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}
	s := h.session(c)
	shown, err := s.HoverGroup(req.GroupID, req.Rect)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "shown": shown, "view": s.View()})
}

func (h *Handler) leaveGroup(c *gin.Context) {
	s := h.session(c)
	s.LeaveGroup()
	h.writeView(c, s)
}

func (h *Handler) enterFlyout(c *gin.Context) {
	s := h.session(c)
	s.EnterFlyout()
	h.writeView(c, s)
}

func (h *Handler) leaveFlyout(c *gin.Context) {
	s := h.session(c)
	s.LeaveFlyout()
	h.writeView(c, s)
}

// preferences returns the persisted flags. An unreachable store reads as
// all-false, the same as a fresh browser.
func (h *Handler) preferences(c *gin.Context) {
	client := middleware.ClientID(c)
	flags, err := preferences.Load(c.Request.Context(), h.store, client)
	if err != nil {
		h.logger.Warn("failed to load ui preferences", zap.String("client", client), zap.Error(err))
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "preferences": flags})
}
