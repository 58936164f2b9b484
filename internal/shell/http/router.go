package http

import "github.com/gin-gonic/gin"

// Register attaches shell and preference routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	s := rg.Group("/shell")
	s.GET("", h.view)
	s.GET("/stream", h.stream)

	s.POST("/navigate", h.navigate)
	s.POST("/resize", h.resize)
	s.POST("/sidebar/toggle", h.toggleSidebar)
	s.POST("/sidebar/mobile/toggle", h.toggleMobile)
	s.POST("/sidebar/mobile/close", h.closeMobile)
	s.POST("/settings/toggle", h.toggleSettings)
	s.POST("/settings/collapse", h.toggleSettingsCollapse)
	s.POST("/settings/groups/:group/toggle", h.toggleGroup)

	s.POST("/hover/item", h.hoverItem)
	s.POST("/hover/item/leave", h.leaveItem)
	s.POST("/hover/group", h.hoverGroup)
	s.POST("/hover/group/leave", h.leaveGroup)
	s.POST("/flyout/enter", h.enterFlyout)
	s.POST("/flyout/leave", h.leaveFlyout)

	rg.GET("/preferences", h.preferences)
}
