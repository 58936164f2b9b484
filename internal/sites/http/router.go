package http

import "github.com/gin-gonic/gin"

// Register attaches site routes. mutate runs in front of every write.
func (h *Handler) Register(rg *gin.RouterGroup, mutate ...gin.HandlerFunc) {
	sites := rg.Group("/sites")
	sites.GET("", h.list)
	sites.GET("/:id", h.get)

	w := sites.Group("", mutate...)
	w.POST("", h.create)
	w.PATCH("/:id", h.rename)
	w.POST("/:id/delete-request", h.requestDelete)
	w.DELETE("/:id/delete-request", h.cancelDelete)
	w.DELETE("/:id", h.delete)

	dir := rg.Group("/directory")
	dir.GET("", h.directory)
	dir.Group("", mutate...).POST("/refresh", h.refreshDirectory)
}
