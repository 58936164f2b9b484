package http

import (
	"time"

	"go.uber.org/zap"

	"github.com/obralog/obralog-admin/internal/flyout"
	"github.com/obralog/obralog-admin/internal/preferences"
	"github.com/obralog/obralog-admin/internal/shell"
)

const defaultKeepAlive = 15 * time.Second

// Handler serves the navigation shell of the calling client.
type Handler struct {
	shells    *shell.Manager
	store     preferences.Store
	logger    *zap.Logger
	keepAlive time.Duration
}

func New(shells *shell.Manager, store preferences.Store, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{shells: shells, store: store, logger: logger, keepAlive: defaultKeepAlive}
}

type navigateReq struct {
	Path string `json:"path" binding:"required"`
}

type resizeReq struct {
	Width int `json:"width" binding:"required,gt=0"`
}

type hoverItemReq struct {
	ItemID string      `json:"item_id" binding:"required"`
	Rect   flyout.Rect `json:"rect"`
}

type hoverGroupReq struct {
	GroupID string      `json:"group_id" binding:"required"`
	Rect    flyout.Rect `json:"rect"`
}
