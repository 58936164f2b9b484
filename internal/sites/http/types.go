package http

import (
	"context"

	"go.uber.org/zap"

	"github.com/obralog/obralog-admin/internal/sites/domain"
	"github.com/obralog/obralog-admin/internal/sites/repository"
	"github.com/obralog/obralog-admin/internal/sites/screen"
)

// Directory is the shared site cache as seen by the handlers.
type Directory interface {
	Sites() []domain.ConstructionSite
	Lookup(id string) (domain.ConstructionSite, bool)
	Loading() bool
	Refresh(ctx context.Context) error
}

// Handler bundles the dependencies for site endpoints.
type Handler struct {
	repo    repository.Repository
	dir     Directory
	editors *screen.Editors
	logger  *zap.Logger
}

func New(repo repository.Repository, dir Directory, editors *screen.Editors, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{repo: repo, dir: dir, editors: editors, logger: logger}
}

type siteReq struct {
	Name string `json:"name"`
}

type deletePrompt struct {
	ID      string `json:"id"`
	Name    string `json:"name,omitempty"`
	Message string `json:"message"`
}
