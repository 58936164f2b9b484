package repository

import (
	"context"

	"github.com/obralog/obralog-admin/internal/sites/domain"
)

// Repository is the persistence gateway for construction sites.
// Implementations surface store errors unchanged and never retry.
type Repository interface {
	// List returns every site ordered by name ascending (empty, never nil).
	List(ctx context.Context) ([]domain.ConstructionSite, error)
	// Get returns domain.ErrNotFound when no site has the given id.
	Get(ctx context.Context, id string) (*domain.ConstructionSite, error)
	Create(ctx context.Context, name string) (*domain.ConstructionSite, error)
	// Update overwrites the name only; a missing id is domain.ErrNotFound.
	Update(ctx context.Context, id, name string) (*domain.ConstructionSite, error)
	// Delete succeeds when the id is already gone.
	Delete(ctx context.Context, id string) error
}
