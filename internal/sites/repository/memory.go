package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/obralog/obralog-admin/internal/sites/domain"
)

// MemoryRepository keeps sites in process memory. Used for local development
// (STORE_BACKEND=memory) and as the gateway in tests.
type MemoryRepository struct {
	mu    sync.RWMutex
	sites map[string]domain.ConstructionSite
	now   func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		sites: make(map[string]domain.ConstructionSite),
		now:   time.Now,
	}
}

func (r *MemoryRepository) List(ctx context.Context) ([]domain.ConstructionSite, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	out := make([]domain.ConstructionSite, 0, len(r.sites))
	for _, s := range r.sites {
		out = append(out, s)
	}
	r.mu.RUnlock()

	sortByName(out)
	return out, nil
}

func (r *MemoryRepository) Get(ctx context.Context, id string) (*domain.ConstructionSite, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sites[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &s, nil
}

func (r *MemoryRepository) Create(ctx context.Context, name string) (*domain.ConstructionSite, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	n, err := domain.NormalizeName(name)
	if err != nil {
		return nil, err
	}

	s := domain.ConstructionSite{
		ID:        uuid.NewString(),
		Name:      n,
		CreatedAt: r.now().UTC(),
	}

	r.mu.Lock()
	r.sites[s.ID] = s
	r.mu.Unlock()

	return &s, nil
}

func (r *MemoryRepository) Update(ctx context.Context, id, name string) (*domain.ConstructionSite, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	n, err := domain.NormalizeName(name)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sites[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	s.Name = n
	r.sites[id] = s
	return &s, nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	delete(r.sites, id)
	r.mu.Unlock()
	return nil
}

// sortByName matches the document store's ordering: byte-wise ascending name,
// then id for equal names.
func sortByName(sites []domain.ConstructionSite) {
	sort.SliceStable(sites, func(i, j int) bool {
		if sites[i].Name != sites[j].Name {
			return sites[i].Name < sites[j].Name
		}
		return sites[i].ID < sites[j].ID
	})
}
