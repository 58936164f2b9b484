package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/obralog/obralog-admin/internal/sites/domain"
)

const publicIDPrefix = "obra"

// PostgresRepository stores sites in the construction_sites table
// (see internal/storage/postgres/schema.sql).
type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context) ([]domain.ConstructionSite, error) {
	const q = `
SELECT id, name, created_at
FROM construction_sites
ORDER BY name COLLATE "C" ASC, id ASC;
`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list sites: %w", err)
	}
	defer rows.Close()

	out := make([]domain.ConstructionSite, 0, 16)
	for rows.Next() {
		var s domain.ConstructionSite
		if err := rows.Scan(&s.ID, &s.Name, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan site: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list sites: %w", err)
	}
	return out, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*domain.ConstructionSite, error) {
	const q = `
SELECT id, name, created_at
FROM construction_sites
WHERE id = $1;
`
	var s domain.ConstructionSite
	err := r.db.QueryRowContext(ctx, q, id).Scan(&s.ID, &s.Name, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get site: %w", err)
	}
	return &s, nil
}

// Create inserts a site with a generated public id, retrying on id collisions.
func (r *PostgresRepository) Create(ctx context.Context, name string) (*domain.ConstructionSite, error) {
	n, err := domain.NormalizeName(name)
	if err != nil {
		return nil, err
	}

	for i := 0; i < 5; i++ {
		id, err := domain.NewPublicID(publicIDPrefix)
		if err != nil {
			return nil, err
		}

		const q = `
INSERT INTO construction_sites (id, name)
VALUES ($1, $2)
RETURNING id, name, created_at;
`
		var s domain.ConstructionSite
		err = r.db.QueryRowContext(ctx, q, id, n).Scan(&s.ID, &s.Name, &s.CreatedAt)
		if err == nil {
			return &s, nil
		}

		// unique violation on id → retry
		var pgErr *pq.Error
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			continue
		}
		return nil, fmt.Errorf("create site: %w", err)
	}

	return nil, fmt.Errorf("failed to generate unique site id")
}

func (r *PostgresRepository) Update(ctx context.Context, id, name string) (*domain.ConstructionSite, error) {
	n, err := domain.NormalizeName(name)
	if err != nil {
		return nil, err
	}

	const q = `
UPDATE construction_sites
SET name = $2, updated_at = now()
WHERE id = $1
RETURNING id, name, created_at;
`
	var s domain.ConstructionSite
	err = r.db.QueryRowContext(ctx, q, id, n).Scan(&s.ID, &s.Name, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update site: %w", err)
	}
	return &s, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM construction_sites WHERE id = $1;`
	if _, err := r.db.ExecContext(ctx, q, id); err != nil {
		return fmt.Errorf("delete site: %w", err)
	}
	return nil
}
