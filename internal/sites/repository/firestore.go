package repository

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/obralog/obralog-admin/internal/sites/domain"
)

const (
	fieldName      = "name"
	fieldCreatedAt = "createdAt"
	fieldUpdatedAt = "updatedAt"
)

// siteDoc is the stored shape of a site document.
type siteDoc struct {
	Name      string    `firestore:"name"`
	CreatedAt time.Time `firestore:"createdAt"`
}

// FirestoreRepository maps sites onto a Firestore collection. The server
// stamps createdAt on create and updatedAt on update.
type FirestoreRepository struct {
	client     *firestore.Client
	collection string
}

func NewFirestoreRepository(client *firestore.Client, collection string) *FirestoreRepository {
	return &FirestoreRepository{client: client, collection: collection}
}

func (r *FirestoreRepository) List(ctx context.Context) ([]domain.ConstructionSite, error) {
	snaps, err := r.client.Collection(r.collection).
		OrderBy(fieldName, firestore.Asc).
		Documents(ctx).
		GetAll()
	if err != nil {
		return nil, fmt.Errorf("list sites: %w", err)
	}

	out := make([]domain.ConstructionSite, 0, len(snaps))
	for _, snap := range snaps {
		s, err := fromSnapshot(snap)
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	return out, nil
}

func (r *FirestoreRepository) Get(ctx context.Context, id string) (*domain.ConstructionSite, error) {
	snap, err := r.client.Collection(r.collection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get site: %w", err)
	}
	return fromSnapshot(snap)
}

func (r *FirestoreRepository) Create(ctx context.Context, name string) (*domain.ConstructionSite, error) {
	n, err := domain.NormalizeName(name)
	if err != nil {
		return nil, err
	}

	ref, _, err := r.client.Collection(r.collection).Add(ctx, map[string]interface{}{
		fieldName:      n,
		fieldCreatedAt: firestore.ServerTimestamp,
	})
	if err != nil {
		return nil, fmt.Errorf("create site: %w", err)
	}

	return r.Get(ctx, ref.ID)
}

func (r *FirestoreRepository) Update(ctx context.Context, id, name string) (*domain.ConstructionSite, error) {
	n, err := domain.NormalizeName(name)
	if err != nil {
		return nil, err
	}

	_, err = r.client.Collection(r.collection).Doc(id).Update(ctx, []firestore.Update{
		{Path: fieldName, Value: n},
		{Path: fieldUpdatedAt, Value: firestore.ServerTimestamp},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update site: %w", err)
	}

	return r.Get(ctx, id)
}

func (r *FirestoreRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.client.Collection(r.collection).Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("delete site: %w", err)
	}
	return nil
}

func fromSnapshot(snap *firestore.DocumentSnapshot) (*domain.ConstructionSite, error) {
	var doc siteDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("decode site %s: %w", snap.Ref.ID, err)
	}
	return siteFromDoc(snap.Ref.ID, doc, time.Now), nil
}

// siteFromDoc fills in createdAt with now when the document has none yet
// (the server timestamp may still be pending on a fresh write).
func siteFromDoc(id string, doc siteDoc, now func() time.Time) *domain.ConstructionSite {
	createdAt := doc.CreatedAt
	if createdAt.IsZero() {
		createdAt = now().UTC()
	}
	return &domain.ConstructionSite{
		ID:        id,
		Name:      doc.Name,
		CreatedAt: createdAt,
	}
}
