package bootstrap

import (
	"context"
	"errors"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"

	"github.com/obralog/obralog-admin/config"
	httpapi "github.com/obralog/obralog-admin/internal/api/http"
	"github.com/obralog/obralog-admin/internal/auth"
	"github.com/obralog/obralog-admin/internal/sites/repository"
	"github.com/obralog/obralog-admin/internal/storage/postgres"
)

// SiteStore is the selected persistence gateway plus what /health and
// shutdown need from it.
type SiteStore struct {
	Repo     repository.Repository
	Pinger   httpapi.Pinger
	Firebase *firebase.App
	Close    func() error
}

// OpenSiteStore builds the backend named by STORE_BACKEND.
func OpenSiteStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*SiteStore, error) {
	switch cfg.Store.Backend {
	case config.StoreFirestore:
		app, err := auth.InitializeFirebase(ctx, &cfg.Firebase)
		if err != nil {
			return nil, err
		}
		client, err := app.Firestore(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get Firestore client: %w", err)
		}
		col := cfg.Store.SitesCollection
		logger.Info("using firestore site store", zap.String("collection", col))
		return &SiteStore{
			Repo: repository.NewFirestoreRepository(client, col),
			Pinger: httpapi.PingFunc(func(ctx context.Context) error {
				it := client.Collection(col).Limit(1).Documents(ctx)
				defer it.Stop()
				_, err := it.Next()
				if errors.Is(err, iterator.Done) {
					return nil
				}
				return err
			}),
			Firebase: app,
			Close:    client.Close,
		}, nil

	case config.StorePostgres:
		db, err := postgres.NewConnection(ctx, &cfg.Database)
		if err != nil {
			return nil, err
		}
		if err := postgres.EnsureSchema(ctx, db); err != nil {
			db.Close()
			return nil, err
		}
		logger.Info("using postgres site store", zap.String("host", cfg.Database.Host))
		return &SiteStore{
			Repo:   repository.NewPostgresRepository(db),
			Pinger: httpapi.PingFunc(db.PingContext),
			Close:  db.Close,
		}, nil

	case config.StoreMemory:
		logger.Warn("using in-memory site store; data is lost on restart")
		return &SiteStore{
			Repo:  repository.NewMemoryRepository(),
			Close: func() error { return nil },
		}, nil
	}
	return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
}
