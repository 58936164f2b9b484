package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/obralog/obralog-admin/config"
	"github.com/obralog/obralog-admin/internal/bootstrap"
	"github.com/obralog/obralog-admin/internal/sites/domain"
	"github.com/obralog/obralog-admin/internal/sites/screen"
	"github.com/obralog/obralog-admin/internal/storage/postgres"
)

// RunSites prints the sites of the configured store as JSON, optionally
// filtered: worker sites [query]
func RunSites(args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx := context.Background()
	store, err := bootstrap.OpenSiteStore(ctx, cfg, zap.NewNop())
	if err != nil {
		return err
	}
	defer store.Close()

	sites, err := store.Repo.List(ctx)
	if err != nil {
		return err
	}

	query := ""
	if len(args) > 0 {
		query = args[0]
	}
	return printSites(os.Stdout, screen.Filter(sites, query))
}

func printSites(w io.Writer, sites []domain.ConstructionSite) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(sites)
}

// RunSchema applies the postgres schema of the site store.
func RunSchema(args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.Store.Backend != config.StorePostgres {
		return fmt.Errorf("STORE_BACKEND is %q; schema only applies to %q", cfg.Store.Backend, config.StorePostgres)
	}

	ctx := context.Background()
	db, err := postgres.NewConnection(ctx, &cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := postgres.EnsureSchema(ctx, db); err != nil {
		return err
	}
	fmt.Println("schema applied")
	return nil
}
