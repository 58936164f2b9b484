package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/obralog/obralog-admin/config"
	"github.com/obralog/obralog-admin/internal/preferences"
	storageredis "github.com/obralog/obralog-admin/internal/storage/redis"
)

// RunPrefs prints the persisted UI flags of one browser: worker prefs <client-id>
func RunPrefs(args []string) error {
	if len(args) < 1 {
		return errors.New("usage: prefs <client-id>")
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx := context.Background()
	rdb, err := storageredis.NewClient(ctx, &cfg.Redis)
	if err != nil {
		return err
	}
	defer rdb.Close()

	flags, err := preferences.Load(ctx, preferences.NewRedisStore(rdb, cfg.Redis.PreferencesTTL), args[0])
	if err != nil {
		return err
	}
	return printFlags(os.Stdout, args[0], flags)
}

func printFlags(w io.Writer, client string, f preferences.Flags) error {
	_, err := fmt.Fprintf(w, "client=%s %s=%t %s=%t %s=%t\n", client,
		preferences.SidebarCollapsed, f.SidebarCollapsed,
		preferences.SettingsOpen, f.SettingsOpen,
		preferences.SettingsCollapsed, f.SettingsCollapsed,
	)
	return err
}
