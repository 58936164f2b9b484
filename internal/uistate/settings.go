package uistate

import (
	"context"

	"github.com/obralog/obralog-admin/internal/layout"
	"github.com/obralog/obralog-admin/internal/preferences"
)

// Settings is the secondary (settings) navigation panel state. Both flags
// are persisted. Not safe for concurrent use.
type Settings struct {
	store  preferences.Store
	client string

	open      bool
	collapsed bool
}

func NewSettings(store preferences.Store, client string, open, collapsed bool) *Settings {
	return &Settings{store: store, client: client, open: open, collapsed: collapsed}
}

func (s *Settings) Open() bool      { return s.open }
func (s *Settings) Collapsed() bool { return s.collapsed }

func (s *Settings) Toggle(ctx context.Context) error {
	return s.SetOpen(ctx, !s.open)
}

func (s *Settings) SetOpen(ctx context.Context, open bool) error {
	s.open = open
	return s.store.Set(ctx, s.client, preferences.SettingsOpen, s.open)
}

func (s *Settings) ToggleCollapse(ctx context.Context) error {
	s.collapsed = !s.collapsed
	return s.store.Set(ctx, s.client, preferences.SettingsCollapsed, s.collapsed)
}

// OnRouteChange opens the panel when path falls under a settings-owned
// prefix. It never closes it. Reports whether the panel was opened.
func (s *Settings) OnRouteChange(ctx context.Context, path string) (bool, error) {
	if s.open || !layout.HasSettingsPrefix(path) {
		return false, nil
	}
	return true, s.SetOpen(ctx, true)
}
