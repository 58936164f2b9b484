package uistate

import (
	"context"

	"github.com/obralog/obralog-admin/internal/preferences"
)

// Sidebar is the primary navigation rail state for one client.
//
// Collapsed (icon-only rail) only affects desktop widths and is persisted.
// MobileOpen (off-canvas drawer) only affects sub-desktop widths and lives
// for the session.
//
// Sidebar is not safe for concurrent use; the shell serialises access.
type Sidebar struct {
	store  preferences.Store
	client string

	collapsed  bool
	mobileOpen bool
}

func NewSidebar(store preferences.Store, client string, collapsed bool) *Sidebar {
	return &Sidebar{store: store, client: client, collapsed: collapsed}
}

func (s *Sidebar) Collapsed() bool  { return s.collapsed }
func (s *Sidebar) MobileOpen() bool { return s.mobileOpen }

// Toggle flips the desktop collapse flag and persists it. The in-memory flag
// flips even when the write fails; the error is returned for logging.
func (s *Sidebar) Toggle(ctx context.Context) error {
	s.collapsed = !s.collapsed
	return s.store.Set(ctx, s.client, preferences.SidebarCollapsed, s.collapsed)
}

func (s *Sidebar) ToggleMobile() { s.mobileOpen = !s.mobileOpen }

// CloseMobile handles a backdrop tap.
func (s *Sidebar) CloseMobile() { s.mobileOpen = false }

// OnRouteChange closes the mobile drawer so it never survives a navigation.
func (s *Sidebar) OnRouteChange() { s.mobileOpen = false }
