package shell

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/obralog/obralog-admin/internal/flyout"
	"github.com/obralog/obralog-admin/internal/layout"
	"github.com/obralog/obralog-admin/internal/preferences"
	"github.com/obralog/obralog-admin/internal/sites/domain"
	"github.com/obralog/obralog-admin/internal/uistate"
)

var (
	ErrUnknownItem  = errors.New("unknown navigation item")
	ErrUnknownGroup = errors.New("unknown settings group")
	// ErrPanelCollapsed is returned when a group is toggled while the
	// settings panel is icon-only.
	ErrPanelCollapsed = errors.New("settings panel is collapsed")
)

// SiteSource is the read side of the site directory.
type SiteSource interface {
	Sites() []domain.ConstructionSite
	Lookup(id string) (domain.ConstructionSite, bool)
	Loading() bool
}

type Options struct {
	DesktopBreakpoint int
	CloseDelay        time.Duration
	Clock             flyout.Clock
	Logger            *zap.Logger
}

// Shell is the navigation/layout state for one client. All mutations are
// serialised under mu; the flyout close timer fires on its own goroutine
// and re-enters through notify.
type Shell struct {
	client string
	sites  SiteSource
	opts   Options
	logger *zap.Logger
	hover  *flyout.Controller

	mu        sync.Mutex
	sidebar   *uistate.Sidebar
	settings  *uistate.Settings
	path      string
	width     int
	viewport  layout.ViewportClass
	groupOpen map[string]bool
	version   uint64
	subs      map[int]chan View
	nextSub   int
	lastSeen  time.Time
}

// New builds a shell for client, reading its persisted flags once. A failed
// read is logged and the flags default to false.
func New(ctx context.Context, client string, store preferences.Store, sites SiteSource, opts Options) *Shell {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.DesktopBreakpoint <= 0 {
		opts.DesktopBreakpoint = layout.DefaultDesktopBreakpoint
	}
	logger := opts.Logger.With(zap.String("client", client))

	flags, err := preferences.Load(ctx, store, client)
	if err != nil {
		logger.Warn("failed to load ui preferences, using defaults", zap.Error(err))
	}

	s := &Shell{
		client:    client,
		sites:     sites,
		opts:      opts,
		logger:    logger,
		hover:     flyout.NewController(opts.Clock, opts.CloseDelay),
		sidebar:   uistate.NewSidebar(store, client, flags.SidebarCollapsed),
		settings:  uistate.NewSettings(store, client, flags.SettingsOpen, flags.SettingsCollapsed),
		path:      layout.DashboardPath,
		viewport:  layout.Desktop,
		groupOpen: make(map[string]bool),
		subs:      make(map[int]chan View),
		lastSeen:  time.Now(),
	}
	for _, g := range layout.SettingsGroups("") {
		s.groupOpen[g.ID] = true
	}
	s.hover.OnExpire(s.notify)
	return s
}

func (s *Shell) Client() string { return s.client }

// Navigate applies a route change: the mobile drawer closes, the settings
// panel auto-opens on settings-owned routes and hover state is dropped.
// A failed preference write is returned but the view is still updated.
func (s *Shell) Navigate(ctx context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.path = layout.CleanPath(path)
	s.sidebar.OnRouteChange()
	opened, err := s.settings.OnRouteChange(ctx, s.path)
	if opened {
		s.logger.Debug("settings panel auto-opened", zap.String("path", s.path))
	}
	s.hover.Reset()
	s.changedLocked()
	return err
}

// Resize recomputes the viewport class. Leaving desktop drops hover state.
func (s *Shell) Resize(width int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.width = width
	vc := layout.ClassifyViewport(width, s.opts.DesktopBreakpoint)
	if vc != s.viewport && vc == layout.Mobile {
		s.hover.Reset()
	}
	s.viewport = vc
	s.changedLocked()
}

func (s *Shell) ToggleSidebar(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.sidebar.Toggle(ctx)
	if !s.sidebar.Collapsed() {
		s.hover.HideTooltip()
	}
	s.changedLocked()
	return err
}

func (s *Shell) ToggleMobile() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sidebar.ToggleMobile()
	s.changedLocked()
}

func (s *Shell) CloseMobile() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sidebar.CloseMobile()
	s.changedLocked()
}

func (s *Shell) ToggleSettings(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.settings.Toggle(ctx)
	if !s.settings.Open() {
		s.hover.CloseMenu()
	}
	s.changedLocked()
	return err
}

func (s *Shell) ToggleSettingsCollapse(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.settings.ToggleCollapse(ctx)
	if !s.settings.Collapsed() {
		s.hover.CloseMenu()
	}
	s.changedLocked()
	return err
}

// ToggleGroup expands or collapses a settings group's item list. Only
// allowed while the panel shows labels.
func (s *Shell) ToggleGroup(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := layout.SettingsGroup(id); !ok {
		return ErrUnknownGroup
	}
	if s.settings.Collapsed() {
		return ErrPanelCollapsed
	}
	s.groupOpen[id] = !s.groupOpen[id]
	s.changedLocked()
	return nil
}

// HoverItem raises the tooltip for a primary rail item. It only applies on
// desktop with the rail collapsed; otherwise it reports false.
func (s *Shell) HoverItem(itemID string, r flyout.Rect) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var label string
	for _, it := range layout.PrimaryItems(s.sites.Sites(), s.path) {
		if it.ID == itemID {
			label = it.Label
			break
		}
	}
	if label == "" {
		return false, ErrUnknownItem
	}
	if s.viewport != layout.Desktop || !s.sidebar.Collapsed() {
		return false, nil
	}

	s.hover.ShowTooltip(label, r)
	s.changedLocked()
	return true, nil
}

func (s *Shell) LeaveItem() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hover.HideTooltip()
	s.changedLocked()
}

// HoverGroup opens the flyout for a settings group. It only applies on
// desktop with the settings panel open and collapsed.
func (s *Shell) HoverGroup(groupID string, r flyout.Rect) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := layout.SettingsGroup(groupID); !ok {
		return false, ErrUnknownGroup
	}
	if s.viewport != layout.Desktop || !s.settings.Open() || !s.settings.Collapsed() {
		return false, nil
	}

	s.hover.OpenMenu(groupID, r)
	s.changedLocked()
	return true, nil
}

// LeaveGroup arms the delayed flyout close.
func (s *Shell) LeaveGroup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hover.ScheduleClose()
	s.changedLocked()
}

// EnterFlyout keeps the flyout open while the pointer is over it.
func (s *Shell) EnterFlyout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hover.KeepOpen()
	s.changedLocked()
}

func (s *Shell) LeaveFlyout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hover.ScheduleClose()
	s.changedLocked()
}

// View returns the current view model.
func (s *Shell) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = time.Now()
	return s.viewLocked()
}

// Subscribe streams views after every change. Slow readers only see the
// latest view. Call cancel to unsubscribe.
func (s *Shell) Subscribe() (<-chan View, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	ch := make(chan View, 1)
	s.subs[id] = ch

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if c, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(c)
		}
	}
	return ch, cancel
}

func (s *Shell) notify() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.changedLocked()
}

// Refreshed republishes the view after the shared site directory changed.
func (s *Shell) Refreshed() {
	s.notify()
}

func (s *Shell) touch() {
	s.mu.Lock()
	s.lastSeen = time.Now()
	s.mu.Unlock()
}

// idleBefore reports whether the shell has no subscribers and was last
// touched before cutoff.
func (s *Shell) idleBefore(cutoff time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs) == 0 && s.lastSeen.Before(cutoff)
}

func (s *Shell) changedLocked() {
	s.version++
	s.lastSeen = time.Now()
	if len(s.subs) == 0 {
		return
	}
	v := s.viewLocked()
	for _, ch := range s.subs {
		select {
		case <-ch:
		default:
		}
		ch <- v
	}
}
