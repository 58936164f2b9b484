package shell

import (
	"github.com/obralog/obralog-admin/internal/flyout"
	"github.com/obralog/obralog-admin/internal/layout"
)

// Flags is the raw state behind a view.
type Flags struct {
	SidebarCollapsed  bool `json:"sidebar_collapsed"`
	MobileOpen        bool `json:"mobile_open"`
	SettingsOpen      bool `json:"settings_open"`
	SettingsCollapsed bool `json:"settings_collapsed"`
}

// GroupView is a settings group plus its local expand flag.
type GroupView struct {
	layout.NavGroup
	Open bool `json:"open"`
	// Interactive is false while the panel is icon-only.
	Interactive bool `json:"interactive"`
}

// FlyoutView is the open settings flyout with the items it lists.
type FlyoutView struct {
	flyout.Menu
	Label string           `json:"label"`
	Items []layout.NavItem `json:"items"`
	// Closing is set while the delayed close is armed.
	Closing bool `json:"closing"`
}

// View is everything the browser needs to render the shell.
type View struct {
	Version          uint64            `json:"version"`
	Path             string            `json:"path"`
	Width            int               `json:"width"`
	Flags            Flags             `json:"flags"`
	Layout           layout.Visibility `json:"layout"`
	PrimaryItems     []layout.NavItem  `json:"primary_items"`
	SettingsGroups   []GroupView       `json:"settings_groups"`
	Breadcrumb       []layout.Crumb    `json:"breadcrumb"`
	Tooltip          *flyout.Tooltip   `json:"tooltip"`
	Flyout           *FlyoutView       `json:"flyout"`
	DirectoryLoading bool              `json:"directory_loading"`
}

func (s *Shell) viewLocked() View {
	flags := Flags{
		SidebarCollapsed:  s.sidebar.Collapsed(),
		MobileOpen:        s.sidebar.MobileOpen(),
		SettingsOpen:      s.settings.Open(),
		SettingsCollapsed: s.settings.Collapsed(),
	}

	vis := layout.Decide(layout.Inputs{
		Path:              s.path,
		Viewport:          s.viewport,
		PrimaryCollapsed:  flags.SidebarCollapsed,
		MobileOpen:        flags.MobileOpen,
		SettingsOpen:      flags.SettingsOpen,
		SettingsCollapsed: flags.SettingsCollapsed,
	})

	groups := layout.SettingsGroups(s.path)
	groupViews := make([]GroupView, 0, len(groups))
	for _, g := range groups {
		groupViews = append(groupViews, GroupView{
			NavGroup:    g,
			Open:        s.groupOpen[g.ID],
			Interactive: !flags.SettingsCollapsed,
		})
	}

	tip, menu := s.hover.Snapshot()
	var fv *FlyoutView
	if menu != nil {
		for _, g := range groups {
			if g.ID == menu.ID {
				fv = &FlyoutView{
					Menu:    *menu,
					Label:   g.Label,
					Items:   g.Items,
					Closing: s.hover.ClosePending(),
				}
				break
			}
		}
	}

	return View{
		Version:          s.version,
		Path:             s.path,
		Width:            s.width,
		Flags:            flags,
		Layout:           vis,
		PrimaryItems:     layout.PrimaryItems(s.sites.Sites(), s.path),
		SettingsGroups:   groupViews,
		Breadcrumb:       layout.Breadcrumb(s.path, s.sites.Lookup),
		Tooltip:          tip,
		Flyout:           fv,
		DirectoryLoading: s.sites.Loading(),
	}
}
