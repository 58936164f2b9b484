package layout

// Rail widths in CSS pixels.
const (
	PrimaryCollapsedWidth   = 64
	PrimaryExpandedWidth    = 256
	SecondaryCollapsedWidth = 64
	SecondaryExpandedWidth  = 224
	ToggleStripWidth        = 12
)

// Inputs is everything the layout decision depends on.
type Inputs struct {
	Path              string
	Viewport          ViewportClass
	PrimaryCollapsed  bool
	MobileOpen        bool
	SettingsOpen      bool
	SettingsCollapsed bool
}

// Rail describes how one sidebar renders. Overlay rails cover the full
// viewport width and Width is zero.
type Rail struct {
	Visible   bool `json:"visible"`
	Collapsed bool `json:"collapsed"`
	Overlay   bool `json:"overlay"`
	Width     int  `json:"width"`
}

// Main describes the content region.
type Main struct {
	Visible bool `json:"visible"`
	// Placeholder is set when the settings panel is open but the route is
	// not a settings screen; the region shows a prompt instead of the page.
	Placeholder bool `json:"placeholder"`
	OffsetLeft  int  `json:"offset_left"`
}

// Visibility is the layout decision for one render.
type Visibility struct {
	Viewport        ViewportClass `json:"viewport"`
	IsSettingsPath  bool          `json:"is_settings_path"`
	ShowContent     bool          `json:"show_content"`
	ShowToggleStrip bool          `json:"show_toggle_strip"`
	ToggleStrip     int           `json:"toggle_strip_width"`
	Primary         Rail          `json:"primary"`
	Secondary       Rail          `json:"secondary"`
	Main            Main          `json:"main"`
}

// Decide computes the layout from its inputs. Rules are applied in order:
// settings path, content vs placeholder, toggle strip, then the viewport
// split. Below the desktop breakpoint the primary collapse flag is ignored
// and both rails become full-width overlays; a showing secondary rail hides
// the content region.
func Decide(in Inputs) Visibility {
	v := Visibility{Viewport: in.Viewport}

	v.IsSettingsPath = IsSettingsPath(in.Path)
	v.ShowContent = !in.SettingsOpen || v.IsSettingsPath
	v.ShowToggleStrip = in.SettingsOpen || v.IsSettingsPath
	if v.ShowToggleStrip {
		v.ToggleStrip = ToggleStripWidth
	}

	if in.Viewport == Mobile {
		v.Primary = Rail{Visible: in.MobileOpen, Overlay: true}
		// On a settings screen the panel gives way to the screen itself.
		v.Secondary = Rail{Visible: in.SettingsOpen && !v.IsSettingsPath, Overlay: true}
		v.Main = Main{
			Visible:     !v.Secondary.Visible,
			Placeholder: !v.ShowContent,
		}
		return v
	}

	v.Primary = Rail{Visible: true, Collapsed: in.PrimaryCollapsed, Width: PrimaryExpandedWidth}
	if in.PrimaryCollapsed {
		v.Primary.Width = PrimaryCollapsedWidth
	}

	if in.SettingsOpen {
		v.Secondary = Rail{Visible: true, Collapsed: in.SettingsCollapsed, Width: SecondaryExpandedWidth}
		if in.SettingsCollapsed {
			v.Secondary.Width = SecondaryCollapsedWidth
		}
	}

	v.Main = Main{
		Visible:     true,
		Placeholder: !v.ShowContent,
		OffsetLeft:  v.Primary.Width + v.Secondary.Width,
	}
	return v
}
