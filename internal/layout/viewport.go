package layout

// ViewportClass is the responsive width class the layout is computed for.
type ViewportClass string

const (
	Mobile  ViewportClass = "mobile"
	Desktop ViewportClass = "desktop"
)

const DefaultDesktopBreakpoint = 1024

// ClassifyViewport maps a viewport width in CSS pixels to its class.
func ClassifyViewport(width, breakpoint int) ViewportClass {
	if breakpoint <= 0 {
		breakpoint = DefaultDesktopBreakpoint
	}
	if width >= breakpoint {
		return Desktop
	}
	return Mobile
}
