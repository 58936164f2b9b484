package layout

import (
	"net/url"
	"strings"
)

const (
	DashboardPath = "/"
	SitesPath     = "/obras"
	SettingsPath  = "/settings"
)

// settingsPaths are the routes whose screens belong to the settings panel.
var settingsPaths = []string{
	"/insumos",
	"/unidades",
	"/categorias",
	"/perfis",
	"/usuarios",
	SettingsPath,
}

// CleanPath normalises a route: leading slash, no trailing slash, no query.
func CleanPath(p string) string {
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	p = strings.TrimSpace(p)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if len(p) > 1 {
		p = strings.TrimRight(p, "/")
		if p == "" {
			p = "/"
		}
	}
	return p
}

// IsSettingsPath reports whether path is exactly one of the settings-owned routes.
func IsSettingsPath(path string) bool {
	path = CleanPath(path)
	for _, p := range settingsPaths {
		if path == p {
			return true
		}
	}
	return false
}

// HasSettingsPrefix reports whether path is a settings-owned route or nested
// under one. Matching is per segment: "/perfisx" is not under "/perfis".
func HasSettingsPrefix(path string) bool {
	path = CleanPath(path)
	for _, p := range settingsPaths {
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}

// SiteRoute is a parsed per-site route: /obras/{id} or /obras/{id}/{page}.
type SiteRoute struct {
	SiteID string
	Page   string
}

// ParseSiteRoute extracts the site id and optional sub-page from path.
func ParseSiteRoute(path string) (SiteRoute, bool) {
	path = CleanPath(path)
	rest, ok := strings.CutPrefix(path, SitesPath+"/")
	if !ok || rest == "" {
		return SiteRoute{}, false
	}

	parts := strings.SplitN(rest, "/", 3)
	id, err := url.PathUnescape(parts[0])
	if err != nil || id == "" {
		return SiteRoute{}, false
	}

	r := SiteRoute{SiteID: id}
	if len(parts) > 1 {
		page, err := url.PathUnescape(parts[1])
		if err != nil {
			return SiteRoute{}, false
		}
		r.Page = page
	}
	return r, true
}

// SitePath builds the detail route for a site.
func SitePath(id string) string {
	return SitesPath + "/" + url.PathEscape(id)
}

// SitePagePath builds a per-site sub-page route. Both segments are escaped.
func SitePagePath(id, page string) string {
	return SitePath(id) + "/" + url.PathEscape(page)
}

// Per-site sub-pages.
const (
	PageOverview  = "overview"
	PageInventory = "inventory"
	PageTools     = "tools"
	PageEPI       = "epi"
	PageRented    = "rented"
	PageMovements = "movements"
)

var subPageLabels = map[string]string{
	PageOverview:  "Visão Geral",
	PageInventory: "Estoque",
	PageTools:     "Ferramentas",
	PageEPI:       "EPIs",
	PageRented:    "Alugados",
	PageMovements: "Movimentações",
}

// SubPageLabel returns the top-bar label for a per-site sub-page.
func SubPageLabel(page string) (string, bool) {
	l, ok := subPageLabels[page]
	return l, ok
}
