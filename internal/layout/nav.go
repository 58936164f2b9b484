package layout

import (
	"strings"

	"github.com/obralog/obralog-admin/internal/sites/domain"
)

// Item kinds.
const (
	KindLink = "link"
	KindSite = "site"
)

// NavItem is one sidebar entry. Icon names are rendered by the client.
type NavItem struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Icon   string `json:"icon"`
	Path   string `json:"path"`
	Kind   string `json:"kind"`
	Active bool   `json:"active"`
}

// NavGroup is a labelled group of the settings panel.
type NavGroup struct {
	ID    string    `json:"id"`
	Label string    `json:"label"`
	Icon  string    `json:"icon"`
	Items []NavItem `json:"items"`
}

// PrimaryItems builds the primary rail: the fixed entries, one entry per
// cached site, then the pinned settings entry.
func PrimaryItems(sites []domain.ConstructionSite, path string) []NavItem {
	path = CleanPath(path)

	items := make([]NavItem, 0, len(sites)+3)
	items = append(items,
		NavItem{ID: "dashboard", Label: "Dashboard", Icon: "LayoutDashboard", Path: DashboardPath, Kind: KindLink, Active: path == DashboardPath},
		NavItem{ID: "obras", Label: "Gestão de Obras", Icon: "Building2", Path: SitesPath, Kind: KindLink, Active: path == SitesPath},
	)

	for _, s := range sites {
		sp := SitePath(s.ID)
		items = append(items, NavItem{
			ID:     "obra:" + s.ID,
			Label:  s.Name,
			Icon:   "HardHat",
			Path:   sp,
			Kind:   KindSite,
			Active: path == sp || strings.HasPrefix(path, sp+"/"),
		})
	}

	items = append(items, NavItem{
		ID:     "settings",
		Label:  "Configurações",
		Icon:   "Settings",
		Path:   SettingsPath,
		Kind:   KindLink,
		Active: HasSettingsPrefix(path),
	})
	return items
}

var settingsGroups = []NavGroup{
	{
		ID:    "cadastros",
		Label: "Cadastros",
		Icon:  "Package",
		Items: []NavItem{
			{ID: "insumos", Label: "Insumos", Icon: "Boxes", Path: "/insumos", Kind: KindLink},
			{ID: "unidades", Label: "Unidades", Icon: "Ruler", Path: "/unidades", Kind: KindLink},
			{ID: "categorias", Label: "Categorias", Icon: "Tags", Path: "/categorias", Kind: KindLink},
		},
	},
	{
		ID:    "acesso",
		Label: "Controle de Acesso",
		Icon:  "ShieldCheck",
		Items: []NavItem{
			{ID: "perfis", Label: "Perfis de Acesso", Icon: "Shield", Path: "/perfis", Kind: KindLink},
			{ID: "usuarios", Label: "Usuários", Icon: "Users", Path: "/usuarios", Kind: KindLink},
		},
	},
}

// SettingsGroups returns the settings panel groups with active items marked.
func SettingsGroups(path string) []NavGroup {
	path = CleanPath(path)

	out := make([]NavGroup, len(settingsGroups))
	for i, g := range settingsGroups {
		g.Items = append([]NavItem(nil), g.Items...)
		for j := range g.Items {
			p := g.Items[j].Path
			g.Items[j].Active = path == p || strings.HasPrefix(path, p+"/")
		}
		out[i] = g
	}
	return out
}

// SettingsGroup looks up a group by id.
func SettingsGroup(id string) (NavGroup, bool) {
	for _, g := range SettingsGroups("") {
		if g.ID == id {
			return g, true
		}
	}
	return NavGroup{}, false
}

// Crumb is one top-bar breadcrumb segment.
type Crumb struct {
	Label string `json:"label"`
	Path  string `json:"path"`
}

// Breadcrumb builds the top-bar trail for path. lookup resolves a site id to
// its cached record; unknown sites fall back to a generic label.
func Breadcrumb(path string, lookup func(id string) (domain.ConstructionSite, bool)) []Crumb {
	path = CleanPath(path)

	switch {
	case path == DashboardPath:
		return []Crumb{{Label: "Dashboard", Path: DashboardPath}}
	case path == SitesPath:
		return []Crumb{{Label: "Gestão de Obras", Path: SitesPath}}
	}

	if r, ok := ParseSiteRoute(path); ok {
		name := "Obra"
		if lookup != nil {
			if s, found := lookup(r.SiteID); found {
				name = s.Name
			}
		}
		crumbs := []Crumb{
			{Label: "Gestão de Obras", Path: SitesPath},
			{Label: name, Path: SitePath(r.SiteID)},
		}
		if r.Page != "" {
			label, ok := SubPageLabel(r.Page)
			if !ok {
				label = r.Page
			}
			crumbs = append(crumbs, Crumb{Label: label, Path: SitePagePath(r.SiteID, r.Page)})
		}
		return crumbs
	}

	if HasSettingsPrefix(path) {
		crumbs := []Crumb{{Label: "Configurações", Path: SettingsPath}}
		for _, g := range SettingsGroups(path) {
			for _, it := range g.Items {
				if it.Active {
					crumbs = append(crumbs, Crumb{Label: it.Label, Path: it.Path})
				}
			}
		}
		return crumbs
	}

	return []Crumb{}
}
