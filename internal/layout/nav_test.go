package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obralog/obralog-admin/internal/sites/domain"
)

var testSites = []domain.ConstructionSite{
	{ID: "a1", Name: "Alpha"},
	{ID: "b2", Name: "Beta"},
}

func lookupIn(sites []domain.ConstructionSite) func(string) (domain.ConstructionSite, bool) {
	return func(id string) (domain.ConstructionSite, bool) {
		for _, s := range sites {
			if s.ID == id {
				return s, true
			}
		}
		return domain.ConstructionSite{}, false
	}
}

func activeIDs(items []NavItem) []string {
	var out []string
	for _, it := range items {
		if it.Active {
			out = append(out, it.ID)
		}
	}
	return out
}

func TestPrimaryItems_Order(t *testing.T) {
	items := PrimaryItems(testSites, "/")
	require.Len(t, items, 5)

	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID)
	}
	assert.Equal(t, []string{"dashboard", "obras", "obra:a1", "obra:b2", "settings"}, ids)
	assert.Equal(t, "/obras/a1", items[2].Path)
	assert.Equal(t, KindSite, items[2].Kind)
	assert.Equal(t, []string{"dashboard"}, activeIDs(items))
}

func TestPrimaryItems_SiteActiveWhenNested(t *testing.T) {
	assert.Equal(t, []string{"obra:b2"}, activeIDs(PrimaryItems(testSites, "/obras/b2")))
	assert.Equal(t, []string{"obra:b2"}, activeIDs(PrimaryItems(testSites, "/obras/b2/movements")))
	assert.Equal(t, []string{"obras"}, activeIDs(PrimaryItems(testSites, "/obras")))
	assert.Equal(t, []string{"settings"}, activeIDs(PrimaryItems(testSites, "/perfis")))
}

func TestPrimaryItems_NoSites(t *testing.T) {
	assert.Len(t, PrimaryItems(nil, "/"), 3)
}

func TestSettingsGroups(t *testing.T) {
	groups := SettingsGroups("/categorias")
	require.Len(t, groups, 2)
	assert.Equal(t, "cadastros", groups[0].ID)
	assert.Len(t, groups[0].Items, 3)
	assert.Equal(t, "acesso", groups[1].ID)
	assert.Len(t, groups[1].Items, 2)
	assert.Equal(t, []string{"categorias"}, activeIDs(groups[0].Items))
	assert.Empty(t, activeIDs(groups[1].Items))

	// marking active items does not leak into the shared definitions
	again := SettingsGroups("/")
	assert.Empty(t, activeIDs(again[0].Items))
}

func TestSettingsGroup(t *testing.T) {
	g, ok := SettingsGroup("acesso")
	assert.True(t, ok)
	assert.Equal(t, "Controle de Acesso", g.Label)

	_, ok = SettingsGroup("missing")
	assert.False(t, ok)
}

func TestBreadcrumb(t *testing.T) {
	lookup := lookupIn(testSites)

	assert.Equal(t, []Crumb{{Label: "Dashboard", Path: "/"}}, Breadcrumb("/", lookup))

	assert.Equal(t, []Crumb{
		{Label: "Gestão de Obras", Path: "/obras"},
		{Label: "Alpha", Path: "/obras/a1"},
		{Label: "Estoque", Path: "/obras/a1/inventory"},
	}, Breadcrumb("/obras/a1/inventory", lookup))

	custom := Breadcrumb("/obras/a1/%3Cb%3E%20x", lookup)
	require.Len(t, custom, 3)
	assert.Equal(t, Crumb{Label: "<b> x", Path: "/obras/a1/%3Cb%3E%20x"}, custom[2])

	unknown := Breadcrumb("/obras/zz", lookup)
	require.Len(t, unknown, 2)
	assert.Equal(t, "Obra", unknown[1].Label)

	assert.Equal(t, []Crumb{
		{Label: "Configurações", Path: "/settings"},
		{Label: "Usuários", Path: "/usuarios"},
	}, Breadcrumb("/usuarios", lookup))

	assert.Empty(t, Breadcrumb("/unknown", lookup))
}
