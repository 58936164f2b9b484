package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanPath(t *testing.T) {
	cases := map[string]string{
		"":                  "/",
		"/":                 "/",
		"///":               "/",
		"obras":             "/obras",
		"/obras/":           "/obras",
		"/insumos?page=2":   "/insumos",
		"/obras/abc#resumo": "/obras/abc",
	}
	for in, want := range cases {
		assert.Equal(t, want, CleanPath(in), in)
	}
}

func TestIsSettingsPath(t *testing.T) {
	for _, p := range []string{"/insumos", "/unidades", "/categorias", "/perfis", "/usuarios", "/settings", "/perfis/"} {
		assert.True(t, IsSettingsPath(p), p)
	}
	for _, p := range []string{"/", "/obras", "/perfis/novo", "/insumosx"} {
		assert.False(t, IsSettingsPath(p), p)
	}
}

func TestHasSettingsPrefix(t *testing.T) {
	for _, p := range []string{"/insumos", "/perfis/novo", "/usuarios/42/editar", "/settings"} {
		assert.True(t, HasSettingsPrefix(p), p)
	}
	for _, p := range []string{"/", "/obras/abc", "/perfisx", "/config"} {
		assert.False(t, HasSettingsPrefix(p), p)
	}
}

func TestParseSiteRoute(t *testing.T) {
	r, ok := ParseSiteRoute("/obras/abc123")
	assert.True(t, ok)
	assert.Equal(t, SiteRoute{SiteID: "abc123"}, r)

	r, ok = ParseSiteRoute("/obras/abc123/inventory")
	assert.True(t, ok)
	assert.Equal(t, SiteRoute{SiteID: "abc123", Page: "inventory"}, r)

	r, ok = ParseSiteRoute("/obras/obra%20um/tools/")
	assert.True(t, ok)
	assert.Equal(t, SiteRoute{SiteID: "obra um", Page: "tools"}, r)

	for _, p := range []string{"/obras", "/obras/", "/", "/insumos/abc"} {
		_, ok := ParseSiteRoute(p)
		assert.False(t, ok, p)
	}
}

func TestSitePathRoundTrip(t *testing.T) {
	r, ok := ParseSiteRoute(SitePagePath("obra um", PageEPI))
	assert.True(t, ok)
	assert.Equal(t, "obra um", r.SiteID)
	assert.Equal(t, PageEPI, r.Page)
}

func TestSitePagePathEscapesPage(t *testing.T) {
	p := SitePagePath("a1", "<b>x y")
	assert.Equal(t, "/obras/a1/%3Cb%3Ex%20y", p)

	r, ok := ParseSiteRoute(p)
	assert.True(t, ok)
	assert.Equal(t, "<b>x y", r.Page)

	_, ok = ParseSiteRoute("/obras/a1/%zz")
	assert.False(t, ok, "malformed escape")
}

func TestSubPageLabel(t *testing.T) {
	for _, page := range []string{PageOverview, PageInventory, PageTools, PageEPI, PageRented, PageMovements} {
		label, ok := SubPageLabel(page)
		assert.True(t, ok, page)
		assert.NotEmpty(t, label, page)
	}
	_, ok := SubPageLabel("reports")
	assert.False(t, ok)
}

func TestClassifyViewport(t *testing.T) {
	assert.Equal(t, Mobile, ClassifyViewport(375, 1024))
	assert.Equal(t, Mobile, ClassifyViewport(1023, 1024))
	assert.Equal(t, Desktop, ClassifyViewport(1024, 1024))
	assert.Equal(t, Desktop, ClassifyViewport(1440, 0))
}
