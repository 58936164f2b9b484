package bootstrap

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/obralog/obralog-admin/config"
	"github.com/obralog/obralog-admin/internal/api/http/middleware"
)

func testConfig(redisAddr string) *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Port: "0", AllowedOrigins: []string{"http://localhost:5173"}},
		App:    config.AppConfig{Environment: "test", Version: "test"},
		Store:  config.StoreConfig{Backend: config.StoreMemory, SitesCollection: "obras"},
		Redis:  config.RedisConfig{Addr: redisAddr},
		Layout: config.LayoutConfig{
			DesktopBreakpoint: 1024,
			FlyoutCloseDelay:  300 * time.Millisecond,
			SessionIdle:       time.Minute,
		},
		Directory: config.DirectoryConfig{ResyncCron: "@every 1h", MutationRatePerMin: 100},
	}
}

func call(t *testing.T, app *App, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.HeaderClientID, "it-client")
	rr := httptest.NewRecorder()
	app.Router.ServeHTTP(rr, req)
	return rr
}

func TestBuild_EndToEnd(t *testing.T) {
	SetGinMode("test")
	mr := miniredis.RunT(t)

	app, err := Build(context.Background(), testConfig(mr.Addr()), zap.NewNop())
	require.NoError(t, err)
	defer app.Close()
	app.Start(context.Background())

	assert.Equal(t, 3, app.Scheduler.Len())

	rr := call(t, app, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"redis":"up"`)
	assert.Contains(t, rr.Body.String(), `"store":"disabled"`)

	rr = call(t, app, http.MethodPost, "/api/v1/sites", `{"name":"Residencial Flores"}`)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	// the shell picks the new site up from the refreshed directory
	rr = call(t, app, http.MethodGet, "/api/v1/shell", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var resp struct {
		View struct {
			PrimaryItems []struct {
				Label string `json:"label"`
			} `json:"primary_items"`
		} `json:"view"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	var labels []string
	for _, it := range resp.View.PrimaryItems {
		labels = append(labels, it.Label)
	}
	assert.Contains(t, labels, "Residencial Flores")

	rr = call(t, app, http.MethodPost, "/api/v1/shell/sidebar/toggle", "")
	require.Equal(t, http.StatusOK, rr.Code)
	v, err := mr.Get("obralog:prefs:it-client:sidebar-collapsed")
	require.NoError(t, err)
	assert.Equal(t, "true", v)

	rr = call(t, app, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "obralog_http_requests_total")
	assert.Contains(t, rr.Body.String(), "obralog_site_directory_size 1")
}

func TestBuild_RedisUnavailable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := Build(context.Background(), testConfig(addr), zap.NewNop())
	assert.Error(t, err)
}

func TestBuild_BadResyncSpec(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := testConfig(mr.Addr())
	cfg.Directory.ResyncCron = "not a cron spec"

	_, err := Build(context.Background(), cfg, zap.NewNop())
	assert.Error(t, err)
}

func TestOpenSiteStore_Unknown(t *testing.T) {
	cfg := testConfig("")
	cfg.Store.Backend = "mongo"
	_, err := OpenSiteStore(context.Background(), cfg, zap.NewNop())
	assert.Error(t, err)
}
