package bootstrap

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	httpapi "github.com/obralog/obralog-admin/internal/api/http"
	"github.com/obralog/obralog-admin/internal/api/http/middleware"
	authmw "github.com/obralog/obralog-admin/internal/auth/middleware"
	shellhttp "github.com/obralog/obralog-admin/internal/shell/http"
	siteshttp "github.com/obralog/obralog-admin/internal/sites/http"
)

type RouterDeps struct {
	ServiceName    string
	Version        string
	AllowedOrigins []string
	SecureCookies  bool
	Logger         *zap.Logger

	Health      map[string]httpapi.Pinger
	Metrics     *middleware.Metrics
	Gatherer    prometheus.Gatherer
	RateLimiter *middleware.RateLimiter
	// Verifier enables Firebase ID-token checks on /api/v1 when set.
	Verifier authmw.TokenVerifier

	Sites *siteshttp.Handler
	Shell *shellhttp.Handler
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID(dep.Logger))
	if dep.Metrics != nil {
		r.Use(dep.Metrics.Middleware())
	}
	if len(dep.AllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     dep.AllowedOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.HeaderClientID, middleware.HeaderRequestID},
			ExposeHeaders:    []string{middleware.HeaderRequestID},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.Health)
	healthHandler.RegisterRoutes(r)
	if dep.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(dep.Gatherer, promhttp.HandlerOpts{})))
	}

	api := r.Group("/api/v1")
	if dep.Verifier != nil {
		api.Use(authmw.FirebaseAuthMiddleware(dep.Verifier))
	}
	api.Use(middleware.ClientIDMiddleware(dep.SecureCookies))

	var mutate []gin.HandlerFunc
	if dep.RateLimiter != nil {
		mutate = append(mutate, dep.RateLimiter.Middleware())
	}

	dep.Sites.Register(api, mutate...)
	dep.Shell.Register(api)

	return r
}
