package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/obralog/obralog-admin/config"
	httpapi "github.com/obralog/obralog-admin/internal/api/http"
	"github.com/obralog/obralog-admin/internal/api/http/middleware"
	"github.com/obralog/obralog-admin/internal/auth"
	authmw "github.com/obralog/obralog-admin/internal/auth/middleware"
	"github.com/obralog/obralog-admin/internal/cronjob"
	"github.com/obralog/obralog-admin/internal/directory"
	"github.com/obralog/obralog-admin/internal/flyout"
	"github.com/obralog/obralog-admin/internal/preferences"
	"github.com/obralog/obralog-admin/internal/shell"
	shellhttp "github.com/obralog/obralog-admin/internal/shell/http"
	siteshttp "github.com/obralog/obralog-admin/internal/sites/http"
	"github.com/obralog/obralog-admin/internal/sites/screen"
	storageredis "github.com/obralog/obralog-admin/internal/storage/redis"
)

const (
	ServiceName = "obralog-admin"

	pruneSpec      = "@every 1m"
	limiterGCSpec  = "@every 5m"
	limiterMaxIdle = 10 * time.Minute
	jobTimeout     = 30 * time.Second
)

// App is the wired service.
type App struct {
	Router    *gin.Engine
	Directory *directory.Directory
	Shells    *shell.Manager
	Scheduler *cronjob.Scheduler

	logger  *zap.Logger
	closers []func() error
}

// Build opens the stores and wires every component. The caller owns Start
// and Close.
func Build(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	app := &App{logger: logger}

	store, err := OpenSiteStore(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("open site store: %w", err)
	}
	app.closers = append(app.closers, store.Close)

	rdb, err := storageredis.NewClient(ctx, &cfg.Redis)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("open preference store: %w", err)
	}
	app.closers = append(app.closers, rdb.Close)
	prefs := preferences.NewRedisStore(rdb, cfg.Redis.PreferencesTTL)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	httpMetrics := middleware.NewMetrics()
	dirMetrics := directory.NewMetrics()
	if err := errors.Join(httpMetrics.Register(reg), dirMetrics.Register(reg)); err != nil {
		app.Close()
		return nil, fmt.Errorf("register metrics: %w", err)
	}

	app.Directory = directory.New(store.Repo, logger.Named("directory"), dirMetrics)
	app.Shells = shell.NewManager(prefs, app.Directory, shell.Options{
		DesktopBreakpoint: cfg.Layout.DesktopBreakpoint,
		CloseDelay:        cfg.Layout.FlyoutCloseDelay,
		Clock:             flyout.RealClock,
		Logger:            logger.Named("shell"),
	})
	app.Directory.OnChange(app.Shells.Broadcast)

	editors := screen.NewEditors(store.Repo, app.Directory, logger.Named("sites"))
	app.Shells.OnPrune(editors.Forget)

	limiter := middleware.NewRateLimiter(cfg.Directory.MutationRatePerMin, httpMetrics)

	var verifier authmw.TokenVerifier
	if cfg.Firebase.AuthRequired {
		fb := store.Firebase
		if fb == nil {
			if fb, err = auth.InitializeFirebase(ctx, &cfg.Firebase); err != nil {
				app.Close()
				return nil, err
			}
		}
		client, err := fb.Auth(ctx)
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to get Auth client: %w", err)
		}
		verifier = client
	}

	app.Router = BuildRouter(RouterDeps{
		ServiceName:    ServiceName,
		Version:        cfg.App.Version,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		SecureCookies:  cfg.App.Environment == "production",
		Logger:         logger.Named("http"),
		Health: map[string]httpapi.Pinger{
			"store": store.Pinger,
			"redis": httpapi.PingFunc(func(ctx context.Context) error { return rdb.Ping(ctx).Err() }),
		},
		Metrics:     httpMetrics,
		Gatherer:    reg,
		RateLimiter: limiter,
		Verifier:    verifier,
		Sites:       siteshttp.New(store.Repo, app.Directory, editors, logger.Named("sites")),
		Shell:       shellhttp.New(app.Shells, prefs, logger.Named("shell")),
	})

	app.Scheduler, err = buildScheduler(cfg, app.Directory, app.Shells, limiter, logger.Named("cron"))
	if err != nil {
		app.Close()
		return nil, err
	}

	return app, nil
}

func buildScheduler(cfg *config.Config, dir *directory.Directory, shells *shell.Manager, limiter *middleware.RateLimiter, logger *zap.Logger) (*cronjob.Scheduler, error) {
	s := cronjob.NewScheduler(logger, jobTimeout)

	if spec := cfg.Directory.ResyncCron; spec != "" {
		if err := s.Add("directory-resync", spec, dir.Refresh); err != nil {
			return nil, fmt.Errorf("schedule directory resync %q: %w", spec, err)
		}
	}
	if err := s.Add("shell-prune", pruneSpec, shells.PruneJob(cfg.Layout.SessionIdle)); err != nil {
		return nil, err
	}
	if err := s.Add("rate-limit-gc", limiterGCSpec, func(ctx context.Context) error {
		limiter.Cleanup(limiterMaxIdle)
		return nil
	}); err != nil {
		return nil, err
	}
	return s, nil
}

// Start loads the site directory once and starts the scheduled jobs. A
// failed initial load is logged and the directory starts empty.
func (a *App) Start(ctx context.Context) {
	if err := a.Directory.Refresh(ctx); err != nil {
		a.logger.Warn("initial site directory load failed", zap.Error(err))
	}
	a.Scheduler.Start()
}

// Close stops the scheduler and releases the stores in reverse order.
func (a *App) Close() error {
	if a.Scheduler != nil {
		a.Scheduler.Stop()
	}
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	a.closers = nil
	return errors.Join(errs...)
}
