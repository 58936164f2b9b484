package directory

import (
	"context"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/obralog/obralog-admin/internal/sites/domain"
)

// Lister is the slice of the persistence gateway the directory needs.
type Lister interface {
	List(ctx context.Context) ([]domain.ConstructionSite, error)
}

// Directory is the process-wide cache of construction sites shared by the
// navigation shell and the top bar. Refresh is its only writer.
type Directory struct {
	lister  Lister
	logger  *zap.Logger
	metrics *Metrics

	mu       sync.RWMutex
	sites    []domain.ConstructionSite
	inFlight int
	// started counts refreshes begun; applied is the generation of the
	// newest result written to sites.
	started   uint64
	applied   uint64
	listeners []func()
}

func New(lister Lister, logger *zap.Logger, metrics *Metrics) *Directory {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Directory{
		lister:  lister,
		logger:  logger,
		metrics: metrics,
		sites:   []domain.ConstructionSite{},
	}
}

// Refresh fetches the full list and replaces the cache wholesale. On failure
// the previous list is kept and the error is returned after being logged.
// A refresh that finishes after a newer one has been applied is discarded.
func (d *Directory) Refresh(ctx context.Context) error {
	d.mu.Lock()
	d.started++
	gen := d.started
	d.inFlight++
	d.mu.Unlock()

	sites, err := d.lister.List(ctx)

	d.mu.Lock()
	d.inFlight--

	if err != nil {
		d.mu.Unlock()
		d.logger.Warn("site directory refresh failed", zap.Error(err))
		d.metrics.observe(outcomeError)
		return err
	}

	if gen < d.applied {
		d.mu.Unlock()
		d.logger.Debug("discarding stale site directory result",
			zap.Uint64("generation", gen), zap.Uint64("applied", d.applied))
		d.metrics.observe(outcomeStale)
		return nil
	}

	d.sites = append(make([]domain.ConstructionSite, 0, len(sites)), sites...)
	d.applied = gen
	size := len(d.sites)
	listeners := append([]func(){}, d.listeners...)
	d.mu.Unlock()

	d.metrics.observe(outcomeOK)
	d.metrics.setSize(size)
	for _, f := range listeners {
		f()
	}
	return nil
}

// OnChange registers f to run after every applied refresh, with no
// directory lock held.
func (d *Directory) OnChange(f func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.listeners = append(d.listeners, f)
}

// Sites returns a copy of the cached list.
func (d *Directory) Sites() []domain.ConstructionSite {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append(make([]domain.ConstructionSite, 0, len(d.sites)), d.sites...)
}

// Loading reports whether any refresh is in flight.
func (d *Directory) Loading() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.inFlight > 0
}

// Lookup finds a cached site by id.
func (d *Directory) Lookup(id string) (domain.ConstructionSite, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, s := range d.sites {
		if s.ID == id {
			return s, true
		}
	}
	return domain.ConstructionSite{}, false
}

const (
	outcomeOK    = "ok"
	outcomeError = "error"
	outcomeStale = "stale"
)

// Metrics counts refresh outcomes and tracks the cached list size.
type Metrics struct {
	refreshes *prometheus.CounterVec
	size      prometheus.Gauge
}

func NewMetrics() *Metrics {
	return &Metrics{
		refreshes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "obralog_site_directory_refreshes_total",
				Help: "Site directory refreshes by outcome",
			},
			[]string{"outcome"},
		),
		size: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "obralog_site_directory_size",
			Help: "Number of construction sites in the cached directory",
		}),
	}
}

func (m *Metrics) Register(reg prometheus.Registerer) error {
	if err := reg.Register(m.refreshes); err != nil {
		return err
	}
	return reg.Register(m.size)
}

func (m *Metrics) observe(outcome string) {
	if m == nil {
		return
	}
	m.refreshes.WithLabelValues(outcome).Inc()
}

func (m *Metrics) setSize(n int) {
	if m == nil {
		return
	}
	m.size.Set(float64(n))
}
