package shell

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/obralog/obralog-admin/internal/preferences"
)

// Manager owns one Shell per client and creates them on first use.
type Manager struct {
	store  preferences.Store
	sites  SiteSource
	opts   Options
	logger *zap.Logger

	mu      sync.Mutex
	shells  map[string]*Shell
	onPrune []func(client string)
}

func NewManager(store preferences.Store, sites SiteSource, opts Options) *Manager {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Manager{
		store:  store,
		sites:  sites,
		opts:   opts,
		logger: opts.Logger,
		shells: make(map[string]*Shell),
	}
}

// Get returns the client's shell, loading persisted flags the first time.
// The load runs outside the manager lock; when two requests race for a new
// client the first insert wins. A returned session is marked as seen so a
// concurrent Prune cannot drop it.
func (m *Manager) Get(ctx context.Context, client string) *Shell {
	if s := m.lookup(client); s != nil {
		return s
	}

	fresh := New(ctx, client, m.store, m.sites, m.opts)

	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.shells[client]; ok {
		s.touch()
		return s
	}
	m.shells[client] = fresh
	m.logger.Debug("shell session created", zap.String("client", client))
	return fresh
}

func (m *Manager) lookup(client string) *Shell {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.shells[client]
	if !ok {
		return nil
	}
	s.touch()
	return s
}

// OnPrune registers f to run for every client dropped by Prune, so
// per-client state held elsewhere can be released with the session.
func (m *Manager) OnPrune(f func(client string)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onPrune = append(m.onPrune, f)
}

// Broadcast republishes every session's view, e.g. after the site
// directory changed.
func (m *Manager) Broadcast() {
	for _, s := range m.snapshot() {
		s.Refreshed()
	}
}

// Prune drops sessions idle for longer than maxIdle with no subscribers.
// Persisted flags survive; the next request reloads them.
func (m *Manager) Prune(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)

	m.mu.Lock()
	var pruned []string
	for client, s := range m.shells {
		if s.idleBefore(cutoff) {
			s.hover.Reset()
			delete(m.shells, client)
			pruned = append(pruned, client)
		}
	}
	hooks := append([]func(string){}, m.onPrune...)
	m.mu.Unlock()

	for _, client := range pruned {
		for _, f := range hooks {
			f(client)
		}
	}
	if len(pruned) > 0 {
		m.logger.Debug("pruned idle shell sessions", zap.Int("count", len(pruned)))
	}
	return len(pruned)
}

// Len reports the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.shells)
}

func (m *Manager) snapshot() []*Shell {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*Shell, 0, len(m.shells))
	for _, s := range m.shells {
		out = append(out, s)
	}
	return out
}

// PruneJob adapts Prune to the cron scheduler.
func (m *Manager) PruneJob(maxIdle time.Duration) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		m.Prune(maxIdle)
		return nil
	}
}
