package directory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obralog/obralog-admin/internal/sites/domain"
)

type stubLister struct {
	mu    sync.Mutex
	sites []domain.ConstructionSite
	err   error
	calls int
}

func (s *stubLister) List(ctx context.Context) ([]domain.ConstructionSite, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return append([]domain.ConstructionSite(nil), s.sites...), nil
}

func site(id, name string) domain.ConstructionSite {
	return domain.ConstructionSite{ID: id, Name: name}
}

func TestDirectory_RefreshReplacesWholesale(t *testing.T) {
	lister := &stubLister{sites: []domain.ConstructionSite{site("1", "Alpha"), site("2", "Beta")}}
	dir := New(lister, nil, nil)

	assert.Empty(t, dir.Sites())
	require.NoError(t, dir.Refresh(context.Background()))
	assert.Len(t, dir.Sites(), 2)

	lister.sites = []domain.ConstructionSite{site("3", "Gamma")}
	require.NoError(t, dir.Refresh(context.Background()))
	assert.Equal(t, []domain.ConstructionSite{site("3", "Gamma")}, dir.Sites())
	assert.False(t, dir.Loading())
}

func TestDirectory_RefreshFailureKeepsPreviousList(t *testing.T) {
	lister := &stubLister{sites: []domain.ConstructionSite{site("1", "Alpha")}}
	metrics := NewMetrics()
	dir := New(lister, nil, metrics)

	require.NoError(t, dir.Refresh(context.Background()))

	lister.err = errors.New("unavailable")
	err := dir.Refresh(context.Background())
	assert.Error(t, err)
	assert.Equal(t, []domain.ConstructionSite{site("1", "Alpha")}, dir.Sites())

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.refreshes.WithLabelValues(outcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.refreshes.WithLabelValues(outcomeError)))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.size))
}

func TestDirectory_SitesReturnsCopy(t *testing.T) {
	dir := New(&stubLister{sites: []domain.ConstructionSite{site("1", "Alpha")}}, nil, nil)
	require.NoError(t, dir.Refresh(context.Background()))

	got := dir.Sites()
	got[0].Name = "mutated"
	assert.Equal(t, "Alpha", dir.Sites()[0].Name)
}

func TestDirectory_Lookup(t *testing.T) {
	dir := New(&stubLister{sites: []domain.ConstructionSite{site("1", "Alpha")}}, nil, nil)
	require.NoError(t, dir.Refresh(context.Background()))

	s, ok := dir.Lookup("1")
	assert.True(t, ok)
	assert.Equal(t, "Alpha", s.Name)

	_, ok = dir.Lookup("2")
	assert.False(t, ok)
}

// blockingLister hands each List call its own release channel, so tests can
// finish refreshes out of order.
type blockingLister struct {
	mu      sync.Mutex
	calls   int
	release []chan []domain.ConstructionSite
	entered chan struct{}
}

func (b *blockingLister) List(ctx context.Context) ([]domain.ConstructionSite, error) {
	b.mu.Lock()
	ch := b.release[b.calls]
	b.calls++
	b.mu.Unlock()

	b.entered <- struct{}{}
	return <-ch, nil
}

func TestDirectory_StaleRefreshIsDiscarded(t *testing.T) {
	lister := &blockingLister{
		release: []chan []domain.ConstructionSite{
			make(chan []domain.ConstructionSite),
			make(chan []domain.ConstructionSite),
		},
		entered: make(chan struct{}),
	}
	dir := New(lister, nil, nil)

	firstDone := make(chan error)
	go func() { firstDone <- dir.Refresh(context.Background()) }()
	<-lister.entered
	assert.True(t, dir.Loading())

	secondDone := make(chan error)
	go func() { secondDone <- dir.Refresh(context.Background()) }()
	<-lister.entered

	// the newer refresh lands first
	lister.release[1] <- []domain.ConstructionSite{site("2", "Newer")}
	require.NoError(t, <-secondDone)

	lister.release[0] <- []domain.ConstructionSite{site("1", "Older")}
	require.NoError(t, <-firstDone)

	assert.Equal(t, []domain.ConstructionSite{site("2", "Newer")}, dir.Sites())
	assert.False(t, dir.Loading())
}

func TestMetrics_Register(t *testing.T) {
	reg := prometheus.NewRegistry()
	require.NoError(t, NewMetrics().Register(reg))
}

func TestDirectory_OnChange(t *testing.T) {
	lister := &stubLister{sites: []domain.ConstructionSite{site("1", "Alpha")}}
	dir := New(lister, nil, nil)

	var seen []int
	dir.OnChange(func() { seen = append(seen, len(dir.Sites())) })

	require.NoError(t, dir.Refresh(context.Background()))
	lister.err = errors.New("unavailable")
	assert.Error(t, dir.Refresh(context.Background()))

	assert.Equal(t, []int{1}, seen, "only applied refreshes notify")
}
