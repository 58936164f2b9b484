package cronjob

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_RejectsBadSpec(t *testing.T) {
	s := NewScheduler(nil, 0)
	assert.Error(t, s.Add("resync", "every now and then", func(ctx context.Context) error { return nil }))
	assert.Zero(t, s.Len())
}

func TestScheduler_AddAndRun(t *testing.T) {
	s := NewScheduler(nil, time.Second)

	calls := 0
	var deadline bool
	require.NoError(t, s.Add("resync", "0 0 3 * * *", func(ctx context.Context) error {
		calls++
		_, deadline = ctx.Deadline()
		return nil
	}))
	require.NoError(t, s.Add("prune", "@every 10m", func(ctx context.Context) error {
		return errors.New("boom")
	}))
	assert.Equal(t, 2, s.Len())

	s.Start()
	defer s.Stop()

	s.run("resync", func(ctx context.Context) error {
		calls++
		_, deadline = ctx.Deadline()
		return nil
	})
	assert.Equal(t, 1, calls)
	assert.True(t, deadline)

	// failing jobs are logged, not propagated
	s.run("prune", func(ctx context.Context) error { return errors.New("boom") })
}
