package circuitbreaker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func newTestBreaker(cfg Config) (*CircuitBreaker, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	cb := NewCircuitBreaker(cfg)
	cb.now = clock.Now
	return cb, clock
}

func fail() error    { return errBoom }
func succeed() error { return nil }

func TestOpensAfterFailureThreshold(t *testing.T) {
	cb, _ := newTestBreaker(DefaultConfig())

	for i := 0; i < 2; i++ {
		assert.ErrorIs(t, cb.Execute(fail), errBoom)
		assert.Equal(t, StateClosed, cb.GetState())
	}
	assert.ErrorIs(t, cb.Execute(fail), errBoom)
	assert.Equal(t, StateOpen, cb.GetState())

	called := false
	err := cb.Execute(func() error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, ErrCircuitBreakerOpen)
	assert.False(t, called)
}

func TestSuccessResetsFailureCount(t *testing.T) {
	cb, _ := newTestBreaker(DefaultConfig())

	_ = cb.Execute(fail)
	_ = cb.Execute(fail)
	require.NoError(t, cb.Execute(succeed))
	_ = cb.Execute(fail)
	_ = cb.Execute(fail)

	assert.Equal(t, StateClosed, cb.GetState())
}

func TestHalfOpenRecovery(t *testing.T) {
	cb, clock := newTestBreaker(DefaultConfig())
	for i := 0; i < 3; i++ {
		_ = cb.Execute(fail)
	}
	require.Equal(t, StateOpen, cb.GetState())

	clock.Advance(29 * time.Second)
	assert.ErrorIs(t, cb.Execute(succeed), ErrCircuitBreakerOpen)

	clock.Advance(time.Second)
	require.NoError(t, cb.Execute(succeed))
	assert.Equal(t, StateHalfOpen, cb.GetState())
	require.NoError(t, cb.Execute(succeed))
	assert.Equal(t, StateClosed, cb.GetState())
}

func TestHalfOpenFailureReopens(t *testing.T) {
	cb, clock := newTestBreaker(DefaultConfig())
	for i := 0; i < 3; i++ {
		_ = cb.Execute(fail)
	}
	clock.Advance(30 * time.Second)

	assert.ErrorIs(t, cb.Execute(fail), errBoom)
	assert.Equal(t, StateOpen, cb.GetState())
	assert.ErrorIs(t, cb.Execute(succeed), ErrCircuitBreakerOpen)
}

func TestExecuteContextIgnoresCallerCancellation(t *testing.T) {
	cb, _ := newTestBreaker(DefaultConfig())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for i := 0; i < 5; i++ {
		err := cb.ExecuteContext(ctx, func() error { return ctx.Err() })
		assert.ErrorIs(t, err, context.Canceled)
	}
	assert.Equal(t, StateClosed, cb.GetState())

	for i := 0; i < 3; i++ {
		_ = cb.ExecuteContext(context.Background(), fail)
	}
	assert.Equal(t, StateOpen, cb.GetState())
}

func TestExecuteContextReleasesHalfOpenSlot(t *testing.T) {
	cfg := DefaultConfig()
	cfg.HalfOpenMaxRequests = 1
	cb, clock := newTestBreaker(cfg)
	for i := 0; i < 3; i++ {
		_ = cb.Execute(fail)
	}
	clock.Advance(30 * time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, cb.ExecuteContext(ctx, func() error { return ctx.Err() }), context.Canceled)
	assert.Equal(t, StateHalfOpen, cb.GetState())

	require.NoError(t, cb.ExecuteContext(context.Background(), succeed))
}

func TestHalfOpenLimitsConcurrentProbes(t *testing.T) {
	cfg := DefaultConfig()
	cfg.HalfOpenMaxRequests = 1
	cb, clock := newTestBreaker(cfg)
	for i := 0; i < 3; i++ {
		_ = cb.Execute(fail)
	}
	clock.Advance(30 * time.Second)

	release := make(chan struct{})
	started := make(chan struct{})
	done := make(chan error)
	go func() {
		done <- cb.Execute(func() error {
			close(started)
			<-release
			return nil
		})
	}()
	<-started

	assert.ErrorIs(t, cb.Execute(succeed), ErrCircuitBreakerOpen)
	close(release)
	require.NoError(t, <-done)
}

func TestStateChangeCallbackAndReset(t *testing.T) {
	var transitions []string
	cfg := DefaultConfig()
	cfg.FailureThreshold = 1
	cfg.OnStateChange = func(from, to State) {
		transitions = append(transitions, from.String()+"->"+to.String())
	}
	cb, _ := newTestBreaker(cfg)

	_ = cb.Execute(fail)
	cb.Reset()
	assert.Equal(t, StateClosed, cb.GetState())
	assert.Equal(t, []string{"closed->open"}, transitions)
}
