// Package poller runs bounded background status polls, one independent
// loop per key. Loops are fire-and-forget: the caller that starts one gets
// its acknowledgement immediately and the loop reports progress solely by
// invoking the supplied PollFunc, which closes over the owning store.
package poller

import (
	"context"
	"errors"
	"sync"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"

	interrors "github.com/studyforge/studyforge-client/internal/errors"
)

// ErrRegistryClosed is returned by Start after Stop has been called.
var ErrRegistryClosed = errors.New("poller: registry closed")

// ErrAlreadyPolling is returned by Start when a loop for the key is live.
var ErrAlreadyPolling = errors.New("poller: key already has an active loop")

// PollFunc performs one poll attempt. Returning done=true ends the loop.
// A non-nil error is swallowed for that attempt and the loop continues up
// to the attempt bound; a single blip never aborts a poll.
type PollFunc func(ctx context.Context) (done bool, err error)

// Config bounds every loop the registry runs.
type Config struct {
	// Interval is the fixed delay between attempts.
	Interval time.Duration
	// MaxAttempts caps the number of attempts before the loop gives up.
	// Giving up is a timeout, not a failure: the last observed state stands.
	MaxAttempts int
	Logger      zerolog.Logger
}

// Registry tracks one poll loop per key.
type Registry struct {
	cfg Config

	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	active map[string]chan struct{} // closed when the key's loop exits
	closed bool

	wg sync.WaitGroup
}

// New constructs a Registry, applying zero-value defaults.
func New(cfg Config) *Registry {
	if cfg.Interval <= 0 {
		cfg.Interval = 2 * time.Second
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 20
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Registry{
		cfg:    cfg,
		ctx:    ctx,
		cancel: cancel,
		active: make(map[string]chan struct{}),
	}
}

// Start launches a detached loop for key. It returns once the loop is
// scheduled; the first attempt happens after one interval.
func (r *Registry) Start(key string, fn PollFunc) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ErrRegistryClosed
	}
	if _, ok := r.active[key]; ok {
		return ErrAlreadyPolling
	}
	done := make(chan struct{})
	r.active[key] = done
	r.wg.Add(1)
	go r.run(key, fn, done)
	return nil
}

// Await blocks until the loop for key exits, or ctx ends. A key with no
// active loop returns immediately.
func (r *Registry) Await(ctx context.Context, key string) error {
	r.mu.Lock()
	done, ok := r.active[key]
	r.mu.Unlock()
	if !ok {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-done:
		return nil
	}
}

// Polling reports whether key currently has a live loop.
func (r *Registry) Polling(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.active[key]
	return ok
}

// Stop cancels every live loop and waits for them to exit. Idempotent.
func (r *Registry) Stop() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	r.mu.Unlock()

	r.cancel()
	r.wg.Wait()
}

// Close lets Registry satisfy io.Closer.
func (r *Registry) Close() error {
	r.Stop()
	return nil
}

func (r *Registry) run(key string, fn PollFunc, done chan struct{}) {
	defer r.wg.Done()
	defer close(done)
	defer func() {
		r.mu.Lock()
		delete(r.active, key)
		r.mu.Unlock()
	}()
	// A panicking PollFunc must not take the whole client down.
	defer func() {
		if rec := recover(); rec != nil {
			r.cfg.Logger.Error().Str("key", key).Interface("panic", rec).Msg("poll loop panic")
		}
	}()

	delay := backoff.NewConstantBackOff(r.cfg.Interval)
	delay.Reset()

	for attempt := 1; attempt <= r.cfg.MaxAttempts; attempt++ {
		select {
		case <-r.ctx.Done():
			return
		case <-time.After(delay.NextBackOff()):
		}

		finished, err := fn(r.ctx)
		pollAttemptsTotal.Inc()
		if err != nil {
			// Swallowed: the attempt failed but the loop goes on.
			evt := r.cfg.Logger.Debug()
			if interrors.IsIrrecoverable(err) {
				evt = r.cfg.Logger.Warn()
			}
			evt.Err(err).Str("key", key).Int("attempt", attempt).Msg("poll attempt failed")
			continue
		}
		if finished {
			pollCompletionsTotal.Inc()
			return
		}
	}

	pollTimeoutsTotal.Inc()
	r.cfg.Logger.Info().Str("key", key).Int("attempts", r.cfg.MaxAttempts).
		Err(interrors.ErrPollTimeout).Msg("poll abandoned")
}
