package kv

import (
	"context"
	"log/slog"
	"time"

	"github.com/preston-bernstein/nba-roster-service/internal/logging"
)

const (
	defaultRetryAttempts = 3
	defaultBackoff       = 200 * time.Millisecond
)

type backoffFunc func(attempt int) time.Duration

// RetryingStore wraps a remote Store with linear backoff on failed reads and
// writes. Only transport failures are retried; a missing key is not an error.
type RetryingStore struct {
	inner       Store
	ctx         context.Context
	logger      *slog.Logger
	maxAttempts int
	backoffFn   backoffFunc
}

// NewRetryingStore wraps inner. Non-positive maxAttempts/backoff use defaults.
// ctx bounds the backoff waits.
func NewRetryingStore(ctx context.Context, inner Store, logger *slog.Logger, maxAttempts int, backoff time.Duration) *RetryingStore {
	if ctx == nil {
		ctx = context.Background()
	}
	if maxAttempts <= 0 {
		maxAttempts = defaultRetryAttempts
	}
	if backoff <= 0 {
		backoff = defaultBackoff
	}
	return &RetryingStore{
		inner:       inner,
		ctx:         ctx,
		logger:      logger,
		maxAttempts: maxAttempts,
		backoffFn: func(attempt int) time.Duration {
			return time.Duration(attempt) * backoff
		},
	}
}

func (r *RetryingStore) Get(key string) (string, bool, error) {
	var (
		value string
		found bool
	)
	err := r.do("get", key, func() error {
		var err error
		value, found, err = r.inner.Get(key)
		return err
	})
	if err != nil {
		return "", false, err
	}
	return value, found, nil
}

func (r *RetryingStore) Set(key, value string) error {
	return r.do("set", key, func() error { return r.inner.Set(key, value) })
}

func (r *RetryingStore) do(op, key string, fn func() error) error {
	var lastErr error
	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err
		if attempt == r.maxAttempts {
			break
		}

		logging.Warn(r.logger, "storage retry", logging.FieldOperation, op, "key", key, "attempt", attempt, "max_attempts", r.maxAttempts, "err", err)

		select {
		case <-r.ctx.Done():
			return r.ctx.Err()
		case <-time.After(r.backoffFn(attempt)):
		}
	}
	return lastErr
}
