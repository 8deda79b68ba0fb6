// FILE: lixenwraith/params/watch.go
package params

import (
	"context"
	"reflect"
	"time"

	"go.uber.org/zap"
)

// WatchOptions configures polling behavior
type WatchOptions struct {
	// PollInterval between fetches (minimum 100ms)
	PollInterval time.Duration

	// FetchTimeout bounds each fetch
	FetchTimeout time.Duration
}

// DefaultWatchOptions returns sensible defaults for polling
func DefaultWatchOptions() WatchOptions {
	return WatchOptions{
		PollInterval: DefaultPollInterval,
		FetchTimeout: DefaultFetchTimeout,
	}
}

// Update is one observed state of the watched prefix. Err holds either a
// fetch error or a *MissingFields; Values is nil whenever Err is set.
type Update struct {
	Values Values
	Err    error
	At     time.Time
}

// Watch polls the store and sends an Update for the initial state and for
// every subsequent change. The channel is closed when ctx is done.
func (l *Loader) Watch(ctx context.Context, opts WatchOptions) <-chan Update {
	if opts.PollInterval < MinPollInterval {
		opts.PollInterval = MinPollInterval
	}
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = DefaultFetchTimeout
	}

	updates := make(chan Update, DefaultUpdateBacklog)
	go l.watchLoop(ctx, opts, updates)
	return updates
}

func (l *Loader) watchLoop(ctx context.Context, opts WatchOptions, updates chan<- Update) {
	defer close(updates)

	ticker := time.NewTicker(opts.PollInterval)
	defer ticker.Stop()

	var last *Update
	for {
		current := l.poll(ctx, opts.FetchTimeout)
		if ctx.Err() != nil {
			return
		}

		if last == nil || changed(*last, current) {
			if last != nil {
				l.logger.Info("watched parameters changed", zap.String("prefix", l.store.prefix), zap.Error(current.Err))
			}
			select {
			case updates <- current:
			case <-ctx.Done():
				return
			}
			last = &current
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// poll performs one bounded fetch and read.
func (l *Loader) poll(ctx context.Context, timeout time.Duration) Update {
	fetchCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	result, err := l.Load(fetchCtx)
	now := time.Now()
	if err != nil {
		if !errFetchCanceled(err) {
			l.logger.Warn("watch poll failed", zap.String("prefix", l.store.prefix), zap.Error(err))
		}
		return Update{Err: err, At: now}
	}
	if result.IsMissingFields() {
		return Update{Err: result.missing, At: now}
	}
	return Update{Values: result.values, At: now}
}

func changed(prev, next Update) bool {
	if (prev.Err == nil) != (next.Err == nil) {
		return true
	}
	if prev.Err != nil {
		return prev.Err.Error() != next.Err.Error()
	}
	return !reflect.DeepEqual(prev.Values, next.Values)
}
