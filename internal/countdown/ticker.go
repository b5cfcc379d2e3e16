package countdown

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/splshield/splshield-web/internal/config"
)

// Handler receives every recomputed value.
// It runs on the subscription goroutine and must not block for long.
type Handler func(Remaining)

// Ticker recomputes a countdown on a fixed cadence.
type Ticker struct {
	Clock    Clock
	Interval time.Duration
}

// NewTicker returns a Ticker on the real clock at the default cadence.
func NewTicker() *Ticker {
	return &Ticker{Clock: RealClock{}, Interval: config.TickInterval}
}

// Subscription is a running countdown owned by one display.
// Cancel must be called when the display goes away.
type Subscription struct {
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// Cancel stops the subscription and waits for its goroutine to exit.
// It is safe to call more than once and from several goroutines, but not
// from inside the Handler.
func (s *Subscription) Cancel() {
	s.once.Do(s.cancel)
	<-s.done
}

// Done is closed once no more values will be delivered.
func (s *Subscription) Done() <-chan struct{} {
	return s.done
}

// Start delivers the remaining time until deadline immediately, then once per
// Interval. It ends when ctx is cancelled, when Cancel is called, or right
// after the first expired value has been delivered.
func (t *Ticker) Start(ctx context.Context, deadline time.Time, fn Handler) *Subscription {
	clock := t.Clock
	if clock == nil {
		clock = RealClock{}
	}
	interval := t.Interval
	if interval <= 0 {
		interval = config.TickInterval
	}

	ctx, cancel := context.WithCancel(ctx)
	sub := &Subscription{cancel: cancel, done: make(chan struct{})}

	log := slog.With(
		config.LogKeyComponent, config.CompCountdown,
		config.LogKeyDeadline, deadline.UTC().Format(time.RFC3339),
	)
	log.Debug(config.MsgTickerStart, config.LogKeyInterval, interval)

	go func() {
		defer close(sub.done)
		defer cancel()

		tick := time.NewTicker(interval)
		defer tick.Stop()

		for {
			r := Calculate(deadline, clock.Now())
			fn(r)
			if r.Expired() {
				log.Debug(config.MsgTickerExpired)
				return
			}

			select {
			case <-ctx.Done():
				log.Debug(config.MsgTickerStop)
				return
			case <-tick.C:
			}
		}
	}()

	return sub
}
