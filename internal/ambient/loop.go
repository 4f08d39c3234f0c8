package ambient

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sourcegraph/conc"
)

const DefaultFPS = 30

// Frame is one tick delivered to a subscriber.
type Frame struct {
	Seq     uint64  `json:"seq"`
	Elapsed float64 `json:"elapsed"`
	Delta   float64 `json:"delta"`
}

// Loop drives frame subscriptions. Each subscription ticks on its own
// goroutine.
type Loop struct {
	interval time.Duration

	wg     conc.WaitGroup
	active atomic.Int64
}

func NewLoop(fps int) *Loop {
	if fps <= 0 {
		fps = DefaultFPS
	}
	return &Loop{interval: time.Second / time.Duration(fps)}
}

// Subscription is a running frame callback.
type Subscription struct {
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
	err    error
}

// Subscribe calls fn once per frame until ctx ends, Stop is called, or fn
// returns an error. fn is never called concurrently with itself.
func (l *Loop) Subscribe(ctx context.Context, fn func(Frame) error) *Subscription {
	ctx, cancel := context.WithCancel(ctx)
	sub := &Subscription{cancel: cancel, done: make(chan struct{})}

	l.active.Add(1)
	l.wg.Go(func() {
		defer l.active.Add(-1)
		defer close(sub.done)
		defer cancel()
		sub.err = l.run(ctx, fn)
	})
	return sub
}

func (l *Loop) run(ctx context.Context, fn func(Frame) error) error {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	start := time.Now()
	last := start
	var seq uint64
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			// a tick can race a cancellation; cancellation wins
			if ctx.Err() != nil {
				return nil
			}
			seq++
			f := Frame{
				Seq:     seq,
				Elapsed: now.Sub(start).Seconds(),
				Delta:   now.Sub(last).Seconds(),
			}
			last = now
			if err := fn(f); err != nil {
				return err
			}
		}
	}
}

// Stop cancels the subscription and returns once no further callback can
// run. It must not be called from inside the callback.
func (s *Subscription) Stop() {
	s.once.Do(s.cancel)
	<-s.done
}

// Done is closed when the subscription has ended.
func (s *Subscription) Done() <-chan struct{} { return s.done }

// Err is the error that ended the subscription, if fn returned one. Only
// valid after Done is closed.
func (s *Subscription) Err() error {
	<-s.done
	return s.err
}

func (l *Loop) Active() int { return int(l.active.Load()) }

// Wait blocks until every subscription has ended.
func (l *Loop) Wait() { l.wg.Wait() }
