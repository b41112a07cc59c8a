// Package assets coordinates one-shot loading work that must finish before
// a game loop starts.
package assets

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Latch is a countdown latch. The continuation runs exactly once, on the
// call to Done that brings the count to zero.
type Latch struct {
	mu        sync.Mutex
	remaining int
	then      func()
}

// NewLatch creates a latch waiting for n completions.
func NewLatch(n int, then func()) *Latch {
	return &Latch{remaining: n, then: then}
}

// Done records one completion. It reports whether this call ran the
// continuation. Calls after the count reached zero do nothing.
func (l *Latch) Done() bool {
	l.mu.Lock()
	if l.remaining <= 0 {
		l.mu.Unlock()
		return false
	}
	l.remaining--
	fire := l.remaining == 0
	l.mu.Unlock()

	if fire && l.then != nil {
		l.then()
	}
	return fire
}

// Remaining returns the number of completions still expected.
func (l *Latch) Remaining() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.remaining
}

// Loader performs one load operation.
type Loader func(ctx context.Context) error

// LoadAll runs every loader concurrently and invokes then exactly once after
// all of them succeed, before LoadAll returns. The first failure cancels the
// remaining loaders and is returned; then is not invoked in that case.
func LoadAll(ctx context.Context, loaders []Loader, then func()) error {
	if len(loaders) == 0 {
		if then != nil {
			then()
		}
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	latch := NewLatch(len(loaders), then)
	for _, load := range loaders {
		g.Go(func() error {
			if err := load(gctx); err != nil {
				return err
			}
			latch.Done()
			return nil
		})
	}
	return g.Wait()
}
