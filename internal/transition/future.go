package transition

import (
	"context"
	"sync"
)

// Future reports the completion of one animation. It settles exactly once.
type Future struct {
	once sync.Once
	done chan struct{}
}

func newFuture() *Future {
	return &Future{done: make(chan struct{})}
}

// settle closes the future. It reports whether this call settled it.
func (f *Future) settle() bool {
	settled := false
	f.once.Do(func() {
		close(f.done)
		settled = true
	})
	return settled
}

// Done is closed when the animation has completed.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Settled reports whether the animation has completed.
func (f *Future) Settled() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Wait blocks until the animation completes or ctx is done. Giving up on
// the wait does not cancel the animation.
func (f *Future) Wait(ctx context.Context) error {
	select {
	case <-f.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
