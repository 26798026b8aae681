package store

import "context"

// Future holds the result of an operation running in its own goroutine.
// The result is kept after completion, so it can be read any number of times.
type Future[V any] struct {
	done  chan struct{}
	value V
	err   error
}

// Go starts fn in a new goroutine and returns a Future for its result.
func Go[V any](ctx context.Context, fn func(ctx context.Context) (V, error)) *Future[V] {
	f := &Future[V]{done: make(chan struct{})}
	go func() {
		defer close(f.done)
		f.value, f.err = fn(ctx)
	}()

	return f
}

// goVoid starts a mutating operation. Once issued it runs to completion:
// cancelling ctx only ends a pending Await.
func goVoid(ctx context.Context, fn func(ctx context.Context) error) *Future[Void] {
	return Go(context.WithoutCancel(ctx), func(ctx context.Context) (Void, error) {
		return Void{}, fn(ctx)
	})
}

// Done is closed when the operation has completed.
func (f *Future[V]) Done() <-chan struct{} {
	return f.done
}

// Await waits for the result. If ctx ends first, Await returns ctx.Err() and
// the operation keeps running.
func (f *Future[V]) Await(ctx context.Context) (V, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero V
		return zero, ctx.Err()
	}
}

// Get blocks until the operation completes.
func (f *Future[V]) Get() (V, error) {
	<-f.done
	return f.value, f.err
}
