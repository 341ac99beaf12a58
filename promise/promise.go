// Package promise provides a one-shot asynchronous result type.
//
// A Promise starts out pending and is settled exactly once, either by
// Resolve with a value or by Reject with an error. Once settled, its
// result never changes. Settling is externally driven: the producer side
// holds the same *Promise as the consumer side and calls Resolve or
// Reject when the underlying computation finishes.
//
// Composition follows the usual shapes: Then and After run only on
// success, Always runs regardless of outcome, and All combines a group of
// promises into one that succeeds only if every member succeeds.
package promise

import (
	"context"
	"sync"

	"github.com/hashicorp/go-multierror"
)

// Promise is a container for a value of type T that becomes available at
// some point in the future, or for the error explaining why it never
// will. The zero value is not usable; use New, Resolved or Rejected.
type Promise[T any] struct {
	// Closed once the promise is settled.
	done chan struct{}
	// Guards the first transition from pending to settled.
	once sync.Once
	// Result fields, written before done is closed and never after.
	value T
	err   error
}

// New creates a pending promise.
func New[T any]() *Promise[T] {
	return &Promise[T]{done: make(chan struct{})}
}

// Resolved creates a promise that is already settled with the provided
// value.
func Resolved[T any](value T) *Promise[T] {
	p := New[T]()
	p.Resolve(value)
	return p
}

// Rejected creates a promise that is already settled with the provided
// error.
func Rejected[T any](err error) *Promise[T] {
	p := New[T]()
	p.Reject(err)
	return p
}

// Resolve settles the promise successfully with the provided value. It
// reports whether this call performed the settlement; it returns false
// if the promise was already settled, in which case the call has no
// effect.
func (p *Promise[T]) Resolve(value T) bool {
	settled := false
	p.once.Do(func() {
		p.value = value
		close(p.done)
		settled = true
	})
	return settled
}

// Reject settles the promise with the provided error. It reports whether
// this call performed the settlement; it returns false if the promise
// was already settled, in which case the call has no effect.
func (p *Promise[T]) Reject(err error) bool {
	settled := false
	p.once.Do(func() {
		p.err = err
		close(p.done)
		settled = true
	})
	return settled
}

// Done returns a chan that is closed when the promise is settled.
func (p *Promise[T]) Done() <-chan struct{} {
	return p.done
}

// Settled reports whether the promise has been resolved or rejected. It
// never blocks.
func (p *Promise[T]) Settled() bool {
	select {
	case <-p.done:
		return true
	default:
		return false
	}
}

// Result returns the settled value and error. It blocks until the
// promise is settled.
func (p *Promise[T]) Result() (T, error) {
	<-p.done
	return p.value, p.err
}

// Wait returns the settled value and error, or the context error if ctx
// is done first. A context abort does not settle the promise; the
// underlying computation keeps running.
func (p *Promise[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-p.done:
		return p.value, p.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Then returns a promise settled with fn applied to p's value once p
// resolves. If p rejects, fn is not invoked and the returned promise
// rejects with the same error.
func Then[T, U any](p *Promise[T], fn func(T) (U, error)) *Promise[U] {
	out := New[U]()
	go func() {
		value, err := p.Result()
		if err != nil {
			out.Reject(err)
			return
		}
		mapped, err := fn(value)
		if err != nil {
			out.Reject(err)
			return
		}
		out.Resolve(mapped)
	}()
	return out
}

// After sequentially composes two asynchronous steps: once p resolves,
// fn is invoked and the returned promise mirrors the promise fn
// produces. If p rejects, fn is not invoked and the rejection is passed
// through.
func After[T, U any](p *Promise[T], fn func(T) *Promise[U]) *Promise[U] {
	out := New[U]()
	go func() {
		value, err := p.Result()
		if err != nil {
			out.Reject(err)
			return
		}
		next, err := fn(value).Result()
		if err != nil {
			out.Reject(err)
			return
		}
		out.Resolve(next)
	}()
	return out
}

// Always composes fn onto p regardless of p's outcome. fn receives p's
// value and error and its promise determines the result. This is the
// recovery primitive: fn can inspect the error and produce a success.
func Always[T, U any](p *Promise[T], fn func(T, error) *Promise[U]) *Promise[U] {
	out := New[U]()
	go func() {
		next, err := fn(p.Result()).Result()
		if err != nil {
			out.Reject(err)
			return
		}
		out.Resolve(next)
	}()
	return out
}

// All combines the provided promises into a single promise that resolves
// with every value, in argument order, once all of them resolve. It
// waits for every promise to settle even when some reject, and then
// rejects with the accumulated errors in argument order.
func All[T any](ps ...*Promise[T]) *Promise[[]T] {
	out := New[[]T]()
	go func() {
		values := make([]T, len(ps))
		var errs *multierror.Error
		for i, p := range ps {
			value, err := p.Result()
			if err != nil {
				errs = multierror.Append(errs, err)
				continue
			}
			values[i] = value
		}
		if err := errs.ErrorOrNil(); err != nil {
			out.Reject(err)
			return
		}
		out.Resolve(values)
	}()
	return out
}
