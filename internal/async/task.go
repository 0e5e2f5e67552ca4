// Package async provides an explicit future/promise primitive and an
// observable wrapper over a lazily-started computation. Observers are
// notified through an injected dispatcher so background workers never
// touch UI-affine state directly.
package async

import (
	"context"
	"errors"
	"fmt"
)

// Task is a single-shot future. It is started exactly once and resolves
// atomically: every caller holding the handle observes the same result.
type Task[T any] struct {
	done  chan struct{}
	value T
	err   error
}

// Run starts fn on a new goroutine and returns its future.
// A panic inside fn resolves the task as faulted instead of crashing.
func Run[T any](ctx context.Context, fn func(context.Context) (T, error)) *Task[T] {
	t := &Task[T]{done: make(chan struct{})}
	go func() {
		defer close(t.done)
		defer func() {
			if r := recover(); r != nil {
				t.err = fmt.Errorf("task panicked: %v", r)
			}
		}()
		t.value, t.err = fn(ctx)
	}()
	return t
}

// Resolved returns an already-completed successful task.
func Resolved[T any](value T) *Task[T] {
	t := &Task[T]{done: make(chan struct{}), value: value}
	close(t.done)
	return t
}

// Failed returns an already-completed faulted task.
func Failed[T any](err error) *Task[T] {
	t := &Task[T]{done: make(chan struct{}), err: err}
	close(t.done)
	return t
}

// Done returns a channel closed when the task settles.
func (t *Task[T]) Done() <-chan struct{} {
	return t.done
}

// Await blocks until the task settles or ctx is cancelled.
func (t *Task[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-t.done:
		return t.value, t.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Completed reports whether the task has settled.
func (t *Task[T]) Completed() bool {
	select {
	case <-t.done:
		return true
	default:
		return false
	}
}

// Succeeded reports whether the task settled without error.
func (t *Task[T]) Succeeded() bool {
	return t.Completed() && t.err == nil
}

// Canceled reports whether the task settled with a cancellation error.
func (t *Task[T]) Canceled() bool {
	return t.Completed() && errors.Is(t.err, context.Canceled)
}

// Faulted reports whether the task settled with a non-cancellation error.
func (t *Task[T]) Faulted() bool {
	return t.Completed() && t.err != nil && !errors.Is(t.err, context.Canceled)
}

// Result returns the task's value, or the zero value when the task has
// not (yet) completed successfully.
func (t *Task[T]) Result() T {
	if t.Succeeded() {
		return t.value
	}
	var zero T
	return zero
}

// Err returns the settlement error, or nil while pending or on success.
func (t *Task[T]) Err() error {
	if !t.Completed() {
		return nil
	}
	return t.err
}
