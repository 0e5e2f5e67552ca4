package async

import (
	"context"
	"sync"
)

// ChangeKind identifies which facet of a Value changed.
type ChangeKind int

const (
	// ChangeAll is emitted synchronously by Reset: everything may have changed.
	ChangeAll ChangeKind = iota
	ChangeCompleted
	ChangeSucceeded
	ChangeCanceled
	ChangeFaulted
	ChangeResult
)

// Value watches a lazily-started computation and notifies observers as
// it settles. Reset discards the current computation and starts a new
// one; callers holding the old Task still observe its frozen result.
type Value[T any] struct {
	mu         sync.Mutex
	factory    func(context.Context) (T, error)
	dispatcher Dispatcher
	task       *Task[T]
	eager      bool
	observers  map[int]func(ChangeKind)
	nextObs    int
}

// ValueOption configures a Value.
type ValueOption[T any] func(*Value[T])

// WithDispatcher sets the notification dispatcher. Defaults to Direct.
func WithDispatcher[T any](d Dispatcher) ValueOption[T] {
	return func(v *Value[T]) { v.dispatcher = d }
}

// StartImmediately runs the factory at construction time instead of on
// first result access.
func StartImmediately[T any]() ValueOption[T] {
	return func(v *Value[T]) { v.eager = true }
}

// NewValue creates a Value over factory. Unless StartImmediately is
// given, the computation stays dormant until Result or Reset.
func NewValue[T any](factory func(context.Context) (T, error), opts ...ValueOption[T]) *Value[T] {
	v := &Value[T]{
		factory:    factory,
		dispatcher: Direct{},
		observers:  make(map[int]func(ChangeKind)),
	}
	for _, opt := range opts {
		opt(v)
	}
	if v.eager {
		v.mu.Lock()
		v.run()
		v.mu.Unlock()
	}
	return v
}

// Observe registers fn for change notifications and returns an
// unsubscribe func. Notifications arrive on the dispatcher, except the
// synchronous ChangeAll from Reset.
func (v *Value[T]) Observe(fn func(ChangeKind)) func() {
	v.mu.Lock()
	id := v.nextObs
	v.nextObs++
	v.observers[id] = fn
	v.mu.Unlock()
	return func() {
		v.mu.Lock()
		delete(v.observers, id)
		v.mu.Unlock()
	}
}

// Task returns the current computation handle, or nil while dormant.
func (v *Value[T]) Task() *Task[T] {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.task
}

// Result returns the last successful result, starting the computation
// if it was never run. Returns the zero value until the computation
// completes successfully.
func (v *Value[T]) Result() T {
	v.mu.Lock()
	if v.task == nil && !v.eager {
		v.run()
		v.mu.Unlock()
		v.notify(ChangeAll)
	} else {
		v.mu.Unlock()
	}

	t := v.Task()
	if t == nil {
		var zero T
		return zero
	}
	return t.Result()
}

// Completed reports whether the current computation has settled.
// A dormant Value counts as completed, mirroring "nothing to wait for".
func (v *Value[T]) Completed() bool {
	t := v.Task()
	return t == nil || t.Completed()
}

// Succeeded reports whether the current computation succeeded.
func (v *Value[T]) Succeeded() bool {
	t := v.Task()
	return t == nil || t.Succeeded()
}

// Canceled reports whether the current computation was cancelled.
func (v *Value[T]) Canceled() bool {
	t := v.Task()
	return t != nil && t.Canceled()
}

// Faulted reports whether the current computation faulted.
func (v *Value[T]) Faulted() bool {
	t := v.Task()
	return t != nil && t.Faulted()
}

// Reset discards the current computation, starts a new one, and emits a
// single synchronous ChangeAll notification.
func (v *Value[T]) Reset() {
	v.mu.Lock()
	v.run()
	v.mu.Unlock()
	v.notify(ChangeAll)
}

// run starts a new task. Caller must hold v.mu.
func (v *Value[T]) run() {
	task := Run(context.Background(), v.factory)
	v.task = task

	go func() {
		<-task.Done()
		v.dispatcher.Dispatch(func() {
			v.notify(ChangeCompleted)
			switch {
			case task.Canceled():
				v.notify(ChangeCanceled)
			case task.Faulted():
				v.notify(ChangeFaulted)
			default:
				v.notify(ChangeSucceeded)
				v.notify(ChangeResult)
			}
		})
	}()
}

func (v *Value[T]) notify(kind ChangeKind) {
	v.mu.Lock()
	fns := make([]func(ChangeKind), 0, len(v.observers))
	for _, fn := range v.observers {
		fns = append(fns, fn)
	}
	v.mu.Unlock()
	for _, fn := range fns {
		fn(kind)
	}
}
