package async

import "sync"

// Dispatcher serializes observer notifications onto a single execution
// context, standing in for a UI thread. Implementations must run
// dispatched funcs one at a time, in order.
type Dispatcher interface {
	Dispatch(fn func())
}

// Direct runs dispatched funcs synchronously on the calling goroutine.
// Suitable for tests and headless (CLI) use.
type Direct struct{}

func (Direct) Dispatch(fn func()) { fn() }

// Serial runs dispatched funcs on a single dedicated goroutine, FIFO.
type Serial struct {
	queue chan func()
	stop  sync.Once
	done  chan struct{}
}

// NewSerial starts the dispatch goroutine.
func NewSerial() *Serial {
	s := &Serial{
		queue: make(chan func(), 256),
		done:  make(chan struct{}),
	}
	go s.loop()
	return s
}

// Dispatch enqueues fn. Calls after Close are dropped.
func (s *Serial) Dispatch(fn func()) {
	select {
	case <-s.done:
	case s.queue <- fn:
	}
}

// Close stops the dispatch goroutine. Queued funcs still drain.
func (s *Serial) Close() {
	s.stop.Do(func() { close(s.done) })
}

func (s *Serial) loop() {
	for {
		select {
		case fn := <-s.queue:
			fn()
		case <-s.done:
			// Drain whatever was queued before shutdown.
			for {
				select {
				case fn := <-s.queue:
					fn()
				default:
					return
				}
			}
		}
	}
}
