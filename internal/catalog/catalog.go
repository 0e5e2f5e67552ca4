// Package catalog maintains lazily-built, event-invalidated lists of
// launchable targets per OS source. Each source memoizes a single
// shared scan future: concurrent readers observe the same physical
// computation, and invalidation swaps the slot wholesale so futures
// already handed out keep their frozen results.
package catalog

import (
	"context"
	"sync"

	"appdock/internal/appentry"
	"appdock/internal/async"
)

// Source names a catalog for events and logging.
type Source string

const (
	SourceShortcuts Source = "shortcuts"
	SourcePackaged  Source = "packaged"
)

// Catalog is a cached list of entries from one OS source.
type Catalog interface {
	// Get returns the current memoized scan future, starting a scan if
	// none is cached.
	Get() *async.Task[[]appentry.Entry]
	// Entries awaits the current scan.
	Entries(ctx context.Context) ([]appentry.Entry, error)
}

// memo holds the single current scan future for a source. The slot is
// replaced, never mutated, so readers cannot observe a torn update.
type memo struct {
	mu   sync.Mutex
	task *async.Task[[]appentry.Entry]
	scan func(context.Context) ([]appentry.Entry, error)
}

func (m *memo) get() *async.Task[[]appentry.Entry] {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.task == nil {
		m.task = async.Run(context.Background(), m.scan)
	}
	return m.task
}

// invalidate discards the cached future and starts a rebuild. A source
// that was never scanned has nothing to invalidate.
func (m *memo) invalidate() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.task == nil {
		return false
	}
	m.task = async.Run(context.Background(), m.scan)
	return true
}
