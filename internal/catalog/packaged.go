package catalog

import (
	"context"

	"appdock/internal/appentry"
	"appdock/internal/async"
	"appdock/internal/log"
	"appdock/internal/platform"
	"appdock/internal/pubsub"
)

// PackagedCatalog enumerates the current user's installed packaged
// applications, one entry per launchable entry point.
type PackagedCatalog struct {
	rt     *appentry.Runtime
	memo   memo
	events *pubsub.Broker[Source]
	sub    platform.Subscription
	done   chan struct{}

	// Subscribe opens the package-change subscription. Overridable so
	// tests can feed synthetic change events.
	Subscribe func() (platform.Subscription, error)
}

// NewPackagedCatalog builds a catalog over the runtime's enumerator.
// The catalog is static until StartWatching is called.
func NewPackagedCatalog(rt *appentry.Runtime) *PackagedCatalog {
	c := &PackagedCatalog{
		rt:        rt,
		events:    pubsub.NewBroker[Source](),
		done:      make(chan struct{}),
		Subscribe: platform.NewPackageSubscription,
	}
	c.memo.scan = c.scan
	return c
}

// Events reports invalidations and completed rebuilds.
func (c *PackagedCatalog) Events() *pubsub.Broker[Source] { return c.events }

func (c *PackagedCatalog) Get() *async.Task[[]appentry.Entry] {
	return c.memo.get()
}

func (c *PackagedCatalog) Entries(ctx context.Context) ([]appentry.Entry, error) {
	return c.Get().Await(ctx)
}

// StartWatching subscribes to package lifecycle notifications. A failed
// subscription degrades the catalog to manual refresh only.
func (c *PackagedCatalog) StartWatching() {
	sub, err := c.Subscribe()
	if err != nil {
		log.ErrorErr(log.CatWatcher, "package subscription unavailable, catalog is static", err)
		return
	}
	c.sub = sub

	go func() {
		for {
			select {
			case _, ok := <-sub.Changes():
				if !ok {
					return
				}
				c.Invalidate()
			case <-c.done:
				return
			}
		}
	}()
}

// Invalidate discards the memoized enumeration, if any.
func (c *PackagedCatalog) Invalidate() {
	if c.memo.invalidate() {
		log.Info(log.CatCatalog, "package catalog changed, invalidating packaged apps cache")
		c.events.Publish(pubsub.InvalidatedEvent, SourcePackaged)
	}
}

// Close stops watching and event delivery.
func (c *PackagedCatalog) Close() {
	close(c.done)
	if c.sub != nil {
		_ = c.sub.Close()
	}
	c.events.Close()
}

func (c *PackagedCatalog) scan(ctx context.Context) ([]appentry.Entry, error) {
	packages, err := c.rt.Packages.Packages(ctx)
	if err != nil {
		// Enumeration trouble yields an empty catalog, not a crash.
		log.ErrorErr(log.CatCatalog, "error while enumerating packaged apps", err)
		return nil, nil
	}

	var entries []appentry.Entry
	for i := range packages {
		pkg := packages[i]
		for _, app := range pkg.Entries {
			entries = append(entries, appentry.NewPackaged(c.rt, app.DisplayName, app.AppUserModelID, &pkg))
		}
	}
	log.Info(log.CatCatalog, "packaged app scan complete", "count", len(entries))
	c.events.Publish(pubsub.RefreshedEvent, SourcePackaged)
	return entries, nil
}
