package catalog

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"appdock/internal/appentry"
	"appdock/internal/async"
	"appdock/internal/log"
	"appdock/internal/platform"
	"appdock/internal/pubsub"
)

// ShortcutCatalog scans start-menu style directories for .lnk files.
type ShortcutCatalog struct {
	rt      *appentry.Runtime
	reader  platform.ShortcutReader
	roots   []string
	memo    memo
	watcher *dirWatcher
	events  *pubsub.Broker[Source]
	done    chan struct{}

	// Debounce overrides the change-coalescing window when positive.
	// Set before StartWatching.
	Debounce time.Duration
}

// DefaultShortcutRoots returns the common and per-user start-menu
// Programs directories.
func DefaultShortcutRoots() []string {
	var roots []string
	if programData := os.Getenv("ProgramData"); programData != "" {
		roots = append(roots, filepath.Join(programData, "Microsoft", "Windows", "Start Menu", "Programs"))
	}
	if appData := os.Getenv("APPDATA"); appData != "" {
		roots = append(roots, filepath.Join(appData, "Microsoft", "Windows", "Start Menu", "Programs"))
	}
	return roots
}

// NewShortcutCatalog builds a catalog over the given scan roots.
// The catalog is static until StartWatching is called.
func NewShortcutCatalog(rt *appentry.Runtime, reader platform.ShortcutReader, roots []string) *ShortcutCatalog {
	c := &ShortcutCatalog{
		rt:     rt,
		reader: reader,
		roots:  roots,
		events: pubsub.NewBroker[Source](),
		done:   make(chan struct{}),
	}
	c.memo.scan = c.scan
	return c
}

// Events reports invalidations and completed rebuilds.
func (c *ShortcutCatalog) Events() *pubsub.Broker[Source] { return c.events }

func (c *ShortcutCatalog) Get() *async.Task[[]appentry.Entry] {
	return c.memo.get()
}

func (c *ShortcutCatalog) Entries(ctx context.Context) ([]appentry.Entry, error) {
	return c.Get().Await(ctx)
}

// StartWatching installs a recursive filesystem watch over the scan
// roots. Setup failure degrades the catalog to manual refresh only.
func (c *ShortcutCatalog) StartWatching() {
	w, err := newDirWatcher(c.roots, isShortcutFile, c.Debounce)
	if err != nil {
		log.ErrorErr(log.CatWatcher, "start menu watch unavailable, catalog is static", err)
		return
	}
	c.watcher = w

	go func() {
		for {
			select {
			case <-w.Changes():
				c.Invalidate()
			case <-c.done:
				return
			}
		}
	}()
}

// Invalidate discards the memoized scan, if any, and announces it.
func (c *ShortcutCatalog) Invalidate() {
	if c.memo.invalidate() {
		log.Info(log.CatCatalog, "start menu changed, invalidating shortcut cache")
		c.events.Publish(pubsub.InvalidatedEvent, SourceShortcuts)
	}
}

// Close stops watching and event delivery.
func (c *ShortcutCatalog) Close() {
	close(c.done)
	if c.watcher != nil {
		c.watcher.Close()
	}
	c.events.Close()
}

func (c *ShortcutCatalog) scan(ctx context.Context) ([]appentry.Entry, error) {
	var entries []appentry.Entry
	for _, root := range c.roots {
		if _, err := os.Stat(root); err != nil {
			continue
		}
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				log.Warn(log.CatCatalog, "skipping unreadable path", "path", path, "error", err)
				return nil
			}
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			if d.IsDir() || !isShortcutFile(path) {
				return nil
			}
			if entry := c.parseShortcut(path); entry != nil {
				entries = append(entries, entry)
			}
			return nil
		})
		if err != nil {
			log.ErrorErr(log.CatCatalog, "error while scanning start menu root", err, "root", root)
		}
	}
	log.Info(log.CatCatalog, "shortcut scan complete", "count", len(entries))
	c.events.Publish(pubsub.RefreshedEvent, SourceShortcuts)
	return entries, nil
}

// parseShortcut turns one .lnk file into an entry, or nil when the
// shortcut is broken. One bad shortcut never aborts the scan.
func (c *ShortcutCatalog) parseShortcut(path string) appentry.Entry {
	shortcut, err := c.reader.Read(path)
	if err != nil {
		log.Warn(log.CatCatalog, "error while parsing shortcut", "path", path, "error", err)
		return nil
	}

	target := normalizePath(shortcut.TargetPath)
	iconPath := normalizePath(shortcut.IconLocation)
	if target == "" && iconPath == "" {
		// Dangling shortcut: neither the target nor the icon resolve
		// to anything addressable.
		return nil
	}

	title := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return appentry.NewShortcut(c.rt, title, path, target, iconPath, false)
}

func isShortcutFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".lnk")
}
