// Package search matches queries against the union of the app catalogs.
//
// Matching runs in two tiers. The first tier keeps entries whose name
// contains the query or whose name is contained in the query, both
// case-insensitive. Only when that yields nothing does the second tier
// run, which admits fuzzy matches on token initialisms and weighted
// similarity. A newer search supersedes any search still in flight.
package search

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"appdock/internal/appentry"
	"appdock/internal/catalog"
	"appdock/internal/log"
)

// ErrSuperseded reports that a newer search started before this one
// finished, so its results were discarded.
var ErrSuperseded = errors.New("search superseded by a newer query")

// Engine queries one or more catalogs and merges their entries.
type Engine struct {
	catalogs []catalog.Catalog
	coll     *collate.Collator

	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
}

// NewEngine builds an engine over the given catalogs.
func NewEngine(catalogs ...catalog.Catalog) *Engine {
	return &Engine{
		catalogs: catalogs,
		coll:     collate.New(language.Und, collate.IgnoreCase),
	}
}

// All returns every catalog entry, deduplicated and sorted by default
// display name.
func (e *Engine) All(ctx context.Context) ([]appentry.Entry, error) {
	entries, err := e.union(ctx)
	if err != nil {
		return nil, err
	}
	e.sortEntries(entries)
	return entries, nil
}

// Search returns the entries matching query, sorted by default display
// name. Starting a new search cancels and supersedes any search still
// running; the superseded call returns ErrSuperseded.
func (e *Engine) Search(ctx context.Context, query string) ([]appentry.Entry, error) {
	e.mu.Lock()
	e.gen++
	gen := e.gen
	if e.cancel != nil {
		e.cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	e.cancel = cancel
	e.mu.Unlock()
	defer cancel()

	query = strings.TrimSpace(query)
	if query == "" {
		entries, allErr := e.All(ctx)
		return e.finish(gen, entries, allErr)
	}

	entries, err := e.union(ctx)
	if err != nil {
		return e.finish(gen, nil, err)
	}

	matched := tierOne(query, entries)
	if len(matched) == 0 {
		matched = tierTwo(ctx, query, entries)
	}
	e.sortEntries(matched)
	log.Debug(log.CatSearch, "search finished",
		"query", query, "candidates", len(entries), "matches", len(matched))
	return e.finish(gen, matched, nil)
}

// finish drops the result when a newer search has started since.
func (e *Engine) finish(gen uint64, entries []appentry.Entry, err error) ([]appentry.Entry, error) {
	e.mu.Lock()
	superseded := gen != e.gen
	e.mu.Unlock()
	if superseded {
		return nil, ErrSuperseded
	}
	return entries, err
}

// union awaits every catalog concurrently and merges their entries.
// The same app often surfaces through several sources (a start-menu
// shortcut and a packaged entry point), so duplicates are dropped by
// default display name, keeping the first occurrence. A catalog that
// fails is logged and skipped rather than failing the whole search.
func (e *Engine) union(ctx context.Context) ([]appentry.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	type result struct {
		entries []appentry.Entry
		err     error
	}
	results := make([]result, len(e.catalogs))

	var wg sync.WaitGroup
	for i, cat := range e.catalogs {
		wg.Add(1)
		go func(i int, cat catalog.Catalog) {
			defer wg.Done()
			entries, err := cat.Entries(ctx)
			results[i] = result{entries: entries, err: err}
		}(i, cat)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var merged []appentry.Entry
	for _, r := range results {
		if r.err != nil {
			log.ErrorErr(log.CatSearch, "catalog unavailable for search", r.err)
			continue
		}
		for _, entry := range r.entries {
			name := entry.DefaultName()
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			merged = append(merged, entry)
		}
	}
	return merged, nil
}

// Both tiers match on the default display name; a user-assigned
// rename never changes what a query finds.
func tierOne(query string, entries []appentry.Entry) []appentry.Entry {
	q := strings.ToLower(query)
	var matched []appentry.Entry
	for _, entry := range entries {
		name := strings.ToLower(entry.DefaultName())
		if strings.Contains(name, q) || strings.Contains(q, name) {
			matched = append(matched, entry)
		}
	}
	return matched
}

func tierTwo(ctx context.Context, query string, entries []appentry.Entry) []appentry.Entry {
	var matched []appentry.Entry
	for _, entry := range entries {
		if ctx.Err() != nil {
			return nil
		}
		if fuzzyMatch(query, entry.DefaultName()) {
			matched = append(matched, entry)
		}
	}
	return matched
}

func (e *Engine) sortEntries(entries []appentry.Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return e.coll.CompareString(entries[i].DefaultName(), entries[j].DefaultName()) < 0
	})
}
