package search_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"appdock/internal/appentry"
	"appdock/internal/async"
	"appdock/internal/catalog"
	"appdock/internal/search"
	"appdock/internal/testutil"
)

// staticCatalog serves a fixed entry list without scanning anything.
type staticCatalog struct {
	entries []appentry.Entry
	err     error
}

func (c *staticCatalog) Get() *async.Task[[]appentry.Entry] {
	if c.err != nil {
		return async.Failed[[]appentry.Entry](c.err)
	}
	return async.Resolved(c.entries)
}

func (c *staticCatalog) Entries(_ context.Context) ([]appentry.Entry, error) {
	return c.entries, c.err
}

var _ catalog.Catalog = (*staticCatalog)(nil)

func exeEntries(rt *appentry.Runtime, names ...string) []appentry.Entry {
	entries := make([]appentry.Entry, 0, len(names))
	for _, name := range names {
		entries = append(entries, appentry.NewExe(rt, name, `C:\apps\`+name+`.exe`, "", false))
	}
	return entries
}

func names(entries []appentry.Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Name())
	}
	return out
}

func TestSearch_SubstringMatch(t *testing.T) {
	rt, _ := testutil.NewRuntime()
	eng := search.NewEngine(&staticCatalog{
		entries: exeEntries(rt, "Notepad", "Paint", "Visual Studio Code"),
	})

	got, err := eng.Search(context.Background(), "note")
	require.NoError(t, err)
	require.Equal(t, []string{"Notepad"}, names(got))
}

func TestSearch_QueryContainingNameMatches(t *testing.T) {
	rt, _ := testutil.NewRuntime()
	eng := search.NewEngine(&staticCatalog{
		entries: exeEntries(rt, "Notepad", "Paint"),
	})

	// The reverse containment direction: a long query still surfaces
	// the shorter name it wraps.
	got, err := eng.Search(context.Background(), "notepad++")
	require.NoError(t, err)
	require.Equal(t, []string{"Notepad"}, names(got))
}

func TestSearch_FuzzyTierOnlyWhenSubstringEmpty(t *testing.T) {
	rt, _ := testutil.NewRuntime()
	eng := search.NewEngine(&staticCatalog{
		entries: exeEntries(rt, "Notepad", "Paint", "Visual Studio Code"),
	})

	// Initialism match.
	got, err := eng.Search(context.Background(), "vsc")
	require.NoError(t, err)
	require.Equal(t, []string{"Visual Studio Code"}, names(got))

	// Weighted similarity catches dropped vowels.
	got, err = eng.Search(context.Background(), "ntpd")
	require.NoError(t, err)
	require.Contains(t, names(got), "Notepad")
}

func TestSearch_SubstringHitSuppressesFuzzy(t *testing.T) {
	rt, _ := testutil.NewRuntime()
	eng := search.NewEngine(&staticCatalog{
		entries: exeEntries(rt, "Paint", "Painter Pro"),
	})

	got, err := eng.Search(context.Background(), "paint")
	require.NoError(t, err)
	require.Equal(t, []string{"Paint", "Painter Pro"}, names(got))
}

func TestSearch_NoMatch(t *testing.T) {
	rt, _ := testutil.NewRuntime()
	eng := search.NewEngine(&staticCatalog{
		entries: exeEntries(rt, "Notepad"),
	})

	got, err := eng.Search(context.Background(), "zzzzqqqq")
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestSearch_MatchesDefaultNameDespiteRename(t *testing.T) {
	rt, _ := testutil.NewRuntime()
	entry := appentry.NewExe(rt, "Notepad", `C:\Windows\notepad.exe`, "", false)
	entry.SetName("My Editor")
	eng := search.NewEngine(&staticCatalog{entries: []appentry.Entry{entry}})

	got, err := eng.Search(context.Background(), "note")
	require.NoError(t, err)
	require.Len(t, got, 1)

	// The rename does not create a second searchable name.
	got, err = eng.Search(context.Background(), "editor")
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestAll_DeduplicatesAcrossCatalogs(t *testing.T) {
	rt, _ := testutil.NewRuntime()
	shared := exeEntries(rt, "Notepad")
	eng := search.NewEngine(
		&staticCatalog{entries: append(exeEntries(rt, "Paint"), shared...)},
		&staticCatalog{entries: exeEntries(rt, "Notepad")},
	)

	got, err := eng.All(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"Notepad", "Paint"}, names(got))
}

func TestAll_MergesSameAppFromDifferentSources(t *testing.T) {
	rt, _ := testutil.NewRuntime()
	shortcut := appentry.NewShortcut(rt, "Notepad",
		`C:\ProgramData\Start Menu\Notepad.lnk`, `C:\Windows\notepad.exe`, "", false)
	packaged := appentry.NewPackaged(rt, "Notepad", "Microsoft.Notepad_8we!App", nil)

	eng := search.NewEngine(
		&staticCatalog{entries: []appentry.Entry{shortcut}},
		&staticCatalog{entries: []appentry.Entry{packaged}},
	)

	// Kinds and targets differ, but the app is the same; exactly one
	// entry survives the merge.
	got, err := eng.All(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "Notepad", got[0].DefaultName())
}

func TestAll_SortsCaseInsensitively(t *testing.T) {
	rt, _ := testutil.NewRuntime()
	eng := search.NewEngine(&staticCatalog{
		entries: exeEntries(rt, "gamma", "Beta", "alpha"),
	})

	got, err := eng.All(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"alpha", "Beta", "gamma"}, names(got))
}

func TestSearch_EmptyQueryReturnsEverything(t *testing.T) {
	rt, _ := testutil.NewRuntime()
	eng := search.NewEngine(&staticCatalog{
		entries: exeEntries(rt, "Beta", "Alpha"),
	})

	got, err := eng.Search(context.Background(), "   ")
	require.NoError(t, err)
	require.Equal(t, []string{"Alpha", "Beta"}, names(got))
}

// blockingCatalog stalls its first Entries call until the caller's
// context is canceled, then answers immediately.
type blockingCatalog struct {
	mu      sync.Mutex
	calls   int
	started chan struct{}
	entries []appentry.Entry
}

func (c *blockingCatalog) Get() *async.Task[[]appentry.Entry] {
	return async.Resolved(c.entries)
}

func (c *blockingCatalog) Entries(ctx context.Context) ([]appentry.Entry, error) {
	c.mu.Lock()
	c.calls++
	first := c.calls == 1
	c.mu.Unlock()
	if first {
		close(c.started)
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return c.entries, nil
}

func TestSearch_NewerQuerySupersedesInFlight(t *testing.T) {
	rt, _ := testutil.NewRuntime()
	cat := &blockingCatalog{
		started: make(chan struct{}),
		entries: exeEntries(rt, "Notepad"),
	}
	eng := search.NewEngine(cat)

	firstDone := make(chan error, 1)
	go func() {
		_, err := eng.Search(context.Background(), "note")
		firstDone <- err
	}()
	<-cat.started

	got, err := eng.Search(context.Background(), "note")
	require.NoError(t, err)
	require.Equal(t, []string{"Notepad"}, names(got))

	require.ErrorIs(t, <-firstDone, search.ErrSuperseded)
}
