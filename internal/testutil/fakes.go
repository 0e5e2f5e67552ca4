// Package testutil provides fake OS collaborators and runtime builders
// for tests across the catalog, entry and group packages.
package testutil

import (
	"context"
	"image"
	"sync"

	"appdock/internal/appentry"
	"appdock/internal/async"
	"appdock/internal/icon"
	"appdock/internal/platform"
)

// SolidImage returns a small opaque bitmap usable as a fake icon.
func SolidImage() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, image.White)
		}
	}
	return img
}

// FakeLauncher records start requests and returns a configured error.
type FakeLauncher struct {
	mu    sync.Mutex
	Err   error
	specs []platform.StartSpec
}

func (l *FakeLauncher) Start(_ context.Context, spec platform.StartSpec) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.specs = append(l.specs, spec)
	return l.Err
}

// Specs returns the recorded start requests.
func (l *FakeLauncher) Specs() []platform.StartSpec {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]platform.StartSpec(nil), l.specs...)
}

// FakeRevealer records reveal requests.
type FakeRevealer struct {
	mu    sync.Mutex
	Err   error
	paths []string
}

func (r *FakeRevealer) Reveal(path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = append(r.paths, path)
	return r.Err
}

// Paths returns the recorded reveal targets.
func (r *FakeRevealer) Paths() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.paths...)
}

// FakeActivator records packaged-app activations.
type FakeActivator struct {
	mu     sync.Mutex
	Err    error
	aumids []string
}

func (a *FakeActivator) Activate(_ context.Context, aumid string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.aumids = append(a.aumids, aumid)
	return a.Err
}

// AUMIDs returns the recorded activation ids.
func (a *FakeActivator) AUMIDs() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.aumids...)
}

// FakeRenderer returns a fixed bitmap for every existing-path render
// and records the requested paths and sizes.
type FakeRenderer struct {
	mu    sync.Mutex
	Img   image.Image
	Err   error
	paths []string
	sizes []int
}

func (r *FakeRenderer) RenderPath(_ context.Context, path string, size int) (image.Image, error) {
	r.mu.Lock()
	r.paths = append(r.paths, path)
	r.sizes = append(r.sizes, size)
	r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	if r.Img != nil {
		return r.Img, nil
	}
	return SolidImage(), nil
}

// Rendered returns the recorded render paths.
func (r *FakeRenderer) Rendered() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.paths...)
}

// Sizes returns the recorded render sizes, in call order.
func (r *FakeRenderer) Sizes() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int(nil), r.sizes...)
}

// FakeEnumerator serves a fixed package list and counts enumerations.
type FakeEnumerator struct {
	mu    sync.Mutex
	Pkgs  []platform.Package
	Err   error
	calls int
}

func (e *FakeEnumerator) Packages(_ context.Context) ([]platform.Package, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.calls++
	if e.Err != nil {
		return nil, e.Err
	}
	return append([]platform.Package(nil), e.Pkgs...), nil
}

// Calls returns how many times Packages ran.
func (e *FakeEnumerator) Calls() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.calls
}

// FakeShortcutReader serves canned shortcut contents by path.
type FakeShortcutReader struct {
	Shortcuts map[string]platform.Shortcut
	Err       error
}

func (r *FakeShortcutReader) Read(path string) (platform.Shortcut, error) {
	if r.Err != nil {
		return platform.Shortcut{}, r.Err
	}
	if s, ok := r.Shortcuts[path]; ok {
		return s, nil
	}
	return platform.Shortcut{}, platform.ErrUnsupported
}

// Collaborators bundles the fakes behind a runtime.
type Collaborators struct {
	Launcher   *FakeLauncher
	Revealer   *FakeRevealer
	Activator  *FakeActivator
	Renderer   *FakeRenderer
	Enumerator *FakeEnumerator
}

// NewRuntime builds an appentry.Runtime wired to fresh fakes with a
// direct (synchronous) dispatcher.
func NewRuntime() (*appentry.Runtime, *Collaborators) {
	c := &Collaborators{
		Launcher:   &FakeLauncher{},
		Revealer:   &FakeRevealer{},
		Activator:  &FakeActivator{},
		Renderer:   &FakeRenderer{},
		Enumerator: &FakeEnumerator{},
	}
	rt := &appentry.Runtime{
		Renderer:   c.Renderer,
		Launcher:   c.Launcher,
		Revealer:   c.Revealer,
		Activator:  c.Activator,
		Packages:   c.Enumerator,
		Dispatcher: async.Direct{},
	}
	return rt, c
}

var _ icon.Renderer = (*FakeRenderer)(nil)
var _ platform.Launcher = (*FakeLauncher)(nil)
var _ platform.Revealer = (*FakeRevealer)(nil)
var _ platform.Activator = (*FakeActivator)(nil)
var _ platform.PackageEnumerator = (*FakeEnumerator)(nil)
var _ platform.ShortcutReader = (*FakeShortcutReader)(nil)
