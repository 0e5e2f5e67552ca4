// Package appentry models launchable targets as a closed variant set:
// native executables, start-menu shortcuts, packaged (store) apps,
// folders and plain files. Variants share naming, icon resolution and
// clone semantics; identity deliberately excludes the user-editable
// display name and icon override.
package appentry

import (
	"context"
	"image"
	"os"

	"appdock/internal/async"
	"appdock/internal/icon"
	"appdock/internal/platform"
)

// Kind discriminates the entry variants. The values double as the JSON
// discriminator tags.
type Kind string

const (
	KindExe      Kind = "exe"
	KindShortcut Kind = "shortcut"
	KindPackaged Kind = "uwp"
	KindFolder   Kind = "folder"
	KindFile     Kind = "file"
)

// Identity is the comparable key used for equality and deduplication.
// Target and Detail carry the variant-specific fields (paths, package
// ids, arguments); the mutable display name and icon override never
// participate.
type Identity struct {
	Kind        Kind
	DefaultName string
	Target      string
	Detail      string
}

// Entry is one launchable target.
type Entry interface {
	Kind() Kind
	DefaultName() string
	Name() string
	SetName(string)
	OverrideIconPath() string
	SetOverrideIconPath(string)
	Identity() Identity

	// Icon is the current observable icon computation. ResolveIcon
	// replaces it with a fresh one derived from current field values.
	Icon() *async.Value[image.Image]
	ResolveIcon()

	Launch(ctx context.Context, asAdmin bool) error
	OpenLocation()
	Clone() Entry
}

// Equal reports whether two entries denote the same target.
func Equal(a, b Entry) bool {
	return a.Identity() == b.Identity()
}

// Runtime bundles the OS collaborators entries act through. A single
// Runtime is shared by every entry produced from it.
type Runtime struct {
	Renderer   icon.Renderer
	Launcher   platform.Launcher
	Revealer   platform.Revealer
	Activator  platform.Activator
	Packages   platform.PackageEnumerator
	Dispatcher async.Dispatcher

	// IconSize is the edge length for entry icons. Zero means
	// icon.DefaultSize.
	IconSize int
}

// NewRuntime returns a Runtime backed by the real OS collaborators and
// a caching renderer.
func NewRuntime(dispatcher async.Dispatcher) *Runtime {
	if dispatcher == nil {
		dispatcher = async.Direct{}
	}
	return &Runtime{
		Renderer:   icon.NewCachingRenderer(icon.FileRenderer{}),
		Launcher:   platform.ShellLauncher{},
		Revealer:   platform.ExplorerRevealer{},
		Activator:  platform.ShellActivator{},
		Packages:   platform.RegistryEnumerator{},
		Dispatcher: dispatcher,
	}
}

// base carries the fields every variant shares.
type base struct {
	rt           *Runtime
	defaultName  string
	name         string
	overrideIcon string
	icon         *async.Value[image.Image]
}

func newBase(rt *Runtime, defaultName string) base {
	return base{
		rt:          rt,
		defaultName: defaultName,
		name:        defaultName,
		icon:        noIcon(rt),
	}
}

func (b *base) DefaultName() string { return b.defaultName }
func (b *base) Name() string        { return b.name }
func (b *base) SetName(name string) { b.name = name }

func (b *base) OverrideIconPath() string        { return b.overrideIcon }
func (b *base) SetOverrideIconPath(path string) { b.overrideIcon = path }

func (b *base) Icon() *async.Value[image.Image] { return b.icon }

// assignIcon installs a fresh icon computation over the resolved source
// path. Resolution order: override path if it exists, then the variant
// fallback if it exists, then no icon.
func (b *base) assignIcon(fallback string) {
	b.assignIconSized(fallback, b.iconSize())
}

func (b *base) assignIconSized(fallback string, size int) {
	src := ""
	switch {
	case b.overrideIcon != "" && pathExists(b.overrideIcon):
		src = b.overrideIcon
	case fallback != "" && pathExists(fallback):
		src = fallback
	}

	rt := b.rt
	b.icon = async.NewValue(func(ctx context.Context) (image.Image, error) {
		if src == "" {
			return nil, nil
		}
		return rt.Renderer.RenderPath(ctx, src, size)
	}, async.WithDispatcher[image.Image](rt.Dispatcher))
}

func (b *base) iconSize() int {
	if b.rt != nil && b.rt.IconSize > 0 {
		return b.rt.IconSize
	}
	return icon.DefaultSize
}

func noIcon(rt *Runtime) *async.Value[image.Image] {
	dispatcher := async.Dispatcher(async.Direct{})
	if rt != nil && rt.Dispatcher != nil {
		dispatcher = rt.Dispatcher
	}
	return async.NewValue(func(context.Context) (image.Image, error) {
		return nil, nil
	}, async.WithDispatcher[image.Image](dispatcher))
}

func pathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
