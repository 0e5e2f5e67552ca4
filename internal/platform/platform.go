// Package platform defines the OS collaborator surfaces the catalog and
// entry model depend on: process start, reveal-in-file-browser, shortcut
// reading, packaged-app enumeration and activation, and package-change
// notifications. Implementations live behind build tags; everything above
// this package works against the interfaces.
package platform

import (
	"context"
	"errors"
)

var (
	// ErrElevationDeclined is returned when the user refuses an
	// elevation prompt. Callers treat it as a recoverable outcome.
	ErrElevationDeclined = errors.New("elevation declined by user")

	// ErrActivationNotFound is returned when no launchable entry point
	// matches the requested app user model id.
	ErrActivationNotFound = errors.New("no matching activation target")

	// ErrUnsupported is returned for operations the variant or the
	// platform does not support.
	ErrUnsupported = errors.New("operation not supported")
)

// StartSpec describes a process start request.
type StartSpec struct {
	Path    string
	Args    string
	Elevate bool
}

// Launcher starts OS processes, optionally elevated.
type Launcher interface {
	Start(ctx context.Context, spec StartSpec) error
}

// Revealer opens a file browser with the given path selected.
type Revealer interface {
	Reveal(path string) error
}

// Shortcut is the subset of a shell link this system cares about.
type Shortcut struct {
	TargetPath   string
	IconLocation string
	Arguments    string
}

// ShortcutReader extracts target, icon location and arguments from a
// shortcut file.
type ShortcutReader interface {
	Read(path string) (Shortcut, error)
}

// AppListEntry is one launchable entry point of an installed package.
type AppListEntry struct {
	AppUserModelID string
	DisplayName    string
	LogoPath       string
}

// Package is an installed packaged application.
type Package struct {
	FullName    string
	InstallPath string
	Entries     []AppListEntry
}

// PackageEnumerator lists the current user's installed packages.
type PackageEnumerator interface {
	Packages(ctx context.Context) ([]Package, error)
}

// Activator launches a packaged app entry point. Elevation is managed
// by the OS for packaged apps, so there is no elevate knob here.
type Activator interface {
	Activate(ctx context.Context, appUserModelID string) error
}

// Subscription delivers change notifications from an OS source.
// Close releases the underlying watch.
type Subscription interface {
	Changes() <-chan struct{}
	Close() error
}
