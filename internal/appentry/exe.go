package appentry

import (
	"context"
	"errors"

	"appdock/internal/log"
	"appdock/internal/platform"
)

// Exe is a native executable with optional arguments and a persisted
// always-run-as-admin flag.
type Exe struct {
	base
	exePath     string
	arguments   string
	alwaysAdmin bool
}

// NewExe builds an executable entry and resolves its icon.
func NewExe(rt *Runtime, defaultName, exePath, arguments string, alwaysAdmin bool) *Exe {
	e := &Exe{
		base:        newBase(rt, defaultName),
		exePath:     exePath,
		arguments:   arguments,
		alwaysAdmin: alwaysAdmin,
	}
	e.ResolveIcon()
	return e
}

func (e *Exe) Kind() Kind { return KindExe }

// Path returns the executable path.
func (e *Exe) Path() string { return e.exePath }

// Arguments returns the launch arguments.
func (e *Exe) Arguments() string { return e.arguments }

// AlwaysAdmin reports whether every launch elevates.
func (e *Exe) AlwaysAdmin() bool { return e.alwaysAdmin }

// SetAlwaysAdmin toggles the persisted elevation flag.
func (e *Exe) SetAlwaysAdmin(v bool) { e.alwaysAdmin = v }

func (e *Exe) Identity() Identity {
	return Identity{Kind: KindExe, DefaultName: e.defaultName, Target: e.exePath, Detail: e.arguments}
}

func (e *Exe) ResolveIcon() {
	e.assignIcon(e.exePath)
}

// Launch starts the executable. A declined elevation prompt is not an
// error; other start failures are logged and swallowed the same way.
func (e *Exe) Launch(ctx context.Context, asAdmin bool) error {
	err := e.rt.Launcher.Start(ctx, platform.StartSpec{
		Path:    e.exePath,
		Args:    e.arguments,
		Elevate: asAdmin || e.alwaysAdmin,
	})
	if err != nil {
		if errors.Is(err, platform.ErrElevationDeclined) {
			log.Info(log.CatLaunch, "elevation declined", "path", e.exePath)
			return nil
		}
		log.Warn(log.CatLaunch, "failed to start executable", "path", e.exePath, "error", err)
	}
	return nil
}

func (e *Exe) OpenLocation() {
	if !pathExists(e.exePath) {
		return
	}
	if err := e.rt.Revealer.Reveal(e.exePath); err != nil {
		log.Debug(log.CatLaunch, "failed to reveal executable", "path", e.exePath, "error", err)
	}
}

func (e *Exe) Clone() Entry {
	clone := &Exe{
		base:        newBase(e.rt, e.defaultName),
		exePath:     e.exePath,
		arguments:   e.arguments,
		alwaysAdmin: e.alwaysAdmin,
	}
	clone.name = e.name
	clone.overrideIcon = e.overrideIcon
	clone.ResolveIcon()
	return clone
}
