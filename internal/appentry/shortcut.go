package appentry

import (
	"context"
	"errors"

	"appdock/internal/log"
	"appdock/internal/platform"
)

// Shortcut is a shell link. Launching goes through the shortcut file
// itself so the link's own working directory and arguments apply; the
// resolved target and icon paths only feed icon resolution.
type Shortcut struct {
	base
	shortcutPath string
	targetPath   string
	iconPath     string
	alwaysAdmin  bool
}

// NewShortcut builds a shortcut entry and resolves its icon.
func NewShortcut(rt *Runtime, defaultName, shortcutPath, targetPath, iconPath string, alwaysAdmin bool) *Shortcut {
	s := &Shortcut{
		base:         newBase(rt, defaultName),
		shortcutPath: shortcutPath,
		targetPath:   targetPath,
		iconPath:     iconPath,
		alwaysAdmin:  alwaysAdmin,
	}
	s.ResolveIcon()
	return s
}

func (s *Shortcut) Kind() Kind { return KindShortcut }

// Path returns the shortcut file path.
func (s *Shortcut) Path() string { return s.shortcutPath }

// TargetPath returns the resolved link target.
func (s *Shortcut) TargetPath() string { return s.targetPath }

// IconPath returns the resolved icon location.
func (s *Shortcut) IconPath() string { return s.iconPath }

// AlwaysAdmin reports whether every launch elevates.
func (s *Shortcut) AlwaysAdmin() bool { return s.alwaysAdmin }

// SetAlwaysAdmin toggles the persisted elevation flag.
func (s *Shortcut) SetAlwaysAdmin(v bool) { s.alwaysAdmin = v }

// Identity is the shortcut file path; the same target reached through
// two different shortcuts stays two entries.
func (s *Shortcut) Identity() Identity {
	return Identity{Kind: KindShortcut, DefaultName: s.defaultName, Target: s.shortcutPath}
}

func (s *Shortcut) ResolveIcon() {
	fallback := s.iconPath
	if fallback == "" {
		fallback = s.targetPath
	}
	s.assignIcon(fallback)
}

func (s *Shortcut) Launch(ctx context.Context, asAdmin bool) error {
	err := s.rt.Launcher.Start(ctx, platform.StartSpec{
		Path:    s.shortcutPath,
		Elevate: asAdmin || s.alwaysAdmin,
	})
	if err != nil {
		if errors.Is(err, platform.ErrElevationDeclined) {
			log.Info(log.CatLaunch, "elevation declined", "path", s.shortcutPath)
			return nil
		}
		log.Warn(log.CatLaunch, "failed to start shortcut", "path", s.shortcutPath, "error", err)
	}
	return nil
}

func (s *Shortcut) OpenLocation() {
	if !pathExists(s.shortcutPath) {
		return
	}
	if err := s.rt.Revealer.Reveal(s.shortcutPath); err != nil {
		log.Debug(log.CatLaunch, "failed to reveal shortcut", "path", s.shortcutPath, "error", err)
	}
}

func (s *Shortcut) Clone() Entry {
	clone := &Shortcut{
		base:         newBase(s.rt, s.defaultName),
		shortcutPath: s.shortcutPath,
		targetPath:   s.targetPath,
		iconPath:     s.iconPath,
		alwaysAdmin:  s.alwaysAdmin,
	}
	clone.name = s.name
	clone.overrideIcon = s.overrideIcon
	clone.ResolveIcon()
	return clone
}
