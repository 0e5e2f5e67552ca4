package appentry

import (
	"context"
	"errors"
	"fmt"

	"appdock/internal/log"
	"appdock/internal/platform"
)

// Packaged is one launchable entry point of an installed packaged app.
// The package handle is runtime-only state: it is rebound after
// deserialization because package full names drift across OS updates
// while the app user model id stays stable.
type Packaged struct {
	base
	appUserModelID  string
	packageFullName string
	pkg             *platform.Package
}

// NewPackaged builds a packaged entry bound to pkg.
func NewPackaged(rt *Runtime, defaultName, appUserModelID string, pkg *platform.Package) *Packaged {
	p := &Packaged{
		base:           newBase(rt, defaultName),
		appUserModelID: appUserModelID,
		pkg:            pkg,
	}
	if pkg != nil {
		p.packageFullName = pkg.FullName
	}
	p.ResolveIcon()
	return p
}

func (p *Packaged) Kind() Kind { return KindPackaged }

// AppUserModelID returns the stable activation id.
func (p *Packaged) AppUserModelID() string { return p.appUserModelID }

// PackageFullName returns the (drift-prone) package identifier.
func (p *Packaged) PackageFullName() string { return p.packageFullName }

// Bound reports whether the runtime package handle is attached.
func (p *Packaged) Bound() bool { return p.pkg != nil }

func (p *Packaged) Identity() Identity {
	return Identity{
		Kind:        KindPackaged,
		DefaultName: p.defaultName,
		Target:      p.packageFullName,
		Detail:      p.appUserModelID,
	}
}

// Rebind attaches the runtime package handle: exact match by package
// full name first, then a full enumeration matched by app user model id
// (the full name can change across OS updates, the activation id not).
func (p *Packaged) Rebind(ctx context.Context) error {
	if p.pkg != nil {
		return nil
	}

	packages, err := p.rt.Packages.Packages(ctx)
	if err != nil {
		return fmt.Errorf("enumerating packages: %w", err)
	}

	for i := range packages {
		if packages[i].FullName == p.packageFullName {
			p.pkg = &packages[i]
			return nil
		}
	}
	for i := range packages {
		for _, entry := range packages[i].Entries {
			if entry.AppUserModelID == p.appUserModelID {
				p.pkg = &packages[i]
				p.packageFullName = packages[i].FullName
				return nil
			}
		}
	}
	return fmt.Errorf("package for %s: %w", p.appUserModelID, platform.ErrActivationNotFound)
}

// ResolveIcon renders package logos at double the configured size.
func (p *Packaged) ResolveIcon() {
	p.assignIconSized(p.logoPath(), 2*p.iconSize())
}

func (p *Packaged) logoPath() string {
	if p.pkg == nil {
		return ""
	}
	for _, entry := range p.pkg.Entries {
		if entry.AppUserModelID == p.appUserModelID {
			return entry.LogoPath
		}
	}
	return ""
}

// Launch activates the packaged app. asAdmin is ignored: elevation of
// packaged apps is managed by the OS. A missing activation target is a
// reported, recoverable outcome; unexpected platform errors propagate.
func (p *Packaged) Launch(ctx context.Context, _ bool) error {
	err := p.rt.Activator.Activate(ctx, p.appUserModelID)
	if err != nil {
		if errors.Is(err, platform.ErrActivationNotFound) {
			log.Warn(log.CatLaunch, "no activation target for packaged app", "aumid", p.appUserModelID)
			return err
		}
		log.ErrorErr(log.CatLaunch, "packaged app launch failed", err, "aumid", p.appUserModelID)
		return fmt.Errorf("launching %s: %w", p.appUserModelID, err)
	}
	return nil
}

// OpenLocation is unsupported for packaged apps.
func (p *Packaged) OpenLocation() {}

func (p *Packaged) Clone() Entry {
	clone := &Packaged{
		base:            newBase(p.rt, p.defaultName),
		appUserModelID:  p.appUserModelID,
		packageFullName: p.packageFullName,
		pkg:             p.pkg,
	}
	clone.name = p.name
	clone.overrideIcon = p.overrideIcon
	clone.ResolveIcon()
	return clone
}
