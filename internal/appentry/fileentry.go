package appentry

import (
	"context"

	"appdock/internal/log"
	"appdock/internal/platform"
)

// Folder opens a directory with the OS file browser.
type Folder struct {
	base
	folderPath string
}

// NewFolder builds a folder entry and resolves its icon.
func NewFolder(rt *Runtime, defaultName, folderPath string) *Folder {
	f := &Folder{base: newBase(rt, defaultName), folderPath: folderPath}
	f.ResolveIcon()
	return f
}

func (f *Folder) Kind() Kind { return KindFolder }

// Path returns the folder path.
func (f *Folder) Path() string { return f.folderPath }

func (f *Folder) Identity() Identity {
	return Identity{Kind: KindFolder, DefaultName: f.defaultName, Target: f.folderPath}
}

func (f *Folder) ResolveIcon() {
	f.assignIcon(f.folderPath)
}

// Launch opens the folder with the default handler, fire-and-forget.
func (f *Folder) Launch(ctx context.Context, _ bool) error {
	launchDetached(f.rt, f.folderPath)
	return nil
}

func (f *Folder) OpenLocation() {
	if !pathExists(f.folderPath) {
		return
	}
	if err := f.rt.Revealer.Reveal(f.folderPath); err != nil {
		log.Debug(log.CatLaunch, "failed to reveal folder", "path", f.folderPath, "error", err)
	}
}

func (f *Folder) Clone() Entry {
	clone := &Folder{base: newBase(f.rt, f.defaultName), folderPath: f.folderPath}
	clone.name = f.name
	clone.overrideIcon = f.overrideIcon
	clone.ResolveIcon()
	return clone
}

// File opens an arbitrary file with its default handler.
type File struct {
	base
	filePath string
}

// NewFile builds a file entry and resolves its icon.
func NewFile(rt *Runtime, defaultName, filePath string) *File {
	f := &File{base: newBase(rt, defaultName), filePath: filePath}
	f.ResolveIcon()
	return f
}

func (f *File) Kind() Kind { return KindFile }

// Path returns the file path.
func (f *File) Path() string { return f.filePath }

func (f *File) Identity() Identity {
	return Identity{Kind: KindFile, DefaultName: f.defaultName, Target: f.filePath}
}

func (f *File) ResolveIcon() {
	f.assignIcon(f.filePath)
}

// Launch opens the file with the default handler, fire-and-forget.
func (f *File) Launch(ctx context.Context, _ bool) error {
	launchDetached(f.rt, f.filePath)
	return nil
}

func (f *File) OpenLocation() {
	if !pathExists(f.filePath) {
		return
	}
	if err := f.rt.Revealer.Reveal(f.filePath); err != nil {
		log.Debug(log.CatLaunch, "failed to reveal file", "path", f.filePath, "error", err)
	}
}

func (f *File) Clone() Entry {
	clone := &File{base: newBase(f.rt, f.defaultName), filePath: f.filePath}
	clone.name = f.name
	clone.overrideIcon = f.overrideIcon
	clone.ResolveIcon()
	return clone
}

// launchDetached starts the target in the background; the caller does
// not wait and errors go to the log sink only.
func launchDetached(rt *Runtime, path string) {
	go func() {
		if err := rt.Launcher.Start(context.Background(), platform.StartSpec{Path: path}); err != nil {
			log.Warn(log.CatLaunch, "failed to open target", "path", path, "error", err)
		}
	}()
}
