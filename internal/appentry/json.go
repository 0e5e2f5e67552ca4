package appentry

import (
	"context"
	"encoding/json"
	"fmt"

	"appdock/internal/log"
)

// wireEntry is the flat persistence shape shared by all variants. The
// kind tag selects which fields are meaningful.
type wireEntry struct {
	Kind Kind `json:"kind"`

	DefaultDisplayName  string `json:"default_display_name"`
	DisplayName         string `json:"display_name"`
	OverrideAppIconPath string `json:"override_app_icon_path,omitempty"`

	ExeFilePath string `json:"exe_file_path,omitempty"`
	Arguments   string `json:"arguments,omitempty"`
	AlwaysAdmin bool   `json:"always_as_admin,omitempty"`

	ShortcutFilePath string `json:"shortcut_file_path,omitempty"`
	TargetPath       string `json:"target_path,omitempty"`
	IconPath         string `json:"icon_path,omitempty"`

	AppUserModelID    string `json:"app_user_model_id,omitempty"`
	PackageFamilyName string `json:"package_family_name,omitempty"`

	FolderPath string `json:"folder_path,omitempty"`
	FilePath   string `json:"file_path,omitempty"`
}

// MarshalEntry serializes an entry with its discriminator tag.
func MarshalEntry(e Entry) ([]byte, error) {
	w, err := toWire(e)
	if err != nil {
		return nil, err
	}
	return json.Marshal(w)
}

func toWire(e Entry) (wireEntry, error) {
	w := wireEntry{
		Kind:                e.Kind(),
		DefaultDisplayName:  e.DefaultName(),
		DisplayName:         e.Name(),
		OverrideAppIconPath: e.OverrideIconPath(),
	}

	switch v := e.(type) {
	case *Exe:
		w.ExeFilePath = v.Path()
		w.Arguments = v.Arguments()
		w.AlwaysAdmin = v.AlwaysAdmin()
	case *Shortcut:
		w.ShortcutFilePath = v.Path()
		w.TargetPath = v.TargetPath()
		w.IconPath = v.IconPath()
		w.AlwaysAdmin = v.AlwaysAdmin()
	case *Packaged:
		w.AppUserModelID = v.AppUserModelID()
		w.PackageFamilyName = v.PackageFullName()
	case *Folder:
		w.FolderPath = v.Path()
	case *File:
		w.FilePath = v.Path()
	default:
		return wireEntry{}, fmt.Errorf("unknown entry type %T", e)
	}
	return w, nil
}

// UnmarshalEntry decodes an entry, re-derives its icon and, for
// packaged apps, rebinds the runtime package handle.
func UnmarshalEntry(data []byte, rt *Runtime) (Entry, error) {
	var w wireEntry
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("decoding entry: %w", err)
	}
	return fromWire(w, rt)
}

func fromWire(w wireEntry, rt *Runtime) (Entry, error) {
	var entry Entry
	switch w.Kind {
	case KindExe:
		entry = NewExe(rt, w.DefaultDisplayName, w.ExeFilePath, w.Arguments, w.AlwaysAdmin)
	case KindShortcut:
		entry = NewShortcut(rt, w.DefaultDisplayName, w.ShortcutFilePath, w.TargetPath, w.IconPath, w.AlwaysAdmin)
	case KindPackaged:
		p := &Packaged{
			base:            newBase(rt, w.DefaultDisplayName),
			appUserModelID:  w.AppUserModelID,
			packageFullName: w.PackageFamilyName,
		}
		if err := p.Rebind(context.Background()); err != nil {
			// The app may have been uninstalled; keep the entry, it
			// just has no handle (and no icon) until it reappears.
			log.Warn(log.CatStore, "could not rebind packaged app", "aumid", w.AppUserModelID, "error", err)
		}
		p.ResolveIcon()
		entry = p
	case KindFolder:
		entry = NewFolder(rt, w.DefaultDisplayName, w.FolderPath)
	case KindFile:
		entry = NewFile(rt, w.DefaultDisplayName, w.FilePath)
	default:
		return nil, fmt.Errorf("unknown entry kind %q", w.Kind)
	}

	if w.DisplayName != "" {
		entry.SetName(w.DisplayName)
	}
	if w.OverrideAppIconPath != "" {
		entry.SetOverrideIconPath(w.OverrideAppIconPath)
		entry.ResolveIcon()
	}
	return entry, nil
}
