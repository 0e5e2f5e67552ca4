//go:build windows

package platform

import (
	"context"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sys/windows/registry"

	"appdock/internal/log"
)

// packagesKeyPath is where the app model repository records the current
// user's installed packages.
const packagesKeyPath = `Software\Classes\Local Settings\Software\Microsoft\Windows\CurrentVersion\AppModel\Repository\Packages`

// RegistryEnumerator lists installed packages from the app model
// repository registry key and derives entry points from each package's
// AppxManifest.xml.
type RegistryEnumerator struct{}

func (RegistryEnumerator) Packages(ctx context.Context) ([]Package, error) {
	key, err := registry.OpenKey(registry.CURRENT_USER, packagesKeyPath, registry.READ)
	if err != nil {
		return nil, fmt.Errorf("opening package repository key: %w", err)
	}
	defer func() { _ = key.Close() }()

	names, err := key.ReadSubKeyNames(-1)
	if err != nil {
		return nil, fmt.Errorf("listing packages: %w", err)
	}

	var packages []Package
	for _, fullName := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		pkg, err := readPackage(key, fullName)
		if err != nil {
			// One unreadable package never aborts the enumeration.
			log.Warn(log.CatCatalog, "skipping unreadable package", "package", fullName, "error", err)
			continue
		}
		if len(pkg.Entries) > 0 {
			packages = append(packages, pkg)
		}
	}
	return packages, nil
}

func readPackage(parent registry.Key, fullName string) (Package, error) {
	key, err := registry.OpenKey(parent, fullName, registry.READ)
	if err != nil {
		return Package{}, fmt.Errorf("opening package key: %w", err)
	}
	defer func() { _ = key.Close() }()

	rootFolder, _, err := key.GetStringValue("PackageRootFolder")
	if err != nil {
		return Package{}, fmt.Errorf("reading package root: %w", err)
	}

	displayName, _, _ := key.GetStringValue("DisplayName")

	manifest, err := readManifest(filepath.Join(rootFolder, "AppxManifest.xml"))
	if err != nil {
		return Package{}, err
	}

	family := packageFamilyName(fullName)
	pkg := Package{FullName: fullName, InstallPath: rootFolder}
	for _, app := range manifest.Applications {
		name := app.VisualElements.DisplayName
		if name == "" || strings.HasPrefix(name, "ms-resource:") {
			name = displayName
		}
		if name == "" || strings.HasPrefix(name, "ms-resource:") {
			name = manifest.Properties.DisplayName
		}
		if name == "" || strings.HasPrefix(name, "ms-resource:") {
			continue
		}
		if strings.EqualFold(app.VisualElements.AppListEntry, "none") {
			continue
		}
		pkg.Entries = append(pkg.Entries, AppListEntry{
			AppUserModelID: family + "!" + app.ID,
			DisplayName:    name,
			LogoPath:       resolveLogoPath(rootFolder, app.VisualElements.Logo, manifest.Properties.Logo),
		})
	}
	return pkg, nil
}

// packageFamilyName strips version, architecture and resource id from a
// package full name, keeping name and publisher hash.
func packageFamilyName(fullName string) string {
	parts := strings.Split(fullName, "_")
	if len(parts) < 2 {
		return fullName
	}
	return parts[0] + "_" + parts[len(parts)-1]
}

// resolveLogoPath picks the first declared logo asset that exists,
// trying the common scale-qualified variants.
func resolveLogoPath(root string, candidates ...string) string {
	for _, rel := range candidates {
		if rel == "" {
			continue
		}
		rel = filepath.FromSlash(strings.ReplaceAll(rel, `\`, `/`))
		base := filepath.Join(root, rel)
		ext := filepath.Ext(base)
		stem := strings.TrimSuffix(base, ext)
		for _, candidate := range []string{
			base,
			stem + ".scale-200" + ext,
			stem + ".scale-100" + ext,
			stem + ".scale-400" + ext,
		} {
			if _, err := os.Stat(candidate); err == nil {
				return candidate
			}
		}
	}
	return ""
}

type appxManifest struct {
	Properties struct {
		DisplayName string `xml:"DisplayName"`
		Logo        string `xml:"Logo"`
	} `xml:"Properties"`
	Applications []appxApplication `xml:"Applications>Application"`
}

type appxApplication struct {
	ID             string `xml:"Id,attr"`
	VisualElements struct {
		DisplayName  string `xml:"DisplayName,attr"`
		Logo         string `xml:"Square44x44Logo,attr"`
		AppListEntry string `xml:"AppListEntry,attr"`
	} `xml:"VisualElements"`
}

func readManifest(path string) (appxManifest, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path derives from the registry's package root
	if err != nil {
		return appxManifest{}, fmt.Errorf("reading manifest: %w", err)
	}
	var manifest appxManifest
	if err := xml.Unmarshal(data, &manifest); err != nil {
		return appxManifest{}, fmt.Errorf("parsing manifest: %w", err)
	}
	return manifest, nil
}
