package appentry_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"appdock/internal/appentry"
	"appdock/internal/platform"
	"appdock/internal/testutil"
)

func writeFile(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	return path
}

func awaitIcon(t *testing.T, e appentry.Entry) {
	t.Helper()
	_ = e.Icon().Result() // starts the dormant computation
	task := e.Icon().Task()
	require.NotNil(t, task)
	select {
	case <-task.Done():
	case <-time.After(time.Second):
		require.Fail(t, "icon resolution never completed")
	}
}

func TestResolveIcon_OverrideWinsWhenItExists(t *testing.T) {
	dir := t.TempDir()
	exe := writeFile(t, dir, "app.exe")
	override := writeFile(t, dir, "custom.png")

	rt, c := testutil.NewRuntime()
	e := appentry.NewExe(rt, "App", exe, "", false)
	e.SetOverrideIconPath(override)
	e.ResolveIcon()

	awaitIcon(t, e)
	rendered := c.Renderer.Rendered()
	require.Equal(t, override, rendered[len(rendered)-1])
}

func TestResolveIcon_MissingOverrideFallsBackToTarget(t *testing.T) {
	dir := t.TempDir()
	exe := writeFile(t, dir, "app.exe")

	rt, c := testutil.NewRuntime()
	e := appentry.NewExe(rt, "App", exe, "", false)
	e.SetOverrideIconPath(filepath.Join(dir, "missing.png"))
	e.ResolveIcon()

	awaitIcon(t, e)
	rendered := c.Renderer.Rendered()
	require.Equal(t, exe, rendered[len(rendered)-1])
}

func TestResolveIcon_NoSourceYieldsNoIconWithoutError(t *testing.T) {
	rt, c := testutil.NewRuntime()
	e := appentry.NewExe(rt, "Gone", `C:\does\not\exist.exe`, "", false)

	awaitIcon(t, e)
	require.True(t, e.Icon().Succeeded())
	require.Nil(t, e.Icon().Result())
	require.Empty(t, c.Renderer.Rendered(), "renderer must not be asked for missing paths")
}

func TestResolveIcon_ShortcutPrefersIconPathThenTarget(t *testing.T) {
	dir := t.TempDir()
	target := writeFile(t, dir, "app.exe")
	iconFile := writeFile(t, dir, "app.ico")

	rt, c := testutil.NewRuntime()

	withIcon := appentry.NewShortcut(rt, "App", filepath.Join(dir, "a.lnk"), target, iconFile, false)
	awaitIcon(t, withIcon)
	require.Equal(t, []string{iconFile}, c.Renderer.Rendered())

	withoutIcon := appentry.NewShortcut(rt, "App", filepath.Join(dir, "b.lnk"), target, "", false)
	awaitIcon(t, withoutIcon)
	rendered := c.Renderer.Rendered()
	require.Equal(t, target, rendered[len(rendered)-1])
}

func TestResolveIcon_PackagedLogoRendersAtDoubleSize(t *testing.T) {
	dir := t.TempDir()
	logo := writeFile(t, dir, "logo.png")
	exe := writeFile(t, dir, "app.exe")

	rt, c := testutil.NewRuntime()
	pkg := &platform.Package{
		FullName: "Vendor.App_1.0_abc123",
		Entries: []platform.AppListEntry{
			{AppUserModelID: "Vendor.App_abc123!App", LogoPath: logo},
		},
	}

	packaged := appentry.NewPackaged(rt, "App", "Vendor.App_abc123!App", pkg)
	awaitIcon(t, packaged)

	plain := appentry.NewExe(rt, "App", exe, "", false)
	awaitIcon(t, plain)

	sizes := c.Renderer.Sizes()
	require.Len(t, sizes, 2)
	require.Equal(t, 2*sizes[1], sizes[0], "packaged logos render at twice the entry icon size")
}

func TestResolveIcon_ReassignsFreshComputation(t *testing.T) {
	dir := t.TempDir()
	exe := writeFile(t, dir, "app.exe")

	rt, _ := testutil.NewRuntime()
	e := appentry.NewExe(rt, "App", exe, "", false)

	before := e.Icon()
	e.ResolveIcon()
	require.NotSame(t, before, e.Icon())
}
