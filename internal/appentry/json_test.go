package appentry_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"appdock/internal/appentry"
	"appdock/internal/platform"
	"appdock/internal/testutil"
)

func TestEntryJSON_RoundTripAllVariants(t *testing.T) {
	rt, c := testutil.NewRuntime()
	c.Enumerator.Pkgs = []platform.Package{{
		FullName: "Pub.App_1.0_x64__abc",
		Entries: []platform.AppListEntry{
			{AppUserModelID: "Pub.App_abc!App", DisplayName: "Store App"},
		},
	}}

	entries := []appentry.Entry{
		appentry.NewExe(rt, "Notepad", `C:\Windows\notepad.exe`, "-fast", true),
		appentry.NewShortcut(rt, "Paint", `C:\sm\Paint.lnk`, `C:\mspaint.exe`, `C:\paint.ico`, false),
		appentry.NewPackaged(rt, "Store App", "Pub.App_abc!App",
			&platform.Package{FullName: "Pub.App_1.0_x64__abc"}),
		appentry.NewFolder(rt, "Docs", `C:\Users\me\Documents`),
		appentry.NewFile(rt, "Notes", `C:\Users\me\notes.txt`),
	}

	for _, original := range entries {
		original.SetName("Renamed " + original.DefaultName())

		data, err := appentry.MarshalEntry(original)
		require.NoError(t, err)

		decoded, err := appentry.UnmarshalEntry(data, rt)
		require.NoError(t, err)

		require.Equal(t, original.Kind(), decoded.Kind())
		require.Equal(t, original.Identity(), decoded.Identity())
		require.Equal(t, original.Name(), decoded.Name())
	}
}

func TestEntryJSON_DiscriminatorAndSnakeCaseKeys(t *testing.T) {
	rt, _ := testutil.NewRuntime()
	e := appentry.NewExe(rt, "Notepad", `C:\Windows\notepad.exe`, "", false)

	data, err := appentry.MarshalEntry(e)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	require.Equal(t, "exe", raw["kind"])
	require.Equal(t, "Notepad", raw["default_display_name"])
	require.Equal(t, `C:\Windows\notepad.exe`, raw["exe_file_path"])
}

func TestEntryJSON_UnknownKindFails(t *testing.T) {
	rt, _ := testutil.NewRuntime()
	_, err := appentry.UnmarshalEntry([]byte(`{"kind":"widget"}`), rt)
	require.Error(t, err)
}

func TestEntryJSON_PackagedRebindsByAUMIDAfterDrift(t *testing.T) {
	rt, c := testutil.NewRuntime()
	// The installed package was renumbered by an OS update: the full
	// name on disk no longer matches what was persisted.
	c.Enumerator.Pkgs = []platform.Package{{
		FullName: "Pub.App_2.0_x64__abc",
		Entries: []platform.AppListEntry{
			{AppUserModelID: "Pub.App_abc!App", DisplayName: "Store App"},
		},
	}}

	persisted := `{
		"kind": "uwp",
		"default_display_name": "Store App",
		"display_name": "Store App",
		"app_user_model_id": "Pub.App_abc!App",
		"package_family_name": "Pub.App_1.0_x64__abc"
	}`

	decoded, err := appentry.UnmarshalEntry([]byte(persisted), rt)
	require.NoError(t, err)

	p, ok := decoded.(*appentry.Packaged)
	require.True(t, ok)
	require.True(t, p.Bound())
	require.Equal(t, "Pub.App_2.0_x64__abc", p.PackageFullName(),
		"rebinding by activation id must adopt the current full name")
}

func TestEntryJSON_PackagedSurvivesUninstalledPackage(t *testing.T) {
	rt, _ := testutil.NewRuntime()

	persisted := `{
		"kind": "uwp",
		"default_display_name": "Ghost App",
		"app_user_model_id": "Gone_xyz!App",
		"package_family_name": "Gone_1.0_x64__xyz"
	}`

	decoded, err := appentry.UnmarshalEntry([]byte(persisted), rt)
	require.NoError(t, err, "an uninstalled package must not break decoding")

	p := decoded.(*appentry.Packaged)
	require.False(t, p.Bound())
}
