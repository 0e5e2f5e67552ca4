package group_test

import (
	"encoding/json"
	"image"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"appdock/internal/appentry"
	"appdock/internal/group"
	"appdock/internal/icon"
	"appdock/internal/testutil"
)

// iconFile drops a placeholder file the fake renderer will happily
// "render"; entries only resolve icons for paths that exist on disk.
func iconFile(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte("img"), 0o644))
	return path
}

func exeWithIcon(t *testing.T, rt *appentry.Runtime, name string) appentry.Entry {
	t.Helper()
	return appentry.NewExe(rt, name, iconFile(t, name+".exe"), "", false)
}

func awaitIcon(t *testing.T, g *group.Group) {
	t.Helper()
	_ = g.Icon().Result() // starts the dormant computation
	task := g.Icon().Task()
	require.NotNil(t, task)
	select {
	case <-task.Done():
	case <-time.After(time.Second):
		require.Fail(t, "icon composition never completed")
	}
}

func alphaAt(img image.Image, x, y int) uint32 {
	_, _, _, a := img.At(x, y).RGBA()
	return a
}

func TestGroup_OverrideIconWins(t *testing.T) {
	rt, c := testutil.NewRuntime()
	override := iconFile(t, "override.png")

	g := group.New(rt, "Tools", exeWithIcon(t, rt, "Notepad"))
	g.SetOverrideIconPath(override)

	awaitIcon(t, g)
	img := g.Icon().Result()
	require.NotNil(t, img)
	require.Contains(t, c.Renderer.Rendered(), override)
}

func TestGroup_MissingOverrideFallsBackToGrid(t *testing.T) {
	rt, c := testutil.NewRuntime()

	g := group.New(rt, "Tools", exeWithIcon(t, rt, "Notepad"))
	g.SetOverrideIconPath(filepath.Join(t.TempDir(), "gone.png"))

	awaitIcon(t, g)
	img := g.Icon().Result()
	require.NotNil(t, img)
	require.Equal(t, icon.GridCanvasSize, img.Bounds().Dx())
	require.NotContains(t, c.Renderer.Rendered(), "gone.png")
}

func TestGroup_TwoMembersComposeDiagonally(t *testing.T) {
	rt, _ := testutil.NewRuntime()

	g := group.New(rt, "Pair",
		exeWithIcon(t, rt, "Notepad"),
		exeWithIcon(t, rt, "Paint"),
	)

	awaitIcon(t, g)
	img := g.Icon().Result()
	require.NotNil(t, img)

	half := icon.GridCanvasSize / 2
	quarter := half / 2
	// First tile sits bottom-left, second top-right; the other two
	// quadrants stay transparent.
	require.NotZero(t, alphaAt(img, quarter, half+quarter))
	require.NotZero(t, alphaAt(img, half+quarter, quarter))
	require.Zero(t, alphaAt(img, quarter, quarter))
	require.Zero(t, alphaAt(img, half+quarter, half+quarter))
}

func TestGroup_EmptyGroupHasNoIcon(t *testing.T) {
	rt, _ := testutil.NewRuntime()

	g := group.New(rt, "Empty")
	awaitIcon(t, g)
	require.Nil(t, g.Icon().Result())
	require.True(t, g.Icon().Succeeded())
}

func TestGroup_FailedMemberIconLeavesCellEmpty(t *testing.T) {
	rt, c := testutil.NewRuntime()
	c.Renderer.Err = os.ErrPermission

	g := group.New(rt, "Tools",
		exeWithIcon(t, rt, "Notepad"),
		exeWithIcon(t, rt, "Paint"),
	)

	awaitIcon(t, g)
	img := g.Icon().Result()
	require.NotNil(t, img, "a member render failure must not sink the composition")
	require.True(t, g.Icon().Succeeded())
}

func TestGroup_AddDeduplicatesByIdentity(t *testing.T) {
	rt, _ := testutil.NewRuntime()
	entry := appentry.NewExe(rt, "Notepad", `C:\apps\notepad.exe`, "", false)

	g := group.New(rt, "Tools")
	require.True(t, g.Add(entry))
	require.False(t, g.Add(entry.Clone()), "an equal entry is already a member")
	require.Equal(t, 1, g.Len())
}

func TestGroup_Remove(t *testing.T) {
	rt, _ := testutil.NewRuntime()
	a := appentry.NewExe(rt, "Notepad", `C:\apps\notepad.exe`, "", false)
	b := appentry.NewExe(rt, "Paint", `C:\apps\paint.exe`, "", false)

	g := group.New(rt, "Tools", a, b)
	require.True(t, g.Remove(a.Clone()))
	require.False(t, g.Remove(a))
	require.Equal(t, 1, g.Len())
}

func TestGroup_MembershipChangeReplacesIconComputation(t *testing.T) {
	rt, _ := testutil.NewRuntime()
	g := group.New(rt, "Tools")

	before := g.Icon()
	g.Add(appentry.NewExe(rt, "Notepad", `C:\apps\notepad.exe`, "", false))
	require.NotSame(t, before, g.Icon())
}

func TestGroup_CloneIsDeep(t *testing.T) {
	rt, _ := testutil.NewRuntime()
	member := appentry.NewExe(rt, "Notepad", `C:\apps\notepad.exe`, "", false)
	g := group.New(rt, "Tools", member)
	g.SetOverrideIconPath(`C:\icons\tools.png`)

	clone := g.Clone()
	require.Equal(t, g.Name(), clone.Name())
	require.Equal(t, g.OverrideIconPath(), clone.OverrideIconPath())
	require.NotSame(t, g.Icon(), clone.Icon())

	cloned := clone.Items()[0]
	require.NotSame(t, member, cloned)
	require.True(t, appentry.Equal(member, cloned))

	cloned.SetName("Editor")
	require.Equal(t, "Notepad", g.Items()[0].Name())
}

func TestGroupJSON_RoundTrip(t *testing.T) {
	rt, _ := testutil.NewRuntime()
	exe := appentry.NewExe(rt, "Notepad", `C:\apps\notepad.exe`, "-n", true)
	exe.SetName("Editor")
	folder := appentry.NewFolder(rt, "Downloads", `C:\Users\me\Downloads`)

	g := group.New(rt, "Daily", exe, folder)
	g.SetOverrideIconPath(`C:\icons\daily.png`)

	data, err := group.Marshal(g)
	require.NoError(t, err)

	loaded, err := group.Unmarshal(data, rt)
	require.NoError(t, err)
	require.Equal(t, "Daily", loaded.Name())
	require.Equal(t, `C:\icons\daily.png`, loaded.OverrideIconPath())
	require.Equal(t, 2, loaded.Len())
	require.True(t, appentry.Equal(exe, loaded.Items()[0]))
	require.Equal(t, "Editor", loaded.Items()[0].Name())
	require.True(t, appentry.Equal(folder, loaded.Items()[1]))
}

func TestGroupJSON_WireKeys(t *testing.T) {
	rt, _ := testutil.NewRuntime()
	g := group.New(rt, "Daily", appentry.NewExe(rt, "Notepad", `C:\apps\notepad.exe`, "", false))

	data, err := group.Marshal(g)
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	require.Contains(t, raw, "group_name")
	require.Contains(t, raw, "items")
}

func TestGroupJSON_BadMemberFailsDecode(t *testing.T) {
	rt, _ := testutil.NewRuntime()

	_, err := group.Unmarshal([]byte(`{"group_name":"X","items":[{"kind":"martian"}]}`), rt)
	require.Error(t, err)
}
