package appentry_test

import (
	"testing"

	"pgregory.net/rapid"

	"appdock/internal/appentry"
	"appdock/internal/testutil"
)

// Identity laws checked over arbitrary field values: clones stay equal
// to their original, and mutating a clone's display fields never
// changes either side's identity.
func TestIdentityLaws(t *testing.T) {
	rt, _ := testutil.NewRuntime()

	rapid.Check(t, func(t *rapid.T) {
		name := rapid.StringN(1, 40, -1).Draw(t, "name")
		path := rapid.StringN(1, 60, -1).Draw(t, "path")
		args := rapid.StringN(0, 20, -1).Draw(t, "args")
		admin := rapid.Bool().Draw(t, "admin")

		var entry appentry.Entry
		switch rapid.IntRange(0, 3).Draw(t, "variant") {
		case 0:
			entry = appentry.NewExe(rt, name, path, args, admin)
		case 1:
			entry = appentry.NewShortcut(rt, name, path, path+".exe", "", admin)
		case 2:
			entry = appentry.NewFolder(rt, name, path)
		default:
			entry = appentry.NewFile(rt, name, path)
		}

		clone := entry.Clone()
		if !appentry.Equal(entry, clone) {
			t.Fatalf("clone identity diverged: %+v vs %+v", entry.Identity(), clone.Identity())
		}

		clone.SetName(rapid.String().Draw(t, "newName"))
		clone.SetOverrideIconPath(rapid.String().Draw(t, "newIcon"))
		if !appentry.Equal(entry, clone) {
			t.Fatalf("mutable fields leaked into identity")
		}
		if entry.Name() != name {
			t.Fatalf("mutating the clone changed the original's name")
		}
	})
}
