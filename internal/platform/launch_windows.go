//go:build windows

package platform

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"syscall"

	"golang.org/x/sys/windows"
)

// ShellLauncher starts targets through ShellExecute so file
// associations apply and elevation goes through the "runas" verb.
type ShellLauncher struct{}

func (ShellLauncher) Start(_ context.Context, spec StartSpec) error {
	verb := "open"
	if spec.Elevate {
		verb = "runas"
	}

	verbPtr, err := windows.UTF16PtrFromString(verb)
	if err != nil {
		return fmt.Errorf("encoding verb: %w", err)
	}
	pathPtr, err := windows.UTF16PtrFromString(spec.Path)
	if err != nil {
		return fmt.Errorf("encoding path: %w", err)
	}
	var argsPtr *uint16
	if spec.Args != "" {
		argsPtr, err = windows.UTF16PtrFromString(spec.Args)
		if err != nil {
			return fmt.Errorf("encoding arguments: %w", err)
		}
	}

	err = windows.ShellExecute(0, verbPtr, pathPtr, argsPtr, nil, windows.SW_SHOWNORMAL)
	if err != nil {
		if errors.Is(err, windows.ERROR_CANCELLED) {
			return ErrElevationDeclined
		}
		return fmt.Errorf("shell execute %s: %w", spec.Path, err)
	}
	return nil
}

// ExplorerRevealer opens Explorer with the given item selected.
type ExplorerRevealer struct{}

func (ExplorerRevealer) Reveal(path string) error {
	cmd := exec.Command("explorer.exe", fmt.Sprintf(`/select,"%s"`, path))
	cmd.SysProcAttr = &syscall.SysProcAttr{HideWindow: false}
	return cmd.Start()
}

// ShellActivator launches packaged apps through the shell AppsFolder,
// which resolves app user model ids to their activation targets.
type ShellActivator struct{}

func (ShellActivator) Activate(_ context.Context, appUserModelID string) error {
	target := `shell:AppsFolder\` + appUserModelID

	verbPtr, err := windows.UTF16PtrFromString("open")
	if err != nil {
		return fmt.Errorf("encoding verb: %w", err)
	}
	targetPtr, err := windows.UTF16PtrFromString(target)
	if err != nil {
		return fmt.Errorf("encoding activation target: %w", err)
	}

	err = windows.ShellExecute(0, verbPtr, targetPtr, nil, nil, windows.SW_SHOWNORMAL)
	if err != nil {
		if errors.Is(err, windows.ERROR_FILE_NOT_FOUND) || errors.Is(err, windows.ERROR_PATH_NOT_FOUND) {
			return ErrActivationNotFound
		}
		return fmt.Errorf("activating %s: %w", appUserModelID, err)
	}
	return nil
}
