//go:build !windows

package platform

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// ShellLauncher starts targets with the desktop environment's default
// opener. Elevation prompts are a Windows concern; requesting one here
// is reported as unsupported.
type ShellLauncher struct{}

func (ShellLauncher) Start(_ context.Context, spec StartSpec) error {
	if spec.Elevate {
		return fmt.Errorf("elevated launch of %s: %w", spec.Path, ErrUnsupported)
	}
	args := []string{spec.Path}
	if spec.Args != "" {
		args = append(args, strings.Fields(spec.Args)...)
	}
	cmd := exec.Command("xdg-open", args...)
	return cmd.Start()
}

// ExplorerRevealer opens the containing directory of the given path.
type ExplorerRevealer struct{}

func (ExplorerRevealer) Reveal(path string) error {
	return exec.Command("xdg-open", filepath.Dir(path)).Start()
}

// ShellActivator has no packaged-app story off Windows.
type ShellActivator struct{}

func (ShellActivator) Activate(_ context.Context, appUserModelID string) error {
	return fmt.Errorf("activating %s: %w", appUserModelID, ErrUnsupported)
}
