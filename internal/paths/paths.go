// Package paths resolves the appdock config and data locations.
package paths

import (
	"os"
	"path/filepath"
)

const appDirName = "appdock"

// DataDir returns the directory for persisted state such as the group
// store. Falls back to a dot directory under the working directory
// when no user config dir is available.
func DataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, appDirName)
	}
	return "." + appDirName
}

// ConfigFile returns the default config file path.
func ConfigFile() string {
	return filepath.Join(DataDir(), "config.yaml")
}

// LogFile returns the default debug log path.
func LogFile() string {
	return filepath.Join(DataDir(), "appdock.log")
}
