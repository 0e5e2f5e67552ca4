package catalog

import (
	"os"
	"path/filepath"
	"strings"
)

// normalizePath expands environment references, absolutizes the path
// and verifies it points at something on disk. It returns "" for paths
// the icon renderer cannot address: UNC shares and paths that are
// neither drive-rooted nor absolute.
func normalizePath(path string) string {
	if path == "" {
		return ""
	}

	expanded := expandWindowsEnv(path)

	if isUNC(expanded) {
		return ""
	}
	if !isDriveRooted(expanded) && !filepath.IsAbs(expanded) {
		return ""
	}

	expanded = filepath.Clean(expanded)
	if _, err := os.Stat(expanded); err != nil {
		return ""
	}
	return expanded
}

// expandWindowsEnv expands %VAR% references, leaving unknown variables
// untouched the way the shell does.
func expandWindowsEnv(s string) string {
	var b strings.Builder
	for {
		start := strings.IndexByte(s, '%')
		if start < 0 {
			b.WriteString(s)
			return b.String()
		}
		end := strings.IndexByte(s[start+1:], '%')
		if end < 0 {
			b.WriteString(s)
			return b.String()
		}
		name := s[start+1 : start+1+end]
		b.WriteString(s[:start])
		if value, ok := os.LookupEnv(name); ok {
			b.WriteString(value)
		} else {
			b.WriteString(s[start : start+end+2])
		}
		s = s[start+end+2:]
	}
}

func isUNC(path string) bool {
	return strings.HasPrefix(path, `\\`) || strings.HasPrefix(path, "//")
}

func isDriveRooted(path string) bool {
	if len(path) < 2 || path[1] != ':' {
		return false
	}
	c := path[0]
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
