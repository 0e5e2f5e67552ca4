package platform

import (
	"fmt"
	"strings"

	lnk "github.com/parsiya/golnk"
)

// LnkReader reads Windows shell link (.lnk) files. Only the target
// path, icon location and arguments are extracted; the rest of the
// format is ignored.
type LnkReader struct{}

func (LnkReader) Read(path string) (Shortcut, error) {
	f, err := lnk.File(path)
	if err != nil {
		return Shortcut{}, fmt.Errorf("reading shortcut %s: %w", path, err)
	}

	target := f.LinkInfo.LocalBasePath
	if target == "" {
		target = f.LinkInfo.LocalBasePathUnicode
	}
	if target == "" {
		// Links without link info sometimes carry a relative target.
		target = f.StringData.RelativePath
	}

	return Shortcut{
		TargetPath:   strings.TrimSpace(target),
		IconLocation: strings.TrimSpace(f.StringData.IconLocation),
		Arguments:    strings.TrimSpace(f.StringData.CommandLineArguments),
	}, nil
}
