// Package icon abstracts icon rendering behind a collaborator interface
// and provides grid composition for group icons. Rendering a missing or
// unreadable path yields no icon, never an error.
package icon

import (
	"context"
	"image"
	// Register decoders for the formats the file renderer understands.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
)

// DefaultSize is the pixel size icons are rendered at. Package logos
// render at twice this for sharper downscaling.
const DefaultSize = 64

// Renderer turns a file, folder or logo path into a bitmap.
type Renderer interface {
	// RenderPath renders the icon for a path at the given pixel size.
	// A missing or inaccessible path yields (nil, nil).
	RenderPath(ctx context.Context, path string, size int) (image.Image, error)
}

// FileRenderer is a minimal Renderer decoding image files directly.
// Shell thumbnail extraction is platform work layered on top of this;
// anything that is not a decodable image yields no icon.
type FileRenderer struct{}

func (FileRenderer) RenderPath(_ context.Context, path string, _ int) (image.Image, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.Open(path) //nolint:gosec // G304: path comes from the user's own catalog
	if err != nil {
		return nil, nil
	}
	defer func() { _ = f.Close() }()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, nil
	}
	return img, nil
}
