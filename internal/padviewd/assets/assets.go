// Package assets acquires and decodes the background image for a countdown
// session: download to a local cache directory, then decode to a raster the
// renderer can place.
package assets

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	xdraw "golang.org/x/image/draw"

	"github.com/padview/padview/internal/padviewd/errors"
)

// pngScale is the integer upscale applied to PNG sources. Mission thumbnails
// are small; doubling fills more of the panel, and the renderer centers on
// the scaled dimensions.
const pngScale = 2

// Format tags the two supported image encodings. Anything else fails
// explicitly at load time.
type Format string

const (
	FormatJPEG Format = "jpeg"
	FormatPNG  Format = "png"
)

// FormatFromPath derives the format tag from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return FormatJPEG, nil
	case ".png":
		return FormatPNG, nil
	default:
		return "", errors.NewError("UNSUPPORTED_FORMAT",
			fmt.Sprintf("unsupported image extension %q", filepath.Ext(path)),
			"assets.FormatFromPath", errors.ErrUnsupportedFormat)
	}
}

// Asset is a decoded raster ready for placement. Owned by the render pipeline
// for one session and discarded before the next fetch.
type Asset struct {
	Format Format
	// Width and Height are the display dimensions after any decode-time
	// scaling; centering math uses these.
	Width  int
	Height int
	Image  *image.RGBA
	// Path is the backing file, reclaimed when the session ends.
	Path string
}

// Load decodes the image at path. PNG sources are decoded at 2x integer
// scale; JPEG sources are kept 1:1. Decode failures never crash the render
// loop; callers log them and proceed with no background.
func Load(path string) (*Asset, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewError("ASSET_UNAVAILABLE",
			fmt.Sprintf("opening image: %v", err),
			"assets.Load", errors.ErrAssetUnavailable)
	}
	defer f.Close()

	var src image.Image
	switch format {
	case FormatJPEG:
		src, err = jpeg.Decode(f)
	case FormatPNG:
		src, err = png.Decode(f)
	}
	if err != nil {
		return nil, errors.NewError("ASSET_UNAVAILABLE",
			fmt.Sprintf("decoding %s: %v", format, err),
			"assets.Load", errors.ErrAssetUnavailable)
	}

	scale := 1
	if format == FormatPNG {
		scale = pngScale
	}

	b := src.Bounds()
	w, h := b.Dx()*scale, b.Dy()*scale
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), src, b, xdraw.Src, nil)

	return &Asset{
		Format: format,
		Width:  w,
		Height: h,
		Image:  dst,
		Path:   path,
	}, nil
}

// Discard removes the asset's backing file, reclaiming storage before the
// next fetch. Safe on a nil asset.
func (a *Asset) Discard() {
	if a == nil || a.Path == "" {
		return
	}
	_ = os.Remove(a.Path)
}
