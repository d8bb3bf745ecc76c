package scene

import (
	"image"
	"image/color"
)

// Canvas is the fixed-resolution display surface the renderer draws on.
// Exactly one renderer owns a canvas; nothing else mutates it.
type Canvas interface {
	// Size returns the panel dimensions in pixels.
	Size() (w, h int)
	// Fill paints the rectangle with a solid color.
	Fill(r image.Rectangle, c color.RGBA)
	// DrawImage places img with its top-left corner at.
	DrawImage(at image.Point, img image.Image)
	// Present flips the composed frame to the output device.
	Present() error
}

// Text measures and draws vector text. Measure returns the pixel width of s
// at the given size; Draw places s with its baseline at (x, y).
type Text interface {
	Measure(s string, size float64) int
	Draw(s string, x, y int, size float64, c color.RGBA)
}
