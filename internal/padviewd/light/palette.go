package light

import "github.com/padview/padview/internal/padviewd/colorblend"

// Palette is an ordered, cyclic sequence of color stops for ambient cycling.
// Read-only once constructed.
type Palette []colorblend.RGB

// Nebula is the default ambient palette: a seven-stop deep-space gradient.
var Nebula = Palette{
	{R: 148, G: 0, B: 211},  // dark violet
	{R: 75, G: 0, B: 130},   // indigo
	{R: 0, G: 0, B: 255},    // deep blue
	{R: 0, G: 255, B: 255},  // cyan
	{R: 255, G: 20, B: 147}, // deep pink
	{R: 255, G: 69, B: 0},   // orange-red
	{R: 128, G: 0, B: 128},  // purple
}

// Stop returns the palette entry at i, wrapping cyclically.
func (p Palette) Stop(i int) colorblend.RGB {
	return p[i%len(p)]
}
