// Package surface implements the display surface: an in-memory RGBA canvas
// with vector text, presented through pluggable sinks (framebuffer device,
// PNG snapshots).
package surface

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Presenter receives the composed frame on Present. Implementations must not
// retain the image past the call.
type Presenter interface {
	Present(frame *image.RGBA) error
}

// Memory is a fixed-resolution RGBA canvas implementing the renderer's
// Canvas and Text interfaces.
type Memory struct {
	img        *image.RGBA
	fnt        *opentype.Font
	faces      map[float64]font.Face
	presenters []Presenter
}

// NewMemory creates a w by h canvas presenting to the given sinks.
func NewMemory(w, h int, presenters ...Presenter) (*Memory, error) {
	fnt, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parsing font: %w", err)
	}
	return &Memory{
		img:        image.NewRGBA(image.Rect(0, 0, w, h)),
		fnt:        fnt,
		faces:      make(map[float64]font.Face),
		presenters: presenters,
	}, nil
}

// Size returns the panel dimensions.
func (m *Memory) Size() (int, int) {
	b := m.img.Bounds()
	return b.Dx(), b.Dy()
}

// Fill paints r with a solid color, clipped to the canvas.
func (m *Memory) Fill(r image.Rectangle, c color.RGBA) {
	draw.Draw(m.img, r.Intersect(m.img.Bounds()), image.NewUniform(c), image.Point{}, draw.Src)
}

// DrawImage places img with its top-left corner at.
func (m *Memory) DrawImage(at image.Point, img image.Image) {
	b := img.Bounds()
	dst := image.Rectangle{Min: at, Max: at.Add(b.Size())}
	draw.Draw(m.img, dst.Intersect(m.img.Bounds()), img, b.Min, draw.Over)
}

// Present pushes the frame to every sink. The first sink error is returned
// after all sinks have been attempted.
func (m *Memory) Present() error {
	var firstErr error
	for _, p := range m.presenters {
		if err := p.Present(m.img); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Measure returns the pixel width of s at the given font size.
func (m *Memory) Measure(s string, size float64) int {
	return font.MeasureString(m.face(size), s).Ceil()
}

// Draw renders s with its baseline at (x, y).
func (m *Memory) Draw(s string, x, y int, size float64, c color.RGBA) {
	d := font.Drawer{
		Dst:  m.img,
		Src:  image.NewUniform(c),
		Face: m.face(size),
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

// Frame exposes the current raster, for tests and the snapshot endpoint.
func (m *Memory) Frame() *image.RGBA {
	return m.img
}

// face returns a cached font face for the size. The canvas is owned by a
// single renderer, so no locking is needed here.
func (m *Memory) face(size float64) font.Face {
	if f, ok := m.faces[size]; ok {
		return f
	}
	f, err := opentype.NewFace(m.fnt, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		// goregular parsed at construction, so face creation only fails for
		// degenerate sizes. A bitmap face keeps the frame loop alive.
		return basicfont.Face7x13
	}
	m.faces[size] = f
	return f
}
