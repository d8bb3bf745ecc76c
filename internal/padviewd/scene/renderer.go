// Package scene lays out and draws the countdown display: background image,
// static event details, and the per-frame countdown block.
package scene

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"

	"github.com/padview/padview/internal/padviewd/assets"
	"github.com/padview/padview/internal/padviewd/countdown"
	"github.com/padview/padview/internal/padviewd/launch"
)

// Font sizes, in points at the panel's 72 DPI.
const (
	countdownFontSize = 35
	labelFontSize     = 18
	titleFontSize     = 30
	detailFontSize    = 20
)

// countdownXNudge is an empirically tuned horizontal correction compensating
// for asymmetry in the font metrics; the measured-width centering alone
// leaves the block looking slightly right of center.
const countdownXNudge = -22

// fieldPad is the spacing between countdown elements.
const fieldPad = 15

// infoShadowOffset is the drop shadow displacement for the static text block,
// drawn black-then-white for legibility over a photographic background.
const infoShadowOffset = 2

// Palette of pens used by the renderer.
var (
	penWhite      = color.RGBA{255, 255, 255, 255}
	penBlack      = color.RGBA{0, 0, 0, 255}
	penDarkGrey   = color.RGBA{70, 70, 70, 255}
	penDarkerGrey = color.RGBA{30, 30, 30, 255}
)

// CountdownLayout is the draw plan for one countdown frame: measured element
// widths and the block's position. A pure function of the view's field
// strings and the text measurer.
type CountdownLayout struct {
	// OriginX is the x of the "T-" prefix baseline start.
	OriginX int
	// BaselineY is the countdown text baseline.
	BaselineY int
	// LabelY is the label row baseline.
	LabelY int
	// PrefixWidth is the measured width of the "T-" literal.
	PrefixWidth int
	// FieldWidths are the measured widths of the four numeric fields.
	FieldWidths [4]int
	// ColonWidth is the measured width of one separator.
	ColonWidth int
	// TotalWidth spans all elements and their padding.
	TotalWidth int
	// Box bounds the region cleared and redrawn each frame.
	Box image.Rectangle
}

// Renderer draws scenes onto its canvas. It is the sole owner of the canvas.
type Renderer struct {
	canvas Canvas
	text   Text
	logger *slog.Logger
}

// NewRenderer creates a renderer drawing on canvas with text.
func NewRenderer(canvas Canvas, text Text, logger *slog.Logger) *Renderer {
	return &Renderer{
		canvas: canvas,
		text:   text,
		logger: logger,
	}
}

// LayoutCountdown measures the countdown block for the given view and centers
// it horizontally. Called every frame: the day field widens as events move
// across month or century boundaries, which shifts the whole block.
func (r *Renderer) LayoutCountdown(v countdown.View) CountdownLayout {
	w, h := r.canvas.Size()
	fields := v.Fields()

	l := CountdownLayout{
		PrefixWidth: r.text.Measure("T-", countdownFontSize),
		ColonWidth:  r.text.Measure(":", countdownFontSize),
	}
	for i, f := range fields {
		l.FieldWidths[i] = r.text.Measure(f, countdownFontSize)
	}

	// Eight elements (prefix, four fields, three colons) with padding in the
	// seven gaps between them.
	l.TotalWidth = l.PrefixWidth + l.ColonWidth*3 + fieldPad*7
	for _, fw := range l.FieldWidths {
		l.TotalWidth += fw
	}

	l.OriginX = (w-l.TotalWidth)/2 + countdownXNudge
	l.BaselineY = h/2 - 30
	l.LabelY = l.BaselineY + 30
	l.Box = image.Rect(l.OriginX-10, l.BaselineY-35, l.OriginX+l.TotalWidth+10, l.BaselineY+45)
	return l
}

// DrawCountdown clears only the countdown's bounding box and redraws the
// block. The background image and static text outside the box are never
// repainted, so they cannot flicker.
func (r *Renderer) DrawCountdown(v countdown.View, l CountdownLayout) {
	r.canvas.Fill(l.Box, penDarkerGrey)

	fields := v.Fields()
	x := l.OriginX
	r.text.Draw("T-", x, l.BaselineY, countdownFontSize, penWhite)
	x += l.PrefixWidth + fieldPad

	for i := 0; i < 4; i++ {
		r.text.Draw(fields[i], x, l.BaselineY, countdownFontSize, penWhite)
		x += l.FieldWidths[i] + fieldPad
		if i < 3 {
			r.text.Draw(":", x, l.BaselineY, countdownFontSize, penWhite)
			x += l.ColonWidth + fieldPad
		}
	}

	labels := countdown.Labels()
	x = l.OriginX + l.PrefixWidth + fieldPad
	for i := 0; i < 4; i++ {
		labelW := r.text.Measure(labels[i], labelFontSize)
		labelX := x + l.FieldWidths[i]/2 - labelW/2
		r.text.Draw(labels[i], labelX, l.LabelY, labelFontSize, penDarkGrey)
		x += l.FieldWidths[i] + fieldPad
		if i < 3 {
			x += l.ColonWidth + fieldPad
		}
	}
}

// DrawStaticInfo draws the event details block: title, date, time, provider
// and location, each line centered using its measured width. Drawn once per
// session, never per frame.
func (r *Renderer) DrawStaticInfo(ev *launch.Event) {
	w, h := r.canvas.Size()
	net := ev.Net.UTC()

	lines := []struct {
		text string
		size float64
	}{
		{ev.Name, titleFontSize},
		{net.Format("02-01-2006"), titleFontSize},
		{net.Format("15:04") + " GMT", titleFontSize},
		{ev.Provider, detailFontSize},
		{ev.Location, detailFontSize},
	}

	y := h - 120
	const spacing = 27
	for _, line := range lines {
		x := (w-r.text.Measure(line.text, line.size))/2 - 8
		r.text.Draw(line.text, x+infoShadowOffset, y+infoShadowOffset, line.size, penBlack)
		r.text.Draw(line.text, x, y, line.size, penWhite)
		y += spacing
	}
}

// DrawBackground clears the whole frame and centers the decoded image using
// its scaled dimensions. A nil asset leaves the solid background. When the
// decoder can only report panel-sized defaults, centering degenerates to
// placement at the origin; that approximation is inherited from the decode
// path and is not corrected here.
func (r *Renderer) DrawBackground(asset *assets.Asset) {
	w, h := r.canvas.Size()
	r.canvas.Fill(image.Rect(0, 0, w, h), penBlack)

	if asset == nil {
		return
	}

	at := image.Pt((w-asset.Width)/2, (h-asset.Height)/2)
	r.canvas.DrawImage(at, asset.Image)
}

// Present flips the composed frame.
func (r *Renderer) Present() error {
	if err := r.canvas.Present(); err != nil {
		return fmt.Errorf("presenting frame: %w", err)
	}
	return nil
}
