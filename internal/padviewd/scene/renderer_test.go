package scene

import (
	"image"
	"image/color"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/padview/padview/internal/padviewd/assets"
	"github.com/padview/padview/internal/padviewd/countdown"
	"github.com/padview/padview/internal/padviewd/launch"
)

// stubCanvas records draw operations without rasterizing anything.
type stubCanvas struct {
	w, h     int
	fills    []image.Rectangle
	images   []image.Point
	presents int
}

func (c *stubCanvas) Size() (int, int) { return c.w, c.h }

func (c *stubCanvas) Fill(r image.Rectangle, _ color.RGBA) {
	c.fills = append(c.fills, r)
}

func (c *stubCanvas) DrawImage(at image.Point, _ image.Image) {
	c.images = append(c.images, at)
}

func (c *stubCanvas) Present() error {
	c.presents++
	return nil
}

// stubText measures ten pixels per rune at any size.
type stubText struct {
	draws []string
}

func (t *stubText) Measure(s string, _ float64) int { return len(s) * 10 }

func (t *stubText) Draw(s string, _, _ int, _ float64, _ color.RGBA) {
	t.draws = append(t.draws, s)
}

func newTestRenderer() (*Renderer, *stubCanvas, *stubText) {
	canvas := &stubCanvas{w: 480, h: 480}
	text := &stubText{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewRenderer(canvas, text, logger), canvas, text
}

func TestLayoutCountdownIdempotent(t *testing.T) {
	r, _, _ := newTestRenderer()
	v := countdown.View{Days: 12, Hours: 3, Minutes: 45, Seconds: 6}

	first := r.LayoutCountdown(v)
	second := r.LayoutCountdown(v)
	assert.Equal(t, first, second)
}

func TestLayoutCountdownCentered(t *testing.T) {
	r, _, _ := newTestRenderer()
	l := r.LayoutCountdown(countdown.View{})

	// prefix "T-" 20 + four fields of 20 + three colons of 10 + 7 pads of 15.
	want := 20 + 4*20 + 3*10 + 7*fieldPad
	assert.Equal(t, want, l.TotalWidth)
	assert.Equal(t, (480-want)/2+countdownXNudge, l.OriginX)
}

func TestLayoutCountdownWidensWithDays(t *testing.T) {
	r, _, _ := newTestRenderer()

	narrow := r.LayoutCountdown(countdown.View{Days: 7})
	wide := r.LayoutCountdown(countdown.View{Days: 36500})

	assert.Greater(t, wide.TotalWidth, narrow.TotalWidth)
	assert.Less(t, wide.OriginX, narrow.OriginX)
}

func TestDrawCountdownClearsOnlyBox(t *testing.T) {
	r, canvas, text := newTestRenderer()
	v := countdown.View{Days: 1, Hours: 2, Minutes: 3, Seconds: 4}
	l := r.LayoutCountdown(v)

	r.DrawCountdown(v, l)

	require.Len(t, canvas.fills, 1)
	assert.Equal(t, l.Box, canvas.fills[0])

	// "T-", four fields, three colons, four labels.
	assert.Len(t, text.draws, 12)
	assert.Equal(t, "T-", text.draws[0])
	assert.Contains(t, text.draws, "DAYS")
	assert.Contains(t, text.draws, "SECS")
}

func TestDrawStaticInfoShadowedLines(t *testing.T) {
	r, _, text := newTestRenderer()
	ev := &launch.Event{
		Name:     "Artemis III",
		Net:      time.Date(2026, 12, 1, 9, 30, 0, 0, time.UTC),
		Provider: "NASA",
		Location: "Kennedy Space Center, FL, USA",
	}

	r.DrawStaticInfo(ev)

	// Five lines, each drawn twice: shadow then foreground.
	require.Len(t, text.draws, 10)
	assert.Equal(t, "Artemis III", text.draws[0])
	assert.Equal(t, "Artemis III", text.draws[1])
	assert.Equal(t, "01-12-2026", text.draws[2])
	assert.Equal(t, "09:30 GMT", text.draws[4])
}

func TestDrawBackgroundCentersScaledImage(t *testing.T) {
	r, canvas, _ := newTestRenderer()

	// A 100x100 PNG decoded at 2x scale presents as 200x200.
	asset := &assets.Asset{
		Format: assets.FormatPNG,
		Width:  200,
		Height: 200,
		Image:  image.NewRGBA(image.Rect(0, 0, 200, 200)),
	}
	r.DrawBackground(asset)

	require.Len(t, canvas.fills, 1)
	assert.Equal(t, image.Rect(0, 0, 480, 480), canvas.fills[0])
	require.Len(t, canvas.images, 1)
	assert.Equal(t, image.Pt(140, 140), canvas.images[0])
}

func TestDrawBackgroundNilAsset(t *testing.T) {
	r, canvas, _ := newTestRenderer()

	r.DrawBackground(nil)

	require.Len(t, canvas.fills, 1)
	assert.Empty(t, canvas.images)
}

func TestBootLogWrapAndScrollback(t *testing.T) {
	canvas := &stubCanvas{w: 480, h: 480}
	text := &stubText{}
	bl := NewBootLog(canvas, text)

	for i := 0; i < 12; i++ {
		bl.Append("WEB", "connecting")
	}
	assert.Len(t, bl.lines, maxLogLines)
	assert.Equal(t, 12, canvas.presents)

	bl.Disable()
	bl.Append("WEB", "after disable")
	assert.Equal(t, 12, canvas.presents)
}

func TestBootLogSoftBreaksLongTokens(t *testing.T) {
	canvas := &stubCanvas{w: 480, h: 480}
	text := &stubText{}
	bl := NewBootLog(canvas, text)

	long := "https://img.example.com/aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa.png"
	parts := bl.softBreak(long)
	require.Greater(t, len(parts), 1)
	for _, p := range parts {
		assert.LessOrEqual(t, len(p), softBreakLen)
	}
}
