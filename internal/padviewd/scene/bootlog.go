package scene

import (
	"image"
	"image/color"
	"strings"
)

// Boot log geometry.
const (
	maxLogLines  = 8
	logWrapWidth = 420
	logLineStep  = 20
	logFontSize  = 18
	logMarginX   = 10
	logMarginY   = 15
	softBreakLen = 50
)

var penGreen = color.RGBA{0, 200, 0, 255}

// BootLog renders a terminal-style scrolling log on the panel during boot.
// Once the final UI takes over, Disable stops all further drawing; the
// terminal never reappears within a process lifetime.
type BootLog struct {
	canvas  Canvas
	text    Text
	lines   []string
	enabled bool
}

// NewBootLog creates a boot log view on canvas.
func NewBootLog(canvas Canvas, text Text) *BootLog {
	return &BootLog{
		canvas:  canvas,
		text:    text,
		enabled: true,
	}
}

// Append adds a category-tagged message and redraws the log. No-op after
// Disable.
func (b *BootLog) Append(category, message string) {
	if !b.enabled {
		return
	}

	line := "[" + category + "] " + message
	b.lines = append(b.lines, b.wrap(line)...)
	for len(b.lines) > maxLogLines {
		b.lines = b.lines[1:]
	}

	w, h := b.canvas.Size()
	b.canvas.Fill(image.Rect(0, 0, w, h), penBlack)
	y := logMarginY
	for _, l := range b.lines {
		b.text.Draw(l, logMarginX, y, logFontSize, penGreen)
		y += logLineStep
	}
	_ = b.canvas.Present()
}

// Disable permanently stops on-screen logging.
func (b *BootLog) Disable() {
	b.enabled = false
}

// wrap splits a line into screen-width pieces, breaking long unbreakable
// tokens such as URLs and filenames at a fixed length.
func (b *BootLog) wrap(line string) []string {
	var out []string
	current := ""

	for _, word := range strings.Split(line, " ") {
		test := current
		if test != "" {
			test += " "
		}
		test += word

		if b.text.Measure(test, logFontSize) < logWrapWidth {
			current = test
			continue
		}
		if current != "" {
			out = append(out, current)
		}
		out = append(out, b.softBreak(word)...)
		current = ""
	}
	if current != "" {
		out = append(out, current)
	}
	return out
}

// softBreak chops a single oversized token into fixed-length pieces.
func (b *BootLog) softBreak(word string) []string {
	if b.text.Measure(word, logFontSize) < logWrapWidth {
		return []string{word}
	}
	var parts []string
	for len(word) > softBreakLen {
		parts = append(parts, word[:softBreakLen])
		word = word[softBreakLen:]
	}
	if word != "" {
		parts = append(parts, word)
	}
	return parts
}
