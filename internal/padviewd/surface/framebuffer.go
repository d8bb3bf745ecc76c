package surface

import (
	"encoding/binary"
	"fmt"
	"image"
	"os"
	"sync"
)

// Framebuffer presents frames to a Linux framebuffer device in RGB565 little
// endian, the native format of the SPI TFT panels this daemon targets.
type Framebuffer struct {
	mu   sync.Mutex
	f    *os.File
	buf  []byte
	w, h int
}

// OpenFramebuffer opens the device (e.g. /dev/fb0) for a w by h panel.
func OpenFramebuffer(path string, w, h int) (*Framebuffer, error) {
	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("opening framebuffer %q: %w", path, err)
	}
	return &Framebuffer{
		f:   f,
		buf: make([]byte, w*h*2),
		w:   w,
		h:   h,
	}, nil
}

// Present converts the frame to RGB565 and writes it at offset zero.
func (fb *Framebuffer) Present(frame *image.RGBA) error {
	fb.mu.Lock()
	defer fb.mu.Unlock()

	b := frame.Bounds()
	if b.Dx() != fb.w || b.Dy() != fb.h {
		return fmt.Errorf("frame size %dx%d does not match framebuffer %dx%d", b.Dx(), b.Dy(), fb.w, fb.h)
	}

	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := frame.Pix[frame.PixOffset(b.Min.X, y):]
		for x := 0; x < fb.w; x++ {
			r, g, bl := row[x*4], row[x*4+1], row[x*4+2]
			px := uint16(r)>>3<<11 | uint16(g)>>2<<5 | uint16(bl)>>3
			binary.LittleEndian.PutUint16(fb.buf[i:], px)
			i += 2
		}
	}

	if _, err := fb.f.WriteAt(fb.buf, 0); err != nil {
		return fmt.Errorf("writing framebuffer: %w", err)
	}
	return nil
}

// Close releases the device.
func (fb *Framebuffer) Close() error {
	return fb.f.Close()
}
