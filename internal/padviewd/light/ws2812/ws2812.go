// Package ws2812 drives a WS2812 light strip over SPI. Each WS2812 data bit
// is stretched to three SPI bits at 2.4 MHz, which lands inside the timing
// tolerance of the strip without a dedicated PWM peripheral.
package ws2812

import (
	"fmt"
	"sync"

	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"

	"github.com/padview/padview/internal/padviewd/colorblend"
)

// bitRate is three times the WS2812 800 kHz data rate.
const bitRate = 2400 * physic.KiloHertz

// latchBytes of zeros trail each frame to hold the data line low past the
// 280 us reset time.
const latchBytes = 90

// Driver is a light.Strip backed by a SPI-attached WS2812 strip.
type Driver struct {
	mu    sync.Mutex
	conn  spi.Conn
	port  spi.PortCloser
	zones []colorblend.RGB
}

// Open initializes the host SPI subsystem and connects to the strip on the
// named port (e.g. "/dev/spidev0.0" or "SPI0.0") with n zones.
func Open(port string, n int) (*Driver, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("initializing periph host: %w", err)
	}

	p, err := spireg.Open(port)
	if err != nil {
		return nil, fmt.Errorf("opening SPI port %q: %w", port, err)
	}

	conn, err := p.Connect(bitRate, spi.Mode0, 8)
	if err != nil {
		p.Close()
		return nil, fmt.Errorf("connecting to SPI port %q: %w", port, err)
	}

	return &Driver{
		conn:  conn,
		port:  p,
		zones: make([]colorblend.RGB, n),
	}, nil
}

// SetColor stages a zone color. It takes effect on the next Show.
func (d *Driver) SetColor(index int, c colorblend.RGB) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if index >= 0 && index < len(d.zones) {
		d.zones[index] = c
	}
}

// Show commits the staged frame to the strip. The strip offers no
// acknowledgment; transfer errors are swallowed after staging, matching the
// fire-and-forget contract of the strip interface.
func (d *Driver) Show() {
	d.mu.Lock()
	frame := encodeFrame(d.zones)
	d.mu.Unlock()

	// Tx result intentionally ignored; there is no recovery path and the
	// next frame overwrites any partial write.
	_ = d.conn.Tx(frame, nil)
}

// Close releases the SPI port after blanking the strip.
func (d *Driver) Close() error {
	d.mu.Lock()
	for i := range d.zones {
		d.zones[i] = colorblend.RGB{}
	}
	frame := encodeFrame(d.zones)
	d.mu.Unlock()

	_ = d.conn.Tx(frame, nil)
	return d.port.Close()
}

// encodeFrame expands zone colors in GRB order into the 3x SPI bit encoding
// and appends the latch tail.
func encodeFrame(zones []colorblend.RGB) []byte {
	out := make([]byte, 0, len(zones)*9+latchBytes)
	for _, c := range zones {
		out = appendByte(out, c.G)
		out = appendByte(out, c.R)
		out = appendByte(out, c.B)
	}
	return append(out, make([]byte, latchBytes)...)
}

// appendByte expands one color byte into three SPI bytes: each data bit
// becomes 110 (one) or 100 (zero).
func appendByte(dst []byte, b byte) []byte {
	var bits uint32
	for i := 7; i >= 0; i-- {
		bits <<= 3
		if b&(1<<uint(i)) != 0 {
			bits |= 0b110
		} else {
			bits |= 0b100
		}
	}
	return append(dst, byte(bits>>16), byte(bits>>8), byte(bits))
}
