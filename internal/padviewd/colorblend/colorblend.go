// Package colorblend provides the color math used by the ambient light
// animation: linear interpolation between palette stops and brightness
// scaling for the breathing effect.
package colorblend

// RGB is an 8-bit-per-channel color as accepted by the light strip.
type RGB struct {
	R, G, B uint8
}

// Lerp interpolates componentwise between c1 and c2. t is expected in [0,1]
// and is not clamped; callers guarantee the range. The endpoints are exact:
// Lerp(c1, c2, 0) == c1 and Lerp(c1, c2, 1) == c2.
func Lerp(c1, c2 RGB, t float64) RGB {
	return RGB{
		R: lerpChannel(c1.R, c2.R, t),
		G: lerpChannel(c1.G, c2.G, t),
		B: lerpChannel(c1.B, c2.B, t),
	}
}

func lerpChannel(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*t)
}

// Scale multiplies each channel by factor, truncating toward zero. Factor is
// expected in [0,1]; the sine-driven callers keep it there by their choice of
// amplitude and offset, so the result is never negative by construction.
func Scale(c RGB, factor float64) RGB {
	return RGB{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
	}
}
