package compose

import "math"

// blendPixel merges an RGBA foreground pixel over an opaque RGB background.
// An opaque foreground replaces the background outright; otherwise each
// channel is mixed in normalized space and rounded back to a byte.
func blendPixel(fr, fg, fb, fa uint8, br, bg, bb uint8) (uint8, uint8, uint8) {
	if fa == 255 {
		return fr, fg, fb
	}
	factor := float32(fa) / 255

	mix := func(f, b uint8) uint8 {
		v := (float32(b)/255)*(1-factor) + (float32(f)/255)*factor
		return uint8(math.Round(float64(v * 255)))
	}
	return mix(fr, br), mix(fg, bg), mix(fb, bb)
}

// tintChannel scales a foreground channel by a tint channel with rounding.
func tintChannel(v, t uint8) uint8 {
	return uint8((uint16(v)*uint16(t) + 127) / 255)
}
