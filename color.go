package plotgpu

import (
	"fmt"
	"image/color"

	"github.com/gogpu/plotgpu/batch"
)

// Color is a straight-alpha 8-bit color packed as 0xRRGGBBAA.
// A zero alpha means no color: nothing is drawn with it.
type Color uint32

// Common colors.
const (
	Black       Color = 0x000000ff
	White       Color = 0xffffffff
	Red         Color = 0xff0000ff
	Green       Color = 0x00ff00ff
	Blue        Color = 0x0000ffff
	Yellow      Color = 0xffff00ff
	Cyan        Color = 0x00ffffff
	Magenta     Color = 0xff00ffff
	Gray        Color = 0x808080ff
	Transparent Color = 0x00000000
)

// RGBA8 creates a color from 8-bit components.
func RGBA8(r, g, b, a uint8) Color {
	return Color(uint32(r)<<24 | uint32(g)<<16 | uint32(b)<<8 | uint32(a))
}

// Hex creates a color from a hex string.
// Supports formats: "RGB", "RGBA", "RRGGBB", "RRGGBBAA", with or without
// a leading '#'. Malformed input gives opaque black.
func Hex(hex string) Color {
	if hex != "" && hex[0] == '#' {
		hex = hex[1:]
	}

	var r, g, b, a uint32
	a = 255

	ok := true
	switch len(hex) {
	case 3: // RGB
		ok = parseHex(hex[0:1], &r) && parseHex(hex[1:2], &g) && parseHex(hex[2:3], &b)
		r, g, b = r*17, g*17, b*17
	case 4: // RGBA
		ok = parseHex(hex[0:1], &r) && parseHex(hex[1:2], &g) && parseHex(hex[2:3], &b) && parseHex(hex[3:4], &a)
		r, g, b, a = r*17, g*17, b*17, a*17
	case 6: // RRGGBB
		ok = parseHex(hex[0:2], &r) && parseHex(hex[2:4], &g) && parseHex(hex[4:6], &b)
	case 8: // RRGGBBAA
		ok = parseHex(hex[0:2], &r) && parseHex(hex[2:4], &g) && parseHex(hex[4:6], &b) && parseHex(hex[6:8], &a)
	default:
		ok = false
	}
	if !ok {
		return Black
	}
	return RGBA8(uint8(r), uint8(g), uint8(b), uint8(a))
}

// parseHex parses s into val and reports whether every digit was valid.
func parseHex(s string, val *uint32) bool {
	*val = 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		*val *= 16
		switch {
		case '0' <= c && c <= '9':
			*val += uint32(c - '0')
		case 'a' <= c && c <= 'f':
			*val += uint32(c - 'a' + 10)
		case 'A' <= c && c <= 'F':
			*val += uint32(c - 'A' + 10)
		default:
			return false
		}
	}
	return true
}

// FromColor converts a standard color.Color.
func FromColor(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGBA8(n.R, n.G, n.B, n.A)
}

// Components returns the 8-bit channels.
func (c Color) Components() (r, g, b, a uint8) {
	return uint8(c >> 24), uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// IsNone reports whether the color is fully transparent.
func (c Color) IsNone() bool {
	return c&0xff == 0
}

// WithAlpha returns c with alpha replaced.
func (c Color) WithAlpha(a uint8) Color {
	return c&^0xff | Color(a)
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: uint8(c >> 24), G: uint8(c >> 16), B: uint8(c >> 8), A: uint8(c)}.RGBA()
}

// Premultiplied returns the color as premultiplied floats for the GPU.
func (c Color) Premultiplied() batch.RGBA {
	r, g, b, a := c.Components()
	af := float32(a) / 255
	return batch.RGBA{
		float32(r) / 255 * af,
		float32(g) / 255 * af,
		float32(b) / 255 * af,
		af,
	}
}

// String returns the color as "#rrggbbaa".
func (c Color) String() string {
	return fmt.Sprintf("#%08x", uint32(c))
}
