package softrender

import "image/color"

// Color is an 8-bit RGB color with no alpha channel.
type Color struct {
	R, G, B uint8
}

// RGB creates a Color from its three channels.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// RGBA implements the color.Color interface. The result is always opaque.
func (c Color) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R)
	r |= r << 8
	g = uint32(c.G)
	g |= g << 8
	b = uint32(c.B)
	b |= b << 8
	return r, g, b, 0xffff
}

// FromColor converts a standard color.Color to Color, dropping alpha.
// The color is converted from its premultiplied form first, so a fully
// transparent input maps to black.
func FromColor(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{R: n.R, G: n.G, B: n.B}
}

// ColorModel converts any color.Color to a Color.
var ColorModel color.Model = color.ModelFunc(func(c color.Color) color.Color {
	if rgb, ok := c.(Color); ok {
		return rgb
	}
	return FromColor(c)
})

// Hex creates a color from a hex string.
// Supports formats: "RGB" and "RRGGBB", with or without a leading '#'.
// Unrecognized input yields black.
func Hex(hex string) Color {
	if hex != "" && hex[0] == '#' {
		hex = hex[1:]
	}

	var r, g, b uint32
	switch len(hex) {
	case 3: // RGB
		if !parseHex(hex[0:1], &r) || !parseHex(hex[1:2], &g) || !parseHex(hex[2:3], &b) {
			return Black
		}
		r, g, b = r*17, g*17, b*17
	case 6: // RRGGBB
		if !parseHex(hex[0:2], &r) || !parseHex(hex[2:4], &g) || !parseHex(hex[4:6], &b) {
			return Black
		}
	default:
		return Black
	}
	return Color{R: uint8(r), G: uint8(g), B: uint8(b)}
}

// parseHex parses s as hexadecimal digits into val.
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

// Common colors
var (
	Black   = Color{0, 0, 0}
	White   = Color{255, 255, 255}
	Red     = Color{255, 0, 0}
	Green   = Color{0, 255, 0}
	Blue    = Color{0, 0, 255}
	Yellow  = Color{255, 255, 0}
	Cyan    = Color{0, 255, 255}
	Magenta = Color{255, 0, 255}
)
