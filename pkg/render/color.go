package render

import (
	"image/color"
)

// Color is a packed 32-bit ARGB value: A<<24 | R<<16 | G<<8 | B.
// Channels are straight (not premultiplied) alpha.
type Color uint32

// ARGB packs four channels, masking each to 8 bits.
func ARGB(a, r, g, b int32) Color {
	return Color(uint32(a&0xff)<<24 | uint32(r&0xff)<<16 | uint32(g&0xff)<<8 | uint32(b&0xff))
}

// RGB creates an opaque color.
func RGB(r, g, b uint8) Color {
	return Color(0xff000000 | uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// RGBA creates a color with an explicit alpha.
func RGBA(r, g, b, a uint8) Color {
	return Color(uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// A returns the alpha channel.
func (c Color) A() uint8 { return uint8(c >> 24) }

// R returns the red channel.
func (c Color) R() uint8 { return uint8(c >> 16) }

// G returns the green channel.
func (c Color) G() uint8 { return uint8(c >> 8) }

// B returns the blue channel.
func (c Color) B() uint8 { return uint8(c) }

// RGBA implements color.Color with alpha-premultiplied 16-bit channels.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: c.R(), G: c.G(), B: c.B(), A: c.A()}.RGBA()
}

// ColorModel converts any color.Color to a Color.
var ColorModel color.Model = color.ModelFunc(func(c color.Color) color.Color {
	return FromColor(c)
})

// FromColor converts an arbitrary color.Color.
func FromColor(c color.Color) Color {
	if cc, ok := c.(Color); ok {
		return cc
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGBA(n.R, n.G, n.B, n.A)
}

// LerpColor linearly interpolates each channel from a (t=0) to b (t=1),
// truncating toward zero.
func LerpColor(a, b Color, t float64) Color {
	ch := func(x, y uint8) int32 {
		return int32(float64(x) + (float64(y)-float64(x))*t)
	}
	return ARGB(ch(a.A(), b.A()), ch(a.R(), b.R()), ch(a.G(), b.G()), ch(a.B(), b.B()))
}

// Colors for convenience
var (
	ColorTransparent Color = 0
	ColorBlack             = RGB(0, 0, 0)
	ColorWhite             = RGB(255, 255, 255)
	ColorRed               = RGB(255, 0, 0)
	ColorGreen             = RGB(0, 255, 0)
	ColorBlue              = RGB(0, 0, 255)
	ColorYellow            = RGB(255, 255, 0)
	ColorCyan              = RGB(0, 255, 255)
	ColorMagenta           = RGB(255, 0, 255)
	ColorGray              = RGB(128, 128, 128)
	ColorSky               = RGB(135, 206, 235)
)
