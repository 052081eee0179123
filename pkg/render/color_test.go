package render

import (
	"image/color"
	"testing"

	"github.com/taigrr/scanline/pkg/fixed"
)

func TestARGBMasksChannels(t *testing.T) {
	c := ARGB(0x101, -1, 0x1ff, 0)
	if c.A() != 1 || c.R() != 0xff || c.G() != 0xff || c.B() != 0 {
		t.Errorf("ARGB = %08x, want 01ffff00", uint32(c))
	}
	if got := RGB(1, 2, 3); uint32(got) != 0xff010203 {
		t.Errorf("RGB = %08x", uint32(got))
	}
	if got := RGBA(1, 2, 3, 4); uint32(got) != 0x04010203 {
		t.Errorf("RGBA = %08x", uint32(got))
	}
}

func TestColorRGBAPremultiplied(t *testing.T) {
	c := RGBA(255, 0, 0, 128)
	r, g, b, a := c.RGBA()
	if a != 0x8080 || r != 0x8080 || g != 0 || b != 0 {
		t.Errorf("RGBA() = %x %x %x %x, want premultiplied half red", r, g, b, a)
	}
}

func TestFromColor(t *testing.T) {
	if got := FromColor(color.RGBA{R: 10, G: 20, B: 30, A: 255}); got != RGB(10, 20, 30) {
		t.Errorf("FromColor(RGBA) = %08x", uint32(got))
	}
	if got := FromColor(ColorCyan); got != ColorCyan {
		t.Errorf("FromColor(Color) = %08x", uint32(got))
	}
	if got := ColorModel.Convert(color.Gray{Y: 128}); got != ColorGray {
		t.Errorf("ColorModel.Convert(gray) = %v", got)
	}
}

func TestLerpColor(t *testing.T) {
	tests := []struct {
		name string
		t    float64
		want Color
	}{
		{"start", 0, ColorBlack},
		{"end", 1, ColorWhite},
		{"half truncates", 0.5, RGB(127, 127, 127)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := LerpColor(ColorBlack, ColorWhite, tc.t); got != tc.want {
				t.Errorf("LerpColor = %08x, want %08x", uint32(got), uint32(tc.want))
			}
		})
	}
}

func TestBlend(t *testing.T) {
	if got := blend(ColorRed, ColorBlue, fixed.One, 0); got != ColorRed {
		t.Errorf("blend at l=1 = %08x, want red", uint32(got))
	}
	if got := blend(ColorRed, ColorBlue, 0, fixed.One); got != ColorBlue {
		t.Errorf("blend at h=1 = %08x, want blue", uint32(got))
	}
	half := fixed.Half
	if got, want := blend(ColorRed, ColorBlue, half, half), ARGB(254, 127, 0, 127); got != want {
		t.Errorf("blend halves = %08x, want %08x", uint32(got), uint32(want))
	}
}

func TestBlendWideSpanDarkens(t *testing.T) {
	// A 10000-pixel span steps by a truncated 1/n, so a solid channel loses
	// about 8.5% in the middle of the span.
	n := 10000
	inv := fixed.FromRatio(1, n)
	got := blend(ColorRed, ColorRed, inv.MulInt(n-n/2), inv.MulInt(n/2))
	if want := ARGB(232, 232, 0, 0); got != want {
		t.Errorf("blend mid-span = %08x, want %08x", uint32(got), uint32(want))
	}
}
