package render

import (
	"image"
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"
)

// TerminalSurface draws a framebuffer onto terminal cells using half-block
// characters, so each cell shows two vertically stacked pixels. The
// framebuffer height should be 2x the area height.
type TerminalSurface struct {
	Screen uv.Screen
	Area   uv.Rectangle

	// Background replaces pixels that were never written (alpha 0). A zero
	// Background leaves them uncolored.
	Background Color
}

// NewTerminalSurface creates a surface covering area of scr.
func NewTerminalSurface(scr uv.Screen, area uv.Rectangle) *TerminalSurface {
	return &TerminalSurface{Screen: scr, Area: area}
}

// FramebufferSize returns the pixel size matching the area.
func (s *TerminalSurface) FramebufferSize() (width, height int) {
	return s.Area.Dx(), s.Area.Dy() * 2
}

// Blit implements Surface. Only the cells covering r are redrawn.
func (s *TerminalSurface) Blit(src *Framebuffer, r image.Rectangle) {
	b := src.Bounds()
	r = r.Intersect(b)
	if r.Empty() {
		return
	}

	// Each terminal row represents 2 framebuffer rows
	// We use ▀ (upper half block) with fg=top color and bg=bottom color
	firstRow := (r.Min.Y - b.Min.Y) / 2
	lastRow := (r.Max.Y - 1 - b.Min.Y) / 2
	for row := firstRow; row <= lastRow; row++ {
		cy := s.Area.Min.Y + row
		if cy >= s.Area.Max.Y {
			break
		}
		topY := b.Min.Y + row*2
		botY := topY + 1

		for x := r.Min.X; x < r.Max.X; x++ {
			cx := s.Area.Min.X + x - b.Min.X
			if cx >= s.Area.Max.X {
				break
			}
			cell := &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: s.cellColor(src.GetPixel(x, topY)),
					Bg: s.cellColor(src.GetPixel(x, botY)),
				},
			}
			s.Screen.SetCell(cx, cy, cell)
		}
	}
}

// cellColor converts a pixel to a terminal color; nil means no color.
func (s *TerminalSurface) cellColor(c Color) color.Color {
	if c.A() == 0 {
		c = s.Background
	}
	if c.A() == 0 {
		return nil
	}
	return color.RGBA{R: c.R(), G: c.G(), B: c.B(), A: 255}
}
