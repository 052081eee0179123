package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
)

// Framebuffer holds the ARGB color buffer, the parallel depth buffer and the
// dirty rectangle of one viewport. Pixel (x, y) in screen coordinates lives
// at index (y-top)*Width + (x-left).
//
// Framebuffer implements image.Image over its screen-space bounds.
type Framebuffer struct {
	Width  int
	Height int
	Pixels []Color   // Row-major color data
	Depth  []float64 // Row-major depth data, +Inf when empty

	left, top int
	dirty     image.Rectangle
}

// NewFramebuffer creates a cleared framebuffer whose top-left pixel is at
// (left, top).
func NewFramebuffer(left, top, width, height int) *Framebuffer {
	fb := &Framebuffer{
		Width:  width,
		Height: height,
		Pixels: make([]Color, width*height),
		Depth:  make([]float64, width*height),
		left:   left,
		top:    top,
	}
	fb.Clean()
	return fb
}

// Clean sets every color to 0, every depth to +Inf and empties the dirty
// rectangle.
func (fb *Framebuffer) Clean() {
	n := len(fb.Pixels)
	if n > 0 {
		// Use copy-doubling for faster clearing
		fb.Pixels[0] = 0
		fb.Depth[0] = math.Inf(1)
		for i := 1; i < n; i *= 2 {
			copy(fb.Pixels[i:], fb.Pixels[:i])
			copy(fb.Depth[i:], fb.Depth[:i])
		}
	}
	fb.dirty = image.Rectangle{}
}

// Fill sets every pixel to c without touching depth or the dirty rectangle.
func (fb *Framebuffer) Fill(c Color) {
	for i := range fb.Pixels {
		fb.Pixels[i] = c
	}
}

// Dirty returns the union of all pixels written since the last Clean, in
// screen coordinates. It is empty when nothing was drawn.
func (fb *Framebuffer) Dirty() image.Rectangle { return fb.dirty }

func (fb *Framebuffer) markDirty(r image.Rectangle) {
	fb.dirty = fb.dirty.Union(r)
}

func (fb *Framebuffer) index(x, y int) int {
	return (y-fb.top)*fb.Width + (x - fb.left)
}

// GetPixel returns the color at screen position (x, y), or 0 outside the
// viewport.
func (fb *Framebuffer) GetPixel(x, y int) Color {
	if !image.Pt(x, y).In(fb.Bounds()) {
		return 0
	}
	return fb.Pixels[fb.index(x, y)]
}

// DepthAt returns the stored depth at screen position (x, y), or +Inf
// outside the viewport.
func (fb *Framebuffer) DepthAt(x, y int) float64 {
	if !image.Pt(x, y).In(fb.Bounds()) {
		return math.Inf(1)
	}
	return fb.Depth[fb.index(x, y)]
}

// ColorModel implements image.Image.
func (fb *Framebuffer) ColorModel() color.Model { return ColorModel }

// Bounds implements image.Image.
func (fb *Framebuffer) Bounds() image.Rectangle {
	return image.Rect(fb.left, fb.top, fb.left+fb.Width, fb.top+fb.Height)
}

// At implements image.Image.
func (fb *Framebuffer) At(x, y int) color.Color { return fb.GetPixel(x, y) }

// SavePNG saves the framebuffer as a PNG file.
func (fb *Framebuffer) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create png: %w", err)
	}
	if err := png.Encode(f, fb); err != nil {
		f.Close()
		return fmt.Errorf("encode png: %w", err)
	}
	return f.Close()
}
