package render

import (
	"image"

	"golang.org/x/image/draw"
)

// Surface receives finished pixels. Blit copies the region r, given in
// screen coordinates, from the framebuffer.
type Surface interface {
	Blit(src *Framebuffer, r image.Rectangle)
}

// ImageSurface blits into any draw.Image sharing the framebuffer's screen
// coordinate space.
type ImageSurface struct {
	Dst draw.Image
	Op  draw.Op
}

// NewImageSurface creates a surface that replaces destination pixels.
func NewImageSurface(dst draw.Image) *ImageSurface {
	return &ImageSurface{Dst: dst, Op: draw.Src}
}

// Blit implements Surface.
func (s *ImageSurface) Blit(src *Framebuffer, r image.Rectangle) {
	draw.Draw(s.Dst, r, src, r.Min, s.Op)
}
