package render

import "log/slog"

const defaultPoolSize = 16

type options struct {
	left, top int
	ctx       *Context
	logger    *slog.Logger
	poolSize  int
}

// Option configures a Renderer.
type Option func(*options)

// WithOffset places the viewport's top-left pixel at (left, top) in screen
// coordinates.
func WithOffset(left, top int) Option {
	return func(o *options) {
		o.left, o.top = left, top
	}
}

// WithContext makes the renderer use caller-owned scratch state. A Context
// must not be shared by renderers that run concurrently.
func WithContext(ctx *Context) Option {
	return func(o *options) {
		o.ctx = ctx
	}
}

// WithLogger overrides the package logger for one renderer.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithPoolSize sets the initial capacity of the projected-vertex ring.
func WithPoolSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.poolSize = n
		}
	}
}
