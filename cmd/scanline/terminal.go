package main

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	uv "github.com/charmbracelet/ultraviolet"

	"github.com/taigrr/scanline/pkg/render"
)

// frameSurface also redraws the previous frame's dirty area, so cells the
// model moved away from get cleared.
type frameSurface struct {
	*render.TerminalSurface
	last image.Rectangle
}

func (s *frameSurface) Blit(src *render.Framebuffer, r image.Rectangle) {
	s.TerminalSurface.Blit(src, r.Union(s.last))
	s.last = r
}

// flushStale clears the previous frame when nothing was drawn this frame.
func (s *frameSurface) flushStale(src *render.Framebuffer) {
	if !s.last.Empty() {
		s.TerminalSurface.Blit(src, s.last)
		s.last = image.Rectangle{}
	}
}

// viewport is the renderer and surface for the current terminal size. The
// last row is kept for the status line.
type viewport struct {
	width, height int
	renderer      *render.Renderer
	surface       *frameSurface
}

func newViewport(term *uv.Terminal, width, height int, bg render.Color) *viewport {
	area := image.Rect(0, 0, width, max(height-1, 1))
	ts := render.NewTerminalSurface(term, area)
	ts.Background = bg
	fbw, fbh := ts.FramebufferSize()
	return &viewport{
		width:    width,
		height:   height,
		renderer: newRenderer(fbw, fbh, 0),
		surface:  &frameSurface{TerminalSurface: ts},
	}
}

func runTerminal(sc *scene, bg render.Color, logger *slog.Logger) error {
	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	// Enable mouse mode
	fmt.Fprint(os.Stdout, "\x1b[?1002h") // Button-event mouse tracking
	fmt.Fprint(os.Stdout, "\x1b[?1006h") // SGR extended mouse mode

	cleanup := func() {
		fmt.Fprint(os.Stdout, "\x1b[?1002l")
		fmt.Fprint(os.Stdout, "\x1b[?1006l")
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}
	defer cleanup()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	vp := newViewport(term, width, height, bg)
	rot := newSpin(*targetFPS)
	rot.ApplyImpulse(0.02, 0.05, 0)

	var (
		mouseDown   bool
		lastX       int
		lastY       int
		status      string
		torque      struct{ pitch, yaw, roll float64 }
		frameBudget = time.Second / time.Duration(*targetFPS)
	)
	const torqueStrength = 0.002

	pick := func(x, y int) {
		r := vp.renderer
		r.HitTest(x, y*2, render.HitFuncs{
			OnHit: func(px, py int, depth float64, c render.Color, p *render.Polygon) {
				z := r.Projection().DepthToZ(depth)
				status = fmt.Sprintf("picked (%d,%d) z=%.2f color=#%06x", px, py, z, uint32(c)&0xffffff)
				logger.Debug("pick", "x", px, "y", py, "depth", depth, "normal", p.Normal)
			},
			OnCommit: func() {
				if status == "" {
					status = "picked nothing"
				}
			},
		})
		status = ""
	}

	handle := func(ev uv.Event) bool {
		switch ev := ev.(type) {
		case uv.WindowSizeEvent:
			term.Erase()
			term.Resize(ev.Width, ev.Height)
			vp = newViewport(term, ev.Width, ev.Height, bg)
			logger.Debug("resized", "width", ev.Width, "height", ev.Height)

		case uv.KeyPressEvent:
			switch {
			case ev.MatchString("escape"), ev.MatchString("ctrl+c"):
				return false
			case ev.MatchString("w", "up"):
				torque.pitch = -torqueStrength
			case ev.MatchString("s", "down"):
				torque.pitch = torqueStrength
			case ev.MatchString("a", "left"):
				torque.yaw = -torqueStrength
			case ev.MatchString("d", "right"):
				torque.yaw = torqueStrength
			case ev.MatchString("q"):
				torque.roll = torqueStrength
			case ev.MatchString("e"):
				torque.roll = -torqueStrength
			case ev.MatchString("space"):
				rot.ApplyImpulse(
					(rand.Float64()-0.5)*0.2,
					(rand.Float64()-0.5)*0.2,
					(rand.Float64()-0.5)*0.2,
				)
			case ev.MatchString("r"):
				rot.Reset()
				sc.distance = defaultDistance
			case ev.MatchString("t"):
				sc.showTexture = !sc.showTexture
			case ev.MatchString("+", "="):
				sc.distance = max(2, sc.distance-0.25)
			case ev.MatchString("-", "_"):
				sc.distance = min(20, sc.distance+0.25)
			}

		case uv.MouseClickEvent:
			mouseDown = true
			lastX, lastY = ev.X, ev.Y
			pick(ev.X, ev.Y)

		case uv.MouseReleaseEvent:
			mouseDown = false

		case uv.MouseMotionEvent:
			if mouseDown {
				rot.ApplyImpulse(float64(ev.Y-lastY)*0.01, float64(ev.X-lastX)*0.01, 0)
				lastX, lastY = ev.X, ev.Y
			}
		}
		return true
	}

	for {
		start := time.Now()

	drain:
		for {
			select {
			case <-ctx.Done():
				return nil
			case ev, ok := <-term.Events():
				if !ok {
					return nil
				}
				if !handle(ev) {
					return nil
				}
			default:
				break drain
			}
		}

		rot.ApplyImpulse(torque.pitch, torque.yaw, torque.roll)
		torque.pitch *= 0.9
		torque.yaw *= 0.9
		torque.roll *= 0.9
		rot.Update()

		r := vp.renderer
		sc.draw(r, rot.Orientation)
		if r.Framebuffer().Dirty().Empty() {
			vp.surface.flushStale(r.Framebuffer())
		}
		r.Commit(vp.surface)

		st := r.Stats()
		line := fmt.Sprintf(" %s  drawn %d/%d  culled %d  clipped %d  px %d  %s",
			sc.name, st.Drawn, st.Submitted, st.Culled, st.Clipped, st.Pixels, status)
		drawStatus(term, vp.height-1, vp.width, line)

		if err := term.Display(); err != nil {
			return fmt.Errorf("display: %w", err)
		}

		if elapsed := time.Since(start); elapsed < frameBudget {
			time.Sleep(frameBudget - elapsed)
		}
	}
}

// drawStatus writes s on row y, padding or truncating to width cells.
func drawStatus(scr uv.Screen, y, width int, s string) {
	runes := []rune(s)
	style := uv.Style{Fg: render.ColorWhite, Bg: render.RGB(20, 20, 30)}
	for x := range width {
		content := " "
		if x < len(runes) {
			content = string(runes[x])
		}
		scr.SetCell(x, y, &uv.Cell{Content: content, Width: 1, Style: style})
	}
}
