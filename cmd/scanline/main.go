// scanline - Terminal 3D Model Viewer
// Renders glTF models (or a demo cube) in the terminal with the scanline
// software rasterizer, or writes a single frame to a PNG file.
//
// Controls:
//
//	Mouse drag  - Rotate model
//	Click       - Pick the polygon under the cursor
//	W/S         - Pitch up/down
//	A/D         - Yaw left/right
//	Q/E         - Roll left/right
//	Space       - Apply random impulse
//	R           - Reset rotation
//	T           - Toggle texture on/off
//	+/-         - Adjust zoom
//	Esc         - Quit
package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"

	"github.com/taigrr/scanline/pkg/math3d"
	"github.com/taigrr/scanline/pkg/models"
	"github.com/taigrr/scanline/pkg/render"
)

var (
	texturePath  = flag.String("texture", "", "Path to texture image (PNG/JPG, power-of-two sides)")
	textureCheck = flag.Bool("texture-check", false, "Map a procedural checkerboard onto the model")
	targetFPS    = flag.Int("fps", 60, "Target FPS")
	fovDeg       = flag.Float64("fov", 60, "Vertical field of view in degrees")
	bgColor      = flag.String("bg", "30,30,40", "Background color (R,G,B)")
	pngPath      = flag.String("png", "", "Render one frame to this PNG file instead of the terminal")
	pngSize      = flag.String("size", "640x480", "Image size for -png (WxH)")
	verbose      = flag.Bool("v", false, "Log debug output to stderr")
)

const (
	zNear           = -0.1
	zFar            = -100
	defaultDistance = 4.0
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "scanline - Terminal 3D Model Viewer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: scanline [options] [model.glb]\n\n")
		fmt.Fprintf(os.Stderr, "Without a model a demo cube is shown.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nControls:\n")
		fmt.Fprintf(os.Stderr, "  Mouse drag  - Rotate model\n")
		fmt.Fprintf(os.Stderr, "  Click       - Pick polygon\n")
		fmt.Fprintf(os.Stderr, "  W/S/A/D     - Pitch and yaw\n")
		fmt.Fprintf(os.Stderr, "  Q/E         - Roll left/right\n")
		fmt.Fprintf(os.Stderr, "  Space       - Random spin\n")
		fmt.Fprintf(os.Stderr, "  R           - Reset view\n")
		fmt.Fprintf(os.Stderr, "  T           - Toggle texture\n")
		fmt.Fprintf(os.Stderr, "  +/-         - Zoom\n")
		fmt.Fprintf(os.Stderr, "  Esc         - Quit\n")
	}
	flag.Parse()

	if flag.NArg() > 1 {
		flag.Usage()
		os.Exit(1)
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	render.SetLogger(logger)

	if err := run(flag.Arg(0), logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(modelPath string, logger *slog.Logger) error {
	bg, err := parseColor(*bgColor)
	if err != nil {
		return err
	}
	if *targetFPS <= 0 {
		return fmt.Errorf("invalid -fps %d", *targetFPS)
	}

	sc, err := loadScene(modelPath, logger)
	if err != nil {
		return err
	}
	logger.Debug("scene loaded",
		"name", sc.name, "vertices", sc.mesh.VertexCount(), "triangles", sc.mesh.TriangleCount(),
		"textured", sc.textured != nil)

	if *pngPath != "" {
		w, h, err := parseSize(*pngSize)
		if err != nil {
			return err
		}
		return renderPNG(sc, w, h, bg, *pngPath)
	}
	return runTerminal(sc, bg, logger)
}

// scene is the model being viewed and how it is posed.
type scene struct {
	name     string
	mesh     *models.Mesh
	plain    *models.Model
	textured *models.Model // nil without a texture

	showTexture bool
	distance    float64
}

func loadScene(modelPath string, logger *slog.Logger) (*scene, error) {
	var (
		mesh     *models.Mesh
		texture  *render.Texture
		name     = "cube"
		embedded *render.Texture
	)

	if modelPath == "" {
		mesh = models.NewCube(2)
	} else {
		name = filepath.Base(modelPath)
		ext := strings.ToLower(filepath.Ext(modelPath))
		switch ext {
		case ".glb", ".gltf":
			m, img, err := models.LoadGLBWithTexture(modelPath)
			if err != nil {
				return nil, fmt.Errorf("load model: %w", err)
			}
			mesh = m
			if img != nil {
				embedded, err = render.TextureFromImage(img)
				if err != nil {
					logger.Warn("embedded texture unusable", "err", err)
				}
			}
		default:
			return nil, fmt.Errorf("unsupported format: %s (use .glb or .gltf)", ext)
		}
	}

	switch {
	case *texturePath != "":
		t, err := render.LoadTexture(*texturePath)
		if err != nil {
			return nil, fmt.Errorf("load texture: %w", err)
		}
		texture = t
	case *textureCheck:
		t, err := render.NewCheckerTexture(64, 8, render.RGB(200, 200, 200), render.RGB(100, 100, 100))
		if err != nil {
			return nil, err
		}
		texture = t
	case embedded != nil:
		texture = embedded
	}

	mesh.Normalize(2)
	sc := &scene{
		name:        name,
		mesh:        mesh,
		plain:       mesh.Build(),
		showTexture: texture != nil,
		distance:    defaultDistance,
	}
	if texture != nil {
		sc.textured = mesh.Build(models.WithTexture(texture))
	}
	return sc, nil
}

// draw renders one frame of the scene with the given orientation.
func (sc *scene) draw(r *render.Renderer, orient math3d.Quat) {
	r.Clean()
	xf := r.Transform()
	xf.LoadIdentity()
	xf.TranslateTo(0, 0, -sc.distance)
	xf.Rotate(orient)

	mdl := sc.plain
	if sc.showTexture && sc.textured != nil {
		mdl = sc.textured
	}
	mdl.Light(r.Light(), xf)
	mdl.Render(r)
}

func newRenderer(w, h, top int) *render.Renderer {
	r := render.NewRenderer(w, h, render.WithOffset(0, top))
	r.SetPerspective(*fovDeg*math.Pi/180, zNear, zFar)
	return r
}

func renderPNG(sc *scene, w, h int, bg render.Color, path string) error {
	r := newRenderer(w, h, 0)
	sc.draw(r, math3d.QuatFromAxisAngle(math3d.V3(1, 1, 0), math.Pi/6))

	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	r.Commit(&render.ImageSurface{Dst: dst, Op: draw.Over})

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create png: %w", err)
	}
	if err := png.Encode(f, dst); err != nil {
		f.Close()
		return fmt.Errorf("encode png: %w", err)
	}
	return f.Close()
}

func parseColor(s string) (render.Color, error) {
	var r, g, b int
	if _, err := fmt.Sscanf(s, "%d,%d,%d", &r, &g, &b); err != nil {
		return 0, fmt.Errorf("parse color %q: %w", s, err)
	}
	for _, v := range []int{r, g, b} {
		if v < 0 || v > 255 {
			return 0, fmt.Errorf("parse color %q: channel %d out of range", s, v)
		}
	}
	return render.RGB(uint8(r), uint8(g), uint8(b)), nil
}

var errBadSize = errors.New("size must be WxH with positive sides")

func parseSize(s string) (w, h int, err error) {
	if _, err := fmt.Sscanf(s, "%dx%d", &w, &h); err != nil {
		return 0, 0, fmt.Errorf("parse size %q: %w", s, err)
	}
	if w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("parse size %q: %w", s, errBadSize)
	}
	return w, h, nil
}
