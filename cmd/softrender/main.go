// Command softrender renders a raw I420 frame onto a transformed full-screen
// quad and writes the result as an image.
//
// Usage:
//
//	softrender [flags] [input.yuv]
//
// Every flag can also be set through a SOFTRENDER_* environment variable;
// see -help for names and defaults.
package main

import (
	"encoding"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"seehuhn.de/go/geom/rect"

	"github.com/Jormungand-Stark/softrender"
	"github.com/Jormungand-Stark/softrender/colorspace"
	"github.com/Jormungand-Stark/softrender/framebuffer"
	"github.com/Jormungand-Stark/softrender/internal/overlay"
	"github.com/Jormungand-Stark/softrender/raster"
	"github.com/Jormungand-Stark/softrender/shader"
	"github.com/Jormungand-Stark/softrender/texture"
)

// config is the parsed command line.
type config struct {
	input     string
	output    string
	texWidth  int
	texHeight int
	width     int
	height    int

	uniforms shader.Uniforms

	filter   texture.Filter
	standard colorspace.Standard
	fillRule raster.FillRule
	clip     string
	clear    string

	caption string
	scale   float64
	smooth  bool
	verbose bool

	// envErrs holds SOFTRENDER_* values that could not be parsed. They are
	// logged once the run logger is installed.
	envErrs []error
}

func main() {
	cfg, err := parseFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		// flag has already printed the problem and usage.
		os.Exit(2)
	}

	level := slog.LevelInfo
	if cfg.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})).
		With("run", uuid.New().String())
	softrender.SetLogger(logger)
	logEnvErrors(logger, cfg)

	if err := run(cfg, logger); err != nil {
		logger.Error("render failed", "err", err)
		os.Exit(1)
	}
}

// parseFlags reads the command line. Defaults come from SOFTRENDER_*
// environment variables where set.
func parseFlags(fs *flag.FlagSet, args []string) (*config, error) {
	cfg := &config{
		filter:   texture.FilterNearest,
		standard: colorspace.StandardSD,
		fillRule: raster.FillTolerant,
	}
	var rotateDeg float64

	fs.StringVar(&cfg.input, "in", getEnv("SOFTRENDER_INPUT", filepath.Join("assets", "yuv", "test_640x480.yuv")), "input I420 file")
	fs.StringVar(&cfg.output, "out", getEnv("SOFTRENDER_OUTPUT", ""), "output image (.ppm, .png, .jpg, .bmp, .tif); default samples/render_<w>x<h>.ppm")
	fs.IntVar(&cfg.texWidth, "tex-width", getEnvInt("SOFTRENDER_TEX_WIDTH", 640), "input frame width")
	fs.IntVar(&cfg.texHeight, "tex-height", getEnvInt("SOFTRENDER_TEX_HEIGHT", 480), "input frame height")
	fs.IntVar(&cfg.width, "width", getEnvInt("SOFTRENDER_WIDTH", 800), "frame buffer width")
	fs.IntVar(&cfg.height, "height", getEnvInt("SOFTRENDER_HEIGHT", 600), "frame buffer height")

	fs.Float64Var(&cfg.uniforms.TranslateX, "tx", getEnvFloat("SOFTRENDER_TX", 100), "translation along x in pixels")
	fs.Float64Var(&cfg.uniforms.TranslateY, "ty", getEnvFloat("SOFTRENDER_TY", 0), "translation along y in pixels")
	fs.Float64Var(&cfg.uniforms.ScaleX, "sx", getEnvFloat("SOFTRENDER_SX", 2), "scale along x (> 0)")
	fs.Float64Var(&cfg.uniforms.ScaleY, "sy", getEnvFloat("SOFTRENDER_SY", 1), "scale along y (> 0)")
	fs.Float64Var(&rotateDeg, "rotate", getEnvFloat("SOFTRENDER_ROTATE", 45), "rotation in degrees, clockwise on screen")

	for _, e := range []struct {
		key string
		v   encoding.TextUnmarshaler
	}{
		{"SOFTRENDER_FILTER", &cfg.filter},
		{"SOFTRENDER_STANDARD", &cfg.standard},
		{"SOFTRENDER_FILL", &cfg.fillRule},
	} {
		if err := envText(e.key, e.v); err != nil {
			cfg.envErrs = append(cfg.envErrs, err)
		}
	}
	fs.TextVar(&cfg.filter, "filter", cfg.filter, "texture filter: nearest or bilinear")
	fs.TextVar(&cfg.standard, "standard", cfg.standard, "color matrix: sd, hd or uhd")
	fs.TextVar(&cfg.fillRule, "fill", cfg.fillRule, "fill rule: tolerant or top-left")
	fs.StringVar(&cfg.clip, "clip", getEnv("SOFTRENDER_CLIP", ""), "scissor rectangle x0,y0,x1,y1 in pixels")
	fs.StringVar(&cfg.clear, "clear", getEnv("SOFTRENDER_CLEAR", "000000"), "background color as hex RGB")

	fs.StringVar(&cfg.caption, "caption", getEnv("SOFTRENDER_CAPTION", ""), "text burned into the bottom-left corner")
	fs.Float64Var(&cfg.scale, "scale", getEnvFloat("SOFTRENDER_SCALE", 1), "resize the output by this factor")
	fs.BoolVar(&cfg.smooth, "smooth", false, "use Catmull-Rom instead of nearest neighbor when scaling")
	fs.BoolVar(&cfg.verbose, "v", false, "verbose (debug) logging")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		cfg.input = fs.Arg(0)
	}
	cfg.uniforms.Rotate = rotateDeg * math.Pi / 180
	if cfg.output == "" {
		cfg.output = filepath.Join("samples", fmt.Sprintf("render_%dx%d.ppm", cfg.width, cfg.height))
	}
	return cfg, nil
}

func run(cfg *config, logger *slog.Logger) error {
	tex, err := texture.Load(cfg.input, cfg.texWidth, cfg.texHeight)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w (generate one with: genyuv -width %d -height %d -out %s)",
				err, cfg.texWidth, cfg.texHeight, cfg.input)
		}
		return err
	}

	tr, err := shader.NewTransform2D(cfg.uniforms)
	if err != nil {
		return err
	}

	opts := []raster.Option{
		raster.WithStandard(cfg.standard),
		raster.WithFillRule(cfg.fillRule),
	}
	if cfg.clip != "" {
		clip, err := parseRect(cfg.clip)
		if err != nil {
			return err
		}
		opts = append(opts, raster.WithClip(clip))
	}
	r := raster.New(opts...)

	fb, err := framebuffer.New(cfg.width, cfg.height)
	if err != nil {
		return err
	}
	fb.Clear(softrender.Hex(cfg.clear))

	verts := shader.Apply(tr.Func(), raster.Quad(float64(cfg.width), float64(cfg.height)))
	pixels := r.DrawTexturedMesh(fb, verts, tex.Sampler(cfg.filter))

	p := message.NewPrinter(language.English)
	logger.Info("rendered",
		"input", cfg.input,
		"filter", cfg.filter,
		"standard", cfg.standard,
		"fill", cfg.fillRule,
		"pixels", p.Sprintf("%d", pixels))

	if cfg.caption != "" {
		if _, err := overlay.Caption(fb, cfg.caption, overlay.DefaultOptions()); err != nil {
			return err
		}
	}

	if cfg.scale != 1 {
		w := int(math.Round(float64(cfg.width) * cfg.scale))
		h := int(math.Round(float64(cfg.height) * cfg.scale))
		kernel := framebuffer.KernelNearest
		if cfg.smooth {
			kernel = framebuffer.KernelCatmullRom
		}
		if fb, err = fb.Scale(w, h, kernel); err != nil {
			return err
		}
	}

	if dir := filepath.Dir(cfg.output); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := fb.Save(cfg.output); err != nil {
		return err
	}

	logger.Info("saved",
		"output", cfg.output,
		"size", fmt.Sprintf("%dx%d", fb.Width(), fb.Height()),
		"bytes", p.Sprintf("%d", len(fb.Data())))
	return nil
}

// parseRect parses "x0,y0,x1,y1".
func parseRect(s string) (rect.Rect, error) {
	var r rect.Rect
	n, err := fmt.Sscanf(strings.ReplaceAll(s, " ", ""), "%g,%g,%g,%g", &r.LLx, &r.LLy, &r.URx, &r.URy)
	if err != nil || n != 4 {
		return rect.Rect{}, fmt.Errorf("invalid clip %q: want x0,y0,x1,y1", s)
	}
	return r, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		var x int
		if _, err := fmt.Sscanf(v, "%d", &x); err == nil {
			return x
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		var x float64
		if _, err := fmt.Sscanf(v, "%g", &x); err == nil {
			return x
		}
	}
	return def
}

// envText overrides v from the environment variable key. A value v cannot
// parse leaves v unchanged and is returned as an error.
func envText(key string, v encoding.TextUnmarshaler) error {
	if s := os.Getenv(key); s != "" {
		if err := v.UnmarshalText([]byte(s)); err != nil {
			return fmt.Errorf("%s=%q: %w", key, s, err)
		}
	}
	return nil
}

// logEnvErrors reports the environment values parseFlags ignored.
func logEnvErrors(logger *slog.Logger, cfg *config) {
	for _, err := range cfg.envErrs {
		logger.Warn("ignoring invalid environment value", "err", err)
	}
}
