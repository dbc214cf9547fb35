// Command genyuv writes raw I420 frames for softrender: either the built-in
// test pattern or a conversion of an existing PNG, JPEG, BMP or TIFF image.
package main

import (
	"flag"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/Jormungand-Stark/softrender"
	"github.com/Jormungand-Stark/softrender/framebuffer"
	"github.com/Jormungand-Stark/softrender/internal/yuvgen"
	"github.com/Jormungand-Stark/softrender/raster"
	"github.com/Jormungand-Stark/softrender/texture"
)

type config struct {
	width   int
	height  int
	from    string
	output  string
	preview string
	verbose bool
}

func main() {
	var cfg config
	flag.IntVar(&cfg.width, "width", getEnvInt("GENYUV_WIDTH", 640), "pattern width (odd values are rounded up)")
	flag.IntVar(&cfg.height, "height", getEnvInt("GENYUV_HEIGHT", 480), "pattern height (odd values are rounded up)")
	flag.StringVar(&cfg.from, "from", "", "convert this image instead of generating the pattern")
	flag.StringVar(&cfg.output, "out", "", "output file; default assets/yuv/test_<w>x<h>.yuv")
	flag.StringVar(&cfg.preview, "preview", "", "also write an RGB preview image (.png, .ppm, ...)")
	flag.BoolVar(&cfg.verbose, "v", false, "verbose (debug) logging")
	flag.Parse()

	level := slog.LevelInfo
	if cfg.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})).
		With("run", uuid.New().String())
	softrender.SetLogger(logger)

	if err := run(&cfg, logger); err != nil {
		logger.Error("genyuv failed", "err", err)
		os.Exit(1)
	}
}

func run(cfg *config, logger *slog.Logger) error {
	var (
		tex *texture.Planar
		err error
	)
	if cfg.from != "" {
		tex, err = convert(cfg.from)
	} else {
		tex, err = yuvgen.Generate(cfg.width, cfg.height)
	}
	if err != nil {
		return err
	}

	w, h := tex.Bounds()
	if cfg.output == "" {
		cfg.output = filepath.Join("assets", "yuv", fmt.Sprintf("test_%dx%d.yuv", w, h))
	}
	if err := mkdirFor(cfg.output); err != nil {
		return err
	}
	if err := tex.Save(cfg.output); err != nil {
		return err
	}

	p := message.NewPrinter(language.English)
	logger.Info("wrote I420 frame",
		"output", cfg.output,
		"size", fmt.Sprintf("%dx%d", w, h),
		"luma_bytes", p.Sprintf("%d", texture.LumaSize(w, h)),
		"chroma_bytes", p.Sprintf("%d", texture.ChromaSize(w, h)),
		"total_bytes", p.Sprintf("%d", texture.FrameSize(w, h)))
	logger.Info("render it with",
		"cmd", fmt.Sprintf("softrender -tex-width %d -tex-height %d %s", w, h, cfg.output))

	if cfg.preview != "" {
		if err := writePreview(tex, cfg.preview); err != nil {
			return err
		}
		logger.Info("wrote preview", "output", cfg.preview)
	}
	return nil
}

// convert decodes an image file and converts it to a planar texture.
func convert(path string) (*texture.Planar, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer func() { _ = f.Close() }()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	softrender.Logger().Debug("decoded image", "path", path, "format", format, "bounds", img.Bounds())

	return texture.FromImage(img)
}

// writePreview renders the texture 1:1 with nearest filtering and saves it.
func writePreview(tex *texture.Planar, path string) error {
	w, h := tex.Bounds()
	fb, err := framebuffer.New(w, h)
	if err != nil {
		return err
	}
	r := raster.New(raster.WithFillRule(raster.FillTopLeft))
	r.DrawTexturedMesh(fb, raster.Quad(float64(w), float64(h)), tex.Sampler(texture.FilterNearest))

	if err := mkdirFor(path); err != nil {
		return err
	}
	return fb.Save(path)
}

// mkdirFor creates the parent directory of path.
func mkdirFor(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("create directory: %w", err)
		}
	}
	return nil
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
