package main

import (
	"bytes"
	"errors"
	"flag"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"seehuhn.de/go/geom/rect"

	"github.com/Jormungand-Stark/softrender/colorspace"
	"github.com/Jormungand-Stark/softrender/framebuffer"
	"github.com/Jormungand-Stark/softrender/internal/yuvgen"
	"github.com/Jormungand-Stark/softrender/raster"
	"github.com/Jormungand-Stark/softrender/texture"
)

func newFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("softrender", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func TestParseFlagsDefaults(t *testing.T) {
	cfg, err := parseFlags(newFlagSet(), nil)
	if err != nil {
		t.Fatalf("parseFlags() error = %v", err)
	}

	if cfg.width != 800 || cfg.height != 600 || cfg.texWidth != 640 || cfg.texHeight != 480 {
		t.Errorf("sizes = %dx%d / %dx%d", cfg.width, cfg.height, cfg.texWidth, cfg.texHeight)
	}
	if cfg.output != filepath.Join("samples", "render_800x600.ppm") {
		t.Errorf("output = %q", cfg.output)
	}
	u := cfg.uniforms
	if u.TranslateX != 100 || u.TranslateY != 0 || u.ScaleX != 2 || u.ScaleY != 1 || math.Abs(u.Rotate-math.Pi/4) > 1e-12 {
		t.Errorf("uniforms = %+v", u)
	}
	if cfg.filter != texture.FilterNearest || cfg.standard != colorspace.StandardSD || cfg.fillRule != raster.FillTolerant {
		t.Errorf("enums = %v %v %v", cfg.filter, cfg.standard, cfg.fillRule)
	}
}

func TestParseFlagsOverrides(t *testing.T) {
	t.Setenv("SOFTRENDER_STANDARD", "bt709")
	t.Setenv("SOFTRENDER_WIDTH", "320")

	cfg, err := parseFlags(newFlagSet(), []string{
		"-filter", "bilinear", "-fill", "top-left", "-height", "200", "-rotate", "90", "frame.yuv",
	})
	if err != nil {
		t.Fatalf("parseFlags() error = %v", err)
	}
	if cfg.input != "frame.yuv" {
		t.Errorf("input = %q, want the positional argument", cfg.input)
	}
	if cfg.standard != colorspace.StandardHD {
		t.Errorf("standard = %v, want hd from the environment", cfg.standard)
	}
	if cfg.width != 320 || cfg.height != 200 {
		t.Errorf("size = %dx%d, want 320x200", cfg.width, cfg.height)
	}
	if cfg.filter != texture.FilterBilinear || cfg.fillRule != raster.FillTopLeft {
		t.Errorf("filter, fill = %v, %v", cfg.filter, cfg.fillRule)
	}
	if math.Abs(cfg.uniforms.Rotate-math.Pi/2) > 1e-12 {
		t.Errorf("rotate = %v rad, want pi/2", cfg.uniforms.Rotate)
	}
}

func TestInvalidEnvLoggedWithRunID(t *testing.T) {
	t.Setenv("SOFTRENDER_FILTER", "trilinear")

	cfg, err := parseFlags(newFlagSet(), nil)
	if err != nil {
		t.Fatalf("parseFlags() error = %v", err)
	}
	if cfg.filter != texture.FilterNearest {
		t.Errorf("filter = %v, want the nearest default", cfg.filter)
	}
	if len(cfg.envErrs) != 1 {
		t.Fatalf("envErrs = %v, want one entry", cfg.envErrs)
	}

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil)).With("run", "r1")
	logEnvErrors(logger, cfg)

	out := buf.String()
	for _, want := range []string{"level=WARN", "run=r1", "SOFTRENDER_FILTER"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output %q missing %q", out, want)
		}
	}
}

func TestParseFlagsRejectsBadEnum(t *testing.T) {
	if _, err := parseFlags(newFlagSet(), []string{"-filter", "trilinear"}); err == nil {
		t.Error("parseFlags() accepted an unknown filter")
	}
}

func TestParseRect(t *testing.T) {
	got, err := parseRect("10, 20,300.5,400")
	if err != nil {
		t.Fatalf("parseRect() error = %v", err)
	}
	if want := (rect.Rect{LLx: 10, LLy: 20, URx: 300.5, URy: 400}); got != want {
		t.Errorf("parseRect() = %+v, want %+v", got, want)
	}

	for _, bad := range []string{"", "1,2,3", "a,b,c,d"} {
		if _, err := parseRect(bad); err == nil {
			t.Errorf("parseRect(%q) expected error", bad)
		}
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.yuv")
	tex, err := yuvgen.Generate(64, 48)
	if err != nil {
		t.Fatal(err)
	}
	if err := tex.Save(input); err != nil {
		t.Fatal(err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("default scene", func(t *testing.T) {
		cfg, err := parseFlags(newFlagSet(), []string{
			"-tex-width", "64", "-tex-height", "48",
			"-width", "80", "-height", "60",
			"-caption", "test",
			"-out", filepath.Join(dir, "nested", "out.png"),
			input,
		})
		if err != nil {
			t.Fatal(err)
		}
		if err := run(cfg, logger); err != nil {
			t.Fatalf("run() error = %v", err)
		}
		if _, err := os.Stat(cfg.output); err != nil {
			t.Errorf("output not written: %v", err)
		}
	})

	t.Run("scaled ppm", func(t *testing.T) {
		out := filepath.Join(dir, "scaled.ppm")
		cfg, err := parseFlags(newFlagSet(), []string{
			"-tex-width", "64", "-tex-height", "48",
			"-width", "40", "-height", "30",
			"-scale", "2", "-smooth", "-clip", "0,0,20,30",
			"-out", out,
			input,
		})
		if err != nil {
			t.Fatal(err)
		}
		if err := run(cfg, logger); err != nil {
			t.Fatalf("run() error = %v", err)
		}
		data, err := os.ReadFile(out)
		if err != nil {
			t.Fatal(err)
		}
		if want := len("P6 80 60 255\n") + 80*60*3; len(data) != want {
			t.Errorf("PPM has %d bytes, want %d", len(data), want)
		}
	})

	t.Run("missing input", func(t *testing.T) {
		cfg, err := parseFlags(newFlagSet(), []string{"-out", filepath.Join(dir, "x.ppm"), filepath.Join(dir, "none.yuv")})
		if err != nil {
			t.Fatal(err)
		}
		if err := run(cfg, logger); !errors.Is(err, os.ErrNotExist) {
			t.Errorf("run() error = %v, want os.ErrNotExist", err)
		}
	})

	t.Run("truncated input", func(t *testing.T) {
		cfg, err := parseFlags(newFlagSet(), []string{"-out", filepath.Join(dir, "y.ppm"), input})
		if err != nil {
			t.Fatal(err)
		}
		// 640x480 default does not fit the 64x48 file.
		if err := run(cfg, logger); !errors.Is(err, texture.ErrTruncated) {
			t.Errorf("run() error = %v, want ErrTruncated", err)
		}
	})

	t.Run("unsupported output", func(t *testing.T) {
		cfg, err := parseFlags(newFlagSet(), []string{
			"-tex-width", "64", "-tex-height", "48", "-out", filepath.Join(dir, "out.gif"), input,
		})
		if err != nil {
			t.Fatal(err)
		}
		if err := run(cfg, logger); !errors.Is(err, framebuffer.ErrUnsupportedFormat) {
			t.Errorf("run() error = %v, want ErrUnsupportedFormat", err)
		}
	})
}
