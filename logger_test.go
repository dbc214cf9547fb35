package softrender_test

import (
	"bytes"
	"context"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/Jormungand-Stark/softrender"
	"github.com/Jormungand-Stark/softrender/raster"
	"github.com/Jormungand-Stark/softrender/texture"
)

// captureLogs installs a debug-level text logger for the duration of t.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	prev := softrender.Logger()
	t.Cleanup(func() { softrender.SetLogger(prev) })

	var buf bytes.Buffer
	softrender.SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	return &buf
}

type nullSink struct{ w, h int }

func (s nullSink) SetPixel(int, int, softrender.Color) {}

func (s nullSink) Bounds() image.Rectangle { return image.Rect(0, 0, s.w, s.h) }

func TestLoggerSilentByDefault(t *testing.T) {
	softrender.SetLogger(nil)
	l := softrender.Logger()
	if l == nil {
		t.Fatal("Logger() = nil")
	}
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError} {
		if l.Enabled(context.Background(), level) {
			t.Errorf("silent logger enabled at %v", level)
		}
	}
	silent := l.With("k", "v").WithGroup("g")
	if silent.Enabled(context.Background(), slog.LevelError) {
		t.Error("derived silent logger is enabled")
	}
}

func TestLoggerReceivesPackageRecords(t *testing.T) {
	tests := []struct {
		name string
		emit func(t *testing.T)
		want []string
	}{
		{
			name: "texture trailing bytes",
			emit: func(t *testing.T) {
				path := filepath.Join(t.TempDir(), "long.yuv")
				if err := os.WriteFile(path, make([]byte, texture.FrameSize(2, 2)+4), 0o600); err != nil {
					t.Fatal(err)
				}
				if _, err := texture.Load(path, 2, 2); err != nil {
					t.Fatalf("Load() error = %v", err)
				}
			},
			want: []string{"level=WARN", "trailing bytes", "level=DEBUG", "texture: loaded"},
		},
		{
			name: "degenerate triangle",
			emit: func(*testing.T) {
				v := softrender.Vtx(1, 1, 0, 0)
				raster.New().DrawSolidTriangle(nullSink{4, 4}, v, v, v, softrender.White)
			},
			want: []string{"level=DEBUG", "degenerate triangle"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := captureLogs(t)
			tt.emit(t)
			for _, want := range tt.want {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("log output missing %q:\n%s", want, buf)
				}
			}
		})
	}
}

func TestSetLoggerNilSilencesPackages(t *testing.T) {
	buf := captureLogs(t)
	softrender.SetLogger(nil)

	v := softrender.Vtx(1, 1, 0, 0)
	raster.New().DrawSolidTriangle(nullSink{4, 4}, v, v, v, softrender.White)
	if buf.Len() != 0 {
		t.Errorf("logged after SetLogger(nil): %s", buf)
	}
}

func TestSetLoggerWhileDrawing(t *testing.T) {
	prev := softrender.Logger()
	t.Cleanup(func() { softrender.SetLogger(prev) })

	r := raster.New()
	v := softrender.Vtx(1, 1, 0, 0)
	var wg sync.WaitGroup
	for range 50 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			r.DrawSolidTriangle(nullSink{4, 4}, v, v, v, softrender.White)
		}()
		go func() {
			defer wg.Done()
			softrender.SetLogger(slog.Default())
			softrender.SetLogger(nil)
		}()
	}
	wg.Wait()
}

func BenchmarkSilentDebug(b *testing.B) {
	softrender.SetLogger(nil)
	l := softrender.Logger()
	b.ReportAllocs()
	for b.Loop() {
		l.Debug("raster: skipping degenerate triangle", "v0", softrender.Pt(1, 2))
	}
}
