// Package overlay burns a one-line text caption into a rendered frame.
package overlay

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// ErrEmptyText is returned when the caption has no text.
var ErrEmptyText = errors.New("overlay: empty caption")

// Options controls caption placement and appearance.
type Options struct {
	// Size is the font size in pixels.
	Size float64

	// Margin is the distance in pixels from the bottom-left corner of the
	// destination to the caption box, and the padding inside the box.
	Margin int

	// Foreground is the text color.
	Foreground color.Color

	// Background fills the box behind the text. Nil draws no box.
	Background color.Color
}

// DefaultOptions returns white 14px text on a translucent black box.
func DefaultOptions() Options {
	return Options{
		Size:       14,
		Margin:     6,
		Foreground: color.White,
		Background: color.NRGBA{A: 160},
	}
}

var (
	fontOnce sync.Once
	goFont   *opentype.Font
	errFont  error
)

// regular returns the parsed Go Regular font.
func regular() (*opentype.Font, error) {
	fontOnce.Do(func() {
		goFont, errFont = opentype.Parse(goregular.TTF)
	})
	return goFont, errFont
}

// Caption draws text in the bottom-left corner of dst and returns the
// rectangle it covered. Text that does not fit is clipped to dst.
func Caption(dst draw.Image, text string, opts Options) (image.Rectangle, error) {
	if text == "" {
		return image.Rectangle{}, ErrEmptyText
	}
	if opts.Size <= 0 {
		opts.Size = DefaultOptions().Size
	}
	if opts.Foreground == nil {
		opts.Foreground = color.White
	}

	f, err := regular()
	if err != nil {
		return image.Rectangle{}, fmt.Errorf("overlay: parse font: %w", err)
	}

	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    opts.Size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return image.Rectangle{}, fmt.Errorf("overlay: create face: %w", err)
	}
	defer func() {
		_ = face.Close()
	}()

	drawer := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(opts.Foreground),
		Face: face,
	}

	metrics := face.Metrics()
	ascent := metrics.Ascent.Ceil()
	descent := metrics.Descent.Ceil()
	advance := drawer.MeasureString(text).Ceil()

	b := dst.Bounds()
	m := opts.Margin
	box := image.Rect(
		b.Min.X+m,
		b.Max.Y-m-ascent-descent-2*m,
		b.Min.X+m+advance+2*m,
		b.Max.Y-m,
	).Intersect(b)

	if opts.Background != nil && !box.Empty() {
		draw.Draw(dst, box, image.NewUniform(opts.Background), image.Point{}, draw.Over)
	}

	drawer.Dot = fixed.Point26_6{
		X: fixed.I(b.Min.X + 2*m),
		Y: fixed.I(b.Max.Y - 2*m - descent),
	}
	drawer.DrawString(text)

	return box, nil
}
