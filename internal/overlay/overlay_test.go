package overlay

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func TestCaptionEmpty(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 10, 10))
	if _, err := Caption(dst, "", DefaultOptions()); !errors.Is(err, ErrEmptyText) {
		t.Errorf("Caption(\"\") error = %v, want ErrEmptyText", err)
	}
}

func TestCaptionDrawsInBottomLeft(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 200, 80))

	box, err := Caption(dst, "softrender 800x600", DefaultOptions())
	if err != nil {
		t.Fatalf("Caption() error = %v", err)
	}
	if box.Empty() {
		t.Fatal("Caption() returned an empty box")
	}
	if box.Min.X != 6 || box.Max.Y != 74 {
		t.Errorf("box = %v, want it anchored 6px from the bottom-left corner", box)
	}

	// Something other than black and the translucent box must have been
	// drawn inside the box, and nothing above it.
	bright := 0
	for y := box.Min.Y; y < box.Max.Y; y++ {
		for x := box.Min.X; x < box.Max.X; x++ {
			if dst.RGBAAt(x, y).R > 128 {
				bright++
			}
		}
	}
	if bright == 0 {
		t.Error("no text pixels inside the caption box")
	}
	for y := 0; y < box.Min.Y; y++ {
		for x := range 200 {
			if c := dst.RGBAAt(x, y); c != (color.RGBA{}) {
				t.Fatalf("pixel (%d, %d) = %v above the caption box", x, y, c)
			}
		}
	}
}

func TestCaptionWithoutBackground(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 120, 40))
	opts := DefaultOptions()
	opts.Background = nil
	opts.Foreground = color.RGBA{G: 255, A: 255}

	if _, err := Caption(dst, "Hi", opts); err != nil {
		t.Fatalf("Caption() error = %v", err)
	}

	for _, c := range []color.RGBA{dst.RGBAAt(0, 0), dst.RGBAAt(119, 39)} {
		if c != (color.RGBA{}) {
			t.Errorf("corner pixel = %v, want untouched", c)
		}
	}
	green := false
	for i := 0; i < len(dst.Pix); i += 4 {
		if dst.Pix[i+1] > 0 && dst.Pix[i] == 0 {
			green = true
			break
		}
	}
	if !green {
		t.Error("no green text pixels drawn")
	}
}

func TestCaptionClipsToSmallImage(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 8, 8))
	box, err := Caption(dst, "a caption far wider than the frame", DefaultOptions())
	if err != nil {
		t.Fatalf("Caption() error = %v", err)
	}
	if !box.In(dst.Bounds()) {
		t.Errorf("box %v escapes the image bounds", box)
	}
}
