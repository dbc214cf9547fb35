// Package framebuffer provides the in-memory RGB target that draw calls
// write into, and encoders that write it to image files.
package framebuffer

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/Jormungand-Stark/softrender"
)

// Frame buffer errors.
var (
	// ErrInvalidDimensions is returned when width or height is non-positive.
	ErrInvalidDimensions = errors.New("framebuffer: invalid dimensions")

	// ErrUnsupportedFormat is returned when an output format is not supported.
	ErrUnsupportedFormat = errors.New("framebuffer: unsupported format")
)

// FrameBuffer is a rectangular RGB pixel buffer, 3 bytes per pixel in
// row-major order. It implements draw.Image and the raster package's
// PixelSink.
type FrameBuffer struct {
	width  int
	height int
	data   []uint8
}

// New creates a black frame buffer with the given dimensions.
func New(width, height int) (*FrameBuffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	return &FrameBuffer{
		width:  width,
		height: height,
		data:   make([]uint8, width*height*3),
	}, nil
}

// Width returns the width of the frame buffer.
func (fb *FrameBuffer) Width() int {
	return fb.width
}

// Height returns the height of the frame buffer.
func (fb *FrameBuffer) Height() int {
	return fb.height
}

// Data returns the raw pixel data (RGB format).
func (fb *FrameBuffer) Data() []uint8 {
	return fb.data
}

// SetPixel sets the color of a single pixel. Out-of-range coordinates are
// ignored.
func (fb *FrameBuffer) SetPixel(x, y int, c softrender.Color) {
	if x < 0 || x >= fb.width || y < 0 || y >= fb.height {
		return
	}
	i := (y*fb.width + x) * 3
	fb.data[i+0] = c.R
	fb.data[i+1] = c.G
	fb.data[i+2] = c.B
}

// Pixel returns the color of a single pixel. Out-of-range coordinates
// return black.
func (fb *FrameBuffer) Pixel(x, y int) softrender.Color {
	if x < 0 || x >= fb.width || y < 0 || y >= fb.height {
		return softrender.Black
	}
	i := (y*fb.width + x) * 3
	return softrender.Color{R: fb.data[i+0], G: fb.data[i+1], B: fb.data[i+2]}
}

// Clear fills the entire frame buffer with a color.
func (fb *FrameBuffer) Clear(c softrender.Color) {
	if len(fb.data) == 0 {
		return
	}
	fb.data[0], fb.data[1], fb.data[2] = c.R, c.G, c.B
	// Double the filled prefix until the buffer is full.
	for n := 3; n < len(fb.data); n *= 2 {
		copy(fb.data[n:], fb.data[:n])
	}
}

// ToImage converts the frame buffer to an image.RGBA.
func (fb *FrameBuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.width, fb.height))
	for i, j := 0, 0; i < len(fb.data); i, j = i+3, j+4 {
		img.Pix[j+0] = fb.data[i+0]
		img.Pix[j+1] = fb.data[i+1]
		img.Pix[j+2] = fb.data[i+2]
		img.Pix[j+3] = 0xff
	}
	return img
}

// FromImage creates a frame buffer from an image. Alpha is dropped.
func FromImage(img image.Image) (*FrameBuffer, error) {
	bounds := img.Bounds()
	fb, err := New(bounds.Dx(), bounds.Dy())
	if err != nil {
		return nil, err
	}

	for y := range fb.height {
		for x := range fb.width {
			fb.SetPixel(x, y, softrender.FromColor(img.At(bounds.Min.X+x, bounds.Min.Y+y)))
		}
	}
	return fb, nil
}

// At implements the image.Image interface.
func (fb *FrameBuffer) At(x, y int) color.Color {
	return fb.Pixel(x, y)
}

// Bounds implements the image.Image interface.
func (fb *FrameBuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, fb.width, fb.height)
}

// Set implements the draw.Image interface. Alpha is dropped.
func (fb *FrameBuffer) Set(x, y int, c color.Color) {
	fb.SetPixel(x, y, softrender.FromColor(c))
}

// ColorModel implements the image.Image interface.
func (fb *FrameBuffer) ColorModel() color.Model {
	return softrender.ColorModel
}
