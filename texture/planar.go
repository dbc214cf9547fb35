// Package texture provides planar YUV 4:2:0 textures for softrender.
//
// A [Planar] texture owns three independent sample planes: full-resolution
// luma and two chroma planes at half the width and half the height. Planes
// are immutable once the texture is built; the filter mode is chosen per
// sample call (see [Planar.Sample] and [Sampler]), so a texture can be
// shared freely between goroutines.
package texture

import (
	"errors"
	"fmt"
)

// Common errors for texture construction.
var (
	// ErrInvalidDimensions is returned when width or height is non-positive.
	ErrInvalidDimensions = errors.New("texture: invalid dimensions")

	// ErrOddDimensions is returned when width or height is odd. 4:2:0
	// chroma subsampling needs whole chroma rows and columns.
	ErrOddDimensions = errors.New("texture: 4:2:0 requires even width and height")

	// ErrTruncated is returned when the source holds fewer bytes than the
	// three planes need.
	ErrTruncated = errors.New("texture: source too small")

	// ErrPlaneSize is returned when a plane slice passed to New is shorter
	// than its plane.
	ErrPlaneSize = errors.New("texture: plane buffer too small")
)

// plane is a single row-major 8-bit sample plane.
type plane struct {
	pix    []byte
	width  int
	height int
}

// at returns the sample at (x, y). Coordinates must be in range.
func (p *plane) at(x, y int) byte {
	return p.pix[y*p.width+x]
}

// Planar is an immutable 4:2:0 planar texture.
type Planar struct {
	luma plane
	cb   plane
	cr   plane
}

// CheckDimensions reports whether width and height can hold a 4:2:0 frame.
func CheckDimensions(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if width%2 != 0 || height%2 != 0 {
		return fmt.Errorf("%w: %dx%d", ErrOddDimensions, width, height)
	}
	return nil
}

// LumaSize returns the number of bytes in the luma plane.
func LumaSize(width, height int) int {
	return width * height
}

// ChromaSize returns the number of bytes in each chroma plane.
func ChromaSize(width, height int) int {
	return (width / 2) * (height / 2)
}

// FrameSize returns the minimum number of bytes of a raw I420 frame:
// the luma plane followed by both chroma planes.
func FrameSize(width, height int) int {
	return LumaSize(width, height) + 2*ChromaSize(width, height)
}

// New creates a texture from three plane buffers. The buffers are copied;
// bytes beyond each plane's size are ignored.
func New(width, height int, y, cb, cr []byte) (*Planar, error) {
	if err := CheckDimensions(width, height); err != nil {
		return nil, err
	}

	ySize := LumaSize(width, height)
	cSize := ChromaSize(width, height)
	switch {
	case len(y) < ySize:
		return nil, fmt.Errorf("%w: luma has %d bytes, want %d", ErrPlaneSize, len(y), ySize)
	case len(cb) < cSize:
		return nil, fmt.Errorf("%w: cb has %d bytes, want %d", ErrPlaneSize, len(cb), cSize)
	case len(cr) < cSize:
		return nil, fmt.Errorf("%w: cr has %d bytes, want %d", ErrPlaneSize, len(cr), cSize)
	}

	t := newPlanar(width, height)
	copy(t.luma.pix, y)
	copy(t.cb.pix, cb)
	copy(t.cr.pix, cr)
	return t, nil
}

// newPlanar allocates zeroed planes for a width x height texture.
// Dimensions must already be validated.
func newPlanar(width, height int) *Planar {
	cw, ch := width/2, height/2
	return &Planar{
		luma: plane{pix: make([]byte, width*height), width: width, height: height},
		cb:   plane{pix: make([]byte, cw*ch), width: cw, height: ch},
		cr:   plane{pix: make([]byte, cw*ch), width: cw, height: ch},
	}
}

// Width returns the luma width in texels.
func (t *Planar) Width() int {
	return t.luma.width
}

// Height returns the luma height in texels.
func (t *Planar) Height() int {
	return t.luma.height
}

// Bounds returns the luma width and height.
func (t *Planar) Bounds() (width, height int) {
	return t.luma.width, t.luma.height
}

// ChromaBounds returns the width and height of each chroma plane.
func (t *Planar) ChromaBounds() (width, height int) {
	return t.cb.width, t.cb.height
}

// Luma returns the luma plane in row-major order.
// The returned slice must not be modified.
func (t *Planar) Luma() []byte {
	return t.luma.pix
}

// Cb returns the first chroma plane (U) in row-major order.
// The returned slice must not be modified.
func (t *Planar) Cb() []byte {
	return t.cb.pix
}

// Cr returns the second chroma plane (V) in row-major order.
// The returned slice must not be modified.
func (t *Planar) Cr() []byte {
	return t.cr.pix
}
