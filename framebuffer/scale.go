package framebuffer

import (
	"fmt"
	"image"

	xdraw "golang.org/x/image/draw"
)

// Kernel selects the resampling filter used by Scale.
type Kernel uint8

const (
	// KernelNearest copies the nearest source pixel.
	KernelNearest Kernel = iota

	// KernelCatmullRom uses the Catmull-Rom cubic, the sharpest of the
	// smooth kernels.
	KernelCatmullRom
)

// scaler returns the x/image scaler for k.
func (k Kernel) scaler() (xdraw.Scaler, error) {
	switch k {
	case KernelNearest:
		return xdraw.NearestNeighbor, nil
	case KernelCatmullRom:
		return xdraw.CatmullRom, nil
	default:
		return nil, fmt.Errorf("framebuffer: unknown kernel %d", uint8(k))
	}
}

// Scale returns a new frame buffer of the given size holding fb resampled
// with kernel k.
func (fb *FrameBuffer) Scale(width, height int, k Kernel) (*FrameBuffer, error) {
	s, err := k.scaler()
	if err != nil {
		return nil, err
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	s.Scale(dst, dst.Bounds(), fb.ToImage(), fb.Bounds(), xdraw.Src, nil)
	return FromImage(dst)
}
