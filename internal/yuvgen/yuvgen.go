// Package yuvgen generates the deterministic I420 test pattern used by the
// demo commands and tests.
//
// Luma mixes horizontal, vertical and diagonal ramps with a 40 px checker
// board. Chroma splits the frame into four tinted quadrants, each blended
// with a horizontal (Cb) or vertical (Cr) ramp.
package yuvgen

import (
	"github.com/Jormungand-Stark/softrender"
	"github.com/Jormungand-Stark/softrender/texture"
)

// CheckerSize is the side of one checker square in luma pixels.
const CheckerSize = 40

// Checker luma levels.
const (
	checkerLight = 200
	checkerDark  = 50
)

// quadrant holds the base chroma of one quarter of the frame.
type quadrant struct {
	cb, cr float64
}

// Quadrant tints: top-left reddish, top-right neutral, bottom-left bluish,
// bottom-right magenta.
var quadrants = [2][2]quadrant{
	{{cb: 128, cr: 200}, {cb: 128, cr: 128}},
	{{cb: 200, cr: 128}, {cb: 200, cr: 200}},
}

// EvenSize rounds width and height up to the next even number.
func EvenSize(width, height int) (int, int) {
	return width + width&1, height + height&1
}

// Generate returns the test pattern as a texture. Odd sizes are rounded up
// to even ones.
func Generate(width, height int) (*texture.Planar, error) {
	if w, h := EvenSize(width, height); w != width || h != height {
		softrender.Logger().Warn("yuvgen: rounding size up to even",
			"width", width, "height", height, "to_width", w, "to_height", h)
		width, height = w, h
	}
	if err := texture.CheckDimensions(width, height); err != nil {
		return nil, err
	}

	y, cb, cr := Planes(width, height)
	return texture.New(width, height, y, cb, cr)
}

// Planes returns the three planes of the pattern. width and height must be
// positive and even.
func Planes(width, height int) (y, cb, cr []byte) {
	y = make([]byte, texture.LumaSize(width, height))
	for j := range height {
		for i := range width {
			y[j*width+i] = luma(i, j, width, height)
		}
	}

	cw, ch := width/2, height/2
	cb = make([]byte, texture.ChromaSize(width, height))
	cr = make([]byte, len(cb))
	for j := range ch {
		for i := range cw {
			cb[j*cw+i], cr[j*cw+i] = chroma(i, j, cw, ch)
		}
	}
	return y, cb, cr
}

// luma returns the luma sample at (x, y).
func luma(x, y, width, height int) byte {
	horizontal := ramp(x, width-1)
	vertical := ramp(y, height-1)

	diagonal := 0.0
	if width+height > 2 {
		diagonal = ramp(x+y, width+height-2)
	}

	pattern := float64(checkerDark)
	if (x/CheckerSize+y/CheckerSize)%2 == 0 {
		pattern = checkerLight
	}

	return clampByte(int(horizontal*0.3 + vertical*0.3 + diagonal*0.2 + pattern*0.2))
}

// chroma returns the (Cb, Cr) pair of chroma sample (u, v).
func chroma(u, v, width, height int) (cb, cr byte) {
	row, col := 0, 0
	if v >= height/2 {
		row = 1
	}
	if u >= width/2 {
		col = 1
	}
	q := quadrants[row][col]

	cb = clampByte(int(q.cb*0.7 + ramp(u, width-1)*0.3))
	cr = clampByte(int(q.cr*0.7 + ramp(v, height-1)*0.3))
	return cb, cr
}

// ramp maps n in [0, last] to a whole number in [0, 255].
func ramp(n, last int) float64 {
	return float64(int(float64(n) / float64(max(last, 1)) * 255))
}

// clampByte clamps v to [0, 255].
func clampByte(v int) byte {
	return byte(min(max(v, 0), 255))
}
