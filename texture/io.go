package texture

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
	"path/filepath"

	"github.com/Jormungand-Stark/softrender"
)

// Load reads a raw I420 file: the luma plane (width*height bytes, row-major)
// followed by the Cb and Cr planes ((width/2)*(height/2) bytes each). There
// is no header.
//
// Files smaller than [FrameSize] fail with [ErrTruncated]. Larger files are
// accepted and only the required prefix is read.
func Load(path string, width, height int) (*Planar, error) {
	if err := CheckDimensions(width, height); err != nil {
		return nil, err
	}

	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("texture: %w", err)
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("texture: %w", err)
	}

	want := int64(FrameSize(width, height))
	if size := info.Size(); size < want {
		return nil, fmt.Errorf("%w: %s has %d bytes, want %d", ErrTruncated, path, size, want)
	} else if size > want {
		softrender.Logger().Warn("texture: ignoring trailing bytes",
			"path", path, "size", size, "used", want)
	}

	t := newPlanar(width, height)
	if err := t.readPlanes(f, path); err != nil {
		return nil, err
	}

	softrender.Logger().Debug("texture: loaded",
		"path", path, "width", width, "height", height)
	return t, nil
}

// Decode reads one raw I420 frame from r. It reads exactly [FrameSize]
// bytes; a short stream fails with [ErrTruncated] naming the plane that
// could not be filled.
func Decode(r io.Reader, width, height int) (*Planar, error) {
	if err := CheckDimensions(width, height); err != nil {
		return nil, err
	}

	t := newPlanar(width, height)
	if err := t.readPlanes(r, "stream"); err != nil {
		return nil, err
	}
	return t, nil
}

// readPlanes fills the luma, Cb and Cr planes from r in that order. src
// names the source in errors.
func (t *Planar) readPlanes(r io.Reader, src string) error {
	planes := []struct {
		name string
		pix  []byte
	}{
		{"luma", t.luma.pix},
		{"cb", t.cb.pix},
		{"cr", t.cr.pix},
	}
	for _, p := range planes {
		if _, err := io.ReadFull(r, p.pix); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return fmt.Errorf("%w: %s plane of %s", ErrTruncated, p.name, src)
			}
			return fmt.Errorf("texture: read %s plane of %s: %w", p.name, src, err)
		}
	}
	return nil
}

// Encode writes the texture to w as a raw I420 frame, in the layout
// [Decode] reads.
func (t *Planar) Encode(w io.Writer) error {
	for _, pix := range [][]byte{t.luma.pix, t.cb.pix, t.cr.pix} {
		if _, err := w.Write(pix); err != nil {
			return fmt.Errorf("texture: encode: %w", err)
		}
	}
	return nil
}

// Save writes the texture to a raw I420 file.
func (t *Planar) Save(path string) error {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("texture: %w", err)
	}

	if err := t.Encode(f); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}

// YCbCr returns an image.YCbCr view of the texture that shares its planes.
// The view must not be modified. Its colors follow the standard library's
// JFIF conversion, which matches the SD matrix.
func (t *Planar) YCbCr() *image.YCbCr {
	return &image.YCbCr{
		Y:              t.luma.pix,
		Cb:             t.cb.pix,
		Cr:             t.cr.pix,
		YStride:        t.luma.width,
		CStride:        t.cb.width,
		SubsampleRatio: image.YCbCrSubsampleRatio420,
		Rect:           image.Rect(0, 0, t.luma.width, t.luma.height),
	}
}

// FromImage converts img to a planar texture. Luma is computed per pixel;
// each chroma sample is taken from the average color of its 2x2 block.
// The conversion uses the full-range SD (JFIF) matrix.
//
// The image bounds must have even width and height.
func FromImage(img image.Image) (*Planar, error) {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if err := CheckDimensions(width, height); err != nil {
		return nil, err
	}

	// Fast path for 4:2:0 sources whose origin sits on a chroma boundary
	if src, ok := img.(*image.YCbCr); ok && src.SubsampleRatio == image.YCbCrSubsampleRatio420 &&
		bounds.Min.X%2 == 0 && bounds.Min.Y%2 == 0 {
		return fromYCbCr420(src), nil
	}

	t := newPlanar(width, height)
	for y := range height {
		for x := range width {
			r, g, b := rgb8(img.At(bounds.Min.X+x, bounds.Min.Y+y))
			yy, _, _ := color.RGBToYCbCr(r, g, b)
			t.luma.pix[y*width+x] = yy
		}
	}

	cw := t.cb.width
	for cy := range t.cb.height {
		for cx := range cw {
			var rSum, gSum, bSum int
			for dy := range 2 {
				for dx := range 2 {
					r, g, b := rgb8(img.At(bounds.Min.X+2*cx+dx, bounds.Min.Y+2*cy+dy))
					rSum += int(r)
					gSum += int(g)
					bSum += int(b)
				}
			}
			_, cb, cr := color.RGBToYCbCr(uint8(rSum>>2), uint8(gSum>>2), uint8(bSum>>2))
			t.cb.pix[cy*cw+cx] = cb
			t.cr.pix[cy*cw+cx] = cr
		}
	}
	return t, nil
}

// fromYCbCr420 copies the planes of a 4:2:0 image row by row.
func fromYCbCr420(src *image.YCbCr) *Planar {
	bounds := src.Rect
	width, height := bounds.Dx(), bounds.Dy()
	t := newPlanar(width, height)

	for y := range height {
		off := src.YOffset(bounds.Min.X, bounds.Min.Y+y)
		copy(t.luma.pix[y*width:(y+1)*width], src.Y[off:off+width])
	}

	cw := t.cb.width
	for cy := range t.cb.height {
		off := src.COffset(bounds.Min.X, bounds.Min.Y+2*cy)
		copy(t.cb.pix[cy*cw:(cy+1)*cw], src.Cb[off:off+cw])
		copy(t.cr.pix[cy*cw:(cy+1)*cw], src.Cr[off:off+cw])
	}
	return t
}

// rgb8 returns the 8-bit RGB channels of c.
func rgb8(c color.Color) (r, g, b uint8) {
	r32, g32, b32, _ := c.RGBA()
	return uint8(r32 >> 8), uint8(g32 >> 8), uint8(b32 >> 8)
}
