package framebuffer

import (
	"bufio"
	"fmt"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Format identifies an output file format.
type Format string

// Supported output formats.
const (
	FormatPPM  Format = "ppm"
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
	FormatBMP  Format = "bmp"
	FormatTIFF Format = "tiff"
)

// FormatFromPath returns the output format implied by the file extension
// of path.
func FormatFromPath(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".ppm":
		return FormatPPM, nil
	case ".png":
		return FormatPNG, nil
	case ".jpg", ".jpeg":
		return FormatJPEG, nil
	case ".bmp":
		return FormatBMP, nil
	case ".tif", ".tiff":
		return FormatTIFF, nil
	default:
		return "", fmt.Errorf("%w: extension %q", ErrUnsupportedFormat, ext)
	}
}

// Encode writes the frame buffer to w in format f.
func (fb *FrameBuffer) Encode(w io.Writer, f Format) error {
	switch f {
	case FormatPPM:
		return fb.EncodePPM(w)
	case FormatPNG:
		return fb.EncodePNG(w)
	case FormatJPEG:
		return fb.EncodeJPEG(w, jpeg.DefaultQuality)
	case FormatBMP:
		return fb.EncodeBMP(w)
	case FormatTIFF:
		return fb.EncodeTIFF(w)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
}

// Save writes the frame buffer to path, choosing the encoder from the file
// extension (.ppm, .png, .jpg, .bmp, .tif).
func (fb *FrameBuffer) Save(path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("framebuffer: create file: %w", err)
	}

	if err := fb.Encode(f, format); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}

// SavePPM saves the frame buffer to a binary PPM file.
func (fb *FrameBuffer) SavePPM(path string) error {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("framebuffer: create file: %w", err)
	}

	if err := fb.EncodePPM(f); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}

// EncodePPM writes the frame buffer as a binary PPM (P6) image: the header
// "P6 <width> <height> 255" and a newline, then the raw RGB bytes.
func (fb *FrameBuffer) EncodePPM(w io.Writer) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P6 %d %d 255\n", fb.width, fb.height); err != nil {
		return fmt.Errorf("framebuffer: encode PPM: %w", err)
	}
	if _, err := bw.Write(fb.data); err != nil {
		return fmt.Errorf("framebuffer: encode PPM: %w", err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("framebuffer: encode PPM: %w", err)
	}
	return nil
}

// EncodePNG writes the frame buffer as PNG to the given writer.
func (fb *FrameBuffer) EncodePNG(w io.Writer) error {
	if err := png.Encode(w, fb.ToImage()); err != nil {
		return fmt.Errorf("framebuffer: encode PNG: %w", err)
	}
	return nil
}

// EncodeJPEG writes the frame buffer as JPEG with the given quality (1-100).
func (fb *FrameBuffer) EncodeJPEG(w io.Writer, quality int) error {
	if quality < 1 {
		quality = 1
	}
	if quality > 100 {
		quality = 100
	}

	if err := jpeg.Encode(w, fb.ToImage(), &jpeg.Options{Quality: quality}); err != nil {
		return fmt.Errorf("framebuffer: encode JPEG: %w", err)
	}
	return nil
}

// EncodeBMP writes the frame buffer as a 24-bit BMP.
func (fb *FrameBuffer) EncodeBMP(w io.Writer) error {
	if err := bmp.Encode(w, fb.ToImage()); err != nil {
		return fmt.Errorf("framebuffer: encode BMP: %w", err)
	}
	return nil
}

// EncodeTIFF writes the frame buffer as a Deflate-compressed TIFF.
func (fb *FrameBuffer) EncodeTIFF(w io.Writer) error {
	opts := &tiff.Options{Compression: tiff.Deflate}
	if err := tiff.Encode(w, fb.ToImage(), opts); err != nil {
		return fmt.Errorf("framebuffer: encode TIFF: %w", err)
	}
	return nil
}
