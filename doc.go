// Package softrender is a CPU software rasterizer that maps planar YUV
// textures onto screen-space triangles.
//
// # Overview
//
// The pipeline is small: geometry in, pixel colors out. There
// is no GPU, no shading language and no scene graph.
//
//	vertices ──► shader (optional vertex stage)
//	         ──► raster.Rasterizer (bounding box, barycentric coverage)
//	         ──► texture.Planar (nearest / bilinear, 4:2:0 planes)
//	         ──► colorspace.ToRGB (SD / HD / UHD matrices)
//	         ──► framebuffer.FrameBuffer (SetPixel, PPM/PNG/BMP/TIFF)
//
// # Quick Start
//
//	tex, err := texture.Load("test_640x480.yuv", 640, 480)
//	if err != nil {
//		return err
//	}
//	fb, _ := framebuffer.New(800, 600)
//	r := raster.New(raster.WithStandard(colorspace.StandardSD))
//	r.DrawTexturedMesh(fb, raster.Quad(800, 600), tex.Sampler(texture.FilterBilinear))
//	return fb.Save("render_800x600.png")
//
// # Coordinate System
//
// Screen space uses the usual raster convention:
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//   - Pixel (x, y) is sampled at its centre (x+0.5, y+0.5)
//
// Texture coordinates are normalized: (0,0) is the top-left texel corner
// and (1,1) the bottom-right one.
//
// # Logging
//
// The library is silent by default. See [SetLogger].
package softrender

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
