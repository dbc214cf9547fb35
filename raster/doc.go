// Package raster scan-converts textured and flat-colored triangles on the CPU.
//
// A [Rasterizer] walks the integer bounding box of a triangle and tests each
// pixel centre (x+0.5, y+0.5) against three barycentric weights. Covered
// pixels of a textured triangle interpolate the vertex texture coordinates,
// sample a [Sampler] and convert the sampled Y'CbCr triple to RGB with the
// rasterizer's [colorspace.Standard] before writing it to a [PixelSink].
//
// Draw calls are synchronous and keep no state between calls. Later draws
// overwrite earlier ones (painter's algorithm); submission order is the
// caller's business. Degenerate triangles are skipped silently.
//
// Usage:
//
//	tex, _ := texture.Load("frame.yuv", 640, 480)
//	fb, _ := framebuffer.New(800, 600)
//	r := raster.New(raster.WithStandard(colorspace.StandardHD))
//	r.DrawTexturedMesh(fb, raster.Quad(800, 600), tex.Sampler(texture.FilterBilinear))
package raster
