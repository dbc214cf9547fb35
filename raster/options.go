package raster

import (
	"seehuhn.de/go/geom/rect"

	"github.com/Jormungand-Stark/softrender/colorspace"
)

// Option configures a Rasterizer during creation.
// Use functional options to customize Rasterizer behavior.
//
// Example:
//
//	// SD conversion with the tolerant fill rule
//	r := raster.New()
//
//	// HD conversion, strict shared-edge coverage, drawing limited to a region
//	r := raster.New(
//		raster.WithStandard(colorspace.StandardHD),
//		raster.WithFillRule(raster.FillTopLeft),
//		raster.WithClip(rect.Rect{LLx: 0, LLy: 0, URx: 320, URy: 240}),
//	)
type Option func(*options)

// options holds optional configuration for Rasterizer creation.
type options struct {
	standard colorspace.Standard
	fillRule FillRule
	clip     rect.Rect
	hasClip  bool
}

// defaultOptions returns the default rasterizer options.
func defaultOptions() options {
	return options{
		standard: colorspace.StandardSD,
		fillRule: FillTolerant,
	}
}

// WithStandard selects the colorimetric standard used to convert sampled
// texels to RGB. The default is [colorspace.StandardSD].
func WithStandard(s colorspace.Standard) Option {
	return func(o *options) {
		o.standard = s
	}
}

// WithFillRule selects the coverage rule. The default is [FillTolerant].
func WithFillRule(f FillRule) Option {
	return func(o *options) {
		o.fillRule = f
	}
}

// WithClip restricts drawing to a scissor rectangle in pixel coordinates.
// LLx and LLy name the minimum corner and URx, URy the maximum corner (y
// grows downward in pixel space). The rectangle is rounded outward to whole
// pixels; its maximum edges are exclusive.
func WithClip(clip rect.Rect) Option {
	return func(o *options) {
		o.clip = clip
		o.hasClip = true
	}
}
