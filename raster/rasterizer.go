package raster

import (
	"fmt"
	"image"
	"math"
	"strings"

	"github.com/Jormungand-Stark/softrender"
	"github.com/Jormungand-Stark/softrender/colorspace"
)

// PixelSink receives the pixels a draw call produces.
//
// SetPixel must ignore coordinates outside Bounds. The rasterizer never
// writes outside Bounds, but sinks must not rely on that.
type PixelSink interface {
	SetPixel(x, y int, c softrender.Color)
	Bounds() image.Rectangle
}

// Sampler returns the Y'CbCr sample at normalized texture coordinates.
// It must accept any (u, v) in [0,1] and always return three bytes.
type Sampler interface {
	SampleYUV(u, v float64) (y, cb, cr uint8)
}

// FillRule decides which pixels on a triangle's boundary are covered.
type FillRule uint8

const (
	// FillTolerant covers a pixel when all three barycentric weights are at
	// least -[Tolerance]. Pixels on an edge shared by two triangles may be
	// drawn by both.
	FillTolerant FillRule = iota

	// FillTopLeft decides coverage on the exact edge functions. A pixel
	// centre lying exactly on an edge is covered only when that edge is a
	// top or a left edge, so triangles sharing an edge draw every pixel
	// along it exactly once.
	FillTopLeft

	// fillRuleCount is the number of fill rules (for internal use).
	fillRuleCount
)

// Valid returns true if f is a known fill rule.
func (f FillRule) Valid() bool {
	return f < fillRuleCount
}

// String returns a string representation of the fill rule.
func (f FillRule) String() string {
	switch f {
	case FillTolerant:
		return "tolerant"
	case FillTopLeft:
		return "top-left"
	default:
		return fmt.Sprintf("FillRule(%d)", uint8(f))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (f FillRule) MarshalText() ([]byte, error) {
	if !f.Valid() {
		return nil, fmt.Errorf("raster: unknown fill rule %d", uint8(f))
	}
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *FillRule) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "tolerant":
		*f = FillTolerant
	case "top-left", "topleft", "strict":
		*f = FillTopLeft
	default:
		return fmt.Errorf("raster: unknown fill rule %q", text)
	}
	return nil
}

// Rasterizer draws triangles into a PixelSink. It holds only immutable
// configuration and may be shared between goroutines; concurrent draws
// must target disjoint pixels of a sink.
type Rasterizer struct {
	standard colorspace.Standard
	fillRule FillRule

	// Scissor in pixels, Max exclusive. Valid only when clipped is true.
	clip    image.Rectangle
	clipped bool
}

// New creates a rasterizer with the given options.
//
// New panics if an option names an unknown colorimetric standard or fill
// rule.
func New(opts ...Option) *Rasterizer {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if !o.standard.Valid() {
		panic(fmt.Sprintf("raster: unknown standard %d", uint8(o.standard)))
	}
	if !o.fillRule.Valid() {
		panic(fmt.Sprintf("raster: unknown fill rule %d", uint8(o.fillRule)))
	}

	r := &Rasterizer{
		standard: o.standard,
		fillRule: o.fillRule,
	}
	if o.hasClip {
		r.clipped = true
		r.clip = image.Rect(
			int(math.Floor(o.clip.LLx)), int(math.Floor(o.clip.LLy)),
			int(math.Ceil(o.clip.URx)), int(math.Ceil(o.clip.URy)),
		)
	}
	return r
}

// Standard returns the colorimetric standard used for conversion.
func (r *Rasterizer) Standard() colorspace.Standard {
	return r.standard
}

// FillRule returns the coverage rule.
func (r *Rasterizer) FillRule() FillRule {
	return r.fillRule
}

// Clip returns the scissor rectangle in whole pixels and whether one is set.
func (r *Rasterizer) Clip() (image.Rectangle, bool) {
	return r.clip, r.clipped
}

// DrawTexturedTriangle draws the triangle (v0, v1, v2), coloring each
// covered pixel from tex at the interpolated texture coordinates.
// It returns the number of pixels written.
func (r *Rasterizer) DrawTexturedTriangle(sink PixelSink, v0, v1, v2 softrender.Vertex, tex Sampler) int {
	return r.draw(sink, v0, v1, v2, func(t *triangle, w0, w1, w2 float64) softrender.Color {
		u, v := t.uv(w0, w1, w2)
		y, cb, cr := tex.SampleYUV(u, v)
		return colorspace.ToRGB(y, cb, cr, r.standard)
	})
}

// DrawSolidTriangle draws the triangle (v0, v1, v2) in a flat color.
// Texture coordinates are ignored. It returns the number of pixels written.
func (r *Rasterizer) DrawSolidTriangle(sink PixelSink, v0, v1, v2 softrender.Vertex, c softrender.Color) int {
	return r.draw(sink, v0, v1, v2, func(*triangle, float64, float64, float64) softrender.Color {
		return c
	})
}

// DrawTexturedMesh draws consecutive vertex triples as textured triangles,
// in order. A trailing partial triple is ignored. It returns the total
// number of pixels written.
func (r *Rasterizer) DrawTexturedMesh(sink PixelSink, verts []softrender.Vertex, tex Sampler) int {
	n := 0
	for i := 0; i+2 < len(verts); i += 3 {
		n += r.DrawTexturedTriangle(sink, verts[i], verts[i+1], verts[i+2], tex)
	}
	return n
}

// shadeFunc computes the color of a covered pixel.
type shadeFunc func(t *triangle, w0, w1, w2 float64) softrender.Color

// draw scan-converts one triangle and writes shade's result for every
// covered pixel.
func (r *Rasterizer) draw(sink PixelSink, v0, v1, v2 softrender.Vertex, shade shadeFunc) int {
	t, ok := newTriangle(v0, v1, v2)
	if !ok {
		softrender.Logger().Debug("raster: skipping degenerate triangle",
			"v0", v0.Pos(), "v1", v1.Pos(), "v2", v2.Pos())
		return 0
	}

	box := r.bounds(sink, &t)
	if box.Empty() {
		return 0
	}

	strict := r.fillRule == FillTopLeft
	var tl0, tl1, tl2 bool
	if strict {
		tl0 = isTopLeft(v1, v2, t.area)
		tl1 = isTopLeft(v2, v0, t.area)
		tl2 = isTopLeft(v0, v1, t.area)
	}

	written := 0
	for y := box.Min.Y; y < box.Max.Y; y++ {
		py := float64(y) + 0.5
		for x := box.Min.X; x < box.Max.X; x++ {
			px := float64(x) + 0.5

			w0, w1, w2 := t.weights(px, py)
			if strict {
				if !covers(t.e0.at(px, py), t.area, tl0) ||
					!covers(t.e1.at(px, py), t.area, tl1) ||
					!covers(t.e2.at(px, py), t.area, tl2) {
					continue
				}
			} else if !(w0 >= -Tolerance) || !(w1 >= -Tolerance) || !(w2 >= -Tolerance) {
				continue
			}

			sink.SetPixel(x, y, shade(&t, w0, w1, w2))
			written++
		}
	}
	return written
}

// bounds returns the pixel box to visit: the triangle's integer bounding
// box intersected with the sink and the scissor. Max is exclusive.
func (r *Rasterizer) bounds(sink PixelSink, t *triangle) image.Rectangle {
	minX := math.Min(t.v0.X, math.Min(t.v1.X, t.v2.X))
	minY := math.Min(t.v0.Y, math.Min(t.v1.Y, t.v2.Y))
	maxX := math.Max(t.v0.X, math.Max(t.v1.X, t.v2.X))
	maxY := math.Max(t.v0.Y, math.Max(t.v1.Y, t.v2.Y))

	// Clamp in float space first so huge coordinates cannot overflow int.
	sb := sink.Bounds()
	fx0 := clampFloat(math.Floor(minX), float64(sb.Min.X), float64(sb.Max.X))
	fy0 := clampFloat(math.Floor(minY), float64(sb.Min.Y), float64(sb.Max.Y))
	fx1 := clampFloat(math.Ceil(maxX), float64(sb.Min.X), float64(sb.Max.X-1))
	fy1 := clampFloat(math.Ceil(maxY), float64(sb.Min.Y), float64(sb.Max.Y-1))
	if math.IsNaN(fx0+fy0+fx1+fy1) || fx1 < fx0 || fy1 < fy0 {
		return image.Rectangle{}
	}

	box := image.Rectangle{
		Min: image.Pt(int(fx0), int(fy0)),
		Max: image.Pt(int(fx1)+1, int(fy1)+1),
	}.Intersect(sb)
	if r.clipped {
		box = box.Intersect(r.clip)
	}
	return box
}

// covers reports whether a raw edge value puts the pixel inside under the
// top-left rule.
func covers(e, area float64, topLeft bool) bool {
	if area < 0 {
		e = -e
	}
	return e > 0 || (e == 0 && topLeft)
}

// clampFloat clamps v to [lo, hi].
func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
