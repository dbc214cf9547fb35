package texture

import (
	"fmt"
	"math"
	"strings"
)

// Filter defines how texture sampling is performed.
type Filter uint8

const (
	// FilterNearest selects the texel containing the sample point.
	// Chroma texels are addressed through the luma texel index.
	FilterNearest Filter = iota

	// FilterBilinear blends the four texels around the sample point,
	// each plane at its own resolution. The blend weights pass through a
	// smoothstep curve, which gives a crisper result than a plain linear
	// blend.
	FilterBilinear

	// filterCount is the number of filters (for internal use).
	filterCount
)

// Valid returns true if f is a known filter.
func (f Filter) Valid() bool {
	return f < filterCount
}

// String returns a string representation of the filter.
func (f Filter) String() string {
	switch f {
	case FilterNearest:
		return "nearest"
	case FilterBilinear:
		return "bilinear"
	default:
		return fmt.Sprintf("Filter(%d)", uint8(f))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (f Filter) MarshalText() ([]byte, error) {
	if !f.Valid() {
		return nil, fmt.Errorf("texture: unknown filter %d", uint8(f))
	}
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Filter) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "nearest", "point":
		*f = FilterNearest
	case "bilinear", "linear":
		*f = FilterBilinear
	default:
		return fmt.Errorf("texture: unknown filter %q", text)
	}
	return nil
}

// Sample samples the texture at normalized coordinates (u, v) with filter f.
// u and v are nominally in [0,1] where (0,0) is the top-left corner and
// (1,1) the bottom-right one. Out-of-range coordinates are clamped to the
// edge. It always returns three bytes: luma, Cb and Cr.
//
// Sample panics if f is not a known filter.
func (t *Planar) Sample(u, v float64, f Filter) (y, cb, cr uint8) {
	switch f {
	case FilterNearest:
		return t.sampleNearest(u, v)
	case FilterBilinear:
		return t.sampleBilinear(u, v)
	default:
		panic(fmt.Sprintf("texture: unknown filter %d", uint8(f)))
	}
}

// sampleNearest performs nearest-neighbor sampling at (u, v).
func (t *Planar) sampleNearest(u, v float64) (y, cb, cr uint8) {
	// u*width keeps texture space linear; clamping happens on the index.
	x := texelIndex(u*float64(t.luma.width), t.luma.width)
	yy := texelIndex(v*float64(t.luma.height), t.luma.height)

	cx := clamp(x/2, 0, t.cb.width-1)
	cy := clamp(yy/2, 0, t.cb.height-1)

	return t.luma.at(x, yy), t.cb.at(cx, cy), t.cr.at(cx, cy)
}

// sampleBilinear filters every plane independently at its own resolution.
func (t *Planar) sampleBilinear(u, v float64) (y, cb, cr uint8) {
	return toByte(t.luma.bilinear(u, v)),
		toByte(t.cb.bilinear(u, v)),
		toByte(t.cr.bilinear(u, v))
}

// bilinear blends the four texels around (u, v).
//
// Texel n covers [n/width, (n+1)/width) and its centre sits at cx == n, so
// sampling exactly at a centre returns that texel unchanged.
func (p *plane) bilinear(u, v float64) float64 {
	cx := texelCoord(u*float64(p.width)-0.5, p.width)
	cy := texelCoord(v*float64(p.height)-0.5, p.height)

	fx := math.Floor(cx)
	fy := math.Floor(cy)
	s := clampFloat(smoothstep(cx-fx), 0, 1)
	tt := clampFloat(smoothstep(cy-fy), 0, 1)

	x0, y0 := int(fx), int(fy)
	x1 := clamp(x0+1, 0, p.width-1)
	y1 := clamp(y0+1, 0, p.height-1)
	x0 = clamp(x0, 0, p.width-1)
	y0 = clamp(y0, 0, p.height-1)

	top := lerp(float64(p.at(x0, y0)), float64(p.at(x1, y0)), s)
	bottom := lerp(float64(p.at(x0, y1)), float64(p.at(x1, y1)), s)
	return lerp(top, bottom, tt)
}

// texelIndex maps a plane-space coordinate to a texel index with
// clamp-to-edge addressing. NaN maps to 0.
func texelIndex(f float64, n int) int {
	if !(f >= 0) {
		return 0
	}
	if f >= float64(n) {
		return n - 1
	}
	return int(f)
}

// texelCoord limits a centre-relative coordinate to [-1, n] before it is
// floored. Every index outside that range clamps to the same edge texel,
// so the limit only keeps the int conversion well defined. NaN maps to -1.
func texelCoord(c float64, n int) float64 {
	if !(c >= -1) {
		return -1
	}
	if c > float64(n) {
		return float64(n)
	}
	return c
}

// smoothstep is the cubic Hermite curve x*x*(3-2x).
func smoothstep(x float64) float64 {
	return x * x * (3 - 2*x)
}

// clamp clamps an integer value to [minVal, maxVal].
//
//nolint:unparam // minVal is always 0 currently, but function is general-purpose
func clamp(val, minVal, maxVal int) int {
	if val < minVal {
		return minVal
	}
	if val > maxVal {
		return maxVal
	}
	return val
}

// clampFloat clamps a float64 value to [minVal, maxVal].
//
//nolint:unparam // minVal is always 0 currently, but function is general-purpose
func clampFloat(val, minVal, maxVal float64) float64 {
	if val < minVal {
		return minVal
	}
	if val > maxVal {
		return maxVal
	}
	return val
}

// lerp performs linear interpolation between a and b.
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// toByte clamps v to [0,255] and truncates it.
func toByte(v float64) uint8 {
	return uint8(clampFloat(v, 0, 255))
}

// Sampler binds a texture to a filter. It is a small value type: copy it
// freely, and use one per draw call when different draws need different
// filters.
type Sampler struct {
	tex    *Planar
	filter Filter
}

// Sampler returns a sampling session that always uses filter f.
func (t *Planar) Sampler(f Filter) Sampler {
	return Sampler{tex: t, filter: f}
}

// Filter returns the filter bound to the session.
func (s Sampler) Filter() Filter {
	return s.filter
}

// Texture returns the texture bound to the session.
func (s Sampler) Texture() *Planar {
	return s.tex
}

// SampleYUV samples the bound texture with the bound filter.
func (s Sampler) SampleYUV(u, v float64) (y, cb, cr uint8) {
	return s.tex.Sample(u, v, s.filter)
}
