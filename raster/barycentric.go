package raster

import (
	"math"

	"github.com/Jormungand-Stark/softrender"
)

// DegenerateArea is the smallest absolute twice-signed area a triangle must
// have to be drawn.
const DegenerateArea = 1e-6

// Tolerance is how far below zero a barycentric weight may fall while the
// pixel still counts as inside under [FillTolerant].
const Tolerance = 1e-5

// EdgeFunction returns the twice-signed area of the triangle (a, b, c):
//
//	(b.x-a.x)*(c.y-a.y) - (b.y-a.y)*(c.x-a.x)
//
// The result is positive when c lies to the right of a->b in y-down pixel
// space (clockwise on screen) and zero when the three points are collinear.
func EdgeFunction(a, b, c softrender.Point) float64 {
	return b.Sub(a).Cross(c.Sub(a))
}

// Barycentric returns the barycentric weights of (px, py) with respect to
// the triangle (v0, v1, v2) together with the triangle's twice-signed area.
//
// Each weight is the signed area of the sub-triangle opposite its vertex
// divided by the total area, so w0+w1+w2 == 1 up to rounding. Only one
// division is performed. A degenerate triangle yields all zeros.
func Barycentric(px, py float64, v0, v1, v2 softrender.Vertex) (w0, w1, w2, area2 float64) {
	t, ok := newTriangle(v0, v1, v2)
	if !ok {
		return 0, 0, 0, 0
	}
	w0, w1, w2 = t.weights(px, py)
	return w0, w1, w2, t.area
}

// lineEq is an edge function in the form a*py - b*px + c.
type lineEq struct {
	a, b, c float64
}

// edgeEq returns the equation of edge(p, q, ·).
func edgeEq(p, q softrender.Vertex) lineEq {
	a := q.X - p.X
	b := q.Y - p.Y
	return lineEq{a: a, b: b, c: -a*p.Y + b*p.X}
}

// at evaluates the equation at (px, py).
func (e lineEq) at(px, py float64) float64 {
	return e.a*py - e.b*px + e.c
}

// scaled returns the equation multiplied by s.
func (e lineEq) scaled(s float64) lineEq {
	return lineEq{a: e.a * s, b: e.b * s, c: e.c * s}
}

// triangle holds the per-triangle setup shared by every pixel.
type triangle struct {
	v0, v1, v2 softrender.Vertex
	area       float64

	// e0, e1, e2 are the raw edge functions opposite v0, v1 and v2.
	e0, e1, e2 lineEq

	// n0, n1 are e0 and e1 scaled by 1/area.
	n0, n1 lineEq
}

// newTriangle prepares (v0, v1, v2) for scan conversion. It reports false
// for degenerate triangles, including those whose area is NaN or overflows
// to infinity.
func newTriangle(v0, v1, v2 softrender.Vertex) (triangle, bool) {
	area := EdgeFunction(v0.Pos(), v1.Pos(), v2.Pos())
	if !(math.Abs(area) >= DegenerateArea) || math.IsInf(area, 0) {
		return triangle{}, false
	}

	t := triangle{
		v0: v0, v1: v1, v2: v2,
		area: area,
		e0:   edgeEq(v1, v2),
		e1:   edgeEq(v2, v0),
		e2:   edgeEq(v0, v1),
	}
	inv := 1 / area
	t.n0 = t.e0.scaled(inv)
	t.n1 = t.e1.scaled(inv)
	return t, true
}

// weights evaluates the normalized barycentric weights at (px, py).
func (t *triangle) weights(px, py float64) (w0, w1, w2 float64) {
	w0 = t.n0.at(px, py)
	w1 = t.n1.at(px, py)
	return w0, w1, 1 - w0 - w1
}

// uv interpolates the vertex texture coordinates and clamps them to [0,1].
func (t *triangle) uv(w0, w1, w2 float64) (u, v float64) {
	u = w0*t.v0.U + w1*t.v1.U + w2*t.v2.U
	v = w0*t.v0.V + w1*t.v1.V + w2*t.v2.V
	return clampUnit(u), clampUnit(v)
}

// isTopLeft reports whether the edge p->q is a top or left edge of a
// triangle whose twice-signed area has the sign of area.
func isTopLeft(p, q softrender.Vertex, area float64) bool {
	dx, dy := q.X-p.X, q.Y-p.Y
	if area < 0 {
		dx, dy = -dx, -dy
	}
	return (dy == 0 && dx > 0) || dy < 0
}

// clampUnit clamps v to [0,1]. NaN maps to 0.
func clampUnit(v float64) float64 {
	if !(v > 0) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
