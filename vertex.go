package softrender

// Vertex is a screen-space position with normalized texture coordinates.
//
// X and Y are not required to be integers; the rasterizer works at
// sub-pixel precision. U and V are nominally in [0,1]. Values outside
// that range are accepted and resolved by the sampler's clamp-to-edge
// addressing.
type Vertex struct {
	X, Y float64
	U, V float64
}

// Vtx is a convenience function to create a Vertex.
func Vtx(x, y, u, v float64) Vertex {
	return Vertex{X: x, Y: y, U: u, V: v}
}

// Pos returns the screen-space position of the vertex.
func (v Vertex) Pos() Point {
	return Point{X: v.X, Y: v.Y}
}

// Transform returns the vertex with its position mapped through m.
// Texture coordinates are carried over unchanged.
func (v Vertex) Transform(m Matrix) Vertex {
	p := m.TransformPoint(v.Pos())
	v.X, v.Y = p.X, p.Y
	return v
}
