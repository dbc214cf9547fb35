package raster

import "github.com/Jormungand-Stark/softrender"

// Quad returns the two triangles covering the rectangle (0,0)-(width,height)
// as six vertices, with texture coordinates spanning the whole texture.
// The triangles share the diagonal from (width,0) to (0,height).
func Quad(width, height float64) []softrender.Vertex {
	return []softrender.Vertex{
		softrender.Vtx(0, 0, 0, 0),
		softrender.Vtx(width, 0, 1, 0),
		softrender.Vtx(0, height, 0, 1),

		softrender.Vtx(0, height, 0, 1),
		softrender.Vtx(width, height, 1, 1),
		softrender.Vtx(width, 0, 1, 0),
	}
}
