// Package shader implements the vertex stage that runs before rasterization.
//
// A vertex stage is a pure function from one vertex to another. The
// rasterizer never sees this package: callers transform their vertices
// with [Apply] and hand the result to the raster package.
package shader

import (
	"errors"
	"fmt"

	"github.com/Jormungand-Stark/softrender"
)

// ErrInvalidUniforms is returned when a transform's scale factors are not
// strictly positive.
var ErrInvalidUniforms = errors.New("shader: scale factors must be positive")

// Func transforms a single vertex.
type Func func(softrender.Vertex) softrender.Vertex

// PassThrough returns its input unchanged.
func PassThrough(v softrender.Vertex) softrender.Vertex {
	return v
}

// Apply runs f over verts and returns the results in a new slice.
// A nil f behaves like PassThrough.
func Apply(f Func, verts []softrender.Vertex) []softrender.Vertex {
	out := make([]softrender.Vertex, len(verts))
	if f == nil {
		copy(out, verts)
		return out
	}
	for i, v := range verts {
		out[i] = f(v)
	}
	return out
}

// Uniforms parameterize a 2D transform.
type Uniforms struct {
	TranslateX, TranslateY float64
	ScaleX, ScaleY         float64

	// Rotate is the rotation angle in radians.
	Rotate float64
}

// DefaultUniforms returns the identity transform parameters.
func DefaultUniforms() Uniforms {
	return Uniforms{ScaleX: 1, ScaleY: 1}
}

// Validate reports whether the uniforms describe a usable transform.
func (u Uniforms) Validate() error {
	if !(u.ScaleX > 0) || !(u.ScaleY > 0) {
		return fmt.Errorf("%w: got %gx%g", ErrInvalidUniforms, u.ScaleX, u.ScaleY)
	}
	return nil
}

// Matrix returns the affine matrix of the uniforms. Vertices are scaled,
// then rotated about the origin, then translated.
func (u Uniforms) Matrix() softrender.Matrix {
	return softrender.Translate(u.TranslateX, u.TranslateY).
		Multiply(softrender.Rotate(u.Rotate)).
		Multiply(softrender.Scale(u.ScaleX, u.ScaleY))
}

// Transform2D moves vertex positions by a scale, rotate, translate
// sequence. Texture coordinates pass through unchanged.
type Transform2D struct {
	uniforms Uniforms
	matrix   softrender.Matrix
}

// NewTransform2D creates a transform from validated uniforms.
func NewTransform2D(u Uniforms) (*Transform2D, error) {
	t := &Transform2D{}
	if err := t.SetUniforms(u); err != nil {
		return nil, err
	}
	return t, nil
}

// SetUniforms replaces the transform parameters. On error the previous
// parameters stay in effect.
func (t *Transform2D) SetUniforms(u Uniforms) error {
	if err := u.Validate(); err != nil {
		return err
	}
	t.uniforms = u
	t.matrix = u.Matrix()
	return nil
}

// Uniforms returns the current transform parameters.
func (t *Transform2D) Uniforms() Uniforms {
	return t.uniforms
}

// Matrix returns the current transform matrix.
func (t *Transform2D) Matrix() softrender.Matrix {
	return t.matrix
}

// Vertex transforms a single vertex.
func (t *Transform2D) Vertex(v softrender.Vertex) softrender.Vertex {
	return v.Transform(t.matrix)
}

// Func returns the transform as a vertex stage bound to its current
// uniforms. Later SetUniforms calls do not affect the returned Func.
func (t *Transform2D) Func() Func {
	m := t.matrix
	return func(v softrender.Vertex) softrender.Vertex {
		return v.Transform(m)
	}
}
