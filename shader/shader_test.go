package shader

import (
	"errors"
	"math"
	"testing"

	"github.com/Jormungand-Stark/softrender"
)

func nearVertex(a, b softrender.Vertex) bool {
	const eps = 1e-9
	return math.Abs(a.X-b.X) < eps && math.Abs(a.Y-b.Y) < eps &&
		a.U == b.U && a.V == b.V
}

func TestPassThrough(t *testing.T) {
	v := softrender.Vtx(1.5, -2, 0.25, 0.75)
	if got := PassThrough(v); got != v {
		t.Errorf("PassThrough() = %+v, want %+v", got, v)
	}
}

func TestApply(t *testing.T) {
	in := []softrender.Vertex{softrender.Vtx(1, 2, 0, 0), softrender.Vtx(3, 4, 1, 1)}

	t.Run("nil func copies", func(t *testing.T) {
		out := Apply(nil, in)
		if len(out) != 2 || out[0] != in[0] || out[1] != in[1] {
			t.Fatalf("Apply(nil) = %+v", out)
		}
		out[0].X = 99
		if in[0].X != 1 {
			t.Error("Apply returned a slice aliasing its input")
		}
	})

	t.Run("func applied in order", func(t *testing.T) {
		double := func(v softrender.Vertex) softrender.Vertex {
			v.X *= 2
			return v
		}
		out := Apply(double, in)
		if out[0].X != 2 || out[1].X != 6 || out[1].Y != 4 {
			t.Errorf("Apply(double) = %+v", out)
		}
	})
}

func TestUniformsValidate(t *testing.T) {
	tests := []struct {
		name    string
		u       Uniforms
		wantErr bool
	}{
		{"default", DefaultUniforms(), false},
		{"stretched", Uniforms{ScaleX: 2, ScaleY: 0.5, Rotate: 1}, false},
		{"zero value", Uniforms{}, true},
		{"negative x", Uniforms{ScaleX: -1, ScaleY: 1}, true},
		{"zero y", Uniforms{ScaleX: 1, ScaleY: 0}, true},
		{"nan", Uniforms{ScaleX: math.NaN(), ScaleY: 1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.u.Validate()
			if tt.wantErr != (err != nil) {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidUniforms) {
				t.Errorf("Validate() error = %v, want ErrInvalidUniforms", err)
			}
		})
	}
}

func TestTransform2D(t *testing.T) {
	tests := []struct {
		name string
		u    Uniforms
		in   softrender.Vertex
		want softrender.Vertex
	}{
		{
			name: "identity",
			u:    DefaultUniforms(),
			in:   softrender.Vtx(3, 4, 0.1, 0.2),
			want: softrender.Vtx(3, 4, 0.1, 0.2),
		},
		{
			name: "translate",
			u:    Uniforms{TranslateX: 100, TranslateY: -5, ScaleX: 1, ScaleY: 1},
			in:   softrender.Vtx(1, 1, 0, 1),
			want: softrender.Vtx(101, -4, 0, 1),
		},
		{
			name: "scale before translate",
			u:    Uniforms{TranslateX: 10, ScaleX: 2, ScaleY: 3},
			in:   softrender.Vtx(1, 1, 1, 0),
			want: softrender.Vtx(12, 3, 1, 0),
		},
		{
			name: "scale before rotate",
			u:    Uniforms{ScaleX: 2, ScaleY: 1, Rotate: math.Pi / 2},
			in:   softrender.Vtx(1, 0, 0.5, 0.5),
			want: softrender.Vtx(0, 2, 0.5, 0.5),
		},
		{
			name: "rotate about origin then translate",
			u:    Uniforms{TranslateX: 100, ScaleX: 1, ScaleY: 1, Rotate: math.Pi},
			in:   softrender.Vtx(10, 0, 0, 0),
			want: softrender.Vtx(90, 0, 0, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, err := NewTransform2D(tt.u)
			if err != nil {
				t.Fatalf("NewTransform2D() error = %v", err)
			}
			if got := tr.Vertex(tt.in); !nearVertex(got, tt.want) {
				t.Errorf("Vertex(%+v) = %+v, want %+v", tt.in, got, tt.want)
			}
			if got := tr.Func()(tt.in); !nearVertex(got, tt.want) {
				t.Errorf("Func()(%+v) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestTransform2DDefaultScene(t *testing.T) {
	// The demo transform: translate (100, 0), scale 2x1, rotate 45 degrees.
	u := Uniforms{TranslateX: 100, ScaleX: 2, ScaleY: 1, Rotate: math.Pi / 4}
	tr, err := NewTransform2D(u)
	if err != nil {
		t.Fatalf("NewTransform2D() error = %v", err)
	}

	got := tr.Vertex(softrender.Vtx(800, 0, 1, 0))
	s := math.Sqrt2 / 2
	want := softrender.Vtx(100+1600*s, 1600*s, 1, 0)
	if !nearVertex(got, want) {
		t.Errorf("Vertex() = %+v, want %+v", got, want)
	}
}

func TestSetUniformsKeepsPreviousOnError(t *testing.T) {
	tr, err := NewTransform2D(Uniforms{TranslateX: 5, ScaleX: 1, ScaleY: 1})
	if err != nil {
		t.Fatalf("NewTransform2D() error = %v", err)
	}
	f := tr.Func()

	if err := tr.SetUniforms(Uniforms{ScaleX: 0, ScaleY: 1}); !errors.Is(err, ErrInvalidUniforms) {
		t.Fatalf("SetUniforms() error = %v, want ErrInvalidUniforms", err)
	}
	if tr.Uniforms().TranslateX != 5 {
		t.Errorf("Uniforms() changed after a rejected update: %+v", tr.Uniforms())
	}

	if err := tr.SetUniforms(Uniforms{TranslateX: 7, ScaleX: 1, ScaleY: 1}); err != nil {
		t.Fatalf("SetUniforms() error = %v", err)
	}
	if got := f(softrender.Vtx(0, 0, 0, 0)); got.X != 5 {
		t.Errorf("earlier Func saw the new uniforms: X = %v, want 5", got.X)
	}
	if got := tr.Matrix(); got != softrender.Translate(7, 0) {
		t.Errorf("Matrix() = %+v, want translate(7, 0)", got)
	}
}

func TestNewTransform2DRejectsInvalid(t *testing.T) {
	if _, err := NewTransform2D(Uniforms{}); !errors.Is(err, ErrInvalidUniforms) {
		t.Errorf("NewTransform2D(zero) error = %v, want ErrInvalidUniforms", err)
	}
}
