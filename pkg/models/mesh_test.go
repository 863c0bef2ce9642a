package models

import (
	"errors"
	"math"
	"testing"

	"github.com/softrast/softrast/pkg/math3d"
)

func TestNewCube(t *testing.T) {
	cube := NewCube()
	if got := cube.VertexCount(); got != 8 {
		t.Errorf("VertexCount = %d, want 8", got)
	}
	if got := cube.FaceCount(); got != 12 {
		t.Errorf("FaceCount = %d, want 12", got)
	}
	if err := cube.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}

	want := math3d.V3(-1, -1, -1)
	if cube.BoundsMin != want {
		t.Errorf("BoundsMin = %v, want %v", cube.BoundsMin, want)
	}
	want = math3d.V3(1, 1, 1)
	if cube.BoundsMax != want {
		t.Errorf("BoundsMax = %v, want %v", cube.BoundsMax, want)
	}
	if c := cube.Center(); c != math3d.Zero3() {
		t.Errorf("Center = %v, want origin", c)
	}
}

func TestCubeIsIndependentCopy(t *testing.T) {
	a := NewCube()
	b := NewCube()
	a.Vertices[0] = math3d.V3(99, 99, 99)
	a.Faces[0] = Face{A: 7, B: 7, C: 7}

	if b.Vertices[0] == a.Vertices[0] {
		t.Error("mutating one cube's vertices changed another")
	}
	if b.Faces[0] == a.Faces[0] {
		t.Error("mutating one cube's faces changed another")
	}
}

func TestValidate(t *testing.T) {
	m := NewMesh("test")
	m.Vertices = []math3d.Vec3{math3d.V3(0, 0, 0), math3d.V3(1, 0, 0), math3d.V3(0, 1, 0)}

	m.Faces = []Face{{A: 0, B: 1, C: 2}}
	if err := m.Validate(); err != nil {
		t.Errorf("valid mesh: %v", err)
	}

	tests := []struct {
		name string
		face Face
	}{
		{"index too large", Face{A: 0, B: 1, C: 3}},
		{"negative index", Face{A: -1, B: 1, C: 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m.Faces = []Face{tt.face}
			if err := m.Validate(); !errors.Is(err, ErrFaceIndex) {
				t.Errorf("error = %v, want ErrFaceIndex", err)
			}
		})
	}
}

func TestMeshSourceAccessors(t *testing.T) {
	m := NewMesh("test")
	m.Vertices = []math3d.Vec3{math3d.V3(1, 2, 3), math3d.V3(4, 5, 6), math3d.V3(7, 8, 9)}
	m.Faces = []Face{{A: 2, B: 0, C: 1}}

	if v := m.Vertex(1); v != math3d.V3(4, 5, 6) {
		t.Errorf("Vertex(1) = %v", v)
	}
	if f := m.Face(0); f != [3]int{2, 0, 1} {
		t.Errorf("Face(0) = %v", f)
	}
}

func TestCalculateBoundsEmpty(t *testing.T) {
	m := NewMesh("empty")
	m.CalculateBounds()
	if m.BoundsMin != math3d.Zero3() || m.BoundsMax != math3d.Zero3() {
		t.Errorf("empty bounds = %v..%v, want origin", m.BoundsMin, m.BoundsMax)
	}
}

func TestFitToUnit(t *testing.T) {
	m := NewMesh("offset")
	m.Vertices = []math3d.Vec3{
		math3d.V3(10, 10, 10),
		math3d.V3(14, 11, 10),
		math3d.V3(10, 12, 11),
	}
	m.Faces = []Face{{A: 0, B: 1, C: 2}}
	m.FitToUnit()

	if c := m.Center(); c.Len() > 1e-12 {
		t.Errorf("center = %v, want origin", c)
	}
	size := m.Size()
	maxDim := math.Max(size.X, math.Max(size.Y, size.Z))
	if math.Abs(maxDim-2) > 1e-12 {
		t.Errorf("largest dimension = %v, want 2", maxDim)
	}
}

func TestFitToUnitDegenerate(t *testing.T) {
	m := NewMesh("point")
	m.Vertices = []math3d.Vec3{math3d.V3(3, 3, 3)}
	// A single point has zero extent; FitToUnit must not divide by zero.
	m.FitToUnit()
	if v := m.Vertices[0]; v != math3d.V3(3, 3, 3) {
		t.Errorf("vertex moved to %v", v)
	}
}
