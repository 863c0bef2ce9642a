package models

import (
	"errors"
	"strings"
	"testing"

	"github.com/softrast/softrast/pkg/math3d"
)

func TestParseOBJ(t *testing.T) {
	src := `# a single triangle
v 0.0 0.0 0.0
v 1.0 0.0 0.0
v 0.0 1.0 0.0

f 1 2 3
`
	m, err := ParseOBJ(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ParseOBJ: %v", err)
	}
	if m.VertexCount() != 3 || m.FaceCount() != 1 {
		t.Fatalf("got %d vertices, %d faces", m.VertexCount(), m.FaceCount())
	}

	// Indices normalize from the format's 1-based to 0-based.
	if f := m.Faces[0]; f != (Face{A: 0, B: 1, C: 2}) {
		t.Errorf("face = %+v, want {0 1 2}", f)
	}
	if v := m.Vertices[1]; v != math3d.V3(1, 0, 0) {
		t.Errorf("vertex 1 = %v", v)
	}
}

func TestParseOBJQuadFan(t *testing.T) {
	src := `v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
f 1 2 3 4
`
	m, err := ParseOBJ(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ParseOBJ: %v", err)
	}
	if m.FaceCount() != 2 {
		t.Fatalf("FaceCount = %d, want 2", m.FaceCount())
	}
	if m.Faces[0] != (Face{A: 0, B: 1, C: 2}) || m.Faces[1] != (Face{A: 0, B: 2, C: 3}) {
		t.Errorf("fan = %+v, %+v", m.Faces[0], m.Faces[1])
	}
}

func TestParseOBJVertexReferences(t *testing.T) {
	// All four reference forms resolve to the vertex index.
	src := `v 0 0 0
v 1 0 0
v 0 1 0
vt 0 0
vn 0 0 1
f 1/1 2/1/1 3//1
`
	m, err := ParseOBJ(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ParseOBJ: %v", err)
	}
	if m.Faces[0] != (Face{A: 0, B: 1, C: 2}) {
		t.Errorf("face = %+v, want {0 1 2}", m.Faces[0])
	}
}

func TestParseOBJNegativeIndices(t *testing.T) {
	// Negative indices count back from the most recent vertex.
	src := `v 0 0 0
v 1 0 0
v 0 1 0
f -3 -2 -1
`
	m, err := ParseOBJ(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ParseOBJ: %v", err)
	}
	if m.Faces[0] != (Face{A: 0, B: 1, C: 2}) {
		t.Errorf("face = %+v, want {0 1 2}", m.Faces[0])
	}
}

func TestParseOBJBadFaceIndex(t *testing.T) {
	src := `v 0 0 0
v 1 0 0
v 0 1 0
f 1 2 9
`
	_, err := ParseOBJ(strings.NewReader(src))
	if !errors.Is(err, ErrFaceIndex) {
		t.Errorf("error = %v, want ErrFaceIndex", err)
	}
}

func TestParseOBJMalformed(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"short vertex", "v 1.0 2.0\n"},
		{"bad coordinate", "v 1.0 x 3.0\n"},
		{"short face", "v 0 0 0\nv 1 0 0\nf 1 2\n"},
		{"bad face ref", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 x\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseOBJ(strings.NewReader(tt.src)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestParseOBJSkipsUnknown(t *testing.T) {
	src := `mtllib scene.mtl
o triangle
v 0 0 0
v 1 0 0
v 0 1 0
usemtl default
s off
f 1 2 3
`
	m, err := ParseOBJ(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ParseOBJ: %v", err)
	}
	if m.VertexCount() != 3 || m.FaceCount() != 1 {
		t.Errorf("got %d vertices, %d faces", m.VertexCount(), m.FaceCount())
	}
}

func TestParseOBJBounds(t *testing.T) {
	src := `v -2 0 1
v 3 -1 0
v 0 4 -5
f 1 2 3
`
	m, err := ParseOBJ(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ParseOBJ: %v", err)
	}
	if m.BoundsMin != math3d.V3(-2, -1, -5) {
		t.Errorf("BoundsMin = %v", m.BoundsMin)
	}
	if m.BoundsMax != math3d.V3(3, 4, 1) {
		t.Errorf("BoundsMax = %v", m.BoundsMax)
	}
}
