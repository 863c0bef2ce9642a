// Package models provides mesh loading and representation for softrast.
package models

import (
	"errors"
	"fmt"

	"github.com/softrast/softrast/pkg/math3d"
)

// ErrFaceIndex is returned by Validate when a face references a vertex
// that does not exist.
var ErrFaceIndex = errors.New("models: face vertex index out of range")

// Face is an ordered triple of 0-based indices into the mesh vertex list.
// Loaders normalize from any 1-based source format before building faces.
type Face struct {
	A, B, C int
}

// Mesh owns an ordered vertex list and an ordered face list. It is built
// once at load time and read-only afterwards; the render pipeline never
// mutates it. Face order matters: without a depth buffer it decides which
// overlapping triangle wins.
type Mesh struct {
	Name     string
	Vertices []math3d.Vec3
	Faces    []Face

	// Bounding box, computed by CalculateBounds.
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{Name: name}
}

// Validate checks that every face index points into the vertex list.
// Loaders call this before handing the mesh to the pipeline; a failure
// means the source data is corrupt.
func (m *Mesh) Validate() error {
	n := len(m.Vertices)
	for i, f := range m.Faces {
		for _, idx := range [3]int{f.A, f.B, f.C} {
			if idx < 0 || idx >= n {
				return fmt.Errorf("%w: face %d references vertex %d (mesh has %d)", ErrFaceIndex, i, idx, n)
			}
		}
	}
	return nil
}

// VertexCount returns the number of vertices.
// Implements render.MeshSource.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// FaceCount returns the number of triangle faces.
// Implements render.MeshSource.
func (m *Mesh) FaceCount() int {
	return len(m.Faces)
}

// Vertex returns the object-space position of vertex i.
// Implements render.MeshSource.
func (m *Mesh) Vertex(i int) math3d.Vec3 {
	return m.Vertices[i]
}

// Face returns the vertex indices of face i.
// Implements render.MeshSource.
func (m *Mesh) Face(i int) [3]int {
	f := m.Faces[i]
	return [3]int{f.A, f.B, f.C}
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Vertices) == 0 {
		m.BoundsMin, m.BoundsMax = math3d.Zero3(), math3d.Zero3()
		return
	}

	m.BoundsMin = m.Vertices[0]
	m.BoundsMax = m.Vertices[0]
	for _, v := range m.Vertices[1:] {
		m.BoundsMin = m.BoundsMin.Min(v)
		m.BoundsMax = m.BoundsMax.Max(v)
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// FitToUnit recenters the mesh on the origin and scales its largest
// dimension to 2 units, so any model fills the viewer's default frame.
// Called once after load; part of loading, not of the per-frame pipeline.
func (m *Mesh) FitToUnit() {
	m.CalculateBounds()
	size := m.Size()
	maxDim := size.X
	if size.Y > maxDim {
		maxDim = size.Y
	}
	if size.Z > maxDim {
		maxDim = size.Z
	}
	if maxDim == 0 {
		return
	}

	center := m.Center()
	scale := 2.0 / maxDim
	for i := range m.Vertices {
		m.Vertices[i] = m.Vertices[i].Sub(center).Scale(scale)
	}
	m.CalculateBounds()
}
