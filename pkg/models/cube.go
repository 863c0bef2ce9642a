package models

import "github.com/softrast/softrast/pkg/math3d"

// cubeVertices are the 8 corners of a 2-unit cube centered on the origin.
var cubeVertices = []math3d.Vec3{
	{X: -1, Y: -1, Z: -1},
	{X: -1, Y: 1, Z: -1},
	{X: 1, Y: 1, Z: -1},
	{X: 1, Y: -1, Z: -1},
	{X: 1, Y: 1, Z: 1},
	{X: 1, Y: -1, Z: 1},
	{X: -1, Y: 1, Z: 1},
	{X: -1, Y: -1, Z: 1},
}

// cubeFaces lists the 12 triangles, two per side, wound so the outward
// side faces the camera under the pipeline's culling convention.
var cubeFaces = []Face{
	// front
	{A: 0, B: 1, C: 2},
	{A: 0, B: 2, C: 3},
	// right
	{A: 3, B: 2, C: 4},
	{A: 3, B: 4, C: 5},
	// back
	{A: 5, B: 4, C: 6},
	{A: 5, B: 6, C: 7},
	// left
	{A: 7, B: 6, C: 1},
	{A: 7, B: 1, C: 0},
	// top
	{A: 1, B: 6, C: 4},
	{A: 1, B: 4, C: 2},
	// bottom
	{A: 5, B: 7, C: 0},
	{A: 5, B: 0, C: 3},
}

// NewCube returns the built-in cube mesh: 8 vertices, 12 faces.
// Useful as a default scene and as a known-good fixture in tests.
func NewCube() *Mesh {
	m := &Mesh{
		Name:     "cube",
		Vertices: append([]math3d.Vec3(nil), cubeVertices...),
		Faces:    append([]Face(nil), cubeFaces...),
	}
	m.CalculateBounds()
	return m
}
