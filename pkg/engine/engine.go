// Package engine ties the mesh, camera, pipeline, and rasterizer
// together into a per-frame update/render loop.
package engine

import (
	"errors"
	"fmt"

	"github.com/softrast/softrast/pkg/math3d"
	"github.com/softrast/softrast/pkg/render"
)

// RenderMode selects what gets drawn for each visible triangle.
type RenderMode int

const (
	// Wireframe draws triangle edges only.
	Wireframe RenderMode = iota
	// WireframeVertices draws edges plus vertex markers.
	WireframeVertices
	// FilledWireframe draws filled triangles with edges on top.
	FilledWireframe
	// FilledWireframeVertices draws fill, edges, and vertex markers.
	FilledWireframeVertices
	// Filled draws filled triangles only.
	Filled
)

// String returns a short human-readable mode name for HUDs.
func (m RenderMode) String() string {
	switch m {
	case Wireframe:
		return "wireframe"
	case WireframeVertices:
		return "wireframe+vertices"
	case FilledWireframe:
		return "filled+wireframe"
	case FilledWireframeVertices:
		return "filled+wireframe+vertices"
	case Filled:
		return "filled"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// gridSpacing is the background grid pitch in pixels.
const gridSpacing = 50

// vertexMarkerSize is the side of the square drawn at each vertex in
// the vertex-marker modes.
const vertexMarkerSize = 4

// Engine owns the framebuffer and the per-frame scene state. Update
// runs the geometry stage; Render draws the result. Keeping the two
// phases separate lets callers rebuild geometry once and redraw it at
// different settings, and keeps draw code out of the transform path.
type Engine struct {
	Mode            RenderMode
	DrawGrid        bool
	SortByDepth     bool
	Camera          render.CameraState
	Rotation        math3d.Vec3
	FillColor       render.Color
	WireColor       render.Color
	VertexColor     render.Color
	BackgroundColor render.Color

	fb        *render.Framebuffer
	mesh      render.MeshSource
	pipeline  *render.Pipeline
	raster    render.Rasterizer
	triangles []render.Triangle
	skipped   int
}

// New creates an engine drawing mesh into a width x height framebuffer.
// Defaults: filled-wireframe mode, backface culling on, grid on, no
// depth sorting, camera 5 units back.
func New(mesh render.MeshSource, width, height int) *Engine {
	return &Engine{
		Mode:            FilledWireframe,
		DrawGrid:        true,
		Camera:          render.NewCameraState(),
		FillColor:       render.ColorFill,
		WireColor:       render.ColorWireframe,
		VertexColor:     render.ColorVertex,
		BackgroundColor: render.ColorBackground,
		fb:              render.NewFramebuffer(width, height),
		mesh:            mesh,
		pipeline:        render.NewPipeline(),
		raster:          &render.ScanlineRasterizer{},
	}
}

// Framebuffer returns the engine's pixel buffer.
func (e *Engine) Framebuffer() *render.Framebuffer {
	return e.fb
}

// Pipeline returns the transform/cull stage, exposing the culling
// switch and the per-frame stats.
func (e *Engine) Pipeline() *render.Pipeline {
	return e.pipeline
}

// SetMesh swaps the scene's mesh.
func (e *Engine) SetMesh(mesh render.MeshSource) {
	e.mesh = mesh
	e.triangles = nil
}

// Resize replaces the framebuffer with one of the new dimensions. The
// old contents are discarded; call Update and Render to repopulate.
func (e *Engine) Resize(width, height int) {
	e.fb = render.NewFramebuffer(width, height)
}

// SkippedTriangles reports how many triangles the last Render dropped
// for non-finite coordinates.
func (e *Engine) SkippedTriangles() int {
	return e.skipped
}

// Update runs the geometry stage: transform, cull, project, and
// optionally depth-sort the mesh into screen-space triangles for the
// next Render. A corrupt mesh (face index out of range) abandons the
// frame: the triangle list is cleared and the error returned.
func (e *Engine) Update() error {
	tris, err := e.pipeline.TransformAndCull(e.mesh, e.Rotation, e.Camera, e.fb.Width, e.fb.Height)
	if err != nil {
		e.triangles = nil
		return fmt.Errorf("update: %w", err)
	}
	if e.SortByDepth {
		render.SortByDepth(tris)
	}
	e.triangles = tris
	return nil
}

// Render draws the current triangle list into the framebuffer according
// to the render mode. Triangles with non-finite coordinates are skipped
// and counted; everything else still draws.
func (e *Engine) Render() {
	e.fb.Clear(e.BackgroundColor)
	if e.DrawGrid {
		e.fb.DrawGrid(gridSpacing, render.ColorGrid)
	}
	e.skipped = 0

	for i := range e.triangles {
		tri := &e.triangles[i]

		switch e.Mode {
		case Filled:
			e.fillTriangle(tri)
		case FilledWireframe:
			e.fillTriangle(tri)
			e.drawEdges(tri)
		case FilledWireframeVertices:
			e.fillTriangle(tri)
			e.drawEdges(tri)
			e.drawVertices(tri)
		case WireframeVertices:
			e.drawEdges(tri)
			e.drawVertices(tri)
		default: // Wireframe
			e.drawEdges(tri)
		}
	}
}

func (e *Engine) fillTriangle(tri *render.Triangle) {
	t := *tri
	t.Color = e.FillColor
	if err := e.raster.FillTriangle(e.fb, t); err != nil {
		if errors.Is(err, render.ErrNonFinite) {
			e.skipped++
			return
		}
		// FillTriangle only fails on non-finite input today; anything
		// else still must not take the frame down.
		e.skipped++
	}
}

func (e *Engine) drawEdges(tri *render.Triangle) {
	p := tri.Points
	for _, pt := range p {
		if !pt.IsFinite() {
			e.skipped++
			return
		}
	}
	x0, y0 := int(p[0].X), int(p[0].Y)
	x1, y1 := int(p[1].X), int(p[1].Y)
	x2, y2 := int(p[2].X), int(p[2].Y)
	e.fb.DrawLine(x0, y0, x1, y1, e.WireColor)
	e.fb.DrawLine(x1, y1, x2, y2, e.WireColor)
	e.fb.DrawLine(x2, y2, x0, y0, e.WireColor)
}

func (e *Engine) drawVertices(tri *render.Triangle) {
	half := vertexMarkerSize / 2
	for _, pt := range tri.Points {
		if !pt.IsFinite() {
			continue
		}
		e.fb.DrawRect(int(pt.X)-half, int(pt.Y)-half, vertexMarkerSize, vertexMarkerSize, e.VertexColor)
	}
}
