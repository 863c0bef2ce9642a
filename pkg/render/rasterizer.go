package render

import (
	"errors"
	"math"

	"github.com/softrast/softrast/pkg/math3d"
)

// ErrNonFinite is returned when a triangle with NaN or infinite
// coordinates reaches a rasterizer. The triangle is skipped; the caller
// decides whether the rest of the frame continues.
var ErrNonFinite = errors.New("render: triangle has non-finite coordinates")

// Triangle is a screen-space triangle ready for rasterization.
// Triangles are transient: produced by the transform stage, consumed
// within the same frame, never persisted.
type Triangle struct {
	Points   [3]math3d.Vec2
	Color    Color
	Face     int     // Index of the source mesh face
	AvgDepth float64 // Mean view-space depth, used only for optional painter's sorting
}

// Rasterizer fills a screen-space triangle into a framebuffer.
// Implementations define the fill strategy; they must share the same
// pixel ownership rule so strategies stay interchangeable.
type Rasterizer interface {
	FillTriangle(fb *Framebuffer, tri Triangle) error
}

// ScanlineRasterizer fills triangles by flat-top/flat-bottom decomposition:
// sort vertices by Y, split the general case at the middle vertex height,
// then walk scanlines interpolating the two slanted edges.
//
// Pixel ownership is half-open on both axes: a scanline covers rows
// ceil(yTop) <= y < ceil(yBottom) and columns ceil(xLeft) <= x < ceil(xRight).
// Two triangles sharing an edge therefore paint every pixel along it
// exactly once, with no gaps and no double coverage.
type ScanlineRasterizer struct{}

// triangleClass describes which fill path a sorted triangle takes.
type triangleClass int

const (
	classDegenerate triangleClass = iota // zero screen-space height
	classFlatTop                         // y0 == y1
	classFlatBottom                      // y1 == y2
	classGeneral                         // needs the split
)

// FillTriangle implements Rasterizer.
func (ScanlineRasterizer) FillTriangle(fb *Framebuffer, tri Triangle) error {
	for _, p := range tri.Points {
		if !p.IsFinite() {
			return ErrNonFinite
		}
	}

	v0, v1, v2 := sortByY(tri.Points)

	switch classify(v0, v1, v2) {
	case classDegenerate:
		// Zero-height triangle: no pixels, not an error.
	case classFlatBottom:
		fillFlatBottom(fb, v0, v1, v2, tri.Color)
	case classFlatTop:
		fillFlatTop(fb, v0, v1, v2, tri.Color)
	case classGeneral:
		m := math3d.V2(splitX(v0, v1, v2), v1.Y)
		fillFlatBottom(fb, v0, v1, m, tri.Color)
		fillFlatTop(fb, v1, m, v2, tri.Color)
	}
	return nil
}

// sortByY orders the three points by ascending Y. Ties keep the original
// relative order, so the sort is deterministic.
func sortByY(p [3]math3d.Vec2) (v0, v1, v2 math3d.Vec2) {
	v0, v1, v2 = p[0], p[1], p[2]
	if v1.Y < v0.Y {
		v0, v1 = v1, v0
	}
	if v2.Y < v1.Y {
		v1, v2 = v2, v1
	}
	if v1.Y < v0.Y {
		v0, v1 = v1, v0
	}
	return v0, v1, v2
}

// classify picks the fill path for a Y-sorted triangle.
func classify(v0, v1, v2 math3d.Vec2) triangleClass {
	if v2.Y == v0.Y {
		return classDegenerate
	}
	if v1.Y == v2.Y {
		return classFlatBottom
	}
	if v0.Y == v1.Y {
		return classFlatTop
	}
	return classGeneral
}

// splitX computes the X coordinate where the long edge (v0 -> v2) crosses
// the height of the middle vertex: x0 + (x2-x0)*(y1-y0)/(y2-y0).
// Callers must rule out y2 == y0 first.
func splitX(v0, v1, v2 math3d.Vec2) float64 {
	return v0.X + (v2.X-v0.X)*(v1.Y-v0.Y)/(v2.Y-v0.Y)
}

// fillFlatBottom fills a triangle whose flat edge is at the bottom:
// v0 is the apex, v1 and v2 share the bottom Y.
func fillFlatBottom(fb *Framebuffer, v0, v1, v2 math3d.Vec2, c Color) {
	height := v1.Y - v0.Y
	if height <= 0 {
		return
	}

	invSlope1 := (v1.X - v0.X) / height
	invSlope2 := (v2.X - v0.X) / height

	yStart := int(math.Ceil(v0.Y))
	yEnd := int(math.Ceil(v1.Y)) // exclusive

	for y := yStart; y < yEnd; y++ {
		dy := float64(y) - v0.Y
		x1 := v0.X + invSlope1*dy
		x2 := v0.X + invSlope2*dy
		fillSpan(fb, y, x1, x2, c)
	}
}

// fillFlatTop fills a triangle whose flat edge is at the top:
// v0 and v1 share the top Y, v2 is the apex below.
func fillFlatTop(fb *Framebuffer, v0, v1, v2 math3d.Vec2, c Color) {
	height := v2.Y - v0.Y
	if height <= 0 {
		return
	}

	invSlope1 := (v2.X - v0.X) / height
	invSlope2 := (v2.X - v1.X) / height

	yStart := int(math.Ceil(v0.Y))
	yEnd := int(math.Ceil(v2.Y)) // exclusive

	for y := yStart; y < yEnd; y++ {
		dy := float64(y) - v0.Y
		x1 := v0.X + invSlope1*dy
		x2 := v1.X + invSlope2*dy
		fillSpan(fb, y, x1, x2, c)
	}
}

// fillSpan fills the half-open column range [ceil(xLeft), ceil(xRight))
// on row y through the framebuffer's clipped span fill.
func fillSpan(fb *Framebuffer, y int, x1, x2 float64, c Color) {
	xl, xr := x1, x2
	if xr < xl {
		xl, xr = xr, xl
	}
	fb.FillScanline(y, int(math.Ceil(xl)), int(math.Ceil(xr)), c)
}
