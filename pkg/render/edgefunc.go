package render

import (
	"math"

	"github.com/softrast/softrast/pkg/math3d"
)

// EdgeFunctionRasterizer fills triangles by evaluating three edge
// functions for every pixel center in the triangle's bounding box.
// A pixel is inside when all three values share the sign of the signed
// area. Simpler than scanline decomposition and trivially parallel;
// kept as an alternative strategy for comparison benchmarks.
type EdgeFunctionRasterizer struct{}

// edgeFunction returns the signed area term for point p relative to the
// edge a -> b: positive left of the edge, negative right, zero on it.
func edgeFunction(a, b, p math3d.Vec2) float64 {
	return (p.X-a.X)*(b.Y-a.Y) - (p.Y-a.Y)*(b.X-a.X)
}

// FillTriangle implements Rasterizer.
func (EdgeFunctionRasterizer) FillTriangle(fb *Framebuffer, tri Triangle) error {
	for _, p := range tri.Points {
		if !p.IsFinite() {
			return ErrNonFinite
		}
	}

	v0, v1, v2 := tri.Points[0], tri.Points[1], tri.Points[2]

	area := edgeFunction(v0, v1, v2)
	if math.Abs(area) < 1e-9 {
		// Zero-area triangle: nothing to fill.
		return nil
	}

	minX := int(math.Floor(min3(v0.X, v1.X, v2.X)))
	maxX := int(math.Ceil(max3(v0.X, v1.X, v2.X)))
	minY := int(math.Floor(min3(v0.Y, v1.Y, v2.Y)))
	maxY := int(math.Ceil(max3(v0.Y, v1.Y, v2.Y)))

	minX = max(minX, 0)
	maxX = min(maxX, fb.Width-1)
	minY = max(minY, 0)
	maxY = min(maxY, fb.Height-1)

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			p := math3d.V2(float64(x)+0.5, float64(y)+0.5)

			w0 := edgeFunction(v1, v2, p)
			w1 := edgeFunction(v2, v0, p)
			w2 := edgeFunction(v0, v1, p)

			var inside bool
			if area > 0 {
				inside = w0 >= 0 && w1 >= 0 && w2 >= 0
			} else {
				inside = w0 <= 0 && w1 <= 0 && w2 <= 0
			}

			if inside {
				fb.Pix[y*fb.Width+x] = tri.Color
			}
		}
	}
	return nil
}

func min3(a, b, c float64) float64 {
	return math.Min(a, math.Min(b, c))
}

func max3(a, b, c float64) float64 {
	return math.Max(a, math.Max(b, c))
}
