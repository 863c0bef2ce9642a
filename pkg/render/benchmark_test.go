package render

import (
	"testing"

	"github.com/softrast/softrast/pkg/math3d"
)

// Benchmark triangles at three scales in an 800x600 buffer, matching
// typical per-frame workloads.
var benchTriangles = map[string]Triangle{
	"small":  tri(400, 300, 420, 300, 410, 320, ColorFill),
	"medium": tri(300, 200, 500, 250, 400, 400, ColorFill),
	"large":  tri(50, 50, 750, 100, 400, 550, ColorFill),
}

func benchmarkRasterizer(b *testing.B, r Rasterizer) {
	for name, tr := range benchTriangles {
		b.Run(name, func(b *testing.B) {
			fb := NewFramebuffer(800, 600)
			for b.Loop() {
				if err := r.FillTriangle(fb, tr); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkScanlineRasterizer(b *testing.B) {
	benchmarkRasterizer(b, ScanlineRasterizer{})
}

func BenchmarkEdgeFunctionRasterizer(b *testing.B) {
	benchmarkRasterizer(b, EdgeFunctionRasterizer{})
}

func BenchmarkTransformAndCull(b *testing.B) {
	// A fan of faces around a shared apex keeps the pipeline busy
	// without pulling mesh loading into the render package.
	mesh := &mockMesh{
		verts: []math3d.Vec3{
			math3d.V3(0, 0, 0),
			math3d.V3(1, 0, 0),
			math3d.V3(0, 1, 0),
			math3d.V3(-1, 0, 0),
			math3d.V3(0, -1, 0),
		},
		faces: [][3]int{{0, 2, 1}, {0, 3, 2}, {0, 4, 3}, {0, 1, 4}},
	}

	p := NewPipeline()
	cam := NewCameraState()
	rotation := math3d.V3(0.3, 0.7, 0.1)

	b.ReportAllocs()
	for b.Loop() {
		if _, err := p.TransformAndCull(mesh, rotation, cam, 800, 600); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkFramebufferClear(b *testing.B) {
	fb := NewFramebuffer(800, 600)
	for b.Loop() {
		fb.Clear(ColorBackground)
	}
}
