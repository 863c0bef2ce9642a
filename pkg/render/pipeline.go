package render

import (
	"errors"
	"fmt"
	"sort"

	"github.com/softrast/softrast/pkg/math3d"
)

// ErrVertexIndex is returned when a mesh face references a vertex index
// outside the vertex list. This indicates a corrupt mesh; the whole frame
// is abandoned rather than partially drawn.
var ErrVertexIndex = errors.New("render: face vertex index out of range")

// zNear is the minimum view-space depth a vertex may have before its face
// is rejected. Projection divides by z, so nothing at or behind the
// camera plane may reach it.
const zNear = 0.1

// MeshSource is the read-only mesh view the pipeline consumes. Implemented
// by models.Mesh; kept as an interface so tests can supply fixtures
// without importing the models package.
type MeshSource interface {
	VertexCount() int
	FaceCount() int
	Vertex(i int) math3d.Vec3
	Face(i int) [3]int
}

// CullStats counts per-frame pipeline outcomes, for HUDs and tests.
type CullStats struct {
	FacesIn     int // Faces consumed from the mesh
	Culled      int // Rejected by the backface test
	NearClipped int // Rejected for crossing the near plane
	Emitted     int // Screen-space triangles produced
}

// Pipeline is the per-frame transform/cull stage. It is stateless between
// calls apart from the culling switch and the stats of the last call; all
// scene state (rotation, camera) arrives as arguments.
type Pipeline struct {
	BackfaceCulling bool
	stats           CullStats
}

// NewPipeline creates a pipeline with backface culling enabled.
func NewPipeline() *Pipeline {
	return &Pipeline{BackfaceCulling: true}
}

// Stats returns the counters from the most recent TransformAndCull call.
func (p *Pipeline) Stats() CullStats {
	return p.stats
}

// TransformAndCull produces zero or one screen-space triangle per mesh
// face: rotate (model -> world, fixed X, Y, Z order), translate by the
// camera offset (world -> view), backface-test, then perspective-project
// into a width x height screen.
//
// Faces with any vertex closer than the near plane are rejected before
// projection, so the perspective divide never sees z <= 0. A face index
// outside the vertex list aborts the whole call with ErrVertexIndex.
//
// The emitted list preserves mesh face order. There is no depth buffer:
// triangles painted later overwrite earlier ones, so face order decides
// overlaps. See SortByDepth for the optional painter's ordering.
func (p *Pipeline) TransformAndCull(mesh MeshSource, rotation math3d.Vec3, cam CameraState, width, height int) ([]Triangle, error) {
	p.stats = CullStats{}

	halfW := float64(width) / 2
	halfH := float64(height) / 2
	vertexCount := mesh.VertexCount()

	triangles := make([]Triangle, 0, mesh.FaceCount())

	for i := 0; i < mesh.FaceCount(); i++ {
		face := mesh.Face(i)
		for _, idx := range face {
			if idx < 0 || idx >= vertexCount {
				return nil, fmt.Errorf("%w: face %d references vertex %d (mesh has %d)", ErrVertexIndex, i, idx, vertexCount)
			}
		}
		p.stats.FacesIn++

		a := mesh.Vertex(face[0]).Rotate(rotation).Sub(cam.Position)
		b := mesh.Vertex(face[1]).Rotate(rotation).Sub(cam.Position)
		c := mesh.Vertex(face[2]).Rotate(rotation).Sub(cam.Position)

		// Backface test. Screen-space y grows downward, the camera sits
		// at the view-space origin: with normal N = (b-a) x (c-a) and
		// camera ray R = -a, a face is culled when N·R < 0. The same
		// convention everywhere, or visibility flips.
		if p.BackfaceCulling {
			normal := b.Sub(a).Cross(c.Sub(a))
			ray := a.Negate()
			if normal.Dot(ray) < 0 {
				p.stats.Culled++
				continue
			}
		}

		// Near-plane guard: projection is undefined for z <= 0.
		if a.Z < zNear || b.Z < zNear || c.Z < zNear {
			p.stats.NearClipped++
			continue
		}

		triangles = append(triangles, Triangle{
			Points: [3]math3d.Vec2{
				project(a, cam.FOVFactor, halfW, halfH),
				project(b, cam.FOVFactor, halfW, halfH),
				project(c, cam.FOVFactor, halfW, halfH),
			},
			Face:     i,
			AvgDepth: (a.Z + b.Z + c.Z) / 3,
		})
		p.stats.Emitted++
	}

	return triangles, nil
}

// project maps a view-space point to screen coordinates: perspective
// divide by z scaled by the FOV factor, then translate to screen center.
// Callers must guarantee v.Z > 0.
func project(v math3d.Vec3, fov, halfW, halfH float64) math3d.Vec2 {
	return math3d.V2(
		fov*v.X/v.Z+halfW,
		fov*v.Y/v.Z+halfH,
	)
}

// SortByDepth reorders triangles back-to-front by average depth
// (painter's algorithm). Stable, so equal depths keep face order.
// Optional: the pipeline itself preserves mesh face order, which is the
// documented default.
func SortByDepth(tris []Triangle) {
	sort.SliceStable(tris, func(i, j int) bool {
		return tris[i].AvgDepth > tris[j].AvgDepth
	})
}
