package render

import "github.com/softrast/softrast/pkg/math3d"

// DefaultFOVFactor is the projection scale used when nothing else is
// configured. Larger values zoom in.
const DefaultFOVFactor = 640.0

// CameraState positions the world relative to the viewer. It is owned by
// the caller, mutated by input handling, and read fresh each frame by the
// transform stage; the core keeps no camera state of its own.
type CameraState struct {
	Position  math3d.Vec3
	FOVFactor float64
}

// NewCameraState returns a camera a few units back from the origin with
// the default field-of-view factor.
func NewCameraState() CameraState {
	return CameraState{
		Position:  math3d.V3(0, 0, -5),
		FOVFactor: DefaultFOVFactor,
	}
}

// Dolly moves the camera along the view axis. Positive d moves toward
// the scene.
func (c *CameraState) Dolly(d float64) {
	c.Position.Z += d
}
