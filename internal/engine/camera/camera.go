// Package camera provides the orbit camera used by the 3D view.
package camera

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/padforge/internal/engine/scene"
)

// settle is the delta below which a damped rotation is considered finished.
const settle = 1e-5

// OrbitCamera orbits around a target point. Drag input is accumulated
// and applied gradually by Update when Damping is set.
type OrbitCamera struct {
	Target mgl32.Vec3

	// Spherical coordinates around Target
	Distance float32
	Yaw      float32 // around Y, 0 looks down -Z from +Z
	Pitch    float32 // elevation, radians

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Input response
	RotateSpeed float32 // radians per pixel
	ZoomSpeed   float32 // fraction of distance per wheel step
	Damping     float32 // 0 disables damping

	// Projection
	FOV  float32 // vertical, degrees
	Near float32
	Far  float32

	yawDelta   float32
	pitchDelta float32
}

// NewOrbitCamera creates an orbit camera with default settings.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Target:      mgl32.Vec3{0, 1.5, 0},
		Distance:    5,
		MinDistance: 2,
		MaxDistance: 5,
		MinPitch:    -math32.Pi/2 + 0.01,
		MaxPitch:    math32.Pi/2 - 0.01,
		RotateSpeed: 0.005,
		ZoomSpeed:   0.1,
		Damping:     0.02,
		FOV:         75,
		Near:        0.1,
		Far:         1000,
	}
}

// LookFrom places the camera at position looking at target, converting
// the offset to spherical coordinates and applying the constraints.
func (c *OrbitCamera) LookFrom(position, target mgl32.Vec3) {
	c.Target = target
	offset := position.Sub(target)

	c.Distance = offset.Len()
	if c.Distance > 0 {
		c.Pitch = math32.Asin(mgl32.Clamp(offset.Y()/c.Distance, -1, 1))
		c.Yaw = math32.Atan2(offset.X(), offset.Z())
	}
	c.yawDelta, c.pitchDelta = 0, 0
	c.clamp()
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() mgl32.Vec3 {
	sp, cp := math32.Sincos(c.Pitch)
	sy, cy := math32.Sincos(c.Yaw)
	return c.Target.Add(mgl32.Vec3{
		c.Distance * cp * sy,
		c.Distance * sp,
		c.Distance * cp * cy,
	})
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position(), c.Target, mgl32.Vec3{0, 1, 0})
}

// ProjectionMatrix returns the perspective projection for the given aspect ratio.
func (c *OrbitCamera) ProjectionMatrix(aspect float32) mgl32.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), aspect, c.Near, c.Far)
}

// HandleDrag queues a rotation from a mouse drag delta in pixels.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.yawDelta -= deltaX * c.RotateSpeed
	c.pitchDelta += deltaY * c.RotateSpeed
	if c.Damping <= 0 {
		c.Update()
	}
}

// HandleZoom updates distance from a scroll wheel delta. Positive zooms in.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance -= delta * c.Distance * c.ZoomSpeed
	c.clamp()
}

// Update applies queued rotation. With damping only a fraction is applied
// per call; it reports whether the camera is still moving.
func (c *OrbitCamera) Update() bool {
	if c.Damping <= 0 || c.Damping >= 1 {
		c.Yaw += c.yawDelta
		c.Pitch += c.pitchDelta
		c.yawDelta, c.pitchDelta = 0, 0
		c.clamp()
		return false
	}

	c.Yaw += c.yawDelta * c.Damping
	c.Pitch += c.pitchDelta * c.Damping
	c.yawDelta *= 1 - c.Damping
	c.pitchDelta *= 1 - c.Damping
	c.clamp()

	if math32.Abs(c.yawDelta) < settle && math32.Abs(c.pitchDelta) < settle {
		c.yawDelta, c.pitchDelta = 0, 0
		return false
	}
	return true
}

// FitToBounds centers the camera on b and backs off until it fits the view.
func (c *OrbitCamera) FitToBounds(b scene.Bounds) {
	if b.Empty() {
		return
	}
	c.Target = b.Center()
	radius := b.Max.Sub(b.Min).Len() / 2
	half := mgl32.DegToRad(c.FOV) / 2
	if s := math32.Sin(half); s > 0 {
		c.Distance = radius / s
	}
	c.clamp()
}

func (c *OrbitCamera) clamp() {
	if c.MaxDistance > 0 {
		c.Distance = mgl32.Clamp(c.Distance, c.MinDistance, c.MaxDistance)
	}
	if c.MinPitch < c.MaxPitch {
		c.Pitch = mgl32.Clamp(c.Pitch, c.MinPitch, c.MaxPitch)
	}
}
