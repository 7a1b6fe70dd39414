package shadow

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/padforge/internal/engine/lighting"
	"github.com/Faultbox/padforge/internal/engine/scene"
)

// Frustum is the orthographic box of a directional shadow caster.
type Frustum struct {
	Extent float32 // half-size of the box in X and Y
	Near   float32
	Far    float32
}

// LightMatrix computes the view-projection of a shadow-casting light
// looking from its position at its target through a fixed box.
func LightMatrix(light lighting.DirectionalLight, f Frustum) mgl32.Mat4 {
	view := mgl32.LookAtV(light.Position, light.Target, upFor(light.ToLight()))
	proj := mgl32.Ortho(-f.Extent, f.Extent, -f.Extent, f.Extent, f.Near, f.Far)
	return proj.Mul4(view)
}

// FitLightMatrix computes a view-projection that encloses bounds.
// toLight is the normalized direction from the scene to the light.
func FitLightMatrix(toLight mgl32.Vec3, bounds scene.Bounds) mgl32.Mat4 {
	center := bounds.Center()
	radius := bounds.Max.Sub(bounds.Min).Len() / 2

	// Position light far enough to encompass entire scene
	lightDistance := radius * 2.0
	lightPos := center.Add(toLight.Mul(lightDistance))

	view := mgl32.LookAtV(lightPos, center, upFor(toLight))

	// Padding avoids clipping at the box edges
	padding := radius * 0.1
	halfSize := radius + padding
	far := lightDistance + radius + padding

	proj := mgl32.Ortho(-halfSize, halfSize, -halfSize, halfSize, 0.1, far)
	return proj.Mul4(view)
}

// BiasMatrix maps clip space [-1, 1] to texture space [0, 1].
var BiasMatrix = mgl32.Translate3D(0.5, 0.5, 0.5).Mul4(mgl32.Scale3D(0.5, 0.5, 0.5))

// upFor picks an up vector that is not parallel to dir.
func upFor(dir mgl32.Vec3) mgl32.Vec3 {
	if math32.Abs(dir.Y()) > 0.99 {
		return mgl32.Vec3{0, 0, 1}
	}
	return mgl32.Vec3{0, 1, 0}
}
