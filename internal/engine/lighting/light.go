// Package lighting provides the directional light rig of the 3D view.
package lighting

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/padforge/pkg/paint"
)

// DirectionalLight shines from Position towards Target.
type DirectionalLight struct {
	Name       string
	Color      paint.Color
	Intensity  float32
	Position   mgl32.Vec3
	Target     mgl32.Vec3
	CastShadow bool
}

// ToLight returns the normalized direction from the target towards the light.
func (l DirectionalLight) ToLight() mgl32.Vec3 {
	d := l.Position.Sub(l.Target)
	if d.Len() == 0 {
		return mgl32.Vec3{0, 1, 0}
	}
	return d.Normalize()
}

// Radiance returns the linear color scaled by intensity.
func (l DirectionalLight) Radiance() mgl32.Vec3 {
	return mgl32.Vec3(l.Color.Linear()).Mul(l.Intensity)
}

// Rig is the set of lights illuminating the model.
type Rig struct {
	Ambient          paint.Color
	AmbientIntensity float32
	Lights           []DirectionalLight
}

// AmbientRadiance returns the linear ambient term.
func (r *Rig) AmbientRadiance() mgl32.Vec3 {
	return mgl32.Vec3(r.Ambient.Linear()).Mul(r.AmbientIntensity)
}

// ShadowCaster returns the first light that casts shadows.
func (r *Rig) ShadowCaster() (DirectionalLight, bool) {
	for _, l := range r.Lights {
		if l.CastShadow {
			return l, true
		}
	}
	return DirectionalLight{}, false
}

// Buffer packs the rig for upload, dropping lights beyond MaxLights.
func (r *Rig) Buffer() *LightBuffer {
	b := NewLightBuffer()
	b.SetLights(r.Lights)
	return b
}
