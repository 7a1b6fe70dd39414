package app

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/padforge/internal/config"
	"github.com/Faultbox/padforge/internal/configurator"
	"github.com/Faultbox/padforge/internal/engine/camera"
	"github.com/Faultbox/padforge/internal/engine/lighting"
	"github.com/Faultbox/padforge/internal/engine/renderer"
	"github.com/Faultbox/padforge/internal/engine/shadow"
	"github.com/Faultbox/padforge/pkg/paint"
)

// boundsColor outlines the selected part when render.show_bounds is set.
var boundsColor = mgl32.Vec4{0.1, 0.1, 0.1, 1}

// LightRig builds the light rig. Every light points at the origin.
func LightRig(c config.LightingConfig) (*lighting.Rig, error) {
	ambient, err := paint.ParseHex(c.AmbientColor)
	if err != nil {
		return nil, fmt.Errorf("ambient color: %w", err)
	}
	rig := &lighting.Rig{Ambient: ambient, AmbientIntensity: c.AmbientIntensity}
	for i, lc := range c.Lights {
		col, err := paint.ParseHex(lc.Color)
		if err != nil {
			return nil, fmt.Errorf("light %d (%s): %w", i, lc.Name, err)
		}
		rig.Lights = append(rig.Lights, lighting.DirectionalLight{
			Name:       lc.Name,
			Color:      col,
			Intensity:  lc.Intensity,
			Position:   mgl32.Vec3(lc.Position),
			CastShadow: lc.CastShadow,
		})
	}
	return rig, nil
}

// Placement returns the model matrix: translation, then XYZ Euler
// rotation, then uniform scale.
func Placement(c config.ModelConfig) mgl32.Mat4 {
	scale := c.Scale
	if scale == 0 {
		scale = 1
	}
	rot := mgl32.HomogRotate3DX(c.Rotation[0]).
		Mul4(mgl32.HomogRotate3DY(c.Rotation[1])).
		Mul4(mgl32.HomogRotate3DZ(c.Rotation[2]))
	return mgl32.Translate3D(c.Position[0], c.Position[1], c.Position[2]).
		Mul4(rot).
		Mul4(mgl32.Scale3D(scale, scale, scale))
}

// NewCamera builds the orbit camera and places it at the configured start.
func NewCamera(c config.CameraConfig) *camera.OrbitCamera {
	cam := camera.NewOrbitCamera()
	if c.FOV > 0 {
		cam.FOV = c.FOV
	}
	if c.Near > 0 && c.Far > c.Near {
		cam.Near, cam.Far = c.Near, c.Far
	}
	if c.MaxDistance > 0 && c.MinDistance <= c.MaxDistance {
		cam.MinDistance, cam.MaxDistance = c.MinDistance, c.MaxDistance
	}
	if c.RotateSpeed > 0 {
		cam.RotateSpeed = c.RotateSpeed
	}
	if c.ZoomSpeed > 0 {
		cam.ZoomSpeed = c.ZoomSpeed
	}
	cam.Damping = c.Damping
	cam.LookFrom(mgl32.Vec3(c.Position), mgl32.Vec3(c.Target))
	return cam
}

// RendererConfig derives the renderer settings.
func RendererConfig(cfg *config.Config) (renderer.Config, error) {
	bg, err := paint.ParseHex(cfg.Render.Background)
	if err != nil {
		return renderer.Config{}, fmt.Errorf("background: %w", err)
	}
	toneMap, err := renderer.ParseToneMapping(cfg.Render.ToneMapping)
	if err != nil {
		return renderer.Config{}, err
	}
	exposure := cfg.Render.Exposure
	if exposure <= 0 {
		exposure = 1
	}

	s := cfg.Shadow
	return renderer.Config{
		Width:      int32(cfg.Window.Width),
		Height:     int32(cfg.Window.Height),
		Samples:    int32(cfg.Render.Samples),
		Background: bg,
		ToneMap:    toneMap,
		Exposure:   exposure,
		Shadow: renderer.ShadowConfig{
			Enabled:    s.Enabled,
			Resolution: int32(s.Resolution),
			Frustum:    shadow.Frustum{Extent: s.Extent, Near: s.Near, Far: s.Far},
			Radius:     s.Radius,
			Bias:       s.Bias,
		},
		GroundSize:    s.GroundSize,
		GroundOpacity: s.GroundOpacity,
		BoundsColor:   boundsColor,
	}, nil
}

// ControllerOptions derives the controller settings. Scheduler, panel and
// logger are filled in by the caller.
func ControllerOptions(c config.ConfiguratorConfig) (configurator.Options, error) {
	palette, err := c.BuildPalette()
	if err != nil {
		return configurator.Options{}, err
	}
	opts := configurator.Options{
		Palette:        palette,
		Excluded:       c.ExcludedParts,
		DisplayNames:   c.DisplayNames,
		HighlightDelay: c.HighlightDelay,
	}
	if c.HighlightColor != "" {
		col, err := paint.ParseHex(c.HighlightColor)
		if err != nil {
			return configurator.Options{}, fmt.Errorf("highlight color: %w", err)
		}
		opts.HighlightColor = &col
	}
	return opts, nil
}
