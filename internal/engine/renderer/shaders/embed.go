// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// PartVertexShader transforms model meshes and passes light-space positions.
//
//go:embed part.vert
var PartVertexShader string

// PartFragmentShader shades model meshes with the light rig, shadows and tone mapping.
//
//go:embed part.frag
var PartFragmentShader string

// DepthVertexShader renders meshes into the shadow map.
//
//go:embed depth.vert
var DepthVertexShader string

// DepthFragmentShader is the empty fragment stage of the depth pass.
//
//go:embed depth.frag
var DepthFragmentShader string

// GroundVertexShader draws the shadow-receiving ground plane.
//
//go:embed ground.vert
var GroundVertexShader string

// GroundFragmentShader outputs only the shadow darkening of the ground.
//
//go:embed ground.frag
var GroundFragmentShader string

// LineVertexShader draws debug line lists.
//
//go:embed line.vert
var LineVertexShader string

// LineFragmentShader draws debug lines in a flat color.
//
//go:embed line.frag
var LineFragmentShader string
