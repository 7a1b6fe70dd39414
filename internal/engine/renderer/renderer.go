// Package renderer provides the forward renderer of the 3D view.
package renderer

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/padforge/internal/engine/framebuffer"
	"github.com/Faultbox/padforge/internal/engine/lighting"
	"github.com/Faultbox/padforge/internal/engine/renderer/shaders"
	"github.com/Faultbox/padforge/internal/engine/scene"
	"github.com/Faultbox/padforge/internal/engine/shader"
	"github.com/Faultbox/padforge/internal/engine/shadow"
	"github.com/Faultbox/padforge/internal/logger"
	"github.com/Faultbox/padforge/pkg/paint"
)

// ToneMapping selects the HDR to display mapping.
type ToneMapping int

const (
	ToneMappingNone ToneMapping = iota
	ToneMappingACES
)

// ParseToneMapping parses "aces" or "none".
func ParseToneMapping(s string) (ToneMapping, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "aces", "aces_filmic", "":
		return ToneMappingACES, nil
	case "none", "linear":
		return ToneMappingNone, nil
	default:
		return ToneMappingNone, fmt.Errorf("unknown tone mapping %q", s)
	}
}

// ShadowConfig holds the shadow caster settings.
type ShadowConfig struct {
	Enabled    bool
	Resolution int32
	Frustum    shadow.Frustum
	Radius     float32 // PCF radius in texels
	Bias       float32
}

// Config holds renderer configuration.
type Config struct {
	Width      int32
	Height     int32
	Samples    int32
	Background paint.Color
	ToneMap    ToneMapping
	Exposure   float32
	Shadow     ShadowConfig

	GroundSize    float32 // 0 disables the ground receiver
	GroundOpacity float32
	GroundHeight  float32

	BoundsColor mgl32.Vec4
}

// Frame is everything needed to draw one image of the scene.
type Frame struct {
	View      mgl32.Mat4
	Proj      mgl32.Mat4
	CameraPos mgl32.Vec3
	Rig       *lighting.Rig
	Root      *scene.Node

	// Highlight draws a box around one mesh when set.
	Highlight *scene.Mesh
}

// Renderer draws a scene tree into an offscreen framebuffer.
// IMPORTANT: Must be created and used on the goroutine owning the GL context.
type Renderer struct {
	config Config
	log    *zap.Logger

	target    *framebuffer.Framebuffer
	shadowMap *shadow.Map

	partProgram   *shader.Program
	depthProgram  *shader.Program
	groundProgram *shader.Program
	lineProgram   *shader.Program

	meshes   map[*scene.Mesh]*gpuMesh
	textures map[*scene.Texture]uint32
	white    uint32

	groundVAO, groundVBO uint32
	lineVAO, lineVBO     uint32
}

// New creates a renderer. The OpenGL context must already be current.
func New(cfg Config, log *zap.Logger) (*Renderer, error) {
	if log == nil {
		log = logger.Log
	}
	r := &Renderer{
		config:   cfg,
		log:      log.Named("renderer"),
		meshes:   make(map[*scene.Mesh]*gpuMesh),
		textures: make(map[*scene.Texture]uint32),
	}

	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	var err error
	if r.partProgram, err = shader.NewProgram("part", shaders.PartVertexShader, shaders.PartFragmentShader); err != nil {
		r.Close()
		return nil, err
	}
	if r.depthProgram, err = shader.NewProgram("depth", shaders.DepthVertexShader, shaders.DepthFragmentShader); err != nil {
		r.Close()
		return nil, err
	}
	if r.groundProgram, err = shader.NewProgram("ground", shaders.GroundVertexShader, shaders.GroundFragmentShader); err != nil {
		r.Close()
		return nil, err
	}
	if r.lineProgram, err = shader.NewProgram("line", shaders.LineVertexShader, shaders.LineFragmentShader); err != nil {
		r.Close()
		return nil, err
	}

	if r.target, err = framebuffer.New(cfg.Width, cfg.Height, cfg.Samples); err != nil {
		r.Close()
		return nil, err
	}

	if cfg.Shadow.Enabled {
		if r.shadowMap, err = shadow.NewMap(cfg.Shadow.Resolution); err != nil {
			// The view still works without shadows.
			r.log.Warn("shadows disabled", zap.Error(err))
			r.shadowMap = nil
		} else {
			r.log.Debug("shadow map created", zap.Int32("resolution", r.shadowMap.Resolution))
		}
	}

	r.white = uploadTexture(1, 1, []byte{255, 255, 255, 255})
	r.createGround()
	r.createLines()

	return r, nil
}

// Resize changes the size of the offscreen target.
func (r *Renderer) Resize(width, height int32) {
	r.target.Resize(width, height)
}

// Size returns the size of the offscreen target.
func (r *Renderer) Size() (int32, int32) {
	return r.target.Size()
}

// Render draws f and returns the resolved color texture.
func (r *Renderer) Render(f Frame) uint32 {
	var meshes []*scene.Mesh
	if f.Root != nil {
		meshes = f.Root.Meshes()
	}
	for _, m := range meshes {
		r.prepare(m)
	}

	lightViewProj := mgl32.Ident4()
	shadowLight := -1
	shadowsOn := false
	if r.shadowMap.IsValid() && f.Rig != nil {
		if caster, idx, ok := shadowCaster(f.Rig); ok {
			lightViewProj = shadow.LightMatrix(caster, r.config.Shadow.Frustum)
			shadowLight = idx
			shadowsOn = true
			r.depthPass(meshes, lightViewProj)
		}
	}

	restore := r.target.BindWithViewport()
	bg := r.config.Background.Float()
	r.target.Clear(bg[0], bg[1], bg[2], 1)
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)

	viewProj := f.Proj.Mul4(f.View)

	if shadowsOn && r.config.GroundSize > 0 {
		r.drawGround(viewProj, lightViewProj)
	}

	opaque, transparent := buildDrawList(meshes, f.CameraPos)
	r.usePartProgram(f, viewProj, lightViewProj, shadowLight, shadowsOn)

	gl.Disable(gl.BLEND)
	gl.DepthMask(true)
	for _, item := range opaque {
		r.drawPart(item.mesh)
	}

	if len(transparent) > 0 {
		gl.Enable(gl.BLEND)
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
		gl.DepthMask(false)
		for _, item := range transparent {
			r.drawPart(item.mesh)
		}
		gl.DepthMask(true)
		gl.Disable(gl.BLEND)
	}

	if f.Highlight != nil {
		r.drawBounds(f.Highlight.WorldBounds(), viewProj)
	}

	gl.BindVertexArray(0)
	gl.UseProgram(0)
	restore()
	r.target.Resolve()
	return r.target.ColorTexture()
}

// ReadPixels returns the last rendered image as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.target.Size()
	return r.target.ReadPixels(), int(w), int(h)
}

// shadowCaster returns the first shadow casting light that fits in the
// light buffer, with its index in that buffer.
func shadowCaster(rig *lighting.Rig) (lighting.DirectionalLight, int, bool) {
	for i, l := range rig.Lights {
		if i >= lighting.MaxLights {
			break
		}
		if l.CastShadow {
			return l, i, true
		}
	}
	return lighting.DirectionalLight{}, -1, false
}

func (r *Renderer) depthPass(meshes []*scene.Mesh, lightViewProj mgl32.Mat4) {
	r.shadowMap.Bind()
	r.depthProgram.Use()
	r.depthProgram.SetMat4("uLightViewProj", lightViewProj)
	for _, m := range meshes {
		if !m.CastShadow {
			continue
		}
		gm := r.meshes[m]
		if gm == nil {
			continue
		}
		r.depthProgram.SetMat4("uModel", m.WorldMatrix())
		gm.draw()
	}
	r.shadowMap.Unbind()
}

func (r *Renderer) usePartProgram(f Frame, viewProj, lightViewProj mgl32.Mat4, shadowLight int, shadowsOn bool) {
	p := r.partProgram
	p.Use()
	p.SetMat4("uViewProj", viewProj)
	p.SetMat4("uLightViewProj", lightViewProj)
	p.SetVec3("uCameraPos", f.CameraPos)

	if f.Rig != nil {
		buf := f.Rig.Buffer()
		p.SetVec3("uAmbient", f.Rig.AmbientRadiance())
		p.SetInt("uLightCount", int32(buf.Count))
		p.SetVec3Array("uLightDirs", buf.Directions())
		p.SetVec3Array("uLightColors", buf.Radiances())
	} else {
		p.SetVec3("uAmbient", mgl32.Vec3{1, 1, 1})
		p.SetInt("uLightCount", 0)
	}

	p.SetInt("uToneMapping", int32(r.config.ToneMap))
	p.SetFloat("uExposure", r.config.Exposure)

	p.SetInt("uTexture", 0)
	p.SetInt("uShadowMap", 1)
	p.SetBool("uShadowsEnabled", shadowsOn)
	p.SetInt("uShadowLight", int32(shadowLight))
	if shadowsOn {
		r.shadowMap.BindTexture(gl.TEXTURE1)
		p.SetFloat("uShadowBias", r.config.Shadow.Bias)
		p.SetFloat("uShadowRadius", r.config.Shadow.Radius)
		p.SetFloat("uTexelSize", r.shadowMap.TexelSize())
	}
}

func (r *Renderer) drawPart(m *scene.Mesh) {
	gm := r.meshes[m]
	if gm == nil || m.Material == nil {
		return
	}
	p := r.partProgram
	mat := m.Material
	model := m.WorldMatrix()

	p.SetMat4("uModel", model)
	p.SetMat3("uNormalMatrix", normalMatrix(model))
	p.SetVec3("uBaseColor", mgl32.Vec3(mat.Color.Linear()))
	p.SetVec3("uEmissive", mgl32.Vec3(mat.Emissive.Linear()))
	p.SetFloat("uMetalness", mat.Metalness)
	p.SetFloat("uRoughness", mat.Roughness)
	p.SetFloat("uClearcoat", mat.Clearcoat)
	p.SetFloat("uAlpha", mat.Alpha())
	p.SetBool("uReceiveShadow", m.ReceiveShadow)

	gl.ActiveTexture(gl.TEXTURE0)
	if tex := r.texture(mat.Texture); tex != 0 {
		gl.BindTexture(gl.TEXTURE_2D, tex)
		p.SetBool("uHasTexture", true)
	} else {
		gl.BindTexture(gl.TEXTURE_2D, r.white)
		p.SetBool("uHasTexture", false)
	}

	if mat.DoubleSided || mat.Transparent {
		gl.Disable(gl.CULL_FACE)
	} else {
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(gl.BACK)
	}
	gm.draw()
	gl.Disable(gl.CULL_FACE)
}

func (r *Renderer) drawGround(viewProj, lightViewProj mgl32.Mat4) {
	p := r.groundProgram
	p.Use()
	half := r.config.GroundSize / 2
	model := mgl32.Translate3D(0, r.config.GroundHeight, 0).Mul4(mgl32.Scale3D(half, 1, half))
	p.SetMat4("uModel", model)
	p.SetMat4("uViewProj", viewProj)
	p.SetMat4("uLightViewProj", lightViewProj)
	p.SetInt("uShadowMap", 1)
	p.SetFloat("uShadowBias", r.config.Shadow.Bias)
	p.SetFloat("uShadowRadius", r.config.Shadow.Radius)
	p.SetFloat("uTexelSize", r.shadowMap.TexelSize())
	p.SetFloat("uOpacity", r.config.GroundOpacity)
	r.shadowMap.BindTexture(gl.TEXTURE1)

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.DepthMask(false)
	gl.BindVertexArray(r.groundVAO)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
	gl.DepthMask(true)
	gl.Disable(gl.BLEND)
}

func (r *Renderer) drawBounds(b scene.Bounds, viewProj mgl32.Mat4) {
	vertices := boundsLines(b)
	if len(vertices) == 0 {
		return
	}
	p := r.lineProgram
	p.Use()
	p.SetMat4("uViewProj", viewProj)
	p.SetVec4("uColor", r.config.BoundsColor)

	gl.BindBuffer(gl.ARRAY_BUFFER, r.lineVBO)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(vertices)*4, gl.Ptr(vertices))
	gl.BindVertexArray(r.lineVAO)
	gl.DrawArrays(gl.LINES, 0, int32(len(vertices)/3))
}

func (r *Renderer) createGround() {
	quad := []float32{
		-1, 0, -1, -1, 0, 1, 1, 0, 1,
		-1, 0, -1, 1, 0, 1, 1, 0, -1,
	}
	gl.GenVertexArrays(1, &r.groundVAO)
	gl.GenBuffers(1, &r.groundVBO)
	gl.BindVertexArray(r.groundVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.groundVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(quad)*4, gl.Ptr(quad), gl.STATIC_DRAW)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)
	gl.EnableVertexAttribArray(0)
	gl.BindVertexArray(0)
}

func (r *Renderer) createLines() {
	gl.GenVertexArrays(1, &r.lineVAO)
	gl.GenBuffers(1, &r.lineVBO)
	gl.BindVertexArray(r.lineVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.lineVBO)
	gl.BufferData(gl.ARRAY_BUFFER, boundsVertexCount*3*4, nil, gl.DYNAMIC_DRAW)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)
	gl.EnableVertexAttribArray(0)
	gl.BindVertexArray(0)
}

// Release frees the GPU resources of meshes that are no longer drawn,
// such as the parts of a replaced model.
func (r *Renderer) Release(root *scene.Node) {
	if root == nil {
		return
	}
	for _, m := range root.Meshes() {
		if gm := r.meshes[m]; gm != nil {
			gm.destroy()
			delete(r.meshes, m)
		}
	}
}

// Close releases all GPU resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	for m, gm := range r.meshes {
		gm.destroy()
		delete(r.meshes, m)
	}
	for t, id := range r.textures {
		if id != 0 {
			gl.DeleteTextures(1, &id)
		}
		delete(r.textures, t)
	}
	if r.white != 0 {
		gl.DeleteTextures(1, &r.white)
		r.white = 0
	}
	for _, id := range []*uint32{&r.groundVAO, &r.lineVAO} {
		if *id != 0 {
			gl.DeleteVertexArrays(1, id)
			*id = 0
		}
	}
	for _, id := range []*uint32{&r.groundVBO, &r.lineVBO} {
		if *id != 0 {
			gl.DeleteBuffers(1, id)
			*id = 0
		}
	}
	for _, p := range []*shader.Program{r.partProgram, r.depthProgram, r.groundProgram, r.lineProgram} {
		if p != nil {
			p.Delete()
		}
	}
	if r.shadowMap != nil {
		r.shadowMap.Destroy()
	}
	if r.target != nil {
		r.target.Destroy()
	}
}
