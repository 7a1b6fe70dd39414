package renderer

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/padforge/internal/engine/scene"
)

// floatsPerVertex is position(3) + normal(3) + uv(2).
const floatsPerVertex = 8

// gpuMesh holds the buffers of one uploaded mesh.
type gpuMesh struct {
	vao, vbo, ebo uint32
	indexCount    int32
	vertexCount   int32
}

// prepare uploads m on first use.
func (r *Renderer) prepare(m *scene.Mesh) {
	if _, ok := r.meshes[m]; ok || m.Geometry == nil {
		return
	}
	gm := uploadMesh(m.Geometry)
	r.meshes[m] = gm
	if gm == nil {
		return
	}
	if m.Material != nil {
		r.texture(m.Material.Texture)
	}
}

func uploadMesh(g *scene.Geometry) *gpuMesh {
	vertices := interleave(g)
	if len(vertices) == 0 {
		return nil
	}
	gm := &gpuMesh{vertexCount: int32(len(g.Positions))}

	gl.GenVertexArrays(1, &gm.vao)
	gl.BindVertexArray(gm.vao)

	gl.GenBuffers(1, &gm.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, gm.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)

	if len(g.Indices) > 0 {
		gl.GenBuffers(1, &gm.ebo)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, gm.ebo)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(g.Indices)*4, gl.Ptr(g.Indices), gl.STATIC_DRAW)
		gm.indexCount = int32(len(g.Indices))
	}

	stride := int32(floatsPerVertex * 4)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, stride, 6*4)
	gl.EnableVertexAttribArray(2)

	gl.BindVertexArray(0)
	return gm
}

func (gm *gpuMesh) draw() {
	gl.BindVertexArray(gm.vao)
	if gm.indexCount > 0 {
		gl.DrawElementsWithOffset(gl.TRIANGLES, gm.indexCount, gl.UNSIGNED_INT, 0)
	} else {
		gl.DrawArrays(gl.TRIANGLES, 0, gm.vertexCount)
	}
}

func (gm *gpuMesh) destroy() {
	if gm == nil {
		return
	}
	if gm.vao != 0 {
		gl.DeleteVertexArrays(1, &gm.vao)
	}
	if gm.vbo != 0 {
		gl.DeleteBuffers(1, &gm.vbo)
	}
	if gm.ebo != 0 {
		gl.DeleteBuffers(1, &gm.ebo)
	}
}

// texture returns the GL texture for t, uploading it on first use.
// It returns 0 for a nil or empty texture.
func (r *Renderer) texture(t *scene.Texture) uint32 {
	if t == nil || t.Image == nil {
		return 0
	}
	if id, ok := r.textures[t]; ok {
		return id
	}
	b := t.Image.Bounds()
	var id uint32
	if b.Dx() > 0 && b.Dy() > 0 {
		id = uploadTexture(int32(b.Dx()), int32(b.Dy()), t.Image.Pix)
	}
	r.textures[t] = id
	return id
}

func uploadTexture(width, height int32, pix []byte) uint32 {
	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, width, height, 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pix))
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return id
}
