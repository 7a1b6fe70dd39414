package renderer

import (
	"slices"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/padforge/internal/engine/debug"
	"github.com/Faultbox/padforge/internal/engine/scene"
)

const boundsVertexCount = debug.BBoxWireframeVertexCount

// drawItem is a mesh queued for drawing with its squared view distance.
type drawItem struct {
	mesh  *scene.Mesh
	depth float32
}

// buildDrawList splits meshes into opaque ones in tree order and
// transparent ones sorted back to front from eye.
func buildDrawList(meshes []*scene.Mesh, eye mgl32.Vec3) (opaque, transparent []drawItem) {
	for _, m := range meshes {
		if m == nil || m.Geometry == nil || m.Material == nil {
			continue
		}
		if m.Material.Transparent {
			c := m.WorldBounds().Center()
			d := c.Sub(eye)
			transparent = append(transparent, drawItem{mesh: m, depth: d.Dot(d)})
			continue
		}
		opaque = append(opaque, drawItem{mesh: m})
	}
	slices.SortStableFunc(transparent, func(a, b drawItem) int {
		switch {
		case a.depth > b.depth:
			return -1
		case a.depth < b.depth:
			return 1
		}
		return 0
	})
	return opaque, transparent
}

// interleave packs geometry as position, normal, uv per vertex.
// Missing normals default to +Y and missing uvs to zero.
func interleave(g *scene.Geometry) []float32 {
	if g == nil || len(g.Positions) == 0 {
		return nil
	}
	out := make([]float32, 0, len(g.Positions)*floatsPerVertex)
	for i, p := range g.Positions {
		n := [3]float32{0, 1, 0}
		if i < len(g.Normals) {
			n = g.Normals[i]
		}
		var uv [2]float32
		if i < len(g.UVs) {
			uv = g.UVs[i]
		}
		out = append(out, p[0], p[1], p[2], n[0], n[1], n[2], uv[0], uv[1])
	}
	return out
}

// normalMatrix returns the inverse transpose of the upper 3x3 of model.
func normalMatrix(model mgl32.Mat4) mgl32.Mat3 {
	m := model.Mat3()
	if m.Det() == 0 {
		return mgl32.Ident3()
	}
	return m.Inv().Transpose()
}

// boundsLines returns the line list of the selection box.
func boundsLines(b scene.Bounds) []float32 {
	if b.Empty() {
		return nil
	}
	return debug.BoundsWireframe(b, debug.DefaultBBoxPadding)
}
