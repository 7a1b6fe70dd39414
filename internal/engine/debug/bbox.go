package debug

import "github.com/Faultbox/padforge/internal/engine/scene"

// BBoxWireframeVertexCount is the number of vertices for a bbox wireframe (12 edges × 2).
const BBoxWireframeVertexCount = 24

// DefaultBBoxPadding is the default padding for selection boxes, in model units.
const DefaultBBoxPadding = 0.01

// BoundsWireframe returns line-list vertices [x, y, z] outlining b grown by
// padding on every side. Empty bounds give nil.
func BoundsWireframe(b scene.Bounds, padding float32) []float32 {
	if b.Empty() {
		return nil
	}
	lo := b.Min
	hi := b.Max
	for i := 0; i < 3; i++ {
		lo[i] -= padding
		hi[i] += padding
	}
	return GenerateBBoxWireframeVertices(lo[0], lo[1], lo[2], hi[0], hi[1], hi[2])
}

// GenerateBBoxWireframeVertices creates line vertices for a wireframe box.
func GenerateBBoxWireframeVertices(minX, minY, minZ, maxX, maxY, maxZ float32) []float32 {
	return []float32{
		// Bottom face
		minX, minY, minZ, maxX, minY, minZ,
		maxX, minY, minZ, maxX, minY, maxZ,
		maxX, minY, maxZ, minX, minY, maxZ,
		minX, minY, maxZ, minX, minY, minZ,
		// Top face
		minX, maxY, minZ, maxX, maxY, minZ,
		maxX, maxY, minZ, maxX, maxY, maxZ,
		maxX, maxY, maxZ, minX, maxY, maxZ,
		minX, maxY, maxZ, minX, maxY, minZ,
		// Verticals
		minX, minY, minZ, minX, maxY, minZ,
		maxX, minY, minZ, maxX, maxY, minZ,
		maxX, minY, maxZ, maxX, maxY, maxZ,
		minX, minY, maxZ, minX, maxY, maxZ,
	}
}
