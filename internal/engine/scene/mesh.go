// Package scene provides the node tree, meshes and materials of a loaded model.
package scene

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Geometry holds triangle data on the CPU.
type Geometry struct {
	Positions [][3]float32
	Normals   [][3]float32
	UVs       [][2]float32
	Indices   []uint32
}

// Bounds is an axis-aligned box.
type Bounds struct {
	Min, Max mgl32.Vec3
}

// Empty reports whether the bounds contain no points.
func (b Bounds) Empty() bool {
	return b.Min[0] > b.Max[0]
}

// Center returns the middle of the box.
func (b Bounds) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Union returns the box enclosing both b and o.
func (b Bounds) Union(o Bounds) Bounds {
	if b.Empty() {
		return o
	}
	if o.Empty() {
		return b
	}
	for i := 0; i < 3; i++ {
		b.Min[i] = min(b.Min[i], o.Min[i])
		b.Max[i] = max(b.Max[i], o.Max[i])
	}
	return b
}

// Transform returns the box enclosing the eight transformed corners of b.
func (b Bounds) Transform(m mgl32.Mat4) Bounds {
	if b.Empty() {
		return b
	}
	out := EmptyBounds()
	for i := 0; i < 8; i++ {
		corner := mgl32.Vec3{b.Min[0], b.Min[1], b.Min[2]}
		if i&1 != 0 {
			corner[0] = b.Max[0]
		}
		if i&2 != 0 {
			corner[1] = b.Max[1]
		}
		if i&4 != 0 {
			corner[2] = b.Max[2]
		}
		out = out.Extend(mgl32.TransformCoordinate(corner, m))
	}
	return out
}

// Extend grows the box to contain p.
func (b Bounds) Extend(p mgl32.Vec3) Bounds {
	if b.Empty() {
		return Bounds{Min: p, Max: p}
	}
	for i := 0; i < 3; i++ {
		b.Min[i] = min(b.Min[i], p[i])
		b.Max[i] = max(b.Max[i], p[i])
	}
	return b
}

// EmptyBounds returns a box that contains nothing.
func EmptyBounds() Bounds {
	return Bounds{Min: mgl32.Vec3{1, 1, 1}, Max: mgl32.Vec3{-1, -1, -1}}
}

// Bounds returns the local-space bounding box of the geometry.
func (g *Geometry) Bounds() Bounds {
	b := EmptyBounds()
	for _, p := range g.Positions {
		b = b.Extend(mgl32.Vec3(p))
	}
	return b
}

// TriangleCount returns the number of indexed triangles.
func (g *Geometry) TriangleCount() int {
	if len(g.Indices) > 0 {
		return len(g.Indices) / 3
	}
	return len(g.Positions) / 3
}

// Triangle returns the three local-space vertices of triangle i.
func (g *Geometry) Triangle(i int) (a, b, c mgl32.Vec3) {
	if len(g.Indices) > 0 {
		return g.Positions[g.Indices[i*3]], g.Positions[g.Indices[i*3+1]], g.Positions[g.Indices[i*3+2]]
	}
	return g.Positions[i*3], g.Positions[i*3+1], g.Positions[i*3+2]
}

// Mesh is a renderable piece of geometry with one material.
type Mesh struct {
	Name          string
	Geometry      *Geometry
	Material      *Material
	CastShadow    bool
	ReceiveShadow bool

	node   *Node
	bounds *Bounds
}

// NewMesh creates a mesh. It becomes part of a tree once wrapped by NewMeshNode.
func NewMesh(geom *Geometry, mat *Material) *Mesh {
	return &Mesh{Geometry: geom, Material: mat}
}

// Node returns the node that owns the mesh.
func (m *Mesh) Node() *Node {
	return m.node
}

// WorldMatrix returns the model matrix of the mesh.
func (m *Mesh) WorldMatrix() mgl32.Mat4 {
	if m.node == nil {
		return mgl32.Ident4()
	}
	return m.node.World()
}

// LocalBounds returns the cached local-space bounds.
func (m *Mesh) LocalBounds() Bounds {
	if m.bounds == nil {
		b := EmptyBounds()
		if m.Geometry != nil {
			b = m.Geometry.Bounds()
		}
		m.bounds = &b
	}
	return *m.bounds
}

// WorldBounds returns the bounds transformed into world space.
func (m *Mesh) WorldBounds() Bounds {
	return m.LocalBounds().Transform(m.WorldMatrix())
}

// TreeBounds returns the world bounds of every mesh under root.
func TreeBounds(root *Node) Bounds {
	b := EmptyBounds()
	for _, m := range root.Meshes() {
		b = b.Union(m.WorldBounds())
	}
	return b
}
