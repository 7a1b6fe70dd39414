package picking

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/padforge/internal/engine/scene"
)

// Hit is the nearest intersection of a ray with a mesh.
type Hit struct {
	Mesh     *scene.Mesh
	Distance float32
	Point    mgl32.Vec3
}

// Name returns the name of the hit mesh.
func (h Hit) Name() string {
	if h.Mesh == nil {
		return ""
	}
	return h.Mesh.Name
}

// Pick returns the mesh whose geometry r hits first. Meshes are culled by
// their world bounds before triangles are tested in local space.
func Pick(r Ray, meshes []*scene.Mesh) (Hit, bool) {
	var best Hit
	found := false

	for _, m := range meshes {
		if m == nil || m.Geometry == nil {
			continue
		}
		if _, ok := r.IntersectAABB(m.WorldBounds()); !ok {
			continue
		}

		t, ok := intersectMesh(r, m)
		if !ok || (found && t >= best.Distance) {
			continue
		}
		best = Hit{Mesh: m, Distance: t, Point: r.At(t)}
		found = true
	}
	return best, found
}

// PickNode is Pick over every mesh under root.
func PickNode(r Ray, root *scene.Node) (Hit, bool) {
	if root == nil {
		return Hit{}, false
	}
	return Pick(r, root.Meshes())
}

// intersectMesh tests every triangle of m. The ray is moved into mesh
// space without renormalizing so t stays a world-space distance.
func intersectMesh(r Ray, m *scene.Mesh) (float32, bool) {
	world := m.WorldMatrix()
	if world.Det() == 0 {
		return 0, false
	}
	inv := world.Inv()
	local := Ray{
		Origin:    mgl32.TransformCoordinate(r.Origin, inv),
		Direction: mgl32.TransformNormal(r.Direction, inv),
	}

	g := m.Geometry
	best := float32(0)
	found := false
	for i := 0; i < g.TriangleCount(); i++ {
		a, b, c := g.Triangle(i)
		if t, ok := local.IntersectTriangle(a, b, c); ok && (!found || t < best) {
			best = t
			found = true
		}
	}
	return best, found
}
