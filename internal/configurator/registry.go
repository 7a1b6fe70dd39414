package configurator

import (
	"github.com/Faultbox/padforge/internal/engine/scene"
)

// Registry maps part names to meshes in traversal order.
// It does not own the meshes; the scene does.
type Registry struct {
	names  []string
	meshes map[string]*scene.Mesh
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{meshes: make(map[string]*scene.Mesh)}
}

// Add registers mesh under name. A repeated name keeps its first position
// and points at the latest mesh.
func (r *Registry) Add(name string, mesh *scene.Mesh) {
	if _, ok := r.meshes[name]; !ok {
		r.names = append(r.names, name)
	}
	r.meshes[name] = mesh
}

// Get returns the mesh registered under name.
func (r *Registry) Get(name string) (*scene.Mesh, bool) {
	m, ok := r.meshes[name]
	return m, ok
}

// Names returns the part names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Len returns the number of registered parts.
func (r *Registry) Len() int {
	return len(r.names)
}

// Meshes returns the registered meshes in registration order.
func (r *Registry) Meshes() []*scene.Mesh {
	out := make([]*scene.Mesh, 0, len(r.names))
	for _, n := range r.names {
		out = append(out, r.meshes[n])
	}
	return out
}

// Materials holds a private copy of each part's material as it was when
// the registry was built. Entries are clones, so resetting one part never
// observes edits made to another part that shared the same source material.
type Materials struct {
	originals map[string]*scene.Material
}

// NewMaterials creates an empty materials registry.
func NewMaterials() *Materials {
	return &Materials{originals: make(map[string]*scene.Material)}
}

// Capture stores a clone of mat as the original material of name.
func (m *Materials) Capture(name string, mat *scene.Material) {
	if mat == nil {
		return
	}
	m.originals[name] = mat.Clone()
}

// Original returns the captured material of name.
func (m *Materials) Original(name string) (*scene.Material, bool) {
	mat, ok := m.originals[name]
	return mat, ok
}

// Len returns the number of captured materials.
func (m *Materials) Len() int {
	return len(m.originals)
}

// Build walks root and registers every named mesh node.
//
// Each registered mesh gets its own material instance so that recoloring
// one part cannot bleed into another part loaded with a shared material.
// Entries in overrides replace the loaded material of the matching part
// before the original is captured; the override itself is cloned.
func Build(root *scene.Node, overrides map[string]*scene.Material) (*Registry, *Materials) {
	reg := NewRegistry()
	mats := NewMaterials()
	if root == nil {
		return reg, mats
	}

	root.Walk(func(n *scene.Node) bool {
		if n.Kind == scene.KindMesh && n.Mesh != nil && n.Name != "" {
			reg.Add(n.Name, n.Mesh)
		}
		return true
	})

	for _, name := range reg.names {
		mesh := reg.meshes[name]
		if o, ok := overrides[name]; ok && o != nil {
			mesh.Material = o.Clone()
		} else if mesh.Material != nil {
			mesh.Material = mesh.Material.Clone()
		}
		mats.Capture(name, mesh.Material)
	}

	return reg, mats
}
