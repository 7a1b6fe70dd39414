package scene

import "github.com/go-gl/mathgl/mgl32"

// NodeKind tags what a node carries. It is decided once when the tree is built.
type NodeKind int

const (
	KindGroup NodeKind = iota
	KindMesh
	KindOther
)

func (k NodeKind) String() string {
	switch k {
	case KindGroup:
		return "group"
	case KindMesh:
		return "mesh"
	default:
		return "other"
	}
}

// Node is one element of the scene graph.
type Node struct {
	Name     string
	Kind     NodeKind
	Local    mgl32.Mat4
	Mesh     *Mesh // non-nil only for KindMesh
	Children []*Node

	parent *Node
}

// NewGroup creates an empty group node with an identity transform.
func NewGroup(name string) *Node {
	return &Node{Name: name, Kind: KindGroup, Local: mgl32.Ident4()}
}

// NewMeshNode wraps a mesh in a node. The mesh name follows the node name.
func NewMeshNode(name string, mesh *Mesh) *Node {
	n := &Node{Name: name, Kind: KindMesh, Local: mgl32.Ident4(), Mesh: mesh}
	mesh.Name = name
	mesh.node = n
	return n
}

// Add appends child to n and returns child.
func (n *Node) Add(child *Node) *Node {
	child.parent = n
	n.Children = append(n.Children, child)
	return child
}

// Parent returns the parent node, or nil for a root.
func (n *Node) Parent() *Node {
	return n.parent
}

// World returns the node transform in world space.
func (n *Node) World() mgl32.Mat4 {
	m := n.Local
	for p := n.parent; p != nil; p = p.parent {
		m = p.Local.Mul4(m)
	}
	return m
}

// Walk visits n and its descendants depth-first, parents before children,
// children in insertion order. Returning false from fn skips the subtree.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Meshes returns every mesh in the subtree in traversal order.
func (n *Node) Meshes() []*Mesh {
	var out []*Mesh
	n.Walk(func(node *Node) bool {
		if node.Kind == KindMesh && node.Mesh != nil {
			out = append(out, node.Mesh)
		}
		return true
	})
	return out
}

// Find returns the first node with the given name, or nil.
func (n *Node) Find(name string) *Node {
	var found *Node
	n.Walk(func(node *Node) bool {
		if found != nil {
			return false
		}
		if node.Name == name {
			found = node
			return false
		}
		return true
	})
	return found
}
