package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/padforge/pkg/paint"
)

func cube() *Geometry {
	return &Geometry{
		Positions: [][3]float32{
			{-1, -1, -1}, {1, -1, -1}, {1, 1, -1},
			{-1, 1, 1}, {1, 1, 1}, {-1, -1, 1},
		},
		Indices: []uint32{0, 1, 2, 3, 4, 5},
	}
}

func TestWalkOrder(t *testing.T) {
	root := NewGroup("root")
	body := root.Add(NewGroup("body"))
	body.Add(NewMeshNode("shell", NewMesh(cube(), NewMaterial("m", paint.White))))
	body.Add(NewMeshNode("dpad", NewMesh(cube(), NewMaterial("m", paint.White))))
	root.Add(NewMeshNode("stick", NewMesh(cube(), NewMaterial("m", paint.White))))

	var names []string
	root.Walk(func(n *Node) bool {
		names = append(names, n.Name)
		return true
	})

	want := []string{"root", "body", "shell", "dpad", "stick"}
	if len(names) != len(want) {
		t.Fatalf("expected %v, got %v", want, names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], names[i])
		}
	}

	meshes := root.Meshes()
	if len(meshes) != 3 {
		t.Fatalf("expected 3 meshes, got %d", len(meshes))
	}
	if meshes[0].Name != "shell" || meshes[0].Node().Kind != KindMesh {
		t.Errorf("unexpected first mesh %q", meshes[0].Name)
	}
}

func TestWalkSkipsSubtree(t *testing.T) {
	root := NewGroup("root")
	hidden := root.Add(NewGroup("hidden"))
	hidden.Add(NewMeshNode("inner", NewMesh(cube(), nil)))

	visited := 0
	root.Walk(func(n *Node) bool {
		visited++
		return n.Name != "hidden"
	})
	if visited != 2 {
		t.Errorf("expected 2 visits, got %d", visited)
	}
	if root.Find("inner") == nil {
		t.Error("Find should locate nested node")
	}
	if root.Find("missing") != nil {
		t.Error("Find should return nil for unknown names")
	}
}

func TestWorldMatrix(t *testing.T) {
	root := NewGroup("root")
	root.Local = mgl32.Translate3D(0, 1.5, 0)
	child := root.Add(NewGroup("child"))
	child.Local = mgl32.Translate3D(2, 0, 0)
	mesh := NewMesh(cube(), nil)
	child.Add(NewMeshNode("part", mesh))

	p := mgl32.TransformCoordinate(mgl32.Vec3{0, 0, 0}, mesh.WorldMatrix())
	if !p.ApproxEqual(mgl32.Vec3{2, 1.5, 0}) {
		t.Errorf("expected (2, 1.5, 0), got %v", p)
	}

	wb := mesh.WorldBounds()
	if !wb.Min.ApproxEqual(mgl32.Vec3{1, 0.5, -1}) || !wb.Max.ApproxEqual(mgl32.Vec3{3, 2.5, 1}) {
		t.Errorf("unexpected world bounds %v", wb)
	}
}

func TestBounds(t *testing.T) {
	b := cube().Bounds()
	if b.Empty() {
		t.Fatal("expected non-empty bounds")
	}
	if b.Center() != (mgl32.Vec3{0, 0, 0}) {
		t.Errorf("expected centered cube, got %v", b.Center())
	}

	if !EmptyBounds().Empty() {
		t.Error("EmptyBounds should be empty")
	}
	u := EmptyBounds().Union(b)
	if u != b {
		t.Errorf("union with empty should return the other box, got %v", u)
	}

	if got := cube().TriangleCount(); got != 2 {
		t.Errorf("expected 2 triangles, got %d", got)
	}
	a, _, c := cube().Triangle(1)
	if a != (mgl32.Vec3{-1, 1, 1}) || c != (mgl32.Vec3{-1, -1, 1}) {
		t.Errorf("unexpected triangle vertices %v %v", a, c)
	}
}

func TestMaterialClone(t *testing.T) {
	tex := &Texture{Name: "logo"}
	orig := NewMaterial("shell", paint.MustParseHex("#4e4e4e"))
	orig.Texture = tex

	c := orig.Clone()
	c.Color = paint.White
	c.Roughness = 0.2

	if orig.Color != paint.MustParseHex("#4e4e4e") || orig.Roughness != 1 {
		t.Error("clone mutation leaked into original")
	}
	if c.Texture != tex {
		t.Error("clone should share the texture")
	}
}

func TestMaterialCopyFrom(t *testing.T) {
	glass := &Material{
		Name:         "glass",
		Color:        paint.White,
		Opacity:      1,
		Transparent:  true,
		Transmission: 1,
		Clearcoat:    1,
	}
	frost := &Texture{Name: "frost"}
	glass.Texture = frost
	logo := &Texture{Name: "logo"}
	orig := NewMaterial("button", paint.MustParseHex("#e86e61"))
	orig.Texture = logo

	if err := glass.CopyFrom(orig); err != nil {
		t.Fatalf("CopyFrom: %v", err)
	}
	if glass.Color != orig.Color {
		t.Errorf("expected color %v, got %v", orig.Color, glass.Color)
	}
	if glass.Transparent || glass.Transmission != 0 || glass.Clearcoat != 0 {
		t.Error("expected every property to be copied, including zero values")
	}
	if glass.Name != "button" {
		t.Errorf("expected name button, got %s", glass.Name)
	}
	if glass.Texture != logo || frost.Name != "frost" {
		t.Error("texture should be reassigned without touching the previous one")
	}
}

func TestMaterialAlpha(t *testing.T) {
	m := NewMaterial("m", paint.White)
	m.Opacity = 0.5
	if m.Alpha() != 1 {
		t.Error("opaque material should ignore opacity")
	}
	m.Transparent = true
	if m.Alpha() != 0.5 {
		t.Errorf("expected 0.5, got %f", m.Alpha())
	}
	m.Transmission = 1
	if a := m.Alpha(); a <= 0 || a >= 0.5 {
		t.Errorf("transmission should lower alpha, got %f", a)
	}
}
