package configurator

import (
	"testing"

	"github.com/Faultbox/padforge/internal/engine/scene"
	"github.com/Faultbox/padforge/pkg/paint"
)

func TestBuildRegistryOrderAndKinds(t *testing.T) {
	root := scene.NewGroup("Scene")
	body := root.Add(scene.NewGroup("body"))
	body.Add(scene.NewMeshNode("shell_bottom", scene.NewMesh(&scene.Geometry{}, scene.NewMaterial("m", paint.Black))))
	body.Add(&scene.Node{Name: "camera_rig", Kind: scene.KindOther})
	root.Add(scene.NewMeshNode("d-pad", scene.NewMesh(&scene.Geometry{}, scene.NewMaterial("m", paint.Black))))
	root.Add(scene.NewMeshNode("", scene.NewMesh(&scene.Geometry{}, scene.NewMaterial("m", paint.Black))))

	reg, mats := Build(root, nil)

	names := reg.Names()
	if len(names) != 2 || names[0] != "shell_bottom" || names[1] != "d-pad" {
		t.Fatalf("expected [shell_bottom d-pad], got %v", names)
	}
	if _, ok := reg.Get("body"); ok {
		t.Error("group nodes must not be registered")
	}
	if _, ok := reg.Get("camera_rig"); ok {
		t.Error("non-mesh nodes must not be registered")
	}
	if mats.Len() != 2 {
		t.Errorf("expected 2 captured materials, got %d", mats.Len())
	}
	if len(reg.Meshes()) != 2 {
		t.Errorf("expected 2 meshes, got %d", len(reg.Meshes()))
	}
}

func TestRegistryDuplicateNames(t *testing.T) {
	first := scene.NewMesh(&scene.Geometry{}, nil)
	second := scene.NewMesh(&scene.Geometry{}, nil)

	reg := NewRegistry()
	reg.Add("a", first)
	reg.Add("b", scene.NewMesh(&scene.Geometry{}, nil))
	reg.Add("a", second)

	names := reg.Names()
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Fatalf("expected [a b], got %v", names)
	}
	if m, _ := reg.Get("a"); m != second {
		t.Error("expected the last mesh to win")
	}
}

func TestBuildClonesOriginals(t *testing.T) {
	shared := scene.NewMaterial("plastic", paint.MustParseHex("#c3c2c7"))
	root := scene.NewGroup("Scene")
	root.Add(scene.NewMeshNode("a", scene.NewMesh(&scene.Geometry{}, shared)))
	root.Add(scene.NewMeshNode("b", scene.NewMesh(&scene.Geometry{}, shared)))

	reg, mats := Build(root, nil)
	a, _ := reg.Get("a")
	b, _ := reg.Get("b")
	if a.Material == b.Material || a.Material == shared {
		t.Fatal("each part should own its material")
	}

	orig, ok := mats.Original("a")
	if !ok {
		t.Fatal("expected original for a")
	}
	if orig == a.Material {
		t.Error("original must be a clone, not the live material")
	}
	a.Material.Color = paint.White
	if orig.Color != paint.MustParseHex("#c3c2c7") {
		t.Error("live edit leaked into the captured original")
	}
}

func TestBuildAppliesOverridesBeforeCapture(t *testing.T) {
	glass := &scene.Material{Name: "glass", Color: paint.White, Opacity: 1, Transparent: true, Transmission: 1}
	root := scene.NewGroup("Scene")
	root.Add(scene.NewMeshNode("button_outer", scene.NewMesh(&scene.Geometry{}, scene.NewMaterial("m", paint.Black))))

	reg, mats := Build(root, map[string]*scene.Material{"button_outer": glass})

	m, _ := reg.Get("button_outer")
	if !m.Material.Transparent || m.Material == glass {
		t.Error("expected a private copy of the glass override")
	}
	orig, _ := mats.Original("button_outer")
	if !orig.Transparent || orig.Transmission != 1 {
		t.Error("original should be captured after the override")
	}
}

func TestBuildNilRoot(t *testing.T) {
	reg, mats := Build(nil, nil)
	if reg.Len() != 0 || mats.Len() != 0 {
		t.Error("expected empty registries")
	}
}

func TestMaterialsIgnoreNil(t *testing.T) {
	mats := NewMaterials()
	mats.Capture("a", nil)
	if _, ok := mats.Original("a"); ok {
		t.Error("nil material should not be captured")
	}
}
