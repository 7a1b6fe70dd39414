package renderer

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/padforge/internal/engine/lighting"
	"github.com/Faultbox/padforge/internal/engine/scene"
	"github.com/Faultbox/padforge/pkg/paint"
)

func TestParseToneMapping(t *testing.T) {
	tests := []struct {
		in      string
		want    ToneMapping
		wantErr bool
	}{
		{"aces", ToneMappingACES, false},
		{" ACES ", ToneMappingACES, false},
		{"", ToneMappingACES, false},
		{"none", ToneMappingNone, false},
		{"reinhard", ToneMappingNone, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseToneMapping(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("unexpected error state: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func box(name string, z float32, transparent bool) *scene.Node {
	geom := &scene.Geometry{
		Positions: [][3]float32{{-0.5, -0.5, z}, {0.5, -0.5, z}, {0, 0.5, z}},
	}
	mat := scene.NewMaterial(name, paint.White)
	mat.Transparent = transparent
	return scene.NewMeshNode(name, scene.NewMesh(geom, mat))
}

func names(items []drawItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.mesh.Name
	}
	return out
}

func TestBuildDrawList(t *testing.T) {
	root := scene.NewGroup("root")
	root.Add(box("shell", 0, false))
	root.Add(box("glass_near", 2, true))
	root.Add(box("glass_far", -3, true))
	root.Add(box("button", 1, false))
	root.Add(scene.NewMeshNode("empty", scene.NewMesh(nil, scene.NewMaterial("empty", paint.White))))

	opaque, transparent := buildDrawList(root.Meshes(), mgl32.Vec3{0, 0, 5})

	if got := names(opaque); len(got) != 2 || got[0] != "shell" || got[1] != "button" {
		t.Errorf("opaque meshes must keep tree order, got %v", got)
	}
	if got := names(transparent); len(got) != 2 || got[0] != "glass_far" || got[1] != "glass_near" {
		t.Errorf("transparent meshes must be back to front, got %v", got)
	}
}

func TestInterleave(t *testing.T) {
	g := &scene.Geometry{
		Positions: [][3]float32{{1, 2, 3}, {4, 5, 6}},
		Normals:   [][3]float32{{0, 0, 1}},
		UVs:       [][2]float32{{0.25, 0.75}, {1, 1}},
	}
	got := interleave(g)
	want := []float32{
		1, 2, 3, 0, 0, 1, 0.25, 0.75,
		4, 5, 6, 0, 1, 0, 1, 1,
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d floats, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("float %d: expected %v, got %v", i, want[i], got[i])
		}
	}

	if interleave(nil) != nil || interleave(&scene.Geometry{}) != nil {
		t.Error("empty geometry must interleave to nil")
	}
}

func TestNormalMatrix(t *testing.T) {
	model := mgl32.Translate3D(3, 0, 0).Mul4(mgl32.Scale3D(2, 1, 1))
	n := normalMatrix(model)

	// A normal along X stays along X under non-uniform scale.
	got := n.Mul3x1(mgl32.Vec3{1, 0, 0}).Normalize()
	if !got.ApproxEqualThreshold(mgl32.Vec3{1, 0, 0}, 1e-5) {
		t.Errorf("unexpected normal %v", got)
	}

	if normalMatrix(mgl32.Scale3D(0, 1, 1)) != mgl32.Ident3() {
		t.Error("singular model should fall back to identity")
	}
}

func TestBoundsLines(t *testing.T) {
	b := scene.Bounds{Min: mgl32.Vec3{0, 0, 0}, Max: mgl32.Vec3{1, 1, 1}}
	if got := len(boundsLines(b)); got != boundsVertexCount*3 {
		t.Errorf("expected %d floats, got %d", boundsVertexCount*3, got)
	}
	if boundsLines(scene.EmptyBounds()) != nil {
		t.Error("empty bounds must produce no lines")
	}
}

func TestShadowCaster(t *testing.T) {
	rig := &lighting.Rig{Lights: []lighting.DirectionalLight{
		{Name: "fill"},
		{Name: "main", CastShadow: true},
		{Name: "rim", CastShadow: true},
	}}
	l, idx, ok := shadowCaster(rig)
	if !ok || l.Name != "main" || idx != 1 {
		t.Errorf("expected main at 1, got %q at %d (ok=%v)", l.Name, idx, ok)
	}

	// A caster beyond the light buffer is never uploaded.
	far := &lighting.Rig{Lights: make([]lighting.DirectionalLight, lighting.MaxLights+1)}
	far.Lights[lighting.MaxLights].CastShadow = true
	if _, _, ok := shadowCaster(far); ok {
		t.Error("caster beyond MaxLights must be ignored")
	}
}
