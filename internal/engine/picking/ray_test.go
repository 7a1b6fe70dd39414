package picking

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/padforge/internal/engine/scene"
	"github.com/Faultbox/padforge/pkg/paint"
)

func approx(a, b float32) bool {
	return math32.Abs(a-b) < 1e-4
}

func TestScreenToRayCenter(t *testing.T) {
	view := mgl32.LookAtV(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	proj := mgl32.Perspective(mgl32.DegToRad(60), 1, 0.1, 100)
	inv := proj.Mul4(view).Inv()

	r := ScreenToRay(400, 300, 800, 600, inv)
	if !r.Direction.ApproxEqualThreshold(mgl32.Vec3{0, 0, -1}, 1e-4) {
		t.Errorf("expected forward ray, got %v", r.Direction)
	}
	if !approx(r.Origin.Z(), 4.9) {
		t.Errorf("expected origin on near plane z=4.9, got %v", r.Origin)
	}
}

func TestScreenToRayCorner(t *testing.T) {
	view := mgl32.LookAtV(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	proj := mgl32.Perspective(mgl32.DegToRad(90), 1, 0.1, 100)
	inv := proj.Mul4(view).Inv()

	// Top-left pixel looks up and to the left.
	r := ScreenToRay(0, 0, 100, 100, inv)
	if r.Direction.X() >= 0 || r.Direction.Y() <= 0 {
		t.Errorf("expected up-left direction, got %v", r.Direction)
	}
	if !approx(r.Direction.Len(), 1) {
		t.Errorf("direction not normalized: %v", r.Direction.Len())
	}
}

func TestIntersectAABB(t *testing.T) {
	box := scene.Bounds{Min: mgl32.Vec3{-1, -1, -1}, Max: mgl32.Vec3{1, 1, 1}}

	tests := []struct {
		name  string
		ray   Ray
		wantT float32
		hit   bool
	}{
		{"front", Ray{mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, -1}}, 4, true},
		{"inside", Ray{mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 0, 0}}, 1, true},
		{"behind", Ray{mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, 1}}, 0, false},
		{"parallel outside", Ray{mgl32.Vec3{0, 2, 5}, mgl32.Vec3{0, 0, -1}}, 0, false},
		{"miss", Ray{mgl32.Vec3{3, 0, 5}, mgl32.Vec3{0, 0, -1}}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, hit := tt.ray.IntersectAABB(box)
			if hit != tt.hit {
				t.Fatalf("expected hit=%v, got %v", tt.hit, hit)
			}
			if hit && !approx(got, tt.wantT) {
				t.Errorf("expected t=%v, got %v", tt.wantT, got)
			}
		})
	}

	if _, hit := (Ray{mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, -1}}).IntersectAABB(scene.EmptyBounds()); hit {
		t.Error("empty bounds must never be hit")
	}
}

func TestIntersectTriangle(t *testing.T) {
	a := mgl32.Vec3{-1, -1, 0}
	b := mgl32.Vec3{1, -1, 0}
	c := mgl32.Vec3{0, 1, 0}

	tests := []struct {
		name  string
		ray   Ray
		wantT float32
		hit   bool
	}{
		{"front face", Ray{mgl32.Vec3{0, 0, 3}, mgl32.Vec3{0, 0, -1}}, 3, true},
		{"back face", Ray{mgl32.Vec3{0, 0, -2}, mgl32.Vec3{0, 0, 1}}, 2, true},
		{"outside edge", Ray{mgl32.Vec3{1, 1, 3}, mgl32.Vec3{0, 0, -1}}, 0, false},
		{"parallel", Ray{mgl32.Vec3{0, 0, 3}, mgl32.Vec3{1, 0, 0}}, 0, false},
		{"behind origin", Ray{mgl32.Vec3{0, 0, 3}, mgl32.Vec3{0, 0, 1}}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, hit := tt.ray.IntersectTriangle(a, b, c)
			if hit != tt.hit {
				t.Fatalf("expected hit=%v, got %v", tt.hit, hit)
			}
			if hit && !approx(got, tt.wantT) {
				t.Errorf("expected t=%v, got %v", tt.wantT, got)
			}
		})
	}
}

func quad(name string, z float32) *scene.Node {
	geom := &scene.Geometry{
		Positions: [][3]float32{{-1, -1, z}, {1, -1, z}, {1, 1, z}, {-1, 1, z}},
		Indices:   []uint32{0, 1, 2, 0, 2, 3},
	}
	return scene.NewMeshNode(name, scene.NewMesh(geom, scene.NewMaterial(name, paint.White)))
}

func TestPickNearest(t *testing.T) {
	root := scene.NewGroup("root")
	root.Add(quad("back", -1))
	root.Add(quad("front", 1))

	r := Ray{Origin: mgl32.Vec3{0, 0, 5}, Direction: mgl32.Vec3{0, 0, -1}}
	hit, ok := PickNode(r, root)
	if !ok {
		t.Fatal("expected a hit")
	}
	if hit.Name() != "front" {
		t.Errorf("expected front, got %q", hit.Name())
	}
	if !approx(hit.Distance, 4) {
		t.Errorf("expected distance 4, got %v", hit.Distance)
	}
	if !hit.Point.ApproxEqualThreshold(mgl32.Vec3{0, 0, 1}, 1e-4) {
		t.Errorf("unexpected hit point %v", hit.Point)
	}
}

func TestPickUsesWorldTransform(t *testing.T) {
	root := scene.NewGroup("root")
	moved := root.Add(quad("moved", 0))
	moved.Local = mgl32.Translate3D(5, 0, 0).Mul4(mgl32.Scale3D(2, 2, 2))

	r := Ray{Origin: mgl32.Vec3{6.5, 1.5, 5}, Direction: mgl32.Vec3{0, 0, -1}}
	hit, ok := PickNode(r, root)
	if !ok || hit.Name() != "moved" {
		t.Fatalf("expected to hit the scaled quad, got %+v ok=%v", hit, ok)
	}
	if !approx(hit.Distance, 5) {
		t.Errorf("expected world distance 5, got %v", hit.Distance)
	}

	r.Origin = mgl32.Vec3{0, 0, 5}
	if _, ok := PickNode(r, root); ok {
		t.Error("quad was moved away from the origin")
	}
}

func TestPickMissAndNil(t *testing.T) {
	r := Ray{Origin: mgl32.Vec3{0, 0, 5}, Direction: mgl32.Vec3{0, 1, 0}}
	if _, ok := PickNode(r, nil); ok {
		t.Error("nil root must not hit")
	}
	if _, ok := Pick(r, []*scene.Mesh{nil, scene.NewMesh(nil, nil)}); ok {
		t.Error("meshes without geometry must not hit")
	}

	root := scene.NewGroup("root")
	root.Add(quad("q", 0))
	if _, ok := PickNode(r, root); ok {
		t.Error("ray pointing away must miss")
	}
}
