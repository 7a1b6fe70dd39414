package camera

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/padforge/internal/engine/scene"
)

func approx(a, b float32) bool {
	return math32.Abs(a-b) < 1e-4
}

func TestPositionAxes(t *testing.T) {
	tests := []struct {
		name       string
		yaw, pitch float32
		want       mgl32.Vec3
	}{
		{"front", 0, 0, mgl32.Vec3{0, 0, 3}},
		{"right", math32.Pi / 2, 0, mgl32.Vec3{3, 0, 0}},
		{"above", 0, math32.Pi / 2, mgl32.Vec3{0, 3, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &OrbitCamera{Distance: 3, Yaw: tt.yaw, Pitch: tt.pitch}
			if got := c.Position(); !got.ApproxEqualThreshold(tt.want, 1e-4) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestLookFromClampsDistance(t *testing.T) {
	c := NewOrbitCamera()
	c.LookFrom(mgl32.Vec3{0, 2, 5}, mgl32.Vec3{0, 1.5, 0})

	// The start position is just over 5 units away.
	if c.Distance != 5 {
		t.Errorf("expected distance clamped to 5, got %v", c.Distance)
	}
	if !approx(c.Yaw, 0) {
		t.Errorf("expected yaw 0, got %v", c.Yaw)
	}
	wantPitch := math32.Asin(0.5 / math32.Sqrt(25.25))
	if !approx(c.Pitch, wantPitch) {
		t.Errorf("expected pitch %v, got %v", wantPitch, c.Pitch)
	}

	dir := c.Position().Sub(c.Target).Normalize()
	want := mgl32.Vec3{0, 0.5, 5}.Normalize()
	if !dir.ApproxEqualThreshold(want, 1e-4) {
		t.Errorf("expected direction %v, got %v", want, dir)
	}
}

func TestLookFromInsideRange(t *testing.T) {
	c := NewOrbitCamera()
	pos := mgl32.Vec3{3, 1.5, 0}
	c.LookFrom(pos, mgl32.Vec3{0, 1.5, 0})
	if got := c.Position(); !got.ApproxEqualThreshold(pos, 1e-4) {
		t.Errorf("expected %v, got %v", pos, got)
	}
}

func TestZoomClamps(t *testing.T) {
	c := NewOrbitCamera()
	for i := 0; i < 50; i++ {
		c.HandleZoom(1)
	}
	if c.Distance != c.MinDistance {
		t.Errorf("expected min distance %v, got %v", c.MinDistance, c.Distance)
	}
	for i := 0; i < 50; i++ {
		c.HandleZoom(-1)
	}
	if c.Distance != c.MaxDistance {
		t.Errorf("expected max distance %v, got %v", c.MaxDistance, c.Distance)
	}
}

func TestDragWithoutDamping(t *testing.T) {
	c := NewOrbitCamera()
	c.Damping = 0
	c.HandleDrag(100, 0)
	if !approx(c.Yaw, -0.5) {
		t.Errorf("expected yaw -0.5, got %v", c.Yaw)
	}
	if c.Update() {
		t.Error("undamped camera should not report motion")
	}
}

func TestDragDampingConverges(t *testing.T) {
	c := NewOrbitCamera()
	c.Damping = 0.1
	c.HandleDrag(-100, 0)

	if c.Yaw != 0 {
		t.Errorf("damped drag must not rotate before Update, yaw %v", c.Yaw)
	}

	c.Update()
	if !approx(c.Yaw, 0.05) {
		t.Errorf("expected first step 0.05, got %v", c.Yaw)
	}

	frames := 1
	for c.Update() {
		frames++
		if frames > 1000 {
			t.Fatal("damping did not settle")
		}
	}
	if math32.Abs(c.Yaw-0.5) > 1e-3 {
		t.Errorf("expected total rotation 0.5, got %v", c.Yaw)
	}
}

func TestPitchClamps(t *testing.T) {
	c := NewOrbitCamera()
	c.Damping = 0
	c.HandleDrag(0, 10000)
	if c.Pitch != c.MaxPitch {
		t.Errorf("expected max pitch %v, got %v", c.MaxPitch, c.Pitch)
	}
	c.HandleDrag(0, -20000)
	if c.Pitch != c.MinPitch {
		t.Errorf("expected min pitch %v, got %v", c.MinPitch, c.Pitch)
	}
}

func TestViewMatrixLooksAtTarget(t *testing.T) {
	c := NewOrbitCamera()
	c.LookFrom(mgl32.Vec3{0, 1.5, 4}, mgl32.Vec3{0, 1.5, 0})

	got := mgl32.TransformCoordinate(c.Target, c.ViewMatrix())
	if !got.ApproxEqualThreshold(mgl32.Vec3{0, 0, -4}, 1e-4) {
		t.Errorf("expected target at (0,0,-4) in view space, got %v", got)
	}
}

func TestProjectionMatrix(t *testing.T) {
	c := NewOrbitCamera()
	p := c.ProjectionMatrix(16.0 / 9.0)

	// A point on the near plane maps to depth -1.
	near := mgl32.TransformCoordinate(mgl32.Vec3{0, 0, -c.Near}, p)
	if !approx(near.Z(), -1) {
		t.Errorf("expected near depth -1, got %v", near.Z())
	}

	if c.ProjectionMatrix(0) != c.ProjectionMatrix(1) {
		t.Error("zero aspect should fall back to 1")
	}
}

func TestFitToBounds(t *testing.T) {
	c := NewOrbitCamera()
	c.MaxDistance = 100
	c.FitToBounds(scene.Bounds{Min: mgl32.Vec3{-1, 0, -1}, Max: mgl32.Vec3{1, 2, 1}})

	if !c.Target.ApproxEqual(mgl32.Vec3{0, 1, 0}) {
		t.Errorf("expected target at center, got %v", c.Target)
	}
	want := math32.Sqrt(3) / math32.Sin(mgl32.DegToRad(c.FOV)/2)
	if !approx(c.Distance, want) {
		t.Errorf("expected distance %v, got %v", want, c.Distance)
	}

	before := *c
	c.FitToBounds(scene.EmptyBounds())
	if c.Target != before.Target || c.Distance != before.Distance {
		t.Error("empty bounds must not move the camera")
	}
}
