package debug

import (
	"bytes"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/webp"

	"github.com/Faultbox/padforge/internal/engine/scene"
)

func fixedClock() time.Time {
	return time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)
}

func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 60), G: uint8(y * 200), B: 10, A: 255})
		}
	}
	return img
}

func TestFlipRGBA(t *testing.T) {
	// Two rows: bottom row red, top row blue, as OpenGL returns them.
	pixels := []byte{
		255, 0, 0, 255, // bottom
		0, 0, 255, 255, // top
	}
	img, err := FlipRGBA(pixels, 1, 2)
	if err != nil {
		t.Fatalf("FlipRGBA: %v", err)
	}
	if got := img.RGBAAt(0, 0); got.B != 255 {
		t.Errorf("expected blue on top, got %v", got)
	}
	if got := img.RGBAAt(0, 1); got.R != 255 {
		t.Errorf("expected red at bottom, got %v", got)
	}

	if _, err := FlipRGBA(pixels, 2, 2); err == nil {
		t.Error("expected size mismatch error")
	}
}

func TestCapturePNG(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	sc := NewScreenshotCapture(dir, "padforge", "bmp")
	sc.now = fixedClock
	if sc.Format() != FormatPNG {
		t.Fatalf("unknown format should fall back to png, got %q", sc.Format())
	}

	name, err := sc.CaptureFromImage(testImage())
	if err != nil {
		t.Fatalf("CaptureFromImage: %v", err)
	}
	if filepath.Base(name) != "padforge_2024-05-01_12-30-00.png" {
		t.Errorf("unexpected file name %q", name)
	}

	f, err := os.Open(name)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, format, err := image.Decode(f)
	if err != nil {
		t.Fatalf("decoding screenshot: %v", err)
	}
	if format != "png" || img.Bounds().Dx() != 4 {
		t.Errorf("unexpected %s image %v", format, img.Bounds())
	}
}

func TestCaptureDoesNotOverwrite(t *testing.T) {
	sc := NewScreenshotCapture(t.TempDir(), "pad", FormatPNG)
	sc.now = fixedClock

	first, err := sc.CaptureFromImage(testImage())
	if err != nil {
		t.Fatal(err)
	}
	second, err := sc.CaptureFromImage(testImage())
	if err != nil {
		t.Fatal(err)
	}
	if first == second {
		t.Fatalf("second capture overwrote %q", first)
	}
	if !strings.HasSuffix(second, "_1.png") {
		t.Errorf("expected numbered suffix, got %q", second)
	}
}

func TestEncodeWebP(t *testing.T) {
	sc := NewScreenshotCapture("", "pad", FormatWebP)

	var buf bytes.Buffer
	if err := sc.Encode(&buf, testImage()); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	img, err := webp.Decode(&buf)
	if err != nil {
		t.Fatalf("decoding webp: %v", err)
	}
	if img.Bounds().Dx() != 4 || img.Bounds().Dy() != 2 {
		t.Errorf("unexpected bounds %v", img.Bounds())
	}
	// Lossless: pixels survive.
	r, g, _, _ := img.At(3, 1).RGBA()
	if r>>8 != 180 || g>>8 != 200 {
		t.Errorf("unexpected pixel %d,%d", r>>8, g>>8)
	}
}

func TestCaptureFromPixelsRejectsBadSize(t *testing.T) {
	sc := NewScreenshotCapture(t.TempDir(), "pad", FormatPNG)
	if _, err := sc.CaptureFromPixels(make([]byte, 7), 1, 2); err == nil {
		t.Error("expected size error")
	}
}

func TestBoundsWireframe(t *testing.T) {
	if BoundsWireframe(scene.EmptyBounds(), 0) != nil {
		t.Error("empty bounds should give no vertices")
	}

	b := scene.Bounds{Min: mgl32.Vec3{0, 0, 0}, Max: mgl32.Vec3{1, 2, 3}}
	v := BoundsWireframe(b, 0.5)
	if len(v) != BBoxWireframeVertexCount*3 {
		t.Fatalf("expected %d floats, got %d", BBoxWireframeVertexCount*3, len(v))
	}
	if v[0] != -0.5 || v[1] != -0.5 || v[2] != -0.5 {
		t.Errorf("first vertex should be padded min, got %v", v[:3])
	}
	for i := 0; i < len(v); i += 3 {
		if v[i] > 1.5 || v[i+1] > 2.5 || v[i+2] > 3.5 {
			t.Fatalf("vertex %v outside padded box", v[i:i+3])
		}
	}
}
