package paint

import (
	"errors"
	"math"
	"testing"
)

func TestParseHex(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"#000000", Color{0, 0, 0}},
		{"#FFFFFF", Color{255, 255, 255}},
		{"#4e4e4e", Color{0x4e, 0x4e, 0x4e}},
		{"#089DA4", Color{0x08, 0x9d, 0xa4}},
		{"c0af9c", Color{0xc0, 0xaf, 0x9c}},
		{"0xE86E61", Color{0xe8, 0x6e, 0x61}},
		{"#abc", Color{0xaa, 0xbb, 0xcc}},
		{"  #010101 ", Color{1, 1, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHex(tt.in)
			if err != nil {
				t.Fatalf("ParseHex(%q) error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseHex(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseHexInvalid(t *testing.T) {
	for _, in := range []string{"", "#", "#12345", "#1234567", "#gggggg", "red"} {
		if _, err := ParseHex(in); !errors.Is(err, ErrInvalidColor) {
			t.Errorf("ParseHex(%q) error = %v, want ErrInvalidColor", in, err)
		}
	}
}

func TestHexIsLowercase(t *testing.T) {
	c := MustParseHex("#A8416B")
	if c.Hex() != "#a8416b" {
		t.Errorf("expected #a8416b, got %s", c.Hex())
	}
	if c.HexInt() != 0xA8416B {
		t.Errorf("expected 0xA8416B, got %#x", c.HexInt())
	}
	if FromHexInt(0xFFFFFF) != White {
		t.Error("expected 0xFFFFFF to be white")
	}
}

func TestFromFloatClamps(t *testing.T) {
	c := FromFloat(-1, 0.5, 2)
	if c.R != 0 || c.B != 255 {
		t.Errorf("expected clamped components, got %v", c)
	}
	if c.G != 128 {
		t.Errorf("expected G=128, got %d", c.G)
	}
}

func TestLinear(t *testing.T) {
	lin := White.Linear()
	for i, v := range lin {
		if math.Abs(float64(v-1)) > 1e-5 {
			t.Errorf("component %d: expected 1, got %f", i, v)
		}
	}
	if Black.Linear() != [3]float32{0, 0, 0} {
		t.Error("expected black to stay black")
	}
	mid := RGB(128, 128, 128).Linear()[0]
	if mid < 0.21 || mid > 0.22 {
		t.Errorf("expected sRGB 128 to be ~0.216 linear, got %f", mid)
	}
}

func TestDistance(t *testing.T) {
	if d := Distance(Black, White); math.Abs(d-math.Sqrt(3*255*255)) > 1e-9 {
		t.Errorf("unexpected black-white distance %f", d)
	}
	if d := Distance(RGB(1, 2, 3), RGB(1, 2, 3)); d != 0 {
		t.Errorf("expected zero distance, got %f", d)
	}
	if Distance(RGB(10, 0, 0), RGB(0, 0, 0)) != 10 {
		t.Error("expected distance 10")
	}
}

func mustPalette(t *testing.T, swatches ...Swatch) *Palette {
	t.Helper()
	p, err := NewPalette(swatches)
	if err != nil {
		t.Fatalf("NewPalette: %v", err)
	}
	return p
}

func TestClosestTieGoesToFirst(t *testing.T) {
	p := mustPalette(t,
		Swatch{Name: "A", Hex: "#000000"},
		Swatch{Name: "B", Hex: "#010101"},
	)
	if got := p.Closest(Black); got != 0 {
		t.Errorf("expected first swatch, got %d", got)
	}

	// #010101 is equidistant from both.
	q := mustPalette(t,
		Swatch{Name: "Low", Hex: "#000000"},
		Swatch{Name: "High", Hex: "#020202"},
	)
	if got := q.Closest(RGB(1, 1, 1)); got != 0 {
		t.Errorf("expected tie to go to first swatch, got %d", got)
	}
}

func TestClosest(t *testing.T) {
	p := mustPalette(t,
		Swatch{Name: "Black", Hex: "#000000"},
		Swatch{Name: "White", Hex: "#FFFFFF"},
		Swatch{Name: "Red", Hex: "#FF0000"},
	)

	tests := []struct {
		color Color
		want  int
	}{
		{RGB(20, 20, 20), 0},
		{RGB(240, 230, 250), 1},
		{RGB(200, 30, 10), 2},
	}
	for _, tt := range tests {
		if got := p.Closest(tt.color); got != tt.want {
			t.Errorf("Closest(%v) = %d, want %d", tt.color, got, tt.want)
		}
	}

	empty := mustPalette(t)
	if empty.Closest(White) != -1 {
		t.Error("expected -1 for empty palette")
	}
}

func TestMatchPrefersExact(t *testing.T) {
	p := mustPalette(t,
		Swatch{Name: "Near", Hex: "#fefefe"},
		Swatch{Name: "Exact", Hex: "#ffffff"},
	)
	if got := p.Match(White); got != 1 {
		t.Errorf("expected exact match at 1, got %d", got)
	}
	if got := p.Match(RGB(250, 250, 250)); got != 0 {
		t.Errorf("expected closest at 0, got %d", got)
	}
}

func TestNewPaletteRejectsBadHex(t *testing.T) {
	_, err := NewPalette([]Swatch{{Name: "Bad", Hex: "#zzzzzz"}})
	if !errors.Is(err, ErrInvalidColor) {
		t.Errorf("expected ErrInvalidColor, got %v", err)
	}
}

func TestSwatchesIsCopy(t *testing.T) {
	p := mustPalette(t, Swatch{Name: "Black", Hex: "#000000"})
	s := p.Swatches()
	s[0].Name = "Changed"
	if p.At(0).Name != "Black" {
		t.Error("palette was mutated through Swatches()")
	}
	if p.At(0).Color() != Black {
		t.Errorf("expected parsed color black, got %v", p.At(0).Color())
	}
}

func TestFromLinearRoundTrip(t *testing.T) {
	for _, hex := range []string{"#000000", "#ffffff", "#4e4e4e", "#089da4", "#e86e61"} {
		c := MustParseHex(hex)
		l := c.Linear()
		if got := FromLinear(l[0], l[1], l[2]); got != c {
			t.Errorf("FromLinear(Linear(%s)) = %s", hex, got)
		}
	}
}
