// Package paint provides sRGB colors, hex parsing and palette matching.
package paint

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidColor is returned when a color string cannot be parsed.
var ErrInvalidColor = errors.New("invalid color")

// Color is an 8-bit sRGB color.
type Color struct {
	R, G, B uint8
}

// Predefined colors.
var (
	White = Color{255, 255, 255}
	Black = Color{0, 0, 0}
)

// RGB creates a color from 8-bit components.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// FromHexInt creates a color from a 0xRRGGBB integer.
func FromHexInt(v uint32) Color {
	return Color{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
	}
}

// FromFloat creates a color from 0-1 float components, clamping out-of-range values.
func FromFloat(r, g, b float32) Color {
	return Color{R: toByte(r), G: toByte(g), B: toByte(b)}
}

// FromLinear creates a color from linear-light components, encoding them to sRGB.
func FromLinear(r, g, b float32) Color {
	return FromFloat(linearToSRGB(r), linearToSRGB(g), linearToSRGB(b))
}

// ParseHex parses "#rrggbb", "#rgb", "rrggbb" or "0xrrggbb" (case-insensitive).
func ParseHex(s string) (Color, error) {
	raw := strings.TrimSpace(s)
	hex := strings.TrimPrefix(raw, "#")
	if hex == raw {
		hex = strings.TrimPrefix(strings.TrimPrefix(raw, "0x"), "0X")
	}

	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return FromHexInt(uint32(v)), nil
}

// MustParseHex is like ParseHex but panics on error. Use for constants only.
func MustParseHex(s string) Color {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex returns the color as a lowercase "#rrggbb" string.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// HexInt returns the color as a 0xRRGGBB integer.
func (c Color) HexInt() uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// Float returns the sRGB components in the 0-1 range.
func (c Color) Float() [3]float32 {
	return [3]float32{
		float32(c.R) / 255.0,
		float32(c.G) / 255.0,
		float32(c.B) / 255.0,
	}
}

// Linear returns the components converted from sRGB to linear light.
func (c Color) Linear() [3]float32 {
	f := c.Float()
	return [3]float32{srgbToLinear(f[0]), srgbToLinear(f[1]), srgbToLinear(f[2])}
}

// Distance returns the Euclidean distance between two colors in 0-255 RGB space.
func Distance(a, b Color) float64 {
	dr := float64(a.R) - float64(b.R)
	dg := float64(a.G) - float64(b.G)
	db := float64(a.B) - float64(b.B)
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

func (c Color) String() string {
	return c.Hex()
}

func srgbToLinear(v float32) float32 {
	if v <= 0.04045 {
		return v / 12.92
	}
	return float32(math.Pow((float64(v)+0.055)/1.055, 2.4))
}

func linearToSRGB(v float32) float32 {
	if v <= 0.0031308 {
		return v * 12.92
	}
	return float32(1.055*math.Pow(float64(v), 1/2.4) - 0.055)
}

func toByte(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
