package paint

import "fmt"

// Swatch is one named palette entry.
type Swatch struct {
	Name  string `yaml:"name"`
	Hex   string `yaml:"hex"`
	color Color
}

// Color returns the parsed swatch color.
func (s Swatch) Color() Color {
	return s.color
}

// Palette is a fixed ordered list of swatches.
type Palette struct {
	swatches []Swatch
}

// NewPalette parses the hex value of every swatch.
// The input slice is copied; the palette never changes afterwards.
func NewPalette(swatches []Swatch) (*Palette, error) {
	p := &Palette{swatches: make([]Swatch, len(swatches))}
	for i, s := range swatches {
		c, err := ParseHex(s.Hex)
		if err != nil {
			return nil, fmt.Errorf("swatch %d (%s): %w", i, s.Name, err)
		}
		s.color = c
		p.swatches[i] = s
	}
	return p, nil
}

// Len returns the number of swatches.
func (p *Palette) Len() int {
	return len(p.swatches)
}

// At returns the swatch at index i.
func (p *Palette) At(i int) Swatch {
	return p.swatches[i]
}

// Swatches returns a copy of the swatches in palette order.
func (p *Palette) Swatches() []Swatch {
	out := make([]Swatch, len(p.swatches))
	copy(out, p.swatches)
	return out
}

// Closest returns the index of the swatch with the smallest RGB distance to c.
// Ties go to the earliest swatch. Returns -1 for an empty palette.
func (p *Palette) Closest(c Color) int {
	best := -1
	bestDist := 0.0
	for i, s := range p.swatches {
		d := Distance(c, s.color)
		if best < 0 || d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}

// IndexOf returns the first swatch whose color equals c, or -1.
func (p *Palette) IndexOf(c Color) int {
	for i, s := range p.swatches {
		if s.color == c {
			return i
		}
	}
	return -1
}

// Match returns the exact swatch for c if present, otherwise the closest one.
func (p *Palette) Match(c Color) int {
	if i := p.IndexOf(c); i >= 0 {
		return i
	}
	return p.Closest(c)
}
