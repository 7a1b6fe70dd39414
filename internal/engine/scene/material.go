package scene

import (
	"fmt"
	"image"

	"github.com/jinzhu/copier"

	"github.com/Faultbox/padforge/pkg/paint"
)

// Texture is a decoded image shared between materials.
// The renderer uploads it lazily and keys GPU handles by pointer.
type Texture struct {
	Name  string
	Image *image.RGBA
}

// Material describes how a mesh surface is shaded.
type Material struct {
	Name      string
	Color     paint.Color
	Emissive  paint.Color
	Metalness float32
	Roughness float32

	// Opacity below 1 only takes effect when Transparent is set.
	Opacity     float32
	Transparent bool

	// Transmission and Clearcoat approximate glass: the renderer lowers
	// alpha by Transmission and adds a sharp specular lobe for Clearcoat.
	Transmission float32
	Clearcoat    float32

	DoubleSided bool
	Texture     *Texture `copier:"-"`
}

// NewMaterial returns an opaque dielectric material of the given color.
func NewMaterial(name string, c paint.Color) *Material {
	return &Material{
		Name:      name,
		Color:     c,
		Metalness: 0,
		Roughness: 1,
		Opacity:   1,
	}
}

// Clone returns an independent copy. Textures are shared, not copied.
func (m *Material) Clone() *Material {
	c := *m
	return &c
}

// CopyFrom overwrites every property of m with the properties of src.
// The texture pointer is reassigned, never written through.
func (m *Material) CopyFrom(src *Material) error {
	if err := copier.Copy(m, src); err != nil {
		return fmt.Errorf("copy material %s: %w", src.Name, err)
	}
	m.Texture = src.Texture
	return nil
}

// Alpha returns the effective output alpha of the material.
func (m *Material) Alpha() float32 {
	if !m.Transparent {
		return 1
	}
	a := m.Opacity * (1 - 0.85*m.Transmission)
	if a < 0 {
		return 0
	}
	return a
}
