// Package texture decodes the images referenced by model materials.
package texture

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"path"
	"strings"

	_ "golang.org/x/image/webp"
)

// Decode decodes an encoded image into tightly packed RGBA. The name or
// MIME type selects TGA, which has no magic number; everything else is
// sniffed by the registered image formats.
func Decode(data []byte, name, mimeType string) (*image.RGBA, error) {
	if isTGA(name, mimeType) {
		return DecodeTGA(data)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("texture: %w", err)
	}
	return ToRGBA(img), nil
}

func isTGA(name, mimeType string) bool {
	switch strings.ToLower(mimeType) {
	case "image/x-tga", "image/tga", "image/x-targa":
		return true
	}
	return strings.EqualFold(path.Ext(name), ".tga")
}

// ToRGBA returns img as an RGBA image anchored at the origin, copying only
// when needed.
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		return rgba
	}
	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	return rgba
}
