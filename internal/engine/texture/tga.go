package texture

import (
	"errors"
	"fmt"
	"image"
)

// ErrTruncated is returned when a TGA stream ends before every pixel is read.
var ErrTruncated = errors.New("texture: truncated TGA data")

// TGA image types handled by DecodeTGA.
const (
	tgaTrueColor    = 2
	tgaGray         = 3
	tgaTrueColorRLE = 10
	tgaGrayRLE      = 11
)

const tgaHeaderSize = 18

type tgaHeader struct {
	idLength   int
	colorMap   byte
	imageType  byte
	width      int
	height     int
	depth      int
	descriptor byte
}

func parseTGAHeader(data []byte) (tgaHeader, error) {
	if len(data) < tgaHeaderSize {
		return tgaHeader{}, ErrTruncated
	}
	h := tgaHeader{
		idLength:   int(data[0]),
		colorMap:   data[1],
		imageType:  data[2],
		width:      int(data[12]) | int(data[13])<<8,
		height:     int(data[14]) | int(data[15])<<8,
		depth:      int(data[16]),
		descriptor: data[17],
	}

	if h.colorMap != 0 {
		return h, errors.New("texture: color-mapped TGA not supported")
	}
	switch h.imageType {
	case tgaTrueColor, tgaTrueColorRLE:
		if h.depth != 24 && h.depth != 32 {
			return h, fmt.Errorf("texture: unsupported TGA depth %d", h.depth)
		}
	case tgaGray, tgaGrayRLE:
		if h.depth != 8 {
			return h, fmt.Errorf("texture: unsupported grayscale TGA depth %d", h.depth)
		}
	default:
		return h, fmt.Errorf("texture: unsupported TGA type %d", h.imageType)
	}
	if h.width == 0 || h.height == 0 {
		return h, errors.New("texture: empty TGA image")
	}
	return h, nil
}

func (h tgaHeader) rle() bool {
	return h.imageType == tgaTrueColorRLE || h.imageType == tgaGrayRLE
}

// topDown reports whether rows are stored from the top of the image.
func (h tgaHeader) topDown() bool {
	return h.descriptor&0x20 != 0
}

// DecodeTGA decodes an uncompressed or run-length encoded true-color or
// grayscale TGA image.
func DecodeTGA(data []byte) (*image.RGBA, error) {
	h, err := parseTGAHeader(data)
	if err != nil {
		return nil, err
	}
	start := tgaHeaderSize + h.idLength
	if start > len(data) {
		return nil, ErrTruncated
	}

	src := &pixelSource{data: data[start:], size: h.depth / 8}
	img := image.NewRGBA(image.Rect(0, 0, h.width, h.height))
	total := h.width * h.height

	for n := 0; n < total; {
		run := 1
		repeat := false
		if h.rle() {
			packet, ok := src.byte()
			if !ok {
				return nil, ErrTruncated
			}
			run = int(packet&0x7f) + 1
			repeat = packet&0x80 != 0
		}

		var px [4]byte
		for i := 0; i < run && n < total; i++ {
			if i == 0 || !repeat {
				var ok bool
				if px, ok = src.pixel(); !ok {
					return nil, ErrTruncated
				}
			}
			x, y := n%h.width, n/h.width
			if !h.topDown() {
				y = h.height - 1 - y
			}
			copy(img.Pix[img.PixOffset(x, y):], px[:])
			n++
		}
	}
	return img, nil
}

// pixelSource reads BGR(A) or gray samples and returns them as RGBA.
type pixelSource struct {
	data []byte
	pos  int
	size int
}

func (s *pixelSource) byte() (byte, bool) {
	if s.pos >= len(s.data) {
		return 0, false
	}
	b := s.data[s.pos]
	s.pos++
	return b, true
}

func (s *pixelSource) pixel() ([4]byte, bool) {
	if s.pos+s.size > len(s.data) {
		return [4]byte{}, false
	}
	p := s.data[s.pos : s.pos+s.size]
	s.pos += s.size

	switch s.size {
	case 1:
		return [4]byte{p[0], p[0], p[0], 0xff}, true
	case 3:
		return [4]byte{p[2], p[1], p[0], 0xff}, true
	default:
		return [4]byte{p[2], p[1], p[0], p[3]}, true
	}
}
