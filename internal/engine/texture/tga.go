// Package texture decodes texture images and tracks shared GPU textures.
package texture

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// TGA image types.
const (
	TGATypeUncompressed = 2  // Uncompressed true-color
	TGATypeRLE          = 10 // RLE compressed true-color
)

const tgaHeaderSize = 18

// ErrTGATruncated is returned when the pixel data ends early.
var ErrTGATruncated = errors.New("tga data truncated")

// tgaHeader holds the fields of the 18-byte header the decoder needs.
type tgaHeader struct {
	idLength     int
	colorMapType byte
	imageType    byte
	width        int
	height       int
	bpp          int
	topToBottom  bool
}

func parseTGAHeader(data []byte) (tgaHeader, error) {
	if len(data) < tgaHeaderSize {
		return tgaHeader{}, fmt.Errorf("%w: %d byte header", ErrTGATruncated, len(data))
	}
	h := tgaHeader{
		idLength:     int(data[0]),
		colorMapType: data[1],
		imageType:    data[2],
		width:        int(data[12]) | int(data[13])<<8,
		height:       int(data[14]) | int(data[15])<<8,
		bpp:          int(data[16]),
		topToBottom:  data[17]&0x20 != 0, // bit 5 of the descriptor
	}

	if h.colorMapType != 0 {
		return h, fmt.Errorf("color-mapped TGA not supported")
	}
	if h.imageType != TGATypeUncompressed && h.imageType != TGATypeRLE {
		return h, fmt.Errorf("unsupported TGA type %d (only uncompressed/RLE true-color supported)", h.imageType)
	}
	if h.bpp != 24 && h.bpp != 32 {
		return h, fmt.Errorf("unsupported TGA bit depth %d (only 24/32 supported)", h.bpp)
	}
	if h.width == 0 || h.height == 0 {
		return h, fmt.Errorf("empty TGA image %dx%d", h.width, h.height)
	}
	return h, nil
}

// DecodeTGA decodes an uncompressed (type 2) or RLE (type 10) true-color
// TGA file. The result is stored top row first regardless of the file's
// row order.
func DecodeTGA(data []byte) (image.Image, error) {
	h, err := parseTGAHeader(data)
	if err != nil {
		return nil, err
	}

	offset := tgaHeaderSize + h.idLength
	if offset > len(data) {
		return nil, ErrTGATruncated
	}

	d := tgaDecoder{
		h:      h,
		img:    image.NewRGBA(image.Rect(0, 0, h.width, h.height)),
		src:    data[offset:],
		stride: h.bpp / 8,
	}

	if h.imageType == TGATypeUncompressed {
		err = d.decodeRaw()
	} else {
		err = d.decodeRLE()
	}
	if err != nil {
		return nil, err
	}
	return d.img, nil
}

type tgaDecoder struct {
	h      tgaHeader
	img    *image.RGBA
	src    []byte
	pos    int
	stride int
}

// pixel reads one BGR(A) pixel from the source.
func (d *tgaDecoder) pixel() (color.RGBA, bool) {
	if d.pos+d.stride > len(d.src) {
		return color.RGBA{}, false
	}
	p := d.src[d.pos : d.pos+d.stride]
	d.pos += d.stride
	c := color.RGBA{R: p[2], G: p[1], B: p[0], A: 255}
	if d.stride == 4 {
		c.A = p[3]
	}
	return c, true
}

// set stores the n-th pixel in file order.
func (d *tgaDecoder) set(n int, c color.RGBA) {
	x := n % d.h.width
	y := n / d.h.width
	if !d.h.topToBottom {
		y = d.h.height - 1 - y
	}
	d.img.SetRGBA(x, y, c)
}

func (d *tgaDecoder) decodeRaw() error {
	total := d.h.width * d.h.height
	if len(d.src) < total*d.stride {
		return fmt.Errorf("%w: need %d pixel bytes, have %d", ErrTGATruncated, total*d.stride, len(d.src))
	}
	for n := 0; n < total; n++ {
		c, _ := d.pixel()
		d.set(n, c)
	}
	return nil
}

// decodeRLE expands run-length and raw packets. A stream that ends early
// leaves the remaining pixels transparent.
func (d *tgaDecoder) decodeRLE() error {
	total := d.h.width * d.h.height
	n := 0

	for n < total && d.pos < len(d.src) {
		packet := d.src[d.pos]
		d.pos++
		count := int(packet&0x7F) + 1

		if packet&0x80 != 0 {
			c, ok := d.pixel()
			if !ok {
				break
			}
			for i := 0; i < count && n < total; i++ {
				d.set(n, c)
				n++
			}
			continue
		}

		for i := 0; i < count && n < total; i++ {
			c, ok := d.pixel()
			if !ok {
				break
			}
			d.set(n, c)
			n++
		}
	}
	return nil
}

// ToRGBA converts any image to *image.RGBA. With flipY the rows are
// reversed so the first row is the bottom of the picture, which is what
// OpenGL expects for texture coordinate v=0.
func ToRGBA(img image.Image, flipY bool) *image.RGBA {
	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	h := bounds.Dy()

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		dy := y - bounds.Min.Y
		if flipY {
			dy = h - 1 - dy
		}
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r16, g16, b16, a16 := img.At(x, y).RGBA()
			rgba.SetRGBA(x-bounds.Min.X, dy, color.RGBA{
				R: uint8(r16 >> 8),
				G: uint8(g16 >> 8),
				B: uint8(b16 >> 8),
				A: uint8(a16 >> 8),
			})
		}
	}
	return rgba
}
