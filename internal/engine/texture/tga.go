package texture

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
)

// TGA image types.
const (
	TGATypeUncompressed = 2  // Uncompressed true-color
	TGATypeRLE          = 10 // RLE compressed true-color
)

const tgaHeaderSize = 18

var errTGATruncated = errors.New("tga: pixel data truncated")

func init() {
	// TGA has no magic number. Match on "no color map" plus a supported image type.
	image.RegisterFormat("tga", "?\x00\x02", decodeTGA, decodeTGAConfig)
	image.RegisterFormat("tga", "?\x00\x0a", decodeTGA, decodeTGAConfig)
}

type tgaHeader struct {
	idLength    int
	colorMap    byte
	imageType   byte
	width       int
	height      int
	bpp         int
	topToBottom bool
}

func parseTGAHeader(h []byte) (tgaHeader, error) {
	hdr := tgaHeader{
		idLength:    int(h[0]),
		colorMap:    h[1],
		imageType:   h[2],
		width:       int(h[12]) | int(h[13])<<8,
		height:      int(h[14]) | int(h[15])<<8,
		bpp:         int(h[16]),
		topToBottom: h[17]&0x20 != 0,
	}
	if hdr.colorMap != 0 {
		return hdr, fmt.Errorf("tga: color-mapped images: %w", ErrUnsupportedFormat)
	}
	if hdr.imageType != TGATypeUncompressed && hdr.imageType != TGATypeRLE {
		return hdr, fmt.Errorf("tga: image type %d: %w", hdr.imageType, ErrUnsupportedFormat)
	}
	if hdr.bpp != 24 && hdr.bpp != 32 {
		return hdr, fmt.Errorf("tga: %d bits per pixel: %w", hdr.bpp, ErrUnsupportedFormat)
	}
	if hdr.width == 0 || hdr.height == 0 {
		return hdr, fmt.Errorf("tga: empty %dx%d image", hdr.width, hdr.height)
	}
	return hdr, nil
}

func readTGAHeader(r io.Reader) (tgaHeader, error) {
	var h [tgaHeaderSize]byte
	if _, err := io.ReadFull(r, h[:]); err != nil {
		return tgaHeader{}, fmt.Errorf("tga: header: %w", err)
	}
	return parseTGAHeader(h[:])
}

func decodeTGAConfig(r io.Reader) (image.Config, error) {
	hdr, err := readTGAHeader(r)
	if err != nil {
		return image.Config{}, err
	}
	return image.Config{ColorModel: color.RGBAModel, Width: hdr.width, Height: hdr.height}, nil
}

// decodeTGA decodes an uncompressed or RLE compressed true-color TGA image.
func decodeTGA(r io.Reader) (image.Image, error) {
	br := bufio.NewReader(r)
	hdr, err := readTGAHeader(br)
	if err != nil {
		return nil, err
	}
	if _, err := br.Discard(hdr.idLength); err != nil {
		return nil, fmt.Errorf("tga: image id: %w", err)
	}

	img := image.NewRGBA(image.Rect(0, 0, hdr.width, hdr.height))
	px := &tgaPixels{img: img, hdr: hdr, bytesPerPixel: hdr.bpp / 8}

	if hdr.imageType == TGATypeUncompressed {
		err = px.readRaw(br, hdr.width*hdr.height)
	} else {
		err = px.readRLE(br)
	}
	if err != nil {
		return nil, err
	}
	return img, nil
}

// tgaPixels writes BGR(A) pixels into img in file order.
type tgaPixels struct {
	img           *image.RGBA
	hdr           tgaHeader
	bytesPerPixel int
	next          int
}

func (p *tgaPixels) total() int {
	return p.hdr.width * p.hdr.height
}

func (p *tgaPixels) put(c color.RGBA) {
	x := p.next % p.hdr.width
	y := p.next / p.hdr.width
	if !p.hdr.topToBottom {
		y = p.hdr.height - 1 - y
	}
	p.img.SetRGBA(x, y, c)
	p.next++
}

func (p *tgaPixels) read(r io.Reader) (color.RGBA, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:p.bytesPerPixel]); err != nil {
		return color.RGBA{}, errTGATruncated
	}
	c := color.RGBA{R: buf[2], G: buf[1], B: buf[0], A: 255}
	if p.bytesPerPixel == 4 {
		c.A = buf[3]
	}
	return c, nil
}

func (p *tgaPixels) readRaw(r io.Reader, n int) error {
	for i := 0; i < n && p.next < p.total(); i++ {
		c, err := p.read(r)
		if err != nil {
			return err
		}
		p.put(c)
	}
	return nil
}

func (p *tgaPixels) readRLE(r *bufio.Reader) error {
	for p.next < p.total() {
		packet, err := r.ReadByte()
		if err != nil {
			return errTGATruncated
		}
		count := int(packet&0x7F) + 1

		if packet&0x80 == 0 {
			if err := p.readRaw(r, count); err != nil {
				return err
			}
			continue
		}

		c, err := p.read(r)
		if err != nil {
			return err
		}
		for i := 0; i < count && p.next < p.total(); i++ {
			p.put(c)
		}
	}
	return nil
}
