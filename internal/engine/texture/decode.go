package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"io"

	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/tiff" // register TIFF decoder
	_ "golang.org/x/image/webp" // register WebP decoder

	"golang.org/x/image/draw"
)

// ErrUnsupportedFormat is returned for images no registered decoder accepts.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// Decode reads an image in any registered format and returns it as RGBA,
// flipped so that row 0 is the bottom of the image as OpenGL expects.
// A maxSize above zero downscales larger images to fit within it.
func Decode(r io.Reader, maxSize int) (*image.RGBA, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, "", fmt.Errorf("decode image: %w", ErrUnsupportedFormat)
		}
		return nil, format, fmt.Errorf("decode %s image: %w", format, err)
	}

	rgba := ToRGBA(FitWithin(img, maxSize))
	FlipVertical(rgba)
	return rgba, format, nil
}

// DecodeBytes is Decode over an in-memory file.
func DecodeBytes(data []byte, maxSize int) (*image.RGBA, string, error) {
	return Decode(bytes.NewReader(data), maxSize)
}

// ToRGBA converts any image to a tightly packed *image.RGBA with origin (0, 0).
func ToRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	if rgba, ok := img.(*image.RGBA); ok && b.Min == (image.Point{}) && rgba.Stride == 4*b.Dx() {
		return rgba
	}
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

// FitWithin scales img down, keeping its aspect ratio, so neither side
// exceeds maxSize. Smaller images and maxSize <= 0 return img unchanged.
func FitWithin(img image.Image, maxSize int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxSize <= 0 || (w <= maxSize && h <= maxSize) {
		return img
	}

	if w >= h {
		h = max(1, h*maxSize/w)
		w = maxSize
	} else {
		w = max(1, w*maxSize/h)
		h = maxSize
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// FlipVertical reverses the row order of img in place.
func FlipVertical(img *image.RGBA) {
	b := img.Bounds()
	rowLen := 4 * b.Dx()
	tmp := make([]byte, rowLen)
	for top, bottom := b.Min.Y, b.Max.Y-1; top < bottom; top, bottom = top+1, bottom-1 {
		t := img.Pix[img.PixOffset(b.Min.X, top):][:rowLen]
		u := img.Pix[img.PixOffset(b.Min.X, bottom):][:rowLen]
		copy(tmp, t)
		copy(t, u)
		copy(u, tmp)
	}
}
