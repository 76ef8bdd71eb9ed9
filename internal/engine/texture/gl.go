package texture

import (
	"fmt"
	"image"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-globe/internal/logger"
)

// GLUploader uploads textures with mipmaps and the current sampling setup.
// All methods must be called on the thread owning the GL context.
type GLUploader struct {
	nearest    bool
	anisotropy float32

	anisotropySupported bool
	maxAnisotropy       float32
	maxSize             int
}

// NewGLUploader queries texture limits from the current context.
func NewGLUploader() *GLUploader {
	u := &GLUploader{anisotropy: 1}

	var maxSize int32
	gl.GetIntegerv(gl.MAX_TEXTURE_SIZE, &maxSize)
	u.maxSize = int(maxSize)

	u.anisotropySupported = HasExtension("GL_EXT_texture_filter_anisotropic") ||
		HasExtension("GL_ARB_texture_filter_anisotropic")
	if u.anisotropySupported {
		gl.GetFloatv(gl.MAX_TEXTURE_MAX_ANISOTROPY, &u.maxAnisotropy)
	}

	logger.Debug("texture limits",
		zap.Int("max_size", u.maxSize),
		zap.Bool("anisotropy", u.anisotropySupported),
		zap.Float32("max_anisotropy", u.maxAnisotropy),
	)
	return u
}

// HasExtension reports whether the current context advertises ext.
func HasExtension(ext string) bool {
	var n int32
	gl.GetIntegerv(gl.NUM_EXTENSIONS, &n)
	for i := int32(0); i < n; i++ {
		if gl.GoStr(gl.GetStringi(gl.EXTENSIONS, uint32(i))) == ext {
			return true
		}
	}
	return false
}

// AnisotropySupported reports whether anisotropic filtering is available.
func (u *GLUploader) AnisotropySupported() bool {
	return u.anisotropySupported
}

// MaxSize returns the largest texture side the driver accepts.
func (u *GLUploader) MaxSize() int {
	return u.maxSize
}

// Create allocates a texture holding one transparent pixel, so sampling it
// before the real image arrives is well defined.
func (u *GLUploader) Create() (uint32, error) {
	var tex uint32
	gl.GenTextures(1, &tex)
	if tex == 0 {
		return 0, fmt.Errorf("glGenTextures returned no texture")
	}

	blank := [4]uint8{0, 0, 0, 0}
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, 1, 1, 0, gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&blank[0]))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return tex, nil
}

// Upload replaces a texture's pixels and rebuilds its mipmaps.
func (u *GLUploader) Upload(handle uint32, img *image.RGBA) error {
	b := img.Bounds()
	if b.Empty() {
		return fmt.Errorf("upload texture %d: empty image", handle)
	}
	if u.maxSize > 0 && (b.Dx() > u.maxSize || b.Dy() > u.maxSize) {
		return fmt.Errorf("upload texture %d: %dx%d exceeds the %d pixel limit", handle, b.Dx(), b.Dy(), u.maxSize)
	}

	gl.BindTexture(gl.TEXTURE_2D, handle)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(b.Dx()), int32(b.Dy()), 0, gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&img.Pix[0]))
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	u.applySampling()
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return nil
}

// Delete frees texture objects.
func (u *GLUploader) Delete(handles ...uint32) {
	if len(handles) == 0 {
		return
	}
	gl.DeleteTextures(int32(len(handles)), &handles[0])
}

// SetSampling changes the filter and anisotropy used for future uploads and
// applies it to the given textures. Anisotropy is clamped to the driver
// maximum and ignored when unsupported.
func (u *GLUploader) SetSampling(nearest bool, anisotropy float32, handles ...uint32) {
	u.nearest = nearest
	u.anisotropy = anisotropy
	for _, h := range handles {
		gl.BindTexture(gl.TEXTURE_2D, h)
		u.applySampling()
	}
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

// applySampling sets filter parameters on the bound texture.
func (u *GLUploader) applySampling() {
	if u.nearest {
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST_MIPMAP_NEAREST)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	} else {
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	}
	if u.anisotropySupported {
		a := u.anisotropy
		if a < 1 {
			a = 1
		}
		if u.maxAnisotropy > 0 && a > u.maxAnisotropy {
			a = u.maxAnisotropy
		}
		gl.TexParameterf(gl.TEXTURE_2D, gl.TEXTURE_MAX_ANISOTROPY, a)
	}
}
