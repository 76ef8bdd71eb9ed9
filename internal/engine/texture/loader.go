package texture

import (
	"context"
	"fmt"
	"image"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-globe/internal/logger"
)

// Result is the outcome of an asynchronous texture load.
type Result struct {
	Path   string
	Format string
	Image  *image.RGBA
	Err    error
}

// Loader decodes texture files off the render thread.
type Loader struct {
	// MaxSize caps the longest side of decoded images; zero means no limit.
	MaxSize int
}

// Load reads and decodes path in a new goroutine. The returned channel
// receives exactly one Result and is then closed; it is buffered so the
// worker never blocks on a caller that stopped listening.
func (l *Loader) Load(ctx context.Context, path string) <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		defer close(ch)
		ch <- l.load(ctx, path)
	}()
	return ch
}

func (l *Loader) load(ctx context.Context, path string) Result {
	res := Result{Path: path}
	if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}

	start := time.Now()
	data, err := os.ReadFile(path)
	if err != nil {
		res.Err = fmt.Errorf("read texture: %w", err)
		return res
	}
	if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}

	img, format, err := DecodeBytes(data, l.MaxSize)
	if err != nil {
		res.Err = fmt.Errorf("texture %s: %w", path, err)
		return res
	}

	res.Image = img
	res.Format = format
	logger.Debug("texture decoded",
		zap.String("path", path),
		zap.String("format", format),
		zap.Int("width", img.Bounds().Dx()),
		zap.Int("height", img.Bounds().Dy()),
		zap.Duration("took", time.Since(start)),
	)
	return res
}
