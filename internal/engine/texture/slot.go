package texture

import (
	"context"
	"fmt"
	"image"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-globe/internal/logger"
)

// Status is the load state of a texture slot.
type Status int

const (
	Pending Status = iota
	Ready
	Failed
)

func (s Status) String() string {
	switch s {
	case Pending:
		return "pending"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Uploader owns GPU texture objects. Implementations run on the render thread.
type Uploader interface {
	// Create allocates a texture object holding a blank placeholder.
	Create() (uint32, error)
	// Upload replaces the texture's pixels.
	Upload(handle uint32, img *image.RGBA) error
	// Delete frees texture objects.
	Delete(handles ...uint32)
}

// Slot is one texture map. Its handle is valid from creation; the pixels
// arrive later.
type Slot struct {
	Kind   Kind
	Handle uint32
	Path   string
	Status Status
	Err    error

	result <-chan Result
}

// Set holds one slot per Kind.
type Set struct {
	up     Uploader
	loader *Loader
	slots  [KindCount]Slot
	log    *zap.Logger
}

// NewSet allocates a placeholder texture for every kind.
func NewSet(up Uploader, loader *Loader) (*Set, error) {
	if loader == nil {
		loader = &Loader{}
	}
	s := &Set{up: up, loader: loader, log: logger.Named("texture")}
	for k := Kind(0); k < KindCount; k++ {
		h, err := up.Create()
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("create %s texture: %w", k, err)
		}
		s.slots[k] = Slot{Kind: k, Handle: h, Status: Failed}
	}
	return s, nil
}

// Request starts loading path into the slot for k. An empty path leaves the
// slot blank.
func (s *Set) Request(ctx context.Context, k Kind, path string) {
	slot := &s.slots[k]
	slot.Path = path
	slot.Err = nil
	if path == "" {
		slot.Status = Failed
		slot.result = nil
		return
	}
	slot.Status = Pending
	slot.result = s.loader.Load(ctx, path)
}

// Poll uploads every load that has finished since the last call without
// blocking. It returns the number of slots that changed state.
func (s *Set) Poll() int {
	changed := 0
	for k := range s.slots {
		slot := &s.slots[k]
		if slot.Status != Pending || slot.result == nil {
			continue
		}

		var res Result
		select {
		case r, ok := <-slot.result:
			if !ok {
				continue
			}
			res = r
		default:
			continue
		}
		slot.result = nil
		changed++

		if res.Err != nil {
			slot.Status = Failed
			slot.Err = res.Err
			s.log.Warn("texture load failed", zap.Stringer("kind", slot.Kind), zap.Error(res.Err))
			continue
		}
		if err := s.up.Upload(slot.Handle, res.Image); err != nil {
			slot.Status = Failed
			slot.Err = err
			s.log.Warn("texture upload failed", zap.Stringer("kind", slot.Kind), zap.Error(err))
			continue
		}
		slot.Status = Ready
		s.log.Info("texture ready",
			zap.Stringer("kind", slot.Kind),
			zap.String("path", slot.Path),
			zap.Int("width", res.Image.Bounds().Dx()),
			zap.Int("height", res.Image.Bounds().Dy()),
		)
	}
	return changed
}

// Pending reports whether any load is still in flight.
func (s *Set) Pending() bool {
	for _, slot := range s.slots {
		if slot.Status == Pending {
			return true
		}
	}
	return false
}

// Slot returns a copy of the slot for k.
func (s *Set) Slot(k Kind) Slot {
	return s.slots[k]
}

// Handle returns the texture handle for k.
func (s *Set) Handle(k Kind) uint32 {
	return s.slots[k].Handle
}

// Handles returns every handle in Kind order.
func (s *Set) Handles() [KindCount]uint32 {
	var h [KindCount]uint32
	for k, slot := range s.slots {
		h[k] = slot.Handle
	}
	return h
}

// Close frees every texture object. Results of loads still in flight are dropped.
func (s *Set) Close() {
	var handles []uint32
	for k := range s.slots {
		if s.slots[k].Handle != 0 {
			handles = append(handles, s.slots[k].Handle)
		}
		s.slots[k] = Slot{Kind: Kind(k)}
	}
	if len(handles) > 0 {
		s.up.Delete(handles...)
	}
}
