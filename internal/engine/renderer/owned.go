package renderer

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/meadow/internal/logger"
)

// OwnedBuffer is a buffer with a single owner responsible for releasing it.
// Release is idempotent, so teardown paths can call it unconditionally.
type OwnedBuffer struct {
	r   Renderer
	buf Buffer
}

// Allocate creates a count x stride buffer owned by the caller.
func Allocate(r Renderer, count, stride int) (*OwnedBuffer, error) {
	if r == nil {
		return nil, fmt.Errorf("allocate buffer: nil renderer")
	}
	b, err := r.AllocateStructuredBuffer(count, stride)
	if err != nil {
		return nil, fmt.Errorf("allocate %dx%d buffer: %w", count, stride, err)
	}
	logger.Debug("buffer allocated",
		zap.Uint32("id", b.ID),
		zap.Int("count", count),
		zap.Int("stride", stride),
	)
	return &OwnedBuffer{r: r, buf: b}, nil
}

// Buffer returns the underlying buffer, or the zero Buffer once released.
func (o *OwnedBuffer) Buffer() Buffer {
	if o == nil {
		return Buffer{}
	}
	return o.buf
}

// Upload writes data at the start of the buffer.
func (o *OwnedBuffer) Upload(data []byte) error {
	if o == nil || !o.buf.Valid() {
		return ErrReleased
	}
	return o.r.Upload(o.buf, data)
}

// Release frees the buffer. Nil, unallocated and released buffers are no-ops.
func (o *OwnedBuffer) Release() {
	if o == nil || o.r == nil || !o.buf.Valid() {
		return
	}
	logger.Debug("buffer released", zap.Uint32("id", o.buf.ID))
	o.r.Release(o.buf)
	o.buf = Buffer{}
}
