package scan

import (
	"context"
	"image"
	"io"
	"sync"

	"github.com/pkg/errors"
)

// ErrClosed is returned by a source that has been released.
var ErrClosed = errors.New("scan source closed")

// Source yields frames to decode. Close releases the underlying device or buffer
// and must be safe to call more than once.
type Source interface {
	Next(ctx context.Context) (image.Image, error)
	Close() error
}

// ImageSource is an uploaded picture: one frame, then io.EOF.
type ImageSource struct {
	mu   sync.Mutex
	img  image.Image
	done bool
}

func NewImageSource(img image.Image) *ImageSource {
	return &ImageSource{img: img}
}

func (s *ImageSource) Next(ctx context.Context) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done || s.img == nil {
		return nil, io.EOF
	}
	s.done = true
	return s.img, nil
}

func (s *ImageSource) Close() error {
	s.mu.Lock()
	s.img = nil
	s.done = true
	s.mu.Unlock()
	return nil
}

// FrameSource is a camera feed whose frames are pushed in from the browser.
// When the decoder falls behind, pushed frames are dropped.
type FrameSource struct {
	frames chan image.Image
	closed chan struct{}
	once   sync.Once
}

func NewFrameSource() *FrameSource {
	return &FrameSource{
		frames: make(chan image.Image, 1),
		closed: make(chan struct{}),
	}
}

// Push offers a frame. It reports whether the frame was queued.
func (s *FrameSource) Push(img image.Image) (bool, error) {
	select {
	case <-s.closed:
		return false, ErrClosed
	default:
	}
	select {
	case s.frames <- img:
		return true, nil
	default:
		return false, nil
	}
}

func (s *FrameSource) Next(ctx context.Context) (image.Image, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-s.closed:
		return nil, ErrClosed
	case img := <-s.frames:
		return img, nil
	}
}

func (s *FrameSource) Close() error {
	s.once.Do(func() { close(s.closed) })
	return nil
}
