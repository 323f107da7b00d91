// README: File-backed frame source for rigs without a camera.
package camera

import (
	"context"
	"fmt"
	"image"
	"os"

	_ "image/jpeg"
	_ "image/png"
)

// FileSource replays a still image as the live frame. Ready immediately.
type FileSource struct {
	frame Frame
}

func OpenFileSource(path string) (*FileSource, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: no camera file configured", ErrNoDevice)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoDevice, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrNoDevice, path, err)
	}
	b := img.Bounds()
	return &FileSource{frame: Frame{Image: img, Width: b.Dx(), Height: b.Dy()}}, nil
}

func (s *FileSource) CurrentFrame() (Frame, error)        { return s.frame, nil }
func (s *FileSource) Resolution() (int, int)              { return s.frame.Width, s.frame.Height }
func (s *FileSource) Ready() bool                         { return true }
func (s *FileSource) WaitReady(ctx context.Context) error { return nil }
func (s *FileSource) Close() error                        { return nil }
