// README: Camera device model, frame source contract, error set.
package camera

import (
	"context"
	"errors"
	"image"
)

// Frame is a single raster snapshot of the live camera. It is handed to the
// compositor and not retained afterwards.
type Frame struct {
	Image  image.Image
	Width  int
	Height int
}

// Device is one enumerated video input.
type Device struct {
	Path  string
	Label string
}

var (
	ErrPermissionDenied = errors.New("camera: permission denied")
	ErrNoDevice         = errors.New("camera: no video input device")
	// ErrNotReady is returned by CurrentFrame until stream metadata
	// (actual dimensions) is available.
	ErrNotReady = errors.New("camera: frame source not ready")
)

// FrameSource exposes the live camera. CurrentFrame reads the latest frame
// synchronously; Resolution reports the dimensions the device actually
// granted, which may be lower than requested.
type FrameSource interface {
	CurrentFrame() (Frame, error)
	Resolution() (width, height int)
	Ready() bool
	WaitReady(ctx context.Context) error
	Close() error
}
