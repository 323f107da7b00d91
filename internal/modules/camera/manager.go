// README: Device selection and frame source construction.
package camera

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"geosnap/internal/config"
)

// Manager selects a video input device and opens a frame source on it.
type Manager struct {
	cfg config.CameraConfig
	log zerolog.Logger
}

func NewManager(cfg config.CameraConfig, log zerolog.Logger) *Manager {
	return &Manager{cfg: cfg, log: log}
}

// Open picks a device and starts the configured backend. The returned
// source becomes ready asynchronously once the first frame is decoded.
func (m *Manager) Open(ctx context.Context) (FrameSource, error) {
	if m.cfg.Backend == "file" {
		return OpenFileSource(m.cfg.FilePath)
	}

	devices, err := enumerateDevices(ctx)
	if err != nil {
		return nil, err
	}
	dev := selectDevice(devices, m.cfg.DeviceHint)
	if dev == nil {
		return nil, ErrNoDevice
	}
	m.log.Info().
		Str("device", dev.Path).
		Str("label", dev.Label).
		Int("req_width", m.cfg.Width).
		Int("req_height", m.cfg.Height).
		Msg("opening camera")

	return openV4L2Source(ctx, dev.Path, m.cfg.Width, m.cfg.Height, m.log)
}

// selectDevice prefers the first device whose label mentions a rear-facing
// camera; otherwise it falls back to the environment-facing hint, then to
// the first device available.
func selectDevice(devices []Device, hint string) *Device {
	for i, d := range devices {
		label := strings.ToLower(d.Label)
		if strings.Contains(label, "back") || strings.Contains(label, "rear") {
			return &devices[i]
		}
	}
	if hint != "" {
		for i, d := range devices {
			if d.Path == hint {
				return &devices[i]
			}
		}
	}
	if len(devices) > 0 {
		return &devices[0]
	}
	return nil
}
