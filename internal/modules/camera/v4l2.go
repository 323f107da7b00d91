// README: V4L2 backend; enumeration via v4l2-ctl, capture via an ffmpeg MJPEG pipe.
package camera

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"image/jpeg"
	"io"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const (
	jpegSOI = "\xff\xd8" // start of image
	jpegEOI = "\xff\xd9" // end of image
)

// enumerateDevices parses `v4l2-ctl --list-devices`. The output groups an
// unindented label line (trailing colon) with indented device paths.
func enumerateDevices(ctx context.Context) ([]Device, error) {
	out, err := exec.CommandContext(ctx, "v4l2-ctl", "--list-devices").Output()
	if err != nil {
		if ee, ok := err.(*exec.ExitError); ok && strings.Contains(string(ee.Stderr), "Permission denied") {
			return nil, ErrPermissionDenied
		}
		return nil, fmt.Errorf("%w: v4l2-ctl: %v", ErrNoDevice, err)
	}
	devices := parseDeviceList(string(out))
	if len(devices) == 0 {
		return nil, ErrNoDevice
	}
	return devices, nil
}

func parseDeviceList(out string) []Device {
	var devices []Device
	var label string
	for _, line := range strings.Split(out, "\n") {
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, "\t") && !strings.HasPrefix(line, " ") {
			label = strings.TrimSuffix(strings.TrimSpace(line), ":")
			continue
		}
		path := strings.TrimSpace(line)
		if strings.HasPrefix(path, "/dev/video") {
			devices = append(devices, Device{Path: path, Label: label})
		}
	}
	return devices
}

// V4L2Source keeps only the most recent frame decoded from the ffmpeg
// stream. The granted resolution is whatever the first frame measures.
type V4L2Source struct {
	cmd    *exec.Cmd
	cancel context.CancelFunc
	log    zerolog.Logger

	mu     sync.RWMutex
	latest *Frame
	width  int
	height int
	ready  bool
	runErr error
}

func openV4L2Source(ctx context.Context, devicePath string, width, height int, log zerolog.Logger) (*V4L2Source, error) {
	ctx, cancel := context.WithCancel(ctx)
	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-loglevel", "error",
		"-f", "v4l2",
		"-video_size", fmt.Sprintf("%dx%d", width, height),
		"-i", devicePath,
		"-f", "mjpeg",
		"-q:v", "2",
		"-",
	)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		cancel()
		return nil, err
	}
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		cancel()
		return nil, fmt.Errorf("%w: ffmpeg: %v", ErrNoDevice, err)
	}

	s := &V4L2Source{cmd: cmd, cancel: cancel, log: log}
	go s.run(stdout, &stderr)
	return s, nil
}

func (s *V4L2Source) run(stdout io.Reader, stderr *bytes.Buffer) {
	br := bufio.NewReaderSize(stdout, 1<<20)
	for {
		raw, err := readMJPEGFrame(br)
		if err != nil {
			s.mu.Lock()
			s.runErr = classifyStreamError(err, stderr.String())
			s.mu.Unlock()
			return
		}
		img, err := jpeg.Decode(bytes.NewReader(raw))
		if err != nil {
			// Torn frame at stream start; wait for the next one.
			continue
		}
		b := img.Bounds()
		s.mu.Lock()
		if !s.ready {
			s.width, s.height = b.Dx(), b.Dy()
			s.ready = true
			s.log.Info().Int("width", s.width).Int("height", s.height).Msg("camera stream ready")
		}
		s.latest = &Frame{Image: img, Width: b.Dx(), Height: b.Dy()}
		s.mu.Unlock()
	}
}

// readMJPEGFrame scans to the next SOI marker and returns everything
// through the matching EOI.
func readMJPEGFrame(br *bufio.Reader) ([]byte, error) {
	for {
		b, err := br.ReadByte()
		if err != nil {
			return nil, err
		}
		if b != jpegSOI[0] {
			continue
		}
		next, err := br.ReadByte()
		if err != nil {
			return nil, err
		}
		if next != jpegSOI[1] {
			continue
		}
		buf := []byte{jpegSOI[0], jpegSOI[1]}
		var prev byte
		for {
			b, err := br.ReadByte()
			if err != nil {
				return nil, err
			}
			buf = append(buf, b)
			if prev == jpegEOI[0] && b == jpegEOI[1] {
				return buf, nil
			}
			prev = b
		}
	}
}

func classifyStreamError(err error, stderr string) error {
	switch {
	case strings.Contains(stderr, "Permission denied"):
		return ErrPermissionDenied
	case strings.Contains(stderr, "No such file or directory"),
		strings.Contains(stderr, "No such device"):
		return ErrNoDevice
	case err == io.EOF:
		return fmt.Errorf("%w: camera stream ended", ErrNoDevice)
	default:
		return fmt.Errorf("camera stream: %w", err)
	}
}

func (s *V4L2Source) CurrentFrame() (Frame, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.ready || s.latest == nil {
		return Frame{}, ErrNotReady
	}
	return *s.latest, nil
}

func (s *V4L2Source) Resolution() (int, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height
}

func (s *V4L2Source) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// WaitReady blocks until the first frame is decoded, the stream fails, or
// the context expires.
func (s *V4L2Source) WaitReady(ctx context.Context) error {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	for {
		s.mu.RLock()
		ready, runErr := s.ready, s.runErr
		s.mu.RUnlock()
		if ready {
			return nil
		}
		if runErr != nil {
			return runErr
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (s *V4L2Source) Close() error {
	s.cancel()
	if s.cmd.Process != nil {
		_ = s.cmd.Wait()
	}
	return nil
}
