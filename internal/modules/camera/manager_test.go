// README: Device selection and source behavior tests.
package camera

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"
)

func TestParseDeviceList(t *testing.T) {
	out := "Rear Camera: Rear Came (usb-0000:00:14.0-1):\n" +
		"\t/dev/video2\n" +
		"\t/dev/video3\n" +
		"\n" +
		"Integrated Camera (usb-0000:00:14.0-4):\n" +
		"\t/dev/video0\n" +
		"\t/dev/video1\n"

	devices := parseDeviceList(out)
	if len(devices) != 4 {
		t.Fatalf("got %d devices, want 4", len(devices))
	}
	if devices[0].Path != "/dev/video2" || devices[0].Label != "Rear Camera: Rear Came (usb-0000:00:14.0-1)" {
		t.Fatalf("first device = %+v", devices[0])
	}
	if devices[2].Label != "Integrated Camera (usb-0000:00:14.0-4)" {
		t.Fatalf("third device label = %q", devices[2].Label)
	}
}

func TestSelectDevice(t *testing.T) {
	cases := []struct {
		name    string
		devices []Device
		hint    string
		want    string // selected path, "" for nil
	}{
		{
			name: "back label preferred",
			devices: []Device{
				{Path: "/dev/video0", Label: "Front Camera"},
				{Path: "/dev/video2", Label: "BACK Camera"},
			},
			want: "/dev/video2",
		},
		{
			name: "rear label matches case-insensitively",
			devices: []Device{
				{Path: "/dev/video0", Label: "Integrated Webcam"},
				{Path: "/dev/video4", Label: "USB Rear-View"},
			},
			want: "/dev/video4",
		},
		{
			name: "hint used when no label matches",
			devices: []Device{
				{Path: "/dev/video0", Label: "Webcam A"},
				{Path: "/dev/video2", Label: "Webcam B"},
			},
			hint: "/dev/video2",
			want: "/dev/video2",
		},
		{
			name: "first device as last resort",
			devices: []Device{
				{Path: "/dev/video0", Label: "Webcam A"},
				{Path: "/dev/video2", Label: "Webcam B"},
			},
			hint: "/dev/video9",
			want: "/dev/video0",
		},
		{
			name: "no devices",
			want: "",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := selectDevice(tc.devices, tc.hint)
			if tc.want == "" {
				if got != nil {
					t.Fatalf("selected %+v, want nil", got)
				}
				return
			}
			if got == nil || got.Path != tc.want {
				t.Fatalf("selected %+v, want path %s", got, tc.want)
			}
		})
	}
}

func TestReadMJPEGFrame(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 6))
	var one bytes.Buffer
	if err := jpeg.Encode(&one, img, nil); err != nil {
		t.Fatalf("encode: %v", err)
	}

	// Two concatenated frames with stream noise in front.
	var stream bytes.Buffer
	stream.Write([]byte{0x00, 0x01, 0x02})
	stream.Write(one.Bytes())
	stream.Write(one.Bytes())

	br := bufio.NewReader(&stream)
	for i := 0; i < 2; i++ {
		raw, err := readMJPEGFrame(br)
		if err != nil {
			t.Fatalf("frame %d: %v", i, err)
		}
		decoded, err := jpeg.Decode(bytes.NewReader(raw))
		if err != nil {
			t.Fatalf("frame %d decode: %v", i, err)
		}
		if decoded.Bounds().Dx() != 8 || decoded.Bounds().Dy() != 6 {
			t.Fatalf("frame %d bounds = %v", i, decoded.Bounds())
		}
	}
}

func TestFileSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "still.jpg")
	img := image.NewRGBA(image.Rect(0, 0, 320, 240))
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	src, err := OpenFileSource(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer src.Close()

	if !src.Ready() {
		t.Fatal("file source should be ready immediately")
	}
	if err := src.WaitReady(context.Background()); err != nil {
		t.Fatalf("wait ready: %v", err)
	}
	w, h := src.Resolution()
	if w != 320 || h != 240 {
		t.Fatalf("resolution = %dx%d, want 320x240", w, h)
	}
	frame, err := src.CurrentFrame()
	if err != nil {
		t.Fatalf("current frame: %v", err)
	}
	if frame.Width != 320 || frame.Height != 240 {
		t.Fatalf("frame = %dx%d", frame.Width, frame.Height)
	}
}

func TestFileSourceMissing(t *testing.T) {
	if _, err := OpenFileSource(""); !errors.Is(err, ErrNoDevice) {
		t.Fatalf("empty path err = %v, want ErrNoDevice", err)
	}
	if _, err := OpenFileSource("/nonexistent/still.jpg"); !errors.Is(err, ErrNoDevice) {
		t.Fatalf("missing file err = %v, want ErrNoDevice", err)
	}
}

func TestV4L2SourceNotReady(t *testing.T) {
	s := &V4L2Source{}
	if _, err := s.CurrentFrame(); !errors.Is(err, ErrNotReady) {
		t.Fatalf("err = %v, want ErrNotReady", err)
	}
}
