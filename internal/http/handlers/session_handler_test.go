// README: Integration tests for the session and photo endpoints.
package handlers_test

import (
	"context"
	"encoding/json"
	"image"
	"image/color"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"geosnap/internal/http/handlers"
	"geosnap/internal/http/middleware"
	"geosnap/internal/modules/camera"
	"geosnap/internal/modules/geocode"
	"geosnap/internal/modules/output"
	"geosnap/internal/modules/position"
	"geosnap/internal/modules/session"
)

type stubProvider struct{}

func (stubProvider) Acquire(context.Context) (position.Position, error) {
	return position.Position{Latitude: 12.9716, Longitude: 77.5946, AcquiredAt: time.Now()}, nil
}

type stubGeocoder struct{}

func (stubGeocoder) Reverse(context.Context, float64, float64) (geocode.Address, error) {
	return geocode.Address{City: "Bengaluru", Country: "India", DisplayName: "Bengaluru, India"}, nil
}

type stubSource struct{ frame camera.Frame }

func (s *stubSource) CurrentFrame() (camera.Frame, error) { return s.frame, nil }
func (s *stubSource) Resolution() (int, int)              { return s.frame.Width, s.frame.Height }
func (s *stubSource) Ready() bool                         { return true }
func (s *stubSource) WaitReady(context.Context) error     { return nil }
func (s *stubSource) Close() error                        { return nil }

type stubOpener struct{ source camera.FrameSource }

func (o *stubOpener) Open(context.Context) (camera.FrameSource, error) { return o.source, nil }

type stubRenderer struct{}

func (stubRenderer) Render(context.Context, float64, float64) (image.Image, error) {
	img := image.NewRGBA(image.Rect(0, 0, 100, 100))
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			img.Set(x, y, color.RGBA{R: 60, G: 120, B: 200, A: 255})
		}
	}
	return img, nil
}

// buildTestRouter wires a Gin engine around a session backed by stubs.
func buildTestRouter(t *testing.T) (*gin.Engine, *output.Publisher) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	frame := image.NewRGBA(image.Rect(0, 0, 400, 300))
	for y := 0; y < 300; y++ {
		for x := 0; x < 400; x++ {
			frame.Set(x, y, color.RGBA{R: 200, G: 200, B: 200, A: 255})
		}
	}
	pub := output.NewPublisher(90)
	sess := session.New(session.Deps{
		Provider:  stubProvider{},
		Geocoder:  stubGeocoder{},
		Camera:    &stubOpener{source: &stubSource{frame: camera.Frame{Image: frame, Width: 400, Height: 300}}},
		Renderer:  stubRenderer{},
		Publisher: pub,
	}, zerolog.Nop())

	r := gin.New()
	r.Use(middleware.Recovery(zerolog.Nop()))
	h := handlers.NewSessionHandler(sess)
	r.GET("/api/session/status", h.Status)
	r.POST("/api/session/init", h.Init)
	r.POST("/api/capture", h.Capture)
	ph := handlers.NewPhotoHandler(pub, nil)
	r.GET("/api/photo", ph.Preview)
	r.GET("/api/photo/download", ph.Download)
	r.GET("/api/captures", ph.Recent)
	return r, pub
}

func doRequest(r *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	r.ServeHTTP(w, req)
	return w
}

func TestCaptureBeforeInit(t *testing.T) {
	r, _ := buildTestRouter(t)

	w := doRequest(r, http.MethodPost, "/api/capture")
	if w.Code != http.StatusPreconditionFailed {
		t.Fatalf("status %d, want %d", w.Code, http.StatusPreconditionFailed)
	}
}

func TestPhotoBeforeFirstCapture(t *testing.T) {
	r, _ := buildTestRouter(t)

	for _, path := range []string{"/api/photo", "/api/photo/download"} {
		if w := doRequest(r, http.MethodGet, path); w.Code != http.StatusNotFound {
			t.Fatalf("GET %s: status %d, want 404", path, w.Code)
		}
	}
}

func TestInitCaptureDownloadFlow(t *testing.T) {
	r, pub := buildTestRouter(t)

	w := doRequest(r, http.MethodPost, "/api/session/init")
	if w.Code != http.StatusOK {
		t.Fatalf("init status %d: %s", w.Code, w.Body.String())
	}
	var st session.Status
	if err := json.Unmarshal(w.Body.Bytes(), &st); err != nil {
		t.Fatalf("decode status: %v", err)
	}
	if !st.CaptureEnabled {
		t.Fatalf("capture not enabled after init: %+v", st)
	}

	w = doRequest(r, http.MethodPost, "/api/capture")
	if w.Code != http.StatusCreated {
		t.Fatalf("capture status %d: %s", w.Code, w.Body.String())
	}
	var res session.Result
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if res.Width != 400 || res.Height != 300 {
		t.Fatalf("result dimensions %dx%d, want 400x300", res.Width, res.Height)
	}
	if pub.Latest() == nil {
		t.Fatal("no artifact published")
	}

	w = doRequest(r, http.MethodGet, "/api/photo")
	if w.Code != http.StatusOK {
		t.Fatalf("preview status %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/jpeg" {
		t.Fatalf("preview content type %q", ct)
	}

	w = doRequest(r, http.MethodGet, "/api/photo/download")
	if w.Code != http.StatusOK {
		t.Fatalf("download status %d", w.Code)
	}
	if cd := w.Header().Get("Content-Disposition"); cd != `attachment; filename="geotagged_photo.jpg"` {
		t.Fatalf("unexpected disposition %q", cd)
	}
}

func TestRecentWithoutJournal(t *testing.T) {
	r, _ := buildTestRouter(t)

	if w := doRequest(r, http.MethodGet, "/api/captures"); w.Code != http.StatusNotFound {
		t.Fatalf("captures status %d, want 404", w.Code)
	}
}
