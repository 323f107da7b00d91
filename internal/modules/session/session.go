// README: Session orchestration; readiness chains, capture gating, re-entrancy lock.
package session

import (
	"context"
	"errors"
	"image"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"geosnap/internal/modules/camera"
	"geosnap/internal/modules/capture"
	"geosnap/internal/modules/composite"
	"geosnap/internal/modules/geocode"
	"geosnap/internal/modules/output"
	"geosnap/internal/modules/position"
)

var (
	// ErrBusy rejects a capture while another one is in flight.
	ErrBusy = errors.New("session: capture already in progress")
	// ErrNotReady rejects a capture while any prerequisite is missing.
	ErrNotReady = errors.New("session: capture prerequisites not met")
)

// ChainState tracks one readiness chain.
type ChainState string

const (
	ChainIdle    ChainState = "idle"
	ChainRunning ChainState = "initializing"
	ChainReady   ChainState = "ready"
	ChainFailed  ChainState = "failed"
)

// SnapshotRenderer produces a fresh map raster for a position.
type SnapshotRenderer interface {
	Render(ctx context.Context, lat, lon float64) (image.Image, error)
}

// CameraOpener opens the selected video input device.
type CameraOpener interface {
	Open(ctx context.Context) (camera.FrameSource, error)
}

type Deps struct {
	Provider  position.Provider
	Geocoder  geocode.Geocoder
	Camera    CameraOpener
	Renderer  SnapshotRenderer
	Publisher *output.Publisher
	Journal   *capture.Store // optional
}

// Session owns the pipeline state: the fix, the address, the frame source,
// and the map view handle (held inside the renderer). Each field has a
// single writer: the location chain writes position and address, the camera
// chain writes the source.
type Session struct {
	provider  position.Provider
	geocoder  geocode.Geocoder
	camera    CameraOpener
	renderer  SnapshotRenderer
	publisher *output.Publisher
	journal   *capture.Store
	log       zerolog.Logger

	mu         sync.RWMutex
	pos        position.Position
	addr       geocode.Address
	source     camera.FrameSource
	locState   ChainState
	camState   ChainState
	statusLine string

	initMu    sync.Mutex
	capturing atomic.Bool
}

func New(deps Deps, log zerolog.Logger) *Session {
	return &Session{
		provider:   deps.Provider,
		geocoder:   deps.Geocoder,
		camera:     deps.Camera,
		renderer:   deps.Renderer,
		publisher:  deps.Publisher,
		journal:    deps.Journal,
		log:        log,
		locState:   ChainIdle,
		camState:   ChainIdle,
		statusLine: "initializing",
	}
}

// Init runs the two readiness chains: position→geocode (strictly in that
// order) and camera open. The chains are independent and run concurrently.
// Re-triggering Init re-runs only the chains that have not completed.
func (s *Session) Init(ctx context.Context) error {
	s.initMu.Lock()
	defer s.initMu.Unlock()

	s.mu.RLock()
	locDone := !s.pos.IsZero() && !s.addr.IsZero()
	camDone := s.source != nil && s.source.Ready()
	s.mu.RUnlock()

	var wg sync.WaitGroup
	var locErr, camErr error
	if !locDone {
		wg.Add(1)
		go func() {
			defer wg.Done()
			locErr = s.initLocation(ctx)
		}()
	}
	if !camDone {
		wg.Add(1)
		go func() {
			defer wg.Done()
			camErr = s.initCamera(ctx)
		}()
	}
	wg.Wait()

	if s.CaptureEnabled() {
		s.setStatus("ready to capture")
	}
	return errors.Join(locErr, camErr)
}

func (s *Session) initLocation(ctx context.Context) error {
	s.setLocState(ChainRunning, "requesting location fix")

	pos, err := s.provider.Acquire(ctx)
	if err != nil {
		s.setLocState(ChainFailed, locationMessage(err))
		return err
	}
	s.mu.Lock()
	s.pos = pos
	s.mu.Unlock()

	s.setLocState(ChainRunning, "looking up address")
	addr, err := s.geocoder.Reverse(ctx, pos.Latitude, pos.Longitude)
	if err != nil {
		// A failed lookup never partially overwrites a previous address.
		s.setLocState(ChainFailed, geocodeMessage(err))
		return err
	}
	s.mu.Lock()
	s.addr = addr
	s.mu.Unlock()

	s.setLocState(ChainReady, "location ready")
	return nil
}

func (s *Session) initCamera(ctx context.Context) error {
	s.setCamState(ChainRunning, "opening camera")

	// The frame source streams for the session lifetime, not just this
	// init call: an Init triggered over HTTP hands us a request-scoped
	// context that dies as soon as the response is written. Only the
	// bounded WaitReady below stays on the caller's context; shutdown is
	// owned by Close.
	src, err := s.camera.Open(context.WithoutCancel(ctx))
	if err != nil {
		s.setCamState(ChainFailed, cameraMessage(err))
		return err
	}
	if err := src.WaitReady(ctx); err != nil {
		_ = src.Close()
		s.setCamState(ChainFailed, cameraMessage(err))
		return err
	}

	s.mu.Lock()
	if s.source != nil {
		_ = s.source.Close()
	}
	s.source = src
	s.mu.Unlock()

	w, h := src.Resolution()
	s.log.Info().Int("width", w).Int("height", h).Msg("camera ready")
	s.setCamState(ChainReady, "camera ready")
	return nil
}

// CaptureEnabled reports whether position, address, and a ready frame
// source are all present at once.
func (s *Session) CaptureEnabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return !s.pos.IsZero() && !s.addr.IsZero() && s.source != nil && s.source.Ready()
}

// Result describes one finished capture.
type Result struct {
	ID         string    `json:"id"`
	Width      int       `json:"width"`
	Height     int       `json:"height"`
	CapturedAt time.Time `json:"captured_at"`
}

// Capture produces one annotated photograph: current frame, a fresh map
// snapshot for the session position, composite, publish. At most one
// capture runs at a time; a second call while one is in flight gets
// ErrBusy. Missing prerequisites make the call a no-op with a status
// message, never a crash.
func (s *Session) Capture(ctx context.Context) (Result, error) {
	if !s.capturing.CompareAndSwap(false, true) {
		return Result{}, ErrBusy
	}
	defer s.capturing.Store(false)

	s.mu.RLock()
	pos, addr, source := s.pos, s.addr, s.source
	s.mu.RUnlock()

	if pos.IsZero() || addr.IsZero() || source == nil || !source.Ready() {
		s.setStatus("cannot capture: waiting for camera and location")
		return Result{}, ErrNotReady
	}

	frame, err := source.CurrentFrame()
	if err != nil {
		s.setStatus(cameraMessage(err))
		return Result{}, err
	}

	// The map may have been re-centered since the last capture, so the
	// snapshot is always rendered fresh.
	snap, err := s.renderer.Render(ctx, pos.Latitude, pos.Longitude)
	if err != nil {
		s.setStatus("capture cancelled")
		return Result{}, err
	}

	now := time.Now()
	img, err := composite.Compose(frame, addr, pos, snap, now)
	if err != nil {
		s.setStatus("compositing failed")
		return Result{}, err
	}

	art, err := s.publisher.Publish(img)
	if err != nil {
		s.setStatus("could not encode photo")
		return Result{}, err
	}

	res := Result{
		ID:         uuid.NewString(),
		Width:      art.Width,
		Height:     art.Height,
		CapturedAt: now,
	}
	if s.journal != nil {
		rec := capture.Record{
			ID:          res.ID,
			Latitude:    pos.Latitude,
			Longitude:   pos.Longitude,
			DisplayName: addr.DisplayName,
			Width:       res.Width,
			Height:      res.Height,
			CapturedAt:  now,
		}
		if err := s.journal.Append(ctx, rec); err != nil {
			s.log.Warn().Err(err).Str("capture_id", res.ID).Msg("journal append failed")
		}
	}

	s.log.Info().
		Str("capture_id", res.ID).
		Int("width", res.Width).
		Int("height", res.Height).
		Msg("photo captured")
	s.setStatus("photo captured")
	return res, nil
}

// Status is the state surfaced to the UI layer.
type Status struct {
	Location       ChainState `json:"location"`
	Camera         ChainState `json:"camera"`
	CaptureEnabled bool       `json:"capture_enabled"`
	Message        string     `json:"message"`
	Address        string     `json:"address,omitempty"`
}

func (s *Session) Status() Status {
	enabled := s.CaptureEnabled()
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Status{
		Location:       s.locState,
		Camera:         s.camState,
		CaptureEnabled: enabled,
		Message:        s.statusLine,
		Address:        s.addr.DisplayName,
	}
}

func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.source != nil {
		_ = s.source.Close()
		s.source = nil
	}
}

func (s *Session) setStatus(line string) {
	s.mu.Lock()
	s.statusLine = line
	s.mu.Unlock()
}

func (s *Session) setLocState(state ChainState, line string) {
	s.mu.Lock()
	s.locState = state
	s.statusLine = line
	s.mu.Unlock()
}

func (s *Session) setCamState(state ChainState, line string) {
	s.mu.Lock()
	s.camState = state
	s.statusLine = line
	s.mu.Unlock()
}

// Distinct human-readable messages per error kind, so the user knows what
// corrective action to take.
func locationMessage(err error) string {
	switch {
	case errors.Is(err, position.ErrPermissionDenied):
		return "location permission denied; grant access and retry"
	case errors.Is(err, position.ErrTimedOut):
		return "location request timed out; retry"
	case errors.Is(err, position.ErrUnavailable):
		return "location unavailable; check connectivity"
	default:
		return "location error: " + err.Error()
	}
}

func geocodeMessage(err error) string {
	switch {
	case errors.Is(err, geocode.ErrNotFound):
		return "no address found for this location"
	case errors.Is(err, geocode.ErrTransport):
		return "address lookup failed; check connectivity"
	default:
		return "address lookup error: " + err.Error()
	}
}

func cameraMessage(err error) string {
	switch {
	case errors.Is(err, camera.ErrPermissionDenied):
		return "camera permission denied; grant access and retry"
	case errors.Is(err, camera.ErrNoDevice):
		return "no camera found; connect a device and retry"
	case errors.Is(err, camera.ErrNotReady):
		return "camera is still starting up"
	default:
		return "camera error: " + err.Error()
	}
}
