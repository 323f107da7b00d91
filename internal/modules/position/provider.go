// README: One-shot position providers (HTTP geolocate endpoint, static fallback).
package position

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Provider acquires exactly one fresh fix. Implementations never poll
// continuously and never serve a cached fix.
type Provider interface {
	Acquire(ctx context.Context) (Position, error)
}

// HTTPProvider issues a single geolocate request against a
// Google-geolocation-shaped endpoint.
type HTTPProvider struct {
	url          string
	timeout      time.Duration
	highAccuracy bool
	client       *http.Client
	status       StatusFunc
	log          zerolog.Logger
}

func NewHTTPProvider(url string, timeoutMs int, highAccuracy bool, status StatusFunc, log zerolog.Logger) *HTTPProvider {
	if timeoutMs <= 0 {
		timeoutMs = 20000
	}
	return &HTTPProvider{
		url:          url,
		timeout:      time.Duration(timeoutMs) * time.Millisecond,
		highAccuracy: highAccuracy,
		client:       &http.Client{},
		status:       status,
		log:          log,
	}
}

type geolocateRequest struct {
	ConsiderIP   bool `json:"considerIp"`
	HighAccuracy bool `json:"highAccuracy"`
}

type geolocateResponse struct {
	Location *struct {
		Lat float64 `json:"lat"`
		Lng float64 `json:"lng"`
	} `json:"location"`
	Accuracy float64 `json:"accuracy"`
}

func (p *HTTPProvider) Acquire(ctx context.Context) (Position, error) {
	p.signal(PhaseRequesting, "requesting location fix")

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	body, err := json.Marshal(geolocateRequest{ConsiderIP: true, HighAccuracy: p.highAccuracy})
	if err != nil {
		return Position{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(body))
	if err != nil {
		return Position{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	// A fresh fix is always demanded; cached positions are rejected outright.
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := p.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			p.signal(PhaseFailed, "location request timed out")
			return Position{}, ErrTimedOut
		}
		p.signal(PhaseFailed, "location service unreachable")
		return Position{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		p.signal(PhaseFailed, "location permission denied")
		return Position{}, ErrPermissionDenied
	case resp.StatusCode != http.StatusOK:
		p.signal(PhaseFailed, "location service unavailable")
		return Position{}, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var out geolocateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		// The deadline can also fire mid-body, after the headers arrived.
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			p.signal(PhaseFailed, "location request timed out")
			return Position{}, ErrTimedOut
		}
		p.signal(PhaseFailed, "location response unreadable")
		return Position{}, fmt.Errorf("%w: decode: %v", ErrUnavailable, err)
	}
	if out.Location == nil {
		p.signal(PhaseFailed, "location service returned no fix")
		return Position{}, fmt.Errorf("%w: response carried no location", ErrUnavailable)
	}

	pos := Position{
		Latitude:   out.Location.Lat,
		Longitude:  out.Location.Lng,
		AcquiredAt: time.Now(),
	}
	p.log.Info().
		Float64("lat", pos.Latitude).
		Float64("lon", pos.Longitude).
		Float64("accuracy_m", out.Accuracy).
		Msg("position fix acquired")
	p.signal(PhaseAcquired, "location acquired")
	return pos, nil
}

func (p *HTTPProvider) signal(phase Phase, detail string) {
	if p.status != nil {
		p.status(phase, detail)
	}
}

// StaticProvider serves a fixed coordinate pair from configuration. Used on
// rigs with no geolocation endpoint.
type StaticProvider struct {
	Latitude  float64
	Longitude float64
	Status    StatusFunc
}

func (p *StaticProvider) Acquire(ctx context.Context) (Position, error) {
	if p.Status != nil {
		p.Status(PhaseRequesting, "using configured location")
	}
	if p.Latitude == 0 && p.Longitude == 0 {
		if p.Status != nil {
			p.Status(PhaseFailed, "no static location configured")
		}
		return Position{}, fmt.Errorf("%w: static coordinates not configured", ErrUnavailable)
	}
	pos := Position{Latitude: p.Latitude, Longitude: p.Longitude, AcquiredAt: time.Now()}
	if p.Status != nil {
		p.Status(PhaseAcquired, "location acquired")
	}
	return pos, nil
}
