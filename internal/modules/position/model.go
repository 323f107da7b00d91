// README: Position model and acquisition error set.
package position

import (
	"errors"
	"time"
)

// Position is a single resolved geographic fix. It is produced once per
// session and never mutated; later captures reuse it as-is.
type Position struct {
	Latitude   float64
	Longitude  float64
	AcquiredAt time.Time
}

// IsZero reports whether the fix has not been acquired yet.
func (p Position) IsZero() bool {
	return p.AcquiredAt.IsZero()
}

var (
	ErrPermissionDenied = errors.New("position: permission denied")
	ErrUnavailable      = errors.New("position: unavailable")
	ErrTimedOut         = errors.New("position: timed out")
)

// Phase is the acquisition state surfaced to the status line.
type Phase string

const (
	PhaseRequesting Phase = "requesting"
	PhaseAcquired   Phase = "acquired"
	PhaseFailed     Phase = "failed"
)

// StatusFunc receives phase transitions during acquisition.
type StatusFunc func(phase Phase, detail string)
