// README: Reverse-geocoding address record and error set.
package geocode

import (
	"context"
	"errors"
)

// Address is the structured result of one reverse lookup. Optional fields
// default to the empty string; DisplayName is always non-empty on success.
// A record is replaced wholesale on re-lookup, never partially mutated.
type Address struct {
	City        string
	State       string
	Country     string
	PostalCode  string
	DisplayName string
}

// IsZero reports whether a lookup has produced this record.
func (a Address) IsZero() bool {
	return a.DisplayName == ""
}

var (
	// ErrNotFound means the response carried no address at all.
	ErrNotFound = errors.New("geocode: no address for coordinates")
	// ErrTransport covers network and parse failures.
	ErrTransport = errors.New("geocode: transport failure")
)

// Geocoder turns a coordinate pair into an Address. One attempt per call;
// a failed lookup surfaces immediately and the caller re-triggers manually.
type Geocoder interface {
	Reverse(ctx context.Context, lat, lon float64) (Address, error)
}
