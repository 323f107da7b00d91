// README: Google Maps reverse-geocoding backend.
package geocode

import (
	"context"
	"fmt"

	"googlemaps.github.io/maps"
)

// Google resolves addresses through the Google Geocoding API. It maps the
// component list onto the same Address record the nominatim backend fills.
type Google struct {
	client   *maps.Client
	language string
}

func NewGoogle(apiKey, language string) (*Google, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &Google{client: client, language: language}, nil
}

func (g *Google) Reverse(ctx context.Context, lat, lon float64) (Address, error) {
	results, err := g.client.ReverseGeocode(ctx, &maps.GeocodingRequest{
		LatLng:   &maps.LatLng{Lat: lat, Lng: lon},
		Language: g.language,
	})
	if err != nil {
		return Address{}, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	if len(results) == 0 {
		return Address{}, ErrNotFound
	}

	best := results[0]
	addr := Address{DisplayName: best.FormattedAddress}
	for _, comp := range best.AddressComponents {
		for _, typ := range comp.Types {
			switch typ {
			case "locality", "postal_town":
				if addr.City == "" {
					addr.City = comp.LongName
				}
			case "administrative_area_level_1":
				addr.State = comp.LongName
			case "country":
				addr.Country = comp.LongName
			case "postal_code":
				addr.PostalCode = comp.LongName
			}
		}
	}
	if addr.DisplayName == "" {
		return Address{}, ErrNotFound
	}
	return addr, nil
}
