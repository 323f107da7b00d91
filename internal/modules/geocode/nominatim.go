// README: Nominatim reverse-geocoding client.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/rs/zerolog"
)

// Nominatim queries an OSM nominatim endpoint. One request per lookup,
// no retry, no backoff.
type Nominatim struct {
	baseURL  string
	language string
	client   *http.Client
	log      zerolog.Logger
}

func NewNominatim(baseURL, language string, log zerolog.Logger) *Nominatim {
	return &Nominatim{
		baseURL:  baseURL,
		language: language,
		client:   &http.Client{},
		log:      log,
	}
}

type nominatimAddress struct {
	City     string `json:"city"`
	Town     string `json:"town"`
	Village  string `json:"village"`
	State    string `json:"state"`
	Country  string `json:"country"`
	Postcode string `json:"postcode"`
}

// nominatimResponse mirrors the relevant parts of the OSM reverse payload.
type nominatimResponse struct {
	DisplayName string            `json:"display_name"`
	Address     *nominatimAddress `json:"address"`
}

func (n *Nominatim) Reverse(ctx context.Context, lat, lon float64) (Address, error) {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	q.Set("format", "jsonv2")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.baseURL+"/reverse?"+q.Encode(), nil)
	if err != nil {
		return Address{}, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	req.Header.Set("Accept-Language", n.language)

	resp, err := n.client.Do(req)
	if err != nil {
		return Address{}, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Address{}, fmt.Errorf("%w: status %d", ErrTransport, resp.StatusCode)
	}

	var out nominatimResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Address{}, fmt.Errorf("%w: decode: %v", ErrTransport, err)
	}
	if out.Address == nil || out.DisplayName == "" {
		return Address{}, ErrNotFound
	}

	addr := Address{
		City:        firstNonEmpty(out.Address.City, out.Address.Town, out.Address.Village),
		State:       out.Address.State,
		Country:     out.Address.Country,
		PostalCode:  out.Address.Postcode,
		DisplayName: out.DisplayName,
	}
	n.log.Info().
		Str("city", addr.City).
		Str("postal_code", addr.PostalCode).
		Msg("reverse geocode resolved")
	return addr, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
