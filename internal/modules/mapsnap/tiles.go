// README: Slippy-map tile math and tile fetching.
package mapsnap

import (
	"context"
	"fmt"
	"io"
	"math"
	"net/http"
)

// tileCoords returns fractional tile coordinates for a position at a zoom
// level, per the OSM slippy-map convention.
func tileCoords(lat, lon float64, zoom int) (x, y float64) {
	n := math.Exp2(float64(zoom))
	x = (lon + 180.0) / 360.0 * n
	latRad := lat * math.Pi / 180.0
	y = (1.0 - math.Log(math.Tan(latRad)+1.0/math.Cos(latRad))/math.Pi) / 2.0 * n
	return x, y
}

const tilePx = 256

// TileFetcher pulls tiles from a fixed imagery base URL, consulting the
// cache first.
type TileFetcher struct {
	baseURL string
	cache   *TileCache
	client  *http.Client
}

func NewTileFetcher(baseURL string, cache *TileCache) *TileFetcher {
	return &TileFetcher{baseURL: baseURL, cache: cache, client: &http.Client{}}
}

func (f *TileFetcher) Fetch(ctx context.Context, zoom, x, y int) ([]byte, error) {
	if raw, ok := f.cache.Get(ctx, zoom, x, y); ok {
		return raw, nil
	}

	url := fmt.Sprintf("%s/%d/%d/%d.png", f.baseURL, zoom, x, y)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "geosnap/1.0")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tile %d/%d/%d: status %d", zoom, x, y, resp.StatusCode)
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	f.cache.Put(ctx, zoom, x, y, raw)
	return raw, nil
}
