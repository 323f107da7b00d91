// README: Map snapshot renderer; one persistent view, rasterized per capture.
package mapsnap

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/draw"
	"math"
	"sync"
	"time"

	_ "image/jpeg"
	_ "image/png"

	"github.com/rs/zerolog"
)

// DefaultZoom matches the product's fixed map scale.
const DefaultZoom = 15

// Renderer owns the persistent map view and rasterizes it on demand.
// Rendering is best effort: a tile that cannot be fetched degrades to a
// blank tile instead of aborting the capture.
type Renderer struct {
	fetcher *TileFetcher
	zoom    int
	sizePx  int
	settle  time.Duration
	log     zerolog.Logger

	mu   sync.Mutex
	view *View
}

func NewRenderer(fetcher *TileFetcher, zoom, sizePx, settleMs int, log zerolog.Logger) *Renderer {
	if zoom <= 0 {
		zoom = DefaultZoom
	}
	if sizePx <= 0 {
		sizePx = 400
	}
	return &Renderer{
		fetcher: fetcher,
		zoom:    zoom,
		sizePx:  sizePx,
		settle:  time.Duration(settleMs) * time.Millisecond,
		log:     log,
	}
}

// Render centers the view on the position and rasterizes it. The first call
// creates the view and places the marker; later calls re-center the existing
// view and move the marker. Rasterization waits for every tile fetch to
// complete before drawing, so background imagery is loaded first.
func (r *Renderer) Render(ctx context.Context, lat, lon float64) (image.Image, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.view == nil {
		r.view = &View{Zoom: r.zoom, Width: r.sizePx, Height: r.sizePx}
	}
	r.view.CenterLat, r.view.CenterLon = lat, lon
	r.view.Marker = Marker{Lat: lat, Lon: lon}
	// Re-validate pixel bounds on every render; the surface may have been
	// reconfigured since the last rasterization.
	width, height := r.view.Width, r.view.Height

	type slot struct {
		dx, dy int
		tx, ty int
		raw    []byte
	}

	cx, cy := tileCoords(lat, lon, r.view.Zoom)
	originX := cx*tilePx - float64(width)/2
	originY := cy*tilePx - float64(height)/2

	maxTile := int(math.Exp2(float64(r.view.Zoom)))
	firstTX := int(math.Floor(originX / tilePx))
	lastTX := int(math.Floor((originX + float64(width) - 1) / tilePx))
	firstTY := int(math.Floor(originY / tilePx))
	lastTY := int(math.Floor((originY + float64(height) - 1) / tilePx))

	var slots []*slot
	for ty := firstTY; ty <= lastTY; ty++ {
		for tx := firstTX; tx <= lastTX; tx++ {
			slots = append(slots, &slot{
				dx: int(math.Round(float64(tx*tilePx) - originX)),
				dy: int(math.Round(float64(ty*tilePx) - originY)),
				tx: ((tx % maxTile) + maxTile) % maxTile,
				ty: ty,
			})
		}
	}

	var wg sync.WaitGroup
	for _, s := range slots {
		if s.ty < 0 || s.ty >= maxTile {
			continue
		}
		wg.Add(1)
		go func(s *slot) {
			defer wg.Done()
			raw, err := r.fetcher.Fetch(ctx, r.view.Zoom, s.tx, s.ty)
			if err != nil {
				r.log.Warn().Err(err).Int("x", s.tx).Int("y", s.ty).Msg("tile fetch failed")
				return
			}
			s.raw = raw
		}(s)
	}
	wg.Wait()

	// Optional extra settle for rate-limited tile servers.
	if r.settle > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(r.settle):
		}
	}

	canvas := image.NewRGBA(image.Rect(0, 0, width, height))
	blank := image.NewUniform(color.RGBA{R: 0xdd, G: 0xdd, B: 0xdd, A: 0xff})
	draw.Draw(canvas, canvas.Bounds(), blank, image.Point{}, draw.Src)

	for _, s := range slots {
		dst := image.Rect(s.dx, s.dy, s.dx+tilePx, s.dy+tilePx)
		if s.raw == nil {
			continue
		}
		tile, _, err := image.Decode(bytes.NewReader(s.raw))
		if err != nil {
			continue
		}
		draw.Draw(canvas, dst, tile, tile.Bounds().Min, draw.Src)
	}

	drawMarker(canvas, width/2, height/2)
	return canvas, nil
}

// Snapshot of the current view state, for status reporting.
func (r *Renderer) CurrentView() *View {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.view == nil {
		return nil
	}
	v := *r.view
	return &v
}

// drawMarker paints a filled circle with a white rim at the view center.
func drawMarker(canvas *image.RGBA, cx, cy int) {
	const (
		rimRadius  = 9
		fillRadius = 7
	)
	rim := color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	fill := color.RGBA{R: 0xd3, G: 0x2f, B: 0x2f, A: 0xff}
	for dy := -rimRadius; dy <= rimRadius; dy++ {
		for dx := -rimRadius; dx <= rimRadius; dx++ {
			d2 := dx*dx + dy*dy
			switch {
			case d2 <= fillRadius*fillRadius:
				canvas.Set(cx+dx, cy+dy, fill)
			case d2 <= rimRadius*rimRadius:
				canvas.Set(cx+dx, cy+dy, rim)
			}
		}
	}
}
