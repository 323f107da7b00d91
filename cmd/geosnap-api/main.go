// README: Entry point; loads config, wires the capture pipeline, starts the HTTP server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"geosnap/internal/config"
	httptransport "geosnap/internal/http"
	"geosnap/internal/infra"
	"geosnap/internal/modules/camera"
	"geosnap/internal/modules/capture"
	"geosnap/internal/modules/geocode"
	"geosnap/internal/modules/mapsnap"
	"geosnap/internal/modules/output"
	"geosnap/internal/modules/position"
	"geosnap/internal/modules/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Exit(1)
	}

	log := infra.NewLogger(os.Getenv("GEOSNAP_PRETTY_LOG") != "")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var journal *capture.Store
	if cfg.DB.DSN != "" {
		dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
		if err != nil {
			log.Fatal().Err(err).Msg("postgres init")
		}
		defer dbPool.Close()
		journal = capture.NewStore(dbPool)
		if err := journal.EnsureSchema(ctx); err != nil {
			log.Fatal().Err(err).Msg("capture schema")
		}
	}

	cache := mapsnap.NewTileCache(nil)
	if cfg.Redis.Addr != "" {
		cache = mapsnap.NewTileCache(infra.NewRedis(cfg.Redis.Addr))
	}

	var provider position.Provider
	switch cfg.Position.Backend {
	case "static":
		provider = &position.StaticProvider{
			Latitude:  cfg.Position.Latitude,
			Longitude: cfg.Position.Longitude,
		}
	default:
		provider = position.NewHTTPProvider(
			cfg.Position.URL,
			cfg.Position.TimeoutMs,
			cfg.Position.HighAccuracy,
			nil,
			log,
		)
	}

	var geocoder geocode.Geocoder
	switch cfg.Geocode.Backend {
	case "google":
		g, err := geocode.NewGoogle(cfg.Geocode.GoogleKey, cfg.Geocode.Language)
		if err != nil {
			log.Fatal().Err(err).Msg("google geocoder init")
		}
		geocoder = g
	default:
		geocoder = geocode.NewNominatim(cfg.Geocode.NominatimURL, cfg.Geocode.Language, log)
	}

	fetcher := mapsnap.NewTileFetcher(cfg.Map.TileURL, cache)
	renderer := mapsnap.NewRenderer(fetcher, cfg.Map.Zoom, cfg.Map.SizePx, cfg.Map.SettleMs, log)
	publisher := output.NewPublisher(cfg.Output.JPEGQuality)

	sess := session.New(session.Deps{
		Provider:  provider,
		Geocoder:  geocoder,
		Camera:    camera.NewManager(cfg.Camera, log),
		Renderer:  renderer,
		Publisher: publisher,
		Journal:   journal,
	}, log)
	defer sess.Close()

	// Readiness chains start immediately; clients can still trigger a
	// retry through POST /api/session/init.
	go func() {
		if err := sess.Init(ctx); err != nil {
			log.Warn().Err(err).Msg("session init incomplete")
		}
	}()

	server := &http.Server{
		Addr:    cfg.HTTP.Addr,
		Handler: httptransport.NewRouter(sess, publisher, journal, log),
	}

	go func() {
		<-ctx.Done()
		_ = server.Shutdown(context.Background())
	}()

	log.Info().Str("addr", cfg.HTTP.Addr).Msg("listening")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server")
	}
}
