// README: Config loader with env defaults for HTTP, camera, geocoding, and map settings.
package config

import (
	"os"
	"strconv"
)

type PositionConfig struct {
	Backend      string // "http" or "static"
	URL          string
	TimeoutMs    int
	HighAccuracy bool
	// Static backend coordinates, used when no geolocation endpoint is reachable.
	Latitude  float64
	Longitude float64
}

type GeocodeConfig struct {
	Backend      string // "nominatim" or "google"
	NominatimURL string
	Language     string
	GoogleKey    string
}

type CameraConfig struct {
	Backend    string // "v4l2" or "file"
	DeviceHint string
	FilePath   string
	Width      int
	Height     int
}

type MapConfig struct {
	TileURL  string
	Zoom     int
	SizePx   int
	SettleMs int
}

type Config struct {
	HTTP struct {
		Addr string
	}
	DB struct {
		DSN string
	}
	Redis struct {
		Addr string
	}
	Position PositionConfig
	Geocode  GeocodeConfig
	Camera   CameraConfig
	Map      MapConfig
	Output   struct {
		JPEGQuality int
	}
}

func Load() (Config, error) {
	var cfg Config
	cfg.HTTP.Addr = envOrDefault("GEOSNAP_HTTP_ADDR", ":8080")
	cfg.DB.DSN = envOrDefault("GEOSNAP_DB_DSN", "")
	cfg.Redis.Addr = envOrDefault("GEOSNAP_REDIS_ADDR", "")

	cfg.Position.Backend = envOrDefault("GEOSNAP_POSITION_BACKEND", "http")
	cfg.Position.URL = envOrDefault("GEOSNAP_POSITION_URL", "http://localhost:8980/v1/geolocate")
	cfg.Position.TimeoutMs = envOrDefaultInt("GEOSNAP_POSITION_TIMEOUT_MS", 20000)
	cfg.Position.HighAccuracy = envOrDefaultBool("GEOSNAP_POSITION_HIGH_ACCURACY", true)
	cfg.Position.Latitude = envOrDefaultFloat("GEOSNAP_POSITION_LAT", 0)
	cfg.Position.Longitude = envOrDefaultFloat("GEOSNAP_POSITION_LON", 0)

	cfg.Geocode.Backend = envOrDefault("GEOSNAP_GEOCODE_BACKEND", "nominatim")
	cfg.Geocode.NominatimURL = envOrDefault("GEOSNAP_NOMINATIM_URL", "https://nominatim.openstreetmap.org")
	cfg.Geocode.Language = envOrDefault("GEOSNAP_GEOCODE_LANG", "en")
	cfg.Geocode.GoogleKey = envOrDefault("GOOGLE_MAPS_API_KEY", "")

	cfg.Camera.Backend = envOrDefault("GEOSNAP_CAMERA_BACKEND", "v4l2")
	cfg.Camera.DeviceHint = envOrDefault("GEOSNAP_CAMERA_DEVICE", "")
	cfg.Camera.FilePath = envOrDefault("GEOSNAP_CAMERA_FILE", "")
	cfg.Camera.Width = envOrDefaultInt("GEOSNAP_CAMERA_WIDTH", 4096)
	cfg.Camera.Height = envOrDefaultInt("GEOSNAP_CAMERA_HEIGHT", 3072)

	cfg.Map.TileURL = envOrDefault("GEOSNAP_TILE_URL", "https://tile.openstreetmap.org")
	cfg.Map.Zoom = envOrDefaultInt("GEOSNAP_MAP_ZOOM", 15)
	cfg.Map.SizePx = envOrDefaultInt("GEOSNAP_MAP_SIZE", 400)
	cfg.Map.SettleMs = envOrDefaultInt("GEOSNAP_MAP_SETTLE_MS", 0)

	cfg.Output.JPEGQuality = envOrDefaultInt("GEOSNAP_JPEG_QUALITY", 92)
	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrDefaultInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envOrDefaultFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			return n
		}
	}
	return def
}

func envOrDefaultBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}
