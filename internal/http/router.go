// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"geosnap/internal/http/handlers"
	"geosnap/internal/http/middleware"
	"geosnap/internal/modules/capture"
	"geosnap/internal/modules/output"
	"geosnap/internal/modules/session"
)

func NewRouter(
	sess *session.Session,
	publisher *output.Publisher,
	journal *capture.Store,
	log zerolog.Logger,
) http.Handler {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(middleware.Recovery(log))
	r.Use(middleware.Logging(log))
	r.Use(cors.Default())

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	sessionHandler := handlers.NewSessionHandler(sess)
	r.GET("/api/session/status", sessionHandler.Status)
	r.POST("/api/session/init", sessionHandler.Init)
	r.POST("/api/capture", sessionHandler.Capture)

	photoHandler := handlers.NewPhotoHandler(publisher, journal)
	r.GET("/api/photo", photoHandler.Preview)
	r.GET("/api/photo/download", photoHandler.Download)
	r.GET("/api/captures", photoHandler.Recent)

	return r
}
