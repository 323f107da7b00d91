// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"geosnap/internal/modules/camera"
	"geosnap/internal/modules/composite"
	"geosnap/internal/modules/geocode"
	"geosnap/internal/modules/position"
	"geosnap/internal/modules/session"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

func writeCaptureError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, session.ErrBusy):
		writeError(c, http.StatusConflict, err.Error())
	case errors.Is(err, session.ErrNotReady),
		errors.Is(err, composite.ErrMissingPrerequisite),
		errors.Is(err, camera.ErrNotReady):
		writeError(c, http.StatusPreconditionFailed, err.Error())
	case errors.Is(err, position.ErrPermissionDenied),
		errors.Is(err, camera.ErrPermissionDenied):
		writeError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, position.ErrUnavailable),
		errors.Is(err, position.ErrTimedOut),
		errors.Is(err, geocode.ErrTransport),
		errors.Is(err, camera.ErrNoDevice):
		writeError(c, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, geocode.ErrNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
