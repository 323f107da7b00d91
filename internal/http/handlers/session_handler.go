// README: Session handlers for status/init/capture.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"geosnap/internal/modules/session"
)

type SessionHandler struct {
	session *session.Session
}

func NewSessionHandler(sess *session.Session) *SessionHandler {
	return &SessionHandler{session: sess}
}

func (h *SessionHandler) Status(c *gin.Context) {
	writeJSON(c, http.StatusOK, h.session.Status())
}

// Init (re-)runs the readiness chains. Chains that already completed are
// left alone, so a retry after a denied permission is cheap.
func (h *SessionHandler) Init(c *gin.Context) {
	if err := h.session.Init(c.Request.Context()); err != nil {
		writeJSON(c, http.StatusAccepted, h.session.Status())
		return
	}
	writeJSON(c, http.StatusOK, h.session.Status())
}

func (h *SessionHandler) Capture(c *gin.Context) {
	res, err := h.session.Capture(c.Request.Context())
	if err != nil {
		writeCaptureError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, res)
}
