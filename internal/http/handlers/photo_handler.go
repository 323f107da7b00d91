// README: Photo handlers for preview, download, and the capture journal.
package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"geosnap/internal/modules/capture"
	"geosnap/internal/modules/output"
)

type PhotoHandler struct {
	publisher *output.Publisher
	journal   *capture.Store
}

func NewPhotoHandler(pub *output.Publisher, journal *capture.Store) *PhotoHandler {
	return &PhotoHandler{publisher: pub, journal: journal}
}

// Preview serves the latest composite inline.
func (h *PhotoHandler) Preview(c *gin.Context) {
	art := h.publisher.Latest()
	if art == nil {
		writeError(c, http.StatusNotFound, "no photo captured yet")
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, art.ContentType, art.Data)
}

// Download serves the latest composite as an attachment under the fixed
// download filename.
func (h *PhotoHandler) Download(c *gin.Context) {
	art := h.publisher.Latest()
	if art == nil {
		writeError(c, http.StatusNotFound, "no photo captured yet")
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", art.Filename))
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, art.ContentType, art.Data)
}

// Recent lists journaled capture metadata, newest first. 404 when the
// journal is disabled.
func (h *PhotoHandler) Recent(c *gin.Context) {
	if h.journal == nil {
		writeError(c, http.StatusNotFound, "capture journal disabled")
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	records, err := h.journal.Recent(c.Request.Context(), limit)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"captures": records})
}
