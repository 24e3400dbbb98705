package handlers

import (
	"net/http"

	"asset-scan/internal/scan"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// OpenCamera starts a live session the browser feeds frames into.
func (h *Handler) OpenCamera(c *gin.Context) {
	cam, err := h.Cameras.Open()
	if err != nil {
		log.WithError(err).Error("failed to open scan session")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to start scanner"})
		return
	}
	c.JSON(http.StatusCreated, cam.Status())
}

// CameraFrame takes one frame and answers with the session state. Once the state
// is "decoded" the page submits the text to /scan/decode.
func (h *Handler) CameraFrame(c *gin.Context) {
	id := c.Param("id")

	fh, err := c.FormFile("frame")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "frame is required"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "frame is unreadable"})
		return
	}
	defer f.Close()

	img, err := scan.ReadImage(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "frame is not an image"})
		return
	}

	status, err := h.Cameras.Feed(id, img)
	if err != nil {
		if errors.Is(err, scan.ErrUnknownSession) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Scanner session expired"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, status)
}

// StopCamera releases the session; stopping twice is harmless.
func (h *Handler) StopCamera(c *gin.Context) {
	h.Cameras.Close(c.Param("id"))
	c.Status(http.StatusNoContent)
}
