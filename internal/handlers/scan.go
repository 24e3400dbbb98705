package handlers

import (
	"net/http"

	"asset-scan/internal/asset"
	"asset-scan/internal/database"
	"asset-scan/internal/metrics"
	"asset-scan/internal/middleware"
	"asset-scan/internal/models"
	"asset-scan/internal/scan"
	"asset-scan/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// scanPage renders the scanner with whatever asset is loaded. The dropdown lists
// are best effort; a failed list only leaves its dropdown empty.
func (h *Handler) scanPage(c *gin.Context, status int, data gin.H) {
	lists, _, err := h.MasterData.Load(c.Request.Context(), middleware.Credentials(c))
	if unauthorized(c, err) {
		return
	}

	if data == nil {
		data = gin.H{}
	}
	if _, ok := data["form"]; !ok {
		data["form"] = asset.NewForm()
	}
	data["assetNames"] = lists.AssetNames()
	data["institutes"] = lists.Institutes()
	data["departments"] = lists.Departments()
	data["statusOptions"] = asset.StatusOptions
	data["assignedTypes"] = asset.AssignedTypeOptions
	render(c, status, "scan.html", data)
}

func (h *Handler) ShowScan(c *gin.Context) {
	h.scanPage(c, http.StatusOK, nil)
}

// Decode looks up the asset named by decoded QR text, posted by the camera
// script or typed in by hand.
func (h *Handler) Decode(c *gin.Context) {
	h.lookup(c, c.PostForm("text"))
}

// DecodeImage reads the QR code from an uploaded photo and looks it up.
func (h *Handler) DecodeImage(c *gin.Context) {
	fh, err := c.FormFile("image")
	if err != nil {
		h.scanPage(c, http.StatusBadRequest, gin.H{"errors": []string{"Choose an image first"}})
		return
	}
	f, err := fh.Open()
	if err != nil {
		h.scanPage(c, http.StatusBadRequest, gin.H{"errors": []string{"Unable to read QR from image"}})
		return
	}
	defer f.Close()

	text, err := scan.DecodeImage(c.Request.Context(), h.Decoder, f)
	if err != nil {
		outcome := metrics.Failed
		if errors.Is(err, scan.ErrNoCode) {
			outcome = metrics.NotFound
		}
		metrics.Decodes.WithLabelValues(outcome).Inc()
		log.WithError(err).Debugf("decode %s failed", fh.Filename)
		h.scanPage(c, http.StatusBadRequest, gin.H{"errors": []string{"Unable to read QR from image"}})
		return
	}
	metrics.Decodes.WithLabelValues(metrics.OK).Inc()
	h.lookup(c, text)
}

func (h *Handler) lookup(c *gin.Context, text string) {
	loaded, err := h.Assets.Lookup(c.Request.Context(), middleware.Credentials(c), text)
	if unauthorized(c, err) {
		return
	}
	if err != nil {
		h.scanPage(c, http.StatusBadRequest, gin.H{
			"errors":  []string{service.MessageOf(err)},
			"scanned": text,
		})
		return
	}

	database.CreateAuditLog(userName(c), models.EntityAsset, loaded.Registration, models.ActionLookup, "")
	h.scanPage(c, http.StatusOK, gin.H{
		"scanned":      text,
		"assetID":      loaded.Record.ID(),
		"registration": loaded.Registration,
		"form":         loaded.Form,
	})
}

// SaveAsset writes the posted form to the asset with internal id :id. The page
// is re-rendered from the posted values either way, so failed saves keep edits.
func (h *Handler) SaveAsset(c *gin.Context) {
	id := c.Param("id")
	registration := c.PostForm("registration")

	var form asset.Form
	if err := c.ShouldBind(&form); err != nil {
		h.scanPage(c, http.StatusBadRequest, gin.H{
			"errors":       []string{"Invalid form data"},
			"assetID":      id,
			"registration": registration,
		})
		return
	}

	saved, err := h.Assets.Save(c.Request.Context(), middleware.Credentials(c), id, form)
	if unauthorized(c, err) {
		return
	}
	data := gin.H{
		"assetID":      id,
		"registration": registration,
		"form":         saved,
	}
	if err != nil {
		data["errors"] = []string{service.MessageOf(err)}
		h.scanPage(c, http.StatusBadRequest, data)
		return
	}

	database.CreateAuditLog(userName(c), models.EntityAsset, registration, models.ActionUpdate, "status="+saved.Status)
	data["notices"] = []string{"Updated successfully"}
	h.scanPage(c, http.StatusOK, data)
}

// Import runs a bulk spreadsheet update.
func (h *Handler) Import(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		h.scanPage(c, http.StatusBadRequest, gin.H{"errors": []string{"Please select an Excel file first"}})
		return
	}
	f, err := fh.Open()
	if err != nil {
		h.scanPage(c, http.StatusBadRequest, gin.H{"errors": []string{"Error processing Excel file: " + err.Error()}})
		return
	}
	defer f.Close()

	res, err := h.Imports.Import(c.Request.Context(), middleware.Credentials(c), f)
	if unauthorized(c, err) {
		return
	}
	if err != nil {
		h.scanPage(c, http.StatusBadRequest, gin.H{"errors": []string{service.MessageOf(err)}})
		return
	}
	if len(res.Problems) > 0 {
		h.scanPage(c, http.StatusBadRequest, gin.H{"errors": []string{res.Message()}, "importResult": res})
		return
	}

	database.CreateAuditLog(userName(c), models.EntityImport, fh.Filename, models.ActionBulkUpdate, res.Message())
	data := gin.H{"importResult": res}
	if res.Failed() > 0 {
		data["errors"] = []string{res.Message()}
	} else {
		data["notices"] = []string{res.Message()}
	}
	h.scanPage(c, http.StatusOK, data)
}
