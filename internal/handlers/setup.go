package handlers

import (
	"net/http"
	"strings"

	"asset-scan/internal/backend"
	"asset-scan/internal/database"
	"asset-scan/internal/middleware"
	"asset-scan/internal/models"
	"asset-scan/internal/service"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ShowSetup(c *gin.Context) {
	lists, problems, err := h.MasterData.Load(c.Request.Context(), middleware.Credentials(c))
	if unauthorized(c, err) {
		return
	}

	data := gin.H{
		"assetNames":  lists.AssetNames(),
		"institutes":  lists.Institutes(),
		"departments": lists.Departments(),
	}
	if len(problems) > 0 {
		data["problems"] = problems
	}
	render(c, http.StatusOK, "setup.html", data)
}

// AddSetupValue adds to the list named by :key. Asset names take a category too.
func (h *Handler) AddSetupValue(c *gin.Context) {
	key := c.Param("key")
	ctx := c.Request.Context()
	creds := middleware.Credentials(c)

	var (
		ch    service.Change
		err   error
		value string
	)
	if key == backend.KeyAssetNames {
		name := strings.TrimSpace(c.PostForm("name"))
		category := strings.TrimSpace(c.PostForm("category"))
		value = name + ":" + category
		ch, err = h.MasterData.AddAssetName(ctx, creds, name, category)
	} else {
		value = strings.TrimSpace(c.PostForm("value"))
		ch, err = h.MasterData.Add(ctx, creds, key, value)
	}
	if unauthorized(c, err) {
		return
	}
	if err != nil {
		flash(c, flashError, service.MessageOf(err))
	} else {
		database.CreateAuditLog(userName(c), models.EntitySetup, key, models.ActionAdd, value)
		flash(c, flashNotice, ch.Message)
	}
	c.Redirect(http.StatusFound, "/setup")
}

func (h *Handler) DeleteSetupValue(c *gin.Context) {
	key := c.Param("key")
	value := c.PostForm("value")

	ch, err := h.MasterData.Delete(c.Request.Context(), middleware.Credentials(c), key, value)
	if unauthorized(c, err) {
		return
	}
	if err != nil {
		flash(c, flashError, service.MessageOf(err))
	} else {
		database.CreateAuditLog(userName(c), models.EntitySetup, key, models.ActionDelete, value)
		flash(c, flashNotice, ch.Message)
	}
	c.Redirect(http.StatusFound, "/setup")
}
