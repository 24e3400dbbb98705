package handlers

import (
	"net/http"

	"asset-scan/internal/middleware"

	"github.com/gin-gonic/gin"
)

func IndexPage(c *gin.Context) {
	_, ok := middleware.CurrentUser(c)

	render(c, http.StatusOK, "index.html", gin.H{
		"isAuthed": ok,
	})
}
