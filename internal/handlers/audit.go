package handlers

import (
	"net/http"

	"asset-scan/internal/database"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

const auditPageSize = 200

func ListAuditLogs(c *gin.Context) {
	logs, err := database.RecentAuditLogs(auditPageSize)
	if err != nil {
		log.WithError(err).Error("failed to read audit log")
		render(c, http.StatusInternalServerError, "audit_list.html", gin.H{
			"errors": []string{"Failed to load audit log"},
		})
		return
	}

	render(c, http.StatusOK, "audit_list.html", gin.H{
		"logs":    logs,
		"enabled": database.DB != nil,
	})
}
