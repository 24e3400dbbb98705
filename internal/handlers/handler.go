package handlers

import (
	"context"
	"net/http"

	"asset-scan/internal/backend"
	"asset-scan/internal/middleware"
	"asset-scan/internal/scan"
	"asset-scan/internal/service"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// Authenticator signs staff in against the backend.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (backend.Credentials, backend.User, error)
}

// Handler serves every page. All state lives in the backend, the session cookie
// and the camera registry.
type Handler struct {
	Auth       Authenticator
	MasterData *service.MasterDataService
	Assets     *service.AssetService
	Imports    *service.ImportService
	Cameras    *scan.Registry
	Decoder    scan.Decoder
}

// unauthorized ends the session and sends the user to the login page when the
// backend rejected their credentials. It reports whether it did.
func unauthorized(c *gin.Context, err error) bool {
	if err == nil || !backend.IsUnauthorized(err) {
		return false
	}
	log.WithError(err).Info("backend rejected session credentials")
	middleware.SignOut(c)
	if c.GetHeader("Accept") == "application/json" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Please log in again."})
		return true
	}
	c.Redirect(http.StatusFound, "/login")
	c.Abort()
	return true
}

func userName(c *gin.Context) string {
	if u, ok := middleware.CurrentUser(c); ok {
		return u.DisplayName()
	}
	return ""
}
