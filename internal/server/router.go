package server

import (
	"crypto/sha256"
	"html/template"
	"io"
	"net/http"
	"strings"

	"asset-scan/internal/config"
	"asset-scan/internal/handlers"
	"asset-scan/internal/middleware"
	"asset-scan/web"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/crypto/hkdf"
)

const sessionName = "asset_session"

// sessionKeys derives the cookie signing and encryption keys from the secret.
func sessionKeys(secret string) (authKey, encKey []byte, err error) {
	kdf := hkdf.New(sha256.New, []byte(secret), nil, []byte("asset-scan session"))
	authKey = make([]byte, 32)
	encKey = make([]byte, 32)
	if _, err := io.ReadFull(kdf, authKey); err != nil {
		return nil, nil, errors.Wrap(err, "derive session auth key")
	}
	if _, err := io.ReadFull(kdf, encKey); err != nil {
		return nil, nil, errors.Wrap(err, "derive session encryption key")
	}
	return authKey, encKey, nil
}

// entryName and entryCategory split an "Asset Name:Category" master entry.
func entryName(entry string) string {
	name, _, _ := strings.Cut(entry, ":")
	return name
}

func entryCategory(entry string) string {
	_, category, _ := strings.Cut(entry, ":")
	return category
}

// contains keeps a record's value selectable when it is no longer in its master list.
func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func dict(kv ...any) (map[string]any, error) {
	if len(kv)%2 != 0 {
		return nil, errors.New("dict needs key/value pairs")
	}
	m := make(map[string]any, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		k, ok := kv[i].(string)
		if !ok {
			return nil, errors.Errorf("dict key %v is not a string", kv[i])
		}
		m[k] = kv[i+1]
	}
	return m, nil
}

func NewRouter(cfg *config.Config, h *handlers.Handler) (*gin.Engine, error) {
	r := gin.Default()

	r.StaticFS("/static", http.FS(web.Static()))

	tmpl, err := web.Templates(template.FuncMap{
		"dict":          dict,
		"contains":      contains,
		"entryName":     entryName,
		"entryCategory": entryCategory,
	})
	if err != nil {
		return nil, errors.Wrap(err, "parse templates")
	}
	r.SetHTMLTemplate(tmpl)

	authKey, encKey, err := sessionKeys(cfg.SessionSecret)
	if err != nil {
		return nil, err
	}
	store := cookie.NewStore(authKey, encKey)
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   12 * 60 * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(sessionName, store))

	r.Use(middleware.InjectUser())

	r.GET("/", handlers.IndexPage)

	r.GET("/login", h.ShowLogin)
	r.POST("/login", h.Login)
	r.GET("/logout", h.Logout)

	auth := r.Group("/")
	auth.Use(middleware.RequireAuth())

	// master data
	auth.GET("/setup", h.ShowSetup)
	auth.POST("/setup/:key", h.AddSetupValue)
	auth.POST("/setup/:key/delete", h.DeleteSetupValue)

	// scanning and updates
	auth.GET("/scan", h.ShowScan)
	auth.POST("/scan/decode", h.Decode)
	auth.POST("/scan/image", h.DecodeImage)
	auth.POST("/scan/camera", h.OpenCamera)
	auth.POST("/scan/camera/:id/frame", h.CameraFrame)
	auth.POST("/scan/camera/:id/stop", h.StopCamera)
	auth.POST("/scan/assets/:id", h.SaveAsset)
	auth.POST("/scan/import", h.Import)

	auth.GET("/audit", handlers.ListAuditLogs)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	return r, nil
}
