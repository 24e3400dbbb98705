package handlers

import (
	"asset-scan/internal/middleware"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// Flash kinds, stored as plain strings so the cookie codec needs no registration.
const (
	flashNotice = "flash_notice"
	flashError  = "flash_error"
)

// render wraps c.HTML, passing the current user and a pending flash to every template.
func render(c *gin.Context, status int, tmpl string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}

	if u, ok := middleware.CurrentUser(c); ok {
		data["CurrentUser"] = u
		data["CurrentUsername"] = u.DisplayName()
	}

	sess := sessions.Default(c)
	if msg := takeFlash(sess, flashNotice); msg != "" {
		if _, set := data["notices"]; !set {
			data["notices"] = []string{msg}
		}
	}
	if msg := takeFlash(sess, flashError); msg != "" {
		if _, set := data["errors"]; !set {
			data["errors"] = []string{msg}
		}
	}

	c.HTML(status, tmpl, data)
}

func flash(c *gin.Context, kind, msg string) {
	sess := sessions.Default(c)
	sess.Set(kind, msg)
	_ = sess.Save()
}

func takeFlash(sess sessions.Session, kind string) string {
	msg, _ := sess.Get(kind).(string)
	if msg != "" {
		sess.Delete(kind)
		_ = sess.Save()
	}
	return msg
}
