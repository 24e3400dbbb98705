package middleware

import (
	"encoding/json"
	"net/http"

	"asset-scan/internal/backend"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// Session keys.
const (
	sessionUser   = "user"
	sessionCookie = "backend_cookie"
)

func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessions.Default(c)
		if sess.Get(sessionUser) == nil || sess.Get(sessionCookie) == nil {
			if c.GetHeader("Accept") == "application/json" {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Please log in again."})
				return
			}
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// SignIn stores the backend user and its cookies in the session.
func SignIn(c *gin.Context, creds backend.Credentials, user backend.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return err
	}
	sess := sessions.Default(c)
	sess.Set(sessionUser, string(raw))
	sess.Set(sessionCookie, creds.Cookie)
	return sess.Save()
}

// SignOut drops everything the session carries.
func SignOut(c *gin.Context) {
	sess := sessions.Default(c)
	sess.Clear()
	_ = sess.Save()
}

// Credentials returns the backend cookies of the signed-in user, read at the
// point of each request.
func Credentials(c *gin.Context) backend.Credentials {
	cookie, _ := sessions.Default(c).Get(sessionCookie).(string)
	return backend.Credentials{Cookie: cookie}
}
