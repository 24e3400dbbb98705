package middleware

import (
	"encoding/json"

	"asset-scan/internal/backend"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

const CurrentUserKey = "CurrentUser"

func InjectUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessions.Default(c)

		if raw, ok := sess.Get(sessionUser).(string); ok && raw != "" {
			var user backend.User
			if err := json.Unmarshal([]byte(raw), &user); err == nil {
				c.Set(CurrentUserKey, user)
			} else {
				log.WithError(err).Warn("dropping unreadable session user")
			}
		}

		c.Next()
	}
}

// CurrentUser returns the user InjectUser placed in the context.
func CurrentUser(c *gin.Context) (backend.User, bool) {
	v, ok := c.Get(CurrentUserKey)
	if !ok {
		return backend.User{}, false
	}
	u, ok := v.(backend.User)
	return u, ok
}
