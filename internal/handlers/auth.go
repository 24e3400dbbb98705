package handlers

import (
	"net/http"
	"strings"

	"asset-scan/internal/backend"
	"asset-scan/internal/middleware"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

func (h *Handler) ShowLogin(c *gin.Context) {
	render(c, http.StatusOK, "login.html", nil)
}

type loginForm struct {
	Email    string `form:"email"`
	Password string `form:"password"`
}

func (h *Handler) Login(c *gin.Context) {
	var form loginForm
	if err := c.ShouldBind(&form); err != nil {
		render(c, http.StatusBadRequest, "login.html", gin.H{"errors": []string{"Invalid form data"}})
		return
	}

	form.Email = strings.TrimSpace(form.Email)
	if form.Email == "" || form.Password == "" {
		render(c, http.StatusBadRequest, "login.html", gin.H{
			"errors": []string{"Email and password are required"},
			"email":  form.Email,
		})
		return
	}

	creds, user, err := h.Auth.Login(c.Request.Context(), form.Email, form.Password)
	if err != nil {
		msg := backend.Message(err, "Invalid email or password")
		if backend.IsNetwork(err) {
			msg = "Network error"
		}
		log.WithError(err).Infof("login failed for %s", form.Email)
		render(c, http.StatusBadRequest, "login.html", gin.H{
			"errors": []string{msg},
			"email":  form.Email,
		})
		return
	}

	if err := middleware.SignIn(c, creds, user); err != nil {
		log.WithError(err).Error("failed to save session")
		render(c, http.StatusInternalServerError, "login.html", gin.H{"errors": []string{"Could not start session"}})
		return
	}

	c.Redirect(http.StatusFound, "/scan")
}

func (h *Handler) Logout(c *gin.Context) {
	middleware.SignOut(c)
	c.Redirect(http.StatusFound, "/login")
}
