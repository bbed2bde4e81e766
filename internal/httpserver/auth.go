package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	identitysvc "github.com/xDonalx/BuildStore/internal/service/identity"
)

func (h *handlers) loginForm(c *gin.Context) {
	h.render(c, http.StatusOK, "login.html", nil)
}

func (h *handlers) login(c *gin.Context) {
	sess := currentSession(c)
	username := c.PostForm("username")
	password := c.PostForm("password")

	u, err := h.identity.Authenticate(c.Request.Context(), username, password)
	if err != nil {
		if !errors.Is(err, identitysvc.ErrInvalidCredentials) {
			h.logger.Printf("login: authenticate username=%s error=%v", username, err)
		}
		sess.AddFlash("Invalid username or password.")
		h.render(c, http.StatusOK, "login.html", nil)
		return
	}

	sess.SetUser(u.ID)
	c.Redirect(http.StatusFound, "/products")
}

func (h *handlers) registerForm(c *gin.Context) {
	h.render(c, http.StatusOK, "register.html", nil)
}

func (h *handlers) register(c *gin.Context) {
	sess := currentSession(c)
	username := c.PostForm("username")
	password := c.PostForm("password")

	_, err := h.identity.Register(c.Request.Context(), username, password)
	switch {
	case err == nil:
		sess.AddFlash("Account created, you can log in now.")
		c.Redirect(http.StatusFound, "/login")
	case errors.Is(err, identitysvc.ErrUsernameTaken):
		sess.AddFlash("This username is already taken.")
		h.render(c, http.StatusOK, "register.html", nil)
	case errors.Is(err, identitysvc.ErrMissingCredentials):
		sess.AddFlash("Username and password are required.")
		h.render(c, http.StatusOK, "register.html", nil)
	default:
		h.logger.Printf("register: username=%s error=%v", username, err)
		sess.AddFlash("Registration failed, please try again.")
		h.render(c, http.StatusOK, "register.html", nil)
	}
}

func (h *handlers) logout(c *gin.Context) {
	currentSession(c).ClearUser()
	c.Redirect(http.StatusFound, "/")
}
