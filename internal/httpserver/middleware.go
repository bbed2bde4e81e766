package httpserver

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	cartsvc "github.com/xDonalx/BuildStore/internal/service/cart"
	catalogsvc "github.com/xDonalx/BuildStore/internal/service/catalog"
	identitysvc "github.com/xDonalx/BuildStore/internal/service/identity"
	profilesvc "github.com/xDonalx/BuildStore/internal/service/profile"
	"github.com/xDonalx/BuildStore/internal/session"
)

const ctxSessionKey = "session"

type handlers struct {
	logger   *log.Logger
	identity *identitysvc.Service
	catalog  *catalogsvc.Service
	cart     *cartsvc.Service
	profile  *profilesvc.Service
	sessions *session.Manager
}

// withSession resolves the session before the handler runs and
// persists it afterwards when dirty. The cookie for a fresh session is
// issued up front, before any response body is written.
func (h *handlers) withSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, err := h.sessions.Load(c.Request)
		if err != nil {
			h.logger.Printf("session: load failed: %v", err)
			c.String(http.StatusInternalServerError, "session unavailable")
			c.Abort()
			return
		}
		h.sessions.IssueCookie(c.Writer, sess)
		c.Set(ctxSessionKey, sess)

		c.Next()

		if err := h.sessions.Persist(c.Request.Context(), sess); err != nil {
			h.logger.Printf("session: persist sid=%s failed: %v", sess.ID(), err)
		}
	}
}

// requireUser redirects anonymous requests to the login form.
func (h *handlers) requireUser(c *gin.Context) {
	sess := currentSession(c)
	if _, ok := sess.UserID(); !ok {
		sess.AddFlash("Please log in first.")
		c.Redirect(http.StatusFound, "/login")
		c.Abort()
	}
}

func currentSession(c *gin.Context) *session.Session {
	return c.MustGet(ctxSessionKey).(*session.Session)
}

// render writes an HTML page with pending flashes and login state
// merged into the template data.
func (h *handlers) render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	sess := currentSession(c)
	data["flashes"] = sess.ConsumeFlashes()
	_, loggedIn := sess.UserID()
	data["loggedIn"] = loggedIn
	c.HTML(status, name, data)
}
