package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *handlers) home(c *gin.Context) {
	h.render(c, http.StatusOK, "home.html", nil)
}

func (h *handlers) about(c *gin.Context) {
	h.render(c, http.StatusOK, "about.html", nil)
}
