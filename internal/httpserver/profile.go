package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xDonalx/BuildStore/internal/domain"
	profilesvc "github.com/xDonalx/BuildStore/internal/service/profile"
)

func (h *handlers) profileForm(c *gin.Context) {
	sess := currentSession(c)
	userID, _ := sess.UserID()

	u, err := h.identity.UserByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Stale session pointing at a deleted account.
			sess.ClearUser()
			c.Redirect(http.StatusFound, "/login")
			return
		}
		h.logger.Printf("profile: load user id=%d error=%v", userID, err)
		c.String(http.StatusInternalServerError, "cannot load profile")
		return
	}
	h.render(c, http.StatusOK, "profile.html", gin.H{"user": u})
}

func (h *handlers) updateProfile(c *gin.Context) {
	sess := currentSession(c)
	userID, _ := sess.UserID()

	in := profilesvc.Input{
		Profile: domain.Profile{
			FirstName:   c.PostForm("first_name"),
			LastName:    c.PostForm("last_name"),
			Patronymic:  c.PostForm("patronymic"),
			Address:     c.PostForm("address"),
			PhoneNumber: c.PostForm("phone_number"),
			AboutMe:     c.PostForm("about_me"),
		},
	}

	fileHeader, err := c.FormFile("avatar")
	if err == nil && fileHeader != nil {
		file, err := fileHeader.Open()
		if err != nil {
			h.logger.Printf("profile: open avatar error=%v", err)
			sess.AddFlash("Could not read the uploaded avatar.")
			c.Redirect(http.StatusFound, "/profile")
			return
		}
		defer file.Close()
		in.Avatar = &profilesvc.Upload{Filename: fileHeader.Filename, Reader: file}
	}

	u, err := h.profile.Update(c.Request.Context(), userID, in)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			sess.ClearUser()
			c.Redirect(http.StatusFound, "/login")
			return
		}
		h.logger.Printf("profile: update id=%d error=%v", userID, err)
		sess.AddFlash("Could not save the profile, please try again.")
		c.Redirect(http.StatusFound, "/profile")
		return
	}

	sess.AddFlash("Profile saved.")
	h.render(c, http.StatusOK, "profile.html", gin.H{"user": u})
}
