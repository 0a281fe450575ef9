package web

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"taxipark/service"
)

const msgBadLogin = "Please enter a correct username and password. Note that both fields may be case-sensitive."

func (s *Server) loginPage(c *gin.Context) {
	s.render(c, http.StatusOK, "login", gin.H{"Next": c.Query("next")})
}

func (s *Server) login(c *gin.Context) {
	username := c.PostForm("username")
	next := c.PostForm("next")

	res, err := s.svc.Auth().Login(c.Request.Context(), username, c.PostForm("password"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			s.render(c, http.StatusOK, "login", gin.H{"Next": next, "Username": username, "Error": msgBadLogin})
			return
		}
		s.serverError(c, err)
		return
	}

	maxAge := int(s.cfg.SessionTTL.Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, res.Token, maxAge, "/", "", false, true)
	c.Redirect(http.StatusFound, safeNext(next))
}

func (s *Server) logout(c *gin.Context) {
	if token, err := c.Cookie(sessionCookie); err == nil {
		if err := s.svc.Auth().Logout(c.Request.Context(), token); err != nil {
			s.serverError(c, err)
			return
		}
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, loginPath)
}
