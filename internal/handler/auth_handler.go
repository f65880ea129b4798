package handler

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/sadiclarsan/web/internal/service"
)

const (
	sessionKeyAdminID  = "admin_id"
	sessionKeyUsername = "username"
	sessionKeyEmail    = "email"
	sessionKeyRole     = "role"
)

// ShowLoginPage renders the admin login form. An authenticated visitor is
// sent straight to the admin area.
func (a *API) ShowLoginPage(c *gin.Context) {
	session := sessions.Default(c)
	if session.Get(sessionKeyAdminID) != nil {
		c.Redirect(http.StatusFound, "/Admin/BlogList")
		return
	}
	a.renderHTML(c, http.StatusOK, "login.html", gin.H{
		"title": "Yönetici Girişi",
	})
}

// Login verifies credentials and establishes the session.
func (a *API) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	admin, err := a.admins.Authenticate(username, password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			a.renderHTML(c, http.StatusUnauthorized, "login.html", gin.H{
				"title": "Yönetici Girişi",
				"error": "Kullanıcı adı veya şifre hatalı.",
			})
			return
		}
		a.renderError(c, http.StatusInternalServerError, err)
		return
	}

	session := sessions.Default(c)
	session.Set(sessionKeyAdminID, admin.ID)
	session.Set(sessionKeyUsername, admin.Username)
	session.Set(sessionKeyEmail, admin.Email)
	session.Set(sessionKeyRole, admin.Role)
	if err := session.Save(); err != nil {
		a.renderError(c, http.StatusInternalServerError, err)
		return
	}

	a.log.Info().Str("username", admin.Username).Msg("admin logged in")
	c.Redirect(http.StatusFound, "/Admin/BlogList")
}

// Logout clears the session and returns to the login page.
func (a *API) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	_ = session.Save()
	c.Redirect(http.StatusFound, "/Auth/Login")
}

// AuthRequired gates the admin area behind a live session.
func (a *API) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		if session.Get(sessionKeyAdminID) == nil {
			c.Redirect(http.StatusFound, "/Auth/Login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// sessionUsername returns the username stored in the current session.
func sessionUsername(c *gin.Context) string {
	session := sessions.Default(c)
	if name, ok := session.Get(sessionKeyUsername).(string); ok {
		return name
	}
	return ""
}
