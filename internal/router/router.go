package router

import (
	"path/filepath"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/sadiclarsan/web/internal/config"
	"github.com/sadiclarsan/web/internal/handler"
)

// Session cookie parameters match the deployed site: a persistent cookie
// named "Cookies" with a 7-day expiry.
const (
	sessionCookieName = "Cookies"
	sessionMaxAge     = 7 * 24 * 60 * 60
)

// Setup configures the gin engine with sessions, templates, static
// assets and the full route table. An empty TemplateGlob skips template
// loading so tests can install a stub renderer.
func Setup(api *handler.API, cfg config.AppConfig) *gin.Engine {
	r := gin.Default()

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   sessionMaxAge,
		HttpOnly: true,
	})
	r.Use(sessions.Sessions(sessionCookieName, store))

	if cfg.TemplateGlob != "" {
		r.LoadHTMLGlob(cfg.TemplateGlob)
	}

	r.Static("/images", filepath.Join(cfg.StaticRoot, "images"))

	// Public pages
	r.GET("/", api.ShowHome)
	r.GET("/blog/:token", api.ShowBlogPost)
	r.GET("/sitemap.xml", api.Sitemap)
	r.POST("/Home/Contact", api.SubmitContact)
	r.GET("/Home/GetBlogContent", api.GetBlogContent)

	// Authentication
	auth := r.Group("/Auth")
	{
		auth.GET("/Login", api.ShowLoginPage)
		auth.POST("/Login", api.Login)
		auth.GET("/Logout", api.Logout)
	}

	// Admin back-office, session-gated
	admin := r.Group("/Admin")
	admin.Use(api.AuthRequired())
	{
		admin.GET("", api.ShowAdminHome)
		admin.GET("/BlogList", api.ShowBlogList)
		admin.GET("/CreateBlog", api.ShowCreateBlog)
		admin.POST("/CreateBlog", api.CreateBlog)
		admin.GET("/EditBlog/:id", api.ShowEditBlog)
		admin.POST("/EditBlog/:id", api.EditBlog)
		admin.POST("/DeleteBlog/:id", api.DeleteBlog)
		admin.GET("/ContactMessages", api.ShowContactMessages)
		admin.POST("/MarkAsRead/:id", api.MarkAsRead)
		admin.GET("/SeoSettings", api.ShowSeoSettings)
		admin.POST("/SeoSettings", api.UpdateSeoSettings)
		admin.GET("/ChangePassword", api.ShowChangePassword)
		admin.POST("/ChangePassword", api.ChangePassword)
	}

	return r
}
