package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/sadiclarsan/web/internal/service"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db       *gorm.DB
	log      zerolog.Logger
	blogs    *service.BlogService
	contacts *service.ContactService
	admins   *service.AdminUserService
	seo      *service.SeoSettingsService
	images   *service.ImageStore
}

// NewAPI constructs a handler set with shared services.
func NewAPI(gdb *gorm.DB, log zerolog.Logger, staticRoot string) *API {
	return &API{
		db:       gdb,
		log:      log,
		blogs:    service.NewBlogService(gdb),
		contacts: service.NewContactService(gdb),
		admins:   service.NewAdminUserService(gdb),
		seo:      service.NewSeoSettingsService(gdb),
		images:   service.NewImageStore(staticRoot),
	}
}

// renderHTML attaches the site-wide SEO settings to every template render.
func (a *API) renderHTML(c *gin.Context, status int, template string, data gin.H) {
	payload := gin.H{}
	for key, value := range data {
		payload[key] = value
	}

	if _, exists := payload["seo"]; !exists {
		settings, err := a.seo.Get()
		if err != nil {
			c.Error(err)
		} else {
			payload["seo"] = settings
		}
	}

	c.HTML(status, template, payload)
}

// renderError shows the generic error page with a correlation id the user
// can quote back.
func (a *API) renderError(c *gin.Context, status int, err error) {
	correlationID := uuid.New().String()
	if err != nil {
		a.log.Error().Err(err).Str("correlation_id", correlationID).Str("path", c.Request.URL.Path).Msg("request failed")
	}
	a.renderHTML(c, status, "error.html", gin.H{
		"title":         "Hata",
		"correlationId": correlationID,
	})
	c.Abort()
}

func (a *API) notFound(c *gin.Context) {
	c.AbortWithStatus(http.StatusNotFound)
}
