package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sadiclarsan/web/internal/service"
)

// ShowAdminHome redirects the bare admin path to the blog list.
func (a *API) ShowAdminHome(c *gin.Context) {
	c.Redirect(http.StatusFound, "/Admin/BlogList")
}

// ShowBlogList renders the admin blog overview, newest first.
func (a *API) ShowBlogList(c *gin.Context) {
	posts, err := a.blogs.ListAll()
	if err != nil {
		a.renderError(c, http.StatusInternalServerError, err)
		return
	}

	a.renderHTML(c, http.StatusOK, "blog_list.html", gin.H{
		"title":   "Blog Yazıları",
		"posts":   posts,
		"success": takeFlash(c, "success"),
	})
}

// ShowCreateBlog renders the empty blog form.
func (a *API) ShowCreateBlog(c *gin.Context) {
	a.renderHTML(c, http.StatusOK, "blog_form.html", gin.H{
		"title":  "Yeni Blog Yazısı",
		"action": "/Admin/CreateBlog",
	})
}

// CreateBlog validates the form, stores an uploaded image if present,
// assigns a slug and persists the post (PRG on success).
func (a *API) CreateBlog(c *gin.Context) {
	form := parseBlogForm(c)
	if problems := form.validate(); len(problems) > 0 {
		a.renderHTML(c, http.StatusBadRequest, "blog_form.html", gin.H{
			"title":  "Yeni Blog Yazısı",
			"action": "/Admin/CreateBlog",
			"form":   form,
			"errors": problems,
		})
		return
	}

	input := form.input()
	if fh, err := c.FormFile("imageFile"); err == nil && fh.Size > 0 {
		imageURL, saveErr := a.images.Save(fh)
		if saveErr != nil {
			a.renderError(c, http.StatusInternalServerError, saveErr)
			return
		}
		input.ImageURL = imageURL
	}

	post, err := a.blogs.Create(input)
	if err != nil {
		a.renderError(c, http.StatusInternalServerError, err)
		return
	}

	a.log.Info().Uint("id", post.ID).Str("slug", post.SeoURL).Msg("blog post created")
	setFlash(c, "success", "Blog yazısı başarıyla oluşturuldu.")
	c.Redirect(http.StatusFound, "/Admin/BlogList")
}

// ShowEditBlog renders the form pre-filled with an existing post.
func (a *API) ShowEditBlog(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		a.notFound(c)
		return
	}

	post, err := a.blogs.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			a.notFound(c)
			return
		}
		a.renderError(c, http.StatusInternalServerError, err)
		return
	}

	a.renderHTML(c, http.StatusOK, "blog_form.html", gin.H{
		"title":  "Blog Yazısını Düzenle",
		"action": "/Admin/EditBlog/" + c.Param("id"),
		"post":   post,
	})
}

// EditBlog overwrites an existing post. A new upload replaces the stored
// image, deleting the old file best-effort. One concurrency-conflict
// retry happens here; a second conflict surfaces to the user.
func (a *API) EditBlog(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		a.notFound(c)
		return
	}

	existing, err := a.blogs.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			a.notFound(c)
			return
		}
		a.renderError(c, http.StatusInternalServerError, err)
		return
	}

	form := parseBlogForm(c)
	if problems := form.validate(); len(problems) > 0 {
		a.renderHTML(c, http.StatusBadRequest, "blog_form.html", gin.H{
			"title":  "Blog Yazısını Düzenle",
			"action": "/Admin/EditBlog/" + c.Param("id"),
			"form":   form,
			"errors": problems,
		})
		return
	}

	input := form.input()
	if fh, ffErr := c.FormFile("imageFile"); ffErr == nil && fh.Size > 0 {
		imageURL, saveErr := a.images.Save(fh)
		if saveErr != nil {
			a.renderError(c, http.StatusInternalServerError, saveErr)
			return
		}
		input.ImageURL = imageURL

		if existing.ImageURL != "" {
			if rmErr := a.images.Remove(existing.ImageURL); rmErr != nil {
				a.log.Warn().Err(rmErr).Str("path", existing.ImageURL).Msg("failed to delete replaced image")
			}
		}
	}

	_, err = a.blogs.Update(id, input)
	if errors.Is(err, service.ErrConcurrencyConflict) {
		_, err = a.blogs.Update(id, input)
	}
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPostNotFound):
			a.notFound(c)
		case errors.Is(err, service.ErrConcurrencyConflict):
			a.renderHTML(c, http.StatusConflict, "blog_form.html", gin.H{
				"title":  "Blog Yazısını Düzenle",
				"action": "/Admin/EditBlog/" + c.Param("id"),
				"form":   form,
				"error":  "Kayıt başka bir oturum tarafından değiştirildi. Lütfen tekrar deneyin.",
			})
		default:
			a.renderError(c, http.StatusInternalServerError, err)
		}
		return
	}

	setFlash(c, "success", "Blog yazısı başarıyla güncellendi.")
	c.Redirect(http.StatusFound, "/Admin/BlogList")
}

// DeleteBlog removes a post and its image artifact. A missing row is a
// silent no-op so repeated deletes still succeed.
func (a *API) DeleteBlog(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		a.notFound(c)
		return
	}

	prior, err := a.blogs.Delete(id)
	if err != nil {
		a.renderError(c, http.StatusInternalServerError, err)
		return
	}

	if prior != nil && prior.ImageURL != "" {
		if rmErr := a.images.Remove(prior.ImageURL); rmErr != nil {
			a.log.Warn().Err(rmErr).Str("path", prior.ImageURL).Msg("failed to delete post image")
		}
	}

	setFlash(c, "success", "Blog yazısı başarıyla silindi.")
	c.Redirect(http.StatusFound, "/Admin/BlogList")
}

// ShowContactMessages lists contact-form submissions, newest first.
func (a *API) ShowContactMessages(c *gin.Context) {
	messages, err := a.contacts.ListByDateDesc()
	if err != nil {
		a.renderError(c, http.StatusInternalServerError, err)
		return
	}

	a.renderHTML(c, http.StatusOK, "contact_messages.html", gin.H{
		"title":    "İletişim Mesajları",
		"messages": messages,
	})
}

// MarkAsRead flags a contact message as read and returns to the list.
func (a *API) MarkAsRead(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		a.notFound(c)
		return
	}

	if err := a.contacts.MarkAsRead(id); err != nil {
		a.renderError(c, http.StatusInternalServerError, err)
		return
	}
	c.Redirect(http.StatusFound, "/Admin/ContactMessages")
}

// ShowSeoSettings renders the SEO settings form with stored or default
// values.
func (a *API) ShowSeoSettings(c *gin.Context) {
	settings, err := a.seo.Get()
	if err != nil {
		a.renderError(c, http.StatusInternalServerError, err)
		return
	}

	a.renderHTML(c, http.StatusOK, "seo_settings.html", gin.H{
		"title":    "SEO Ayarları",
		"settings": settings,
		"success":  takeFlash(c, "success"),
	})
}

// UpdateSeoSettings persists the site-wide SEO settings (PRG).
func (a *API) UpdateSeoSettings(c *gin.Context) {
	siteTitle := c.PostForm("siteTitle")
	if siteTitle == "" {
		settings, _ := a.seo.Get()
		a.renderHTML(c, http.StatusBadRequest, "seo_settings.html", gin.H{
			"title":    "SEO Ayarları",
			"settings": settings,
			"errors":   map[string]string{"siteTitle": "Site başlığı zorunludur"},
		})
		return
	}

	input := service.SeoSettingsInput{
		SiteTitle:           siteTitle,
		SiteDescription:     c.PostForm("siteDescription"),
		SiteKeywords:        c.PostForm("siteKeywords"),
		SiteURL:             c.PostForm("siteUrl"),
		GoogleAnalyticsID:   c.PostForm("googleAnalyticsId"),
		GoogleSearchConsole: c.PostForm("googleSearchConsole"),
		FacebookPixelID:     c.PostForm("facebookPixelId"),
		OgImage:             c.PostForm("ogImage"),
		TwitterCard:         c.PostForm("twitterCard"),
		EnableSitemap:       parseBoolForm(c, "enableSitemap"),
		EnableRobotsTxt:     parseBoolForm(c, "enableRobotsTxt"),
	}

	if _, err := a.seo.Update(input, sessionUsername(c)); err != nil {
		a.renderError(c, http.StatusInternalServerError, err)
		return
	}

	setFlash(c, "success", "SEO ayarları başarıyla güncellendi.")
	c.Redirect(http.StatusFound, "/Admin/SeoSettings")
}

// ShowChangePassword renders the password form.
func (a *API) ShowChangePassword(c *gin.Context) {
	a.renderHTML(c, http.StatusOK, "change_password.html", gin.H{
		"title": "Şifre Değiştir",
	})
}

// ChangePassword updates the signed-in admin's password.
func (a *API) ChangePassword(c *gin.Context) {
	err := a.admins.ChangePassword(
		sessionUsername(c),
		c.PostForm("currentPassword"),
		c.PostForm("newPassword"),
		c.PostForm("confirmPassword"),
	)
	if err != nil {
		message := ""
		switch {
		case errors.Is(err, service.ErrPasswordFieldsRequired):
			message = "Tüm alanları doldurunuz."
		case errors.Is(err, service.ErrPasswordMismatch):
			message = "Yeni şifreler eşleşmiyor."
		case errors.Is(err, service.ErrPasswordTooShort):
			message = "Şifre en az 6 karakter olmalıdır."
		case errors.Is(err, service.ErrCurrentPasswordWrong):
			message = "Mevcut şifre yanlış."
		case errors.Is(err, service.ErrAdminNotFound):
			message = "Admin kullanıcı bulunamadı."
		default:
			a.renderError(c, http.StatusInternalServerError, err)
			return
		}
		a.renderHTML(c, http.StatusBadRequest, "change_password.html", gin.H{
			"title": "Şifre Değiştir",
			"error": message,
		})
		return
	}

	setFlash(c, "success", "Şifre başarıyla değiştirildi.")
	c.Redirect(http.StatusFound, "/Admin/BlogList")
}
