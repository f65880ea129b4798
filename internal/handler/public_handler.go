package handler

import (
	"encoding/xml"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sadiclarsan/web/internal/db"
	"github.com/sadiclarsan/web/internal/service"
)

// ShowHome renders the public landing page with the three most recent
// active posts.
func (a *API) ShowHome(c *gin.Context) {
	recent, err := a.blogs.ListActive(3)
	if err != nil {
		a.renderError(c, http.StatusInternalServerError, err)
		return
	}

	a.renderHTML(c, http.StatusOK, "home.html", gin.H{
		"title":       "Anasayfa",
		"recentPosts": recent,
		"success":     takeFlash(c, "success"),
		"error":       takeFlash(c, "error"),
	})
}

// ShowBlogPost renders a post resolved by slug, or by numeric id for
// legacy links.
func (a *API) ShowBlogPost(c *gin.Context) {
	post, err := a.blogs.ResolvePublic(c.Param("token"))
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			a.notFound(c)
			return
		}
		a.renderError(c, http.StatusInternalServerError, err)
		return
	}

	content, err := renderMarkdown(post.Content)
	if err != nil {
		a.renderError(c, http.StatusInternalServerError, err)
		return
	}

	a.renderHTML(c, http.StatusOK, "blog_detail.html", gin.H{
		"title":           pageTitle(post),
		"post":            post,
		"content":         content,
		"metaDescription": metaDescription(post),
		"metaKeywords":    post.MetaKeywords,
		"ogImage":         ogImage(post),
	})
}

// GetBlogContent serves post content as JSON and counts the view.
func (a *API) GetBlogContent(c *gin.Context) {
	id, err := strconv.ParseUint(strings.TrimSpace(c.Query("id")), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	post, err := a.blogs.ActiveContent(uint(id))
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	author := post.Author
	if author == "" {
		author = "Sadıçlarsan"
	}

	c.JSON(http.StatusOK, gin.H{
		"title":     post.Title,
		"content":   post.Content,
		"author":    author,
		"date":      post.CreatedDate.Format("02.01.2006"),
		"imageUrl":  post.ImageURL,
		"viewCount": post.ViewCount,
	})
}

// SubmitContact persists a contact-form submission and redirects home.
func (a *API) SubmitContact(c *gin.Context) {
	input := service.ContactInput{
		FullName: c.PostForm("fullName"),
		Email:    c.PostForm("email"),
		Phone:    c.PostForm("phone"),
		Subject:  c.PostForm("subject"),
		Message:  c.PostForm("message"),
	}

	if _, err := a.contacts.Submit(input); err != nil {
		if errors.Is(err, service.ErrContactInvalid) {
			setFlash(c, "error", "Lütfen tüm alanları doğru şekilde doldurunuz.")
			c.Redirect(http.StatusFound, "/")
			return
		}
		a.renderError(c, http.StatusInternalServerError, err)
		return
	}

	setFlash(c, "success", "Mesajınız başarıyla gönderildi. En kısa sürede size dönüş yapacağız.")
	c.Redirect(http.StatusFound, "/")
}

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

// Sitemap lists the site root and every active post, slug first and
// decimal id as the fallback token.
func (a *API) Sitemap(c *gin.Context) {
	siteURL, err := a.seo.SiteURL()
	if err != nil {
		a.renderError(c, http.StatusInternalServerError, err)
		return
	}

	posts, err := a.blogs.ListActive(0)
	if err != nil {
		a.renderError(c, http.StatusInternalServerError, err)
		return
	}

	urls := []sitemapURL{{Loc: siteURL + "/", ChangeFreq: "weekly", Priority: "1.0"}}
	for _, post := range posts {
		token := post.SeoURL
		if strings.TrimSpace(token) == "" {
			token = strconv.FormatUint(uint64(post.ID), 10)
		}
		urls = append(urls, sitemapURL{
			Loc:        fmt.Sprintf("%s/blog/%s", siteURL, token),
			ChangeFreq: "weekly",
			Priority:   "0.8",
		})
	}

	c.Header("Content-Type", "application/xml; charset=utf-8")
	c.Status(http.StatusOK)
	c.Writer.WriteString(xml.Header)
	if err := xml.NewEncoder(c.Writer).Encode(sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}); err != nil {
		c.Error(err)
	}
}

func pageTitle(post *db.BlogPost) string {
	if strings.TrimSpace(post.SeoTitle) != "" {
		return post.SeoTitle
	}
	return post.Title
}

func metaDescription(post *db.BlogPost) string {
	if strings.TrimSpace(post.MetaDescription) != "" {
		return post.MetaDescription
	}
	if strings.TrimSpace(post.Summary) != "" {
		return post.Summary
	}
	runes := []rune(post.Content)
	if len(runes) > 160 {
		return string(runes[:160]) + "..."
	}
	return post.Content
}

func ogImage(post *db.BlogPost) string {
	if strings.TrimSpace(post.OgImage) != "" {
		return post.OgImage
	}
	return post.ImageURL
}
