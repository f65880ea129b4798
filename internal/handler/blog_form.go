package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sadiclarsan/web/internal/service"
	"github.com/sadiclarsan/web/internal/slug"
)

// blogForm mirrors the admin create/edit form. SeoURL holds the editor's
// desired slug as typed; normalisation happens during allocation.
type blogForm struct {
	Title           string
	Content         string
	Summary         string
	SeoTitle        string
	MetaDescription string
	SeoURL          string
	MetaKeywords    string
	OgImage         string
	Tags            string
	Author          string
	ReadingTime     int
	IsActive        bool
	IsFeatured      bool
}

func parseBlogForm(c *gin.Context) blogForm {
	return blogForm{
		Title:           c.PostForm("title"),
		Content:         c.PostForm("content"),
		Summary:         c.PostForm("summary"),
		SeoTitle:        c.PostForm("seoTitle"),
		MetaDescription: c.PostForm("metaDescription"),
		SeoURL:          c.PostForm("seoUrl"),
		MetaKeywords:    c.PostForm("metaKeywords"),
		OgImage:         c.PostForm("ogImage"),
		Tags:            c.PostForm("tags"),
		Author:          c.PostForm("author"),
		ReadingTime:     parseIntForm(c, "readingTime"),
		IsActive:        parseBoolForm(c, "isActive"),
		IsFeatured:      parseBoolForm(c, "isFeatured"),
	}
}

// validate returns field-level messages; an empty map means the form can
// be persisted.
func (f blogForm) validate() map[string]string {
	problems := map[string]string{}

	title := strings.TrimSpace(f.Title)
	if title == "" {
		problems["title"] = "Başlık zorunludur"
	} else if len([]rune(title)) > 200 {
		problems["title"] = "Başlık en fazla 200 karakter olabilir"
	}

	if strings.TrimSpace(f.Content) == "" {
		problems["content"] = "İçerik zorunludur"
	}

	if len([]rune(strings.TrimSpace(f.Summary))) > 500 {
		problems["summary"] = "Özet en fazla 500 karakter olabilir"
	}

	if len([]rune(strings.TrimSpace(f.SeoTitle))) > 200 {
		problems["seoTitle"] = "SEO başlık en fazla 200 karakter olabilir"
	}

	if len([]rune(strings.TrimSpace(f.MetaDescription))) > 300 {
		problems["metaDescription"] = "Meta açıklama en fazla 300 karakter olabilir"
	}

	// The limit applies to the transliterated form that actually lands
	// in the database.
	if len(slug.ToCandidate(f.SeoURL)) > 100 {
		problems["seoUrl"] = "SEO URL en fazla 100 karakter olabilir"
	}

	return problems
}

func (f blogForm) input() service.BlogPostInput {
	return service.BlogPostInput{
		Title:           f.Title,
		Content:         f.Content,
		Summary:         f.Summary,
		SeoTitle:        f.SeoTitle,
		MetaDescription: f.MetaDescription,
		SeoURL:          f.SeoURL,
		MetaKeywords:    f.MetaKeywords,
		OgImage:         f.OgImage,
		Tags:            f.Tags,
		Author:          f.Author,
		ReadingTime:     f.ReadingTime,
		IsActive:        f.IsActive,
		IsFeatured:      f.IsFeatured,
	}
}
