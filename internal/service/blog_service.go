package service

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sadiclarsan/web/internal/db"
	"github.com/sadiclarsan/web/internal/slug"
	"gorm.io/gorm"
)

var (
	ErrPostNotFound        = errors.New("blog post not found")
	ErrConcurrencyConflict = errors.New("blog post was modified concurrently")
)

// How often a write is retried when the unique index on seo_url rejects
// the allocated slug. The allocator re-reads the table on each attempt,
// so one retry normally suffices.
const slugWriteAttempts = 3

// BlogService owns blog post persistence, slug allocation and public
// resolution.
type BlogService struct {
	db *gorm.DB
}

// NewBlogService creates a BlogService instance.
func NewBlogService(gdb *gorm.DB) *BlogService {
	return &BlogService{db: gdb}
}

// BlogPostInput represents fields accepted when creating or updating a post.
// SeoURL is the editor's desired slug as free text; the allocator normalises
// and deduplicates it. On update, an empty ImageURL or OgImage keeps the
// stored value.
type BlogPostInput struct {
	Title           string
	Content         string
	Summary         string
	ImageURL        string
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

// AllocateSlug turns free text into a unique slug. When the text
// transliterates to nothing, an 8-hex-char random seed takes its place.
// exemptID marks one row whose current slug does not count as a conflict;
// pass zero for none.
func (s *BlogService) AllocateSlug(desired string, exemptID uint) (string, error) {
	base := slug.ToCandidate(desired)
	if base == "" {
		id := uuid.New()
		base = fmt.Sprintf("%x", id[:4])
	}

	candidate := base
	for n := 1; ; n++ {
		taken, err := s.ExistsWithSlug(candidate, exemptID)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, n)
	}
}

// ExistsWithSlug reports whether any row other than exemptID carries the
// given slug.
func (s *BlogService) ExistsWithSlug(slugValue string, exemptID uint) (bool, error) {
	query := s.db.Model(&db.BlogPost{}).Where("seo_url = ?", slugValue)
	if exemptID != 0 {
		query = query.Where("id <> ?", exemptID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create allocates a slug and inserts the post. A concurrent writer landing
// on the same slug trips the unique index; the slug is then reallocated and
// the insert retried.
func (s *BlogService) Create(input BlogPostInput) (*db.BlogPost, error) {
	var lastErr error
	for attempt := 0; attempt < slugWriteAttempts; attempt++ {
		allocated, err := s.AllocateSlug(desiredSlugText(input), 0)
		if err != nil {
			return nil, err
		}

		post := db.BlogPost{
			Title:           strings.TrimSpace(input.Title),
			Content:         input.Content,
			Summary:         strings.TrimSpace(input.Summary),
			ImageURL:        input.ImageURL,
			SeoTitle:        strings.TrimSpace(input.SeoTitle),
			MetaDescription: strings.TrimSpace(input.MetaDescription),
			SeoURL:          allocated,
			MetaKeywords:    strings.TrimSpace(input.MetaKeywords),
			OgImage:         strings.TrimSpace(input.OgImage),
			CreatedDate:     time.Now(),
			IsActive:        input.IsActive,
			Tags:            strings.TrimSpace(input.Tags),
			Author:          strings.TrimSpace(input.Author),
			ReadingTime:     input.ReadingTime,
			IsFeatured:      input.IsFeatured,
		}

		err = s.db.Create(&post).Error
		if err == nil {
			return &post, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, err
		}
		lastErr = err
	}
	return nil, lastErr
}

// Update overwrites the mutable fields of an existing post and stamps
// UpdatedDate. The row's own slug is exempt during allocation, so an
// unchanged slug survives the edit. OgImage submitted empty keeps the
// stored value; the other SEO fields overwrite unconditionally. A version
// check detects concurrent writers.
func (s *BlogService) Update(id uint, input BlogPostInput) (*db.BlogPost, error) {
	var lastErr error
	for attempt := 0; attempt < slugWriteAttempts; attempt++ {
		var existing db.BlogPost
		if err := s.db.First(&existing, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrPostNotFound
			}
			return nil, err
		}

		allocated, err := s.AllocateSlug(desiredSlugText(input), id)
		if err != nil {
			return nil, err
		}

		now := time.Now()
		updates := map[string]interface{}{
			"title":            strings.TrimSpace(input.Title),
			"content":          input.Content,
			"summary":          strings.TrimSpace(input.Summary),
			"seo_title":        strings.TrimSpace(input.SeoTitle),
			"meta_description": strings.TrimSpace(input.MetaDescription),
			"seo_url":          allocated,
			"meta_keywords":    strings.TrimSpace(input.MetaKeywords),
			"tags":             strings.TrimSpace(input.Tags),
			"author":           strings.TrimSpace(input.Author),
			"reading_time":     input.ReadingTime,
			"is_active":        input.IsActive,
			"is_featured":      input.IsFeatured,
			"updated_date":     now,
			"version":          existing.Version + 1,
		}
		if strings.TrimSpace(input.OgImage) != "" {
			updates["og_image"] = strings.TrimSpace(input.OgImage)
		}
		if input.ImageURL != "" {
			updates["image_url"] = input.ImageURL
		}

		result := s.db.Model(&db.BlogPost{}).
			Where("id = ? AND version = ?", id, existing.Version).
			Updates(updates)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
				lastErr = result.Error
				continue
			}
			return nil, result.Error
		}
		if result.RowsAffected == 0 {
			taken, err := s.exists(id)
			if err != nil {
				return nil, err
			}
			if !taken {
				return nil, ErrPostNotFound
			}
			return nil, ErrConcurrencyConflict
		}

		var updated db.BlogPost
		if err := s.db.First(&updated, id).Error; err != nil {
			return nil, err
		}
		return &updated, nil
	}
	return nil, lastErr
}

// Delete removes a post and returns the prior row, or nil when no row
// existed. Deleting twice is a no-op.
func (s *BlogService) Delete(id uint) (*db.BlogPost, error) {
	var existing db.BlogPost
	if err := s.db.First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	if err := s.db.Delete(&db.BlogPost{}, id).Error; err != nil {
		return nil, err
	}
	return &existing, nil
}

// Get fetches a post by id.
func (s *BlogService) Get(id uint) (*db.BlogPost, error) {
	var post db.BlogPost
	if err := s.db.First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

// ListAll returns every post ordered by creation time descending, for the
// admin list.
func (s *BlogService) ListAll() ([]db.BlogPost, error) {
	var posts []db.BlogPost
	if err := s.db.Order("created_date desc").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// ListActive returns active posts ordered by creation time descending.
// A non-positive limit returns all of them.
func (s *BlogService) ListActive(limit int) ([]db.BlogPost, error) {
	query := s.db.Where("is_active = ?", true).Order("created_date desc")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var posts []db.BlogPost
	if err := query.Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// ResolvePublic maps a public URL token to one active post. A slug match
// wins over a numeric-id match, so canonical URLs stay stable even when a
// slug happens to spell another post's id.
func (s *BlogService) ResolvePublic(token string) (*db.BlogPost, error) {
	trimmed := strings.TrimSpace(token)
	if trimmed == "" {
		return nil, ErrPostNotFound
	}

	var post db.BlogPost
	err := s.db.Where("is_active = ? AND seo_url = ?", true, trimmed).First(&post).Error
	if err == nil {
		return &post, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	id, parseErr := strconv.ParseUint(trimmed, 10, 32)
	if parseErr != nil {
		return nil, ErrPostNotFound
	}

	err = s.db.Where("is_active = ? AND id = ?", true, uint(id)).First(&post).Error
	if err == nil {
		return &post, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPostNotFound
	}
	return nil, err
}

// IncrementViewCount bumps the per-post view counter. The increment is
// atomic in the database but intentionally not serialised with reads.
func (s *BlogService) IncrementViewCount(id uint) error {
	result := s.db.Model(&db.BlogPost{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", 1))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPostNotFound
	}
	return nil
}

// ActiveContent serves the JSON content endpoint: it loads an active post
// by numeric id and counts the view.
func (s *BlogService) ActiveContent(id uint) (*db.BlogPost, error) {
	var post db.BlogPost
	if err := s.db.Where("id = ? AND is_active = ?", id, true).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	if err := s.IncrementViewCount(post.ID); err != nil {
		return nil, err
	}
	post.ViewCount++
	return &post, nil
}

func (s *BlogService) exists(id uint) (bool, error) {
	var count int64
	if err := s.db.Model(&db.BlogPost{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func desiredSlugText(input BlogPostInput) string {
	if strings.TrimSpace(input.SeoURL) != "" {
		return input.SeoURL
	}
	return input.Title
}
