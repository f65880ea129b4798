package service

import (
	"errors"
	"strings"
	"time"

	"github.com/sadiclarsan/web/internal/db"
	"gorm.io/gorm"
)

// DefaultSiteURL is used whenever no SEO settings row names one.
const DefaultSiteURL = "https://www.sadiclarsan.com.tr"

// SeoSettingsInput carries the admin SEO settings form.
type SeoSettingsInput struct {
	SiteTitle           string
	SiteDescription     string
	SiteKeywords        string
	SiteURL             string
	GoogleAnalyticsID   string
	GoogleSearchConsole string
	FacebookPixelID     string
	OgImage             string
	TwitterCard         string
	EnableSitemap       bool
	EnableRobotsTxt     bool
}

// SeoSettingsService reads and updates the site-wide SEO singleton.
type SeoSettingsService struct {
	db *gorm.DB
}

// NewSeoSettingsService creates a SeoSettingsService instance.
func NewSeoSettingsService(gdb *gorm.DB) *SeoSettingsService {
	return &SeoSettingsService{db: gdb}
}

// Get returns the stored settings, or the seeded defaults when no row
// exists yet. The defaults are never written implicitly.
func (s *SeoSettingsService) Get() (*db.SeoSettings, error) {
	var settings db.SeoSettings
	err := s.db.First(&settings).Error
	if err == nil {
		return &settings, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	return &db.SeoSettings{
		SiteTitle:       "Sadıçlarsan | Endüstriyel Mutfak Havalandırma Çözümleri",
		SiteDescription: "Endüstriyel mutfaklar için havalandırma ve filtreleme çözümlerinde lider firma. 2000 yılından beri hava kalitesi için çalışıyoruz.",
		SiteKeywords:    "endüstriyel mutfak, havalandırma, filtreleme, hava kalitesi, mutfak sistemleri",
		SiteURL:         DefaultSiteURL,
		TwitterCard:     "summary_large_image",
		EnableSitemap:   true,
		EnableRobotsTxt: true,
	}, nil
}

// Update upserts the singleton row and stamps who changed it and when.
func (s *SeoSettingsService) Update(input SeoSettingsInput, updatedBy string) (*db.SeoSettings, error) {
	if strings.TrimSpace(updatedBy) == "" {
		updatedBy = "Admin"
	}

	var existing db.SeoSettings
	err := s.db.First(&existing).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	existing.SiteTitle = strings.TrimSpace(input.SiteTitle)
	existing.SiteDescription = strings.TrimSpace(input.SiteDescription)
	existing.SiteKeywords = strings.TrimSpace(input.SiteKeywords)
	existing.SiteURL = strings.TrimSpace(input.SiteURL)
	existing.GoogleAnalyticsID = strings.TrimSpace(input.GoogleAnalyticsID)
	existing.GoogleSearchConsole = strings.TrimSpace(input.GoogleSearchConsole)
	existing.FacebookPixelID = strings.TrimSpace(input.FacebookPixelID)
	existing.OgImage = strings.TrimSpace(input.OgImage)
	existing.TwitterCard = strings.TrimSpace(input.TwitterCard)
	existing.EnableSitemap = input.EnableSitemap
	existing.EnableRobotsTxt = input.EnableRobotsTxt
	existing.UpdatedDate = time.Now()
	existing.UpdatedBy = updatedBy

	if err := s.db.Save(&existing).Error; err != nil {
		return nil, err
	}
	return &existing, nil
}

// SiteURL returns the configured site URL with any trailing slash
// trimmed, falling back to the hard-coded default.
func (s *SeoSettingsService) SiteURL() (string, error) {
	settings, err := s.Get()
	if err != nil {
		return "", err
	}

	url := strings.TrimSpace(settings.SiteURL)
	if url == "" {
		url = DefaultSiteURL
	}
	return strings.TrimRight(url, "/"), nil
}
