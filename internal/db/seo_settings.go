package db

import "time"

// SeoSettings is the site-wide SEO configuration. At most one row exists;
// readers fall back to seeded defaults when the table is empty.
type SeoSettings struct {
	ID                  uint   `gorm:"primaryKey"`
	SiteTitle           string `gorm:"size:100;not null"`
	SiteDescription     string `gorm:"size:300"`
	SiteKeywords        string
	SiteURL             string `gorm:"size:100"`
	GoogleAnalyticsID   string
	GoogleSearchConsole string
	FacebookPixelID     string
	OgImage             string
	TwitterCard         string
	EnableSitemap       bool
	EnableRobotsTxt     bool
	UpdatedDate         time.Time
	UpdatedBy           string
}
