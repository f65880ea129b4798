package db

import "time"

// BlogPost is a blog entry authored in the admin area. SeoURL is the
// public slug; when empty the post is reachable by its numeric id only.
// Version backs optimistic locking on admin edits.
type BlogPost struct {
	ID              uint   `gorm:"primaryKey"`
	Title           string `gorm:"size:200;not null"`
	Content         string `gorm:"not null"`
	Summary         string `gorm:"size:500"`
	ImageURL        string
	SeoTitle        string `gorm:"size:200"`
	MetaDescription string `gorm:"size:300"`
	SeoURL          string `gorm:"size:100"`
	MetaKeywords    string
	OgImage         string
	CreatedDate     time.Time
	UpdatedDate     *time.Time
	IsActive        bool
	Tags            string
	ViewCount       int
	Author          string
	ReadingTime     int
	IsFeatured      bool
	Version         int `gorm:"not null;default:0"`
}
