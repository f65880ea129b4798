package db

import "time"

// AdminUser is a back-office account. PasswordHash holds either a bcrypt
// hash or, for accounts created before the migration, the legacy
// base64(sha256) form; verification accepts both and rehashes on login.
type AdminUser struct {
	ID            uint   `gorm:"primaryKey"`
	Username      string `gorm:"size:50;not null;unique"`
	Email         string `gorm:"not null"`
	PasswordHash  string `gorm:"not null"`
	FullName      string `gorm:"size:100"`
	CreatedDate   time.Time
	LastLoginDate *time.Time
	IsActive      bool
	Role          string `gorm:"default:Admin"`
}
